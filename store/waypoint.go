package store

import (
	"sort"

	"wayfindr-map/models"
)

// ===================================================================
// WAYPOINT OPERATIONS
// ===================================================================

// CreateWaypoint registers a new waypoint. The id must be unique across the
// whole building, the floor must exist, and every connection target must
// already be registered: dangling references are rejected at write time, so
// connected graphs are created in dependency order (or wired up afterwards
// with UpdateWaypoint once both ends exist).
func (s *MapStore) CreateWaypoint(wp models.Waypoint) (*models.Waypoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.waypointExistsLocked(wp.ID) {
		return nil, &DuplicateIDError{Resource: "waypoint", ID: wp.ID}
	}
	floor, ok := s.floors[wp.FloorID]
	if !ok {
		return nil, &UnknownFloorError{FloorID: wp.FloorID}
	}
	for _, target := range wp.Connections {
		if !s.waypointExistsLocked(target) {
			return nil, &DanglingConnectionError{WaypointID: wp.ID, TargetID: target}
		}
	}
	if wp.Type == "" {
		wp.Type = models.WaypointTypeDestination
	}
	if wp.Connections == nil {
		wp.Connections = []string{}
	}

	stored := copyWaypoint(&wp)
	floor.Waypoints[wp.ID] = stored
	return copyWaypoint(stored), nil
}

// GetWaypoint returns a waypoint by id, searching all floors.
func (s *MapStore) GetWaypoint(waypointID string) (*models.Waypoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, wp := s.findWaypointLocked(waypointID)
	if wp == nil {
		return nil, &NotFoundError{Resource: "waypoint", ID: waypointID}
	}
	return copyWaypoint(wp), nil
}

// UpdateWaypoint applies a partial update. A patched connection set is
// validated the same way create validates it; the floor id is immutable.
func (s *MapStore) UpdateWaypoint(waypointID string, patch models.WaypointPatch) (*models.Waypoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, wp := s.findWaypointLocked(waypointID)
	if wp == nil {
		return nil, &NotFoundError{Resource: "waypoint", ID: waypointID}
	}

	if patch.Connections != nil {
		for _, target := range *patch.Connections {
			if !s.waypointExistsLocked(target) {
				return nil, &DanglingConnectionError{WaypointID: waypointID, TargetID: target}
			}
		}
	}

	if patch.Name != nil {
		wp.Name = *patch.Name
	}
	if patch.Position != nil {
		wp.Position = *patch.Position
	}
	if patch.Type != nil {
		wp.Type = *patch.Type
	}
	if patch.Description != nil {
		wp.Description = *patch.Description
	}
	if patch.Accessible != nil {
		wp.Accessible = *patch.Accessible
	}
	if patch.Connections != nil {
		wp.Connections = append([]string(nil), *patch.Connections...)
	}

	return copyWaypoint(wp), nil
}

// DeleteWaypoint removes a waypoint and scrubs its id from every other
// waypoint's connection set, across all floors. No dangling edge survives
// any sequence of creates and deletes.
func (s *MapStore) DeleteWaypoint(waypointID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	floor, wp := s.findWaypointLocked(waypointID)
	if wp == nil {
		return &NotFoundError{Resource: "waypoint", ID: waypointID}
	}

	delete(floor.Waypoints, waypointID)
	s.scrubConnectionsLocked(waypointID)
	return nil
}

// SetAccessible toggles a waypoint's accessible flag without touching its
// connections or removing the node. This is the block/unblock operation for
// temporary closures.
func (s *MapStore) SetAccessible(waypointID string, accessible bool) (*models.Waypoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, wp := s.findWaypointLocked(waypointID)
	if wp == nil {
		return nil, &NotFoundError{Resource: "waypoint", ID: waypointID}
	}
	wp.Accessible = accessible
	return copyWaypoint(wp), nil
}

// ListWaypoints returns waypoints, optionally restricted to one floor and to
// accessible ones. An empty floorID means all floors. A floor filter naming
// an unregistered floor is an error, not an empty result.
func (s *MapStore) ListWaypoints(floorID string, accessibleOnly bool) ([]models.Waypoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	floors, err := s.filterFloorsLocked(floorID)
	if err != nil {
		return nil, err
	}

	result := make([]models.Waypoint, 0)
	for _, floor := range floors {
		for _, wp := range floor.Waypoints {
			if accessibleOnly && !wp.Accessible {
				continue
			}
			result = append(result, *copyWaypoint(wp))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// filterFloorsLocked resolves an optional floor filter to the floors to scan.
func (s *MapStore) filterFloorsLocked(floorID string) ([]*models.Floor, error) {
	if floorID == "" {
		floors := make([]*models.Floor, 0, len(s.floors))
		for _, f := range s.floors {
			floors = append(floors, f)
		}
		return floors, nil
	}
	floor, ok := s.floors[floorID]
	if !ok {
		return nil, &UnknownFloorError{FloorID: floorID}
	}
	return []*models.Floor{floor}, nil
}
