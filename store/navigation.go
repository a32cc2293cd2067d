package store

import (
	"sort"

	"wayfindr-map/geometry"
	"wayfindr-map/models"
)

// ===================================================================
// NAVIGATION STATE COMPILER
// ===================================================================

// CompileSnapshot produces the navigation state a robot consumes for one
// floor: the accessible/blocked waypoint partition, the active blocked
// zones, and the floor's dimensions. An empty floorID resolves to the
// lowest-level registered floor. The snapshot is recomputed on every call
// and never cached; its only side effect is the lazy expiration correction.
func (s *MapStore) CompileSnapshot(robotID, floorID string) (*models.NavigationSnapshot, error) {
	s.resolveExpired()

	s.mu.RLock()
	defer s.mu.RUnlock()

	if floorID == "" {
		floorID = s.lowestFloorLocked()
		if floorID == "" {
			return nil, &UnknownFloorError{FloorID: "(no floors configured)"}
		}
	}

	floor, ok := s.floors[floorID]
	if !ok {
		return nil, &UnknownFloorError{FloorID: floorID}
	}

	snapshot := &models.NavigationSnapshot{
		RobotID:             robotID,
		FloorID:             floor.ID,
		FloorName:           floor.Name,
		Timestamp:           s.now(),
		AccessibleWaypoints: make([]models.SnapshotWaypoint, 0, len(floor.Waypoints)),
		BlockedWaypointIDs:  make([]string, 0),
		BlockedZones:        make([]models.SnapshotZone, 0),
		MapDimensions:       models.MapDimensions{Width: floor.Width, Height: floor.Height},
	}

	for _, wp := range floor.Waypoints {
		if wp.Accessible {
			snapshot.AccessibleWaypoints = append(snapshot.AccessibleWaypoints, models.SnapshotWaypoint{
				ID:          wp.ID,
				Name:        wp.Name,
				Position:    wp.Position,
				Type:        wp.Type,
				Connections: append([]string(nil), wp.Connections...),
			})
		} else {
			snapshot.BlockedWaypointIDs = append(snapshot.BlockedWaypointIDs, wp.ID)
		}
	}
	sort.Slice(snapshot.AccessibleWaypoints, func(i, j int) bool {
		return snapshot.AccessibleWaypoints[i].ID < snapshot.AccessibleWaypoints[j].ID
	})
	sort.Strings(snapshot.BlockedWaypointIDs)

	for _, z := range floor.Zones {
		if z.Active && z.ZoneType == models.ZoneTypeBlocked {
			snapshot.BlockedZones = append(snapshot.BlockedZones, models.SnapshotZone{
				ID:      z.ID,
				Name:    z.Name,
				Polygon: append([]models.Coordinate(nil), z.Polygon...),
				Reason:  z.Reason,
			})
		}
	}
	sort.Slice(snapshot.BlockedZones, func(i, j int) bool {
		return snapshot.BlockedZones[i].ID < snapshot.BlockedZones[j].ID
	})

	return snapshot, nil
}

// lowestFloorLocked returns the id of the lowest-level floor, the default
// floor for robots that do not say where they are.
func (s *MapStore) lowestFloorLocked() string {
	best := ""
	bestLevel := 0
	for id, f := range s.floors {
		if best == "" || f.Level < bestLevel || (f.Level == bestLevel && id < best) {
			best = id
			bestLevel = f.Level
		}
	}
	return best
}

// ===================================================================
// CONTAINMENT HELPERS
// ===================================================================

// IsPointInBlockedZone reports whether the point lies inside any active
// blocked zone on the floor.
func (s *MapStore) IsPointInBlockedZone(x, y float64, floorID string) (bool, error) {
	s.resolveExpired()

	s.mu.RLock()
	defer s.mu.RUnlock()

	floor, ok := s.floors[floorID]
	if !ok {
		return false, &UnknownFloorError{FloorID: floorID}
	}

	p := models.Coordinate{X: x, Y: y}
	for _, z := range floor.Zones {
		if z.Active && z.ZoneType == models.ZoneTypeBlocked && geometry.PointInPolygon(p, z.Polygon) {
			return true, nil
		}
	}
	return false, nil
}

// AccessibleWaypointIDs returns the waypoints a robot can actually reach on
// a floor: accessible by flag and not sitting inside an active blocked zone.
// This is the stricter, geometry-aware view; the snapshot partition itself
// goes by the flag alone.
func (s *MapStore) AccessibleWaypointIDs(floorID string) ([]string, error) {
	s.resolveExpired()

	s.mu.RLock()
	defer s.mu.RUnlock()

	floor, ok := s.floors[floorID]
	if !ok {
		return nil, &UnknownFloorError{FloorID: floorID}
	}

	blocked := make([]*models.Zone, 0)
	for _, z := range floor.Zones {
		if z.Active && z.ZoneType == models.ZoneTypeBlocked {
			blocked = append(blocked, z)
		}
	}

	ids := make([]string, 0, len(floor.Waypoints))
	for _, wp := range floor.Waypoints {
		if !wp.Accessible {
			continue
		}
		inBlocked := false
		for _, z := range blocked {
			if geometry.PointInPolygon(wp.Position, z.Polygon) {
				inBlocked = true
				break
			}
		}
		if !inBlocked {
			ids = append(ids, wp.ID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}
