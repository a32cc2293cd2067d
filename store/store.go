package store

import (
	"sort"
	"sync"
	"time"

	"wayfindr-map/models"
)

// MapStore is the single source of truth for floors, waypoints, and zones.
// All mutation goes through it so invariants are enforced exactly once.
//
// One reader-writer lock guards the whole store: reads run concurrently with
// each other, every multi-step invariant check runs under a single write
// acquisition, and no disk I/O ever happens while the lock is held. The store
// is owned by exactly one process; there is no cross-process coordination.
type MapStore struct {
	mu     sync.RWMutex
	floors map[string]*models.Floor
	now    func() time.Time
}

// NewMapStore creates an empty store.
func NewMapStore() *MapStore {
	return NewMapStoreWithClock(time.Now)
}

// NewMapStoreWithClock creates an empty store with an injectable clock,
// used to drive zone expiration deterministically in tests.
func NewMapStoreWithClock(now func() time.Time) *MapStore {
	return &MapStore{
		floors: make(map[string]*models.Floor),
		now:    now,
	}
}

// ===================================================================
// FLOOR OPERATIONS
// ===================================================================

// CreateFloor registers a new floor. The floor's waypoint and zone maps are
// initialized empty regardless of input; entities are registered through
// their own create operations so their invariants run.
func (s *MapStore) CreateFloor(floor models.Floor) (*models.Floor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.floors[floor.ID]; exists {
		return nil, &DuplicateIDError{Resource: "floor", ID: floor.ID}
	}

	f := &models.Floor{
		ID:        floor.ID,
		Name:      floor.Name,
		Level:     floor.Level,
		Width:     floor.Width,
		Height:    floor.Height,
		Waypoints: make(map[string]*models.Waypoint),
		Zones:     make(map[string]*models.Zone),
	}
	s.floors[floor.ID] = f

	return copyFloor(f), nil
}

// GetFloor returns a floor with its nested waypoints and zones.
func (s *MapStore) GetFloor(floorID string) (*models.Floor, error) {
	s.resolveExpired()

	s.mu.RLock()
	defer s.mu.RUnlock()

	floor, ok := s.floors[floorID]
	if !ok {
		return nil, &UnknownFloorError{FloorID: floorID}
	}
	return copyFloor(floor), nil
}

// ListFloors returns floor summaries ordered by level.
func (s *MapStore) ListFloors() []models.FloorSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]models.FloorSummary, 0, len(s.floors))
	for _, f := range s.floors {
		summaries = append(summaries, models.FloorSummary{
			ID:            f.ID,
			Name:          f.Name,
			Level:         f.Level,
			WaypointCount: len(f.Waypoints),
			ZoneCount:     len(f.Zones),
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Level != summaries[j].Level {
			return summaries[i].Level < summaries[j].Level
		}
		return summaries[i].ID < summaries[j].ID
	})
	return summaries
}

// DeleteFloor removes a floor and cascades deletion of its owned waypoints
// and zones. Waypoints on other floors that connected to the deleted
// waypoints have those connection ids scrubbed, so no dangling edge survives
// the cascade.
func (s *MapStore) DeleteFloor(floorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	floor, ok := s.floors[floorID]
	if !ok {
		return &UnknownFloorError{FloorID: floorID}
	}

	delete(s.floors, floorID)
	for wpID := range floor.Waypoints {
		s.scrubConnectionsLocked(wpID)
	}
	return nil
}

// ===================================================================
// INTERNAL LOOKUPS (callers hold the lock)
// ===================================================================

// findWaypointLocked searches all floors for a waypoint id.
func (s *MapStore) findWaypointLocked(waypointID string) (*models.Floor, *models.Waypoint) {
	for _, floor := range s.floors {
		if wp, ok := floor.Waypoints[waypointID]; ok {
			return floor, wp
		}
	}
	return nil, nil
}

// findZoneLocked searches all floors for a zone id.
func (s *MapStore) findZoneLocked(zoneID string) (*models.Floor, *models.Zone) {
	for _, floor := range s.floors {
		if z, ok := floor.Zones[zoneID]; ok {
			return floor, z
		}
	}
	return nil, nil
}

// waypointExistsLocked reports whether a waypoint id is registered anywhere.
func (s *MapStore) waypointExistsLocked(waypointID string) bool {
	_, wp := s.findWaypointLocked(waypointID)
	return wp != nil
}

// scrubConnectionsLocked removes waypointID from every remaining waypoint's
// connection set, across all floors.
func (s *MapStore) scrubConnectionsLocked(waypointID string) {
	for _, floor := range s.floors {
		for _, wp := range floor.Waypoints {
			wp.Connections = removeID(wp.Connections, waypointID)
		}
	}
}

// ===================================================================
// COPY HELPERS
// ===================================================================

// Returned entities are deep copies: callers can never reach the store's
// shared state through a result.

func copyFloor(f *models.Floor) *models.Floor {
	out := &models.Floor{
		ID:        f.ID,
		Name:      f.Name,
		Level:     f.Level,
		Width:     f.Width,
		Height:    f.Height,
		Waypoints: make(map[string]*models.Waypoint, len(f.Waypoints)),
		Zones:     make(map[string]*models.Zone, len(f.Zones)),
	}
	for id, wp := range f.Waypoints {
		out.Waypoints[id] = copyWaypoint(wp)
	}
	for id, z := range f.Zones {
		out.Zones[id] = copyZone(z)
	}
	return out
}

func copyWaypoint(wp *models.Waypoint) *models.Waypoint {
	out := *wp
	out.Connections = append([]string(nil), wp.Connections...)
	return &out
}

func copyZone(z *models.Zone) *models.Zone {
	out := *z
	out.Polygon = append([]models.Coordinate(nil), z.Polygon...)
	if z.ExpiresAt != nil {
		t := *z.ExpiresAt
		out.ExpiresAt = &t
	}
	return &out
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
