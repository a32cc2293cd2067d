package store

import (
	"sort"
	"time"

	"wayfindr-map/geometry"
	"wayfindr-map/models"
)

// ===================================================================
// ZONE OPERATIONS
// ===================================================================

// CreateZone registers a new zone. The polygon is validated up front, so a
// rejected zone leaves the store untouched.
func (s *MapStore) CreateZone(zone models.Zone) (*models.Zone, error) {
	if err := geometry.ValidatePolygon(zone.Polygon); err != nil {
		return nil, &InvalidGeometryError{ZoneID: zone.ID, Cause: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, existing := s.findZoneLocked(zone.ID); existing != nil {
		return nil, &DuplicateIDError{Resource: "zone", ID: zone.ID}
	}
	floor, ok := s.floors[zone.FloorID]
	if !ok {
		return nil, &UnknownFloorError{FloorID: zone.FloorID}
	}

	if zone.CreatedAt.IsZero() {
		zone.CreatedAt = s.now()
	}

	stored := copyZone(&zone)
	floor.Zones[zone.ID] = stored
	return copyZone(stored), nil
}

// CreateBlockedZone is the operator shortcut for the common case: it builds a
// blocked zone with a generated id, active immediately.
func (s *MapStore) CreateBlockedZone(name, floorID string, polygon []models.Coordinate, reason string, expiresAt *time.Time) (*models.Zone, error) {
	return s.CreateZone(models.Zone{
		ID:        NewBlockedZoneID(),
		Name:      name,
		FloorID:   floorID,
		ZoneType:  models.ZoneTypeBlocked,
		Polygon:   polygon,
		Active:    true,
		Reason:    reason,
		ExpiresAt: expiresAt,
	})
}

// NewBlockedZoneID generates a shortcut zone id of the form blocked_<uuid8>.
func NewBlockedZoneID() string {
	return models.ZoneTypeBlocked.GenerateID()
}

// GetZone returns a zone by id. Expiration is resolved first, so the
// returned stored flag already reflects the lifecycle rules.
func (s *MapStore) GetZone(zoneID string) (*models.Zone, error) {
	s.resolveExpired()

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, z := s.findZoneLocked(zoneID)
	if z == nil {
		return nil, &NotFoundError{Resource: "zone", ID: zoneID}
	}
	return copyZone(z), nil
}

// UpdateZone applies a partial update. A patched polygon is revalidated.
// Changing or clearing expires_at is the one way to bring an expired zone
// back: doing so also restores the stored active flag unless the patch sets
// it explicitly.
func (s *MapStore) UpdateZone(zoneID string, patch models.ZonePatch) (*models.Zone, error) {
	if patch.Polygon != nil {
		if err := geometry.ValidatePolygon(*patch.Polygon); err != nil {
			return nil, &InvalidGeometryError{ZoneID: zoneID, Cause: err}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, z := s.findZoneLocked(zoneID)
	if z == nil {
		return nil, &NotFoundError{Resource: "zone", ID: zoneID}
	}

	wasExpired := zoneExpiredAt(z, s.now())

	if patch.Name != nil {
		z.Name = *patch.Name
	}
	if patch.ZoneType != nil {
		z.ZoneType = *patch.ZoneType
	}
	if patch.Polygon != nil {
		z.Polygon = append([]models.Coordinate(nil), *patch.Polygon...)
	}
	if patch.Reason != nil {
		z.Reason = *patch.Reason
	}

	deadlineChanged := false
	if patch.ClearExpiresAt {
		z.ExpiresAt = nil
		deadlineChanged = true
	} else if patch.ExpiresAt != nil {
		t := *patch.ExpiresAt
		z.ExpiresAt = &t
		deadlineChanged = true
	}

	switch {
	case patch.Active != nil:
		z.Active = *patch.Active
	case wasExpired && deadlineChanged && !zoneExpiredAt(z, s.now()):
		// Reactivation path: a cleared or future deadline revives the zone.
		z.Active = true
	}

	// The stored flag never survives past a still-passed deadline.
	if zoneExpiredAt(z, s.now()) {
		z.Active = false
	}

	return copyZone(z), nil
}

// DeleteZone removes a zone immediately and unconditionally.
func (s *MapStore) DeleteZone(zoneID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	floor, z := s.findZoneLocked(zoneID)
	if z == nil {
		return &NotFoundError{Resource: "zone", ID: zoneID}
	}
	delete(floor.Zones, zoneID)
	return nil
}

// SetZoneActive toggles a zone's active flag. Zones past their expiry
// deadline refuse the transition with ZoneExpired; reactivating one requires
// an update that clears or resets expires_at.
func (s *MapStore) SetZoneActive(zoneID string, active bool) (*models.Zone, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, z := s.findZoneLocked(zoneID)
	if z == nil {
		return nil, &NotFoundError{Resource: "zone", ID: zoneID}
	}
	if zoneExpiredAt(z, s.now()) {
		z.Active = false
		return nil, &ZoneExpiredError{ZoneID: zoneID}
	}
	z.Active = active
	return copyZone(z), nil
}

// ListZones returns zones, optionally restricted to one floor, to
// lifecycle-active zones, and to one zone type. activeOnly consults the
// lifecycle rules, not the stored flag: a zone whose deadline passed a
// millisecond ago is already excluded.
func (s *MapStore) ListZones(floorID string, activeOnly bool, zoneType models.ZoneType) ([]models.Zone, error) {
	s.resolveExpired()

	s.mu.RLock()
	defer s.mu.RUnlock()

	floors, err := s.filterFloorsLocked(floorID)
	if err != nil {
		return nil, err
	}

	result := make([]models.Zone, 0)
	for _, floor := range floors {
		for _, z := range floor.Zones {
			if activeOnly && !z.Active {
				continue
			}
			if zoneType != "" && z.ZoneType != zoneType {
				continue
			}
			result = append(result, *copyZone(z))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// ListBlockedZones returns the active blocked zones, the set robots must
// route around.
func (s *MapStore) ListBlockedZones(floorID string) ([]models.Zone, error) {
	return s.ListZones(floorID, true, models.ZoneTypeBlocked)
}
