package store

import (
	"fmt"

	"wayfindr-map/geometry"
	"wayfindr-map/models"
)

// ===================================================================
// DOCUMENT EXPORT / RESTORE
// ===================================================================

// Export deep-copies the whole store into a document for the persistence
// gateway. The copy is taken under the read lock; serializing and writing it
// happen outside, so disk latency never blocks the store.
func (s *MapStore) Export() *models.MapDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc := &models.MapDocument{
		Floors:      make(map[string]*models.Floor, len(s.floors)),
		LastUpdated: s.now(),
	}
	for id, f := range s.floors {
		doc.Floors[id] = copyFloor(f)
	}
	return doc
}

// Restore replaces the store's contents with a previously persisted
// document. Every referential invariant is re-checked first: a corrupt
// document is rejected whole, never silently repaired. Used at startup; a
// returned error is a fatal configuration error there.
func (s *MapStore) Restore(doc *models.MapDocument) error {
	if err := ValidateDocument(doc); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	floors := make(map[string]*models.Floor, len(doc.Floors))
	for id, f := range doc.Floors {
		restored := copyFloor(f)
		restored.ID = id
		if restored.Waypoints == nil {
			restored.Waypoints = make(map[string]*models.Waypoint)
		}
		if restored.Zones == nil {
			restored.Zones = make(map[string]*models.Zone)
		}
		floors[id] = restored
	}
	s.floors = floors
	return nil
}

// ValidateDocument checks the referential and structural invariants of a
// persisted document:
//   - map keys agree with embedded ids
//   - waypoint and zone ids are unique across all floors
//   - every waypoint and zone belongs to the floor that holds it
//   - every connection references a registered waypoint
//   - every zone polygon has at least three vertices
func ValidateDocument(doc *models.MapDocument) error {
	if doc == nil {
		return fmt.Errorf("nil map document")
	}

	waypointIDs := make(map[string]string) // waypoint id -> floor id
	zoneIDs := make(map[string]string)

	for floorID, floor := range doc.Floors {
		if floor == nil {
			return fmt.Errorf("floor '%s' is null", floorID)
		}
		if floor.ID != floorID {
			return fmt.Errorf("floor key '%s' does not match floor id '%s'", floorID, floor.ID)
		}
		for wpID, wp := range floor.Waypoints {
			if wp == nil {
				return fmt.Errorf("waypoint '%s' on floor '%s' is null", wpID, floorID)
			}
			if wp.ID != wpID {
				return fmt.Errorf("waypoint key '%s' does not match waypoint id '%s'", wpID, wp.ID)
			}
			if wp.FloorID != floorID {
				return fmt.Errorf("waypoint '%s' claims floor '%s' but is stored on floor '%s'", wpID, wp.FloorID, floorID)
			}
			if owner, dup := waypointIDs[wpID]; dup {
				return fmt.Errorf("waypoint id '%s' appears on floors '%s' and '%s'", wpID, owner, floorID)
			}
			waypointIDs[wpID] = floorID
		}
		for zoneID, z := range floor.Zones {
			if z == nil {
				return fmt.Errorf("zone '%s' on floor '%s' is null", zoneID, floorID)
			}
			if z.ID != zoneID {
				return fmt.Errorf("zone key '%s' does not match zone id '%s'", zoneID, z.ID)
			}
			if z.FloorID != floorID {
				return fmt.Errorf("zone '%s' claims floor '%s' but is stored on floor '%s'", zoneID, z.FloorID, floorID)
			}
			if owner, dup := zoneIDs[zoneID]; dup {
				return fmt.Errorf("zone id '%s' appears on floors '%s' and '%s'", zoneID, owner, floorID)
			}
			if err := geometry.ValidatePolygon(z.Polygon); err != nil {
				return fmt.Errorf("zone '%s': %w", zoneID, err)
			}
			zoneIDs[zoneID] = floorID
		}
	}

	for _, floor := range doc.Floors {
		for wpID, wp := range floor.Waypoints {
			for _, target := range wp.Connections {
				if _, ok := waypointIDs[target]; !ok {
					return fmt.Errorf("waypoint '%s' connects to unknown waypoint '%s'", wpID, target)
				}
			}
		}
	}

	return nil
}
