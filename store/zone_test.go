package store

import (
	"strings"
	"testing"
	"time"

	"wayfindr-map/models"
)

func testPolygon() []models.Coordinate {
	return []models.Coordinate{
		{X: 100, Y: 100}, {X: 200, Y: 100}, {X: 200, Y: 200}, {X: 100, Y: 200},
	}
}

func seedZone(t *testing.T, s *MapStore, id, floorID string, zoneType models.ZoneType, active bool, expiresAt *time.Time) {
	t.Helper()
	_, err := s.CreateZone(models.Zone{
		ID:        id,
		Name:      id,
		FloorID:   floorID,
		ZoneType:  zoneType,
		Polygon:   testPolygon(),
		Active:    active,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		t.Fatalf("Failed to seed zone %s: %v", id, err)
	}
}

func TestCreateZone(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s, _ := newTestStore(base)
	seedFloor(t, s, "floor_1", 1)
	seedFloor(t, s, "floor_2", 2)

	t.Run("Create And Get", func(t *testing.T) {
		z, err := s.CreateZone(models.Zone{
			ID:       "spill_zone",
			Name:     "Spill cleanup",
			FloorID:  "floor_1",
			ZoneType: models.ZoneTypeBlocked,
			Polygon:  testPolygon(),
			Active:   true,
			Reason:   "Water spill",
		})
		if err != nil {
			t.Fatalf("CreateZone failed: %v", err)
		}
		if !z.CreatedAt.Equal(base) {
			t.Errorf("Expected created_at defaulted to the clock, got %v", z.CreatedAt)
		}

		got, err := s.GetZone("spill_zone")
		if err != nil {
			t.Fatalf("GetZone failed: %v", err)
		}
		if got.Reason != "Water spill" || !got.Active {
			t.Errorf("Unexpected zone returned: %+v", got)
		}
	})

	t.Run("Invalid Polygon Leaves Store Untouched", func(t *testing.T) {
		_, err := s.CreateZone(models.Zone{
			ID:       "bad_zone",
			FloorID:  "floor_1",
			ZoneType: models.ZoneTypeBlocked,
			Polygon:  []models.Coordinate{{X: 0, Y: 0}, {X: 1, Y: 1}},
		})
		if !IsInvalidGeometry(err) {
			t.Fatalf("Expected invalid geometry error, got: %v", err)
		}
		if _, err := s.GetZone("bad_zone"); !IsNotFound(err) {
			t.Errorf("Rejected zone must not be registered, got: %v", err)
		}
	})

	t.Run("Duplicate ID Rejected Across Floors", func(t *testing.T) {
		_, err := s.CreateZone(models.Zone{
			ID: "spill_zone", FloorID: "floor_2",
			ZoneType: models.ZoneTypeBlocked, Polygon: testPolygon(),
		})
		if !IsDuplicateID(err) {
			t.Errorf("Expected duplicate id error, got: %v", err)
		}
	})

	t.Run("Unknown Floor Rejected", func(t *testing.T) {
		_, err := s.CreateZone(models.Zone{
			ID: "zone_x", FloorID: "floor_99",
			ZoneType: models.ZoneTypeBlocked, Polygon: testPolygon(),
		})
		if !IsUnknownFloor(err) {
			t.Errorf("Expected unknown floor error, got: %v", err)
		}
	})
}

func TestCreateBlockedZoneShortcut(t *testing.T) {
	s := NewMapStore()
	seedFloor(t, s, "floor_1", 1)

	z, err := s.CreateBlockedZone("Maintenance", "floor_1", testPolygon(), "Floor polishing", nil)
	if err != nil {
		t.Fatalf("CreateBlockedZone failed: %v", err)
	}
	if !strings.HasPrefix(z.ID, "blocked_") {
		t.Errorf("Expected generated id with blocked_ prefix, got %s", z.ID)
	}
	if !z.Active || z.ZoneType != models.ZoneTypeBlocked {
		t.Errorf("Expected active blocked zone, got: %+v", z)
	}
}

func TestZoneExpiration(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	deadline := base.Add(time.Hour)

	t.Run("Lazy Correction On Read", func(t *testing.T) {
		s, clock := newTestStore(base)
		seedFloor(t, s, "floor_1", 1)
		seedZone(t, s, "temp_block", "floor_1", models.ZoneTypeBlocked, true, &deadline)

		// Before the deadline the zone is active.
		z, _ := s.GetZone("temp_block")
		if !z.Active {
			t.Fatal("Expected zone active before its deadline")
		}

		// At the deadline exactly, the zone is expired (closed-start rule).
		*clock = deadline
		z, err := s.GetZone("temp_block")
		if err != nil {
			t.Fatalf("GetZone failed: %v", err)
		}
		if z.Active {
			t.Error("Expected stored active flag corrected at the deadline")
		}
	})

	t.Run("Expired Zones Excluded From Active Listing", func(t *testing.T) {
		s, clock := newTestStore(base)
		seedFloor(t, s, "floor_1", 1)
		seedZone(t, s, "temp_block", "floor_1", models.ZoneTypeBlocked, true, &deadline)
		seedZone(t, s, "permanent", "floor_1", models.ZoneTypeBlocked, true, nil)

		*clock = deadline.Add(time.Minute)
		zones, err := s.ListZones("floor_1", true, "")
		if err != nil {
			t.Fatalf("ListZones failed: %v", err)
		}
		if len(zones) != 1 || zones[0].ID != "permanent" {
			t.Errorf("Expected only the permanent zone, got: %+v", zones)
		}
	})

	t.Run("Toggle Refused After Expiry", func(t *testing.T) {
		s, clock := newTestStore(base)
		seedFloor(t, s, "floor_1", 1)
		seedZone(t, s, "temp_block", "floor_1", models.ZoneTypeBlocked, true, &deadline)

		*clock = deadline.Add(time.Minute)
		if _, err := s.SetZoneActive("temp_block", true); !IsZoneExpired(err) {
			t.Errorf("Expected zone expired error, got: %v", err)
		}
		// The refused toggle still corrects the stored flag.
		z, _ := s.GetZone("temp_block")
		if z.Active {
			t.Error("Expected stored flag corrected by the refused toggle")
		}
	})

	t.Run("Reactivation Via Deadline Reset", func(t *testing.T) {
		s, clock := newTestStore(base)
		seedFloor(t, s, "floor_1", 1)
		seedZone(t, s, "temp_block", "floor_1", models.ZoneTypeBlocked, true, &deadline)

		*clock = deadline.Add(time.Minute)
		newDeadline := clock.Add(2 * time.Hour)
		z, err := s.UpdateZone("temp_block", models.ZonePatch{ExpiresAt: &newDeadline})
		if err != nil {
			t.Fatalf("UpdateZone failed: %v", err)
		}
		if !z.Active {
			t.Error("Expected a future deadline to revive the expired zone")
		}

		if _, err := s.SetZoneActive("temp_block", false); err != nil {
			t.Errorf("Expected toggle to work after revival, got: %v", err)
		}
	})

	t.Run("Reactivation Via Cleared Deadline", func(t *testing.T) {
		s, clock := newTestStore(base)
		seedFloor(t, s, "floor_1", 1)
		seedZone(t, s, "temp_block", "floor_1", models.ZoneTypeBlocked, true, &deadline)

		*clock = deadline.Add(time.Minute)
		z, err := s.UpdateZone("temp_block", models.ZonePatch{ClearExpiresAt: true})
		if err != nil {
			t.Fatalf("UpdateZone failed: %v", err)
		}
		if z.ExpiresAt != nil || !z.Active {
			t.Errorf("Expected cleared deadline and revived zone, got: %+v", z)
		}
	})

	t.Run("Patch With Past Deadline Stays Expired", func(t *testing.T) {
		s, clock := newTestStore(base)
		seedFloor(t, s, "floor_1", 1)
		seedZone(t, s, "temp_block", "floor_1", models.ZoneTypeBlocked, true, &deadline)

		*clock = deadline.Add(time.Hour)
		stillPast := deadline.Add(30 * time.Minute)
		z, err := s.UpdateZone("temp_block", models.ZonePatch{ExpiresAt: &stillPast})
		if err != nil {
			t.Fatalf("UpdateZone failed: %v", err)
		}
		if z.Active {
			t.Error("A deadline that is still in the past must not revive the zone")
		}
	})
}

func TestUpdateZone(t *testing.T) {
	s := NewMapStore()
	seedFloor(t, s, "floor_1", 1)
	seedZone(t, s, "spill_zone", "floor_1", models.ZoneTypeBlocked, true, nil)

	t.Run("Polygon Revalidated", func(t *testing.T) {
		bad := []models.Coordinate{{X: 0, Y: 0}}
		_, err := s.UpdateZone("spill_zone", models.ZonePatch{Polygon: &bad})
		if !IsInvalidGeometry(err) {
			t.Errorf("Expected invalid geometry error, got: %v", err)
		}
		z, _ := s.GetZone("spill_zone")
		if len(z.Polygon) != 4 {
			t.Errorf("Rejected patch must not change the polygon, got: %v", z.Polygon)
		}
	})

	t.Run("Explicit Active Wins", func(t *testing.T) {
		inactive := false
		z, err := s.UpdateZone("spill_zone", models.ZonePatch{Active: &inactive})
		if err != nil {
			t.Fatalf("UpdateZone failed: %v", err)
		}
		if z.Active {
			t.Error("Expected explicit active=false to be applied")
		}
	})

	t.Run("Not Found", func(t *testing.T) {
		_, err := s.UpdateZone("ghost", models.ZonePatch{})
		if !IsNotFound(err) {
			t.Errorf("Expected not found error, got: %v", err)
		}
	})
}

func TestDeleteZone(t *testing.T) {
	s := NewMapStore()
	seedFloor(t, s, "floor_1", 1)
	seedZone(t, s, "spill_zone", "floor_1", models.ZoneTypeBlocked, true, nil)

	if err := s.DeleteZone("spill_zone"); err != nil {
		t.Fatalf("DeleteZone failed: %v", err)
	}
	if _, err := s.GetZone("spill_zone"); !IsNotFound(err) {
		t.Errorf("Expected deleted zone to be gone, got: %v", err)
	}
	if err := s.DeleteZone("spill_zone"); !IsNotFound(err) {
		t.Errorf("Expected not found on second delete, got: %v", err)
	}
}

func TestListZonesFilters(t *testing.T) {
	s := NewMapStore()
	seedFloor(t, s, "floor_1", 1)
	seedFloor(t, s, "floor_2", 2)
	seedZone(t, s, "blocked_a", "floor_1", models.ZoneTypeBlocked, true, nil)
	seedZone(t, s, "slow_a", "floor_1", models.ZoneTypeSlow, true, nil)
	seedZone(t, s, "blocked_off", "floor_1", models.ZoneTypeBlocked, false, nil)
	seedZone(t, s, "blocked_b", "floor_2", models.ZoneTypeBlocked, true, nil)

	t.Run("By Type", func(t *testing.T) {
		zones, err := s.ListZones("", false, models.ZoneTypeSlow)
		if err != nil {
			t.Fatalf("ListZones failed: %v", err)
		}
		if len(zones) != 1 || zones[0].ID != "slow_a" {
			t.Errorf("Expected only slow_a, got: %+v", zones)
		}
	})

	t.Run("Blocked Zones Per Floor", func(t *testing.T) {
		zones, err := s.ListBlockedZones("floor_1")
		if err != nil {
			t.Fatalf("ListBlockedZones failed: %v", err)
		}
		if len(zones) != 1 || zones[0].ID != "blocked_a" {
			t.Errorf("Expected only the active blocked zone on floor_1, got: %+v", zones)
		}
	})

	t.Run("Unknown Floor Filter Is An Error", func(t *testing.T) {
		if _, err := s.ListZones("floor_99", false, ""); !IsUnknownFloor(err) {
			t.Errorf("Expected unknown floor error, got: %v", err)
		}
	})
}
