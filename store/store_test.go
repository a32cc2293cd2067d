package store

import (
	"testing"
	"time"

	"wayfindr-map/models"
)

// newTestStore builds a store with a controllable clock. Tests advance the
// clock by reassigning *clock.
func newTestStore(start time.Time) (*MapStore, *time.Time) {
	clock := start
	s := NewMapStoreWithClock(func() time.Time { return clock })
	return s, &clock
}

func seedFloor(t *testing.T, s *MapStore, id string, level int) {
	t.Helper()
	_, err := s.CreateFloor(models.Floor{ID: id, Name: id, Level: level, Width: 500, Height: 300})
	if err != nil {
		t.Fatalf("Failed to seed floor %s: %v", id, err)
	}
}

func seedWaypoint(t *testing.T, s *MapStore, id, floorID string, connections ...string) {
	t.Helper()
	_, err := s.CreateWaypoint(models.Waypoint{
		ID:          id,
		Name:        id,
		FloorID:     floorID,
		Position:    models.Coordinate{X: 10, Y: 10},
		Type:        models.WaypointTypeDestination,
		Accessible:  true,
		Connections: connections,
	})
	if err != nil {
		t.Fatalf("Failed to seed waypoint %s: %v", id, err)
	}
}

func TestCreateFloor(t *testing.T) {
	s := NewMapStore()

	t.Run("Create And Get", func(t *testing.T) {
		created, err := s.CreateFloor(models.Floor{ID: "floor_1", Name: "Ground Floor", Level: 1, Width: 500, Height: 300})
		if err != nil {
			t.Fatalf("CreateFloor failed: %v", err)
		}
		if created.Waypoints == nil || created.Zones == nil {
			t.Error("Expected created floor to have initialized entity maps")
		}

		got, err := s.GetFloor("floor_1")
		if err != nil {
			t.Fatalf("GetFloor failed: %v", err)
		}
		if got.Name != "Ground Floor" || got.Level != 1 {
			t.Errorf("Unexpected floor returned: %+v", got)
		}
	})

	t.Run("Duplicate ID Rejected", func(t *testing.T) {
		_, err := s.CreateFloor(models.Floor{ID: "floor_1", Name: "Again"})
		if !IsDuplicateID(err) {
			t.Errorf("Expected duplicate id error, got: %v", err)
		}
	})

	t.Run("Unknown Floor On Get", func(t *testing.T) {
		_, err := s.GetFloor("floor_99")
		if !IsUnknownFloor(err) {
			t.Errorf("Expected unknown floor error, got: %v", err)
		}
	})
}

func TestListFloorsOrderedByLevel(t *testing.T) {
	s := NewMapStore()
	seedFloor(t, s, "floor_3", 3)
	seedFloor(t, s, "floor_1", 1)
	seedFloor(t, s, "floor_2", 2)

	summaries := s.ListFloors()
	if len(summaries) != 3 {
		t.Fatalf("Expected 3 floors, got %d", len(summaries))
	}
	for i, want := range []string{"floor_1", "floor_2", "floor_3"} {
		if summaries[i].ID != want {
			t.Errorf("Position %d: expected %s, got %s", i, want, summaries[i].ID)
		}
	}
}

func TestDeleteFloorCascades(t *testing.T) {
	s := NewMapStore()
	seedFloor(t, s, "floor_1", 1)
	seedFloor(t, s, "floor_2", 2)
	seedWaypoint(t, s, "elevator_1", "floor_1")
	seedWaypoint(t, s, "elevator_2", "floor_2", "elevator_1")

	if err := s.DeleteFloor("floor_1"); err != nil {
		t.Fatalf("DeleteFloor failed: %v", err)
	}

	if _, err := s.GetFloor("floor_1"); !IsUnknownFloor(err) {
		t.Errorf("Expected deleted floor to be gone, got: %v", err)
	}
	if _, err := s.GetWaypoint("elevator_1"); !IsNotFound(err) {
		t.Errorf("Expected cascaded waypoint to be gone, got: %v", err)
	}

	// The surviving waypoint on the other floor must not reference the
	// deleted one anymore.
	wp, err := s.GetWaypoint("elevator_2")
	if err != nil {
		t.Fatalf("GetWaypoint failed: %v", err)
	}
	if len(wp.Connections) != 0 {
		t.Errorf("Expected connections scrubbed, got: %v", wp.Connections)
	}
}

func TestDeleteUnknownFloor(t *testing.T) {
	s := NewMapStore()
	if err := s.DeleteFloor("floor_1"); !IsUnknownFloor(err) {
		t.Errorf("Expected unknown floor error, got: %v", err)
	}
}

func TestReturnedEntitiesAreCopies(t *testing.T) {
	s := NewMapStore()
	seedFloor(t, s, "floor_1", 1)
	seedWaypoint(t, s, "lobby", "floor_1")

	got, err := s.GetWaypoint("lobby")
	if err != nil {
		t.Fatalf("GetWaypoint failed: %v", err)
	}
	got.Name = "mutated"
	got.Connections = append(got.Connections, "ghost")

	again, _ := s.GetWaypoint("lobby")
	if again.Name != "lobby" || len(again.Connections) != 0 {
		t.Error("Mutating a returned waypoint leaked into the store")
	}
}
