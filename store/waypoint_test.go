package store

import (
	"testing"

	"wayfindr-map/models"
)

func TestCreateWaypoint(t *testing.T) {
	s := NewMapStore()
	seedFloor(t, s, "floor_1", 1)
	seedFloor(t, s, "floor_2", 2)

	t.Run("Defaults Applied", func(t *testing.T) {
		wp, err := s.CreateWaypoint(models.Waypoint{
			ID:         "lobby",
			Name:       "Main Lobby",
			FloorID:    "floor_1",
			Position:   models.Coordinate{X: 100, Y: 200},
			Accessible: true,
		})
		if err != nil {
			t.Fatalf("CreateWaypoint failed: %v", err)
		}
		if wp.Type != models.WaypointTypeDestination {
			t.Errorf("Expected default type destination, got %s", wp.Type)
		}
		if wp.Connections == nil {
			t.Error("Expected connections initialized to empty slice")
		}
	})

	t.Run("Unknown Floor Rejected", func(t *testing.T) {
		_, err := s.CreateWaypoint(models.Waypoint{ID: "orphan", FloorID: "floor_99"})
		if !IsUnknownFloor(err) {
			t.Errorf("Expected unknown floor error, got: %v", err)
		}
	})

	t.Run("Duplicate ID Rejected Across Floors", func(t *testing.T) {
		// Waypoint ids are building-wide, so a second floor cannot reuse one.
		_, err := s.CreateWaypoint(models.Waypoint{ID: "lobby", FloorID: "floor_2"})
		if !IsDuplicateID(err) {
			t.Errorf("Expected duplicate id error, got: %v", err)
		}
	})

	t.Run("Dangling Connection Rejected", func(t *testing.T) {
		_, err := s.CreateWaypoint(models.Waypoint{
			ID:          "hallway_a",
			FloorID:     "floor_1",
			Connections: []string{"lobby", "ghost"},
		})
		if !IsDanglingConnection(err) {
			t.Errorf("Expected dangling connection error, got: %v", err)
		}
		// The rejected waypoint must not have been registered.
		if _, err := s.GetWaypoint("hallway_a"); !IsNotFound(err) {
			t.Errorf("Expected rejected waypoint to be absent, got: %v", err)
		}
	})

	t.Run("Cross Floor Connection Allowed", func(t *testing.T) {
		_, err := s.CreateWaypoint(models.Waypoint{
			ID:          "elevator_2f",
			FloorID:     "floor_2",
			Connections: []string{"lobby"},
		})
		if err != nil {
			t.Errorf("Expected cross-floor connection to be accepted, got: %v", err)
		}
	})
}

func TestUpdateWaypoint(t *testing.T) {
	s := NewMapStore()
	seedFloor(t, s, "floor_1", 1)
	seedWaypoint(t, s, "lobby", "floor_1")
	seedWaypoint(t, s, "hallway_a", "floor_1", "lobby")

	t.Run("Partial Update", func(t *testing.T) {
		name := "Hallway A"
		pos := models.Coordinate{X: 30, Y: 40}
		wp, err := s.UpdateWaypoint("hallway_a", models.WaypointPatch{Name: &name, Position: &pos})
		if err != nil {
			t.Fatalf("UpdateWaypoint failed: %v", err)
		}
		if wp.Name != "Hallway A" || wp.Position.X != 30 {
			t.Errorf("Patch not applied: %+v", wp)
		}
		// Untouched fields survive.
		if len(wp.Connections) != 1 || wp.Connections[0] != "lobby" {
			t.Errorf("Connections should be untouched, got: %v", wp.Connections)
		}
	})

	t.Run("Patched Connections Validated", func(t *testing.T) {
		conns := []string{"lobby", "ghost"}
		_, err := s.UpdateWaypoint("hallway_a", models.WaypointPatch{Connections: &conns})
		if !IsDanglingConnection(err) {
			t.Errorf("Expected dangling connection error, got: %v", err)
		}
		wp, _ := s.GetWaypoint("hallway_a")
		if len(wp.Connections) != 1 || wp.Connections[0] != "lobby" {
			t.Errorf("Rejected patch must not change connections, got: %v", wp.Connections)
		}
	})

	t.Run("Not Found", func(t *testing.T) {
		_, err := s.UpdateWaypoint("ghost", models.WaypointPatch{})
		if !IsNotFound(err) {
			t.Errorf("Expected not found error, got: %v", err)
		}
	})
}

func TestDeleteWaypointScrubsConnections(t *testing.T) {
	s := NewMapStore()
	seedFloor(t, s, "floor_1", 1)
	seedWaypoint(t, s, "lobby", "floor_1")
	seedWaypoint(t, s, "hallway_a", "floor_1", "lobby")
	seedWaypoint(t, s, "hallway_b", "floor_1", "lobby", "hallway_a")

	if err := s.DeleteWaypoint("lobby"); err != nil {
		t.Fatalf("DeleteWaypoint failed: %v", err)
	}

	for _, id := range []string{"hallway_a", "hallway_b"} {
		wp, err := s.GetWaypoint(id)
		if err != nil {
			t.Fatalf("GetWaypoint(%s) failed: %v", id, err)
		}
		if containsID(wp.Connections, "lobby") {
			t.Errorf("Waypoint %s still references deleted lobby: %v", id, wp.Connections)
		}
	}
	// Unrelated connections survive the scrub.
	wp, _ := s.GetWaypoint("hallway_b")
	if !containsID(wp.Connections, "hallway_a") {
		t.Errorf("Scrub removed an unrelated connection: %v", wp.Connections)
	}
}

func TestSetAccessible(t *testing.T) {
	s := NewMapStore()
	seedFloor(t, s, "floor_1", 1)
	seedWaypoint(t, s, "lobby", "floor_1")
	seedWaypoint(t, s, "hallway_a", "floor_1", "lobby")

	wp, err := s.SetAccessible("lobby", false)
	if err != nil {
		t.Fatalf("SetAccessible failed: %v", err)
	}
	if wp.Accessible {
		t.Error("Expected lobby to be blocked")
	}
	// Blocking keeps the node and its inbound connections intact.
	other, _ := s.GetWaypoint("hallway_a")
	if !containsID(other.Connections, "lobby") {
		t.Error("Blocking a waypoint must not touch connections")
	}

	if _, err := s.SetAccessible("ghost", false); !IsNotFound(err) {
		t.Errorf("Expected not found error, got: %v", err)
	}
}

func TestListWaypoints(t *testing.T) {
	s := NewMapStore()
	seedFloor(t, s, "floor_1", 1)
	seedFloor(t, s, "floor_2", 2)
	seedWaypoint(t, s, "lobby", "floor_1")
	seedWaypoint(t, s, "hallway_a", "floor_1")
	seedWaypoint(t, s, "office_201", "floor_2")
	if _, err := s.SetAccessible("hallway_a", false); err != nil {
		t.Fatalf("SetAccessible failed: %v", err)
	}

	t.Run("All Floors Sorted", func(t *testing.T) {
		wps, err := s.ListWaypoints("", false)
		if err != nil {
			t.Fatalf("ListWaypoints failed: %v", err)
		}
		if len(wps) != 3 {
			t.Fatalf("Expected 3 waypoints, got %d", len(wps))
		}
		if wps[0].ID != "hallway_a" || wps[2].ID != "office_201" {
			t.Errorf("Expected id-sorted output, got: %v", []string{wps[0].ID, wps[1].ID, wps[2].ID})
		}
	})

	t.Run("Floor Filter", func(t *testing.T) {
		wps, err := s.ListWaypoints("floor_2", false)
		if err != nil {
			t.Fatalf("ListWaypoints failed: %v", err)
		}
		if len(wps) != 1 || wps[0].ID != "office_201" {
			t.Errorf("Expected only office_201, got: %+v", wps)
		}
	})

	t.Run("Accessible Only", func(t *testing.T) {
		wps, err := s.ListWaypoints("floor_1", true)
		if err != nil {
			t.Fatalf("ListWaypoints failed: %v", err)
		}
		if len(wps) != 1 || wps[0].ID != "lobby" {
			t.Errorf("Expected only lobby, got: %+v", wps)
		}
	})

	t.Run("Unknown Floor Filter Is An Error", func(t *testing.T) {
		if _, err := s.ListWaypoints("floor_99", false); !IsUnknownFloor(err) {
			t.Errorf("Expected unknown floor error, got: %v", err)
		}
	})
}
