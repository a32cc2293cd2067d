package models

import "time"

// ===================================================================
// MAP ENTITIES
// ===================================================================

// Coordinate is a 2D point on a floor map, in map units.
type Coordinate struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Waypoint is a named, addressable navigation target or path node on a floor.
// Waypoint ids are unique across the whole building, not just the owning
// floor, so connections may reference waypoints on other floors (elevators,
// stairs).
type Waypoint struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	FloorID     string       `json:"floor_id"`
	Position    Coordinate   `json:"position"`
	Type        WaypointType `json:"type"`
	Description string       `json:"description,omitempty"`
	Accessible  bool         `json:"accessible"`
	Connections []string     `json:"connections"`
}

// Zone is a polygonal region on a floor carrying a navigation policy and a
// time-bounded lifecycle. The polygon must be a simple polygon with at least
// three vertices; containment behavior on self-intersecting input is
// undefined.
type Zone struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	FloorID   string       `json:"floor_id"`
	ZoneType  ZoneType     `json:"zone_type"`
	Polygon   []Coordinate `json:"polygon"`
	Active    bool         `json:"active"`
	Reason    string       `json:"reason,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	ExpiresAt *time.Time   `json:"expires_at,omitempty"`
}

// Floor is one floor of the building. It owns its waypoints and zones, keyed
// by id.
type Floor struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Level     int                  `json:"level"`
	Width     float64              `json:"width"`
	Height    float64              `json:"height"`
	Waypoints map[string]*Waypoint `json:"waypoints"`
	Zones     map[string]*Zone     `json:"zones"`
}

// FloorSummary is the listing view of a floor.
type FloorSummary struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Level         int    `json:"level"`
	WaypointCount int    `json:"waypoint_count"`
	ZoneCount     int    `json:"zone_count"`
}

// ===================================================================
// NAVIGATION SNAPSHOT
// ===================================================================

// SnapshotWaypoint is the waypoint view robots consume.
type SnapshotWaypoint struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Position    Coordinate   `json:"position"`
	Type        WaypointType `json:"type"`
	Connections []string     `json:"connections"`
}

// SnapshotZone is the blocked-zone view robots consume.
type SnapshotZone struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Polygon []Coordinate `json:"polygon"`
	Reason  string       `json:"reason,omitempty"`
}

// MapDimensions is the bounding box of a floor.
type MapDimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NavigationSnapshot is the derived, per-query view of which waypoints and
// zones currently constrain a robot's movement on a floor. It has no
// lifecycle of its own: recomputed on every query, never cached.
type NavigationSnapshot struct {
	RobotID             string             `json:"robot_id"`
	FloorID             string             `json:"floor_id"`
	FloorName           string             `json:"floor_name"`
	Timestamp           time.Time          `json:"timestamp"`
	AccessibleWaypoints []SnapshotWaypoint `json:"accessible_waypoints"`
	BlockedWaypointIDs  []string           `json:"blocked_waypoint_ids"`
	BlockedZones        []SnapshotZone     `json:"blocked_zones"`
	MapDimensions       MapDimensions      `json:"map_dimensions"`
}

// ===================================================================
// PERSISTED DOCUMENT
// ===================================================================

// MapDocument is the durable mirror of the whole store: every floor with its
// nested waypoints and zones, replaced atomically on each write.
type MapDocument struct {
	Floors      map[string]*Floor `json:"floors"`
	LastUpdated time.Time         `json:"last_updated"`
}
