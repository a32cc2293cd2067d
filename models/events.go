package models

import "time"

// ===================================================================
// MAP UPDATE EVENTS
// ===================================================================

// Map update event types published to robots after successful mutations.
const (
	EventFloorCreated      = "floor_created"
	EventFloorDeleted      = "floor_deleted"
	EventWaypointCreated   = "waypoint_created"
	EventWaypointUpdated   = "waypoint_updated"
	EventWaypointDeleted   = "waypoint_deleted"
	EventWaypointBlocked   = "waypoint_blocked"
	EventWaypointUnblocked = "waypoint_unblocked"
	EventZoneCreated       = "zone_created"
	EventZoneUpdated       = "zone_updated"
	EventZoneDeleted       = "zone_deleted"
	EventZoneActivated     = "zone_activated"
	EventZoneDeactivated   = "zone_deactivated"
	EventZoneExpired       = "zone_expired"
)

// MapUpdateEvent tells listening robots that the map changed and a re-poll of
// the navigation snapshot is worthwhile. It deliberately carries no map
// content: robots always fetch state through the snapshot endpoint.
type MapUpdateEvent struct {
	Type      string    `json:"type"`
	FloorID   string    `json:"floor_id,omitempty"`
	EntityID  string    `json:"entity_id,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// RobotPresence records a robot's last navigation-state poll.
type RobotPresence struct {
	RobotID  string    `json:"robot_id"`
	FloorID  string    `json:"floor_id"`
	LastSeen time.Time `json:"last_seen"`
}
