package models

import "time"

// ===================================================================
// PARTIAL UPDATE PAYLOADS
// ===================================================================

// WaypointPatch carries a partial waypoint update. Nil fields are left
// untouched. FloorID is immutable after create and therefore absent here.
type WaypointPatch struct {
	Name        *string       `json:"name,omitempty"`
	Position    *Coordinate   `json:"position,omitempty"`
	Type        *WaypointType `json:"type,omitempty"`
	Description *string       `json:"description,omitempty"`
	Accessible  *bool         `json:"accessible,omitempty"`
	Connections *[]string     `json:"connections,omitempty"`
}

// ZonePatch carries a partial zone update. Nil fields are left untouched.
// ClearExpiresAt takes precedence over ExpiresAt; setting either also
// reactivates an expired zone, which is the only way back out of the expired
// state.
type ZonePatch struct {
	Name           *string       `json:"name,omitempty"`
	ZoneType       *ZoneType     `json:"zone_type,omitempty"`
	Polygon        *[]Coordinate `json:"polygon,omitempty"`
	Active         *bool         `json:"active,omitempty"`
	Reason         *string       `json:"reason,omitempty"`
	ExpiresAt      *time.Time    `json:"expires_at,omitempty"`
	ClearExpiresAt bool          `json:"clear_expires_at,omitempty"`
}
