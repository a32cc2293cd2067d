package models

import "time"

// ===================================================================
// API REQUEST PAYLOADS
// ===================================================================

// CreateFloorRequest is the payload for registering a floor.
type CreateFloorRequest struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Level  int     `json:"level"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// CreateWaypointRequest is the payload for registering a waypoint.
// Accessible defaults to true when omitted.
type CreateWaypointRequest struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	FloorID     string     `json:"floor_id"`
	Position    Coordinate `json:"position"`
	Type        string     `json:"type"`
	Description string     `json:"description"`
	Accessible  *bool      `json:"accessible"`
	Connections []string   `json:"connections"`
}

// CreateZoneRequest is the payload for registering a zone. An omitted id is
// generated; Active defaults to true when omitted.
type CreateZoneRequest struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	FloorID   string       `json:"floor_id"`
	ZoneType  string       `json:"zone_type"`
	Polygon   []Coordinate `json:"polygon"`
	Active    *bool        `json:"active"`
	Reason    string       `json:"reason"`
	ExpiresAt *time.Time   `json:"expires_at"`
}

// CreateBlockedZoneRequest is the payload for the blocked-zone shortcut.
type CreateBlockedZoneRequest struct {
	Name      string       `json:"name"`
	FloorID   string       `json:"floor_id"`
	Polygon   []Coordinate `json:"polygon"`
	Reason    string       `json:"reason"`
	ExpiresAt *time.Time   `json:"expires_at"`
}

// BlockWaypointRequest carries the operator's reason for a block/unblock.
type BlockWaypointRequest struct {
	Reason string `json:"reason"`
}
