package models

import (
	"fmt"

	"github.com/google/uuid"
)

// ===================================================================
// WAYPOINT TYPES
// ===================================================================

// WaypointType classifies what a waypoint is used for.
type WaypointType string

const (
	WaypointTypeDestination WaypointType = "destination" // places visitors can go
	WaypointTypeCharging    WaypointType = "charging"    // charging stations
	WaypointTypeElevator    WaypointType = "elevator"    // floor transitions
	WaypointTypeStairs      WaypointType = "stairs"      // floor transitions on foot
	WaypointTypeEntrance    WaypointType = "entrance"    // building entrances
	WaypointTypeJunction    WaypointType = "junction"    // plain navigation nodes
)

// AllWaypointTypes returns every valid waypoint type.
func AllWaypointTypes() []WaypointType {
	return []WaypointType{
		WaypointTypeDestination, WaypointTypeCharging, WaypointTypeElevator,
		WaypointTypeStairs, WaypointTypeEntrance, WaypointTypeJunction,
	}
}

var validWaypointTypes = func() map[WaypointType]struct{} {
	m := make(map[WaypointType]struct{}, len(AllWaypointTypes()))
	for _, t := range AllWaypointTypes() {
		m[t] = struct{}{}
	}
	return m
}()

// IsValidWaypointType checks whether the given string is a known waypoint type.
func IsValidWaypointType(s string) bool {
	_, ok := validWaypointTypes[WaypointType(s)]
	return ok
}

// ===================================================================
// ZONE TYPES
// ===================================================================

// ZoneType describes the navigation policy a zone carries.
type ZoneType string

const (
	ZoneTypeBlocked    ZoneType = "blocked"    // no-go (construction, danger)
	ZoneTypePriority   ZoneType = "priority"   // preferred paths for routing
	ZoneTypeSlow       ZoneType = "slow"       // robots should slow down
	ZoneTypeRestricted ZoneType = "restricted" // authorized access only
)

// AllZoneTypes returns every valid zone type.
func AllZoneTypes() []ZoneType {
	return []ZoneType{ZoneTypeBlocked, ZoneTypePriority, ZoneTypeSlow, ZoneTypeRestricted}
}

var validZoneTypes = func() map[ZoneType]struct{} {
	m := make(map[ZoneType]struct{}, len(AllZoneTypes()))
	for _, t := range AllZoneTypes() {
		m[t] = struct{}{}
	}
	return m
}()

// IsValidZoneType checks whether the given string is a known zone type.
func IsValidZoneType(s string) bool {
	_, ok := validZoneTypes[ZoneType(s)]
	return ok
}

// GenerateID builds a zone id of the form <type>_<uuid8>, e.g.
// blocked_3f2a91bc.
func (t ZoneType) GenerateID() string {
	return fmt.Sprintf("%s_%s", t, uuid.New().String()[:8])
}

// ===================================================================
// ZONE LIFECYCLE STATES
// ===================================================================

// ZoneState is the effective lifecycle state of a zone at read time.
type ZoneState string

const (
	ZoneStateActive   ZoneState = "active"
	ZoneStateInactive ZoneState = "inactive"
	ZoneStateExpired  ZoneState = "expired"
)
