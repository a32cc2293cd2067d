package store

import (
	"errors"
	"fmt"
)

// ===================================================================
// ERROR KINDS
// ===================================================================

// UnknownFloorError reports a reference to a floor that is not registered.
type UnknownFloorError struct {
	FloorID string
}

func (e *UnknownFloorError) Error() string {
	return fmt.Sprintf("floor '%s' not found", e.FloorID)
}

// DuplicateIDError reports an attempt to create an entity whose id is
// already taken.
type DuplicateIDError struct {
	Resource string
	ID       string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("%s with id '%s' already exists", e.Resource, e.ID)
}

// DanglingConnectionError reports a waypoint connection that references an
// unregistered waypoint id. Connections are validated at write time, never
// lazily.
type DanglingConnectionError struct {
	WaypointID string
	TargetID   string
}

func (e *DanglingConnectionError) Error() string {
	return fmt.Sprintf("waypoint '%s' references unknown waypoint '%s'", e.WaypointID, e.TargetID)
}

// NotFoundError reports a lookup of a waypoint or zone id that does not
// exist on any floor.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.Resource, e.ID)
}

// InvalidGeometryError reports a polygon that cannot serve the containment
// contract.
type InvalidGeometryError struct {
	ZoneID string
	Cause  error
}

func (e *InvalidGeometryError) Error() string {
	if e.ZoneID != "" {
		return fmt.Sprintf("invalid geometry for zone '%s': %v", e.ZoneID, e.Cause)
	}
	return fmt.Sprintf("invalid geometry: %v", e.Cause)
}

func (e *InvalidGeometryError) Unwrap() error {
	return e.Cause
}

// ZoneExpiredError reports a manual activate/deactivate against a zone whose
// expiry deadline has passed. The transition is refused, not silently
// ignored; reactivation goes through an update that clears or resets the
// deadline.
type ZoneExpiredError struct {
	ZoneID string
}

func (e *ZoneExpiredError) Error() string {
	return fmt.Sprintf("zone '%s' has expired and cannot be toggled", e.ZoneID)
}

// PersistenceError reports a failed durable mirror write. The in-memory
// mutation it follows is already applied and is not rolled back; callers
// needing strict durability should re-issue a read to verify.
type PersistenceError struct {
	Operation string
	Cause     error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist map state during %s: %v", e.Operation, e.Cause)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}

// ===================================================================
// ERROR PREDICATES
// ===================================================================

// IsUnknownFloor checks if err is an unknown floor error.
func IsUnknownFloor(err error) bool {
	var target *UnknownFloorError
	return errors.As(err, &target)
}

// IsDuplicateID checks if err is a duplicate id error.
func IsDuplicateID(err error) bool {
	var target *DuplicateIDError
	return errors.As(err, &target)
}

// IsDanglingConnection checks if err is a dangling connection error.
func IsDanglingConnection(err error) bool {
	var target *DanglingConnectionError
	return errors.As(err, &target)
}

// IsNotFound checks if err is a not found error.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsInvalidGeometry checks if err is an invalid geometry error.
func IsInvalidGeometry(err error) bool {
	var target *InvalidGeometryError
	return errors.As(err, &target)
}

// IsZoneExpired checks if err is a zone expired error.
func IsZoneExpired(err error) bool {
	var target *ZoneExpiredError
	return errors.As(err, &target)
}

// IsPersistenceFailure checks if err is a persistence failure.
func IsPersistenceFailure(err error) bool {
	var target *PersistenceError
	return errors.As(err, &target)
}

// ===================================================================
// API ERROR CODES
// ===================================================================

// ErrorCode returns the stable machine-readable code for an error kind,
// used in API responses.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case IsUnknownFloor(err):
		return "UNKNOWN_FLOOR"
	case IsDuplicateID(err):
		return "DUPLICATE_ID"
	case IsDanglingConnection(err):
		return "DANGLING_CONNECTION"
	case IsNotFound(err):
		return "NOT_FOUND"
	case IsInvalidGeometry(err):
		return "INVALID_GEOMETRY"
	case IsZoneExpired(err):
		return "ZONE_EXPIRED"
	case IsPersistenceFailure(err):
		return "PERSISTENCE_FAILURE"
	default:
		return "INTERNAL_ERROR"
	}
}
