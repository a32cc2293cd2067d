package services

import (
	"log/slog"
	"time"

	"wayfindr-map/models"
	"wayfindr-map/persistence"
	"wayfindr-map/store"
)

// Notifier publishes map-update events so robots can re-poll early. Best
// effort: a lost notification only delays the robot until its next poll.
type Notifier interface {
	PublishMapUpdate(event models.MapUpdateEvent)
}

// PresenceTracker records which robots are polling navigation state.
type PresenceTracker interface {
	Touch(robotID, floorID string) error
	ListOnline() ([]models.RobotPresence, error)
}

// AuditRecorder appends mutation outcomes to a durable trail.
type AuditRecorder interface {
	Record(operation, resource, resourceID, floorID string, succeeded bool, detail string)
}

// MapService orchestrates the map store with its collaborators: every
// successful mutation is mirrored to the persistence gateway, published to
// listening robots, and recorded in the audit trail. The notifier, presence
// tracker, and audit recorder are optional; nil disables them.
type MapService struct {
	store    *store.MapStore
	gateway  *persistence.Gateway
	notifier Notifier
	presence PresenceTracker
	audit    AuditRecorder
	logger   *slog.Logger
}

// NewMapService wires a map service. gateway is required; notifier, presence,
// and audit may be nil.
func NewMapService(st *store.MapStore, gateway *persistence.Gateway, notifier Notifier, presence PresenceTracker, audit AuditRecorder, logger *slog.Logger) *MapService {
	return &MapService{
		store:    st,
		gateway:  gateway,
		notifier: notifier,
		presence: presence,
		audit:    audit,
		logger:   logger.With("component", "map_service"),
	}
}

// Store exposes the underlying entity store for read-only collaborators.
func (ms *MapService) Store() *store.MapStore {
	return ms.store
}

// ===================================================================
// MUTATION PLUMBING
// ===================================================================

// finishMutation runs the post-mutation pipeline: audit, notify, mirror.
// The returned error is nil or a PersistenceError; the in-memory mutation is
// already applied either way and is never rolled back — the live store is
// the authority, persistence lag is tolerated but flagged to the caller.
func (ms *MapService) finishMutation(operation, resource, resourceID, floorID, eventType, reason string) error {
	ms.recordAudit(operation, resource, resourceID, floorID, true, "")
	ms.publish(eventType, floorID, resourceID, reason)
	return ms.mirror(operation)
}

func (ms *MapService) mirror(operation string) error {
	if err := ms.gateway.Save(ms.store.Export()); err != nil {
		ms.logger.Error("Map state not mirrored to disk; in-memory state remains authoritative",
			"operation", operation, slog.Any("error", err))
		return err
	}
	return nil
}

func (ms *MapService) publish(eventType, floorID, entityID, reason string) {
	if ms.notifier == nil || eventType == "" {
		return
	}
	ms.notifier.PublishMapUpdate(models.MapUpdateEvent{
		Type:      eventType,
		FloorID:   floorID,
		EntityID:  entityID,
		Reason:    reason,
		Timestamp: time.Now(),
	})
}

func (ms *MapService) recordAudit(operation, resource, resourceID, floorID string, succeeded bool, detail string) {
	if ms.audit != nil {
		ms.audit.Record(operation, resource, resourceID, floorID, succeeded, detail)
	}
}

// syncExpired mirrors lazy-expiration corrections made on a read path. Best
// effort: a read never fails because the mirror lagged.
func (ms *MapService) syncExpired() {
	corrected := ms.store.ResolveExpired()
	if len(corrected) == 0 {
		return
	}
	for _, zoneID := range corrected {
		ms.logger.Info("Zone expired", "zone_id", zoneID)
		ms.publish(models.EventZoneExpired, "", zoneID, "expiry deadline passed")
	}
	if err := ms.mirror("expire_zones"); err != nil {
		ms.logger.Warn("Expired-zone correction not mirrored yet", slog.Any("error", err))
	}
}

// ===================================================================
// FLOOR OPERATIONS
// ===================================================================

func (ms *MapService) CreateFloor(floor models.Floor) (*models.Floor, error) {
	created, err := ms.store.CreateFloor(floor)
	if err != nil {
		ms.recordAudit("create", "floor", floor.ID, floor.ID, false, err.Error())
		return nil, err
	}
	return created, ms.finishMutation("create", "floor", created.ID, created.ID, models.EventFloorCreated, "")
}

func (ms *MapService) GetFloor(floorID string) (*models.Floor, error) {
	ms.syncExpired()
	return ms.store.GetFloor(floorID)
}

func (ms *MapService) ListFloors() []models.FloorSummary {
	return ms.store.ListFloors()
}

func (ms *MapService) DeleteFloor(floorID string) error {
	if err := ms.store.DeleteFloor(floorID); err != nil {
		ms.recordAudit("delete", "floor", floorID, floorID, false, err.Error())
		return err
	}
	return ms.finishMutation("delete", "floor", floorID, floorID, models.EventFloorDeleted, "")
}

// ===================================================================
// WAYPOINT OPERATIONS
// ===================================================================

func (ms *MapService) CreateWaypoint(wp models.Waypoint) (*models.Waypoint, error) {
	created, err := ms.store.CreateWaypoint(wp)
	if err != nil {
		ms.recordAudit("create", "waypoint", wp.ID, wp.FloorID, false, err.Error())
		return nil, err
	}
	return created, ms.finishMutation("create", "waypoint", created.ID, created.FloorID, models.EventWaypointCreated, "")
}

func (ms *MapService) GetWaypoint(waypointID string) (*models.Waypoint, error) {
	return ms.store.GetWaypoint(waypointID)
}

func (ms *MapService) ListWaypoints(floorID string, accessibleOnly bool) ([]models.Waypoint, error) {
	return ms.store.ListWaypoints(floorID, accessibleOnly)
}

func (ms *MapService) UpdateWaypoint(waypointID string, patch models.WaypointPatch) (*models.Waypoint, error) {
	updated, err := ms.store.UpdateWaypoint(waypointID, patch)
	if err != nil {
		ms.recordAudit("update", "waypoint", waypointID, "", false, err.Error())
		return nil, err
	}
	return updated, ms.finishMutation("update", "waypoint", updated.ID, updated.FloorID, models.EventWaypointUpdated, "")
}

func (ms *MapService) DeleteWaypoint(waypointID string) error {
	if err := ms.store.DeleteWaypoint(waypointID); err != nil {
		ms.recordAudit("delete", "waypoint", waypointID, "", false, err.Error())
		return err
	}
	return ms.finishMutation("delete", "waypoint", waypointID, "", models.EventWaypointDeleted, "")
}

// SetWaypointAccessible blocks or unblocks a waypoint. The reason is carried
// into the log, the audit trail, and the update event so operators can see
// why a node disappeared from robots' accessible sets.
func (ms *MapService) SetWaypointAccessible(waypointID string, accessible bool, reason string) (*models.Waypoint, error) {
	updated, err := ms.store.SetAccessible(waypointID, accessible)
	if err != nil {
		ms.recordAudit("set_accessible", "waypoint", waypointID, "", false, err.Error())
		return nil, err
	}

	eventType := models.EventWaypointBlocked
	if accessible {
		eventType = models.EventWaypointUnblocked
	}
	ms.logger.Info("Waypoint accessibility changed",
		"waypoint_id", waypointID, "accessible", accessible, "reason", reason)
	ms.recordAudit("set_accessible", "waypoint", waypointID, updated.FloorID, true, reason)
	ms.publish(eventType, updated.FloorID, waypointID, reason)
	return updated, ms.mirror("set_accessible")
}

// ===================================================================
// ZONE OPERATIONS
// ===================================================================

func (ms *MapService) CreateZone(zone models.Zone) (*models.Zone, error) {
	created, err := ms.store.CreateZone(zone)
	if err != nil {
		ms.recordAudit("create", "zone", zone.ID, zone.FloorID, false, err.Error())
		return nil, err
	}
	return created, ms.finishMutation("create", "zone", created.ID, created.FloorID, models.EventZoneCreated, created.Reason)
}

// CreateBlockedZone is the operator shortcut: a blocked zone with a
// generated id, active immediately.
func (ms *MapService) CreateBlockedZone(name, floorID string, polygon []models.Coordinate, reason string, expiresAt *time.Time) (*models.Zone, error) {
	created, err := ms.store.CreateBlockedZone(name, floorID, polygon, reason, expiresAt)
	if err != nil {
		ms.recordAudit("create", "zone", "", floorID, false, err.Error())
		return nil, err
	}
	ms.logger.Info("Blocked zone created", "zone_id", created.ID, "floor_id", floorID, "reason", reason)
	return created, ms.finishMutation("create", "zone", created.ID, created.FloorID, models.EventZoneCreated, reason)
}

func (ms *MapService) GetZone(zoneID string) (*models.Zone, error) {
	ms.syncExpired()
	return ms.store.GetZone(zoneID)
}

func (ms *MapService) ListZones(floorID string, activeOnly bool, zoneType models.ZoneType) ([]models.Zone, error) {
	ms.syncExpired()
	return ms.store.ListZones(floorID, activeOnly, zoneType)
}

func (ms *MapService) ListBlockedZones(floorID string) ([]models.Zone, error) {
	ms.syncExpired()
	return ms.store.ListBlockedZones(floorID)
}

func (ms *MapService) UpdateZone(zoneID string, patch models.ZonePatch) (*models.Zone, error) {
	updated, err := ms.store.UpdateZone(zoneID, patch)
	if err != nil {
		ms.recordAudit("update", "zone", zoneID, "", false, err.Error())
		return nil, err
	}
	return updated, ms.finishMutation("update", "zone", updated.ID, updated.FloorID, models.EventZoneUpdated, updated.Reason)
}

func (ms *MapService) DeleteZone(zoneID string) error {
	if err := ms.store.DeleteZone(zoneID); err != nil {
		ms.recordAudit("delete", "zone", zoneID, "", false, err.Error())
		return err
	}
	return ms.finishMutation("delete", "zone", zoneID, "", models.EventZoneDeleted, "")
}

func (ms *MapService) SetZoneActive(zoneID string, active bool) (*models.Zone, error) {
	updated, err := ms.store.SetZoneActive(zoneID, active)
	if err != nil {
		ms.recordAudit("set_active", "zone", zoneID, "", false, err.Error())
		if store.IsZoneExpired(err) {
			// The refused toggle still corrected the stored flag; keep the
			// mirror in step with it.
			if mirrorErr := ms.mirror("set_active"); mirrorErr != nil {
				ms.logger.Warn("Expired-zone correction not mirrored yet", slog.Any("error", mirrorErr))
			}
		}
		return nil, err
	}

	eventType := models.EventZoneDeactivated
	if active {
		eventType = models.EventZoneActivated
	}
	ms.recordAudit("set_active", "zone", zoneID, updated.FloorID, true, "")
	ms.publish(eventType, updated.FloorID, zoneID, updated.Reason)
	return updated, ms.mirror("set_active")
}

// ===================================================================
// NAVIGATION STATE
// ===================================================================

// GetNavigationSnapshot compiles the per-robot, per-floor navigation state
// and records the robot's presence. The snapshot itself is never cached.
func (ms *MapService) GetNavigationSnapshot(robotID, floorID string) (*models.NavigationSnapshot, error) {
	ms.syncExpired()

	snapshot, err := ms.store.CompileSnapshot(robotID, floorID)
	if err != nil {
		return nil, err
	}

	if ms.presence != nil {
		if err := ms.presence.Touch(robotID, snapshot.FloorID); err != nil {
			ms.logger.Warn("Robot presence not recorded", "robot_id", robotID, slog.Any("error", err))
		}
	}
	return snapshot, nil
}

// ListOnlineRobots returns robots seen polling within the presence window.
// Without a presence tracker the list is empty.
func (ms *MapService) ListOnlineRobots() ([]models.RobotPresence, error) {
	if ms.presence == nil {
		return []models.RobotPresence{}, nil
	}
	return ms.presence.ListOnline()
}

// IsPointInBlockedZone reports whether a point sits inside any active
// blocked zone on the floor.
func (ms *MapService) IsPointInBlockedZone(x, y float64, floorID string) (bool, error) {
	ms.syncExpired()
	return ms.store.IsPointInBlockedZone(x, y, floorID)
}

// AccessibleWaypointIDs is the geometry-aware accessible set: flagged
// accessible and outside every active blocked zone.
func (ms *MapService) AccessibleWaypointIDs(floorID string) ([]string, error) {
	ms.syncExpired()
	return ms.store.AccessibleWaypointIDs(floorID)
}

// ExportDocument returns the full current map document.
func (ms *MapService) ExportDocument() *models.MapDocument {
	ms.syncExpired()
	return ms.store.Export()
}
