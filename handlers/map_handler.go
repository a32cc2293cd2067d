package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"wayfindr-map/models"
	"wayfindr-map/services"
	"wayfindr-map/utils"
)

// MapHandler handles all API requests for floors, waypoints, and zones.
type MapHandler struct {
	mapService *services.MapService
}

// NewMapHandler creates a new instance of MapHandler.
func NewMapHandler(mapService *services.MapService) *MapHandler {
	return &MapHandler{mapService: mapService}
}

// ===================================================================
// HEALTH CHECK
// ===================================================================

// HealthCheck provides a simple health status of the service.
func (h *MapHandler) HealthCheck(c echo.Context) error {
	data := map[string]interface{}{
		"service":   "wayfindr-map",
		"floors":    len(h.mapService.ListFloors()),
		"timestamp": utils.GetUnixTimestamp(),
	}
	return c.JSON(http.StatusOK, utils.SuccessResponse("Service is healthy", data))
}

// ===================================================================
// FLOOR ENDPOINTS
// ===================================================================

// ListFloors returns all floors in the building, ordered by level.
func (h *MapHandler) ListFloors(c echo.Context) error {
	floors := h.mapService.ListFloors()
	return c.JSON(http.StatusOK, utils.CreateListResponse(floors, len(floors)))
}

// GetFloor returns one floor with its nested waypoints and zones.
func (h *MapHandler) GetFloor(c echo.Context) error {
	floor, err := h.mapService.GetFloor(c.Param("floorId"))
	if err != nil {
		return HandleStoreError(c, err)
	}
	return c.JSON(http.StatusOK, utils.SuccessResponse("Floor retrieved successfully", floor))
}

// CreateFloor registers a new floor.
func (h *MapHandler) CreateFloor(c echo.Context) error {
	var req models.CreateFloorRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request body"))
	}
	if req.ID == "" || req.Name == "" {
		return c.JSON(http.StatusBadRequest, utils.ErrorResponse("id and name are required"))
	}

	floor, err := h.mapService.CreateFloor(models.Floor{
		ID:     req.ID,
		Name:   req.Name,
		Level:  req.Level,
		Width:  req.Width,
		Height: req.Height,
	})
	if err != nil {
		return HandleStoreError(c, err)
	}
	return c.JSON(http.StatusCreated, utils.SuccessResponse("Floor created successfully", floor))
}

// DeleteFloor removes a floor, cascading to its waypoints and zones.
func (h *MapHandler) DeleteFloor(c echo.Context) error {
	floorID := c.Param("floorId")
	if err := h.mapService.DeleteFloor(floorID); err != nil {
		return HandleStoreError(c, err)
	}
	return c.JSON(http.StatusOK, utils.SuccessResponse("Floor deleted successfully", nil))
}

// ===================================================================
// WAYPOINT ENDPOINTS
// ===================================================================

// ListWaypoints returns waypoints, filtered by ?floor_id and
// ?accessible_only (default false).
func (h *MapHandler) ListWaypoints(c echo.Context) error {
	floorID := c.QueryParam("floor_id")
	accessibleOnly := utils.GetBoolOrDefault(c.QueryParam("accessible_only"), false)

	waypoints, err := h.mapService.ListWaypoints(floorID, accessibleOnly)
	if err != nil {
		return HandleStoreError(c, err)
	}
	return c.JSON(http.StatusOK, utils.CreateListResponse(waypoints, len(waypoints)))
}

// GetWaypoint returns a single waypoint by id.
func (h *MapHandler) GetWaypoint(c echo.Context) error {
	wp, err := h.mapService.GetWaypoint(c.Param("waypointId"))
	if err != nil {
		return HandleStoreError(c, err)
	}
	return c.JSON(http.StatusOK, utils.SuccessResponse("Waypoint retrieved successfully", wp))
}

// CreateWaypoint registers a new waypoint. Connection targets must already
// exist; wire graphs in dependency order or patch connections in afterwards.
func (h *MapHandler) CreateWaypoint(c echo.Context) error {
	var req models.CreateWaypointRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request body"))
	}
	if req.ID == "" || req.Name == "" || req.FloorID == "" {
		return c.JSON(http.StatusBadRequest, utils.ErrorResponse("id, name and floor_id are required"))
	}
	if req.Type != "" && !models.IsValidWaypointType(req.Type) {
		return c.JSON(http.StatusBadRequest, utils.ErrorResponse("Unknown waypoint type: "+req.Type))
	}

	accessible := true
	if req.Accessible != nil {
		accessible = *req.Accessible
	}

	wp, err := h.mapService.CreateWaypoint(models.Waypoint{
		ID:          req.ID,
		Name:        req.Name,
		FloorID:     req.FloorID,
		Position:    req.Position,
		Type:        models.WaypointType(req.Type),
		Description: req.Description,
		Accessible:  accessible,
		Connections: req.Connections,
	})
	if err != nil {
		return HandleStoreError(c, err)
	}
	return c.JSON(http.StatusCreated, utils.SuccessResponse("Waypoint created successfully", wp))
}

// UpdateWaypoint applies a partial update to a waypoint.
func (h *MapHandler) UpdateWaypoint(c echo.Context) error {
	var patch models.WaypointPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request body"))
	}
	if patch.Type != nil && !models.IsValidWaypointType(string(*patch.Type)) {
		return c.JSON(http.StatusBadRequest, utils.ErrorResponse("Unknown waypoint type: "+string(*patch.Type)))
	}

	wp, err := h.mapService.UpdateWaypoint(c.Param("waypointId"), patch)
	if err != nil {
		return HandleStoreError(c, err)
	}
	return c.JSON(http.StatusOK, utils.SuccessResponse("Waypoint updated successfully", wp))
}

// DeleteWaypoint removes a waypoint and scrubs it from every connection set.
func (h *MapHandler) DeleteWaypoint(c echo.Context) error {
	if err := h.mapService.DeleteWaypoint(c.Param("waypointId")); err != nil {
		return HandleStoreError(c, err)
	}
	return c.JSON(http.StatusOK, utils.SuccessResponse("Waypoint deleted successfully", nil))
}

// BlockWaypoint makes a waypoint inaccessible without deleting it.
func (h *MapHandler) BlockWaypoint(c echo.Context) error {
	return h.setWaypointAccessible(c, false)
}

// UnblockWaypoint makes a waypoint accessible again.
func (h *MapHandler) UnblockWaypoint(c echo.Context) error {
	return h.setWaypointAccessible(c, true)
}

func (h *MapHandler) setWaypointAccessible(c echo.Context, accessible bool) error {
	var req models.BlockWaypointRequest
	// The body is optional; an empty reason is fine.
	_ = c.Bind(&req)
	if req.Reason == "" && !accessible {
		req.Reason = "Blocked by operator"
	}

	wp, err := h.mapService.SetWaypointAccessible(c.Param("waypointId"), accessible, req.Reason)
	if err != nil {
		return HandleStoreError(c, err)
	}

	message := "Waypoint blocked successfully"
	if accessible {
		message = "Waypoint unblocked successfully"
	}
	return c.JSON(http.StatusOK, utils.SuccessResponse(message, wp))
}

// ===================================================================
// ZONE ENDPOINTS
// ===================================================================

// ListZones returns zones, filtered by ?floor_id, ?active_only (default
// false) and ?zone_type. active_only consults the lifecycle rules: expired
// zones never appear regardless of their stored flag.
func (h *MapHandler) ListZones(c echo.Context) error {
	floorID := c.QueryParam("floor_id")
	activeOnly := utils.GetBoolOrDefault(c.QueryParam("active_only"), false)
	zoneType := c.QueryParam("zone_type")
	if zoneType != "" && !models.IsValidZoneType(zoneType) {
		return c.JSON(http.StatusBadRequest, utils.ErrorResponse("Unknown zone type: "+zoneType))
	}

	zones, err := h.mapService.ListZones(floorID, activeOnly, models.ZoneType(zoneType))
	if err != nil {
		return HandleStoreError(c, err)
	}
	return c.JSON(http.StatusOK, utils.CreateListResponse(zones, len(zones)))
}

// ListBlockedZones returns the active blocked zones robots must route around.
func (h *MapHandler) ListBlockedZones(c echo.Context) error {
	zones, err := h.mapService.ListBlockedZones(c.QueryParam("floor_id"))
	if err != nil {
		return HandleStoreError(c, err)
	}
	return c.JSON(http.StatusOK, utils.CreateListResponse(zones, len(zones)))
}

// GetZone returns a single zone by id, with expiration already resolved.
func (h *MapHandler) GetZone(c echo.Context) error {
	zone, err := h.mapService.GetZone(c.Param("zoneId"))
	if err != nil {
		return HandleStoreError(c, err)
	}
	return c.JSON(http.StatusOK, utils.SuccessResponse("Zone retrieved successfully", zone))
}

// CreateZone registers a new zone.
func (h *MapHandler) CreateZone(c echo.Context) error {
	var req models.CreateZoneRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request body"))
	}
	if req.Name == "" || req.FloorID == "" {
		return c.JSON(http.StatusBadRequest, utils.ErrorResponse("name and floor_id are required"))
	}
	if !models.IsValidZoneType(req.ZoneType) {
		return c.JSON(http.StatusBadRequest, utils.ErrorResponse("Unknown zone type: "+req.ZoneType))
	}

	id := req.ID
	if id == "" {
		id = models.ZoneType(req.ZoneType).GenerateID()
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	zone, err := h.mapService.CreateZone(models.Zone{
		ID:        id,
		Name:      req.Name,
		FloorID:   req.FloorID,
		ZoneType:  models.ZoneType(req.ZoneType),
		Polygon:   req.Polygon,
		Active:    active,
		Reason:    req.Reason,
		ExpiresAt: req.ExpiresAt,
	})
	if err != nil {
		return HandleStoreError(c, err)
	}
	return c.JSON(http.StatusCreated, utils.SuccessResponse("Zone created successfully", zone))
}

// CreateBlockedZone is the shortcut for the common operator action.
func (h *MapHandler) CreateBlockedZone(c echo.Context) error {
	var req models.CreateBlockedZoneRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request body"))
	}
	if req.Name == "" || req.FloorID == "" {
		return c.JSON(http.StatusBadRequest, utils.ErrorResponse("name and floor_id are required"))
	}

	zone, err := h.mapService.CreateBlockedZone(req.Name, req.FloorID, req.Polygon, req.Reason, req.ExpiresAt)
	if err != nil {
		return HandleStoreError(c, err)
	}
	return c.JSON(http.StatusCreated, utils.SuccessResponse("Blocked zone created successfully", zone))
}

// UpdateZone applies a partial update to a zone. Clearing or resetting
// expires_at here is how an expired zone comes back.
func (h *MapHandler) UpdateZone(c echo.Context) error {
	var patch models.ZonePatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request body"))
	}
	if patch.ZoneType != nil && !models.IsValidZoneType(string(*patch.ZoneType)) {
		return c.JSON(http.StatusBadRequest, utils.ErrorResponse("Unknown zone type: "+string(*patch.ZoneType)))
	}

	zone, err := h.mapService.UpdateZone(c.Param("zoneId"), patch)
	if err != nil {
		return HandleStoreError(c, err)
	}
	return c.JSON(http.StatusOK, utils.SuccessResponse("Zone updated successfully", zone))
}

// DeleteZone removes a zone immediately and unconditionally.
func (h *MapHandler) DeleteZone(c echo.Context) error {
	if err := h.mapService.DeleteZone(c.Param("zoneId")); err != nil {
		return HandleStoreError(c, err)
	}
	return c.JSON(http.StatusOK, utils.SuccessResponse("Zone deleted successfully", nil))
}

// ActivateZone turns a zone on. Expired zones refuse with ZONE_EXPIRED.
func (h *MapHandler) ActivateZone(c echo.Context) error {
	return h.setZoneActive(c, true)
}

// DeactivateZone turns a zone off. Expired zones refuse with ZONE_EXPIRED.
func (h *MapHandler) DeactivateZone(c echo.Context) error {
	return h.setZoneActive(c, false)
}

func (h *MapHandler) setZoneActive(c echo.Context, active bool) error {
	zone, err := h.mapService.SetZoneActive(c.Param("zoneId"), active)
	if err != nil {
		return HandleStoreError(c, err)
	}

	message := "Zone deactivated successfully"
	if active {
		message = "Zone activated successfully"
	}
	return c.JSON(http.StatusOK, utils.SuccessResponse(message, zone))
}

// ===================================================================
// EXPORT
// ===================================================================

// ExportMap returns the full current map document.
func (h *MapHandler) ExportMap(c echo.Context) error {
	return c.JSON(http.StatusOK, h.mapService.ExportDocument())
}
