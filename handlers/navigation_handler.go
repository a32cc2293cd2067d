package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"wayfindr-map/services"
	"wayfindr-map/utils"
)

// NavigationHandler serves the per-robot navigation state robots poll every
// few seconds.
type NavigationHandler struct {
	mapService *services.MapService
}

// NewNavigationHandler creates a new instance of NavigationHandler.
func NewNavigationHandler(mapService *services.MapService) *NavigationHandler {
	return &NavigationHandler{mapService: mapService}
}

// GetMapState compiles the navigation snapshot for a robot. ?floor_id is
// optional and defaults to the lowest-level registered floor.
func (h *NavigationHandler) GetMapState(c echo.Context) error {
	robotID := c.Param("robotId")
	floorID := c.QueryParam("floor_id")

	snapshot, err := h.mapService.GetNavigationSnapshot(robotID, floorID)
	if err != nil {
		return HandleStoreError(c, err)
	}
	return c.JSON(http.StatusOK, snapshot)
}

// ListRobots returns robots seen polling within the presence window.
func (h *NavigationHandler) ListRobots(c echo.Context) error {
	robots, err := h.mapService.ListOnlineRobots()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, utils.ErrorResponse(err.Error()))
	}
	return c.JSON(http.StatusOK, utils.CreateListResponse(robots, len(robots)))
}

// CheckPoint reports whether ?x,?y on ?floor_id lies inside any active
// blocked zone.
func (h *NavigationHandler) CheckPoint(c echo.Context) error {
	floorID := c.QueryParam("floor_id")
	if floorID == "" {
		return c.JSON(http.StatusBadRequest, utils.ErrorResponse("floor_id is required"))
	}
	x := utils.GetFloatOrDefault(c.QueryParam("x"), 0)
	y := utils.GetFloatOrDefault(c.QueryParam("y"), 0)

	blocked, err := h.mapService.IsPointInBlockedZone(x, y, floorID)
	if err != nil {
		return HandleStoreError(c, err)
	}
	data := map[string]interface{}{
		"floor_id": floorID,
		"x":        x,
		"y":        y,
		"blocked":  blocked,
	}
	return c.JSON(http.StatusOK, utils.SuccessResponse("Point checked successfully", data))
}

// GetReachableWaypoints returns the geometry-aware accessible waypoint ids
// for a floor: flagged accessible and outside every active blocked zone.
func (h *NavigationHandler) GetReachableWaypoints(c echo.Context) error {
	floorID := c.Param("floorId")

	ids, err := h.mapService.AccessibleWaypointIDs(floorID)
	if err != nil {
		return HandleStoreError(c, err)
	}
	return c.JSON(http.StatusOK, utils.CreateListResponse(ids, len(ids)))
}
