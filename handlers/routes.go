package handlers

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes wires the API surface under /api/v1.
func RegisterRoutes(e *echo.Echo, mapHandler *MapHandler, navHandler *NavigationHandler) {
	api := e.Group("/api/v1")

	// Health check
	api.GET("/health", mapHandler.HealthCheck)

	// Floor management
	api.GET("/floors", mapHandler.ListFloors)
	api.POST("/floors", mapHandler.CreateFloor)
	api.GET("/floors/:floorId", mapHandler.GetFloor)
	api.DELETE("/floors/:floorId", mapHandler.DeleteFloor)
	api.GET("/floors/:floorId/reachable-waypoints", navHandler.GetReachableWaypoints)

	// Waypoint management
	api.GET("/waypoints", mapHandler.ListWaypoints)
	api.POST("/waypoints", mapHandler.CreateWaypoint)
	api.GET("/waypoints/:waypointId", mapHandler.GetWaypoint)
	api.PUT("/waypoints/:waypointId", mapHandler.UpdateWaypoint)
	api.DELETE("/waypoints/:waypointId", mapHandler.DeleteWaypoint)
	api.POST("/waypoints/:waypointId/block", mapHandler.BlockWaypoint)
	api.POST("/waypoints/:waypointId/unblock", mapHandler.UnblockWaypoint)

	// Zone management
	api.GET("/zones", mapHandler.ListZones)
	api.POST("/zones", mapHandler.CreateZone)
	api.GET("/zones/blocked", mapHandler.ListBlockedZones)
	api.POST("/zones/blocked", mapHandler.CreateBlockedZone)
	api.GET("/zones/:zoneId", mapHandler.GetZone)
	api.PUT("/zones/:zoneId", mapHandler.UpdateZone)
	api.DELETE("/zones/:zoneId", mapHandler.DeleteZone)
	api.POST("/zones/:zoneId/activate", mapHandler.ActivateZone)
	api.POST("/zones/:zoneId/deactivate", mapHandler.DeactivateZone)

	// Robot-facing navigation state
	api.GET("/robots", navHandler.ListRobots)
	api.GET("/robots/:robotId/map-state", navHandler.GetMapState)
	api.GET("/navigation/check-point", navHandler.CheckPoint)

	// Map export
	api.GET("/map/export", mapHandler.ExportMap)
}
