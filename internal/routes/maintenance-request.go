package routes

import (
	"github.com/labstack/echo/v4"

	"gearguard/internal/controllers"
)

func runMaintenanceRequestRouter(secure *echo.Group, ctrl *controllers.MaintenanceRequestController) {
	// Static paths before :id so the router does not swallow them.
	secure.GET("/maintenance-requests/calendar", ctrl.GetCalendar)
	secure.GET("/maintenance-requests/overdue", ctrl.GetOverdue)
	secure.GET("/maintenance-requests/equipment/:id/auto-fill", ctrl.AutoFill)

	secure.GET("/maintenance-requests", ctrl.GetRequests)
	secure.GET("/maintenance-requests/:id", ctrl.FindRequest)
	secure.POST("/maintenance-requests", ctrl.CreateRequest)
	secure.PATCH("/maintenance-requests/:id", ctrl.UpdateRequest)
	secure.DELETE("/maintenance-requests/:id", ctrl.DeleteRequest)

	secure.POST("/maintenance-requests/:id/assign-self", ctrl.AssignSelf)
	secure.POST("/maintenance-requests/:id/stage", ctrl.ChangeStage)
	secure.GET("/maintenance-requests/:id/history", ctrl.GetHistory)
}
