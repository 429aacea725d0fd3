package routes

import (
	"github.com/labstack/echo/v4"

	"gearguard/internal/controllers"
)

// Time logs are append-only, so there are no PATCH or DELETE routes.
func runTimeLogRouter(secure *echo.Group, ctrl *controllers.TimeLogController) {
	secure.GET("/time-logs", ctrl.GetTimeLogs)
	secure.GET("/time-logs/:id", ctrl.FindTimeLog)
	secure.POST("/time-logs", ctrl.CreateTimeLog)
}
