package routes

import (
	"github.com/labstack/echo/v4"

	"gearguard/internal/controllers"
)

func runMaintenanceTeamRouter(secure *echo.Group, ctrl *controllers.MaintenanceTeamController) {
	secure.GET("/maintenance-teams", ctrl.GetTeams)
	secure.GET("/maintenance-teams/:id", ctrl.FindTeam)
	secure.POST("/maintenance-teams", ctrl.CreateTeam)
	secure.PATCH("/maintenance-teams/:id", ctrl.UpdateTeam)
	secure.DELETE("/maintenance-teams/:id", ctrl.DeleteTeam)
}
