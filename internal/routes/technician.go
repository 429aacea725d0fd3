package routes

import (
	"github.com/labstack/echo/v4"

	"gearguard/internal/controllers"
)

func runTechnicianRouter(secure *echo.Group, ctrl *controllers.TechnicianController) {
	secure.GET("/technicians", ctrl.GetTechnicians)
	secure.GET("/technicians/:id", ctrl.FindTechnician)
	secure.POST("/technicians", ctrl.CreateTechnician)
	secure.PATCH("/technicians/:id", ctrl.UpdateTechnician)
	secure.DELETE("/technicians/:id", ctrl.DeleteTechnician)
}
