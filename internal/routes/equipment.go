package routes

import (
	"github.com/labstack/echo/v4"

	"gearguard/internal/controllers"
)

func runEquipmentRouter(secure *echo.Group, ctrl *controllers.EquipmentController) {
	secure.GET("/equipment", ctrl.GetEquipment)
	secure.GET("/equipment/:id", ctrl.FindEquipment)
	secure.POST("/equipment", ctrl.CreateEquipment)
	secure.PATCH("/equipment/:id", ctrl.UpdateEquipment)
	secure.POST("/equipment/:id/scrap", ctrl.ScrapEquipment)
	secure.DELETE("/equipment/:id", ctrl.DeleteEquipment)
}
