package routes

import (
	"github.com/labstack/echo/v4"

	"gearguard/internal/controllers"
)

func runDepartmentRouter(secure *echo.Group, ctrl *controllers.DepartmentController) {
	secure.GET("/departments", ctrl.GetDepartments)
	secure.GET("/departments/:id", ctrl.FindDepartment)
	secure.POST("/departments", ctrl.CreateDepartment)
	secure.PATCH("/departments/:id", ctrl.UpdateDepartment)
	secure.DELETE("/departments/:id", ctrl.DeleteDepartment)
}
