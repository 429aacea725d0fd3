package routes

import (
	"github.com/labstack/echo/v4"

	"gearguard/internal/controllers"
)

func runReportRouter(secure *echo.Group, ctrl *controllers.ReportController) {
	secure.GET("/reports/requests-by-team", ctrl.RequestsByTeam)
	secure.GET("/reports/requests-by-category", ctrl.RequestsByCategory)
	secure.GET("/reports/requests-by-stage", ctrl.RequestsByStage)
}
