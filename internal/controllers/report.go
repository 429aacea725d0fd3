package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"gearguard/internal/entities"
	"gearguard/internal/services"
	"gearguard/pkg/utils"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

func (c *ReportController) RequestsByTeam(ctx echo.Context) error {
	data, err := c.reportService.RequestsByTeam(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if wantsXLSX(ctx) {
		return c.respondBreakdownXLSX(ctx, "Requests by team", "Team", data)
	}
	return utils.SuccessResponse(ctx, data, "requests by team", http.StatusOK)
}

func (c *ReportController) RequestsByCategory(ctx echo.Context) error {
	data, err := c.reportService.RequestsByCategory(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if wantsXLSX(ctx) {
		return c.respondBreakdownXLSX(ctx, "Requests by category", "Category", data)
	}
	return utils.SuccessResponse(ctx, data, "requests by category", http.StatusOK)
}

func (c *ReportController) RequestsByStage(ctx echo.Context) error {
	data, err := c.reportService.RequestsByStage(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if wantsXLSX(ctx) {
		return c.respondStageXLSX(ctx, data)
	}
	return utils.SuccessResponse(ctx, data, "requests by stage", http.StatusOK)
}

func wantsXLSX(ctx echo.Context) bool {
	return strings.ToLower(ctx.QueryParam("format")) == "xlsx"
}

func (c *ReportController) respondBreakdownXLSX(ctx echo.Context, sheet, groupHeader string, data []entities.StageBreakdown) error {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheet)

	headers := []interface{}{groupHeader, "Total", "New", "In progress", "Repaired", "Scrap"}
	f.SetSheetRow(sheet, "A1", &headers)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "F1", style)

	for i, item := range data {
		group := item.GroupName.String
		if !item.GroupName.Valid {
			group = "(none)"
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{group, item.Total, item.New, item.InProgress, item.Repaired, item.Scrap}
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "A", "A", 30)
	f.SetColWidth(sheet, "B", "F", 14)

	return writeXLSX(ctx, f)
}

func (c *ReportController) respondStageXLSX(ctx echo.Context, data []entities.StageCount) error {
	f := excelize.NewFile()
	sheet := "Requests by stage"
	f.SetSheetName("Sheet1", sheet)

	headers := []interface{}{"Stage", "Count"}
	f.SetSheetRow(sheet, "A1", &headers)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "B1", style)

	for i, item := range data {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{item.Stage, item.Count}
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "A", "A", 20)

	return writeXLSX(ctx, f)
}

func writeXLSX(ctx echo.Context, f *excelize.File) error {
	fileName := fmt.Sprintf("report_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
