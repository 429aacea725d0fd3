package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/services"
	"gearguard/pkg/utils"
)

// TimeLogController exposes read and create only: logged hours cannot
// be edited or removed once written.
type TimeLogController struct {
	timeLogService services.TimeLogServiceInterface
	logger         *zap.Logger
}

func NewTimeLogController(timeLogService services.TimeLogServiceInterface, logger *zap.Logger) *TimeLogController {
	return &TimeLogController{timeLogService: timeLogService, logger: logger}
}

func (c *TimeLogController) GetTimeLogs(ctx echo.Context) error {
	base := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	requestID, err := parseOptionalUUID(ctx, "request_id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	technicianID, err := parseOptionalUUID(ctx, "technician_id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	filter := dto.TimeLogFilter{
		RequestID:    requestID,
		TechnicianID: technicianID,
		Limit:        base.Limit,
		Page:         base.Page,
	}

	logs, total, err := c.timeLogService.GetTimeLogs(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessListResponse(ctx, logs, "time logs", total, base.Page, base.Limit)
}

func (c *TimeLogController) FindTimeLog(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	log, err := c.timeLogService.GetTimeLog(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, log, "time log found", http.StatusOK)
}

func (c *TimeLogController) CreateTimeLog(ctx echo.Context) error {
	var payload dto.CreateTimeLogDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "invalid request body"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	log, err := c.timeLogService.CreateTimeLog(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, log, "time log recorded", http.StatusCreated)
}
