package utils

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "gearguard/pkg/errors"
)

type HTTPResponse struct {
	Status     bool            `json:"status"`
	Body       interface{}     `json:"body,omitempty"`
	Message    string          `json:"message"`
	Pagination *PaginationMeta `json:"pagination,omitempty"`
}

type PaginationMeta struct {
	TotalCount uint64 `json:"total_count"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"total_pages"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int) error {
	return ctx.JSON(code, &HTTPResponse{
		Status:  true,
		Body:    body,
		Message: message,
	})
}

func SuccessListResponse(ctx echo.Context, body interface{}, message string, total uint64, page, limit int) error {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + uint64(limit) - 1) / uint64(limit))
	}
	return ctx.JSON(http.StatusOK, &HTTPResponse{
		Status:  true,
		Body:    body,
		Message: message,
		Pagination: &PaginationMeta{
			TotalCount: total,
			Page:       page,
			Limit:      limit,
			TotalPages: totalPages,
		},
	})
}

// ErrorResponse maps an application error to the response envelope.
// HttpError keeps only the user-facing message; the wrapped cause goes
// to the log.
func ErrorResponse(ctx echo.Context, err error, logger *zap.Logger) error {
	code := apperrors.StatusCode(err)
	msg := err.Error()

	if httpErr, ok := err.(*apperrors.HttpError); ok {
		msg = httpErr.Message
		if httpErr.Err != nil && logger != nil {
			logger.Error("request failed",
				zap.Int("code", code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
			)
		}
	}

	return ctx.JSON(code, &HTTPResponse{
		Status:  false,
		Message: msg,
	})
}
