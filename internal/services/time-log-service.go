package services

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"gearguard/internal/authz"
	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/utils"
)

// TimeLogServiceInterface has no update or delete: recorded hours are
// immutable once written.
type TimeLogServiceInterface interface {
	GetTimeLogs(ctx context.Context, filter dto.TimeLogFilter) ([]entities.TimeLog, uint64, error)
	GetTimeLog(ctx context.Context, id uuid.UUID) (*entities.TimeLog, error)
	CreateTimeLog(ctx context.Context, payload dto.CreateTimeLogDTO) (*entities.TimeLog, error)
}

type TimeLogService struct {
	timeLogRepo    repositories.TimeLogRepositoryInterface
	requestRepo    repositories.MaintenanceRequestRepositoryInterface
	technicianRepo repositories.TechnicianRepositoryInterface
}

func NewTimeLogService(
	timeLogRepo repositories.TimeLogRepositoryInterface,
	requestRepo repositories.MaintenanceRequestRepositoryInterface,
	technicianRepo repositories.TechnicianRepositoryInterface,
) TimeLogServiceInterface {
	return &TimeLogService{
		timeLogRepo:    timeLogRepo,
		requestRepo:    requestRepo,
		technicianRepo: technicianRepo,
	}
}

func (s *TimeLogService) GetTimeLogs(ctx context.Context, filter dto.TimeLogFilter) ([]entities.TimeLog, uint64, error) {
	if err := requireCapability(ctx, authz.TimeLogsView); err != nil {
		return nil, 0, err
	}
	limit, offset := listWindow(filter.Limit, filter.Page)
	return s.timeLogRepo.GetTimeLogs(ctx, filter, limit, offset)
}

func (s *TimeLogService) GetTimeLog(ctx context.Context, id uuid.UUID) (*entities.TimeLog, error) {
	if err := requireCapability(ctx, authz.TimeLogsView); err != nil {
		return nil, err
	}
	return s.timeLogRepo.FindTimeLog(ctx, id)
}

func (s *TimeLogService) CreateTimeLog(ctx context.Context, payload dto.CreateTimeLogDTO) (*entities.TimeLog, error) {
	if err := requireCapability(ctx, authz.TimeLogsCreate); err != nil {
		return nil, err
	}

	if payload.HoursSpent <= 0 {
		return nil, apperrors.NewInvalidInputError("hours_spent must be greater than zero")
	}

	if _, err := s.requestRepo.FindRequest(ctx, payload.RequestID); err != nil {
		return nil, apperrors.NewHttpError(http.StatusBadRequest, "maintenance request not found", err, nil)
	}

	tech, err := s.technicianRepo.FindTechnician(ctx, payload.TechnicianID)
	if err != nil {
		return nil, apperrors.NewHttpError(http.StatusBadRequest, "technician not found", err, nil)
	}

	// A technician can only log hours as themselves; managers and
	// admins may log on anyone's behalf.
	role, err := utils.RoleFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if role == constants.RoleTechnician {
		actorID, err := utils.UserIDFromContext(ctx)
		if err != nil {
			return nil, err
		}
		if tech.UserID != actorID {
			return nil, apperrors.NewHttpError(http.StatusForbidden, "cannot log time for another technician", apperrors.ErrForbidden, nil)
		}
	}

	log := &entities.TimeLog{
		ID:           uuid.New(),
		RequestID:    payload.RequestID,
		TechnicianID: payload.TechnicianID,
		HoursSpent:   payload.HoursSpent,
	}
	if err := s.timeLogRepo.CreateTimeLog(ctx, log); err != nil {
		return nil, err
	}
	return s.timeLogRepo.FindTimeLog(ctx, log.ID)
}
