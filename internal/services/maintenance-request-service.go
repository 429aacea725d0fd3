package services

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gearguard/internal/authz"
	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/lifecycle"
	"gearguard/internal/repositories"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/utils"
)

type MaintenanceRequestServiceInterface interface {
	GetRequests(ctx context.Context, filter dto.MaintenanceRequestFilter) ([]entities.MaintenanceRequest, uint64, error)
	GetRequest(ctx context.Context, id uuid.UUID) (*entities.MaintenanceRequest, error)
	CreateRequest(ctx context.Context, payload dto.CreateMaintenanceRequestDTO) (*entities.MaintenanceRequest, error)
	UpdateRequest(ctx context.Context, id uuid.UUID, payload dto.UpdateMaintenanceRequestDTO) (*entities.MaintenanceRequest, error)
	ChangeStage(ctx context.Context, id uuid.UUID, payload dto.ChangeStageDTO) (*entities.MaintenanceRequest, error)
	AssignSelf(ctx context.Context, id uuid.UUID) (*entities.MaintenanceRequest, error)
	GetHistory(ctx context.Context, id uuid.UUID) ([]entities.RequestAuditLog, error)
	GetCalendar(ctx context.Context, startDate, endDate string) ([]entities.MaintenanceRequest, error)
	GetOverdue(ctx context.Context) ([]entities.MaintenanceRequest, error)
	AutoFill(ctx context.Context, equipmentID uuid.UUID) (*dto.AutoFillDTO, error)
	DeleteRequest(ctx context.Context, id uuid.UUID) error
}

type MaintenanceRequestService struct {
	requestRepo    repositories.MaintenanceRequestRepositoryInterface
	equipmentRepo  repositories.EquipmentRepositoryInterface
	technicianRepo repositories.TechnicianRepositoryInterface
	auditRepo      repositories.RequestAuditLogRepositoryInterface
	timeLogRepo    repositories.TimeLogRepositoryInterface
	txManager      repositories.TxManagerInterface
	logger         *zap.Logger
}

func NewMaintenanceRequestService(
	requestRepo repositories.MaintenanceRequestRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	technicianRepo repositories.TechnicianRepositoryInterface,
	auditRepo repositories.RequestAuditLogRepositoryInterface,
	timeLogRepo repositories.TimeLogRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) MaintenanceRequestServiceInterface {
	return &MaintenanceRequestService{
		requestRepo:    requestRepo,
		equipmentRepo:  equipmentRepo,
		technicianRepo: technicianRepo,
		auditRepo:      auditRepo,
		timeLogRepo:    timeLogRepo,
		txManager:      txManager,
		logger:         logger,
	}
}

// flagOverdue derives the overdue flag on every read path. The value in
// storage (there is none) is never consulted.
func flagOverdue(requests []entities.MaintenanceRequest, now time.Time) {
	for i := range requests {
		requests[i].Overdue = lifecycle.IsOverdue(requests[i].ScheduledDate, requests[i].Stage, now)
	}
}

func (s *MaintenanceRequestService) GetRequests(ctx context.Context, filter dto.MaintenanceRequestFilter) ([]entities.MaintenanceRequest, uint64, error) {
	if err := requireCapability(ctx, authz.RequestsView); err != nil {
		return nil, 0, err
	}
	limit, offset := listWindow(filter.Limit, filter.Page)
	requests, total, err := s.requestRepo.GetRequests(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	flagOverdue(requests, time.Now())
	return requests, total, nil
}

func (s *MaintenanceRequestService) GetRequest(ctx context.Context, id uuid.UUID) (*entities.MaintenanceRequest, error) {
	if err := requireCapability(ctx, authz.RequestsView); err != nil {
		return nil, err
	}
	req, err := s.requestRepo.FindRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Overdue = lifecycle.IsOverdue(req.ScheduledDate, req.Stage, time.Now())

	hours, err := s.timeLogRepo.SumHoursByRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	req.TotalHoursSpent = hours
	return req, nil
}

func (s *MaintenanceRequestService) CreateRequest(ctx context.Context, payload dto.CreateMaintenanceRequestDTO) (*entities.MaintenanceRequest, error) {
	if err := requireCapability(ctx, authz.RequestsCreate); err != nil {
		return nil, err
	}
	actorID, err := utils.UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	eq, err := s.equipmentRepo.FindEquipment(ctx, payload.EquipmentID)
	if err != nil {
		return nil, apperrors.NewHttpError(http.StatusBadRequest, "equipment not found", err, nil)
	}
	if eq.Status == constants.EquipmentScrapped {
		return nil, apperrors.NewHttpError(http.StatusConflict, "equipment is scrapped", apperrors.ErrConflict, nil)
	}

	requestType := constants.RequestType(payload.RequestType)
	scheduledDate, err := parseDatePtr(payload.ScheduledDate)
	if err != nil {
		return nil, err
	}
	if requestType == constants.RequestTypePreventive && scheduledDate == nil {
		return nil, apperrors.NewInvalidInputError("preventive requests require a scheduled_date")
	}

	req := &entities.MaintenanceRequest{
		ID:            uuid.New(),
		Subject:       payload.Subject,
		Description:   payload.Description,
		RequestType:   requestType,
		EquipmentID:   payload.EquipmentID,
		DetectedBy:    actorID,
		ScheduledDate: scheduledDate,
		Stage:         constants.StageNew,
	}

	err = s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.requestRepo.CreateRequest(txCtx, req); err != nil {
			return err
		}
		return s.auditRepo.AppendEntry(txCtx, &entities.RequestAuditLog{
			ID:        uuid.New(),
			RequestID: req.ID,
			OldStage:  nil,
			NewStage:  constants.StageNew,
			ChangedBy: actorID,
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("maintenance request created",
		zap.String("request_id", req.ID.String()),
		zap.String("equipment_id", req.EquipmentID.String()),
		zap.String("request_type", string(req.RequestType)),
	)

	return s.GetRequest(ctx, req.ID)
}

func (s *MaintenanceRequestService) UpdateRequest(ctx context.Context, id uuid.UUID, payload dto.UpdateMaintenanceRequestDTO) (*entities.MaintenanceRequest, error) {
	if err := requireCapability(ctx, authz.RequestsUpdate); err != nil {
		return nil, err
	}

	current, err := s.requestRepo.FindRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	// A type flip to preventive must leave the request with a date,
	// either the incoming one or one already set.
	if payload.RequestType != nil && constants.RequestType(*payload.RequestType) == constants.RequestTypePreventive {
		if payload.ScheduledDate == nil && current.ScheduledDate == nil {
			return nil, apperrors.NewInvalidInputError("preventive requests require a scheduled_date")
		}
	}

	if payload.AssignedTo != nil || payload.ClearAssignee {
		if err := requireCapability(ctx, authz.RequestsReassign); err != nil {
			return nil, err
		}
	}

	hasFieldChanges := payload.Subject != nil || payload.Description != nil ||
		payload.RequestType != nil || payload.ScheduledDate != nil
	hasAssigneeChange := payload.AssignedTo != nil || payload.ClearAssignee

	if !hasFieldChanges && !hasAssigneeChange && payload.Stage == nil {
		return nil, apperrors.ErrBadRequest
	}

	if hasFieldChanges || hasAssigneeChange {
		err = s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
			if hasFieldChanges {
				if err := s.requestRepo.UpdateRequest(txCtx, id, payload); err != nil {
					return err
				}
			}

			if payload.ClearAssignee {
				return s.requestRepo.UpdateAssignee(txCtx, id, nil)
			}
			if payload.AssignedTo != nil {
				tech, err := s.technicianRepo.FindTechnician(txCtx, *payload.AssignedTo)
				if err != nil {
					return apperrors.NewHttpError(http.StatusBadRequest, "technician not found", err, nil)
				}
				if !tech.IsActive {
					return apperrors.NewHttpError(http.StatusBadRequest, "technician is not active", apperrors.ErrBadRequest, nil)
				}
				return s.requestRepo.UpdateAssignee(txCtx, id, payload.AssignedTo)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	if payload.Stage != nil {
		return s.ChangeStage(ctx, id, dto.ChangeStageDTO{Stage: *payload.Stage})
	}
	return s.GetRequest(ctx, id)
}

// ChangeStage applies the transition table and appends an audit entry
// in the same transaction as the stage write.
func (s *MaintenanceRequestService) ChangeStage(ctx context.Context, id uuid.UUID, payload dto.ChangeStageDTO) (*entities.MaintenanceRequest, error) {
	if err := requireCapability(ctx, authz.RequestsUpdateStage); err != nil {
		return nil, err
	}
	role, err := utils.RoleFromContext(ctx)
	if err != nil {
		return nil, err
	}
	actorID, err := utils.UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	req, err := s.requestRepo.FindRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	target := constants.Stage(payload.Stage)
	if !lifecycle.CanMoveToStage(role, req.Stage, target) {
		return nil, apperrors.NewHttpError(http.StatusForbidden,
			"stage transition not permitted for this role", apperrors.ErrForbidden,
			map[string]interface{}{"from": req.Stage, "to": target})
	}

	// A technician starting work must own the request; claiming an
	// unassigned one happens implicitly in the same transaction.
	var claimAs *uuid.UUID
	if role == constants.RoleTechnician {
		tech, err := s.technicianRepo.FindByUserID(ctx, actorID)
		if err != nil {
			return nil, apperrors.NewHttpError(http.StatusForbidden, "no technician record for this user", apperrors.ErrForbidden, nil)
		}
		if !tech.IsActive {
			return nil, apperrors.NewHttpError(http.StatusForbidden, "technician is not active", apperrors.ErrForbidden, nil)
		}
		if req.AssignedTo != nil && *req.AssignedTo != tech.ID {
			return nil, apperrors.NewHttpError(http.StatusForbidden, "request is assigned to another technician", apperrors.ErrForbidden, nil)
		}
		if req.AssignedTo == nil {
			claimAs = &tech.ID
		}
	}

	oldStage := req.Stage
	err = s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		if claimAs != nil {
			if err := s.requestRepo.UpdateAssignee(txCtx, id, claimAs); err != nil {
				return err
			}
		}
		if err := s.requestRepo.UpdateStage(txCtx, id, target); err != nil {
			return err
		}
		return s.auditRepo.AppendEntry(txCtx, &entities.RequestAuditLog{
			ID:        uuid.New(),
			RequestID: id,
			OldStage:  &oldStage,
			NewStage:  target,
			ChangedBy: actorID,
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("maintenance request stage changed",
		zap.String("request_id", id.String()),
		zap.String("from", string(oldStage)),
		zap.String("to", string(target)),
	)

	return s.GetRequest(ctx, id)
}

// AssignSelf lets an active technician claim an unassigned request.
func (s *MaintenanceRequestService) AssignSelf(ctx context.Context, id uuid.UUID) (*entities.MaintenanceRequest, error) {
	if err := requireCapability(ctx, authz.RequestsAssignSelf); err != nil {
		return nil, err
	}
	actorID, err := utils.UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	tech, err := s.technicianRepo.FindByUserID(ctx, actorID)
	if err != nil {
		return nil, apperrors.NewHttpError(http.StatusForbidden, "no technician record for this user", apperrors.ErrForbidden, nil)
	}
	if !tech.IsActive {
		return nil, apperrors.NewHttpError(http.StatusForbidden, "technician is not active", apperrors.ErrForbidden, nil)
	}

	req, err := s.requestRepo.FindRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.AssignedTo != nil {
		return nil, apperrors.NewHttpError(http.StatusConflict, "request is already assigned", apperrors.ErrConflict, nil)
	}

	if err := s.requestRepo.UpdateAssignee(ctx, id, &tech.ID); err != nil {
		return nil, err
	}
	return s.GetRequest(ctx, id)
}

func (s *MaintenanceRequestService) GetHistory(ctx context.Context, id uuid.UUID) ([]entities.RequestAuditLog, error) {
	if err := requireCapability(ctx, authz.RequestsView); err != nil {
		return nil, err
	}
	if _, err := s.requestRepo.FindRequest(ctx, id); err != nil {
		return nil, err
	}
	return s.auditRepo.GetByRequest(ctx, id)
}

func (s *MaintenanceRequestService) GetCalendar(ctx context.Context, startDate, endDate string) ([]entities.MaintenanceRequest, error) {
	if err := requireCapability(ctx, authz.RequestsView); err != nil {
		return nil, err
	}

	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("invalid start_date %q, expected YYYY-MM-DD", startDate)
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("invalid end_date %q, expected YYYY-MM-DD", endDate)
	}
	if end.Before(start) {
		return nil, apperrors.NewInvalidInputError("end_date is before start_date")
	}

	requests, err := s.requestRepo.GetScheduledBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}
	flagOverdue(requests, time.Now())
	return requests, nil
}

func (s *MaintenanceRequestService) GetOverdue(ctx context.Context) ([]entities.MaintenanceRequest, error) {
	if err := requireCapability(ctx, authz.RequestsView); err != nil {
		return nil, err
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	requests, err := s.requestRepo.GetScheduledBefore(ctx, today)
	if err != nil {
		return nil, err
	}

	// The SQL window is a prefilter; the flag itself comes from the
	// same derivation every other read path uses.
	overdue := requests[:0]
	for _, req := range requests {
		if lifecycle.IsOverdue(req.ScheduledDate, req.Stage, now) {
			req.Overdue = true
			overdue = append(overdue, req)
		}
	}
	return overdue, nil
}

// AutoFill returns the equipment attributes a new request form
// prefills: category, location, and the responsible team.
func (s *MaintenanceRequestService) AutoFill(ctx context.Context, equipmentID uuid.UUID) (*dto.AutoFillDTO, error) {
	if err := requireCapability(ctx, authz.RequestsCreate); err != nil {
		return nil, err
	}

	eq, err := s.equipmentRepo.FindEquipment(ctx, equipmentID)
	if err != nil {
		return nil, err
	}

	fill := &dto.AutoFillDTO{
		EquipmentCategory: eq.Category,
		EquipmentLocation: eq.Location,
		MaintenanceTeamID: eq.MaintenanceTeamID,
	}
	if eq.MaintenanceTeamName != nil {
		fill.MaintenanceTeamName = *eq.MaintenanceTeamName
	}
	return fill, nil
}

func (s *MaintenanceRequestService) DeleteRequest(ctx context.Context, id uuid.UUID) error {
	if err := requireCapability(ctx, authz.RequestsDelete); err != nil {
		return err
	}
	return s.requestRepo.DeleteRequest(ctx, id)
}
