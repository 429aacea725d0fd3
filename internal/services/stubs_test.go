package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
)

// In-memory fakes backing the service tests. They implement just enough
// of the repository interfaces to drive the orchestration logic.

type stubTxManager struct{}

func (stubTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubRequestRepo struct {
	requests map[uuid.UUID]*entities.MaintenanceRequest
}

func newStubRequestRepo() *stubRequestRepo {
	return &stubRequestRepo{requests: make(map[uuid.UUID]*entities.MaintenanceRequest)}
}

func (r *stubRequestRepo) GetRequests(ctx context.Context, filter dto.MaintenanceRequestFilter, limit, offset uint64) ([]entities.MaintenanceRequest, uint64, error) {
	var out []entities.MaintenanceRequest
	for _, req := range r.requests {
		out = append(out, *req)
	}
	return out, uint64(len(out)), nil
}

func (r *stubRequestRepo) FindRequest(ctx context.Context, id uuid.UUID) (*entities.MaintenanceRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *req
	return &copied, nil
}

func (r *stubRequestRepo) CreateRequest(ctx context.Context, req *entities.MaintenanceRequest) error {
	req.CreatedAt = time.Now()
	copied := *req
	r.requests[req.ID] = &copied
	return nil
}

func (r *stubRequestRepo) UpdateRequest(ctx context.Context, id uuid.UUID, payload dto.UpdateMaintenanceRequestDTO) error {
	req, ok := r.requests[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	if payload.Subject != nil {
		req.Subject = *payload.Subject
	}
	if payload.Description != nil {
		req.Description = payload.Description
	}
	if payload.RequestType != nil {
		req.RequestType = constants.RequestType(*payload.RequestType)
	}
	if payload.ScheduledDate != nil {
		date, err := time.Parse("2006-01-02", *payload.ScheduledDate)
		if err != nil {
			return apperrors.ErrBadRequest
		}
		req.ScheduledDate = &date
	}
	return nil
}

func (r *stubRequestRepo) UpdateStage(ctx context.Context, id uuid.UUID, stage constants.Stage) error {
	req, ok := r.requests[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	req.Stage = stage
	return nil
}

func (r *stubRequestRepo) UpdateAssignee(ctx context.Context, id uuid.UUID, technicianID *uuid.UUID) error {
	req, ok := r.requests[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	req.AssignedTo = technicianID
	return nil
}

func (r *stubRequestRepo) GetScheduledBetween(ctx context.Context, start, end time.Time) ([]entities.MaintenanceRequest, error) {
	var out []entities.MaintenanceRequest
	for _, req := range r.requests {
		if req.ScheduledDate == nil {
			continue
		}
		if !req.ScheduledDate.Before(start) && !req.ScheduledDate.After(end) {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (r *stubRequestRepo) GetScheduledBefore(ctx context.Context, day time.Time) ([]entities.MaintenanceRequest, error) {
	var out []entities.MaintenanceRequest
	for _, req := range r.requests {
		if req.ScheduledDate != nil && req.ScheduledDate.Before(day) && req.Stage != constants.StageRepaired {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (r *stubRequestRepo) DeleteRequest(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.requests[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.requests, id)
	return nil
}

type stubEquipmentRepo struct {
	equipment map[uuid.UUID]*entities.Equipment
}

func newStubEquipmentRepo() *stubEquipmentRepo {
	return &stubEquipmentRepo{equipment: make(map[uuid.UUID]*entities.Equipment)}
}

func (r *stubEquipmentRepo) GetEquipment(ctx context.Context, filter dto.EquipmentFilter, limit, offset uint64) ([]entities.Equipment, uint64, error) {
	var out []entities.Equipment
	for _, eq := range r.equipment {
		out = append(out, *eq)
	}
	return out, uint64(len(out)), nil
}

func (r *stubEquipmentRepo) FindEquipment(ctx context.Context, id uuid.UUID) (*entities.Equipment, error) {
	eq, ok := r.equipment[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *eq
	return &copied, nil
}

func (r *stubEquipmentRepo) CreateEquipment(ctx context.Context, eq *entities.Equipment) error {
	copied := *eq
	r.equipment[eq.ID] = &copied
	return nil
}

func (r *stubEquipmentRepo) UpdateEquipment(ctx context.Context, id uuid.UUID, payload dto.UpdateEquipmentDTO) error {
	if _, ok := r.equipment[id]; !ok {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *stubEquipmentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status constants.EquipmentStatus) error {
	eq, ok := r.equipment[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	eq.Status = status
	return nil
}

func (r *stubEquipmentRepo) DeleteEquipment(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.equipment[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.equipment, id)
	return nil
}

type stubTechnicianRepo struct {
	technicians map[uuid.UUID]*entities.Technician
}

func newStubTechnicianRepo() *stubTechnicianRepo {
	return &stubTechnicianRepo{technicians: make(map[uuid.UUID]*entities.Technician)}
}

func (r *stubTechnicianRepo) GetTechnicians(ctx context.Context, teamID *uuid.UUID, limit, offset uint64) ([]entities.Technician, uint64, error) {
	var out []entities.Technician
	for _, t := range r.technicians {
		out = append(out, *t)
	}
	return out, uint64(len(out)), nil
}

func (r *stubTechnicianRepo) FindTechnician(ctx context.Context, id uuid.UUID) (*entities.Technician, error) {
	t, ok := r.technicians[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (r *stubTechnicianRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entities.Technician, error) {
	for _, t := range r.technicians {
		if t.UserID == userID {
			copied := *t
			return &copied, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *stubTechnicianRepo) CreateTechnician(ctx context.Context, tech *entities.Technician) error {
	copied := *tech
	r.technicians[tech.ID] = &copied
	return nil
}

func (r *stubTechnicianRepo) UpdateTechnician(ctx context.Context, id uuid.UUID, payload dto.UpdateTechnicianDTO) error {
	t, ok := r.technicians[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	if payload.TeamID != nil {
		t.TeamID = *payload.TeamID
	}
	if payload.IsActive != nil {
		t.IsActive = *payload.IsActive
	}
	return nil
}

func (r *stubTechnicianRepo) DeleteTechnician(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.technicians[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.technicians, id)
	return nil
}

type stubAuditRepo struct {
	entries []entities.RequestAuditLog
}

func (r *stubAuditRepo) AppendEntry(ctx context.Context, entry *entities.RequestAuditLog) error {
	entry.ChangedAt = time.Now()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *stubAuditRepo) GetByRequest(ctx context.Context, requestID uuid.UUID) ([]entities.RequestAuditLog, error) {
	var out []entities.RequestAuditLog
	for _, e := range r.entries {
		if e.RequestID == requestID {
			out = append(out, e)
		}
	}
	return out, nil
}

type stubTimeLogRepo struct {
	logs map[uuid.UUID]*entities.TimeLog
}

func newStubTimeLogRepo() *stubTimeLogRepo {
	return &stubTimeLogRepo{logs: make(map[uuid.UUID]*entities.TimeLog)}
}

func (r *stubTimeLogRepo) GetTimeLogs(ctx context.Context, filter dto.TimeLogFilter, limit, offset uint64) ([]entities.TimeLog, uint64, error) {
	var out []entities.TimeLog
	for _, l := range r.logs {
		out = append(out, *l)
	}
	return out, uint64(len(out)), nil
}

func (r *stubTimeLogRepo) FindTimeLog(ctx context.Context, id uuid.UUID) (*entities.TimeLog, error) {
	l, ok := r.logs[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *l
	return &copied, nil
}

func (r *stubTimeLogRepo) CreateTimeLog(ctx context.Context, log *entities.TimeLog) error {
	log.LoggedAt = time.Now()
	copied := *log
	r.logs[log.ID] = &copied
	return nil
}

func (r *stubTimeLogRepo) SumHoursByRequest(ctx context.Context, requestID uuid.UUID) (float64, error) {
	var sum float64
	for _, l := range r.logs {
		if l.RequestID == requestID {
			sum += l.HoursSpent
		}
	}
	return sum, nil
}
