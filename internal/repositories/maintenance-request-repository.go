package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
)

const requestJoinedFields = `mr.id, mr.subject, mr.description, mr.request_type, mr.equipment_id,
	mr.detected_by, mr.assigned_to, mr.scheduled_date, mr.stage, mr.created_at,
	e.name, e.category, e.location, du.name, tu.name, e.maintenance_team_id, mt.name`

const requestJoins = `
	FROM maintenance_requests mr
	JOIN equipment e ON e.id = mr.equipment_id
	JOIN maintenance_teams mt ON mt.id = e.maintenance_team_id
	JOIN users du ON du.id = mr.detected_by
	LEFT JOIN technicians t ON t.id = mr.assigned_to
	LEFT JOIN users tu ON tu.id = t.user_id`

type MaintenanceRequestRepositoryInterface interface {
	GetRequests(ctx context.Context, filter dto.MaintenanceRequestFilter, limit, offset uint64) ([]entities.MaintenanceRequest, uint64, error)
	FindRequest(ctx context.Context, id uuid.UUID) (*entities.MaintenanceRequest, error)
	CreateRequest(ctx context.Context, req *entities.MaintenanceRequest) error
	UpdateRequest(ctx context.Context, id uuid.UUID, payload dto.UpdateMaintenanceRequestDTO) error
	UpdateStage(ctx context.Context, id uuid.UUID, stage constants.Stage) error
	UpdateAssignee(ctx context.Context, id uuid.UUID, technicianID *uuid.UUID) error
	GetScheduledBetween(ctx context.Context, start, end time.Time) ([]entities.MaintenanceRequest, error)
	GetScheduledBefore(ctx context.Context, day time.Time) ([]entities.MaintenanceRequest, error)
	DeleteRequest(ctx context.Context, id uuid.UUID) error
}

type MaintenanceRequestRepository struct {
	storage *pgxpool.Pool
}

func NewMaintenanceRequestRepository(storage *pgxpool.Pool) MaintenanceRequestRepositoryInterface {
	return &MaintenanceRequestRepository{storage: storage}
}

func scanRequest(row pgx.Row) (*entities.MaintenanceRequest, error) {
	var m entities.MaintenanceRequest
	err := row.Scan(
		&m.ID, &m.Subject, &m.Description, &m.RequestType, &m.EquipmentID,
		&m.DetectedBy, &m.AssignedTo, &m.ScheduledDate, &m.Stage, &m.CreatedAt,
		&m.EquipmentName, &m.EquipmentCategory, &m.EquipmentLocation,
		&m.DetectedByName, &m.AssignedToName, &m.MaintenanceTeamID, &m.MaintenanceTeamName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *MaintenanceRequestRepository) collectRequests(ctx context.Context, query string, args ...interface{}) ([]entities.MaintenanceRequest, error) {
	q := queryEngine(ctx, r.storage)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []entities.MaintenanceRequest
	for rows.Next() {
		var m entities.MaintenanceRequest
		if err := rows.Scan(
			&m.ID, &m.Subject, &m.Description, &m.RequestType, &m.EquipmentID,
			&m.DetectedBy, &m.AssignedTo, &m.ScheduledDate, &m.Stage, &m.CreatedAt,
			&m.EquipmentName, &m.EquipmentCategory, &m.EquipmentLocation,
			&m.DetectedByName, &m.AssignedToName, &m.MaintenanceTeamID, &m.MaintenanceTeamName,
		); err != nil {
			return nil, err
		}
		requests = append(requests, m)
	}
	return requests, rows.Err()
}

func (r *MaintenanceRequestRepository) GetRequests(ctx context.Context, filter dto.MaintenanceRequestFilter, limit, offset uint64) ([]entities.MaintenanceRequest, uint64, error) {
	q := queryEngine(ctx, r.storage)

	applyFilter := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.EquipmentID != nil {
			b = b.Where(sq.Eq{"mr.equipment_id": *filter.EquipmentID})
		}
		if filter.AssignedTo != nil {
			b = b.Where(sq.Eq{"mr.assigned_to": *filter.AssignedTo})
		}
		if filter.Stage != nil {
			b = b.Where(sq.Eq{"mr.stage": *filter.Stage})
		}
		if filter.RequestType != nil {
			b = b.Where(sq.Eq{"mr.request_type": *filter.RequestType})
		}
		if filter.Search != "" {
			pattern := fmt.Sprintf("%%%s%%", filter.Search)
			b = b.Where(sq.Or{
				sq.Expr("mr.subject ILIKE ?", pattern),
				sq.Expr("e.name ILIKE ?", pattern),
			})
		}
		return b
	}

	builder := applyFilter(sq.Select(requestJoinedFields).
		From("maintenance_requests mr").
		Join("equipment e ON e.id = mr.equipment_id").
		Join("maintenance_teams mt ON mt.id = e.maintenance_team_id").
		Join("users du ON du.id = mr.detected_by").
		LeftJoin("technicians t ON t.id = mr.assigned_to").
		LeftJoin("users tu ON tu.id = t.user_id").
		OrderBy("mr.created_at DESC").
		PlaceholderFormat(sq.Dollar))

	countBuilder := applyFilter(sq.Select("COUNT(*)").
		From("maintenance_requests mr").
		Join("equipment e ON e.id = mr.equipment_id").
		PlaceholderFormat(sq.Dollar))

	query, args, err := builder.Limit(limit).Offset(offset).ToSql()
	if err != nil {
		return nil, 0, err
	}

	requests, err := r.collectRequests(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := q.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

func (r *MaintenanceRequestRepository) FindRequest(ctx context.Context, id uuid.UUID) (*entities.MaintenanceRequest, error) {
	q := queryEngine(ctx, r.storage)
	return scanRequest(q.QueryRow(ctx,
		"SELECT "+requestJoinedFields+requestJoins+" WHERE mr.id = $1", id))
}

func (r *MaintenanceRequestRepository) CreateRequest(ctx context.Context, req *entities.MaintenanceRequest) error {
	q := queryEngine(ctx, r.storage)
	return q.QueryRow(ctx, `
		INSERT INTO maintenance_requests (id, subject, description, request_type, equipment_id,
			detected_by, assigned_to, scheduled_date, stage)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`, req.ID, req.Subject, req.Description, req.RequestType, req.EquipmentID,
		req.DetectedBy, req.AssignedTo, req.ScheduledDate, req.Stage).Scan(&req.CreatedAt)
}

func (r *MaintenanceRequestRepository) UpdateRequest(ctx context.Context, id uuid.UUID, payload dto.UpdateMaintenanceRequestDTO) error {
	builder := sq.Update("maintenance_requests").PlaceholderFormat(sq.Dollar)
	changed := false

	if payload.Subject != nil {
		builder = builder.Set("subject", *payload.Subject)
		changed = true
	}
	if payload.Description != nil {
		builder = builder.Set("description", *payload.Description)
		changed = true
	}
	if payload.RequestType != nil {
		builder = builder.Set("request_type", constants.RequestType(*payload.RequestType))
		changed = true
	}
	if payload.ScheduledDate != nil {
		date, err := time.Parse("2006-01-02", *payload.ScheduledDate)
		if err != nil {
			return apperrors.ErrBadRequest
		}
		builder = builder.Set("scheduled_date", date)
		changed = true
	}
	if !changed {
		return apperrors.ErrBadRequest
	}

	query, args, err := builder.Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}

	q := queryEngine(ctx, r.storage)
	result, err := q.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *MaintenanceRequestRepository) UpdateStage(ctx context.Context, id uuid.UUID, stage constants.Stage) error {
	q := queryEngine(ctx, r.storage)
	result, err := q.Exec(ctx, "UPDATE maintenance_requests SET stage = $1 WHERE id = $2", stage, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *MaintenanceRequestRepository) UpdateAssignee(ctx context.Context, id uuid.UUID, technicianID *uuid.UUID) error {
	q := queryEngine(ctx, r.storage)
	result, err := q.Exec(ctx, "UPDATE maintenance_requests SET assigned_to = $1 WHERE id = $2", technicianID, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *MaintenanceRequestRepository) GetScheduledBetween(ctx context.Context, start, end time.Time) ([]entities.MaintenanceRequest, error) {
	return r.collectRequests(ctx,
		"SELECT "+requestJoinedFields+requestJoins+`
		WHERE mr.scheduled_date IS NOT NULL AND mr.scheduled_date >= $1 AND mr.scheduled_date <= $2
		ORDER BY mr.scheduled_date ASC`, start, end)
}

// GetScheduledBefore fetches candidates; the overdue flag itself is
// derived in internal/lifecycle, never read from storage.
func (r *MaintenanceRequestRepository) GetScheduledBefore(ctx context.Context, day time.Time) ([]entities.MaintenanceRequest, error) {
	return r.collectRequests(ctx,
		"SELECT "+requestJoinedFields+requestJoins+`
		WHERE mr.scheduled_date IS NOT NULL AND mr.scheduled_date < $1 AND mr.stage <> $2
		ORDER BY mr.scheduled_date ASC`, day, constants.StageRepaired)
}

func (r *MaintenanceRequestRepository) DeleteRequest(ctx context.Context, id uuid.UUID) error {
	q := queryEngine(ctx, r.storage)
	result, err := q.Exec(ctx, "DELETE FROM maintenance_requests WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
