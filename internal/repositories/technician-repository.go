package repositories

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	apperrors "gearguard/pkg/errors"
)

const technicianJoinedFields = `t.id, t.user_id, t.team_id, t.is_active, u.name, mt.name`

type TechnicianRepositoryInterface interface {
	GetTechnicians(ctx context.Context, teamID *uuid.UUID, limit, offset uint64) ([]entities.Technician, uint64, error)
	FindTechnician(ctx context.Context, id uuid.UUID) (*entities.Technician, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entities.Technician, error)
	CreateTechnician(ctx context.Context, tech *entities.Technician) error
	UpdateTechnician(ctx context.Context, id uuid.UUID, payload dto.UpdateTechnicianDTO) error
	DeleteTechnician(ctx context.Context, id uuid.UUID) error
}

type TechnicianRepository struct {
	storage *pgxpool.Pool
}

func NewTechnicianRepository(storage *pgxpool.Pool) TechnicianRepositoryInterface {
	return &TechnicianRepository{storage: storage}
}

func scanTechnician(row pgx.Row) (*entities.Technician, error) {
	var t entities.Technician
	err := row.Scan(&t.ID, &t.UserID, &t.TeamID, &t.IsActive, &t.UserName, &t.TeamName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TechnicianRepository) GetTechnicians(ctx context.Context, teamID *uuid.UUID, limit, offset uint64) ([]entities.Technician, uint64, error) {
	q := queryEngine(ctx, r.storage)

	builder := sq.Select(technicianJoinedFields).
		From("technicians t").
		Join("users u ON u.id = t.user_id").
		Join("maintenance_teams mt ON mt.id = t.team_id").
		OrderBy("u.name ASC").
		PlaceholderFormat(sq.Dollar)
	countBuilder := sq.Select("COUNT(*)").From("technicians t").PlaceholderFormat(sq.Dollar)

	if teamID != nil {
		builder = builder.Where(sq.Eq{"t.team_id": *teamID})
		countBuilder = countBuilder.Where(sq.Eq{"t.team_id": *teamID})
	}

	query, args, err := builder.Limit(limit).Offset(offset).ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var techs []entities.Technician
	for rows.Next() {
		var t entities.Technician
		if err := rows.Scan(&t.ID, &t.UserID, &t.TeamID, &t.IsActive, &t.UserName, &t.TeamName); err != nil {
			return nil, 0, err
		}
		techs = append(techs, t)
	}
	if err := rows.Err(); err != nil {
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

	return techs, total, nil
}

func (r *TechnicianRepository) FindTechnician(ctx context.Context, id uuid.UUID) (*entities.Technician, error) {
	q := queryEngine(ctx, r.storage)
	return scanTechnician(q.QueryRow(ctx, `
		SELECT `+technicianJoinedFields+`
		FROM technicians t
		JOIN users u ON u.id = t.user_id
		JOIN maintenance_teams mt ON mt.id = t.team_id
		WHERE t.id = $1
	`, id))
}

func (r *TechnicianRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entities.Technician, error) {
	q := queryEngine(ctx, r.storage)
	return scanTechnician(q.QueryRow(ctx, `
		SELECT `+technicianJoinedFields+`
		FROM technicians t
		JOIN users u ON u.id = t.user_id
		JOIN maintenance_teams mt ON mt.id = t.team_id
		WHERE t.user_id = $1
	`, userID))
}

func (r *TechnicianRepository) CreateTechnician(ctx context.Context, tech *entities.Technician) error {
	q := queryEngine(ctx, r.storage)
	_, err := q.Exec(ctx, "INSERT INTO technicians (id, user_id, team_id, is_active) VALUES ($1, $2, $3, $4)",
		tech.ID, tech.UserID, tech.TeamID, tech.IsActive)
	if err != nil && isUniqueViolation(err) {
		return apperrors.ErrConflict
	}
	return err
}

func (r *TechnicianRepository) UpdateTechnician(ctx context.Context, id uuid.UUID, payload dto.UpdateTechnicianDTO) error {
	builder := sq.Update("technicians").PlaceholderFormat(sq.Dollar)
	changed := false

	if payload.TeamID != nil {
		builder = builder.Set("team_id", *payload.TeamID)
		changed = true
	}
	if payload.IsActive != nil {
		builder = builder.Set("is_active", *payload.IsActive)
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

func (r *TechnicianRepository) DeleteTechnician(ctx context.Context, id uuid.UUID) error {
	q := queryEngine(ctx, r.storage)
	result, err := q.Exec(ctx, "DELETE FROM technicians WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
