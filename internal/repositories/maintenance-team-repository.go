package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/utils"
)

type MaintenanceTeamRepositoryInterface interface {
	GetTeams(ctx context.Context, filter utils.Filter) ([]entities.MaintenanceTeam, uint64, error)
	FindTeam(ctx context.Context, id uuid.UUID) (*entities.MaintenanceTeam, error)
	CreateTeam(ctx context.Context, team *entities.MaintenanceTeam) error
	UpdateTeam(ctx context.Context, id uuid.UUID, payload dto.UpdateMaintenanceTeamDTO) error
	DeleteTeam(ctx context.Context, id uuid.UUID) error
}

type MaintenanceTeamRepository struct {
	storage *pgxpool.Pool
}

func NewMaintenanceTeamRepository(storage *pgxpool.Pool) MaintenanceTeamRepositoryInterface {
	return &MaintenanceTeamRepository{storage: storage}
}

func (r *MaintenanceTeamRepository) GetTeams(ctx context.Context, filter utils.Filter) ([]entities.MaintenanceTeam, uint64, error) {
	q := queryEngine(ctx, r.storage)

	builder := sq.Select("id, name, specialization").
		From("maintenance_teams").
		OrderBy("name ASC").
		PlaceholderFormat(sq.Dollar)
	countBuilder := sq.Select("COUNT(*)").From("maintenance_teams").PlaceholderFormat(sq.Dollar)

	if filter.Search != "" {
		pattern := fmt.Sprintf("%%%s%%", filter.Search)
		cond := sq.Or{
			sq.Expr("name ILIKE ?", pattern),
			sq.Expr("specialization ILIKE ?", pattern),
		}
		builder = builder.Where(cond)
		countBuilder = countBuilder.Where(cond)
	}

	query, args, err := builder.Limit(uint64(filter.Limit)).Offset(filter.Offset()).ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var teams []entities.MaintenanceTeam
	for rows.Next() {
		var t entities.MaintenanceTeam
		if err := rows.Scan(&t.ID, &t.Name, &t.Specialization); err != nil {
			return nil, 0, err
		}
		teams = append(teams, t)
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

	return teams, total, nil
}

func (r *MaintenanceTeamRepository) FindTeam(ctx context.Context, id uuid.UUID) (*entities.MaintenanceTeam, error) {
	q := queryEngine(ctx, r.storage)
	var t entities.MaintenanceTeam
	err := q.QueryRow(ctx, "SELECT id, name, specialization FROM maintenance_teams WHERE id = $1", id).
		Scan(&t.ID, &t.Name, &t.Specialization)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *MaintenanceTeamRepository) CreateTeam(ctx context.Context, team *entities.MaintenanceTeam) error {
	q := queryEngine(ctx, r.storage)
	_, err := q.Exec(ctx, "INSERT INTO maintenance_teams (id, name, specialization) VALUES ($1, $2, $3)",
		team.ID, team.Name, team.Specialization)
	if err != nil && isUniqueViolation(err) {
		return apperrors.ErrConflict
	}
	return err
}

func (r *MaintenanceTeamRepository) UpdateTeam(ctx context.Context, id uuid.UUID, payload dto.UpdateMaintenanceTeamDTO) error {
	builder := sq.Update("maintenance_teams").PlaceholderFormat(sq.Dollar)
	changed := false

	if payload.Name != nil {
		builder = builder.Set("name", *payload.Name)
		changed = true
	}
	if payload.Specialization != nil {
		builder = builder.Set("specialization", *payload.Specialization)
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
		if isUniqueViolation(err) {
			return apperrors.ErrConflict
		}
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *MaintenanceTeamRepository) DeleteTeam(ctx context.Context, id uuid.UUID) error {
	q := queryEngine(ctx, r.storage)
	result, err := q.Exec(ctx, "DELETE FROM maintenance_teams WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
