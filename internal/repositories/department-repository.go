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

type DepartmentRepositoryInterface interface {
	GetDepartments(ctx context.Context, filter utils.Filter) ([]entities.Department, uint64, error)
	FindDepartment(ctx context.Context, id uuid.UUID) (*entities.Department, error)
	CreateDepartment(ctx context.Context, dep *entities.Department) error
	UpdateDepartment(ctx context.Context, id uuid.UUID, payload dto.UpdateDepartmentDTO) error
	DeleteDepartment(ctx context.Context, id uuid.UUID) error
}

type DepartmentRepository struct {
	storage *pgxpool.Pool
}

func NewDepartmentRepository(storage *pgxpool.Pool) DepartmentRepositoryInterface {
	return &DepartmentRepository{storage: storage}
}

func (r *DepartmentRepository) GetDepartments(ctx context.Context, filter utils.Filter) ([]entities.Department, uint64, error) {
	q := queryEngine(ctx, r.storage)

	builder := sq.Select("id, name, description").
		From("departments").
		OrderBy("name ASC").
		PlaceholderFormat(sq.Dollar)
	countBuilder := sq.Select("COUNT(*)").From("departments").PlaceholderFormat(sq.Dollar)

	if filter.Search != "" {
		cond := sq.Expr("name ILIKE ?", fmt.Sprintf("%%%s%%", filter.Search))
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

	var deps []entities.Department
	for rows.Next() {
		var d entities.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Description); err != nil {
			return nil, 0, err
		}
		deps = append(deps, d)
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

	return deps, total, nil
}

func (r *DepartmentRepository) FindDepartment(ctx context.Context, id uuid.UUID) (*entities.Department, error) {
	q := queryEngine(ctx, r.storage)
	var d entities.Department
	err := q.QueryRow(ctx, "SELECT id, name, description FROM departments WHERE id = $1", id).
		Scan(&d.ID, &d.Name, &d.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *DepartmentRepository) CreateDepartment(ctx context.Context, dep *entities.Department) error {
	q := queryEngine(ctx, r.storage)
	_, err := q.Exec(ctx, "INSERT INTO departments (id, name, description) VALUES ($1, $2, $3)",
		dep.ID, dep.Name, dep.Description)
	if err != nil && isUniqueViolation(err) {
		return apperrors.ErrConflict
	}
	return err
}

func (r *DepartmentRepository) UpdateDepartment(ctx context.Context, id uuid.UUID, payload dto.UpdateDepartmentDTO) error {
	builder := sq.Update("departments").PlaceholderFormat(sq.Dollar)
	changed := false

	if payload.Name != nil {
		builder = builder.Set("name", *payload.Name)
		changed = true
	}
	if payload.Description != nil {
		builder = builder.Set("description", *payload.Description)
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

func (r *DepartmentRepository) DeleteDepartment(ctx context.Context, id uuid.UUID) error {
	q := queryEngine(ctx, r.storage)
	result, err := q.Exec(ctx, "DELETE FROM departments WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
