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

const equipmentJoinedFields = `e.id, e.name, e.serial_number, e.category, e.purchase_date,
	e.warranty_expiry, e.location, e.department_id, e.assigned_employee,
	e.maintenance_team_id, e.status, d.name, mt.name`

type EquipmentRepositoryInterface interface {
	GetEquipment(ctx context.Context, filter dto.EquipmentFilter, limit, offset uint64) ([]entities.Equipment, uint64, error)
	FindEquipment(ctx context.Context, id uuid.UUID) (*entities.Equipment, error)
	CreateEquipment(ctx context.Context, eq *entities.Equipment) error
	UpdateEquipment(ctx context.Context, id uuid.UUID, payload dto.UpdateEquipmentDTO) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status constants.EquipmentStatus) error
	DeleteEquipment(ctx context.Context, id uuid.UUID) error
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
}

func NewEquipmentRepository(storage *pgxpool.Pool) EquipmentRepositoryInterface {
	return &EquipmentRepository{storage: storage}
}

func scanEquipmentRow(row pgx.Row) (*entities.Equipment, error) {
	var e entities.Equipment
	err := row.Scan(
		&e.ID, &e.Name, &e.SerialNumber, &e.Category, &e.PurchaseDate,
		&e.WarrantyExpiry, &e.Location, &e.DepartmentID, &e.AssignedEmployee,
		&e.MaintenanceTeamID, &e.Status, &e.DepartmentName, &e.MaintenanceTeamName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *EquipmentRepository) GetEquipment(ctx context.Context, filter dto.EquipmentFilter, limit, offset uint64) ([]entities.Equipment, uint64, error) {
	q := queryEngine(ctx, r.storage)

	base := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.DepartmentID != nil {
			b = b.Where(sq.Eq{"e.department_id": *filter.DepartmentID})
		}
		if filter.TeamID != nil {
			b = b.Where(sq.Eq{"e.maintenance_team_id": *filter.TeamID})
		}
		if filter.Status != nil {
			b = b.Where(sq.Eq{"e.status": *filter.Status})
		}
		if filter.Search != "" {
			pattern := fmt.Sprintf("%%%s%%", filter.Search)
			b = b.Where(sq.Or{
				sq.Expr("e.name ILIKE ?", pattern),
				sq.Expr("e.serial_number ILIKE ?", pattern),
			})
		}
		return b
	}

	builder := base(sq.Select(equipmentJoinedFields).
		From("equipment e").
		Join("departments d ON d.id = e.department_id").
		Join("maintenance_teams mt ON mt.id = e.maintenance_team_id").
		OrderBy("e.name ASC").
		PlaceholderFormat(sq.Dollar))

	countBuilder := base(sq.Select("COUNT(*)").From("equipment e").PlaceholderFormat(sq.Dollar))

	query, args, err := builder.Limit(limit).Offset(offset).ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []entities.Equipment
	for rows.Next() {
		var e entities.Equipment
		if err := rows.Scan(
			&e.ID, &e.Name, &e.SerialNumber, &e.Category, &e.PurchaseDate,
			&e.WarrantyExpiry, &e.Location, &e.DepartmentID, &e.AssignedEmployee,
			&e.MaintenanceTeamID, &e.Status, &e.DepartmentName, &e.MaintenanceTeamName,
		); err != nil {
			return nil, 0, err
		}
		items = append(items, e)
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

	return items, total, nil
}

func (r *EquipmentRepository) FindEquipment(ctx context.Context, id uuid.UUID) (*entities.Equipment, error) {
	q := queryEngine(ctx, r.storage)
	return scanEquipmentRow(q.QueryRow(ctx, `
		SELECT `+equipmentJoinedFields+`
		FROM equipment e
		JOIN departments d ON d.id = e.department_id
		JOIN maintenance_teams mt ON mt.id = e.maintenance_team_id
		WHERE e.id = $1
	`, id))
}

func (r *EquipmentRepository) CreateEquipment(ctx context.Context, eq *entities.Equipment) error {
	q := queryEngine(ctx, r.storage)
	_, err := q.Exec(ctx, `
		INSERT INTO equipment (id, name, serial_number, category, purchase_date, warranty_expiry,
			location, department_id, assigned_employee, maintenance_team_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, eq.ID, eq.Name, eq.SerialNumber, eq.Category, eq.PurchaseDate, eq.WarrantyExpiry,
		eq.Location, eq.DepartmentID, eq.AssignedEmployee, eq.MaintenanceTeamID, eq.Status)
	if err != nil && isUniqueViolation(err) {
		return apperrors.ErrConflict
	}
	return err
}

func (r *EquipmentRepository) UpdateEquipment(ctx context.Context, id uuid.UUID, payload dto.UpdateEquipmentDTO) error {
	builder := sq.Update("equipment").PlaceholderFormat(sq.Dollar)
	changed := false

	if payload.Name != nil {
		builder = builder.Set("name", *payload.Name)
		changed = true
	}
	if payload.SerialNumber != nil {
		builder = builder.Set("serial_number", *payload.SerialNumber)
		changed = true
	}
	if payload.Category != nil {
		builder = builder.Set("category", *payload.Category)
		changed = true
	}
	if payload.PurchaseDate != nil {
		date, err := time.Parse("2006-01-02", *payload.PurchaseDate)
		if err != nil {
			return apperrors.ErrBadRequest
		}
		builder = builder.Set("purchase_date", date)
		changed = true
	}
	if payload.WarrantyExpiry != nil {
		date, err := time.Parse("2006-01-02", *payload.WarrantyExpiry)
		if err != nil {
			return apperrors.ErrBadRequest
		}
		builder = builder.Set("warranty_expiry", date)
		changed = true
	}
	if payload.Location != nil {
		builder = builder.Set("location", *payload.Location)
		changed = true
	}
	if payload.DepartmentID != nil {
		builder = builder.Set("department_id", *payload.DepartmentID)
		changed = true
	}
	if payload.AssignedEmployee != nil {
		builder = builder.Set("assigned_employee", *payload.AssignedEmployee)
		changed = true
	}
	if payload.MaintenanceTeamID != nil {
		builder = builder.Set("maintenance_team_id", *payload.MaintenanceTeamID)
		changed = true
	}
	if payload.Status != nil {
		builder = builder.Set("status", constants.EquipmentStatus(*payload.Status))
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

func (r *EquipmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status constants.EquipmentStatus) error {
	q := queryEngine(ctx, r.storage)
	result, err := q.Exec(ctx, "UPDATE equipment SET status = $1 WHERE id = $2", status, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) DeleteEquipment(ctx context.Context, id uuid.UUID) error {
	q := queryEngine(ctx, r.storage)
	result, err := q.Exec(ctx, "DELETE FROM equipment WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
