package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/utils"
)

const userFields = "id, name, email, password_hash, role, is_active, created_at"

type UserRepositoryInterface interface {
	GetUsers(ctx context.Context, filter utils.Filter) ([]entities.User, uint64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	CreateUser(ctx context.Context, user *entities.User) error
	UpdateUser(ctx context.Context, id uuid.UUID, payload dto.UpdateUserDTO) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type UserRepository struct {
	storage *pgxpool.Pool
}

func NewUserRepository(storage *pgxpool.Pool) UserRepositoryInterface {
	return &UserRepository{storage: storage}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetUsers(ctx context.Context, filter utils.Filter) ([]entities.User, uint64, error) {
	q := queryEngine(ctx, r.storage)

	builder := sq.Select(userFields).
		From("users").
		OrderBy("created_at DESC").
		PlaceholderFormat(sq.Dollar)

	countBuilder := sq.Select("COUNT(*)").From("users").PlaceholderFormat(sq.Dollar)

	if filter.Search != "" {
		pattern := fmt.Sprintf("%%%s%%", filter.Search)
		cond := sq.Or{
			sq.Expr("name ILIKE ?", pattern),
			sq.Expr("email ILIKE ?", pattern),
		}
		builder = builder.Where(cond)
		countBuilder = countBuilder.Where(cond)
	}

	builder = builder.Limit(uint64(filter.Limit)).Offset(filter.Offset())

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []entities.User
	for rows.Next() {
		var u entities.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt); err != nil {
			return nil, 0, err
		}
		users = append(users, u)
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

	return users, total, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	q := queryEngine(ctx, r.storage)
	return scanUser(q.QueryRow(ctx,
		fmt.Sprintf("SELECT %s FROM users WHERE id = $1", userFields), id))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	q := queryEngine(ctx, r.storage)
	return scanUser(q.QueryRow(ctx,
		fmt.Sprintf("SELECT %s FROM users WHERE email = $1", userFields), email))
}

func (r *UserRepository) CreateUser(ctx context.Context, user *entities.User) error {
	q := queryEngine(ctx, r.storage)
	err := q.QueryRow(ctx, `
		INSERT INTO users (id, name, email, password_hash, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, user.ID, user.Name, user.Email, user.PasswordHash, user.Role, user.IsActive).Scan(&user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrConflict
		}
		return err
	}
	return nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, id uuid.UUID, payload dto.UpdateUserDTO) error {
	builder := sq.Update("users").PlaceholderFormat(sq.Dollar)
	changed := false

	if payload.Name != nil {
		builder = builder.Set("name", *payload.Name)
		changed = true
	}
	if payload.Email != nil {
		builder = builder.Set("email", *payload.Email)
		changed = true
	}
	if payload.Role != nil {
		builder = builder.Set("role", constants.Role(*payload.Role))
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

func (r *UserRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	q := queryEngine(ctx, r.storage)
	result, err := q.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
