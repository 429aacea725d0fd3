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

const timeLogJoinedFields = `tl.id, tl.request_id, tl.technician_id, tl.hours_spent, tl.logged_at,
	mr.subject, u.name`

// TimeLogRepositoryInterface deliberately has no update or delete
// methods: time logs are append-only.
type TimeLogRepositoryInterface interface {
	GetTimeLogs(ctx context.Context, filter dto.TimeLogFilter, limit, offset uint64) ([]entities.TimeLog, uint64, error)
	FindTimeLog(ctx context.Context, id uuid.UUID) (*entities.TimeLog, error)
	CreateTimeLog(ctx context.Context, log *entities.TimeLog) error
	SumHoursByRequest(ctx context.Context, requestID uuid.UUID) (float64, error)
}

type TimeLogRepository struct {
	storage *pgxpool.Pool
}

func NewTimeLogRepository(storage *pgxpool.Pool) TimeLogRepositoryInterface {
	return &TimeLogRepository{storage: storage}
}

func (r *TimeLogRepository) GetTimeLogs(ctx context.Context, filter dto.TimeLogFilter, limit, offset uint64) ([]entities.TimeLog, uint64, error) {
	q := queryEngine(ctx, r.storage)

	applyFilter := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.RequestID != nil {
			b = b.Where(sq.Eq{"tl.request_id": *filter.RequestID})
		}
		if filter.TechnicianID != nil {
			b = b.Where(sq.Eq{"tl.technician_id": *filter.TechnicianID})
		}
		return b
	}

	builder := applyFilter(sq.Select(timeLogJoinedFields).
		From("time_logs tl").
		Join("maintenance_requests mr ON mr.id = tl.request_id").
		Join("technicians t ON t.id = tl.technician_id").
		Join("users u ON u.id = t.user_id").
		OrderBy("tl.logged_at DESC").
		PlaceholderFormat(sq.Dollar))

	countBuilder := applyFilter(sq.Select("COUNT(*)").From("time_logs tl").PlaceholderFormat(sq.Dollar))

	query, args, err := builder.Limit(limit).Offset(offset).ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var logs []entities.TimeLog
	for rows.Next() {
		var l entities.TimeLog
		if err := rows.Scan(&l.ID, &l.RequestID, &l.TechnicianID, &l.HoursSpent, &l.LoggedAt,
			&l.RequestSubject, &l.TechnicianName); err != nil {
			return nil, 0, err
		}
		logs = append(logs, l)
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

	return logs, total, nil
}

func (r *TimeLogRepository) FindTimeLog(ctx context.Context, id uuid.UUID) (*entities.TimeLog, error) {
	q := queryEngine(ctx, r.storage)
	var l entities.TimeLog
	err := q.QueryRow(ctx, `
		SELECT `+timeLogJoinedFields+`
		FROM time_logs tl
		JOIN maintenance_requests mr ON mr.id = tl.request_id
		JOIN technicians t ON t.id = tl.technician_id
		JOIN users u ON u.id = t.user_id
		WHERE tl.id = $1
	`, id).Scan(&l.ID, &l.RequestID, &l.TechnicianID, &l.HoursSpent, &l.LoggedAt,
		&l.RequestSubject, &l.TechnicianName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (r *TimeLogRepository) CreateTimeLog(ctx context.Context, log *entities.TimeLog) error {
	q := queryEngine(ctx, r.storage)
	return q.QueryRow(ctx, `
		INSERT INTO time_logs (id, request_id, technician_id, hours_spent)
		VALUES ($1, $2, $3, $4)
		RETURNING logged_at
	`, log.ID, log.RequestID, log.TechnicianID, log.HoursSpent).Scan(&log.LoggedAt)
}

func (r *TimeLogRepository) SumHoursByRequest(ctx context.Context, requestID uuid.UUID) (float64, error) {
	q := queryEngine(ctx, r.storage)
	var total float64
	err := q.QueryRow(ctx,
		"SELECT COALESCE(SUM(hours_spent), 0) FROM time_logs WHERE request_id = $1",
		requestID).Scan(&total)
	return total, err
}
