package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"gearguard/internal/entities"
)

type RequestAuditLogRepositoryInterface interface {
	AppendEntry(ctx context.Context, entry *entities.RequestAuditLog) error
	GetByRequest(ctx context.Context, requestID uuid.UUID) ([]entities.RequestAuditLog, error)
}

type RequestAuditLogRepository struct {
	storage *pgxpool.Pool
}

func NewRequestAuditLogRepository(storage *pgxpool.Pool) RequestAuditLogRepositoryInterface {
	return &RequestAuditLogRepository{storage: storage}
}

func (r *RequestAuditLogRepository) AppendEntry(ctx context.Context, entry *entities.RequestAuditLog) error {
	q := queryEngine(ctx, r.storage)
	return q.QueryRow(ctx, `
		INSERT INTO request_audit_logs (id, request_id, old_stage, new_stage, changed_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING changed_at
	`, entry.ID, entry.RequestID, entry.OldStage, entry.NewStage, entry.ChangedBy).Scan(&entry.ChangedAt)
}

func (r *RequestAuditLogRepository) GetByRequest(ctx context.Context, requestID uuid.UUID) ([]entities.RequestAuditLog, error) {
	q := queryEngine(ctx, r.storage)
	rows, err := q.Query(ctx, `
		SELECT al.id, al.request_id, al.old_stage, al.new_stage, al.changed_by, al.changed_at, u.name
		FROM request_audit_logs al
		JOIN users u ON u.id = al.changed_by
		WHERE al.request_id = $1
		ORDER BY al.changed_at ASC
	`, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []entities.RequestAuditLog
	for rows.Next() {
		var e entities.RequestAuditLog
		if err := rows.Scan(&e.ID, &e.RequestID, &e.OldStage, &e.NewStage, &e.ChangedBy, &e.ChangedAt, &e.ChangedByName); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
