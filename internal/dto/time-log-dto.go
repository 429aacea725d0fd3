package dto

import "github.com/google/uuid"

// No update or delete DTOs: time logs are append-only.
type CreateTimeLogDTO struct {
	RequestID    uuid.UUID `json:"request_id" validate:"required"`
	TechnicianID uuid.UUID `json:"technician_id" validate:"required"`
	HoursSpent   float64   `json:"hours_spent" validate:"required,gt=0"`
}

type TimeLogFilter struct {
	RequestID    *uuid.UUID
	TechnicianID *uuid.UUID
	Limit        int
	Page         int
}
