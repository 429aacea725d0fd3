package entities

import (
	"time"

	"github.com/google/uuid"
)

// TimeLog rows are append-only: there are no update or delete paths.
type TimeLog struct {
	ID           uuid.UUID `json:"id" db:"id"`
	RequestID    uuid.UUID `json:"request_id" db:"request_id"`
	TechnicianID uuid.UUID `json:"technician_id" db:"technician_id"`
	HoursSpent   float64   `json:"hours_spent" db:"hours_spent"`
	LoggedAt     time.Time `json:"logged_at" db:"logged_at"`

	// Joined, not columns.
	RequestSubject *string `json:"request_subject,omitempty" db:"-"`
	TechnicianName *string `json:"technician_name,omitempty" db:"-"`
}
