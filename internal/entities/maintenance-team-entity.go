package entities

import "github.com/google/uuid"

type MaintenanceTeam struct {
	ID             uuid.UUID `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Specialization *string   `json:"specialization,omitempty" db:"specialization"`
}
