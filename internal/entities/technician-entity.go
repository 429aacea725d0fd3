package entities

import "github.com/google/uuid"

// Technician is 1:1 with a user of role=technician. Deactivated
// technicians keep their history but cannot receive assignments.
type Technician struct {
	ID       uuid.UUID `json:"id" db:"id"`
	UserID   uuid.UUID `json:"user_id" db:"user_id"`
	TeamID   uuid.UUID `json:"team_id" db:"team_id"`
	IsActive bool      `json:"is_active" db:"is_active"`

	// Joined, not columns.
	UserName *string `json:"user_name,omitempty" db:"-"`
	TeamName *string `json:"team_name,omitempty" db:"-"`
}
