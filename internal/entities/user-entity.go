package entities

import (
	"time"

	"github.com/google/uuid"

	"gearguard/pkg/constants"
)

type User struct {
	ID    uuid.UUID `json:"id" db:"id"`
	Name  string    `json:"name" db:"name"`
	Email string    `json:"email" db:"email"`

	PasswordHash string `json:"-" db:"password_hash"`

	Role     constants.Role `json:"role" db:"role"`
	IsActive bool           `json:"is_active" db:"is_active"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
