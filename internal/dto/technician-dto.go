package dto

import "github.com/google/uuid"

type CreateTechnicianDTO struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
	TeamID uuid.UUID `json:"team_id" validate:"required"`
}

type UpdateTechnicianDTO struct {
	TeamID   *uuid.UUID `json:"team_id,omitempty"`
	IsActive *bool      `json:"is_active,omitempty"`
}
