package dto

import (
	"github.com/google/uuid"
)

type CreateMaintenanceRequestDTO struct {
	Subject       string    `json:"subject" validate:"required,min=3,max=255"`
	Description   *string   `json:"description,omitempty"`
	RequestType   string    `json:"request_type" validate:"required,request_type"`
	EquipmentID   uuid.UUID `json:"equipment_id" validate:"required"`
	ScheduledDate *string   `json:"scheduled_date,omitempty" validate:"omitempty,date_format"`
}

type UpdateMaintenanceRequestDTO struct {
	Subject       *string    `json:"subject,omitempty" validate:"omitempty,min=3,max=255"`
	Description   *string    `json:"description,omitempty"`
	RequestType   *string    `json:"request_type,omitempty" validate:"omitempty,request_type"`
	ScheduledDate *string    `json:"scheduled_date,omitempty" validate:"omitempty,date_format"`
	AssignedTo    *uuid.UUID `json:"assigned_to,omitempty"`
	ClearAssignee bool       `json:"clear_assignee,omitempty"`
	Stage         *string    `json:"stage,omitempty" validate:"omitempty,request_stage"`
}

type ChangeStageDTO struct {
	Stage string `json:"stage" validate:"required,request_stage"`
}

type MaintenanceRequestFilter struct {
	EquipmentID *uuid.UUID
	AssignedTo  *uuid.UUID
	Stage       *string
	RequestType *string
	Search      string
	Limit       int
	Page        int
}

type AutoFillDTO struct {
	EquipmentCategory   *string   `json:"equipment_category"`
	EquipmentLocation   *string   `json:"equipment_location"`
	MaintenanceTeamID   uuid.UUID `json:"maintenance_team_id"`
	MaintenanceTeamName string    `json:"maintenance_team_name"`
}
