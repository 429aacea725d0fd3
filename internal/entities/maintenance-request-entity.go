package entities

import (
	"time"

	"github.com/google/uuid"

	"gearguard/pkg/constants"
)

type MaintenanceRequest struct {
	ID            uuid.UUID             `json:"id" db:"id"`
	Subject       string                `json:"subject" db:"subject"`
	Description   *string               `json:"description,omitempty" db:"description"`
	RequestType   constants.RequestType `json:"request_type" db:"request_type"`
	EquipmentID   uuid.UUID             `json:"equipment_id" db:"equipment_id"`
	DetectedBy    uuid.UUID             `json:"detected_by" db:"detected_by"`
	AssignedTo    *uuid.UUID            `json:"assigned_to,omitempty" db:"assigned_to"`
	ScheduledDate *time.Time            `json:"scheduled_date,omitempty" db:"scheduled_date"`
	Stage         constants.Stage       `json:"stage" db:"stage"`
	CreatedAt     time.Time             `json:"created_at" db:"created_at"`

	// Derived at read time, never trusted from storage.
	Overdue         bool    `json:"overdue" db:"-"`
	TotalHoursSpent float64 `json:"total_hours_spent" db:"-"`

	// Joined, not columns.
	EquipmentName       *string    `json:"equipment_name,omitempty" db:"-"`
	EquipmentCategory   *string    `json:"equipment_category,omitempty" db:"-"`
	EquipmentLocation   *string    `json:"equipment_location,omitempty" db:"-"`
	DetectedByName      *string    `json:"detected_by_name,omitempty" db:"-"`
	AssignedToName      *string    `json:"assigned_to_name,omitempty" db:"-"`
	MaintenanceTeamID   *uuid.UUID `json:"maintenance_team_id,omitempty" db:"-"`
	MaintenanceTeamName *string    `json:"maintenance_team_name,omitempty" db:"-"`
}
