package entities

import (
	"time"

	"github.com/google/uuid"

	"gearguard/pkg/constants"
)

type Equipment struct {
	ID                uuid.UUID                 `json:"id" db:"id"`
	Name              string                    `json:"name" db:"name"`
	SerialNumber      string                    `json:"serial_number" db:"serial_number"`
	Category          *string                   `json:"category,omitempty" db:"category"`
	PurchaseDate      *time.Time                `json:"purchase_date,omitempty" db:"purchase_date"`
	WarrantyExpiry    *time.Time                `json:"warranty_expiry,omitempty" db:"warranty_expiry"`
	Location          *string                   `json:"location,omitempty" db:"location"`
	DepartmentID      uuid.UUID                 `json:"department_id" db:"department_id"`
	AssignedEmployee  *string                   `json:"assigned_employee,omitempty" db:"assigned_employee"`
	MaintenanceTeamID uuid.UUID                 `json:"maintenance_team_id" db:"maintenance_team_id"`
	Status            constants.EquipmentStatus `json:"status" db:"status"`

	// Joined, not columns.
	DepartmentName      *string `json:"department_name,omitempty" db:"-"`
	MaintenanceTeamName *string `json:"maintenance_team_name,omitempty" db:"-"`
}
