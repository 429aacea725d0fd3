package dto

import "github.com/google/uuid"

type CreateEquipmentDTO struct {
	Name              string    `json:"name" validate:"required,min=2,max=255"`
	SerialNumber      string    `json:"serial_number" validate:"required,min=1,max=255"`
	Category          *string   `json:"category,omitempty"`
	PurchaseDate      *string   `json:"purchase_date,omitempty" validate:"omitempty,date_format"`
	WarrantyExpiry    *string   `json:"warranty_expiry,omitempty" validate:"omitempty,date_format"`
	Location          *string   `json:"location,omitempty"`
	DepartmentID      uuid.UUID `json:"department_id" validate:"required"`
	AssignedEmployee  *string   `json:"assigned_employee,omitempty"`
	MaintenanceTeamID uuid.UUID `json:"maintenance_team_id" validate:"required"`
}

type UpdateEquipmentDTO struct {
	Name              *string    `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	SerialNumber      *string    `json:"serial_number,omitempty" validate:"omitempty,min=1,max=255"`
	Category          *string    `json:"category,omitempty"`
	PurchaseDate      *string    `json:"purchase_date,omitempty" validate:"omitempty,date_format"`
	WarrantyExpiry    *string    `json:"warranty_expiry,omitempty" validate:"omitempty,date_format"`
	Location          *string    `json:"location,omitempty"`
	DepartmentID      *uuid.UUID `json:"department_id,omitempty"`
	AssignedEmployee  *string    `json:"assigned_employee,omitempty"`
	MaintenanceTeamID *uuid.UUID `json:"maintenance_team_id,omitempty"`
	Status            *string    `json:"status,omitempty" validate:"omitempty,equipment_status"`
}

type EquipmentFilter struct {
	DepartmentID *uuid.UUID
	TeamID       *uuid.UUID
	Status       *string
	Search       string
	Limit        int
	Page         int
}
