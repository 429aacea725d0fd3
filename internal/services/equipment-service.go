package services

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"gearguard/internal/authz"
	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
)

type EquipmentServiceInterface interface {
	GetEquipment(ctx context.Context, filter dto.EquipmentFilter) ([]entities.Equipment, uint64, error)
	GetEquipmentByID(ctx context.Context, id uuid.UUID) (*entities.Equipment, error)
	CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*entities.Equipment, error)
	UpdateEquipment(ctx context.Context, id uuid.UUID, payload dto.UpdateEquipmentDTO) (*entities.Equipment, error)
	ScrapEquipment(ctx context.Context, id uuid.UUID) (*entities.Equipment, error)
	DeleteEquipment(ctx context.Context, id uuid.UUID) error
}

type EquipmentService struct {
	equipmentRepo  repositories.EquipmentRepositoryInterface
	departmentRepo repositories.DepartmentRepositoryInterface
	teamRepo       repositories.MaintenanceTeamRepositoryInterface
}

func NewEquipmentService(
	equipmentRepo repositories.EquipmentRepositoryInterface,
	departmentRepo repositories.DepartmentRepositoryInterface,
	teamRepo repositories.MaintenanceTeamRepositoryInterface,
) EquipmentServiceInterface {
	return &EquipmentService{
		equipmentRepo:  equipmentRepo,
		departmentRepo: departmentRepo,
		teamRepo:       teamRepo,
	}
}

func parseDatePtr(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	date, err := time.Parse("2006-01-02", *value)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("invalid date %q, expected YYYY-MM-DD", *value)
	}
	return &date, nil
}

func listWindow(limit, page int) (uint64, uint64) {
	if limit <= 0 {
		limit = 50
	}
	if page <= 1 {
		return uint64(limit), 0
	}
	return uint64(limit), uint64((page - 1) * limit)
}

func (s *EquipmentService) GetEquipment(ctx context.Context, filter dto.EquipmentFilter) ([]entities.Equipment, uint64, error) {
	if err := requireCapability(ctx, authz.EquipmentView); err != nil {
		return nil, 0, err
	}
	limit, offset := listWindow(filter.Limit, filter.Page)
	return s.equipmentRepo.GetEquipment(ctx, filter, limit, offset)
}

func (s *EquipmentService) GetEquipmentByID(ctx context.Context, id uuid.UUID) (*entities.Equipment, error) {
	if err := requireCapability(ctx, authz.EquipmentView); err != nil {
		return nil, err
	}
	return s.equipmentRepo.FindEquipment(ctx, id)
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*entities.Equipment, error) {
	if err := requireCapability(ctx, authz.EquipmentCreate); err != nil {
		return nil, err
	}

	if _, err := s.departmentRepo.FindDepartment(ctx, payload.DepartmentID); err != nil {
		return nil, apperrors.NewHttpError(http.StatusBadRequest, "department not found", err, nil)
	}
	if _, err := s.teamRepo.FindTeam(ctx, payload.MaintenanceTeamID); err != nil {
		return nil, apperrors.NewHttpError(http.StatusBadRequest, "maintenance team not found", err, nil)
	}

	purchaseDate, err := parseDatePtr(payload.PurchaseDate)
	if err != nil {
		return nil, err
	}
	warrantyExpiry, err := parseDatePtr(payload.WarrantyExpiry)
	if err != nil {
		return nil, err
	}

	eq := &entities.Equipment{
		ID:                uuid.New(),
		Name:              payload.Name,
		SerialNumber:      payload.SerialNumber,
		Category:          payload.Category,
		PurchaseDate:      purchaseDate,
		WarrantyExpiry:    warrantyExpiry,
		Location:          payload.Location,
		DepartmentID:      payload.DepartmentID,
		AssignedEmployee:  payload.AssignedEmployee,
		MaintenanceTeamID: payload.MaintenanceTeamID,
		Status:            constants.EquipmentActive,
	}
	if err := s.equipmentRepo.CreateEquipment(ctx, eq); err != nil {
		return nil, err
	}
	return s.equipmentRepo.FindEquipment(ctx, eq.ID)
}

func (s *EquipmentService) UpdateEquipment(ctx context.Context, id uuid.UUID, payload dto.UpdateEquipmentDTO) (*entities.Equipment, error) {
	if err := requireCapability(ctx, authz.EquipmentUpdate); err != nil {
		return nil, err
	}

	if payload.DepartmentID != nil {
		if _, err := s.departmentRepo.FindDepartment(ctx, *payload.DepartmentID); err != nil {
			return nil, apperrors.NewHttpError(http.StatusBadRequest, "department not found", err, nil)
		}
	}
	if payload.MaintenanceTeamID != nil {
		if _, err := s.teamRepo.FindTeam(ctx, *payload.MaintenanceTeamID); err != nil {
			return nil, apperrors.NewHttpError(http.StatusBadRequest, "maintenance team not found", err, nil)
		}
	}

	if err := s.equipmentRepo.UpdateEquipment(ctx, id, payload); err != nil {
		return nil, err
	}
	return s.equipmentRepo.FindEquipment(ctx, id)
}

// ScrapEquipment marks the unit scrapped. Requests already open against
// it are untouched; their lifecycle is handled separately.
func (s *EquipmentService) ScrapEquipment(ctx context.Context, id uuid.UUID) (*entities.Equipment, error) {
	if err := requireCapability(ctx, authz.EquipmentScrap); err != nil {
		return nil, err
	}

	eq, err := s.equipmentRepo.FindEquipment(ctx, id)
	if err != nil {
		return nil, err
	}
	if eq.Status == constants.EquipmentScrapped {
		return nil, apperrors.NewHttpError(http.StatusConflict, "equipment is already scrapped", apperrors.ErrConflict, nil)
	}

	if err := s.equipmentRepo.UpdateStatus(ctx, id, constants.EquipmentScrapped); err != nil {
		return nil, err
	}
	return s.equipmentRepo.FindEquipment(ctx, id)
}

func (s *EquipmentService) DeleteEquipment(ctx context.Context, id uuid.UUID) error {
	if err := requireCapability(ctx, authz.EquipmentDelete); err != nil {
		return err
	}
	return s.equipmentRepo.DeleteEquipment(ctx, id)
}
