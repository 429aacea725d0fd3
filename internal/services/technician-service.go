package services

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"gearguard/internal/authz"
	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/utils"
)

type TechnicianServiceInterface interface {
	GetTechnicians(ctx context.Context, teamID *uuid.UUID, filter utils.Filter) ([]entities.Technician, uint64, error)
	GetTechnician(ctx context.Context, id uuid.UUID) (*entities.Technician, error)
	CreateTechnician(ctx context.Context, payload dto.CreateTechnicianDTO) (*entities.Technician, error)
	UpdateTechnician(ctx context.Context, id uuid.UUID, payload dto.UpdateTechnicianDTO) (*entities.Technician, error)
	DeleteTechnician(ctx context.Context, id uuid.UUID) error
}

type TechnicianService struct {
	technicianRepo repositories.TechnicianRepositoryInterface
	userRepo       repositories.UserRepositoryInterface
	teamRepo       repositories.MaintenanceTeamRepositoryInterface
}

func NewTechnicianService(
	technicianRepo repositories.TechnicianRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	teamRepo repositories.MaintenanceTeamRepositoryInterface,
) TechnicianServiceInterface {
	return &TechnicianService{
		technicianRepo: technicianRepo,
		userRepo:       userRepo,
		teamRepo:       teamRepo,
	}
}

func (s *TechnicianService) GetTechnicians(ctx context.Context, teamID *uuid.UUID, filter utils.Filter) ([]entities.Technician, uint64, error) {
	if err := requireCapability(ctx, authz.TechniciansView); err != nil {
		return nil, 0, err
	}
	return s.technicianRepo.GetTechnicians(ctx, teamID, uint64(filter.Limit), filter.Offset())
}

func (s *TechnicianService) GetTechnician(ctx context.Context, id uuid.UUID) (*entities.Technician, error) {
	if err := requireCapability(ctx, authz.TechniciansView); err != nil {
		return nil, err
	}
	return s.technicianRepo.FindTechnician(ctx, id)
}

// CreateTechnician links a user to a maintenance team. The user must
// hold the technician role; one technician record per user.
func (s *TechnicianService) CreateTechnician(ctx context.Context, payload dto.CreateTechnicianDTO) (*entities.Technician, error) {
	if err := requireCapability(ctx, authz.TechniciansManage); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, payload.UserID)
	if err != nil {
		return nil, apperrors.NewHttpError(http.StatusBadRequest, "user not found", err, nil)
	}
	if user.Role != constants.RoleTechnician {
		return nil, apperrors.NewHttpError(http.StatusBadRequest, "user does not have the technician role", apperrors.ErrBadRequest, nil)
	}

	if _, err := s.teamRepo.FindTeam(ctx, payload.TeamID); err != nil {
		return nil, apperrors.NewHttpError(http.StatusBadRequest, "maintenance team not found", err, nil)
	}

	tech := &entities.Technician{
		ID:       uuid.New(),
		UserID:   payload.UserID,
		TeamID:   payload.TeamID,
		IsActive: true,
	}
	if err := s.technicianRepo.CreateTechnician(ctx, tech); err != nil {
		return nil, err
	}
	return s.technicianRepo.FindTechnician(ctx, tech.ID)
}

func (s *TechnicianService) UpdateTechnician(ctx context.Context, id uuid.UUID, payload dto.UpdateTechnicianDTO) (*entities.Technician, error) {
	if err := requireCapability(ctx, authz.TechniciansManage); err != nil {
		return nil, err
	}

	if payload.TeamID != nil {
		if _, err := s.teamRepo.FindTeam(ctx, *payload.TeamID); err != nil {
			return nil, apperrors.NewHttpError(http.StatusBadRequest, "maintenance team not found", err, nil)
		}
	}

	if err := s.technicianRepo.UpdateTechnician(ctx, id, payload); err != nil {
		return nil, err
	}
	return s.technicianRepo.FindTechnician(ctx, id)
}

func (s *TechnicianService) DeleteTechnician(ctx context.Context, id uuid.UUID) error {
	if err := requireCapability(ctx, authz.TechniciansManage); err != nil {
		return err
	}
	return s.technicianRepo.DeleteTechnician(ctx, id)
}
