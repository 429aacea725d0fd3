package services

import (
	"context"

	"github.com/google/uuid"

	"gearguard/internal/authz"
	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/utils"
)

type MaintenanceTeamServiceInterface interface {
	GetTeams(ctx context.Context, filter utils.Filter) ([]entities.MaintenanceTeam, uint64, error)
	GetTeam(ctx context.Context, id uuid.UUID) (*entities.MaintenanceTeam, error)
	CreateTeam(ctx context.Context, payload dto.CreateMaintenanceTeamDTO) (*entities.MaintenanceTeam, error)
	UpdateTeam(ctx context.Context, id uuid.UUID, payload dto.UpdateMaintenanceTeamDTO) (*entities.MaintenanceTeam, error)
	DeleteTeam(ctx context.Context, id uuid.UUID) error
}

type MaintenanceTeamService struct {
	teamRepo repositories.MaintenanceTeamRepositoryInterface
}

func NewMaintenanceTeamService(teamRepo repositories.MaintenanceTeamRepositoryInterface) MaintenanceTeamServiceInterface {
	return &MaintenanceTeamService{teamRepo: teamRepo}
}

func (s *MaintenanceTeamService) GetTeams(ctx context.Context, filter utils.Filter) ([]entities.MaintenanceTeam, uint64, error) {
	if err := requireCapability(ctx, authz.TeamsView); err != nil {
		return nil, 0, err
	}
	return s.teamRepo.GetTeams(ctx, filter)
}

func (s *MaintenanceTeamService) GetTeam(ctx context.Context, id uuid.UUID) (*entities.MaintenanceTeam, error) {
	if err := requireCapability(ctx, authz.TeamsView); err != nil {
		return nil, err
	}
	return s.teamRepo.FindTeam(ctx, id)
}

func (s *MaintenanceTeamService) CreateTeam(ctx context.Context, payload dto.CreateMaintenanceTeamDTO) (*entities.MaintenanceTeam, error) {
	if err := requireCapability(ctx, authz.TeamsManage); err != nil {
		return nil, err
	}

	team := &entities.MaintenanceTeam{
		ID:             uuid.New(),
		Name:           payload.Name,
		Specialization: payload.Specialization,
	}
	if err := s.teamRepo.CreateTeam(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *MaintenanceTeamService) UpdateTeam(ctx context.Context, id uuid.UUID, payload dto.UpdateMaintenanceTeamDTO) (*entities.MaintenanceTeam, error) {
	if err := requireCapability(ctx, authz.TeamsManage); err != nil {
		return nil, err
	}
	if err := s.teamRepo.UpdateTeam(ctx, id, payload); err != nil {
		return nil, err
	}
	return s.teamRepo.FindTeam(ctx, id)
}

func (s *MaintenanceTeamService) DeleteTeam(ctx context.Context, id uuid.UUID) error {
	if err := requireCapability(ctx, authz.TeamsManage); err != nil {
		return err
	}
	return s.teamRepo.DeleteTeam(ctx, id)
}
