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

type DepartmentServiceInterface interface {
	GetDepartments(ctx context.Context, filter utils.Filter) ([]entities.Department, uint64, error)
	GetDepartment(ctx context.Context, id uuid.UUID) (*entities.Department, error)
	CreateDepartment(ctx context.Context, payload dto.CreateDepartmentDTO) (*entities.Department, error)
	UpdateDepartment(ctx context.Context, id uuid.UUID, payload dto.UpdateDepartmentDTO) (*entities.Department, error)
	DeleteDepartment(ctx context.Context, id uuid.UUID) error
}

type DepartmentService struct {
	departmentRepo repositories.DepartmentRepositoryInterface
}

func NewDepartmentService(departmentRepo repositories.DepartmentRepositoryInterface) DepartmentServiceInterface {
	return &DepartmentService{departmentRepo: departmentRepo}
}

func (s *DepartmentService) GetDepartments(ctx context.Context, filter utils.Filter) ([]entities.Department, uint64, error) {
	if err := requireCapability(ctx, authz.DepartmentsView); err != nil {
		return nil, 0, err
	}
	return s.departmentRepo.GetDepartments(ctx, filter)
}

func (s *DepartmentService) GetDepartment(ctx context.Context, id uuid.UUID) (*entities.Department, error) {
	if err := requireCapability(ctx, authz.DepartmentsView); err != nil {
		return nil, err
	}
	return s.departmentRepo.FindDepartment(ctx, id)
}

func (s *DepartmentService) CreateDepartment(ctx context.Context, payload dto.CreateDepartmentDTO) (*entities.Department, error) {
	if err := requireCapability(ctx, authz.DepartmentsManage); err != nil {
		return nil, err
	}

	dep := &entities.Department{
		ID:          uuid.New(),
		Name:        payload.Name,
		Description: payload.Description,
	}
	if err := s.departmentRepo.CreateDepartment(ctx, dep); err != nil {
		return nil, err
	}
	return dep, nil
}

func (s *DepartmentService) UpdateDepartment(ctx context.Context, id uuid.UUID, payload dto.UpdateDepartmentDTO) (*entities.Department, error) {
	if err := requireCapability(ctx, authz.DepartmentsManage); err != nil {
		return nil, err
	}
	if err := s.departmentRepo.UpdateDepartment(ctx, id, payload); err != nil {
		return nil, err
	}
	return s.departmentRepo.FindDepartment(ctx, id)
}

func (s *DepartmentService) DeleteDepartment(ctx context.Context, id uuid.UUID) error {
	if err := requireCapability(ctx, authz.DepartmentsManage); err != nil {
		return err
	}
	return s.departmentRepo.DeleteDepartment(ctx, id)
}
