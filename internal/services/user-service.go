package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"gearguard/internal/authz"
	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/utils"
)

type UserServiceInterface interface {
	GetUsers(ctx context.Context, filter utils.Filter) ([]entities.User, uint64, error)
	GetUser(ctx context.Context, id uuid.UUID) (*entities.User, error)
	CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*entities.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, payload dto.UpdateUserDTO) (*entities.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type UserService struct {
	userRepo repositories.UserRepositoryInterface
}

func NewUserService(userRepo repositories.UserRepositoryInterface) UserServiceInterface {
	return &UserService{userRepo: userRepo}
}

func requireCapability(ctx context.Context, capability authz.Capability) error {
	role, err := utils.RoleFromContext(ctx)
	if err != nil {
		return err
	}
	if !authz.Can(role, capability) {
		return apperrors.ErrForbidden
	}
	return nil
}

func (s *UserService) GetUsers(ctx context.Context, filter utils.Filter) ([]entities.User, uint64, error) {
	if err := requireCapability(ctx, authz.UsersView); err != nil {
		return nil, 0, err
	}
	return s.userRepo.GetUsers(ctx, filter)
}

// GetUser allows any authenticated user to read their own record; other
// records need the users:view capability.
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	actorID, err := utils.UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if actorID != id {
		if err := requireCapability(ctx, authz.UsersView); err != nil {
			return nil, err
		}
	}
	return s.userRepo.FindByID(ctx, id)
}

func (s *UserService) CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*entities.User, error) {
	if err := requireCapability(ctx, authz.UsersManage); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &entities.User{
		ID:           uuid.New(),
		Name:         payload.Name,
		Email:        payload.Email,
		PasswordHash: string(hash),
		Role:         constants.Role(payload.Role),
		IsActive:     true,
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, payload dto.UpdateUserDTO) (*entities.User, error) {
	if err := requireCapability(ctx, authz.UsersManage); err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateUser(ctx, id, payload); err != nil {
		return nil, err
	}
	return s.userRepo.FindByID(ctx, id)
}

func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := requireCapability(ctx, authz.UsersManage); err != nil {
		return err
	}

	actorID, err := utils.UserIDFromContext(ctx)
	if err != nil {
		return err
	}
	if actorID == id {
		return apperrors.NewHttpError(http.StatusBadRequest, "cannot delete own account", apperrors.ErrBadRequest, nil)
	}

	return s.userRepo.DeleteUser(ctx, id)
}
