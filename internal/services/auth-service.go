package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/config"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/service"
)

const (
	loginAttemptsKeyPrefix = "login_attempts:"
	refreshTokenKeyPrefix  = "refresh_token:"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error)
	Register(ctx context.Context, payload dto.RegisterDTO) (*dto.AuthResponseDTO, error)
	Me(ctx context.Context, userID uuid.UUID) (*entities.User, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairDTO, error)
	Logout(ctx context.Context, userID uuid.UUID) error
}

type AuthService struct {
	userRepo  repositories.UserRepositoryInterface
	cacheRepo repositories.CacheRepositoryInterface
	jwt       service.JWTService
	authCfg   config.AuthConfig
	logger    *zap.Logger
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	jwt service.JWTService,
	authCfg config.AuthConfig,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepo:  userRepo,
		cacheRepo: cacheRepo,
		jwt:       jwt,
		authCfg:   authCfg,
		logger:    logger,
	}
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error) {
	attemptsKey := loginAttemptsKeyPrefix + payload.Email

	if raw, err := s.cacheRepo.Get(ctx, attemptsKey); err == nil {
		if attempts, convErr := strconv.Atoi(raw); convErr == nil && attempts >= s.authCfg.MaxLoginAttempts {
			return nil, apperrors.ErrAccountLocked
		}
	}

	user, err := s.userRepo.FindByEmail(ctx, payload.Email)
	if err != nil {
		// Same failure path as a bad password so the response does not
		// leak which emails exist.
		s.recordFailedAttempt(ctx, attemptsKey)
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)); err != nil {
		s.recordFailedAttempt(ctx, attemptsKey)
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountInactive
	}

	if err := s.cacheRepo.Del(ctx, attemptsKey); err != nil {
		s.logger.Warn("failed to reset login attempt counter", zap.Error(err))
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponseDTO{User: user, Tokens: *tokens}, nil
}

func (s *AuthService) recordFailedAttempt(ctx context.Context, key string) {
	attempts, err := s.cacheRepo.Incr(ctx, key)
	if err != nil {
		s.logger.Warn("failed to record login attempt", zap.Error(err))
		return
	}
	if attempts == 1 {
		if _, err := s.cacheRepo.Expire(ctx, key, s.authCfg.LockoutDuration); err != nil {
			s.logger.Warn("failed to set lockout expiry", zap.Error(err))
		}
	}
}

func (s *AuthService) Register(ctx context.Context, payload dto.RegisterDTO) (*dto.AuthResponseDTO, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &entities.User{
		ID:           uuid.New(),
		Name:         payload.Name,
		Email:        payload.Email,
		PasswordHash: string(hash),
		Role:         constants.RoleUser,
		IsActive:     true,
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponseDTO{User: user, Tokens: *tokens}, nil
}

func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// Refresh rotates the token pair. The presented refresh token must
// match the one stored for the user, so logout and rotation both
// invalidate older tokens.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairDTO, error) {
	claims, err := s.jwt.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	stored, err := s.cacheRepo.Get(ctx, refreshTokenKeyPrefix+claims.UserID.String())
	if err != nil || stored != refreshToken {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountInactive
	}

	return s.issueTokens(ctx, user)
}

func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.cacheRepo.Del(ctx, refreshTokenKeyPrefix+userID.String())
}

func (s *AuthService) issueTokens(ctx context.Context, user *entities.User) (*dto.TokenPairDTO, error) {
	access, refresh, err := s.jwt.GenerateTokens(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("generating tokens: %w", err)
	}

	if err := s.cacheRepo.Set(ctx, refreshTokenKeyPrefix+user.ID.String(), refresh, s.jwt.RefreshTokenTTL()); err != nil {
		return nil, fmt.Errorf("storing refresh token: %w", err)
	}

	return &dto.TokenPairDTO{AccessToken: access, RefreshToken: refresh}, nil
}
