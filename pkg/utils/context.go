package utils

import (
	"context"

	"github.com/google/uuid"

	"gearguard/pkg/constants"
	"gearguard/pkg/contextkeys"
	apperrors "gearguard/pkg/errors"
)

// UserIDFromContext extracts the authenticated user's id placed there
// by the auth middleware.
func UserIDFromContext(ctx context.Context) (uuid.UUID, error) {
	id, ok := ctx.Value(contextkeys.UserIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, apperrors.ErrUserIDNotFoundInContext
	}
	return id, nil
}

func RoleFromContext(ctx context.Context) (constants.Role, error) {
	role, ok := ctx.Value(contextkeys.UserRoleKey).(constants.Role)
	if !ok || !role.IsValid() {
		return "", apperrors.ErrUserIDNotFoundInContext
	}
	return role, nil
}

func WithActor(ctx context.Context, userID uuid.UUID, role constants.Role) context.Context {
	ctx = context.WithValue(ctx, contextkeys.UserIDKey, userID)
	return context.WithValue(ctx, contextkeys.UserRoleKey, role)
}
