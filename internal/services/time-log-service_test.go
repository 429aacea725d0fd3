package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/utils"
)

func newTimeLogFixture(t *testing.T) (TimeLogServiceInterface, *entities.MaintenanceRequest, *entities.Technician) {
	t.Helper()

	timeLogRepo := newStubTimeLogRepo()
	requestRepo := newStubRequestRepo()
	technicianRepo := newStubTechnicianRepo()

	req := &entities.MaintenanceRequest{
		ID:          uuid.New(),
		Subject:     "Press leaking oil",
		RequestType: constants.RequestTypeCorrective,
		EquipmentID: uuid.New(),
		DetectedBy:  uuid.New(),
		Stage:       constants.StageInProgress,
	}
	require.NoError(t, requestRepo.CreateRequest(context.Background(), req))

	tech := &entities.Technician{ID: uuid.New(), UserID: uuid.New(), TeamID: uuid.New(), IsActive: true}
	require.NoError(t, technicianRepo.CreateTechnician(context.Background(), tech))

	return NewTimeLogService(timeLogRepo, requestRepo, technicianRepo), req, tech
}

func TestTechnicianLogsOwnTime(t *testing.T) {
	svc, req, tech := newTimeLogFixture(t)
	ctx := utils.WithActor(context.Background(), tech.UserID, constants.RoleTechnician)

	log, err := svc.CreateTimeLog(ctx, dto.CreateTimeLogDTO{
		RequestID:    req.ID,
		TechnicianID: tech.ID,
		HoursSpent:   2.5,
	})
	require.NoError(t, err)
	assert.Equal(t, 2.5, log.HoursSpent)
	assert.False(t, log.LoggedAt.IsZero())
}

func TestTechnicianCannotLogForAnother(t *testing.T) {
	svc, req, tech := newTimeLogFixture(t)
	otherUserID := uuid.New()
	ctx := utils.WithActor(context.Background(), otherUserID, constants.RoleTechnician)

	_, err := svc.CreateTimeLog(ctx, dto.CreateTimeLogDTO{
		RequestID:    req.ID,
		TechnicianID: tech.ID,
		HoursSpent:   1,
	})
	require.Error(t, err)
	assert.Equal(t, 403, apperrors.StatusCode(err))
}

func TestManagerLogsOnBehalf(t *testing.T) {
	svc, req, tech := newTimeLogFixture(t)
	ctx := utils.WithActor(context.Background(), uuid.New(), constants.RoleManager)

	_, err := svc.CreateTimeLog(ctx, dto.CreateTimeLogDTO{
		RequestID:    req.ID,
		TechnicianID: tech.ID,
		HoursSpent:   4,
	})
	assert.NoError(t, err)
}

func TestPlainUserCannotLogTime(t *testing.T) {
	svc, req, tech := newTimeLogFixture(t)
	ctx := utils.WithActor(context.Background(), uuid.New(), constants.RoleUser)

	_, err := svc.CreateTimeLog(ctx, dto.CreateTimeLogDTO{
		RequestID:    req.ID,
		TechnicianID: tech.ID,
		HoursSpent:   1,
	})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestCreateTimeLogRejectsNonPositiveHours(t *testing.T) {
	svc, req, tech := newTimeLogFixture(t)
	ctx := utils.WithActor(context.Background(), tech.UserID, constants.RoleTechnician)

	for _, hours := range []float64{0, -1.5} {
		_, err := svc.CreateTimeLog(ctx, dto.CreateTimeLogDTO{
			RequestID:    req.ID,
			TechnicianID: tech.ID,
			HoursSpent:   hours,
		})
		require.Error(t, err)
		assert.Equal(t, 422, apperrors.StatusCode(err))
	}
}

func TestCreateTimeLogRejectsUnknownRequest(t *testing.T) {
	svc, _, tech := newTimeLogFixture(t)
	ctx := utils.WithActor(context.Background(), tech.UserID, constants.RoleTechnician)

	_, err := svc.CreateTimeLog(ctx, dto.CreateTimeLogDTO{
		RequestID:    uuid.New(),
		TechnicianID: tech.ID,
		HoursSpent:   1,
	})
	assert.Error(t, err)
}
