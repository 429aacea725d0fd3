package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/utils"
)

type requestServiceFixture struct {
	svc          MaintenanceRequestServiceInterface
	requestRepo  *stubRequestRepo
	timeLogRepo  *stubTimeLogRepo
	equipment    *entities.Equipment
	technician   *entities.Technician
	techUserID   uuid.UUID
	auditRepo    *stubAuditRepo
	managerID    uuid.UUID
	plainUserID  uuid.UUID
	technicianID uuid.UUID
}

func newRequestServiceFixture(t *testing.T) *requestServiceFixture {
	t.Helper()

	requestRepo := newStubRequestRepo()
	equipmentRepo := newStubEquipmentRepo()
	technicianRepo := newStubTechnicianRepo()
	timeLogRepo := newStubTimeLogRepo()
	auditRepo := &stubAuditRepo{}

	eq := &entities.Equipment{
		ID:                uuid.New(),
		Name:              "Hydraulic Press A1",
		SerialNumber:      "HP-A1-0001",
		DepartmentID:      uuid.New(),
		MaintenanceTeamID: uuid.New(),
		Status:            constants.EquipmentActive,
	}
	require.NoError(t, equipmentRepo.CreateEquipment(context.Background(), eq))

	techUserID := uuid.New()
	tech := &entities.Technician{
		ID:       uuid.New(),
		UserID:   techUserID,
		TeamID:   eq.MaintenanceTeamID,
		IsActive: true,
	}
	require.NoError(t, technicianRepo.CreateTechnician(context.Background(), tech))

	svc := NewMaintenanceRequestService(requestRepo, equipmentRepo, technicianRepo, auditRepo, timeLogRepo, stubTxManager{}, zap.NewNop())

	return &requestServiceFixture{
		svc:          svc,
		requestRepo:  requestRepo,
		timeLogRepo:  timeLogRepo,
		equipment:    eq,
		technician:   tech,
		techUserID:   techUserID,
		auditRepo:    auditRepo,
		managerID:    uuid.New(),
		plainUserID:  uuid.New(),
		technicianID: tech.ID,
	}
}

func (f *requestServiceFixture) asManager() context.Context {
	return utils.WithActor(context.Background(), f.managerID, constants.RoleManager)
}

func (f *requestServiceFixture) asTechnician() context.Context {
	return utils.WithActor(context.Background(), f.techUserID, constants.RoleTechnician)
}

func (f *requestServiceFixture) asUser() context.Context {
	return utils.WithActor(context.Background(), f.plainUserID, constants.RoleUser)
}

func (f *requestServiceFixture) createRequest(t *testing.T, ctx context.Context) *entities.MaintenanceRequest {
	t.Helper()
	req, err := f.svc.CreateRequest(ctx, dto.CreateMaintenanceRequestDTO{
		Subject:     "Press leaking oil",
		RequestType: string(constants.RequestTypeCorrective),
		EquipmentID: f.equipment.ID,
	})
	require.NoError(t, err)
	return req
}

func TestCreateRequestStartsAtNewWithAuditEntry(t *testing.T) {
	f := newRequestServiceFixture(t)

	req := f.createRequest(t, f.asUser())

	assert.Equal(t, constants.StageNew, req.Stage)
	assert.Equal(t, f.plainUserID, req.DetectedBy)
	assert.Nil(t, req.AssignedTo)

	history, err := f.auditRepo.GetByRequest(context.Background(), req.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Nil(t, history[0].OldStage)
	assert.Equal(t, constants.StageNew, history[0].NewStage)
}

func TestCreatePreventiveRequiresScheduledDate(t *testing.T) {
	f := newRequestServiceFixture(t)

	_, err := f.svc.CreateRequest(f.asManager(), dto.CreateMaintenanceRequestDTO{
		Subject:     "Quarterly inspection",
		RequestType: string(constants.RequestTypePreventive),
		EquipmentID: f.equipment.ID,
	})
	require.Error(t, err)

	date := "2026-09-15"
	req, err := f.svc.CreateRequest(f.asManager(), dto.CreateMaintenanceRequestDTO{
		Subject:       "Quarterly inspection",
		RequestType:   string(constants.RequestTypePreventive),
		EquipmentID:   f.equipment.ID,
		ScheduledDate: &date,
	})
	require.NoError(t, err)
	require.NotNil(t, req.ScheduledDate)
}

func TestCreateRequestRejectsScrappedEquipment(t *testing.T) {
	f := newRequestServiceFixture(t)
	equipmentRepo := f.svc.(*MaintenanceRequestService).equipmentRepo.(*stubEquipmentRepo)
	require.NoError(t, equipmentRepo.UpdateStatus(context.Background(), f.equipment.ID, constants.EquipmentScrapped))

	_, err := f.svc.CreateRequest(f.asUser(), dto.CreateMaintenanceRequestDTO{
		Subject:     "Fix the scrapped press",
		RequestType: string(constants.RequestTypeCorrective),
		EquipmentID: f.equipment.ID,
	})
	assert.Error(t, err)
}

func TestTechnicianWorksRequestThroughLifecycle(t *testing.T) {
	f := newRequestServiceFixture(t)
	req := f.createRequest(t, f.asUser())

	claimed, err := f.svc.AssignSelf(f.asTechnician(), req.ID)
	require.NoError(t, err)
	require.NotNil(t, claimed.AssignedTo)
	assert.Equal(t, f.technicianID, *claimed.AssignedTo)

	started, err := f.svc.ChangeStage(f.asTechnician(), req.ID, dto.ChangeStageDTO{Stage: string(constants.StageInProgress)})
	require.NoError(t, err)
	assert.Equal(t, constants.StageInProgress, started.Stage)

	repaired, err := f.svc.ChangeStage(f.asTechnician(), req.ID, dto.ChangeStageDTO{Stage: string(constants.StageRepaired)})
	require.NoError(t, err)
	assert.Equal(t, constants.StageRepaired, repaired.Stage)

	history, err := f.svc.GetHistory(f.asManager(), req.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, constants.StageNew, history[0].NewStage)
	assert.Equal(t, constants.StageInProgress, history[1].NewStage)
	assert.Equal(t, constants.StageRepaired, history[2].NewStage)
}

func TestTechnicianCannotSkipStages(t *testing.T) {
	f := newRequestServiceFixture(t)
	req := f.createRequest(t, f.asUser())

	_, err := f.svc.ChangeStage(f.asTechnician(), req.ID, dto.ChangeStageDTO{Stage: string(constants.StageRepaired)})
	assert.Error(t, err)
	assert.Equal(t, 403, apperrors.StatusCode(err))
}

func TestTechnicianCannotTouchScrap(t *testing.T) {
	f := newRequestServiceFixture(t)
	req := f.createRequest(t, f.asUser())

	_, err := f.svc.ChangeStage(f.asTechnician(), req.ID, dto.ChangeStageDTO{Stage: string(constants.StageScrap)})
	require.Error(t, err)

	// Manager sends it to scrap; technician cannot pull it back out.
	_, err = f.svc.ChangeStage(f.asManager(), req.ID, dto.ChangeStageDTO{Stage: string(constants.StageScrap)})
	require.NoError(t, err)

	_, err = f.svc.ChangeStage(f.asTechnician(), req.ID, dto.ChangeStageDTO{Stage: string(constants.StageNew)})
	assert.Error(t, err)
}

func TestManagerOverridesAnyTransition(t *testing.T) {
	f := newRequestServiceFixture(t)
	req := f.createRequest(t, f.asUser())

	scrapped, err := f.svc.ChangeStage(f.asManager(), req.ID, dto.ChangeStageDTO{Stage: string(constants.StageScrap)})
	require.NoError(t, err)
	assert.Equal(t, constants.StageScrap, scrapped.Stage)

	restored, err := f.svc.ChangeStage(f.asManager(), req.ID, dto.ChangeStageDTO{Stage: string(constants.StageInProgress)})
	require.NoError(t, err)
	assert.Equal(t, constants.StageInProgress, restored.Stage)
}

func TestPlainUserCannotChangeStage(t *testing.T) {
	f := newRequestServiceFixture(t)
	req := f.createRequest(t, f.asUser())

	_, err := f.svc.ChangeStage(f.asUser(), req.ID, dto.ChangeStageDTO{Stage: string(constants.StageInProgress)})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestAssignSelfRejectsAlreadyAssigned(t *testing.T) {
	f := newRequestServiceFixture(t)
	req := f.createRequest(t, f.asUser())

	_, err := f.svc.AssignSelf(f.asTechnician(), req.ID)
	require.NoError(t, err)

	_, err = f.svc.AssignSelf(f.asTechnician(), req.ID)
	require.Error(t, err)
	assert.Equal(t, 409, apperrors.StatusCode(err))
}

func TestTechnicianStartImplicitlyClaimsUnassigned(t *testing.T) {
	f := newRequestServiceFixture(t)
	req := f.createRequest(t, f.asUser())

	started, err := f.svc.ChangeStage(f.asTechnician(), req.ID, dto.ChangeStageDTO{Stage: string(constants.StageInProgress)})
	require.NoError(t, err)
	require.NotNil(t, started.AssignedTo)
	assert.Equal(t, f.technicianID, *started.AssignedTo)
}

func TestTechnicianCannotWorkAnotherTechniciansRequest(t *testing.T) {
	f := newRequestServiceFixture(t)
	req := f.createRequest(t, f.asUser())

	otherTech := &entities.Technician{ID: uuid.New(), UserID: uuid.New(), TeamID: uuid.New(), IsActive: true}
	techRepo := f.svc.(*MaintenanceRequestService).technicianRepo.(*stubTechnicianRepo)
	require.NoError(t, techRepo.CreateTechnician(context.Background(), otherTech))

	_, err := f.svc.UpdateRequest(f.asManager(), req.ID, dto.UpdateMaintenanceRequestDTO{AssignedTo: &otherTech.ID})
	require.NoError(t, err)

	_, err = f.svc.ChangeStage(f.asTechnician(), req.ID, dto.ChangeStageDTO{Stage: string(constants.StageInProgress)})
	assert.Error(t, err)
}

func TestReassignRequiresManagerRole(t *testing.T) {
	f := newRequestServiceFixture(t)
	req := f.createRequest(t, f.asUser())

	_, err := f.svc.UpdateRequest(f.asTechnician(), req.ID, dto.UpdateMaintenanceRequestDTO{AssignedTo: &f.technicianID})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	updated, err := f.svc.UpdateRequest(f.asManager(), req.ID, dto.UpdateMaintenanceRequestDTO{AssignedTo: &f.technicianID})
	require.NoError(t, err)
	require.NotNil(t, updated.AssignedTo)

	cleared, err := f.svc.UpdateRequest(f.asManager(), req.ID, dto.UpdateMaintenanceRequestDTO{ClearAssignee: true})
	require.NoError(t, err)
	assert.Nil(t, cleared.AssignedTo)
}

func TestStageOnlyUpdateRoutesToLifecycle(t *testing.T) {
	f := newRequestServiceFixture(t)
	req := f.createRequest(t, f.asUser())

	stage := string(constants.StageInProgress)
	updated, err := f.svc.UpdateRequest(f.asManager(), req.ID, dto.UpdateMaintenanceRequestDTO{Stage: &stage})
	require.NoError(t, err)
	assert.Equal(t, constants.StageInProgress, updated.Stage)

	history, err := f.auditRepo.GetByRequest(context.Background(), req.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, constants.StageInProgress, history[1].NewStage)

	// The transition table still applies on this path.
	scrap := string(constants.StageScrap)
	_, err = f.svc.UpdateRequest(f.asTechnician(), req.ID, dto.UpdateMaintenanceRequestDTO{Stage: &scrap})
	require.Error(t, err)
	assert.Equal(t, 403, apperrors.StatusCode(err))

	// An empty payload is still rejected.
	_, err = f.svc.UpdateRequest(f.asManager(), req.ID, dto.UpdateMaintenanceRequestDTO{})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestRequestDetailSumsLoggedHours(t *testing.T) {
	f := newRequestServiceFixture(t)
	req := f.createRequest(t, f.asUser())

	for _, hours := range []float64{1.5, 2.25} {
		log := &entities.TimeLog{ID: uuid.New(), RequestID: req.ID, TechnicianID: f.technicianID, HoursSpent: hours}
		require.NoError(t, f.timeLogRepo.CreateTimeLog(context.Background(), log))
	}

	found, err := f.svc.GetRequest(f.asManager(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, 3.75, found.TotalHoursSpent)
}

func TestOverdueDerivation(t *testing.T) {
	f := newRequestServiceFixture(t)

	past := time.Now().AddDate(0, 0, -3)
	future := time.Now().AddDate(0, 0, 3)

	overdueReq := &entities.MaintenanceRequest{
		ID: uuid.New(), Subject: "late", RequestType: constants.RequestTypePreventive,
		EquipmentID: f.equipment.ID, DetectedBy: f.plainUserID,
		ScheduledDate: &past, Stage: constants.StageNew,
	}
	repairedReq := &entities.MaintenanceRequest{
		ID: uuid.New(), Subject: "late but repaired", RequestType: constants.RequestTypePreventive,
		EquipmentID: f.equipment.ID, DetectedBy: f.plainUserID,
		ScheduledDate: &past, Stage: constants.StageRepaired,
	}
	futureReq := &entities.MaintenanceRequest{
		ID: uuid.New(), Subject: "on time", RequestType: constants.RequestTypePreventive,
		EquipmentID: f.equipment.ID, DetectedBy: f.plainUserID,
		ScheduledDate: &future, Stage: constants.StageNew,
	}
	for _, r := range []*entities.MaintenanceRequest{overdueReq, repairedReq, futureReq} {
		require.NoError(t, f.requestRepo.CreateRequest(context.Background(), r))
	}

	got, err := f.svc.GetOverdue(f.asManager())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, overdueReq.ID, got[0].ID)
	assert.True(t, got[0].Overdue)

	single, err := f.svc.GetRequest(f.asManager(), overdueReq.ID)
	require.NoError(t, err)
	assert.True(t, single.Overdue)

	single, err = f.svc.GetRequest(f.asManager(), repairedReq.ID)
	require.NoError(t, err)
	assert.False(t, single.Overdue)
}

func TestCalendarRangeValidation(t *testing.T) {
	f := newRequestServiceFixture(t)

	_, err := f.svc.GetCalendar(f.asManager(), "2026-09-10", "2026-09-01")
	assert.Error(t, err)

	_, err = f.svc.GetCalendar(f.asManager(), "not-a-date", "2026-09-01")
	assert.Error(t, err)

	_, err = f.svc.GetCalendar(f.asManager(), "2026-09-01", "2026-09-30")
	assert.NoError(t, err)
}

func TestAutoFillReturnsEquipmentDefaults(t *testing.T) {
	f := newRequestServiceFixture(t)

	category := "Press"
	location := "Hall 1"
	teamName := "Mechanical"
	f.equipment.Category = &category
	f.equipment.Location = &location
	f.equipment.MaintenanceTeamName = &teamName
	equipmentRepo := f.svc.(*MaintenanceRequestService).equipmentRepo.(*stubEquipmentRepo)
	equipmentRepo.equipment[f.equipment.ID] = f.equipment

	fill, err := f.svc.AutoFill(f.asUser(), f.equipment.ID)
	require.NoError(t, err)
	assert.Equal(t, &category, fill.EquipmentCategory)
	assert.Equal(t, &location, fill.EquipmentLocation)
	assert.Equal(t, f.equipment.MaintenanceTeamID, fill.MaintenanceTeamID)
	assert.Equal(t, teamName, fill.MaintenanceTeamName)
}

func TestDeleteRequestRequiresManager(t *testing.T) {
	f := newRequestServiceFixture(t)
	req := f.createRequest(t, f.asUser())

	err := f.svc.DeleteRequest(f.asTechnician(), req.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	err = f.svc.DeleteRequest(f.asManager(), req.ID)
	require.NoError(t, err)

	_, err = f.svc.GetRequest(f.asManager(), req.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
