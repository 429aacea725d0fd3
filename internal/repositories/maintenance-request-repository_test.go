package repositories

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/migrations"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
)

var testPool *pgxpool.Pool

// TestMain connects to the database named by TEST_DATABASE_URL and
// applies the embedded migrations. Without that variable the
// integration tests are skipped.
func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		os.Exit(m.Run())
	}

	if err := migrations.Up(dsn); err != nil {
		log.Fatalf("applying migrations to test database: %v", err)
	}

	var err error
	testPool, err = pgxpool.New(context.Background(), dsn)
	if err != nil {
		log.Fatalf("connecting to test database: %v", err)
	}
	defer testPool.Close()

	os.Exit(m.Run())
}

func requireDB(t *testing.T) {
	t.Helper()
	if testPool == nil {
		t.Skip("TEST_DATABASE_URL not set")
	}
}

func cleanupTables(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(), `
		TRUNCATE TABLE request_audit_logs, time_logs, maintenance_requests,
			equipment, technicians, maintenance_teams, departments, users CASCADE;
	`)
	require.NoError(t, err)
}

type requestSeed struct {
	reporterID   uuid.UUID
	technicianID uuid.UUID
	equipmentID  uuid.UUID
}

func seedRequestGraph(t *testing.T, pool *pgxpool.Pool) requestSeed {
	t.Helper()
	ctx := context.Background()
	var s requestSeed

	err := pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, role)
		VALUES ('Reporter', 'reporter@test.local', 'x', 'user') RETURNING id
	`).Scan(&s.reporterID)
	require.NoError(t, err)

	var techUserID uuid.UUID
	err = pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, role)
		VALUES ('Tech', 'tech@test.local', 'x', 'technician') RETURNING id
	`).Scan(&techUserID)
	require.NoError(t, err)

	var departmentID, teamID uuid.UUID
	err = pool.QueryRow(ctx,
		`INSERT INTO departments (name) VALUES ('Production') RETURNING id`).Scan(&departmentID)
	require.NoError(t, err)
	err = pool.QueryRow(ctx,
		`INSERT INTO maintenance_teams (name, specialization) VALUES ('Mechanics', 'mechanical') RETURNING id`).Scan(&teamID)
	require.NoError(t, err)

	err = pool.QueryRow(ctx, `
		INSERT INTO technicians (user_id, team_id) VALUES ($1, $2) RETURNING id
	`, techUserID, teamID).Scan(&s.technicianID)
	require.NoError(t, err)

	err = pool.QueryRow(ctx, `
		INSERT INTO equipment (name, serial_number, category, location, department_id, maintenance_team_id)
		VALUES ('CNC Mill', 'SN-0001', 'machining', 'Hall A', $1, $2) RETURNING id
	`, departmentID, teamID).Scan(&s.equipmentID)
	require.NoError(t, err)

	return s
}

func newSeededRequest(seed requestSeed) *entities.MaintenanceRequest {
	return &entities.MaintenanceRequest{
		ID:          uuid.New(),
		Subject:     "Spindle vibration",
		RequestType: constants.RequestTypeCorrective,
		EquipmentID: seed.equipmentID,
		DetectedBy:  seed.reporterID,
		Stage:       constants.StageNew,
	}
}

func TestMaintenanceRequestRepository_Integration_CreateAndFind(t *testing.T) {
	requireDB(t)
	cleanupTables(t, testPool)
	seed := seedRequestGraph(t, testPool)
	repo := NewMaintenanceRequestRepository(testPool)

	req := newSeededRequest(seed)
	require.NoError(t, repo.CreateRequest(context.Background(), req))
	assert.False(t, req.CreatedAt.IsZero())

	found, err := repo.FindRequest(context.Background(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, "Spindle vibration", found.Subject)
	assert.Equal(t, constants.StageNew, found.Stage)
	require.NotNil(t, found.EquipmentName)
	assert.Equal(t, "CNC Mill", *found.EquipmentName)
	require.NotNil(t, found.MaintenanceTeamName)
	assert.Equal(t, "Mechanics", *found.MaintenanceTeamName)
	assert.Nil(t, found.AssignedToName)

	_, err = repo.FindRequest(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestMaintenanceRequestRepository_Integration_StageAndAssignee(t *testing.T) {
	requireDB(t)
	cleanupTables(t, testPool)
	seed := seedRequestGraph(t, testPool)
	repo := NewMaintenanceRequestRepository(testPool)

	req := newSeededRequest(seed)
	require.NoError(t, repo.CreateRequest(context.Background(), req))

	require.NoError(t, repo.UpdateAssignee(context.Background(), req.ID, &seed.technicianID))
	require.NoError(t, repo.UpdateStage(context.Background(), req.ID, constants.StageInProgress))

	found, err := repo.FindRequest(context.Background(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.StageInProgress, found.Stage)
	require.NotNil(t, found.AssignedTo)
	assert.Equal(t, seed.technicianID, *found.AssignedTo)
	require.NotNil(t, found.AssignedToName)
	assert.Equal(t, "Tech", *found.AssignedToName)

	require.NoError(t, repo.UpdateAssignee(context.Background(), req.ID, nil))
	found, err = repo.FindRequest(context.Background(), req.ID)
	require.NoError(t, err)
	assert.Nil(t, found.AssignedTo)

	assert.ErrorIs(t, repo.UpdateStage(context.Background(), uuid.New(), constants.StageRepaired), apperrors.ErrNotFound)
}

func TestMaintenanceRequestRepository_Integration_Filters(t *testing.T) {
	requireDB(t)
	cleanupTables(t, testPool)
	seed := seedRequestGraph(t, testPool)
	repo := NewMaintenanceRequestRepository(testPool)

	first := newSeededRequest(seed)
	require.NoError(t, repo.CreateRequest(context.Background(), first))

	second := newSeededRequest(seed)
	second.ID = uuid.New()
	second.Subject = "Scheduled lubrication"
	second.RequestType = constants.RequestTypePreventive
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	second.ScheduledDate = &date
	require.NoError(t, repo.CreateRequest(context.Background(), second))

	preventive := string(constants.RequestTypePreventive)
	requests, total, err := repo.GetRequests(context.Background(), dto.MaintenanceRequestFilter{RequestType: &preventive}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	require.Len(t, requests, 1)
	assert.Equal(t, second.ID, requests[0].ID)

	requests, total, err = repo.GetRequests(context.Background(), dto.MaintenanceRequestFilter{Search: "CNC"}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), total)
	assert.Len(t, requests, 2)
}

func TestMaintenanceRequestRepository_Integration_ScheduledWindows(t *testing.T) {
	requireDB(t)
	cleanupTables(t, testPool)
	seed := seedRequestGraph(t, testPool)
	repo := NewMaintenanceRequestRepository(testPool)

	past := newSeededRequest(seed)
	pastDate := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	past.ScheduledDate = &pastDate
	require.NoError(t, repo.CreateRequest(context.Background(), past))

	repaired := newSeededRequest(seed)
	repaired.ID = uuid.New()
	repaired.ScheduledDate = &pastDate
	repaired.Stage = constants.StageRepaired
	require.NoError(t, repo.CreateRequest(context.Background(), repaired))

	today := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	candidates, err := repo.GetScheduledBefore(context.Background(), today)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, past.ID, candidates[0].ID)

	window, err := repo.GetScheduledBetween(context.Background(),
		time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, window, 2)
}

func TestMaintenanceRequestRepository_Integration_Delete(t *testing.T) {
	requireDB(t)
	cleanupTables(t, testPool)
	seed := seedRequestGraph(t, testPool)
	repo := NewMaintenanceRequestRepository(testPool)

	req := newSeededRequest(seed)
	require.NoError(t, repo.CreateRequest(context.Background(), req))

	require.NoError(t, repo.DeleteRequest(context.Background(), req.ID))
	_, err := repo.FindRequest(context.Background(), req.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.ErrorIs(t, repo.DeleteRequest(context.Background(), uuid.New()), apperrors.ErrNotFound)
}
