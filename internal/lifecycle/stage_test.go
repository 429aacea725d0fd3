package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gearguard/pkg/constants"
)

func TestCanMoveToStage(t *testing.T) {
	tests := []struct {
		name string
		role constants.Role
		from constants.Stage
		to   constants.Stage
		want bool
	}{
		// Technician: forward one step on the ordered path only.
		{"technician new to in_progress", constants.RoleTechnician, constants.StageNew, constants.StageInProgress, true},
		{"technician in_progress to repaired", constants.RoleTechnician, constants.StageInProgress, constants.StageRepaired, true},
		{"technician skips a step", constants.RoleTechnician, constants.StageNew, constants.StageRepaired, false},
		{"technician moves backwards", constants.RoleTechnician, constants.StageInProgress, constants.StageNew, false},
		{"technician to scrap", constants.RoleTechnician, constants.StageInProgress, constants.StageScrap, false},
		{"technician out of scrap", constants.RoleTechnician, constants.StageScrap, constants.StageNew, false},
		{"technician out of repaired", constants.RoleTechnician, constants.StageRepaired, constants.StageScrap, false},

		// Manager and admin override anything, including scrap.
		{"manager new to scrap", constants.RoleManager, constants.StageNew, constants.StageScrap, true},
		{"manager out of scrap", constants.RoleManager, constants.StageScrap, constants.StageNew, true},
		{"manager backwards", constants.RoleManager, constants.StageRepaired, constants.StageInProgress, true},
		{"admin new to repaired", constants.RoleAdmin, constants.StageNew, constants.StageRepaired, true},
		{"admin out of scrap", constants.RoleAdmin, constants.StageScrap, constants.StageInProgress, true},

		// Plain users move nothing.
		{"user new to in_progress", constants.RoleUser, constants.StageNew, constants.StageInProgress, false},
		{"user new to scrap", constants.RoleUser, constants.StageNew, constants.StageScrap, false},

		// Degenerate inputs.
		{"same stage is not a transition", constants.RoleAdmin, constants.StageNew, constants.StageNew, false},
		{"unknown role", constants.Role("superuser"), constants.StageNew, constants.StageInProgress, false},
		{"invalid from stage", constants.RoleAdmin, constants.Stage("broken"), constants.StageNew, false},
		{"invalid to stage", constants.RoleAdmin, constants.StageNew, constants.Stage("broken"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanMoveToStage(tt.role, tt.from, tt.to))
		})
	}
}

func TestNextStage(t *testing.T) {
	next, ok := NextStage(constants.StageNew)
	assert.True(t, ok)
	assert.Equal(t, constants.StageInProgress, next)

	next, ok = NextStage(constants.StageInProgress)
	assert.True(t, ok)
	assert.Equal(t, constants.StageRepaired, next)

	_, ok = NextStage(constants.StageRepaired)
	assert.False(t, ok)

	_, ok = NextStage(constants.StageScrap)
	assert.False(t, ok)
}

func TestIsTerminalForRole(t *testing.T) {
	// Repaired and scrap are dead ends for a technician but not for a
	// manager, who can always override out.
	assert.True(t, IsTerminalForRole(constants.RoleTechnician, constants.StageRepaired))
	assert.True(t, IsTerminalForRole(constants.RoleTechnician, constants.StageScrap))
	assert.False(t, IsTerminalForRole(constants.RoleTechnician, constants.StageNew))

	for _, s := range []constants.Stage{constants.StageNew, constants.StageInProgress, constants.StageRepaired, constants.StageScrap} {
		assert.False(t, IsTerminalForRole(constants.RoleManager, s))
		assert.False(t, IsTerminalForRole(constants.RoleAdmin, s))
	}

	for _, s := range []constants.Stage{constants.StageNew, constants.StageInProgress, constants.StageRepaired, constants.StageScrap} {
		assert.True(t, IsTerminalForRole(constants.RoleUser, s))
	}
}
