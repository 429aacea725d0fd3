package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gearguard/pkg/constants"
)

func TestIsOverdue(t *testing.T) {
	now := time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)
	sameDayLater := time.Date(2026, 8, 29, 23, 59, 0, 0, time.UTC)

	tests := []struct {
		name      string
		scheduled *time.Time
		stage     constants.Stage
		want      bool
	}{
		{"nil scheduled date", nil, constants.StageNew, false},
		{"scheduled yesterday, new", &yesterday, constants.StageNew, true},
		{"scheduled yesterday, in_progress", &yesterday, constants.StageInProgress, true},
		{"scheduled yesterday, scrap", &yesterday, constants.StageScrap, true},
		{"scheduled yesterday, repaired", &yesterday, constants.StageRepaired, false},
		{"scheduled today", &now, constants.StageNew, false},
		{"scheduled today, later time of day", &sameDayLater, constants.StageNew, false},
		{"scheduled tomorrow", &tomorrow, constants.StageNew, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsOverdue(tt.scheduled, tt.stage, now))
		})
	}
}

func TestIsOverdueIgnoresTimeOfDay(t *testing.T) {
	// 23:00 yesterday vs 00:05 today is still a full calendar day apart.
	scheduled := time.Date(2026, 8, 28, 23, 0, 0, 0, time.UTC)
	now := time.Date(2026, 8, 29, 0, 5, 0, 0, time.UTC)
	assert.True(t, IsOverdue(&scheduled, constants.StageNew, now))
}

func TestIsOverdueIsIdempotent(t *testing.T) {
	scheduled := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	first := IsOverdue(&scheduled, constants.StageInProgress, now)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, IsOverdue(&scheduled, constants.StageInProgress, now))
	}
}
