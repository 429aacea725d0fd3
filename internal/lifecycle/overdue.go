package lifecycle

import (
	"time"

	"gearguard/pkg/constants"
)

// IsOverdue reports whether a request with the given scheduled date and
// stage is overdue at the reference time: the scheduled calendar date
// is strictly before the reference calendar date, and the stage is not
// repaired. A nil scheduled date is never overdue.
func IsOverdue(scheduledDate *time.Time, stage constants.Stage, now time.Time) bool {
	if scheduledDate == nil {
		return false
	}
	if stage == constants.StageRepaired {
		return false
	}
	return dayOrdinal(*scheduledDate) < dayOrdinal(now)
}

// dayOrdinal normalizes a timestamp to its calendar day, so times of
// day and sub-day differences never influence the comparison.
func dayOrdinal(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}
