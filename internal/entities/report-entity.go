package entities

import "github.com/aarondl/null/v8"

// StageBreakdown is a request count split by lifecycle stage, grouped
// by team or equipment category. Group keys from LEFT JOINs may be
// absent, hence the null types.
type StageBreakdown struct {
	GroupName  null.String `json:"group_name"`
	Total      uint64      `json:"total_requests"`
	New        uint64      `json:"new_requests"`
	InProgress uint64      `json:"in_progress_requests"`
	Repaired   uint64      `json:"repaired_requests"`
	Scrap      uint64      `json:"scrap_requests"`
}

type StageCount struct {
	Stage string `json:"stage"`
	Count uint64 `json:"count"`
}
