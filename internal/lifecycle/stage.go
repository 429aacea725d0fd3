// Package lifecycle holds the maintenance-request state machine and
// the overdue derivation. Everything here is pure: no storage, no
// clock reads, no side effects.
package lifecycle

import "gearguard/pkg/constants"

// stageOrder gives the monotonic position of the active stages.
// Scrap sits outside the ordered path: nothing transitions into it
// except a manager/admin override.
var stageOrder = map[constants.Stage]int{
	constants.StageNew:        0,
	constants.StageInProgress: 1,
	constants.StageRepaired:   2,
	constants.StageScrap:      3,
}

// CanMoveToStage reports whether the role may move a request from one
// stage to another. Manager and admin override freely, including out
// of scrap; technicians only walk the ordered path forward one step at
// a time and never touch scrap; everyone else moves nothing.
func CanMoveToStage(role constants.Role, from, to constants.Stage) bool {
	if !from.IsValid() || !to.IsValid() || from == to {
		return false
	}

	switch role {
	case constants.RoleAdmin, constants.RoleManager:
		return true
	case constants.RoleTechnician:
		if from == constants.StageScrap || to == constants.StageScrap {
			return false
		}
		return stageOrder[to] == stageOrder[from]+1
	}
	return false
}

// NextStage returns the forward neighbour on the ordered path, false
// for repaired and scrap.
func NextStage(s constants.Stage) (constants.Stage, bool) {
	switch s {
	case constants.StageNew:
		return constants.StageInProgress, true
	case constants.StageInProgress:
		return constants.StageRepaired, true
	}
	return "", false
}

// IsTerminalForRole reports whether the role has any legal move out of
// the given stage.
func IsTerminalForRole(role constants.Role, s constants.Stage) bool {
	for _, to := range []constants.Stage{
		constants.StageNew, constants.StageInProgress, constants.StageRepaired, constants.StageScrap,
	} {
		if CanMoveToStage(role, s, to) {
			return false
		}
	}
	return true
}
