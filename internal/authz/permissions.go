// Package authz maps roles to capabilities. The table is closed: a
// role not listed here, or an unknown role value, grants nothing.
package authz

import "gearguard/pkg/constants"

type Capability string

const (
	// Requests
	RequestsCreate             Capability = "requests:create"
	RequestsView               Capability = "requests:view"
	RequestsUpdate             Capability = "requests:update"
	RequestsDelete             Capability = "requests:delete"
	RequestsAssignSelf         Capability = "requests:assign_self"
	RequestsReassign           Capability = "requests:reassign"
	RequestsUpdateStage        Capability = "requests:update_stage"
	RequestsSchedulePreventive Capability = "requests:schedule_preventive"

	// Time logs
	TimeLogsCreate Capability = "time_logs:create"
	TimeLogsView   Capability = "time_logs:view"

	// Equipment
	EquipmentView   Capability = "equipment:view"
	EquipmentCreate Capability = "equipment:create"
	EquipmentUpdate Capability = "equipment:update"
	EquipmentDelete Capability = "equipment:delete"
	EquipmentScrap  Capability = "equipment:scrap"

	// Structure
	TeamsView         Capability = "teams:view"
	TeamsManage       Capability = "teams:manage"
	DepartmentsView   Capability = "departments:view"
	DepartmentsManage Capability = "departments:manage"
	TechniciansView   Capability = "technicians:view"
	TechniciansManage Capability = "technicians:manage"

	// Users and reports
	UsersView   Capability = "users:view"
	UsersManage Capability = "users:manage"
	ReportsView Capability = "reports:view"
)

// grants is the closed role→capability table from which every check is
// answered.
var grants = map[constants.Role]map[Capability]bool{
	constants.RoleUser: {
		RequestsCreate:  true,
		RequestsView:    true,
		EquipmentView:   true,
		TeamsView:       true,
		DepartmentsView: true,
		TechniciansView: true,
		TimeLogsView:    true,
	},
	constants.RoleTechnician: {
		RequestsCreate:      true,
		RequestsView:        true,
		RequestsAssignSelf:  true,
		RequestsUpdateStage: true,
		TimeLogsCreate:      true,
		TimeLogsView:        true,
		EquipmentView:       true,
		TeamsView:           true,
		DepartmentsView:     true,
		TechniciansView:     true,
		ReportsView:         true,
	},
	constants.RoleManager: {
		RequestsCreate:             true,
		RequestsView:               true,
		RequestsUpdate:             true,
		RequestsDelete:             true,
		RequestsReassign:           true,
		RequestsUpdateStage:        true,
		RequestsSchedulePreventive: true,
		TimeLogsCreate:             true,
		TimeLogsView:               true,
		EquipmentView:              true,
		EquipmentCreate:            true,
		EquipmentUpdate:            true,
		EquipmentScrap:             true,
		TeamsView:                  true,
		TeamsManage:                true,
		DepartmentsView:            true,
		DepartmentsManage:          true,
		TechniciansView:            true,
		TechniciansManage:          true,
		UsersView:                  true,
		ReportsView:                true,
	},
	constants.RoleAdmin: {
		RequestsCreate:             true,
		RequestsView:               true,
		RequestsUpdate:             true,
		RequestsDelete:             true,
		RequestsReassign:           true,
		RequestsUpdateStage:        true,
		RequestsSchedulePreventive: true,
		TimeLogsCreate:             true,
		TimeLogsView:               true,
		EquipmentView:              true,
		EquipmentCreate:            true,
		EquipmentUpdate:            true,
		EquipmentDelete:            true,
		EquipmentScrap:             true,
		TeamsView:                  true,
		TeamsManage:                true,
		DepartmentsView:            true,
		DepartmentsManage:          true,
		TechniciansView:            true,
		TechniciansManage:          true,
		UsersView:                  true,
		UsersManage:                true,
		ReportsView:                true,
	},
}

// Can reports whether the role holds the capability. No side effects,
// no error cases.
func Can(role constants.Role, capability Capability) bool {
	caps, ok := grants[role]
	if !ok {
		return false
	}
	return caps[capability]
}
