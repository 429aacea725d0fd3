package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gearguard/pkg/constants"
)

func TestCan(t *testing.T) {
	tests := []struct {
		name       string
		role       constants.Role
		capability Capability
		want       bool
	}{
		{"user creates requests", constants.RoleUser, RequestsCreate, true},
		{"user cannot change stage", constants.RoleUser, RequestsUpdateStage, false},
		{"user cannot manage equipment", constants.RoleUser, EquipmentCreate, false},
		{"user cannot see reports", constants.RoleUser, ReportsView, false},

		{"technician assigns self", constants.RoleTechnician, RequestsAssignSelf, true},
		{"technician changes stage", constants.RoleTechnician, RequestsUpdateStage, true},
		{"technician logs time", constants.RoleTechnician, TimeLogsCreate, true},
		{"technician cannot reassign", constants.RoleTechnician, RequestsReassign, false},
		{"technician cannot delete requests", constants.RoleTechnician, RequestsDelete, false},
		{"technician cannot manage users", constants.RoleTechnician, UsersManage, false},

		{"manager reassigns", constants.RoleManager, RequestsReassign, true},
		{"manager scraps equipment", constants.RoleManager, EquipmentScrap, true},
		{"manager views reports", constants.RoleManager, ReportsView, true},
		{"manager cannot manage users", constants.RoleManager, UsersManage, false},
		{"manager cannot delete equipment", constants.RoleManager, EquipmentDelete, false},

		{"admin manages users", constants.RoleAdmin, UsersManage, true},
		{"admin deletes equipment", constants.RoleAdmin, EquipmentDelete, true},

		{"unknown role grants nothing", constants.Role("root"), RequestsView, false},
		{"empty role grants nothing", constants.Role(""), RequestsView, false},
		{"unknown capability", constants.RoleAdmin, Capability("requests:teleport"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Can(tt.role, tt.capability))
		})
	}
}
