package constants

// Role is the closed set of user roles. Every permission check in the
// system keys off this value; an unknown role grants nothing.
type Role string

const (
	RoleUser       Role = "user"
	RoleTechnician Role = "technician"
	RoleManager    Role = "manager"
	RoleAdmin      Role = "admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleTechnician, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// Stage is the maintenance request lifecycle stage, ordered
// new -> in_progress -> repaired, with scrap reachable by override.
type Stage string

const (
	StageNew        Stage = "new"
	StageInProgress Stage = "in_progress"
	StageRepaired   Stage = "repaired"
	StageScrap      Stage = "scrap"
)

func (s Stage) IsValid() bool {
	switch s {
	case StageNew, StageInProgress, StageRepaired, StageScrap:
		return true
	}
	return false
}

type RequestType string

const (
	RequestTypeCorrective RequestType = "corrective"
	RequestTypePreventive RequestType = "preventive"
)

func (t RequestType) IsValid() bool {
	return t == RequestTypeCorrective || t == RequestTypePreventive
}

type EquipmentStatus string

const (
	EquipmentActive      EquipmentStatus = "active"
	EquipmentMaintenance EquipmentStatus = "maintenance"
	EquipmentScrapped    EquipmentStatus = "scrapped"
)

func (s EquipmentStatus) IsValid() bool {
	switch s {
	case EquipmentActive, EquipmentMaintenance, EquipmentScrapped:
		return true
	}
	return false
}
