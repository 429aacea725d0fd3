package seeders

var departmentsData = []struct {
	Name        string
	Description string
}{
	{Name: "Production", Description: "Shop floor and assembly lines"},
	{Name: "Logistics", Description: "Warehouse and transport"},
	{Name: "Facilities", Description: "Buildings, HVAC and utilities"},
	{Name: "IT", Description: "Workstations, servers and network gear"},
}

var teamsData = []struct {
	Name           string
	Specialization string
}{
	{Name: "Mechanical", Specialization: "Pumps, conveyors, presses"},
	{Name: "Electrical", Specialization: "Wiring, panels, motors"},
	{Name: "IT Support", Specialization: "Computers and network equipment"},
}

var equipmentData = []struct {
	Name         string
	SerialNumber string
	Category     string
	Location     string
	Department   string
	Team         string
}{
	{Name: "Hydraulic Press A1", SerialNumber: "HP-A1-0001", Category: "Press", Location: "Hall 1", Department: "Production", Team: "Mechanical"},
	{Name: "Conveyor Line 3", SerialNumber: "CV-L3-0042", Category: "Conveyor", Location: "Hall 2", Department: "Production", Team: "Mechanical"},
	{Name: "Forklift F7", SerialNumber: "FL-F7-0007", Category: "Vehicle", Location: "Warehouse", Department: "Logistics", Team: "Mechanical"},
	{Name: "Main Distribution Panel", SerialNumber: "EL-MDP-0001", Category: "Electrical", Location: "Basement", Department: "Facilities", Team: "Electrical"},
	{Name: "Rack Server R740", SerialNumber: "IT-R740-0015", Category: "Server", Location: "Server room", Department: "IT", Team: "IT Support"},
}
