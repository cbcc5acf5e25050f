package models

// Role is a staff duty category. "Lab" is a legacy alias for
// "Lab Technician" that still appears on older shift mappings.
type Role string

const (
	RoleDoctor        Role = "Doctor"
	RoleNurse         Role = "Nurse"
	RoleLab           Role = "Lab"
	RoleLabTechnician Role = "Lab Technician"
	RolePharmacist    Role = "Pharmacist"
	RoleReception     Role = "Reception"
	RoleBilling       Role = "Billing"
	RoleAdmin         Role = "Admin"
)

var allRoles = map[Role]bool{
	RoleDoctor:        true,
	RoleNurse:         true,
	RoleLab:           true,
	RoleLabTechnician: true,
	RolePharmacist:    true,
	RoleReception:     true,
	RoleBilling:       true,
	RoleAdmin:         true,
}

func (r Role) Valid() bool {
	return allRoles[r]
}

// AcceptedRoles expands a required role into the set of mapping roles that
// satisfy it. Only Lab Technician has an alias; every other role matches
// itself exactly.
func AcceptedRoles(required Role) []Role {
	if required == RoleLabTechnician {
		return []Role{RoleLabTechnician, RoleLab}
	}
	return []Role{required}
}
