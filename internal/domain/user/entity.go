package user

type Role string

const (
	RoleOwner    Role = "owner"    // Company owner - full access
	RoleManager  Role = "manager"  // Runs payroll, manages employees
	RoleEmployee Role = "employee" // Regular employee, self-service only
)

// IsManager reports whether the role can run payroll. Owners can do
// everything a manager can.
func (r Role) IsManager() bool {
	return r == RoleManager || r == RoleOwner
}

// IsOwner reports whether the role holds company-level control.
func (r Role) IsOwner() bool {
	return r == RoleOwner
}
