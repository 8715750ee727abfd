package employee

type Role string

const (
	RoleOwner    Role = "owner"    // Company owner - full access
	RoleManager  Role = "manager"  // Can edit organization settings
	RoleEmployee Role = "employee" // Regular employee
)

// Employee is the subset of a user record the attendance core consumes.
type Employee struct {
	ID           string
	CompanyID    string
	FullName     string
	Email        string
	Role         Role
	ShiftStart   *string // HH:MM, overrides the organization default
	ShiftEnd     *string
	PasswordHash *string // server side only
}

// IsManager checks if employee is manager or owner
func (e *Employee) IsManager() bool {
	return e.Role == RoleManager || e.Role == RoleOwner
}

// FindByID returns the employee with id, if present.
func FindByID(employees []Employee, id string) (Employee, bool) {
	for _, e := range employees {
		if e.ID == id {
			return e, true
		}
	}
	return Employee{}, false
}
