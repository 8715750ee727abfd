package fixtures

import (
	"github.com/cmlabs-hris/attendance-sync/internal/domain/company"
	"github.com/cmlabs-hris/attendance-sync/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-sync/internal/domain/schedule"
)

// ==========================================
// HELPER FUNCTIONS
// ==========================================

func strPtr(s string) *string { return &s }

// ==========================================
// SEED DATASET
// ==========================================

// The seed is what a client shows when it has never reached the API and has no cache.
// IDs are stable so a persisted session can be restored against it.
const (
	SeedCompanyID  = "0190a000-0000-7000-8000-000000000001"
	SeedOwnerID    = "0190a000-0000-7000-8000-000000000010"
	SeedManagerID  = "0190a000-0000-7000-8000-000000000011"
	SeedEmployeeID = "0190a000-0000-7000-8000-000000000012"

	seedMorningShiftID = "0190a000-0000-7000-8000-000000000100"
	seedNightShiftID   = "0190a000-0000-7000-8000-000000000101"
)

// SeedConfig returns the default organization settings.
func SeedConfig() company.SystemConfig {
	cfg := company.DefaultSystemConfig()
	cfg.CompanyName = "Demo Company"
	return cfg
}

// SeedEmployees returns a small demo workforce, one per role.
func SeedEmployees() []employee.Employee {
	return []employee.Employee{
		{
			ID:        SeedOwnerID,
			CompanyID: SeedCompanyID,
			FullName:  "Demo Owner",
			Email:     "owner@demo.local",
			Role:      employee.RoleOwner,
		},
		{
			ID:        SeedManagerID,
			CompanyID: SeedCompanyID,
			FullName:  "Demo Manager",
			Email:     "manager@demo.local",
			Role:      employee.RoleManager,
		},
		{
			ID:         SeedEmployeeID,
			CompanyID:  SeedCompanyID,
			FullName:   "Demo Employee",
			Email:      "employee@demo.local",
			Role:       employee.RoleEmployee,
			ShiftStart: strPtr("08:00"),
			ShiftEnd:   strPtr("16:00"),
		},
	}
}

// SeedRoster returns the shift templates with no assignments.
func SeedRoster() schedule.Roster {
	return schedule.Roster{
		Templates: []schedule.ShiftTemplate{
			{ID: seedMorningShiftID, CompanyID: SeedCompanyID, Name: "Morning", StartTime: "07:00", EndTime: "15:00"},
			{ID: seedNightShiftID, CompanyID: SeedCompanyID, Name: "Night", StartTime: "21:00", EndTime: "05:00"},
		},
		Assignments: []schedule.RosterAssignment{},
	}
}
