package attendance

import (
	"testing"

	"github.com/cmlabs-hris/attendance-sync/internal/domain/company"
	"github.com/cmlabs-hris/attendance-sync/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-sync/internal/domain/schedule"
	"github.com/stretchr/testify/assert"
)

func testReference() Reference {
	personal := "08:00"
	return Reference{
		Config: company.DefaultSystemConfig(),
		Roster: schedule.Roster{
			Templates: []schedule.ShiftTemplate{
				{ID: "night", Name: "Night", StartTime: "21:00", EndTime: "05:00"},
			},
			Assignments: []schedule.RosterAssignment{
				{ID: "a1", UserID: "u1", Date: "2024-05-01", ShiftTemplateID: "night"},
			},
		},
		Employees: []employee.Employee{
			{ID: "u1", FullName: "Rina", Role: employee.RoleEmployee},
			{ID: "u2", FullName: "Bayu", Role: employee.RoleEmployee, ShiftStart: &personal},
		},
	}
}

func TestEffectiveShiftStart(t *testing.T) {
	ref := testReference()

	t.Run("fixed shift ignores roster", func(t *testing.T) {
		assert.Equal(t, "09:00", EffectiveShiftStart(ref, "u1", "2024-05-01"))
	})

	t.Run("weekly roster assignment wins", func(t *testing.T) {
		r := ref
		r.Config.SchedulingMode = company.SchedulingModeWeeklyRoster
		assert.Equal(t, "21:00", EffectiveShiftStart(r, "u1", "2024-05-01"))
		assert.Equal(t, "09:00", EffectiveShiftStart(r, "u1", "2024-05-02"))
	})

	t.Run("personal shift overrides organization default", func(t *testing.T) {
		assert.Equal(t, "08:00", EffectiveShiftStart(ref, "u2", "2024-05-01"))
	})

	t.Run("unknown user gets organization default", func(t *testing.T) {
		assert.Equal(t, "09:00", EffectiveShiftStart(ref, "ghost", "2024-05-01"))
	})
}

func TestIsLate_GraceBoundary(t *testing.T) {
	ref := testReference()

	tests := []struct {
		name string
		tod  string
		want bool
	}{
		{"before shift", "08:59:59", false},
		{"inside grace", "09:05:00", false},
		{"exactly at deadline", "09:15:00", false},
		{"one second past deadline", "09:15:01", true},
		{"well past deadline", "09:16:00", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsLate(ref, "u1", at("2024-05-01", tt.tod)))
		})
	}
}

func TestIsLate_PersonalShift(t *testing.T) {
	ref := testReference()
	assert.True(t, IsLate(ref, "u2", at("2024-05-01", "08:16:00")))
	assert.False(t, IsLate(ref, "u2", at("2024-05-01", "08:15:00")))
}

func TestIsLate_UnresolvableShiftIsNeverLate(t *testing.T) {
	ref := testReference()
	ref.Config.WorkStartTime = "--:--"
	assert.False(t, IsLate(ref, "u1", at("2024-05-01", "23:00:00")))
}

func TestGraceDeadline_NegativeGraceIsZero(t *testing.T) {
	ref := testReference()
	ref.Config.GracePeriodMinutes = -10

	deadline, ok := GraceDeadline(ref, "u1", "2024-05-01", testLoc)

	assert.True(t, ok)
	assert.True(t, deadline.Equal(at("2024-05-01", "09:00:00")))
}
