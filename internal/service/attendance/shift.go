package attendance

import (
	"time"

	"github.com/cmlabs-hris/attendance-sync/internal/domain/company"
	"github.com/cmlabs-hris/attendance-sync/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-sync/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-sync/internal/pkg/timeutil"
)

// Reference is the organization data lateness and summaries are computed from.
type Reference struct {
	Config    company.SystemConfig
	Roster    schedule.Roster
	Employees []employee.Employee
}

// EffectiveShiftStart resolves the shift start for a user on date.
// Order: roster assignment (WEEKLY_ROSTER only), personal shift, organization default.
func EffectiveShiftStart(ref Reference, userID, date string) string {
	if ref.Config.SchedulingMode == company.SchedulingModeWeeklyRoster {
		if start, ok := ref.Roster.ShiftStartFor(userID, date); ok {
			return start
		}
	}
	if emp, ok := employee.FindByID(ref.Employees, userID); ok && emp.ShiftStart != nil && *emp.ShiftStart != "" {
		return *emp.ShiftStart
	}
	return ref.Config.WorkStartTime
}

// GraceDeadline is the last instant on date that still counts as on time.
func GraceDeadline(ref Reference, userID, date string, loc *time.Location) (time.Time, bool) {
	start, ok := timeutil.ParseTimeOnDate(date, EffectiveShiftStart(ref, userID, date), loc)
	if !ok {
		return time.Time{}, false
	}
	return start.Add(time.Duration(max(ref.Config.GracePeriodMinutes, 0)) * time.Minute), true
}

// IsLate reports whether a first check-in at now is past the grace deadline.
// A shift start that cannot be resolved never makes anyone late.
func IsLate(ref Reference, userID string, now time.Time) bool {
	deadline, ok := GraceDeadline(ref, userID, timeutil.DateString(now), now.Location())
	if !ok {
		return false
	}
	return now.After(deadline)
}
