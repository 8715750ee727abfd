package syncer

import (
	"time"

	"github.com/cmlabs-hris/attendance-sync/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-sync/internal/domain/company"
	"github.com/cmlabs-hris/attendance-sync/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-sync/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-sync/internal/fixtures"
	attendancesvc "github.com/cmlabs-hris/attendance-sync/internal/service/attendance"
)

// Source tells where a snapshot's data came from.
type Source string

const (
	SourceRemote Source = "remote"
	SourceCache  Source = "cache"
	SourceSeed   Source = "seed"
)

// Snapshot is one consistent view of every server-backed collection.
// A committed snapshot is never modified; readers may share it freely.
type Snapshot struct {
	Attendance []attendance.Record
	Revision   int64
	Config     company.SystemConfig
	Roster     schedule.Roster
	Employees  []employee.Employee
	Offline    bool
	FetchedAt  time.Time
	Source     Source
}

// Templates returns the roster's shift templates.
func (s *Snapshot) Templates() []schedule.ShiftTemplate {
	return s.Roster.Templates
}

// Reference returns the organization data the attendance rules need.
func (s *Snapshot) Reference() attendancesvc.Reference {
	return attendancesvc.Reference{
		Config:    s.Config,
		Roster:    s.Roster,
		Employees: s.Employees,
	}
}

// seedSnapshot builds the offline fallback used when there is no cache.
func seedSnapshot(now time.Time) *Snapshot {
	return &Snapshot{
		Attendance: []attendance.Record{},
		Config:     fixtures.SeedConfig(),
		Roster:     fixtures.SeedRoster(),
		Employees:  fixtures.SeedEmployees(),
		Offline:    true,
		FetchedAt:  now,
		Source:     SourceSeed,
	}
}
