package attendance

import (
	"time"

	"github.com/cmlabs-hris/attendance-sync/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-sync/internal/domain/company"
	"github.com/cmlabs-hris/attendance-sync/internal/pkg/timeutil"
	"github.com/cmlabs-hris/attendance-sync/internal/pkg/utils"
)

// DailySummary is the derived, display-only view of a user's day.
type DailySummary struct {
	UserID         string
	Date           string
	State          attendance.State
	WorkedSeconds  int64
	BreakSeconds   int64
	Open           *attendance.Record
	ShiftStart     string
	GraceDeadline  string
	DistanceMeters *float64 // from the office geofence, when both are known
	WithinOffice   *bool
}

// Summarize computes the live worked time for userID on now's organization date.
// The open session's running time is added on top of the stored totals and is never persisted.
func Summarize(records []attendance.Record, ref Reference, userID string, now time.Time) DailySummary {
	today := timeutil.DateString(now)
	s := DailySummary{
		UserID:     userID,
		Date:       today,
		State:      DayState(records, userID, today),
		ShiftStart: EffectiveShiftStart(ref, userID, today),
	}
	if deadline, ok := GraceDeadline(ref, userID, today, now.Location()); ok {
		s.GraceDeadline = timeutil.TimeString(deadline)
	}

	for _, r := range records {
		if r.UserID != userID || r.Date != today {
			continue
		}
		s.WorkedSeconds += r.AccumulatedTime
		s.BreakSeconds += r.BreakTime
	}

	if open, ok := OpenRecord(records, userID); ok {
		if start, ok := timeutil.ParseTimeOnDate(open.Date, open.SessionStart(), now.Location()); ok {
			s.WorkedSeconds += timeutil.ElapsedSeconds(start, now)
		}
		rec := open.Clone()
		s.Open = &rec
		correlateWithOffice(&s, ref.Config, rec)
	}

	return s
}

func correlateWithOffice(s *DailySummary, cfg company.SystemConfig, rec attendance.Record) {
	if !cfg.HasGeofence() || rec.Latitude == nil || rec.Longitude == nil {
		return
	}
	d := utils.CalculateHaversineDistance(*rec.Latitude, *rec.Longitude, *cfg.OfficeLatitude, *cfg.OfficeLongitude)
	within := d <= float64(cfg.OfficeRadiusMeters)
	s.DistanceMeters = &d
	s.WithinOffice = &within
}
