package attendance

import (
	"time"

	"github.com/cmlabs-hris/attendance-sync/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-sync/internal/pkg/timeutil"
)

// ClockInParams carries everything a clock-in needs besides the collection.
// Now must already be on the organization's wall clock.
type ClockInParams struct {
	UserID     string
	Now        time.Time
	Location   attendance.Location
	Latitude   *float64
	Longitude  *float64
	LateReason string
	NewID      func() string
}

// DayState reports the user's clock state for an organization-local date.
func DayState(records []attendance.Record, userID, date string) attendance.State {
	i := findForDate(records, userID, date)
	if i < 0 {
		return attendance.StateNotStarted
	}
	if records[i].IsOpen() {
		return attendance.StateActive
	}
	return attendance.StateClosedCanResume
}

// OpenRecord returns the user's open record on any date.
func OpenRecord(records []attendance.Record, userID string) (attendance.Record, bool) {
	i := findOpen(records, userID)
	if i < 0 {
		return attendance.Record{}, false
	}
	return records[i], true
}

// ApplyClockIn returns the collection after a clock-in. The input slice is not modified.
//
// An open session on the same day makes the call a no-op. An open session left over
// from an earlier day is closed at 23:59:59 of its own date before today's session starts.
func ApplyClockIn(records []attendance.Record, p ClockInParams) ([]attendance.Record, attendance.ClockResult) {
	today := timeutil.DateString(p.Now)
	nowTOD := timeutil.TimeString(p.Now)
	loc := p.Now.Location()

	if i := findOpen(records, p.UserID); i >= 0 {
		open := records[i]
		if open.Date >= today {
			rec := open.Clone()
			return records, attendance.ClockResult{Outcome: attendance.OutcomeNoop, Record: &rec}
		}
		records = attendance.CloneRecords(records)
		closeAtEndOfDay(&records[i], loc)
	} else {
		records = attendance.CloneRecords(records)
	}

	if i := findForDate(records, p.UserID, today); i >= 0 {
		rec := &records[i]
		if prevOut, ok := timeutil.ParseTimeOnDate(rec.Date, derefString(rec.CheckOut), loc); ok {
			rec.BreakTime += timeutil.ElapsedSeconds(prevOut, p.Now)
		}
		rec.LastClockIn = &nowTOD
		rec.CheckOut = nil
		if p.Location != "" {
			rec.Location = p.Location
		}
		if p.Latitude != nil && p.Longitude != nil {
			rec.Latitude = p.Latitude
			rec.Longitude = p.Longitude
		}
		if p.LateReason != "" {
			reason := p.LateReason
			rec.LateReason = &reason
		}
		out := rec.Clone()
		return records, attendance.ClockResult{Outcome: attendance.OutcomeResumed, Record: &out}
	}

	lastClockIn := nowTOD
	rec := attendance.Record{
		ID:          p.NewID(),
		UserID:      p.UserID,
		Date:        today,
		CheckIn:     nowTOD,
		LastClockIn: &lastClockIn,
		Location:    p.Location,
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
	}
	if p.LateReason != "" {
		reason := p.LateReason
		rec.LateReason = &reason
	}
	records = append(records, rec)

	out := rec.Clone()
	return records, attendance.ClockResult{Outcome: attendance.OutcomeCreated, Record: &out}
}

// ApplyClockOut returns the collection after a clock-out. The input slice is not modified.
// The open record is looked up across all dates so a session that crossed midnight
// on the organization clock can still be closed.
func ApplyClockOut(records []attendance.Record, userID string, now time.Time) ([]attendance.Record, attendance.ClockResult) {
	i := findOpen(records, userID)
	if i < 0 {
		return records, attendance.ClockResult{Outcome: attendance.OutcomeNoop}
	}

	records = attendance.CloneRecords(records)
	rec := &records[i]
	if start, ok := timeutil.ParseTimeOnDate(rec.Date, rec.SessionStart(), now.Location()); ok {
		rec.AccumulatedTime += timeutil.ElapsedSeconds(start, now)
	}
	out := timeutil.TimeString(now)
	rec.CheckOut = &out

	result := rec.Clone()
	return records, attendance.ClockResult{Outcome: attendance.OutcomeClosed, Record: &result}
}

func closeAtEndOfDay(rec *attendance.Record, loc *time.Location) {
	end, ok := timeutil.EndOfDay(rec.Date, loc)
	if !ok {
		return
	}
	if start, ok := timeutil.ParseTimeOnDate(rec.Date, rec.SessionStart(), loc); ok {
		rec.AccumulatedTime += timeutil.ElapsedSeconds(start, end)
	}
	out := timeutil.TimeString(end)
	rec.CheckOut = &out
}

func findForDate(records []attendance.Record, userID, date string) int {
	for i := range records {
		if records[i].UserID == userID && records[i].Date == date {
			return i
		}
	}
	return -1
}

// findOpen returns the most recent open record of the user.
func findOpen(records []attendance.Record, userID string) int {
	found := -1
	for i := range records {
		if records[i].UserID != userID || !records[i].IsOpen() {
			continue
		}
		if found < 0 || records[i].Date > records[found].Date {
			found = i
		}
	}
	return found
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
