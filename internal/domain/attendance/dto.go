package attendance

import (
	"fmt"
	"strings"

	"github.com/cmlabs-hris/attendance-sync/internal/pkg/timeutil"
	"github.com/cmlabs-hris/attendance-sync/internal/pkg/validator"
)

// ========================================
// WIRE PAYLOADS
// ========================================

// RecordPayload is the JSON shape of a record on the wire and in caches.
// Time fields may carry placeholder values; NormalizeRecord resolves them.
type RecordPayload struct {
	ID              string   `json:"id"`
	UserID          string   `json:"user_id"`
	Date            string   `json:"date"`
	CheckIn         string   `json:"check_in"`
	LastClockIn     string   `json:"last_clock_in,omitempty"`
	CheckOut        string   `json:"check_out,omitempty"`
	AccumulatedTime int64    `json:"accumulated_time"`
	BreakTime       int64    `json:"break_time"`
	Location        string   `json:"location,omitempty"`
	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
	LateReason      string   `json:"late_reason,omitempty"`
}

// NormalizeRecord converts a wire payload into a Record.
// This is the only place placeholder time values are interpreted.
func NormalizeRecord(p RecordPayload) Record {
	r := Record{
		ID:              p.ID,
		UserID:          p.UserID,
		Date:            strings.TrimSpace(p.Date),
		CheckIn:         strings.TrimSpace(p.CheckIn),
		AccumulatedTime: max(p.AccumulatedTime, 0),
		BreakTime:       max(p.BreakTime, 0),
		Location:        Location(p.Location),
		Latitude:        p.Latitude,
		Longitude:       p.Longitude,
	}

	if timeutil.IsUnsetTime(r.CheckIn) {
		r.CheckIn = timeutil.PlaceholderTime
	}
	if !timeutil.IsUnsetTime(p.LastClockIn) {
		v := strings.TrimSpace(p.LastClockIn)
		r.LastClockIn = &v
	}
	if !timeutil.IsUnsetTime(p.CheckOut) {
		v := strings.TrimSpace(p.CheckOut)
		r.CheckOut = &v
	}
	if reason := strings.TrimSpace(p.LateReason); reason != "" {
		r.LateReason = &reason
	}

	return r
}

// NormalizeRecords normalizes a slice of payloads.
func NormalizeRecords(payloads []RecordPayload) []Record {
	records := make([]Record, 0, len(payloads))
	for _, p := range payloads {
		records = append(records, NormalizeRecord(p))
	}
	return records
}

// ToPayload converts a Record to its wire shape.
func ToPayload(r Record) RecordPayload {
	p := RecordPayload{
		ID:              r.ID,
		UserID:          r.UserID,
		Date:            r.Date,
		CheckIn:         r.CheckIn,
		AccumulatedTime: r.AccumulatedTime,
		BreakTime:       r.BreakTime,
		Location:        string(r.Location),
		Latitude:        r.Latitude,
		Longitude:       r.Longitude,
	}
	if r.LastClockIn != nil {
		p.LastClockIn = *r.LastClockIn
	}
	if r.CheckOut != nil {
		p.CheckOut = *r.CheckOut
	}
	if r.LateReason != nil {
		p.LateReason = *r.LateReason
	}
	return p
}

// ToPayloads converts records to their wire shape.
func ToPayloads(records []Record) []RecordPayload {
	payloads := make([]RecordPayload, 0, len(records))
	for _, r := range records {
		payloads = append(payloads, ToPayload(r))
	}
	return payloads
}

// CollectionResponse is returned by GET /attendance.
type CollectionResponse struct {
	Records  []RecordPayload `json:"records"`
	Revision int64           `json:"revision"`
}

// ReplaceRequest is the body of PUT /attendance.
type ReplaceRequest struct {
	Records  []RecordPayload `json:"records"`
	Revision int64           `json:"revision"`
}

func (r *ReplaceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Revision < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "revision",
			Message: "revision must not be negative",
		})
	}

	seen := make(map[string]struct{}, len(r.Records))
	for i, rec := range r.Records {
		field := fmt.Sprintf("records[%d]", i)
		if validator.IsEmpty(rec.ID) {
			errs = append(errs, validator.ValidationError{Field: field + ".id", Message: "id is required"})
		} else if _, dup := seen[rec.ID]; dup {
			errs = append(errs, validator.ValidationError{Field: field + ".id", Message: "id must be unique"})
		} else {
			seen[rec.ID] = struct{}{}
		}
		if validator.IsEmpty(rec.UserID) {
			errs = append(errs, validator.ValidationError{Field: field + ".user_id", Message: "user_id is required"})
		}
		if _, valid := validator.IsValidDate(rec.Date); !valid {
			errs = append(errs, validator.ValidationError{Field: field + ".date", Message: "date must be in YYYY-MM-DD format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// COMMANDS
// ========================================

type ClockInRequest struct {
	UserID     string   `json:"user_id"`
	Location   Location `json:"location"`
	LateReason string   `json:"late_reason,omitempty"`
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	r.LateReason = strings.TrimSpace(r.LateReason)

	if r.Location == "" {
		r.Location = LocationOffice
	}
	if !validator.IsInSlice(string(r.Location), LocationValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: ErrInvalidLocation.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ClockOutRequest struct {
	UserID string `json:"user_id"`
}

func (r *ClockOutRequest) Validate() error {
	if validator.IsEmpty(r.UserID) {
		return validator.ValidationErrors{{
			Field:   "user_id",
			Message: "user_id is required",
		}}
	}
	return nil
}

// ClockResult reports the outcome of a clock command and the affected record, if any.
type ClockResult struct {
	Outcome Outcome
	Record  *Record
	Late    bool
}
