package attendance

// Location classifies where a clock-in happened.
type Location string

const (
	LocationOffice     Location = "Office"
	LocationHome       Location = "Home"
	LocationClientSite Location = "Client Site"
)

var LocationValues = []string{
	string(LocationOffice),
	string(LocationHome),
	string(LocationClientSite),
}

// Record is one user's attendance for one organization-local day.
// A day may hold several clock-in/clock-out cycles; they all mutate the same record.
type Record struct {
	ID              string
	UserID          string
	Date            string // YYYY-MM-DD, organization-local
	CheckIn         string // HH:MM:SS of the first check-in of the day
	LastClockIn     *string
	CheckOut        *string // nil while the session is open
	AccumulatedTime int64   // seconds of closed sessions
	BreakTime       int64   // seconds between a check-out and the next check-in
	Location        Location
	Latitude        *float64
	Longitude       *float64
	LateReason      *string
}

// IsOpen reports whether the record has a running session.
func (r Record) IsOpen() bool {
	return r.CheckOut == nil
}

// SessionStart returns the time of day the running (or last) session started.
func (r Record) SessionStart() string {
	if r.LastClockIn != nil && *r.LastClockIn != "" {
		return *r.LastClockIn
	}
	return r.CheckIn
}

// Clone returns a deep copy so callers can mutate without touching shared snapshots.
func (r Record) Clone() Record {
	c := r
	c.LastClockIn = cloneString(r.LastClockIn)
	c.CheckOut = cloneString(r.CheckOut)
	c.LateReason = cloneString(r.LateReason)
	c.Latitude = cloneFloat(r.Latitude)
	c.Longitude = cloneFloat(r.Longitude)
	return c
}

// Collection is the full attendance collection of an organization together with
// the revision it was read at.
type Collection struct {
	Records  []Record
	Revision int64
}

// CloneRecords deep-copies a record slice.
func CloneRecords(records []Record) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}

// State is the per-user, per-day clock state.
type State string

const (
	StateNotStarted      State = "NOT_STARTED"
	StateActive          State = "ACTIVE"
	StateClosedCanResume State = "CLOSED_CAN_RESUME"
)

// Outcome describes what a clock command did to the collection.
type Outcome string

const (
	OutcomeCreated Outcome = "created"
	OutcomeResumed Outcome = "resumed"
	OutcomeClosed  Outcome = "closed"
	OutcomeNoop    Outcome = "noop"
)

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
