package schedule

// ShiftTemplate is a named shift used by the weekly roster.
type ShiftTemplate struct {
	ID        string
	CompanyID string
	Name      string
	StartTime string // HH:MM
	EndTime   string // HH:MM
}

// RosterAssignment maps a user and a date to a shift template.
type RosterAssignment struct {
	ID              string
	UserID          string
	Date            string // YYYY-MM-DD
	ShiftTemplateID string
}

// Roster is the full roster collection.
type Roster struct {
	Templates   []ShiftTemplate
	Assignments []RosterAssignment
}

// ShiftStartFor returns the rostered shift start for (userID, date), if any.
func (r Roster) ShiftStartFor(userID, date string) (string, bool) {
	for _, a := range r.Assignments {
		if a.UserID != userID || a.Date != date {
			continue
		}
		for _, t := range r.Templates {
			if t.ID == a.ShiftTemplateID && t.StartTime != "" {
				return t.StartTime, true
			}
		}
	}
	return "", false
}
