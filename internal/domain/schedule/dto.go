package schedule

type ShiftTemplateResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type RosterAssignmentResponse struct {
	ID              string `json:"id"`
	UserID          string `json:"user_id"`
	Date            string `json:"date"`
	ShiftTemplateID string `json:"shift_template_id"`
}

type RosterResponse struct {
	Templates   []ShiftTemplateResponse    `json:"templates"`
	Assignments []RosterAssignmentResponse `json:"assignments"`
}

func ToResponse(r Roster) RosterResponse {
	resp := RosterResponse{
		Templates:   make([]ShiftTemplateResponse, 0, len(r.Templates)),
		Assignments: make([]RosterAssignmentResponse, 0, len(r.Assignments)),
	}
	for _, t := range r.Templates {
		resp.Templates = append(resp.Templates, ShiftTemplateResponse{
			ID:        t.ID,
			Name:      t.Name,
			StartTime: t.StartTime,
			EndTime:   t.EndTime,
		})
	}
	for _, a := range r.Assignments {
		resp.Assignments = append(resp.Assignments, RosterAssignmentResponse(a))
	}
	return resp
}

func FromResponse(resp RosterResponse) Roster {
	r := Roster{
		Templates:   make([]ShiftTemplate, 0, len(resp.Templates)),
		Assignments: make([]RosterAssignment, 0, len(resp.Assignments)),
	}
	for _, t := range resp.Templates {
		r.Templates = append(r.Templates, ShiftTemplate{
			ID:        t.ID,
			Name:      t.Name,
			StartTime: t.StartTime,
			EndTime:   t.EndTime,
		})
	}
	for _, a := range resp.Assignments {
		r.Assignments = append(r.Assignments, RosterAssignment(a))
	}
	return r
}
