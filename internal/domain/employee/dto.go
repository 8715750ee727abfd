package employee

type EmployeeResponse struct {
	ID         string  `json:"id"`
	FullName   string  `json:"full_name"`
	Email      string  `json:"email"`
	Role       string  `json:"role"`
	ShiftStart *string `json:"shift_start,omitempty"`
	ShiftEnd   *string `json:"shift_end,omitempty"`
}

// ToResponse drops server-only fields.
func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID,
		FullName:   e.FullName,
		Email:      e.Email,
		Role:       string(e.Role),
		ShiftStart: e.ShiftStart,
		ShiftEnd:   e.ShiftEnd,
	}
}

func ToResponses(employees []Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, ToResponse(e))
	}
	return out
}

func FromResponse(r EmployeeResponse) Employee {
	shiftStart := r.ShiftStart
	if shiftStart != nil && *shiftStart == "" {
		shiftStart = nil
	}
	return Employee{
		ID:         r.ID,
		FullName:   r.FullName,
		Email:      r.Email,
		Role:       Role(r.Role),
		ShiftStart: shiftStart,
		ShiftEnd:   r.ShiftEnd,
	}
}

func FromResponses(rs []EmployeeResponse) []Employee {
	out := make([]Employee, 0, len(rs))
	for _, r := range rs {
		out = append(out, FromResponse(r))
	}
	return out
}
