package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-sync/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-sync/internal/pkg/database"
)

type rosterRepository struct {
	db *database.DB
}

func NewRosterRepository(db *database.DB) schedule.RosterRepository {
	return &rosterRepository{db: db}
}

// Get implements schedule.RosterRepository.
func (r *rosterRepository) Get(ctx context.Context, companyID string) (schedule.Roster, error) {
	q := GetQuerier(ctx, r.db)

	roster := schedule.Roster{
		Templates:   make([]schedule.ShiftTemplate, 0),
		Assignments: make([]schedule.RosterAssignment, 0),
	}

	rows, err := q.Query(ctx, `
		SELECT id, company_id, name, start_time, end_time
		FROM shift_templates
		WHERE company_id = $1
		ORDER BY start_time, name
	`, companyID)
	if err != nil {
		return schedule.Roster{}, fmt.Errorf("failed to query shift templates: %w", err)
	}
	for rows.Next() {
		var t schedule.ShiftTemplate
		if err := rows.Scan(&t.ID, &t.CompanyID, &t.Name, &t.StartTime, &t.EndTime); err != nil {
			rows.Close()
			return schedule.Roster{}, fmt.Errorf("failed to scan shift template: %w", err)
		}
		roster.Templates = append(roster.Templates, t)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return schedule.Roster{}, fmt.Errorf("failed to query shift templates: %w", err)
	}

	rows, err = q.Query(ctx, `
		SELECT id, user_id, to_char(date, 'YYYY-MM-DD'), shift_template_id
		FROM roster_assignments
		WHERE company_id = $1
		ORDER BY date, user_id
	`, companyID)
	if err != nil {
		return schedule.Roster{}, fmt.Errorf("failed to query roster assignments: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var a schedule.RosterAssignment
		if err := rows.Scan(&a.ID, &a.UserID, &a.Date, &a.ShiftTemplateID); err != nil {
			return schedule.Roster{}, fmt.Errorf("failed to scan roster assignment: %w", err)
		}
		roster.Assignments = append(roster.Assignments, a)
	}
	if err := rows.Err(); err != nil {
		return schedule.Roster{}, fmt.Errorf("failed to query roster assignments: %w", err)
	}

	return roster, nil
}
