package schedule

import "context"

type RosterRepository interface {
	// Get returns every shift template and assignment of the company.
	Get(ctx context.Context, companyID string) (Roster, error)
}
