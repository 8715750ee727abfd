package schedule

import "context"

type RosterService interface {
	Get(ctx context.Context, companyID string) (RosterResponse, error)
}
