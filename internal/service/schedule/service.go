package schedule

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-sync/internal/domain/schedule"
)

type RosterServiceImpl struct {
	schedule.RosterRepository
}

func NewRosterService(repo schedule.RosterRepository) schedule.RosterService {
	return &RosterServiceImpl{RosterRepository: repo}
}

// Get implements schedule.RosterService.
func (r *RosterServiceImpl) Get(ctx context.Context, companyID string) (schedule.RosterResponse, error) {
	roster, err := r.RosterRepository.Get(ctx, companyID)
	if err != nil {
		return schedule.RosterResponse{}, fmt.Errorf("failed to get roster: %w", err)
	}
	return schedule.ToResponse(roster), nil
}
