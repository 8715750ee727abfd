package attendance

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/attendance-sync/internal/domain/attendance"
)

type CollectionServiceImpl struct {
	attendance.AttendanceRepository
}

func NewCollectionService(repo attendance.AttendanceRepository) attendance.CollectionService {
	return &CollectionServiceImpl{AttendanceRepository: repo}
}

// Get implements attendance.CollectionService.
func (s *CollectionServiceImpl) Get(ctx context.Context, companyID string) (attendance.CollectionResponse, error) {
	coll, err := s.AttendanceRepository.FetchAll(ctx, companyID)
	if err != nil {
		return attendance.CollectionResponse{}, fmt.Errorf("failed to fetch attendance: %w", err)
	}

	return attendance.CollectionResponse{
		Records:  attendance.ToPayloads(coll.Records),
		Revision: coll.Revision,
	}, nil
}

// Replace implements attendance.CollectionService.
func (s *CollectionServiceImpl) Replace(ctx context.Context, companyID string, req attendance.ReplaceRequest) (attendance.CollectionResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CollectionResponse{}, err
	}

	records := attendance.NormalizeRecords(req.Records)

	open := make(map[string]struct{})
	for _, r := range records {
		if !r.IsOpen() {
			continue
		}
		if _, dup := open[r.UserID]; dup {
			return attendance.CollectionResponse{}, fmt.Errorf("%w: user %s", attendance.ErrMultipleOpenSessions, r.UserID)
		}
		open[r.UserID] = struct{}{}
	}

	revision, err := s.AttendanceRepository.ReplaceAll(ctx, companyID, records, req.Revision)
	if err != nil {
		return attendance.CollectionResponse{}, err
	}

	slog.Info("Attendance collection replaced",
		"company_id", companyID,
		"records", len(records),
		"revision", revision)

	return attendance.CollectionResponse{
		Records:  attendance.ToPayloads(records),
		Revision: revision,
	}, nil
}
