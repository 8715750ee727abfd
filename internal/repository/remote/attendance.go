package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/attendance-sync/internal/domain/attendance"
)

type attendanceStore struct {
	client *Client
}

// NewAttendanceStore returns an attendance.Store backed by the API's full-collection endpoints.
func NewAttendanceStore(client *Client) attendance.Store {
	return &attendanceStore{client: client}
}

// FetchAll implements attendance.Store.
func (s *attendanceStore) FetchAll(ctx context.Context) (attendance.Collection, error) {
	var resp attendance.CollectionResponse
	if err := s.client.do(ctx, http.MethodGet, "/api/v1/attendance", nil, &resp); err != nil {
		return attendance.Collection{}, mapStoreError(err)
	}
	return attendance.Collection{
		Records:  attendance.NormalizeRecords(resp.Records),
		Revision: resp.Revision,
	}, nil
}

// ReplaceAll implements attendance.Store.
func (s *attendanceStore) ReplaceAll(ctx context.Context, records []attendance.Record, revision int64) (int64, error) {
	req := attendance.ReplaceRequest{
		Records:  attendance.ToPayloads(records),
		Revision: revision,
	}
	var resp attendance.CollectionResponse
	if err := s.client.do(ctx, http.MethodPut, "/api/v1/attendance", req, &resp); err != nil {
		return 0, mapStoreError(err)
	}
	return resp.Revision, nil
}

func mapStoreError(err error) error {
	switch {
	case statusOf(err) == http.StatusConflict:
		return fmt.Errorf("%w: %w", attendance.ErrRevisionConflict, err)
	case errors.Is(err, ErrUnavailable):
		return fmt.Errorf("%w: %w", attendance.ErrStoreUnavailable, err)
	default:
		return err
	}
}
