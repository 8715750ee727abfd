package attendance

import (
	"context"
)

// AttendanceService runs clock commands against the latest remote collection.
type AttendanceService interface {
	// ClockIn starts or resumes the user's session for the organization day.
	ClockIn(ctx context.Context, req ClockInRequest) (ClockResult, error)

	// ClockOut closes the user's open session, whatever day it was opened on.
	ClockOut(ctx context.Context, req ClockOutRequest) (ClockResult, error)
}

// CollectionService serves the full-collection API.
type CollectionService interface {
	Get(ctx context.Context, companyID string) (CollectionResponse, error)
	Replace(ctx context.Context, companyID string, req ReplaceRequest) (CollectionResponse, error)
}
