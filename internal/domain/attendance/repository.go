package attendance

import "context"

// Store is the remote-backed attendance collection.
// There is no per-record update: every write replaces the whole collection.
type Store interface {
	// FetchAll retrieves the organization's full collection, normalized.
	FetchAll(ctx context.Context) (Collection, error)

	// ReplaceAll persists the full collection. It fails with ErrRevisionConflict when
	// the stored revision is no longer the one the caller read.
	ReplaceAll(ctx context.Context, records []Record, revision int64) (int64, error)
}

// AttendanceRepository is the server-side, per-company storage behind Store.
type AttendanceRepository interface {
	// FetchAll returns the company's records and current revision. A company that never
	// wrote anything is at revision 0.
	FetchAll(ctx context.Context, companyID string) (Collection, error)

	// ReplaceAll swaps the company's records atomically when revision is current
	// and returns the new revision.
	ReplaceAll(ctx context.Context, companyID string, records []Record, revision int64) (int64, error)
}
