package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-sync/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-sync/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// FetchAll implements attendance.AttendanceRepository.
func (a *attendanceRepository) FetchAll(ctx context.Context, companyID string) (attendance.Collection, error) {
	var coll attendance.Collection

	err := WithTransaction(ctx, a.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, a.db)

		if err := q.QueryRow(ctx,
			`SELECT COALESCE((SELECT revision FROM attendance_collections WHERE company_id = $1), 0)`,
			companyID,
		).Scan(&coll.Revision); err != nil {
			return fmt.Errorf("failed to read attendance revision: %w", err)
		}

		rows, err := q.Query(ctx, `
			SELECT id, user_id, to_char(date, 'YYYY-MM-DD'), check_in, last_clock_in, check_out,
			       accumulated_time, break_time, location, latitude, longitude, late_reason
			FROM attendance_records
			WHERE company_id = $1
			ORDER BY date, user_id, id
		`, companyID)
		if err != nil {
			return fmt.Errorf("failed to query attendance records: %w", err)
		}
		defer rows.Close()

		coll.Records = make([]attendance.Record, 0)
		for rows.Next() {
			var (
				r        attendance.Record
				location string
			)
			if err := rows.Scan(
				&r.ID, &r.UserID, &r.Date, &r.CheckIn, &r.LastClockIn, &r.CheckOut,
				&r.AccumulatedTime, &r.BreakTime, &location, &r.Latitude, &r.Longitude, &r.LateReason,
			); err != nil {
				return fmt.Errorf("failed to scan attendance record: %w", err)
			}
			r.Location = attendance.Location(location)
			coll.Records = append(coll.Records, r)
		}
		return rows.Err()
	})
	if err != nil {
		return attendance.Collection{}, err
	}

	return coll, nil
}

// ReplaceAll implements attendance.AttendanceRepository.
func (a *attendanceRepository) ReplaceAll(ctx context.Context, companyID string, records []attendance.Record, revision int64) (int64, error) {
	var newRevision int64

	err := WithTransaction(ctx, a.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, a.db)

		if _, err := q.Exec(ctx,
			`INSERT INTO attendance_collections (company_id, revision) VALUES ($1, 0) ON CONFLICT (company_id) DO NOTHING`,
			companyID,
		); err != nil {
			return fmt.Errorf("failed to init attendance collection: %w", err)
		}

		var current int64
		if err := q.QueryRow(ctx,
			`SELECT revision FROM attendance_collections WHERE company_id = $1 FOR UPDATE`,
			companyID,
		).Scan(&current); err != nil {
			return fmt.Errorf("failed to lock attendance collection: %w", err)
		}
		if current != revision {
			return fmt.Errorf("%w: have %d, got %d", attendance.ErrRevisionConflict, current, revision)
		}

		if _, err := q.Exec(ctx, `DELETE FROM attendance_records WHERE company_id = $1`, companyID); err != nil {
			return fmt.Errorf("failed to clear attendance records: %w", err)
		}

		if len(records) > 0 {
			batch := &pgx.Batch{}
			for _, r := range records {
				date, err := time.Parse("2006-01-02", r.Date)
				if err != nil {
					return fmt.Errorf("invalid date %q on record %s: %w", r.Date, r.ID, err)
				}
				batch.Queue(`
					INSERT INTO attendance_records (
						id, company_id, user_id, date, check_in, last_clock_in, check_out,
						accumulated_time, break_time, location, latitude, longitude, late_reason
					) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
				`,
					r.ID, companyID, r.UserID, date, r.CheckIn, r.LastClockIn, r.CheckOut,
					r.AccumulatedTime, r.BreakTime, string(r.Location), r.Latitude, r.Longitude, r.LateReason,
				)
			}
			if err := q.SendBatch(ctx, batch).Close(); err != nil {
				return fmt.Errorf("failed to insert attendance records: %w", err)
			}
		}

		if err := q.QueryRow(ctx, `
			UPDATE attendance_collections
			SET revision = revision + 1, updated_at = now()
			WHERE company_id = $1
			RETURNING revision
		`, companyID).Scan(&newRevision); err != nil {
			return fmt.Errorf("failed to bump attendance revision: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return newRevision, nil
}
