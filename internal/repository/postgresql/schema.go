package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-sync/internal/pkg/database"
)

// schema is applied at startup; every statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS system_configs (
		company_id           UUID PRIMARY KEY,
		company_name         TEXT NOT NULL DEFAULT '',
		work_start_time      TEXT NOT NULL DEFAULT '09:00',
		work_end_time        TEXT NOT NULL DEFAULT '17:00',
		grace_period_minutes INTEGER NOT NULL DEFAULT 15 CHECK (grace_period_minutes >= 0),
		timezone             TEXT NOT NULL DEFAULT 'UTC+7',
		scheduling_mode      TEXT NOT NULL DEFAULT 'FIXED_SHIFT',
		office_latitude      DOUBLE PRECISION,
		office_longitude     DOUBLE PRECISION,
		office_radius_meters INTEGER NOT NULL DEFAULT 0,
		updated_at           TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS employees (
		id            UUID PRIMARY KEY,
		company_id    UUID NOT NULL,
		full_name     TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		role          TEXT NOT NULL DEFAULT 'employee',
		shift_start   TEXT,
		shift_end     TEXT,
		password_hash TEXT,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_employees_company ON employees (company_id)`,
	`CREATE TABLE IF NOT EXISTS shift_templates (
		id         UUID PRIMARY KEY,
		company_id UUID NOT NULL,
		name       TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time   TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS roster_assignments (
		id                UUID PRIMARY KEY,
		company_id        UUID NOT NULL,
		user_id           UUID NOT NULL,
		date              DATE NOT NULL,
		shift_template_id UUID NOT NULL REFERENCES shift_templates (id) ON DELETE CASCADE,
		UNIQUE (company_id, user_id, date)
	)`,
	`CREATE TABLE IF NOT EXISTS attendance_collections (
		company_id UUID PRIMARY KEY,
		revision   BIGINT NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS attendance_records (
		id               TEXT NOT NULL,
		company_id       UUID NOT NULL,
		user_id          TEXT NOT NULL,
		date             DATE NOT NULL,
		check_in         TEXT NOT NULL,
		last_clock_in    TEXT,
		check_out        TEXT,
		accumulated_time BIGINT NOT NULL DEFAULT 0,
		break_time       BIGINT NOT NULL DEFAULT 0,
		location         TEXT NOT NULL DEFAULT '',
		latitude         DOUBLE PRECISION,
		longitude        DOUBLE PRECISION,
		late_reason      TEXT,
		PRIMARY KEY (company_id, id)
	)`,
}

// EnsureSchema creates missing tables.
func EnsureSchema(ctx context.Context, db *database.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
