package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-sync/internal/domain/company"
	"github.com/cmlabs-hris/attendance-sync/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type configRepository struct {
	db *database.DB
}

func NewConfigRepository(db *database.DB) company.ConfigRepository {
	return &configRepository{db: db}
}

// Get implements company.ConfigRepository.
func (c *configRepository) Get(ctx context.Context, companyID string) (company.SystemConfig, error) {
	q := GetQuerier(ctx, c.db)

	var (
		cfg  company.SystemConfig
		mode string
	)
	err := q.QueryRow(ctx, `
		SELECT company_name, work_start_time, work_end_time, grace_period_minutes, timezone,
		       scheduling_mode, office_latitude, office_longitude, office_radius_meters
		FROM system_configs
		WHERE company_id = $1
	`, companyID).Scan(
		&cfg.CompanyName, &cfg.WorkStartTime, &cfg.WorkEndTime, &cfg.GracePeriodMinutes, &cfg.Timezone,
		&mode, &cfg.OfficeLatitude, &cfg.OfficeLongitude, &cfg.OfficeRadiusMeters,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.SystemConfig{}, company.ErrConfigNotFound
		}
		return company.SystemConfig{}, fmt.Errorf("failed to get system config: %w", err)
	}
	cfg.SchedulingMode = company.SchedulingMode(mode)

	return cfg, nil
}

// Upsert implements company.ConfigRepository.
func (c *configRepository) Upsert(ctx context.Context, companyID string, cfg company.SystemConfig) error {
	q := GetQuerier(ctx, c.db)

	_, err := q.Exec(ctx, `
		INSERT INTO system_configs (
			company_id, company_name, work_start_time, work_end_time, grace_period_minutes, timezone,
			scheduling_mode, office_latitude, office_longitude, office_radius_meters
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (company_id) DO UPDATE SET
			company_name = EXCLUDED.company_name,
			work_start_time = EXCLUDED.work_start_time,
			work_end_time = EXCLUDED.work_end_time,
			grace_period_minutes = EXCLUDED.grace_period_minutes,
			timezone = EXCLUDED.timezone,
			scheduling_mode = EXCLUDED.scheduling_mode,
			office_latitude = EXCLUDED.office_latitude,
			office_longitude = EXCLUDED.office_longitude,
			office_radius_meters = EXCLUDED.office_radius_meters,
			updated_at = now()
	`,
		companyID, cfg.CompanyName, cfg.WorkStartTime, cfg.WorkEndTime, cfg.GracePeriodMinutes, cfg.Timezone,
		string(cfg.SchedulingMode), cfg.OfficeLatitude, cfg.OfficeLongitude, cfg.OfficeRadiusMeters,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert system config: %w", err)
	}
	return nil
}
