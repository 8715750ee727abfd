package company

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/attendance-sync/internal/domain/company"
)

type ConfigServiceImpl struct {
	company.ConfigRepository
}

func NewConfigService(repo company.ConfigRepository) company.ConfigService {
	return &ConfigServiceImpl{ConfigRepository: repo}
}

// Get implements company.ConfigService. A company that never saved settings gets the defaults.
func (c *ConfigServiceImpl) Get(ctx context.Context, companyID string) (company.SystemConfigResponse, error) {
	cfg, err := c.ConfigRepository.Get(ctx, companyID)
	if err != nil {
		if errors.Is(err, company.ErrConfigNotFound) {
			return company.ToResponse(company.DefaultSystemConfig()), nil
		}
		return company.SystemConfigResponse{}, fmt.Errorf("failed to get system config: %w", err)
	}
	return company.ToResponse(cfg), nil
}

// Update implements company.ConfigService.
func (c *ConfigServiceImpl) Update(ctx context.Context, companyID string, req company.UpdateSystemConfigRequest) (company.SystemConfigResponse, error) {
	if err := req.Validate(); err != nil {
		return company.SystemConfigResponse{}, err
	}

	cfg := company.FromResponse(req.SystemConfigResponse)
	if err := c.ConfigRepository.Upsert(ctx, companyID, cfg); err != nil {
		return company.SystemConfigResponse{}, err
	}

	slog.Info("System config updated",
		"company_id", companyID,
		"timezone", cfg.Timezone,
		"scheduling_mode", cfg.SchedulingMode,
		"grace_period_minutes", cfg.GracePeriodMinutes)

	return company.ToResponse(cfg), nil
}
