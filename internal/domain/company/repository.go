package company

import "context"

// ConfigRepository reads and writes the organization's SystemConfig.
type ConfigRepository interface {
	Get(ctx context.Context, companyID string) (SystemConfig, error)
	Upsert(ctx context.Context, companyID string, cfg SystemConfig) error
}
