package company

import "context"

type ConfigService interface {
	Get(ctx context.Context, companyID string) (SystemConfigResponse, error)
	Update(ctx context.Context, companyID string, req UpdateSystemConfigRequest) (SystemConfigResponse, error)
}
