package remote

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/attendance-sync/internal/domain/company"
	"github.com/cmlabs-hris/attendance-sync/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-sync/internal/domain/schedule"
)

// FetchConfig returns the organization's system config.
func (c *Client) FetchConfig(ctx context.Context) (company.SystemConfig, error) {
	var resp company.SystemConfigResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/config", nil, &resp); err != nil {
		return company.SystemConfig{}, err
	}
	return company.FromResponse(resp), nil
}

// UpdateConfig replaces the organization's system config. Managers only.
func (c *Client) UpdateConfig(ctx context.Context, req company.UpdateSystemConfigRequest) (company.SystemConfig, error) {
	var resp company.SystemConfigResponse
	if err := c.do(ctx, http.MethodPut, "/api/v1/config", req, &resp); err != nil {
		return company.SystemConfig{}, err
	}
	return company.FromResponse(resp), nil
}

// FetchRoster returns every shift template and roster assignment.
func (c *Client) FetchRoster(ctx context.Context) (schedule.Roster, error) {
	var resp schedule.RosterResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/roster", nil, &resp); err != nil {
		return schedule.Roster{}, err
	}
	return schedule.FromResponse(resp), nil
}

// FetchEmployees returns the organization's employees.
func (c *Client) FetchEmployees(ctx context.Context) ([]employee.Employee, error) {
	var resp []employee.EmployeeResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/employees", nil, &resp); err != nil {
		return nil, err
	}
	return employee.FromResponses(resp), nil
}
