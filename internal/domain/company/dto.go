package company

import (
	"github.com/cmlabs-hris/attendance-sync/internal/pkg/timeutil"
	"github.com/cmlabs-hris/attendance-sync/internal/pkg/validator"
)

type SystemConfigResponse struct {
	CompanyName        string   `json:"company_name"`
	WorkStartTime      string   `json:"work_start_time"`
	WorkEndTime        string   `json:"work_end_time"`
	GracePeriodMinutes int      `json:"grace_period_minutes"`
	Timezone           string   `json:"timezone"`
	SchedulingMode     string   `json:"scheduling_mode"`
	OfficeLatitude     *float64 `json:"office_latitude,omitempty"`
	OfficeLongitude    *float64 `json:"office_longitude,omitempty"`
	OfficeRadiusMeters int      `json:"office_radius_meters,omitempty"`
}

// ToResponse converts a SystemConfig to its wire shape.
func ToResponse(c SystemConfig) SystemConfigResponse {
	return SystemConfigResponse{
		CompanyName:        c.CompanyName,
		WorkStartTime:      c.WorkStartTime,
		WorkEndTime:        c.WorkEndTime,
		GracePeriodMinutes: c.GracePeriodMinutes,
		Timezone:           c.Timezone,
		SchedulingMode:     string(c.SchedulingMode),
		OfficeLatitude:     c.OfficeLatitude,
		OfficeLongitude:    c.OfficeLongitude,
		OfficeRadiusMeters: c.OfficeRadiusMeters,
	}
}

// FromResponse converts a wire config, filling defaults for missing fields.
func FromResponse(r SystemConfigResponse) SystemConfig {
	def := DefaultSystemConfig()
	c := SystemConfig{
		CompanyName:        r.CompanyName,
		WorkStartTime:      r.WorkStartTime,
		WorkEndTime:        r.WorkEndTime,
		GracePeriodMinutes: max(r.GracePeriodMinutes, 0),
		Timezone:           r.Timezone,
		SchedulingMode:     SchedulingMode(r.SchedulingMode),
		OfficeLatitude:     r.OfficeLatitude,
		OfficeLongitude:    r.OfficeLongitude,
		OfficeRadiusMeters: r.OfficeRadiusMeters,
	}
	if c.WorkStartTime == "" {
		c.WorkStartTime = def.WorkStartTime
	}
	if c.WorkEndTime == "" {
		c.WorkEndTime = def.WorkEndTime
	}
	if c.SchedulingMode == "" {
		c.SchedulingMode = def.SchedulingMode
	}
	return c
}

// UpdateSystemConfigRequest replaces the organization settings.
type UpdateSystemConfigRequest struct {
	SystemConfigResponse
}

func (r *UpdateSystemConfigRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidClockTime(r.WorkStartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "work_start_time",
			Message: "work_start_time must be in HH:MM format",
		})
	}
	if r.WorkEndTime != "" && !validator.IsValidClockTime(r.WorkEndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "work_end_time",
			Message: "work_end_time must be in HH:MM format",
		})
	}
	if r.GracePeriodMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "grace_period_minutes",
			Message: "grace_period_minutes must not be negative",
		})
	}
	if _, ok := timeutil.ParseUTCOffset(r.Timezone); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "timezone",
			Message: "timezone must look like UTC+7 or UTC-3:30",
		})
	}
	if !validator.IsInSlice(r.SchedulingMode, SchedulingModeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "scheduling_mode",
			Message: "scheduling_mode must be FIXED_SHIFT or WEEKLY_ROSTER",
		})
	}
	if r.OfficeRadiusMeters < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "office_radius_meters",
			Message: "office_radius_meters must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
