package company

// SchedulingMode selects how a user's shift start is resolved.
type SchedulingMode string

const (
	SchedulingModeFixedShift   SchedulingMode = "FIXED_SHIFT"
	SchedulingModeWeeklyRoster SchedulingMode = "WEEKLY_ROSTER"
)

var SchedulingModeValues = []string{
	string(SchedulingModeFixedShift),
	string(SchedulingModeWeeklyRoster),
}

// SystemConfig holds the organization settings the attendance core depends on.
type SystemConfig struct {
	CompanyName        string
	WorkStartTime      string // HH:MM
	WorkEndTime        string // HH:MM
	GracePeriodMinutes int
	Timezone           string // UTC+7, UTC-3:30, ...
	SchedulingMode     SchedulingMode

	// Optional office geofence used to correlate GPS fixes with the declared location.
	OfficeLatitude     *float64
	OfficeLongitude    *float64
	OfficeRadiusMeters int
}

// DefaultSystemConfig is used when nothing has been configured yet.
func DefaultSystemConfig() SystemConfig {
	return SystemConfig{
		CompanyName:        "HRIS",
		WorkStartTime:      "09:00",
		WorkEndTime:        "17:00",
		GracePeriodMinutes: 15,
		Timezone:           "UTC+7",
		SchedulingMode:     SchedulingModeFixedShift,
	}
}

// HasGeofence reports whether an office location is configured.
func (c SystemConfig) HasGeofence() bool {
	return c.OfficeLatitude != nil && c.OfficeLongitude != nil && c.OfficeRadiusMeters > 0
}
