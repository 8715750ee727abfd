package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout      = "2006-01-02"
	TimeLayout      = "15:04:05"
	ShortTimeLayout = "15:04"

	// PlaceholderTime is stored for a check-in that arrived without a usable value.
	PlaceholderTime = "00:00:00"
)

// unsetValues are the stored representations that mean "no time recorded".
var unsetValues = map[string]struct{}{
	"":          {},
	"00:00:00":  {},
	"null":      {},
	"undefined": {},
	"--:--":     {},
}

// IsUnsetTime reports whether s is one of the placeholder values used for a missing time of day.
func IsUnsetTime(s string) bool {
	_, ok := unsetValues[strings.TrimSpace(s)]
	return ok
}

// ParseTimeOnDate combines a YYYY-MM-DD date and a HH:MM[:SS] time of day into an instant in loc.
// It reports false instead of failing when either part is missing, unset or garbled.
func ParseTimeOnDate(date, tod string, loc *time.Location) (time.Time, bool) {
	date = strings.TrimSpace(date)
	tod = strings.TrimSpace(tod)
	if date == "" || IsUnsetTime(tod) {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}

	layout := DateLayout + " " + TimeLayout
	if strings.Count(tod, ":") == 1 {
		layout = DateLayout + " " + ShortTimeLayout
	}

	t, err := time.ParseInLocation(layout, date+" "+tod, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ElapsedSeconds returns the whole seconds from start to end, floored at zero.
func ElapsedSeconds(start, end time.Time) int64 {
	if start.IsZero() || end.IsZero() {
		return 0
	}
	d := end.Sub(start)
	if d <= 0 {
		return 0
	}
	return int64(d / time.Second)
}

var utcOffsetRegex = regexp.MustCompile(`^UTC(?:([+-])(\d{1,2})(?::(\d{2}))?)?$`)

// ParseUTCOffset parses "UTC+7", "UTC-3:30" or "UTC" into an offset in seconds east of UTC.
func ParseUTCOffset(tz string) (int, bool) {
	m := utcOffsetRegex.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(tz)))
	if m == nil {
		return 0, false
	}
	if m[1] == "" {
		return 0, true
	}

	hours, err := strconv.Atoi(m[2])
	if err != nil || hours > 14 {
		return 0, false
	}
	minutes := 0
	if m[3] != "" {
		minutes, err = strconv.Atoi(m[3])
		if err != nil || minutes > 59 || (hours == 14 && minutes > 0) {
			return 0, false
		}
	}

	offset := hours*3600 + minutes*60
	if m[1] == "-" {
		offset = -offset
	}
	return offset, true
}

// CompanyLocation returns a fixed zone for tz, or time.Local when tz cannot be parsed.
func CompanyLocation(tz string) *time.Location {
	offset, ok := ParseUTCOffset(tz)
	if !ok {
		return time.Local
	}
	return time.FixedZone(formatOffsetName(offset), offset)
}

// CompanyNow reads now on the organization's wall clock.
func CompanyNow(tz string, now time.Time) time.Time {
	return now.In(CompanyLocation(tz))
}

// DateString formats t as YYYY-MM-DD in its own location.
func DateString(t time.Time) string {
	return t.Format(DateLayout)
}

// TimeString formats t as HH:MM:SS in its own location.
func TimeString(t time.Time) string {
	return t.Format(TimeLayout)
}

// EndOfDay returns 23:59:59 of date in loc.
func EndOfDay(date string, loc *time.Location) (time.Time, bool) {
	return ParseTimeOnDate(date, "23:59:59", loc)
}

// FormatDuration renders seconds as HH:MM:SS for live displays.
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

func formatOffsetName(offset int) string {
	sign := "+"
	if offset < 0 {
		sign = "-"
		offset = -offset
	}
	h, m := offset/3600, (offset%3600)/60
	if m == 0 {
		return fmt.Sprintf("UTC%s%d", sign, h)
	}
	return fmt.Sprintf("UTC%s%d:%02d", sign, h, m)
}
