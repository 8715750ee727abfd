package timeutil

import (
	"testing"
	"time"
)

func TestParseTimeOnDate_Unset(t *testing.T) {
	cases := []struct {
		date string
		tod  string
	}{
		{"", "09:00:00"},
		{"2024-05-01", ""},
		{"2024-05-01", "00:00:00"},
		{"2024-05-01", "null"},
		{"2024-05-01", "undefined"},
		{"2024-05-01", "--:--"},
		{"2024-05-01", "nine o'clock"},
		{"05/01/2024", "09:00:00"},
		{"2024-05-01", "25:00:00"},
	}
	for _, c := range cases {
		if got, ok := ParseTimeOnDate(c.date, c.tod, time.UTC); ok {
			t.Errorf("ParseTimeOnDate(%q, %q) = %v, want unset", c.date, c.tod, got)
		}
	}
}

func TestParseTimeOnDate_Valid(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)

	got, ok := ParseTimeOnDate("2024-05-01", "09:05:30", loc)
	if !ok {
		t.Fatal("expected a parsed instant")
	}
	want := time.Date(2024, 5, 1, 9, 5, 30, 0, loc)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}

	got, ok = ParseTimeOnDate("2024-05-01", "17:30", loc)
	if !ok || !got.Equal(time.Date(2024, 5, 1, 17, 30, 0, 0, loc)) {
		t.Errorf("short layout: got %v (%v)", got, ok)
	}
}

func TestElapsedSeconds(t *testing.T) {
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	cases := []struct {
		start, end time.Time
		want       int64
	}{
		{base, base.Add(8 * time.Hour), 28800},
		{base, base.Add(1500 * time.Millisecond), 1},
		{base, base, 0},
		{base.Add(time.Hour), base, 0},
		{time.Time{}, base, 0},
	}
	for _, c := range cases {
		if got := ElapsedSeconds(c.start, c.end); got != c.want {
			t.Errorf("ElapsedSeconds(%v, %v) = %d, want %d", c.start, c.end, got, c.want)
		}
	}
}

func TestParseUTCOffset(t *testing.T) {
	cases := []struct {
		tz     string
		want   int
		wantOK bool
	}{
		{"UTC+7", 7 * 3600, true},
		{"UTC-3:30", -(3*3600 + 30*60), true},
		{"UTC+05:45", 5*3600 + 45*60, true},
		{"utc+1", 3600, true},
		{"UTC", 0, true},
		{"Asia/Jakarta", 0, false},
		{"UTC+", 0, false},
		{"UTC+99", 0, false},
		{"UTC+14", 14 * 3600, true},
		{"UTC-14:00", -14 * 3600, true},
		{"UTC+14:59", 0, false},
		{"UTC-14:30", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseUTCOffset(c.tz)
		if ok != c.wantOK || got != c.want {
			t.Errorf("ParseUTCOffset(%q) = %d, %v; want %d, %v", c.tz, got, ok, c.want, c.wantOK)
		}
	}
}

func TestCompanyNow(t *testing.T) {
	now := time.Date(2024, 5, 1, 20, 30, 0, 0, time.UTC)

	got := CompanyNow("UTC+7", now)
	if DateString(got) != "2024-05-02" || TimeString(got) != "03:30:00" {
		t.Errorf("CompanyNow(UTC+7) = %s %s", DateString(got), TimeString(got))
	}
	if !got.Equal(now) {
		t.Error("company time must describe the same instant")
	}

	if CompanyNow("garbage", now).Location() != time.Local {
		t.Error("unparseable timezone must fall back to local time")
	}
}

func TestFormatDuration(t *testing.T) {
	if got := FormatDuration(30600); got != "08:30:00" {
		t.Errorf("FormatDuration(30600) = %s", got)
	}
	if got := FormatDuration(-5); got != "00:00:00" {
		t.Errorf("FormatDuration(-5) = %s", got)
	}
}
