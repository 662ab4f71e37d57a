package booking

import (
	"testing"
	"time"
)

func TestIsValidSlot(t *testing.T) {
	// Fixed reference instant: 2026-03-10 12:00 UTC.
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	day := func(h, m int) time.Time {
		return time.Date(2026, 3, 11, h, m, 0, 0, time.UTC)
	}

	cases := []struct {
		name     string
		start    time.Time
		duration int
		want     bool
	}{
		{"midday slot", day(18, 0), 90, true},
		{"opens exactly at opening", day(9, 0), 60, true},
		{"ends exactly at closing", day(21, 0), 60, true},
		{"before opening", day(8, 30), 60, false},
		{"runs past closing", day(21, 30), 60, false},
		{"too short", day(18, 0), 29, false},
		{"minimum duration", day(18, 0), 30, true},
		{"maximum duration", day(18, 0), 120, true},
		{"too long", day(18, 0), 150, false},
		{"in the past", now.Add(-time.Hour), 60, false},
		{"exactly now", time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC), 60, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsValidSlot(tc.start, tc.duration, now); got != tc.want {
				t.Errorf("IsValidSlot(%s, %d) = %v, want %v", tc.start, tc.duration, got, tc.want)
			}
		})
	}
}
