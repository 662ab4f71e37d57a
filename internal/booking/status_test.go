package booking

import (
	"errors"
	"testing"
)

func TestParseStatus(t *testing.T) {
	for _, raw := range []string{"CONFIRMED", "confirmed", "  Cancelled ", "completed"} {
		if _, err := ParseStatus(raw); err != nil {
			t.Errorf("ParseStatus(%q) returned error: %v", raw, err)
		}
	}

	for _, raw := range []string{"", "PENDING", "NO_SHOW", "done"} {
		_, err := ParseStatus(raw)
		if err == nil {
			t.Errorf("ParseStatus(%q) accepted an unknown status", raw)
			continue
		}
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("ParseStatus(%q) error = %v, want ErrInvalidInput", raw, err)
		}
	}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusConfirmed, true},
		{StatusCancelled, StatusCancelled, true},
		{StatusCompleted, StatusCompleted, true},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusCompleted, false},
		{StatusCompleted, StatusConfirmed, false},
		{StatusCompleted, StatusCancelled, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransition(tc.to); got != tc.want {
			t.Errorf("%s -> %s = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
