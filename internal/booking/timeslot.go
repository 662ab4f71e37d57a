package booking

import "time"

// Booking policy for every restaurant: reservations run between
// opening and closing time and are between 30 and 120 minutes long.
const (
	openingMinute = 9 * 60  // 09:00
	closingMinute = 22 * 60 // 22:00

	// MinDurationMinutes and MaxDurationMinutes bound the length of a
	// single reservation window, inclusive on both ends.
	MinDurationMinutes = 30
	MaxDurationMinutes = 120
)

// IsValidSlot reports whether the window starting at start and
// running for durationMinutes is structurally legal at the instant
// now. All of the following must hold:
//
//   - start is not strictly before now (no retroactive bookings);
//   - the wall-clock start is at or after opening time and the end is
//     at or before closing time, judged on the time-of-day component
//     of start only (a window is never allowed to run past midnight);
//   - durationMinutes is within [MinDurationMinutes, MaxDurationMinutes].
//
// The function is pure: it has no side effects and is deterministic
// given start and now.
func IsValidSlot(start time.Time, durationMinutes int, now time.Time) bool {
	if start.Before(now) {
		return false
	}
	startMinute := start.Hour()*60 + start.Minute()
	endMinute := startMinute + durationMinutes
	if startMinute < openingMinute || endMinute > closingMinute {
		return false
	}
	if durationMinutes < MinDurationMinutes || durationMinutes > MaxDurationMinutes {
		return false
	}
	return true
}
