package booking

import "time"

// Clock supplies the current instant to the engine. The past-time
// check in slot validation depends on "now", so tests inject a fixed
// clock instead of relying on wall-clock time.
type Clock interface {
	Now() time.Time
}

// RealClock is the production Clock backed by time.Now.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now().UTC() }
