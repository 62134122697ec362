package event

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// clock is a package-level time source so tests can freeze time via SetClock.
// Production code uses the real clock; tests inject a fake for deterministic
// year fills and past-event checks.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source for date handling. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// denver is the pipeline's home timezone. Every "today" comparison uses the
// current date in Boulder, not UTC: an 11 PM scrape must not drop tonight's
// shows.
var denver *time.Location

func init() {
	loc, err := time.LoadLocation("America/Denver")
	if err != nil {
		// Without tzdata fall back to fixed Mountain Standard Time.
		loc = time.FixedZone("MST", -7*60*60)
	}
	denver = loc
}

// Today returns the current calendar date in America/Denver, as a UTC midnight
// value comparable with parsed event dates.
func Today() time.Time {
	now := clock.Now().In(denver)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
