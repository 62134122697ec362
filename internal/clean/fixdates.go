package clean

import (
	"regexp"

	"github.com/afranz/boulder-events/internal/event"
	"github.com/afranz/boulder-events/internal/storage"
)

// DefaultFixDateFiles are the venue files whose scrapers sometimes put a
// clock time in the date field.
var DefaultFixDateFiles = []string{
	"st_julien_events.json",
	"license_no1_events.json",
	"trident_events.json",
	"velvet_elk_events.json",
	"junkyard_events.json",
	"mountain_sun_events.json",
	"etown_events.json",
}

var (
	clockStart = regexp.MustCompile(`^\d{1,2}:\d{2}\s*(AM|PM|am|pm)`)
	clockRange = regexp.MustCompile(`^\d{1,2}:\d{2}.*\d{1,2}:\d{2}`)
)

// FixDateFields repairs an event whose date field holds a clock time
// ("7:30 PM", "6:00 pm-9:00 pm"): the value moves into the time field when
// time is empty, and date is cleared either way. Returns true when the event
// changed.
func FixDateFields(e *event.Event) bool {
	if e.Date == "" {
		return false
	}
	if !clockStart.MatchString(e.Date) && !clockRange.MatchString(e.Date) {
		return false
	}

	if e.Time == "" {
		e.Time = e.Date
	}
	e.Date = ""
	return true
}

// FixDates applies FixDateFields to every event and returns how many changed.
func FixDates(events []*event.Event) int {
	fixed := 0
	for _, e := range events {
		if FixDateFields(e) {
			fixed++
		}
	}
	return fixed
}

// RunFixDates rewrites each venue file with repaired date/time fields.
func RunFixDates(store *storage.Storage, files []string) []Result {
	return runPass(store, "fix-dates", files, func(events []*event.Event) ([]*event.Event, int) {
		return events, FixDates(events)
	})
}
