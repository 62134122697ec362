package clean

import (
	"github.com/afranz/boulder-events/internal/event"
	"github.com/afranz/boulder-events/internal/storage"
)

// DefaultCleanFiles are the venue files prone to duplicate recurring events.
var DefaultCleanFiles = []string{
	"mountain_sun_events.json",
	"junkyard_events.json",
	"velvet_elk_events.json",
	"st_julien_events.json",
	"license_no1_events.json",
	"trident_events.json",
}

var venueNameFixes = map[string]string{
	"Mountain Sun Pub on Pearl": "Mountain Sun Pub",
}

// Dedupe removes events sharing a venue+title key, keeping the first
// occurrence in place. A later duplicate that carries a description replaces
// a kept record that lacks one.
func Dedupe(events []*event.Event) []*event.Event {
	index := make(map[string]int, len(events))
	cleaned := make([]*event.Event, 0, len(events))

	for _, e := range events {
		key := e.DedupeKey()
		if i, seen := index[key]; seen {
			if e.Description != "" && cleaned[i].Description == "" {
				cleaned[i] = e
			}
			continue
		}
		index[key] = len(cleaned)
		cleaned = append(cleaned, e)
	}

	return cleaned
}

// FixVenueNames rewrites venue display names that scrapers emit in a longer
// form than the listings page shows. Returns how many events changed.
func FixVenueNames(events []*event.Event) int {
	fixed := 0
	for _, e := range events {
		if name, ok := venueNameFixes[e.Venue]; ok {
			e.Venue = name
			fixed++
		}
	}
	return fixed
}

// RunClean deduplicates and fixes venue names in each venue file. The
// reported count is the number of duplicates removed.
func RunClean(store *storage.Storage, files []string) []Result {
	return runPass(store, "clean", files, func(events []*event.Event) ([]*event.Event, int) {
		cleaned := Dedupe(events)
		FixVenueNames(cleaned)
		return cleaned, len(events) - len(cleaned)
	})
}
