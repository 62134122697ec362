package feed

import (
	"sort"
	"strings"

	"github.com/afranz/boulder-events/internal/event"
)

// DeriveEventTypeTags infers event-type tags from an event's categories,
// category, and age restriction. Used when a scraper did not set
// event_type_tags itself. Matching is case-sensitive on purpose: the source
// values are the scrapers' own category strings, not free text.
func DeriveEventTypeTags(e *event.Event) []string {
	var tags []string
	add := func(tag string) {
		for _, t := range tags {
			if t == tag {
				return
			}
		}
		tags = append(tags, tag)
	}

	for _, cat := range e.Categories {
		if strings.Contains(cat, "Dance") || strings.Contains(cat, "Music") {
			add("Music")
		}
		if strings.Contains(cat, "Community") {
			add("Community")
		}
		if strings.Contains(cat, "Performance") {
			add("Performance")
		}
		if strings.Contains(cat, "Educational") {
			add("Educational")
		}
		if strings.Contains(cat, "Family Fun") {
			add("Family Friendly")
		}
	}

	if c := e.Category; c != "" {
		if strings.Contains(c, "Music") {
			add("Music")
		}
		if strings.Contains(c, "Entertainment") {
			add("Entertainment")
		}
		if strings.Contains(c, "Books") || strings.Contains(c, "Literary") {
			add("Books & Literary")
		}
		if strings.Contains(c, "Nightlife") {
			add("Nightlife")
		}
		if strings.Contains(c, "Community") {
			add("Community")
		}
	}

	if age := e.AgeRestriction; age != "" {
		if strings.Contains(age, "All Ages") || strings.Contains(age, "Family") {
			add("All Ages")
		} else if strings.Contains(age, "21+") || strings.Contains(age, "18+") {
			add("21+")
		}
	}

	return tags
}

// BuildTagIndex collects the sorted unique tag sets across all entries.
func BuildTagIndex(entries []*Entry) TagIndex {
	venues := make(map[string]bool)
	locations := make(map[string]bool)
	venueTypes := make(map[string]bool)
	eventTypes := make(map[string]bool)

	for _, e := range entries {
		if e.VenueTag != "" {
			venues[e.VenueTag] = true
		}
		if e.LocationTag != "" {
			locations[e.LocationTag] = true
		}
		for _, t := range e.VenueTypeTags {
			venueTypes[t] = true
		}
		for _, t := range e.EventTypeTags {
			eventTypes[t] = true
		}
	}

	return TagIndex{
		Venues:     sortedKeys(venues),
		Locations:  sortedKeys(locations),
		VenueTypes: sortedKeys(venueTypes),
		EventTypes: sortedKeys(eventTypes),
	}
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
