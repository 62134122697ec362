package cli

import (
	"sort"
	"strings"
	"time"

	"github.com/afranz/boulder-events/internal/event"
	"github.com/afranz/boulder-events/internal/feed"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByDate  SortOrder = "date"
	SortByVenue SortOrder = "venue"
	SortByTitle SortOrder = "title"
)

// sortEntries sorts a slice of feed entries based on the specified sort order
func sortEntries(entries []*feed.Entry, sortOrder SortOrder) {
	switch sortOrder {
	case SortByDate:
		sort.Slice(entries, func(i, j int) bool {
			return compareByDate(entries[i], entries[j])
		})
	case SortByVenue:
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].Venue != entries[j].Venue {
				return entries[i].Venue < entries[j].Venue
			}
			// If venues are equal, sort by date
			return compareByDate(entries[i], entries[j])
		})
	case SortByTitle:
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].Title != entries[j].Title {
				return strings.ToLower(entries[i].Title) < strings.ToLower(entries[j].Title)
			}
			// If titles are equal, sort by date
			return compareByDate(entries[i], entries[j])
		})
	}
}

// compareByDate compares two entries by their normalized date
// Returns true if entry i should come before entry j
func compareByDate(i, j *feed.Entry) bool {
	dateI := entryDate(i)
	dateJ := entryDate(j)

	// If both dates are valid, compare them
	if !dateI.IsZero() && !dateJ.IsZero() {
		return dateI.Before(dateJ)
	}

	// If only one date is valid, put the valid one first
	if !dateI.IsZero() {
		return true
	}
	if !dateJ.IsZero() {
		return false
	}

	// If neither has a valid date, sort by venue then title
	if i.Venue != j.Venue {
		return i.Venue < j.Venue
	}
	return strings.ToLower(i.Title) < strings.ToLower(j.Title)
}

// entryDate parses an entry's normalized date, zero if absent or unparseable
func entryDate(e *feed.Entry) time.Time {
	if e.NormalizedDate == "" {
		return time.Time{}
	}
	if t, err := time.Parse(event.NormalizedLayout, e.NormalizedDate); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", e.NormalizedDate); err == nil {
		return t
	}
	return time.Time{}
}
