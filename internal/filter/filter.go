// Package filter narrows the aggregate feed for the list and export-ics
// commands.
//
// Criteria combine with AND; within one criterion the values combine with OR:
//   - Date ranges (from/to, inclusive)
//   - Venues (substring matching, case-insensitive)
//   - Locations (substring matching, case-insensitive)
//   - Tags (substring matching against the entry's tag fields)
//   - Weekends only (Saturday/Sunday)
//
// Example usage:
//
//	// Weekend shows at the Fox
//	f := filter.NewFilter()
//	f.WeekendsOnly = true
//	f.Venues = []string{"Fox Theatre"}
//
//	filtered := f.Apply(fd.Events)
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/afranz/boulder-events/internal/event"
	"github.com/afranz/boulder-events/internal/feed"
)

// Filter represents feed filtering criteria
type Filter struct {
	// Date range filtering
	DateFrom *time.Time
	DateTo   *time.Time

	// Venue name filtering (case-insensitive substring match)
	Venues []string

	// Location filtering (case-insensitive substring match)
	Locations []string

	// Tag filtering, matched against venue/location/type tags
	Tags []string

	// Weekend-only filtering (Saturday/Sunday)
	WeekendsOnly bool
}

// NewFilter creates a new empty filter with no active criteria.
// The filter will match all entries until criteria are added.
func NewFilter() *Filter {
	return &Filter{
		Venues:    []string{},
		Locations: []string{},
		Tags:      []string{},
	}
}

// IsEmpty checks if the filter has any active criteria.
// Returns true if the filter would match all entries.
func (f *Filter) IsEmpty() bool {
	return f.DateFrom == nil &&
		f.DateTo == nil &&
		len(f.Venues) == 0 &&
		len(f.Locations) == 0 &&
		len(f.Tags) == 0 &&
		!f.WeekendsOnly
}

// Matches checks if a feed entry passes all active filter criteria.
// An empty filter matches everything. Entries without a parseable
// normalized date pass the date and weekend checks rather than being
// dropped: recurring events carry no date but still belong in listings.
func (f *Filter) Matches(e *feed.Entry) bool {
	if f.IsEmpty() {
		return true
	}

	entryDate := parseEntryDate(e.NormalizedDate)

	if f.DateFrom != nil && entryDate != nil {
		if entryDate.Before(*f.DateFrom) {
			return false
		}
	}

	if f.DateTo != nil && entryDate != nil {
		if entryDate.After(*f.DateTo) {
			return false
		}
	}

	if f.WeekendsOnly && entryDate != nil {
		weekday := entryDate.Weekday()
		if weekday != time.Saturday && weekday != time.Sunday {
			return false
		}
	}

	if len(f.Venues) > 0 && !containsAny(e.Venue, f.Venues) {
		return false
	}

	if len(f.Locations) > 0 && !containsAny(e.Location, f.Locations) {
		return false
	}

	if len(f.Tags) > 0 {
		matched := false
		for _, want := range f.Tags {
			if entryHasTag(e, want) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}

// Apply applies the filter to feed entries and returns only matching ones.
// If the filter is empty, returns the original list unchanged.
func (f *Filter) Apply(entries []*feed.Entry) []*feed.Entry {
	if f.IsEmpty() {
		return entries
	}

	var filtered []*feed.Entry
	for _, e := range entries {
		if f.Matches(e) {
			filtered = append(filtered, e)
		}
	}

	return filtered
}

// String returns a human-readable description of the active filter criteria.
// Returns "No active filters" if the filter is empty.
func (f *Filter) String() string {
	if f.IsEmpty() {
		return "No active filters"
	}

	var parts []string

	if f.DateFrom != nil {
		parts = append(parts, fmt.Sprintf("From: %s", f.DateFrom.Format("Jan 2, 2006")))
	}

	if f.DateTo != nil {
		parts = append(parts, fmt.Sprintf("To: %s", f.DateTo.Format("Jan 2, 2006")))
	}

	if len(f.Venues) > 0 {
		parts = append(parts, fmt.Sprintf("Venues: %s", strings.Join(f.Venues, ", ")))
	}

	if len(f.Locations) > 0 {
		parts = append(parts, fmt.Sprintf("Locations: %s", strings.Join(f.Locations, ", ")))
	}

	if len(f.Tags) > 0 {
		parts = append(parts, fmt.Sprintf("Tags: %s", strings.Join(f.Tags, ", ")))
	}

	if f.WeekendsOnly {
		parts = append(parts, "Weekends only")
	}

	return strings.Join(parts, " | ")
}

// containsAny reports whether haystack contains at least one of the wanted
// strings, case-insensitively.
func containsAny(haystack string, wanted []string) bool {
	lower := strings.ToLower(haystack)
	for _, w := range wanted {
		if strings.Contains(lower, strings.ToLower(w)) {
			return true
		}
	}
	return false
}

// entryHasTag matches one wanted tag against every tag-bearing field of the
// entry: the venue and location tags plus both type-tag lists.
func entryHasTag(e *feed.Entry, want string) bool {
	lower := strings.ToLower(want)
	for _, tag := range e.VenueTypeTags {
		if strings.Contains(strings.ToLower(tag), lower) {
			return true
		}
	}
	for _, tag := range e.EventTypeTags {
		if strings.Contains(strings.ToLower(tag), lower) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(e.VenueTag), lower) ||
		strings.Contains(strings.ToLower(e.LocationTag), lower)
}

// parseEntryDate parses a normalized_date value
// Returns nil if parsing fails
func parseEntryDate(normalized string) *time.Time {
	for _, layout := range []string{event.NormalizedLayout, "2006-01-02"} {
		if t, err := time.Parse(layout, normalized); err == nil {
			return &t
		}
	}
	return nil
}
