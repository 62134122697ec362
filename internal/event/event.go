package event

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Event represents a single venue event as written to the per-venue JSON files.
// Every field except Title is optional in practice; the JSON names match the
// files the scrapers exchange, so older files keep loading.
type Event struct {
	Title          string     `json:"title,omitempty"`
	Venue          string     `json:"venue,omitempty"`
	Location       string     `json:"location,omitempty"`
	Date           string     `json:"date,omitempty"`
	NormalizedDate string     `json:"normalized_date,omitempty"`
	Recurring      string     `json:"recurring,omitempty"`
	Time           string     `json:"time,omitempty"`
	TimeStart      string     `json:"time_start,omitempty"`
	TimeEnd        string     `json:"time_end,omitempty"`
	Description    string     `json:"description,omitempty"`
	Genre          string     `json:"genre,omitempty"`
	AdditionalInfo string     `json:"additional_info,omitempty"`
	Link           string     `json:"link,omitempty"`
	URL            string     `json:"url,omitempty"`
	Image          string     `json:"image,omitempty"`
	TicketLink     string     `json:"ticket_link,omitempty"`
	SourceURL      string     `json:"source_url,omitempty"`
	AgeRestriction string     `json:"age_restriction,omitempty"`
	Category       string     `json:"category,omitempty"`
	Categories     StringList `json:"categories,omitempty"`
	EventTypeTags  []string   `json:"event_type_tags,omitempty"`
	VenueTypeTags  []string   `json:"venue_type_tags,omitempty"`
	Tags           []string   `json:"tags,omitempty"`
	Info           string     `json:"info,omitempty"`
	Day            string     `json:"day,omitempty"`
}

// StringList is a list of strings that also accepts a single JSON string.
// Some venue files store categories as "Dance/Music, Community" while others
// store a proper array.
type StringList []string

// UnmarshalJSON accepts either a JSON array of strings or a single string.
func (s *StringList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = list
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return fmt.Errorf("categories must be a string or a list of strings")
	}
	if single == "" {
		*s = nil
		return nil
	}
	*s = StringList{single}
	return nil
}

// nonAlnum matches runs of characters that are not lowercase letters or digits.
var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// ID returns the deterministic slug identifier for the event:
// venue_title_date_time lowercased with non-alphanumeric runs collapsed to
// underscores. The date part falls back to the recurring text and then the
// literal "recurring"; the time part falls back to time_start. IDs are stable
// across runs; collisions between near-identical events are possible and
// tolerated.
func (e *Event) ID() string {
	venue := e.Venue
	if venue == "" {
		venue = "unknown"
	}

	title := e.Title
	if title == "" {
		title = "untitled"
	}

	date := e.Date
	if date == "" {
		date = e.Recurring
	}
	if date == "" {
		date = "recurring"
	}

	timePart := e.Time
	if timePart == "" {
		timePart = e.TimeStart
	}

	raw := strings.ToLower(venue + "_" + title + "_" + date + "_" + timePart)
	return strings.Trim(nonAlnum.ReplaceAllString(raw, "_"), "_")
}

// DedupeKey returns the venue|title key used for recurring-event deduplication.
// Weekly events reappear across scrapes with shifting dates, so the identity
// deliberately excludes the date.
func (e *Event) DedupeKey() string {
	return e.Venue + "|" + e.Title
}

// EventLink returns the event's outbound link, accepting both the link and url
// field spellings found in venue files.
func (e *Event) EventLink() string {
	if e.Link != "" {
		return e.Link
	}
	return e.URL
}

// TimeRange returns the display time for the event, folding time_start and
// time_end into a single string when the time field is empty.
func (e *Event) TimeRange() string {
	if e.Time != "" {
		return e.Time
	}
	if e.TimeStart == "" {
		return ""
	}
	if e.TimeEnd != "" {
		return e.TimeStart + " - " + e.TimeEnd
	}
	return e.TimeStart
}
