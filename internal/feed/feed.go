// Package feed assembles the aggregate events feed: per-venue event files
// merged into one document with enriched records and a tag index, plus the
// summer concert series merge.
package feed

// FileName is the aggregate feed file consumed by the listings page.
const FileName = "all_boulder_events.json"

// Entry is one enriched event in the aggregate feed. The listings page reads
// every field, so the schema is stable: absent values are empty strings, not
// omitted keys. Info, Day and Tags only appear on summer series rows.
type Entry struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Venue          string   `json:"venue"`
	Location       string   `json:"location"`
	Date           string   `json:"date"`
	NormalizedDate string   `json:"normalized_date"`
	Recurring      string   `json:"recurring"`
	Time           string   `json:"time"`
	Description    string   `json:"description"`
	AdditionalInfo string   `json:"additional_info"`
	Link           string   `json:"link"`
	Image          string   `json:"image"`
	SourceURL      string   `json:"source_url"`
	AgeRestriction string   `json:"age_restriction"`
	VenueTag       string   `json:"venue_tag"`
	LocationTag    string   `json:"location_tag"`
	VenueTypeTags  []string `json:"venue_type_tags"`
	EventTypeTags  []string `json:"event_type_tags"`
	Info           string   `json:"info,omitempty"`
	Day            string   `json:"day,omitempty"`
}

// TagIndex is the sorted unique tag summary at the top of the feed.
type TagIndex struct {
	Venues     []string `json:"venues"`
	Locations  []string `json:"locations"`
	VenueTypes []string `json:"venue_types"`
	EventTypes []string `json:"event_types"`
}

// Feed is the aggregate document written to FileName.
type Feed struct {
	GeneratedAt string   `json:"generated_at"`
	TotalEvents int      `json:"total_events"`
	Tags        TagIndex `json:"tags"`
	Events      []*Entry `json:"events"`
}
