package feed

import (
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afranz/boulder-events/internal/event"
	"github.com/afranz/boulder-events/internal/venue"
)

type fakeLoader struct {
	files map[string][]*event.Event
	errs  map[string]error
}

func (f *fakeLoader) LoadEvents(file string) ([]*event.Event, error) {
	if err := f.errs[file]; err != nil {
		return nil, err
	}
	return f.files[file], nil
}

func freezeClock(t *testing.T, year int, month time.Month, day int) {
	t.Helper()
	event.SetClock(clockwork.NewFakeClockAt(time.Date(year, month, day, 18, 0, 0, 0, time.UTC)))
	t.Cleanup(func() { event.SetClock(nil) })
}

func testRegistry() *venue.Registry {
	return venue.NewRegistry([]*venue.Venue{
		{
			Name:     "Velvet Elk Lounge",
			Location: "Boulder",
			Tags:     []string{"Music", "Bar"},
			File:     "a.json",
		},
		{
			Name:     "300 Suns Brewing",
			Location: "Longmont",
			Tags:     []string{"Brewery"},
			File:     "b.json",
		},
	})
}

func TestBuild(t *testing.T) {
	freezeClock(t, 2025, time.December, 20)

	src := &fakeLoader{
		files: map[string][]*event.Event{
			"a.json": {
				{
					Title:    "Holiday Show",
					Date:     "December 25, 2025",
					Link:     "https://example.com/holiday",
					Category: "Music",
				},
				{Title: "Gone", Date: "December 1, 2025"},
				{
					Title:         "Open Mic",
					Recurring:     "Every Wednesday",
					EventTypeTags: []string{"Comedy"},
				},
				{Date: "Doors at 8", URL: "https://example.com/doors"},
				{
					Title:         "Roadhouse Set",
					Venue:         "300 Suns Brewing",
					Date:          "December 20, 2025",
					TimeStart:     "6:00 PM",
					TimeEnd:       "9:00 PM",
					EventTypeTags: []string{},
				},
			},
		},
		errs: map[string]error{"b.json": errors.New("invalid character 'x'")},
	}

	f := Build(testRegistry(), src)

	require.Len(t, f.Events, 4, "past event dropped, failed file skipped")
	assert.Equal(t, 4, f.TotalEvents)
	assert.NotEmpty(t, f.GeneratedAt)

	holiday := f.Events[0]
	assert.Equal(t, "Velvet Elk Lounge", holiday.Venue, "venue falls back to the file's venue")
	assert.Equal(t, "Boulder", holiday.Location)
	assert.Equal(t, "2025-12-25T00:00:00", holiday.NormalizedDate)
	assert.Equal(t, "https://example.com/holiday", holiday.Link)
	assert.Equal(t, []string{"Music"}, holiday.EventTypeTags, "derived when the scraper set none")
	assert.Equal(t, []string{"Music", "Bar"}, holiday.VenueTypeTags)
	assert.Equal(t, "Velvet Elk Lounge", holiday.VenueTag)

	openMic := f.Events[1]
	assert.Equal(t, "", openMic.NormalizedDate, "recurring events have no date")
	assert.Equal(t, "Every Wednesday", openMic.Recurring)
	assert.Equal(t, []string{"Comedy"}, openMic.EventTypeTags, "scraper tags win over derivation")

	doors := f.Events[2]
	assert.Equal(t, "Untitled Event", doors.Title)
	assert.Equal(t, "", doors.NormalizedDate, "unparsable date kept, not normalized")
	assert.Equal(t, "https://example.com/doors", doors.Link, "url fills in for a missing link")

	roadhouse := f.Events[3]
	assert.Equal(t, "300 Suns Brewing", roadhouse.Venue)
	assert.Equal(t, "Longmont", roadhouse.Location, "more specific venue brings its own config")
	assert.Equal(t, []string{"Brewery"}, roadhouse.VenueTypeTags)
	assert.Equal(t, "6:00 PM - 9:00 PM", roadhouse.Time)
	assert.Equal(t, []string{}, roadhouse.EventTypeTags, "an explicit empty list is not re-derived")
	assert.Equal(t, "2025-12-20T00:00:00", roadhouse.NormalizedDate, "today is not a past event")

	assert.Equal(t, []string{"300 Suns Brewing", "Velvet Elk Lounge"}, f.Tags.Venues)
	assert.Equal(t, []string{"Boulder", "Longmont"}, f.Tags.Locations)
	assert.Equal(t, []string{"Bar", "Brewery", "Music"}, f.Tags.VenueTypes)
	assert.Equal(t, []string{"Comedy", "Music"}, f.Tags.EventTypes)
}

func TestBuild_SubVenueNotRegistered(t *testing.T) {
	freezeClock(t, 2025, time.December, 20)

	src := &fakeLoader{
		files: map[string][]*event.Event{
			"a.json": {
				{
					Title: "Bluegrass Pick",
					Venue: "Southern Sun Pub",
					Date:  "December 22, 2025",
				},
			},
		},
	}

	f := Build(testRegistry(), src)

	require.Len(t, f.Events, 1)
	e := f.Events[0]
	assert.Equal(t, "Southern Sun Pub", e.Venue, "event venue is kept verbatim")
	assert.Equal(t, "Southern Sun Pub", e.VenueTag)
	assert.Equal(t, "Boulder", e.Location, "unregistered venue uses the file's config")
	assert.Equal(t, []string{"Music", "Bar"}, e.VenueTypeTags)
}

func TestBuild_EmptyRegistryFiles(t *testing.T) {
	freezeClock(t, 2025, time.December, 20)

	f := Build(testRegistry(), &fakeLoader{})

	assert.Empty(t, f.Events)
	assert.Equal(t, 0, f.TotalEvents)
	assert.Empty(t, f.Tags.Venues)
}
