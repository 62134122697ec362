package clean

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afranz/boulder-events/internal/event"
	"github.com/afranz/boulder-events/internal/storage"
)

func TestDedupe(t *testing.T) {
	events := []*event.Event{
		{Venue: "Mountain Sun Pub", Title: "Free Live Music", Date: "November 7, 2025"},
		{Venue: "Southern Sun Pub", Title: "The BLUEGRASS PICK"},
		{Venue: "Mountain Sun Pub", Title: "Free Live Music", Date: "November 14, 2025"},
		{Venue: "Vine Street Pub", Title: "Free Live Music"},
	}

	cleaned := Dedupe(events)

	require.Len(t, cleaned, 3)
	assert.Equal(t, "November 7, 2025", cleaned[0].Date, "first occurrence kept")
	assert.Equal(t, "The BLUEGRASS PICK", cleaned[1].Title)
	assert.Equal(t, "Vine Street Pub", cleaned[2].Venue, "same title at another venue is not a duplicate")
}

func TestDedupe_DescriptionReplaces(t *testing.T) {
	events := []*event.Event{
		{Venue: "Jungle", Title: "Live Jazz"},
		{Venue: "Jungle", Title: "Live Jazz", Description: "Weekly jazz night"},
		{Venue: "Jungle", Title: "Live Jazz", Description: "Another description"},
	}

	cleaned := Dedupe(events)

	require.Len(t, cleaned, 1)
	assert.Equal(t, "Weekly jazz night", cleaned[0].Description,
		"a described duplicate replaces an undescribed keeper, once")
}

func TestDedupe_KeepsDescribedOriginal(t *testing.T) {
	events := []*event.Event{
		{Venue: "Jungle", Title: "Live Jazz", Description: "Original"},
		{Venue: "Jungle", Title: "Live Jazz", Description: "Newcomer"},
	}

	cleaned := Dedupe(events)

	require.Len(t, cleaned, 1)
	assert.Equal(t, "Original", cleaned[0].Description)
}

func TestFixVenueNames(t *testing.T) {
	events := []*event.Event{
		{Venue: "Mountain Sun Pub on Pearl", Title: "Free Live Music"},
		{Venue: "Southern Sun Pub", Title: "Game Night"},
	}

	assert.Equal(t, 1, FixVenueNames(events))
	assert.Equal(t, "Mountain Sun Pub", events[0].Venue)
	assert.Equal(t, "Southern Sun Pub", events[1].Venue)
}

func TestRunClean(t *testing.T) {
	store, err := storage.New(t.TempDir())
	require.NoError(t, err)

	events := []*event.Event{
		{Venue: "Mountain Sun Pub on Pearl", Title: "Free Live Music"},
		{Venue: "Mountain Sun Pub on Pearl", Title: "Free Live Music"},
		{Venue: "Southern Sun Pub", Title: "The BLUEGRASS PICK"},
	}
	require.NoError(t, store.SaveEvents("mountain_sun_events.json", events))

	results := RunClean(store, []string{"mountain_sun_events.json", "trident_events.json"})

	require.Len(t, results, 2)
	assert.Equal(t, 1, results[0].Count, "one duplicate removed")
	assert.True(t, results[1].Skipped)

	cleaned, err := store.LoadEvents("mountain_sun_events.json")
	require.NoError(t, err)
	require.Len(t, cleaned, 2)
	assert.Equal(t, "Mountain Sun Pub", cleaned[0].Venue, "venue name fixed after dedupe")
}
