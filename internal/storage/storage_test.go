package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/afranz/boulder-events/internal/event"
	"github.com/afranz/boulder-events/internal/feed"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "storage-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	storage, err := New(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	return storage
}

func TestLoadEvents_MissingFile(t *testing.T) {
	storage := newTestStorage(t)

	events, err := storage.LoadEvents("jungle_events.json")
	if err != nil {
		t.Fatalf("LoadEvents() error = %v", err)
	}
	if len(events) != 0 {
		t.Errorf("LoadEvents() on missing file = %d events, want 0", len(events))
	}
}

func TestSaveAndLoadEvents(t *testing.T) {
	storage := newTestStorage(t)

	events := []*event.Event{
		{
			Title:     "Live Jazz",
			Venue:     "Jungle",
			Recurring: "Every Wednesday",
			Time:      "7:00 PM - 9:00 PM",
			Category:  "Music",
		},
		{
			Title: "Bluegrass Pick",
			Venue: "Southern Sun Pub",
			Date:  "December 18, 2025",
		},
	}

	if err := storage.SaveEvents("jungle_events.json", events); err != nil {
		t.Fatalf("SaveEvents() error = %v", err)
	}

	if !storage.Exists("jungle_events.json") {
		t.Error("Exists() = false after SaveEvents")
	}

	loaded, err := storage.LoadEvents("jungle_events.json")
	if err != nil {
		t.Fatalf("LoadEvents() error = %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("LoadEvents() = %d events, want 2", len(loaded))
	}
	if loaded[0].Title != "Live Jazz" || loaded[0].Recurring != "Every Wednesday" {
		t.Errorf("first event round-trip mismatch: %+v", loaded[0])
	}
	if loaded[1].Venue != "Southern Sun Pub" {
		t.Errorf("second event venue = %q", loaded[1].Venue)
	}
}

func TestLoadEvents_InvalidJSON(t *testing.T) {
	storage := newTestStorage(t)

	path := storage.Path("bad_events.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("writing bad file: %v", err)
	}

	if _, err := storage.LoadEvents("bad_events.json"); err == nil {
		t.Error("LoadEvents() on invalid JSON expected error, got nil")
	}
}

func TestSaveAndLoadFeed(t *testing.T) {
	storage := newTestStorage(t)

	f := &feed.Feed{
		GeneratedAt: "2025-12-20T18:00:00Z",
		TotalEvents: 1,
		Tags: feed.TagIndex{
			Venues:     []string{"Jungle"},
			Locations:  []string{"Boulder"},
			VenueTypes: []string{"Bar", "Music"},
			EventTypes: []string{"Jazz"},
		},
		Events: []*feed.Entry{
			{
				ID:            "jungle_live_jazz_recurring",
				Title:         "Live Jazz",
				Venue:         "Jungle",
				Location:      "Boulder",
				Recurring:     "Every Wednesday",
				VenueTag:      "Jungle",
				LocationTag:   "Boulder",
				VenueTypeTags: []string{"Bar", "Music"},
				EventTypeTags: []string{"Jazz"},
			},
		},
	}

	if err := storage.SaveFeed(f); err != nil {
		t.Fatalf("SaveFeed() error = %v", err)
	}

	loaded, err := storage.LoadFeed()
	if err != nil {
		t.Fatalf("LoadFeed() error = %v", err)
	}
	if loaded.TotalEvents != 1 || len(loaded.Events) != 1 {
		t.Fatalf("LoadFeed() = %d events (total %d), want 1", len(loaded.Events), loaded.TotalEvents)
	}
	if loaded.Events[0].ID != "jungle_live_jazz_recurring" {
		t.Errorf("feed event id = %q", loaded.Events[0].ID)
	}
	if len(loaded.Tags.VenueTypes) != 2 {
		t.Errorf("feed tag index round-trip mismatch: %+v", loaded.Tags)
	}
}

func TestLoadFeed_Missing(t *testing.T) {
	storage := newTestStorage(t)

	if _, err := storage.LoadFeed(); err == nil {
		t.Error("LoadFeed() with no feed file expected error, got nil")
	}
}

func TestNew_CreatesDataDir(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "storage-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	nested := filepath.Join(tmpDir, "data", "events")
	storage, err := New(nested)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	info, err := os.Stat(nested)
	if err != nil || !info.IsDir() {
		t.Errorf("New() did not create data dir %s", nested)
	}
	if storage.DataDir() != nested {
		t.Errorf("DataDir() = %q, want %q", storage.DataDir(), nested)
	}
}
