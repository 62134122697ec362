package feed

import (
	"time"

	"github.com/afranz/boulder-events/internal/event"
	"github.com/afranz/boulder-events/internal/logger"
	"github.com/afranz/boulder-events/internal/venue"
)

// Loader supplies raw events for a venue file. Implemented by
// storage.Storage; tests substitute a fake.
type Loader interface {
	LoadEvents(file string) ([]*event.Event, error)
}

// Build walks the registry in order, loads each venue file, and assembles the
// aggregate feed. A venue file that fails to load is logged and skipped; one
// bad file never fails the build.
func Build(reg *venue.Registry, src Loader) *Feed {
	today := event.Today()
	var entries []*Entry

	for _, v := range reg.All() {
		events, err := src.LoadEvents(v.File)
		if err != nil {
			logger.Error("Skipping venue file", logger.Fields{
				"venue": v.Name,
				"file":  v.File,
			}, err)
			logger.IncrCounter("feed.venue_files_failed")
			continue
		}

		kept := 0
		for _, e := range events {
			entry, ok := buildEntry(e, v, reg, today)
			if !ok {
				logger.Debug("Skipping past event", logger.Fields{
					"venue": v.Name,
					"title": e.Title,
					"date":  e.Date,
				})
				continue
			}
			entries = append(entries, entry)
			kept++
		}

		logger.Info("Aggregated venue", logger.Fields{
			"venue":  v.Name,
			"events": kept,
		})
	}

	logger.SetGauge("feed.total_events", float64(len(entries)))

	return &Feed{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		TotalEvents: len(entries),
		Tags:        BuildTagIndex(entries),
		Events:      entries,
	}
}

// buildEntry enriches one raw event. The second return is false when the
// event is dated strictly before today; undated and unparsable dates are
// always kept.
func buildEntry(e *event.Event, fileVenue *venue.Venue, reg *venue.Registry, today time.Time) (*Entry, bool) {
	eventVenue := e.Venue
	if eventVenue == "" {
		eventVenue = fileVenue.Name
	}

	// Events can carry a more specific venue (Southern Sun Pub, Boulder
	// Theater). Use its registry entry when one exists, else the config of
	// the file the event came from.
	cfg := fileVenue
	if vc, ok := reg.Lookup(eventVenue); ok {
		cfg = vc
	}

	normalized, parsed := event.NormalizeDate(e.Date)
	if parsed {
		if t, ok := event.ParseNormalized(normalized); ok && t.Before(today) {
			return nil, false
		}
	}

	location := e.Location
	if location == "" {
		location = cfg.Location
	}

	title := e.Title
	if title == "" {
		title = "Untitled Event"
	}

	typeTags := e.EventTypeTags
	if typeTags == nil {
		typeTags = DeriveEventTypeTags(e)
	}

	return &Entry{
		ID:             e.ID(),
		Title:          title,
		Venue:          eventVenue,
		Location:       location,
		Date:           e.Date,
		NormalizedDate: normalized,
		Recurring:      e.Recurring,
		Time:           e.TimeRange(),
		Description:    e.Description,
		AdditionalInfo: e.AdditionalInfo,
		Link:           e.EventLink(),
		Image:          e.Image,
		SourceURL:      e.SourceURL,
		AgeRestriction: e.AgeRestriction,
		VenueTag:       eventVenue,
		LocationTag:    location,
		VenueTypeTags:  cfg.Tags,
		EventTypeTags:  typeTags,
	}, true
}
