package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/afranz/boulder-events/internal/event"
	"github.com/afranz/boulder-events/internal/fetch"
	"github.com/afranz/boulder-events/internal/images"
	"github.com/afranz/boulder-events/internal/logger"
	"github.com/afranz/boulder-events/internal/storage"
	"github.com/afranz/boulder-events/internal/venue"
)

// Scraper extracts events from one venue's website.
type Scraper interface {
	// Venue returns the registry name of the venue this scraper covers.
	Venue() string
	// Scrape fetches and parses the venue's events.
	Scrape(ctx context.Context) ([]*event.Event, error)
}

// Deps are the shared services venue scrapers draw from.
type Deps struct {
	Client   *fetch.Client
	Renderer fetch.Renderer
	Images   *images.Store
}

// New returns the scraper registered for a venue name.
func New(name string, deps Deps) (Scraper, error) {
	switch name {
	case "Velvet Elk Lounge":
		return NewVelvetElk(deps.Client), nil
	case "Junkyard Social Club":
		return NewJunkyard(deps.Client), nil
	case "Mountain Sun Pubs":
		return NewMountainSun(deps.Client), nil
	case "St Julien Hotel & Spa":
		return NewStJulien(deps.Renderer), nil
	case "Trident Booksellers & Cafe":
		return NewTrident(deps.Renderer), nil
	case "License No 1":
		return NewLicenseNo1(deps.Renderer), nil
	case "Jungle":
		return NewJungle(), nil
	case "Rosetta Hall":
		return NewRosettaHall(deps.Renderer), nil
	case "Gold Hill Inn":
		return NewGoldHill(deps.Renderer), nil
	case "300 Suns Brewing":
		return NewThreeHundredSuns(deps.Renderer), nil
	case "Bricks on Main":
		return NewBricks(deps.Renderer), nil
	case "Roots Music Project":
		return NewRootsMusic(deps.Renderer), nil
	case "eTown Hall":
		return NewETown(deps.Client), nil
	case "Z2 Entertainment":
		return NewZ2(deps.Renderer, deps.Images), nil
	default:
		return nil, fmt.Errorf("no scraper for venue: %s", name)
	}
}

// Result reports one venue's scrape.
type Result struct {
	Venue string
	File  string
	Count int
	Err   error
}

// RunAll scrapes every registered venue (or just one when only is set) and
// writes each venue's event file. A failing venue is reported in its Result
// and never stops the others.
func RunAll(ctx context.Context, reg *venue.Registry, deps Deps, only string, store *storage.Storage) []Result {
	var results []Result

	for _, v := range reg.All() {
		if only != "" && v.Name != only {
			continue
		}

		s, err := New(v.Name, deps)
		if err != nil {
			logger.Warn("No scraper registered", logger.Fields{"venue": v.Name})
			results = append(results, Result{Venue: v.Name, File: v.File, Err: err})
			continue
		}

		logger.Info("Scraping venue", logger.Fields{"venue": v.Name})
		start := time.Now()
		events, err := s.Scrape(ctx)
		logger.RecordTiming("scrape."+v.File, time.Since(start))

		if err != nil {
			logger.Error("Scrape failed", logger.Fields{"venue": v.Name}, err)
			logger.IncrCounter("scrape.venues_failed")
			results = append(results, Result{Venue: v.Name, File: v.File, Err: err})
			continue
		}

		if err := store.SaveEvents(v.File, events); err != nil {
			logger.Error("Saving events failed", logger.Fields{"venue": v.Name}, err)
			results = append(results, Result{Venue: v.Name, File: v.File, Err: err})
			continue
		}

		logger.Info("Scraped venue", logger.Fields{
			"venue":  v.Name,
			"events": len(events),
		})
		logger.AddCounter("scrape.events", int64(len(events)))
		results = append(results, Result{Venue: v.Name, File: v.File, Count: len(events)})
	}

	return results
}
