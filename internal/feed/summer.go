package feed

import (
	"sort"

	"github.com/afranz/boulder-events/internal/event"
	"github.com/afranz/boulder-events/internal/logger"
)

// MergeSummer merges summer concert series events into an existing feed.
// Duplicates (same title, venue and normalized date as an existing entry)
// are skipped. All events are re-sorted by normalized date with undated
// entries first, and the total and tag index recomputed. Returns the number
// of events added.
func MergeSummer(f *Feed, events []*event.Event) int {
	seen := make(map[string]bool, len(f.Events))
	for _, en := range f.Events {
		seen[summerKey(en.Title, en.Venue, en.NormalizedDate)] = true
	}

	added := 0
	for _, e := range events {
		normalized, _ := event.NormalizeDate(e.Date)
		key := summerKey(e.Title, e.Venue, normalized)
		if seen[key] {
			logger.Debug("Skipping duplicate summer event", logger.Fields{
				"title": e.Title,
				"venue": e.Venue,
			})
			continue
		}
		seen[key] = true

		f.Events = append(f.Events, &Entry{
			ID:             e.ID(),
			Title:          e.Title,
			Venue:          e.Venue,
			Location:       e.Location,
			Date:           e.Date,
			NormalizedDate: normalized,
			Time:           e.TimeRange(),
			Link:           e.EventLink(),
			Image:          e.Image,
			VenueTag:       e.Venue,
			LocationTag:    e.Location,
			VenueTypeTags:  []string{},
			EventTypeTags:  e.Tags,
			Info:           e.Info,
			Day:            e.Day,
		})
		added++
	}

	sort.SliceStable(f.Events, func(i, j int) bool {
		return f.Events[i].NormalizedDate < f.Events[j].NormalizedDate
	})
	f.TotalEvents = len(f.Events)
	f.Tags = BuildTagIndex(f.Events)

	logger.Info("Merged summer events", logger.Fields{
		"added": added,
		"total": f.TotalEvents,
	})
	return added
}

func summerKey(title, venue, normalizedDate string) string {
	return title + "|" + venue + "|" + normalizedDate
}
