package scraper

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/afranz/boulder-events/internal/event"
	"github.com/afranz/boulder-events/internal/fetch"
	"github.com/afranz/boulder-events/internal/logger"
)

const summerSheetID = "18zRuXOk4JB4Z8uMbJJuQ5TdBNurhtrWTFtw0RxAfyEw"

// SummerSheetURL is the CSV export of the community-maintained summer concert
// series sheet.
const SummerSheetURL = "https://docs.google.com/spreadsheets/d/" + summerSheetID + "/export?format=csv"

// summerImages maps series names to their static artwork. Series without an
// entry fall back to the default image.
var summerImages = map[string]string{
	"Bands on the Bricks":                          "images/bandsonthebricks.jpg",
	"Rock & Rails":                                 "images/rocknrails.jpg",
	"Louisville Street Faire":                      "images/streetfaire.jpg",
	"Village at The Peaks - Summer Concert Series": "images/village.jpg",
}

// SummerSeries reads the summer concert series Google Sheet. Unlike the venue
// scrapers it feeds the aggregated file directly rather than a per-venue file,
// so it is not part of the venue registry.
type SummerSeries struct {
	client *fetch.Client
	url    string
}

// NewSummerSeries creates the sheet reader. An empty url means the default
// sheet.
func NewSummerSeries(client *fetch.Client, url string) *SummerSeries {
	if url == "" {
		url = SummerSheetURL
	}
	return &SummerSeries{client: client, url: url}
}

func (s *SummerSeries) Scrape(ctx context.Context) ([]*event.Event, error) {
	data, err := s.client.Get(ctx, s.url)
	if err != nil {
		return nil, fmt.Errorf("downloading sheet: %w", err)
	}
	return parseSummerCSV(data)
}

// parseSummerCSV parses sheet rows into events. The sheet's header row names
// the columns; Event and Venue are required per row, everything else is
// carried through when present.
func parseSummerCSV(data []byte) ([]*event.Event, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading sheet header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"Event", "Venue", "City", "Date", "Time"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("sheet missing %q column", required)
		}
	}

	field := func(record []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var events []*event.Event
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading sheet row: %w", err)
		}

		title := field(record, "Event")
		venue := field(record, "Venue")
		if title == "" || venue == "" {
			continue
		}

		city := field(record, "City")
		image, ok := summerImages[venue]
		if !ok {
			image = "images/default.jpg"
		}

		e := &event.Event{
			Title:    title,
			Venue:    venue,
			Location: city,
			Date:     summerDate(field(record, "Date")),
			Time:     field(record, "Time"),
			Image:    image,
			URL:      field(record, "url"),
			Tags:     []string{"Live Music", "All Ages", "Free"},
			Info:     field(record, "Info"),
			Day:      field(record, "Day"),
		}
		events = append(events, e)
		logger.Debug("Added summer event", logger.Fields{"title": title, "venue": venue})
	}

	return events, nil
}

// summerDate converts the sheet's mm/dd/yyyy dates to the feed's display form.
// Unparseable values pass through untouched.
func summerDate(raw string) string {
	t, err := time.Parse("1/2/2006", raw)
	if err != nil {
		logger.Debug("Could not parse sheet date", logger.Fields{"date": raw})
		return raw
	}
	return t.Format("January 02, 2006")
}
