package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/afranz/boulder-events/internal/clean"
	"github.com/afranz/boulder-events/internal/feed"
	"github.com/afranz/boulder-events/internal/images"
	"github.com/afranz/boulder-events/internal/scraper"
	"github.com/afranz/boulder-events/internal/venue"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// ScrapeSummary contains the results of a scrape run
type ScrapeSummary struct {
	ScrapedAt time.Time      `json:"scraped_at"`
	Venues    []VenueSummary `json:"venues"`
	Events    int            `json:"events"`
	Failed    int            `json:"failed"`
}

// VenueSummary is one venue's scrape outcome
type VenueSummary struct {
	Venue  string `json:"venue"`
	File   string `json:"file"`
	Events int    `json:"events"`
	Error  string `json:"error,omitempty"`
}

// WriteScrapeSummary writes scrape results in the specified format
func WriteScrapeSummary(w io.Writer, results []scraper.Result, format OutputFormat) error {
	summary := &ScrapeSummary{ScrapedAt: time.Now().UTC()}
	for _, r := range results {
		vs := VenueSummary{Venue: r.Venue, File: r.File, Events: r.Count}
		if r.Err != nil {
			vs.Error = r.Err.Error()
			summary.Failed++
		} else {
			summary.Events += r.Count
		}
		summary.Venues = append(summary.Venues, vs)
	}

	if format == FormatJSON {
		return writeJSON(w, summary)
	}

	for _, vs := range summary.Venues {
		if vs.Error != "" {
			fmt.Fprintf(w, "%s: FAILED (%s)\n", vs.Venue, vs.Error)
			continue
		}
		fmt.Fprintf(w, "%s: %d events (%s)\n", vs.Venue, vs.Events, vs.File)
	}

	fmt.Fprintf(w, "\nTotal: %d events from %d venues", summary.Events, len(summary.Venues)-summary.Failed)
	if summary.Failed > 0 {
		fmt.Fprintf(w, " (%d failed)", summary.Failed)
	}
	fmt.Fprintln(w)
	return nil
}

// PassSummary contains the results of a cleanup pass
type PassSummary struct {
	Pass    string       `json:"pass"`
	Files   []FileResult `json:"files"`
	Changed int          `json:"changed"`
}

// FileResult is one file's outcome in a cleanup pass
type FileResult struct {
	File    string `json:"file"`
	Changed int    `json:"changed"`
	Skipped bool   `json:"skipped,omitempty"`
	Error   string `json:"error,omitempty"`
}

// WritePassResults writes cleanup pass results in the specified format
func WritePassResults(w io.Writer, pass string, results []clean.Result, format OutputFormat) error {
	summary := &PassSummary{Pass: pass}
	for _, r := range results {
		fr := FileResult{File: r.File, Changed: r.Count, Skipped: r.Skipped}
		if r.Err != nil {
			fr.Error = r.Err.Error()
		}
		summary.Changed += r.Count
		summary.Files = append(summary.Files, fr)
	}

	if format == FormatJSON {
		return writeJSON(w, summary)
	}

	for _, fr := range summary.Files {
		switch {
		case fr.Error != "":
			fmt.Fprintf(w, "%s: FAILED (%s)\n", fr.File, fr.Error)
		case fr.Skipped:
			fmt.Fprintf(w, "%s: skipped (missing)\n", fr.File)
		default:
			fmt.Fprintf(w, "%s: %d events changed\n", fr.File, fr.Changed)
		}
	}

	fmt.Fprintf(w, "\nTotal: %d events changed across %d files\n", summary.Changed, len(summary.Files))
	return nil
}

// FeedSummary describes an aggregated feed
type FeedSummary struct {
	GeneratedAt string `json:"generated_at"`
	Events      int    `json:"events"`
	Venues      int    `json:"venues"`
}

// WriteFeedSummary reports an aggregation run
func WriteFeedSummary(w io.Writer, f *feed.Feed, venues int, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, &FeedSummary{GeneratedAt: f.GeneratedAt, Events: f.TotalEvents, Venues: venues})
	}

	fmt.Fprintf(w, "Feed saved: %d events from %d venues\n", f.TotalEvents, venues)
	return nil
}

// MergeSummary describes a summer series merge
type MergeSummary struct {
	Merged int `json:"merged"`
	Total  int `json:"total"`
}

// WriteMergeSummary reports a summer series merge
func WriteMergeSummary(w io.Writer, merged, total int, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, &MergeSummary{Merged: merged, Total: total})
	}

	fmt.Fprintf(w, "Merged %d summer events into the feed (%d total)\n", merged, total)
	return nil
}

// CleanupSummary describes an image cleanup run
type CleanupSummary struct {
	Active  int      `json:"active"`
	Deleted int      `json:"deleted"`
	Files   []string `json:"files,omitempty"`
	DryRun  bool     `json:"dry_run,omitempty"`
}

// WriteCleanupResult reports an image cleanup run
func WriteCleanupResult(w io.Writer, res *images.CleanupResult, dryRun bool, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, &CleanupSummary{
			Active:  res.Active,
			Deleted: res.Deleted,
			Files:   res.Files,
			DryRun:  dryRun,
		})
	}

	for _, f := range res.Files {
		fmt.Fprintln(w, f)
	}

	// Dry runs report nothing as deleted, so count the listed files instead.
	verb := "Deleted"
	count := res.Deleted
	if dryRun {
		verb = "Would delete"
		count = len(res.Files)
	}
	fmt.Fprintf(w, "%s %d images (%d still referenced)\n", verb, count, res.Active)
	return nil
}

// EntryList contains filtered feed entries for output
type EntryList struct {
	Count  int           `json:"count"`
	Events []*feed.Entry `json:"events"`
}

// WriteEntryList writes feed entries in the specified format
func WriteEntryList(w io.Writer, entries []*feed.Entry, format OutputFormat, verbose bool) error {
	if format == FormatJSON {
		return writeJSON(w, &EntryList{Count: len(entries), Events: entries})
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No events found.")
		return nil
	}

	for _, e := range entries {
		fmt.Fprintf(w, "%s (%s): %s\n", e.Venue, entryWhen(e), e.Title)
		if verbose {
			if e.Time != "" {
				fmt.Fprintf(w, "     Time: %s\n", e.Time)
			}
			if e.Location != "" {
				fmt.Fprintf(w, "     Location: %s\n", e.Location)
			}
			if len(e.EventTypeTags) > 0 {
				fmt.Fprintf(w, "     Tags: %s\n", strings.Join(e.EventTypeTags, ", "))
			}
			if e.Link != "" {
				fmt.Fprintf(w, "     Link: %s\n", e.Link)
			}
		}
	}

	fmt.Fprintf(w, "\nTotal: %d events\n", len(entries))
	return nil
}

// entryWhen renders an entry's date, recurrence, or a placeholder
func entryWhen(e *feed.Entry) string {
	if e.Date != "" {
		return e.Date
	}
	if e.Recurring != "" {
		return e.Recurring
	}
	return "TBD"
}

// ExportSummary describes an iCalendar export
type ExportSummary struct {
	Events int    `json:"events"`
	Output string `json:"output,omitempty"`
}

// WriteExportSummary reports an iCalendar export
func WriteExportSummary(w io.Writer, events int, output string, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, &ExportSummary{Events: events, Output: output})
	}

	if events == 0 {
		fmt.Fprintln(w, "No events to export.")
		return nil
	}

	fmt.Fprintf(w, "Exported %d events to %s\n", events, output)
	return nil
}

// VenueList contains registry venues for output
type VenueList struct {
	Count  int            `json:"count"`
	Venues []*venue.Venue `json:"venues"`
}

// WriteVenues writes the venue registry in the specified format
func WriteVenues(w io.Writer, venues []*venue.Venue, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, &VenueList{Count: len(venues), Venues: venues})
	}

	for _, v := range venues {
		fmt.Fprintf(w, "%s (%s): %s", v.Name, v.Location, v.File)
		if len(v.Tags) > 0 {
			fmt.Fprintf(w, " [%s]", strings.Join(v.Tags, ", "))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "\nTotal: %d venues\n", len(venues))
	return nil
}

// writeJSON outputs results as indented JSON
func writeJSON(w io.Writer, result interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}
