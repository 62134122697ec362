// Package event provides the shared event record and date handling for the
// Boulder events pipeline.
//
// Venue scrapers emit loosely-structured records: most fields are optional,
// dates arrive as free text ("Friday, November 7th", "12/14/2025"), times in a
// dozen formats, and a few fields exist in two spellings (link vs url, time vs
// time_start/time_end). This package normalizes that mess: deterministic slug
// IDs, venue|title dedupe keys, and a single date normalizer used by every
// scraper and by the aggregator. "Today" is always the current date in
// America/Denver and can be frozen in tests via SetClock.
package event
