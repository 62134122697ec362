// Package cli implements the command-line interface for boulder-events.
//
// The cli package provides the Cobra-based CLI with subcommands covering the
// whole pipeline: scraping venue websites, repairing and deduplicating the
// per-venue event files, aggregating them into the feed, merging the summer
// concert series, cleaning up downloaded images, and listing or exporting
// events with filtering and sorting. It coordinates the scraper, clean, feed,
// filter, images, and calendar packages.
package cli
