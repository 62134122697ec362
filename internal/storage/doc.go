// Package storage provides JSON-based persistence for scraped events.
//
// The storage package manages the per-venue event files the scrapers write
// (velvet_elk_events.json, jungle_events.json, ...) and the aggregate feed
// file (all_boulder_events.json). Everything lives flat in one data
// directory, pretty-printed so the files stay diffable and hand-editable.
package storage
