// Package scraper extracts events from Boulder-area venue websites.
//
// Each venue has its own scraper implementing the Scraper interface. Static
// sites are fetched over HTTP and parsed with goquery; JS-driven calendars
// render in headless Chrome first. Venue markup changes without notice, so
// every scraper tries a cascade of selectors and degrades to text-pattern
// extraction rather than failing. RunAll drives all registered scrapers and
// writes one JSON file per venue.
package scraper
