// Package fetch retrieves venue pages. Plain HTTP with browser-like headers
// covers most sites; JS-heavy calendars go through a headless-Chrome
// Renderer. The HTTP client adds per-host rate limiting, retry with
// exponential backoff, and an optional on-disk page cache for development
// reruns.
package fetch
