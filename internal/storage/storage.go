package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/afranz/boulder-events/internal/event"
	"github.com/afranz/boulder-events/internal/feed"
)

// Storage handles persistence of venue event files and the aggregate feed
type Storage struct {
	dataDir string
}

// New creates a new Storage instance
func New(dataDir string) (*Storage, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{
		dataDir: dataDir,
	}, nil
}

// DataDir returns the resolved data directory.
func (s *Storage) DataDir() string {
	return s.dataDir
}

// Path returns the full path of a file inside the data directory.
func (s *Storage) Path(name string) string {
	return filepath.Join(s.dataDir, name)
}

// Exists reports whether a file exists in the data directory.
func (s *Storage) Exists(name string) bool {
	_, err := os.Stat(s.Path(name))
	return err == nil
}

// LoadEvents loads a venue event file. A missing file yields an empty list.
func (s *Storage) LoadEvents(name string) ([]*event.Event, error) {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		if os.IsNotExist(err) {
			// Venue has not been scraped yet
			return []*event.Event{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	var events []*event.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}

	return events, nil
}

// SaveEvents writes a venue event file.
func (s *Storage) SaveEvents(name string, events []*event.Event) error {
	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}

	if err := os.WriteFile(s.Path(name), data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}

	return nil
}

// LoadFeed reads the aggregate feed. The error wraps os.ErrNotExist when the
// feed has not been generated yet.
func (s *Storage) LoadFeed() (*feed.Feed, error) {
	data, err := os.ReadFile(s.Path(feed.FileName))
	if err != nil {
		return nil, fmt.Errorf("reading feed: %w", err)
	}

	var f feed.Feed
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}

	return &f, nil
}

// SaveFeed writes the aggregate feed.
func (s *Storage) SaveFeed(f *feed.Feed) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding feed: %w", err)
	}

	if err := os.WriteFile(s.Path(feed.FileName), data, 0644); err != nil {
		return fmt.Errorf("writing feed: %w", err)
	}

	return nil
}
