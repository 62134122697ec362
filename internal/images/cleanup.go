package images

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/afranz/boulder-events/internal/event"
	"github.com/afranz/boulder-events/internal/feed"
	"github.com/afranz/boulder-events/internal/logger"
)

// CleanupResult summarizes an image cleanup pass.
type CleanupResult struct {
	Active  int
	Deleted int
	Files   []string // deleted (or would-be-deleted) feed-relative paths
}

var imageGlobs = []string{"*.jpg", "*.jpeg", "*.png", "*.gif", "*.webp"}

// ActiveImages returns the downloaded image paths still referenced by events
// happening today or later.
func ActiveImages(entries []*feed.Entry) map[string]bool {
	today := event.Today()
	active := make(map[string]bool)

	for _, e := range entries {
		if e.NormalizedDate == "" {
			continue
		}
		t, ok := event.ParseNormalized(e.NormalizedDate)
		if !ok || t.Before(today) {
			continue
		}
		if strings.HasPrefix(e.Image, Dir+"/") {
			active[e.Image] = true
		}
	}

	return active
}

// CleanupOld deletes downloaded images whose events have passed. Paths are
// compared with forward slashes, matching how the feed stores them. A missing
// image directory is a clean no-op. With dryRun the deletions are reported
// but nothing is removed.
func CleanupOld(root string, entries []*feed.Entry, dryRun bool) (*CleanupResult, error) {
	result := &CleanupResult{}
	active := ActiveImages(entries)
	result.Active = len(active)

	dir := filepath.Join(root, filepath.FromSlash(Dir))
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		logger.Info("No image directory, nothing to clean up", logger.Fields{"dir": dir})
		return result, nil
	}

	for _, pattern := range imageGlobs {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		for _, match := range matches {
			rel := path.Join(Dir, filepath.Base(match))
			if active[rel] {
				logger.Debug("Keeping active image", logger.Fields{"path": rel})
				continue
			}

			result.Files = append(result.Files, rel)
			if dryRun {
				continue
			}
			if err := os.Remove(match); err != nil {
				logger.Error("Deleting image failed", logger.Fields{"path": rel}, err)
				continue
			}
			result.Deleted++
			logger.Info("Deleted old image", logger.Fields{"path": rel})
		}
	}

	logger.AddCounter("images.deleted", int64(result.Deleted))
	return result, nil
}
