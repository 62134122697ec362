// Package images manages downloaded event artwork under the data directory.
// Z2 Entertainment is the only source whose artwork is downloaded per event;
// everything else ships a static venue image.
package images

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/afranz/boulder-events/internal/logger"
)

// Dir is the feed-relative directory for downloaded event images.
const Dir = "images/z2"

// Capturer downloads an image by rendering it in a browser. Implemented by
// fetch.ChromeRenderer.
type Capturer interface {
	CaptureImage(ctx context.Context, url string) ([]byte, error)
}

// Store saves event images under the data directory. Paths handed back are
// feed-relative with forward slashes, exactly as the listings page expects.
type Store struct {
	root     string
	capturer Capturer
}

// NewStore creates a Store rooted at the data directory.
func NewStore(root string, capturer Capturer) *Store {
	return &Store{root: root, capturer: capturer}
}

var slugDash = regexp.MustCompile(`[^a-z0-9]+`)

// Filename builds the stable image name for a title and source URL. The hash
// keeps names short and lets re-runs skip files already on disk.
func Filename(title, url string) string {
	slug := slugDash.ReplaceAllString(strings.ToLower(title), "-")
	if len(slug) > 50 {
		slug = slug[:50]
	}
	sum := md5.Sum([]byte(url))
	return slug + "-" + hex.EncodeToString(sum[:])[:8] + imageExt(url)
}

func imageExt(url string) string {
	lower := strings.ToLower(url)
	switch {
	case strings.Contains(lower, ".png"):
		return ".png"
	case strings.Contains(lower, ".gif"):
		return ".gif"
	case strings.Contains(lower, ".webp"):
		return ".webp"
	default:
		return ".jpg"
	}
}

// Download captures the image and writes it under images/z2, returning the
// feed-relative path. A file already on disk is reused without a download.
func (s *Store) Download(ctx context.Context, title, url string) (string, error) {
	rel := path.Join(Dir, Filename(title, url))
	full := filepath.Join(s.root, filepath.FromSlash(rel))

	if _, err := os.Stat(full); err == nil {
		logger.Debug("Image already exists", logger.Fields{"path": rel})
		return rel, nil
	}

	if s.capturer == nil {
		return "", fmt.Errorf("image downloads disabled")
	}

	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return "", fmt.Errorf("creating image directory: %w", err)
	}

	data, err := s.capturer.CaptureImage(ctx, url)
	if err != nil {
		return "", fmt.Errorf("downloading image: %w", err)
	}
	if err := os.WriteFile(full, data, 0644); err != nil {
		return "", fmt.Errorf("writing image: %w", err)
	}

	logger.Debug("Downloaded image", logger.Fields{"path": rel, "url": url})
	logger.IncrCounter("images.downloaded")
	return rel, nil
}
