package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/afranz/boulder-events/internal/fetch"
	"github.com/afranz/boulder-events/internal/images"
	"github.com/afranz/boulder-events/internal/logger"
	"github.com/afranz/boulder-events/internal/scraper"
	"github.com/spf13/cobra"
)

var (
	flagScrapeVenue   string
	flagScrapeTimeout time.Duration
	flagScrapeCache   bool
	flagNoImages      bool
)

// pageCacheFile is where rendered pages persist between runs.
const pageCacheFile = "page_cache.json"

// newScrapeCmd creates the scrape command
func newScrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape venue websites into per-venue event files",
		RunE:  runScrape,
	}

	cmd.Flags().StringVar(&flagScrapeVenue, "venue", "", "Scrape a single venue by name")
	cmd.Flags().DurationVar(&flagScrapeTimeout, "timeout", fetch.DefaultTimeout, "HTTP timeout per request")
	cmd.Flags().BoolVar(&flagScrapeCache, "cache", false, "Reuse rendered pages across runs")
	cmd.Flags().BoolVar(&flagNoImages, "no-images", false, "Skip event artwork downloads")

	return cmd
}

// runScrape is the scrape command logic
func runScrape(cmd *cobra.Command, args []string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	store, err := openStorage()
	if err != nil {
		return err
	}

	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	var cache *fetch.PageCache
	if flagScrapeCache {
		cache, err = fetch.LoadPageCache(store.Path(pageCacheFile))
		if err != nil {
			return fmt.Errorf("loading page cache: %w", err)
		}
	}

	client := fetch.NewClient(fetch.Options{
		Timeout: flagScrapeTimeout,
		Cache:   cache,
	})
	renderer := fetch.NewChromeRenderer(fetch.DefaultRenderTimeout)

	var capturer images.Capturer
	if !flagNoImages {
		capturer = renderer
	}

	deps := scraper.Deps{
		Client:   client,
		Renderer: renderer,
		Images:   images.NewStore(store.DataDir(), capturer),
	}

	results := scraper.RunAll(context.Background(), reg, deps, flagScrapeVenue, store)

	if cache != nil {
		if err := cache.Save(); err != nil {
			logger.Warn("Saving page cache failed", logger.Fields{"error": err.Error()})
		}
	}

	if flagVerbose {
		logger.Debug("Run metrics", logger.Fields(logger.GetMetricsSnapshot()))
	}

	if err := WriteScrapeSummary(os.Stdout, results, format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if flagScrapeVenue != "" && len(results) == 0 {
		return fmt.Errorf("no venue matching %q", flagScrapeVenue)
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if len(results) > 0 && failed == len(results) {
		return fmt.Errorf("all %d venues failed", failed)
	}

	return nil
}
