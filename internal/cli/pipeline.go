package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/afranz/boulder-events/internal/clean"
	"github.com/afranz/boulder-events/internal/feed"
	"github.com/afranz/boulder-events/internal/fetch"
	"github.com/afranz/boulder-events/internal/images"
	"github.com/afranz/boulder-events/internal/scraper"
	"github.com/spf13/cobra"
)

var (
	flagSheetURL string
	flagDryRun   bool
)

// newFixDatesCmd creates the fix-dates command
func newFixDatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fix-dates",
		Short: "Move clock times out of date fields in the venue files",
		RunE:  runFixDates,
	}
}

func runFixDates(cmd *cobra.Command, args []string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	store, err := openStorage()
	if err != nil {
		return err
	}

	results := clean.RunFixDates(store, clean.DefaultFixDateFiles)
	return WritePassResults(os.Stdout, "fix-dates", results, format)
}

// newCleanCmd creates the clean command
func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Deduplicate recurring events in the venue files",
		RunE:  runClean,
	}
}

func runClean(cmd *cobra.Command, args []string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	store, err := openStorage()
	if err != nil {
		return err
	}

	results := clean.RunClean(store, clean.DefaultCleanFiles)
	return WritePassResults(os.Stdout, "clean", results, format)
}

// newAggregateCmd creates the aggregate command
func newAggregateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "aggregate",
		Short: "Combine the venue event files into a single feed",
		RunE:  runAggregate,
	}
}

func runAggregate(cmd *cobra.Command, args []string) error {
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

	f := feed.Build(reg, store)

	if err := store.SaveFeed(f); err != nil {
		return fmt.Errorf("saving feed: %w", err)
	}

	return WriteFeedSummary(os.Stdout, f, reg.Len(), format)
}

// newSummerCmd creates the summer command
func newSummerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summer",
		Short: "Merge the summer concert series sheet into the feed",
		RunE:  runSummer,
	}

	cmd.Flags().StringVar(&flagSheetURL, "sheet-url", "", "CSV export URL for the summer series sheet")

	return cmd
}

func runSummer(cmd *cobra.Command, args []string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	store, err := openStorage()
	if err != nil {
		return err
	}

	client := fetch.NewClient(fetch.Options{})
	s := scraper.NewSummerSeries(client, flagSheetURL)

	events, err := s.Scrape(context.Background())
	if err != nil {
		return fmt.Errorf("fetching summer series: %w", err)
	}

	f, err := store.LoadFeed()
	if err != nil {
		return fmt.Errorf("loading feed: %w", err)
	}

	merged := feed.MergeSummer(f, events)

	if err := store.SaveFeed(f); err != nil {
		return fmt.Errorf("saving feed: %w", err)
	}

	return WriteMergeSummary(os.Stdout, merged, f.TotalEvents, format)
}

// newCleanupImagesCmd creates the cleanup-images command
func newCleanupImagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cleanup-images",
		Short: "Delete downloaded images no longer referenced by the feed",
		RunE:  runCleanupImages,
	}

	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Report stale images without deleting them")

	return cmd
}

func runCleanupImages(cmd *cobra.Command, args []string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	store, err := openStorage()
	if err != nil {
		return err
	}

	// Without a feed there is no active set to compare against.
	if !store.Exists(feed.FileName) {
		return WriteCleanupResult(os.Stdout, &images.CleanupResult{}, flagDryRun, format)
	}

	f, err := store.LoadFeed()
	if err != nil {
		return fmt.Errorf("loading feed: %w", err)
	}

	res, err := images.CleanupOld(store.DataDir(), f.Events, flagDryRun)
	if err != nil {
		return fmt.Errorf("cleaning up images: %w", err)
	}

	return WriteCleanupResult(os.Stdout, res, flagDryRun, format)
}
