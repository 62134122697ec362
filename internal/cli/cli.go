package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/afranz/boulder-events/internal/logger"
	"github.com/afranz/boulder-events/internal/storage"
	"github.com/afranz/boulder-events/internal/venue"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagDataDir string
	flagFormat  string
	flagVenues  string
	flagVerbose bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boulder-events",
		Short: "Aggregate Boulder-area venue events into a single feed",
		Long: `A CLI tool that scrapes Boulder-area venue websites into per-venue
event files, repairs and deduplicates them, aggregates everything into a
single tagged feed, and serves it back out as filtered listings or an
iCalendar file.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagVerbose {
				logger.SetVerbose()
			}
		},
	}

	// Define persistent flags shared by all subcommands
	cmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", ".", "Directory holding venue event files and the feed")
	cmd.PersistentFlags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.PersistentFlags().StringVar(&flagVenues, "venues", "", "YAML file overriding the built-in venue registry")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	cmd.AddCommand(
		newScrapeCmd(),
		newFixDatesCmd(),
		newCleanCmd(),
		newAggregateCmd(),
		newSummerCmd(),
		newCleanupImagesCmd(),
		newListCmd(),
		newExportCmd(),
		newVenuesCmd(),
	)

	return cmd
}

// outputFormat validates the --format flag
func outputFormat() (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}
	return format, nil
}

// openStorage initializes storage rooted at --data-dir
func openStorage() (*storage.Storage, error) {
	store, err := storage.New(flagDataDir)
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}
	return store, nil
}

// loadRegistry returns the venue registry with --venues overrides applied
func loadRegistry() (*venue.Registry, error) {
	reg := venue.Default()
	if flagVenues != "" {
		if err := venue.LoadOverrides(reg, flagVenues); err != nil {
			return nil, fmt.Errorf("loading venue overrides: %w", err)
		}
	}
	return reg, nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
