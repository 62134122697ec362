package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/afranz/boulder-events/internal/calendar"
	"github.com/spf13/cobra"
)

var (
	flagExportOutput    string
	flagExportName      string
	flagExportVenues    []string
	flagExportLocations []string
	flagExportTags      []string
	flagExportDates     string
	flagExportWeekends  bool
	flagExportWeeks     int
)

// newExportCmd creates the export-ics command
func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export-ics",
		Short: "Export feed events as an iCalendar file",
		RunE:  runExport,
	}

	cmd.Flags().StringVar(&flagExportOutput, "output", "boulder_events.ics", "Output file, relative to --data-dir unless absolute")
	cmd.Flags().StringVar(&flagExportName, "name", "Boulder Events", "Calendar display name")
	cmd.Flags().StringSliceVar(&flagExportVenues, "venue", nil, "Only events at these venues")
	cmd.Flags().StringSliceVar(&flagExportLocations, "location", nil, "Only events in these towns")
	cmd.Flags().StringSliceVar(&flagExportTags, "tag", nil, "Only events matching these tags")
	cmd.Flags().StringVar(&flagExportDates, "dates", "", "Date range, e.g. 'Mar 1-15' or 'December'")
	cmd.Flags().BoolVar(&flagExportWeekends, "weekends", false, "Only Friday through Sunday events")
	cmd.Flags().IntVar(&flagExportWeeks, "weeks", calendar.DefaultRecurringWeeks, "Weekly instances to expand for recurring events")

	return cmd
}

// runExport is the export-ics command logic
func runExport(cmd *cobra.Command, args []string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	store, err := openStorage()
	if err != nil {
		return err
	}

	f, err := store.LoadFeed()
	if err != nil {
		return fmt.Errorf("loading feed: %w", err)
	}

	flt, err := buildFilter(flagExportVenues, flagExportLocations, flagExportTags, flagExportDates, flagExportWeekends)
	if err != nil {
		return err
	}

	entries := flt.Apply(f.Events)
	sortEntries(entries, SortByDate)

	out := ""
	if len(entries) > 0 {
		out = flagExportOutput
		if !filepath.IsAbs(out) {
			out = store.Path(out)
		}

		ics := calendar.Generate(entries, flagExportName, flagExportWeeks)
		if err := os.WriteFile(out, []byte(ics), 0644); err != nil {
			return fmt.Errorf("writing calendar: %w", err)
		}
	}

	return WriteExportSummary(os.Stdout, len(entries), out, format)
}
