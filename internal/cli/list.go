package cli

import (
	"fmt"
	"os"

	"github.com/afranz/boulder-events/internal/filter"
	"github.com/spf13/cobra"
)

var (
	flagListVenues    []string
	flagListLocations []string
	flagListTags      []string
	flagListDates     string
	flagListWeekends  bool
	flagListSort      string
)

// newListCmd creates the list command
func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List feed events, optionally filtered",
		RunE:  runList,
	}

	cmd.Flags().StringSliceVar(&flagListVenues, "venue", nil, "Only events at these venues")
	cmd.Flags().StringSliceVar(&flagListLocations, "location", nil, "Only events in these towns")
	cmd.Flags().StringSliceVar(&flagListTags, "tag", nil, "Only events matching these tags")
	cmd.Flags().StringVar(&flagListDates, "dates", "", "Date range, e.g. 'Mar 1-15' or 'December'")
	cmd.Flags().BoolVar(&flagListWeekends, "weekends", false, "Only Friday through Sunday events")
	cmd.Flags().StringVar(&flagListSort, "sort", "date", "Sort order: date, venue, or title")

	return cmd
}

// runList is the list command logic
func runList(cmd *cobra.Command, args []string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	sortOrder := SortOrder(flagListSort)
	if sortOrder != SortByDate && sortOrder != SortByVenue && sortOrder != SortByTitle {
		return fmt.Errorf("invalid sort: %s (must be 'date', 'venue', or 'title')", flagListSort)
	}

	store, err := openStorage()
	if err != nil {
		return err
	}

	f, err := store.LoadFeed()
	if err != nil {
		return fmt.Errorf("loading feed: %w", err)
	}

	flt, err := buildFilter(flagListVenues, flagListLocations, flagListTags, flagListDates, flagListWeekends)
	if err != nil {
		return err
	}

	if flagVerbose && !flt.IsEmpty() {
		fmt.Fprintf(os.Stderr, "Filter: %s\n", flt)
	}

	entries := flt.Apply(f.Events)
	sortEntries(entries, sortOrder)

	return WriteEntryList(os.Stdout, entries, format, flagVerbose)
}

// buildFilter assembles a feed filter from command flags
func buildFilter(venues, locations, tags []string, dates string, weekends bool) (*filter.Filter, error) {
	flt := filter.NewFilter()
	if len(venues) > 0 {
		flt.Venues = venues
	}
	if len(locations) > 0 {
		flt.Locations = locations
	}
	if len(tags) > 0 {
		flt.Tags = tags
	}
	flt.WeekendsOnly = weekends

	if dates != "" {
		from, to, err := filter.ParseDateRange(dates)
		if err != nil {
			return nil, fmt.Errorf("parsing date range: %w", err)
		}
		flt.DateFrom = from
		flt.DateTo = to
	}

	return flt, nil
}
