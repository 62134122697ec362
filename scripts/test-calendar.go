package main

import (
	"fmt"
	"os"

	"github.com/afranz/boulder-events/internal/calendar"
	"github.com/afranz/boulder-events/internal/feed"
)

func main() {
	// Create sample entries, one dated and one recurring
	entries := []*feed.Entry{
		{
			ID:             "velvet_elk_lounge_mile_markers",
			Title:          "Mile Markers",
			Venue:          "Velvet Elk Lounge",
			Location:       "Boulder",
			Date:           "December 20, 2025",
			NormalizedDate: "2025-12-20T00:00:00",
			Time:           "8:00 PM - 10:00 PM",
			Description:    "An Americana quartet on the back patio.",
			Link:           "https://velvetelklounge.com/shows/mile-markers",
		},
		{
			ID:        "jungle_live_jazz",
			Title:     "Live Jazz",
			Venue:     "Jungle",
			Location:  "Boulder",
			Recurring: "Every Wednesday",
			Time:      "7:00 PM",
		},
	}

	// Generate .ics file
	icsContent := calendar.Generate(entries, "Boulder Events", calendar.DefaultRecurringWeeks)

	// Write to file (owner read/write only)
	filename := "test-boulder-events.ics"
	if err := os.WriteFile(filename, []byte(icsContent), 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Generated calendar file: %s\n\n", filename)
	fmt.Println("Test it by:")
	fmt.Println("1. Open the .ics file with your calendar app (double-click)")
	fmt.Println("2. Or import it into Google Calendar, Apple Calendar, or Outlook")
	fmt.Println("\nFile contents preview:")
	fmt.Println("---")
	fmt.Println(icsContent)
}
