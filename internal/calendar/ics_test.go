package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/afranz/boulder-events/internal/event"
	"github.com/afranz/boulder-events/internal/feed"
)

func freezeClock(t *testing.T) {
	t.Helper()
	event.SetClock(clockwork.NewFakeClockAt(time.Date(2025, time.November, 1, 12, 0, 0, 0, time.UTC)))
	t.Cleanup(func() { event.SetClock(nil) })
}

func TestGenerate_DatedEntry(t *testing.T) {
	entries := []*feed.Entry{{
		ID:             "velvet_elk_lounge_the_mile_markers_december_20_2025_8_00_pm",
		Title:          "The Mile Markers",
		Venue:          "Velvet Elk Lounge",
		Location:       "Boulder",
		NormalizedDate: "2025-12-20T00:00:00",
		Time:           "8:00 PM",
		Description:    "An Americana quartet on the back patio.",
		Link:           "https://velvetelklounge.com/shows/mile-markers",
	}}

	ics := Generate(entries, "Boulder Events", 0)

	requiredFields := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Boulder Events//boulder-events//EN",
		"X-WR-CALNAME:Boulder Events",
		"BEGIN:VEVENT",
		"UID:velvet_elk_lounge_the_mile_markers_december_20_2025_8_00_pm@boulder-events",
		"DTSTAMP:",
		"DTSTART:20251220T200000Z",
		"DTEND:20251220T220000Z",
		"SUMMARY:The Mile Markers",
		"DESCRIPTION:An Americana quartet on the back patio.\\n\\nMore info: https://velvetelklounge.com/shows/mile-markers",
		"LOCATION:Velvet Elk Lounge\\, Boulder",
		"URL:https://velvetelklounge.com/shows/mile-markers",
		"STATUS:CONFIRMED",
		"END:VEVENT",
		"END:VCALENDAR",
	}
	for _, field := range requiredFields {
		if !strings.Contains(ics, field) {
			t.Errorf("ICS missing required field: %s", field)
		}
	}

	if !strings.Contains(ics, "\r\n") {
		t.Error("ICS should use \\r\\n line endings")
	}
}

func TestGenerate_AllDayEntry(t *testing.T) {
	entries := []*feed.Entry{{
		ID:             "bricks_on_main_holiday_market_december_13_2025",
		Title:          "Holiday Market",
		Venue:          "Bricks on Main",
		Location:       "Longmont",
		NormalizedDate: "2025-12-13",
	}}

	ics := Generate(entries, "", 0)

	if !strings.Contains(ics, "DTSTART;VALUE=DATE:20251213") {
		t.Error("all-day event should use a DATE-value DTSTART")
	}
	if !strings.Contains(ics, "DTEND;VALUE=DATE:20251214") {
		t.Error("all-day event should end the following day")
	}
	if strings.Contains(ics, "X-WR-CALNAME:") {
		t.Error("should not include X-WR-CALNAME when name is empty")
	}
}

func TestGenerate_TimeRange(t *testing.T) {
	entries := []*feed.Entry{{
		ID:             "bricks_on_main_makers_market",
		Title:          "Makers Market",
		Venue:          "Bricks on Main",
		NormalizedDate: "2025-12-13",
		Time:           "10:00 AM - 4:00 PM",
	}}

	ics := Generate(entries, "", 0)

	if !strings.Contains(ics, "DTSTART:20251213T100000Z") {
		t.Errorf("wrong range start:\n%s", ics)
	}
	if !strings.Contains(ics, "DTEND:20251213T160000Z") {
		t.Errorf("wrong range end:\n%s", ics)
	}
}

func TestGenerate_MidnightCrossingRange(t *testing.T) {
	entries := []*feed.Entry{{
		ID:             "license_no_1_late_set",
		Title:          "Late Set",
		Venue:          "License No 1",
		NormalizedDate: "2025-12-20",
		Time:           "10:00 PM - 1:00 AM",
	}}

	ics := Generate(entries, "", 0)

	if !strings.Contains(ics, "DTSTART:20251220T220000Z") {
		t.Errorf("wrong start:\n%s", ics)
	}
	if !strings.Contains(ics, "DTEND:20251221T010000Z") {
		t.Error("range crossing midnight should end the next day")
	}
}

func TestGenerate_RecurringExpands(t *testing.T) {
	freezeClock(t)

	entries := []*feed.Entry{{
		ID:        "jungle_live_jazz",
		Title:     "Live Jazz",
		Venue:     "Jungle",
		Recurring: "Every Wednesday",
		Time:      "7:00 PM",
	}}

	ics := Generate(entries, "", 0)

	if got := strings.Count(ics, "BEGIN:VEVENT"); got != DefaultRecurringWeeks {
		t.Fatalf("recurring entry expanded to %d events, want %d", got, DefaultRecurringWeeks)
	}
	// Nov 1 2025 is a Saturday, so the first Wednesday is Nov 5.
	if !strings.Contains(ics, "DTSTART:20251105T190000Z") {
		t.Errorf("missing first weekly instance:\n%s", ics)
	}
	if !strings.Contains(ics, "DTSTART:20251126T190000Z") {
		t.Error("missing fourth weekly instance")
	}
	if !strings.Contains(ics, "UID:jungle_live_jazz-1@boulder-events") {
		t.Error("recurring instances should carry numbered UIDs")
	}
	if !strings.Contains(ics, "UID:jungle_live_jazz-4@boulder-events") {
		t.Error("missing final instance UID")
	}
}

func TestGenerate_RecurringWeekCount(t *testing.T) {
	freezeClock(t)

	entries := []*feed.Entry{{
		ID:        "mountain_sun_pubs_the_bluegrass_pick",
		Title:     "The BLUEGRASS PICK",
		Venue:     "Mountain Sun Pubs",
		Recurring: "Every Thursday",
	}}

	ics := Generate(entries, "", 2)

	if got := strings.Count(ics, "BEGIN:VEVENT"); got != 2 {
		t.Errorf("expanded to %d events, want 2", got)
	}
	// Untimed recurring instances render as all-day events.
	if !strings.Contains(ics, "DTSTART;VALUE=DATE:20251106") {
		t.Errorf("missing first Thursday instance:\n%s", ics)
	}
}

func TestGenerate_SkipsEntriesWithoutDates(t *testing.T) {
	freezeClock(t)

	entries := []*feed.Entry{
		{ID: "roots_music_project_open_jam", Title: "Open Jam", Venue: "Roots Music Project", Date: "TBA"},
		{ID: "jungle_nye", Title: "NYE Party", Venue: "Jungle", NormalizedDate: "2025-12-31"},
	}

	ics := Generate(entries, "", 0)

	if got := strings.Count(ics, "BEGIN:VEVENT"); got != 1 {
		t.Errorf("generated %d events, want 1 (undated entry skipped)", got)
	}
	if !strings.Contains(ics, "UID:jungle_nye@boulder-events") {
		t.Error("dated entry missing from output")
	}
}

func TestGenerate_EmptyEntries(t *testing.T) {
	if ics := Generate(nil, "Boulder Events", 0); ics != "" {
		t.Error("empty entry list should return empty string")
	}
}

func TestParseClocks(t *testing.T) {
	tests := []struct {
		text string
		want []clockTime
	}{
		{"8:00 PM", []clockTime{{20, 0}}},
		{"9:30 pm", []clockTime{{21, 30}}},
		{"12:00 PM", []clockTime{{12, 0}}},
		{"12:15 AM", []clockTime{{0, 15}}},
		{"7:00 pm - 9:30 pm", []clockTime{{19, 0}, {21, 30}}},
		{"5:30 - 8:00 PM", []clockTime{{17, 30}, {20, 0}}},
		{"10:00 AM - 4:00 PM", []clockTime{{10, 0}, {16, 0}}},
		{"Doors 7:30", []clockTime{{7, 30}}},
		{"", nil},
		{"TBD", nil},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := parseClocks(tt.text)
			if tt.want == nil {
				if ok {
					t.Fatalf("parseClocks(%q) = %v, want no match", tt.text, got)
				}
				return
			}
			if !ok || len(got) != len(tt.want) {
				t.Fatalf("parseClocks(%q) = %v, %v, want %v", tt.text, got, ok, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("clock %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestRecurringWeekday(t *testing.T) {
	tests := []struct {
		text string
		want time.Weekday
		ok   bool
	}{
		{"Every Wednesday", time.Wednesday, true},
		{"Monday Nights", time.Monday, true},
		{"Thursdays", time.Thursday, true},
		{"every sunday", time.Sunday, true},
		{"Nightly", time.Sunday, false},
		{"", time.Sunday, false},
	}

	for _, tt := range tests {
		got, ok := recurringWeekday(tt.text)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("recurringWeekday(%q) = %v, %v, want %v, %v", tt.text, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFormatICSTime(t *testing.T) {
	testTime := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)
	formatted := formatICSTime(testTime)

	expected := "20260315T143000Z"
	if formatted != expected {
		t.Errorf("formatICSTime() = %q, want %q", formatted, expected)
	}
}

func TestEscapeICS(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Simple text", "Simple text"},
		{"Text with, comma", "Text with\\, comma"},
		{"Text with; semicolon", "Text with\\; semicolon"},
		{"Text with\\backslash", "Text with\\\\backslash"},
		{"Text with\nnewline", "Text with\\nnewline"},
		{"All, special; chars\\\n", "All\\, special\\; chars\\\\\\n"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := escapeICS(tt.input)
			if got != tt.expected {
				t.Errorf("escapeICS(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
