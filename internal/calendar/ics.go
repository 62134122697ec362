// Package calendar renders feed entries as an iCalendar file so the
// aggregated listings can be subscribed to from a calendar app.
package calendar

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/afranz/boulder-events/internal/event"
	"github.com/afranz/boulder-events/internal/feed"
	"github.com/afranz/boulder-events/internal/logger"
)

// DefaultRecurringWeeks is how many weekly instances a recurring entry
// expands to when no count is given.
const DefaultRecurringWeeks = 4

// defaultDuration applies when an entry has a start time but no end time.
const defaultDuration = 2 * time.Hour

// Generate renders entries as one VCALENDAR with a VEVENT per occurrence.
// Dated entries produce a single event; recurring entries ("Every Wednesday")
// expand to the next recurringWeeks weekly instances starting today. Entries
// with neither a parseable date nor a recognizable recurring day are skipped.
// An empty entry list produces an empty string.
func Generate(entries []*feed.Entry, name string, recurringWeeks int) string {
	if len(entries) == 0 {
		return ""
	}
	if recurringWeeks <= 0 {
		recurringWeeks = DefaultRecurringWeeks
	}

	var ics strings.Builder
	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//Boulder Events//boulder-events//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")
	if name != "" {
		ics.WriteString(fmt.Sprintf("X-WR-CALNAME:%s\r\n", escapeICS(name)))
	}

	stamp := time.Now().UTC()
	for _, e := range entries {
		for _, occ := range occurrences(e, recurringWeeks) {
			writeEvent(&ics, e, occ, stamp)
		}
	}

	ics.WriteString("END:VCALENDAR\r\n")
	return ics.String()
}

// occurrence is one rendered VEVENT: a concrete day plus an optional
// instance suffix for recurring expansions.
type occurrence struct {
	day      time.Time
	instance int
}

func occurrences(e *feed.Entry, weeks int) []occurrence {
	if day, ok := entryDay(e); ok {
		return []occurrence{{day: day}}
	}

	weekday, ok := recurringWeekday(e.Recurring)
	if !ok {
		logger.Debug("Skipping calendar entry without a usable date", logger.Fields{
			"id":   e.ID,
			"date": e.Date,
		})
		return nil
	}

	today := event.Today()
	first := today.AddDate(0, 0, (int(weekday)-int(today.Weekday())+7)%7)
	occs := make([]occurrence, 0, weeks)
	for i := 0; i < weeks; i++ {
		occs = append(occs, occurrence{day: first.AddDate(0, 0, 7*i), instance: i + 1})
	}
	return occs
}

func entryDay(e *feed.Entry) (time.Time, bool) {
	for _, layout := range []string{event.NormalizedLayout, "2006-01-02"} {
		if t, err := time.Parse(layout, e.NormalizedDate); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func writeEvent(ics *strings.Builder, e *feed.Entry, occ occurrence, stamp time.Time) {
	ics.WriteString("BEGIN:VEVENT\r\n")

	uid := e.ID
	if occ.instance > 0 {
		uid = fmt.Sprintf("%s-%d", uid, occ.instance)
	}
	ics.WriteString(fmt.Sprintf("UID:%s@boulder-events\r\n", uid))
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", formatICSTime(stamp)))

	start, end, timed := eventTimes(e, occ.day)
	if timed {
		ics.WriteString(fmt.Sprintf("DTSTART:%s\r\n", formatICSTime(start)))
		ics.WriteString(fmt.Sprintf("DTEND:%s\r\n", formatICSTime(end)))
	} else {
		ics.WriteString(fmt.Sprintf("DTSTART;VALUE=DATE:%s\r\n", formatICSDate(start)))
		ics.WriteString(fmt.Sprintf("DTEND;VALUE=DATE:%s\r\n", formatICSDate(end)))
	}

	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(e.Title)))
	if desc := entryDescription(e); desc != "" {
		ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(desc)))
	}

	location := e.Venue
	if e.Location != "" {
		location = fmt.Sprintf("%s, %s", e.Venue, e.Location)
	}
	ics.WriteString(fmt.Sprintf("LOCATION:%s\r\n", escapeICS(location)))

	if e.Link != "" {
		ics.WriteString(fmt.Sprintf("URL:%s\r\n", e.Link))
	}

	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("SEQUENCE:0\r\n")
	ics.WriteString("TRANSP:OPAQUE\r\n")
	ics.WriteString("END:VEVENT\r\n")
}

// eventTimes resolves the occurrence's start and end. With a parseable time
// the event is timed; otherwise it becomes an all-day entry ending the next
// day, the DATE-value convention for single-day events.
func eventTimes(e *feed.Entry, day time.Time) (start, end time.Time, timed bool) {
	clocks, ok := parseClocks(e.Time)
	if !ok {
		return day, day.AddDate(0, 0, 1), false
	}

	start = time.Date(day.Year(), day.Month(), day.Day(), clocks[0].hour, clocks[0].minute, 0, 0, time.UTC)
	if len(clocks) > 1 {
		end = time.Date(day.Year(), day.Month(), day.Day(), clocks[1].hour, clocks[1].minute, 0, 0, time.UTC)
		// "10:00 PM - 1:00 AM" crosses midnight.
		if !end.After(start) {
			end = end.AddDate(0, 0, 1)
		}
	} else {
		end = start.Add(defaultDuration)
	}
	return start, end, true
}

type clockTime struct {
	hour   int
	minute int
}

var (
	clockRe    = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
	meridiemRe = regexp.MustCompile(`(?i)\b(am|pm)\b`)
)

// parseClocks extracts up to two clock times from a display string like
// "7:00 PM", "7:00 pm - 9:30 pm" or "5:30 - 8:00 PM". A single am/pm marker
// covers every clock in the string, which is how venue listings abbreviate
// ranges.
func parseClocks(text string) ([]clockTime, bool) {
	matches := clockRe.FindAllStringSubmatch(text, 2)
	if len(matches) == 0 {
		return nil, false
	}
	markers := meridiemRe.FindAllString(text, len(matches))

	clocks := make([]clockTime, 0, len(matches))
	for i, m := range matches {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour > 23 || minute > 59 {
			continue
		}

		marker := ""
		switch {
		case i < len(markers):
			marker = strings.ToLower(markers[i])
		case len(markers) > 0:
			marker = strings.ToLower(markers[len(markers)-1])
		}
		switch marker {
		case "pm":
			if hour != 12 {
				hour += 12
			}
		case "am":
			if hour == 12 {
				hour = 0
			}
		}
		clocks = append(clocks, clockTime{hour: hour, minute: minute})
	}

	if len(clocks) == 0 {
		return nil, false
	}
	return clocks, true
}

// weekdayNames is scanned in order so map iteration cannot reorder matches.
var weekdayNames = []struct {
	name string
	day  time.Weekday
}{
	{"sunday", time.Sunday},
	{"monday", time.Monday},
	{"tuesday", time.Tuesday},
	{"wednesday", time.Wednesday},
	{"thursday", time.Thursday},
	{"friday", time.Friday},
	{"saturday", time.Saturday},
}

// recurringWeekday finds the weekday named in recurring text like
// "Every Wednesday" or "Monday Nights".
func recurringWeekday(text string) (time.Weekday, bool) {
	lower := strings.ToLower(text)
	for _, wd := range weekdayNames {
		if strings.Contains(lower, wd.name) {
			return wd.day, true
		}
	}
	return time.Sunday, false
}

func entryDescription(e *feed.Entry) string {
	var parts []string
	if e.Description != "" {
		parts = append(parts, e.Description)
	}
	if e.AdditionalInfo != "" {
		parts = append(parts, e.AdditionalInfo)
	}
	if e.AgeRestriction != "" {
		parts = append(parts, "Ages: "+e.AgeRestriction)
	}
	if e.Link != "" {
		parts = append(parts, "More info: "+e.Link)
	}
	return strings.Join(parts, "\n\n")
}

// formatICSTime formats a time.Time as an iCalendar datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// formatICSDate formats the date portion for all-day VALUE=DATE fields
func formatICSDate(t time.Time) string {
	return t.Format("20060102")
}

// escapeICS escapes special characters for iCalendar format
func escapeICS(s string) string {
	// Replace special characters according to RFC 5545
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
