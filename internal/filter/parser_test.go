package filter

import (
	"testing"
	"time"
)

func TestParseDateRange(t *testing.T) {
	// Frozen at Nov 1 2025: months before November infer 2026.
	freezeClock(t)

	date := func(y int, m time.Month, d, hh, mm, ss int) time.Time {
		return time.Date(y, m, d, hh, mm, ss, 0, time.UTC)
	}

	tests := []struct {
		name     string
		input    string
		wantErr  bool
		wantFrom time.Time
		wantTo   time.Time
	}{
		{
			name:     "Mar 1-15",
			input:    "Mar 1-15",
			wantFrom: date(2026, time.March, 1, 0, 0, 0),
			wantTo:   date(2026, time.March, 15, 23, 59, 59),
		},
		{
			name:     "March 1-15",
			input:    "March 1-15",
			wantFrom: date(2026, time.March, 1, 0, 0, 0),
			wantTo:   date(2026, time.March, 15, 23, 59, 59),
		},
		{
			name:     "current month keeps current year",
			input:    "Nov 7-9",
			wantFrom: date(2025, time.November, 7, 0, 0, 0),
			wantTo:   date(2025, time.November, 9, 23, 59, 59),
		},
		{
			name:     "Mar 1 - Apr 15",
			input:    "Mar 1 - Apr 15",
			wantFrom: date(2026, time.March, 1, 0, 0, 0),
			wantTo:   date(2026, time.April, 15, 23, 59, 59),
		},
		{
			name:     "Dec 25 - Jan 5 crosses the year",
			input:    "Dec 25 - Jan 5",
			wantFrom: date(2025, time.December, 25, 0, 0, 0),
			wantTo:   date(2026, time.January, 5, 23, 59, 59),
		},
		{
			name:     "entire month",
			input:    "March",
			wantFrom: date(2026, time.March, 1, 0, 0, 0),
			wantTo:   date(2026, time.March, 31, 23, 59, 59),
		},
		{
			name:     "entire current month",
			input:    "November",
			wantFrom: date(2025, time.November, 1, 0, 0, 0),
			wantTo:   date(2025, time.November, 30, 23, 59, 59),
		},
		{
			name:     "February length follows the inferred year",
			input:    "Feb",
			wantFrom: date(2026, time.February, 1, 0, 0, 0),
			wantTo:   date(2026, time.February, 28, 23, 59, 59),
		},
		{
			name:     "case insensitive",
			input:    "dECEMBER 5-7",
			wantFrom: date(2025, time.December, 5, 0, 0, 0),
			wantTo:   date(2025, time.December, 7, 23, 59, 59),
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: true,
		},
		{
			name:    "start after end",
			input:   "Mar 15-1",
			wantErr: true,
		},
		{
			name:    "day out of range",
			input:   "Mar 32-40",
			wantErr: true,
		},
		{
			name:    "unrecognized format",
			input:   "sometime soon",
			wantErr: true,
		},
		{
			name:    "numeric only",
			input:   "12/25",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to, err := ParseDateRange(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDateRange(%q) succeeded, want error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDateRange(%q) error: %v", tt.input, err)
			}
			if !from.Equal(tt.wantFrom) {
				t.Errorf("from = %v, want %v", from, tt.wantFrom)
			}
			if !to.Equal(tt.wantTo) {
				t.Errorf("to = %v, want %v", to, tt.wantTo)
			}
		})
	}
}

func TestParseMonth(t *testing.T) {
	tests := []struct {
		name string
		want time.Month
	}{
		{"jan", time.January},
		{"January", time.January},
		{"SEP", time.September},
		{"december", time.December},
		{"smarch", 0},
		{"", 0},
	}

	for _, tt := range tests {
		if got := parseMonth(tt.name); got != tt.want {
			t.Errorf("parseMonth(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
