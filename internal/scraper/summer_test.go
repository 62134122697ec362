package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const summerSheet = `Event,Venue,City,Day,Date,Time,Info,url
Summer Kickoff,Bands on the Bricks,Boulder,Wednesday,6/18/2025,5:30 - 8:00 PM,Free outdoor concert on Pearl Street,https://boulderdowntown.com/bands
Front Range Ramblers,Niwot Summer Concerts,Niwot,Thursday,7/3/2025,6:00 PM,,
,Bands on the Bricks,Boulder,Wednesday,6/25/2025,5:30 PM,,
Street Dance,,Louisville,Friday,7/11/2025,6:30 PM,,
Harvest Fest,Rock & Rails,Niwot,Saturday,TBD,4 PM,,
`

func TestParseSummerCSV(t *testing.T) {
	events, err := parseSummerCSV([]byte(summerSheet))
	if err != nil {
		t.Fatalf("parseSummerCSV() error: %v", err)
	}
	// Rows without an Event or Venue are skipped.
	if len(events) != 3 {
		t.Fatalf("parseSummerCSV() returned %d events, want 3", len(events))
	}

	kickoff := events[0]
	if kickoff.Title != "Summer Kickoff" || kickoff.Venue != "Bands on the Bricks" {
		t.Errorf("title/venue = %q/%q", kickoff.Title, kickoff.Venue)
	}
	if kickoff.Location != "Boulder" {
		t.Errorf("location = %q", kickoff.Location)
	}
	if kickoff.Date != "June 18, 2025" {
		t.Errorf("date = %q, want June 18, 2025", kickoff.Date)
	}
	if kickoff.Time != "5:30 - 8:00 PM" {
		t.Errorf("time = %q", kickoff.Time)
	}
	if kickoff.Image != "images/bandsonthebricks.jpg" {
		t.Errorf("image = %q", kickoff.Image)
	}
	if kickoff.URL != "https://boulderdowntown.com/bands" {
		t.Errorf("url = %q", kickoff.URL)
	}
	if kickoff.Info != "Free outdoor concert on Pearl Street" {
		t.Errorf("info = %q", kickoff.Info)
	}
	if kickoff.Day != "Wednesday" {
		t.Errorf("day = %q", kickoff.Day)
	}
	wantTags := []string{"Live Music", "All Ages", "Free"}
	if len(kickoff.Tags) != len(wantTags) {
		t.Fatalf("tags = %v", kickoff.Tags)
	}
	for i, tag := range wantTags {
		if kickoff.Tags[i] != tag {
			t.Errorf("tags[%d] = %q, want %q", i, kickoff.Tags[i], tag)
		}
	}

	ramblers := events[1]
	if ramblers.Date != "July 03, 2025" {
		t.Errorf("date = %q, want the zero-padded July 03, 2025", ramblers.Date)
	}
	if ramblers.Image != "images/default.jpg" {
		t.Errorf("image = %q, want the default for unmapped series", ramblers.Image)
	}

	harvest := events[2]
	if harvest.Date != "TBD" {
		t.Errorf("date = %q, unparseable sheet dates pass through", harvest.Date)
	}
	if harvest.Image != "images/rocknrails.jpg" {
		t.Errorf("image = %q", harvest.Image)
	}
}

func TestParseSummerCSV_MissingColumn(t *testing.T) {
	sheet := "Event,Venue,City,Time\nSummer Kickoff,Bands on the Bricks,Boulder,5:30 PM\n"
	_, err := parseSummerCSV([]byte(sheet))
	if err == nil {
		t.Fatal("parseSummerCSV() succeeded without a Date column")
	}
	if !strings.Contains(err.Error(), `"Date"`) {
		t.Errorf("error = %q, want the missing column named", err)
	}
}

func TestSummerSeriesScrape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte(summerSheet))
	}))
	defer server.Close()

	s := NewSummerSeries(newTestClient(), server.URL)
	events, err := s.Scrape(context.Background())
	if err != nil {
		t.Fatalf("Scrape() error: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("Scrape() returned %d events, want 3", len(events))
	}
}

func TestNewSummerSeries_DefaultURL(t *testing.T) {
	s := NewSummerSeries(nil, "")
	if s.url != SummerSheetURL {
		t.Errorf("url = %q, want the default sheet export", s.url)
	}
}

func TestSummerDate(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"6/18/2025", "June 18, 2025"},
		{"7/3/2025", "July 03, 2025"},
		{"12/25/2025", "December 25, 2025"},
		{"TBD", "TBD"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := summerDate(tt.raw); got != tt.want {
			t.Errorf("summerDate(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
