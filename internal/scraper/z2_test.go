package scraper

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/afranz/boulder-events/internal/images"
)

const z2Fixture = `
<html><body>
	<div class="eventItem">
		<div class="location">Boulder Theater</div>
		<h3 class="title"><a href="/events/detail/big-something">Big Something</a></h3>
		<span class="m-date__singleDate">
			<span class="m-date__weekday">Wed, </span>
			<span class="m-date__month">January</span>
			<span class="m-date__day"> 15</span>
			<span class="m-date__year">, 2026</span>
		</span>
		<div class="buttons"><a class="tickets" href="https://tickets.example.com/big-something">Tickets</a></div>
	</div>
	<div class="eventItem">
		<div class="location">Fox Theatre</div>
		<h3 class="title"><a href="https://www.z2ent.com/events/detail/winter-run">Winter Run</a></h3>
		<span class="m-date__rangeFirst">
			<span class="m-date__month">Feb</span>
			<span class="m-date__day">20</span>
		</span>
		<span class="m-date__rangeLast">
			<span class="m-date__day">22</span>
			<span class="m-date__year">2026</span>
		</span>
	</div>
	<div class="eventItem">
		<div class="location">Aggie Theatre</div>
		<h3 class="title"><a href="/events/detail/fort-collins-show">Fort Collins Show</a></h3>
	</div>
	<div class="eventItem">
		<div class="location">Boulder Theater</div>
		<h3 class="title"><a href="/events/detail/big-something">Big Something</a></h3>
		<span class="m-date__singleDate">
			<span class="m-date__month">January</span>
			<span class="m-date__day">15</span>
			<span class="m-date__year">2026</span>
		</span>
	</div>
</body></html>`

func newTestZ2(t *testing.T, html string) *Z2 {
	t.Helper()
	return NewZ2(&stubRenderer{html: html}, images.NewStore(t.TempDir(), nil))
}

func TestZ2Scrape(t *testing.T) {
	s := newTestZ2(t, z2Fixture)

	events, err := s.Scrape(context.Background())
	if err != nil {
		t.Fatalf("Scrape() error: %v", err)
	}
	// Aggie Theatre is excluded and the repeated Boulder Theater card dedupes.
	if len(events) != 2 {
		t.Fatalf("Scrape() returned %d events, want 2", len(events))
	}

	big := events[0]
	if big.Title != "Big Something" {
		t.Errorf("title = %q", big.Title)
	}
	if big.Venue != "Boulder Theater" || big.Location != "Boulder" {
		t.Errorf("venue/location = %q/%q", big.Venue, big.Location)
	}
	if big.Date != "January 15, 2026" {
		t.Errorf("date = %q, want January 15, 2026", big.Date)
	}
	if big.NormalizedDate != "2026-01-15" {
		t.Errorf("normalized date = %q, want 2026-01-15", big.NormalizedDate)
	}
	if big.URL != "https://www.z2ent.com/events/detail/big-something" {
		t.Errorf("url = %q", big.URL)
	}
	if big.TicketLink != "https://tickets.example.com/big-something" {
		t.Errorf("ticket link = %q", big.TicketLink)
	}
	if big.Image != "images/bouldertheater.jpg" {
		t.Errorf("image = %q, want venue default without card artwork", big.Image)
	}
	if big.Time != "" {
		t.Errorf("time = %q, Z2 cards carry no times", big.Time)
	}

	run := events[1]
	if run.Venue != "Fox Theatre" {
		t.Errorf("venue = %q", run.Venue)
	}
	if run.Date != "Feb 20, 2026" {
		t.Errorf("range date = %q, want the start day Feb 20, 2026", run.Date)
	}
	if run.NormalizedDate != "2026-02-20" {
		t.Errorf("normalized date = %q, want 2026-02-20", run.NormalizedDate)
	}
	if run.Image != "images/foxtheatre.jpg" {
		t.Errorf("image = %q", run.Image)
	}
}

type fakeCapturer struct {
	data []byte
	err  error
}

func (c *fakeCapturer) CaptureImage(_ context.Context, _ string) ([]byte, error) {
	return c.data, c.err
}

func TestZ2Parse_DownloadsArtwork(t *testing.T) {
	html := `
	<html><body>
		<div class="eventItem">
			<div class="location">Boulder Theater</div>
			<h3 class="title"><a href="/events/detail/poster-show">Poster Show</a></h3>
			<span class="m-date__singleDate">
				<span class="m-date__month">March</span>
				<span class="m-date__day">3</span>
				<span class="m-date__year">2026</span>
			</span>
			<img src="/assets/img/poster-show.jpg">
		</div>
	</body></html>`

	dir := t.TempDir()
	store := images.NewStore(dir, &fakeCapturer{data: []byte("jpeg-bytes")})
	s := NewZ2(&stubRenderer{html: html}, store)

	events, err := s.Scrape(context.Background())
	if err != nil {
		t.Fatalf("Scrape() error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("Scrape() returned %d events, want 1", len(events))
	}

	e := events[0]
	if !strings.HasPrefix(e.Image, "images/z2/poster-show-") {
		t.Fatalf("image = %q, want a downloaded path under images/z2", e.Image)
	}
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(e.Image)))
	if err != nil {
		t.Fatalf("reading downloaded image: %v", err)
	}
	if string(data) != "jpeg-bytes" {
		t.Errorf("downloaded image content = %q", data)
	}
}

func TestZ2Parse_DownloadFailureFallsBack(t *testing.T) {
	html := `
	<html><body>
		<div class="eventItem">
			<div class="location">Fox Theatre</div>
			<h3 class="title"><a href="/events/detail/busted">Busted Artwork</a></h3>
			<span class="m-date__singleDate">
				<span class="m-date__month">March</span>
				<span class="m-date__day">9</span>
				<span class="m-date__year">2026</span>
			</span>
			<img src="https://cdn.example.com/busted.jpg">
		</div>
	</body></html>`

	store := images.NewStore(t.TempDir(), &fakeCapturer{err: context.DeadlineExceeded})
	s := NewZ2(&stubRenderer{html: html}, store)

	events, err := s.Scrape(context.Background())
	if err != nil {
		t.Fatalf("Scrape() error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("Scrape() returned %d events, want 1", len(events))
	}
	if events[0].Image != "images/foxtheatre.jpg" {
		t.Errorf("image = %q, want the venue default after a failed download", events[0].Image)
	}
}

func TestZ2Parse_RejectsUnparseableDates(t *testing.T) {
	html := `
	<html><body>
		<div class="eventItem">
			<div class="location">Boulder Theater</div>
			<h3 class="title"><a href="/events/detail/tba">Mystery Show</a></h3>
			<span class="m-date__singleDate">
				<span class="m-date__month">Soon</span>
				<span class="m-date__day">?</span>
				<span class="m-date__year">2026</span>
			</span>
		</div>
	</body></html>`

	s := newTestZ2(t, html)
	events, err := s.Scrape(context.Background())
	if err != nil {
		t.Fatalf("Scrape() error: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("Scrape() returned %d events, want 0 for unparseable dates", len(events))
	}
}
