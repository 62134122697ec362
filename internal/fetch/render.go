package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/afranz/boulder-events/internal/logger"
)

// RenderOptions control how a page is rendered before its DOM is captured.
type RenderOptions struct {
	WaitSelector   string        // wait until this selector is visible
	Settle         time.Duration // fixed wait after navigation for JS to run
	Scrolls        int           // scroll-to-bottom repetitions for lazy content
	ScrollPause    time.Duration // wait between scrolls (default 2s)
	ClickSelectors []string      // load-more button candidates, first visible wins
	Clicks         int           // how many times to click load-more
	ClickPause     time.Duration // wait after each click (default 3s)
}

// Renderer loads a JS-driven page and returns its rendered HTML. Tests use a
// stub returning fixture HTML.
type Renderer interface {
	Render(ctx context.Context, url string, opts RenderOptions) (string, error)
}

// ChromeRenderer drives headless Chrome through chromedp.
type ChromeRenderer struct {
	timeout time.Duration
}

// DefaultRenderTimeout bounds one page render, clicks and scrolls included.
const DefaultRenderTimeout = 60 * time.Second

// NewChromeRenderer creates a renderer. A zero timeout means the default.
func NewChromeRenderer(timeout time.Duration) *ChromeRenderer {
	if timeout == 0 {
		timeout = DefaultRenderTimeout
	}
	return &ChromeRenderer{timeout: timeout}
}

// newContext creates a fresh browser context (one browser, one tab per call).
func (r *ChromeRenderer) newContext(parent context.Context) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.UserAgent(UserAgent),
		chromedp.WindowSize(1920, 1080),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, opts...)
	ctx, cancelCtx := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	ctx, cancelTimeout := context.WithTimeout(ctx, r.timeout)

	cancel := func() {
		cancelTimeout()
		cancelCtx()
		cancelAlloc()
	}
	return ctx, cancel
}

const scrollJS = `window.scrollTo(0, document.body.scrollHeight)`

// clickFirstJS returns a JS expression that clicks the first visible element
// matching any of the selectors and reports whether it clicked.
func clickFirstJS(selectors []string) string {
	list, _ := json.Marshal(selectors)
	return fmt.Sprintf(`(function() {
		var selectors = %s;
		for (var i = 0; i < selectors.length; i++) {
			var el = document.querySelector(selectors[i]);
			if (el && el.offsetParent !== null) {
				el.click();
				return true;
			}
		}
		return false;
	})()`, list)
}

// Render navigates to a URL in headless Chrome, waits for content, performs
// the configured scrolls and load-more clicks, and returns the final HTML.
func (r *ChromeRenderer) Render(ctx context.Context, url string, opts RenderOptions) (string, error) {
	cctx, cancel := r.newContext(ctx)
	defer cancel()

	if err := chromedp.Run(cctx, chromedp.Navigate(url)); err != nil {
		return "", fmt.Errorf("navigating to %s: %w", url, err)
	}

	if opts.WaitSelector != "" {
		waitCtx, waitCancel := context.WithTimeout(cctx, 10*time.Second)
		err := chromedp.Run(waitCtx, chromedp.WaitVisible(opts.WaitSelector, chromedp.ByQuery))
		waitCancel()
		if err != nil {
			// Selector never appeared; give the page a moment and parse
			// whatever rendered.
			logger.Debug("Wait selector not found", logger.Fields{
				"url":      url,
				"selector": opts.WaitSelector,
			})
			_ = chromedp.Run(cctx, chromedp.Sleep(3*time.Second))
		}
	}
	if opts.Settle > 0 {
		if err := chromedp.Run(cctx, chromedp.Sleep(opts.Settle)); err != nil {
			return "", fmt.Errorf("waiting for %s: %w", url, err)
		}
	}

	scrollPause := opts.ScrollPause
	if scrollPause == 0 {
		scrollPause = 2 * time.Second
	}
	for i := 0; i < opts.Scrolls; i++ {
		err := chromedp.Run(cctx,
			chromedp.Evaluate(scrollJS, nil),
			chromedp.Sleep(scrollPause),
		)
		if err != nil {
			return "", fmt.Errorf("scrolling %s: %w", url, err)
		}
	}

	clickPause := opts.ClickPause
	if clickPause == 0 {
		clickPause = 3 * time.Second
	}
	for i := 0; i < opts.Clicks; i++ {
		var clicked bool
		err := chromedp.Run(cctx,
			chromedp.Evaluate(scrollJS, nil),
			chromedp.Sleep(2*time.Second),
			chromedp.Evaluate(clickFirstJS(opts.ClickSelectors), &clicked),
		)
		if err != nil {
			return "", fmt.Errorf("clicking load more on %s: %w", url, err)
		}
		if !clicked {
			// No button left; everything is loaded.
			break
		}
		if err := chromedp.Run(cctx, chromedp.Sleep(clickPause)); err != nil {
			return "", fmt.Errorf("waiting after click on %s: %w", url, err)
		}
	}

	var html string
	if err := chromedp.Run(cctx, chromedp.OuterHTML("html", &html)); err != nil {
		return "", fmt.Errorf("capturing html of %s: %w", url, err)
	}

	logger.IncrCounter("fetch.renders")
	return html, nil
}
