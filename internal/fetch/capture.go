package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// CaptureImage loads an image URL in the browser and screenshots the img
// element. Some venue CDNs 406 direct downloads but serve browsers fine.
// The returned bytes are PNG regardless of the source format.
func (r *ChromeRenderer) CaptureImage(ctx context.Context, url string) ([]byte, error) {
	cctx, cancel := r.newContext(ctx)
	defer cancel()

	var buf []byte
	err := chromedp.Run(cctx,
		chromedp.Navigate(url),
		chromedp.Sleep(1*time.Second),
		chromedp.Screenshot("img", &buf, chromedp.NodeVisible, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("capturing image %s: %w", url, err)
	}
	return buf, nil
}
