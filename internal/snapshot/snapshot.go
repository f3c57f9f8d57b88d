// Package snapshot captures PNG images of rendered graph HTML using headless
// Chrome.
package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// renderGracePeriod gives the echarts canvas time to draw before capture.
const renderGracePeriod = time.Second

// CapturePNG opens the rendered HTML file in headless Chrome and writes a PNG
// screenshot of it. width/height set the emulated viewport and should match
// the canvas the layout was computed for.
func CapturePNG(ctx context.Context, htmlPath, outPath string, width, height int, timeout time.Duration) error {
	abs, err := filepath.Abs(htmlPath)
	if err != nil {
		return err
	}

	// Ensure any long running Chrome tasks are cancelled when we exit.
	timeoutCtx, timeoutCancel := context.WithTimeout(ctx, timeout)
	defer timeoutCancel()

	browserCtx, browserCancel := chromedp.NewContext(timeoutCtx)
	defer browserCancel()

	var buf []byte
	err = chromedp.Run(browserCtx,
		chromedp.EmulateViewport(int64(width), int64(height)),
		chromedp.Navigate("file://"+abs),
		chromedp.Sleep(renderGracePeriod),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, err = page.CaptureScreenshot().
				WithFormat(page.CaptureScreenshotFormatPng).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return err
	}

	return os.WriteFile(outPath, buf, 0o644)
}
