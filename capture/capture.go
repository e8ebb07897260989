// Package capture measures a live page in headless Chrome and freezes its
// geometry into a scrollfx.Snapshot for offline replay.
package capture

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
	"github.com/phanxgames/scrollfx"
)

// Options controls a capture run.
type Options struct {
	URL    string
	Width  int64
	Height int64
	// ReducedMotion emulates prefers-reduced-motion: reduce.
	ReducedMotion bool
	// Settle is how long to wait after the body is ready, so images and web
	// fonts can finish moving sections.
	Settle time.Duration
	// Screenshot also captures a PNG of the viewport.
	Screenshot bool
	Timeout    time.Duration
}

// Result is what a capture produced.
type Result struct {
	Snapshot   *scrollfx.Snapshot
	Screenshot []byte // PNG, only when Options.Screenshot is set
}

func (o *Options) validate() error {
	if o.URL == "" {
		return fmt.Errorf("capture: empty URL")
	}
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("capture: viewport %dx%d must be positive", o.Width, o.Height)
	}
	return nil
}

// Capture launches a headless browser, loads opts.URL at the requested
// viewport and measures it.
func Capture(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	script, err := measureScript()
	if err != nil {
		return nil, err
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Headless,
		chromedp.WindowSize(int(opts.Width), int(opts.Height)),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	taskCtx, cancelTask := chromedp.NewContext(allocCtx)
	defer cancelTask()
	if opts.Timeout > 0 {
		var cancelTimeout context.CancelFunc
		taskCtx, cancelTimeout = context.WithTimeout(taskCtx, opts.Timeout)
		defer cancelTimeout()
	}

	media := "no-preference"
	if opts.ReducedMotion {
		media = "reduce"
	}
	var raw []byte
	var png []byte
	tasks := chromedp.Tasks{
		chromedp.EmulateViewport(opts.Width, opts.Height),
		emulation.SetEmulatedMedia().WithFeatures([]*emulation.MediaFeature{
			{Name: "prefers-reduced-motion", Value: media},
		}),
		chromedp.Navigate(opts.URL),
		chromedp.WaitReady("body", chromedp.ByQuery),
	}
	if opts.Settle > 0 {
		tasks = append(tasks, chromedp.Sleep(opts.Settle))
	}
	tasks = append(tasks, chromedp.Evaluate(script, &raw))
	if opts.Screenshot {
		tasks = append(tasks, chromedp.CaptureScreenshot(&png))
	}

	log.Printf("[capture] loading %s at %dx%d", opts.URL, opts.Width, opts.Height)
	if err := chromedp.Run(taskCtx, tasks); err != nil {
		return nil, fmt.Errorf("capture %s: %w", opts.URL, err)
	}

	snap, err := parseMeasurement(opts.URL, raw)
	if err != nil {
		return nil, fmt.Errorf("capture %s: %w", opts.URL, err)
	}
	log.Printf("[capture] measured %d elements, %d cards, %d nav links",
		len(snap.Elements), len(snap.Cards), len(snap.NavLinks))
	return &Result{Snapshot: snap, Screenshot: png}, nil
}
