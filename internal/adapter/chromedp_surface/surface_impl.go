package chromedp_surface

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/user/video-generator-service/internal/entity"
	"github.com/user/video-generator-service/internal/repository"
	"github.com/user/video-generator-service/pkg/logger"
)

// Timings are the fixed waits applied while stabilizing a page.
type Timings struct {
	SettleDelay   time.Duration
	EmbedTimeout  time.Duration
	EmbedDelay    time.Duration
	MutationDelay time.Duration
}

// DefaultTimings are the waits used by the production service.
var DefaultTimings = Timings{
	SettleDelay:   3 * time.Second,
	EmbedTimeout:  10 * time.Second,
	EmbedDelay:    2 * time.Second,
	MutationDelay: time.Second,
}

type ChromedpLauncher struct {
	execPath string
	timings  Timings
}

// NewChromedpLauncher creates a launcher that starts one headless Chrome per surface.
// An empty execPath lets chromedp locate the browser.
func NewChromedpLauncher(execPath string, timings Timings) *ChromedpLauncher {
	return &ChromedpLauncher{execPath: execPath, timings: timings}
}

// Open launches a dedicated browser with a 1920x1080 viewport.
func (l *ChromedpLauncher) Open(ctx context.Context) (repository.Surface, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("hide-scrollbars", true),
		chromedp.WindowSize(entity.ViewportWidth, entity.ViewportHeight),
	)
	if l.execPath != "" {
		opts = append(opts, chromedp.ExecPath(l.execPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(logger.Printf(slog.LevelDebug)),
		chromedp.WithErrorf(logger.Printf(slog.LevelWarn)),
	)

	s := &surface{
		ctx:     browserCtx,
		timings: l.timings,
		cancel: func() {
			browserCancel()
			allocCancel()
		},
	}

	// The first Run starts the browser process.
	if err := chromedp.Run(browserCtx, chromedp.EmulateViewport(entity.ViewportWidth, entity.ViewportHeight)); err != nil {
		s.Close()
		return nil, fmt.Errorf("%w: launch browser: %v", repository.ErrSurfaceLoad, err)
	}
	slog.Info("Browser launched")
	return s, nil
}

type surface struct {
	ctx       context.Context
	timings   Timings
	cancel    func()
	closeOnce sync.Once
}

// Stabilize loads html and applies the waits and DOM rewrites that make
// every scroll offset render the same way.
func (s *surface) Stabilize(html string) error {
	if err := chromedp.Run(s.ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
	); err != nil {
		return fmt.Errorf("%w: %v", repository.ErrSurfaceLoad, err)
	}
	slog.Info("Loading website content")

	var fixedCount, revealedCount int
	err := chromedp.Run(s.ctx,
		bestEffortWait("document load", documentReadyJS, s.timings.EmbedTimeout),
		sleep(s.timings.SettleDelay),
		bestEffortWait("map embeds", mapEmbedsReadyJS, s.timings.EmbedTimeout),
		sleep(s.timings.EmbedDelay),
		chromedp.Evaluate(neutralizeJS, &fixedCount),
		sleep(s.timings.MutationDelay),
		chromedp.Evaluate(revealJS, &revealedCount),
		sleep(s.timings.MutationDelay),
	)
	if err != nil {
		return fmt.Errorf("%w: stabilize: %v", repository.ErrSurfaceLoad, err)
	}

	slog.Info("Content loaded and animations disabled",
		"fixed_elements", fixedCount,
		"revealed_elements", revealedCount,
	)
	return nil
}

// Probe reads the document geometry.
func (s *surface) Probe() (entity.ProbeReport, error) {
	var report entity.ProbeReport
	if err := chromedp.Run(s.ctx, chromedp.Evaluate(probeJS, &report)); err != nil {
		return entity.ProbeReport{}, fmt.Errorf("%w: probe geometry: %v", repository.ErrSurfaceLoad, err)
	}
	return report, nil
}

// CaptureFullPage takes the single PNG screenshot every frame is cropped from.
func (s *surface) CaptureFullPage() ([]byte, error) {
	var buf []byte
	// Quality 100 selects PNG.
	if err := chromedp.Run(s.ctx, chromedp.FullScreenshot(&buf, 100)); err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrCaptureFailed, err)
	}
	return buf, nil
}

// Close shuts the browser down.
func (s *surface) Close() error {
	s.closeOnce.Do(func() {
		if err := chromedp.Cancel(s.ctx); err != nil && !errors.Is(err, context.Canceled) {
			slog.Debug("Browser did not close cleanly", "error", err)
		}
		s.cancel()
	})
	return nil
}

// bestEffortWait polls expr until it is truthy or timeout elapses. An expired
// deadline or a failing predicate is logged and absorbed; only cancellation of
// the surface itself is returned.
func bestEffortWait(name, expr string, timeout time.Duration) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		if timeout <= 0 {
			return nil
		}
		var ready bool
		err := chromedp.Poll(expr, &ready,
			chromedp.WithPollingTimeout(timeout),
			chromedp.WithPollingInterval(100*time.Millisecond),
		).Do(ctx)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		slog.Warn("Wait timed out, continuing anyway",
			"wait", name,
			"timeout_ms", timeout.Milliseconds(),
			"deadline_exceeded", errors.Is(err, chromedp.ErrPollingTimeout),
			"error", err,
		)
		return nil
	})
}

func sleep(d time.Duration) chromedp.Action {
	if d <= 0 {
		return chromedp.ActionFunc(func(context.Context) error { return nil })
	}
	return chromedp.Sleep(d)
}
