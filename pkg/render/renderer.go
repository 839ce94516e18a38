// Package render loads pages in headless Chrome and captures a geometry-aware
// snapshot of the rendered document.
package render

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/shelbytessier/nativepath-promotions-sub001/internal/logger"
	"github.com/shelbytessier/nativepath-promotions-sub001/pkg/dom"
)

// BodyTextLimit caps Page.BodyText, in characters.
const BodyTextLimit = 500

var (
	// ErrLaunch means the browser could not be started.
	ErrLaunch = errors.New("browser launch failed")
	// ErrNavigation means the page did not load or never reached network idle.
	ErrNavigation = errors.New("navigation failed")
	// ErrEvaluation means the in-page snapshot script failed.
	ErrEvaluation = errors.New("page evaluation failed")
)

// Page is a rendered page.
type Page struct {
	URL string
	// BodyText is the leading portion of the page's visible text.
	BodyText string
	Document dom.Document
}

// Config holds renderer settings.
type Config struct {
	Timeout        time.Duration
	ChromePath     string
	UserAgent      string
	ViewportWidth  int
	ViewportHeight int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Timeout:        30 * time.Second,
		ViewportWidth:  1920,
		ViewportHeight: 1080,
	}
}

// Renderer drives a fresh headless browser for every Render call.
type Renderer struct {
	config Config
}

// New creates a renderer; zero fields fall back to DefaultConfig.
func New(cfg Config) *Renderer {
	def := DefaultConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.ViewportWidth <= 0 {
		cfg.ViewportWidth = def.ViewportWidth
	}
	if cfg.ViewportHeight <= 0 {
		cfg.ViewportHeight = def.ViewportHeight
	}
	return &Renderer{config: cfg}
}

func (r *Renderer) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(r.config.ViewportWidth, r.config.ViewportHeight),
	)

	chromePath := r.config.ChromePath
	if chromePath == "" {
		chromePath = FindChromePath()
	}
	if chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	if r.config.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(r.config.UserAgent))
	}
	return opts
}

// Render loads targetURL, waits for network idle and returns a snapshot of
// the rendered document. The browser is torn down before Render returns.
func (r *Renderer) Render(ctx context.Context, targetURL string) (*Page, error) {
	log := logger.FromContext(ctx)
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, r.allocatorOptions()...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			log.Debug("chromedp", "msg", fmt.Sprintf(format, args...))
		}),
	)
	defer cancelBrowser()

	log.Debug("launching browser", "url", targetURL, "timeout", r.config.Timeout)
	if err := chromedp.Run(browserCtx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLaunch, err)
	}

	idle := make(chan cdp.LoaderID, 64)
	chromedp.ListenTarget(browserCtx, func(ev any) {
		if e, ok := ev.(*page.EventLifecycleEvent); ok && e.Name == "networkIdle" {
			select {
			case idle <- e.LoaderID:
			default:
			}
		}
	})

	err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(int64(r.config.ViewportWidth), int64(r.config.ViewportHeight)),
		navigateAndIdle(targetURL, idle),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNavigation, targetURL, err)
	}

	var snap snapshot
	if err := chromedp.Run(browserCtx, chromedp.Evaluate(snapshotScript, &snap)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEvaluation, err)
	}

	p, err := newPage(targetURL, snap)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEvaluation, err)
	}

	log.Debug("page rendered",
		"url", targetURL,
		"elements", len(snap.Rects),
		"scroll_height", snap.ScrollHeight,
		"duration", time.Since(start))
	return p, nil
}

// navigateAndIdle navigates the main frame and blocks until the new document
// reports network idle.
func navigateAndIdle(targetURL string, idle <-chan cdp.LoaderID) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		if err := page.SetLifecycleEventsEnabled(true).Do(ctx); err != nil {
			return err
		}
		_, loaderID, errorText, _, err := page.Navigate(targetURL).Do(ctx)
		if err != nil {
			return err
		}
		if errorText != "" {
			return errors.New(errorText)
		}
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case id := <-idle:
				if id == loaderID {
					return nil
				}
			}
		}
	})
}
