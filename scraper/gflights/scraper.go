package gflights

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"flight-agent/config"
	"flight-agent/models"
	"flight-agent/utils"

	"github.com/chromedp/chromedp"
)

// Scraper drives a headless browser against the flight search page and
// enumerates result listings. One browser session is acquired per Search
// call and released on every exit path.
type Scraper struct {
	cfg         *config.Config
	logger      *utils.Logger
	rateLimiter *utils.RateLimiter
}

// NewScraper creates a new Scraper
func NewScraper(cfg *config.Config, logger *utils.Logger) *Scraper {
	return &Scraper{
		cfg:         cfg,
		logger:      logger,
		rateLimiter: utils.NewRateLimiter(cfg.RateLimitDelay),
	}
}

// newContext creates a fresh chromedp context (one browser, one tab)
func (s *Scraper) newContext(parent context.Context) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", s.cfg.Headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("log-level", "3"), // suppress Chrome logs
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
		chromedp.WindowSize(1280, 900),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, opts...)
	ctx, cancelCtx := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	cancel := func() {
		cancelCtx()
		cancelAlloc()
	}
	return ctx, cancel
}

// Search renders the results page for a trip and returns the raw listing
// texts in document order, deduplicated and truncated to MaxListings.
// An empty slice with a nil error means the page rendered but held no
// recognizable listings.
func (s *Scraper) Search(ctx context.Context, trip models.TripRequest) ([]models.RawListing, error) {
	target := SearchURL(s.cfg.FlightsURL, trip)
	s.logger.Info("Navigating to: %s", target)

	bctx, cancel := s.newContext(ctx)
	defer cancel()

	// Start the browser before navigating so an unusable Chrome binary
	// surfaces as a launch failure, not a navigation one.
	if err := chromedp.Run(bctx); err != nil {
		return nil, &models.RenderError{Kind: models.RenderLaunch, Err: err}
	}

	var listings []models.RawListing
	err := utils.RetryWithBackoff(s.cfg.MaxRetries, func() error {
		s.rateLimiter.Wait()
		if err := s.render(bctx, target); err != nil {
			return err
		}
		found, err := s.scanListings(bctx)
		if err != nil {
			return err
		}
		listings = found
		return nil
	}, s.logger)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &models.RenderError{Kind: models.RenderTimeout, Err: err}
		}
		return nil, &models.RenderError{Kind: models.RenderNavigation, Err: err}
	}

	s.logger.Info("Scan complete: %d listings", len(listings))
	return listings, nil
}

// render navigates to the target and waits the settle interval so the
// client-side app can populate results. There is no network-idle signal
// that correlates with content readiness on this page; a fixed settle
// wait is the reliable option.
func (s *Scraper) render(ctx context.Context, target string) error {
	navCtx, cancel := context.WithTimeout(ctx, s.cfg.NavTimeout)
	defer cancel()

	err := chromedp.Run(navCtx,
		chromedp.Navigate(target),
		chromedp.Sleep(s.cfg.SettleDelay),
	)
	if err != nil {
		return fmt.Errorf("navigate failed: %w", err)
	}

	// Serialized DOM, kept for diagnostics only; scanning runs against
	// the live page.
	var html string
	if err := chromedp.Run(navCtx, chromedp.OuterHTML("html", &html)); err == nil {
		s.logger.Debug("Page content snippet: %.300s", html)
	}
	return nil
}

// scanListings tries each locator strategy in order and keeps the first
// selector that matches anything. A single enumeration per render.
func (s *Scraper) scanListings(ctx context.Context) ([]models.RawListing, error) {
	var texts []string
	for _, sel := range listingSelectors {
		var found []string
		err := chromedp.Run(ctx, chromedp.Evaluate(fmt.Sprintf(listingTextScript, sel), &found))
		if err != nil {
			return nil, fmt.Errorf("listing extraction failed for %q: %w", sel, err)
		}
		if len(found) > 0 {
			s.logger.Debug("Selector %q matched %d nodes", sel, len(found))
			texts = found
			break
		}
	}

	// The same itinerary shows up under several result groups; keep the
	// first occurrence so document order survives.
	tracker := utils.NewSeenTracker()
	var listings []models.RawListing
	for _, t := range texts {
		t = strings.TrimSpace(t)
		if t == "" || !tracker.Add(t) {
			continue
		}
		listings = append(listings, models.RawListing{SourceText: t})
		if len(listings) >= s.cfg.MaxListings {
			break
		}
	}
	return listings, nil
}
