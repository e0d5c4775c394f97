package services

import (
	"context"
	"errors"
	"strings"

	"flight-agent/models"
	"flight-agent/utils"
)

// TripExtractor converts a free-text query into a structured trip.
type TripExtractor interface {
	Extract(ctx context.Context, query string) (*models.TripRequest, error)
}

// Searcher renders the search page for a trip and scans its listings.
// An empty result with a nil error means "page rendered, no results".
type Searcher interface {
	Search(ctx context.Context, trip models.TripRequest) ([]models.RawListing, error)
}

// Pipeline composes extraction, scraping, normalization and selection
// into one callable operation. All collaborators are injected at
// construction; the pipeline holds no other state, so concurrent Run
// calls are independent.
type Pipeline struct {
	extractor  TripExtractor
	searcher   Searcher
	normalizer *PriceNormalizer
	logger     *utils.Logger
}

// NewPipeline creates a new Pipeline
func NewPipeline(extractor TripExtractor, searcher Searcher, logger *utils.Logger) *Pipeline {
	return &Pipeline{
		extractor:  extractor,
		searcher:   searcher,
		normalizer: NewPriceNormalizer(logger),
		logger:     logger,
	}
}

// Run executes the full query-to-offer pipeline. Every invocation
// terminates with exactly one of Success, Empty or Failure.
func (p *Pipeline) Run(ctx context.Context, query string) models.PipelineResult {
	query = strings.TrimSpace(query)
	if query == "" {
		return failure(nil, &models.ExtractionError{Reason: "empty query"})
	}
	p.logger.Info("Pipeline start: %q", query)

	trip, err := p.extractor.Extract(ctx, query)
	if err != nil {
		p.logger.Error("Extraction failed: %v", err)
		return failure(nil, err)
	}

	listings, err := p.searcher.Search(ctx, *trip)
	if err != nil {
		p.logger.Error("Search failed: %v", err)
		return failure(trip, err)
	}
	if len(listings) == 0 {
		p.logger.Warn("Page rendered but no listings matched any selector")
		return models.PipelineResult{
			Status: models.StatusEmpty,
			Reason: "no listings found",
			Trip:   trip,
		}
	}
	p.logger.Info("Scanned %d listings", len(listings))

	offers := p.normalizer.NormalizeAll(listings)
	if len(offers) == 0 {
		return models.PipelineResult{
			Status:   models.StatusEmpty,
			Reason:   "no resolvable prices in scanned listings",
			Trip:     trip,
			Listings: listings,
		}
	}

	selected := SelectCheapest(offers)
	p.logger.Info("Selected offer: %s%.2f", selected.Offer.CurrencySymbol, selected.Offer.PriceValue)

	return models.PipelineResult{
		Status:   models.StatusSuccess,
		Selected: selected,
		Trip:     trip,
		Listings: listings,
		Offers:   offers,
	}
}

// failure classifies an error into the result taxonomy. Browser launch
// errors mean the environment is broken, not this query, and so surface
// as fatal.
func failure(trip *models.TripRequest, err error) models.PipelineResult {
	kind := models.FailureFatal

	var extractErr *models.ExtractionError
	var renderErr *models.RenderError
	switch {
	case errors.As(err, &extractErr):
		kind = models.FailureExtraction
	case errors.As(err, &renderErr):
		kind = models.FailureRender
		if renderErr.Kind == models.RenderLaunch {
			kind = models.FailureFatal
		}
	}

	return models.PipelineResult{
		Status: models.StatusFailure,
		Kind:   kind,
		Err:    err,
		Trip:   trip,
	}
}
