package services

import "flight-agent/models"

// SelectCheapest reduces normalized offers to the single lowest-priced
// one. Ties keep the first offer in input order, which is document order,
// so the result is deterministic per render. Prices are compared as raw
// numbers regardless of currency symbol — mixed-currency runs rank
// without conversion, a known limitation kept for compatibility with how
// the search page is actually used (single-locale sessions).
func SelectCheapest(offers []models.NormalizedOffer) *models.SelectedOffer {
	if len(offers) == 0 {
		return nil
	}

	best := 0
	for i, offer := range offers[1:] {
		if offer.PriceValue < offers[best].PriceValue {
			best = i + 1
		}
	}

	return &models.SelectedOffer{
		Offer: offers[best],
		Rank:  "cheapest",
	}
}
