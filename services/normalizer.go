package services

import (
	"regexp"
	"strconv"
	"strings"

	"flight-agent/models"
	"flight-agent/utils"
)

// First currency-prefixed amount in a listing: symbol, optional space,
// digits with optional thousands separators, optional 1-2 decimals.
var priceRegex = regexp.MustCompile(`([$€£₹])\s?(\d{1,6}(?:,\d{3})*(?:\.\d{1,2})?)`)

// PriceNormalizer reduces raw listing text to canonical prices
type PriceNormalizer struct {
	logger *utils.Logger
}

// NewPriceNormalizer creates a new PriceNormalizer
func NewPriceNormalizer(logger *utils.Logger) *PriceNormalizer {
	return &PriceNormalizer{logger: logger}
}

// Normalize extracts the first recognizable price from a listing. A nil
// return means no price token was found — expected for promotional rows
// and other noise, not an error.
func (n *PriceNormalizer) Normalize(listing models.RawListing) *models.NormalizedOffer {
	matches := priceRegex.FindStringSubmatch(listing.SourceText)
	if len(matches) < 3 {
		return nil
	}

	digits := strings.ReplaceAll(matches[2], ",", "")
	value, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		n.logger.Debug("Unparseable price token %q: %v", matches[0], err)
		return nil
	}

	return &models.NormalizedOffer{
		PriceValue:     value,
		CurrencySymbol: currencySymbol(matches[1]),
		DetailText:     strings.TrimSpace(listing.SourceText),
	}
}

// NormalizeAll maps listings through Normalize, dropping the ones with no
// resolvable price and preserving document order.
func (n *PriceNormalizer) NormalizeAll(listings []models.RawListing) []models.NormalizedOffer {
	var offers []models.NormalizedOffer
	for _, l := range listings {
		if offer := n.Normalize(l); offer != nil {
			offers = append(offers, *offer)
		}
	}
	n.logger.Info("Normalized %d offers from %d listings", len(offers), len(listings))
	return offers
}

func currencySymbol(s string) string {
	switch s {
	case "$", "€", "£", "₹":
		return s
	}
	return "unknown"
}
