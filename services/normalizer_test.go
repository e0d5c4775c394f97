package services

import (
	"testing"

	"flight-agent/models"
	"flight-agent/utils"
)

func TestNormalizeExtractsFirstPrice(t *testing.T) {
	t.Parallel()

	n := NewPriceNormalizer(utils.NewLogger())

	cases := []struct {
		name     string
		text     string
		want     float64
		currency string
	}{
		{name: "dollar with separators and cents", text: "Nonstop · 7h 10m\n$1,234.50 round trip", want: 1234.50, currency: "$"},
		{name: "euro integer", text: "Lufthansa · 1 stop\n€999", want: 999, currency: "€"},
		{name: "pound with space after symbol", text: "British Airways £ 458 one way", want: 458, currency: "£"},
		{name: "rupee with separators", text: "IndiGo ₹45,300 nonstop", want: 45300, currency: "₹"},
		{name: "first of several prices wins", text: "$850 was $920 last week", want: 850, currency: "$"},
		{name: "single decimal digit", text: "$99.5 basic fare", want: 99.5, currency: "$"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			offer := n.Normalize(models.RawListing{SourceText: tc.text})
			if offer == nil {
				t.Fatalf("Normalize(%q) returned nil, want offer", tc.text)
			}
			if offer.PriceValue != tc.want {
				t.Fatalf("price = %v, want %v", offer.PriceValue, tc.want)
			}
			if offer.CurrencySymbol != tc.currency {
				t.Fatalf("currency = %q, want %q", offer.CurrencySymbol, tc.currency)
			}
		})
	}
}

func TestNormalizeDropsNoise(t *testing.T) {
	t.Parallel()

	n := NewPriceNormalizer(utils.NewLogger())

	for _, text := range []string{
		"",
		"Track prices for this route",
		"Best departing flights · sorted by top value",
		"Prices from 120 dollars", // no symbol, no match
	} {
		if offer := n.Normalize(models.RawListing{SourceText: text}); offer != nil {
			t.Fatalf("Normalize(%q) = %+v, want nil", text, offer)
		}
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	t.Parallel()

	n := NewPriceNormalizer(utils.NewLogger())
	listing := models.RawListing{SourceText: "Emirates · Nonstop · $1,234.50"}

	first := n.Normalize(listing)
	second := n.Normalize(listing)
	if first == nil || second == nil {
		t.Fatalf("expected offers, got %v and %v", first, second)
	}
	if *first != *second {
		t.Fatalf("normalizing twice differed: %+v vs %+v", *first, *second)
	}
}

func TestNormalizeAllPreservesOrderAndFilters(t *testing.T) {
	t.Parallel()

	n := NewPriceNormalizer(utils.NewLogger())
	listings := []models.RawListing{
		{SourceText: "€999 · 1 stop"},
		{SourceText: "Sponsored: book early and save"},
		{SourceText: "$850 · nonstop"},
	}

	offers := n.NormalizeAll(listings)
	if len(offers) != 2 {
		t.Fatalf("expected 2 offers, got %d", len(offers))
	}
	if offers[0].PriceValue != 999 || offers[1].PriceValue != 850 {
		t.Fatalf("document order not preserved: %+v", offers)
	}
}
