package services

import (
	"fmt"
	"strings"

	"flight-agent/models"
)

// PrintSearchReport formats and prints a pipeline result to terminal
func PrintSearchReport(query string, result models.PipelineResult) {
	border := strings.Repeat("═", 55)
	thin := strings.Repeat("─", 55)

	fmt.Printf("\n╔%s╗\n", border)
	fmt.Printf("║%s║\n", center("FLIGHT SEARCH RESULT", 55))
	fmt.Printf("╚%s╝\n", border)

	fmt.Printf("\n QUERY\n%s\n", thin)
	fmt.Printf("  %s\n", truncate(query, 52))

	if result.Trip != nil {
		t := result.Trip
		fmt.Printf("\n EXTRACTED TRIP\n%s\n", thin)
		fmt.Printf("  Route     : %s -> %s\n", t.Origin, t.Destination)
		fmt.Printf("  Departure : %s\n", t.DepartureDate)
		if t.ReturnDate != "" {
			fmt.Printf("  Return    : %s\n", t.ReturnDate)
		}
		if t.Airline != "" {
			fmt.Printf("  Airline   : %s\n", t.Airline)
		}
		if t.TravelClass != "" {
			fmt.Printf("  Class     : %s\n", t.TravelClass)
		}
		if t.Stops != nil {
			fmt.Printf("  Stops     : %d\n", *t.Stops)
		}
	}

	switch result.Status {
	case models.StatusSuccess:
		offer := result.Selected.Offer
		fmt.Printf("\n CHEAPEST OFFER\n%s\n", thin)
		fmt.Printf("  Price   : %s%.2f\n", offer.CurrencySymbol, offer.PriceValue)
		fmt.Printf("  Details : %s\n", truncate(oneLine(offer.DetailText), 120))
		printOfferStats(result.Offers, thin)
	case models.StatusEmpty:
		fmt.Printf("\n NO OFFER\n%s\n", thin)
		fmt.Printf("  %s\n", result.Reason)
	case models.StatusFailure:
		fmt.Printf("\n FAILED (%s)\n%s\n", result.Kind, thin)
		fmt.Printf("  %v\n", result.Err)
	}

	fmt.Printf("\n%s\n\n", border)
}

// printOfferStats summarizes every normalized offer observed in the run.
// Figures always carry their currency symbol: a mixed-currency run is
// ranked without conversion, so at least the output shows the mix.
func printOfferStats(offers []models.NormalizedOffer, thin string) {
	if len(offers) == 0 {
		return
	}

	min, max := offers[0].PriceValue, offers[0].PriceValue
	var total float64
	for _, o := range offers {
		total += o.PriceValue
		if o.PriceValue < min {
			min = o.PriceValue
		}
		if o.PriceValue > max {
			max = o.PriceValue
		}
	}

	fmt.Printf("\n SCANNED OFFERS\n%s\n", thin)
	fmt.Printf("  Offers With Prices : %d\n", len(offers))
	fmt.Printf("  Lowest Price       : %.2f\n", min)
	fmt.Printf("  Highest Price      : %.2f\n", max)
	fmt.Printf("  Average Price      : %.2f\n", total/float64(len(offers)))
	for i, o := range offers {
		fmt.Printf("  %d. %s%-10.2f %s\n", i+1, o.CurrencySymbol, o.PriceValue, truncate(oneLine(o.DetailText), 40))
	}
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func center(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return s
	}
	pad := (width - len(runes)) / 2
	return strings.Repeat(" ", pad) + s + strings.Repeat(" ", width-len(runes)-pad)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
