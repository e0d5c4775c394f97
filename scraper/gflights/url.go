package gflights

import (
	"fmt"
	"net/url"

	"flight-agent/models"
)

// SearchURL builds the flight search target for a trip. The query is the
// literal phrase "flights from X to Y on D" (or "from D1 to D2" for round
// trips) with each substituted field percent-encoded. Pure and total for
// any well-formed TripRequest.
func SearchURL(base string, trip models.TripRequest) string {
	datePhrase := "on " + trip.DepartureDate
	if trip.RoundTrip() {
		datePhrase = fmt.Sprintf("from %s to %s", trip.DepartureDate, trip.ReturnDate)
	}
	return fmt.Sprintf("%s?q=flights+from+%s+to+%s+%s",
		base,
		url.QueryEscape(trip.Origin),
		url.QueryEscape(trip.Destination),
		url.QueryEscape(datePhrase),
	)
}
