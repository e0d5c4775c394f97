package models

// TravelClass is the cabin class a traveller asked for, when they asked.
type TravelClass string

const (
	ClassEconomy  TravelClass = "economy"
	ClassBusiness TravelClass = "business"
	ClassFirst    TravelClass = "first"
)

// TripRequest holds the structured trip parameters extracted from a
// free-text query. Origin, Destination and DepartureDate are mandatory;
// everything else is best-effort. Dates are kept as opaque strings — the
// site search accepts phrases like "April" or "next weekend" directly, so
// no normalization happens here.
type TripRequest struct {
	Origin        string      `json:"origin"`
	Destination   string      `json:"destination"`
	DepartureDate string      `json:"departure_date"`
	ReturnDate    string      `json:"return_date,omitempty"`
	Airline       string      `json:"airline,omitempty"`
	TravelClass   TravelClass `json:"travel_class,omitempty"`
	Stops         *int        `json:"stops,omitempty"`
}

// RoundTrip reports whether the request includes a return date.
func (t TripRequest) RoundTrip() bool {
	return t.ReturnDate != ""
}

// RawListing is the visible text of one result node on the rendered
// search page, in document order. It has no identity beyond its position.
type RawListing struct {
	SourceText string
}

// NormalizedOffer is a listing whose text yielded a recognizable price.
type NormalizedOffer struct {
	PriceValue     float64
	CurrencySymbol string
	DetailText     string
}

// SelectedOffer is the single best offer of a run.
type SelectedOffer struct {
	Offer NormalizedOffer
	Rank  string // always "cheapest"
}
