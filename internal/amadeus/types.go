package amadeus

// offersResponse is the subset of the flight-offers search response used to
// build a price result.
type offersResponse struct {
	Data []flightOffer `json:"data"`
}

type flightOffer struct {
	ID          string      `json:"id"`
	Price       offerPrice  `json:"price"`
	Itineraries []itinerary `json:"itineraries"`
}

type offerPrice struct {
	Currency   string `json:"currency"`
	Total      string `json:"total"`
	GrandTotal string `json:"grandTotal"`
}

type itinerary struct {
	Duration string    `json:"duration"`
	Segments []segment `json:"segments"`
}

type segment struct {
	CarrierCode string       `json:"carrierCode"`
	Number      string       `json:"number"`
	Departure   segmentPoint `json:"departure"`
	Arrival     segmentPoint `json:"arrival"`
}

type segmentPoint struct {
	IATACode string `json:"iataCode"`
	At       string `json:"at"`
}
