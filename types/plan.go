package types

// Destination is one model-suggested travel destination. Exactly one
// candidate (the first) is selected to drive the later planning stages.
type Destination struct {
	Name            string   `json:"name"`
	Country         string   `json:"country"`
	Description     string   `json:"description"`
	MatchPercentage float64  `json:"matchPercentage"`
	Language        string   `json:"language,omitempty"`
	Currency        string   `json:"currency,omitempty"`
	ImageURL        string   `json:"imageUrl,omitempty"`
	Highlights      []string `json:"highlights,omitempty"`
}

// FlightEndpoint describes one end of a flight leg.
type FlightEndpoint struct {
	Airport string `json:"airport"`
	Code    string `json:"code"`
	Time    string `json:"time"`
	Date    string `json:"date"`
}

type Flight struct {
	Airline      string         `json:"airline"`
	FlightNumber string         `json:"flightNumber"`
	Departure    FlightEndpoint `json:"departure"`
	Arrival      FlightEndpoint `json:"arrival"`
	Duration     string         `json:"duration"`
	Price        float64        `json:"price"`
	Aircraft     string         `json:"aircraft,omitempty"`
	Class        string         `json:"class,omitempty"`
}

// FlightPair is the round trip returned by the flight-booking stage.
type FlightPair struct {
	Outbound Flight `json:"outbound"`
	Return   Flight `json:"return"`
}

// Total returns the combined outbound and return price.
func (f *FlightPair) Total() float64 {
	return f.Outbound.Price + f.Return.Price
}

type Hotel struct {
	Name          string   `json:"name"`
	Location      string   `json:"location"`
	Description   string   `json:"description"`
	PricePerNight float64  `json:"pricePerNight"`
	Stars         int      `json:"stars"`
	Reviews       int      `json:"reviews"`
	Amenities     []string `json:"amenities"`
	ImageURLs     []string `json:"imageUrls,omitempty"`
}

// BudgetPlan is a full category breakdown with its total and the budget it
// was derived from.
type BudgetPlan struct {
	Flights        float64 `json:"flights"`
	Accommodation  float64 `json:"accommodation"`
	Activities     float64 `json:"activities"`
	Food           float64 `json:"food"`
	Transportation float64 `json:"transportation"`
	Miscellaneous  float64 `json:"miscellaneous"`
	Total          float64 `json:"total"`
	OriginalBudget float64 `json:"originalBudget"`
}

// AlternativePlan is a named variant with a possibly partial breakdown.
type AlternativePlan struct {
	Name      string             `json:"name"`
	Total     float64            `json:"total"`
	Breakdown map[string]float64 `json:"breakdown,omitempty"`
}

type BudgetBreakdown struct {
	MainPlan         BudgetPlan        `json:"mainPlan"`
	AlternativePlans []AlternativePlan `json:"alternativePlans,omitempty"`
}

// ItineraryActivity is one scheduled entry within an itinerary day. It is
// distinct from the standalone Activity recommendations.
type ItineraryActivity struct {
	Time        string  `json:"time,omitempty"`
	Description string  `json:"description"`
	Cost        float64 `json:"cost,omitempty"`
	Location    string  `json:"location,omitempty"`
	Notes       string  `json:"notes,omitempty"`
}

type ItineraryDay struct {
	Day        int                 `json:"day"`
	Date       string              `json:"date"`
	Title      string              `json:"title"`
	Activities []ItineraryActivity `json:"activities"`
}

// Activity is a standalone recommendation, not tied to a specific day.
type Activity struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Duration    string  `json:"duration"`
	Location    string  `json:"location"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	Recommended bool    `json:"recommended,omitempty"`
}

// TripPlan is the aggregate result of one successful planning run. It is
// all-or-nothing: a failure at any stage discards the whole run.
type TripPlan struct {
	Destination Destination     `json:"destination"`
	Flights     FlightPair      `json:"flights"`
	Hotels      []Hotel         `json:"hotels"`
	Itinerary   []ItineraryDay  `json:"itinerary"`
	Budget      BudgetBreakdown `json:"budget"`
	Activities  []Activity      `json:"activities"`
	TripInput   TripInput       `json:"tripInput"`
}

// TripSummary is the model-written closing summary of a finalized plan.
type TripSummary struct {
	Title                string   `json:"title"`
	Overview             string   `json:"overview"`
	Highlights           []string `json:"highlights"`
	Tips                 []string `json:"tips"`
	Disclaimers          []string `json:"disclaimers,omitempty"`
	CustomizationOptions []string `json:"customizationOptions,omitempty"`
}
