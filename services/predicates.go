package services

import (
	"github.com/WanderWise/wander-wise-backend/pkg/extract"
)

// Stage names used for extraction errors, retry logging, and metrics labels.
const (
	StageDestinationFinding     = "destination-finding"
	StageFlightBooking          = "flight-booking"
	StageHotelBooking           = "hotel-booking"
	StageBudgetOptimization     = "budget-optimization"
	StageItineraryGeneration    = "itinerary-generation"
	StageActivityRecommendation = "activity-recommendation"
	StageTripFinalization       = "trip-finalization"
)

// Shape predicates check presence and primitive type of a handful of key
// fields only. Semantic validation (plausible prices, real airports) is out
// of scope: a wrong but well-shaped answer passes.

// IsDestinationShaped reports whether m looks like a destination suggestion.
func IsDestinationShaped(m map[string]interface{}) bool {
	return extract.HasString(m, "name") && extract.HasString(m, "country")
}

// IsFlightShaped reports whether m looks like a single one-way flight.
func IsFlightShaped(m map[string]interface{}) bool {
	return extract.HasString(m, "airline") && extract.HasNumber(m, "price")
}

// IsFlightPairShaped reports whether m looks like a round-trip pairing with
// outbound and return legs.
func IsFlightPairShaped(m map[string]interface{}) bool {
	return extract.HasObject(m, "outbound") && extract.HasObject(m, "return")
}

// IsHotelShaped reports whether m looks like an accommodation option.
func IsHotelShaped(m map[string]interface{}) bool {
	return extract.HasString(m, "name") && extract.HasNumber(m, "pricePerNight")
}

// IsBudgetShaped reports whether m looks like a budget breakdown with a main
// plan.
func IsBudgetShaped(m map[string]interface{}) bool {
	return extract.HasObject(m, "mainPlan")
}

// IsItineraryDayShaped reports whether m looks like one day of an itinerary.
func IsItineraryDayShaped(m map[string]interface{}) bool {
	return extract.HasNumber(m, "day") && extract.HasArray(m, "activities")
}

// IsActivityShaped reports whether m looks like an activity recommendation.
func IsActivityShaped(m map[string]interface{}) bool {
	return extract.HasString(m, "name") && extract.HasNumber(m, "price")
}

// IsSummaryShaped reports whether m looks like a finalized trip summary.
func IsSummaryShaped(m map[string]interface{}) bool {
	return extract.HasString(m, "title") && extract.HasString(m, "overview")
}

// Extraction specs bind each stage's predicate to the container property
// names that stage's responses are known to arrive under.

var destinationSpec = extract.Spec{
	Stage:         StageDestinationFinding,
	Predicate:     IsDestinationShaped,
	ContainerKeys: []string{"destinations", "results", "options", "suggestions"},
}

var flightPairSpec = extract.Spec{
	Stage:         StageFlightBooking,
	Predicate:     IsFlightPairShaped,
	ContainerKeys: []string{"flights", "results", "options"},
}

var hotelSpec = extract.Spec{
	Stage:         StageHotelBooking,
	Predicate:     IsHotelShaped,
	ContainerKeys: []string{"hotels", "results", "options"},
}

var budgetSpec = extract.Spec{
	Stage:         StageBudgetOptimization,
	Predicate:     IsBudgetShaped,
	ContainerKeys: []string{"budget", "results"},
}

var itinerarySpec = extract.Spec{
	Stage:         StageItineraryGeneration,
	Predicate:     IsItineraryDayShaped,
	ContainerKeys: []string{"Itinerary", "itinerary", "days", "results"},
}

var activitySpec = extract.Spec{
	Stage:         StageActivityRecommendation,
	Predicate:     IsActivityShaped,
	ContainerKeys: []string{"activities", "recommendations", "results"},
}

var summarySpec = extract.Spec{
	Stage:         StageTripFinalization,
	Predicate:     IsSummaryShaped,
	ContainerKeys: []string{"summary", "results"},
}
