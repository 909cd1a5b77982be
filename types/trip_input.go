package types

import (
	"fmt"
	"math"
	"time"
)

// DateLayout is the calendar-date format accepted on trip inputs.
const DateLayout = "2006-01-02"

type TripType string

const (
	TripTypeAdventure  TripType = "adventure"
	TripTypeRelaxation TripType = "relaxation"
	TripTypeFamily     TripType = "family"
	TripTypeRomantic   TripType = "romantic"
	TripTypeCultural   TripType = "cultural"
)

// String provides a string representation of the trip type
func (tt TripType) String() string {
	return string(tt)
}

// IsValid checks if the trip type is one of the supported values
func (tt TripType) IsValid() bool {
	switch tt {
	case TripTypeAdventure, TripTypeRelaxation, TripTypeFamily, TripTypeRomantic, TripTypeCultural:
		return true
	default:
		return false
	}
}

// TripInput is the immutable set of user preferences driving a planning run.
type TripInput struct {
	Origin    string   `json:"origin"`
	Budget    float64  `json:"budget"`
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate"`
	TripType  TripType `json:"tripType"`
	Interests string   `json:"interests,omitempty"`
}

// Validate checks required fields, budget positivity, date formats and
// ordering, and the trip type enum.
func (t *TripInput) Validate() error {
	if t.Origin == "" {
		return fmt.Errorf("origin is required")
	}
	if t.Budget <= 0 {
		return fmt.Errorf("budget must be positive")
	}
	start, err := time.Parse(DateLayout, t.StartDate)
	if err != nil {
		return fmt.Errorf("invalid start date %q: expected YYYY-MM-DD", t.StartDate)
	}
	end, err := time.Parse(DateLayout, t.EndDate)
	if err != nil {
		return fmt.Errorf("invalid end date %q: expected YYYY-MM-DD", t.EndDate)
	}
	if end.Before(start) {
		return fmt.Errorf("end date must not be before start date")
	}
	if !t.TripType.IsValid() {
		return fmt.Errorf("invalid trip type %q", t.TripType)
	}
	return nil
}

// Nights returns the stay length in nights: the absolute day difference
// between the start and end dates, rounded up. The same computation anchors
// both the accommodation cost and the itinerary day count.
func (t *TripInput) Nights() int {
	start, err := time.Parse(DateLayout, t.StartDate)
	if err != nil {
		return 0
	}
	end, err := time.Parse(DateLayout, t.EndDate)
	if err != nil {
		return 0
	}
	diff := end.Sub(start).Hours() / 24
	return int(math.Ceil(math.Abs(diff)))
}

// Days returns the itinerary day count: nights plus one, inclusive of both
// the arrival and departure days.
func (t *TripInput) Days() int {
	return t.Nights() + 1
}
