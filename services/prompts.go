package services

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/WanderWise/wander-wise-backend/types"
)

// The prompt builders are pure functions: same inputs always produce the same
// prompt text. Each prompt enumerates the required fields, value ranges, and a
// literal example payload so the model is steered toward parseable output.

// formatAmount renders a monetary value without a trailing fraction when it
// is whole, so prompts read "59500" rather than "59500.000000".
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func orGeneral(interests string) string {
	if interests == "" {
		return "General travel"
	}
	return interests
}

// DestinationFinderPrompt renders the destination-finding stage prompt. The
// contract asks for a bare JSON array of destination objects.
func DestinationFinderPrompt(input types.TripInput) string {
	return fmt.Sprintf(`You are a travel destination expert AI system. Based on the user's preferences, suggest 3 suitable destinations.
RESPONSE FORMAT: You MUST return ONLY a valid JSON array of destination objects. Nothing else.

User preferences:
- Origin: %s
- Budget: %s INR
- Trip Type: %s
- Start Date: %s
- End Date: %s
- Interests: %s

For each destination, include:
- name: The city or location name (string)
- country: The country of the destination (string)
- description: A brief 1-2 sentence overview (string)
- matchPercentage: How well it matches their preferences (number between 60-99)
- highlights: Array of 3-5 strings describing things they can do there
- imageUrl: A placeholder for an image URL (e.g., "https://images.unsplash.com/...")

Ensure the suggested destinations align with:
1. The user's budget constraints
2. Their travel timeframe (including seasonality)
3. Their trip type and interests
4. Logical travel distance from their origin

CRITICAL INSTRUCTIONS:
1. Your response MUST be a valid JSON array ONLY
2. Do NOT include any text before or after the JSON array
3. Do NOT include explanations, headers, footers, or any non-JSON content
4. Return the array directly, NOT wrapped in an object with a 'destinations' property

Example correct format:
[
  {
    "name": "Destination 1",
    "country": "Country 1",
    "description": "Description of destination 1",
    "matchPercentage": 95,
    "highlights": ["Activity 1", "Activity 2", "Activity 3"],
    "imageUrl": "https://images.unsplash.com/..."
  }
]

YOUR RESPONSE MUST BE ONLY THE JSON ARRAY - NOTHING ELSE.`,
		input.Origin,
		formatAmount(input.Budget),
		input.TripType,
		input.StartDate,
		input.EndDate,
		orGeneral(input.Interests),
	)
}

// FlightBookingPrompt renders the flight-booking stage prompt. The contract
// is a JSON object with 'outbound' and 'return' flights.
func FlightBookingPrompt(input types.TripInput, destination types.Destination) string {
	return fmt.Sprintf(`You are an expert flight booking AI agent. Find the most suitable round-trip flights between the origin and destination based on the user's travel preferences.
Return your response as a valid JSON object with 'outbound' and 'return' flights.

User Trip Details:
- Origin: %s
- Destination: %s, %s
- Departure Date: %s
- Return Date: %s
- Budget: %s INR

For each flight, include:
- airline: A realistic airline that flies this route
- flightNumber: A plausible flight number
- departure: Object with airport, code, time, and date
- arrival: Object with airport, code, time, and date
- duration: Flight duration as string (e.g., "2h 35m")
- price: Realistic price in INR for one-way (total is outbound + return)
- aircraft: Type of aircraft (e.g., "Airbus A320")
- class: "Economy" (default for budget travelers)

Considerations:
1. Choose flight times that maximize time at the destination
2. Keep total flight costs under 30-40%% of the total budget
3. Prefer direct flights when possible
4. Choose realistic airlines that operate between these locations
5. Use realistic airport codes, prices, and timings

Return only valid JSON with no explanation or additional text.`,
		input.Origin,
		destination.Name, destination.Country,
		input.StartDate,
		input.EndDate,
		formatAmount(input.Budget),
	)
}

// HotelBookingPrompt renders the hotel-booking stage prompt. The contract is
// a JSON object with a 'hotels' array of exactly two options: one premium,
// one budget-friendly.
func HotelBookingPrompt(input types.TripInput, destination types.Destination) string {
	return fmt.Sprintf(`You are an expert hotel booking AI agent. Find the most suitable accommodation options for the user's trip based on their preferences.
Return your response as a valid JSON object with a 'hotels' array containing 2 hotel options.

User Trip Details:
- Destination: %s, %s
- Check-in Date: %s
- Check-out Date: %s
- Trip Type: %s
- Budget: %s INR
- Interests: %s

For each hotel, include:
- name: Hotel name
- location: Specific neighborhood or area in the destination
- description: Brief description of the hotel and its key features
- pricePerNight: Realistic price per night in INR
- stars: Hotel rating (1-5)
- reviews: Number of reviews (100-1000)
- amenities: Array of 5-8 available amenities
- imageUrls: Array of 1-4 placeholder image URLs (e.g., "https://images.unsplash.com/...")

Considerations:
1. The first hotel should be higher-end and the second more budget-friendly
2. Hotel locations should be convenient for tourists
3. Amenities should match the trip type (e.g., pool for relaxation, fitness center for adventure)
4. Accommodation costs should be reasonable for the destination and not exceed 40-50%% of the total budget

Your response must be a valid JSON object like this example:
{
  "hotels": [
    {
      "name": "Luxury Hotel",
      "location": "Central area",
      "description": "Luxurious hotel with excellent amenities",
      "pricePerNight": 8000,
      "stars": 5,
      "reviews": 450,
      "amenities": ["Pool", "Spa", "Restaurant", "Free WiFi", "Room Service"],
      "imageUrls": ["https://images.unsplash.com/..."]
    },
    {
      "name": "Budget Hotel",
      "location": "Near downtown",
      "description": "Comfortable budget hotel",
      "pricePerNight": 3000,
      "stars": 3,
      "reviews": 250,
      "amenities": ["Free WiFi", "Breakfast", "Air conditioning"],
      "imageUrls": ["https://images.unsplash.com/..."]
    }
  ]
}

Return only valid JSON with no explanation or additional text.`,
		destination.Name, destination.Country,
		input.StartDate,
		input.EndDate,
		input.TripType,
		formatAmount(input.Budget),
		orGeneral(input.Interests),
	)
}

// BudgetOptimizerPrompt renders the budget-optimization stage prompt. The
// already-known flight and accommodation totals are embedded as literal
// numbers so the model anchors its breakdown in them instead of re-deriving.
func BudgetOptimizerPrompt(input types.TripInput, destination types.Destination, flights types.FlightPair, hotel types.Hotel) string {
	nights := input.Nights()
	accommodationTotal := hotel.PricePerNight * float64(nights)

	return fmt.Sprintf(`You are an expert budget optimization AI agent. Create a detailed budget breakdown for the user's trip based on all available information.
Return your response as a valid JSON object.

Trip Information:
- Origin: %s
- Destination: %s, %s
- Start Date: %s
- End Date: %s
- Trip Type: %s
- User's Budget: %s INR

Known Costs:
- Flights: %s INR total
- Hotel: %s INR per night for %d nights (%s INR total)

Your budget breakdown should include a "mainPlan" object with:
- flights: Total flight costs
- accommodation: Total accommodation costs
- activities: Estimated activities costs
- food: Estimated food costs
- transportation: Local transportation costs
- miscellaneous: Other expenses
- total: Sum of all costs
- originalBudget: User's original budget

Additionally, provide an "alternativePlans" array with 2 alternative budget plans:
1. A more economical option that reduces costs
2. A premium option that enhances the experience

Each alternative should have:
- name: Description of the alternative (e.g., "Budget-friendly option")
- total: Total cost
- breakdown: Modified cost breakdown

Considerations:
1. Be realistic about costs for the specific destination
2. Ensure the main plan respects the user's original budget when possible
3. For alternatives, clearly identify what is being changed (e.g., lower-tier hotel, fewer activities)

Return only valid JSON with no explanation or additional text.`,
		input.Origin,
		destination.Name, destination.Country,
		input.StartDate,
		input.EndDate,
		input.TripType,
		formatAmount(input.Budget),
		formatAmount(flights.Total()),
		formatAmount(hotel.PricePerNight), nights, formatAmount(accommodationTotal),
	)
}

// ItineraryGeneratorPrompt renders the itinerary-generation stage prompt. The
// day count is computed from the trip dates (nights + 1); the first and last
// days are constrained by instruction to reflect arrival and departure.
func ItineraryGeneratorPrompt(input types.TripInput, destination types.Destination, hotel types.Hotel, budget types.BudgetBreakdown) string {
	return fmt.Sprintf(`You are an expert travel itinerary AI agent. Create a day-by-day itinerary for the user's trip based on their preferences and budget.
Return your response as a valid JSON object with an "Itinerary" property containing the array of daily itinerary items.

Trip Information:
- Destination: %s, %s
- Trip Type: %s
- Start Date: %s
- End Date: %s
- Hotel: %s in %s
- Activities Budget: %s INR
- Interests: %s

Create itinerary items for each day (%d days total), including:
- day: Day number (1, 2, 3, etc.)
- date: Formatted date (e.g., "May 15, 2023")
- title: Brief theme for the day's activities
- activities: Array of 4-6 activities for the day, each with:
  - time: Approximate time (e.g., "09:00 AM")
  - description: What the activity is
  - cost: Estimated cost in INR (0 for free activities)
  - location: Where this takes place
  - notes: Optional tips or information

Considerations:
1. First day should account for arrival and check-in
2. Last day should account for check-out and departure
3. Balance activities between popular must-see attractions and off-the-beaten-path experiences
4. Incorporate the user's interests and trip type
5. Include a mix of paid and free activities
6. Allow reasonable time for travel between activities
7. Include appropriate meal times and suggestions

IMPORTANT: Your response MUST be a valid JSON object with an "Itinerary" property containing the array of daily itinerary items.
Do not include any explanation, headers, or anything other than the JSON object itself.

Example format:
{
  "Itinerary": [
    {
      "day": 1,
      "date": "May 15, 2023",
      "title": "Arrival and Orientation",
      "activities": [
        {
          "time": "10:00 AM",
          "description": "Arrival at airport",
          "cost": 0,
          "location": "Airport",
          "notes": "Take taxi to hotel"
        }
      ]
    }
  ]
}

Return ONLY the JSON object with no explanation or additional text.`,
		destination.Name, destination.Country,
		input.TripType,
		input.StartDate,
		input.EndDate,
		hotel.Name, hotel.Location,
		formatAmount(budget.MainPlan.Activities),
		orGeneral(input.Interests),
		input.Days(),
	)
}

// ActivityRecommendationPrompt renders the activity-recommendation stage
// prompt. These are standalone suggestions, not tied to specific days.
func ActivityRecommendationPrompt(input types.TripInput, destination types.Destination, budget types.BudgetBreakdown) string {
	return fmt.Sprintf(`You are an expert activity recommendation AI agent. Suggest suitable activities for the user's trip based on their preferences and destination.
Return your response as a valid JSON object with an "activities" array of activity objects.

Trip Information:
- Destination: %s, %s
- Trip Type: %s
- Duration: %d nights
- Activities Budget: %s INR
- Interests: %s

Provide 6-8 activity recommendations, including:
- name: Activity name
- description: Brief description of the activity
- price: Estimated cost per person in INR
- duration: Approximate duration (e.g., "2 hours", "Half day")
- location: Where this activity takes place
- imageUrl: A placeholder image URL (e.g., "https://images.unsplash.com/...")
- recommended: Boolean indicating if this is highly recommended based on preferences

Considerations:
1. Align activities with the user's trip type and interests
2. Include a mix of price points (including free options)
3. Ensure activities are available and appropriate for the travel season
4. Include both popular and unique experiences
5. Consider travel logistics and location within the destination

Return only valid JSON with no explanation or additional text.`,
		destination.Name, destination.Country,
		input.TripType,
		input.Nights(),
		formatAmount(budget.MainPlan.Activities),
		orGeneral(input.Interests),
	)
}

// TripFinalizePrompt renders the terminal summary prompt over a completed
// trip plan.
func TripFinalizePrompt(plan types.TripPlan) string {
	planJSON, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		planJSON = []byte("{}")
	}

	return fmt.Sprintf(`You are an expert trip review AI agent. Create a comprehensive summary of the finalized trip plan.
Return your response as a valid JSON object.

Complete Trip Plan:
%s

Create a summary that includes:
- title: A catchy title for the trip
- overview: Brief overview of the destination and trip type
- highlights: Array of 3-5 trip highlights
- tips: Array of 3-5 practical tips for the traveler
- disclaimers: Any important considerations or limitations of this plan
- customizationOptions: Suggestions for how the plan could be personalized further

Considerations:
1. Be realistic and practical
2. Highlight the best aspects of the plan
3. Identify any potential challenges or considerations
4. Suggest personal touches that could enhance the experience

Return only valid JSON with no explanation or additional text.`,
		string(planJSON),
	)
}
