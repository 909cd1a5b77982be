package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/WanderWise/wander-wise-backend/services"
	"github.com/WanderWise/wander-wise-backend/types"
)

// PlannerHandler exposes the planning pipeline over HTTP. Each stage is
// addressable on its own so a client can drive the flow interactively, and
// /plan runs the whole pipeline in one call.
type PlannerHandler struct {
	plannerService services.PlannerServiceInterface
}

// NewPlannerHandler creates a new PlannerHandler
func NewPlannerHandler(plannerService services.PlannerServiceInterface) *PlannerHandler {
	return &PlannerHandler{plannerService: plannerService}
}

type stageRequest struct {
	TripInput   types.TripInput       `json:"tripInput"`
	Destination types.Destination     `json:"destination"`
	Flights     types.FlightPair      `json:"flights"`
	Hotel       types.Hotel           `json:"hotel"`
	Budget      types.BudgetBreakdown `json:"budget"`
}

type summaryRequest struct {
	Plan types.TripPlan `json:"plan"`
}

// hasRequiredFields mirrors the client contract: a zero budget counts as
// missing.
func hasRequiredFields(input types.TripInput) bool {
	return input.Origin != "" &&
		input.Budget != 0 &&
		input.StartDate != "" &&
		input.EndDate != "" &&
		input.TripType != ""
}

func respondMissingFields(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
}

func respondInvalidBody(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
}

// FindDestinations handles POST /v1/destinations
func (h *PlannerHandler) FindDestinations(c *gin.Context) {
	var input types.TripInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondInvalidBody(c)
		return
	}
	if !hasRequiredFields(input) {
		respondMissingFields(c)
		return
	}

	destinations, err := h.plannerService.FindDestinations(c.Request.Context(), input)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"destinations": destinations})
}

// FindFlights handles POST /v1/flights
func (h *PlannerHandler) FindFlights(c *gin.Context) {
	var req stageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c)
		return
	}
	if !hasRequiredFields(req.TripInput) || req.Destination.Name == "" {
		respondMissingFields(c)
		return
	}

	flights, err := h.plannerService.FindFlights(c.Request.Context(), req.TripInput, req.Destination)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"flights": flights})
}

// FindHotels handles POST /v1/hotels
func (h *PlannerHandler) FindHotels(c *gin.Context) {
	var req stageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c)
		return
	}
	if !hasRequiredFields(req.TripInput) || req.Destination.Name == "" {
		respondMissingFields(c)
		return
	}

	hotels, err := h.plannerService.FindHotels(c.Request.Context(), req.TripInput, req.Destination)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"hotels": hotels})
}

// OptimizeBudget handles POST /v1/budget
func (h *PlannerHandler) OptimizeBudget(c *gin.Context) {
	var req stageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c)
		return
	}
	if !hasRequiredFields(req.TripInput) || req.Destination.Name == "" || req.Hotel.Name == "" {
		respondMissingFields(c)
		return
	}

	budget, err := h.plannerService.OptimizeBudget(c.Request.Context(), req.TripInput, req.Destination, req.Flights, req.Hotel)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// GenerateItinerary handles POST /v1/itinerary
func (h *PlannerHandler) GenerateItinerary(c *gin.Context) {
	var req stageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c)
		return
	}
	if !hasRequiredFields(req.TripInput) || req.Destination.Name == "" || req.Hotel.Name == "" {
		respondMissingFields(c)
		return
	}

	itinerary, err := h.plannerService.GenerateItinerary(c.Request.Context(), req.TripInput, req.Destination, req.Hotel, req.Budget)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"itinerary": itinerary})
}

// RecommendActivities handles POST /v1/activities
func (h *PlannerHandler) RecommendActivities(c *gin.Context) {
	var req stageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c)
		return
	}
	if !hasRequiredFields(req.TripInput) || req.Destination.Name == "" {
		respondMissingFields(c)
		return
	}

	activities, err := h.plannerService.RecommendActivities(c.Request.Context(), req.TripInput, req.Destination, req.Budget)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"activities": activities})
}

// CreateTripPlan handles POST /v1/plan
func (h *PlannerHandler) CreateTripPlan(c *gin.Context) {
	var input types.TripInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondInvalidBody(c)
		return
	}
	if !hasRequiredFields(input) {
		respondMissingFields(c)
		return
	}

	plan, err := h.plannerService.CreateTripPlan(c.Request.Context(), input)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tripPlan": plan})
}

// FinalizeTripPlan handles POST /v1/plan/summary
func (h *PlannerHandler) FinalizeTripPlan(c *gin.Context) {
	var req summaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c)
		return
	}
	if req.Plan.Destination.Name == "" {
		respondMissingFields(c)
		return
	}

	summary, err := h.plannerService.FinalizeTripPlan(c.Request.Context(), req.Plan)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
