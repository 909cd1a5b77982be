package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/WanderWise/wander-wise-backend/errors"
	"github.com/WanderWise/wander-wise-backend/logger"
	"github.com/WanderWise/wander-wise-backend/middleware"
	"github.com/WanderWise/wander-wise-backend/types"
)

func init() {
	logger.IsTest = true
	gin.SetMode(gin.TestMode)
}

type MockPlannerService struct {
	mock.Mock
}

func (m *MockPlannerService) FindDestinations(ctx context.Context, input types.TripInput) ([]types.Destination, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Destination), args.Error(1)
}

func (m *MockPlannerService) FindFlights(ctx context.Context, input types.TripInput, destination types.Destination) (*types.FlightPair, error) {
	args := m.Called(ctx, input, destination)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.FlightPair), args.Error(1)
}

func (m *MockPlannerService) FindHotels(ctx context.Context, input types.TripInput, destination types.Destination) ([]types.Hotel, error) {
	args := m.Called(ctx, input, destination)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Hotel), args.Error(1)
}

func (m *MockPlannerService) OptimizeBudget(ctx context.Context, input types.TripInput, destination types.Destination, flights types.FlightPair, hotel types.Hotel) (*types.BudgetBreakdown, error) {
	args := m.Called(ctx, input, destination, flights, hotel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.BudgetBreakdown), args.Error(1)
}

func (m *MockPlannerService) GenerateItinerary(ctx context.Context, input types.TripInput, destination types.Destination, hotel types.Hotel, budget types.BudgetBreakdown) ([]types.ItineraryDay, error) {
	args := m.Called(ctx, input, destination, hotel, budget)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.ItineraryDay), args.Error(1)
}

func (m *MockPlannerService) RecommendActivities(ctx context.Context, input types.TripInput, destination types.Destination, budget types.BudgetBreakdown) ([]types.Activity, error) {
	args := m.Called(ctx, input, destination, budget)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Activity), args.Error(1)
}

func (m *MockPlannerService) CreateTripPlan(ctx context.Context, input types.TripInput) (*types.TripPlan, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TripPlan), args.Error(1)
}

func (m *MockPlannerService) FinalizeTripPlan(ctx context.Context, plan types.TripPlan) (*types.TripSummary, error) {
	args := m.Called(ctx, plan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TripSummary), args.Error(1)
}

func setupTestRouter(svc *MockPlannerService) *gin.Engine {
	router := gin.New()
	router.Use(middleware.ErrorHandler())

	h := NewPlannerHandler(svc)
	v1 := router.Group("/v1")
	v1.POST("/destinations", h.FindDestinations)
	v1.POST("/flights", h.FindFlights)
	v1.POST("/hotels", h.FindHotels)
	v1.POST("/budget", h.OptimizeBudget)
	v1.POST("/itinerary", h.GenerateItinerary)
	v1.POST("/activities", h.RecommendActivities)
	v1.POST("/plan", h.CreateTripPlan)
	v1.POST("/plan/summary", h.FinalizeTripPlan)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func validTripInput() types.TripInput {
	return types.TripInput{
		Origin:    "Delhi",
		Budget:    80000,
		StartDate: "2023-05-15",
		EndDate:   "2023-05-21",
		TripType:  types.TripTypeAdventure,
	}
}

func TestFindDestinations_Success(t *testing.T) {
	svc := new(MockPlannerService)
	svc.On("FindDestinations", mock.Anything, validTripInput()).
		Return([]types.Destination{{Name: "Manali", Country: "India"}}, nil)

	router := setupTestRouter(svc)
	w := postJSON(t, router, "/v1/destinations", validTripInput())

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Destinations []types.Destination `json:"destinations"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Destinations, 1)
	assert.Equal(t, "Manali", body.Destinations[0].Name)
	svc.AssertExpectations(t)
}

func TestFindDestinations_MissingFields(t *testing.T) {
	svc := new(MockPlannerService)
	router := setupTestRouter(svc)

	input := validTripInput()
	input.Origin = ""
	w := postJSON(t, router, "/v1/destinations", input)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Missing required fields"}`, w.Body.String())
	svc.AssertNumberOfCalls(t, "FindDestinations", 0)
}

func TestFindDestinations_ZeroBudgetIsMissing(t *testing.T) {
	svc := new(MockPlannerService)
	router := setupTestRouter(svc)

	input := validTripInput()
	input.Budget = 0
	w := postJSON(t, router, "/v1/destinations", input)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Missing required fields"}`, w.Body.String())
}

func TestFindDestinations_MalformedBody(t *testing.T) {
	svc := new(MockPlannerService)
	router := setupTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/destinations", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid request body"}`, w.Body.String())
}

func TestFindDestinations_ServiceError(t *testing.T) {
	svc := new(MockPlannerService)
	svc.On("FindDestinations", mock.Anything, mock.Anything).
		Return(nil, apperrors.NoDestinationFound())

	router := setupTestRouter(svc)
	w := postJSON(t, router, "/v1/destinations", validTripInput())

	require.Equal(t, http.StatusBadGateway, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "NO_DESTINATION_FOUND", body["type"])
}

func TestFindFlights_Success(t *testing.T) {
	svc := new(MockPlannerService)
	destination := types.Destination{Name: "Manali", Country: "India"}
	pair := &types.FlightPair{
		Outbound: types.Flight{Airline: "IndiGo", Price: 28500},
		Return:   types.Flight{Airline: "IndiGo", Price: 31000},
	}
	svc.On("FindFlights", mock.Anything, validTripInput(), destination).Return(pair, nil)

	router := setupTestRouter(svc)
	w := postJSON(t, router, "/v1/flights", gin.H{
		"tripInput":   validTripInput(),
		"destination": destination,
	})

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Flights types.FlightPair `json:"flights"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(59500), body.Flights.Total())
}

func TestFindFlights_MissingDestination(t *testing.T) {
	svc := new(MockPlannerService)
	router := setupTestRouter(svc)

	w := postJSON(t, router, "/v1/flights", gin.H{"tripInput": validTripInput()})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Missing required fields"}`, w.Body.String())
}

func TestFindHotels_Success(t *testing.T) {
	svc := new(MockPlannerService)
	destination := types.Destination{Name: "Manali", Country: "India"}
	svc.On("FindHotels", mock.Anything, validTripInput(), destination).
		Return([]types.Hotel{{Name: "Snow Peak Resort", PricePerNight: 6000}}, nil)

	router := setupTestRouter(svc)
	w := postJSON(t, router, "/v1/hotels", gin.H{
		"tripInput":   validTripInput(),
		"destination": destination,
	})

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Hotels []types.Hotel `json:"hotels"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Hotels, 1)
	assert.Equal(t, "Snow Peak Resort", body.Hotels[0].Name)
}

func TestOptimizeBudget_Success(t *testing.T) {
	svc := new(MockPlannerService)
	breakdown := &types.BudgetBreakdown{
		MainPlan: types.BudgetPlan{Flights: 59500, Total: 120000},
	}
	svc.On("OptimizeBudget", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(breakdown, nil)

	router := setupTestRouter(svc)
	w := postJSON(t, router, "/v1/budget", gin.H{
		"tripInput":   validTripInput(),
		"destination": types.Destination{Name: "Manali"},
		"flights":     types.FlightPair{},
		"hotel":       types.Hotel{Name: "Snow Peak Resort", PricePerNight: 6000},
	})

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Budget types.BudgetBreakdown `json:"budget"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(59500), body.Budget.MainPlan.Flights)
}

func TestCreateTripPlan_Success(t *testing.T) {
	svc := new(MockPlannerService)
	plan := &types.TripPlan{
		Destination: types.Destination{Name: "Manali", Country: "India"},
		TripInput:   validTripInput(),
	}
	svc.On("CreateTripPlan", mock.Anything, validTripInput()).Return(plan, nil)

	router := setupTestRouter(svc)
	w := postJSON(t, router, "/v1/plan", validTripInput())

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		TripPlan types.TripPlan `json:"tripPlan"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Manali", body.TripPlan.Destination.Name)

	// The envelope key is part of the client contract.
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.Contains(t, raw, "tripPlan")
}

func TestCreateTripPlan_ProviderFailure(t *testing.T) {
	svc := new(MockPlannerService)
	svc.On("CreateTripPlan", mock.Anything, mock.Anything).
		Return(nil, apperrors.ProviderFailure(assert.AnError, "flight-booking"))

	router := setupTestRouter(svc)
	w := postJSON(t, router, "/v1/plan", validTripInput())

	require.Equal(t, http.StatusBadGateway, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "PROVIDER_ERROR", body["type"])
}

func TestFinalizeTripPlan_Success(t *testing.T) {
	svc := new(MockPlannerService)
	plan := types.TripPlan{
		Destination: types.Destination{Name: "Manali", Country: "India"},
		TripInput:   validTripInput(),
	}
	summary := &types.TripSummary{Title: "A Himalayan Week", Overview: "Six nights in Manali."}
	svc.On("FinalizeTripPlan", mock.Anything, plan).Return(summary, nil)

	router := setupTestRouter(svc)
	w := postJSON(t, router, "/v1/plan/summary", gin.H{"plan": plan})

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Summary types.TripSummary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "A Himalayan Week", body.Summary.Title)
}

func TestFinalizeTripPlan_MissingPlan(t *testing.T) {
	svc := new(MockPlannerService)
	router := setupTestRouter(svc)

	w := postJSON(t, router, "/v1/plan/summary", gin.H{})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Missing required fields"}`, w.Body.String())
}
