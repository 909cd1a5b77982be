package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/WanderWise/wander-wise-backend/config"
	apperrors "github.com/WanderWise/wander-wise-backend/errors"
	"github.com/WanderWise/wander-wise-backend/logger"
	"github.com/WanderWise/wander-wise-backend/metrics"
	"github.com/WanderWise/wander-wise-backend/pkg/extract"
	"github.com/WanderWise/wander-wise-backend/pkg/openai"
	"github.com/WanderWise/wander-wise-backend/types"
)

// RunState tracks the progress of a full planning run through its stages.
type RunState string

const (
	StateIdle                  RunState = "idle"
	StateDestinationsFound     RunState = "destinations_found"
	StateFlightsBooked         RunState = "flights_booked"
	StateHotelsBooked          RunState = "hotels_booked"
	StateBudgetOptimized       RunState = "budget_optimized"
	StateItineraryGenerated    RunState = "itinerary_generated"
	StateActivitiesRecommended RunState = "activities_recommended"
	StateAssembled             RunState = "assembled"
	StateFailed                RunState = "failed"
)

// Selector picks one index from a candidate list of length n. The returned
// index must be in [0, n); out-of-range values fall back to zero.
type Selector func(n int) int

// FirstCandidate always picks the first element, relying on the ordering the
// model already encoded.
func FirstCandidate(int) int {
	return 0
}

// PlannerServiceInterface defines the planning operations exposed to
// handlers.
type PlannerServiceInterface interface {
	FindDestinations(ctx context.Context, input types.TripInput) ([]types.Destination, error)
	FindFlights(ctx context.Context, input types.TripInput, destination types.Destination) (*types.FlightPair, error)
	FindHotels(ctx context.Context, input types.TripInput, destination types.Destination) ([]types.Hotel, error)
	OptimizeBudget(ctx context.Context, input types.TripInput, destination types.Destination, flights types.FlightPair, hotel types.Hotel) (*types.BudgetBreakdown, error)
	GenerateItinerary(ctx context.Context, input types.TripInput, destination types.Destination, hotel types.Hotel, budget types.BudgetBreakdown) ([]types.ItineraryDay, error)
	RecommendActivities(ctx context.Context, input types.TripInput, destination types.Destination, budget types.BudgetBreakdown) ([]types.Activity, error)
	CreateTripPlan(ctx context.Context, input types.TripInput) (*types.TripPlan, error)
	FinalizeTripPlan(ctx context.Context, plan types.TripPlan) (*types.TripSummary, error)
}

// PlannerService sequences the completion-backed planning stages. Each stage
// builds its prompt strictly from validated outputs of prior stages; a stage
// failure aborts the run with no partial result.
type PlannerService struct {
	client   openai.ClientInterface
	policy   config.PipelineConfig
	recorder *metrics.Recorder

	selectDestination Selector
	selectHotel       Selector

	// sleep and jitter are swapped out in tests.
	sleep  func(ctx context.Context, d time.Duration) error
	jitter func(max time.Duration) time.Duration
}

// PlannerOption customizes a PlannerService at construction.
type PlannerOption func(*PlannerService)

// WithDestinationSelector overrides the destination selection policy.
func WithDestinationSelector(sel Selector) PlannerOption {
	return func(s *PlannerService) { s.selectDestination = sel }
}

// WithHotelSelector overrides the hotel selection policy.
func WithHotelSelector(sel Selector) PlannerOption {
	return func(s *PlannerService) { s.selectHotel = sel }
}

// NewPlannerService creates a PlannerService with first-candidate selection.
// recorder may be nil to disable instrumentation.
func NewPlannerService(client openai.ClientInterface, policy config.PipelineConfig, recorder *metrics.Recorder, opts ...PlannerOption) *PlannerService {
	s := &PlannerService{
		client:            client,
		policy:            policy,
		recorder:          recorder,
		selectDestination: FirstCandidate,
		selectHotel:       FirstCandidate,
		sleep:             sleepContext,
		jitter: func(max time.Duration) time.Duration {
			if max <= 0 {
				return 0
			}
			return time.Duration(rand.Int63n(int64(max)))
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FindDestinations runs the destination-finding stage and returns every
// suggested destination.
func (s *PlannerService) FindDestinations(ctx context.Context, input types.TripInput) ([]types.Destination, error) {
	prompt := DestinationFinderPrompt(input)
	candidates, _, err := s.runStage(ctx, destinationSpec, prompt, false)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, apperrors.NoDestinationFound()
	}
	return extract.Decode[types.Destination](candidates)
}

// FindFlights runs the flight-booking stage and returns the round-trip pair
// for the chosen destination.
func (s *PlannerService) FindFlights(ctx context.Context, input types.TripInput, destination types.Destination) (*types.FlightPair, error) {
	prompt := FlightBookingPrompt(input, destination)
	candidates, raw, err := s.runStage(ctx, flightPairSpec, prompt, true)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, apperrors.UnparseableResponse(StageFlightBooking, raw)
	}
	pairs, err := extract.Decode[types.FlightPair](candidates[:1])
	if err != nil {
		return nil, err
	}
	return &pairs[0], nil
}

// FindHotels runs the hotel-booking stage and returns the accommodation
// options for the chosen destination.
func (s *PlannerService) FindHotels(ctx context.Context, input types.TripInput, destination types.Destination) ([]types.Hotel, error) {
	prompt := HotelBookingPrompt(input, destination)
	candidates, raw, err := s.runStage(ctx, hotelSpec, prompt, true)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, apperrors.UnparseableResponse(StageHotelBooking, raw)
	}
	return extract.Decode[types.Hotel](candidates)
}

// OptimizeBudget runs the budget-optimization stage over the already-known
// flight and hotel costs.
func (s *PlannerService) OptimizeBudget(ctx context.Context, input types.TripInput, destination types.Destination, flights types.FlightPair, hotel types.Hotel) (*types.BudgetBreakdown, error) {
	prompt := BudgetOptimizerPrompt(input, destination, flights, hotel)
	candidates, raw, err := s.runStage(ctx, budgetSpec, prompt, true)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, apperrors.UnparseableResponse(StageBudgetOptimization, raw)
	}
	breakdowns, err := extract.Decode[types.BudgetBreakdown](candidates[:1])
	if err != nil {
		return nil, err
	}
	return &breakdowns[0], nil
}

// GenerateItinerary runs the itinerary-generation stage and returns one
// entry per trip day.
func (s *PlannerService) GenerateItinerary(ctx context.Context, input types.TripInput, destination types.Destination, hotel types.Hotel, budget types.BudgetBreakdown) ([]types.ItineraryDay, error) {
	prompt := ItineraryGeneratorPrompt(input, destination, hotel, budget)
	candidates, raw, err := s.runStage(ctx, itinerarySpec, prompt, true)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, apperrors.UnparseableResponse(StageItineraryGeneration, raw)
	}
	return extract.Decode[types.ItineraryDay](candidates)
}

// RecommendActivities runs the activity-recommendation stage.
func (s *PlannerService) RecommendActivities(ctx context.Context, input types.TripInput, destination types.Destination, budget types.BudgetBreakdown) ([]types.Activity, error) {
	prompt := ActivityRecommendationPrompt(input, destination, budget)
	candidates, raw, err := s.runStage(ctx, activitySpec, prompt, true)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, apperrors.UnparseableResponse(StageActivityRecommendation, raw)
	}
	return extract.Decode[types.Activity](candidates)
}

// CreateTripPlan runs the full pipeline: destinations, flights, hotels,
// budget, itinerary, activities. The run is all-or-nothing; the first stage
// failure discards everything. An empty destination list or a selected
// destination without a name and country fails the run before any later
// stage is invoked.
func (s *PlannerService) CreateTripPlan(ctx context.Context, input types.TripInput) (*types.TripPlan, error) {
	log := logger.GetLogger()

	if err := input.Validate(); err != nil {
		return nil, apperrors.ValidationFailed("Invalid trip input", err.Error())
	}

	runCtx := ctx
	if s.policy.RunTimeoutSeconds > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, time.Duration(s.policy.RunTimeoutSeconds)*time.Second)
		defer cancel()
	}

	state := StateIdle
	advance := func(next RunState) {
		state = next
		log.Infow("Planning run advanced", "state", state, "origin", input.Origin)
	}
	fail := func(err error) (*types.TripPlan, error) {
		state = StateFailed
		s.recorder.ObserveRun(err)
		log.Errorw("Planning run failed", "state", state, "origin", input.Origin, "error", err)
		return nil, err
	}

	destinations, err := s.FindDestinations(runCtx, input)
	if err != nil {
		return fail(err)
	}
	destination := destinations[pick(s.selectDestination, len(destinations))]
	if destination.Name == "" || destination.Country == "" {
		return fail(apperrors.InvalidDestination(fmt.Sprintf("name=%q country=%q", destination.Name, destination.Country)))
	}
	advance(StateDestinationsFound)

	flights, err := s.FindFlights(runCtx, input, destination)
	if err != nil {
		return fail(err)
	}
	advance(StateFlightsBooked)

	hotels, err := s.FindHotels(runCtx, input, destination)
	if err != nil {
		return fail(err)
	}
	hotel := hotels[pick(s.selectHotel, len(hotels))]
	advance(StateHotelsBooked)

	budget, err := s.OptimizeBudget(runCtx, input, destination, *flights, hotel)
	if err != nil {
		return fail(err)
	}
	advance(StateBudgetOptimized)

	itinerary, err := s.GenerateItinerary(runCtx, input, destination, hotel, *budget)
	if err != nil {
		return fail(err)
	}
	advance(StateItineraryGenerated)

	activities, err := s.RecommendActivities(runCtx, input, destination, *budget)
	if err != nil {
		return fail(err)
	}
	advance(StateActivitiesRecommended)

	plan := &types.TripPlan{
		Destination: destination,
		Flights:     *flights,
		Hotels:      hotels,
		Itinerary:   itinerary,
		Budget:      *budget,
		Activities:  activities,
		TripInput:   input,
	}
	advance(StateAssembled)
	s.recorder.ObserveRun(nil)
	return plan, nil
}

// FinalizeTripPlan asks the model for a closing summary of a completed plan.
func (s *PlannerService) FinalizeTripPlan(ctx context.Context, plan types.TripPlan) (*types.TripSummary, error) {
	prompt := TripFinalizePrompt(plan)
	candidates, raw, err := s.runStage(ctx, summarySpec, prompt, true)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, apperrors.UnparseableResponse(StageTripFinalization, raw)
	}
	summaries, err := extract.Decode[types.TripSummary](candidates[:1])
	if err != nil {
		return nil, err
	}
	return &summaries[0], nil
}

// runStage executes one completion call with bounded retry, then normalizes
// the response. Only provider-side failures are retried; a completion that
// arrives but cannot be parsed is never re-requested.
func (s *PlannerService) runStage(ctx context.Context, spec extract.Spec, prompt string, jsonMode bool) ([]map[string]interface{}, string, error) {
	log := logger.GetLogger()
	started := time.Now()

	attempts := s.policy.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var raw string
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		raw, err = s.client.CreateChatCompletion(ctx, prompt, jsonMode)
		if err == nil {
			break
		}
		if ctx.Err() != nil || attempt == attempts {
			break
		}
		delay := s.backoff(attempt)
		log.Warnw("Stage attempt failed, retrying",
			"stage", spec.Stage, "attempt", attempt, "delay", delay, "error", err)
		if sleepErr := s.sleep(ctx, delay); sleepErr != nil {
			break
		}
	}
	if err != nil {
		err = asStageError(err, spec.Stage)
		s.recorder.ObserveStage(spec.Stage, err, started)
		return nil, "", err
	}

	candidates, err := extract.Candidates(raw, spec)
	s.recorder.ObserveStage(spec.Stage, err, started)
	if err != nil {
		log.Warnw("Stage response not parseable", "stage", spec.Stage, "raw_length", len(raw))
		return nil, raw, err
	}
	return candidates, raw, nil
}

// backoff computes the jittered exponential delay before the next attempt.
func (s *PlannerService) backoff(attempt int) time.Duration {
	baseMs := s.policy.RetryBaseMs
	if baseMs <= 0 {
		baseMs = 250
	}
	base := time.Duration(baseMs) * time.Millisecond
	return base<<(attempt-1) + s.jitter(base)
}

// asStageError keeps structured errors intact and wraps everything else as a
// provider failure for the stage.
func asStageError(err error, stage string) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperrors.ProviderFailure(err, stage)
}

func pick(sel Selector, n int) int {
	idx := sel(n)
	if idx < 0 || idx >= n {
		return 0
	}
	return idx
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
