package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/WanderWise/wander-wise-backend/config"
	"github.com/WanderWise/wander-wise-backend/handlers"
	"github.com/WanderWise/wander-wise-backend/middleware"
)

// Dependencies struct holds all dependencies required for setting up routes.
type Dependencies struct {
	Config         *config.Config
	PlannerHandler *handlers.PlannerHandler
	HealthHandler  *handlers.HealthHandler
	Logger         *zap.SugaredLogger
}

// SetupRouter configures and returns the main Gin engine with all routes defined.
func SetupRouter(deps Dependencies) *gin.Engine {
	if deps.Config.Server.Environment == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	// Global Middleware
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(&deps.Config.Server))

	// Health and Metrics Routes
	r.GET("/health", deps.HealthHandler.Readiness)
	r.GET("/health/liveness", deps.HealthHandler.Liveness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Versioned API Group (v1)
	v1 := r.Group("/v1")
	{
		v1.POST("/destinations", deps.PlannerHandler.FindDestinations)
		v1.POST("/flights", deps.PlannerHandler.FindFlights)
		v1.POST("/hotels", deps.PlannerHandler.FindHotels)
		v1.POST("/budget", deps.PlannerHandler.OptimizeBudget)
		v1.POST("/itinerary", deps.PlannerHandler.GenerateItinerary)
		v1.POST("/activities", deps.PlannerHandler.RecommendActivities)
		v1.POST("/plan", deps.PlannerHandler.CreateTripPlan)
		v1.POST("/plan/summary", deps.PlannerHandler.FinalizeTripPlan)
	}

	return r
}
