package main

import (
	"time"

	"github.com/joho/godotenv"

	"github.com/WanderWise/wander-wise-backend/config"
	"github.com/WanderWise/wander-wise-backend/handlers"
	"github.com/WanderWise/wander-wise-backend/logger"
	"github.com/WanderWise/wander-wise-backend/metrics"
	"github.com/WanderWise/wander-wise-backend/pkg/openai"
	"github.com/WanderWise/wander-wise-backend/router"
	"github.com/WanderWise/wander-wise-backend/services"
)

func main() {
	// A .env file is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logger.InitLogger()
	log := logger.GetLogger()
	defer func() {
		_ = logger.Close()
	}()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	completionClient := openai.NewClient(
		cfg.OpenAI.APIKey,
		cfg.OpenAI.Model,
		cfg.OpenAI.BaseURL,
		time.Duration(cfg.OpenAI.TimeoutSeconds)*time.Second,
	)

	plannerService := services.NewPlannerService(completionClient, cfg.Pipeline, metrics.NewRecorder())

	r := router.SetupRouter(router.Dependencies{
		Config:         cfg,
		PlannerHandler: handlers.NewPlannerHandler(plannerService),
		HealthHandler:  handlers.NewHealthHandler(cfg),
		Logger:         log,
	})

	log.Infof("Starting server on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
