// Package config handles loading and validation of application configuration
// from environment variables and potentially configuration files.
package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/WanderWise/wander-wise-backend/logger"
	"github.com/spf13/viper"
)

// Environment represents the application's running environment (development or production).
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"

	// DefaultModel is used when OPENAI_MODEL is not set.
	DefaultModel = "gpt-4-turbo"

	// DefaultBaseURL is the completion provider endpoint root.
	DefaultBaseURL = "https://api.openai.com/v1"
)

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Environment    Environment `mapstructure:"ENVIRONMENT" yaml:"environment"`
	Port           string      `mapstructure:"PORT" yaml:"port"`
	AllowedOrigins []string    `mapstructure:"ALLOWED_ORIGINS" yaml:"allowed_origins"`
	Version        string      `mapstructure:"VERSION" yaml:"version"`
}

// OpenAIConfig holds completion provider connection details. The model name is
// read once at startup and treated as immutable for the process lifetime.
type OpenAIConfig struct {
	APIKey         string `mapstructure:"API_KEY" yaml:"api_key"`
	Model          string `mapstructure:"MODEL" yaml:"model"`
	BaseURL        string `mapstructure:"BASE_URL" yaml:"base_url"`
	TimeoutSeconds int    `mapstructure:"TIMEOUT_SECONDS" yaml:"timeout_seconds"`
}

// PipelineConfig holds the retry and run-timeout policy for the planning
// pipeline. Retries apply to provider failures only, never to shape errors.
type PipelineConfig struct {
	// MaxAttempts is the number of tries per stage call (1 = no retry)
	MaxAttempts int `mapstructure:"MAX_ATTEMPTS" yaml:"max_attempts"`
	// RetryBaseMs is the base delay for jittered exponential backoff
	RetryBaseMs int `mapstructure:"RETRY_BASE_MS" yaml:"retry_base_ms"`
	// RunTimeoutSeconds bounds a full multi-stage planning run
	RunTimeoutSeconds int `mapstructure:"RUN_TIMEOUT_SECONDS" yaml:"run_timeout_seconds"`
}

// Config aggregates all application configuration sections.
type Config struct {
	Server   ServerConfig   `mapstructure:"SERVER" yaml:"server"`
	OpenAI   OpenAIConfig   `mapstructure:"OPENAI" yaml:"openai"`
	Pipeline PipelineConfig `mapstructure:"PIPELINE" yaml:"pipeline"`
}

// IsDevelopment returns true if the application is running in development environment.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == EnvDevelopment
}

// IsProduction returns true if the application is running in production environment.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvProduction
}

// bindEnvVars binds multiple environment variables to config keys.
// Format: []{configKey, envVar}
func bindEnvVars(v *viper.Viper, bindings [][2]string) error {
	for _, b := range bindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b[0], err)
		}
	}
	return nil
}

// LoadConfig loads configuration from environment variables using Viper,
// sets default values, binds environment variables to config struct fields,
// unmarshals the configuration, and validates it.
func LoadConfig() (*Config, error) {
	v := viper.New()
	log := logger.GetLogger()

	v.SetDefault("SERVER.ENVIRONMENT", EnvDevelopment)
	v.SetDefault("SERVER.PORT", "8080")
	v.SetDefault("SERVER.ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("SERVER.VERSION", "dev")
	v.SetDefault("OPENAI.MODEL", DefaultModel)
	v.SetDefault("OPENAI.BASE_URL", DefaultBaseURL)
	v.SetDefault("OPENAI.TIMEOUT_SECONDS", 120)
	v.SetDefault("PIPELINE.MAX_ATTEMPTS", 3)
	v.SetDefault("PIPELINE.RETRY_BASE_MS", 250)
	v.SetDefault("PIPELINE.RUN_TIMEOUT_SECONDS", 300)
	v.SetDefault("LOG_LEVEL", "info")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Bind environment variables
	envBindings := [][2]string{
		// Server config
		{"SERVER.ENVIRONMENT", "SERVER_ENVIRONMENT"},
		{"SERVER.PORT", "PORT"},
		{"SERVER.ALLOWED_ORIGINS", "ALLOWED_ORIGINS"},
		{"SERVER.VERSION", "VERSION"},
		// Completion provider config
		{"OPENAI.API_KEY", "OPENAI_API_KEY"},
		{"OPENAI.MODEL", "OPENAI_MODEL"},
		{"OPENAI.BASE_URL", "OPENAI_BASE_URL"},
		{"OPENAI.TIMEOUT_SECONDS", "OPENAI_TIMEOUT_SECONDS"},
		// Pipeline retry policy
		{"PIPELINE.MAX_ATTEMPTS", "PIPELINE_MAX_ATTEMPTS"},
		{"PIPELINE.RETRY_BASE_MS", "PIPELINE_RETRY_BASE_MS"},
		{"PIPELINE.RUN_TIMEOUT_SECONDS", "PIPELINE_RUN_TIMEOUT_SECONDS"},
	}

	if err := bindEnvVars(v, envBindings); err != nil {
		return nil, err
	}

	env := v.GetString("SERVER.ENVIRONMENT")
	log.Infow("Configuration loaded",
		"environment", env,
		"server_port", v.GetString("SERVER.PORT"),
		"allowed_origins", v.GetString("SERVER.ALLOWED_ORIGINS"),
		"openai_model", v.GetString("OPENAI.MODEL"),
		"openai_api_key", logger.MaskAPIKey(v.GetString("OPENAI.API_KEY")),
		"pipeline_max_attempts", v.GetInt("PIPELINE.MAX_ATTEMPTS"),
		"pipeline_run_timeout", v.GetInt("PIPELINE.RUN_TIMEOUT_SECONDS"),
	)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal failed: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	log.Info("Configuration validated successfully")
	return &cfg, nil
}

// validateConfig checks if the loaded configuration values are valid.
func validateConfig(cfg *Config) error {
	log := logger.GetLogger()

	// Validate Server Config
	if cfg.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	// Validate AllowedOrigins format if not wildcard
	if !containsWildcard(cfg.Server.AllowedOrigins) {
		for _, origin := range cfg.Server.AllowedOrigins {
			if _, err := url.ParseRequestURI(origin); err != nil {
				return fmt.Errorf("invalid allowed origin '%s': %w", origin, err)
			}
		}
	}

	// Validate provider config
	if cfg.OpenAI.APIKey == "" {
		return fmt.Errorf("OpenAI API key is required")
	}
	if cfg.OpenAI.Model == "" {
		return fmt.Errorf("OpenAI model is required")
	}
	if cfg.OpenAI.BaseURL == "" {
		return fmt.Errorf("OpenAI base URL is required")
	}
	if _, err := url.ParseRequestURI(cfg.OpenAI.BaseURL); err != nil {
		return fmt.Errorf("invalid OpenAI base URL: %w", err)
	}
	if cfg.OpenAI.TimeoutSeconds <= 0 {
		return fmt.Errorf("OpenAI timeout must be positive")
	}

	// Validate pipeline policy
	if cfg.Pipeline.MaxAttempts <= 0 {
		return fmt.Errorf("pipeline max attempts must be positive")
	}
	if cfg.Pipeline.RetryBaseMs <= 0 {
		return fmt.Errorf("pipeline retry base must be positive")
	}
	if cfg.Pipeline.RunTimeoutSeconds <= 0 {
		return fmt.Errorf("pipeline run timeout must be positive")
	}

	if cfg.Server.Environment != EnvProduction && cfg.Server.Environment != EnvDevelopment {
		log.Warnw("Unrecognized environment, treating as development", "environment", cfg.Server.Environment)
	}

	return nil
}

// containsWildcard checks if the list of allowed origins contains the wildcard "*".
func containsWildcard(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}
