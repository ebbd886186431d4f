package common

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jimmc414/legal-doc-extract/constants"
)

// Config holds all application configuration
type Config struct {
	Gemini   GeminiConfig   `yaml:"gemini"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Batch    BatchConfig    `yaml:"batch"`
}

// GeminiConfig holds inference-collaborator configuration
type GeminiConfig struct {
	APIKey      string        `yaml:"api_key"`
	BaseURL     string        `yaml:"base_url"`
	Model       string        `yaml:"model"`
	Timeout     time.Duration `yaml:"timeout"`
	RetryBudget int           `yaml:"retry_budget"`
}

// PipelineConfig holds pipeline policy knobs
type PipelineConfig struct {
	ConfidenceThreshold float64 `yaml:"confidence_threshold"`
}

// BatchConfig holds batch-runner configuration
type BatchConfig struct {
	Workers        int     `yaml:"workers"`
	RequestsPerSec float64 `yaml:"requests_per_sec"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	cfg := &Config{
		Gemini: GeminiConfig{
			APIKey:      getEnv("GEMINI_API_KEY", ""),
			BaseURL:     getEnv("GEMINI_BASE_URL", ""),
			Model:       getEnv("GEMINI_MODEL", ""),
			Timeout:     getEnvAsDuration("GEMINI_TIMEOUT", 0),
			RetryBudget: getEnvAsInt("GEMINI_RETRY_BUDGET", 0),
		},
		Pipeline: PipelineConfig{
			ConfidenceThreshold: getEnvAsFloat64("CONFIDENCE_THRESHOLD", 0),
		},
		Batch: BatchConfig{
			Workers:        getEnvAsInt("BATCH_WORKERS", 0),
			RequestsPerSec: getEnvAsFloat64("BATCH_REQUESTS_PER_SEC", 0),
		},
	}
	cfg.defaults()
	return cfg
}

// ApplyFile overlays a YAML config file onto c. Values set in the file win
// over environment values; unset file values leave c untouched.
func (c *Config) ApplyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return WrapError(err, "read config file")
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return WrapError(err, "parse config file")
	}
	c.defaults()
	return nil
}

func (c *Config) defaults() {
	if c.Gemini.BaseURL == "" {
		c.Gemini.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.0-flash-001"
	}
	if c.Gemini.Timeout <= 0 {
		c.Gemini.Timeout = 45 * time.Second
	}
	if c.Gemini.RetryBudget <= 0 {
		c.Gemini.RetryBudget = constants.DefaultRetryBudget
	}
	if c.Pipeline.ConfidenceThreshold <= 0 {
		c.Pipeline.ConfidenceThreshold = constants.ConfidenceThreshold
	}
	if c.Batch.Workers <= 0 {
		c.Batch.Workers = 4
	}
	if c.Batch.RequestsPerSec <= 0 {
		c.Batch.RequestsPerSec = 2
	}
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Gemini.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "GEMINI_API_KEY is required", ErrInvalidInput)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
