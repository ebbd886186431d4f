// Package gemini implements the inference and storage collaborators against
// the Gemini generative-language API: structured JSON inference over
// uploaded files, plus the File API upload itself.
package gemini

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/jimmc414/legal-doc-extract/constants"
	"github.com/jimmc414/legal-doc-extract/internal/resilience"
)

// Config for the Gemini client.
type Config struct {
	APIKey      string        // if empty, falls back to env GEMINI_API_KEY
	BaseURL     string        // default https://generativelanguage.googleapis.com
	Model       string        // e.g. "gemini-2.0-flash-001"
	Timeout     time.Duration // http client timeout
	RetryBudget int           // retries per inference call; default 3
}

type Client struct {
	cfg        Config
	httpClient *http.Client
	exec       *resilience.Executor
	log        *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash-001"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}
	if cfg.RetryBudget <= 0 {
		cfg.RetryBudget = constants.DefaultRetryBudget
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		exec: resilience.NewExecutor(resilience.Config{
			RetryMaxAttempts: cfg.RetryBudget,
			BreakerEnabled:   true,
		}),
		log: logger,
	}
}
