package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jimmc414/legal-doc-extract/internal/common"
	"github.com/jimmc414/legal-doc-extract/internal/inference/gemini"
	"github.com/jimmc414/legal-doc-extract/internal/pipeline"
)

// legaldoc processes one legal document: uploads it when given a local path
// (an existing file reference is used as-is), runs the classification and
// extraction pipeline, and prints the result JSON on stdout. Diagnostics go
// to stderr so stdout stays machine-readable.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		logger.Error("usage: legaldoc <file-path-or-reference>")
		os.Exit(2)
	}
	arg := os.Args[1]

	cfg := common.LoadConfig()
	if path := os.Getenv("LEGALDOC_CONFIG"); path != "" {
		if err := cfg.ApplyFile(path); err != nil {
			logger.Error("load config file", "path", path, "error", err)
			os.Exit(2)
		}
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	client := gemini.NewClient(gemini.Config{
		APIKey:      cfg.Gemini.APIKey,
		BaseURL:     cfg.Gemini.BaseURL,
		Model:       cfg.Gemini.Model,
		Timeout:     cfg.Gemini.Timeout,
		RetryBudget: cfg.Gemini.RetryBudget,
	}, logger)

	processor := pipeline.NewProcessor(
		logger,
		pipeline.Config{ConfidenceThreshold: cfg.Pipeline.ConfidenceThreshold},
		pipeline.NewClassifyStage(client, logger),
		pipeline.NewExtractStage(client, logger),
	)

	ctx := context.Background()

	fileRef := arg
	if st, err := os.Stat(arg); err == nil && !st.IsDir() {
		ref, upErr := client.Upload(ctx, arg, filepath.Base(arg))
		if upErr != nil {
			logger.Error("upload document", "path", arg, "error", upErr)
			os.Exit(1)
		}
		fileRef = ref
	}

	result := processor.Process(ctx, fileRef)

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.Error("encode result", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
