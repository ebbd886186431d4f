package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/jimmc414/legal-doc-extract/constants"
	"github.com/jimmc414/legal-doc-extract/internal/common"
	"github.com/jimmc414/legal-doc-extract/internal/inference/gemini"
	"github.com/jimmc414/legal-doc-extract/internal/pipeline"
	"github.com/jimmc414/legal-doc-extract/internal/schema"
)

// legaldoc-batch processes every supported file in a directory. Documents
// are independent, so they run concurrently across a worker pool; a shared
// rate limiter spaces out collaborator traffic. One result JSON line per
// document on stdout; a failed document never stops the rest.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		logger.Error("usage: legaldoc-batch <directory>")
		os.Exit(2)
	}
	dir := os.Args[1]

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

	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Error("read directory", "dir", dir, "error", err)
		os.Exit(1)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		p := filepath.Join(dir, e.Name())
		if constants.Supported(p) {
			paths = append(paths, p)
		}
	}
	if len(paths) == 0 {
		logger.Warn("no supported documents found", "dir", dir)
		return
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

	limiter := rate.NewLimiter(rate.Limit(cfg.Batch.RequestsPerSec), 1)

	ctx := context.Background()
	start := time.Now()
	logger.Info("batch.start", "dir", dir, "documents", len(paths), "workers", cfg.Batch.Workers)

	jobs := make(chan string)
	results := make(chan schema.LegalDocumentResult)

	var wg sync.WaitGroup
	for i := 0; i < cfg.Batch.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				results <- processOne(ctx, logger, limiter, client, processor, path)
			}
		}()
	}
	go func() {
		for _, p := range paths {
			jobs <- p
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	enc := json.NewEncoder(os.Stdout)
	var failed int
	for res := range results {
		if res.ExtractedData.Kind() == schema.KindError {
			failed++
		}
		if err := enc.Encode(res); err != nil {
			logger.Error("encode result", "document_id", res.DocumentID, "error", err)
		}
	}

	logger.Info("batch.done",
		"documents", len(paths),
		"failed", failed,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
}

// processOne uploads and processes a single file. Upload failures become a
// well-formed result so the batch output stays one line per input.
func processOne(
	ctx context.Context,
	logger *slog.Logger,
	limiter *rate.Limiter,
	client *gemini.Client,
	processor *pipeline.Processor,
	path string,
) schema.LegalDocumentResult {
	if err := limiter.Wait(ctx); err != nil {
		return failedResult(path, err)
	}
	fileRef, err := client.Upload(ctx, path, filepath.Base(path))
	if err != nil {
		logger.Error("batch.upload.failed", "path", path, "error", err)
		return failedResult(path, err)
	}

	if err := limiter.Wait(ctx); err != nil {
		return failedResult(fileRef, err)
	}
	return processor.Process(ctx, fileRef)
}

func failedResult(ref string, err error) schema.LegalDocumentResult {
	msg := fmt.Sprintf("Unexpected error: %s - %v", common.FailureKind(err), err)
	return schema.LegalDocumentResult{
		DocumentID:       schema.DocumentIDFromReference(ref),
		FileReference:    ref,
		DocumentType:     constants.DocTypeOther,
		ExtractedData:    schema.ErrorData(msg),
		ProcessingErrors: []string{msg},
	}
}
