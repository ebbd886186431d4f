// Package pipeline sequences classification, the confidence gate, and typed
// extraction into one immutable result per document.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jimmc414/legal-doc-extract/internal/inference"
	"github.com/jimmc414/legal-doc-extract/internal/schema"
)

// ClassifyStage decides the document type with one taxonomy-constrained
// inference call. Structural failures propagate as errors; they are fatal
// for the document, not the batch.
type ClassifyStage struct {
	Logger     *slog.Logger
	Inferencer inference.StructuredInferencer
}

func NewClassifyStage(inf inference.StructuredInferencer, logger *slog.Logger) *ClassifyStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &ClassifyStage{Logger: logger, Inferencer: inf}
}

func (s *ClassifyStage) Run(ctx context.Context, fileRef string) (schema.ClassificationResult, error) {
	start := time.Now()

	raw, err := s.Inferencer.Infer(ctx, inference.Request{
		FileReference: fileRef,
		Prompt:        inference.BuildClassificationPrompt(fileRef),
		Schema:        inference.BuildClassificationSchema(),
	})
	if err != nil {
		return schema.ClassificationResult{}, fmt.Errorf("classify document: %w", err)
	}

	var result schema.ClassificationResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return schema.ClassificationResult{}, fmt.Errorf("parse classification response: %w", err)
	}
	if !result.Classification.Valid() {
		return schema.ClassificationResult{}, fmt.Errorf("classification response has unknown type %q", result.Classification)
	}
	if result.Confidence < 0 || result.Confidence > 1 {
		return schema.ClassificationResult{}, fmt.Errorf("classification confidence %v out of range [0,1]", result.Confidence)
	}

	s.Logger.Info("pipeline.classify.ok",
		"file_reference", fileRef,
		"classification", result.Classification,
		"confidence", result.Confidence,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}
