package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/jimmc414/legal-doc-extract/constants"
	"github.com/jimmc414/legal-doc-extract/internal/schema"
)

// LowConfidenceMessage is the fixed gate message; it appears both as the
// error variant and in processing_errors.
const LowConfidenceMessage = "Low confidence in document classification."

// Config holds orchestrator policy.
type Config struct {
	ConfidenceThreshold float64 // default constants.ConfidenceThreshold
}

// Processor runs one document through classify → confidence gate → extract
// and assembles the terminal result. Every invocation returns a complete,
// internally consistent LegalDocumentResult; no partial state is observable.
// Processors hold no per-document state, so independent documents may be
// processed concurrently with one Processor.
type Processor struct {
	Logger   *slog.Logger
	Cfg      Config
	Classify *ClassifyStage
	Extract  *ExtractStage
}

func NewProcessor(logger *slog.Logger, cfg Config, classify *ClassifyStage, extract *ExtractStage) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.ConfidenceThreshold <= 0 {
		cfg.ConfidenceThreshold = constants.ConfidenceThreshold
	}
	return &Processor{Logger: logger, Cfg: cfg, Classify: classify, Extract: extract}
}

// Process runs the pipeline for one uploaded document. Classification
// failures and the confidence gate resolve to document type Other with the
// error variant; extraction never aborts the document. document_id is the
// trailing colon-delimited segment of the file reference.
func (p *Processor) Process(ctx context.Context, fileRef string) schema.LegalDocumentResult {
	start := time.Now()
	docID := schema.DocumentIDFromReference(fileRef)

	classification, err := p.Classify.Run(ctx, fileRef)
	if err != nil {
		p.Logger.Error("pipeline.classify.failed", "file_reference", fileRef, "error", err)
		return schema.LegalDocumentResult{
			DocumentID:       docID,
			FileReference:    fileRef,
			DocumentType:     constants.DocTypeOther,
			ExtractedData:    schema.ErrorData(err.Error()),
			ProcessingErrors: []string{err.Error()},
		}
	}

	if classification.Confidence < p.Cfg.ConfidenceThreshold {
		p.Logger.Warn("pipeline.gate.low_confidence",
			"file_reference", fileRef,
			"classification", classification.Classification,
			"confidence", classification.Confidence,
			"threshold", p.Cfg.ConfidenceThreshold,
		)
		return schema.LegalDocumentResult{
			DocumentID:       docID,
			FileReference:    fileRef,
			DocumentType:     constants.DocTypeOther,
			ExtractedData:    schema.ErrorData(LowConfidenceMessage),
			ProcessingErrors: []string{LowConfidenceMessage},
		}
	}

	extracted := p.Extract.Run(ctx, fileRef, classification.Classification)

	p.Logger.Info("pipeline.done",
		"file_reference", fileRef,
		"document_id", docID,
		"document_type", classification.Classification,
		"extracted_kind", extracted.Kind(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return schema.LegalDocumentResult{
		DocumentID:       docID,
		FileReference:    fileRef,
		DocumentType:     classification.Classification,
		ExtractedData:    extracted,
		ProcessingErrors: []string{},
	}
}
