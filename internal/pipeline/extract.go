package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jimmc414/legal-doc-extract/constants"
	"github.com/jimmc414/legal-doc-extract/internal/common"
	"github.com/jimmc414/legal-doc-extract/internal/inference"
	"github.com/jimmc414/legal-doc-extract/internal/schema"
)

// UnsupportedTypeMessage is the fixed error for documents classified Other.
const UnsupportedTypeMessage = "Extraction for document type 'Other' not implemented."

// ExtractStage populates the type-specific record for a classified document.
// It never returns an error for document-content problems: validation and
// collaborator failures fold into the error variant, so every call yields a
// usable ExtractedData value.
type ExtractStage struct {
	Logger     *slog.Logger
	Inferencer inference.StructuredInferencer
}

func NewExtractStage(inf inference.StructuredInferencer, logger *slog.Logger) *ExtractStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExtractStage{Logger: logger, Inferencer: inf}
}

func (s *ExtractStage) Run(ctx context.Context, fileRef string, docType constants.DocumentType) schema.ExtractedData {
	switch docType {
	case constants.DocTypeJudgment:
		return s.extractJudgment(ctx, fileRef)
	case constants.DocTypeDismissal:
		return s.extractDismissal(ctx, fileRef)
	case constants.DocTypeAffidavit:
		return s.extractAffidavit(ctx, fileRef)
	case constants.DocTypeOther:
		s.Logger.Info("pipeline.extract.unsupported", "file_reference", fileRef)
		return schema.ErrorData(UnsupportedTypeMessage)
	default:
		// Unreachable with a validated classification; a logic error, not a
		// document problem, so it must not be folded into the error variant.
		panic(fmt.Sprintf("pipeline: invalid document type %q", docType))
	}
}

func (s *ExtractStage) extractJudgment(ctx context.Context, fileRef string) schema.ExtractedData {
	raw, err := s.infer(ctx, fileRef, constants.DocTypeJudgment, inference.BuildJudgmentSchema(), inference.JudgmentAmountKeys)
	if err != nil {
		return collaboratorFailure(err)
	}
	var payload schema.JudgmentPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return bindFailure(s.Logger, fileRef, constants.DocTypeJudgment, err)
	}
	rec, err := schema.NewJudgmentRecord(payload)
	if err != nil {
		return bindFailure(s.Logger, fileRef, constants.DocTypeJudgment, err)
	}
	s.Logger.Info("pipeline.extract.ok",
		"file_reference", fileRef, "document_type", constants.DocTypeJudgment,
		"case_number", rec.CaseNumber, "judgment_amount", rec.JudgmentAmount,
	)
	return schema.JudgmentData(rec)
}

func (s *ExtractStage) extractDismissal(ctx context.Context, fileRef string) schema.ExtractedData {
	raw, err := s.infer(ctx, fileRef, constants.DocTypeDismissal, inference.BuildDismissalSchema(), nil)
	if err != nil {
		return collaboratorFailure(err)
	}
	var payload schema.DismissalPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return bindFailure(s.Logger, fileRef, constants.DocTypeDismissal, err)
	}
	rec, err := schema.NewDismissalRecord(payload)
	if err != nil {
		return bindFailure(s.Logger, fileRef, constants.DocTypeDismissal, err)
	}
	s.Logger.Info("pipeline.extract.ok",
		"file_reference", fileRef, "document_type", constants.DocTypeDismissal,
		"case_number", rec.CaseNumber, "dismissal_type", rec.DismissalType,
	)
	return schema.DismissalData(rec)
}

func (s *ExtractStage) extractAffidavit(ctx context.Context, fileRef string) schema.ExtractedData {
	raw, err := s.infer(ctx, fileRef, constants.DocTypeAffidavit, inference.BuildAffidavitSchema(), nil)
	if err != nil {
		return collaboratorFailure(err)
	}
	var payload schema.AffidavitPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return bindFailure(s.Logger, fileRef, constants.DocTypeAffidavit, err)
	}
	rec, err := schema.NewAffidavitRecord(payload)
	if err != nil {
		return bindFailure(s.Logger, fileRef, constants.DocTypeAffidavit, err)
	}
	s.Logger.Info("pipeline.extract.ok",
		"file_reference", fileRef, "document_type", constants.DocTypeAffidavit,
		"affiant", rec.Affiant.Name,
	)
	return schema.AffidavitData(rec)
}

func (s *ExtractStage) infer(ctx context.Context, fileRef string, docType constants.DocumentType, schemaMap map[string]any, amountKeys []string) ([]byte, error) {
	return s.Inferencer.Infer(ctx, inference.Request{
		FileReference: fileRef,
		Prompt:        inference.BuildExtractionPrompt(docType),
		Schema:        schemaMap,
		AmountKeys:    amountKeys,
	})
}

// bindFailure folds a validation or decode failure into the error variant,
// preserving the field-level message.
func bindFailure(logger *slog.Logger, fileRef string, docType constants.DocumentType, err error) schema.ExtractedData {
	logger.Warn("pipeline.extract.bind_failed",
		"file_reference", fileRef, "document_type", docType, "error", err,
	)
	return schema.ErrorData(err.Error())
}

// collaboratorFailure folds an inference failure into the error variant with
// a stable failure-kind prefix for diagnosis.
func collaboratorFailure(err error) schema.ExtractedData {
	return schema.ErrorData(fmt.Sprintf("Unexpected error: %s - %v", common.FailureKind(err), err))
}
