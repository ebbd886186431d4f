package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/jimmc414/legal-doc-extract/constants"
)

func newTestProcessor(inf *fakeInferencer) *Processor {
	return NewProcessor(nil, Config{}, NewClassifyStage(inf, nil), NewExtractStage(inf, nil))
}

func TestProcessConfidentJudgment(t *testing.T) {
	inf := &fakeInferencer{
		classifyJSON: `{"classification":"Judgment","confidence":0.95}`,
		extractJSON:  validJudgmentJSON,
	}
	p := newTestProcessor(inf)

	result := p.Process(context.Background(), "files:doc42")

	if result.DocumentID != "doc42" {
		t.Errorf("document_id = %q", result.DocumentID)
	}
	if result.DocumentType != constants.DocTypeJudgment {
		t.Errorf("document_type = %q", result.DocumentType)
	}
	rec, ok := result.ExtractedData.Judgment()
	if !ok {
		t.Fatalf("extracted kind = %v, want judgment", result.ExtractedData.Kind())
	}
	if rec.JudgmentAmount != 12000.50 {
		t.Errorf("judgment amount = %v, want comma-stripped 12000.50", rec.JudgmentAmount)
	}
	if len(result.ProcessingErrors) != 0 {
		t.Errorf("processing errors = %v, want none", result.ProcessingErrors)
	}
	if inf.classifyCalls != 1 || inf.extractCalls != 1 {
		t.Errorf("calls = %d classify / %d extract", inf.classifyCalls, inf.extractCalls)
	}
}

func TestProcessLowConfidenceSkipsExtraction(t *testing.T) {
	inf := &fakeInferencer{
		classifyJSON: `{"classification":"Judgment","confidence":0.5}`,
	}
	p := newTestProcessor(inf)

	result := p.Process(context.Background(), "files:doc42")

	if result.DocumentType != constants.DocTypeOther {
		t.Errorf("document_type = %q, want Other", result.DocumentType)
	}
	ee, ok := result.ExtractedData.Err()
	if !ok {
		t.Fatalf("extracted kind = %v, want error", result.ExtractedData.Kind())
	}
	if ee.ErrorMessage != LowConfidenceMessage {
		t.Errorf("error message = %q", ee.ErrorMessage)
	}
	if len(result.ProcessingErrors) != 1 || result.ProcessingErrors[0] != LowConfidenceMessage {
		t.Errorf("processing errors = %v", result.ProcessingErrors)
	}
	if inf.extractCalls != 0 {
		t.Errorf("extraction ran despite low confidence")
	}
}

func TestProcessKeepsTypeOnExtractionValidationFailure(t *testing.T) {
	bad := strings.Replace(validJudgmentJSON, "ABC-123-4567", "abc-123-4567", 1)
	inf := &fakeInferencer{
		classifyJSON: `{"classification":"Judgment","confidence":0.9}`,
		extractJSON:  bad,
	}
	p := newTestProcessor(inf)

	result := p.Process(context.Background(), "files:doc42")

	// The classification decision stands even when extraction degrades.
	if result.DocumentType != constants.DocTypeJudgment {
		t.Errorf("document_type = %q, want Judgment", result.DocumentType)
	}
	ee, ok := result.ExtractedData.Err()
	if !ok {
		t.Fatalf("extracted kind = %v, want error", result.ExtractedData.Kind())
	}
	if !strings.Contains(ee.ErrorMessage, "case_number") {
		t.Errorf("error message %q should name case_number", ee.ErrorMessage)
	}
	if len(result.ProcessingErrors) != 0 {
		t.Errorf("processing errors = %v, want none for extraction-level failure", result.ProcessingErrors)
	}
}

func TestProcessClassifiedOther(t *testing.T) {
	inf := &fakeInferencer{
		classifyJSON: `{"classification":"Other","confidence":0.9}`,
	}
	p := newTestProcessor(inf)

	result := p.Process(context.Background(), "files:doc42")

	if result.DocumentType != constants.DocTypeOther {
		t.Errorf("document_type = %q", result.DocumentType)
	}
	ee, ok := result.ExtractedData.Err()
	if !ok {
		t.Fatalf("extracted kind = %v, want error", result.ExtractedData.Kind())
	}
	if ee.ErrorMessage != UnsupportedTypeMessage {
		t.Errorf("error message = %q", ee.ErrorMessage)
	}
	if inf.extractCalls != 0 {
		t.Errorf("extraction inference ran for Other")
	}
}

func TestProcessClassificationFailure(t *testing.T) {
	inf := &fakeInferencer{
		classifyErr: errors.New("gemini unavailable"),
	}
	p := newTestProcessor(inf)

	result := p.Process(context.Background(), "files:doc42")

	if result.DocumentType != constants.DocTypeOther {
		t.Errorf("document_type = %q, want Other", result.DocumentType)
	}
	ee, ok := result.ExtractedData.Err()
	if !ok {
		t.Fatalf("extracted kind = %v, want error", result.ExtractedData.Kind())
	}
	if !strings.Contains(ee.ErrorMessage, "gemini unavailable") {
		t.Errorf("error message = %q", ee.ErrorMessage)
	}
	if len(result.ProcessingErrors) != 1 || !strings.Contains(result.ProcessingErrors[0], "gemini unavailable") {
		t.Errorf("processing errors = %v", result.ProcessingErrors)
	}
	if inf.extractCalls != 0 {
		t.Errorf("extraction ran after classification failure")
	}
}

func TestProcessRejectsMalformedClassification(t *testing.T) {
	cases := []struct {
		name string
		json string
	}{
		{"unknown type", `{"classification":"Subpoena","confidence":0.9}`},
		{"confidence above one", `{"classification":"Judgment","confidence":1.5}`},
		{"not json", `judgment, probably`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inf := &fakeInferencer{classifyJSON: tc.json}
			p := newTestProcessor(inf)

			result := p.Process(context.Background(), "files:doc42")
			if result.DocumentType != constants.DocTypeOther {
				t.Errorf("document_type = %q, want Other", result.DocumentType)
			}
			if _, ok := result.ExtractedData.Err(); !ok {
				t.Errorf("extracted kind = %v, want error", result.ExtractedData.Kind())
			}
			if len(result.ProcessingErrors) != 1 {
				t.Errorf("processing errors = %v", result.ProcessingErrors)
			}
		})
	}
}

func TestProcessResultMarshalsCompletely(t *testing.T) {
	inf := &fakeInferencer{
		classifyJSON: `{"classification":"Judgment","confidence":0.95}`,
		extractJSON:  validJudgmentJSON,
	}
	p := newTestProcessor(inf)

	result := p.Process(context.Background(), "files:doc42")
	out, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}
	s := string(out)
	if !strings.Contains(s, `"document_id":"doc42"`) {
		t.Errorf("missing document_id: %s", s)
	}
	if !strings.Contains(s, `"processing_errors":[]`) {
		t.Errorf("processing_errors should marshal as empty array: %s", s)
	}
	if !strings.Contains(s, `"judgment_amount":12000.5`) {
		t.Errorf("judgment amount should be numeric in output: %s", s)
	}
}

func TestDocumentIDUsesTrailingSegment(t *testing.T) {
	inf := &fakeInferencer{
		classifyJSON: `{"classification":"Other","confidence":0.9}`,
	}
	p := newTestProcessor(inf)

	result := p.Process(context.Background(), "no-colon-reference")
	if result.DocumentID != "no-colon-reference" {
		t.Errorf("document_id = %q", result.DocumentID)
	}
}
