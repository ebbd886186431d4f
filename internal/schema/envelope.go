package schema

import (
	"encoding/json"
	"strings"

	"github.com/jimmc414/legal-doc-extract/constants"
)

// ExtractedKind tags the active variant of ExtractedData.
type ExtractedKind string

const (
	KindJudgment  ExtractedKind = "judgment"
	KindDismissal ExtractedKind = "dismissal"
	KindAffidavit ExtractedKind = "affidavit"
	KindError     ExtractedKind = "error"
)

// ExtractedData is a tagged union over exactly one extraction outcome.
// Construct it only through the variant constructors below; the zero value
// is not a valid ExtractedData.
type ExtractedData struct {
	kind      ExtractedKind
	judgment  *JudgmentRecord
	dismissal *DismissalRecord
	affidavit *AffidavitRecord
	err       *ExtractionError
}

// JudgmentData wraps a judgment record.
func JudgmentData(r JudgmentRecord) ExtractedData {
	return ExtractedData{kind: KindJudgment, judgment: &r}
}

// DismissalData wraps a dismissal record.
func DismissalData(r DismissalRecord) ExtractedData {
	return ExtractedData{kind: KindDismissal, dismissal: &r}
}

// AffidavitData wraps an affidavit record.
func AffidavitData(r AffidavitRecord) ExtractedData {
	return ExtractedData{kind: KindAffidavit, affidavit: &r}
}

// ErrorData wraps a failure message in the uniform error variant.
func ErrorData(message string) ExtractedData {
	return ExtractedData{kind: KindError, err: &ExtractionError{ErrorMessage: message}}
}

// Kind returns the active variant tag.
func (d ExtractedData) Kind() ExtractedKind { return d.kind }

// Judgment returns the judgment variant, if active.
func (d ExtractedData) Judgment() (JudgmentRecord, bool) {
	if d.judgment == nil {
		return JudgmentRecord{}, false
	}
	return *d.judgment, true
}

// Dismissal returns the dismissal variant, if active.
func (d ExtractedData) Dismissal() (DismissalRecord, bool) {
	if d.dismissal == nil {
		return DismissalRecord{}, false
	}
	return *d.dismissal, true
}

// Affidavit returns the affidavit variant, if active.
func (d ExtractedData) Affidavit() (AffidavitRecord, bool) {
	if d.affidavit == nil {
		return AffidavitRecord{}, false
	}
	return *d.affidavit, true
}

// Err returns the error variant, if active.
func (d ExtractedData) Err() (ExtractionError, bool) {
	if d.err == nil {
		return ExtractionError{}, false
	}
	return *d.err, true
}

type extractedDataJSON struct {
	Kind      ExtractedKind    `json:"kind"`
	Judgment  *JudgmentRecord  `json:"judgment,omitempty"`
	Dismissal *DismissalRecord `json:"dismissal,omitempty"`
	Affidavit *AffidavitRecord `json:"affidavit,omitempty"`
	Error     *ExtractionError `json:"error,omitempty"`
}

// MarshalJSON emits the tag plus exactly one variant object.
func (d ExtractedData) MarshalJSON() ([]byte, error) {
	return json.Marshal(extractedDataJSON{
		Kind:      d.kind,
		Judgment:  d.judgment,
		Dismissal: d.dismissal,
		Affidavit: d.affidavit,
		Error:     d.err,
	})
}

// LegalDocumentResult is the terminal, immutable output for one document.
// DocumentType records the classification decision; ExtractedData records
// the extraction outcome. They legitimately diverge when classification
// succeeded but extraction degraded to the error variant.
type LegalDocumentResult struct {
	DocumentID       string                 `json:"document_id"`
	FileReference    string                 `json:"file_reference"`
	DocumentType     constants.DocumentType `json:"document_type"`
	ExtractedData    ExtractedData          `json:"extracted_data"`
	ProcessingErrors []string               `json:"processing_errors"`
}

// DocumentIDFromReference derives a display identifier from an opaque file
// reference: the trailing colon-delimited segment, or the whole reference
// when it carries no colon. Not a URI parser.
func DocumentIDFromReference(ref string) string {
	if i := strings.LastIndex(ref, ":"); i >= 0 {
		return ref[i+1:]
	}
	return ref
}
