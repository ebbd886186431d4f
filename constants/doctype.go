package constants

// DocumentType is the canonical classification for an incoming legal document.
type DocumentType string

// Stable values (the classifier taxonomy; store and emit these exact strings).
const (
	DocTypeJudgment  DocumentType = "Judgment"
	DocTypeDismissal DocumentType = "Dismissal"
	DocTypeAffidavit DocumentType = "Affidavit"
	DocTypeOther     DocumentType = "Other" // unsupported or unclassifiable
)

// DocumentTypes lists the full taxonomy in classifier prompt order.
var DocumentTypes = []DocumentType{DocTypeJudgment, DocTypeDismissal, DocTypeAffidavit, DocTypeOther}

// Valid reports whether t is one of the known taxonomy values.
func (t DocumentType) Valid() bool {
	switch t {
	case DocTypeJudgment, DocTypeDismissal, DocTypeAffidavit, DocTypeOther:
		return true
	}
	return false
}

// DismissalType classifies how a case was dismissed.
type DismissalType string

const (
	DismissalWithPrejudice    DismissalType = "with prejudice"
	DismissalWithoutPrejudice DismissalType = "without prejudice"
	DismissalVoluntary        DismissalType = "voluntary"
	DismissalInvoluntary      DismissalType = "involuntary"
)

// DismissalTypes lists the allowed dismissal_type values for schema enums.
var DismissalTypes = []DismissalType{
	DismissalWithPrejudice,
	DismissalWithoutPrejudice,
	DismissalVoluntary,
	DismissalInvoluntary,
}

// Valid reports whether d is one of the known dismissal types.
func (d DismissalType) Valid() bool {
	switch d {
	case DismissalWithPrejudice, DismissalWithoutPrejudice, DismissalVoluntary, DismissalInvoluntary:
		return true
	}
	return false
}

// Pipeline policy constants.
const (
	// ConfidenceThreshold is the classification gate: below this, extraction is skipped
	// and the document is reported as Other.
	ConfidenceThreshold = 0.8

	// DefaultRetryBudget bounds collaborator-side retries per inference call.
	DefaultRetryBudget = 3

	// MaxContentSummaryLen caps affidavit content summaries.
	MaxContentSummaryLen = 500
)
