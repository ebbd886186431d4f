// Package schema defines the typed extraction records for each supported
// document type, the two-phase builders that normalize and validate raw
// inference payloads, and the result envelope emitted by the pipeline.
package schema

import (
	"github.com/jimmc414/legal-doc-extract/constants"
)

// ClassificationResult is the classifier stage output for one document.
type ClassificationResult struct {
	Classification constants.DocumentType `json:"classification"`
	Confidence     float64                `json:"confidence"`
}

// Party is a person or entity named in a filing. Value type; compared
// structurally, embedded by value in the records below.
type Party struct {
	Name     string `json:"name"`
	Role     string `json:"role,omitempty"`
	Address  string `json:"address,omitempty"`
	Attorney string `json:"attorney,omitempty"`
}

// JudgmentRecord is the validated payload for a money judgment.
// Dates are ISO-8601 strings (YYYY-MM-DD); amounts are decimals with
// thousands separators already stripped; InterestRate is a fraction,
// not a percentage; SatisfactionStatus is tri-state (nil = unknown).
type JudgmentRecord struct {
	CaseNumber         string   `json:"case_number"`
	FiledDate          string   `json:"filed_date"`
	County             string   `json:"county"`
	Court              string   `json:"court,omitempty"`
	PlaintiffCreditor  Party    `json:"plaintiff_creditor"`
	DefendantsDebtors  []Party  `json:"defendants_debtors"`
	JudgmentAmount     float64  `json:"judgment_amount"`
	InterestRate       *float64 `json:"interest_rate,omitempty"`
	Judge              string   `json:"judge,omitempty"`
	SatisfactionStatus *bool    `json:"satisfaction_status,omitempty"`
	AttorneyFees       *float64 `json:"attorney_fees,omitempty"`
}

// DismissalRecord is the validated payload for a case dismissal.
type DismissalRecord struct {
	CaseNumber    string                  `json:"case_number"`
	FiledDate     string                  `json:"filed_date"`
	County        string                  `json:"county"`
	Court         string                  `json:"court,omitempty"`
	Plaintiff     Party                   `json:"plaintiff"`
	Defendants    []Party                 `json:"defendants"`
	DismissalType constants.DismissalType `json:"dismissal_type"`
	Judge         string                  `json:"judge,omitempty"`
	Reason        string                  `json:"reason,omitempty"`
}

// AffidavitRecord is the validated payload for a sworn statement.
type AffidavitRecord struct {
	Affiant              Party  `json:"affiant"`
	DateOfAffidavit      string `json:"date_of_affidavit"`
	ContentSummary       string `json:"content_summary"`
	NotaryPublic         string `json:"notary_public,omitempty"`
	NotaryCounty         string `json:"notary_county,omitempty"`
	NotaryState          string `json:"notary_state,omitempty"`
	CommissionExpiration string `json:"commission_expiration,omitempty"`
}

// ExtractionError is the uniform failure variant: any recoverable problem
// with a document's content or the collaborator surfaces as this value.
type ExtractionError struct {
	ErrorMessage string `json:"error_message"`
}
