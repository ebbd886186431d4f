package schema

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jimmc414/legal-doc-extract/constants"
	"github.com/jimmc414/legal-doc-extract/internal/common"
)

// CaseNumberPattern is the fixed case-number shape for judgments and
// dismissals: three uppercase letters, three digits, four digits.
var CaseNumberPattern = regexp.MustCompile(`^[A-Z]{3}-\d{3}-\d{4}$`)

// JudgmentPayload is the loose wire shape a judgment arrives in. Amount
// fields are `any` because models return them as strings (possibly with
// thousands separators) or bare numbers; satisfaction_status may be a
// boolean or free text. NewJudgmentRecord normalizes and validates.
type JudgmentPayload struct {
	CaseNumber         string   `json:"case_number"`
	FiledDate          string   `json:"filed_date"`
	County             string   `json:"county"`
	Court              string   `json:"court,omitempty"`
	PlaintiffCreditor  Party    `json:"plaintiff_creditor"`
	DefendantsDebtors  []Party  `json:"defendants_debtors"`
	JudgmentAmount     any      `json:"judgment_amount"`
	InterestRate       *float64 `json:"interest_rate,omitempty"`
	Judge              string   `json:"judge,omitempty"`
	SatisfactionStatus any      `json:"satisfaction_status,omitempty"`
	AttorneyFees       any      `json:"attorney_fees,omitempty"`
}

// DismissalPayload is the loose wire shape for a dismissal.
type DismissalPayload struct {
	CaseNumber    string  `json:"case_number"`
	FiledDate     string  `json:"filed_date"`
	County        string  `json:"county"`
	Court         string  `json:"court,omitempty"`
	Plaintiff     Party   `json:"plaintiff"`
	Defendants    []Party `json:"defendants"`
	DismissalType string  `json:"dismissal_type"`
	Judge         string  `json:"judge,omitempty"`
	Reason        string  `json:"reason,omitempty"`
}

// AffidavitPayload is the loose wire shape for an affidavit.
type AffidavitPayload struct {
	Affiant              Party  `json:"affiant"`
	DateOfAffidavit      string `json:"date_of_affidavit"`
	ContentSummary       string `json:"content_summary"`
	NotaryPublic         string `json:"notary_public,omitempty"`
	NotaryCounty         string `json:"notary_county,omitempty"`
	NotaryState          string `json:"notary_state,omitempty"`
	CommissionExpiration string `json:"commission_expiration,omitempty"`
}

// NewJudgmentRecord builds a JudgmentRecord from a raw payload: a pure
// normalization phase (comma stripping, satisfaction heuristics) followed
// by a validation phase that either yields a complete record or an error
// aggregating every violated rule. No partial record is ever returned.
func NewJudgmentRecord(p JudgmentPayload) (JudgmentRecord, error) {
	v := common.NewValidator()

	amount := parseAmount(v, "judgment_amount", p.JudgmentAmount)
	fees := parseAmount(v, "attorney_fees", p.AttorneyFees)
	status := InferSatisfactionStatus(p.SatisfactionStatus)

	v.Field("case_number", p.CaseNumber, common.Required, common.MatchPattern(CaseNumberPattern, "ABC-123-2023"))
	v.Field("filed_date", p.FiledDate, common.Required)
	v.Field("county", p.County, common.Required)
	v.Field("plaintiff_creditor.name", p.PlaintiffCreditor.Name, common.Required)
	v.Field("defendants_debtors", len(p.DefendantsDebtors), common.MinCount(1))
	v.Field("judgment_amount", amount, common.Required, common.NonNegative)
	v.Field("interest_rate", p.InterestRate, common.RateFraction)
	v.Field("attorney_fees", fees, common.NonNegative)

	if err := v.Error(); err != nil {
		return JudgmentRecord{}, err
	}

	rec := JudgmentRecord{
		CaseNumber:         p.CaseNumber,
		FiledDate:          p.FiledDate,
		County:             p.County,
		Court:              p.Court,
		PlaintiffCreditor:  p.PlaintiffCreditor,
		DefendantsDebtors:  p.DefendantsDebtors,
		JudgmentAmount:     *amount,
		InterestRate:       p.InterestRate,
		Judge:              p.Judge,
		SatisfactionStatus: status,
		AttorneyFees:       fees,
	}
	return rec, nil
}

// NewDismissalRecord builds a DismissalRecord, validating the case-number
// shape, dismissal type, and party requirements.
func NewDismissalRecord(p DismissalPayload) (DismissalRecord, error) {
	v := common.NewValidator()

	dismissalType := constants.DismissalType(strings.ToLower(strings.TrimSpace(p.DismissalType)))

	v.Field("case_number", p.CaseNumber, common.Required, common.MatchPattern(CaseNumberPattern, "ABC-123-2023"))
	v.Field("filed_date", p.FiledDate, common.Required)
	v.Field("county", p.County, common.Required)
	v.Field("plaintiff.name", p.Plaintiff.Name, common.Required)
	v.Field("defendants", len(p.Defendants), common.MinCount(1))
	if !dismissalType.Valid() {
		v.Add(common.ValidationError{
			Field:   "dismissal_type",
			Value:   p.DismissalType,
			Message: "must be one of: with prejudice, without prejudice, voluntary, involuntary",
		})
	}

	if err := v.Error(); err != nil {
		return DismissalRecord{}, err
	}

	rec := DismissalRecord{
		CaseNumber:    p.CaseNumber,
		FiledDate:     p.FiledDate,
		County:        p.County,
		Court:         p.Court,
		Plaintiff:     p.Plaintiff,
		Defendants:    p.Defendants,
		DismissalType: dismissalType,
		Judge:         p.Judge,
		Reason:        p.Reason,
	}
	return rec, nil
}

// NewAffidavitRecord builds an AffidavitRecord, capping the content summary
// and requiring the affiant and affidavit date.
func NewAffidavitRecord(p AffidavitPayload) (AffidavitRecord, error) {
	v := common.NewValidator()

	v.Field("affiant.name", p.Affiant.Name, common.Required)
	v.Field("date_of_affidavit", p.DateOfAffidavit, common.Required)
	v.Field("content_summary", p.ContentSummary, common.Required, common.MaxLength(constants.MaxContentSummaryLen))

	if err := v.Error(); err != nil {
		return AffidavitRecord{}, err
	}

	rec := AffidavitRecord{
		Affiant:              p.Affiant,
		DateOfAffidavit:      p.DateOfAffidavit,
		ContentSummary:       p.ContentSummary,
		NotaryPublic:         p.NotaryPublic,
		NotaryCounty:         p.NotaryCounty,
		NotaryState:          p.NotaryState,
		CommissionExpiration: p.CommissionExpiration,
	}
	return rec, nil
}

// parseAmount is the normalization half of amount handling: textual values
// have thousands-separator commas stripped before parsing; numeric values
// pass through; nil stays nil. Parse failures are recorded on v.
func parseAmount(v *common.Validator, field string, raw any) *float64 {
	switch t := raw.(type) {
	case nil:
		return nil
	case float64:
		f := t
		return &f
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(t), ",", "")
		if s == "" {
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			v.Add(common.ValidationError{Field: field, Value: t, Message: "must be a decimal amount"})
			return nil
		}
		return &f
	default:
		v.Add(common.ValidationError{Field: field, Value: raw, Message: "must be a decimal amount"})
		return nil
	}
}

// InferSatisfactionStatus maps free-text satisfaction wording onto the
// tri-state flag. Best-effort heuristic: unrecognized wording means
// unknown (nil), never a validation failure. Boolean and absent values
// pass through unchanged.
func InferSatisfactionStatus(raw any) *bool {
	switch t := raw.(type) {
	case bool:
		b := t
		return &b
	case string:
		lower := strings.ToLower(t)
		switch {
		case strings.Contains(lower, "unsatisfied"):
			b := false
			return &b
		case strings.Contains(lower, "satisf"),
			strings.Contains(lower, "paid in full"),
			strings.Contains(lower, "release"):
			b := true
			return &b
		}
		return nil
	default:
		return nil
	}
}
