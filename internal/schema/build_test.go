package schema

import (
	"strings"
	"testing"
)

func validJudgmentPayload() JudgmentPayload {
	return JudgmentPayload{
		CaseNumber:        "ABC-123-2023",
		FiledDate:         "2023-06-01",
		County:            "Kings",
		PlaintiffCreditor: Party{Name: "Acme Credit LLC", Role: "Creditor"},
		DefendantsDebtors: []Party{{Name: "John Doe", Role: "Debtor"}},
		JudgmentAmount:    "12,000.50",
	}
}

func TestNewJudgmentRecordStripsCommas(t *testing.T) {
	rec, err := NewJudgmentRecord(validJudgmentPayload())
	if err != nil {
		t.Fatalf("NewJudgmentRecord() error = %v", err)
	}
	if rec.JudgmentAmount != 12000.50 {
		t.Fatalf("judgment_amount = %v, want 12000.50", rec.JudgmentAmount)
	}
}

func TestNewJudgmentRecordCommaRoundTrip(t *testing.T) {
	withCommas := validJudgmentPayload()
	withCommas.JudgmentAmount = "12,345.00"
	without := validJudgmentPayload()
	without.JudgmentAmount = "12345.00"

	a, err := NewJudgmentRecord(withCommas)
	if err != nil {
		t.Fatalf("comma amount rejected: %v", err)
	}
	b, err := NewJudgmentRecord(without)
	if err != nil {
		t.Fatalf("plain amount rejected: %v", err)
	}
	if a.JudgmentAmount != b.JudgmentAmount {
		t.Fatalf("comma stripping changed the value: %v vs %v", a.JudgmentAmount, b.JudgmentAmount)
	}
}

func TestNewJudgmentRecordCaseNumberFormat(t *testing.T) {
	tests := []struct {
		caseNumber string
		wantErr    bool
	}{
		{"ABC-123-2023", false},
		{"XYZ-999-1999", false},
		{"abc-123-2023", true},
		{"AB-123-2023", true},
		{"ABC-1234-2023", true},
		{"ABC 123 2023", true},
		{"", true},
	}
	for _, tt := range tests {
		t.Run(tt.caseNumber, func(t *testing.T) {
			p := validJudgmentPayload()
			p.CaseNumber = tt.caseNumber
			_, err := NewJudgmentRecord(p)
			if (err != nil) != tt.wantErr {
				t.Fatalf("case %q: error = %v, wantErr %v", tt.caseNumber, err, tt.wantErr)
			}
			if err != nil && tt.caseNumber != "" && !strings.Contains(err.Error(), "ABC-123-2023") {
				t.Fatalf("error does not reference the expected format: %v", err)
			}
		})
	}
}

func TestNewJudgmentRecordInterestRateBounds(t *testing.T) {
	for _, r := range []float64{0, 0.05, 1} {
		p := validJudgmentPayload()
		rate := r
		p.InterestRate = &rate
		rec, err := NewJudgmentRecord(p)
		if err != nil {
			t.Fatalf("rate %v rejected: %v", r, err)
		}
		if rec.InterestRate == nil || *rec.InterestRate != r {
			t.Fatalf("rate %v not preserved", r)
		}
	}

	p := validJudgmentPayload()
	rate := 1.5
	p.InterestRate = &rate
	_, err := NewJudgmentRecord(p)
	if err == nil {
		t.Fatalf("rate above 1 accepted")
	}
	if !strings.Contains(err.Error(), "interest_rate") {
		t.Fatalf("error does not name interest_rate: %v", err)
	}
}

func TestNewJudgmentRecordNegativeAmount(t *testing.T) {
	p := validJudgmentPayload()
	p.JudgmentAmount = "-100.00"
	if _, err := NewJudgmentRecord(p); err == nil {
		t.Fatalf("negative judgment amount accepted")
	}

	p = validJudgmentPayload()
	p.AttorneyFees = "-1.00"
	if _, err := NewJudgmentRecord(p); err == nil {
		t.Fatalf("negative attorney fees accepted")
	}
}

func TestNewJudgmentRecordRequiresDefendants(t *testing.T) {
	p := validJudgmentPayload()
	p.DefendantsDebtors = nil
	_, err := NewJudgmentRecord(p)
	if err == nil {
		t.Fatalf("empty defendant list accepted")
	}
	if !strings.Contains(err.Error(), "defendants_debtors") {
		t.Fatalf("error does not name defendants_debtors: %v", err)
	}
}

func TestNewJudgmentRecordAggregatesViolations(t *testing.T) {
	p := validJudgmentPayload()
	p.CaseNumber = "bad"
	p.County = ""
	p.JudgmentAmount = "-1"
	_, err := NewJudgmentRecord(p)
	if err == nil {
		t.Fatalf("invalid payload accepted")
	}
	for _, field := range []string{"case_number", "county", "judgment_amount"} {
		if !strings.Contains(err.Error(), field) {
			t.Fatalf("aggregated error missing %q: %v", field, err)
		}
	}
}

func TestNewJudgmentRecordNumericAmountPassesThrough(t *testing.T) {
	p := validJudgmentPayload()
	p.JudgmentAmount = 5000.25
	rec, err := NewJudgmentRecord(p)
	if err != nil {
		t.Fatalf("numeric amount rejected: %v", err)
	}
	if rec.JudgmentAmount != 5000.25 {
		t.Fatalf("numeric amount altered: %v", rec.JudgmentAmount)
	}
}

func TestInferSatisfactionStatus(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want *bool
	}{
		{"satisfied wording", "Satisfied in full", boolPtr(true)},
		{"paid in full", "PAID IN FULL", boolPtr(true)},
		{"release wording", "Judgment released 2023", boolPtr(true)},
		{"unsatisfied wording", "Judgment Unsatisfied", boolPtr(false)},
		{"unrelated wording", "pending appeal", nil},
		{"boolean passthrough true", true, boolPtr(true)},
		{"boolean passthrough false", false, boolPtr(false)},
		{"absent", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InferSatisfactionStatus(tt.raw)
			switch {
			case tt.want == nil && got != nil:
				t.Fatalf("want unknown, got %v", *got)
			case tt.want != nil && got == nil:
				t.Fatalf("want %v, got unknown", *tt.want)
			case tt.want != nil && *got != *tt.want:
				t.Fatalf("want %v, got %v", *tt.want, *got)
			}
		})
	}
}

func TestNewDismissalRecord(t *testing.T) {
	p := DismissalPayload{
		CaseNumber:    "DEF-456-2022",
		FiledDate:     "2022-11-15",
		County:        "Queens",
		Plaintiff:     Party{Name: "Plaintiff Corp"},
		Defendants:    []Party{{Name: "Jane Roe"}},
		DismissalType: "With Prejudice",
	}
	rec, err := NewDismissalRecord(p)
	if err != nil {
		t.Fatalf("NewDismissalRecord() error = %v", err)
	}
	if string(rec.DismissalType) != "with prejudice" {
		t.Fatalf("dismissal type not normalized: %q", rec.DismissalType)
	}
}

func TestNewDismissalRecordRejectsUnknownType(t *testing.T) {
	p := DismissalPayload{
		CaseNumber:    "DEF-456-2022",
		FiledDate:     "2022-11-15",
		County:        "Queens",
		Plaintiff:     Party{Name: "Plaintiff Corp"},
		Defendants:    []Party{{Name: "Jane Roe"}},
		DismissalType: "administrative",
	}
	_, err := NewDismissalRecord(p)
	if err == nil {
		t.Fatalf("unknown dismissal type accepted")
	}
	if !strings.Contains(err.Error(), "dismissal_type") {
		t.Fatalf("error does not name dismissal_type: %v", err)
	}
}

func TestNewDismissalRecordCaseNumberFormat(t *testing.T) {
	p := DismissalPayload{
		CaseNumber:    "def-456-2022",
		FiledDate:     "2022-11-15",
		County:        "Queens",
		Plaintiff:     Party{Name: "Plaintiff Corp"},
		Defendants:    []Party{{Name: "Jane Roe"}},
		DismissalType: "voluntary",
	}
	if _, err := NewDismissalRecord(p); err == nil {
		t.Fatalf("lowercase case number accepted")
	}
}

func TestNewAffidavitRecord(t *testing.T) {
	p := AffidavitPayload{
		Affiant:         Party{Name: "Mary Major"},
		DateOfAffidavit: "2023-02-20",
		ContentSummary:  "Affiant states she served the defendant personally.",
		NotaryPublic:    "Pat Notary",
	}
	rec, err := NewAffidavitRecord(p)
	if err != nil {
		t.Fatalf("NewAffidavitRecord() error = %v", err)
	}
	if rec.Affiant.Name != "Mary Major" {
		t.Fatalf("affiant not preserved: %+v", rec.Affiant)
	}
}

func TestNewAffidavitRecordSummaryTooLong(t *testing.T) {
	p := AffidavitPayload{
		Affiant:         Party{Name: "Mary Major"},
		DateOfAffidavit: "2023-02-20",
		ContentSummary:  strings.Repeat("x", 501),
	}
	_, err := NewAffidavitRecord(p)
	if err == nil {
		t.Fatalf("overlong summary accepted")
	}
	if !strings.Contains(err.Error(), "content_summary") {
		t.Fatalf("error does not name content_summary: %v", err)
	}
}

func boolPtr(b bool) *bool { return &b }
