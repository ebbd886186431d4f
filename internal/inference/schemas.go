package inference

import (
	"github.com/jimmc414/legal-doc-extract/constants"
)

// JSON-Schema builders (draft 2020-12 subset as generic maps). Each schema
// is sent to the model as a structured-output constraint and also used
// locally to validate the response before record binding.
//
// Shapes kept deliberately looser than the record builders: amounts may
// still carry thousands separators and case numbers are any non-empty
// string here, so that format violations fail in the builders with our
// own field-level messages rather than opaque schema errors.

// BuildClassificationSchema constrains the four-way taxonomy decision.
func BuildClassificationSchema() map[string]any {
	types := make([]string, 0, len(constants.DocumentTypes))
	for _, t := range constants.DocumentTypes {
		types = append(types, string(t))
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"classification": map[string]any{"type": "string", "enum": types},
			"confidence":     map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
		},
		"required": []string{"classification", "confidence"},
	}
}

// BuildJudgmentSchema constrains a judgment extraction response.
func BuildJudgmentSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"case_number":         map[string]any{"type": "string", "minLength": 1},
			"filed_date":          dateProp(),
			"county":              map[string]any{"type": "string", "minLength": 1},
			"court":               map[string]any{"type": "string"},
			"plaintiff_creditor":  partyProp(),
			"defendants_debtors":  map[string]any{"type": "array", "items": partyProp(), "minItems": 1},
			"judgment_amount":     amountProp(),
			"interest_rate":       map[string]any{"type": "number", "minimum": 0.0},
			"judge":               map[string]any{"type": "string"},
			"satisfaction_status": map[string]any{"type": []string{"boolean", "string"}},
			"attorney_fees":       amountProp(),
		},
		"required": []string{
			"case_number", "filed_date", "county",
			"plaintiff_creditor", "defendants_debtors", "judgment_amount",
		},
	}
}

// JudgmentAmountKeys are the judgment fields sanitized as decimal amounts.
var JudgmentAmountKeys = []string{"judgment_amount", "attorney_fees"}

// BuildDismissalSchema constrains a dismissal extraction response.
func BuildDismissalSchema() map[string]any {
	types := make([]string, 0, len(constants.DismissalTypes))
	for _, t := range constants.DismissalTypes {
		types = append(types, string(t))
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"case_number":    map[string]any{"type": "string", "minLength": 1},
			"filed_date":     dateProp(),
			"county":         map[string]any{"type": "string", "minLength": 1},
			"court":          map[string]any{"type": "string"},
			"plaintiff":      partyProp(),
			"defendants":     map[string]any{"type": "array", "items": partyProp(), "minItems": 1},
			"dismissal_type": map[string]any{"type": "string", "enum": types},
			"judge":          map[string]any{"type": "string"},
			"reason":         map[string]any{"type": "string"},
		},
		"required": []string{
			"case_number", "filed_date", "county",
			"plaintiff", "defendants", "dismissal_type",
		},
	}
}

// BuildAffidavitSchema constrains an affidavit extraction response.
func BuildAffidavitSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"affiant":               partyProp(),
			"date_of_affidavit":     dateProp(),
			"content_summary":       map[string]any{"type": "string", "minLength": 1, "maxLength": constants.MaxContentSummaryLen},
			"notary_public":         map[string]any{"type": "string"},
			"notary_county":         map[string]any{"type": "string"},
			"notary_state":          map[string]any{"type": "string"},
			"commission_expiration": dateProp(),
		},
		"required": []string{"affiant", "date_of_affidavit", "content_summary"},
	}
}

func partyProp() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"name":     map[string]any{"type": "string", "minLength": 1},
			"role":     map[string]any{"type": "string"},
			"address":  map[string]any{"type": "string"},
			"attorney": map[string]any{"type": "string"},
		},
		"required": []string{"name"},
	}
}

func dateProp() map[string]any {
	return map[string]any{"type": "string", "pattern": `^\d{4}-\d{2}-\d{2}$`}
}

// amountProp accepts decimal strings with optional thousands separators;
// the record builders strip the commas and enforce sign rules.
func amountProp() map[string]any {
	return map[string]any{
		"type":    "string",
		"pattern": `^-?\d{1,3}(,\d{3})*(\.\d+)?$|^-?\d+(\.\d+)?$`,
	}
}
