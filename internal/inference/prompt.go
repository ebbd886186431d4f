package inference

import (
	"fmt"
	"strings"

	"github.com/jimmc414/legal-doc-extract/constants"
)

// BuildClassificationPrompt asks for the four-way taxonomy decision plus a
// confidence score.
func BuildClassificationPrompt(fileRef string) string {
	var b strings.Builder
	b.WriteString("Classify the following legal document (provided as file URI: ")
	b.WriteString(fileRef)
	b.WriteString(") into one of the following categories:\n\n")
	for _, t := range constants.DocumentTypes {
		b.WriteString("- ")
		b.WriteString(string(t))
		b.WriteString("\n")
	}
	b.WriteString("\nReturn the classification and a confidence score between 0.0 and 1.0.")
	return b.String()
}

// BuildExtractionPrompt composes the per-type extraction instructions.
func BuildExtractionPrompt(docType constants.DocumentType) string {
	parts := []string{
		"You are a legal document data extractor. Return ONLY JSON that matches the provided JSON Schema.",
		"Use ISO-8601 dates (YYYY-MM-DD).",
		"Express monetary amounts as plain decimal strings without currency symbols.",
		"Never output null. If a field is not present in the document, omit it.",
	}

	switch docType {
	case constants.DocTypeJudgment:
		parts = append(parts,
			"For 'judgment_amount', look for phrases like 'the sum of' or 'judgment is entered for'.",
			"Express 'interest_rate' as a fraction (e.g. 0.05 for 5%), not a percentage.",
			"For 'satisfaction_status', look for wording like 'satisfied', 'released', or 'paid in full'.",
			"List every defendant or debtor the judgment is entered against under 'defendants_debtors'.",
		)
	case constants.DocTypeDismissal:
		parts = append(parts,
			"Identify the dismissal type exactly as one of the schema enum values.",
			"Include the stated reason for dismissal under 'reason' if present.",
		)
	case constants.DocTypeAffidavit:
		parts = append(parts,
			"For 'content_summary', write a concise summary (at most 500 characters) of the sworn statements.",
			"Include notary details only when they appear in the jurat.",
		)
	default:
		// Extraction prompts exist only for the three supported types; the
		// extract stage never requests one for Other.
		panic(fmt.Sprintf("inference: no extraction prompt for document type %q", docType))
	}

	return strings.Join(parts, " ")
}
