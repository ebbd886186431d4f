// Package inference defines the structured-inference collaborator boundary:
// the request/interface contract the pipeline depends on, the JSON Schemas
// that constrain each response, the prompts, and the pre-validation
// sanitation applied to raw model output.
package inference

import "context"

// Request is one structured-inference call: a reference to an uploaded
// document, a prompt, and the JSON Schema the response must conform to.
type Request struct {
	FileReference string
	MIMEType      string // defaults to application/pdf when empty
	Prompt        string
	Schema        map[string]any

	// AmountKeys lists top-level keys that hold decimal amounts; the
	// sanitize pass coerces bare numbers under these keys to strings.
	AmountKeys []string
}

// StructuredInferencer is the interface the pipeline stages depend on.
// Implementations own the retry policy; a returned error means the call is
// final for this document.
type StructuredInferencer interface {
	Infer(ctx context.Context, req Request) ([]byte, error)
}
