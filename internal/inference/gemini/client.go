package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jimmc414/legal-doc-extract/constants"
	"github.com/jimmc414/legal-doc-extract/internal/common"
	"github.com/jimmc414/legal-doc-extract/internal/inference"
)

// Infer implements inference.StructuredInferencer: one generateContent call
// constrained to JSON output, with the target schema riding in the prompt
// and enforced locally before the raw JSON is returned. The retry budget
// lives here; callers treat a returned error as final for this document.
func (c *Client) Infer(ctx context.Context, req inference.Request) ([]byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	mimeType := req.MIMEType
	if mimeType == "" {
		mimeType = "application/pdf"
	}

	c.log.Info("gemini.infer.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"file_reference", req.FileReference,
		"mime_type", mimeType,
	)

	body := map[string]any{
		"contents": []map[string]any{{
			"parts": []map[string]any{
				{"text": req.Prompt + "\n\nReturn ONLY JSON that matches the provided schema.\n\nJSON Schema:\n" + mustJSON(req.Schema)},
				{"file_data": map[string]any{"file_uri": req.FileReference, "mime_type": mimeType}},
			},
		}},
		"generationConfig": map[string]any{
			"response_mime_type": "application/json",
			"temperature":        0.0,
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/v1beta/models/" + c.cfg.Model + ":generateContent"

	var raw []byte
	err := c.exec.Execute(ctx, "gemini.generate", func(ctx context.Context) error {
		r, postErr := c.post(ctx, "generate", endpoint, body)
		if postErr != nil {
			return postErr
		}
		raw = r
		return nil
	}, classifyGeminiError)
	if err != nil {
		c.log.Error("gemini.infer.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, common.NewAppError("INFERENCE_HTTP", "generate content", err)
	}

	content, err := candidateText(raw)
	if err != nil {
		c.log.Error("gemini.infer.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, common.NewAppError("INFERENCE_DECODE", "decode gemini response", err)
	}
	rawContent := []byte(strings.TrimSpace(content))

	// Validate strictly first; one lenient sanitize pass on failure.
	if err := inference.ValidateJSONAgainstSchema(req.Schema, rawContent); err != nil {
		cleaned, touched, sErr := inference.SanitizeRecordJSON(rawContent, req.AmountKeys)
		if sErr != nil {
			c.log.Error("gemini.infer.sanitize_failed",
				"req_id", rid, "error", sErr,
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
			return nil, common.NewAppError("INFERENCE_SCHEMA", "sanitize response", sErr)
		}
		if vErr := inference.ValidateJSONAgainstSchema(req.Schema, cleaned); vErr != nil {
			c.log.Error("gemini.infer.schema_validation_failed",
				"req_id", rid, "error", vErr, "content", string(rawContent),
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
			return nil, common.NewAppError("INFERENCE_SCHEMA", "schema validation failed", vErr)
		}
		c.log.Warn("gemini.infer.sanitize_applied",
			"req_id", rid, "touched", touched,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		rawContent = cleaned
	}

	c.log.Info("gemini.infer.ok",
		"req_id", rid,
		"bytes", len(rawContent),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return rawContent, nil
}

// Upload sends a local file to the File API and returns the opaque file
// reference used by later inference calls.
func (c *Client) Upload(ctx context.Context, path, displayName string) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	data, err := os.ReadFile(path)
	if err != nil {
		return "", common.NewAppError("STORAGE_READ", "read upload file", err)
	}
	mimeType := constants.MIMEForPath(path)

	c.log.Info("gemini.upload.start",
		"req_id", rid, "path", path, "bytes", len(data), "mime_type", mimeType,
	)

	meta, err := json.Marshal(map[string]any{
		"file": map[string]any{"display_name": displayName},
	})
	if err != nil {
		return "", common.NewAppError("STORAGE_UPLOAD", "encode metadata", err)
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/upload/v1beta/files"

	var raw []byte
	err = c.exec.Execute(ctx, "gemini.upload", func(ctx context.Context) error {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		metaPart, mErr := w.CreatePart(textproto.MIMEHeader{"Content-Type": {"application/json; charset=UTF-8"}})
		if mErr != nil {
			return mErr
		}
		if _, mErr = metaPart.Write(meta); mErr != nil {
			return mErr
		}
		mediaPart, mErr := w.CreatePart(textproto.MIMEHeader{"Content-Type": {mimeType}})
		if mErr != nil {
			return mErr
		}
		if _, mErr = mediaPart.Write(data); mErr != nil {
			return mErr
		}
		if mErr = w.Close(); mErr != nil {
			return mErr
		}

		req, mErr := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
		if mErr != nil {
			return mErr
		}
		req.Header.Set("x-goog-api-key", c.cfg.APIKey)
		req.Header.Set("Content-Type", "multipart/related; boundary="+w.Boundary())

		r, mErr := c.send(req, "upload")
		if mErr != nil {
			return mErr
		}
		raw = r
		return nil
	}, classifyGeminiError)
	if err != nil {
		c.log.Error("gemini.upload.error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", common.NewAppError("STORAGE_UPLOAD", "upload file", err)
	}

	var out struct {
		File struct {
			Name string `json:"name"`
			URI  string `json:"uri"`
		} `json:"file"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", common.NewAppError("STORAGE_UPLOAD", "decode upload response", err)
	}
	if out.File.URI == "" {
		return "", common.NewAppError("STORAGE_UPLOAD", "upload response missing file uri", nil)
	}

	c.log.Info("gemini.upload.ok",
		"req_id", rid, "file_uri", out.File.URI, "file_name", out.File.Name,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out.File.URI, nil
}

func (c *Client) post(ctx context.Context, op, url string, body map[string]any) ([]byte, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	return c.send(req, op)
}

func (c *Client) send(req *http.Request, op string) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini http error: %w", err)
	}
	defer func(body io.ReadCloser) {
		if cErr := body.Close(); cErr != nil {
			c.log.Warn("gemini.response_body_close_error", "error", cErr)
		}
	}(resp.Body)

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPStatusError{
			Operation:  op,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(raw),
		}
	}
	return raw, nil
}

func candidateText(raw []byte) (string, error) {
	var cc struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		return "", fmt.Errorf("decode generate response: %w", err)
	}
	if len(cc.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in generate response")
	}
	for _, part := range cc.Candidates[0].Content.Parts {
		if strings.TrimSpace(part.Text) != "" {
			return part.Text, nil
		}
	}
	return "", fmt.Errorf("no text part in generate response")
}

func mustJSON(v any) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}
