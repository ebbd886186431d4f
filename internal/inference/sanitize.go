package inference

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SanitizeRecordJSON relaxes common model formatting slips before strict
// schema validation: null values are dropped, bare numbers under amount
// keys are coerced to decimal strings, and top-level string values are
// trimmed (empty ones dropped). Returns the cleaned document and the list
// of touched keys for logging.
func SanitizeRecordJSON(doc []byte, amountKeys []string) ([]byte, []string, error) {
	var m map[string]any
	if err := json.Unmarshal(doc, &m); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}

	touched := make([]string, 0, 4)

	for k, v := range m {
		if v == nil {
			delete(m, k)
			touched = append(touched, k+"(null)")
		}
	}

	for _, k := range amountKeys {
		v, ok := m[k]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case float64:
			m[k] = fmt.Sprintf("%.2f", t)
			touched = append(touched, k+"(number)")
		case string:
			s := strings.TrimSpace(t)
			if s == "" || strings.EqualFold(s, "null") {
				delete(m, k)
				touched = append(touched, k+"(empty)")
			} else {
				m[k] = s
			}
		default:
			delete(m, k)
			touched = append(touched, k+"(type)")
		}
	}

	for k, v := range m {
		s, ok := v.(string)
		if !ok {
			continue
		}
		trimmed := strings.TrimSpace(s)
		if trimmed == "" {
			delete(m, k)
			touched = append(touched, k+"(empty)")
		} else if trimmed != s {
			m[k] = trimmed
		}
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, touched, fmt.Errorf("sanitize: encode: %w", err)
	}
	return out, touched, nil
}
