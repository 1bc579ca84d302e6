package explain

import (
	"encoding/json"
	"fmt"
	"strings"
)

const parseFailureRawLimit = 2000

// ParseFailure reports that the model's raw output could not be turned into
// a JSON object. It carries the (truncated) raw text for diagnosis.
type ParseFailure struct {
	Raw string
	Err error
}

func (p *ParseFailure) Error() string {
	return fmt.Sprintf("invalid JSON in model response: %v", p.Err)
}

func (p *ParseFailure) Unwrap() error { return p.Err }

func newParseFailure(raw string, err error) *ParseFailure {
	return &ParseFailure{Raw: truncateText(raw, parseFailureRawLimit), Err: err}
}

// SalvageJSON recovers a JSON object from the model's raw output. Three
// stages: strip code-fence wrapping and parse strictly; otherwise parse the
// first-{ to last-} substring; otherwise fail. A reply that parses to
// anything other than an object (bare array, scalar) counts as a failure:
// shape, not syntax, is the success criterion.
func SalvageJSON(raw string) (map[string]any, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```JSON")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	obj, err := parseObject(cleaned)
	if err == nil {
		return obj, nil
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start >= 0 && end > start {
		if obj, err2 := parseObject(cleaned[start : end+1]); err2 == nil {
			return obj, nil
		}
	}

	return nil, newParseFailure(raw, err)
}

func parseObject(s string) (map[string]any, error) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is valid JSON but not an object")
	}
	return obj, nil
}
