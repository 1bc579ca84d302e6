package explain

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// The schema maps serve double duty: published at /contract/* for
// client-side validation, and compiled locally to check the merged result.

const (
	maxKeyPoints        = 6
	maxExtractedPerList = 3
	maxUncertainties    = 5
	maxMissingInfo      = 6
	maxArguments        = 6
	maxDraftNotes       = 4
)

func enumProp(values []string) map[string]any {
	vs := make([]any, len(values))
	for i, v := range values {
		vs[i] = v
	}
	return map[string]any{"type": "string", "enum": vs}
}

func stringList(maxItems int) map[string]any {
	return map[string]any{
		"type":     "array",
		"items":    map[string]any{"type": "string"},
		"maxItems": maxItems,
	}
}

func nullableString() map[string]any {
	return map[string]any{"type": []any{"string", "null"}}
}

func extractedSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"amounts":      map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"dates":        map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"iban":         map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"reference":    nullableString(),
			"organization": nullableString(),
			"deadline":     nullableString(),
		},
		"required": []any{"amounts", "dates", "iban"},
	}
}

func actionSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"label":    map[string]any{"type": "string", "maxLength": 40},
			"details":  map[string]any{"type": "string"},
			"deadline": nullableString(),
		},
		"required": []any{"label", "details"},
	}
}

func whatIfSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"if":   map[string]any{"type": "string"},
			"then": map[string]any{"type": "string"},
		},
		"required": []any{"if", "then"},
	}
}

func legalSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"impact_level":      enumProp(impactLevels),
			"assessment":        enumProp(assessments),
			"assessment_reason": map[string]any{"type": "string"},
			"uncertainties":     stringList(maxUncertainties),
			"missing_info":      stringList(maxMissingInfo),
			"arguments_for":     stringList(maxArguments),
			"arguments_against": stringList(maxArguments),
			"reply_draft": map[string]any{
				"type":                 []any{"object", "null"},
				"additionalProperties": false,
				"properties": map[string]any{
					"tone":    enumProp(tones),
					"subject": map[string]any{"type": "string"},
					"body":    map[string]any{"type": "string"},
					"notes":   stringList(maxDraftNotes),
				},
				"required": []any{"tone", "subject", "body"},
			},
			"legal_type": enumProp(legalTypes),
			"disclaimer": map[string]any{"type": "string", "minLength": 1},
		},
		"required": []any{"impact_level", "assessment", "disclaimer"},
	}
}

// StandardSchemaMap returns the JSON Schema of the version-2 contract as the
// pipeline guarantees it in default mode.
func StandardSchemaMap() map[string]any {
	return map[string]any{
		"$schema":              "https://json-schema.org/draft/2020-12/schema",
		"title":                "explain_standard_v2",
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"version":     map[string]any{"const": contractVersion},
			"mode":        enumProp([]string{string(ModeDefault), string(ModeLegal)}),
			"doc_type":    enumProp(docTypes),
			"goal":        enumProp(goals),
			"title_guess": map[string]any{"type": "string", "maxLength": 60},
			"summary":     map[string]any{"type": "string"},
			"key_points":  stringList(maxKeyPoints),
			"actions":     map[string]any{"type": "array", "items": actionSchema()},
			"what_if":     map[string]any{"type": "array", "items": whatIfSchema()},
			"extracted":   extractedSchema(),
			"disclaimer":  map[string]any{"type": "string", "minLength": 1},
			"legal":       map[string]any{"type": "null"},
		},
		"required": []any{"version", "mode", "doc_type", "goal", "summary", "extracted", "disclaimer"},
	}
}

// LegalSchemaMap returns the JSON Schema of the contract in legal mode.
func LegalSchemaMap() map[string]any {
	m := StandardSchemaMap()
	m["title"] = "explain_legal_v1"
	props := m["properties"].(map[string]any)
	props["legal"] = legalSchema()
	m["required"] = append(m["required"].([]any), "legal")
	return m
}

func compileSchema(schemaMap map[string]any) (*jsonschema.Schema, error) {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}

// validateContract checks a merged contract against the compiled schema for
// its mode. Used as a non-fatal consistency check after merging.
func validateContract(schema *jsonschema.Schema, c *Contract) error {
	b, err := json.Marshal(c)
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	return schema.Validate(v)
}
