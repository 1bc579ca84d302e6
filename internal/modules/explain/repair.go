package explain

import (
	"encoding/json"
	"strings"
)

// RepairContract normalizes a salvaged model object into a Contract. The
// model's output is never trusted verbatim: unknown keys are dropped,
// out-of-enum values fall back to the neutral member, over-long lists are
// clamped and version/mode are forced. Repair never fails; a hollow object
// simply yields a hollow contract for the merger to fill.
func RepairContract(obj map[string]any, req Request) *Contract {
	repairEnum(obj, "doc_type", docTypes, "other")
	repairEnum(obj, "goal", goals, "unknown")
	clampStringList(obj, "key_points", maxKeyPoints)

	if extracted, ok := obj["extracted"].(map[string]any); ok {
		// Models occasionally return iban as a bare string.
		if s, ok := extracted["iban"].(string); ok {
			extracted["iban"] = []any{s}
		}
	}

	if req.Mode != ModeLegal {
		obj["legal"] = nil
	} else {
		legal, ok := obj["legal"].(map[string]any)
		if !ok {
			legal = map[string]any{}
		}
		repairEnum(legal, "impact_level", impactLevels, "medium")
		repairEnum(legal, "assessment", assessments, "mixed")
		repairEnum(legal, "legal_type", legalTypes, normalizedLegalType(req.LegalType))
		clampStringList(legal, "uncertainties", maxUncertainties)
		clampStringList(legal, "missing_info", maxMissingInfo)
		clampStringList(legal, "arguments_for", maxArguments)
		clampStringList(legal, "arguments_against", maxArguments)
		if draft, ok := legal["reply_draft"].(map[string]any); ok {
			repairEnum(draft, "tone", tones, "neutral")
			clampStringList(draft, "notes", maxDraftNotes)
		}
		obj["legal"] = legal
	}

	var c Contract
	// Round-trip through JSON: drops unknown keys and coerces the loose map
	// into the typed contract. Type mismatches degrade to zero values.
	if b, err := json.Marshal(obj); err == nil {
		_ = json.Unmarshal(b, &c)
	}

	c.Version = contractVersion
	c.Mode = string(req.Mode)
	if c.KeyPoints == nil {
		c.KeyPoints = []string{}
	}
	if c.Actions == nil {
		c.Actions = []Action{}
	}
	if c.WhatIf == nil {
		c.WhatIf = []WhatIf{}
	}
	if len([]rune(c.TitleGuess)) > 60 {
		c.TitleGuess = string([]rune(c.TitleGuess)[:60])
	}
	return &c
}

func repairEnum(obj map[string]any, key string, allowed []string, fallback string) {
	v, _ := obj[key].(string)
	v = strings.ToLower(strings.TrimSpace(v))
	if !contains(allowed, v) {
		v = fallback
	}
	obj[key] = v
}

func clampStringList(obj map[string]any, key string, max int) {
	list, ok := obj[key].([]any)
	if !ok || len(list) <= max {
		return
	}
	obj[key] = list[:max]
}

func normalizedLegalType(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if contains(legalTypes, v) {
		return v
	}
	return "overig"
}
