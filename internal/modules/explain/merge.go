package explain

import "strings"

// Merge cross-checks the repaired model contract with the deterministic
// facts. Rules apply per field, not per object: list-valued extractions are
// unioned with the model's values first; scalar extractions fall back to the
// deterministic value when the model omitted them; the disclaimer is always
// forced non-empty.
func Merge(c *Contract, facts Facts, mode Mode) *Contract {
	c.Extracted.Amounts = mergeLists(c.Extracted.Amounts, facts.Amounts)
	c.Extracted.Dates = mergeLists(c.Extracted.Dates, facts.Dates)

	var detIBAN []string
	if facts.IBAN != "" {
		detIBAN = []string{facts.IBAN}
	}
	c.Extracted.IBAN = mergeLists(c.Extracted.IBAN, detIBAN)

	c.Extracted.Reference = mergeScalar(c.Extracted.Reference, facts.Reference)
	c.Extracted.Deadline = mergeScalar(c.Extracted.Deadline, facts.Deadline)

	if strings.TrimSpace(c.Disclaimer) == "" {
		c.Disclaimer = DefaultDisclaimer
	}

	if mode == ModeLegal {
		if c.Legal == nil {
			c.Legal = &Legal{ImpactLevel: "medium", Assessment: "mixed", LegalType: "overig"}
		}
		if strings.TrimSpace(c.Legal.Disclaimer) == "" {
			c.Legal.Disclaimer = DefaultDisclaimer
		}
		if c.Legal.Uncertainties == nil {
			c.Legal.Uncertainties = []string{}
		}
		if c.Legal.MissingInfo == nil {
			c.Legal.MissingInfo = []string{}
		}
		if c.Legal.ArgumentsFor == nil {
			c.Legal.ArgumentsFor = []string{}
		}
		if c.Legal.ArgumentsAgainst == nil {
			c.Legal.ArgumentsAgainst = []string{}
		}
		if c.Legal.ReplyDraft != nil && c.Legal.ReplyDraft.Notes == nil {
			c.Legal.ReplyDraft.Notes = []string{}
		}
	} else {
		c.Legal = nil
	}

	return c
}

// mergeLists unions model-provided and deterministically extracted values,
// deduplicated, model values keeping first position.
func mergeLists(model, deterministic []string) []string {
	out := make([]string, 0, len(model)+len(deterministic))
	seen := make(map[string]struct{}, len(model)+len(deterministic))
	for _, list := range [][]string{model, deterministic} {
		for _, v := range list {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

// mergeScalar prefers a non-empty model value, then the deterministic one,
// then nil.
func mergeScalar(model *string, deterministic string) *string {
	if model != nil && strings.TrimSpace(*model) != "" {
		return model
	}
	if deterministic != "" {
		return &deterministic
	}
	return nil
}
