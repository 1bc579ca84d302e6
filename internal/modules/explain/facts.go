package explain

import (
	"regexp"
	"strings"
)

// Deterministic fact extraction. Pure pattern matching on the source text,
// cross-checked against the model's output by the merger. Never errors:
// absence of a pattern yields an empty value.

var (
	amountRe = regexp.MustCompile(`[€$£]\s*\d+(?:[. ]\d{3})*(?:,\d{1,2})?`)

	// Dutch and English month names; the supported output languages share
	// these two sets for incoming scans.
	dateWordRe = regexp.MustCompile(`(?i)\b\d{1,2}\s+(?:januari|februari|maart|april|mei|juni|juli|augustus|september|oktober|november|december|january|february|march|may|june|july|august|october)\s+\d{4}\b`)
	dateNumRe  = regexp.MustCompile(`\b\d{1,2}[-/]\d{1,2}[-/]\d{2,4}\b`)

	ibanRe = regexp.MustCompile(`(?i)\b[A-Z]{2}\d{2}(?:\s?[A-Z0-9]{4}){2,7}(?:\s?[A-Z0-9]{1,4})?\b`)

	// Ordered: payment reference labels first, then case/file labels.
	referenceRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)betalingskenmerk\s*[:#]?\s*([0-9][0-9 .\-/]{2,24}[0-9])`),
		regexp.MustCompile(`(?i)(?:ons kenmerk|uw kenmerk|kenmerk|referentie|zaaknummer|dossiernummer|factuurnummer)\s*[:#]?\s*([A-Za-z0-9][A-Za-z0-9.\-/]{2,24})`),
		regexp.MustCompile(`(?i)(?:payment reference|case number|file number|reference)\s*[:#]?\s*([A-Za-z0-9][A-Za-z0-9.\-/]{2,24})`),
	}

	deadlineKeywords = []string{
		"betalen", "betaal", "betaling", "voldoen", "uiterlijk", "vóór", "voor ",
		"vervalt", "verloopt", "deadline", "pay", "due", "before", "payable",
	}
)

const deadlineWindow = 50

// ExtractFacts runs the deterministic extractors over the source text.
func ExtractFacts(text string) Facts {
	dates := extractDates(text)
	return Facts{
		Amounts:   extractAmounts(text),
		Dates:     dates,
		Deadline:  detectDeadline(text, dates),
		IBAN:      extractIBAN(text),
		Reference: extractReference(text),
	}
}

func extractAmounts(text string) []string {
	matches := amountRe.FindAllString(text, -1)
	out := make([]string, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		m = strings.ReplaceAll(m, " ", "")
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}

func extractDates(text string) []string {
	matches := dateWordRe.FindAllString(text, -1)
	matches = append(matches, dateNumRe.FindAllString(text, -1)...)

	out := make([]string, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		m = strings.TrimSpace(m)
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}

// detectDeadline returns the first extracted date whose surrounding text
// window contains a payment-intent keyword. Ties break by extraction order,
// not calendar order: a precision trade-off, kept as documented behavior.
func detectDeadline(text string, dates []string) string {
	lower := strings.ToLower(text)
	for _, date := range dates {
		idx := strings.Index(lower, strings.ToLower(date))
		if idx < 0 {
			continue
		}
		start := idx - deadlineWindow
		if start < 0 {
			start = 0
		}
		end := idx + len(date) + deadlineWindow
		if end > len(lower) {
			end = len(lower)
		}
		window := lower[start:end]
		for _, kw := range deadlineKeywords {
			if strings.Contains(window, kw) {
				return date
			}
		}
	}
	return ""
}

func extractIBAN(text string) string {
	m := ibanRe.FindString(text)
	if m == "" {
		return ""
	}
	m = strings.ReplaceAll(m, " ", "")
	return strings.ToUpper(m)
}

func extractReference(text string) string {
	for _, re := range referenceRes {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.Join(strings.Fields(m[1]), " ")
		}
	}
	return ""
}
