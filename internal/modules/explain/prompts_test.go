package explain

import (
	"strings"
	"testing"
)

func TestComposePromptDefaultMode(t *testing.T) {
	req := Request{
		Text:           "Geachte heer, uw contract loopt af.",
		Context:        "brief van verhuurder",
		Mode:           ModeDefault,
		OutputLanguage: "nl",
	}
	p := ComposePrompt(req, "nl", "gpt-4o-mini")

	if p.Model != "gpt-4o-mini" {
		t.Fatalf("model = %q", p.Model)
	}
	for _, enum := range []string{"manual", "invoice", "letter", "contract", "fine", "other"} {
		if !strings.Contains(p.System, enum) {
			t.Fatalf("system prompt missing doc_type value %q", enum)
		}
	}
	if !strings.Contains(p.User, "TARGET_LANGUAGE: Dutch") {
		t.Fatalf("user prompt missing language line:\n%s", p.User)
	}
	if !strings.Contains(p.User, req.Text) {
		t.Fatal("user prompt missing document text")
	}
	if !strings.Contains(p.User, req.Context) {
		t.Fatal("user prompt missing context")
	}
	if strings.Contains(p.System, "impact_level") {
		t.Fatal("default prompt must not carry legal enumerations")
	}
}

func TestComposePromptLegalMode(t *testing.T) {
	req := Request{
		Text:      "Sommatie tot betaling van achterstallige huur.",
		Mode:      ModeLegal,
		LegalType: "huur",
		Tone:      "firm",
	}
	p := ComposePrompt(req, "nl", "gpt-4o")

	for _, want := range []string{"impact_level", "assessment", "reply_draft", "legal_type"} {
		if !strings.Contains(p.System, want) {
			t.Fatalf("legal system prompt missing %q", want)
		}
	}
	if !strings.Contains(p.User, "LEGAL_TYPE: huur") {
		t.Fatalf("user prompt missing legal type:\n%s", p.User)
	}
	if !strings.Contains(p.User, "TONE: firm") {
		t.Fatal("user prompt missing tone")
	}
}

func TestComposePromptTruncatesLongText(t *testing.T) {
	req := Request{Text: strings.Repeat("a", maxPromptTextLen+100), Mode: ModeDefault}
	p := ComposePrompt(req, "nl", "m")
	if !strings.Contains(p.User, strings.Repeat("a", maxPromptTextLen)+"...") {
		t.Fatal("text was not truncated")
	}
	if strings.Contains(p.User, strings.Repeat("a", maxPromptTextLen+1)) {
		t.Fatal("truncation limit not applied")
	}
}

func TestResolveLanguageName(t *testing.T) {
	cases := []struct {
		code, fallback, want string
	}{
		{"nl", "nl", "Dutch"},
		{"EN", "nl", "English"},
		{"xx", "de", "German"},
		{"", "fr", "French"},
		{"xx", "yy", "Dutch"},
	}
	for _, tc := range cases {
		if got := resolveLanguageName(tc.code, tc.fallback); got != tc.want {
			t.Fatalf("resolveLanguageName(%q, %q) = %q, want %q", tc.code, tc.fallback, got, tc.want)
		}
	}
}
