package explain

import (
	"strings"
	"testing"
)

func TestRepairContractUnknownEnumsFallBack(t *testing.T) {
	obj := map[string]any{
		"doc_type": "subpoena",
		"goal":     "intimidate",
		"summary":  "s",
	}
	c := RepairContract(obj, Request{Mode: ModeDefault})
	if c.DocType != "other" {
		t.Fatalf("doc_type = %q", c.DocType)
	}
	if c.Goal != "unknown" {
		t.Fatalf("goal = %q", c.Goal)
	}
}

func TestRepairContractNormalizesEnumCase(t *testing.T) {
	obj := map[string]any{"doc_type": " Invoice ", "goal": "INFORM"}
	c := RepairContract(obj, Request{Mode: ModeDefault})
	if c.DocType != "invoice" || c.Goal != "inform" {
		t.Fatalf("doc_type = %q, goal = %q", c.DocType, c.Goal)
	}
}

func TestRepairContractForcesVersionAndMode(t *testing.T) {
	obj := map[string]any{"version": 99, "mode": "banana"}
	c := RepairContract(obj, Request{Mode: ModeLegal})
	if c.Version != contractVersion {
		t.Fatalf("version = %d", c.Version)
	}
	if c.Mode != string(ModeLegal) {
		t.Fatalf("mode = %q", c.Mode)
	}
}

func TestRepairContractClampsKeyPoints(t *testing.T) {
	points := make([]any, maxKeyPoints+4)
	for i := range points {
		points[i] = "punt"
	}
	c := RepairContract(map[string]any{"key_points": points}, Request{Mode: ModeDefault})
	if len(c.KeyPoints) != maxKeyPoints {
		t.Fatalf("key_points length = %d", len(c.KeyPoints))
	}
}

func TestRepairContractClampsTitleGuess(t *testing.T) {
	c := RepairContract(map[string]any{"title_guess": strings.Repeat("é", 80)}, Request{Mode: ModeDefault})
	if got := len([]rune(c.TitleGuess)); got != 60 {
		t.Fatalf("title_guess rune length = %d", got)
	}
}

func TestRepairContractIBANStringCoercion(t *testing.T) {
	obj := map[string]any{
		"extracted": map[string]any{"iban": "NL91ABNA0417164300"},
	}
	c := RepairContract(obj, Request{Mode: ModeDefault})
	if len(c.Extracted.IBAN) != 1 || c.Extracted.IBAN[0] != "NL91ABNA0417164300" {
		t.Fatalf("iban = %v", c.Extracted.IBAN)
	}
}

func TestRepairContractDropsUnknownKeys(t *testing.T) {
	obj := map[string]any{"summary": "s", "confidence": 0.9, "internal_notes": "x"}
	c := RepairContract(obj, Request{Mode: ModeDefault})
	if c.Summary != "s" {
		t.Fatalf("summary = %q", c.Summary)
	}
}

func TestRepairContractLegalDefaults(t *testing.T) {
	c := RepairContract(map[string]any{}, Request{Mode: ModeLegal, LegalType: "incasso"})
	if c.Legal == nil {
		t.Fatal("legal block missing")
	}
	if c.Legal.ImpactLevel != "medium" || c.Legal.Assessment != "mixed" {
		t.Fatalf("legal = %+v", c.Legal)
	}
	if c.Legal.LegalType != "incasso" {
		t.Fatalf("legal_type = %q", c.Legal.LegalType)
	}
}

func TestRepairContractLegalReplyDraftTone(t *testing.T) {
	obj := map[string]any{
		"legal": map[string]any{
			"impact_level": "high",
			"reply_draft":  map[string]any{"tone": "aggressive", "subject": "s", "body": "b"},
		},
	}
	c := RepairContract(obj, Request{Mode: ModeLegal})
	if c.Legal.ImpactLevel != "high" {
		t.Fatalf("impact_level = %q", c.Legal.ImpactLevel)
	}
	if c.Legal.ReplyDraft == nil || c.Legal.ReplyDraft.Tone != "neutral" {
		t.Fatalf("reply_draft = %+v", c.Legal.ReplyDraft)
	}
}

func TestRepairContractDefaultModeStripsLegal(t *testing.T) {
	obj := map[string]any{"legal": map[string]any{"impact_level": "high"}}
	c := RepairContract(obj, Request{Mode: ModeDefault})
	if c.Legal != nil {
		t.Fatalf("legal = %+v, want nil", c.Legal)
	}
}

func TestRepairContractHollowObject(t *testing.T) {
	c := RepairContract(map[string]any{}, Request{Mode: ModeDefault})
	if c.Version != contractVersion || c.Mode != string(ModeDefault) {
		t.Fatalf("contract = %+v", c)
	}
	if c.KeyPoints == nil || c.Actions == nil || c.WhatIf == nil {
		t.Fatal("list fields must be non-nil after repair")
	}
}

func TestNormalizedLegalType(t *testing.T) {
	cases := map[string]string{
		"huur":    "huur",
		"INCASSO": "incasso",
		"divorce": "overig",
		"":        "overig",
	}
	for in, want := range cases {
		if got := normalizedLegalType(in); got != want {
			t.Fatalf("normalizedLegalType(%q) = %q, want %q", in, got, want)
		}
	}
}
