package explain

import "testing"

func TestSchemasCompile(t *testing.T) {
	if _, err := compileSchema(StandardSchemaMap()); err != nil {
		t.Fatalf("standard: %v", err)
	}
	if _, err := compileSchema(LegalSchemaMap()); err != nil {
		t.Fatalf("legal: %v", err)
	}
}

func TestRepairedContractSatisfiesStandardSchema(t *testing.T) {
	schema, err := compileSchema(StandardSchemaMap())
	if err != nil {
		t.Fatal(err)
	}

	obj := map[string]any{
		"doc_type":    "invoice",
		"goal":        "request_action",
		"title_guess": "Factuur",
		"summary":     "U moet een bedrag betalen.",
		"key_points":  []any{"bedrag", "deadline"},
	}
	req := Request{Text: "U moet €120 betalen vóór 5 januari 2025.", Mode: ModeDefault}
	c := RepairContract(obj, req)
	Merge(c, ExtractFacts(req.Text), req.Mode)

	if err := validateContract(schema, c); err != nil {
		t.Fatalf("schema violation: %v", err)
	}
}

func TestRepairedHollowContractSatisfiesStandardSchema(t *testing.T) {
	schema, err := compileSchema(StandardSchemaMap())
	if err != nil {
		t.Fatal(err)
	}
	c := RepairContract(map[string]any{}, Request{Mode: ModeDefault})
	Merge(c, Facts{}, ModeDefault)
	if err := validateContract(schema, c); err != nil {
		t.Fatalf("schema violation: %v", err)
	}
}

func TestRepairedLegalContractSatisfiesLegalSchema(t *testing.T) {
	schema, err := compileSchema(LegalSchemaMap())
	if err != nil {
		t.Fatal(err)
	}

	obj := map[string]any{
		"doc_type": "letter",
		"goal":     "request_action",
		"summary":  "Een incassobrief met betalingsverzoek.",
		"legal": map[string]any{
			"impact_level":      "high",
			"assessment":        "weak",
			"assessment_reason": "De vordering lijkt onderbouwd.",
			"reply_draft":       map[string]any{"tone": "neutral", "subject": "Reactie", "body": "Geachte heer/mevrouw,"},
		},
	}
	req := Request{Text: "Tweede aanmaning: betaal €350 vóór 1 maart 2025.", Mode: ModeLegal, LegalType: "incasso"}
	c := RepairContract(obj, req)
	Merge(c, ExtractFacts(req.Text), req.Mode)

	if err := validateContract(schema, c); err != nil {
		t.Fatalf("schema violation: %v", err)
	}
}

func TestLegalSchemaRequiresLegalBlock(t *testing.T) {
	schema, err := compileSchema(LegalSchemaMap())
	if err != nil {
		t.Fatal(err)
	}
	c := RepairContract(map[string]any{}, Request{Mode: ModeDefault})
	Merge(c, Facts{}, ModeDefault)
	// legal is null in default mode; the legal schema must reject that.
	if err := validateContract(schema, c); err == nil {
		t.Fatal("expected schema violation for null legal block")
	}
}
