package explain

import (
	"reflect"
	"testing"
)

func TestMergeListsModelFirstUnion(t *testing.T) {
	c := &Contract{Extracted: Extracted{Amounts: []string{"€5"}}}
	Merge(c, Facts{Amounts: []string{"€5", "€7"}}, ModeDefault)
	want := []string{"€5", "€7"}
	if !reflect.DeepEqual(c.Extracted.Amounts, want) {
		t.Fatalf("amounts = %v, want %v", c.Extracted.Amounts, want)
	}
}

func TestMergeScalarModelWins(t *testing.T) {
	ref := "REF-MODEL"
	c := &Contract{Extracted: Extracted{Reference: &ref}}
	Merge(c, Facts{Reference: "REF-DET"}, ModeDefault)
	if c.Extracted.Reference == nil || *c.Extracted.Reference != "REF-MODEL" {
		t.Fatalf("reference = %v", c.Extracted.Reference)
	}
}

func TestMergeScalarDeterministicFallback(t *testing.T) {
	c := &Contract{}
	Merge(c, Facts{Deadline: "5 januari 2025"}, ModeDefault)
	if c.Extracted.Deadline == nil || *c.Extracted.Deadline != "5 januari 2025" {
		t.Fatalf("deadline = %v", c.Extracted.Deadline)
	}
	if c.Extracted.Reference != nil {
		t.Fatalf("reference = %v, want nil", c.Extracted.Reference)
	}
}

func TestMergeIBANBecomesList(t *testing.T) {
	c := &Contract{}
	Merge(c, Facts{IBAN: "NL91ABNA0417164300"}, ModeDefault)
	if !reflect.DeepEqual(c.Extracted.IBAN, []string{"NL91ABNA0417164300"}) {
		t.Fatalf("iban = %v", c.Extracted.IBAN)
	}
}

func TestMergeForcesDisclaimer(t *testing.T) {
	c := &Contract{Disclaimer: "  "}
	Merge(c, Facts{}, ModeDefault)
	if c.Disclaimer != DefaultDisclaimer {
		t.Fatalf("disclaimer = %q", c.Disclaimer)
	}
}

func TestMergeKeepsModelDisclaimer(t *testing.T) {
	c := &Contract{Disclaimer: "Eigen tekst."}
	Merge(c, Facts{}, ModeDefault)
	if c.Disclaimer != "Eigen tekst." {
		t.Fatalf("disclaimer = %q", c.Disclaimer)
	}
}

func TestMergeLegalModeEnsuresLegalBlock(t *testing.T) {
	c := &Contract{}
	Merge(c, Facts{}, ModeLegal)
	if c.Legal == nil {
		t.Fatal("legal block missing")
	}
	if c.Legal.ImpactLevel != "medium" || c.Legal.Assessment != "mixed" || c.Legal.LegalType != "overig" {
		t.Fatalf("legal defaults = %+v", c.Legal)
	}
	if c.Legal.Disclaimer == "" {
		t.Fatal("legal disclaimer empty")
	}
}

func TestMergeDefaultModeClearsLegal(t *testing.T) {
	c := &Contract{Legal: &Legal{ImpactLevel: "high"}}
	Merge(c, Facts{}, ModeDefault)
	if c.Legal != nil {
		t.Fatalf("legal = %+v, want nil", c.Legal)
	}
}

func TestMergeListsSkipsBlanksAndDupes(t *testing.T) {
	got := mergeLists([]string{"a", " ", "b"}, []string{"b", "c", ""})
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("mergeLists = %v, want %v", got, want)
	}
}
