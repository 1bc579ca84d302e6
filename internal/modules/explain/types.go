package explain

// Mode switches both the prompt contract and the caution level of the
// output language.
type Mode string

const (
	ModeDefault Mode = "default"
	ModeLegal   Mode = "legal"
)

// Minimum trimmed text lengths, checked before any external call.
const (
	minTextLenDefault = 10
	minTextLenLegal   = 20
)

// Closed enumerations the model must choose from. The prompt embeds them and
// the repair step maps anything else back onto the neutral member.
var (
	docTypes     = []string{"manual", "invoice", "letter", "contract", "fine", "other"}
	goals        = []string{"inform", "request_action", "warning", "confirmation", "rejection", "invitation", "unknown"}
	impactLevels = []string{"low", "medium", "high"}
	assessments  = []string{"strong", "mixed", "weak"}
	tones        = []string{"neutral", "friendly", "firm"}
	legalTypes   = []string{"huur", "arbeid", "incasso", "bezwaar", "contract", "aansprakelijkheid", "overig"}
)

// Request is a normalized explanation request.
type Request struct {
	Text           string
	Context        string
	Mode           Mode
	LegalType      string
	Tone           string
	OutputLanguage string
}

// Facts holds the deterministic, model-independent extraction result.
// Absence of a pattern yields the zero value, never an error.
type Facts struct {
	Amounts   []string
	Dates     []string
	Deadline  string
	IBAN      string
	Reference string
}

// Action is a suggested next step for the reader.
type Action struct {
	Label    string  `json:"label"`
	Details  string  `json:"details"`
	Deadline *string `json:"deadline"`
}

// WhatIf describes a consequence of (in)action.
type WhatIf struct {
	If   string `json:"if"`
	Then string `json:"then"`
}

// Extracted is the fact block of the contract, merged from the model's
// answer and the deterministic extractor.
type Extracted struct {
	Amounts      []string `json:"amounts"`
	Dates        []string `json:"dates"`
	IBAN         []string `json:"iban"`
	Reference    *string  `json:"reference"`
	Organization *string  `json:"organization"`
	Deadline     *string  `json:"deadline"`
}

// ReplyDraft is a concept letter the user can adapt (legal mode only).
type ReplyDraft struct {
	Tone    string   `json:"tone"`
	Subject string   `json:"subject"`
	Body    string   `json:"body"`
	Notes   []string `json:"notes"`
}

// Legal is the cautionary assessment layer, present only in legal mode.
type Legal struct {
	ImpactLevel      string      `json:"impact_level"`
	Assessment       string      `json:"assessment"`
	AssessmentReason string      `json:"assessment_reason"`
	Uncertainties    []string    `json:"uncertainties"`
	MissingInfo      []string    `json:"missing_info"`
	ArgumentsFor     []string    `json:"arguments_for"`
	ArgumentsAgainst []string    `json:"arguments_against"`
	ReplyDraft       *ReplyDraft `json:"reply_draft"`
	LegalType        string      `json:"legal_type"`
	Disclaimer       string      `json:"disclaimer"`
}

// Contract is the versioned shape guaranteed to the caller after merging.
// Legal is nil outside legal mode; Disclaimer is always non-empty.
type Contract struct {
	Version    int       `json:"version"`
	Mode       string    `json:"mode"`
	DocType    string    `json:"doc_type"`
	Goal       string    `json:"goal"`
	TitleGuess string    `json:"title_guess"`
	Summary    string    `json:"summary"`
	KeyPoints  []string  `json:"key_points"`
	Actions    []Action  `json:"actions"`
	WhatIf     []WhatIf  `json:"what_if"`
	Extracted  Extracted `json:"extracted"`
	Disclaimer string    `json:"disclaimer"`
	Legal      *Legal    `json:"legal"`
}

// Payload is the fully composed instruction set for one completion call.
type Payload struct {
	System string
	User   string
	Model  string
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
