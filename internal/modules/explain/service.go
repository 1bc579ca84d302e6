package explain

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.uber.org/zap"

	"github.com/NutriscanNL/explain-this-backend/internal/config"
)

// Service runs the explanation pipeline: validate → compose → invoke →
// salvage → repair → merge. Requests are independent; the only shared state
// is the read-only configuration captured at construction.
type Service struct {
	cfg         config.AIConfig
	defaultLang string
	invoker     Invoker
	logger      *zap.Logger

	standardSchema *jsonschema.Schema
	legalSchema    *jsonschema.Schema
}

// NewService wires the pipeline against the configured provider.
func NewService(cfg *config.AppConfig, logger *zap.Logger) (*Service, error) {
	standard, err := compileSchema(StandardSchemaMap())
	if err != nil {
		return nil, fmt.Errorf("standard contract schema: %w", err)
	}
	legal, err := compileSchema(LegalSchemaMap())
	if err != nil {
		return nil, fmt.Errorf("legal contract schema: %w", err)
	}
	return &Service{
		cfg:            cfg.AI,
		defaultLang:    cfg.Explain.DefaultLanguage,
		invoker:        NewInvoker(cfg.AI),
		logger:         logger,
		standardSchema: standard,
		legalSchema:    legal,
	}, nil
}

// Explain runs the full pipeline for one request. Failures come back as
// typed errors for Classify; a *ParseFailure is returned as-is so callers
// can choose between a hard error and Fallback.
func (s *Service) Explain(ctx context.Context, req Request) (*Contract, error) {
	req = s.normalize(req)
	if err := validate(req); err != nil {
		return nil, err
	}
	if s.cfg.APIKey == "" {
		return nil, ErrMissingCredential
	}

	reqID := uuid.NewString()
	payload := ComposePrompt(req, s.defaultLang, s.cfg.ModelFor(req.Mode == ModeLegal))

	ctx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.TimeoutSeconds)*time.Second)
	defer cancel()

	start := time.Now()
	raw, err := s.invoker.Invoke(ctx, payload)
	if err != nil {
		s.logger.Warn("completion call failed",
			zap.String("req_id", reqID),
			zap.String("model", payload.Model),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return nil, err
	}

	obj, err := SalvageJSON(raw)
	if err != nil {
		s.logger.Warn("model output could not be salvaged",
			zap.String("req_id", reqID),
			zap.String("model", payload.Model),
		)
		return nil, err
	}

	contract := RepairContract(obj, req)
	Merge(contract, ExtractFacts(req.Text), req.Mode)

	if err := validateContract(s.schemaFor(req.Mode), contract); err != nil {
		// Non-fatal: the repaired contract is still usable, but a schema
		// violation here means repair rules and schema drifted apart.
		s.logger.Warn("merged contract violates schema",
			zap.String("req_id", reqID),
			zap.Error(err),
		)
	}

	s.logger.Info("explanation produced",
		zap.String("req_id", reqID),
		zap.String("mode", string(req.Mode)),
		zap.String("model", payload.Model),
		zap.Duration("elapsed", time.Since(start)),
	)
	return contract, nil
}

// Fallback builds the deterministic placeholder contract used when a caller
// prefers a degraded answer over a hard parse error. The extraction block is
// still populated from the deterministic extractor.
func (s *Service) Fallback(req Request) *Contract {
	req = s.normalize(req)
	c := &Contract{
		Version:    contractVersion,
		Mode:       string(req.Mode),
		DocType:    "other",
		Goal:       "unknown",
		TitleGuess: "Document",
		Summary:    "De tekst kon niet automatisch worden uitgelegd. Lees het originele document zorgvuldig.",
		KeyPoints:  []string{},
		Actions:    []Action{},
		WhatIf:     []WhatIf{},
	}
	return Merge(c, ExtractFacts(req.Text), req.Mode)
}

func (s *Service) normalize(req Request) Request {
	if req.Mode != ModeLegal {
		req.Mode = ModeDefault
	}
	if !contains(tones, req.Tone) {
		req.Tone = "neutral"
	}
	req.LegalType = normalizedLegalType(req.LegalType)
	if strings.TrimSpace(req.OutputLanguage) == "" {
		req.OutputLanguage = s.defaultLang
	}
	return req
}

func (s *Service) schemaFor(mode Mode) *jsonschema.Schema {
	if mode == ModeLegal {
		return s.legalSchema
	}
	return s.standardSchema
}

func validate(req Request) error {
	minLen := minTextLenDefault
	if req.Mode == ModeLegal {
		minLen = minTextLenLegal
	}
	if utf8.RuneCountInString(strings.TrimSpace(req.Text)) < minLen {
		return &InputError{Detail: fmt.Sprintf("text must be at least %d characters", minLen)}
	}
	return nil
}
