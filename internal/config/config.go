package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort            = 3000
	defaultEnv             = "development"
	defaultMaxBodyMB       = 5
	defaultProviderType    = "openai-compatible"
	defaultModel           = "gpt-4o-mini"
	defaultTemperature     = 0.2
	defaultMaxOutputTokens = 1500
	defaultTimeoutSeconds  = 60
	defaultLanguage        = "nl"
)

// Load reads the YAML config file, applies environment overrides and
// normalizes defaults. A missing file is not an error: the service can run
// entirely off the environment, as the original deployment did.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// environment-only mode
	default:
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	applyEnvOverrides(cfg)
	normalize(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			cfg.Port = port
		}
	}
	if v := strings.TrimSpace(os.Getenv("APP_ENV")); v != "" {
		cfg.Env = v
	}
	if v := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); v != "" {
		cfg.AI.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("OPENAI_ENDPOINT")); v != "" {
		cfg.AI.Endpoint = v
	}
	if v := strings.TrimSpace(os.Getenv("OPENAI_MODEL")); v != "" {
		cfg.AI.Model = v
	}
	if v := strings.TrimSpace(os.Getenv("OPENAI_LEGAL_MODEL")); v != "" {
		cfg.AI.LegalModel = v
	}
}

func normalize(cfg *AppConfig) {
	if cfg.Port <= 0 {
		cfg.Port = defaultPort
	}
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = defaultEnv
	}
	if cfg.MaxBodyMB <= 0 {
		cfg.MaxBodyMB = defaultMaxBodyMB
	}

	cfg.AI.Type = strings.ToLower(strings.TrimSpace(cfg.AI.Type))
	if cfg.AI.Type == "" {
		cfg.AI.Type = defaultProviderType
	}
	cfg.AI.APIKey = strings.TrimSpace(cfg.AI.APIKey)
	cfg.AI.Endpoint = strings.TrimSpace(cfg.AI.Endpoint)
	if strings.TrimSpace(cfg.AI.Model) == "" {
		cfg.AI.Model = defaultModel
	}
	if cfg.AI.Temperature <= 0 {
		cfg.AI.Temperature = defaultTemperature
	}
	if cfg.AI.MaxOutputTokens <= 0 {
		cfg.AI.MaxOutputTokens = defaultMaxOutputTokens
	}
	if cfg.AI.TimeoutSeconds <= 0 {
		cfg.AI.TimeoutSeconds = defaultTimeoutSeconds
	}

	if strings.TrimSpace(cfg.Explain.DefaultLanguage) == "" {
		cfg.Explain.DefaultLanguage = defaultLanguage
	}
}
