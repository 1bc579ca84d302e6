package config

// AppConfig holds runtime startup configuration loaded from YAML and the
// environment. It is resolved once in main and injected; nothing reads the
// environment after startup.
type AppConfig struct {
	Port           int           `yaml:"port"`
	Env            string        `yaml:"env"` // "development" | "production"
	AllowedOrigins []string      `yaml:"allowed_origins"`
	MaxBodyMB      int           `yaml:"max_body_mb"`
	AI             AIConfig      `yaml:"ai"`
	Explain        ExplainConfig `yaml:"explain"`
}

// AIConfig describes the completion provider used by the explain pipeline.
type AIConfig struct {
	// Type selects the provider flavor: "openai", "anthropic" or
	// "openai-compatible" (raw chat-completions HTTP).
	Type            string  `yaml:"type"`
	APIKey          string  `yaml:"api_key"`
	Endpoint        string  `yaml:"endpoint"`
	Model           string  `yaml:"model"`
	LegalModel      string  `yaml:"legal_model"`
	Temperature     float64 `yaml:"temperature"`
	MaxOutputTokens int     `yaml:"max_output_tokens"`
	TimeoutSeconds  int     `yaml:"timeout_seconds"`
}

// ExplainConfig holds pipeline-level tunables.
type ExplainConfig struct {
	DefaultLanguage string `yaml:"default_language"`
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool {
	return c.Env != "production"
}

// KeyPresent reports whether an API credential is configured, without
// exposing its value.
func (c *AIConfig) KeyPresent() bool {
	return c.APIKey != ""
}

// ModelFor returns the model identifier for the given legal flag, falling
// back to the default model when no legal-specific one is configured.
func (c *AIConfig) ModelFor(legal bool) string {
	if legal && c.LegalModel != "" {
		return c.LegalModel
	}
	return c.Model
}
