package explain

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	anthropicclient "github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	openaiclient "github.com/openai/openai-go/v2"
	openaioption "github.com/openai/openai-go/v2/option"
	jetai "go.jetify.com/ai"
	jetapi "go.jetify.com/ai/api"
	jetanthropic "go.jetify.com/ai/provider/anthropic"
	jetopenai "go.jetify.com/ai/provider/openai"

	"github.com/NutriscanNL/explain-this-backend/internal/config"
)

const upstreamBodyLimit = 2000

// Invoker performs one completion call. It owns transport failure handling
// for that call and nothing else; no retries happen at this layer.
type Invoker interface {
	Invoke(ctx context.Context, p Payload) (string, error)
}

type providerInvoker struct {
	cfg    config.AIConfig
	client *http.Client
}

// NewInvoker builds the invoker for the configured provider type.
func NewInvoker(cfg config.AIConfig) Invoker {
	return &providerInvoker{
		cfg: cfg,
		// The per-request context carries the deadline; the client timeout is
		// a backstop for callers that pass a background context.
		client: &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds+5) * time.Second},
	}
}

func (pi *providerInvoker) Invoke(ctx context.Context, p Payload) (string, error) {
	if pi.cfg.APIKey == "" {
		return "", ErrMissingCredential
	}

	if isOpenAICompatibleType(pi.cfg.Type) {
		return pi.invokeChatCompletions(ctx, p)
	}

	model, err := buildLanguageModel(pi.cfg, p.Model)
	if err != nil {
		return "", err
	}
	resp, err := jetai.GenerateText(
		ctx,
		buildPromptMessages(p),
		jetai.WithModel(model),
		jetai.WithMaxOutputTokens(pi.cfg.MaxOutputTokens),
		jetai.WithTemperature(pi.cfg.Temperature),
	)
	if err != nil {
		return "", err
	}
	return textFromResponse(resp)
}

// invokeChatCompletions is the raw OpenAI-compatible path. Non-success
// statuses propagate with a truncated body so the classifier can inspect
// both.
func (pi *providerInvoker) invokeChatCompletions(ctx context.Context, p Payload) (string, error) {
	endpoint := normalizeCompatibleEndpoint(pi.cfg.Endpoint)

	messages := make([]map[string]string, 0, 2)
	if strings.TrimSpace(p.System) != "" {
		messages = append(messages, map[string]string{"role": "system", "content": p.System})
	}
	messages = append(messages, map[string]string{"role": "user", "content": p.User})

	body, _ := json.Marshal(map[string]any{
		"model":       p.Model,
		"messages":    messages,
		"temperature": pi.cfg.Temperature,
		"max_tokens":  pi.cfg.MaxOutputTokens,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+pi.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := pi.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return "", &UpstreamError{
			Status: resp.StatusCode,
			Body:   truncateText(strings.TrimSpace(string(respBody)), upstreamBodyLimit),
		}
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", err
	}
	if result.Error != nil && strings.TrimSpace(result.Error.Message) != "" {
		return "", &UpstreamError{Status: resp.StatusCode, Body: result.Error.Message}
	}
	if len(result.Choices) == 0 || strings.TrimSpace(result.Choices[0].Message.Content) == "" {
		return "", ErrEmptyCompletion
	}
	return result.Choices[0].Message.Content, nil
}

func isOpenAICompatibleType(raw string) bool {
	t := strings.ToLower(strings.TrimSpace(raw))
	t = strings.ReplaceAll(t, "_", "-")
	return t == "" || t == "openai-compatible" || t == "openaicompatible"
}

func buildLanguageModel(cfg config.AIConfig, modelID string) (jetapi.LanguageModel, error) {
	if strings.ToLower(strings.TrimSpace(cfg.Type)) == "anthropic" {
		opts := []anthropicoption.RequestOption{
			anthropicoption.WithAPIKey(cfg.APIKey),
			anthropicoption.WithMaxRetries(0),
		}
		if cfg.Endpoint != "" {
			opts = append(opts, anthropicoption.WithBaseURL(strings.TrimRight(cfg.Endpoint, "/")))
		}
		client := anthropicclient.NewClient(opts...)
		return jetanthropic.NewLanguageModel(modelID, jetanthropic.WithClient(client)), nil
	}

	opts := []openaioption.RequestOption{
		openaioption.WithAPIKey(cfg.APIKey),
		openaioption.WithMaxRetries(0),
	}
	if normalized := normalizeOpenAIBaseURL(cfg.Endpoint); normalized != "" {
		opts = append(opts, openaioption.WithBaseURL(normalized))
	}
	client := openaiclient.NewClient(opts...)
	return jetopenai.NewLanguageModel(modelID, jetopenai.WithClient(client)), nil
}

func buildPromptMessages(p Payload) []jetapi.Message {
	messages := make([]jetapi.Message, 0, 2)
	if strings.TrimSpace(p.System) != "" {
		messages = append(messages, &jetapi.SystemMessage{Content: p.System})
	}
	messages = append(messages, &jetapi.UserMessage{Content: jetapi.ContentFromText(p.User)})
	return messages
}

func textFromResponse(resp *jetapi.Response) (string, error) {
	if resp == nil {
		return "", ErrEmptyCompletion
	}
	var full strings.Builder
	for _, block := range resp.Content {
		textBlock, ok := block.(*jetapi.TextBlock)
		if !ok || textBlock.Text == "" {
			continue
		}
		full.WriteString(textBlock.Text)
	}
	text := full.String()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}

func normalizeOpenAIBaseURL(raw string) string {
	base := strings.TrimSpace(raw)
	if base == "" {
		return ""
	}
	parsed, err := neturl.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return strings.TrimRight(base, "/")
	}
	path := strings.TrimRight(parsed.Path, "/")
	if !strings.HasSuffix(path, "/v1") {
		if path == "" {
			path = "/v1"
		} else {
			path += "/v1"
		}
	}
	parsed.Path = path
	return strings.TrimRight(parsed.String(), "/")
}

func normalizeCompatibleEndpoint(raw string) string {
	base := strings.TrimSpace(raw)
	if base == "" {
		return "https://api.openai.com"
	}
	parsed, err := neturl.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		cleaned := strings.TrimRight(base, "/")
		return strings.TrimSuffix(cleaned, "/v1")
	}
	path := strings.TrimRight(parsed.Path, "/")
	path = strings.TrimSuffix(path, "/v1")
	parsed.Path = path
	return strings.TrimRight(parsed.String(), "/")
}
