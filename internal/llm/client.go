package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/msrishav-28/eduflow-dev/internal/config"
	"github.com/msrishav-28/eduflow-dev/internal/observability"
	"github.com/msrishav-28/eduflow-dev/internal/utils"
)

// ErrNotConfigured indique qu'aucune clé de fournisseur n'est définie.
var ErrNotConfigured = errors.New("no LLM provider configured")

// Fournisseurs supportés, par ordre de préférence.
const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Options de génération transmises au fournisseur.
type Options struct {
	Temperature float64
	MaxTokens   int
}

// Client est un client LLM indépendant du fournisseur.
// Aucune nouvelle tentative automatique: un échec remonte tel quel.
type Client struct {
	provider   string
	apiKey     string
	httpClient *http.Client
}

// Default est le client partagé initialisé au démarrage.
var Default *Client

// Init choisit le fournisseur d'après les clés présentes dans la config.
func Init(cfg *config.Config) {
	Default = New(cfg)
	if Default.provider == "" {
		utils.LogInfo("no LLM provider configured, generation endpoints will return 503")
		return
	}
	utils.LogInfo("LLM provider: %s", Default.provider)
}

// New construit un client en préférant gemini, puis openai, puis anthropic.
func New(cfg *config.Config) *Client {
	c := &Client{httpClient: &http.Client{Timeout: 60 * time.Second}}
	switch {
	case cfg.GeminiAPIKey != "":
		c.provider = ProviderGemini
		c.apiKey = cfg.GeminiAPIKey
	case cfg.OpenAIAPIKey != "":
		c.provider = ProviderOpenAI
		c.apiKey = cfg.OpenAIAPIKey
	case cfg.AnthropicAPIKey != "":
		c.provider = ProviderAnthropic
		c.apiKey = cfg.AnthropicAPIKey
	}
	return c
}

// Provider retourne le nom du fournisseur actif, ou "".
func (c *Client) Provider() string {
	return c.provider
}

// Configured indique si un fournisseur est utilisable.
func (c *Client) Configured() bool {
	return c != nil && c.provider != ""
}

// Call envoie le prompt au fournisseur et retourne le texte généré.
func (c *Client) Call(ctx context.Context, prompt string, opts Options) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}
	if opts.MaxTokens == 0 {
		opts.MaxTokens = 2048
	}

	start := time.Now()
	var text string
	var err error
	switch c.provider {
	case ProviderGemini:
		text, err = c.callGemini(ctx, prompt, opts)
	case ProviderOpenAI:
		text, err = c.callOpenAI(ctx, prompt, opts)
	case ProviderAnthropic:
		text, err = c.callAnthropic(ctx, prompt, opts)
	}
	observability.ObserveLLMRequest(c.provider, err, time.Since(start))
	if err != nil {
		utils.LogError("LLM call failed (%s): %v", c.provider, err)
		return "", err
	}
	return text, nil
}

func (c *Client) callGemini(ctx context.Context, prompt string, opts Options) (string, error) {
	url := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash:generateContent?key=%s",
		c.apiKey)

	body := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": []map[string]string{{"text": prompt}}},
		},
		"generationConfig": map[string]interface{}{
			"temperature":     opts.Temperature,
			"maxOutputTokens": opts.MaxTokens,
		},
	}

	raw, err := c.post(ctx, url, nil, body)
	if err != nil {
		return "", err
	}

	var resp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty gemini response")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

func (c *Client) callOpenAI(ctx context.Context, prompt string, opts Options) (string, error) {
	body := map[string]interface{}{
		"model": "gpt-4o-mini",
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"temperature": opts.Temperature,
		"max_tokens":  opts.MaxTokens,
	}
	headers := map[string]string{"Authorization": "Bearer " + c.apiKey}

	raw, err := c.post(ctx, "https://api.openai.com/v1/chat/completions", headers, body)
	if err != nil {
		return "", err
	}

	var resp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("decode openai response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty openai response")
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *Client) callAnthropic(ctx context.Context, prompt string, opts Options) (string, error) {
	body := map[string]interface{}{
		"model":      "claude-3-5-haiku-latest",
		"max_tokens": opts.MaxTokens,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"temperature": opts.Temperature,
	}
	headers := map[string]string{
		"x-api-key":         c.apiKey,
		"anthropic-version": "2023-06-01",
	}

	raw, err := c.post(ctx, "https://api.anthropic.com/v1/messages", headers, body)
	if err != nil {
		return "", err
	}

	var resp struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("decode anthropic response: %w", err)
	}
	if len(resp.Content) == 0 {
		return "", fmt.Errorf("empty anthropic response")
	}
	return resp.Content[0].Text, nil
}

func (c *Client) post(ctx context.Context, url string, headers map[string]string, body interface{}) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read provider response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("provider returned status %d", resp.StatusCode)
	}
	return raw, nil
}
