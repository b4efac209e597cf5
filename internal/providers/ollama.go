package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"blogsmith/internal/config"
	"blogsmith/internal/core"
)

// Ollama drives a locally running Ollama instance. No credentials are
// needed; an unreachable endpoint is just a chain failure.
type Ollama struct {
	baseURL    string
	model      string
	timeout    time.Duration
	httpClient *http.Client
}

type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

// NewOllama creates the provider from configuration.
func NewOllama(cfg config.OllamaConfig) *Ollama {
	// Local models can be slow, hence the generous default.
	client, timeout := httpClientFor(cfg.Timeout, 120*time.Second)
	return &Ollama{
		baseURL:    cfg.BaseURL,
		model:      cfg.Model,
		timeout:    timeout,
		httpClient: client,
	}
}

func (o *Ollama) Name() string { return "ollama" }

func (o *Ollama) Timeout() time.Duration { return o.timeout }

func (o *Ollama) Generate(ctx context.Context, req core.GenerationRequest) (string, error) {
	payload := ollamaRequest{
		Model:  o.model,
		Prompt: req.Prompt,
		Stream: false,
	}

	body, err := postJSON(ctx, o.httpClient, o.baseURL+"/api/generate", nil, payload)
	if err != nil {
		return "", err
	}

	var decoded ollamaResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	return decoded.Response, nil
}
