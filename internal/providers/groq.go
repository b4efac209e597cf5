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

// Groq drives Groq's OpenAI-compatible chat completions endpoint.
type Groq struct {
	apiKey     string
	model      string
	baseURL    string
	maxTokens  int
	temp       float64
	timeout    time.Duration
	httpClient *http.Client
}

type groqMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type groqRequest struct {
	Messages    []groqMessage `json:"messages"`
	Model       string        `json:"model"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type groqResponse struct {
	Choices []struct {
		Message groqMessage `json:"message"`
	} `json:"choices"`
}

// NewGroq creates the provider from configuration.
func NewGroq(cfg config.GroqConfig) *Groq {
	client, timeout := httpClientFor(cfg.Timeout, 30*time.Second)
	return &Groq{
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		baseURL:    cfg.BaseURL,
		maxTokens:  cfg.MaxTokens,
		temp:       cfg.Temp,
		timeout:    timeout,
		httpClient: client,
	}
}

func (g *Groq) Name() string { return "groq" }

func (g *Groq) Timeout() time.Duration { return g.timeout }

func (g *Groq) Generate(ctx context.Context, req core.GenerationRequest) (string, error) {
	payload := groqRequest{
		Messages:    []groqMessage{{Role: "user", Content: req.Prompt}},
		Model:       g.model,
		MaxTokens:   g.maxTokens,
		Temperature: g.temp,
	}

	body, err := postJSON(ctx, g.httpClient, g.baseURL+"/chat/completions", map[string]string{
		"Authorization": "Bearer " + g.apiKey,
	}, payload)
	if err != nil {
		return "", err
	}

	var decoded groqResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return decoded.Choices[0].Message.Content, nil
}
