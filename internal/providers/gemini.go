package providers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"blogsmith/internal/config"
	"blogsmith/internal/core"

	"google.golang.org/genai"
)

// Gemini drives the Google Gemini API through the official SDK. The client
// is created lazily on first use so that a configured-but-unreachable
// backend surfaces as an ordinary chain failure at generation time.
type Gemini struct {
	apiKey  string
	model   string
	timeout time.Duration

	mu      sync.Mutex
	gClient *genai.Client
}

// NewGemini creates the provider from configuration.
func NewGemini(cfg config.GeminiConfig) *Gemini {
	return &Gemini{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		timeout: config.ParseDuration(cfg.Timeout, 30*time.Second),
	}
}

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) Timeout() time.Duration { return g.timeout }

func (g *Gemini) client(ctx context.Context) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.gClient != nil {
		return g.gClient, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	g.gClient = client
	return client, nil
}

func (g *Gemini) Generate(ctx context.Context, req core.GenerationRequest) (string, error) {
	client, err := g.client(ctx)
	if err != nil {
		return "", err
	}

	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: req.Prompt}},
		Role:  "user",
	}}

	resp, err := client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return text, nil
}
