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

// HuggingFace drives the Hugging Face Inference API. Several candidate
// models are tried in sequence; the first one to produce text wins. Only
// when every model fails does the provider report failure to the chain.
type HuggingFace struct {
	apiKey     string
	models     []string
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	MaxLength   int     `json:"max_length"`
	Temperature float64 `json:"temperature"`
	DoSample    bool    `json:"do_sample"`
}

type hfResponse []struct {
	GeneratedText string `json:"generated_text"`
}

// NewHuggingFace creates the provider from configuration.
func NewHuggingFace(cfg config.HuggingFaceConfig) *HuggingFace {
	client, timeout := httpClientFor(cfg.Timeout, 60*time.Second)
	return &HuggingFace{
		apiKey:     cfg.APIKey,
		models:     cfg.Models,
		baseURL:    cfg.BaseURL,
		timeout:    timeout,
		httpClient: client,
	}
}

func (h *HuggingFace) Name() string { return "huggingface" }

func (h *HuggingFace) Timeout() time.Duration { return h.timeout }

// Generate tries each configured model in order.
func (h *HuggingFace) Generate(ctx context.Context, req core.GenerationRequest) (string, error) {
	if len(h.models) == 0 {
		return "", fmt.Errorf("no models configured")
	}

	var lastErr error
	for _, model := range h.models {
		text, err := h.callModel(ctx, model, req.Prompt)
		if err != nil {
			lastErr = fmt.Errorf("model %s: %w", model, err)
			continue
		}
		if text != "" {
			return text, nil
		}
		lastErr = fmt.Errorf("model %s: empty generation", model)
	}
	return "", lastErr
}

func (h *HuggingFace) callModel(ctx context.Context, model, prompt string) (string, error) {
	url := fmt.Sprintf("%s/models/%s", h.baseURL, model)
	payload := hfRequest{
		Inputs: prompt,
		Parameters: hfParameters{
			MaxLength:   2000,
			Temperature: 0.7,
			DoSample:    true,
		},
	}

	body, err := postJSON(ctx, h.httpClient, url, map[string]string{
		"Authorization": "Bearer " + h.apiKey,
	}, payload)
	if err != nil {
		return "", err
	}

	var decoded hfResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if len(decoded) == 0 {
		return "", nil
	}
	return decoded[0].GeneratedText, nil
}
