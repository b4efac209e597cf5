// Package providers implements the generation strategies tried by the
// synthesis chain: the Hugging Face inference API, a local Ollama endpoint,
// Groq's chat completions API, and Google Gemini.
package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"blogsmith/internal/config"
	"blogsmith/internal/synthesis"
)

// FromConfig builds the provider chain in the configured order. Providers
// missing required credentials are skipped rather than configured to fail;
// unknown names are ignored. Ollama needs no credentials and is always
// constructible.
func FromConfig(cfg config.Providers) []synthesis.Provider {
	var chain []synthesis.Provider
	for _, name := range cfg.Order {
		switch name {
		case "huggingface":
			if cfg.HuggingFace.APIKey != "" {
				chain = append(chain, NewHuggingFace(cfg.HuggingFace))
			}
		case "ollama":
			chain = append(chain, NewOllama(cfg.Ollama))
		case "groq":
			if cfg.Groq.APIKey != "" {
				chain = append(chain, NewGroq(cfg.Groq))
			}
		case "gemini":
			if cfg.Gemini.APIKey != "" {
				chain = append(chain, NewGemini(cfg.Gemini))
			}
		}
	}
	return chain
}

// postJSON issues a JSON POST and returns the response body. Non-2xx
// statuses are errors; the body is included truncated for diagnostics.
func postJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	}
	return respBody, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// httpClientFor builds an http.Client for a provider timeout string.
func httpClientFor(timeout string, fallback time.Duration) (*http.Client, time.Duration) {
	d := config.ParseDuration(timeout, fallback)
	return &http.Client{Timeout: d}, d
}
