package synthesis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"blogsmith/internal/core"
	"blogsmith/internal/logger"
)

// Provider is one generation strategy in the chain. Implementations perform
// a single attempt: retry policy lives in the chain (advance to the next
// provider), never inside a provider.
type Provider interface {
	// Name identifies the provider in logs and on generated articles.
	Name() string
	// Generate returns the raw provider output for a request. Any error or
	// empty output counts as a failure and advances the chain.
	Generate(ctx context.Context, req core.GenerationRequest) (string, error)
	// Timeout bounds a single attempt.
	Timeout() time.Duration
}

// Chain tries providers in order until one yields a parseable article, then
// falls back to the template synthesizer. Generate never returns an error:
// the template path is total.
type Chain struct {
	providers []Provider
	template  *TemplateSynthesizer
	log       *slog.Logger
}

// NewChain builds a strategy chain over the given providers. A nil or empty
// provider list is valid: generation goes straight to the template path.
func NewChain(providers []Provider, template *TemplateSynthesizer) *Chain {
	if template == nil {
		template = NewTemplateSynthesizer()
	}
	return &Chain{
		providers: providers,
		template:  template,
		log:       logger.Get(),
	}
}

// Generate runs the chain for a topic. Each provider attempt gets an
// independent timeout; a timeout is treated like any other failure. The
// returned Article is always valid.
func (c *Chain) Generate(ctx context.Context, topic core.TopicCandidate, originalContent string, req core.GenerationRequest) core.Article {
	for _, provider := range c.providers {
		article, err := c.attempt(ctx, provider, topic, req)
		if err != nil {
			c.log.Warn("Provider failed, advancing to next strategy",
				"provider", provider.Name(), "error", err.Error())
			continue
		}
		c.log.Info("Provider succeeded", "provider", provider.Name(), "words", article.WordCount)
		return article
	}

	c.log.Info("All providers exhausted, using template synthesizer")
	return c.template.Synthesize(topic, originalContent, req.Niche, req.Keywords)
}

func (c *Chain) attempt(ctx context.Context, provider Provider, topic core.TopicCandidate, req core.GenerationRequest) (core.Article, error) {
	attemptCtx := ctx
	if timeout := provider.Timeout(); timeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	raw, err := provider.Generate(attemptCtx, req)
	if err != nil {
		return core.Article{}, err
	}
	if strings.TrimSpace(raw) == "" {
		return core.Article{}, fmt.Errorf("provider returned empty output")
	}

	article, err := ParseResponse(raw, topic, c.template, req.Keywords)
	if err != nil {
		return core.Article{}, fmt.Errorf("parsing provider output: %w", err)
	}
	article.GeneratedBy = provider.Name()
	return article, nil
}
