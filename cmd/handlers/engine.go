package handlers

import (
	"fmt"

	"blogsmith/internal/config"
	"blogsmith/internal/email"
	"blogsmith/internal/feeds"
	"blogsmith/internal/fetch"
	"blogsmith/internal/providers"
	"blogsmith/internal/render"
	"blogsmith/internal/sources"
	"blogsmith/internal/synthesis"
	"blogsmith/internal/workflow"
)

// buildEngine wires the workflow engine from loaded configuration. Every
// command goes through here so collaborators are assembled one way.
func buildEngine() (*workflow.Engine, error) {
	cfg := config.Get()

	fetcher := fetch.NewClient(fetch.Options{
		UserAgent: cfg.Fetch.UserAgent,
		Timeout:   config.ParseDuration(cfg.Fetch.Timeout, fetch.DefaultOptions().Timeout),
		RateLimit: cfg.Fetch.RateLimit,
	})

	pages, err := render.NewPageBuilder(cfg.Output.Directory, render.SiteMeta{
		SiteName: cfg.Output.SiteName,
		BaseURL:  cfg.Output.BaseURL,
		Author:   cfg.Output.Author,
	})
	if err != nil {
		return nil, fmt.Errorf("building page renderer: %w", err)
	}

	notifier, err := email.NewSender(cfg.Email)
	if err != nil {
		return nil, fmt.Errorf("building email sender: %w", err)
	}

	chain := synthesis.NewChain(providers.FromConfig(cfg.Providers), synthesis.NewTemplateSynthesizer())

	return workflow.NewEngine(workflow.Options{
		Registry:  sources.NewRegistry(cfg),
		Collector: feeds.NewNormalizer(fetcher),
		Extractor: fetcher,
		Generator: chain,
		Pages:     pages,
		Notifier:  notifier,
		Content:   cfg.Content,
	}), nil
}
