// Package workflow wires the aggregation and synthesis subsystems into the
// two public entry points and the end-to-end daily run.
package workflow

import (
	"context"
	"log/slog"
	"time"

	"blogsmith/internal/config"
	"blogsmith/internal/core"
	"blogsmith/internal/logger"
	"blogsmith/internal/rank"
	"blogsmith/internal/sources"
	"blogsmith/internal/synthesis"
)

// Collector collects topic candidates from one configured source.
// Implementations absorb their own failures: a broken source yields zero
// candidates, never an error.
type Collector interface {
	Collect(ctx context.Context, src config.SourceConfig) []core.TopicCandidate
}

// Extractor pulls readable content out of a topic's source URL.
type Extractor interface {
	ExtractPage(ctx context.Context, url string) (core.ExtractedContent, error)
}

// Generator produces an article for a topic. The synthesis chain satisfies
// this and never fails.
type Generator interface {
	Generate(ctx context.Context, topic core.TopicCandidate, originalContent string, req core.GenerationRequest) core.Article
}

// PageWriter persists a rendered landing page.
type PageWriter interface {
	BuildPage(article core.Article) (core.PageData, error)
}

// Notifier delivers the post-run notification.
type Notifier interface {
	Enabled() bool
	SendArticleNotification(article core.Article, page core.PageData) error
}

// Engine is the orchestrator behind the CLI commands.
type Engine struct {
	registry  *sources.Registry
	collector Collector
	extractor Extractor
	generator Generator
	pages     PageWriter
	notifier  Notifier
	content   config.Content
	now       func() time.Time
	log       *slog.Logger
}

// Options bundles the collaborators an Engine needs. Pages and Notifier are
// optional; Registry, Collector, and Generator are required.
type Options struct {
	Registry  *sources.Registry
	Collector Collector
	Extractor Extractor
	Generator Generator
	Pages     PageWriter
	Notifier  Notifier
	Content   config.Content
	Now       func() time.Time
}

// NewEngine creates a workflow engine.
func NewEngine(opts Options) *Engine {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Engine{
		registry:  opts.Registry,
		collector: opts.Collector,
		extractor: opts.Extractor,
		generator: opts.Generator,
		pages:     opts.Pages,
		notifier:  opts.Notifier,
		content:   opts.Content,
		now:       opts.Now,
		log:       logger.Get(),
	}
}

// RankTopics aggregates candidates across the niche's sources, sequentially
// and with per-source failure isolation, and returns them ranked by final
// score.
func (e *Engine) RankTopics(ctx context.Context, niche string) []core.ScoredTopic {
	srcConfigs := e.registry.Sources(niche)
	keywords := e.registry.Keywords(niche)

	var candidates []core.TopicCandidate
	for _, src := range srcConfigs {
		select {
		case <-ctx.Done():
			e.log.Warn("Aggregation cancelled", "reason", ctx.Err())
			return rank.Rank(candidates, keywords, e.now())
		default:
		}
		candidates = append(candidates, e.collector.Collect(ctx, src)...)
	}

	scored := rank.Rank(candidates, keywords, e.now())
	e.log.Info("Aggregation completed", "niche", niche, "sources", len(srcConfigs), "candidates", len(scored))
	return scored
}

// SelectTrendingTopic returns the best-scoring topic for a niche, or
// rank.ErrNoCandidate when every source came up empty. That error is
// terminal for the run; callers report it rather than retrying.
func (e *Engine) SelectTrendingTopic(ctx context.Context, niche string) (core.ScoredTopic, error) {
	scored := e.RankTopics(ctx, niche)
	if len(scored) == 0 {
		return core.ScoredTopic{}, rank.ErrNoCandidate
	}
	top := scored[0]
	e.log.Info("Selected topic", "title", top.Candidate.Title, "score", top.FinalScore, "source", top.Candidate.SourceID)
	return top, nil
}

// SynthesizeArticle generates an article for a topic. It never fails: the
// strategy chain ends in the total template synthesizer.
func (e *Engine) SynthesizeArticle(ctx context.Context, topic core.TopicCandidate, originalContent string) core.Article {
	keywords := e.registry.Keywords(e.content.Niche)
	req := synthesis.BuildRequest(topic, originalContent, e.content.Niche, e.content.TargetWordCount, e.content.ExcerptMaxChars, keywords)
	return e.generator.Generate(ctx, topic, originalContent, req)
}

// RunResult summarizes one end-to-end workflow run.
type RunResult struct {
	Topic     core.ScoredTopic
	Article   core.Article
	Images    core.ImagePrompts
	Page      core.PageData
	EmailSent bool
	Elapsed   time.Duration
}

// Run executes the full workflow for a niche: select a trending topic,
// extract its source content, synthesize an article, build the landing
// page, and send the notification when configured.
func (e *Engine) Run(ctx context.Context, niche string) (RunResult, error) {
	started := e.now()
	e.log.Info("Starting workflow run", "niche", niche)

	topic, err := e.SelectTrendingTopic(ctx, niche)
	if err != nil {
		return RunResult{}, err
	}

	result := e.Publish(ctx, topic)
	result.Elapsed = e.now().Sub(started)
	e.log.Info("Workflow run completed",
		"topic", topic.Candidate.Title,
		"words", result.Article.WordCount,
		"read_time", result.Article.ReadTimeMinutes,
		"elapsed", result.Elapsed.String(),
	)
	return result, nil
}

// Publish runs the back half of the workflow for an already-chosen topic:
// extract the source content, synthesize the article, derive its image
// prompts, build the landing page, and notify. Page and email failures are
// absorbed into the result.
func (e *Engine) Publish(ctx context.Context, topic core.ScoredTopic) RunResult {
	originalContent := e.extractOriginal(ctx, topic.Candidate)

	article := e.SynthesizeArticle(ctx, topic.Candidate, originalContent)
	e.log.Info("Synthesized article", "title", article.Title, "words", article.WordCount, "provider", article.GeneratedBy)

	images := synthesis.BuildImagePrompts(article)
	e.log.Info("Derived image prompts", "featured", images.Featured, "supporting", len(images.Supporting))

	result := RunResult{Topic: topic, Article: article, Images: images}

	if e.pages != nil {
		page, err := e.pages.BuildPage(article)
		if err != nil {
			e.log.Error("Page build failed", "error", err.Error(), "title", article.Title)
		} else {
			result.Page = page
			e.log.Info("Built landing page", "file", page.Filename, "bytes", page.Size)
		}
	}

	if e.notifier != nil && e.notifier.Enabled() {
		if err := e.notifier.SendArticleNotification(article, result.Page); err != nil {
			e.log.Error("Notification email failed", "error", err.Error())
		} else {
			result.EmailSent = true
			e.log.Info("Notification email sent")
		}
	}
	return result
}

// extractOriginal pulls reference content from the topic URL when there is
// one. Extraction failures are logged and ignored; synthesis proceeds with
// whatever excerpt the feed item carried.
func (e *Engine) extractOriginal(ctx context.Context, topic core.TopicCandidate) string {
	if topic.URL == "" || e.extractor == nil {
		return topic.Excerpt
	}

	extracted, err := e.extractor.ExtractPage(ctx, topic.URL)
	if err != nil {
		e.log.Warn("Content extraction failed, using feed excerpt", "url", topic.URL, "error", err.Error())
		return topic.Excerpt
	}
	e.log.Info("Extracted source content", "url", topic.URL, "words", extracted.WordCount)
	return extracted.Text
}
