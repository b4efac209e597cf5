package workflow

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"blogsmith/internal/config"
	"blogsmith/internal/core"
	"blogsmith/internal/rank"
	"blogsmith/internal/sources"
)

type fakeCollector struct {
	bySource map[string][]core.TopicCandidate
	calls    []string
}

func (f *fakeCollector) Collect(ctx context.Context, src config.SourceConfig) []core.TopicCandidate {
	f.calls = append(f.calls, src.ID)
	return f.bySource[src.ID]
}

type fakeExtractor struct {
	content core.ExtractedContent
	err     error
	calls   int
}

func (f *fakeExtractor) ExtractPage(ctx context.Context, url string) (core.ExtractedContent, error) {
	f.calls++
	return f.content, f.err
}

type fakeGenerator struct {
	lastOriginal string
	lastReq      core.GenerationRequest
}

func (f *fakeGenerator) Generate(ctx context.Context, topic core.TopicCandidate, originalContent string, req core.GenerationRequest) core.Article {
	f.lastOriginal = originalContent
	f.lastReq = req
	return core.Article{
		ID:          "generated",
		Title:       topic.Title,
		HTMLContent: "<p>body</p>",
		WordCount:   1,
		SourceTopic: topic,
		GeneratedBy: "fake",
	}
}

type fakePages struct {
	err   error
	calls int
}

func (f *fakePages) BuildPage(article core.Article) (core.PageData, error) {
	f.calls++
	if f.err != nil {
		return core.PageData{}, f.err
	}
	return core.PageData{Filename: "page.html", Path: "/tmp/page.html", URL: "http://t/page.html", Size: 10}, nil
}

type fakeNotifier struct {
	enabled bool
	err     error
	calls   int
}

func (f *fakeNotifier) Enabled() bool { return f.enabled }

func (f *fakeNotifier) SendArticleNotification(article core.Article, page core.PageData) error {
	f.calls++
	return f.err
}

func testRegistry() *sources.Registry {
	return sources.NewRegistry(&config.Config{
		Sources: map[string][]config.SourceConfig{
			"tech": {
				{ID: "src_a", Kind: "rss", URL: "https://a.test", Weight: 0.5},
				{ID: "src_b", Kind: "rss", URL: "https://b.test", Weight: 0.5},
			},
		},
		Keywords: map[string][]string{
			"tech": {"golang"},
		},
	})
}

func candidate(title string, engagement float64, url string) core.TopicCandidate {
	return core.TopicCandidate{
		ID:          title,
		Title:       title,
		URL:         url,
		Engagement:  engagement,
		Weight:      0.5,
		PublishedAt: time.Now(),
	}
}

func newTestEngine(collector *fakeCollector, extractor *fakeExtractor, generator *fakeGenerator, pages *fakePages, notifier *fakeNotifier) *Engine {
	opts := Options{
		Registry:  testRegistry(),
		Collector: collector,
		Generator: generator,
		Content:   config.Content{Niche: "tech", TargetWordCount: 1800},
	}
	if extractor != nil {
		opts.Extractor = extractor
	}
	if pages != nil {
		opts.Pages = pages
	}
	if notifier != nil {
		opts.Notifier = notifier
	}
	return NewEngine(opts)
}

func TestRankTopicsAggregatesAcrossSources(t *testing.T) {
	collector := &fakeCollector{bySource: map[string][]core.TopicCandidate{
		"src_a": {candidate("low", 10, ""), candidate("high", 500, "")},
		"src_b": {candidate("mid", 100, "")},
	}}
	engine := newTestEngine(collector, nil, &fakeGenerator{}, nil, nil)

	scored := engine.RankTopics(context.Background(), "tech")

	if len(scored) != 3 {
		t.Fatalf("got %d topics, want 3", len(scored))
	}
	if scored[0].Candidate.Title != "high" {
		t.Errorf("top = %q, want high", scored[0].Candidate.Title)
	}
	if len(collector.calls) != 2 || collector.calls[0] != "src_a" || collector.calls[1] != "src_b" {
		t.Errorf("sources collected in order %v, want [src_a src_b]", collector.calls)
	}
}

func TestRankTopicsSurvivesEmptySources(t *testing.T) {
	collector := &fakeCollector{bySource: map[string][]core.TopicCandidate{
		"src_b": {candidate("only", 50, "")},
	}}
	engine := newTestEngine(collector, nil, &fakeGenerator{}, nil, nil)

	scored := engine.RankTopics(context.Background(), "tech")
	if len(scored) != 1 || scored[0].Candidate.Title != "only" {
		t.Fatalf("scored = %+v, want the one surviving candidate", scored)
	}
}

func TestSelectTrendingTopicEmptyIsTerminal(t *testing.T) {
	engine := newTestEngine(&fakeCollector{}, nil, &fakeGenerator{}, nil, nil)

	_, err := engine.SelectTrendingTopic(context.Background(), "tech")
	if !errors.Is(err, rank.ErrNoCandidate) {
		t.Fatalf("error = %v, want rank.ErrNoCandidate", err)
	}
}

func TestRunEndToEnd(t *testing.T) {
	collector := &fakeCollector{bySource: map[string][]core.TopicCandidate{
		"src_a": {candidate("winner", 300, "https://w.test/post")},
	}}
	extractor := &fakeExtractor{content: core.ExtractedContent{Text: "extracted text", WordCount: 2}}
	generator := &fakeGenerator{}
	pages := &fakePages{}
	notifier := &fakeNotifier{enabled: true}

	engine := newTestEngine(collector, extractor, generator, pages, notifier)

	result, err := engine.Run(context.Background(), "tech")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Topic.Candidate.Title != "winner" {
		t.Errorf("topic = %q", result.Topic.Candidate.Title)
	}
	if generator.lastOriginal != "extracted text" {
		t.Errorf("generator got original %q, want extracted text", generator.lastOriginal)
	}
	if generator.lastReq.Niche != "tech" || generator.lastReq.TargetWordCount != 1800 {
		t.Errorf("request = %+v", generator.lastReq)
	}
	if !strings.Contains(result.Images.Featured, "winner") {
		t.Errorf("featured image prompt = %q, want it derived from the article", result.Images.Featured)
	}
	if len(result.Images.Supporting) != 2 {
		t.Errorf("got %d supporting image prompts, want 2", len(result.Images.Supporting))
	}
	if pages.calls != 1 {
		t.Errorf("page builds = %d, want 1", pages.calls)
	}
	if result.Page.Filename != "page.html" {
		t.Errorf("page = %+v", result.Page)
	}
	if notifier.calls != 1 || !result.EmailSent {
		t.Errorf("notifier calls = %d, EmailSent = %v", notifier.calls, result.EmailSent)
	}
}

func TestRunExtractionFailureFallsBackToExcerpt(t *testing.T) {
	c := candidate("winner", 300, "https://w.test/post")
	c.Excerpt = "feed excerpt"
	collector := &fakeCollector{bySource: map[string][]core.TopicCandidate{"src_a": {c}}}
	extractor := &fakeExtractor{err: errors.New("403")}
	generator := &fakeGenerator{}

	engine := newTestEngine(collector, extractor, generator, nil, nil)

	if _, err := engine.Run(context.Background(), "tech"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if generator.lastOriginal != "feed excerpt" {
		t.Errorf("generator got %q, want the feed excerpt", generator.lastOriginal)
	}
}

func TestRunNoURLSkipsExtraction(t *testing.T) {
	collector := &fakeCollector{bySource: map[string][]core.TopicCandidate{
		"src_a": {candidate("no link", 300, "")},
	}}
	extractor := &fakeExtractor{}
	engine := newTestEngine(collector, extractor, &fakeGenerator{}, nil, nil)

	if _, err := engine.Run(context.Background(), "tech"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if extractor.calls != 0 {
		t.Errorf("extractor called %d times for a URL-less topic, want 0", extractor.calls)
	}
}

func TestRunAbsorbsPageAndEmailFailures(t *testing.T) {
	collector := &fakeCollector{bySource: map[string][]core.TopicCandidate{
		"src_a": {candidate("winner", 300, "")},
	}}
	pages := &fakePages{err: errors.New("disk full")}
	notifier := &fakeNotifier{enabled: true, err: errors.New("smtp down")}

	engine := newTestEngine(collector, nil, &fakeGenerator{}, pages, notifier)

	result, err := engine.Run(context.Background(), "tech")
	if err != nil {
		t.Fatalf("Run() error = %v, want absorbed failures", err)
	}
	if result.Page.Filename != "" {
		t.Errorf("page = %+v, want empty after build failure", result.Page)
	}
	if result.EmailSent {
		t.Error("EmailSent = true after delivery failure")
	}
}

func TestRunDisabledNotifierNotCalled(t *testing.T) {
	collector := &fakeCollector{bySource: map[string][]core.TopicCandidate{
		"src_a": {candidate("winner", 300, "")},
	}}
	notifier := &fakeNotifier{enabled: false}
	engine := newTestEngine(collector, nil, &fakeGenerator{}, nil, notifier)

	if _, err := engine.Run(context.Background(), "tech"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if notifier.calls != 0 {
		t.Errorf("disabled notifier called %d times", notifier.calls)
	}
}
