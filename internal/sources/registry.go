// Package sources provides the per-niche source and keyword registries.
package sources

import "blogsmith/internal/config"

// DefaultNiche is used when a requested niche has no registered sources or
// keywords.
const DefaultNiche = "tech"

var defaultSources = map[string][]config.SourceConfig{
	"tech": {
		{
			ID:            "hacker_news",
			Kind:          "hackernews",
			URL:           "https://hacker-news.firebaseio.com/v0/topstories.json",
			DetailURL:     "https://hacker-news.firebaseio.com/v0/item/{id}.json",
			Weight:        0.4,
			MinEngagement: 50,
			MaxItems:      10,
		},
		{
			ID:            "reddit_programming",
			Kind:          "reddit",
			URL:           "https://www.reddit.com/r/programming/hot.json?limit=25",
			Weight:        0.3,
			MinEngagement: 20,
		},
		{
			ID:            "dev_to",
			Kind:          "devto",
			URL:           "https://dev.to/api/articles?top=1",
			Weight:        0.3,
			MinEngagement: 10,
		},
	},
	"ai": {
		{
			ID:            "reddit_ml",
			Kind:          "reddit",
			URL:           "https://www.reddit.com/r/MachineLearning/hot.json?limit=25",
			Weight:        0.5,
			MinEngagement: 20,
		},
		{
			ID:     "arxiv",
			Kind:   "rss",
			URL:    "http://export.arxiv.org/api/query?search_query=cat:cs.AI&sortBy=submittedDate&sortOrder=descending&max_results=10",
			Weight: 0.5,
		},
	},
	"design": {
		{
			ID:            "reddit_design",
			Kind:          "reddit",
			URL:           "https://www.reddit.com/r/web_design/hot.json?limit=25",
			Weight:        0.5,
			MinEngagement: 20,
		},
		{
			ID:     "sidebar",
			Kind:   "rss",
			URL:    "https://sidebar.io/feed.xml",
			Weight: 0.5,
		},
	},
}

var defaultKeywords = map[string][]string{
	"tech":   {"JavaScript", "React", "Node.js", "Python", "Web Development", "APIs"},
	"ai":     {"Machine Learning", "Deep Learning", "Neural Networks", "AI", "ChatGPT", "LLM"},
	"design": {"UI/UX", "Design Systems", "Figma", "CSS", "Frontend", "User Experience"},
}

// Registry resolves niches to source configurations and keyword lists.
// Config-file entries override the built-in defaults per niche.
type Registry struct {
	sources  map[string][]config.SourceConfig
	keywords map[string][]string
}

// NewRegistry builds a registry from configuration overrides layered over
// the built-in defaults.
func NewRegistry(cfg *config.Config) *Registry {
	r := &Registry{
		sources:  make(map[string][]config.SourceConfig, len(defaultSources)),
		keywords: make(map[string][]string, len(defaultKeywords)),
	}
	for niche, s := range defaultSources {
		r.sources[niche] = s
	}
	for niche, k := range defaultKeywords {
		r.keywords[niche] = k
	}
	if cfg != nil {
		for niche, s := range cfg.Sources {
			r.sources[niche] = s
		}
		for niche, k := range cfg.Keywords {
			r.keywords[niche] = k
		}
	}
	return r
}

// Sources returns the source configurations for a niche, falling back to
// the default niche when the requested one is unknown.
func (r *Registry) Sources(niche string) []config.SourceConfig {
	if s, ok := r.sources[niche]; ok && len(s) > 0 {
		return s
	}
	return r.sources[DefaultNiche]
}

// Keywords returns the ordered keyword list for a niche, falling back to
// the default niche when the requested one is unknown.
func (r *Registry) Keywords(niche string) []string {
	if k, ok := r.keywords[niche]; ok && len(k) > 0 {
		return k
	}
	return r.keywords[DefaultNiche]
}

// Niches lists all niches with registered sources.
func (r *Registry) Niches() []string {
	niches := make([]string, 0, len(r.sources))
	for n := range r.sources {
		niches = append(niches, n)
	}
	return niches
}
