// Package feeds normalizes heterogeneous feed responses into uniform topic
// candidates. A failure in any single source yields zero candidates for that
// source only; aggregation across sources is never aborted from here.
package feeds

import (
	"context"
	"log/slog"
	"strings"

	"blogsmith/internal/config"
	"blogsmith/internal/core"
	"blogsmith/internal/logger"

	"github.com/mmcdole/gofeed"
)

// Fetcher is the fetch collaborator contract. A single failed fetch is
// swallowed and logged by the normalizer, not retried.
type Fetcher interface {
	Get(ctx context.Context, url string, headers map[string]string) ([]byte, error)
}

// Normalizer converts raw source responses into topic candidates.
type Normalizer struct {
	fetcher    Fetcher
	feedParser *gofeed.Parser
	log        *slog.Logger
}

// NewNormalizer creates a normalizer backed by the given fetch collaborator.
func NewNormalizer(fetcher Fetcher) *Normalizer {
	return &Normalizer{
		fetcher:    fetcher,
		feedParser: gofeed.NewParser(),
		log:        logger.Get(),
	}
}

// Collect fetches one configured source and returns its candidates. Any
// fetch or parse failure is logged and reported as zero candidates.
func (n *Normalizer) Collect(ctx context.Context, src config.SourceConfig) []core.TopicCandidate {
	var (
		candidates []core.TopicCandidate
		err        error
	)

	switch strings.ToLower(src.Kind) {
	case "hackernews":
		candidates, err = n.collectHackerNews(ctx, src)
	case "reddit":
		candidates, err = n.collectReddit(ctx, src)
	case "devto":
		candidates, err = n.collectDevTo(ctx, src)
	case "rss":
		candidates, err = n.collectRSS(ctx, src)
	default:
		n.log.Warn("Unknown source kind, skipping", "source", src.ID, "kind", src.Kind)
		return nil
	}

	if err != nil {
		n.log.Warn("Source unavailable, continuing without it", "source", src.ID, "error", err.Error())
		return nil
	}

	n.log.Debug("Collected candidates", "source", src.ID, "count", len(candidates))
	return candidates
}

// collectRSS handles generic RSS/Atom sources (arxiv and friends). Feed
// entries carry no native engagement metric, so engagement stays zero and
// ranking leans on freshness and keywords.
func (n *Normalizer) collectRSS(ctx context.Context, src config.SourceConfig) ([]core.TopicCandidate, error) {
	raw, err := n.fetcher.Get(ctx, src.URL, nil)
	if err != nil {
		return nil, err
	}

	feed, err := n.feedParser.ParseString(string(raw))
	if err != nil {
		return nil, err
	}

	var candidates []core.TopicCandidate
	for _, item := range feed.Items {
		if item == nil || strings.TrimSpace(item.Title) == "" {
			continue
		}
		c := newCandidate(src, core.SourceRSS, strings.TrimSpace(item.Title), item.Link)
		if item.PublishedParsed != nil {
			c.PublishedAt = *item.PublishedParsed
		}
		c.Excerpt = strings.TrimSpace(item.Description)
		candidates = append(candidates, c)

		if src.MaxItems > 0 && len(candidates) >= src.MaxItems {
			break
		}
	}
	return candidates, nil
}
