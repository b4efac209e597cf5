package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"blogsmith/internal/config"
	"blogsmith/internal/core"
)

// devtoArticle is the subset of the Dev.to articles API we consume.
type devtoArticle struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	Reactions     int    `json:"public_reactions_count"`
	CommentsCount int    `json:"comments_count"`
	PublishedAt   string `json:"published_at"`
	Description   string `json:"description"`
}

func (n *Normalizer) collectDevTo(ctx context.Context, src config.SourceConfig) ([]core.TopicCandidate, error) {
	raw, err := n.fetcher.Get(ctx, src.URL, nil)
	if err != nil {
		return nil, err
	}
	return NormalizeDevTo(raw, src)
}

// NormalizeDevTo converts a Dev.to articles response into candidates.
// Articles at or below the reaction floor are dropped. A missing or
// malformed publication date defaults to the zero time rather than failing
// the batch.
func NormalizeDevTo(raw []byte, src config.SourceConfig) ([]core.TopicCandidate, error) {
	var articles []devtoArticle
	if err := json.Unmarshal(raw, &articles); err != nil {
		return nil, fmt.Errorf("decoding dev.to articles: %w", err)
	}

	var candidates []core.TopicCandidate
	for _, article := range articles {
		if article.Title == "" || float64(article.Reactions) <= src.MinEngagement {
			continue
		}

		c := newCandidate(src, core.SourceDevTo, article.Title, article.URL)
		c.Engagement = float64(article.Reactions)
		c.Comments = article.CommentsCount
		c.Excerpt = article.Description
		if ts, err := time.Parse(time.RFC3339, article.PublishedAt); err == nil {
			c.PublishedAt = ts.UTC()
		}
		candidates = append(candidates, c)

		if src.MaxItems > 0 && len(candidates) >= src.MaxItems {
			break
		}
	}
	return candidates, nil
}
