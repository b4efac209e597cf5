package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"blogsmith/internal/config"
	"blogsmith/internal/core"
)

// redditListing is the subset of Reddit's listing payload we consume.
type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Score       float64 `json:"score"`
	NumComments int     `json:"num_comments"`
	CreatedUTC  float64 `json:"created_utc"`
	IsSelf      bool    `json:"is_self"`
	SelfText    string  `json:"selftext"`
}

func (n *Normalizer) collectReddit(ctx context.Context, src config.SourceConfig) ([]core.TopicCandidate, error) {
	// Reddit rejects requests without a descriptive user agent.
	raw, err := n.fetcher.Get(ctx, src.URL, map[string]string{"User-Agent": "blogsmith/1.0"})
	if err != nil {
		return nil, err
	}
	return NormalizeReddit(raw, src)
}

// NormalizeReddit converts a Reddit hot listing into candidates. Self posts
// and posts at or below the engagement floor are dropped.
func NormalizeReddit(raw []byte, src config.SourceConfig) ([]core.TopicCandidate, error) {
	var listing redditListing
	if err := json.Unmarshal(raw, &listing); err != nil {
		return nil, fmt.Errorf("decoding reddit listing: %w", err)
	}

	var candidates []core.TopicCandidate
	for _, child := range listing.Data.Children {
		post := child.Data
		if post.Title == "" || post.IsSelf || post.Score <= src.MinEngagement {
			continue
		}

		c := newCandidate(src, core.SourceReddit, post.Title, post.URL)
		c.Engagement = post.Score
		c.Comments = post.NumComments
		c.PublishedAt = time.Unix(int64(post.CreatedUTC), 0).UTC()
		c.Excerpt = post.SelfText
		candidates = append(candidates, c)

		if src.MaxItems > 0 && len(candidates) >= src.MaxItems {
			break
		}
	}
	return candidates, nil
}
