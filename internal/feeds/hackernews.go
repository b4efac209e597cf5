package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"blogsmith/internal/config"
	"blogsmith/internal/core"

	"github.com/google/uuid"
)

// hnItem is the Hacker News item detail payload.
type hnItem struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Score       int    `json:"score"`
	Descendants int    `json:"descendants"`
	Time        int64  `json:"time"`
}

const defaultHNMaxItems = 10

// collectHackerNews fetches the top-story ID list, then each story's detail.
// A failed detail fetch skips that story only.
func (n *Normalizer) collectHackerNews(ctx context.Context, src config.SourceConfig) ([]core.TopicCandidate, error) {
	raw, err := n.fetcher.Get(ctx, src.URL, nil)
	if err != nil {
		return nil, err
	}

	var ids []int64
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("decoding top stories: %w", err)
	}

	maxItems := src.MaxItems
	if maxItems <= 0 {
		maxItems = defaultHNMaxItems
	}
	if len(ids) > maxItems {
		ids = ids[:maxItems]
	}

	var candidates []core.TopicCandidate
	for _, id := range ids {
		detailURL := strings.ReplaceAll(src.DetailURL, "{id}", fmt.Sprintf("%d", id))
		detailRaw, err := n.fetcher.Get(ctx, detailURL, nil)
		if err != nil {
			n.log.Debug("Skipping story, detail fetch failed", "source", src.ID, "story_id", id, "error", err.Error())
			continue
		}

		candidate, ok := normalizeHNItem(detailRaw, src)
		if !ok {
			continue
		}
		candidates = append(candidates, candidate)
	}
	return candidates, nil
}

// normalizeHNItem converts one story detail payload into a candidate.
// Stories at or below the source's engagement floor are dropped.
func normalizeHNItem(raw []byte, src config.SourceConfig) (core.TopicCandidate, bool) {
	var item hnItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return core.TopicCandidate{}, false
	}
	if item.Title == "" || float64(item.Score) <= src.MinEngagement {
		return core.TopicCandidate{}, false
	}

	c := newCandidate(src, core.SourceHackerNews, item.Title, item.URL)
	c.Engagement = float64(item.Score)
	c.Comments = item.Descendants
	c.PublishedAt = time.Unix(item.Time, 0).UTC()
	return c, true
}

// newCandidate initializes the fields every source shares.
func newCandidate(src config.SourceConfig, kind core.Source, title, url string) core.TopicCandidate {
	return core.TopicCandidate{
		ID:       uuid.NewString(),
		Title:    title,
		URL:      url,
		Source:   kind,
		SourceID: src.ID,
		Weight:   src.Weight,
	}
}
