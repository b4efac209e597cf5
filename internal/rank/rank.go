// Package rank scores topic candidates and selects the best one.
package rank

import (
	"errors"
	"sort"
	"strings"
	"time"

	"blogsmith/internal/core"
)

// ErrNoCandidate is returned by Select when the combined candidate list is
// empty. Callers treat it as terminal for the run.
var ErrNoCandidate = errors.New("no trending topic candidate found")

const (
	engagementWeight = 0.4
	commentWeight    = 0.2
	freshnessBonus   = 50.0
	keywordBonus     = 30.0
	freshnessWindow  = 7.0 // days
	secondsPerDay    = 86400.0
)

// Score computes the composite relevance score for a candidate. It is a
// pure function: identical inputs and the same now produce identical output.
//
// The keyword bonus is additive and unbounded: a title matching four
// keywords gains +120 before the source weight is applied, so keyword-heavy
// titles can outrank higher-engagement ones.
func Score(c core.TopicCandidate, keywords []string, now time.Time) float64 {
	score := c.Engagement*engagementWeight + float64(c.Comments)*commentWeight

	ageDays := now.Sub(c.PublishedAt).Seconds() / secondsPerDay
	freshness := 1 - ageDays/freshnessWindow
	if freshness < 0 {
		freshness = 0
	}
	score += freshness * freshnessBonus

	title := strings.ToLower(c.Title)
	for _, keyword := range keywords {
		if keyword == "" {
			continue
		}
		if strings.Contains(title, strings.ToLower(keyword)) {
			score += keywordBonus
		}
	}

	return score * c.Weight
}

// Rank scores every candidate and returns them ordered by descending final
// score. The sort is stable: ties keep the original discovery order, so the
// ranking does not depend on score-equal permutations.
func Rank(candidates []core.TopicCandidate, keywords []string, now time.Time) []core.ScoredTopic {
	scored := make([]core.ScoredTopic, 0, len(candidates))
	for _, c := range candidates {
		scored = append(scored, core.ScoredTopic{
			Candidate:  c,
			FinalScore: Score(c, keywords, now),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].FinalScore > scored[j].FinalScore
	})
	return scored
}

// Select returns the highest-scoring candidate, or ErrNoCandidate when the
// combined list is empty. A single candidate is returned unconditionally,
// regardless of its score's sign.
func Select(candidates []core.TopicCandidate, keywords []string, now time.Time) (core.ScoredTopic, error) {
	scored := Rank(candidates, keywords, now)
	if len(scored) == 0 {
		return core.ScoredTopic{}, ErrNoCandidate
	}
	return scored[0], nil
}
