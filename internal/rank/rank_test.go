package rank

import (
	"errors"
	"math"
	"testing"
	"time"

	"blogsmith/internal/core"
)

func candidate(title string, engagement float64, comments int, weight float64, publishedAt time.Time) core.TopicCandidate {
	return core.TopicCandidate{
		ID:          title,
		Title:       title,
		Engagement:  engagement,
		Comments:    comments,
		Source:      core.SourceHackerNews,
		SourceID:    "hacker_news",
		Weight:      weight,
		PublishedAt: publishedAt,
	}
}

func TestScoreCompositeFormula(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	c := candidate("New React Hooks Guide", 100, 20, 0.4, now.Add(-24*time.Hour))
	keywords := []string{"React", "JavaScript"}

	// engagement 0.4*100 + 0.2*20 = 44; freshness (1 - 1/7)*50 ≈ 42.857;
	// one keyword match +30; total 116.857 * 0.4 ≈ 46.74.
	got := Score(c, keywords, now)
	want := (100*0.4 + 20*0.2 + (1-1.0/7.0)*50 + 30) * 0.4

	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("Score() = %f, want %f", got, want)
	}
	if math.Abs(got-46.742857) > 0.01 {
		t.Fatalf("Score() = %f, want ≈46.74", got)
	}
}

func TestScoreKeywordMatchingIsCaseInsensitiveSubstring(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name     string
		title    string
		keywords []string
		matches  int
	}{
		{"exact case", "React hooks deep dive", []string{"React"}, 1},
		{"different case", "REACT hooks deep dive", []string{"react"}, 1},
		{"substring", "Reactive programming patterns", []string{"React"}, 1},
		{"multiple matches", "Golang and Kubernetes in production", []string{"golang", "kubernetes", "rust"}, 2},
		{"no match", "Why ducks are great", []string{"golang"}, 0},
		{"empty keyword skipped", "Anything at all", []string{""}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := candidate(tt.title, 0, 0, 1.0, now)
			base := candidate("zzzz no match here", 0, 0, 1.0, now)

			got := Score(c, tt.keywords, now) - Score(base, tt.keywords, now)
			want := float64(tt.matches) * 30
			if math.Abs(got-want) > 1e-9 {
				t.Errorf("keyword bonus = %f, want %f", got, want)
			}
		})
	}
}

func TestScoreFreshnessDecay(t *testing.T) {
	now := time.Now()
	keywords := []string{}

	fresh := Score(candidate("t", 0, 0, 1.0, now), keywords, now)
	if math.Abs(fresh-50) > 1e-9 {
		t.Errorf("freshness bonus at age 0 = %f, want 50", fresh)
	}

	// Monotonically non-increasing with age.
	prev := fresh
	for days := 1; days <= 10; days++ {
		s := Score(candidate("t", 0, 0, 1.0, now.Add(-time.Duration(days)*24*time.Hour)), keywords, now)
		if s > prev {
			t.Fatalf("score increased with age at day %d: %f > %f", days, s, prev)
		}
		prev = s
	}

	// Zero at and beyond the seven-day window, never negative.
	atWindow := Score(candidate("t", 0, 0, 1.0, now.Add(-7*24*time.Hour)), keywords, now)
	if math.Abs(atWindow) > 1e-9 {
		t.Errorf("freshness at 7 days = %f, want 0", atWindow)
	}
	old := Score(candidate("t", 0, 0, 1.0, now.Add(-30*24*time.Hour)), keywords, now)
	if old < 0 {
		t.Errorf("freshness went negative for a 30-day-old candidate: %f", old)
	}
}

func TestScoreSourceWeightOrdering(t *testing.T) {
	now := time.Now()
	heavier := Score(candidate("same title", 100, 10, 0.5, now), nil, now)
	lighter := Score(candidate("same title", 100, 10, 0.3, now), nil, now)

	if heavier <= lighter {
		t.Fatalf("weight 0.5 scored %f, not above weight 0.3 at %f", heavier, lighter)
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	c := candidate("Kubernetes at scale", 88, 14, 0.4, now.Add(-36*time.Hour))
	keywords := []string{"kubernetes", "golang"}

	first := Score(c, keywords, now)
	for i := 0; i < 5; i++ {
		if got := Score(c, keywords, now); got != first {
			t.Fatalf("Score() not deterministic: run %d got %f, first run %f", i, got, first)
		}
	}
}

func TestRankOrdersByScoreDescending(t *testing.T) {
	now := time.Now()
	candidates := []core.TopicCandidate{
		candidate("low", 10, 0, 0.3, now),
		candidate("high", 500, 100, 0.4, now),
		candidate("mid", 100, 10, 0.4, now),
	}

	scored := Rank(candidates, nil, now)
	if len(scored) != 3 {
		t.Fatalf("Rank() returned %d topics, want 3", len(scored))
	}
	for i := 1; i < len(scored); i++ {
		if scored[i].FinalScore > scored[i-1].FinalScore {
			t.Errorf("position %d (%f) outranks position %d (%f)",
				i, scored[i].FinalScore, i-1, scored[i-1].FinalScore)
		}
	}
	if scored[0].Candidate.Title != "high" {
		t.Errorf("top candidate = %q, want %q", scored[0].Candidate.Title, "high")
	}
}

func TestRankTiesKeepDiscoveryOrder(t *testing.T) {
	now := time.Now()
	candidates := []core.TopicCandidate{
		candidate("first", 100, 10, 0.4, now),
		candidate("second", 100, 10, 0.4, now),
		candidate("third", 100, 10, 0.4, now),
	}

	scored := Rank(candidates, nil, now)
	want := []string{"first", "second", "third"}
	for i, title := range want {
		if scored[i].Candidate.Title != title {
			t.Errorf("position %d = %q, want %q", i, scored[i].Candidate.Title, title)
		}
	}
}

func TestSelectEmptyReturnsErrNoCandidate(t *testing.T) {
	_, err := Select(nil, nil, time.Now())
	if !errors.Is(err, ErrNoCandidate) {
		t.Fatalf("Select(nil) error = %v, want ErrNoCandidate", err)
	}
}

func TestSelectSingleCandidateWinsUnconditionally(t *testing.T) {
	now := time.Now()
	// Ancient, zero-engagement candidate still wins when it is the only one.
	only := candidate("lonely", 0, 0, 0.1, now.Add(-365*24*time.Hour))

	top, err := Select([]core.TopicCandidate{only}, nil, now)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if top.Candidate.Title != "lonely" {
		t.Errorf("Select() = %q, want %q", top.Candidate.Title, "lonely")
	}
}
