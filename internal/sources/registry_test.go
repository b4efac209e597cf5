package sources

import (
	"testing"

	"blogsmith/internal/config"
)

func TestRegistryDefaults(t *testing.T) {
	r := NewRegistry(nil)

	tech := r.Sources("tech")
	if len(tech) != 3 {
		t.Fatalf("tech has %d sources, want 3", len(tech))
	}

	byID := make(map[string]config.SourceConfig, len(tech))
	for _, s := range tech {
		byID[s.ID] = s
	}

	hn, ok := byID["hacker_news"]
	if !ok {
		t.Fatal("hacker_news source missing")
	}
	if hn.Weight != 0.4 || hn.MinEngagement != 50 || hn.MaxItems != 10 {
		t.Errorf("hacker_news = %+v", hn)
	}
	if hn.Kind != "hackernews" {
		t.Errorf("hacker_news kind = %q", hn.Kind)
	}

	if reddit := byID["reddit_programming"]; reddit.Weight != 0.3 || reddit.MinEngagement != 20 {
		t.Errorf("reddit_programming = %+v", reddit)
	}
	if devto := byID["dev_to"]; devto.Weight != 0.3 || devto.MinEngagement != 10 {
		t.Errorf("dev_to = %+v", devto)
	}
}

func TestRegistryUnknownNicheFallsBack(t *testing.T) {
	r := NewRegistry(nil)

	got := r.Sources("woodworking")
	want := r.Sources(DefaultNiche)
	if len(got) != len(want) || got[0].ID != want[0].ID {
		t.Errorf("unknown niche sources = %+v, want default niche's", got)
	}

	kw := r.Keywords("woodworking")
	if len(kw) == 0 || kw[0] != "JavaScript" {
		t.Errorf("unknown niche keywords = %v, want default niche's", kw)
	}
}

func TestRegistryConfigOverrides(t *testing.T) {
	cfg := &config.Config{
		Sources: map[string][]config.SourceConfig{
			"tech": {{ID: "my_feed", Kind: "rss", URL: "https://me.test/rss", Weight: 1.0}},
		},
		Keywords: map[string][]string{
			"tech": {"Zig", "WASM"},
		},
	}
	r := NewRegistry(cfg)

	got := r.Sources("tech")
	if len(got) != 1 || got[0].ID != "my_feed" {
		t.Errorf("override sources = %+v", got)
	}
	if kw := r.Keywords("tech"); len(kw) != 2 || kw[0] != "Zig" {
		t.Errorf("override keywords = %v", kw)
	}

	// Other niches keep their defaults.
	if len(r.Sources("ai")) != 2 {
		t.Errorf("ai sources = %+v", r.Sources("ai"))
	}
}

func TestRegistryNiches(t *testing.T) {
	r := NewRegistry(nil)
	niches := r.Niches()
	if len(niches) != 3 {
		t.Fatalf("got %d niches, want 3: %v", len(niches), niches)
	}
	found := make(map[string]bool)
	for _, n := range niches {
		found[n] = true
	}
	for _, want := range []string{"tech", "ai", "design"} {
		if !found[want] {
			t.Errorf("niche %q missing", want)
		}
	}
}
