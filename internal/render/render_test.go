package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"blogsmith/internal/core"
)

func sampleArticle() core.Article {
	return core.Article{
		ID:              "a-1",
		Title:           "Profiling Go Services in Production",
		MetaDescription: "A practical look at production profiling.",
		HTMLContent:     `<h2 id="introduction">Introduction</h2>` + "\n<p>Body text.</p>\n",
		Tags:            []string{"golang", "profiling"},
		ReadTimeMinutes: 4,
		WordCount:       812,
		TableOfContents: []core.TOCEntry{
			{Heading: "Introduction", AnchorID: "introduction", Level: 2},
		},
		SourceTopic: core.TopicCandidate{
			Title:  "pprof in anger",
			URL:    "https://news.test/item/1",
			Source: core.SourceHackerNews,
		},
		GeneratedAt: time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC),
	}
}

func TestBuildPageWritesFile(t *testing.T) {
	dir := t.TempDir()
	builder, err := NewPageBuilder(dir, SiteMeta{
		SiteName: "Blogsmith Daily",
		BaseURL:  "https://blog.test/",
		Author:   "Blogsmith",
	})
	if err != nil {
		t.Fatalf("NewPageBuilder() error = %v", err)
	}

	page, err := builder.BuildPage(sampleArticle())
	if err != nil {
		t.Fatalf("BuildPage() error = %v", err)
	}

	if page.Filename != "profiling-go-services-in-production-2025-06-15.html" {
		t.Errorf("Filename = %q", page.Filename)
	}
	if page.URL != "https://blog.test/output/"+page.Filename {
		t.Errorf("URL = %q", page.URL)
	}

	raw, err := os.ReadFile(filepath.Join(dir, page.Filename))
	if err != nil {
		t.Fatalf("reading written page: %v", err)
	}
	if page.Size != int64(len(raw)) {
		t.Errorf("Size = %d, file has %d bytes", page.Size, len(raw))
	}

	html := string(raw)
	for _, want := range []string{
		"<title>Profiling Go Services in Production | Blogsmith Daily</title>",
		`<h2 id="introduction">Introduction</h2>`,
		`<a href="#introduction">Introduction</a>`,
		`<span class="tag">golang</span>`,
		"June 15, 2025",
		"4 min read",
		"https://news.test/item/1",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestBuildPageContentIsNotEscaped(t *testing.T) {
	dir := t.TempDir()
	builder, err := NewPageBuilder(dir, SiteMeta{SiteName: "S", BaseURL: "http://s.test", Author: "A"})
	if err != nil {
		t.Fatalf("NewPageBuilder() error = %v", err)
	}

	page, err := builder.BuildPage(sampleArticle())
	if err != nil {
		t.Fatalf("BuildPage() error = %v", err)
	}

	raw, _ := os.ReadFile(page.Path)
	if strings.Contains(string(raw), "&lt;h2") {
		t.Error("article markup was HTML-escaped into the page")
	}
}

func TestFilename(t *testing.T) {
	date := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		title string
		want  string
	}{
		{"Hello World", "hello-world-2025-01-05.html"},
		{"C++ & Rust!", "c-rust-2025-01-05.html"},
		{"", "article-2025-01-05.html"},
		{"!!!", "article-2025-01-05.html"},
	}
	for _, tt := range tests {
		if got := Filename(tt.title, date); got != tt.want {
			t.Errorf("Filename(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}

	long := Filename(strings.Repeat("very long title ", 10), date)
	base := strings.TrimSuffix(long, "-2025-01-05.html")
	if len(base) > 60 {
		t.Errorf("slug %q exceeds 60 chars", base)
	}
}
