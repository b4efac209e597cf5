package synthesis

import (
	"strings"
	"testing"

	"blogsmith/internal/core"
)

func TestBuildImagePrompts(t *testing.T) {
	article := core.Article{
		Title: "Understanding Go Generics",
		Tags:  []string{"golang", "generics", "types"},
	}

	prompts := BuildImagePrompts(article)

	if !strings.Contains(prompts.Featured, "Understanding Go Generics") {
		t.Errorf("featured prompt missing title: %q", prompts.Featured)
	}
	if len(prompts.Supporting) != 2 {
		t.Fatalf("got %d supporting prompts, want 2", len(prompts.Supporting))
	}
	if !strings.Contains(prompts.Supporting[0], "golang, generics") {
		t.Errorf("supporting prompt missing top tags: %q", prompts.Supporting[0])
	}
}

func TestBuildImagePromptsNoTagsUsesTitle(t *testing.T) {
	prompts := BuildImagePrompts(core.Article{Title: "Untagged Piece"})
	if !strings.Contains(prompts.Supporting[0], "Untagged Piece") {
		t.Errorf("supporting prompt = %q, want title fallback", prompts.Supporting[0])
	}
}
