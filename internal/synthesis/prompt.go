// Package synthesis turns a selected topic into a structured article, either
// through a chain of generation providers or a deterministic template
// fallback that cannot fail.
package synthesis

import (
	"fmt"
	"strings"

	"blogsmith/internal/core"
)

// DefaultExcerptMaxChars bounds the reference excerpt embedded in prompts.
const DefaultExcerptMaxChars = 500

// BuildRequest assembles an immutable GenerationRequest for the strategy
// chain. Oversized reference content is truncated, never rejected; a
// non-positive excerptMax falls back to the default cap.
func BuildRequest(topic core.TopicCandidate, originalContent, niche string, targetWords, excerptMax int, keywords []string) core.GenerationRequest {
	if excerptMax <= 0 {
		excerptMax = DefaultExcerptMaxChars
	}
	excerpt := truncateRunes(originalContent, excerptMax)

	req := core.GenerationRequest{
		TopicTitle:       topic.Title,
		TopicSource:      topic.Source,
		Niche:            niche,
		TargetWordCount:  targetWords,
		Keywords:         append([]string(nil), keywords...),
		ReferenceExcerpt: excerpt,
	}
	req.Prompt = renderPrompt(req)
	return req
}

func renderPrompt(req core.GenerationRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a comprehensive %d-word blog post about: %s\n\n", req.TargetWordCount, req.TopicTitle)
	fmt.Fprintf(&b, "Topic source: %s\n", req.TopicSource)
	fmt.Fprintf(&b, "Niche: %s\n", req.Niche)
	fmt.Fprintf(&b, "Keywords to include: %s\n\n", strings.Join(req.Keywords, ", "))
	b.WriteString("Structure the content with:\n")
	b.WriteString("- Introduction\n")
	b.WriteString("- Main sections with H2 headings\n")
	b.WriteString("- Practical examples\n")
	b.WriteString("- Conclusion with actionable takeaways\n\n")
	fmt.Fprintf(&b, "Make it professional, informative, and engaging for %s professionals.\n", req.Niche)
	if req.ReferenceExcerpt != "" {
		fmt.Fprintf(&b, "\nReference content: %s...", req.ReferenceExcerpt)
	}
	return b.String()
}

// truncateRunes caps a string at n runes without splitting a multi-byte
// character.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
