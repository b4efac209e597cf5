package synthesis

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"blogsmith/internal/core"

	"github.com/google/uuid"
)

var (
	embeddedJSONRegex   = regexp.MustCompile(`(?s)\{.*\}`)
	markdownHeadingLine = regexp.MustCompile(`(?m)^(#{1,3})\s+(.+)$`)
	headingParagraph    = regexp.MustCompile(`^(#{1,3})\s*(.+)`)
	allCapsHeading      = regexp.MustCompile(`^[A-Z][A-Z\s]+:`)
)

// providerArticle is the structured shape some providers emit directly.
type providerArticle struct {
	Title           string   `json:"title"`
	MetaDescription string   `json:"meta_description"`
	Content         string   `json:"content"`
	Tags            []string `json:"tags"`
	SEOKeywords     []string `json:"seo_keywords"`
}

// ParseResponse normalizes a provider's raw output into the canonical
// Article. Two shapes are recognized: an embedded JSON object carrying a
// title field, or freeform text that gets structured into headings and
// paragraphs. Empty output is an error; the strategy chain falls back to
// the template synthesizer in that case.
//
// The synthesizer supplies title enhancement and metadata derivation so
// both generation paths emit consistent articles and share one entropy
// source. A nil synthesizer gets a fresh one.
func ParseResponse(raw string, topic core.TopicCandidate, synth *TemplateSynthesizer, keywords []string) (core.Article, error) {
	if strings.TrimSpace(raw) == "" {
		return core.Article{}, fmt.Errorf("empty provider output")
	}

	if article, ok := parseStructured(raw, topic, keywords); ok {
		return article, nil
	}

	if synth == nil {
		synth = NewTemplateSynthesizer()
	}

	content := formatFreeformText(raw)
	wordCount := CountWords(content)

	return core.Article{
		ID:              uuid.NewString(),
		Title:           synth.enhanceTitle(topic.Title),
		MetaDescription: metaDescription(topic.Title, keywords),
		HTMLContent:     content,
		Tags:            extractTags(topic.Title, keywords),
		ReadTimeMinutes: ReadTimeMinutes(wordCount),
		SEOKeywords:     firstN(keywords, 5),
		TableOfContents: tocFromMarkdown(raw),
		SourceTopic:     topic,
		GeneratedAt:     time.Now().UTC(),
		WordCount:       wordCount,
		GeneratedBy:     "provider",
	}, nil
}

// parseStructured attempts the embedded-JSON shape. The provider's
// structure is trusted when a title field is present.
func parseStructured(raw string, topic core.TopicCandidate, keywords []string) (core.Article, bool) {
	match := embeddedJSONRegex.FindString(raw)
	if match == "" {
		return core.Article{}, false
	}

	var parsed providerArticle
	if err := json.Unmarshal([]byte(match), &parsed); err != nil || parsed.Title == "" {
		return core.Article{}, false
	}

	wordCount := CountWords(parsed.Content)
	article := core.Article{
		ID:              uuid.NewString(),
		Title:           parsed.Title,
		MetaDescription: parsed.MetaDescription,
		HTMLContent:     parsed.Content,
		Tags:            parsed.Tags,
		ReadTimeMinutes: ReadTimeMinutes(wordCount),
		SEOKeywords:     parsed.SEOKeywords,
		TableOfContents: tocFromMarkdown(parsed.Content),
		SourceTopic:     topic,
		GeneratedAt:     time.Now().UTC(),
		WordCount:       wordCount,
		GeneratedBy:     "provider",
	}
	if article.MetaDescription == "" {
		article.MetaDescription = metaDescription(parsed.Title, keywords)
	}
	if len(article.SEOKeywords) == 0 {
		article.SEOKeywords = firstN(keywords, 5)
	}
	if len(article.Tags) == 0 {
		article.Tags = extractTags(parsed.Title, keywords)
	}
	return article, true
}

// formatFreeformText converts plain provider text into HTML. Paragraphs are
// blank-line separated; markdown-style headings keep their depth; an
// all-caps phrase ending in ":" becomes a title-cased level-2 heading.
func formatFreeformText(text string) string {
	var formatted strings.Builder

	for _, paragraph := range strings.Split(text, "\n\n") {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}

		if m := headingParagraph.FindStringSubmatch(paragraph); m != nil {
			level := len(m[1])
			heading := strings.TrimSpace(m[2])
			formatted.WriteString(fmt.Sprintf("<h%d id=%q>%s</h%d>\n\n", level, Slugify(heading), heading, level))
			continue
		}
		if allCapsHeading.MatchString(paragraph) {
			heading := titleCase(strings.ToLower(paragraph))
			formatted.WriteString(fmt.Sprintf("<h2 id=%q>%s</h2>\n\n", Slugify(heading), heading))
			continue
		}
		formatted.WriteString(fmt.Sprintf("<p>%s</p>\n\n", paragraph))
	}
	return formatted.String()
}

// tocFromMarkdown scans for markdown heading lines and slugifies them.
func tocFromMarkdown(content string) []core.TOCEntry {
	var toc []core.TOCEntry
	for _, m := range markdownHeadingLine.FindAllStringSubmatch(content, -1) {
		heading := strings.TrimSpace(m[2])
		toc = append(toc, core.TOCEntry{
			Heading:  heading,
			AnchorID: Slugify(heading),
			Level:    len(m[1]),
		})
	}
	return toc
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
