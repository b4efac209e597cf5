package synthesis

import (
	"fmt"
	"math"
	"math/rand"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"blogsmith/internal/core"

	"github.com/google/uuid"
)

// TemplateSynthesizer is the rule-based generator used when no provider is
// configured or every provider has failed. Synthesize is total: it always
// returns a valid Article.
type TemplateSynthesizer struct {
	rng *rand.Rand
}

// NewTemplateSynthesizer creates a synthesizer with its own entropy source.
func NewTemplateSynthesizer() *TemplateSynthesizer {
	return NewTemplateSynthesizerWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewTemplateSynthesizerWithRand creates a synthesizer with an injected
// random source, so tests can fix the seed and assert exact wording.
func NewTemplateSynthesizerWithRand(rng *rand.Rand) *TemplateSynthesizer {
	return &TemplateSynthesizer{rng: rng}
}

type section struct {
	heading string
	content string
}

var introTemplates = map[string][]string{
	"tech": {
		"In the rapidly evolving world of technology, {topic} has emerged as a crucial consideration for developers and tech professionals.",
		"As {niche} continues to advance, understanding {topic} becomes increasingly important for staying competitive.",
		"The landscape of {niche} is constantly changing, and {topic} represents a significant development worth exploring.",
	},
	"ai": {
		"Artificial Intelligence continues to revolutionize how we approach {topic}, offering unprecedented opportunities.",
		"The intersection of AI and {topic} opens new possibilities for innovation and efficiency.",
		"As machine learning technologies mature, {topic} has become a focal point for AI researchers and practitioners.",
	},
	"design": {
		"Modern design principles are evolving, and {topic} represents a significant shift in how we approach user experience.",
		"The design community has been buzzing about {topic}, and for good reason.",
		"User experience design continues to evolve, with {topic} playing an increasingly important role.",
	},
}

var sectionHeadingPatterns = []string{
	"Understanding {keyword} in {context}",
	"The Role of {keyword}",
	"How {keyword} Impacts {context}",
	"{keyword}: Key Concepts and Applications",
	"Implementing {keyword} Effectively",
}

var sectionExpansions = []string{
	"This involves several key considerations that professionals should understand.",
	"The implementation requires careful planning and attention to best practices.",
	"Modern approaches to this challenge have evolved significantly in recent years.",
	"Industry experts recommend focusing on scalable, maintainable solutions.",
	"The benefits of proper implementation include improved performance and user experience.",
}

var sectionExamples = []string{
	"For example, many successful projects have leveraged {keyword} to achieve better results.",
	"Consider how leading companies in {niche} have approached this challenge.",
	"Real-world applications demonstrate the practical value of these concepts.",
	"Case studies show that proper implementation can lead to significant improvements.",
}

var titlePrefixes = []string{
	"The Complete Guide to",
	"Understanding",
	"Mastering",
	"A Deep Dive into",
	"Everything You Need to Know About",
	"The Ultimate Guide to",
}

// titleEnhancementThreshold: titles at or above this length pass through
// unchanged.
const titleEnhancementThreshold = 50

// Synthesize generates a fully synthetic article for the topic. The
// originalContent parameter is accepted for interface symmetry with the
// provider path but deliberately not woven into the prose: the template
// path always produces synthetic text.
func (t *TemplateSynthesizer) Synthesize(topic core.TopicCandidate, originalContent, niche string, keywords []string) core.Article {
	_ = originalContent

	sections := t.buildSections(topic.Title, niche, keywords)

	var html strings.Builder
	for _, s := range sections {
		html.WriteString(fmt.Sprintf("<h2 id=%q>%s</h2>\n", Slugify(s.heading), s.heading))
		html.WriteString(fmt.Sprintf("<p>%s</p>\n\n", s.content))
	}
	content := html.String()

	toc := make([]core.TOCEntry, 0, len(sections))
	for _, s := range sections {
		toc = append(toc, core.TOCEntry{
			Heading:  s.heading,
			AnchorID: Slugify(s.heading),
			Level:    2,
		})
	}

	wordCount := CountWords(content)
	return core.Article{
		ID:              uuid.NewString(),
		Title:           t.enhanceTitle(topic.Title),
		MetaDescription: metaDescription(topic.Title, keywords),
		HTMLContent:     content,
		Tags:            extractTags(topic.Title, keywords),
		ReadTimeMinutes: ReadTimeMinutes(wordCount),
		SEOKeywords:     firstN(keywords, 5),
		TableOfContents: toc,
		SourceTopic:     topic,
		GeneratedAt:     time.Now().UTC(),
		WordCount:       wordCount,
		GeneratedBy:     "template",
	}
}

// buildSections produces the fixed skeleton: Introduction, one section per
// each of the first three keywords, Practical Implementation, Best
// Practices and Tips, Conclusion. The skeleton is deterministic; only the
// wording inside each section is randomized.
func (t *TemplateSynthesizer) buildSections(title, niche string, keywords []string) []section {
	sections := []section{{
		heading: "Introduction",
		content: t.introduction(title, niche),
	}}

	for _, keyword := range firstN(keywords, 3) {
		sections = append(sections, section{
			heading: t.sectionHeading(keyword, title),
			content: t.sectionContent(keyword, title, niche),
		})
	}

	sections = append(sections,
		section{heading: "Practical Implementation", content: practicalSection(title, niche)},
		section{heading: "Best Practices and Tips", content: bestPracticesSection(title, niche)},
		section{heading: "Conclusion", content: conclusionSection(title, niche)},
	)
	return sections
}

func (t *TemplateSynthesizer) introduction(title, niche string) string {
	pool, ok := introTemplates[niche]
	if !ok {
		pool = introTemplates["tech"]
	}
	tmpl := pool[t.rng.Intn(len(pool))]
	intro := substitute(tmpl, map[string]string{"{topic}": title, "{niche}": niche})
	return intro + " In this comprehensive guide, we'll explore the key concepts, practical applications, and best practices you need to know."
}

func (t *TemplateSynthesizer) sectionHeading(keyword, title string) string {
	pattern := sectionHeadingPatterns[t.rng.Intn(len(sectionHeadingPatterns))]
	return substitute(pattern, map[string]string{
		"{keyword}": keyword,
		"{context}": extractContext(title),
	})
}

func (t *TemplateSynthesizer) sectionContent(keyword, title, niche string) string {
	subs := map[string]string{"{topic}": title, "{keyword}": keyword, "{niche}": niche}

	content := substitute("When discussing {topic}, {keyword} plays a fundamental role in {niche} development. ", subs)
	content += sectionExpansions[t.rng.Intn(len(sectionExpansions))] + " "
	content += substitute(sectionExamples[t.rng.Intn(len(sectionExamples))], subs)
	return content
}

func practicalSection(title, niche string) string {
	return substitute(
		"Implementing the concepts discussed in {topic} requires a systematic approach. "+
			"Start by assessing your current {niche} setup and identifying areas for improvement. "+
			"Consider the following steps: First, establish clear objectives and success metrics. "+
			"Second, choose the right tools and technologies for your specific use case. "+
			"Third, implement changes incrementally to minimize risk and allow for testing. "+
			"Finally, monitor results and iterate based on feedback and performance data.",
		map[string]string{"{topic}": title, "{niche}": niche})
}

func bestPracticesSection(title, niche string) string {
	return substitute(
		"When working with {topic} in {niche}, following established best practices is crucial for success. "+
			"Always prioritize maintainability and scalability in your approach. "+
			"Document your implementation decisions and maintain clear communication with your team. "+
			"Regular testing and validation help ensure reliability and performance. "+
			"Stay updated with industry trends and be prepared to adapt your strategies as new developments emerge. "+
			"Remember that the best solution is often the simplest one that meets your requirements effectively.",
		map[string]string{"{topic}": title, "{niche}": niche})
}

func conclusionSection(title, niche string) string {
	return substitute(
		"Understanding and implementing {topic} effectively can significantly impact your {niche} projects. "+
			"The key is to start with a solid foundation and build incrementally. "+
			"By following the principles and practices outlined in this guide, you'll be well-equipped to tackle related challenges. "+
			"Remember that technology and best practices continue to evolve, so staying informed and adaptable is essential. "+
			"Take the time to experiment with these concepts in your own projects and see how they can benefit your work.",
		map[string]string{"{topic}": title, "{niche}": niche})
}

// enhanceTitle prepends a promotional prefix to short titles. Titles at or
// above the threshold pass through unchanged.
func (t *TemplateSynthesizer) enhanceTitle(title string) string {
	if len(title) < titleEnhancementThreshold {
		prefix := titlePrefixes[t.rng.Intn(len(titlePrefixes))]
		return prefix + " " + title
	}
	return title
}

func metaDescription(title string, keywords []string) string {
	return fmt.Sprintf("Explore %s and learn about %s. Comprehensive guide with practical examples and best practices.",
		title, strings.Join(firstN(keywords, 3), ", "))
}

// extractTags combines the first three niche keywords with up to two
// capitalized words longer than four characters from the title, capped at
// five total.
func extractTags(title string, keywords []string) []string {
	tags := firstN(keywords, 3)
	seen := make(map[string]bool, 5)
	for _, tag := range tags {
		seen[strings.ToLower(tag)] = true
	}

	added := 0
	for _, word := range strings.Fields(title) {
		word = strings.Trim(word, `.,:;!?"'()`)
		if len(word) <= 4 || added >= 2 || len(tags) >= 5 {
			continue
		}
		first, _ := utf8.DecodeRuneInString(word)
		if !unicode.IsUpper(first) {
			continue
		}
		if seen[strings.ToLower(word)] {
			continue
		}
		seen[strings.ToLower(word)] = true
		tags = append(tags, word)
		added++
	}
	return tags
}

// extractContext pulls the first few meaningful words out of a title.
func extractContext(title string) string {
	stopWords := map[string]bool{
		"the": true, "a": true, "an": true, "and": true, "or": true,
		"but": true, "in": true, "on": true, "at": true, "to": true,
		"for": true, "of": true, "with": true, "by": true,
	}

	var contextWords []string
	for _, word := range strings.Fields(strings.ToLower(title)) {
		if stopWords[word] {
			continue
		}
		contextWords = append(contextWords, word)
		if len(contextWords) == 3 {
			break
		}
	}
	return strings.Join(contextWords, " ")
}

func substitute(tmpl string, subs map[string]string) string {
	out := tmpl
	for placeholder, value := range subs {
		out = strings.ReplaceAll(out, placeholder, value)
	}
	return out
}

var htmlTagRegex = regexp.MustCompile(`<[^>]*>`)

// CountWords counts whitespace-delimited tokens after stripping markup.
func CountWords(html string) int {
	text := htmlTagRegex.ReplaceAllString(html, " ")
	return len(strings.Fields(text))
}

// ReadTimeMinutes estimates reading time at 200 words per minute, rounded up.
func ReadTimeMinutes(wordCount int) int {
	return int(math.Ceil(float64(wordCount) / 200.0))
}

func firstN(items []string, n int) []string {
	if len(items) < n {
		n = len(items)
	}
	return append([]string(nil), items[:n]...)
}
