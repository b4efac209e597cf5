package core

import "time"

// Source identifies the kind of feed a topic candidate was discovered from.
type Source string

const (
	SourceHackerNews Source = "hackernews"
	SourceReddit     Source = "reddit"
	SourceDevTo      Source = "devto"
	SourceRSS        Source = "rss"
)

// TopicCandidate represents a single topic discovered from one source,
// prior to scoring. Candidates are immutable once built; scoring produces a
// separate ScoredTopic rather than mutating the candidate.
type TopicCandidate struct {
	ID          string    `json:"id"`           // Unique identifier for the candidate
	Title       string    `json:"title"`        // Item title (required, non-empty)
	URL         string    `json:"url"`          // Link to the original item (may be empty)
	Engagement  float64   `json:"engagement"`   // Source-native popularity metric (upvotes, reactions)
	Comments    int       `json:"comments"`     // Comment count
	Source      Source    `json:"source"`       // Which kind of source produced this candidate
	SourceID    string    `json:"source_id"`    // Configured source identifier (e.g. "reddit_programming")
	Weight      float64   `json:"weight"`       // Per-source trust weight in (0,1]
	PublishedAt time.Time `json:"published_at"` // Publication timestamp
	Excerpt     string    `json:"excerpt"`      // Optional body text carried from the source (e.g. selftext)
}

// ScoredTopic pairs a candidate with its computed composite score.
type ScoredTopic struct {
	Candidate  TopicCandidate `json:"candidate"`
	FinalScore float64        `json:"final_score"`
}

// GenerationRequest carries everything a generation provider needs to
// produce an article. Immutable once built by the prompt builder.
type GenerationRequest struct {
	TopicTitle       string   `json:"topic_title"`
	TopicSource      Source   `json:"topic_source"`
	Niche            string   `json:"niche"`
	TargetWordCount  int      `json:"target_word_count"`
	Keywords         []string `json:"keywords"`
	ReferenceExcerpt string   `json:"reference_excerpt"` // Capped by the prompt builder, may be empty
	Prompt           string   `json:"prompt"`            // Rendered prompt text sent to providers
}

// TOCEntry is a single table-of-contents entry derived from a heading.
type TOCEntry struct {
	Heading  string `json:"heading"`
	AnchorID string `json:"anchor_id"` // Slug: lowercase, non-alphanumeric runs collapsed to "-"
	Level    int    `json:"level"`
}

// Article is the canonical synthesis output. It is returned by value and
// the synthesis engine retains no reference to it.
type Article struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	MetaDescription string         `json:"meta_description"`
	HTMLContent     string         `json:"html_content"`
	Tags            []string       `json:"tags"` // Deduplicated, capped at 5
	ReadTimeMinutes int            `json:"read_time_minutes"`
	SEOKeywords     []string       `json:"seo_keywords"`
	TableOfContents []TOCEntry     `json:"table_of_contents"`
	SourceTopic     TopicCandidate `json:"source_topic"`
	GeneratedAt     time.Time      `json:"generated_at"`
	WordCount       int            `json:"word_count"`
	GeneratedBy     string         `json:"generated_by"` // Name of the provider that produced the content
}

// PageData describes a landing page written to disk by the page builder.
type PageData struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
}

// ExtractedContent is the result of pulling readable text out of a topic's
// source URL, used to ground prompts in the original material.
type ExtractedContent struct {
	Title           string `json:"title"`
	Text            string `json:"text"`
	MetaDescription string `json:"meta_description"`
	WordCount       int    `json:"word_count"`
}

// ImagePrompts holds generated prompt strings for downstream image tooling.
type ImagePrompts struct {
	Featured   string   `json:"featured"`
	Supporting []string `json:"supporting"`
}
