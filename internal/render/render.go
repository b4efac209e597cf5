// Package render builds the standalone landing page for a generated
// article: placeholder substitution into an HTML template, written to the
// output directory.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"blogsmith/internal/core"
	"blogsmith/internal/synthesis"
)

// SiteMeta carries the site-level values substituted into every page.
type SiteMeta struct {
	SiteName string
	BaseURL  string
	Author   string
}

// PageBuilder renders articles into self-contained HTML pages.
type PageBuilder struct {
	outputDir string
	site      SiteMeta
	tmpl      *template.Template
}

type pageData struct {
	Title           string
	MetaDescription string
	SiteName        string
	Author          string
	Date            string
	ReadTime        int
	WordCount       int
	Content         template.HTML
	TOC             []core.TOCEntry
	Tags            []string
	SourceURL       string
	SourceName      string
}

// NewPageBuilder creates a builder writing pages under outputDir.
func NewPageBuilder(outputDir string, site SiteMeta) (*PageBuilder, error) {
	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	return &PageBuilder{
		outputDir: outputDir,
		site:      site,
		tmpl:      tmpl,
	}, nil
}

// BuildPage renders the article and writes it to disk, returning the page
// metadata for downstream email delivery.
func (b *PageBuilder) BuildPage(article core.Article) (core.PageData, error) {
	if err := os.MkdirAll(b.outputDir, 0755); err != nil {
		return core.PageData{}, fmt.Errorf("creating output directory %s: %w", b.outputDir, err)
	}

	data := pageData{
		Title:           article.Title,
		MetaDescription: article.MetaDescription,
		SiteName:        b.site.SiteName,
		Author:          b.site.Author,
		Date:            article.GeneratedAt.Format("January 2, 2006"),
		ReadTime:        article.ReadTimeMinutes,
		WordCount:       article.WordCount,
		Content:         template.HTML(article.HTMLContent),
		TOC:             article.TableOfContents,
		Tags:            article.Tags,
		SourceURL:       article.SourceTopic.URL,
		SourceName:      string(article.SourceTopic.Source),
	}

	var buf bytes.Buffer
	if err := b.tmpl.Execute(&buf, data); err != nil {
		return core.PageData{}, fmt.Errorf("rendering page: %w", err)
	}

	filename := Filename(article.Title, article.GeneratedAt)
	path := filepath.Join(b.outputDir, filename)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return core.PageData{}, fmt.Errorf("writing page %s: %w", path, err)
	}

	return core.PageData{
		Filename: filename,
		Path:     path,
		URL:      strings.TrimRight(b.site.BaseURL, "/") + "/output/" + filename,
		Size:     int64(buf.Len()),
	}, nil
}

// Filename derives a slug-dated page filename from an article title.
func Filename(title string, generatedAt time.Time) string {
	slug := strings.Trim(synthesis.Slugify(title), "-")
	if len(slug) > 60 {
		slug = strings.Trim(slug[:60], "-")
	}
	if slug == "" {
		slug = "article"
	}
	return fmt.Sprintf("%s-%s.html", slug, generatedAt.Format("2006-01-02"))
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en" data-theme="light">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} | {{.SiteName}}</title>
  <meta name="description" content="{{.MetaDescription}}">
  <meta name="author" content="{{.Author}}">
  <style>
    body { font-family: system-ui, -apple-system, 'Segoe UI', Roboto, sans-serif; max-width: 760px; margin: 0 auto; padding: 2rem 1rem; color: #1e293b; line-height: 1.7; }
    header { border-bottom: 1px solid #e2e8f0; margin-bottom: 2rem; padding-bottom: 1rem; }
    h1 { font-size: 2rem; margin-bottom: 0.25rem; }
    h2 { margin-top: 2rem; color: #0f172a; }
    .meta { color: #64748b; font-size: 0.9rem; }
    nav.toc { background: #f8fafc; border: 1px solid #e2e8f0; border-radius: 8px; padding: 1rem 1.5rem; margin: 1.5rem 0; }
    nav.toc h2 { margin: 0 0 0.5rem; font-size: 1rem; }
    nav.toc a { color: #2563eb; text-decoration: none; }
    .tags { margin-top: 2rem; }
    .tag { display: inline-block; background: #eff6ff; color: #2563eb; border-radius: 999px; padding: 0.15rem 0.75rem; margin-right: 0.5rem; font-size: 0.85rem; }
    footer { margin-top: 3rem; border-top: 1px solid #e2e8f0; padding-top: 1rem; color: #64748b; font-size: 0.85rem; }
  </style>
</head>
<body>
  <header>
    <h1>{{.Title}}</h1>
    <p class="meta">{{.Date}} &middot; {{.ReadTime}} min read &middot; {{.WordCount}} words &middot; by {{.Author}}</p>
  </header>
  {{if .TOC}}
  <nav class="toc">
    <h2>Table of Contents</h2>
    <ul>
      {{range .TOC}}<li><a href="#{{.AnchorID}}">{{.Heading}}</a></li>
      {{end}}
    </ul>
  </nav>
  {{end}}
  <article>
    {{.Content}}
  </article>
  {{if .Tags}}
  <div class="tags">
    {{range .Tags}}<span class="tag">{{.}}</span>{{end}}
  </div>
  {{end}}
  <footer>
    {{if .SourceURL}}<p>Inspired by a trending topic on {{.SourceName}}: <a href="{{.SourceURL}}">{{.SourceURL}}</a></p>{{end}}
    <p>Published by {{.SiteName}}.</p>
  </footer>
</body>
</html>
`
