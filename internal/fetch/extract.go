package fetch

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"blogsmith/internal/core"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// ExtractPage fetches a topic's source URL and pulls out readable content.
// Readability handles the main text; goquery covers title and meta
// description, which readability does not always surface.
func (c *Client) ExtractPage(ctx context.Context, pageURL string) (core.ExtractedContent, error) {
	body, err := c.Get(ctx, pageURL, nil)
	if err != nil {
		return core.ExtractedContent{}, err
	}
	return ExtractFromHTML(string(body), pageURL)
}

// ExtractFromHTML extracts readable content from already-fetched HTML.
func ExtractFromHTML(html, pageURL string) (core.ExtractedContent, error) {
	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return core.ExtractedContent{}, fmt.Errorf("invalid page URL %s: %w", pageURL, err)
	}

	var extracted core.ExtractedContent

	article, err := readability.FromReader(strings.NewReader(html), parsedURL)
	if err == nil {
		extracted.Title = strings.TrimSpace(article.Title)
		extracted.Text = strings.TrimSpace(article.TextContent)
	}

	doc, docErr := goquery.NewDocumentFromReader(strings.NewReader(html))
	if docErr == nil {
		if extracted.Title == "" {
			extracted.Title = extractTitle(doc)
		}
		extracted.MetaDescription = extractMetaDescription(doc)
		if extracted.Text == "" {
			extracted.Text = extractBodyText(doc)
		}
	}

	if extracted.Title == "" && extracted.Text == "" {
		return core.ExtractedContent{}, fmt.Errorf("no readable content found at %s", pageURL)
	}

	extracted.WordCount = len(strings.Fields(extracted.Text))
	return extracted, nil
}

func extractTitle(doc *goquery.Document) string {
	if title := strings.TrimSpace(doc.Find("head title").First().Text()); title != "" {
		return title
	}
	if ogTitle, ok := doc.Find("meta[property='og:title']").Attr("content"); ok {
		return strings.TrimSpace(ogTitle)
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}

func extractMetaDescription(doc *goquery.Document) string {
	if desc, ok := doc.Find("meta[name='description']").Attr("content"); ok {
		return strings.TrimSpace(desc)
	}
	if ogDesc, ok := doc.Find("meta[property='og:description']").Attr("content"); ok {
		return strings.TrimSpace(ogDesc)
	}
	return ""
}

// extractBodyText is the fallback when readability rejects the page.
func extractBodyText(doc *goquery.Document) string {
	doc.Find("script, style, nav, footer, header, aside, form, iframe, noscript").Remove()

	var textBuilder strings.Builder
	selectors := []string{"main", "article", ".content", "#content", ".post", ".article-body"}
	for _, selector := range selectors {
		sel := doc.Find(selector).First()
		if sel.Length() > 0 {
			textBuilder.WriteString(sel.Text())
			break
		}
	}
	if textBuilder.Len() == 0 {
		textBuilder.WriteString(doc.Find("body").Text())
	}

	return strings.Join(strings.Fields(textBuilder.String()), " ")
}
