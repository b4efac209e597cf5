package synthesis

import (
	"regexp"
	"strings"
)

var nonAlphanumericRuns = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// Slugify lowercases a heading and collapses every run of non-alphanumeric
// characters into a single hyphen, matching the anchor IDs emitted in page
// markup.
func Slugify(heading string) string {
	slug := nonAlphanumericRuns.ReplaceAllString(heading, "-")
	return strings.ToLower(slug)
}
