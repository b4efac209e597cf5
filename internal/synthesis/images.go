package synthesis

import (
	"fmt"
	"strings"

	"blogsmith/internal/core"
)

// BuildImagePrompts derives prompt strings for downstream image tooling
// from a generated article. Prompt text only; image acquisition is a
// presentation concern handled elsewhere.
func BuildImagePrompts(article core.Article) core.ImagePrompts {
	tagSummary := strings.Join(firstN(article.Tags, 2), ", ")
	if tagSummary == "" {
		tagSummary = article.Title
	}

	return core.ImagePrompts{
		Featured: fmt.Sprintf("Modern, professional illustration representing %s, clean design, tech-focused", article.Title),
		Supporting: []string{
			fmt.Sprintf("Infographic or diagram related to %s", tagSummary),
			"Abstract, modern illustration with tech theme, blue and gray colors",
		},
	}
}
