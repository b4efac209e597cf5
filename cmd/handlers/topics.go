package handlers

import (
	"fmt"

	"blogsmith/internal/config"
	"blogsmith/internal/core"
	"blogsmith/internal/tui"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	scoreStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	sourceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// NewTopicsCmd creates the topics command: show the ranked candidate list,
// optionally pick one interactively and synthesize it.
func NewTopicsCmd() *cobra.Command {
	var (
		niche string
		limit int
		pick  bool
	)

	cmd := &cobra.Command{
		Use:   "topics",
		Short: "List trending topic candidates ranked by score",
		RunE: func(cmd *cobra.Command, args []string) error {
			if niche == "" {
				niche = config.GetContent().Niche
			}
			config.Get().Content.Niche = niche
			if limit <= 0 {
				limit = config.GetContent().MaxTopics
			}

			engine, err := buildEngine()
			if err != nil {
				return err
			}

			scored := engine.RankTopics(cmd.Context(), niche)
			if len(scored) == 0 {
				return fmt.Errorf("no trending topic found for niche %q in this run", niche)
			}
			if limit > 0 && len(scored) > limit {
				scored = scored[:limit]
			}

			if pick {
				idx, err := tui.Pick(scored)
				if err != nil {
					return err
				}
				if idx < 0 {
					fmt.Println("Cancelled.")
					return nil
				}
				return synthesizeAndReport(cmd, engine, scored[idx])
			}

			printTopicsTable(niche, scored)
			return nil
		},
	}

	cmd.Flags().StringVar(&niche, "niche", "", "content niche (defaults to content.niche from config)")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of topics to show (defaults to content.max_topics)")
	cmd.Flags().BoolVar(&pick, "pick", false, "pick a topic interactively and synthesize it")
	return cmd
}

func printTopicsTable(niche string, scored []core.ScoredTopic) {
	fmt.Println(headerStyle.Render(fmt.Sprintf("Trending topics for %q", niche)))
	for i, topic := range scored {
		fmt.Printf("%2d. %s %s %s\n",
			i+1,
			scoreStyle.Render(fmt.Sprintf("%7.1f", topic.FinalScore)),
			sourceStyle.Render(fmt.Sprintf("%-18s", topic.Candidate.SourceID)),
			topic.Candidate.Title,
		)
	}
}
