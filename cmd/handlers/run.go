package handlers

import (
	"errors"
	"fmt"

	"blogsmith/internal/config"
	"blogsmith/internal/rank"

	"github.com/spf13/cobra"
)

// NewRunCmd creates the run command: the full end-to-end workflow.
func NewRunCmd() *cobra.Command {
	var niche string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Select a trending topic and publish an article about it",
		RunE: func(cmd *cobra.Command, args []string) error {
			if niche == "" {
				niche = config.GetContent().Niche
			}
			config.Get().Content.Niche = niche

			engine, err := buildEngine()
			if err != nil {
				return err
			}

			result, err := engine.Run(cmd.Context(), niche)
			if errors.Is(err, rank.ErrNoCandidate) {
				return fmt.Errorf("no trending topic found for niche %q in this run", niche)
			}
			if err != nil {
				return err
			}

			fmt.Printf("Topic:    %s (score %.2f)\n", result.Topic.Candidate.Title, result.Topic.FinalScore)
			fmt.Printf("Article:  %s (%d words, %d min read, via %s)\n",
				result.Article.Title, result.Article.WordCount, result.Article.ReadTimeMinutes, result.Article.GeneratedBy)
			fmt.Printf("Images:   %d prompts\n", 1+len(result.Images.Supporting))
			if result.Page.Path != "" {
				fmt.Printf("Page:     %s (%d bytes)\n", result.Page.Path, result.Page.Size)
			}
			if result.EmailSent {
				fmt.Println("Email:    sent")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&niche, "niche", "", "content niche (defaults to content.niche from config)")
	return cmd
}
