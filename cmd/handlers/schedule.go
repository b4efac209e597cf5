package handlers

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"blogsmith/internal/config"
	"blogsmith/internal/logger"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

// NewScheduleCmd creates the schedule command: run the workflow once per
// day at a fixed local time, blocking until interrupted.
func NewScheduleCmd() *cobra.Command {
	var (
		niche string
		at    string
	)

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run the workflow daily at a fixed time",
		RunE: func(cmd *cobra.Command, args []string) error {
			if niche == "" {
				niche = config.GetContent().Niche
			}
			config.Get().Content.Niche = niche

			var hour, minute int
			if _, err := fmt.Sscanf(at, "%d:%d", &hour, &minute); err != nil {
				return fmt.Errorf("invalid --at value %q, want HH:MM: %w", at, err)
			}
			if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
				return fmt.Errorf("invalid --at value %q, want HH:MM", at)
			}

			engine, err := buildEngine()
			if err != nil {
				return err
			}

			log := logger.Get()
			scheduler := cron.New()
			spec := fmt.Sprintf("%d %d * * *", minute, hour)
			_, err = scheduler.AddFunc(spec, func() {
				ctx, cancel := context.WithCancel(cmd.Context())
				defer cancel()
				if _, err := engine.Run(ctx, niche); err != nil {
					log.Error("Scheduled run failed", "error", err.Error(), "niche", niche)
				}
			})
			if err != nil {
				return fmt.Errorf("scheduling daily run: %w", err)
			}

			scheduler.Start()
			fmt.Printf("Scheduled daily run at %02d:%02d for niche %q. Press Ctrl+C to stop.\n", hour, minute, niche)

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
			select {
			case <-stop:
			case <-cmd.Context().Done():
			}

			stopCtx := scheduler.Stop()
			<-stopCtx.Done()
			fmt.Println("Scheduler stopped.")
			return nil
		},
	}

	cmd.Flags().StringVar(&niche, "niche", "", "content niche (defaults to content.niche from config)")
	cmd.Flags().StringVar(&at, "at", "08:00", "daily run time in 24h HH:MM")
	return cmd
}
