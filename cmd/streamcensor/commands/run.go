package commands

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/explicitlyaudio/streamcensor/internal/config"
	"github.com/explicitlyaudio/streamcensor/internal/engine"
)

var statusInterval time.Duration

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the censorship pipeline and block until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		if configPath == "" {
			return fmt.Errorf("--config is required")
		}
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		e := engine.New(cfg)
		if err := e.Initialize(); err != nil {
			return fmt.Errorf("initialize: %w", err)
		}
		if err := e.Start(); err != nil {
			return fmt.Errorf("start: %w", err)
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

		var ticker *time.Ticker
		var tickCh <-chan time.Time
		if statusInterval > 0 {
			ticker = time.NewTicker(statusInterval)
			tickCh = ticker.C
			defer ticker.Stop()
		}

		for {
			select {
			case <-sigCh:
				log.Println("streamcensor: shutting down")
				return e.Stop()
			case <-tickCh:
				snap := e.Snapshot()
				log.Printf("streamcensor: fill=%.2f latency_ms=%.0f profanity=%d paused=%v",
					snap.FillFraction, snap.LatencyMs, snap.ProfanityCount, snap.Paused)
			}
		}
	},
}

func init() {
	runCmd.Flags().DurationVar(&statusInterval, "status-interval", 30*time.Second, "how often to log a status line (0 disables)")
	rootCmd.AddCommand(runCmd)
}
