package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/maloquacious/dogcenter/internal/controller"
	"github.com/maloquacious/dogcenter/internal/reminder"
)

var exitAfter time.Duration

func newWatchCmd() *cobra.Command {
	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep scanning and print a banner whenever a dog is due",
		Args:  cobra.NoArgs,
		RunE:  runWatch,
	}
	watchCmd.Flags().DurationVar(&exitAfter, "exit-after", 0, "optional runtime; if set, watch exits after this duration (testing)")
	return watchCmd
}

// runWatch rescans on the configured interval until interrupted or until
// --exit-after elapses.
func runWatch(cmd *cobra.Command, args []string) error {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if exitAfter > 0 {
		log.Info("exit-after timer set: %s", exitAfter)
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, exitAfter)
		defer cancel()
	}

	return withController(ctx, func(c *controller.Controller) error {
		out := cmd.OutOrStdout()
		scanner := reminder.NewScanner(c, reminder.Options{
			Interval: cfg.ScanInterval,
			Logger:   log,
			Notify:   func(r reminder.Reminder) { printBanner(out, r) },
		})
		c.OnChange(scanner.Changed)

		// Pick up edits made by other dogcenter invocations.
		refreshed := make(chan struct{})
		go func() {
			defer close(refreshed)
			ticker := time.NewTicker(cfg.ScanInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					if err := c.Refresh(ctx); err != nil && ctx.Err() == nil {
						log.Error("refresh failed: %v", err)
					}
				}
			}
		}()

		log.Info("watching %d dogs, scanning every %s", len(c.Snapshot()), cfg.ScanInterval)
		err := scanner.Run(ctx)
		<-refreshed
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			log.Info("watch stopped")
			return nil
		}
		return err
	})
}
