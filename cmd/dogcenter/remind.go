package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/maloquacious/dogcenter/internal/controller"
	"github.com/maloquacious/dogcenter/internal/reminder"
	"github.com/maloquacious/dogcenter/internal/validate"
)

var (
	remindAt   string
	remindNext bool
)

func newRemindCmd() *cobra.Command {
	remindCmd := &cobra.Command{
		Use:   "remind",
		Short: "Run one reminder scan and print the result",
		Args:  cobra.NoArgs,
		RunE:  runRemind,
	}
	remindCmd.Flags().StringVar(&remindAt, "at", "", "scan as if the clock showed HH:mm")
	remindCmd.Flags().BoolVar(&remindNext, "next", false, "also print the next upcoming feeding")
	return remindCmd
}

func runRemind(cmd *cobra.Command, args []string) error {
	now := time.Now()
	if remindAt != "" {
		if err := validate.Validate("-", remindAt); err != nil {
			return userError(err)
		}
		t, err := time.ParseInLocation(reminder.ClockLayout, remindAt, now.Location())
		if err != nil {
			return fmt.Errorf("invalid --at %q: %w", remindAt, err)
		}
		now = time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())
	}

	return withController(cmd.Context(), func(c *controller.Controller) error {
		out := cmd.OutOrStdout()
		dogs := c.Snapshot()
		r := reminder.Scan(dogs, now)
		if r.IsActive() {
			printBanner(out, r)
		} else {
			fmt.Fprintf(out, "nothing due at %s\n", now.Format(reminder.ClockLayout))
		}
		if remindNext {
			if next, ok := reminder.NextDue(dogs, now); ok {
				fmt.Fprintf(out, "next: %s\n", reminder.Scan(dogs, next).String()+" at "+next.Format(reminder.ClockLayout))
			}
		}
		return nil
	})
}
