package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/maloquacious/dogcenter/internal/controller"
	"github.com/maloquacious/dogcenter/internal/reminder"
	"github.com/maloquacious/dogcenter/internal/validate"
)

func newDogCmd() *cobra.Command {
	dogCmd := &cobra.Command{
		Use:   "dog",
		Short: "Manage registered dogs",
	}

	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List dogs and show any feeding reminder due now",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withController(cmd.Context(), func(c *controller.Controller) error {
				printBanner(cmd.OutOrStdout(), reminder.Scan(c.Snapshot(), time.Now()))
				printDogs(cmd.OutOrStdout(), c.Snapshot())
				return nil
			})
		},
	}

	addCmd := &cobra.Command{
		Use:   "add NAME HH:mm",
		Short: "Register a dog with its feeding time",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withController(cmd.Context(), func(c *controller.Controller) error {
				if err := c.AddDog(cmd.Context(), args[0], validate.Mask(args[1])); err != nil {
					return userError(err)
				}
				printDogs(cmd.OutOrStdout(), c.Snapshot())
				return nil
			})
		},
	}

	editCmd := &cobra.Command{
		Use:   "edit ID NAME HH:mm",
		Short: "Change a dog's name and feeding time",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withController(cmd.Context(), func(c *controller.Controller) error {
				if !c.StartEditing(id) {
					log.Warn("no dog with id %d", id)
					return nil
				}
				if err := c.SaveEdit(cmd.Context(), args[1], validate.Mask(args[2])); err != nil {
					return userError(err)
				}
				printDogs(cmd.OutOrStdout(), c.Snapshot())
				return nil
			})
		},
	}

	rmCmd := &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"delete"},
		Short:   "Remove a dog",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withController(cmd.Context(), func(c *controller.Controller) error {
				if err := c.DeleteDog(cmd.Context(), id); err != nil {
					return err
				}
				printDogs(cmd.OutOrStdout(), c.Snapshot())
				return nil
			})
		},
	}

	dogCmd.AddCommand(listCmd, addCmd, editCmd, rmCmd)
	return dogCmd
}

// withController opens the store, loads a controller over it and runs fn.
func withController(ctx context.Context, fn func(*controller.Controller) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	c := controller.New(s, log)
	if err := c.Load(ctx); err != nil {
		return err
	}
	return fn(c)
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid dog id %q", arg)
	}
	return id, nil
}
