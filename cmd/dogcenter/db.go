package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/maloquacious/dogcenter/internal/store"
)

func newDBCmd() *cobra.Command {
	dbCmd := &cobra.Command{
		Use:   "db",
		Short: "Database management commands",
	}

	dbCreateCmd := &cobra.Command{
		Use:   "create",
		Short: "Create the datastore and seed it with the default dogs",
		Args:  cobra.NoArgs,
		RunE:  runDBCreate,
	}
	dbVerifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify schema integrity and version",
		Args:  cobra.NoArgs,
		RunE:  runDBVerify,
	}

	dbCmd.AddCommand(dbCreateCmd, dbVerifyCmd)
	return dbCmd
}

func runDBCreate(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Initialize(cmd.Context()); err != nil {
		return err
	}
	log.Info("datastore ready at %s", store.GetDBPath(store.GetStorePath(cfg.StorePath)))
	return nil
}

func runDBVerify(cmd *cobra.Command, args []string) error {
	dir := store.GetStorePath(cfg.StorePath)
	exists, err := store.CheckExists(dir)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if !exists {
		fmt.Fprintf(out, "%s %s\n", color.New(color.FgRed).Sprint("MISSING"), store.GetDBPath(dir))
		return fmt.Errorf("datastore not found; run 'dogcenter db create'")
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	state, err := s.CheckState()
	if err != nil {
		return err
	}
	version, err := s.GetSchemaVersion()
	if err != nil && state == store.StateReady {
		return err
	}

	switch state {
	case store.StateReady:
		fmt.Fprintf(out, "%s schema %s\n", color.New(color.FgGreen).Sprint("OK"), version)
		return nil
	case store.StateVersionMismatch:
		fmt.Fprintf(out, "%s schema %s, expected %s\n", color.New(color.FgYellow).Sprint("MISMATCH"), version, schemaVersion)
	default:
		fmt.Fprintf(out, "%s %s\n", color.New(color.FgYellow).Sprint(state), store.GetDBPath(dir))
	}
	return fmt.Errorf("datastore is %s", state)
}
