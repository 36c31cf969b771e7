package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/maloquacious/semver"
	"github.com/spf13/cobra"

	"github.com/maloquacious/dogcenter/internal/config"
	"github.com/maloquacious/dogcenter/internal/logger"
	"github.com/maloquacious/dogcenter/internal/store"
	"github.com/maloquacious/dogcenter/internal/store/sqlite"
)

var (
	version       = semver.Version{Minor: 1, PreRelease: "alpha", Build: semver.Commit()}
	schemaVersion = "0.1"
	buildDate     = ""
)

var (
	envFile   string
	storePath string
	logLevel  string
	noColor   bool

	cfg *config.Config
	log = logger.NewStdLogger()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "dogcenter",
		Short:             "Track dogs and their daily feeding times",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "directory holding "+store.DefaultDBFile+" (default $"+config.EnvStore+" or .)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug|info|warn|error (default $"+config.EnvLogLevel+" or info)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable coloured output")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dogcenter %s (schema %s", version.String(), schemaVersion)
			if buildDate != "" {
				fmt.Fprintf(cmd.OutOrStdout(), ", built %s", buildDate)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ")")
		},
	}

	rootCmd.AddCommand(versionCmd, newDBCmd(), newDogCmd(), newRemindCmd(), newWatchCmd())
	return rootCmd
}

// setup resolves config: flags win over the environment, which wins over the .env file.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(envFile)
	if err != nil {
		return err
	}
	if storePath != "" {
		cfg.StorePath = storePath
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if noColor {
		cfg.NoColor = true
	}
	if cfg.NoColor {
		color.NoColor = true
	}
	log.SetLevel(logger.ParseLevel(cfg.LogLevel))
	return nil
}

// openStore opens the SQLite file under the configured store path.
// The caller must Close it.
func openStore() (*sqlite.SQLiteStore, error) {
	dir := store.GetStorePath(cfg.StorePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	s := sqlite.New(store.GetDBPath(dir), schemaVersion)
	if err := s.Open(); err != nil {
		return nil, err
	}
	log.Debug("opened %s", store.GetDBPath(dir))
	return s, nil
}
