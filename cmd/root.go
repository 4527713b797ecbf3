package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/lumi/internal/bootstrap"
	"github.com/abhisek/lumi/internal/config"
	"github.com/abhisek/lumi/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "lumi",
	Short: "AI learning companion for K-12 students",
	Long:  "Lumi is a terminal study companion: daily plan, quizzes, mistake vault, assessment and rewards.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

// Execute runs the root command until it finishes or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("db", "", "Path to SQLite database file (overrides LUMI_DB env var)")
	flags.Uint64("seed", 0, "Random seed for option shuffles and the leaderboard (overrides LUMI_SEED)")
	flags.String("config", "", "Path to config file (default $XDG_CONFIG_HOME/lumi/config.yaml)")
	flags.String("log-level", "", "Log level: debug, info, warn, error (overrides LUMI_LOG_LEVEL)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(vaultCmd)
	rootCmd.AddCommand(assessCmd)
	rootCmd.AddCommand(mapCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves the configuration and applies flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.LoadOptions{Path: path})
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("db") {
		cfg.DB, _ = cmd.Flags().GetString("db")
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed, _ = cmd.Flags().GetUint64("seed")
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level, _ = cmd.Flags().GetString("log-level")
	}
	return cfg, cfg.Validate()
}

// newLogger builds the process logger. The TUI owns the terminal, so it
// logs to a file unless one is configured.
func newLogger(cfg config.Config, tui bool) (*logger.Logger, error) {
	opts := logger.Options{Mode: cfg.Log.Mode, Level: cfg.Log.Level, Path: cfg.Log.Path}
	if tui && opts.Path == "" {
		p, err := config.DefaultLogPath()
		if err != nil {
			return nil, err
		}
		opts.Path = p
	}
	return logger.NewWithOptions(opts)
}

// openDeps loads config, logger and application state for a command.
// The caller must Close the returned Deps.
func openDeps(cmd *cobra.Command, tui bool) (*bootstrap.Deps, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	log, err := newLogger(cfg, tui)
	if err != nil {
		return nil, err
	}
	return bootstrap.Open(cmd.Context(), cfg, log, bootstrap.Options{})
}

// closeDeps flushes state at the end of a command.
func closeDeps(cmd *cobra.Command, d *bootstrap.Deps) {
	if err := d.Close(cmd.Context()); err != nil {
		cmd.PrintErrln("warning: close store:", err)
	}
	d.Log.Sync()
}
