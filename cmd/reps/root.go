// ABOUTME: Root Cobra command for the reps CLI.
// ABOUTME: Loads config, sets up logging and opens the database via PersistentPre/PostRunE.
package main

import (
	"fmt"

	"github.com/harperreed/reps/internal/config"
	"github.com/harperreed/reps/internal/logging"
	"github.com/harperreed/reps/internal/metrics"
	"github.com/harperreed/reps/internal/storage"
	"github.com/harperreed/reps/internal/training"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var (
	dbPath     string
	configPath string

	cfg       *config.Config
	db        *storage.DB
	svc       *training.Service
	closeLogs func()

	// Registered once per process; rootCmd may execute many times in tests.
	promRegistry   = prometheus.NewRegistry()
	trainingMetric = metrics.NewManager("reps", "training", promRegistry)
)

var rootCmd = &cobra.Command{
	Use:   "reps",
	Short: "Workout templates and training log",
	Long: `Reps is a CLI tool for planning workouts and logging them set by set.

HOW IT WORKS:

  Exercises   catalog entries measured in duration, reps or reps_and_weight
  Templates   reusable programs: ordered set groups, each with warmup/working sets
  Workouts    a snapshot of a template you fill in while training

QUICK START:

  $ reps seed                              # Add starter exercises and templates
  $ reps template list                     # See your templates
  $ reps workout start 1                   # Start a workout from template 1
  $ reps set done 1 3 --reps 8 --weight 60 # Log and complete set 3
  $ reps workout finish 1                  # Mark the workout finished

TEMPLATES:

  $ reps template create "Leg Day"
  $ reps template group add 2 "Squat"      # Append a set group
  $ reps template set add 2 5              # Add a working set to group 5
  $ reps template import legs.toml         # Build a whole template from TOML

MCP INTEGRATION:

  Run 'reps mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants. Add to your Claude
  config:

  {
    "mcpServers": {
      "reps": { "command": "reps", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Data is stored in SQLite at ~/.local/share/reps/reps.db.
  Set database_url in ~/.config/reps/config.toml (or TURSO_DATABASE_URL)
  to use a remote libsql database instead.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip setup for commands that don't touch the database
		switch cmd.Name() {
		case "version", "help", "install-skill", "completion":
			return nil
		}

		var err error
		if configPath != "" {
			cfg, err = config.LoadFile(configPath)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		level := cfg.Log.Level
		if level == "" {
			level = "warn"
		}
		closeLogs = logging.Setup(logging.LoggerSetupParams{
			LogFileName:   config.ExpandPath(cfg.Log.File),
			LogToStdout:   cfg.Log.Stdout,
			LogLevel:      level,
			LogFormatJSON: cfg.Log.JSON,
			Environment:   cfg.Sentry.Environment,
			SentryDSN:     cfg.Sentry.DSN,
		})

		if dbPath != "" {
			db, err = storage.Open(config.ExpandPath(dbPath))
		} else {
			db, err = cfg.OpenStorage()
		}
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}

		svc = training.NewService(db, training.WithMetrics(trainingMetric))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if db != nil {
			err = db.Close()
			db = nil
		}
		if closeLogs != nil {
			closeLogs()
			closeLogs = nil
		}
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database file (default ~/.local/share/reps/reps.db)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/reps/config.toml)")
}
