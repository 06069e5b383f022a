// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs the stdio MCP server, optionally exposing Prometheus metrics over HTTP.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/harperreed/reps/internal/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	mcpMetrics     bool
	mcpMetricsAddr string
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants like Claude to plan and log workouts through a
standardized protocol. The server communicates via stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "reps": {
        "command": "reps",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  list_exercises, add_exercise
  list_templates, get_template, create_template, rename_template, delete_template
  add/remove/move/update_template_set_group
  add/remove/move_template_set, set_template_set_type
  start_workout, list_workouts, get_workout, current_workout, workout_markdown
  delete_workout, toggle_workout_complete
  add/remove/move_set_group, add/remove/move_set
  update_set_metrics, toggle_set_complete

AVAILABLE RESOURCES:

  reps://workouts/current    The workout in progress as Markdown
  reps://templates           Template list
  reps://exercises           Exercise catalog

METRICS:

  --metrics serves Prometheus metrics on metrics_addr (default 127.0.0.1:9464)
  while the server runs.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(svc, db)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		if mcpMetrics {
			addr := mcpMetricsAddr
			if addr == "" {
				addr = cfg.GetMetricsAddr()
			}
			metricsServer := newMetricsServer(addr, promRegistry)
			go func() {
				logrus.Infof(" > metrics listening on: [%s]", addr)
				if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logrus.Errorf("metrics server: %s", err)
				}
			}()
			defer func() {
				shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
				defer stop()
				if err := metricsServer.Shutdown(shutdownCtx); err != nil {
					logrus.Errorf("metrics server shutdown: %s", err)
				}
			}()
		}

		return server.Serve(ctx)
	},
}

func newMetricsServer(addr string, gatherer prometheus.Gatherer) *http.Server {
	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	return &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func init() {
	mcpCmd.Flags().BoolVar(&mcpMetrics, "metrics", false, "serve Prometheus metrics while running")
	mcpCmd.Flags().StringVar(&mcpMetricsAddr, "metrics-addr", "", "metrics listen address (overrides config)")
	rootCmd.AddCommand(mcpCmd)
}
