// Command schoolindex builds the high-school picker list (schools.json) from
// the public-schools table.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"schoolindex/internal/config"
	"schoolindex/internal/engine"
)

const (
	Version = "0.1.0"
	appName = "schoolindex"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		flags      config.App
	)

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Build schools.json from a semicolon-delimited school table",
		Long: `schoolindex reads the public-schools table, keeps schools that span
grades 09 through 12, and writes {label, value} entries for the school picker.

With no arguments it reads us-public-schools.csv and writes schools.json in
the working directory.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := config.LoadApp(configPath)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			merge(cmd, &app, flags)
			return run(cmd.Context(), app)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&configPath, "config", "c", config.DefaultAppFile, "Config file path (YAML, optional)")
	f.StringVarP(&flags.Input, "input", "i", "", "Input table path")
	f.StringVarP(&flags.Output, "output", "o", "", "Output JSON path")
	f.StringVarP(&flags.Pipeline, "pipeline", "p", "", "Pipeline file (YAML)")
	f.StringVar(&flags.Log.Level, "log-level", "info", "Log level (debug, info, warn, error)")
	f.BoolVar(&flags.Log.JSON, "log-json", false, "Log as JSON")
	f.StringVar(&flags.Metrics.Textfile, "metrics-textfile", "", "Write Prometheus metrics to this file")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
		},
	})

	return cmd
}

// merge lets explicitly set flags win over file and env values.
func merge(cmd *cobra.Command, app *config.App, flags config.App) {
	set := cmd.Flags().Changed
	if set("input") {
		app.Input = flags.Input
	}
	if set("output") {
		app.Output = flags.Output
	}
	if set("pipeline") {
		app.Pipeline = flags.Pipeline
	}
	if set("log-level") {
		app.Log.Level = flags.Log.Level
	}
	if set("log-json") {
		app.Log.JSON = flags.Log.JSON
	}
	if set("metrics-textfile") {
		app.Metrics.Textfile = flags.Metrics.Textfile
	}
}

func run(parent context.Context, app config.App) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e, err := engine.Bootstrap(ctx, engine.Config{
		Input:           app.Input,
		Output:          app.Output,
		PipelineYml:     app.Pipeline,
		LogLevel:        app.Log.Level,
		LogJSON:         app.Log.JSON,
		MetricsTextfile: app.Metrics.Textfile,
	})
	if err != nil {
		return err
	}
	_, err = e.Run(ctx)
	return err
}
