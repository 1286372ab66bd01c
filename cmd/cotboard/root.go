package main

import (
	"fmt"
	"log/slog"

	"github.com/spboyer/cotboard/internal/cot"
	"github.com/spboyer/cotboard/internal/projectconfig"
	"github.com/spboyer/cotboard/internal/reports"
	"github.com/spboyer/cotboard/internal/source"
	"github.com/spboyer/cotboard/internal/webapi"
	"github.com/spf13/cobra"
)

var version = "dev"

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "cotboard",
		Short: "cotboard - viewer for chain-of-thought benchmark reports",
		Long: `cotboard is a viewer for chain-of-thought (CoT) benchmark reports.

It reads published score and result files from a local directory, an HTTP
server or Azure Blob Storage, and shows them as an aggregate leaderboard, a
per-task BBH breakdown and per-sample detail pages.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "",
		"Path to a config file (default: "+projectconfig.FileName+" in the current or a parent directory)")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newRenderCommand(opts))
	cmd.AddCommand(newExportCommand(opts))

	return cmd
}

func execute() error {
	webapi.Version = version
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}

// loadConfig reads the explicit --config file, or searches upwards from the
// working directory.
func (o *rootOptions) loadConfig() (*projectconfig.ProjectConfig, error) {
	if o.configPath != "" {
		return projectconfig.LoadFile(o.configPath)
	}
	return projectconfig.Load(".")
}

// newViewer builds the report source described by cfg and a viewer over it.
func newViewer(cfg *projectconfig.ProjectConfig) (*cot.Viewer, error) {
	src, err := source.New(cfg.Reports.SourceSpec())
	if err != nil {
		return nil, fmt.Errorf("configuring reports source: %w", err)
	}
	slog.Debug("Using reports source", "location", cfg.Reports.Location, "type", cfg.Reports.Type)
	return cot.NewViewer(reports.NewLoader(src, cfg.Reports.Concurrency)), nil
}

// addReportsFlag registers --reports and applies it to cfg when set.
func addReportsFlag(cmd *cobra.Command) func(cfg *projectconfig.ProjectConfig) {
	var location string
	cmd.Flags().StringVar(&location, "reports", "",
		"Reports location: a directory, an http(s) URL or an Azure Blob container URL (default \""+projectconfig.DefaultReportsLocation+"\")")
	return func(cfg *projectconfig.ProjectConfig) {
		if cmd.Flags().Changed("reports") {
			cfg.Reports.Location = location
			// A location given on the command line picks its own source type.
			cfg.Reports.Type = ""
			cfg.Reports.Options = nil
		}
	}
}
