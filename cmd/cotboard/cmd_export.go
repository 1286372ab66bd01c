package main

import (
	"fmt"

	"github.com/spboyer/cotboard/internal/export"
	"github.com/spboyer/cotboard/internal/spinner"
	"github.com/spf13/cobra"
)

func newExportCommand(opts *rootOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the viewer as a static HTML site",
		Long: `Write the viewer as a static HTML site.

The aggregate table becomes index.html and the BBH breakdown bbh.html. Every
per-sample page linked from them is written under samples/. Links between
pages are relative, so the directory can be served from any path.`,
		Args: cobra.NoArgs,
	}
	applyReports := addReportsFlag(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := opts.loadConfig()
		if err != nil {
			return err
		}
		applyReports(cfg)
		if cmd.Flags().Changed("out") {
			cfg.Export.Dir = out
		}

		viewer, err := newViewer(cfg)
		if err != nil {
			return err
		}
		stop := spinner.Start(cmd.ErrOrStderr(), "Exporting to "+cfg.Export.Dir)
		summary, err := export.New(viewer, cfg.Export.Dir, cfg.Reports.Concurrency).Run(cmd.Context())
		stop()
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d pages to %s\n", summary.Pages, cfg.Export.Dir)
		if n := len(summary.Skipped); n > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Skipped %d unpublished sample pages\n", n)
		}
		return nil
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output directory (default \"site\")")

	return cmd
}
