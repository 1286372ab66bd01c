package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spboyer/cotboard/internal/webserver"
	"github.com/spf13/cobra"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	var port int
	var noBrowser bool
	var corsOrigins []string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the report viewer over HTTP",
		Long: `Serve the report viewer over HTTP.

Views are selected with query parameters:
  /?benchmark=cot                          aggregate table
  /?benchmark=cot&task=bbh                 BBH task breakdown
  /?benchmark=cot&task=<task>&model=<id>   per-sample detail

The same views are available as JSON under /api/view.`,
		Args: cobra.NoArgs,
	}
	applyReports := addReportsFlag(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := opts.loadConfig()
		if err != nil {
			return err
		}
		applyReports(cfg)
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = port
		}
		if cmd.Flags().Changed("no-browser") {
			cfg.Server.NoBrowser = &noBrowser
		}
		if cmd.Flags().Changed("cors-origin") {
			cfg.Server.CORSOrigins = corsOrigins
		}

		viewer, err := newViewer(cfg)
		if err != nil {
			return err
		}
		srv, err := webserver.New(webserver.Config{
			Port:        cfg.Server.Port,
			NoBrowser:   cfg.Server.NoBrowser != nil && *cfg.Server.NoBrowser,
			Viewer:      viewer,
			CORSOrigins: cfg.Server.CORSOrigins,
		})
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return srv.ListenAndServe(ctx)
	}

	cmd.Flags().IntVar(&port, "port", webserver.DefaultPort, "Port to listen on")
	cmd.Flags().BoolVar(&noBrowser, "no-browser", false, "Do not open a browser")
	cmd.Flags().StringArrayVar(&corsOrigins, "cors-origin", nil, "Allowed CORS origin (repeatable)")

	return cmd
}
