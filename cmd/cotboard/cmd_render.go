package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spboyer/cotboard/internal/doc"
	"github.com/spboyer/cotboard/internal/models"
	"github.com/spboyer/cotboard/internal/render"
	"github.com/spboyer/cotboard/internal/route"
	"github.com/spboyer/cotboard/internal/spinner"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// pickModel is a test hook for replacing the interactive model picker in tests.
var pickModel = defaultPickModel

func newRenderCommand(opts *rootOptions) *cobra.Command {
	var task, model, format string
	var interactive bool

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one view to stdout",
		Long: `Render one view to stdout.

Without --task the aggregate table is rendered. --task bbh renders the BBH
task breakdown; any other task renders the per-sample detail for --model.`,
		Args: cobra.NoArgs,
	}
	applyReports := addReportsFlag(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if format != "text" && format != "html" && format != "json" {
			return fmt.Errorf("unknown format %q (expected text, html or json)", format)
		}
		cfg, err := opts.loadConfig()
		if err != nil {
			return err
		}
		applyReports(cfg)

		viewer, err := newViewer(cfg)
		if err != nil {
			return err
		}

		r, err := route.Parse(url.Values{route.ParamTask: {task}, route.ParamModel: {model}})
		if err != nil {
			return err
		}
		if r.Kind == route.SampleDetail && r.Model == "" && interactive && isTerminal(cmd.InOrStdin()) {
			list, err := viewer.Models(cmd.Context())
			if err != nil {
				return err
			}
			if r.Model, err = pickModel(cmd.InOrStdin(), cmd.ErrOrStderr(), list); err != nil {
				return err
			}
		}

		stop := spinner.Start(cmd.ErrOrStderr(), "Loading reports")
		page, err := viewer.Build(cmd.Context(), r)
		stop()
		if err != nil {
			return err
		}
		return writePage(cmd.OutOrStdout(), format, page)
	}

	cmd.Flags().StringVar(&task, "task", "", "Task to show: empty for the aggregate table, bbh, or a task path such as bbh/snarks")
	cmd.Flags().StringVar(&model, "model", "", "Model id for a per-sample detail view")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, html or json")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Pick the model interactively when --model is missing")

	return cmd
}

func writePage(w io.Writer, format string, page *doc.Page) error {
	switch format {
	case "html":
		return render.NewHTML().Page(w, page)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(page)
	default:
		return render.NewText(terminalWidth(w)).Page(w, page)
	}
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the width of w when it is a terminal, or zero.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

func defaultPickModel(in io.Reader, out io.Writer, list []models.Model) (string, error) {
	if len(list) == 0 {
		return "", fmt.Errorf("no models published")
	}
	options := make([]huh.Option[string], 0, len(list))
	for _, m := range list {
		options = append(options, huh.NewOption(m.DisplayName(), m.ID))
	}

	var picked string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Model").
				Options(options...).
				Value(&picked),
		),
	).WithInput(in).WithOutput(out).Run()
	if err != nil {
		return "", fmt.Errorf("picking model: %w", err)
	}
	return picked, nil
}
