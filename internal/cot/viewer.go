package cot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spboyer/cotboard/internal/doc"
	"github.com/spboyer/cotboard/internal/models"
	"github.com/spboyer/cotboard/internal/reports"
	"github.com/spboyer/cotboard/internal/route"
)

// Viewer loads the data a route needs and builds its page.
type Viewer struct {
	loader *reports.Loader
}

// NewViewer returns a Viewer reading through loader.
func NewViewer(loader *reports.Loader) *Viewer {
	return &Viewer{loader: loader}
}

// Models returns the published model list.
func (v *Viewer) Models(ctx context.Context) ([]models.Model, error) {
	return v.loader.Models(ctx)
}

// Build fetches the model list, then the score or result files for r, and builds
// the page. Nothing is rendered unless all of the view's data loaded.
func (v *Viewer) Build(ctx context.Context, r route.Route) (*doc.Page, error) {
	start := time.Now()
	if r.Kind == route.SampleDetail && r.Model == "" {
		return nil, fmt.Errorf("task %q: %w", r.Task, reports.ErrMissingModel)
	}

	list, err := v.loader.Models(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading models: %w", err)
	}
	lookup := models.NewModelLookup(list)

	var body *doc.Node
	switch r.Kind {
	case route.Aggregate, route.TaskBreakdown:
		entries, err := v.loader.Scores(ctx, list, reports.CoT, reports.ScoresFile)
		if err != nil {
			return nil, fmt.Errorf("loading scores: %w", err)
		}
		if r.Kind == route.Aggregate {
			body, err = BuildAggregate(entries, lookup)
		} else {
			body, err = BuildBreakdown(entries, lookup)
		}
		if err != nil {
			return nil, err
		}
	case route.SampleDetail:
		result, err := v.loader.TaskResult(ctx, r.Model, r.Task)
		if err != nil {
			return nil, fmt.Errorf("loading task result: %w", err)
		}
		body, err = BuildSampleDetail(r, result, lookup)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported view %s", r)
	}

	slog.Debug("Built view", "route", r.String(), "duration", time.Since(start))
	return &doc.Page{Title: Title(r), Route: r, Body: body}, nil
}

// Title returns the page title for r.
func Title(r route.Route) string {
	switch r.Kind {
	case route.TaskBreakdown:
		return "CoT: BBH"
	case route.SampleDetail:
		return fmt.Sprintf("CoT: %s (%s)", r.Task, r.Model)
	default:
		return "CoT"
	}
}
