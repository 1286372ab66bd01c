// Package export writes every view reachable from the aggregate table as a
// static HTML site with relative links.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sync"

	"github.com/spboyer/cotboard/internal/doc"
	"github.com/spboyer/cotboard/internal/render"
	"github.com/spboyer/cotboard/internal/route"
	"github.com/spboyer/cotboard/internal/source"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds how many sample pages are built at once.
const DefaultConcurrency = 8

// Builder builds the page for a route. *cot.Viewer satisfies it.
type Builder interface {
	Build(ctx context.Context, r route.Route) (*doc.Page, error)
}

// Summary reports what an export wrote.
type Summary struct {
	Pages   int
	Skipped []route.Route
}

// Exporter writes a static site into Dir.
type Exporter struct {
	builder     Builder
	dir         string
	concurrency int
}

// New returns an Exporter writing into dir.
func New(builder Builder, dir string, concurrency int) *Exporter {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Exporter{builder: builder, dir: dir, concurrency: concurrency}
}

// Run writes the aggregate and breakdown pages, then every sample page they
// link to. Sample pages whose result file is not published are skipped; any
// other error stops the export.
func (e *Exporter) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{}
	seen := map[route.Route]bool{}
	var details []route.Route

	queue := []route.Route{{Kind: route.Aggregate}}
	for len(queue) > 0 {
		r := queue[0]
		queue = queue[1:]
		if seen[r] {
			continue
		}
		seen[r] = true

		page, err := e.builder.Build(ctx, r)
		if err != nil {
			return nil, fmt.Errorf("building %s: %w", r, err)
		}
		if err := e.write(page); err != nil {
			return nil, err
		}
		summary.Pages++

		for _, next := range doc.Routes(page.Body) {
			if seen[next] {
				continue
			}
			if next.Kind == route.SampleDetail {
				seen[next] = true
				details = append(details, next)
				continue
			}
			queue = append(queue, next)
		}
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for _, r := range details {
		g.Go(func() error {
			page, err := e.builder.Build(gctx, r)
			if errors.Is(err, source.ErrNotFound) {
				slog.Warn("Skipping unpublished sample page", "route", r.String(), "error", err)
				mu.Lock()
				summary.Skipped = append(summary.Skipped, r)
				mu.Unlock()
				return nil
			}
			if err != nil {
				return fmt.Errorf("building %s: %w", r, err)
			}
			if err := e.write(page); err != nil {
				return err
			}
			mu.Lock()
			summary.Pages++
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summary, nil
}

func (e *Exporter) write(page *doc.Page) error {
	file := page.Route.File()
	h := render.NewHTML(
		render.WithLinks(func(target route.Route) string { return Rel(file, target.File()) }),
		render.WithMainPage(Rel(file, route.Route{Kind: route.Aggregate}.File())),
	)

	var buf bytes.Buffer
	if err := h.Page(&buf, page); err != nil {
		return fmt.Errorf("rendering %s: %w", file, err)
	}

	p := filepath.Join(e.dir, filepath.FromSlash(file))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", file, err)
	}
	if err := os.WriteFile(p, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", file, err)
	}
	slog.Debug("Exported page", "file", file)
	return nil
}

// Rel returns the link from the page at from to the page at to, both
// slash-separated paths relative to the site root.
func Rel(from, to string) string {
	rel, err := filepath.Rel(filepath.FromSlash(path.Dir(from)), filepath.FromSlash(to))
	if err != nil {
		return to
	}
	return filepath.ToSlash(rel)
}
