// Package reports loads the model list, score files and per-task results
// published by the benchmark pipeline.
package reports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/spboyer/cotboard/internal/models"
	"github.com/spboyer/cotboard/internal/route"
	"github.com/spboyer/cotboard/internal/source"
	"golang.org/x/sync/errgroup"
)

const (
	// ModelsFile lists every published model.
	ModelsFile = "models.json"
	// ScoresFile is the per-model summary inside a benchmark directory.
	ScoresFile = "scores.json"
	// CoT is the benchmark identifier of the chain-of-thought reports.
	CoT = "cot"

	// DefaultConcurrency bounds the number of score files fetched at once.
	DefaultConcurrency = 8
)

// ErrMissingModel is returned when a per-task result is requested without a model.
var ErrMissingModel = errors.New("model is required")

// ModelDir converts a model ID into its directory name by replacing every "/" with "--".
func ModelDir(modelID string) string {
	return strings.ReplaceAll(modelID, "/", "--")
}

// ScorePath returns the name of a model's score file for a benchmark.
func ScorePath(benchmark, modelID, suffix string) string {
	return path.Join(benchmark, ModelDir(modelID), suffix)
}

// TaskResultPath returns the name of a model's result file for a task such as
// "bbh/date_understanding".
func TaskResultPath(modelID, task string) string {
	return path.Join(CoT, ModelDir(modelID), "tasks", task+".json")
}

// Loader fetches report files from a Source.
type Loader struct {
	src         source.Source
	concurrency int
}

// NewLoader returns a Loader reading from src. Concurrency <= 0 uses DefaultConcurrency.
func NewLoader(src source.Source, concurrency int) *Loader {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Loader{src: src, concurrency: concurrency}
}

// Models returns the published model list.
func (l *Loader) Models(ctx context.Context) ([]models.Model, error) {
	var list []models.Model
	if err := l.decode(ctx, ModelsFile, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Scores fetches one score file per model and returns them in the order of list.
// Any failure aborts the remaining fetches and fails the call.
func (l *Loader) Scores(ctx context.Context, list []models.Model, benchmark, suffix string) ([]models.ScoreEntry, error) {
	entries := make([]models.ScoreEntry, len(list))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(l.concurrency)
	for i, m := range list {
		eg.Go(func() error {
			entries[i].ModelID = m.ID
			return l.decode(ctx, ScorePath(benchmark, m.ID, suffix), &entries[i].Scores)
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	slog.Debug("Loaded score files", "benchmark", benchmark, "count", len(entries))
	return entries, nil
}

// TaskResult fetches the per-sample results of one model on one task.
func (l *Loader) TaskResult(ctx context.Context, modelID, task string) (*models.TaskResult, error) {
	if modelID == "" {
		return nil, fmt.Errorf("loading task %q: %w", task, ErrMissingModel)
	}
	if task == "" {
		return nil, fmt.Errorf("%w: empty task", route.ErrInvalidRoute)
	}
	if err := route.CheckTask(task); err != nil {
		return nil, err
	}
	var result models.TaskResult
	if err := l.decode(ctx, TaskResultPath(modelID, task), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (l *Loader) decode(ctx context.Context, name string, v any) error {
	data, err := l.src.Fetch(ctx, name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return nil
}
