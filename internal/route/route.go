// Package route maps URL query parameters to the view they select and back.
package route

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Query parameter names.
const (
	ParamBenchmark = "benchmark"
	ParamTask      = "task"
	ParamModel     = "model"
)

const (
	// Benchmark is the only benchmark served by this viewer.
	Benchmark = "cot"
	// BreakdownTask is the task value that selects the BBH per-task table.
	BreakdownTask = "bbh"
)

var (
	// ErrUnknownBenchmark is returned for a benchmark parameter other than Benchmark.
	ErrUnknownBenchmark = errors.New("unknown benchmark")
	// ErrInvalidRoute is returned for a task or model that is not a clean relative path.
	ErrInvalidRoute = errors.New("invalid route")
)

// Kind identifies which view a Route selects.
type Kind int

const (
	Aggregate Kind = iota
	TaskBreakdown
	SampleDetail
)

func (k Kind) String() string {
	switch k {
	case Aggregate:
		return "aggregate"
	case TaskBreakdown:
		return "task-breakdown"
	case SampleDetail:
		return "sample-detail"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(b []byte) error {
	for _, c := range []Kind{Aggregate, TaskBreakdown, SampleDetail} {
		if c.String() == string(b) {
			*k = c
			return nil
		}
	}
	return fmt.Errorf("unknown view kind %q", b)
}

// Route is a parsed view selection. Task and Model are only meaningful for SampleDetail.
type Route struct {
	Kind  Kind   `json:"kind"`
	Task  string `json:"task,omitempty"`
	Model string `json:"model,omitempty"`
}

// Detail returns the SampleDetail route for model on task.
func Detail(task, model string) Route {
	return Route{Kind: SampleDetail, Task: task, Model: model}
}

// Parse selects a view from query parameters. A missing model on a detail route
// is kept empty so that loading the view fails explicitly.
func Parse(q url.Values) (Route, error) {
	if b := q.Get(ParamBenchmark); b != "" && b != Benchmark {
		return Route{}, fmt.Errorf("%w: %q", ErrUnknownBenchmark, b)
	}
	task, model := q.Get(ParamTask), q.Get(ParamModel)
	if err := CheckTask(task); err != nil {
		return Route{}, err
	}
	if model == "." || model == ".." {
		return Route{}, fmt.Errorf("%w: model %q", ErrInvalidRoute, model)
	}
	return forTask(task, model), nil
}

// CheckTask rejects task paths with empty, "." or ".." segments.
func CheckTask(task string) error {
	if task == "" {
		return nil
	}
	for _, seg := range strings.Split(task, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return fmt.Errorf("%w: task %q", ErrInvalidRoute, task)
		}
	}
	return nil
}

func forTask(task, model string) Route {
	switch task {
	case "":
		return Route{Kind: Aggregate}
	case BreakdownTask:
		return Route{Kind: TaskBreakdown}
	default:
		return Detail(task, model)
	}
}

// Query encodes r as query parameters, always including the benchmark.
func (r Route) Query() url.Values {
	q := url.Values{}
	q.Set(ParamBenchmark, Benchmark)
	switch r.Kind {
	case TaskBreakdown:
		q.Set(ParamTask, BreakdownTask)
	case SampleDetail:
		q.Set(ParamTask, r.Task)
		if r.Model != "" {
			q.Set(ParamModel, r.Model)
		}
	}
	return q
}

// Href returns the relative link for r.
func (r Route) Href() string {
	return "?" + r.Query().Encode()
}

// TaskPath returns the task path the route stands for: "" for Aggregate,
// "bbh" for TaskBreakdown.
func (r Route) TaskPath() string {
	switch r.Kind {
	case TaskBreakdown:
		return BreakdownTask
	case SampleDetail:
		return r.Task
	default:
		return ""
	}
}

// Back returns the parent view: the task path with its last "/" segment removed,
// or Aggregate when nothing remains. The model is carried along.
func (r Route) Back() Route {
	segments := strings.Split(r.TaskPath(), "/")
	if len(segments) <= 1 {
		return Route{Kind: Aggregate}
	}
	return forTask(strings.Join(segments[:len(segments)-1], "/"), r.Model)
}

// File returns a deterministic relative file name for r in a static export.
func (r Route) File() string {
	switch r.Kind {
	case Aggregate:
		return "index.html"
	case TaskBreakdown:
		return BreakdownTask + ".html"
	default:
		task := strings.ReplaceAll(r.Task, "/", "__")
		return "samples/" + strings.ReplaceAll(r.Model, "/", "--") + "/" + task + ".html"
	}
}

func (r Route) String() string {
	if r.Kind == SampleDetail {
		return fmt.Sprintf("%s(task=%s, model=%s)", r.Kind, r.Task, r.Model)
	}
	return r.Kind.String()
}
