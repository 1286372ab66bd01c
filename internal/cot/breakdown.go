package cot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spboyer/cotboard/internal/doc"
	"github.com/spboyer/cotboard/internal/models"
	"github.com/spboyer/cotboard/internal/route"
)

// ErrInconsistentTasks is returned when models report different BBH task sets.
var ErrInconsistentTasks = errors.New("inconsistent task sets")

// TaskColumns returns the BBH task names in the order of the first entry, after
// checking that every entry reports exactly the union of all task names.
func TaskColumns(entries []models.ScoreEntry) ([]string, error) {
	var union []string
	seen := make(map[string]bool)
	for _, e := range entries {
		for _, name := range e.Scores.BBH.TaskNames() {
			if !seen[name] {
				seen[name] = true
				union = append(union, name)
			}
		}
	}

	var problems []string
	for _, e := range entries {
		var missing []string
		for _, name := range union {
			if _, ok := e.Scores.BBH.Task(name); !ok {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			problems = append(problems, fmt.Sprintf("%s is missing %s", e.ModelID, strings.Join(missing, ", ")))
		}
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInconsistentTasks, strings.Join(problems, "; "))
	}
	return union, nil
}

// BuildBreakdown renders one column per BBH task, rows sorted by the BBH average.
func BuildBreakdown(entries []models.ScoreEntry, lookup models.ModelLookup) (*doc.Node, error) {
	tasks, err := TaskColumns(entries)
	if err != nil {
		return nil, err
	}

	head := []*doc.Node{doc.Text("Model"), doc.Text("Average")}
	for _, task := range tasks {
		head = append(head, doc.Text(AllowLineBreaks(task)))
	}

	sorted := sortByAverage(entries, func(s models.ScoreFile) float64 { return s.BBH.Average })
	rows := make([][]*doc.Node, 0, len(sorted))
	for _, e := range sorted {
		m, err := lookup.Lookup(e.ModelID)
		if err != nil {
			return nil, err
		}
		row := []*doc.Node{doc.ModelLink(m), doc.Text(Round(e.Scores.BBH.Average))}
		for _, task := range tasks {
			score, _ := e.Scores.BBH.Task(task)
			row = append(row, doc.Link(Round(score), route.Detail(route.BreakdownTask+"/"+task, e.ModelID)))
		}
		rows = append(rows, row)
	}

	back := route.Route{Kind: route.Aggregate}
	return doc.Container("cot",
		doc.BackLink("← Back to CoT table", &back),
		doc.NewTable(head, rows),
	), nil
}
