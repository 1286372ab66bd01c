// Package cot builds the views of the chain-of-thought benchmark: the aggregate
// table, the BBH per-task breakdown and the per-sample detail list.
package cot

import (
	"cmp"
	"slices"

	"github.com/spboyer/cotboard/internal/doc"
	"github.com/spboyer/cotboard/internal/models"
	"github.com/spboyer/cotboard/internal/route"
)

const explanation = "This benchmark measures the CoT (chain-of-thought) reasoning capabilities. " +
	"It uses a set of questions (depending on the task) and prompts the model to first explain its reasoning step-by-step and then output the answer. " +
	"The reasoning itself is currently ignored and only the final answer is checked for correctness. " +
	"For another leaderboard that focuses more on this, see [here](https://github.com/FranxYao/chain-of-thought-hub)."

type column struct {
	id   string
	name string
}

// The aggregate table has a fixed set of sub-benchmark columns.
var columns = []column{
	{id: "gsm8k", name: "GSM8K"},
	{id: route.BreakdownTask, name: "BBH"},
}

// sortByAverage returns a copy of entries ordered by key, highest first.
// Equal keys keep their input order.
func sortByAverage(entries []models.ScoreEntry, key func(models.ScoreFile) float64) []models.ScoreEntry {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b models.ScoreEntry) int {
		return cmp.Compare(key(b.Scores), key(a.Scores))
	})
	return sorted
}

// BuildAggregate renders the top-level table: one row per model sorted by the
// overall average, with a summary cell per sub-benchmark.
func BuildAggregate(entries []models.ScoreEntry, lookup models.ModelLookup) (*doc.Node, error) {
	head := []*doc.Node{doc.Text("Model"), doc.Text("Average"), nil}
	for _, c := range columns {
		if c.id == route.BreakdownTask {
			head = append(head, doc.Link(c.name, route.Route{Kind: route.TaskBreakdown}))
		} else {
			head = append(head, doc.Text(c.name))
		}
	}

	sorted := sortByAverage(entries, func(s models.ScoreFile) float64 { return s.Average })
	rows := make([][]*doc.Node, 0, len(sorted))
	for _, e := range sorted {
		m, err := lookup.Lookup(e.ModelID)
		if err != nil {
			return nil, err
		}
		row := []*doc.Node{doc.ModelLink(m), doc.Text(Round(e.Scores.Average)), nil}
		for _, c := range columns {
			switch c.id {
			case "gsm8k":
				row = append(row, doc.Link(Round(e.Scores.GSM8K), route.Detail(c.id, e.ModelID)))
			case route.BreakdownTask:
				row = append(row, doc.Text(Round(e.Scores.BBH.Average)))
			}
		}
		rows = append(rows, row)
	}

	return doc.Container("cot",
		doc.BackLink("← Back to main page", nil),
		&doc.Node{Type: doc.TypeText, Class: "cot-explanation", Text: explanation, Markdown: true},
		doc.NewTable(head, rows),
	), nil
}
