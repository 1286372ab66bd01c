package cot

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/spboyer/cotboard/internal/doc"
	"github.com/spboyer/cotboard/internal/models"
	"github.com/stretchr/testify/require"
)

// entry builds a ScoreEntry from the JSON a producer would write.
func entry(t *testing.T, modelID string, average, gsm8k, bbhAverage float64, tasks ...string) models.ScoreEntry {
	t.Helper()
	pairs := make([]string, 0, len(tasks))
	for _, task := range tasks {
		name, score, ok := strings.Cut(task, "=")
		require.True(t, ok, "task must be name=score")
		pairs = append(pairs, fmt.Sprintf("%q: %s", name, score))
	}
	raw := fmt.Sprintf(`{"average": %v, "gsm8k": %v, "bbh": {"average": %v, "tasks": {%s}}}`,
		average, gsm8k, bbhAverage, strings.Join(pairs, ", "))

	var f models.ScoreFile
	require.NoError(t, json.Unmarshal([]byte(raw), &f))
	return models.ScoreEntry{ModelID: modelID, Scores: f}
}

func lookupFor(ids ...string) models.ModelLookup {
	list := make([]models.Model, 0, len(ids))
	for _, id := range ids {
		list = append(list, models.Model{ID: id})
	}
	return models.NewModelLookup(list)
}

// cellText returns the text of a table cell, or "" for an empty cell.
func cellText(n *doc.Node) string {
	if n == nil {
		return ""
	}
	return n.Text
}

func tableOf(t *testing.T, n *doc.Node) *doc.Table {
	t.Helper()
	tbl := doc.FindTable(n)
	require.NotNil(t, tbl, "view has no table")
	return tbl
}
