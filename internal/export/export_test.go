package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spboyer/cotboard/internal/cot"
	"github.com/spboyer/cotboard/internal/doc"
	"github.com/spboyer/cotboard/internal/reports"
	"github.com/spboyer/cotboard/internal/route"
	"github.com/spboyer/cotboard/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeReports(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, body := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	}
	return root
}

func fixtureViewer(t *testing.T) *cot.Viewer {
	t.Helper()
	root := writeReports(t, map[string]string{
		"models.json": `[{"id": "foo/bar", "name": "Foo Bar"}]`,
		"cot/foo--bar/scores.json": `{"average": 0.7, "gsm8k": 0.6,
			"bbh": {"average": 0.5, "tasks": {"snarks": 0.5}}}`,
		"cot/foo--bar/tasks/bbh/snarks.json": `{"score": 0.5, "model_outputs": [
			{"id": 0, "question": "Q", "correct_answer": 1, "model_answer": "1", "correct": true}
		]}`,
	})
	return cot.NewViewer(reports.NewLoader(source.NewDir(root), 2))
}

func TestRel(t *testing.T) {
	tests := []struct {
		from, to, want string
	}{
		{"index.html", "bbh.html", "bbh.html"},
		{"index.html", "samples/foo--bar/gsm8k.html", "samples/foo--bar/gsm8k.html"},
		{"samples/foo--bar/bbh__snarks.html", "bbh.html", "../../bbh.html"},
		{"samples/foo--bar/bbh__snarks.html", "samples/foo--bar/bbh.html", "bbh.html"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Rel(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestRun(t *testing.T) {
	out := t.TempDir()
	summary, err := New(fixtureViewer(t), out, 2).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Pages)
	require.Len(t, summary.Skipped, 1)
	assert.Equal(t, route.Detail("gsm8k", "foo/bar"), summary.Skipped[0])

	index, err := os.ReadFile(filepath.Join(out, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(index), `href="bbh.html"`)
	assert.Contains(t, string(index), `href="samples/foo--bar/gsm8k.html"`)

	bbh, err := os.ReadFile(filepath.Join(out, "bbh.html"))
	require.NoError(t, err)
	assert.Contains(t, string(bbh), `href="samples/foo--bar/bbh__snarks.html"`)
	assert.Contains(t, string(bbh), `href="index.html"`)

	sample, err := os.ReadFile(filepath.Join(out, "samples", "foo--bar", "bbh__snarks.html"))
	require.NoError(t, err)
	assert.Contains(t, string(sample), `href="../../bbh.html"`)
	assert.Contains(t, string(sample), "This answer was correct.")

	assert.NoFileExists(t, filepath.Join(out, "samples", "foo--bar", "gsm8k.html"))
}

type failingBuilder struct{}

func (failingBuilder) Build(context.Context, route.Route) (*doc.Page, error) {
	return nil, errors.New("boom")
}

func TestRun_Error(t *testing.T) {
	_, err := New(failingBuilder{}, t.TempDir(), 0).Run(context.Background())
	assert.ErrorContains(t, err, "boom")
}
