package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/spboyer/cotboard/internal/doc"
	"github.com/spboyer/cotboard/internal/models"
	"github.com/spboyer/cotboard/internal/route"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderText(t *testing.T, width int, body *doc.Node) []string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, NewText(width).Page(&buf, &doc.Page{Title: "CoT", Body: body}))
	return strings.Split(buf.String(), "\n")
}

func TestTextTableAlignsColumns(t *testing.T) {
	body := doc.NewTable(
		[]*doc.Node{doc.Text("Model"), doc.Text("Average"), doc.Text("s\u200bn\u200ba\u200br\u200bk\u200bs")},
		[][]*doc.Node{
			{doc.ModelLink(models.Model{ID: "foo/bar"}), doc.Text("81.2"), doc.Link("70.0", route.Detail("bbh/snarks", "foo/bar"))},
			{doc.ModelLink(models.Model{ID: "a/b", Name: "日本語モデル"}), doc.Text("7.3"), nil},
		},
	)

	lines := renderText(t, 0, body)
	require.GreaterOrEqual(t, len(lines), 7)

	assert.Equal(t, "CoT", lines[0])
	assert.Equal(t, "Model         Average  snarks", lines[3])
	assert.Equal(t, strings.Repeat("-", 29), lines[4])
	assert.Equal(t, "foo/bar       81.2     70.0", lines[5])
	assert.Equal(t, "日本語モデル  7.3", lines[6])
}

func TestTextTableTruncatesToWidth(t *testing.T) {
	long := strings.Repeat("x", 80)
	body := doc.NewTable(
		[]*doc.Node{doc.Text("Model"), doc.Text(long)},
		[][]*doc.Node{{doc.Text("m"), doc.Text("1.0")}},
	)

	for _, line := range renderText(t, 40, body) {
		assert.LessOrEqual(t, runewidth.StringWidth(line), 40, line)
	}
}

func TestTextSamples(t *testing.T) {
	back := route.Route{Kind: route.Aggregate}
	body := doc.Container("cot",
		doc.BackLink("← Back to table", &back),
		doc.Container("sample",
			doc.Text("The following question was asked:"),
			doc.Conversation(doc.RoleUser, "line one\nline two"),
			doc.Text("This answer was incorrect."),
		),
	)

	out := strings.Join(renderText(t, 80, body), "\n")
	assert.Contains(t, out, "← Back to table\n")
	assert.Contains(t, out, "  user: line one\n        line two\n")
	assert.Contains(t, out, "This answer was incorrect.")
}
