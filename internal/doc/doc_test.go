package doc

import (
	"testing"

	"github.com/spboyer/cotboard/internal/models"
	"github.com/spboyer/cotboard/internal/route"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkVisitsTableCells(t *testing.T) {
	tree := Container("outer",
		BackLink("back", nil),
		NewTable(
			[]*Node{Text("Model"), nil, Link("BBH", route.Route{Kind: route.TaskBreakdown})},
			[][]*Node{{ModelLink(models.Model{ID: "foo/bar"}), Link("50.0", route.Detail("gsm8k", "foo/bar"))}},
		),
	)

	var types []NodeType
	Walk(tree, func(n *Node) { types = append(types, n.Type) })

	assert.Equal(t, []NodeType{
		TypeContainer, TypeBackLink, TypeTable, TypeText, TypeLink, TypeModelLink, TypeLink,
	}, types)
}

func TestRoutesDeduplicates(t *testing.T) {
	detail := route.Detail("gsm8k", "foo/bar")
	tree := Container("",
		Link("a", detail),
		Text("x", Link("b", detail)),
		Link("c", route.Route{Kind: route.TaskBreakdown}),
		ExternalLink("hub", "https://example.com"),
	)

	assert.Equal(t, []route.Route{detail, {Kind: route.TaskBreakdown}}, Routes(tree))
}

func TestFindTable(t *testing.T) {
	assert.Nil(t, FindTable(Container("", Text("no table"))))

	tree := Container("", Container("inner", NewTable([]*Node{Text("h")}, nil)))
	tbl := FindTable(tree)
	require.NotNil(t, tbl)
	assert.Len(t, tbl.Head, 1)
	assert.NotNil(t, tbl.Rows)
}

func TestModelLinkUsesDisplayName(t *testing.T) {
	n := ModelLink(models.Model{ID: "foo/bar", Name: "Foo", URL: "https://huggingface.co/foo/bar"})
	assert.Equal(t, "Foo", n.Text)
	assert.Equal(t, "https://huggingface.co/foo/bar", n.Href)
	require.NotNil(t, n.Model)
	assert.Equal(t, "foo/bar", n.Model.ID)
}
