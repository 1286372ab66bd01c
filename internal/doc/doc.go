// Package doc describes rendered views as a tree of nodes, independent of the
// output format.
package doc

import (
	"github.com/spboyer/cotboard/internal/models"
	"github.com/spboyer/cotboard/internal/route"
)

// NodeType identifies the kind of a Node.
type NodeType string

const (
	TypeContainer    NodeType = "container"
	TypeText         NodeType = "text"
	TypeLink         NodeType = "link"
	TypeModelLink    NodeType = "model_link"
	TypeTable        NodeType = "table"
	TypeConversation NodeType = "conversation"
	TypeBackLink     NodeType = "back_link"
)

// Conversation roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Node is one element of a view. Which fields are set depends on Type.
type Node struct {
	Type     NodeType      `json:"type"`
	Class    string        `json:"class,omitempty"`
	Text     string        `json:"text,omitempty"`
	Markdown bool          `json:"markdown,omitempty"`
	Route    *route.Route  `json:"route,omitempty"`
	Href     string        `json:"href,omitempty"`
	Model    *models.Model `json:"model,omitempty"`
	Role     string        `json:"role,omitempty"`
	Table    *Table        `json:"table,omitempty"`
	Children []*Node       `json:"children,omitempty"`
}

// Table is a header row plus body rows. A nil cell renders empty.
type Table struct {
	Head []*Node   `json:"head"`
	Rows [][]*Node `json:"rows"`
}

// Container groups children under an optional class.
func Container(class string, children ...*Node) *Node {
	return &Node{Type: TypeContainer, Class: class, Children: children}
}

// Text is a paragraph of plain text followed by optional inline children.
func Text(text string, children ...*Node) *Node {
	return &Node{Type: TypeText, Text: text, Children: children}
}

// Markdown is a paragraph whose text is markdown.
func Markdown(text string) *Node {
	return &Node{Type: TypeText, Text: text, Markdown: true}
}

// Link points at another view.
func Link(text string, r route.Route) *Node {
	return &Node{Type: TypeLink, Text: text, Route: &r}
}

// ExternalLink points outside the viewer.
func ExternalLink(text, href string) *Node {
	return &Node{Type: TypeLink, Text: text, Href: href}
}

// ModelLink shows a model's display name linking to its homepage when known.
func ModelLink(m models.Model) *Node {
	return &Node{Type: TypeModelLink, Text: m.DisplayName(), Href: m.URL, Model: &m}
}

// BackLink leads to the parent view. A nil route means the main page.
func BackLink(label string, r *route.Route) *Node {
	return &Node{Type: TypeBackLink, Text: label, Route: r}
}

// Conversation is a single chat message shown verbatim.
func Conversation(role, content string) *Node {
	return &Node{Type: TypeConversation, Role: role, Text: content}
}

// MarkdownConversation is a chat message whose content is markdown.
func MarkdownConversation(role, content string) *Node {
	return &Node{Type: TypeConversation, Role: role, Text: content, Markdown: true}
}

// NewTable returns a table node.
func NewTable(head []*Node, rows [][]*Node) *Node {
	if rows == nil {
		rows = [][]*Node{}
	}
	return &Node{Type: TypeTable, Table: &Table{Head: head, Rows: rows}}
}

// Walk calls fn for n and every descendant, depth first, including table cells.
func Walk(n *Node, fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	if n.Table != nil {
		for _, c := range n.Table.Head {
			Walk(c, fn)
		}
		for _, row := range n.Table.Rows {
			for _, c := range row {
				Walk(c, fn)
			}
		}
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// FindTable returns the first table in the tree, or nil.
func FindTable(n *Node) *Table {
	var found *Table
	Walk(n, func(x *Node) {
		if found == nil && x.Table != nil {
			found = x.Table
		}
	})
	return found
}

// Page is a rendered view with its title.
type Page struct {
	Title string      `json:"title"`
	Route route.Route `json:"route"`
	Body  *Node       `json:"body"`
}

// Routes returns the targets of every in-viewer link in the tree, in tree order,
// without duplicates.
func Routes(n *Node) []route.Route {
	var out []route.Route
	seen := make(map[route.Route]bool)
	Walk(n, func(x *Node) {
		if x.Type != TypeLink || x.Route == nil || seen[*x.Route] {
			return
		}
		seen[*x.Route] = true
		out = append(out, *x.Route)
	})
	return out
}
