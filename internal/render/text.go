package render

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spboyer/cotboard/internal/doc"
)

// DefaultTextWidth is used when the output width is unknown.
const DefaultTextWidth = 120

const columnGap = 2

// Text renders pages for a terminal.
type Text struct {
	// Width is the maximum line width; table cells are truncated to fit.
	Width int
}

// NewText returns a Text renderer for the given width, or DefaultTextWidth if width <= 0.
func NewText(width int) *Text {
	if width <= 0 {
		width = DefaultTextWidth
	}
	return &Text{Width: width}
}

// Page writes p as plain text.
func (t *Text) Page(w io.Writer, p *doc.Page) error {
	var b strings.Builder
	b.WriteString(p.Title + "\n")
	b.WriteString(strings.Repeat("=", min(runewidth.StringWidth(p.Title), t.Width)) + "\n\n")
	t.node(&b, p.Body, "")
	_, err := io.WriteString(w, b.String())
	return err
}

func (t *Text) node(b *strings.Builder, n *doc.Node, indent string) {
	if n == nil {
		return
	}
	switch n.Type {
	case doc.TypeContainer:
		for _, c := range n.Children {
			t.node(b, c, indent)
		}
		if n.Class == "sample" || n.Class == "cot__information" {
			b.WriteString("\n")
		}
	case doc.TypeText:
		b.WriteString(indent + inline(n) + "\n")
	case doc.TypeBackLink:
		b.WriteString(indent + clean(n.Text) + "\n\n")
	case doc.TypeLink, doc.TypeModelLink:
		b.WriteString(indent + inline(n) + "\n")
	case doc.TypeConversation:
		prefix := indent + "  " + n.Role + ": "
		pad := strings.Repeat(" ", runewidth.StringWidth(prefix))
		for i, line := range strings.Split(strings.TrimRight(n.Text, "\n"), "\n") {
			if i == 0 {
				b.WriteString(prefix + line + "\n")
			} else {
				b.WriteString(pad + line + "\n")
			}
		}
	case doc.TypeTable:
		t.table(b, n.Table, indent)
		b.WriteString("\n")
	}
}

// inline flattens a node and its children into one line.
func inline(n *doc.Node) string {
	if n == nil {
		return ""
	}
	s := clean(n.Text)
	for _, c := range n.Children {
		s += inline(c)
	}
	return s
}

func clean(s string) string {
	return strings.ReplaceAll(s, "\u200b", "")
}

func (t *Text) table(b *strings.Builder, tbl *doc.Table, indent string) {
	if tbl == nil {
		return
	}
	rows := make([][]string, 0, len(tbl.Rows)+1)
	rows = append(rows, cells(tbl.Head))
	for _, r := range tbl.Rows {
		rows = append(rows, cells(r))
	}

	widths := columnWidths(rows)
	fitWidths(widths, t.Width-runewidth.StringWidth(indent))

	for i, row := range rows {
		b.WriteString(indent + formatRow(row, widths) + "\n")
		if i == 0 {
			total := 0
			for _, w := range widths {
				total += w
			}
			total += columnGap * max(len(widths)-1, 0)
			b.WriteString(indent + strings.Repeat("-", total) + "\n")
		}
	}
}

func cells(row []*doc.Node) []string {
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = inline(c)
	}
	return out
}

func columnWidths(rows [][]string) []int {
	var widths []int
	for _, row := range rows {
		for i, c := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], runewidth.StringWidth(c))
		}
	}
	return widths
}

// fitWidths shrinks the widest columns until the row fits in limit.
// Columns never shrink below 4 cells.
func fitWidths(widths []int, limit int) {
	total := func() int {
		sum := columnGap * max(len(widths)-1, 0)
		for _, w := range widths {
			sum += w
		}
		return sum
	}
	for total() > limit {
		widest := 0
		for i, w := range widths {
			if w > widths[widest] {
				widest = i
			}
		}
		if widths[widest] <= 4 {
			return
		}
		widths[widest]--
	}
}

func formatRow(row []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		c := ""
		if i < len(row) {
			c = row[i]
		}
		if runewidth.StringWidth(c) > w {
			c = runewidth.Truncate(c, w, "…")
		}
		parts[i] = padRight(c, w)
	}
	return strings.TrimRight(strings.Join(parts, strings.Repeat(" ", columnGap)), " ")
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
