// Package render turns doc trees into HTML pages or terminal text.
package render

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"io"
	"net/url"
	"strings"

	"github.com/spboyer/cotboard/internal/doc"
	"github.com/spboyer/cotboard/internal/route"
	"github.com/yuin/goldmark"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// HTML renders pages as standalone HTML documents.
type HTML struct {
	md       goldmark.Markdown
	linkFor  func(route.Route) string
	mainPage string
}

// HTMLOption configures an HTML renderer.
type HTMLOption func(*HTML)

// WithLinks overrides how in-viewer links are written. The default is the route's
// query string, resolved against the current page.
func WithLinks(fn func(route.Route) string) HTMLOption {
	return func(h *HTML) { h.linkFor = fn }
}

// WithMainPage sets the target of back links that leave the benchmark.
func WithMainPage(href string) HTMLOption {
	return func(h *HTML) { h.mainPage = href }
}

// NewHTML returns an HTML renderer. Markdown is rendered without raw HTML.
func NewHTML(opts ...HTMLOption) *HTML {
	h := &HTML{
		md:       goldmark.New(goldmark.WithRendererOptions(gmhtml.WithHardWraps())),
		linkFor:  route.Route.Href,
		mainPage: "/",
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type pageData struct {
	Title string
	Style template.CSS
	Body  template.HTML
}

var pageTemplate = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Title }}</title>
  <style>{{ .Style }}</style>
</head>
<body>
<main>
{{ .Body }}
</main>
</body>
</html>
`))

// Page writes a complete HTML document for p.
func (h *HTML) Page(w io.Writer, p *doc.Page) error {
	var body bytes.Buffer
	if err := h.Node(&body, p.Body); err != nil {
		return err
	}
	return pageTemplate.Execute(w, pageData{
		Title: p.Title,
		Style: template.CSS(stylesheet),
		Body:  template.HTML(body.String()), //nolint:gosec // built from escaped nodes
	})
}

// Message writes a minimal page with a heading, a message and a link to the main page.
func (h *HTML) Message(w io.Writer, title, message string) error {
	body := doc.Container("message",
		doc.Text(message),
		doc.BackLink("← Back to main page", nil),
	)
	return h.Page(w, &doc.Page{Title: title, Body: body})
}

// Node writes the markup for n and its descendants.
func (h *HTML) Node(w io.Writer, n *doc.Node) error {
	var b strings.Builder
	if err := h.node(&b, n); err != nil {
		return err
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (h *HTML) node(b *strings.Builder, n *doc.Node) error {
	if n == nil {
		return nil
	}
	switch n.Type {
	case doc.TypeContainer:
		b.WriteString("<div" + classAttr(n.Class) + ">")
		if err := h.children(b, n.Children); err != nil {
			return err
		}
		b.WriteString("</div>")
	case doc.TypeText:
		if n.Markdown {
			b.WriteString(`<div class="text` + classSuffix(n.Class) + `">`)
			if err := h.markdown(b, n.Text); err != nil {
				return err
			}
			b.WriteString("</div>")
			return nil
		}
		b.WriteString(`<p class="text` + classSuffix(n.Class) + `">` + html.EscapeString(n.Text))
		if err := h.children(b, n.Children); err != nil {
			return err
		}
		b.WriteString("</p>")
	case doc.TypeLink:
		href := n.Href
		if n.Route != nil {
			href = h.linkFor(*n.Route)
		}
		b.WriteString(`<a href="` + html.EscapeString(href) + `">` + html.EscapeString(n.Text) + "</a>")
	case doc.TypeModelLink:
		title := ""
		if n.Model != nil && n.Model.Provider != "" {
			title = ` title="` + html.EscapeString(n.Model.Provider) + `"`
		}
		if !isWebURL(n.Href) {
			b.WriteString(`<span class="model-link"` + title + ">" + html.EscapeString(n.Text) + "</span>")
			return nil
		}
		b.WriteString(`<a class="model-link" target="_blank" rel="noopener" href="` + html.EscapeString(n.Href) + `"` +
			title + ">" + html.EscapeString(n.Text) + "</a>")
	case doc.TypeBackLink:
		href := h.mainPage
		if n.Route != nil {
			href = h.linkFor(*n.Route)
		}
		b.WriteString(`<a class="back-to-main-page" href="` + html.EscapeString(href) + `">` + html.EscapeString(n.Text) + "</a>")
	case doc.TypeConversation:
		b.WriteString(`<div class="conversation-item conversation-item--` + html.EscapeString(n.Role) + `">`)
		b.WriteString(`<div class="conversation-item__role">` + html.EscapeString(n.Role) + "</div>")
		if !n.Markdown {
			b.WriteString(`<div class="conversation-item__content conversation-item__content--plain">` +
				html.EscapeString(n.Text) + "</div></div>")
			return nil
		}
		b.WriteString(`<div class="conversation-item__content">`)
		if err := h.markdown(b, n.Text); err != nil {
			return err
		}
		b.WriteString("</div></div>")
	case doc.TypeTable:
		return h.table(b, n.Table)
	default:
		return fmt.Errorf("render: unsupported node type %q", n.Type)
	}
	return nil
}

func (h *HTML) children(b *strings.Builder, children []*doc.Node) error {
	for _, c := range children {
		if err := h.node(b, c); err != nil {
			return err
		}
	}
	return nil
}

func (h *HTML) table(b *strings.Builder, t *doc.Table) error {
	if t == nil {
		return nil
	}
	b.WriteString("<table><thead><tr>")
	for _, c := range t.Head {
		if err := h.cell(b, c); err != nil {
			return err
		}
	}
	b.WriteString("</tr></thead><tbody>")
	for _, row := range t.Rows {
		b.WriteString("<tr>")
		for _, c := range row {
			if err := h.cell(b, c); err != nil {
				return err
			}
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")
	return nil
}

// cell writes a table cell. Plain text cells are written inline rather than as paragraphs.
func (h *HTML) cell(b *strings.Builder, n *doc.Node) error {
	b.WriteString("<td>")
	if n != nil && n.Type == doc.TypeText && !n.Markdown && len(n.Children) == 0 {
		b.WriteString(html.EscapeString(n.Text))
	} else if err := h.node(b, n); err != nil {
		return err
	}
	b.WriteString("</td>")
	return nil
}

func (h *HTML) markdown(b *strings.Builder, src string) error {
	var buf bytes.Buffer
	if err := h.md.Convert([]byte(src), &buf); err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	b.Write(buf.Bytes())
	return nil
}

// isWebURL reports whether href is an absolute http or https URL.
func isWebURL(href string) bool {
	u, err := url.Parse(href)
	if err != nil || u.Host == "" {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}

func classAttr(class string) string {
	if class == "" {
		return ""
	}
	return ` class="` + html.EscapeString(class) + `"`
}

func classSuffix(class string) string {
	if class == "" {
		return ""
	}
	return " " + html.EscapeString(class)
}
