package webapi

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/spboyer/cotboard/internal/doc"
	"github.com/spboyer/cotboard/internal/route"
)

const siteTitle = "cotboard"

// HandlePage serves the HTML viewer. Without a benchmark parameter it lists the
// available benchmarks; otherwise it renders the selected view.
func (h *Handlers) HandlePage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get(route.ParamBenchmark) == "" {
		h.writePage(w, http.StatusOK, indexPage())
		return
	}

	rt, err := route.Parse(q)
	if err != nil {
		h.writeMessage(w, StatusFor(err), err.Error())
		return
	}
	page, err := h.viewer.Build(r.Context(), rt)
	if err != nil {
		slog.Debug("Building view failed", "route", rt.String(), "error", err)
		h.writeMessage(w, StatusFor(err), err.Error())
		return
	}
	h.writePage(w, http.StatusOK, page)
}

func indexPage() *doc.Page {
	return &doc.Page{
		Title: siteTitle,
		Body: doc.Container("index",
			doc.Text("Benchmarks"),
			doc.Container("benchmarks",
				doc.Link("CoT", route.Route{Kind: route.Aggregate}),
			),
		),
	}
}

func (h *Handlers) writePage(w http.ResponseWriter, status int, p *doc.Page) {
	var buf bytes.Buffer
	if err := h.html.Page(&buf, p); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeHTML(w, status, buf.Bytes())
}

func (h *Handlers) writeMessage(w http.ResponseWriter, status int, msg string) {
	var buf bytes.Buffer
	if err := h.html.Message(&buf, http.StatusText(status), msg); err != nil {
		http.Error(w, msg, status)
		return
	}
	writeHTML(w, status, buf.Bytes())
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body) //nolint:errcheck
}
