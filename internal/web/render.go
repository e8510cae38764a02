package web

import (
	"bytes"
	"html/template"
	"net/http"

	"resto-app/internal/auth"
	"resto-app/internal/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// page is the layout data. Body is the already rendered view.
type page struct {
	Title      string
	Hash       string
	ShowHeader bool
	Session    *auth.Session
	IsAdmin    bool
	CartCount  int
	Body       template.HTML
}

var funcs = template.FuncMap{
	"money": money,
	"path":  PathFromHash,
}

func money(v any) string {
	switch n := v.(type) {
	case decimal.Decimal:
		return n.StringFixed(2)
	case float64:
		return decimal.NewFromFloat(n).StringFixed(2)
	case int:
		return decimal.NewFromInt(int64(n)).StringFixed(2)
	default:
		return ""
	}
}

// render writes a fresh page: the header unless the route excludes it, then
// the view body.
func (a *App) render(w http.ResponseWriter, r *http.Request, req *Request, content *Content, status int) {
	var body bytes.Buffer
	if err := a.tmpl.ExecuteTemplate(&body, content.Template, content.Data); err != nil {
		a.renderFailure(w, r, err)
		return
	}

	p := page{
		Title:      content.Title,
		Hash:       req.Hash,
		ShowHeader: !noHeader[req.Hash],
		Session:    req.Session,
		IsAdmin:    req.IsAdmin(),
		CartCount:  req.Cart.Count(),
		Body:       template.HTML(body.String()),
	}

	var out bytes.Buffer
	if err := a.tmpl.ExecuteTemplate(&out, "layout", p); err != nil {
		a.renderFailure(w, r, err)
		return
	}

	if content.Status != 0 {
		status = content.Status
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = out.WriteTo(w)
}

func (a *App) renderNotFound(w http.ResponseWriter, r *http.Request, req *Request) {
	a.render(w, r, req, &Content{Title: "Not found", Template: "notfound"}, http.StatusNotFound)
}

func (a *App) renderFailure(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromCtx(r.Context()).Error("render failed", zap.Error(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
