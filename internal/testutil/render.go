package testutil

import (
	"html/template"
	"io/fs"
	"net/http"
	"testing"

	"github.com/dalemusser/supporthub/internal/app/resources"
)

// Renderer executes the real embedded templates with html/template so
// handler tests can assert on rendered HTML without booting the app's
// template engine.
type Renderer struct {
	t    *testing.T
	tmpl *template.Template
}

// NewRenderer parses the shared templates plus the given feature FS.
func NewRenderer(t *testing.T, fsys fs.FS, patterns ...string) *Renderer {
	t.Helper()
	tmpl, err := template.New("root").ParseFS(resources.FS, resources.Patterns...)
	if err != nil {
		t.Fatalf("parse shared templates: %v", err)
	}
	if _, err := tmpl.ParseFS(fsys, patterns...); err != nil {
		t.Fatalf("parse feature templates: %v", err)
	}
	return &Renderer{t: t, tmpl: tmpl}
}

// Page matches templates.Render.
func (rd *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data any) {
	rd.Snippet(w, name, data)
}

// Snippet matches templates.RenderSnippet.
func (rd *Renderer) Snippet(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := rd.tmpl.ExecuteTemplate(w, name, data); err != nil {
		rd.t.Errorf("execute %s: %v", name, err)
	}
}
