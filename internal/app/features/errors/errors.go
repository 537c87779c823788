// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/supporthub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
)

// pageData is the basic view model for error pages.
type pageData struct {
	viewdata.BaseVM
	Heading string
	Message string
}

// Handler is the errors feature handler.
// No API or DB needed; it just renders templates.
type Handler struct {
	render func(w http.ResponseWriter, r *http.Request, name string, data any)
}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{render: templates.Render}
}

// Forbidden renders a friendly "access denied" page.
// GET /forbidden
func (h *Handler) Forbidden(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, http.StatusForbidden, "Access denied", "You don't have permission to view this page.", "/")
}

// Unauthorized renders a friendly "sign in required" page.
// GET /unauthorized
func (h *Handler) Unauthorized(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, http.StatusUnauthorized, "Sign in required", "Please sign in to continue.", "/login")
}

// NotFound is the router's fallback for unknown paths.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("HX-Request") == "true" {
		http.NotFound(w, r)
		return
	}
	h.page(w, r, http.StatusNotFound, "Page not found", "The page you were looking for doesn't exist.", "/")
}

func (h *Handler) page(w http.ResponseWriter, r *http.Request, status int, title, msg, backDefault string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	h.render(w, r, "error_page", pageData{
		BaseVM:  viewdata.NewBaseVM(r, title, backDefault),
		Heading: title,
		Message: msg,
	})
}
