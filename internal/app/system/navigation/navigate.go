package navigation

import (
	"net/http"
	"strings"
)

// Navigate moves the browser to path. HTMX requests get an HX-Redirect
// header so the whole page changes instead of a fragment swap; plain
// requests get a 303. Non-local paths fall back to "/".
func Navigate(w http.ResponseWriter, r *http.Request, path string) {
	if !IsLocalPath(path) {
		path = "/"
	}
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// IsLocalPath reports whether p is an absolute path on this site
// ("/x", not "//host/x" or "https://…").
func IsLocalPath(p string) bool {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") {
		return false
	}
	return !strings.ContainsAny(p, "\\\r\n")
}
