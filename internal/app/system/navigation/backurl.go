// Package navigation provides safe redirects and the app's navigate(path)
// capability.
package navigation

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/urlutil"
)

// BackURLOptions configures SafeBackURL.
type BackURLOptions struct {
	// AllowedPrefix is the required URL prefix (e.g., "/sponsor").
	// If empty, any safe URL is allowed.
	AllowedPrefix string

	// Fallback is used when no valid return URL is found.
	Fallback string
}

// SafeBackURL reads the "return" query or form value, rejects anything
// that is not a local path (open redirects), and applies the prefix rule.
func SafeBackURL(r *http.Request, opts BackURLOptions) string {
	ret := urlutil.SafeReturn(query.Get(r, "return"), "", "")
	if ret == "" {
		ret = urlutil.SafeReturn(strings.TrimSpace(r.FormValue("return")), "", "")
	}
	if ret != "" && IsLocalPath(ret) &&
		(opts.AllowedPrefix == "" || strings.HasPrefix(ret, opts.AllowedPrefix)) {
		return ret
	}
	return opts.Fallback
}

// LoginBackURL is used after sign-in.
var LoginBackURL = BackURLOptions{Fallback: "/dashboard"}
