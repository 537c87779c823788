// internal/app/system/authz/roles.go
package authz

import (
	"net/http"

	"github.com/dalemusser/supporthub/internal/domain/models"
)

// HasAnyRole reports whether the current request's user has any of the given roles.
// Returns false if no user is present (i.e., not signed in).
func HasAnyRole(r *http.Request, roles ...string) bool {
	role, _, _, ok := UserCtx(r)
	if !ok {
		return false
	}
	for _, want := range roles {
		if role == models.NormalizeRole(want) {
			return true
		}
	}
	return false
}
