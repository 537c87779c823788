// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/dalemusser/supporthub/internal/app/system/auth"
	"github.com/dalemusser/supporthub/internal/domain/models"
)

// UserCtx returns the user's role (lowercased), display name, API user ID
// and a found flag. Without a signed-in user (or with an empty ID) it
// returns "visitor", "", "", false.
func UserCtx(r *http.Request) (role string, name string, userID string, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok || strings.TrimSpace(user.ID) == "" {
		return "visitor", "", "", false
	}
	return models.NormalizeRole(user.Role), user.Name, user.ID, true
}

// IsAdmin reports whether the current request's user is an admin.
func IsAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleAdmin
}

// IsSponsor reports whether the current request's user is a sponsor.
func IsSponsor(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleSponsor
}

// APIToken returns the signed-in user's bearer token, or "".
func APIToken(r *http.Request) string {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return ""
	}
	return user.Token
}
