// internal/domain/models/user.go
package models

import "strings"

// Roles known to the dashboards. The API may send other roles;
// those users land on the home page.
const (
	RoleAdmin   = "admin"
	RoleSponsor = "sponsor"
	RoleMentee  = "user"
)

// NormalizeRole folds an API role into the form the role constants use.
func NormalizeRole(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}

// User is the identity returned by the API on sign-in.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"` // display name; may be empty
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"`
}

// DefaultSiteName is used when no site_name is configured.
const DefaultSiteName = "SupportHub"
