// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"
	"sync"
	"time"

	"github.com/dalemusser/supporthub/internal/app/system/authz"
	"github.com/dalemusser/supporthub/internal/app/system/i18n"
	"github.com/dalemusser/supporthub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/httpnav"
)

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := myPageData{
//	    BaseVM: viewdata.NewBaseVM(r, "Page Title", "/default-back"),
//	}
type BaseVM struct {
	SiteName string

	// User context (from auth middleware)
	IsLoggedIn bool
	Role       string
	RoleLabel  string
	UserName   string

	// Page context
	Title       string
	BackURL     string
	CurrentPath string
}

var (
	mu       sync.RWMutex
	siteName = models.DefaultSiteName
	refresh  = 30 * time.Second
)

// Init sets the site name and panel refresh interval.
// Call this once at startup from bootstrap.
func Init(name string, refreshInterval time.Duration) {
	mu.Lock()
	defer mu.Unlock()
	if name != "" {
		siteName = name
	}
	if refreshInterval > 0 {
		refresh = refreshInterval
	}
}

// RefreshSeconds is how often dashboard panels re-request themselves.
func RefreshSeconds() int {
	mu.RLock()
	defer mu.RUnlock()
	s := int(refresh / time.Second)
	if s < 1 {
		s = 1
	}
	return s
}

// NewBaseVM creates a fully populated BaseVM for a page.
//
// Parameters:
//   - r: the HTTP request
//   - title: the page title
//   - backDefault: default URL for the back button if none in request
func NewBaseVM(r *http.Request, title, backDefault string) BaseVM {
	role, name, _, signedIn := authz.UserCtx(r)
	if !signedIn {
		role = ""
	}

	mu.RLock()
	site := siteName
	mu.RUnlock()

	vm := BaseVM{
		SiteName:    site,
		IsLoggedIn:  signedIn,
		Role:        role,
		UserName:    name,
		Title:       title,
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: httpnav.CurrentPath(r),
	}
	if role != "" {
		vm.RoleLabel = i18n.Title(role)
	}
	return vm
}
