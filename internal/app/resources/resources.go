// internal/app/resources/resources.go
package resources

import (
	"embed"
	"sync"

	"github.com/dalemusser/waffle/pantry/templates"
)

// Embed the shared template files (layout and panel states).
//
//go:embed templates/*.gohtml
var FS embed.FS

// Patterns matches every shared template in FS.
var Patterns = []string{"templates/*.gohtml"}

var registerOnce sync.Once

// LoadSharedTemplates registers the shared set. Call before the template
// engine boots.
func LoadSharedTemplates() {
	registerOnce.Do(func() {
		templates.Register(templates.Set{
			Name:     "shared",
			FS:       FS,
			Patterns: Patterns,
		})
	})
}
