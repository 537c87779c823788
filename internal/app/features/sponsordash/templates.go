// internal/app/features/sponsordash/templates.go
package sponsordash

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "sponsordash",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
