// internal/app/features/adminstats/templates.go
package adminstats

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "adminstats",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
