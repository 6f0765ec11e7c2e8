// internal/app/features/chapters/templates.go
package chapters

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "chapters",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
