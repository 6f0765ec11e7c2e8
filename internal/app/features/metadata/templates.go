// internal/app/features/metadata/templates.go
package metadata

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "metadata",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
