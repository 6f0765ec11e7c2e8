// internal/app/features/shared/templates.go
//
// Package shared registers the layout partials every page template uses:
// page_head, page_nav, and page_foot. Feature templates invoke them by name.
package shared

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "shared",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
