// internal/app/resources/resources.go

// Package resources holds the assets shared by every page: the site
// layout partials (page_top, page_bottom) that feature templates wrap
// themselves in.
package resources

import (
	"embed"
	"sync"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var layoutFS embed.FS

var registerOnce sync.Once

// LoadSharedTemplates registers the layout partials with the template
// engine. Called once from Startup, before the engine boots; safe to call
// again (tests may reload the app).
func LoadSharedTemplates() {
	registerOnce.Do(func() {
		templates.Register(templates.Set{
			Name:     "layout",
			FS:       layoutFS,
			Patterns: []string{"templates/*.gohtml"},
		})
	})
}
