// internal/app/features/errors/render.go
package errors

import (
	"net/http"

	"github.com/auraclub/aurahub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
)

// RenderUnauthorized shows a friendly "sign in required" page.
// If backURL is empty, it will default to /login.
func RenderUnauthorized(w http.ResponseWriter, r *http.Request, backURL string) {
	if backURL == "" {
		backURL = "/login"
	}

	data := pageData{
		BaseVM:  viewdata.NewBaseVM(r, "Sign in required", backURL),
		Message: "Please sign in to continue.",
	}
	data.BackURL = backURL

	templates.Render(w, r, "error_forbidden", data)
}

// RenderForbidden shows a friendly access error page with a message.
func RenderForbidden(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	if backURL == "" {
		backURL = "/"
	}

	data := pageData{
		BaseVM:  viewdata.NewBaseVM(r, "Access denied", backURL),
		Message: msg,
	}
	data.BackURL = backURL

	templates.Render(w, r, "error_forbidden", data)
}
