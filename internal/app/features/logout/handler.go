// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/auraclub/aurahub/internal/app/system/auth"
	"go.uber.org/zap"
)

type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// HandleLogout clears the session and returns to the public home page.
// POST /logout
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := auth.SignOut(w, r); err != nil {
		// A decode failure still ends with an expired cookie; nothing
		// more to do than note it.
		h.Log.Warn("sign out failed", zap.Error(err))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
