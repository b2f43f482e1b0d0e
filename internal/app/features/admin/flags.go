// internal/app/features/admin/flags.go
package admin

import (
	"context"
	"net/http"

	"github.com/auraclub/aurahub/internal/app/system/authz"
	"github.com/auraclub/aurahub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleToggleLiveResponses flips whether the public join and contact
// forms accept submissions. Last writer wins.
// POST /admin/flags/live-responses
func (h *Handler) HandleToggleLiveResponses(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	enabled := r.FormValue("enabled") == "true"
	_, name, _, _ := authz.UserCtx(r)

	if err := h.Flags.SetLiveResponses(ctx, enabled, name); err != nil {
		h.Log.Error("admin: toggle live responses failed",
			zap.Bool("enabled", enabled),
			zap.Error(err))
		http.Error(w, "could not update flag", http.StatusInternalServerError)
		return
	}

	h.Log.Info("live responses toggled",
		zap.Bool("enabled", enabled),
		zap.String("by", name))
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}
