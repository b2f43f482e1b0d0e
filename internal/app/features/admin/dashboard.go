// internal/app/features/admin/dashboard.go
package admin

import (
	"context"
	"net/http"

	"github.com/auraclub/aurahub/internal/app/system/timeouts"
	"github.com/auraclub/aurahub/internal/app/system/viewdata"
	"github.com/auraclub/aurahub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/sse"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type dashboardData struct {
	viewdata.BaseVM
	Counts       models.EventCounts
	Applications int64
	Contacts     int64
	Members      int64
	Flags        models.AdminFlags
}

// ServeDashboard renders the admin landing page with current counts. The
// event counts tile keeps itself fresh via the SSE feed.
// GET /admin
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	data := dashboardData{
		BaseVM: viewdata.NewBaseVM(r, "Dashboard", "/"),
	}

	var err error
	if data.Counts, err = h.Events.StatusCounts(ctx); err != nil {
		h.Log.Error("dashboard: event counts failed", zap.Error(err))
		http.Error(w, "could not load dashboard", http.StatusInternalServerError)
		return
	}
	if data.Applications, err = h.Applications.Count(ctx); err != nil {
		h.Log.Warn("dashboard: application count failed", zap.Error(err))
	}
	if data.Contacts, err = h.Contacts.Count(ctx); err != nil {
		h.Log.Warn("dashboard: contact count failed", zap.Error(err))
	}
	if data.Members, err = h.Members.Count(ctx); err != nil {
		h.Log.Warn("dashboard: member count failed", zap.Error(err))
	}
	if data.Flags, err = h.Flags.Get(ctx); err != nil {
		h.Log.Warn("dashboard: flags read failed", zap.Error(err))
		data.Flags = models.DefaultAdminFlags()
	}

	templates.Render(w, r, "admin_dashboard", data)
}

// ServeCountsFeed streams the dashboard's live tiles as server-sent
// events: per-status event counts, plus the submissions flag so a toggle
// in one admin session shows up in every other open one. The broker owns
// the stream; each connection gets its own projector subscriptions,
// cancelled when the client goes away. Every message carries the full
// current state, so a dropped message is made irrelevant by the next one.
// GET /admin/counts/feed
func (h *Handler) ServeCountsFeed(w http.ResponseWriter, r *http.Request) {
	h.countsFeed.HandleRequest(w, r, func(client *sse.Client) {
		cancelCounts := h.Counts.Subscribe(
			func(counts models.EventCounts) {
				if err := client.SendJSON("counts", counts); err != nil {
					h.Log.Error("counts feed: marshal failed", zap.Error(err))
				}
			},
			func(err error) {
				h.Log.Warn("counts feed: projector error", zap.Error(err))
				client.SendEvent("error", `{"error":"counts feed interrupted"}`)
			},
		)
		cancelFlags := func() {}
		if h.FlagsLive != nil {
			cancelFlags = h.FlagsLive.Subscribe(
				func(flags models.AdminFlags) {
					if err := client.SendJSON("flags", flags); err != nil {
						h.Log.Error("counts feed: marshal flags failed", zap.Error(err))
					}
				},
				func(err error) {
					// Counts keep flowing; the flags tile just goes stale.
					h.Log.Warn("counts feed: flags projector error", zap.Error(err))
				},
			)
		}
		go func() {
			<-client.Done()
			cancelCounts()
			cancelFlags()
		}()
	})
}
