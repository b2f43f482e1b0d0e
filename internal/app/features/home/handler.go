package home

import (
	"context"
	"net/http"

	eventstore "github.com/auraclub/aurahub/internal/app/store/events"
	memberstore "github.com/auraclub/aurahub/internal/app/store/members"
	"github.com/auraclub/aurahub/internal/app/system/timeouts"
	"github.com/auraclub/aurahub/internal/app/system/viewdata"
	"github.com/auraclub/aurahub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// Handler holds dependencies needed to serve the landing page.
type Handler struct {
	Events  *eventstore.Store
	Members *memberstore.Store
	Log     *zap.Logger
}

func NewHandler(events *eventstore.Store, members *memberstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Events:  events,
		Members: members,
		Log:     logger,
	}
}

type homeData struct {
	viewdata.BaseVM
	Upcoming []models.Event
	Team     []models.ClubMember
}

const maxHomeEvents = 3

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – landing                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	data := homeData{
		BaseVM: viewdata.NewBaseVM(r, "Welcome", "/"),
	}

	// The landing page degrades to empty sections on a database hiccup
	// rather than failing the whole request.
	if upcoming, err := h.Events.ListByStatus(ctx, models.StatusUpcoming); err != nil {
		h.Log.Warn("home: load upcoming events failed", zap.Error(err))
	} else {
		if len(upcoming) > maxHomeEvents {
			upcoming = upcoming[:maxHomeEvents]
		}
		data.Upcoming = upcoming
	}

	if team, err := h.Members.List(ctx); err != nil {
		h.Log.Warn("home: load members failed", zap.Error(err))
	} else {
		data.Team = team
	}

	templates.Render(w, r, "home", data)
}
