// internal/app/features/events/handler.go
package events

import (
	"context"
	"html/template"
	"net/http"
	"net/url"

	eventstore "github.com/auraclub/aurahub/internal/app/store/events"
	"github.com/auraclub/aurahub/internal/app/system/htmlsanitize"
	"github.com/auraclub/aurahub/internal/app/system/timeouts"
	"github.com/auraclub/aurahub/internal/app/system/viewdata"
	"github.com/auraclub/aurahub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler serves the public events pages and the like endpoint.
type Handler struct {
	Store *eventstore.Store
	Log   *zap.Logger
}

func NewHandler(store *eventstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Log: logger}
}

type eventVM struct {
	models.Event
	DescriptionHTML template.HTML
	CSRFToken       string
}

type listData struct {
	viewdata.BaseVM
	Upcoming  []eventVM
	Live      []eventVM
	Completed []eventVM
}

// ServeList renders all events grouped by status, newest first within
// each group.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	all, err := h.Store.List(ctx)
	if err != nil {
		h.Log.Error("list events failed", zap.Error(err))
		http.Error(w, "could not load events", http.StatusInternalServerError)
		return
	}

	data := listData{BaseVM: viewdata.NewBaseVM(r, "Events", "/")}
	for _, ev := range all {
		vm := eventVM{
			Event:           ev,
			DescriptionHTML: htmlsanitize.PrepareForDisplay(ev.Description),
			CSRFToken:       data.CSRFToken,
		}
		switch ev.Status {
		case models.StatusLive:
			data.Live = append(data.Live, vm)
		case models.StatusCompleted:
			data.Completed = append(data.Completed, vm)
		default:
			data.Upcoming = append(data.Upcoming, vm)
		}
	}

	templates.Render(w, r, "events_list", data)
}

type detailData struct {
	viewdata.BaseVM
	Event           models.Event
	DescriptionHTML template.HTML
	AgendaHTML      template.HTML
	DetailsHTML     template.HTML
}

// ServeDetail renders a single event page.
func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	ev, err := h.Store.GetByID(ctx, id)
	if err == eventstore.ErrNotFound {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.Log.Error("load event failed", zap.String("event_id", id.Hex()), zap.Error(err))
		http.Error(w, "could not load event", http.StatusInternalServerError)
		return
	}

	data := detailData{
		BaseVM:          viewdata.NewBaseVM(r, ev.Title, "/events"),
		Event:           ev,
		DescriptionHTML: htmlsanitize.PrepareForDisplay(ev.Description),
		AgendaHTML:      htmlsanitize.PrepareForDisplay(ev.Agenda),
		DetailsHTML:     htmlsanitize.PrepareForDisplay(ev.Details),
	}
	templates.Render(w, r, "events_detail", data)
}

// Like increments the likes counter and bounces back to the referring
// page. POST /events/{id}/like
func (h *Handler) Like(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.Store.IncrementLikes(ctx, id); err != nil {
		if err == eventstore.ErrNotFound {
			http.NotFound(w, r)
			return
		}
		h.Log.Error("like event failed", zap.String("event_id", id.Hex()), zap.Error(err))
		http.Error(w, "could not record like", http.StatusInternalServerError)
		return
	}

	dest := "/events"
	if ref := r.Referer(); ref != "" {
		if u, err := url.Parse(ref); err == nil && u.Path != "" {
			dest = u.Path
		}
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}
