// internal/app/features/admin/events.go
package admin

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	eventstore "github.com/auraclub/aurahub/internal/app/store/events"
	"github.com/auraclub/aurahub/internal/app/system/formutil"
	"github.com/auraclub/aurahub/internal/app/system/uploader"
	"github.com/auraclub/aurahub/internal/app/system/timeouts"
	"github.com/auraclub/aurahub/internal/app/system/viewdata"
	"github.com/auraclub/aurahub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// maxEventForm bounds the multipart form size: uploader.MaxFileSize for
// the image plus headroom for the text fields.
const maxEventForm = uploader.MaxFileSize + 1<<20

const dateInputLayout = "2006-01-02T15:04"

type eventListData struct {
	viewdata.BaseVM
	Events []models.Event
}

type eventFormData struct {
	formutil.Base
	IsNew bool
	ID    string

	EventTitle       string
	Description      string
	Date             string
	Location         string
	Status           string
	ImageURL         string
	Agenda           string
	Details          string
	Rules            string
	Coordinators     string
	RegistrationLink string
}

// ServeEventList renders the manage-events table.
// GET /admin/events
func (h *Handler) ServeEventList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	events, err := h.Events.List(ctx)
	if err != nil {
		h.Log.Error("admin: list events failed", zap.Error(err))
		http.Error(w, "could not load events", http.StatusInternalServerError)
		return
	}
	templates.Render(w, r, "admin_events", eventListData{
		BaseVM: viewdata.NewBaseVM(r, "Manage Events", "/admin"),
		Events: events,
	})
}

// ServeNewEvent renders an empty event form.
// GET /admin/events/new
func (h *Handler) ServeNewEvent(w http.ResponseWriter, r *http.Request) {
	data := eventFormData{IsNew: true, Status: models.StatusUpcoming}
	formutil.SetBase(&data.Base, r, "Add Event", "/admin/events")
	templates.Render(w, r, "admin_event_form", data)
}

// HandleCreateEvent processes the add-event form, uploading the image
// first when one was attached.
// POST /admin/events
func (h *Handler) HandleCreateEvent(w http.ResponseWriter, r *http.Request) {
	form, ok := h.parseEventForm(w, r, true, "")
	if !ok {
		return
	}

	ev, err := eventFromForm(form)
	if err != nil {
		h.reRenderEventForm(w, r, form, "The date could not be parsed.")
		return
	}

	// Deadline starts after the (possibly slow) image upload.
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	if _, err := h.Events.Create(ctx, ev); err != nil {
		h.Log.Error("admin: create event failed", zap.Error(err))
		h.reRenderEventForm(w, r, form, "Something went wrong saving the event.")
		return
	}
	http.Redirect(w, r, "/admin/events", http.StatusSeeOther)
}

// ServeEditEvent renders the form pre-filled with an existing event.
// GET /admin/events/{id}/edit
func (h *Handler) ServeEditEvent(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	ev, err := h.Events.GetByID(ctx, id)
	if errors.Is(err, eventstore.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.Log.Error("admin: load event failed", zap.String("event_id", id.Hex()), zap.Error(err))
		http.Error(w, "could not load event", http.StatusInternalServerError)
		return
	}

	data := eventFormData{
		ID:               ev.ID.Hex(),
		EventTitle:       ev.Title,
		Description:      ev.Description,
		Location:         ev.Location,
		Status:           ev.Status,
		ImageURL:         ev.ImageURL,
		Agenda:           ev.Agenda,
		Details:          ev.Details,
		Rules:            strings.Join(ev.Rules, "\n"),
		Coordinators:     strings.Join(ev.Coordinators, "\n"),
		RegistrationLink: ev.RegistrationLink,
	}
	if !ev.Date.IsZero() {
		data.Date = ev.Date.Format(dateInputLayout)
	}
	formutil.SetBase(&data.Base, r, "Edit Event", "/admin/events")
	templates.Render(w, r, "admin_event_form", data)
}

// HandleUpdateEvent processes the edit-event form.
// POST /admin/events/{id}
func (h *Handler) HandleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	form, ok := h.parseEventForm(w, r, false, id.Hex())
	if !ok {
		return
	}

	ev, err := eventFromForm(form)
	if err != nil {
		h.reRenderEventForm(w, r, form, "The date could not be parsed.")
		return
	}

	// Deadline starts after the (possibly slow) image upload.
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	fields := bson.M{
		"title":             ev.Title,
		"description":       ev.Description,
		"location":          ev.Location,
		"status":            ev.Status,
		"agenda":            ev.Agenda,
		"details":           ev.Details,
		"rules":             ev.Rules,
		"coordinators":      ev.Coordinators,
		"registration_link": ev.RegistrationLink,
	}
	// A cleared date keeps the stored one, and the stored image is only
	// overwritten when a new one was uploaded.
	if !ev.Date.IsZero() {
		fields["date"] = ev.Date
	}
	if ev.ImageURL != "" {
		fields["image_url"] = ev.ImageURL
	}

	err = h.Events.Update(ctx, id, fields)
	if errors.Is(err, eventstore.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.Log.Error("admin: update event failed", zap.String("event_id", id.Hex()), zap.Error(err))
		h.reRenderEventForm(w, r, form, "Something went wrong saving the event.")
		return
	}
	http.Redirect(w, r, "/admin/events", http.StatusSeeOther)
}

// HandleDeleteEvent removes an event.
// POST /admin/events/{id}/delete
func (h *Handler) HandleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := h.Events.Delete(ctx, id); err != nil && !errors.Is(err, eventstore.ErrNotFound) {
		h.Log.Error("admin: delete event failed", zap.String("event_id", id.Hex()), zap.Error(err))
		http.Error(w, "could not delete event", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/admin/events", http.StatusSeeOther)
}

// parseEventForm reads the multipart form into an eventFormData, including
// the uploaded image when present. Returns ok=false after it has already
// written a response.
func (h *Handler) parseEventForm(w http.ResponseWriter, r *http.Request, isNew bool, id string) (eventFormData, bool) {
	if err := r.ParseMultipartForm(maxEventForm); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return eventFormData{}, false
	}

	form := eventFormData{
		IsNew:            isNew,
		ID:               id,
		EventTitle:       strings.TrimSpace(r.FormValue("title")),
		Description:      strings.TrimSpace(r.FormValue("description")),
		Date:             strings.TrimSpace(r.FormValue("date")),
		Location:         strings.TrimSpace(r.FormValue("location")),
		Status:           strings.TrimSpace(r.FormValue("status")),
		Agenda:           strings.TrimSpace(r.FormValue("agenda")),
		Details:          strings.TrimSpace(r.FormValue("details")),
		Rules:            r.FormValue("rules"),
		Coordinators:     r.FormValue("coordinators"),
		RegistrationLink: strings.TrimSpace(r.FormValue("registration_link")),
	}

	if form.EventTitle == "" {
		h.reRenderEventForm(w, r, form, "Title is required.")
		return form, false
	}
	if form.Status != "" && !models.ValidEventStatus(form.Status) {
		h.reRenderEventForm(w, r, form, "Unknown event status.")
		return form, false
	}

	file, header, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return form, true
	}
	if err != nil {
		h.reRenderEventForm(w, r, form, "The image could not be read.")
		return form, false
	}
	defer file.Close()

	if h.Uploader == nil {
		h.reRenderEventForm(w, r, form, "Image uploads are not configured on this server.")
		return form, false
	}

	data, err := io.ReadAll(io.LimitReader(file, uploader.MaxFileSize+1))
	if err != nil {
		h.reRenderEventForm(w, r, form, "The image could not be read.")
		return form, false
	}

	url, err := h.Uploader.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), data, nil)
	switch {
	case errors.Is(err, uploader.ErrNotImage):
		h.reRenderEventForm(w, r, form, "The uploaded file is not an image.")
		return form, false
	case errors.Is(err, uploader.ErrTooLarge):
		h.reRenderEventForm(w, r, form, "The image exceeds the 10 MiB limit.")
		return form, false
	case err != nil:
		h.Log.Error("admin: image upload failed", zap.String("filename", header.Filename), zap.Error(err))
		h.reRenderEventForm(w, r, form, "The image upload failed. Please try again.")
		return form, false
	}

	form.ImageURL = url
	return form, true
}

// eventFromForm converts the parsed form into an Event. A bad date is
// the only way it can fail.
func eventFromForm(form eventFormData) (models.Event, error) {
	ev := models.Event{
		Title:            form.EventTitle,
		Description:      form.Description,
		Location:         form.Location,
		Status:           form.Status,
		ImageURL:         form.ImageURL,
		Agenda:           form.Agenda,
		Details:          form.Details,
		Rules:            splitLines(form.Rules),
		Coordinators:     splitLines(form.Coordinators),
		RegistrationLink: form.RegistrationLink,
	}
	if form.Date != "" {
		parsed, err := time.ParseInLocation(dateInputLayout, form.Date, time.Local)
		if err != nil {
			return ev, err
		}
		ev.Date = parsed.UTC()
	}
	return ev, nil
}

func (h *Handler) reRenderEventForm(w http.ResponseWriter, r *http.Request, form eventFormData, msg string) {
	title := "Edit Event"
	if form.IsNew {
		title = "Add Event"
	}
	formutil.SetBase(&form.Base, r, title, "/admin/events")
	form.SetError(msg)
	templates.Render(w, r, "admin_event_form", form)
}

// splitLines turns the textarea form of a list field into a trimmed,
// empty-filtered slice.
func splitLines(s string) []string {
	out := []string{}
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
