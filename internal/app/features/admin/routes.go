// internal/app/features/admin/routes.go
package admin

import (
	"github.com/auraclub/aurahub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the admin subrouter. Every route requires an
// authenticated admin session.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireRole("admin"))

	r.Get("/", h.ServeDashboard)
	r.Get("/counts/feed", h.ServeCountsFeed)

	r.Route("/events", func(r chi.Router) {
		r.Get("/", h.ServeEventList)
		r.Get("/new", h.ServeNewEvent)
		r.Post("/", h.HandleCreateEvent)
		r.Get("/{id}/edit", h.ServeEditEvent)
		r.Post("/{id}", h.HandleUpdateEvent)
		r.Post("/{id}/delete", h.HandleDeleteEvent)
	})

	r.Route("/applications", func(r chi.Router) {
		r.Get("/", h.ServeApplications)
		r.Get("/export", h.ExportApplicationsCSV)
		r.Post("/{id}/status", h.HandleApplicationStatus)
	})

	r.Route("/contacts", func(r chi.Router) {
		r.Get("/", h.ServeContacts)
		r.Get("/export", h.ExportContactsCSV)
		r.Post("/{id}/status", h.HandleContactStatus)
	})

	r.Route("/members", func(r chi.Router) {
		r.Get("/", h.ServeMembers)
		r.Get("/new", h.ServeNewMember)
		r.Post("/", h.HandleCreateMember)
		r.Post("/{id}/delete", h.HandleDeleteMember)
	})

	r.Post("/flags/live-responses", h.HandleToggleLiveResponses)

	return r
}
