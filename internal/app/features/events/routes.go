// internal/app/features/events/routes.go
package events

import "github.com/go-chi/chi/v5"

func Routes(h *Handler, feed *FeedHandler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Get("/feed", feed.Serve)
	r.Get("/{id}", h.ServeDetail)
	r.Post("/{id}/like", h.Like)
	return r
}
