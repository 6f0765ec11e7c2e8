// internal/app/features/events/routes.go
package events

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeCalendar)
	r.Get("/new", h.ServeNew)
	r.Post("/new", h.HandleNewPost)
	r.Post("/{id}/delete", h.HandleDelete)
	return r
}
