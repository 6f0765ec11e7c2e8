// internal/app/features/opportunities/routes.go
package opportunities

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeBrowse)
	r.Get("/new", h.ServeSubmit)
	r.Post("/new", h.HandleSubmitPost)
	r.Post("/{id}/delete", h.HandleDelete)
	return r
}
