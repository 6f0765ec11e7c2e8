// internal/app/features/metadata/routes.go
package metadata

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeEditor)
	r.Post("/save", h.HandleSavePost)
	return r
}
