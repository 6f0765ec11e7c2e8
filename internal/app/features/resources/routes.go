// internal/app/features/resources/routes.go
package resources

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeLibrary)
	r.Get("/new", h.ServeUpload)
	r.Post("/new", h.HandleUploadPost)
	r.Post("/{id}/delete", h.HandleDelete)
	return r
}
