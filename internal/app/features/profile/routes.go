// internal/app/features/profile/routes.go
package profile

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeOwn)
	r.Get("/setup", h.ServeSetup)
	r.Post("/setup", h.HandleSetupPost)
	r.Get("/edit", h.ServeEdit)
	r.Post("/edit", h.HandleEditPost)
	r.Get("/{id}", h.ServeMember)
	return r
}
