// internal/app/features/login/routes.go
package login

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeLogin)
	r.Post("/", h.HandleLoginPost)

	r.Get("/signup", h.ServeSignup)
	r.Post("/signup", h.HandleSignupPost)

	r.Get("/forgot", h.ServeForgot)
	r.Post("/forgot", h.HandleForgotPost)

	r.Get("/reset", h.ServeReset)
	r.Post("/reset", h.HandleResetPost)

	return r
}
