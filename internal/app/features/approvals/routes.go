// internal/app/features/approvals/routes.go
package approvals

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeQueue)
	r.Post("/{id}/decide", h.HandleDecision)
	r.Get("/members/{id}/edit", h.ServeMemberEdit)
	r.Post("/members/{id}/edit", h.HandleMemberEditPost)
	r.Get("/opportunities", h.ServeOpportunityQueue)
	r.Post("/opportunities/{id}/decide", h.HandleOpportunityDecision)
	return r
}
