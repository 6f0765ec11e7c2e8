// internal/app/features/approvals/oppreview.go
package approvals

import (
	"context"
	"html/template"
	"net/http"

	uierrors "github.com/dalemusser/chapterhub/internal/app/features/errors"
	"github.com/dalemusser/chapterhub/internal/app/policy/opportunitypolicy"
	"github.com/dalemusser/chapterhub/internal/app/system/timeouts"
	"github.com/dalemusser/chapterhub/internal/app/system/viewdata"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"github.com/dalemusser/chapterhub/internal/domain/workflow"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type reviewRow struct {
	models.Opportunity
	DescriptionHTML template.HTML
	SubmitterName   string
}

type reviewData struct {
	viewdata.BaseVM
	Rows []reviewRow
}

// ServeOpportunityQueue renders the admin review queue for submitted
// opportunities, oldest first.
func (h *Handler) ServeOpportunityQueue(w http.ResponseWriter, r *http.Request) {
	if !opportunitypolicy.CanReview(r) {
		uierrors.RenderForbidden(w, r, "/dashboard")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	pending, err := h.Opportunities.ListPending(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load opportunity queue", err, "Could not load the queue.", "/dashboard")
		return
	}

	data := reviewData{
		BaseVM: viewdata.NewBaseVM(r, "Opportunity Review", "/approvals"),
	}
	data.Rows = make([]reviewRow, 0, len(pending))
	for _, o := range pending {
		row := reviewRow{
			Opportunity:     o,
			DescriptionHTML: template.HTML(o.Description),
		}
		if u, err := h.Users.GetByID(ctx, o.CreatedBy); err == nil {
			row.SubmitterName = u.FullName
		}
		data.Rows = append(data.Rows, row)
	}

	templates.Render(w, r, "opportunity_review", data)
}

// HandleOpportunityDecision approves or rejects a pending listing. Settled
// listings are left untouched.
func (h *Handler) HandleOpportunityDecision(w http.ResponseWriter, r *http.Request) {
	if !opportunitypolicy.CanReview(r) {
		uierrors.RenderForbidden(w, r, "/dashboard")
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderNotFound(w, r, "Opportunity not found.", "/approvals/opportunities")
		return
	}
	decision, ok := workflow.ParseDecision(r.FormValue("decision"))
	if !ok {
		h.ErrLog.LogBadRequest(w, r, "bad decision value", nil, "Unknown decision.", "/approvals/opportunities")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	_, changed, err := h.Opportunities.ApplyDecision(ctx, id, decision)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "apply opportunity decision", err, "Could not record the decision.", "/approvals/opportunities")
		return
	}

	h.Log.Info("opportunity decision applied",
		zap.String("opportunity_id", id.Hex()),
		zap.String("decision", string(decision)),
		zap.Bool("changed", changed))
	http.Redirect(w, r, "/approvals/opportunities", http.StatusSeeOther)
}
