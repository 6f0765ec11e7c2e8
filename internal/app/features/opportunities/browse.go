// internal/app/features/opportunities/browse.go
package opportunities

import (
	"context"
	"html/template"
	"net/http"

	uierrors "github.com/dalemusser/chapterhub/internal/app/features/errors"
	"github.com/dalemusser/chapterhub/internal/app/policy/opportunitypolicy"
	"github.com/dalemusser/chapterhub/internal/app/system/auth"
	"github.com/dalemusser/chapterhub/internal/app/system/timeouts"
	"github.com/dalemusser/chapterhub/internal/app/system/viewdata"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"github.com/dalemusser/chapterhub/internal/domain/workflow"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type opportunityRow struct {
	models.Opportunity
	// DescriptionHTML is the stored description, already sanitized on write.
	DescriptionHTML template.HTML
	CanDelete       bool
}

type submissionRow struct {
	models.Opportunity
	StatusLabel string
}

type browseData struct {
	viewdata.BaseVM
	Rows        []opportunityRow
	Submissions []submissionRow
	CanSubmit   bool
}

// ServeBrowse renders the opportunities board: approved listings plus legacy
// records that predate the review workflow.
func (h *Handler) ServeBrowse(w http.ResponseWriter, r *http.Request) {
	if !opportunitypolicy.CanBrowse(r) {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	rows, err := h.Opportunities.Browse(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "browse opportunities", err, "Could not load opportunities.", "/dashboard")
		return
	}

	data := browseData{
		BaseVM:    viewdata.NewBaseVM(r, "Opportunities", "/dashboard"),
		CanSubmit: opportunitypolicy.CanSubmit(r),
	}
	data.Rows = make([]opportunityRow, 0, len(rows))
	for _, o := range rows {
		data.Rows = append(data.Rows, opportunityRow{
			Opportunity:     o,
			DescriptionHTML: template.HTML(o.Description),
			CanDelete:       opportunitypolicy.CanDelete(r, o.CreatedBy),
		})
	}

	// Submitters also see their own listings still in (or rejected by)
	// review, which never appear on the public board.
	if u, ok := auth.CurrentUser(r); ok && u != nil {
		if uid, err := primitive.ObjectIDFromHex(u.ID); err == nil {
			own, err := h.Opportunities.ListByCreator(ctx, uid)
			if err != nil {
				h.ErrLog.LogServerError(w, r, "list own opportunity submissions", err, "Could not load opportunities.", "/dashboard")
				return
			}
			for _, o := range own {
				status := workflow.OpportunityStatus(o.Status)
				if workflow.OpportunityVisible(status) {
					continue
				}
				label := "Awaiting review"
				if status == workflow.OpportunityRejected {
					label = "Not approved"
				}
				data.Submissions = append(data.Submissions, submissionRow{Opportunity: o, StatusLabel: label})
			}
		}
	}

	templates.Render(w, r, "opportunities", data)
}
