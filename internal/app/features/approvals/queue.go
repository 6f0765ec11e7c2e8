// internal/app/features/approvals/queue.go
package approvals

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/chapterhub/internal/app/features/errors"
	"github.com/dalemusser/chapterhub/internal/app/policy/memberpolicy"
	"github.com/dalemusser/chapterhub/internal/app/system/timeouts"
	"github.com/dalemusser/chapterhub/internal/app/system/viewdata"
	"github.com/dalemusser/chapterhub/internal/domain/workflow"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// queueRow is one pending record in the approvals queue. A single row can
// carry both a pending membership and a pending chapter request; one decision
// settles whichever parts are pending.
type queueRow struct {
	ID                primitive.ObjectID
	FullName          string
	Email             string
	ChapterName       string
	MembershipPending bool
	ChapterPending    bool
}

type queueData struct {
	viewdata.BaseVM
	IsAdmin bool
	Rows    []queueRow
}

// ServeQueue renders the pending member queue: admins see everything,
// moderators only their own chapter's requests.
func (h *Handler) ServeQueue(w http.ResponseWriter, r *http.Request) {
	scope := memberpolicy.ApprovalScope(r)
	if !scope.CanList {
		uierrors.RenderForbidden(w, r, "/dashboard")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	pending, err := h.Users.PendingApprovals(ctx, scope.ChapterID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load approval queue", err, "Could not load the queue.", "/dashboard")
		return
	}

	chapterIDs := make([]primitive.ObjectID, 0, len(pending))
	for _, u := range pending {
		if u.ChapterID != nil {
			chapterIDs = append(chapterIDs, *u.ChapterID)
		}
	}
	chapterNames, err := h.Chapters.NameMap(ctx, chapterIDs)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load chapter names", err, "Could not load the queue.", "/dashboard")
		return
	}

	data := queueData{
		BaseVM:  viewdata.NewBaseVM(r, "Approvals", "/dashboard"),
		IsAdmin: scope.ChapterID == nil,
	}
	data.Rows = make([]queueRow, 0, len(pending))
	for _, u := range pending {
		row := queueRow{
			ID:                u.ID,
			FullName:          u.FullName,
			Email:             u.Email,
			MembershipPending: workflow.MembershipState(u.MembershipStatus).Pending(),
			ChapterPending:    workflow.ChapterLinkState(u.ChapterStatus).Pending(),
		}
		if u.ChapterID != nil {
			row.ChapterName = chapterNames[*u.ChapterID]
		}
		data.Rows = append(data.Rows, row)
	}

	templates.Render(w, r, "approvals", data)
}

// HandleDecision applies an approve or reject to a pending member. Deciding
// an already settled record is a harmless no-op.
func (h *Handler) HandleDecision(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderNotFound(w, r, "Member not found.", "/approvals")
		return
	}
	decision, ok := workflow.ParseDecision(r.FormValue("decision"))
	if !ok {
		h.ErrLog.LogBadRequest(w, r, "bad decision value", nil, "Unknown decision.", "/approvals")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		uierrors.RenderNotFound(w, r, "Member not found.", "/approvals")
		return
	}
	if !memberpolicy.CanDecide(r, u.ChapterID) {
		uierrors.RenderForbidden(w, r, "/approvals")
		return
	}

	_, changed, err := h.Users.ApplyDecision(ctx, id, decision)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "apply decision", err, "Could not record the decision.", "/approvals")
		return
	}

	h.Log.Info("member decision applied",
		zap.String("member_id", id.Hex()),
		zap.String("decision", string(decision)),
		zap.Bool("changed", changed))
	http.Redirect(w, r, "/approvals", http.StatusSeeOther)
}
