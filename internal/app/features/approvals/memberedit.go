// internal/app/features/approvals/memberedit.go
package approvals

import (
	"context"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/chapterhub/internal/app/features/errors"
	"github.com/dalemusser/chapterhub/internal/app/policy/memberpolicy"
	userstore "github.com/dalemusser/chapterhub/internal/app/store/users"
	"github.com/dalemusser/chapterhub/internal/app/system/timeouts"
	"github.com/dalemusser/chapterhub/internal/app/system/viewdata"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"github.com/dalemusser/chapterhub/internal/domain/workflow"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type memberEditData struct {
	viewdata.BaseVM
	Error string

	User            models.User
	ChapterName     string
	Chapters        []models.Chapter
	Roles           []string
	MembershipTypes []string
	Statuses        []workflow.MembershipState
	LinkStates      []workflow.ChapterLinkState
}

var (
	editableRoles    = []string{"member", "moderator", "admin"}
	editableStatuses = []workflow.MembershipState{
		workflow.MembershipPending,
		workflow.MembershipActive,
		workflow.MembershipInactive,
		workflow.MembershipInvalid,
		workflow.MembershipRejected,
	}
	editableLinkStates = []workflow.ChapterLinkState{
		workflow.ChapterLinkNone,
		workflow.ChapterLinkPending,
		workflow.ChapterLinkApproved,
		workflow.ChapterLinkRejected,
	}
)

// ServeMemberEdit renders the admin member edit form. This is the only flow
// that can set lifecycle states directly, including resurrecting a rejected
// record.
func (h *Handler) ServeMemberEdit(w http.ResponseWriter, r *http.Request) {
	if !memberpolicy.CanEditMember(r) {
		uierrors.RenderForbidden(w, r, "/approvals")
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderNotFound(w, r, "Member not found.", "/approvals")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		uierrors.RenderNotFound(w, r, "Member not found.", "/approvals")
		return
	}

	data, err := h.newMemberEditData(ctx, r, *u)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load member edit form", err, "Could not load the form.", "/approvals")
		return
	}
	templates.Render(w, r, "member_edit", data)
}

// HandleMemberEditPost applies the admin update.
func (h *Handler) HandleMemberEditPost(w http.ResponseWriter, r *http.Request) {
	if !memberpolicy.CanEditMember(r) {
		uierrors.RenderForbidden(w, r, "/approvals")
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderNotFound(w, r, "Member not found.", "/approvals")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/approvals")
		return
	}

	upd := userstore.AdminUpdate{
		Role:             strings.TrimSpace(r.FormValue("role")),
		MembershipType:   strings.TrimSpace(r.FormValue("membership_type")),
		MembershipStatus: workflow.MembershipState(r.FormValue("membership_status")),
		ChapterStatus:    workflow.ChapterLinkState(r.FormValue("chapter_status")),
	}
	if chHex := strings.TrimSpace(r.FormValue("chapter_id")); chHex != "" {
		oid, err := primitive.ObjectIDFromHex(chHex)
		if err != nil {
			h.ErrLog.LogBadRequest(w, r, "bad chapter id", err, "Unknown chapter.", "/approvals")
			return
		}
		upd.ChapterID = &oid
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Users.ApplyAdminUpdate(ctx, id, upd); err != nil {
		h.ErrLog.LogBadRequest(w, r, "apply admin update", err, "Could not save the member.", "/approvals")
		return
	}

	h.Log.Info("member updated by admin",
		zap.String("member_id", id.Hex()),
		zap.String("role", upd.Role),
		zap.String("membership_status", string(upd.MembershipStatus)))
	http.Redirect(w, r, "/profile/"+id.Hex(), http.StatusSeeOther)
}

func (h *Handler) newMemberEditData(ctx context.Context, r *http.Request, u models.User) (memberEditData, error) {
	data := memberEditData{
		BaseVM:          viewdata.NewBaseVM(r, "Edit "+u.FullName, "/approvals"),
		User:            u,
		Roles:           editableRoles,
		MembershipTypes: models.MembershipTypes,
		Statuses:        editableStatuses,
		LinkStates:      editableLinkStates,
	}
	chapters, err := h.Chapters.ListAll(ctx)
	if err != nil {
		return data, err
	}
	data.Chapters = chapters
	if u.ChapterID != nil {
		if ch, err := h.Chapters.GetByID(ctx, *u.ChapterID); err == nil {
			data.ChapterName = ch.Name
		}
	}
	return data, nil
}
