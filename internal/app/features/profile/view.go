// internal/app/features/profile/view.go
package profile

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/chapterhub/internal/app/features/errors"
	"github.com/dalemusser/chapterhub/internal/app/policy/memberpolicy"
	"github.com/dalemusser/chapterhub/internal/app/system/authz"
	"github.com/dalemusser/chapterhub/internal/app/system/timeouts"
	"github.com/dalemusser/chapterhub/internal/app/system/viewdata"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type profileData struct {
	viewdata.BaseVM

	User        models.User
	ChapterName string
	IsOwn       bool
	CanEdit     bool // admin edit link on other members' profiles
}

// ServeOwn renders the signed-in user's profile.
func (h *Handler) ServeOwn(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}
	h.renderProfile(w, r, uid)
}

// ServeMember renders another member's profile, subject to visibility rules:
// members may only see active members, staff may see anyone.
func (h *Handler) ServeMember(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderNotFound(w, r, "Member not found.", "/members")
		return
	}
	h.renderProfile(w, r, id)
}

func (h *Handler) renderProfile(w http.ResponseWriter, r *http.Request, id primitive.ObjectID) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		uierrors.RenderNotFound(w, r, "Member not found.", "/members")
		return
	}

	if !memberpolicy.CanViewProfile(r, u.ID, u.MembershipStatus) {
		uierrors.RenderForbidden(w, r, "/members")
		return
	}

	_, _, viewerID, _ := authz.UserCtx(r)

	data := profileData{
		BaseVM:  viewdata.NewBaseVM(r, u.FullName, "/members"),
		User:    *u,
		IsOwn:   viewerID == u.ID,
		CanEdit: memberpolicy.CanEditMember(r),
	}
	if u.ChapterID != nil {
		ch, err := h.Chapters.GetByID(ctx, *u.ChapterID)
		if err == nil {
			data.ChapterName = ch.Name
		}
	}

	templates.Render(w, r, "profile", data)
}
