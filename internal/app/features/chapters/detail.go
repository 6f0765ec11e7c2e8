// internal/app/features/chapters/detail.go
package chapters

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/chapterhub/internal/app/features/errors"
	"github.com/dalemusser/chapterhub/internal/app/system/authz"
	"github.com/dalemusser/chapterhub/internal/app/system/timeouts"
	"github.com/dalemusser/chapterhub/internal/app/system/viewdata"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"github.com/dalemusser/chapterhub/internal/domain/workflow"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type chapterDetailData struct {
	viewdata.BaseVM
	Chapter   models.Chapter
	Members   []models.User
	CanManage bool
}

// ServeDetail renders one chapter with its roster of approved active members.
func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	_, _, _, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderNotFound(w, r, "Chapter not found.", "/chapters")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	ch, err := h.Chapters.GetByID(ctx, id)
	if err != nil {
		uierrors.RenderNotFound(w, r, "Chapter not found.", "/chapters")
		return
	}

	// Inactive chapters stay reachable only for staff.
	if ch.Status != models.ChapterActive && !authz.IsStaff(r) {
		uierrors.RenderNotFound(w, r, "Chapter not found.", "/chapters")
		return
	}

	roster, err := h.Users.Find(ctx, bson.M{
		"chapter_id":        ch.ID,
		"chapter_status":    string(workflow.ChapterLinkApproved),
		"membership_status": string(workflow.MembershipActive),
	}, options.Find().SetSort(bson.D{{Key: "full_name_ci", Value: 1}}))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load chapter roster", err, "Could not load the chapter.", "/chapters")
		return
	}

	data := chapterDetailData{
		BaseVM:    viewdata.NewBaseVM(r, ch.Name, "/chapters"),
		Chapter:   ch,
		Members:   roster,
		CanManage: authz.CanManageChapter(r, ch.ID),
	}
	templates.Render(w, r, "chapter", data)
}
