// internal/app/features/chapters/manage.go
package chapters

import (
	"context"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/chapterhub/internal/app/features/errors"
	chapterstore "github.com/dalemusser/chapterhub/internal/app/store/chapters"
	"github.com/dalemusser/chapterhub/internal/app/system/authz"
	"github.com/dalemusser/chapterhub/internal/app/system/timeouts"
	"github.com/dalemusser/chapterhub/internal/app/system/viewdata"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type chapterFormData struct {
	viewdata.BaseVM
	Error string

	IsNew    bool
	Action   string
	Chapter  models.Chapter
	Statuses []string
}

// ServeNew renders the create-chapter form. Admin only.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	if !authz.IsAdmin(r) {
		uierrors.RenderForbidden(w, r, "/chapters")
		return
	}
	data := chapterFormData{
		BaseVM:   viewdata.NewBaseVM(r, "New Chapter", "/chapters"),
		IsNew:    true,
		Action:   "/chapters/new",
		Chapter:  models.Chapter{Status: models.ChapterPending},
		Statuses: []string{models.ChapterActive, models.ChapterInactive, models.ChapterPending},
	}
	templates.Render(w, r, "chapter_form", data)
}

// HandleNewPost creates a chapter. Admin only.
func (h *Handler) HandleNewPost(w http.ResponseWriter, r *http.Request) {
	if !authz.IsAdmin(r) {
		uierrors.RenderForbidden(w, r, "/chapters")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/chapters")
		return
	}

	ch, errMsg := parseChapterForm(r)
	if errMsg == "" && ch.Name == "" {
		errMsg = "Chapter name is required."
	}
	if errMsg != "" {
		h.rerenderForm(w, r, true, "/chapters/new", ch, errMsg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := h.Chapters.Create(ctx, ch)
	if err == chapterstore.ErrDuplicateChapter {
		h.rerenderForm(w, r, true, "/chapters/new", ch, "A chapter with this name already exists.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create chapter", err, "Could not create the chapter.", "/chapters")
		return
	}

	h.Log.Info("chapter created", zap.String("chapter_id", created.ID.Hex()), zap.String("name", created.Name))
	http.Redirect(w, r, "/chapters/"+created.ID.Hex(), http.StatusSeeOther)
}

// ServeEdit renders the edit form. Admins edit any chapter; moderators only
// their own.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderNotFound(w, r, "Chapter not found.", "/chapters")
		return
	}
	if !authz.CanManageChapter(r, id) {
		uierrors.RenderForbidden(w, r, "/chapters")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	ch, err := h.Chapters.GetByID(ctx, id)
	if err != nil {
		uierrors.RenderNotFound(w, r, "Chapter not found.", "/chapters")
		return
	}

	data := chapterFormData{
		BaseVM:   viewdata.NewBaseVM(r, "Edit "+ch.Name, "/chapters/"+id.Hex()),
		Action:   "/chapters/" + id.Hex() + "/edit",
		Chapter:  ch,
		Statuses: []string{models.ChapterActive, models.ChapterInactive, models.ChapterPending},
	}
	templates.Render(w, r, "chapter_form", data)
}

// HandleEditPost saves chapter changes.
func (h *Handler) HandleEditPost(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderNotFound(w, r, "Chapter not found.", "/chapters")
		return
	}
	if !authz.CanManageChapter(r, id) {
		uierrors.RenderForbidden(w, r, "/chapters")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/chapters")
		return
	}

	ch, errMsg := parseChapterForm(r)
	if errMsg != "" {
		ch.ID = id
		h.rerenderForm(w, r, false, "/chapters/"+id.Hex()+"/edit", ch, errMsg)
		return
	}

	// Only admins change a chapter's status.
	if !authz.IsAdmin(r) {
		ch.Status = ""
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Chapters.Update(ctx, id, ch); err != nil {
		if err == chapterstore.ErrDuplicateChapter {
			ch.ID = id
			h.rerenderForm(w, r, false, "/chapters/"+id.Hex()+"/edit", ch, "A chapter with this name already exists.")
			return
		}
		h.ErrLog.LogServerError(w, r, "update chapter", err, "Could not save the chapter.", "/chapters")
		return
	}

	h.Log.Info("chapter updated", zap.String("chapter_id", id.Hex()))
	http.Redirect(w, r, "/chapters/"+id.Hex(), http.StatusSeeOther)
}

// HandleDelete removes a chapter. Admin only. Member references are left in
// place and render as unknown.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if !authz.IsAdmin(r) {
		uierrors.RenderForbidden(w, r, "/chapters")
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderNotFound(w, r, "Chapter not found.", "/chapters")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := h.Chapters.Delete(ctx, id); err != nil {
		h.ErrLog.LogServerError(w, r, "delete chapter", err, "Could not delete the chapter.", "/chapters")
		return
	}

	h.Log.Info("chapter deleted", zap.String("chapter_id", id.Hex()))
	http.Redirect(w, r, "/chapters", http.StatusSeeOther)
}

func parseChapterForm(r *http.Request) (models.Chapter, string) {
	ch := models.Chapter{
		Name:           strings.TrimSpace(r.FormValue("name")),
		Institution:    strings.TrimSpace(r.FormValue("institution")),
		Location:       strings.TrimSpace(r.FormValue("location")),
		FoundedDate:    strings.TrimSpace(r.FormValue("founded_date")),
		Status:         strings.TrimSpace(r.FormValue("status")),
		PresidentName:  strings.TrimSpace(r.FormValue("president_name")),
		PresidentEmail: strings.TrimSpace(r.FormValue("president_email")),
		Email:          strings.TrimSpace(r.FormValue("email")),
		LogoURL:        strings.TrimSpace(r.FormValue("logo_url")),
	}
	if ch.Status != "" && !models.ValidChapterStatus(ch.Status) {
		return ch, "Unknown chapter status."
	}
	return ch, ""
}

func (h *Handler) rerenderForm(w http.ResponseWriter, r *http.Request, isNew bool, action string, ch models.Chapter, errMsg string) {
	title := "Edit Chapter"
	back := "/chapters"
	if isNew {
		title = "New Chapter"
	} else if !ch.ID.IsZero() {
		back = "/chapters/" + ch.ID.Hex()
	}
	data := chapterFormData{
		BaseVM:   viewdata.NewBaseVM(r, title, back),
		Error:    errMsg,
		IsNew:    isNew,
		Action:   action,
		Chapter:  ch,
		Statuses: []string{models.ChapterActive, models.ChapterInactive, models.ChapterPending},
	}
	templates.Render(w, r, "chapter_form", data)
}
