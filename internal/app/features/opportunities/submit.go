// internal/app/features/opportunities/submit.go
package opportunities

import (
	"context"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/chapterhub/internal/app/features/errors"
	"github.com/dalemusser/chapterhub/internal/app/policy/opportunitypolicy"
	"github.com/dalemusser/chapterhub/internal/app/system/authz"
	"github.com/dalemusser/chapterhub/internal/app/system/timeouts"
	"github.com/dalemusser/chapterhub/internal/app/system/viewdata"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type submitFormData struct {
	viewdata.BaseVM
	Error string

	Opportunity models.Opportunity
	Types       []string
	TagOptions  []string
}

// ServeSubmit renders the submission form.
func (h *Handler) ServeSubmit(w http.ResponseWriter, r *http.Request) {
	if !opportunitypolicy.CanSubmit(r) {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	data, err := h.newSubmitData(ctx, r)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load submit form", err, "Could not load the form.", "/opportunities")
		return
	}
	templates.Render(w, r, "opportunity_form", data)
}

// HandleSubmitPost accepts a new listing. It always enters the review queue
// as pending regardless of who submits it.
func (h *Handler) HandleSubmitPost(w http.ResponseWriter, r *http.Request) {
	if !opportunitypolicy.CanSubmit(r) {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/opportunities")
		return
	}

	_, _, userID, _ := authz.UserCtx(r)

	o := models.Opportunity{
		Title:        strings.TrimSpace(r.FormValue("title")),
		Organization: strings.TrimSpace(r.FormValue("organization")),
		Type:         strings.TrimSpace(r.FormValue("type")),
		Location:     strings.TrimSpace(r.FormValue("location")),
		Deadline:     strings.TrimSpace(r.FormValue("deadline")),
		Description:  r.FormValue("description"),
		Link:         strings.TrimSpace(r.FormValue("link")),
		Tags:         cleanTags(r.Form["tags"]),
		CreatedBy:    userID,
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if o.Title == "" || !models.ValidOpportunityType(o.Type) {
		h.rerenderSubmit(ctx, w, r, o, "Title and a valid type are required.")
		return
	}

	created, err := h.Opportunities.Create(ctx, o)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create opportunity", err, "Could not submit the opportunity.", "/opportunities")
		return
	}

	h.Log.Info("opportunity submitted",
		zap.String("opportunity_id", created.ID.Hex()),
		zap.String("submitted_by", userID.Hex()))
	http.Redirect(w, r, "/opportunities?submitted=1", http.StatusSeeOther)
}

// HandleDelete removes a listing. Admins delete anything, members only their
// own submissions.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderNotFound(w, r, "Opportunity not found.", "/opportunities")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	o, err := h.Opportunities.GetByID(ctx, id)
	if err != nil {
		uierrors.RenderNotFound(w, r, "Opportunity not found.", "/opportunities")
		return
	}
	if !opportunitypolicy.CanDelete(r, o.CreatedBy) {
		uierrors.RenderForbidden(w, r, "/opportunities")
		return
	}

	if _, err := h.Opportunities.Delete(ctx, id); err != nil {
		h.ErrLog.LogServerError(w, r, "delete opportunity", err, "Could not delete the opportunity.", "/opportunities")
		return
	}

	h.Log.Info("opportunity deleted", zap.String("opportunity_id", id.Hex()))
	http.Redirect(w, r, "/opportunities", http.StatusSeeOther)
}

func (h *Handler) newSubmitData(ctx context.Context, r *http.Request) (submitFormData, error) {
	data := submitFormData{
		BaseVM: viewdata.NewBaseVM(r, "Submit an Opportunity", "/opportunities"),
		Types:  models.OpportunityTypes,
	}
	tags, err := h.Metadata.Get(ctx, models.VocabularyTags)
	if err != nil {
		return data, err
	}
	data.TagOptions = tags.Values
	return data, nil
}

func (h *Handler) rerenderSubmit(ctx context.Context, w http.ResponseWriter, r *http.Request, o models.Opportunity, errMsg string) {
	data, err := h.newSubmitData(ctx, r)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load submit form", err, "Could not load the form.", "/opportunities")
		return
	}
	data.Error = errMsg
	data.Opportunity = o
	templates.Render(w, r, "opportunity_form", data)
}

func cleanTags(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
