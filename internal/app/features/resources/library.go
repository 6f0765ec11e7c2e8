// internal/app/features/resources/library.go
package resources

import (
	"context"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/chapterhub/internal/app/features/errors"
	"github.com/dalemusser/chapterhub/internal/app/policy/resourcepolicy"
	"github.com/dalemusser/chapterhub/internal/app/system/authz"
	"github.com/dalemusser/chapterhub/internal/app/system/timeouts"
	"github.com/dalemusser/chapterhub/internal/app/system/viewdata"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type resourceRow struct {
	models.Resource
	CanDelete bool
}

type libraryData struct {
	viewdata.BaseVM
	CanUpload bool

	Categories []string
	Active     string // selected category filter, empty for all
	Rows       []resourceRow
}

// ServeLibrary renders the resource library. The visible category list is
// role dependent and enforced in the store query.
func (h *Handler) ServeLibrary(w http.ResponseWriter, r *http.Request) {
	_, _, _, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	visible := resourcepolicy.VisibleCategories(r)

	active := query.Get(r, "category")
	wanted := visible
	if active != "" {
		if !resourcepolicy.CanSeeCategory(r, active) {
			uierrors.RenderForbidden(w, r, "/resources")
			return
		}
		wanted = []string{active}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	rows, err := h.Resources.List(ctx, wanted)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list resources", err, "Could not load the library.", "/dashboard")
		return
	}

	data := libraryData{
		BaseVM:     viewdata.NewBaseVM(r, "Resource Library", "/dashboard"),
		CanUpload:  resourcepolicy.CanUpload(r),
		Categories: visible,
		Active:     active,
	}
	data.Rows = make([]resourceRow, 0, len(rows))
	for _, res := range rows {
		data.Rows = append(data.Rows, resourceRow{
			Resource:  res,
			CanDelete: resourcepolicy.CanDelete(r, res.UploadedBy),
		})
	}

	templates.Render(w, r, "resources", data)
}

type uploadFormData struct {
	viewdata.BaseVM
	Error string

	Resource   models.Resource
	Categories []string
	Types      []string
}

// ServeUpload renders the staff upload form.
func (h *Handler) ServeUpload(w http.ResponseWriter, r *http.Request) {
	if !resourcepolicy.CanUpload(r) {
		uierrors.RenderForbidden(w, r, "/resources")
		return
	}
	data := uploadFormData{
		BaseVM:     viewdata.NewBaseVM(r, "Add a Resource", "/resources"),
		Categories: models.ResourceCategories,
		Types:      models.ResourceTypes,
	}
	templates.Render(w, r, "resource_form", data)
}

// HandleUploadPost stores a new library item.
func (h *Handler) HandleUploadPost(w http.ResponseWriter, r *http.Request) {
	if !resourcepolicy.CanUpload(r) {
		uierrors.RenderForbidden(w, r, "/resources")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/resources")
		return
	}

	_, _, userID, _ := authz.UserCtx(r)

	res := models.Resource{
		Title:      strings.TrimSpace(r.FormValue("title")),
		Category:   strings.TrimSpace(r.FormValue("category")),
		Type:       strings.TrimSpace(r.FormValue("type")),
		URL:        strings.TrimSpace(r.FormValue("url")),
		Size:       strings.TrimSpace(r.FormValue("size")),
		UploadedBy: userID,
	}
	for _, tag := range strings.Split(r.FormValue("tags"), ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			res.Tags = append(res.Tags, tag)
		}
	}

	if res.Title == "" || res.URL == "" || !models.ValidResourceCategory(res.Category) || !models.ValidResourceType(res.Type) {
		data := uploadFormData{
			BaseVM:     viewdata.NewBaseVM(r, "Add a Resource", "/resources"),
			Error:      "Title, URL, a valid category, and a valid type are required.",
			Resource:   res,
			Categories: models.ResourceCategories,
			Types:      models.ResourceTypes,
		}
		templates.Render(w, r, "resource_form", data)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := h.Resources.Create(ctx, res)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create resource", err, "Could not save the resource.", "/resources")
		return
	}

	h.Log.Info("resource added",
		zap.String("resource_id", created.ID.Hex()),
		zap.String("category", created.Category))
	http.Redirect(w, r, "/resources", http.StatusSeeOther)
}

// HandleDelete removes a library item. Staff delete anything, uploaders
// their own items.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderNotFound(w, r, "Resource not found.", "/resources")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	res, err := h.Resources.GetByID(ctx, id)
	if err != nil {
		uierrors.RenderNotFound(w, r, "Resource not found.", "/resources")
		return
	}
	if !resourcepolicy.CanDelete(r, res.UploadedBy) {
		uierrors.RenderForbidden(w, r, "/resources")
		return
	}

	if _, err := h.Resources.Delete(ctx, id); err != nil {
		h.ErrLog.LogServerError(w, r, "delete resource", err, "Could not delete the resource.", "/resources")
		return
	}

	h.Log.Info("resource deleted", zap.String("resource_id", id.Hex()))
	http.Redirect(w, r, "/resources", http.StatusSeeOther)
}
