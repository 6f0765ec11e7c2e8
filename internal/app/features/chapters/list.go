// internal/app/features/chapters/list.go
package chapters

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/chapterhub/internal/app/features/errors"
	"github.com/dalemusser/chapterhub/internal/app/system/authz"
	"github.com/dalemusser/chapterhub/internal/app/system/timeouts"
	"github.com/dalemusser/chapterhub/internal/app/system/viewdata"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
)

type chapterListData struct {
	viewdata.BaseVM
	IsAdmin  bool
	Chapters []models.Chapter
}

// ServeList renders the chapter directory. Members see active chapters;
// admins see every chapter with its status and management links.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	_, _, _, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	isAdmin := authz.IsAdmin(r)

	var (
		rows []models.Chapter
		err  error
	)
	if isAdmin {
		rows, err = h.Chapters.ListAll(ctx)
	} else {
		rows, err = h.Chapters.ListActive(ctx)
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list chapters", err, "Could not load chapters.", "/dashboard")
		return
	}

	data := chapterListData{
		BaseVM:   viewdata.NewBaseVM(r, "Chapters", "/dashboard"),
		IsAdmin:  isAdmin,
		Chapters: rows,
	}
	templates.Render(w, r, "chapters", data)
}
