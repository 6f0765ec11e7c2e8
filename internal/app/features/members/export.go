// internal/app/features/members/export.go
package members

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	uierrors "github.com/dalemusser/chapterhub/internal/app/features/errors"
	"github.com/dalemusser/chapterhub/internal/app/policy/memberpolicy"
	"github.com/dalemusser/chapterhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

var exportHeader = []string{
	"Full Name", "Email", "Role", "Membership Type", "Membership Status",
	"Chapter", "Chapter Status", "Join Date",
}

// ServeExportCSV handles GET /members/export.csv and streams the member
// roster in scope: admins export everyone, moderators their own chapter.
func (h *Handler) ServeExportCSV(w http.ResponseWriter, r *http.Request) {
	scope := memberpolicy.ExportScope(r)
	if !scope.CanList {
		uierrors.RenderForbidden(w, r, "/members")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	users, err := h.Users.Find(ctx, scope.Filter(), options.Find().
		SetSort(bson.D{{Key: "full_name_ci", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "member export query failed", err,
			"Could not export members.", "/members")
		return
	}

	chIDs := make([]primitive.ObjectID, 0, len(users))
	for _, u := range users {
		if u.ChapterID != nil {
			chIDs = append(chIDs, *u.ChapterID)
		}
	}
	chapterNames, err := h.Chapters.NameMap(ctx, chIDs)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "chapter names for export failed", err,
			"Could not export members.", "/members")
		return
	}

	filename := fmt.Sprintf("members-%s.csv", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		h.Log.Error("csv header write failed", zap.Error(err))
		return
	}
	for _, u := range users {
		chapterName := ""
		if u.ChapterID != nil {
			chapterName = chapterNames[*u.ChapterID]
		}
		rec := []string{
			u.FullName,
			u.Email,
			u.Role,
			u.MembershipType,
			u.MembershipStatus,
			chapterName,
			u.ChapterStatus,
			u.JoinDate,
		}
		if err := cw.Write(rec); err != nil {
			h.Log.Error("csv row write failed", zap.Error(err))
			return
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		h.Log.Error("csv flush failed", zap.Error(err))
	}
}
