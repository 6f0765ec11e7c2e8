// internal/app/features/members/list.go
package members

import (
	"context"
	"maps"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/chapterhub/internal/app/features/errors"
	"github.com/dalemusser/chapterhub/internal/app/policy/memberpolicy"
	"github.com/dalemusser/chapterhub/internal/app/system/paging"
	"github.com/dalemusser/chapterhub/internal/app/system/timeouts"
	"github.com/dalemusser/chapterhub/internal/app/system/viewdata"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// memberRow is one line in the directory table.
type memberRow struct {
	ID          primitive.ObjectID
	FullName    string
	Email       string
	ChapterName string
	Status      string
}

type directoryData struct {
	viewdata.BaseVM
	IsAdmin bool

	Rows  []memberRow
	Total int64
	Query string

	HasPrev    bool
	HasNext    bool
	PrevCursor string
	NextCursor string
	RangeStart int
	RangeEnd   int
	PrevStart  int
	NextStart  int
}

// ServeDirectory renders the member directory. Visibility depends on role:
// admins see every record, moderators their own chapter's active members,
// and members all active members.
func (h *Handler) ServeDirectory(w http.ResponseWriter, r *http.Request) {
	scope := memberpolicy.DirectoryScope(r)
	if !scope.CanList {
		uierrors.RenderForbidden(w, r, "/")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	searchQuery := query.Search(r, "q")
	after := query.Get(r, "after")
	before := query.Get(r, "before")
	start := paging.ParseStart(r)

	result, err := h.fetchDirectory(ctx, scope, searchQuery, after, before, start)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list members", err, "Could not load the directory.", "/dashboard")
		return
	}

	data := directoryData{
		BaseVM:     viewdata.NewBaseVM(r, "Member Directory", "/dashboard"),
		IsAdmin:    !scope.ActiveOnly,
		Rows:       result.Rows,
		Total:      result.Total,
		Query:      searchQuery,
		HasPrev:    result.HasPrev,
		HasNext:    result.HasNext,
		PrevCursor: result.PrevCursor,
		NextCursor: result.NextCursor,
		RangeStart: result.RangeStart,
		RangeEnd:   result.RangeEnd,
		PrevStart:  result.PrevStart,
		NextStart:  result.NextStart,
	}

	templates.Render(w, r, "members", data)
}

type directoryResult struct {
	Rows       []memberRow
	Total      int64
	HasPrev    bool
	HasNext    bool
	PrevCursor string
	NextCursor string
	RangeStart int
	RangeEnd   int
	PrevStart  int
	NextStart  int
}

// fetchDirectory runs the scoped, searched, keyset-paginated directory query.
func (h *Handler) fetchDirectory(
	ctx context.Context,
	scope memberpolicy.ListScope,
	searchQuery, after, before string,
	start int,
) (directoryResult, error) {
	var result directoryResult

	base := scope.Filter()

	var searchOr []bson.M
	if searchQuery != "" {
		qFold := text.Fold(strings.TrimSpace(searchQuery))
		sLower := strings.ToLower(strings.TrimSpace(searchQuery))
		searchOr = []bson.M{
			{"full_name_ci": bson.M{"$gte": qFold, "$lt": qFold + "￿"}},
			{"email": bson.M{"$gte": sLower, "$lt": sLower + "￿"}},
		}
		base["$or"] = searchOr
	}

	total, err := h.Users.Count(ctx, base)
	if err != nil {
		h.Log.Error("database error counting members", zap.Error(err))
		return result, err
	}
	result.Total = total

	f := maps.Clone(base)
	find := options.Find()
	const sortField = "full_name_ci"

	cfg := paging.ConfigureKeyset(before, after)
	cfg.ApplyToFind(find, sortField)

	if ks := cfg.KeysetWindow(sortField); ks != nil {
		if searchOr != nil {
			f["$and"] = []bson.M{{"$or": searchOr}, ks}
			delete(f, "$or")
		} else {
			maps.Copy(f, ks)
		}
	}

	urows, err := h.Users.Find(ctx, f, find)
	if err != nil {
		h.Log.Error("database error finding members", zap.Error(err))
		return result, err
	}

	if cfg.Direction == paging.Backward {
		paging.Reverse(urows)
	}

	page := paging.TrimPage(&urows, before, after)
	result.HasPrev = page.HasPrev
	result.HasNext = page.HasNext

	rng := paging.ComputeRange(start, len(urows))
	result.RangeStart = rng.Start
	result.RangeEnd = rng.End
	result.PrevStart = rng.PrevStart
	result.NextStart = rng.NextStart

	chapterIDs := make([]primitive.ObjectID, 0, len(urows))
	for _, u := range urows {
		if u.ChapterID != nil {
			chapterIDs = append(chapterIDs, *u.ChapterID)
		}
	}
	chapterNames, err := h.Chapters.NameMap(ctx, chapterIDs)
	if err != nil {
		return result, err
	}

	result.Rows = make([]memberRow, 0, len(urows))
	for _, u := range urows {
		cn := ""
		if u.ChapterID != nil {
			cn = chapterNames[*u.ChapterID]
		}
		result.Rows = append(result.Rows, memberRow{
			ID:          u.ID,
			FullName:    u.FullName,
			Email:       strings.ToLower(u.Email),
			ChapterName: cn,
			Status:      u.MembershipStatus,
		})
	}

	if len(urows) > 0 {
		first := urows[0]
		last := urows[len(urows)-1]
		result.PrevCursor = wafflemongo.EncodeCursor(first.FullNameCI, first.ID)
		result.NextCursor = wafflemongo.EncodeCursor(last.FullNameCI, last.ID)
	}

	return result, nil
}
