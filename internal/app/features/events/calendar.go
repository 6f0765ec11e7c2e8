// internal/app/features/events/calendar.go
package events

import (
	"context"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/chapterhub/internal/app/features/errors"
	"github.com/dalemusser/chapterhub/internal/app/policy/eventpolicy"
	eventstore "github.com/dalemusser/chapterhub/internal/app/store/events"
	"github.com/dalemusser/chapterhub/internal/app/system/authz"
	"github.com/dalemusser/chapterhub/internal/app/system/timeouts"
	"github.com/dalemusser/chapterhub/internal/app/system/viewdata"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type eventRow struct {
	models.Event
	CanDelete bool
}

type calendarData struct {
	viewdata.BaseVM
	CanCreate bool
	Rows      []eventRow
}

// ServeCalendar lists visible events in date order: global events for
// everyone, chapter events for that chapter's members, everything for
// admins.
func (h *Handler) ServeCalendar(w http.ResponseWriter, r *http.Request) {
	scope := eventpolicy.ViewScope(r)
	if !scope.CanView {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	rows, err := h.Events.List(ctx, eventstore.VisibleFilter(scope.ChapterID, scope.All))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list events", err, "Could not load events.", "/dashboard")
		return
	}

	data := calendarData{
		BaseVM:    viewdata.NewBaseVM(r, "Events", "/dashboard"),
		CanCreate: authz.IsStaff(r),
	}
	data.Rows = make([]eventRow, 0, len(rows))
	for _, e := range rows {
		data.Rows = append(data.Rows, eventRow{
			Event:     e,
			CanDelete: eventpolicy.CanDelete(r, e.CreatedBy),
		})
	}

	templates.Render(w, r, "events", data)
}

type eventFormData struct {
	viewdata.BaseVM
	Error string

	Event    models.Event
	Chapters []models.Chapter
	IsAdmin  bool
	// OwnChapterID pre-fills the hidden chapter field for moderators, who
	// may only create events for their own chapter.
	OwnChapterID string
}

// ServeNew renders the event form. Admins may target any chapter or leave
// the event global; moderators only their own chapter.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	if !authz.IsStaff(r) {
		uierrors.RenderForbidden(w, r, "/events")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	data, err := h.newFormData(ctx, r)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load event form", err, "Could not load the form.", "/events")
		return
	}
	templates.Render(w, r, "event_form", data)
}

// HandleNewPost creates an event, denormalizing the chapter name for
// display.
func (h *Handler) HandleNewPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/events")
		return
	}

	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	e := models.Event{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Date:        strings.TrimSpace(r.FormValue("date")),
		Time:        strings.TrimSpace(r.FormValue("time")),
		Location:    strings.TrimSpace(r.FormValue("location")),
		Description: strings.TrimSpace(r.FormValue("description")),
		CreatedBy:   userID,
	}
	if chHex := strings.TrimSpace(r.FormValue("chapter_id")); chHex != "" {
		oid, err := primitive.ObjectIDFromHex(chHex)
		if err != nil {
			h.ErrLog.LogBadRequest(w, r, "bad chapter id", err, "Unknown chapter.", "/events")
			return
		}
		e.ChapterID = &oid
	}

	if !eventpolicy.CanCreate(r, e.ChapterID) {
		uierrors.RenderForbidden(w, r, "/events")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if e.Title == "" || e.Date == "" {
		h.rerenderForm(ctx, w, r, e, "Title and date are required.")
		return
	}

	if e.ChapterID != nil {
		ch, err := h.Chapters.GetByID(ctx, *e.ChapterID)
		if err != nil {
			h.ErrLog.LogBadRequest(w, r, "unknown chapter", err, "Unknown chapter.", "/events")
			return
		}
		e.ChapterName = ch.Name
	}

	created, err := h.Events.Create(ctx, e)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create event", err, "Could not create the event.", "/events")
		return
	}

	h.Log.Info("event created",
		zap.String("event_id", created.ID.Hex()),
		zap.Bool("global", created.ChapterID == nil))
	http.Redirect(w, r, "/events", http.StatusSeeOther)
}

// HandleDelete removes an event. Admins delete anything, creators their own.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderNotFound(w, r, "Event not found.", "/events")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	e, err := h.Events.GetByID(ctx, id)
	if err != nil {
		uierrors.RenderNotFound(w, r, "Event not found.", "/events")
		return
	}
	if !eventpolicy.CanDelete(r, e.CreatedBy) {
		uierrors.RenderForbidden(w, r, "/events")
		return
	}

	if _, err := h.Events.Delete(ctx, id); err != nil {
		h.ErrLog.LogServerError(w, r, "delete event", err, "Could not delete the event.", "/events")
		return
	}

	h.Log.Info("event deleted", zap.String("event_id", id.Hex()))
	http.Redirect(w, r, "/events", http.StatusSeeOther)
}

func (h *Handler) newFormData(ctx context.Context, r *http.Request) (eventFormData, error) {
	data := eventFormData{
		BaseVM:  viewdata.NewBaseVM(r, "New Event", "/events"),
		IsAdmin: authz.IsAdmin(r),
	}
	if data.IsAdmin {
		chapters, err := h.Chapters.ListActive(ctx)
		if err != nil {
			return data, err
		}
		data.Chapters = chapters
	} else if chID := authz.UserChapterID(r); chID != primitive.NilObjectID {
		data.OwnChapterID = chID.Hex()
	}
	return data, nil
}

func (h *Handler) rerenderForm(ctx context.Context, w http.ResponseWriter, r *http.Request, e models.Event, errMsg string) {
	data, err := h.newFormData(ctx, r)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load event form", err, "Could not load the form.", "/events")
		return
	}
	data.Error = errMsg
	data.Event = e
	templates.Render(w, r, "event_form", data)
}
