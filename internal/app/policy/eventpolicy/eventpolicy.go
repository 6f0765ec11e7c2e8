// Package eventpolicy provides authorization policies for the events
// calendar.
//
// Authorization rules:
//   - Global events are visible to every signed-in user
//   - Chapter events are visible to that chapter's members and to admins
//   - Admins create global events; moderators create events for their own
//     chapter
//   - An event may be deleted by its creator or an admin
package eventpolicy

import (
	"net/http"

	"github.com/dalemusser/chapterhub/internal/app/system/authz"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Scope describes which events the current user may see.
type Scope struct {
	CanView bool
	// All is set for admins, who see every chapter's events.
	All bool
	// ChapterID, when non-nil, adds that chapter's events to the globals.
	ChapterID *primitive.ObjectID
}

// ViewScope determines the event visibility for the current user.
func ViewScope(r *http.Request) Scope {
	role, _, _, ok := authz.UserCtx(r)
	if !ok {
		return Scope{}
	}
	if role == "admin" {
		return Scope{CanView: true, All: true}
	}
	s := Scope{CanView: true}
	if chID := authz.UserChapterID(r); chID != primitive.NilObjectID {
		s.ChapterID = &chID
	}
	return s
}

// CanSee reports whether the current user may view a single event with the
// given chapter affiliation (nil for global).
func CanSee(r *http.Request, eventChapterID *primitive.ObjectID) bool {
	s := ViewScope(r)
	if !s.CanView {
		return false
	}
	if s.All || eventChapterID == nil {
		return true
	}
	return s.ChapterID != nil && *s.ChapterID == *eventChapterID
}

// CanCreate reports whether the current user may create an event for the
// given chapter (nil for global).
func CanCreate(r *http.Request, chapterID *primitive.ObjectID) bool {
	role, _, _, ok := authz.UserCtx(r)
	if !ok {
		return false
	}
	switch role {
	case "admin":
		return true
	case "moderator":
		if chapterID == nil {
			return false
		}
		return authz.UserChapterID(r) == *chapterID
	default:
		return false
	}
}

// CanDelete reports whether the current user may delete the event created
// by createdBy.
func CanDelete(r *http.Request, createdBy primitive.ObjectID) bool {
	role, _, userID, ok := authz.UserCtx(r)
	if !ok {
		return false
	}
	return role == "admin" || userID == createdBy
}
