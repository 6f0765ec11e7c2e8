// Package memberpolicy provides authorization policies for the member
// directory and the approval queue.
//
// Authorization rules:
//   - Admins see all members and the full approval queue
//   - Moderators see their own chapter only, plus its approval queue
//   - Members see active members only
//   - Visitors cannot list members
package memberpolicy

import (
	"net/http"

	"github.com/dalemusser/chapterhub/internal/app/system/authz"
	"github.com/dalemusser/chapterhub/internal/domain/workflow"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ListScope represents the slice of the membership a user may list.
type ListScope struct {
	// CanList indicates whether the user can list members at all.
	CanList bool
	// ActiveOnly restricts the listing to active memberships with a
	// completed profile. False for admins, who also see pending,
	// inactive, rejected, and still-onboarding records.
	ActiveOnly bool
	// ChapterID, when non-nil, restricts results to one chapter.
	ChapterID *primitive.ObjectID
}

// Filter translates the scope into the Mongo filter the store should use.
func (s ListScope) Filter() bson.M {
	if !s.CanList {
		// Matches nothing; callers should have checked CanList already.
		return bson.M{"_id": primitive.NilObjectID}
	}
	f := bson.M{}
	if s.ActiveOnly {
		// Records stay out of directories until onboarding finishes,
		// even once the membership has been approved.
		f["membership_status"] = string(workflow.MembershipActive)
		f["profile_completed"] = true
	}
	if s.ChapterID != nil {
		f["chapter_id"] = *s.ChapterID
	}
	return f
}

// DirectoryScope determines what the current user sees in the member
// directory.
//
// Authorization:
//   - Admin: every record regardless of state
//   - Moderator: their own chapter's active members only
//   - Member: active members across all chapters
//   - Visitor: nothing
func DirectoryScope(r *http.Request) ListScope {
	role, _, _, ok := authz.UserCtx(r)
	if !ok {
		return ListScope{}
	}
	switch role {
	case "admin":
		return ListScope{CanList: true}
	case "moderator":
		chID := authz.UserChapterID(r)
		if chID == primitive.NilObjectID {
			return ListScope{}
		}
		return ListScope{CanList: true, ActiveOnly: true, ChapterID: &chID}
	case "member":
		return ListScope{CanList: true, ActiveOnly: true}
	default:
		return ListScope{}
	}
}

// ExportScope determines which records the current user may export to CSV.
//
// Authorization:
//   - Admin: every record regardless of state
//   - Moderator: their own chapter's records, all states
//   - Others: no access
func ExportScope(r *http.Request) ListScope {
	role, _, _, ok := authz.UserCtx(r)
	if !ok {
		return ListScope{}
	}
	switch role {
	case "admin":
		return ListScope{CanList: true}
	case "moderator":
		chID := authz.UserChapterID(r)
		if chID == primitive.NilObjectID {
			return ListScope{}
		}
		return ListScope{CanList: true, ChapterID: &chID}
	default:
		return ListScope{}
	}
}

// ApprovalScope determines which pending records the current user may
// review.
//
// Authorization:
//   - Admin: the whole queue
//   - Moderator: only their own chapter's queue
//   - Others: no access
func ApprovalScope(r *http.Request) ListScope {
	role, _, _, ok := authz.UserCtx(r)
	if !ok {
		return ListScope{}
	}
	switch role {
	case "admin":
		return ListScope{CanList: true}
	case "moderator":
		chID := authz.UserChapterID(r)
		if chID == primitive.NilObjectID {
			return ListScope{}
		}
		return ListScope{CanList: true, ChapterID: &chID}
	default:
		return ListScope{}
	}
}

// CanDecide reports whether the current user may approve or reject the
// member with the given chapter affiliation. Admins decide anything;
// moderators only records tied to their own chapter.
func CanDecide(r *http.Request, memberChapterID *primitive.ObjectID) bool {
	role, _, _, ok := authz.UserCtx(r)
	if !ok {
		return false
	}
	switch role {
	case "admin":
		return true
	case "moderator":
		if memberChapterID == nil {
			return false
		}
		return authz.UserChapterID(r) == *memberChapterID
	default:
		return false
	}
}

// CanViewProfile reports whether the current user may open another user's
// profile page. Signed-in users may view active members; staff may view any
// record; everyone may view their own.
func CanViewProfile(r *http.Request, profileUserID primitive.ObjectID, membershipStatus string) bool {
	role, _, userID, ok := authz.UserCtx(r)
	if !ok {
		return false
	}
	if userID == profileUserID {
		return true
	}
	if role == "admin" || role == "moderator" {
		return true
	}
	return membershipStatus == string(workflow.MembershipActive)
}

// CanEditMember reports whether the current user may use the admin edit
// flow. Only admins; this is the path that bypasses the approval workflow.
func CanEditMember(r *http.Request) bool {
	return authz.IsAdmin(r)
}
