// Package opportunitypolicy provides authorization policies for the
// opportunities board.
//
// Authorization rules:
//   - Any signed-in user may browse visible listings and submit new ones
//   - Admins review pending listings
//   - A listing may be deleted by its submitter or an admin
package opportunitypolicy

import (
	"net/http"

	"github.com/dalemusser/chapterhub/internal/app/system/authz"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CanBrowse reports whether the current user may view the board.
func CanBrowse(r *http.Request) bool {
	_, _, _, ok := authz.UserCtx(r)
	return ok
}

// CanSubmit reports whether the current user may submit a listing.
func CanSubmit(r *http.Request) bool {
	_, _, _, ok := authz.UserCtx(r)
	return ok
}

// CanReview reports whether the current user may approve or reject pending
// listings.
func CanReview(r *http.Request) bool {
	return authz.IsAdmin(r)
}

// CanDelete reports whether the current user may delete the listing created
// by createdBy.
func CanDelete(r *http.Request, createdBy primitive.ObjectID) bool {
	role, _, userID, ok := authz.UserCtx(r)
	if !ok {
		return false
	}
	return role == "admin" || userID == createdBy
}
