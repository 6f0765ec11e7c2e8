// Package resourcepolicy provides authorization policies for the resource
// library.
//
// Authorization rules:
//   - Any signed-in user may browse, except the "Chapter Development"
//     category, which is restricted to admins and moderators
//   - Admins and moderators may upload
//   - An item may be deleted by its uploader or any staff member
//
// Category restriction is enforced in the store query built from
// VisibleCategories, not just hidden in templates.
package resourcepolicy

import (
	"net/http"

	"github.com/dalemusser/chapterhub/internal/app/system/authz"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VisibleCategories returns the categories the current user may see, in
// display order.
func VisibleCategories(r *http.Request) []string {
	if authz.IsStaff(r) {
		return models.ResourceCategories
	}
	out := make([]string, 0, len(models.ResourceCategories))
	for _, c := range models.ResourceCategories {
		if c == models.CategoryChapterDevelopment {
			continue
		}
		out = append(out, c)
	}
	return out
}

// CanSeeCategory reports whether the current user may view items in the
// given category.
func CanSeeCategory(r *http.Request, category string) bool {
	for _, c := range VisibleCategories(r) {
		if c == category {
			return true
		}
	}
	return false
}

// CanUpload reports whether the current user may add library items.
func CanUpload(r *http.Request) bool {
	return authz.IsStaff(r)
}

// CanDelete reports whether the current user may delete the item uploaded
// by uploadedBy.
func CanDelete(r *http.Request, uploadedBy primitive.ObjectID) bool {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		return false
	}
	return authz.IsStaff(r) || userID == uploadedBy
}
