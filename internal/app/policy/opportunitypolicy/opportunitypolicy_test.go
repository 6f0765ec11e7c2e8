package opportunitypolicy_test

import (
	"net/http"
	"testing"

	"github.com/dalemusser/chapterhub/internal/app/policy/opportunitypolicy"
	"github.com/dalemusser/chapterhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCanReview(t *testing.T) {
	chID := primitive.NewObjectID()

	if !opportunitypolicy.CanReview(testutil.NewAuthenticatedRequest(http.MethodGet, "/approvals/opportunities", testutil.AdminUser())) {
		t.Error("admin should review listings")
	}
	if opportunitypolicy.CanReview(testutil.NewAuthenticatedRequest(http.MethodGet, "/approvals/opportunities", testutil.ModeratorUser(chID))) {
		t.Error("moderator must not review listings")
	}
	if opportunitypolicy.CanReview(testutil.NewRequest(http.MethodGet, "/approvals/opportunities")) {
		t.Error("visitor must not review listings")
	}
}

func TestCanDelete(t *testing.T) {
	chID := primitive.NewObjectID()
	creator := testutil.MemberUser(chID)
	creatorID, _ := primitive.ObjectIDFromHex(creator.ID)

	own := testutil.NewAuthenticatedRequest(http.MethodPost, "/opportunities", creator)
	if !opportunitypolicy.CanDelete(own, creatorID) {
		t.Error("submitter should delete their own listing")
	}
	if opportunitypolicy.CanDelete(own, primitive.NewObjectID()) {
		t.Error("member must not delete someone else's listing")
	}

	admin := testutil.NewAuthenticatedRequest(http.MethodPost, "/opportunities", testutil.AdminUser())
	if !opportunitypolicy.CanDelete(admin, creatorID) {
		t.Error("admin should delete any listing")
	}
}

func TestCanSubmitAndBrowse(t *testing.T) {
	chID := primitive.NewObjectID()

	member := testutil.NewAuthenticatedRequest(http.MethodGet, "/opportunities", testutil.MemberUser(chID))
	if !opportunitypolicy.CanBrowse(member) || !opportunitypolicy.CanSubmit(member) {
		t.Error("signed-in members should browse and submit")
	}

	visitor := testutil.NewRequest(http.MethodGet, "/opportunities")
	if opportunitypolicy.CanBrowse(visitor) || opportunitypolicy.CanSubmit(visitor) {
		t.Error("visitors must not browse or submit")
	}
}
