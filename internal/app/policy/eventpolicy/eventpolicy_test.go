package eventpolicy_test

import (
	"net/http"
	"testing"

	"github.com/dalemusser/chapterhub/internal/app/policy/eventpolicy"
	"github.com/dalemusser/chapterhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCanSee(t *testing.T) {
	chID := primitive.NewObjectID()
	otherID := primitive.NewObjectID()

	member := testutil.NewAuthenticatedRequest(http.MethodGet, "/events", testutil.MemberUser(chID))
	if !eventpolicy.CanSee(member, nil) {
		t.Error("global events should be visible to members")
	}
	if !eventpolicy.CanSee(member, &chID) {
		t.Error("own chapter's events should be visible")
	}
	if eventpolicy.CanSee(member, &otherID) {
		t.Error("another chapter's events must not be visible")
	}

	admin := testutil.NewAuthenticatedRequest(http.MethodGet, "/events", testutil.AdminUser())
	if !eventpolicy.CanSee(admin, &otherID) {
		t.Error("admin should see every chapter's events")
	}

	visitor := testutil.NewRequest(http.MethodGet, "/events")
	if eventpolicy.CanSee(visitor, nil) {
		t.Error("visitors must not see events")
	}
}

func TestCanCreate(t *testing.T) {
	chID := primitive.NewObjectID()
	otherID := primitive.NewObjectID()

	admin := testutil.NewAuthenticatedRequest(http.MethodPost, "/events/new", testutil.AdminUser())
	if !eventpolicy.CanCreate(admin, nil) || !eventpolicy.CanCreate(admin, &chID) {
		t.Error("admin should create global and chapter events")
	}

	mod := testutil.NewAuthenticatedRequest(http.MethodPost, "/events/new", testutil.ModeratorUser(chID))
	if !eventpolicy.CanCreate(mod, &chID) {
		t.Error("moderator should create own chapter's events")
	}
	if eventpolicy.CanCreate(mod, &otherID) {
		t.Error("moderator must not create another chapter's events")
	}
	if eventpolicy.CanCreate(mod, nil) {
		t.Error("moderator must not create global events")
	}

	member := testutil.NewAuthenticatedRequest(http.MethodPost, "/events/new", testutil.MemberUser(chID))
	if eventpolicy.CanCreate(member, &chID) {
		t.Error("member must not create events")
	}
}

func TestCanDelete(t *testing.T) {
	chID := primitive.NewObjectID()
	creator := testutil.ModeratorUser(chID)
	creatorID, _ := primitive.ObjectIDFromHex(creator.ID)

	own := testutil.NewAuthenticatedRequest(http.MethodPost, "/events", creator)
	if !eventpolicy.CanDelete(own, creatorID) {
		t.Error("creator should delete their own event")
	}
	if eventpolicy.CanDelete(own, primitive.NewObjectID()) {
		t.Error("moderator must not delete someone else's event")
	}

	admin := testutil.NewAuthenticatedRequest(http.MethodPost, "/events", testutil.AdminUser())
	if !eventpolicy.CanDelete(admin, creatorID) {
		t.Error("admin should delete any event")
	}
}
