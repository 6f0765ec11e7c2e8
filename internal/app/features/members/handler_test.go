package members_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	uierrors "github.com/dalemusser/chapterhub/internal/app/features/errors"
	"github.com/dalemusser/chapterhub/internal/app/features/members"
	"github.com/dalemusser/chapterhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*members.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	h := members.NewHandler(db, uierrors.NewErrorLogger(logger), logger)
	return h, testutil.NewFixtures(t, db)
}

func TestServeDirectory_VisitorForbidden(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/members", nil)

	func() {
		defer func() { _ = recover() }()
		handler.ServeDirectory(rec, req)
	}()

	if rec.Code == http.StatusOK && rec.Body.Len() > 0 {
		t.Error("visitors must not see the directory")
	}
}

func TestServeDirectory_MemberSeesActiveOnly(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ch := fixtures.CreateChapter(ctx, "Alpha")
	fixtures.CreateMember(ctx, "Active Member", "active@example.com", ch.ID)
	fixtures.CreatePendingMember(ctx, "Pending Member", "pending@example.com", &ch.ID)

	req := testutil.NewAuthenticatedRequest("GET", "/members", testutil.MemberUser(ch.ID))
	rec := httptest.NewRecorder()

	func() {
		defer func() { _ = recover() }()
		handler.ServeDirectory(rec, req)
	}()

	body := rec.Body.String()
	if body != "" {
		if !contains(body, "Active Member") {
			t.Error("active member should be listed")
		}
		if contains(body, "Pending Member") {
			t.Error("pending member must be hidden from ordinary members")
		}
	}
}

func TestServeDirectory_ModeratorSeesOwnChapterOnly(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	chA := fixtures.CreateChapter(ctx, "Alpha")
	chB := fixtures.CreateChapter(ctx, "Beta")
	fixtures.CreateMember(ctx, "Alpha Member", "a@example.com", chA.ID)
	fixtures.CreateMember(ctx, "Beta Member", "b@example.com", chB.ID)

	req := testutil.NewAuthenticatedRequest("GET", "/members", testutil.ModeratorUser(chA.ID))
	rec := httptest.NewRecorder()

	func() {
		defer func() { _ = recover() }()
		handler.ServeDirectory(rec, req)
	}()

	body := rec.Body.String()
	if body != "" {
		if !contains(body, "Alpha Member") {
			t.Error("moderator should see own chapter's members")
		}
		if contains(body, "Beta Member") {
			t.Error("moderator must not see another chapter's members")
		}
	}
}

func TestServeDirectory_HidesUnfinishedProfiles(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ch := fixtures.CreateChapter(ctx, "Alpha")
	fixtures.CreateMember(ctx, "Finished Member", "done@example.com", ch.ID)
	onboarding := fixtures.CreateMember(ctx, "Onboarding Member", "new@example.com", ch.ID)
	_, err := handler.DB.Collection("users").UpdateByID(ctx, onboarding.ID,
		bson.M{"$set": bson.M{"profile_completed": false}})
	if err != nil {
		t.Fatalf("failed to unset profile completion: %v", err)
	}

	req := testutil.NewAuthenticatedRequest("GET", "/members", testutil.MemberUser(ch.ID))
	rec := httptest.NewRecorder()

	func() {
		defer func() { _ = recover() }()
		handler.ServeDirectory(rec, req)
	}()

	body := rec.Body.String()
	if body != "" {
		if !contains(body, "Finished Member") {
			t.Error("onboarded members should be listed")
		}
		if contains(body, "Onboarding Member") {
			t.Error("an active member still in setup must stay out of the directory")
		}
	}
}

func TestServeDirectory_AdminSeesAllStates(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ch := fixtures.CreateChapter(ctx, "Alpha")
	fixtures.CreateMember(ctx, "Active Member", "active@example.com", ch.ID)
	fixtures.CreatePendingMember(ctx, "Pending Member", "pending@example.com", &ch.ID)

	req := testutil.NewAuthenticatedRequest("GET", "/members", testutil.AdminUser())
	rec := httptest.NewRecorder()

	func() {
		defer func() { _ = recover() }()
		handler.ServeDirectory(rec, req)
	}()

	body := rec.Body.String()
	if body != "" {
		if !contains(body, "Active Member") || !contains(body, "Pending Member") {
			t.Error("admins see every record regardless of state")
		}
	}
}

func TestServeDirectory_SearchFiltersByName(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ch := fixtures.CreateChapter(ctx, "Alpha")
	fixtures.CreateMember(ctx, "Alice Alpha", "alice@example.com", ch.ID)
	fixtures.CreateMember(ctx, "Bob Beta", "bob@example.com", ch.ID)

	req := testutil.NewAuthenticatedRequest("GET", "/members?q=Alice", testutil.MemberUser(ch.ID))
	rec := httptest.NewRecorder()

	func() {
		defer func() { _ = recover() }()
		handler.ServeDirectory(rec, req)
	}()

	body := rec.Body.String()
	if body != "" {
		if !contains(body, "Alice Alpha") {
			t.Error("search should match Alice")
		}
		if contains(body, "Bob Beta") {
			t.Error("search should exclude Bob")
		}
	}
}

func contains(haystack, needle string) bool {
	return strings.Contains(haystack, needle)
}

func TestServeExportCSV_AdminExportsAllStates(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ch := fixtures.CreateChapter(ctx, "Alpha")
	fixtures.CreateMember(ctx, "Alice Alpha", "alice@example.com", ch.ID)
	fixtures.CreatePendingMember(ctx, "Penny Pending", "penny@example.com", &ch.ID)

	req := testutil.NewAuthenticatedRequest("GET", "/members/export.csv", testutil.AdminUser())
	rec := httptest.NewRecorder()
	handler.ServeExportCSV(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("content type: got %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "alice@example.com") {
		t.Error("export should include the active member")
	}
	if !strings.Contains(body, "penny@example.com") {
		t.Error("admin export should include pending members")
	}
	if !strings.Contains(body, "Alpha") {
		t.Error("export should carry the chapter name")
	}
}

func TestServeExportCSV_ModeratorScopedToOwnChapter(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	chA := fixtures.CreateChapter(ctx, "Alpha")
	chB := fixtures.CreateChapter(ctx, "Beta")
	fixtures.CreateMember(ctx, "Alice Alpha", "alice@example.com", chA.ID)
	fixtures.CreateMember(ctx, "Bob Beta", "bob@example.com", chB.ID)

	req := testutil.NewAuthenticatedRequest("GET", "/members/export.csv", testutil.ModeratorUser(chA.ID))
	rec := httptest.NewRecorder()
	handler.ServeExportCSV(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "alice@example.com") {
		t.Error("moderator export should include own chapter members")
	}
	if strings.Contains(body, "bob@example.com") {
		t.Error("moderator export must not include other chapters")
	}
}

func TestServeExportCSV_MemberForbidden(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ch := fixtures.CreateChapter(ctx, "Alpha")

	req := testutil.NewAuthenticatedRequest("GET", "/members/export.csv", testutil.MemberUser(ch.ID))
	rec := httptest.NewRecorder()

	func() {
		defer func() { _ = recover() }()
		handler.ServeExportCSV(rec, req)
	}()

	if strings.HasPrefix(rec.Header().Get("Content-Type"), "text/csv") {
		t.Error("members must not be able to export the roster")
	}
}
