package resources_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	uierrors "github.com/dalemusser/chapterhub/internal/app/features/errors"
	"github.com/dalemusser/chapterhub/internal/app/features/resources"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"github.com/dalemusser/chapterhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func mustID(t *testing.T, hex string) primitive.ObjectID {
	t.Helper()
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		t.Fatalf("bad object id %q: %v", hex, err)
	}
	return id
}

func newTestHandler(t *testing.T) (*resources.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	h := resources.NewHandler(db, uierrors.NewErrorLogger(logger), logger)
	return h, testutil.NewFixtures(t, db)
}

func TestServeLibrary_StaffCategoryHiddenFromMembers(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateAdmin(ctx, "Admin", "admin@example.com")
	fixtures.CreateResource(ctx, "Bylaws Template", models.CategoryGovernance, admin.ID)
	fixtures.CreateResource(ctx, "Recruitment Playbook", models.CategoryChapterDevelopment, admin.ID)

	req := testutil.NewAuthenticatedRequest("GET", "/resources", testutil.UnaffiliatedMember())
	rec := httptest.NewRecorder()

	func() {
		defer func() { _ = recover() }()
		handler.ServeLibrary(rec, req)
	}()

	body := rec.Body.String()
	if body != "" {
		if !strings.Contains(body, "Bylaws Template") {
			t.Error("general resources should be visible to members")
		}
		if strings.Contains(body, "Recruitment Playbook") {
			t.Error("chapter development items must be hidden from members")
		}
	}
}

func TestServeLibrary_MemberCannotRequestStaffCategory(t *testing.T) {
	handler, _ := newTestHandler(t)

	target := "/resources?category=" + url.QueryEscape(models.CategoryChapterDevelopment)
	req := testutil.NewAuthenticatedRequest("GET", target, testutil.UnaffiliatedMember())
	rec := httptest.NewRecorder()

	func() {
		defer func() { _ = recover() }()
		handler.ServeLibrary(rec, req)
	}()

	if rec.Code == http.StatusOK && strings.Contains(rec.Body.String(), "Recruitment") {
		t.Error("requesting the staff category directly must be refused")
	}
}

func TestHandleUploadPost_StaffOnly(t *testing.T) {
	handler, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	form := url.Values{
		"title":    {"Sneaky Upload"},
		"category": {models.CategoryOther},
		"type":     {"PDF"},
		"url":      {"https://example.com/file.pdf"},
	}
	req := testutil.NewFormRequest("/resources/new", form.Encode(), testutil.UnaffiliatedMember())
	rec := httptest.NewRecorder()

	func() {
		defer func() { _ = recover() }()
		handler.HandleUploadPost(rec, req)
	}()

	if rec.Code == http.StatusSeeOther {
		t.Error("members must not upload resources")
	}
	n, _ := handler.Resources.Count(ctx, models.ResourceCategories)
	if n != 0 {
		t.Errorf("nothing should be stored, got %d", n)
	}
}

func TestHandleUploadPost_ModeratorUploads(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ch := fixtures.CreateChapter(ctx, "Alpha")

	form := url.Values{
		"title":    {"Chapter Handbook"},
		"category": {models.CategoryChapterDevelopment},
		"type":     {"PDF"},
		"url":      {"https://example.com/handbook.pdf"},
		"size":     {"1.2 MB"},
		"tags":     {"onboarding, governance"},
	}
	req := testutil.NewFormRequest("/resources/new", form.Encode(), testutil.ModeratorUser(ch.ID))
	rec := httptest.NewRecorder()
	handler.HandleUploadPost(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}

	rows, err := handler.Resources.List(ctx, []string{models.CategoryChapterDevelopment})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 resource, got %d", len(rows))
	}
	if len(rows[0].Tags) != 2 {
		t.Errorf("tags: got %v", rows[0].Tags)
	}
}

func TestHandleDelete_UploaderMayRemoveOwn(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	uploader := testutil.UnaffiliatedMember()
	uploaderID := mustID(t, uploader.ID)
	res := fixtures.CreateResource(ctx, "Mine", models.CategoryOther, uploaderID)

	req := testutil.NewFormRequest("/resources/"+res.ID.Hex()+"/delete", "", uploader)
	req = testutil.WithChiURLParam(req, "id", res.ID.Hex())
	rec := httptest.NewRecorder()
	handler.HandleDelete(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if _, err := handler.Resources.GetByID(ctx, res.ID); err == nil {
		t.Error("the resource should be gone")
	}
}
