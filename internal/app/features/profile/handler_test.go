package profile_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	uierrors "github.com/dalemusser/chapterhub/internal/app/features/errors"
	"github.com/dalemusser/chapterhub/internal/app/features/profile"
	metadatastore "github.com/dalemusser/chapterhub/internal/app/store/metadata"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"github.com/dalemusser/chapterhub/internal/domain/workflow"
	"github.com/dalemusser/chapterhub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*profile.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	h := profile.NewHandler(db, uierrors.NewErrorLogger(logger), logger)
	return h, testutil.NewFixtures(t, db)
}

func asUser(u models.User) testutil.TestUser {
	tu := testutil.TestUser{
		ID:               u.ID.Hex(),
		Name:             u.FullName,
		Email:            u.Email,
		Role:             u.Role,
		ProfileCompleted: u.ProfileCompleted,
	}
	if u.ChapterID != nil {
		tu.ChapterID = u.ChapterID.Hex()
	}
	return tu
}

func TestHandleSetupPost_CompletesProfile(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreatePendingMember(ctx, "New Member", "new@example.com", nil)

	form := url.Values{
		"full_name":       {"New Member"},
		"school":          {"State University"},
		"membership_type": {models.MembershipIndividual},
	}
	req := testutil.NewFormRequest("/profile/setup", form.Encode(), asUser(u))
	rec := httptest.NewRecorder()
	handler.HandleSetupPost(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if location := rec.Header().Get("Location"); location != "/dashboard" {
		t.Errorf("Location: got %q, want %q", location, "/dashboard")
	}

	saved, err := handler.Users.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !saved.ProfileCompleted {
		t.Error("setup must mark the profile completed")
	}
	if saved.School != "State University" {
		t.Errorf("School: got %q", saved.School)
	}
}

func TestHandleSetupPost_AppendsNewInterests(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := metadatastore.New(fixtures.DB())
	if err := store.Save(ctx, models.VocabularyTags, []string{"Robotics"}, "seed"); err != nil {
		t.Fatalf("seed vocabulary: %v", err)
	}

	u := fixtures.CreatePendingMember(ctx, "Tagger", "tagger@example.com", nil)

	form := url.Values{
		"full_name":     {"Tagger"},
		"interests":     {"Robotics"},
		"new_interests": {"Debate, Chess"},
	}
	req := testutil.NewFormRequest("/profile/setup", form.Encode(), asUser(u))
	rec := httptest.NewRecorder()
	handler.HandleSetupPost(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}

	vocab, err := store.Get(ctx, models.VocabularyTags)
	if err != nil {
		t.Fatalf("Get vocabulary: %v", err)
	}
	want := []string{"Robotics", "Debate", "Chess"}
	if len(vocab.Values) != len(want) {
		t.Fatalf("vocabulary values: got %v, want %v", vocab.Values, want)
	}
	for i, v := range want {
		if vocab.Values[i] != v {
			t.Errorf("vocabulary[%d]: got %q, want %q", i, vocab.Values[i], v)
		}
	}

	saved, _ := handler.Users.GetByID(ctx, u.ID)
	if len(saved.Interests) != 3 {
		t.Errorf("interests: got %v", saved.Interests)
	}
}

func TestHandleEditPost_ChapterChangeGoesPending(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	chA := fixtures.CreateChapter(ctx, "Alpha")
	chB := fixtures.CreateChapter(ctx, "Beta")
	u := fixtures.CreateMember(ctx, "Mover", "mover@example.com", chA.ID)

	form := url.Values{
		"full_name":  {"Mover"},
		"chapter_id": {chB.ID.Hex()},
	}
	req := testutil.NewFormRequest("/profile/edit", form.Encode(), asUser(u))
	rec := httptest.NewRecorder()
	handler.HandleEditPost(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}

	saved, _ := handler.Users.GetByID(ctx, u.ID)
	if saved.ChapterID == nil || *saved.ChapterID != chB.ID {
		t.Fatal("chapter must be updated")
	}
	if saved.ChapterStatus != string(workflow.ChapterLinkPending) {
		t.Errorf("ChapterStatus: got %q, want pending", saved.ChapterStatus)
	}
}

func TestServeMember_MemberCannotViewPendingProfile(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	pending := fixtures.CreatePendingMember(ctx, "Hidden", "hidden@example.com", nil)

	req := testutil.NewAuthenticatedRequest("GET", "/profile/"+pending.ID.Hex(), testutil.UnaffiliatedMember())
	req = testutil.WithChiURLParam(req, "id", pending.ID.Hex())
	rec := httptest.NewRecorder()

	func() {
		defer func() { _ = recover() }()
		handler.ServeMember(rec, req)
	}()

	if rec.Code == http.StatusOK && rec.Body.Len() > 0 {
		t.Error("a pending profile must not be visible to ordinary members")
	}
}

func TestServeMember_StaffCanViewPendingProfile(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	pending := fixtures.CreatePendingMember(ctx, "Hidden", "hidden@example.com", nil)

	req := testutil.NewAuthenticatedRequest("GET", "/profile/"+pending.ID.Hex(), testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", pending.ID.Hex())
	rec := httptest.NewRecorder()

	func() {
		defer func() { _ = recover() }()
		handler.ServeMember(rec, req)
	}()

	if rec.Code == http.StatusForbidden {
		t.Error("staff must be able to view pending profiles")
	}
}

func TestHandleSetupPost_RejectsUnknownAffiliation(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := metadatastore.New(fixtures.DB())
	if err := store.Save(ctx, models.VocabularyAffiliations, []string{"NSBE", "SWE"}, "seed"); err != nil {
		t.Fatalf("seed vocabulary: %v", err)
	}

	u := fixtures.CreatePendingMember(ctx, "Joiner", "joiner@example.com", nil)

	form := url.Values{
		"full_name":    {"Joiner"},
		"affiliations": {"NSBE", "Made Up Society"},
	}
	req := testutil.NewFormRequest("/profile/setup", form.Encode(), asUser(u))
	rec := httptest.NewRecorder()

	func() {
		defer func() { _ = recover() }()
		handler.HandleSetupPost(rec, req)
	}()

	if rec.Code == http.StatusSeeOther {
		t.Error("an affiliation outside the curated list must not save")
	}
	saved, err := handler.Users.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(saved.Affiliations) != 0 {
		t.Errorf("affiliations must stay unsaved, got %v", saved.Affiliations)
	}
	if saved.ProfileCompleted {
		t.Error("a rejected setup must not mark the profile completed")
	}
}

func TestHandleSetupPost_SavesCuratedAffiliations(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := metadatastore.New(fixtures.DB())
	if err := store.Save(ctx, models.VocabularyAffiliations, []string{"NSBE", "SWE"}, "seed"); err != nil {
		t.Fatalf("seed vocabulary: %v", err)
	}

	u := fixtures.CreatePendingMember(ctx, "Joiner", "joiner@example.com", nil)

	form := url.Values{
		"full_name":    {"Joiner"},
		"affiliations": {"NSBE", "SWE"},
	}
	req := testutil.NewFormRequest("/profile/setup", form.Encode(), asUser(u))
	rec := httptest.NewRecorder()
	handler.HandleSetupPost(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	saved, _ := handler.Users.GetByID(ctx, u.ID)
	if len(saved.Affiliations) != 2 {
		t.Errorf("affiliations: got %v", saved.Affiliations)
	}
}
