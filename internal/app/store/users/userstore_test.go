package userstore_test

import (
	"testing"

	userstore "github.com/dalemusser/chapterhub/internal/app/store/users"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"github.com/dalemusser/chapterhub/internal/domain/workflow"
	"github.com/dalemusser/chapterhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create_DefaultsToPending(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		FullName: "  Ada   Lovelace ",
		Email:    " Ada@Example.COM ",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.FullName != "Ada Lovelace" {
		t.Errorf("FullName: got %q, want %q", created.FullName, "Ada Lovelace")
	}
	if created.Email != "ada@example.com" {
		t.Errorf("Email: got %q, want %q", created.Email, "ada@example.com")
	}
	if created.Role != "member" {
		t.Errorf("Role: got %q, want %q", created.Role, "member")
	}
	if created.MembershipStatus != string(workflow.MembershipPending) {
		t.Errorf("MembershipStatus: got %q, want %q", created.MembershipStatus, workflow.MembershipPending)
	}
	if created.ChapterStatus != string(workflow.ChapterLinkNone) {
		t.Errorf("ChapterStatus: got %q, want empty", created.ChapterStatus)
	}
	if created.ProfileCompleted {
		t.Error("new accounts should start with an incomplete profile")
	}
}

func TestStore_Create_WithChapterStartsLinkPending(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	chID := primitive.NewObjectID()
	created, err := store.Create(ctx, models.User{
		FullName:  "Grace Hopper",
		Email:     "grace@example.com",
		ChapterID: &chID,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ChapterStatus != string(workflow.ChapterLinkPending) {
		t.Errorf("ChapterStatus: got %q, want %q", created.ChapterStatus, workflow.ChapterLinkPending)
	}
}

func TestStore_ApplyDecision_ApproveDualPending(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ch := fx.CreateChapter(ctx, "Delta Chapter")
	u := fx.CreatePendingMember(ctx, "Pending Person", "pending@example.com", &ch.ID)

	got, changed, err := store.ApplyDecision(ctx, u.ID, workflow.Approve)
	if err != nil {
		t.Fatalf("ApplyDecision failed: %v", err)
	}
	if !changed {
		t.Fatal("expected a pending record to change")
	}
	if got.MembershipStatus != string(workflow.MembershipActive) {
		t.Errorf("MembershipStatus: got %q, want %q", got.MembershipStatus, workflow.MembershipActive)
	}
	if got.ChapterStatus != string(workflow.ChapterLinkApproved) {
		t.Errorf("ChapterStatus: got %q, want %q", got.ChapterStatus, workflow.ChapterLinkApproved)
	}

	// One decision settles the record; it must leave the queue.
	n, err := store.CountPendingApprovals(ctx, nil)
	if err != nil {
		t.Fatalf("CountPendingApprovals failed: %v", err)
	}
	if n != 0 {
		t.Errorf("pending count after approval: got %d, want 0", n)
	}
}

func TestStore_ApplyDecision_DuplicateIsNoOp(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fx.CreatePendingMember(ctx, "Pending Person", "pending@example.com", nil)

	if _, changed, err := store.ApplyDecision(ctx, u.ID, workflow.Approve); err != nil || !changed {
		t.Fatalf("first decision: changed=%v err=%v", changed, err)
	}
	got, changed, err := store.ApplyDecision(ctx, u.ID, workflow.Reject)
	if err != nil {
		t.Fatalf("second decision failed: %v", err)
	}
	if changed {
		t.Error("a settled record must not change on a later decision")
	}
	if got.MembershipStatus != string(workflow.MembershipActive) {
		t.Errorf("MembershipStatus: got %q, want %q", got.MembershipStatus, workflow.MembershipActive)
	}
}

func TestStore_ApplyDecision_Reject(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fx.CreatePendingMember(ctx, "Pending Person", "pending@example.com", nil)

	got, changed, err := store.ApplyDecision(ctx, u.ID, workflow.Reject)
	if err != nil {
		t.Fatalf("ApplyDecision failed: %v", err)
	}
	if !changed {
		t.Fatal("expected a pending record to change")
	}
	if got.MembershipStatus != string(workflow.MembershipRejected) {
		t.Errorf("MembershipStatus: got %q, want %q", got.MembershipStatus, workflow.MembershipRejected)
	}
}

func TestStore_PendingApprovals_ChapterScope(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	chA := fx.CreateChapter(ctx, "Alpha Chapter")
	chB := fx.CreateChapter(ctx, "Beta Chapter")
	fx.CreatePendingMember(ctx, "In Alpha", "a@example.com", &chA.ID)
	fx.CreatePendingMember(ctx, "In Beta", "b@example.com", &chB.ID)
	fx.CreatePendingMember(ctx, "No Chapter", "c@example.com", nil)

	all, err := store.PendingApprovals(ctx, nil)
	if err != nil {
		t.Fatalf("PendingApprovals failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("unscoped queue: got %d, want 3", len(all))
	}

	scoped, err := store.PendingApprovals(ctx, &chA.ID)
	if err != nil {
		t.Fatalf("PendingApprovals scoped failed: %v", err)
	}
	if len(scoped) != 1 {
		t.Fatalf("scoped queue: got %d, want 1", len(scoped))
	}
	if scoped[0].FullName != "In Alpha" {
		t.Errorf("scoped queue member: got %q, want %q", scoped[0].FullName, "In Alpha")
	}
}

func TestStore_SaveProfile_ChapterChangeResetsLink(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	chA := fx.CreateChapter(ctx, "Alpha Chapter")
	chB := fx.CreateChapter(ctx, "Beta Chapter")
	u := fx.CreateMember(ctx, "Mover", "mover@example.com", chA.ID)

	err := store.SaveProfile(ctx, u.ID, userstore.ProfileUpdate{
		FullName:  "Mover",
		ChapterID: &chB.ID,
	}, false)
	if err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	got, err := store.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.ChapterID == nil || *got.ChapterID != chB.ID {
		t.Error("chapter should have changed to the new chapter")
	}
	if got.ChapterStatus != string(workflow.ChapterLinkPending) {
		t.Errorf("ChapterStatus: got %q, want %q", got.ChapterStatus, workflow.ChapterLinkPending)
	}
	// Membership standing is untouched by a transfer request.
	if got.MembershipStatus != string(workflow.MembershipActive) {
		t.Errorf("MembershipStatus: got %q, want %q", got.MembershipStatus, workflow.MembershipActive)
	}
}

func TestStore_SaveProfile_SameChapterKeepsLink(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ch := fx.CreateChapter(ctx, "Alpha Chapter")
	u := fx.CreateMember(ctx, "Stayer", "stayer@example.com", ch.ID)

	err := store.SaveProfile(ctx, u.ID, userstore.ProfileUpdate{
		FullName:  "Stayer",
		ChapterID: &ch.ID,
	}, false)
	if err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	got, err := store.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.ChapterStatus != string(workflow.ChapterLinkApproved) {
		t.Errorf("ChapterStatus: got %q, want %q", got.ChapterStatus, workflow.ChapterLinkApproved)
	}
}

func TestStore_ApplyAdminUpdate_ResurrectsRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fx.CreateUser(ctx, "Rejected Person", "rej@example.com", "member", workflow.MembershipRejected, nil)

	err := store.ApplyAdminUpdate(ctx, u.ID, userstore.AdminUpdate{
		Role:             "member",
		MembershipStatus: workflow.MembershipActive,
	})
	if err != nil {
		t.Fatalf("ApplyAdminUpdate failed: %v", err)
	}

	got, err := store.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.MembershipStatus != string(workflow.MembershipActive) {
		t.Errorf("MembershipStatus: got %q, want %q", got.MembershipStatus, workflow.MembershipActive)
	}
}

func TestStore_PromoteAdmin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.User{
		FullName: "First Admin",
		Email:    "boss@example.com",
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	promoted, err := store.PromoteAdmin(ctx, "Boss@Example.com")
	if err != nil {
		t.Fatalf("PromoteAdmin failed: %v", err)
	}
	if !promoted {
		t.Fatal("expected the account to be promoted")
	}

	got, err := store.GetByEmail(ctx, "boss@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if got.Role != "admin" {
		t.Errorf("Role: got %q, want %q", got.Role, "admin")
	}
	if got.MembershipStatus != string(workflow.MembershipActive) {
		t.Errorf("MembershipStatus: got %q, want %q", got.MembershipStatus, workflow.MembershipActive)
	}

	promoted, err = store.PromoteAdmin(ctx, "nobody@example.com")
	if err != nil {
		t.Fatalf("PromoteAdmin missing failed: %v", err)
	}
	if promoted {
		t.Error("promoting a missing account should report false")
	}
}
