package opportunitystore_test

import (
	"strings"
	"testing"

	opportunitystore "github.com/dalemusser/chapterhub/internal/app/store/opportunities"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"github.com/dalemusser/chapterhub/internal/domain/workflow"
	"github.com/dalemusser/chapterhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create_ForcesPendingAndSanitizes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := opportunitystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Opportunity{
		Title:        "Summer Internship",
		Organization: "Acme",
		Type:         models.OpportunityInternship,
		Description:  `<p>Great role</p><script>alert("x")</script>`,
		Link:         "https://example.com",
		Status:       string(workflow.OpportunityApproved),
		CreatedBy:    primitive.NewObjectID(),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.Status != string(workflow.OpportunityPending) {
		t.Errorf("Status: got %q, want %q", created.Status, workflow.OpportunityPending)
	}
	if strings.Contains(created.Description, "<script>") {
		t.Errorf("description was not sanitized: %q", created.Description)
	}
	if !strings.Contains(created.Description, "Great role") {
		t.Errorf("sanitizing stripped legitimate content: %q", created.Description)
	}
}

func TestStore_Create_UnknownType(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := opportunitystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, models.Opportunity{
		Title: "Bad Listing",
		Type:  "Volunteering",
	})
	if err == nil {
		t.Error("expected unknown opportunity type to be rejected")
	}
}

func TestStore_Browse_LegacyAndApprovedVisible(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := opportunitystore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	by := primitive.NewObjectID()
	fx.CreateOpportunity(ctx, "Approved One", workflow.OpportunityApproved, by)
	fx.CreateOpportunity(ctx, "Legacy One", workflow.OpportunityLegacy, by)
	fx.CreateOpportunity(ctx, "Pending One", workflow.OpportunityPending, by)
	fx.CreateOpportunity(ctx, "Rejected One", workflow.OpportunityRejected, by)

	visible, err := store.Browse(ctx)
	if err != nil {
		t.Fatalf("Browse failed: %v", err)
	}
	if len(visible) != 2 {
		t.Fatalf("visible listings: got %d, want 2", len(visible))
	}
	for _, o := range visible {
		if o.Title == "Pending One" || o.Title == "Rejected One" {
			t.Errorf("listing %q should not be visible", o.Title)
		}
	}
}

func TestStore_ApplyDecision(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := opportunitystore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	by := primitive.NewObjectID()
	o := fx.CreateOpportunity(ctx, "Pending One", workflow.OpportunityPending, by)

	got, changed, err := store.ApplyDecision(ctx, o.ID, workflow.Approve)
	if err != nil {
		t.Fatalf("ApplyDecision failed: %v", err)
	}
	if !changed {
		t.Fatal("expected a pending listing to change")
	}
	if got.Status != string(workflow.OpportunityApproved) {
		t.Errorf("Status: got %q, want %q", got.Status, workflow.OpportunityApproved)
	}

	// Duplicate decision is harmless.
	got, changed, err = store.ApplyDecision(ctx, o.ID, workflow.Reject)
	if err != nil {
		t.Fatalf("duplicate ApplyDecision failed: %v", err)
	}
	if changed {
		t.Error("a settled listing must not change on a later decision")
	}
	if got.Status != string(workflow.OpportunityApproved) {
		t.Errorf("Status after duplicate: got %q, want %q", got.Status, workflow.OpportunityApproved)
	}
}

func TestStore_ApplyDecision_LegacyUntouched(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := opportunitystore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	o := fx.CreateOpportunity(ctx, "Legacy One", workflow.OpportunityLegacy, primitive.NewObjectID())

	_, changed, err := store.ApplyDecision(ctx, o.ID, workflow.Reject)
	if err != nil {
		t.Fatalf("ApplyDecision failed: %v", err)
	}
	if changed {
		t.Error("legacy listings are not reviewable")
	}
}

func TestStore_ListPending(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := opportunitystore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	by := primitive.NewObjectID()
	fx.CreateOpportunity(ctx, "Pending One", workflow.OpportunityPending, by)
	fx.CreateOpportunity(ctx, "Approved One", workflow.OpportunityApproved, by)

	pending, err := store.ListPending(ctx)
	if err != nil {
		t.Fatalf("ListPending failed: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("pending listings: got %d, want 1", len(pending))
	}
	if pending[0].Title != "Pending One" {
		t.Errorf("pending listing: got %q, want %q", pending[0].Title, "Pending One")
	}
}
