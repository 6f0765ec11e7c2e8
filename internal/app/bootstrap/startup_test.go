package bootstrap

import (
	"testing"

	"github.com/dalemusser/chapterhub/internal/domain/models"
	"github.com/dalemusser/chapterhub/internal/domain/workflow"
	"github.com/dalemusser/chapterhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func TestStartup_PromotesConfiguredAdmin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	u := f.CreatePendingMember(ctx, "Pat Organizer", "pat@example.org", nil)

	deps := DBDeps{MongoDatabase: db}
	appCfg := AppConfig{AdminEmail: "pat@example.org"}

	if err := Startup(ctx, nil, appCfg, deps, zap.NewNop()); err != nil {
		t.Fatalf("Startup failed: %v", err)
	}

	var got models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"_id": u.ID}).Decode(&got); err != nil {
		t.Fatalf("failed to load user: %v", err)
	}
	if got.Role != "admin" {
		t.Errorf("role: got %q, want %q", got.Role, "admin")
	}
	if got.MembershipStatus != string(workflow.MembershipActive) {
		t.Errorf("membership status: got %q, want %q", got.MembershipStatus, workflow.MembershipActive)
	}
}

func TestStartup_NoAdminEmailConfigured(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{MongoDatabase: db}

	if err := Startup(ctx, nil, AppConfig{}, deps, zap.NewNop()); err != nil {
		t.Fatalf("Startup failed: %v", err)
	}
}

func TestStartup_UnknownAdminEmailIsNotAnError(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{MongoDatabase: db}
	appCfg := AppConfig{AdminEmail: "nobody@example.org"}

	if err := Startup(ctx, nil, appCfg, deps, zap.NewNop()); err != nil {
		t.Fatalf("Startup failed: %v", err)
	}
}
