package chapterstore_test

import (
	"testing"

	chapterstore "github.com/dalemusser/chapterhub/internal/app/store/chapters"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"github.com/dalemusser/chapterhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := chapterstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Chapter{
		Name:        "  Gamma   Chapter ",
		Institution: "State University",
		Status:      models.ChapterActive,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.Name != "Gamma Chapter" {
		t.Errorf("Name: got %q, want %q", created.Name, "Gamma Chapter")
	}
	if created.NameCI != "gamma chapter" {
		t.Errorf("NameCI: got %q, want %q", created.NameCI, "gamma chapter")
	}
}

func TestStore_Create_DefaultStatusPending(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := chapterstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Chapter{Name: "New Chapter"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Status != models.ChapterPending {
		t.Errorf("Status: got %q, want %q", created.Status, models.ChapterPending)
	}
}

func TestStore_ListActive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := chapterstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateChapter(ctx, "Zeta Chapter")
	fx.CreateChapter(ctx, "Alpha Chapter")
	if _, err := store.Create(ctx, models.Chapter{Name: "Dormant Chapter", Status: models.ChapterInactive}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	active, err := store.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive failed: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("active chapters: got %d, want 2", len(active))
	}
	if active[0].Name != "Alpha Chapter" || active[1].Name != "Zeta Chapter" {
		t.Errorf("sort order: got %q then %q", active[0].Name, active[1].Name)
	}
}

func TestStore_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := chapterstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ch := fx.CreateChapter(ctx, "Alpha Chapter")

	err := store.Update(ctx, ch.ID, models.Chapter{
		Name:   "Alpha Chapter Renamed",
		Status: models.ChapterInactive,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := store.GetByID(ctx, ch.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Alpha Chapter Renamed" {
		t.Errorf("Name: got %q, want %q", got.Name, "Alpha Chapter Renamed")
	}
	if got.NameCI != "alpha chapter renamed" {
		t.Errorf("NameCI: got %q, want %q", got.NameCI, "alpha chapter renamed")
	}
	if got.Status != models.ChapterInactive {
		t.Errorf("Status: got %q, want %q", got.Status, models.ChapterInactive)
	}
	// Untouched fields survive a partial update.
	if got.Institution != "Test University" {
		t.Errorf("Institution: got %q, want %q", got.Institution, "Test University")
	}
}

func TestStore_NameMap(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := chapterstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := fx.CreateChapter(ctx, "Alpha Chapter")
	b := fx.CreateChapter(ctx, "Beta Chapter")

	m, err := store.NameMap(ctx, []primitive.ObjectID{a.ID, b.ID})
	if err != nil {
		t.Fatalf("NameMap failed: %v", err)
	}
	if m[a.ID] != "Alpha Chapter" || m[b.ID] != "Beta Chapter" {
		t.Errorf("NameMap: got %v", m)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := chapterstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ch := fx.CreateChapter(ctx, "Doomed Chapter")

	n, err := store.Delete(ctx, ch.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted count: got %d, want 1", n)
	}
}
