package eventstore_test

import (
	"testing"

	eventstore "github.com/dalemusser/chapterhub/internal/app/store/events"
	"github.com/dalemusser/chapterhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_List_GlobalOnlyViewer(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := eventstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	by := primitive.NewObjectID()
	ch := fx.CreateChapter(ctx, "Alpha Chapter")
	fx.CreateEvent(ctx, "National Summit", nil, by)
	fx.CreateEvent(ctx, "Alpha Meetup", &ch.ID, by)

	events, err := store.List(ctx, eventstore.VisibleFilter(nil, false))
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("events: got %d, want 1", len(events))
	}
	if events[0].Title != "National Summit" {
		t.Errorf("event: got %q, want %q", events[0].Title, "National Summit")
	}
}

func TestStore_List_ChapterViewer(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := eventstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	by := primitive.NewObjectID()
	chA := fx.CreateChapter(ctx, "Alpha Chapter")
	chB := fx.CreateChapter(ctx, "Beta Chapter")
	fx.CreateEvent(ctx, "National Summit", nil, by)
	fx.CreateEvent(ctx, "Alpha Meetup", &chA.ID, by)
	fx.CreateEvent(ctx, "Beta Meetup", &chB.ID, by)

	events, err := store.List(ctx, eventstore.VisibleFilter(&chA.ID, false))
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events: got %d, want 2", len(events))
	}
	for _, e := range events {
		if e.Title == "Beta Meetup" {
			t.Error("another chapter's event must not be visible")
		}
	}
}

func TestStore_List_AdminSeesAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := eventstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	by := primitive.NewObjectID()
	ch := fx.CreateChapter(ctx, "Alpha Chapter")
	fx.CreateEvent(ctx, "National Summit", nil, by)
	fx.CreateEvent(ctx, "Alpha Meetup", &ch.ID, by)

	events, err := store.List(ctx, eventstore.VisibleFilter(nil, true))
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("events: got %d, want 2", len(events))
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := eventstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	e := fx.CreateEvent(ctx, "Doomed Event", nil, primitive.NewObjectID())

	n, err := store.Delete(ctx, e.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted count: got %d, want 1", n)
	}
}
