package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/chapterhub/internal/domain/models"
	"github.com/dalemusser/chapterhub/internal/domain/workflow"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateChapter creates an active test chapter with the given name.
func (f *Fixtures) CreateChapter(ctx context.Context, name string) models.Chapter {
	f.t.Helper()

	now := time.Now().UTC()
	ch := models.Chapter{
		ID:          primitive.NewObjectID(),
		Name:        name,
		NameCI:      text.Fold(name),
		Institution: "Test University",
		Location:    "Test City, TS",
		Status:      models.ChapterActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("chapters").InsertOne(ctx, ch); err != nil {
		f.t.Fatalf("failed to create test chapter: %v", err)
	}
	return ch
}

// CreateUser creates a test user with the given role and membership state.
// Pass nil chapterID for users with no chapter affiliation.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email, role string, membership workflow.MembershipState, chapterID *primitive.ObjectID) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:               primitive.NewObjectID(),
		FullName:         fullName,
		FullNameCI:       text.Fold(fullName),
		Email:            email,
		AuthMethod:       "password",
		Role:             role,
		MembershipType:   models.MembershipIndividual,
		MembershipStatus: string(membership),
		ChapterID:        chapterID,
		ProfileCompleted: true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if chapterID != nil {
		user.ChapterStatus = string(workflow.ChapterLinkApproved)
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateAdmin creates an active test admin.
func (f *Fixtures) CreateAdmin(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, "admin", workflow.MembershipActive, nil)
}

// CreateModerator creates an active test moderator in the given chapter.
func (f *Fixtures) CreateModerator(ctx context.Context, fullName, email string, chapterID primitive.ObjectID) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, "moderator", workflow.MembershipActive, &chapterID)
}

// CreateMember creates an active test member in the given chapter.
func (f *Fixtures) CreateMember(ctx context.Context, fullName, email string, chapterID primitive.ObjectID) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, "member", workflow.MembershipActive, &chapterID)
}

// CreatePendingMember creates a member awaiting membership approval, with a
// pending chapter link when chapterID is set.
func (f *Fixtures) CreatePendingMember(ctx context.Context, fullName, email string, chapterID *primitive.ObjectID) models.User {
	f.t.Helper()

	u := f.CreateUser(ctx, fullName, email, "member", workflow.MembershipPending, chapterID)
	if chapterID != nil {
		_, err := f.db.Collection("users").UpdateByID(ctx, u.ID, bson.M{
			"$set": bson.M{"chapter_status": string(workflow.ChapterLinkPending)},
		})
		if err != nil {
			f.t.Fatalf("failed to mark chapter link pending: %v", err)
		}
		u.ChapterStatus = string(workflow.ChapterLinkPending)
	}
	return u
}

// CreateOpportunity creates a test opportunity with the given status. Pass
// workflow.OpportunityLegacy to create a document without a status field.
func (f *Fixtures) CreateOpportunity(ctx context.Context, title string, status workflow.OpportunityStatus, createdBy primitive.ObjectID) models.Opportunity {
	f.t.Helper()

	o := models.Opportunity{
		ID:           primitive.NewObjectID(),
		Title:        title,
		TitleCI:      text.Fold(title),
		Organization: "Test Org",
		Type:         models.OpportunityInternship,
		Location:     "Remote",
		Deadline:     "2026-12-31",
		Description:  "Test description",
		Link:         "https://example.com/apply",
		Status:       string(status),
		CreatedBy:    createdBy,
		CreatedAt:    time.Now().UTC(),
	}

	if _, err := f.db.Collection("opportunities").InsertOne(ctx, o); err != nil {
		f.t.Fatalf("failed to create test opportunity: %v", err)
	}
	return o
}

// CreateResource creates a test library item in the given category.
func (f *Fixtures) CreateResource(ctx context.Context, title, category string, uploadedBy primitive.ObjectID) models.Resource {
	f.t.Helper()

	r := models.Resource{
		ID:         primitive.NewObjectID(),
		Title:      title,
		TitleCI:    text.Fold(title),
		Category:   category,
		Type:       "PDF",
		URL:        "https://example.com/files/test.pdf",
		UploadedBy: uploadedBy,
		CreatedAt:  time.Now().UTC(),
	}

	if _, err := f.db.Collection("resources").InsertOne(ctx, r); err != nil {
		f.t.Fatalf("failed to create test resource: %v", err)
	}
	return r
}

// CreateEvent creates a test event. Pass nil chapterID for a global event.
func (f *Fixtures) CreateEvent(ctx context.Context, title string, chapterID *primitive.ObjectID, createdBy primitive.ObjectID) models.Event {
	f.t.Helper()

	e := models.Event{
		ID:        primitive.NewObjectID(),
		Title:     title,
		Date:      "2026-10-15",
		Time:      "18:00",
		Location:  "Test Hall",
		ChapterID: chapterID,
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := f.db.Collection("events").InsertOne(ctx, e); err != nil {
		f.t.Fatalf("failed to create test event: %v", err)
	}
	return e
}
