// internal/app/store/opportunities/opportunitystore.go
package opportunitystore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/chapterhub/internal/app/system/normalize"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"github.com/dalemusser/chapterhub/internal/domain/workflow"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/microcosm-cc/bluemonday"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c         *mongo.Collection
	sanitizer *bluemonday.Policy
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:         db.Collection("opportunities"),
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// Create inserts a submitted listing. Every submission enters the queue as
// pending regardless of what the caller set; the description is sanitized
// before it is stored.
func (s *Store) Create(ctx context.Context, o models.Opportunity) (models.Opportunity, error) {
	if !models.ValidOpportunityType(o.Type) {
		return models.Opportunity{}, errors.New("unknown opportunity type")
	}

	o.ID = primitive.NewObjectID()
	o.Title = normalize.Name(o.Title)
	o.TitleCI = text.Fold(o.Title)
	o.Description = s.sanitizer.Sanitize(o.Description)
	o.Status = string(workflow.OpportunityPending)
	o.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, o); err != nil {
		return models.Opportunity{}, err
	}
	return o, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Opportunity, error) {
	var o models.Opportunity
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&o); err != nil {
		return nil, err
	}
	return &o, nil
}

// ApplyDecision runs the review workflow for one listing. A listing that is
// not pending is left untouched and changed is false.
func (s *Store) ApplyDecision(ctx context.Context, id primitive.ObjectID, d workflow.Decision) (*models.Opportunity, bool, error) {
	o, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}

	next, changed := workflow.DecideOpportunity(workflow.OpportunityStatus(o.Status), d)
	if !changed {
		return o, false, nil
	}

	_, err = s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{"status": string(next)}})
	if err != nil {
		return nil, false, err
	}
	o.Status = string(next)
	return o, true, nil
}

// BrowseFilter matches listings that appear on the public board: approved,
// plus documents that predate the status field.
func BrowseFilter() bson.M {
	return bson.M{"$or": []bson.M{
		{"status": string(workflow.OpportunityApproved)},
		{"status": bson.M{"$exists": false}},
		{"status": ""},
	}}
}

// Browse returns visible listings, newest first.
func (s *Store) Browse(ctx context.Context) ([]models.Opportunity, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return s.find(ctx, BrowseFilter(), opts)
}

// ListPending returns listings awaiting review, oldest first.
func (s *Store) ListPending(ctx context.Context) ([]models.Opportunity, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	return s.find(ctx, bson.M{"status": string(workflow.OpportunityPending)}, opts)
}

// CountPending returns the review queue size.
func (s *Store) CountPending(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"status": string(workflow.OpportunityPending)})
}

// ListByCreator returns a user's own submissions, any status, newest first.
func (s *Store) ListByCreator(ctx context.Context, userID primitive.ObjectID) ([]models.Opportunity, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return s.find(ctx, bson.M{"created_by": userID}, opts)
}

// Delete removes a listing by ID. Returns the number of documents deleted.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *Store) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Opportunity, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Opportunity
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
