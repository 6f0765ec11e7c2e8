// internal/app/store/resources/resourcestore.go
package resourcestore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/chapterhub/internal/app/system/normalize"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("resources")}
}

// Create inserts a library item after validating category and type.
func (s *Store) Create(ctx context.Context, r models.Resource) (models.Resource, error) {
	if !models.ValidResourceCategory(r.Category) {
		return models.Resource{}, errors.New("unknown resource category")
	}
	if !models.ValidResourceType(r.Type) {
		return models.Resource{}, errors.New("unknown resource type")
	}

	r.ID = primitive.NewObjectID()
	r.Title = normalize.Name(r.Title)
	r.TitleCI = text.Fold(r.Title)
	r.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, r); err != nil {
		return models.Resource{}, err
	}
	return r, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Resource, error) {
	var r models.Resource
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&r); err != nil {
		return nil, err
	}
	return &r, nil
}

// List returns items from the given categories, sorted by folded title.
// Callers obtain the category list from resourcepolicy so the staff-only
// category is excluded in the query itself.
func (s *Store) List(ctx context.Context, categories []string) ([]models.Resource, error) {
	filter := bson.M{"category": bson.M{"$in": categories}}
	opts := options.Find().SetSort(bson.D{{Key: "title_ci", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Resource
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of items in the given categories.
func (s *Store) Count(ctx context.Context, categories []string) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"category": bson.M{"$in": categories}})
}

// Delete removes a library item by ID. Returns the number of documents
// deleted.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
