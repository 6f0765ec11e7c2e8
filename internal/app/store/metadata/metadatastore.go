// internal/app/store/metadata/metadatastore.go
package metadatastore

import (
	"context"
	"strings"
	"time"

	"github.com/dalemusser/chapterhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("metadata")}
}

// Get loads a vocabulary by name. A missing document is not an error; it
// returns an empty vocabulary so first use works on a fresh database.
func (s *Store) Get(ctx context.Context, name string) (models.Vocabulary, error) {
	var v models.Vocabulary
	err := s.c.FindOne(ctx, bson.M{"_id": name}).Decode(&v)
	if err == mongo.ErrNoDocuments {
		return models.Vocabulary{Name: name}, nil
	}
	if err != nil {
		return models.Vocabulary{}, err
	}
	return v, nil
}

// Save replaces a vocabulary's value list wholesale, preserving the order
// given. Blank entries are dropped.
func (s *Store) Save(ctx context.Context, name string, values []string, updatedBy string) error {
	clean := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			clean = append(clean, v)
		}
	}

	opts := options.Update().SetUpsert(true)
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": name},
		bson.M{"$set": bson.M{
			"values":     clean,
			"updated_at": time.Now().UTC(),
			"updated_by": updatedBy,
		}},
		opts)
	return err
}

// AppendValues adds values not already present, case-insensitively, to the
// end of a vocabulary. Used for the open tags vocabulary when members enter
// new interests during profile setup.
func (s *Store) AppendValues(ctx context.Context, name string, values []string) error {
	cur, err := s.Get(ctx, name)
	if err != nil {
		return err
	}

	seen := make(map[string]bool, len(cur.Values))
	for _, v := range cur.Values {
		seen[strings.ToLower(v)] = true
	}

	merged := cur.Values
	added := false
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[strings.ToLower(v)] {
			continue
		}
		seen[strings.ToLower(v)] = true
		merged = append(merged, v)
		added = true
	}
	if !added {
		return nil
	}

	opts := options.Update().SetUpsert(true)
	_, err = s.c.UpdateOne(ctx,
		bson.M{"_id": name},
		bson.M{"$set": bson.M{
			"values":     merged,
			"updated_at": time.Now().UTC(),
		}},
		opts)
	return err
}
