// internal/app/store/oauthstate/oauthstatestore.go
package oauthstatestore

import (
	"context"
	"time"

	"github.com/dalemusser/chapterhub/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// TTL bounds how long a sign-in attempt may sit between redirect and
// callback. The TTL index on expires_at reaps abandoned tokens.
const TTL = 10 * time.Minute

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("oauth_states")}
}

// Issue creates and stores a fresh one-shot state token.
func (s *Store) Issue(ctx context.Context, returnURL string) (string, error) {
	now := time.Now().UTC()
	st := models.OAuthState{
		Token:     uuid.NewString(),
		ReturnURL: returnURL,
		CreatedAt: now,
		ExpiresAt: now.Add(TTL),
	}
	if _, err := s.c.InsertOne(ctx, st); err != nil {
		return "", err
	}
	return st.Token, nil
}

// Consume atomically deletes the token and returns it. A second consume of
// the same token, or an expired one, returns ok=false.
func (s *Store) Consume(ctx context.Context, token string) (models.OAuthState, bool, error) {
	var st models.OAuthState
	err := s.c.FindOneAndDelete(ctx, bson.M{"_id": token}).Decode(&st)
	if err == mongo.ErrNoDocuments {
		return models.OAuthState{}, false, nil
	}
	if err != nil {
		return models.OAuthState{}, false, err
	}
	if time.Now().UTC().After(st.ExpiresAt) {
		return models.OAuthState{}, false, nil
	}
	return st, true, nil
}
