package userstore

import (
	"context"

	"github.com/dalemusser/chapterhub/internal/app/system/auth"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fetcher loads fresh session-user data on every request so role, chapter,
// and profile-completion changes take effect without re-login.
type Fetcher struct {
	db *mongo.Database
}

// NewFetcher builds a Fetcher for the session middleware.
func NewFetcher(db *mongo.Database) *Fetcher {
	return &Fetcher{db: db}
}

// FetchSessionUser implements auth.UserFetcher. Returns (nil, nil) when the
// account no longer exists, which drops the session.
func (f *Fetcher) FetchSessionUser(ctx context.Context, id string) (*auth.SessionUser, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var u models.User
	err = f.db.Collection("users").FindOne(ctx, bson.M{"_id": oid}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	su := &auth.SessionUser{
		ID:               u.ID.Hex(),
		Name:             u.FullName,
		Email:            u.Email,
		Role:             u.Role,
		ProfileCompleted: u.ProfileCompleted,
	}
	if u.ChapterID != nil {
		su.ChapterID = u.ChapterID.Hex()

		// Dangling chapter references are tolerated; the name just stays
		// empty and renders as "Unknown chapter".
		var ch models.Chapter
		if err := f.db.Collection("chapters").
			FindOne(ctx, bson.M{"_id": *u.ChapterID}).
			Decode(&ch); err == nil {
			su.ChapterName = ch.Name
		}
	}
	return su, nil
}
