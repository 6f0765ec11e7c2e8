// internal/app/store/chapters/chapterstore.go
package chapterstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/chapterhub/internal/app/system/normalize"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var ErrDuplicateChapter = errors.New("a chapter with this name already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("chapters")}
}

func (s *Store) Create(ctx context.Context, ch models.Chapter) (models.Chapter, error) {
	now := time.Now().UTC()
	ch.ID = primitive.NewObjectID()
	ch.Name = normalize.Name(ch.Name)
	ch.NameCI = text.Fold(ch.Name)
	ch.PresidentEmail = normalize.Email(ch.PresidentEmail)
	ch.Email = normalize.Email(ch.Email)
	if ch.Status == "" {
		ch.Status = models.ChapterPending
	}
	if !models.ValidChapterStatus(ch.Status) {
		return models.Chapter{}, errors.New(`chapter status must be "Active"|"Inactive"|"Pending"`)
	}
	ch.CreatedAt = now
	ch.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, ch); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Chapter{}, ErrDuplicateChapter
		}
		return models.Chapter{}, err
	}
	return ch, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Chapter, error) {
	var ch models.Chapter
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&ch); err != nil {
		return models.Chapter{}, err
	}
	return ch, nil
}

// GetByIDs loads multiple chapters by their ObjectIDs.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Chapter, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var chapters []models.Chapter
	if err := cur.All(ctx, &chapters); err != nil {
		return nil, err
	}
	return chapters, nil
}

// NameMap returns id -> name for the given chapter ids. Missing ids simply
// have no entry; callers render those as "Unknown chapter".
func (s *Store) NameMap(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error) {
	chapters, err := s.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	m := make(map[primitive.ObjectID]string, len(chapters))
	for _, ch := range chapters {
		m[ch.ID] = ch.Name
	}
	return m, nil
}

// Update modifies a chapter's mutable fields and refreshes UpdatedAt.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, ch models.Chapter) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if ch.Name != "" {
		set["name"] = normalize.Name(ch.Name)
		set["name_ci"] = text.Fold(normalize.Name(ch.Name))
	}
	if ch.Institution != "" {
		set["institution"] = ch.Institution
	}
	if ch.Location != "" {
		set["location"] = ch.Location
	}
	if ch.FoundedDate != "" {
		set["founded_date"] = ch.FoundedDate
	}
	if ch.Status != "" {
		if !models.ValidChapterStatus(ch.Status) {
			return errors.New(`chapter status must be "Active"|"Inactive"|"Pending"`)
		}
		set["status"] = ch.Status
	}
	if ch.PresidentName != "" {
		set["president_name"] = ch.PresidentName
	}
	if ch.PresidentEmail != "" {
		set["president_email"] = normalize.Email(ch.PresidentEmail)
	}
	if ch.Email != "" {
		set["email"] = normalize.Email(ch.Email)
	}
	if ch.LogoURL != "" {
		set["logo_url"] = ch.LogoURL
	}

	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateChapter
		}
		return err
	}
	return nil
}

// Delete removes a chapter by ID. User records referencing it are left
// untouched; their chapter_id dangles by design.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Find returns chapters matching the filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Chapter, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var chapters []models.Chapter
	if err := cur.All(ctx, &chapters); err != nil {
		return nil, err
	}
	return chapters, nil
}

// ListAll returns every chapter sorted by folded name.
func (s *Store) ListAll(ctx context.Context) ([]models.Chapter, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}})
	return s.Find(ctx, bson.M{}, opts)
}

// ListActive returns active chapters sorted by folded name, for the public
// directory and chapter pickers.
func (s *Store) ListActive(ctx context.Context) ([]models.Chapter, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}})
	return s.Find(ctx, bson.M{"status": models.ChapterActive}, opts)
}

// Count returns the number of chapters matching the filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
