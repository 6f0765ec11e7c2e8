package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/chapterhub/internal/app/system/normalize"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"github.com/dalemusser/chapterhub/internal/domain/workflow"
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

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateEmail is returned when creating a user with an email that
	// already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	errBadRole        = errors.New(`role must be "admin"|"moderator"|"member"`)
)

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by normalized email.
// Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user after normalizing and validating fields.
//
// Regardless of what the caller supplies, new accounts start with membership
// Pending, an incomplete profile, and role "member" unless an admin role was
// set explicitly by the bootstrap promotion.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.FullName = normalize.Name(u.FullName)
	u.FullNameCI = text.Fold(u.FullName)
	u.Email = normalize.Email(u.Email)

	if u.Role == "" {
		u.Role = "member"
	}
	switch u.Role {
	case "admin", "moderator", "member":
	default:
		return models.User{}, errBadRole
	}

	u.MembershipStatus = string(workflow.MembershipPending)
	u.ProfileCompleted = false
	if u.ChapterID != nil {
		u.ChapterStatus = string(workflow.ChapterLinkPending)
	} else {
		u.ChapterStatus = string(workflow.ChapterLinkNone)
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	if u.JoinDate == "" {
		u.JoinDate = now.Format("2006-01-02")
	}

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// SetPassword replaces the stored bcrypt hash.
func (s *Store) SetPassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"password_hash": hash,
		"updated_at":    time.Now().UTC(),
	}})
	return err
}

// ProfileUpdate holds the fields a user may change about themselves.
// Email is deliberately absent: it is immutable after creation.
type ProfileUpdate struct {
	FullName       string
	Phone          string
	School         string
	Major          string
	MembershipType string
	Interests      []string
	Affiliations   []string
	Skills         string
	SocialLinks    models.SocialLinks
	EmergencyName  string
	EmergencyPhone string
	IntakeCohort   string
	ChapterID      *primitive.ObjectID
}

// SaveProfile updates a user's own profile fields. If the chapter changes,
// the chapter link resets to pending so the request enters the moderation
// queue; clearing the chapter clears the link state. Setting complete marks
// the profile as onboarded.
func (s *Store) SaveProfile(ctx context.Context, id primitive.ObjectID, upd ProfileUpdate, complete bool) error {
	cur, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	set := bson.M{
		"full_name":               normalize.Name(upd.FullName),
		"full_name_ci":            text.Fold(normalize.Name(upd.FullName)),
		"phone":                   upd.Phone,
		"school":                  upd.School,
		"major":                   upd.Major,
		"interests":               upd.Interests,
		"affiliations":            upd.Affiliations,
		"skills":                  upd.Skills,
		"social_links":            upd.SocialLinks,
		"emergency_contact_name":  upd.EmergencyName,
		"emergency_contact_phone": upd.EmergencyPhone,
		"intake_cohort":           upd.IntakeCohort,
		"updated_at":              time.Now().UTC(),
	}
	if models.ValidMembershipType(upd.MembershipType) {
		set["membership_type"] = upd.MembershipType
	}
	if complete {
		set["profile_completed"] = true
	}

	switch {
	case upd.ChapterID == nil && cur.ChapterID != nil:
		set["chapter_id"] = nil
		set["chapter_status"] = string(workflow.ChapterLinkNone)
	case upd.ChapterID != nil && (cur.ChapterID == nil || *cur.ChapterID != *upd.ChapterID):
		set["chapter_id"] = *upd.ChapterID
		set["chapter_status"] = string(workflow.ChapterLinkPending)
		set["chapter_join_date"] = time.Now().UTC().Format("2006-01-02")
	}

	_, err = s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}

// AdminUpdate holds the fields the admin edit flow may set directly. This
// path intentionally bypasses the approval workflow: it is the only way to
// resurrect a rejected record.
type AdminUpdate struct {
	Role             string
	MembershipType   string
	MembershipStatus workflow.MembershipState
	ChapterID        *primitive.ObjectID
	ChapterStatus    workflow.ChapterLinkState
}

// ApplyAdminUpdate sets role, membership state, and chapter affiliation
// without running the decision workflow.
func (s *Store) ApplyAdminUpdate(ctx context.Context, id primitive.ObjectID, upd AdminUpdate) error {
	switch upd.Role {
	case "admin", "moderator", "member":
	default:
		return errBadRole
	}
	if !workflow.ValidMembershipState(upd.MembershipStatus) {
		return errors.New("invalid membership status")
	}

	set := bson.M{
		"role":              upd.Role,
		"membership_status": string(upd.MembershipStatus),
		"chapter_status":    string(upd.ChapterStatus),
		"updated_at":        time.Now().UTC(),
	}
	if models.ValidMembershipType(upd.MembershipType) {
		set["membership_type"] = upd.MembershipType
	}
	if upd.ChapterID != nil {
		set["chapter_id"] = *upd.ChapterID
	} else {
		set["chapter_id"] = nil
	}

	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}

// ApplyDecision runs the approval workflow for one user: both the membership
// and chapter-link lifecycles transition independently if pending. It returns
// the updated user and whether anything changed (false means the record was
// already settled, a harmless duplicate decision).
func (s *Store) ApplyDecision(ctx context.Context, id primitive.ObjectID, d workflow.Decision) (*models.User, bool, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}

	m, c, changed := workflow.Decide(
		workflow.MembershipState(u.MembershipStatus),
		workflow.ChapterLinkState(u.ChapterStatus),
		d,
	)
	if !changed {
		return u, false, nil
	}

	_, err = s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"membership_status": string(m),
		"chapter_status":    string(c),
		"updated_at":        time.Now().UTC(),
	}})
	if err != nil {
		return nil, false, err
	}
	u.MembershipStatus = string(m)
	u.ChapterStatus = string(c)
	return u, true, nil
}

// pendingFilter matches users that belong in the approval queue: membership
// pending or chapter link pending. The same filter serves admins and
// moderators; chapterScope narrows it to one chapter for moderators.
func pendingFilter(chapterScope *primitive.ObjectID) bson.M {
	f := bson.M{"$or": []bson.M{
		{"membership_status": string(workflow.MembershipPending)},
		{"chapter_status": string(workflow.ChapterLinkPending)},
	}}
	if chapterScope != nil {
		f["chapter_id"] = *chapterScope
	}
	return f
}

// PendingApprovals lists users awaiting a decision, oldest first. Pass a
// chapter id to scope the queue to a single chapter (moderators).
func (s *Store) PendingApprovals(ctx context.Context, chapterScope *primitive.ObjectID) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := s.c.Find(ctx, pendingFilter(chapterScope), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CountPendingApprovals returns the size of the approval queue for the
// given scope.
func (s *Store) CountPendingApprovals(ctx context.Context, chapterScope *primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, pendingFilter(chapterScope))
}

// Find returns users matching the given filter with optional find options.
// Callers build the filter through memberpolicy so visibility scoping stays
// in one place.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.User, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Count returns the number of users matching the filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

// Delete removes a user by ID. Returns the number of documents deleted.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// EmailExists checks whether a user with the given email already exists.
func (s *Store) EmailExists(ctx context.Context, email string) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Err()
	if err == nil {
		return true, nil
	}
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	return false, err
}

// PromoteAdmin raises the user with the given email to admin and activates
// their membership. Used by the startup bootstrap so a fresh deployment has
// a working admin account.
func (s *Store) PromoteAdmin(ctx context.Context, email string) (bool, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"email": normalize.Email(email)},
		bson.M{"$set": bson.M{
			"role":              "admin",
			"membership_status": string(workflow.MembershipActive),
			"updated_at":        time.Now().UTC(),
		}})
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}
