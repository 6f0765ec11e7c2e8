// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Membership types from the network's intake vocabulary.
const (
	MembershipIndividual = "Individual Member"
	MembershipChapter    = "Chapter Member"
	MembershipFellow     = "Fellow"
	MembershipAlumni     = "Alumni"
)

// MembershipTypes lists the valid membership types in display order.
var MembershipTypes = []string{
	MembershipIndividual,
	MembershipChapter,
	MembershipFellow,
	MembershipAlumni,
}

// ValidMembershipType reports whether t is one of the known membership types.
func ValidMembershipType(t string) bool {
	for _, v := range MembershipTypes {
		if v == t {
			return true
		}
	}
	return false
}

// SocialLinks holds the optional profile links a member may publish.
type SocialLinks struct {
	LinkedIn  string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	Twitter   string `bson:"twitter,omitempty" json:"twitter,omitempty"`
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
}

// User represents members, chapter moderators, and admins.
//
// NOTE:
//   - MembershipStatus and ChapterStatus are independent lifecycles. A user
//     can be an active member of the network while a chapter join/transfer
//     request is still pending; both show up in the same approval queue.
//   - Email is immutable after creation and unique (case-insensitive).
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName     string             `bson:"full_name" json:"full_name"`
	FullNameCI   string             `bson:"full_name_ci" json:"full_name_ci"` // lowercase, diacritics-stripped
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash,omitempty" json:"-"`
	AuthMethod   string             `bson:"auth_method,omitempty" json:"auth_method,omitempty"` // "password" | "google"
	Role         string             `bson:"role" json:"role"`                                   // admin | moderator | member

	MembershipType   string `bson:"membership_type,omitempty" json:"membership_type,omitempty"`
	MembershipStatus string `bson:"membership_status" json:"membership_status"` // workflow.MembershipState

	ChapterID     *primitive.ObjectID `bson:"chapter_id,omitempty" json:"chapter_id,omitempty"`
	ChapterStatus string              `bson:"chapter_status,omitempty" json:"chapter_status,omitempty"` // workflow.ChapterLinkState

	ProfileCompleted bool `bson:"profile_completed" json:"profile_completed"`

	Phone        string      `bson:"phone,omitempty" json:"phone,omitempty"`
	School       string      `bson:"school,omitempty" json:"school,omitempty"`
	Major        string      `bson:"major,omitempty" json:"major,omitempty"`
	Interests    []string    `bson:"interests,omitempty" json:"interests,omitempty"`       // open vocabulary
	Affiliations []string    `bson:"affiliations,omitempty" json:"affiliations,omitempty"` // admin-curated vocabulary
	Skills       string      `bson:"skills,omitempty" json:"skills,omitempty"`
	SocialLinks  SocialLinks `bson:"social_links,omitempty" json:"social_links,omitempty"`

	EmergencyContactName  string `bson:"emergency_contact_name,omitempty" json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string `bson:"emergency_contact_phone,omitempty" json:"emergency_contact_phone,omitempty"`

	JoinDate        string `bson:"join_date,omitempty" json:"join_date,omitempty"`
	ChapterJoinDate string `bson:"chapter_join_date,omitempty" json:"chapter_join_date,omitempty"`
	IntakeCohort    string `bson:"intake_cohort,omitempty" json:"intake_cohort,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
