// internal/domain/models/chapter.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Chapter statuses.
const (
	ChapterActive   = "Active"
	ChapterInactive = "Inactive"
	ChapterPending  = "Pending"
)

// ValidChapterStatus reports whether s is a known chapter status.
func ValidChapterStatus(s string) bool {
	return s == ChapterActive || s == ChapterInactive || s == ChapterPending
}

// Chapter is a local affiliate group tied to an institution.
//
// Users reference chapters via chapter_id; deleting a chapter does not
// cascade to users. Dangling references render as "Unknown chapter".
type Chapter struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	NameCI      string             `bson:"name_ci" json:"name_ci"`
	Institution string             `bson:"institution" json:"institution"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	FoundedDate string             `bson:"founded_date,omitempty" json:"founded_date,omitempty"`
	Status      string             `bson:"status" json:"status"`

	PresidentName  string `bson:"president_name" json:"president_name"`
	PresidentEmail string `bson:"president_email" json:"president_email"`
	Email          string `bson:"email" json:"email"`
	LogoURL        string `bson:"logo_url,omitempty" json:"logo_url,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
