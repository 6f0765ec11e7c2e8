// internal/domain/models/event.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event is a calendar entry. Events without a chapter are global and visible
// to everyone; chapter events are visible to that chapter's members and to
// admins. ChapterName is denormalized at creation for display.
type Event struct {
	ID          primitive.ObjectID  `bson:"_id" json:"id"`
	Title       string              `bson:"title" json:"title"`
	Date        string              `bson:"date" json:"date"`
	Time        string              `bson:"time" json:"time"`
	Location    string              `bson:"location" json:"location"`
	Description string              `bson:"description,omitempty" json:"description,omitempty"`
	ChapterID   *primitive.ObjectID `bson:"chapter_id,omitempty" json:"chapter_id,omitempty"`
	ChapterName string              `bson:"chapter_name,omitempty" json:"chapter_name,omitempty"`

	CreatedBy primitive.ObjectID `bson:"created_by" json:"created_by"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
