// internal/domain/models/resource.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Resource categories.
const (
	CategoryGovernance         = "Governance & Organizational"
	CategoryChapterDevelopment = "Chapter Development"
	CategoryMembership         = "Membership Experience"
	CategoryCareerReadiness    = "Career Readiness"
	CategoryOther              = "Other"
)

// ResourceCategories lists the valid categories in display order.
var ResourceCategories = []string{
	CategoryGovernance,
	CategoryChapterDevelopment,
	CategoryMembership,
	CategoryCareerReadiness,
	CategoryOther,
}

// ValidResourceCategory reports whether c is a known category.
func ValidResourceCategory(c string) bool {
	for _, v := range ResourceCategories {
		if v == c {
			return true
		}
	}
	return false
}

// Resource file types.
var ResourceTypes = []string{"PDF", "DOCX", "XLSX", "ZIP", "LINK"}

// ValidResourceType reports whether t is a known resource file type.
func ValidResourceType(t string) bool {
	for _, v := range ResourceTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Resource is a shared library item. Items in the "Chapter Development"
// category are visible only to admins and moderators; the restriction is
// applied in the store query, not just in templates.
type Resource struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	Title    string             `bson:"title" json:"title"`
	TitleCI  string             `bson:"title_ci" json:"title_ci"`
	Category string             `bson:"category" json:"category"`
	Type     string             `bson:"type" json:"type"`
	URL      string             `bson:"url" json:"url"`
	Size     string             `bson:"size,omitempty" json:"size,omitempty"` // display label, e.g. "2.4 MB"
	Tags     []string           `bson:"tags,omitempty" json:"tags,omitempty"`

	UploadedBy primitive.ObjectID `bson:"uploaded_by" json:"uploaded_by"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}
