// internal/domain/models/opportunity.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Opportunity types.
const (
	OpportunityInternship  = "Internship"
	OpportunityFellowship  = "Fellowship"
	OpportunityJob         = "Job"
	OpportunityScholarship = "Scholarship"
	OpportunityConference  = "Conference"
)

// OpportunityTypes lists the valid opportunity types in display order.
var OpportunityTypes = []string{
	OpportunityInternship,
	OpportunityFellowship,
	OpportunityJob,
	OpportunityScholarship,
	OpportunityConference,
}

// ValidOpportunityType reports whether t is a known opportunity type.
func ValidOpportunityType(t string) bool {
	for _, v := range OpportunityTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Opportunity is an externally submitted listing that requires admin
// approval before it appears on the public board.
//
// Status is absent on documents created before the approval workflow
// existed; those legacy records are treated as approved (explicitly, in
// workflow.OpportunityVisible).
type Opportunity struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	Title        string             `bson:"title" json:"title"`
	TitleCI      string             `bson:"title_ci" json:"title_ci"`
	Organization string             `bson:"organization" json:"organization"`
	Type         string             `bson:"type" json:"type"`
	Location     string             `bson:"location" json:"location"`
	Deadline     string             `bson:"deadline" json:"deadline"`
	Description  string             `bson:"description" json:"description"` // sanitized HTML
	Link         string             `bson:"link" json:"link"`
	Tags         []string           `bson:"tags,omitempty" json:"tags,omitempty"`

	Status    string             `bson:"status,omitempty" json:"status,omitempty"` // workflow.OpportunityStatus; absent on legacy docs
	CreatedBy primitive.ObjectID `bson:"created_by" json:"created_by"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
