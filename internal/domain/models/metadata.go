// internal/domain/models/metadata.go
package models

import "time"

// Metadata vocabulary document names.
const (
	VocabularyTags         = "tags"         // interests; open, members may add values
	VocabularyAffiliations = "affiliations" // closed, admin-curated only
)

// Vocabulary is a singleton metadata document holding an ordered list of
// strings. Order is preserved exactly as saved.
type Vocabulary struct {
	Name      string    `bson:"_id" json:"name"`
	Values    []string  `bson:"values" json:"values"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
	UpdatedBy string    `bson:"updated_by,omitempty" json:"updated_by,omitempty"`
}
