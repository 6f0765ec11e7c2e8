// internal/domain/models/oauthstate.go
package models

import "time"

// OAuthState is a one-shot anti-CSRF token for the federated sign-in flow.
// Tokens are deleted on first use and expire via a TTL index on expires_at.
type OAuthState struct {
	Token     string    `bson:"_id" json:"token"`
	ReturnURL string    `bson:"return_url,omitempty" json:"return_url,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
}
