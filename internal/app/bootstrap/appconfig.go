// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging, CORS, timeouts). AppConfig is everything specific to
// ChapterHub: database connection, session cookies, OAuth credentials,
// and the startup admin bootstrap.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions
	SessionDomain string // Cookie domain (blank means current host)

	// Base URL for OAuth callbacks and password reset links
	BaseURL string // e.g., "https://chapterhub.org" or "http://localhost:3000"

	// Google OAuth (sign-in is password-only when these are blank)
	GoogleClientID     string
	GoogleClientSecret string

	// Password reset tokens
	ResetTokenKey    string
	ResetTokenExpiry time.Duration

	// Admin bootstrap: this email is promoted to admin on startup
	AdminEmail string
}
