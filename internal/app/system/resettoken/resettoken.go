// Package resettoken issues and verifies the signed, expiring tokens used
// in password-reset links. Tokens are stateless JWTs bound to a single user
// id, so no reset-code collection is needed.
package resettoken

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "chapterhub"

// ErrInvalidToken is returned for expired, malformed, or mis-signed tokens.
var ErrInvalidToken = errors.New("invalid or expired reset token")

// Issuer creates and verifies password-reset tokens with a shared secret.
type Issuer struct {
	secret []byte
	expiry time.Duration
}

// New builds an Issuer. The secret must be non-empty; expiry bounds how long
// a mailed reset link stays usable.
func New(secret string, expiry time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, fmt.Errorf("reset token secret is empty")
	}
	if expiry <= 0 {
		expiry = 30 * time.Minute
	}
	return &Issuer{secret: []byte(secret), expiry: expiry}, nil
}

// Issue returns a signed token for the given user id.
func (i *Issuer) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.expiry)),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(i.secret)
}

// Verify checks the token signature and expiry and returns the user id it
// was issued for.
func (i *Issuer) Verify(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
