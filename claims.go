package authkit

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenKind selects which secret and time-to-live profile a token is bound to.
// Kinds are not interchangeable: a token minted for one kind fails
// verification under every other kind.
type TokenKind string

const (
	// TokenKindAccess is the short lived bearer credential for API requests
	TokenKindAccess TokenKind = "access"
	// TokenKindRefresh is the long lived credential used to mint new pairs
	TokenKindRefresh TokenKind = "refresh"
	// TokenKindConfirmation is the one-time email confirmation intent
	TokenKindConfirmation TokenKind = "confirmation"
	// TokenKindResetPassword is the one-time password reset intent
	TokenKindResetPassword TokenKind = "resetPassword"
)

// AllTokenKinds returns every kind, useful for exhaustive table tests.
func AllTokenKinds() []TokenKind {
	return []TokenKind{
		TokenKindAccess,
		TokenKindRefresh,
		TokenKindConfirmation,
		TokenKindResetPassword,
	}
}

// IsValid checks if the kind is one of the four supported token kinds
func (k TokenKind) IsValid() bool {
	switch k {
	case TokenKindAccess, TokenKindRefresh, TokenKindConfirmation, TokenKindResetPassword:
		return true
	default:
		return false
	}
}

// Claims is the signed payload shared by all token kinds. Subject carries the
// user's email, UID the user id. TokenID is only present on refresh tokens:
// it is minted once and preserved across rotations so revocation can target
// the whole session.
type Claims struct {
	jwt.RegisteredClaims
	UID     string `json:"id,omitempty"`
	TokenID string `json:"tokenId,omitempty"`
}

// Subject returns the subject claim
func (c *Claims) Subject() string {
	return c.RegisteredClaims.Subject
}

// UserID parses the embedded user id claim.
func (c *Claims) UserID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.UID)
	if err != nil {
		return uuid.Nil, ErrTokenMalformed
	}
	return id, nil
}

// Expires returns the expiration time
func (c *Claims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *Claims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}
