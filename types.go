package authkit

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// UserStore is the persistence contract the auth flows operate through.
// Implementations own user storage; the flows never touch the database directly.
type UserStore interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// GetByIdentifier resolves either a user id or an email address.
	GetByIdentifier(ctx context.Context, identifier string) (*User, error)
	ConfirmEmail(ctx context.Context, id uuid.UUID) (*User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) (*User, error)
	// GetOrCreateFromProvider finds the user bound to a provider-verified
	// identity, creating a confirmed account on first sight.
	GetOrCreateFromProvider(ctx context.Context, provider, name, email string) (*User, error)
}

// Mailer delivers confirmation and reset messages. Delivery is best effort;
// flows log failures and move on.
type Mailer interface {
	SendConfirmationEmail(ctx context.Context, user *User, token string) error
	SendResetPasswordEmail(ctx context.Context, user *User, token string) error
}

// AuthResult is the response shape shared by every flow that mints tokens.
type AuthResult struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
