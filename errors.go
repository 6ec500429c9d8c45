package authkit

import (
	"errors"
	"net/http"
)

// ErrInvalidCredentials is returned when an identifier/password pair does not match
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrTokenExpired is returned when a token's signature is valid but its age
// exceeds the kind's time-to-live
var ErrTokenExpired = errors.New("token expired")

// ErrTokenMalformed covers bad signatures, claim mismatches, and structurally
// broken tokens
var ErrTokenMalformed = errors.New("invalid token")

// ErrTokenRevoked is returned when a refresh token's session has been blacklisted
var ErrTokenRevoked = errors.New("token revoked")

// ErrNotConfirmed is returned on sign-in before the email was confirmed
var ErrNotConfirmed = errors.New("please confirm your email, a new email has been sent")

// ErrUnauthorized is the error for requests with missing or failed authentication
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden is the error for authenticated requests whose role is not allowed
var ErrForbidden = errors.New("forbidden")

// ErrEmailTaken is returned when signing up with an already registered email
var ErrEmailTaken = errors.New("email already registered")

// ErrUserNotFound is the error we return for non found users
var ErrUserNotFound = errors.New("user not found")

// ErrNoEmptyString rejects empty required inputs
var ErrNoEmptyString = errors.New("value must not be empty")

// ErrMismatchedHashAndPassword is returned when a password does not match its hash
var ErrMismatchedHashAndPassword = errors.New("password does not match")

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	return errors.Is(err, ErrTokenExpired)
}

// IsMalformedError will check for structurally invalid tokens
func IsMalformedError(err error) bool {
	return errors.Is(err, ErrTokenMalformed)
}

// HTTPStatus maps a flow error to the status code the transport should use.
// Unknown errors map to 500; callers should log those and keep the body generic.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrTokenExpired), errors.Is(err, ErrTokenMalformed):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrTokenRevoked),
		errors.Is(err, ErrNotConfirmed),
		errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrEmailTaken):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
