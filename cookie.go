package authkit

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// RefreshCookiePath scopes the refresh cookie to the auth endpoints, so the
// browser never attaches it to unrelated requests.
const RefreshCookiePath = "/api/auth"

// RefreshCookie moves the refresh token between server and browser. Values
// are signed with an HMAC so a tampered cookie is rejected before its token
// is ever parsed. The cookie is http-only and same-site strict; Secure is
// relaxed only in testing mode.
type RefreshCookie struct {
	name    string
	secret  []byte
	maxAge  time.Duration
	testing bool
}

// NewRefreshCookie creates a new RefreshCookie instance
func NewRefreshCookie(cfg *Config) *RefreshCookie {
	return &RefreshCookie{
		name:    cfg.CookieName,
		secret:  []byte(cfg.CookieSecret),
		maxAge:  cfg.Refresh.TTL,
		testing: cfg.Testing,
	}
}

// Write sets the signed refresh cookie on the response.
func (rc *RefreshCookie) Write(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     rc.name,
		Value:    rc.sign(token),
		Path:     RefreshCookiePath,
		Expires:  time.Now().Add(rc.maxAge),
		Secure:   !rc.testing,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

// Read extracts and authenticates the refresh token from the request cookie.
// A missing, unsigned, or tampered cookie returns ErrUnauthorized.
func (rc *RefreshCookie) Read(c *fiber.Ctx) (string, error) {
	raw := c.Cookies(rc.name)
	if raw == "" {
		return "", ErrUnauthorized
	}

	// The MAC is base64url and cannot contain a dot, so the first dot
	// always separates signature from token.
	i := strings.IndexByte(raw, '.')
	if i < 0 {
		return "", ErrUnauthorized
	}

	mac, token := raw[:i], raw[i+1:]
	if !hmac.Equal([]byte(mac), []byte(rc.mac(token))) {
		return "", ErrUnauthorized
	}

	return token, nil
}

// Clear expires the cookie on the client.
func (rc *RefreshCookie) Clear(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     rc.name,
		Value:    "",
		Path:     RefreshCookiePath,
		Expires:  time.Now().Add(-time.Hour),
		Secure:   !rc.testing,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

func (rc *RefreshCookie) sign(token string) string {
	return rc.mac(token) + "." + token
}

func (rc *RefreshCookie) mac(token string) string {
	h := hmac.New(sha256.New, rc.secret)
	h.Write([]byte(token))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}
