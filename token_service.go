package authkit

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenService signs and verifies tokens for the four token kinds. It is
// stateless: every call is a pure function of its inputs and the configured
// secrets, so instances are safe for concurrent use.
type TokenService struct {
	cfg        *Config
	issuer     string
	domain     string
	audPattern *regexp.Regexp
	logger     Logger
}

// NewTokenService creates a new TokenService instance
func NewTokenService(cfg *Config, logger Logger) *TokenService {
	if logger == nil {
		logger = defLogger{}
	}

	// The configured domain doubles as the audience acceptance pattern, so a
	// token bound to a requesting origin like "app.example.com" still
	// verifies against domain "example.com".
	pattern, err := regexp.Compile(cfg.Domain)
	if err != nil {
		pattern = regexp.MustCompile(regexp.QuoteMeta(cfg.Domain))
	}

	return &TokenService{
		cfg:        cfg,
		issuer:     cfg.Domain,
		domain:     cfg.Domain,
		audPattern: pattern,
		logger:     logger,
	}
}

// Generate mints a signed token of the given kind for the user. An empty
// audience falls back to the configured domain. tokenID is only meaningful
// for refresh tokens: pass the previous tokenId to rotate a session, or leave
// it empty to start a fresh one.
func (ts *TokenService) Generate(user *User, kind TokenKind, audience, tokenID string) (string, error) {
	kc, err := ts.cfg.Kind(kind)
	if err != nil {
		return "", err
	}

	if audience == "" {
		audience = ts.domain
	}

	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.issuer,
			Subject:   user.Email,
			Audience:  jwt.ClaimStrings{audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(kc.TTL)),
		},
		UID: user.ID.String(),
	}

	if kind == TokenKindRefresh {
		if tokenID == "" {
			tokenID = uuid.NewString()
		}
		claims.TokenID = tokenID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(kc.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign JWT: %w", err)
	}

	return signed, nil
}

// GenerateAuthTokens mints the access+refresh pair every authenticated flow
// hands back. tokenID follows the refresh-token rules of Generate.
func (ts *TokenService) GenerateAuthTokens(user *User, audience, tokenID string) (access, refresh string, err error) {
	if access, err = ts.Generate(user, TokenKindAccess, audience, ""); err != nil {
		return "", "", err
	}
	if refresh, err = ts.Generate(user, TokenKindRefresh, audience, tokenID); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// Verify parses and validates a token string under the given kind's secret,
// returning structured claims.
//
// Beyond the signature, verification enforces issuer equality, audience
// matching against the configured domain, and independently caps the token's
// age at the kind's TTL. The signed exp claim alone is not trusted: a token
// carrying a generous self-declared expiry still fails once its issued-at is
// older than the kind allows.
func (ts *TokenService) Verify(tokenString string, kind TokenKind) (*Claims, error) {
	kc, err := ts.cfg.Kind(kind)
	if err != nil {
		return nil, err
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("TokenService verify encountered unexpected signing method: %v", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(kc.Secret), nil
	}, jwt.WithIssuer(ts.issuer))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		ts.logger.Error("TokenService verify could not decode claims")
		return nil, ErrTokenMalformed
	}

	if !ts.audienceMatches(claims.Audience) {
		return nil, fmt.Errorf("%w: audience mismatch", ErrTokenMalformed)
	}

	issuedAt := claims.IssuedAt()
	if issuedAt.IsZero() {
		return nil, fmt.Errorf("%w: missing iat claim", ErrTokenMalformed)
	}
	if time.Since(issuedAt) > kc.TTL {
		return nil, ErrTokenExpired
	}

	return claims, nil
}

func (ts *TokenService) audienceMatches(audience jwt.ClaimStrings) bool {
	for _, aud := range audience {
		if ts.audPattern.MatchString(aud) {
			return true
		}
	}
	return false
}
