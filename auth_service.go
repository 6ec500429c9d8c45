package authkit

import (
	"context"
	"errors"
	"fmt"
)

// AuthService implements the account lifecycle flows on top of the token
// service, the user store, and the revocation blacklist. Transport concerns
// stay out: handlers translate its errors with HTTPStatus.
type AuthService struct {
	users     UserStore
	tokens    *TokenService
	blacklist *TokenBlacklist
	mailer    Mailer
	metrics   *Metrics
	logger    Logger
}

// NewAuthService creates a new AuthService instance
func NewAuthService(users UserStore, tokens *TokenService, blacklist *TokenBlacklist, mailer Mailer) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		blacklist: blacklist,
		mailer:    mailer,
		logger:    defLogger{},
	}
}

// WithLogger sets the logger
func (s *AuthService) WithLogger(logger Logger) *AuthService {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithMetrics sets the metrics recorder
func (s *AuthService) WithMetrics(metrics *Metrics) *AuthService {
	s.metrics = metrics
	return s
}

// SignUp registers a new account and sends the confirmation email. The
// account stays unconfirmed, and therefore unable to sign in, until the
// emailed token is redeemed.
func (s *AuthService) SignUp(ctx context.Context, name, email, password string) (*User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, &User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	s.metrics.SignUp()
	s.sendConfirmation(ctx, user, "")

	return user, nil
}

// ConfirmEmail redeems a confirmation token and signs the user in.
func (s *AuthService) ConfirmEmail(ctx context.Context, confirmationToken, audience string) (*AuthResult, error) {
	claims, err := s.tokens.Verify(confirmationToken, TokenKindConfirmation)
	if err != nil {
		return nil, err
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, err
	}

	user, err := s.users.ConfirmEmail(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.issueAuthResult(user, audience, "")
}

// SignIn authenticates an identifier/password pair. The identifier can be a
// user id or an email address. Signing in before confirming the email sends
// one fresh confirmation token and rejects the attempt.
func (s *AuthService) SignIn(ctx context.Context, identifier, password, audience string) (*AuthResult, error) {
	user, err := s.users.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			s.metrics.SignInFailure()
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrMismatchedHashAndPassword) || errors.Is(err, ErrNoEmptyString) {
			s.metrics.SignInFailure()
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.Confirmed {
		s.metrics.SignInFailure()
		s.sendConfirmation(ctx, user, audience)
		return nil, ErrNotConfirmed
	}

	result, err := s.issueAuthResult(user, audience, "")
	if err != nil {
		return nil, err
	}

	s.metrics.SignInSuccess()
	return result, nil
}

// SignInWithProvider signs in an identity already verified by an external
// provider, creating a confirmed account on first sight.
func (s *AuthService) SignInWithProvider(ctx context.Context, provider, name, email, audience string) (*AuthResult, error) {
	user, err := s.users.GetOrCreateFromProvider(ctx, provider, name, email)
	if err != nil {
		return nil, err
	}

	result, err := s.issueAuthResult(user, audience, "")
	if err != nil {
		return nil, err
	}

	s.metrics.SignInSuccess()
	return result, nil
}

// RefreshAccess redeems a refresh token for a new access+refresh pair. The
// new refresh token keeps the session's tokenId, so revoking the session
// later invalidates every token in the chain.
//
// Rotation does not invalidate the presented token: until it expires or the
// session is revoked, a captured refresh token stays redeemable. Keep the
// cookie transport and TLS between it and attackers.
func (s *AuthService) RefreshAccess(ctx context.Context, refreshToken, audience string) (*AuthResult, error) {
	claims, err := s.tokens.Verify(refreshToken, TokenKindRefresh)
	if err != nil {
		return nil, err
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, err
	}

	revoked, err := s.blacklist.IsBlacklisted(ctx, userID.String(), claims.TokenID)
	if err != nil {
		return nil, err
	}
	if revoked {
		s.metrics.RefreshRevoked()
		return nil, ErrTokenRevoked
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	result, err := s.issueAuthResult(user, audience, claims.TokenID)
	if err != nil {
		return nil, err
	}

	s.metrics.RefreshSuccess()
	return result, nil
}

// Logout revokes the refresh token's session. The blacklist entry lives for
// the token's remaining lifetime; afterwards expiry rejects it anyway.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.tokens.Verify(refreshToken, TokenKindRefresh)
	if err != nil {
		return err
	}

	userID, err := claims.UserID()
	if err != nil {
		return err
	}

	if err := s.blacklist.Blacklist(ctx, userID.String(), claims.TokenID, claims.Expires()); err != nil {
		return err
	}

	s.metrics.TokenRevoked()
	return nil
}

// SendPasswordResetEmail starts the forgot-password flow. It never reports
// whether the address exists: unknown emails and delivery failures alike
// return success, so the endpoint cannot be used to enumerate accounts.
func (s *AuthService) SendPasswordResetEmail(ctx context.Context, email, audience string) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Debug("password reset requested for unknown email")
		return
	}

	token, err := s.tokens.Generate(user, TokenKindResetPassword, audience, "")
	if err != nil {
		s.logger.Error("failed to generate reset password token: %v", err)
		return
	}

	if err := s.mailer.SendResetPasswordEmail(ctx, user, token); err != nil {
		s.logger.Warn("failed to send reset password email: %v", err)
	}
}

// ResetPassword redeems a reset token and replaces the user's password.
func (s *AuthService) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	claims, err := s.tokens.Verify(resetToken, TokenKindResetPassword)
	if err != nil {
		return err
	}

	userID, err := claims.UserID()
	if err != nil {
		return err
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	if _, err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	s.metrics.PasswordReset()
	return nil
}

// UpdatePassword changes an authenticated user's password after checking the
// current one, then hands back a fresh token pair.
func (s *AuthService) UpdatePassword(ctx context.Context, userID string, currentPassword, newPassword, audience string) (*AuthResult, error) {
	user, err := s.users.GetByIdentifier(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := ComparePasswordAndHash(currentPassword, user.PasswordHash); err != nil {
		if errors.Is(err, ErrMismatchedHashAndPassword) || errors.Is(err, ErrNoEmptyString) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return nil, err
	}

	user, err = s.users.UpdatePassword(ctx, user.ID, hash)
	if err != nil {
		return nil, err
	}

	s.metrics.PasswordReset()
	return s.issueAuthResult(user, audience, "")
}

func (s *AuthService) issueAuthResult(user *User, audience, tokenID string) (*AuthResult, error) {
	access, refresh, err := s.tokens.GenerateAuthTokens(user, audience, tokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate auth tokens: %w", err)
	}
	return &AuthResult{
		User:         user,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

func (s *AuthService) sendConfirmation(ctx context.Context, user *User, audience string) {
	token, err := s.tokens.Generate(user, TokenKindConfirmation, audience, "")
	if err != nil {
		s.logger.Error("failed to generate confirmation token for %s: %v", user.Email, err)
		return
	}
	if err := s.mailer.SendConfirmationEmail(ctx, user, token); err != nil {
		s.logger.Warn("failed to send confirmation email to %s: %v", user.Email, err)
	}
}
