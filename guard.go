package authkit

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// RoutePolicy declares what a route demands of its callers.
type RoutePolicy struct {
	// Public routes serve anonymous requests. A valid bearer token is still
	// honored and attaches the user, but its absence is not an error.
	Public bool
	// AllowedRoles restricts the route to the listed roles. Empty means any
	// authenticated user.
	AllowedRoles []UserRole
}

// Guard authenticates requests from the Authorization header and enforces
// per-route policies. Authentication failures map to 401, a disallowed role
// to 403; the two are never conflated.
type Guard struct {
	tokens *TokenService
	users  UserStore
	logger Logger
}

// NewGuard creates a new Guard instance
func NewGuard(tokens *TokenService, users UserStore, logger Logger) *Guard {
	if logger == nil {
		logger = defLogger{}
	}
	return &Guard{tokens: tokens, users: users, logger: logger}
}

// Protect returns a handler enforcing the policy. On success the user is
// stored in fiber locals under LocalsUserKey and in the request context.
func (g *Guard) Protect(policy RoutePolicy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			if policy.Public {
				return c.Next()
			}
			return respondError(c, ErrUnauthorized)
		}

		claims, err := g.tokens.Verify(token, TokenKindAccess)
		if err != nil {
			if policy.Public {
				return c.Next()
			}
			g.logger.Debug("guard rejected token: %v", err)
			return respondError(c, ErrUnauthorized)
		}

		userID, err := claims.UserID()
		if err != nil {
			if policy.Public {
				return c.Next()
			}
			return respondError(c, ErrUnauthorized)
		}

		user, err := g.users.GetByID(c.UserContext(), userID)
		if err != nil {
			if policy.Public {
				return c.Next()
			}
			return respondError(c, ErrUnauthorized)
		}

		if !RoleAllowed(user.Role, policy.AllowedRoles) {
			return respondError(c, ErrForbidden)
		}

		c.Locals(LocalsUserKey, user)
		c.SetUserContext(WithUser(c.UserContext(), user))

		return c.Next()
	}
}

// CurrentUser returns the user the guard attached to the request, if any.
func CurrentUser(c *fiber.Ctx) (*User, bool) {
	user, ok := c.Locals(LocalsUserKey).(*User)
	return user, ok && user != nil
}

func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}

func respondError(c *fiber.Ctx, err error) error {
	return c.Status(HTTPStatus(err)).JSON(fiber.Map{
		"message": err.Error(),
	})
}
