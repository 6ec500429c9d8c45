package authkit

// UserRole is the user's role
type UserRole = string

const (
	// RoleUser is the default role assigned at sign-up
	RoleUser UserRole = "USER"
	// RoleAdmin grants access to admin restricted routes
	RoleAdmin UserRole = "ADMIN"
)

// IsValid checks if the role is one of the predefined valid roles
func IsValidRole(r UserRole) bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// ParseRole safely parses a string into a UserRole type
func ParseRole(roleStr string) (UserRole, bool) {
	role := UserRole(roleStr)
	return role, IsValidRole(role)
}

// RoleAllowed reports whether role is in the allowed set. An empty set means
// any authenticated role is allowed.
func RoleAllowed(role UserRole, allowed []UserRole) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if a == role {
			return true
		}
	}
	return false
}
