package authkit

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "jane@example.com", NormalizeEmail("  Jane@Example.COM "))
	assert.Equal(t, "jane@example.com", NormalizeEmail("jane@example.com"))
}

func TestPrepareUserDefaults(t *testing.T) {
	user := &User{
		Name:  "Jane Doe",
		Email: "Jane@Example.com",
	}
	prepareUserDefaults(user)

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, RoleUser, user.Role)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, "jane doe", user.Name)

	// Explicit values survive.
	admin := &User{ID: uuid.New(), Role: RoleAdmin, Email: "a@b.co"}
	id := admin.ID
	prepareUserDefaults(admin)
	assert.Equal(t, id, admin.ID)
	assert.Equal(t, RoleAdmin, admin.Role)
}

func TestRoles(t *testing.T) {
	assert.True(t, IsValidRole(RoleUser))
	assert.True(t, IsValidRole(RoleAdmin))
	assert.False(t, IsValidRole("SUPERUSER"))

	role, ok := ParseRole("ADMIN")
	assert.True(t, ok)
	assert.Equal(t, RoleAdmin, role)

	_, ok = ParseRole("nope")
	assert.False(t, ok)
}

func TestRoleAllowed(t *testing.T) {
	assert.True(t, RoleAllowed(RoleUser, nil), "empty set allows any authenticated role")
	assert.True(t, RoleAllowed(RoleAdmin, []UserRole{RoleAdmin}))
	assert.False(t, RoleAllowed(RoleUser, []UserRole{RoleAdmin}))
	assert.True(t, RoleAllowed(RoleUser, []UserRole{RoleAdmin, RoleUser}))
}
