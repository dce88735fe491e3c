package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func seededUsers() *MemoryUserStore {
	s := NewMemoryUserStore()
	s.Append(User{Username: "alice", Password: "rahasia", Role: RoleOfficer, FullName: "Alice"})
	s.Append(User{Username: "root", Password: "admin", Role: RoleAdmin, FullName: "Admin"})
	return s
}

func TestAuthenticateMatch(t *testing.T) {
	u, err := authenticate(seededUsers(), "alice", "rahasia")
	assert.NoError(t, err)
	assert.Equal(t, "Alice", u.FullName)
	assert.Equal(t, RoleOfficer, u.Role)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	_, err := authenticate(seededUsers(), "alice", "Rahasia")
	var authErr *AuthError
	assert.ErrorAs(t, err, &authErr)
	assert.Equal(t, "alice", authErr.Username)
}

func TestAuthenticateUnknownUser(t *testing.T) {
	_, err := authenticate(seededUsers(), "mallory", "rahasia")
	var authErr *AuthError
	assert.ErrorAs(t, err, &authErr)
}

func TestAuthenticateEmptySheet(t *testing.T) {
	_, err := authenticate(NewMemoryUserStore(), "alice", "rahasia")
	var authErr *AuthError
	assert.ErrorAs(t, err, &authErr)
}
