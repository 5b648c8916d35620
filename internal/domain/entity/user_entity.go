package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// Passwords are stored as bcrypt hashes in PasswordHash and never serialized.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewUser returns a user with the default role.
func NewUser(username, passwordHash string) *User {
	return &User{Username: username, PasswordHash: passwordHash, Role: RoleUser}
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// CanDeleteArticle is the ownership rule for article removal: admins may
// delete anything, regular users only what they submitted.
func (u *User) CanDeleteArticle(a *Article) bool {
	if u == nil || a == nil {
		return false
	}
	switch u.Role {
	case RoleAdmin:
		return true
	case RoleUser:
		return a.UserID == u.ID
	default:
		return false
	}
}
