package user

import (
	"time"
)

// Roles a user can hold. RoleAdmin gates the admin-only route.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a user entity in the domain
type User struct {
	ID             uint
	Username       string
	Email          string
	HashedPassword string
	Role           string
	IsConfirmed    bool
	Avatar         *string
	RefreshToken   *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
