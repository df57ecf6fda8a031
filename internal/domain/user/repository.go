package user

import (
	"context"
)

// Repository defines the interface for user repository operations
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, userID uint) (*User, error)

	// UpdateRefreshToken overwrites the single active refresh token for the
	// user; passing nil clears it.
	UpdateRefreshToken(ctx context.Context, userID uint, token *string) error

	// ConfirmEmail flips is_confirmed for the user with the given email.
	ConfirmEmail(ctx context.Context, email string) error

	UpdateAvatar(ctx context.Context, userID uint, avatarURL string) error
}
