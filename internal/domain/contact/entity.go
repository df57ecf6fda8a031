package contact

import (
	"time"
)

// Contact represents a contact entity owned by exactly one user.
type Contact struct {
	ID          uint
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	BirthDate   *time.Time
	Description *string
	UserID      uint
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
