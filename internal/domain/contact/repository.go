package contact

import (
	"context"
	"time"
)

// Repository defines the interface for contact repository operations.
// Every operation is scoped to the owning user: a contact owned by another
// user behaves exactly like a missing contact.
type Repository interface {
	Create(ctx context.Context, contact *Contact) error
	GetByID(ctx context.Context, userID, contactID uint) (*Contact, error)
	List(ctx context.Context, userID uint, skip, limit int) ([]*Contact, error)
	Search(ctx context.Context, userID uint, query string) ([]*Contact, error)

	// BirthdaysInWindow returns contacts whose birth_date month/day falls
	// within [from, from+days] inclusive, ignoring the birth year.
	BirthdaysInWindow(ctx context.Context, userID uint, from time.Time, days int) ([]*Contact, error)

	// Update overwrites every contact field from the given entity.
	Update(ctx context.Context, contact *Contact) error

	Delete(ctx context.Context, userID, contactID uint) error
}
