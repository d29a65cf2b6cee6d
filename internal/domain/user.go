package domain

import (
	"context"
	"time"
)

// User represents a registered account. Users are never hard-deleted:
// "deletion" flips IsActive to false after their items have been handed to
// the oldest remaining active user.
type User struct {
	ID             int64
	Email          string
	HashedPassword string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, skip, limit int) ([]User, error)

	// OldestActiveID returns the smallest id among active users, or
	// ErrNotFound when no user is active.
	OldestActiveID(ctx context.Context) (int64, error)

	// DeactivateAndTransfer reassigns every item owned by the target user to
	// the oldest remaining active user and marks the target inactive, as a
	// single atomic unit. Precondition failures are reported in order:
	// ErrNotFound, ErrAlreadyInactive, ErrNoTransferTarget. On any failure
	// the store is left unchanged.
	DeactivateAndTransfer(ctx context.Context, targetID int64) (*User, error)
}
