package domain

import (
	"context"
	"time"
)

// Item is a record owned by exactly one user. Ownership moves in bulk when
// the owner is deactivated; items are never deleted on their own.
type Item struct {
	ID          int64
	Title       string
	Description string
	OwnerID     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ItemRepository defines persistence operations for items.
type ItemRepository interface {
	Create(ctx context.Context, item *Item) error
	List(ctx context.Context, skip, limit int) ([]Item, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]Item, error)
}
