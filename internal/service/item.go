package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/msomdec/item-ledger/internal/domain"
)

// ItemService handles item creation and listing.
type ItemService struct {
	items domain.ItemRepository
	users domain.UserRepository
}

// NewItemService creates a new ItemService.
func NewItemService(items domain.ItemRepository, users domain.UserRepository) *ItemService {
	return &ItemService{items: items, users: users}
}

// CreateForOwner creates an item under the given owner. The owner must exist
// and be active, keeping every item attached to a live account from the
// moment it is created.
func (s *ItemService) CreateForOwner(ctx context.Context, ownerID int64, title, description string) (*domain.Item, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}

	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get owner: %w", err)
	}
	if !owner.IsActive {
		return nil, fmt.Errorf("%w: owner is inactive", domain.ErrInvalidInput)
	}

	item := &domain.Item{
		Title:       title,
		Description: description,
		OwnerID:     ownerID,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	return item, nil
}

// List returns items with skip/limit pagination. A non-positive limit falls
// back to the default page size of 100.
func (s *ItemService) List(ctx context.Context, skip, limit int) ([]domain.Item, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = 100
	}
	return s.items.List(ctx, skip, limit)
}

// ListOwnedBy returns every item currently owned by the given user.
func (s *ItemService) ListOwnedBy(ctx context.Context, ownerID int64) ([]domain.Item, error) {
	return s.items.ListByOwner(ctx, ownerID)
}
