package service

import (
	"context"

	"github.com/msomdec/item-ledger/internal/domain"
)

// UserService exposes user lookups and the deactivate-and-transfer rule.
type UserService struct {
	users domain.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(users domain.UserRepository) *UserService {
	return &UserService{users: users}
}

// Get retrieves a user by ID.
func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// List returns users with skip/limit pagination. A non-positive limit falls
// back to the default page size of 100.
func (s *UserService) List(ctx context.Context, skip, limit int) ([]domain.User, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = 100
	}
	return s.users.List(ctx, skip, limit)
}

// Deactivate soft-deletes the target user after handing their items to the
// oldest remaining active user. The checks run in a fixed order and the
// first failure wins: ErrNotFound, then ErrAlreadyInactive, then
// ErrNoTransferTarget. A user owning zero items still needs a transfer
// target to exist.
func (s *UserService) Deactivate(ctx context.Context, targetID int64) (*domain.User, error) {
	return s.users.DeactivateAndTransfer(ctx, targetID)
}
