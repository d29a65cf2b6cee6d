package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/msomdec/item-ledger/internal/domain"
	"github.com/msomdec/item-ledger/internal/repository/sqlite"
	"github.com/msomdec/item-ledger/internal/service"
)

func newTestUserService(t *testing.T) (*service.UserService, *service.ItemService, *sqlite.DB) {
	t.Helper()
	db := newTestDB(t)
	return service.NewUserService(db.Users()), service.NewItemService(db.Items(), db.Users()), db
}

func registerUser(t *testing.T, db *sqlite.DB, email string) *domain.User {
	t.Helper()
	user := &domain.User{Email: email, HashedPassword: "hash"}
	if err := db.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("Create user %s: %v", email, err)
	}
	return user
}

func TestUserService_Deactivate_TransfersToOldestActive(t *testing.T) {
	users, items, db := newTestUserService(t)
	ctx := context.Background()

	a := registerUser(t, db, "a@example.com")
	registerUser(t, db, "b@example.com")
	c := registerUser(t, db, "c@example.com")

	item, err := items.CreateForOwner(ctx, c.ID, "User3 Item", "Test Item")
	if err != nil {
		t.Fatalf("CreateForOwner: %v", err)
	}

	deleted, err := users.Deactivate(ctx, c.ID)
	if err != nil {
		t.Fatalf("Deactivate: %v", err)
	}
	if deleted.IsActive {
		t.Fatal("expected deactivated user to be inactive")
	}

	// The item now belongs to the active user with the smallest id.
	got, err := items.ListOwnedBy(ctx, a.ID)
	if err != nil {
		t.Fatalf("ListOwnedBy: %v", err)
	}
	if len(got) != 1 || got[0].ID != item.ID {
		t.Fatalf("expected item %d owned by user %d, got %+v", item.ID, a.ID, got)
	}

	remaining, err := items.ListOwnedBy(ctx, c.ID)
	if err != nil {
		t.Fatalf("ListOwnedBy target: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected target to own no items, got %d", len(remaining))
	}
}

func TestUserService_Deactivate_SoleActiveUser(t *testing.T) {
	users, items, db := newTestUserService(t)
	ctx := context.Background()

	only := registerUser(t, db, "only@example.com")
	item, err := items.CreateForOwner(ctx, only.ID, "Kept", "")
	if err != nil {
		t.Fatalf("CreateForOwner: %v", err)
	}

	_, err = users.Deactivate(ctx, only.ID)
	if !errors.Is(err, domain.ErrNoTransferTarget) {
		t.Fatalf("expected ErrNoTransferTarget, got %v", err)
	}

	// State must be unchanged: still active, still owning the item.
	after, err := users.Get(ctx, only.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !after.IsActive {
		t.Fatal("expected user to remain active after failed deactivation")
	}
	owned, err := items.ListOwnedBy(ctx, only.ID)
	if err != nil {
		t.Fatalf("ListOwnedBy: %v", err)
	}
	if len(owned) != 1 || owned[0].ID != item.ID {
		t.Fatal("expected item ownership to be unchanged")
	}
}

func TestUserService_Deactivate_ZeroItemsStillNeedsTarget(t *testing.T) {
	users, _, db := newTestUserService(t)

	only := registerUser(t, db, "empty@example.com")

	// Even with nothing to transfer, the literal rule requires a recipient.
	_, err := users.Deactivate(context.Background(), only.ID)
	if !errors.Is(err, domain.ErrNoTransferTarget) {
		t.Fatalf("expected ErrNoTransferTarget for zero-item sole user, got %v", err)
	}
}

func TestUserService_Deactivate_ZeroItemsWithTarget(t *testing.T) {
	users, _, db := newTestUserService(t)
	ctx := context.Background()

	registerUser(t, db, "first@example.com")
	second := registerUser(t, db, "second@example.com")

	deleted, err := users.Deactivate(ctx, second.ID)
	if err != nil {
		t.Fatalf("Deactivate: %v", err)
	}
	if deleted.IsActive {
		t.Fatal("expected user to be inactive")
	}
}

func TestUserService_Deactivate_AlreadyInactive(t *testing.T) {
	users, items, db := newTestUserService(t)
	ctx := context.Background()

	first := registerUser(t, db, "first@example.com")
	second := registerUser(t, db, "second@example.com")

	item, err := items.CreateForOwner(ctx, second.ID, "Moved once", "")
	if err != nil {
		t.Fatalf("CreateForOwner: %v", err)
	}

	if _, err := users.Deactivate(ctx, second.ID); err != nil {
		t.Fatalf("first Deactivate: %v", err)
	}

	_, err = users.Deactivate(ctx, second.ID)
	if !errors.Is(err, domain.ErrAlreadyInactive) {
		t.Fatalf("expected ErrAlreadyInactive, got %v", err)
	}

	// Repeating the failed attempt never moves items again.
	owned, err := items.ListOwnedBy(ctx, first.ID)
	if err != nil {
		t.Fatalf("ListOwnedBy: %v", err)
	}
	if len(owned) != 1 || owned[0].ID != item.ID {
		t.Fatal("expected item ownership to be untouched by the failed retry")
	}
}

func TestUserService_Deactivate_NotFound(t *testing.T) {
	users, _, db := newTestUserService(t)

	registerUser(t, db, "present@example.com")

	_, err := users.Deactivate(context.Background(), 999)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserService_List_Pagination(t *testing.T) {
	users, _, db := newTestUserService(t)
	ctx := context.Background()

	for _, email := range []string{"u1@example.com", "u2@example.com", "u3@example.com"} {
		registerUser(t, db, email)
	}

	page, err := users.List(ctx, 1, 1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page) != 1 || page[0].Email != "u2@example.com" {
		t.Fatalf("expected second user only, got %+v", page)
	}

	all, err := users.List(ctx, 0, 0)
	if err != nil {
		t.Fatalf("List with default limit: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 users, got %d", len(all))
	}
}
