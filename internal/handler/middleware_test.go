package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/msomdec/item-ledger/internal/handler"
	"github.com/msomdec/item-ledger/internal/repository/sqlite"
	"github.com/msomdec/item-ledger/internal/service"
)

const testJWTSecret = "test-secret-for-handler-tests-000000"

func newTestServices(t *testing.T) (*service.AuthService, *service.UserService, *service.ItemService, *sqlite.DB) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	tokens := service.NewTokenCodec(testJWTSecret)
	// Use cost 4 for fast tests.
	return service.NewAuthService(db.Users(), tokens, 4),
		service.NewUserService(db.Users()),
		service.NewItemService(db.Items(), db.Users()),
		db
}

func protectedProbe(auth *service.AuthService) (http.Handler, *string) {
	var principal string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user := handler.UserFromContext(r.Context()); user != nil {
			principal = user.Email
		}
		w.WriteHeader(http.StatusOK)
	})
	return handler.RequireAuth(auth, inner), &principal
}

func TestRequireAuth_ValidToken(t *testing.T) {
	auth, _, _, _ := newTestServices(t)
	ctx := context.Background()

	_, token, err := auth.Register(ctx, "valid@example.com", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	guarded, principal := protectedProbe(auth)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(handler.TokenHeader, token)
	w := httptest.NewRecorder()
	guarded.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if *principal != "valid@example.com" {
		t.Fatalf("expected principal valid@example.com, got %q", *principal)
	}
}

func TestRequireAuth_MissingCredential(t *testing.T) {
	auth, _, _, _ := newTestServices(t)

	guarded, _ := protectedProbe(auth)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	guarded.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for missing credential, got %d", w.Code)
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	auth, _, _, _ := newTestServices(t)

	guarded, _ := protectedProbe(auth)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(handler.TokenHeader, "invalid_token")
	w := httptest.NewRecorder()
	guarded.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for invalid token, got %d", w.Code)
	}
}

func TestRequireAuth_UnknownSubject(t *testing.T) {
	auth, _, _, _ := newTestServices(t)

	// Correctly signed, but nobody registered this subject.
	token, err := service.NewTokenCodec(testJWTSecret).Issue("nonexistent@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	guarded, _ := protectedProbe(auth)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(handler.TokenHeader, token)
	w := httptest.NewRecorder()
	guarded.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown subject, got %d", w.Code)
	}
}

func TestRequireAuth_InactiveUser(t *testing.T) {
	auth, users, _, _ := newTestServices(t)
	ctx := context.Background()

	_, _, err := auth.Register(ctx, "first@example.com", "password123")
	if err != nil {
		t.Fatalf("Register first: %v", err)
	}
	second, token, err := auth.Register(ctx, "second@example.com", "password123")
	if err != nil {
		t.Fatalf("Register second: %v", err)
	}
	if _, err := users.Deactivate(ctx, second.ID); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}

	guarded, _ := protectedProbe(auth)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(handler.TokenHeader, token)
	w := httptest.NewRecorder()
	guarded.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for inactive user, got %d", w.Code)
	}
}
