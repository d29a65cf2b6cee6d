// Package handler maps HTTP routes onto the service layer and translates
// domain outcomes into transport statuses.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/msomdec/item-ledger/internal/service"
)

// NewRouter wires all routes. Registration and login are open; everything
// else, the health check included, sits behind the auth gate.
func NewRouter(auth *service.AuthService, users *service.UserService, items *service.ItemService) chi.Router {
	authHandler := NewAuthHandler(auth)
	userHandler := NewUserHandler(users, items)
	itemHandler := NewItemHandler(items)

	// Open endpoints take a stricter limit than the gate would otherwise
	// impose: 5 requests per second per client, bursts of 10.
	authLimiter := NewRateLimiter(5, 10)

	r := chi.NewRouter()
	r.Use(RequestLogger)

	r.Post("/users/", authLimiter.Limit(authHandler.HandleRegister))
	r.Post("/login", authLimiter.Limit(authHandler.HandleLogin))

	r.Group(func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler { return RequireAuth(auth, next) })

		r.Get("/health-check", HandleHealthCheck)
		r.Get("/users/", userHandler.HandleList)
		r.Get("/users/{userID}", userHandler.HandleGet)
		r.Delete("/users/{userID}", userHandler.HandleDelete)
		r.Post("/users/{userID}/items/", itemHandler.HandleCreateForUser)
		r.Get("/items/", itemHandler.HandleList)
		r.Get("/me/items", itemHandler.HandleMine)
	})

	return r
}
