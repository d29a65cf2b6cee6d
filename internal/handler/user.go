package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/msomdec/item-ledger/internal/domain"
	"github.com/msomdec/item-ledger/internal/service"
)

// UserHandler handles user listing, lookup, and soft deletion.
type UserHandler struct {
	users *service.UserService
	items *service.ItemService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users *service.UserService, items *service.ItemService) *UserHandler {
	return &UserHandler{users: users, items: items}
}

// HandleList returns users with skip/limit pagination.
// GET /users/?skip=0&limit=100
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := pagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid pagination parameters.")
		return
	}

	users, err := h.users.List(r.Context(), skip, limit)
	if err != nil {
		slog.Error("list users", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	dtos := make([]UserDTO, 0, len(users))
	for i := range users {
		items, err := h.items.ListOwnedBy(r.Context(), users[i].ID)
		if err != nil {
			slog.Error("list user items", "error", err, "user_id", users[i].ID)
			writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
			return
		}
		dtos = append(dtos, toUserDTO(&users[i], items))
	}

	writeJSON(w, http.StatusOK, dtos)
}

// HandleGet returns a single user with their items.
// GET /users/{userID}
func (h *UserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := userIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user id.")
		return
	}

	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found.")
			return
		}
		slog.Error("get user", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	items, err := h.items.ListOwnedBy(r.Context(), user.ID)
	if err != nil {
		slog.Error("list user items", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, toUserDTO(user, items))
}

// HandleDelete deactivates a user after transferring their items to the
// oldest remaining active user.
// DELETE /users/{userID}
func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := userIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user id.")
		return
	}

	user, err := h.users.Deactivate(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "User not found.")
		case errors.Is(err, domain.ErrAlreadyInactive):
			writeError(w, http.StatusBadRequest, "User is already inactive.")
		case errors.Is(err, domain.ErrNoTransferTarget):
			writeError(w, http.StatusBadRequest, "No active user available to transfer items.")
		default:
			slog.Error("deactivate user", "error", err)
			writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		}
		return
	}

	items, err := h.items.ListOwnedBy(r.Context(), user.ID)
	if err != nil {
		slog.Error("list user items", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, toUserDTO(user, items))
}

func userIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
}

// pagination parses skip/limit query parameters, defaulting to 0/100.
func pagination(r *http.Request) (skip, limit int, err error) {
	skip, limit = 0, 100
	if v := r.URL.Query().Get("skip"); v != "" {
		if skip, err = strconv.Atoi(v); err != nil || skip < 0 {
			return 0, 0, domain.ErrInvalidInput
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil || limit < 0 {
			return 0, 0, domain.ErrInvalidInput
		}
	}
	return skip, limit, nil
}
