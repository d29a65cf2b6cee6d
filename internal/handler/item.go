package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/msomdec/item-ledger/internal/domain"
	"github.com/msomdec/item-ledger/internal/service"
)

// ItemHandler handles item creation and listing.
type ItemHandler struct {
	items *service.ItemService
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(items *service.ItemService) *ItemHandler {
	return &ItemHandler{items: items}
}

// HandleCreateForUser creates an item owned by the user named in the path.
// POST /users/{userID}/items/
// Request:  {"title":"...","description":"..."}
func (h *ItemHandler) HandleCreateForUser(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user id.")
		return
	}

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	item, err := h.items.CreateForOwner(r.Context(), ownerID, req.Title, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "User not found.")
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			slog.Error("create item", "error", err)
			writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		}
		return
	}

	writeJSON(w, http.StatusCreated, toItemDTO(*item))
}

// HandleList returns items with skip/limit pagination.
// GET /items/?skip=0&limit=100
func (h *ItemHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := pagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid pagination parameters.")
		return
	}

	items, err := h.items.List(r.Context(), skip, limit)
	if err != nil {
		slog.Error("list items", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, toItemDTOs(items))
}

// HandleMine returns the items owned by the authenticated principal.
// GET /me/items
func (h *ItemHandler) HandleMine(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	items, err := h.items.ListOwnedBy(r.Context(), user.ID)
	if err != nil {
		slog.Error("list own items", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, toItemDTOs(items))
}
