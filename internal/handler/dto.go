package handler

import "github.com/msomdec/item-ledger/internal/domain"

// UserDTO is the JSON representation of a user, including the items they
// currently own.
type UserDTO struct {
	ID       int64     `json:"id"`
	Email    string    `json:"email"`
	IsActive bool      `json:"is_active"`
	Items    []ItemDTO `json:"items"`
}

// RegisteredUserDTO is a UserDTO plus the credential minted at registration.
type RegisteredUserDTO struct {
	UserDTO
	APIToken string `json:"x_api_token"`
}

// ItemDTO is the JSON representation of an item.
type ItemDTO struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	OwnerID     int64  `json:"owner_id"`
}

func toUserDTO(u *domain.User, items []domain.Item) UserDTO {
	return UserDTO{
		ID:       u.ID,
		Email:    u.Email,
		IsActive: u.IsActive,
		Items:    toItemDTOs(items),
	}
}

func toItemDTO(it domain.Item) ItemDTO {
	return ItemDTO{
		ID:          it.ID,
		Title:       it.Title,
		Description: it.Description,
		OwnerID:     it.OwnerID,
	}
}

func toItemDTOs(items []domain.Item) []ItemDTO {
	dtos := make([]ItemDTO, len(items))
	for i, it := range items {
		dtos[i] = toItemDTO(it)
	}
	return dtos
}
