// dto.go
package dto

import "ewaste-admin-console/internal/model"

// ProfileResponse is the body of GET /api/auth/profile.
type ProfileResponse struct {
	User *model.User `json:"user"`
}

type UsersResponse struct {
	Users []model.User `json:"users"`
}

type OrdersResponse struct {
	Orders []model.Order `json:"orders"`
}

// UpdateOrderRequest is the body of PUT /api/auth/admin/orders/{id}.
type UpdateOrderRequest struct {
	Status string `json:"status" binding:"required"`
}

type MessageResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
