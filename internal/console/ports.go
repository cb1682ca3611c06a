package console

import (
	"context"

	"ewaste-admin-console/internal/model"
)

// API is the marketplace backend as the console sees it.
type API interface {
	Profile(ctx context.Context, token string) (*model.User, error)
	ListUsers(ctx context.Context, token string) ([]model.User, error)
	PromoteUser(ctx context.Context, token, id string) error
	DeleteUser(ctx context.Context, token, id string) error
	ListOrders(ctx context.Context, token string) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, token, orderID, status string) error
	DeleteOrder(ctx context.Context, token, orderID string) error
}

// View draws panels. ShowRows and ShowPlaceholder replace the whole panel.
type View interface {
	ShowRows(panel string, rows []Row)
	ShowPlaceholder(panel, text string)
	// Deny replaces everything on screen with a blocking notice.
	Deny(message string)
	ActivateTab(tab string)
}

type Prompter interface {
	Confirm(message string) bool
	Alert(message string)
}

// Navigator leaves the console for the login surface.
type Navigator interface {
	ToLogin()
}
