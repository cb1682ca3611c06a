package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ewaste-admin-console/internal/dto"
	"ewaste-admin-console/internal/model"
)

// Errors an AdminStore reports; the controller maps them to HTTP statuses.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrFinalState        = errors.New("order is in a final state")
)

// AdminStore is the data behind the admin endpoints.
type AdminStore interface {
	User(id string) (*model.User, error)
	Users() []model.User
	PromoteUser(id string) error
	DeleteUser(id string) error
	Orders() []model.Order
	UpdateOrderStatus(orderID, status string) error
	DeleteOrder(orderID string) error
}

type AdminController struct {
	Store AdminStore
}

func NewAdminController(s AdminStore) *AdminController {
	return &AdminController{Store: s}
}

// GET /api/auth/profile
func (ctl *AdminController) Profile(c *gin.Context) {
	u, err := ctl.Store.User(c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user no longer exists"})
		return
	}
	c.JSON(http.StatusOK, dto.ProfileResponse{User: u})
}

// GET /api/auth/admin/users
func (ctl *AdminController) ListUsers(c *gin.Context) {
	c.JSON(http.StatusOK, dto.UsersResponse{Users: ctl.Store.Users()})
}

// PUT /api/auth/admin/users/:id/promote
func (ctl *AdminController) PromoteUser(c *gin.Context) {
	if err := ctl.Store.PromoteUser(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "user promoted"})
}

// DELETE /api/auth/admin/users/:id
func (ctl *AdminController) DeleteUser(c *gin.Context) {
	if err := ctl.Store.DeleteUser(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "user deleted"})
}

// GET /api/auth/admin/orders
func (ctl *AdminController) ListOrders(c *gin.Context) {
	c.JSON(http.StatusOK, dto.OrdersResponse{Orders: ctl.Store.Orders()})
}

// PUT /api/auth/admin/orders/:id
func (ctl *AdminController) UpdateOrder(c *gin.Context) {
	var req dto.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Error: err.Error()})
		return
	}
	if err := ctl.Store.UpdateOrderStatus(c.Param("id"), req.Status); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "status updated"})
}

// DELETE /api/auth/admin/orders/:id
func (ctl *AdminController) DeleteOrder(c *gin.Context) {
	if err := ctl.Store.DeleteOrder(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "order deleted"})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, dto.MessageResponse{Error: err.Error()})
	case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrFinalState):
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, dto.MessageResponse{Error: err.Error()})
	}
}
