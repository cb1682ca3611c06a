// Package apitest is an in-memory stand-in for the marketplace API. It
// serves the same auth and admin endpoints the console consumes, so the
// client and console can be exercised end to end without the real server.
package apitest

import (
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"

	"ewaste-admin-console/internal/controller"
	"ewaste-admin-console/internal/model"
)

// Order statuses in the order they may be advanced through.
var statusFlow = []string{"pending", "accepted", "picked_up", model.StatusCompleted}

var finalStates = map[string]bool{
	model.StatusCompleted: true,
	"cancelled":           true,
}

var errUnknownToken = errors.New("unknown token")

// Call is one request received by the backend.
type Call struct {
	Method string
	Path   string
	Body   string
}

type Backend struct {
	mu       sync.Mutex
	users    []model.User
	orders   []model.Order
	tokens   map[string]string
	failures map[string]int
	calls    []Call
}

func NewBackend() *Backend {
	return &Backend{
		tokens:   make(map[string]string),
		failures: make(map[string]int),
	}
}

// AddUser stores u, assigning a random id when it has none.
func (b *Backend) AddUser(u model.User) model.User {
	b.mu.Lock()
	defer b.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	b.users = append(b.users, u)
	return u
}

func (b *Backend) AddOrder(o model.Order) model.Order {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.orders = append(b.orders, o)
	return o
}

// IssueToken mints a bearer token for the given user.
func (b *Backend) IssueToken(userID string) string {
	token := uuid.NewString()
	b.SetToken(token, userID)
	return token
}

func (b *Backend) SetToken(token, userID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens[token] = userID
}

// FailWith makes every request matching method and route pattern (as
// registered, e.g. "/api/auth/admin/users/:id") answer with status.
func (b *Backend) FailWith(method, route string, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[method+" "+route] = status
}

func (b *Backend) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.calls)
}

// CallCount counts received requests with the given method and path.
func (b *Backend) CallCount(method, path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.calls {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

func (b *Backend) ValidateToken(token string) (*model.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id, ok := b.tokens[token]
	if !ok {
		return nil, errUnknownToken
	}
	i := b.userIndex(id)
	if i < 0 {
		return nil, errUnknownToken
	}
	u := b.users[i]
	return &u, nil
}

func (b *Backend) User(id string) (*model.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.userIndex(id)
	if i < 0 {
		return nil, controller.ErrNotFound
	}
	u := b.users[i]
	return &u, nil
}

func (b *Backend) Users() []model.User {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.users)
}

// PromoteUser is idempotent: promoting an admin changes nothing.
func (b *Backend) PromoteUser(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.userIndex(id)
	if i < 0 {
		return controller.ErrNotFound
	}
	b.users[i].IsAdmin = true
	return nil
}

func (b *Backend) DeleteUser(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.userIndex(id)
	if i < 0 {
		return controller.ErrNotFound
	}
	b.users = slices.Delete(b.users, i, i+1)
	for token, uid := range b.tokens {
		if uid == id {
			delete(b.tokens, token)
		}
	}
	return nil
}

func (b *Backend) Orders() []model.Order {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.orders)
}

// UpdateOrderStatus only moves an order forward through statusFlow, or to
// cancelled. Setting the current status again is a no-op.
func (b *Backend) UpdateOrderStatus(orderID, status string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.orderIndex(orderID)
	if i < 0 {
		return controller.ErrNotFound
	}

	current := b.orders[i].Status
	if current == status {
		return nil
	}
	if finalStates[current] {
		return controller.ErrFinalState
	}
	if status != "cancelled" && slices.Index(statusFlow, status) <= slices.Index(statusFlow, current) {
		return controller.ErrInvalidTransition
	}

	b.orders[i].Status = status
	return nil
}

func (b *Backend) DeleteOrder(orderID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.orderIndex(orderID)
	if i < 0 {
		return controller.ErrNotFound
	}
	b.orders = slices.Delete(b.orders, i, i+1)
	return nil
}

func (b *Backend) userIndex(id string) int {
	return slices.IndexFunc(b.users, func(u model.User) bool { return u.ID == id })
}

func (b *Backend) orderIndex(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(b.orders, func(o model.Order) bool { return o.OrderID == id })
}
