package console

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"ewaste-admin-console/internal/model"
)

// Resource describes one collection the console lists.
type Resource[R any] struct {
	Name string
	List func(ctx context.Context, token string) ([]R, error)
	Row  func(R) Row
}

// UsersResource lists users through api.
func UsersResource(api API) Resource[model.User] {
	return Resource[model.User]{Name: PanelUsers, List: api.ListUsers, Row: userRow}
}

func OrdersResource(api API) Resource[model.Order] {
	return Resource[model.Order]{Name: PanelOrders, List: api.ListOrders, Row: orderRow}
}

// ListController fetches one collection and renders it as a full
// replacement of its panel. Each fetch is numbered; a response that arrives
// after a newer fetch was issued is dropped.
type ListController[R any] struct {
	res   Resource[R]
	token string
	view  View
	log   *zap.Logger

	issued atomic.Uint64

	mu   sync.Mutex
	rows []Row
}

func NewListController[R any](res Resource[R], token string, view View, log *zap.Logger) *ListController[R] {
	return &ListController[R]{res: res, token: token, view: view, log: log}
}

func (c *ListController[R]) Name() string { return c.res.Name }

// Fetch loads the collection and renders it. It returns ErrSuperseded when
// a newer Fetch started before this one finished.
func (c *ListController[R]) Fetch(ctx context.Context) error {
	seq := c.issued.Add(1)
	items, err := c.res.List(ctx, c.token)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.issued.Load() {
		c.log.Debug("dropping stale response", zap.String("panel", c.res.Name), zap.Uint64("seq", seq))
		return ErrSuperseded
	}
	if err != nil {
		c.rows = nil
		c.view.ShowPlaceholder(c.res.Name, "Failed to load "+c.res.Name)
		return fmt.Errorf("load %s: %w", c.res.Name, err)
	}
	c.render(items)
	return nil
}

// Render replaces the panel with items.
func (c *ListController[R]) Render(items []R) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.render(items)
}

func (c *ListController[R]) render(items []R) {
	if len(items) == 0 {
		c.rows = nil
		c.view.ShowPlaceholder(c.res.Name, "No "+c.res.Name+" found")
		return
	}

	rows := make([]Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, c.res.Row(it))
	}
	c.rows = rows
	c.view.ShowRows(c.res.Name, slices.Clone(rows))
}

// Rows is the snapshot currently on screen, the rows whose buttons are live.
func (c *ListController[R]) Rows() []Row {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.rows)
}
