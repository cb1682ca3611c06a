package console

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"ewaste-admin-console/internal/model"
	"ewaste-admin-console/internal/session"
)

type Options struct {
	API       API
	Sessions  *session.Manager
	View      View
	Prompter  Prompter
	Navigator Navigator
	Log       *zap.Logger

	// InitialTab is the tab shown first. Defaults to users.
	InitialTab string
}

// Console wires the guard, the two list controllers, the dispatcher and the
// tab navigator together. Nothing but the guard runs before Start succeeds.
type Console struct {
	opts  Options
	guard *Guard

	mu         sync.Mutex
	user       *model.User
	users      *ListController[model.User]
	orders     *ListController[model.Order]
	tabs       *TabNavigator
	dispatcher *Dispatcher
}

func New(opts Options) *Console {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.InitialTab == "" {
		opts.InitialTab = PanelUsers
	}
	return &Console{
		opts:  opts,
		guard: NewGuard(opts.API, opts.Sessions, opts.View, opts.Navigator, opts.Log),
	}
}

// Start runs the session guard and, for an admin, loads both panels. A
// panel that fails to load shows its placeholder; that is not an error.
func (c *Console) Start(ctx context.Context) error {
	token, user, err := c.guard.Check(ctx)
	if err != nil {
		return err
	}

	tabs, err := NewTabNavigator(c.opts.View, c.opts.InitialTab, PanelUsers, PanelOrders)
	if err != nil {
		return err
	}
	users := NewListController(UsersResource(c.opts.API), token, c.opts.View, c.opts.Log)
	orders := NewListController(OrdersResource(c.opts.API), token, c.opts.View, c.opts.Log)
	dispatcher := NewDispatcher(c.opts.API, token, c.opts.Prompter, users, orders, c.opts.Log)

	c.mu.Lock()
	c.user = user
	c.tabs = tabs
	c.users = users
	c.orders = orders
	c.dispatcher = dispatcher
	c.mu.Unlock()

	c.opts.View.ActivateTab(tabs.Active())
	c.opts.Log.Info("admin session verified", zap.String("email", user.Email))

	c.refresh(ctx, users)
	c.refresh(ctx, orders)
	return nil
}

// Refresh reloads one panel.
func (c *Console) Refresh(ctx context.Context, panel string) error {
	r, err := c.panel(panel)
	if err != nil {
		return err
	}
	return r.Fetch(ctx)
}

// Click runs the action of button b on panel.
func (c *Console) Click(ctx context.Context, panel string, b Button) error {
	c.mu.Lock()
	d := c.dispatcher
	c.mu.Unlock()
	if d == nil {
		return ErrNotStarted
	}
	return d.Dispatch(ctx, panel, b)
}

// SelectTab switches the visible panel.
func (c *Console) SelectTab(tab string) error {
	c.mu.Lock()
	tabs := c.tabs
	c.mu.Unlock()
	if tabs == nil {
		return ErrNotStarted
	}
	return tabs.Select(tab)
}

// ActiveTab returns the visible panel, or "" before Start.
func (c *Console) ActiveTab() string {
	c.mu.Lock()
	tabs := c.tabs
	c.mu.Unlock()
	if tabs == nil {
		return ""
	}
	return tabs.Active()
}

// Rows returns the rows currently shown on panel.
func (c *Console) Rows(panel string) ([]Row, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.users == nil:
		return nil, ErrNotStarted
	case panel == PanelUsers:
		return c.users.Rows(), nil
	case panel == PanelOrders:
		return c.orders.Rows(), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownTab, panel)
}

// User is the verified admin, nil before Start.
func (c *Console) User() *model.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user
}

// Logout clears the session and redirects to login, whether or not the
// session was valid.
func (c *Console) Logout() {
	c.guard.Logout()
}

func (c *Console) panel(name string) (Refresher, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.users == nil:
		return nil, ErrNotStarted
	case name == PanelUsers:
		return c.users, nil
	case name == PanelOrders:
		return c.orders, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownTab, name)
}

func (c *Console) refresh(ctx context.Context, r interface {
	Refresher
	Name() string
}) {
	if err := r.Fetch(ctx); err != nil {
		c.opts.Log.Warn("initial load failed", zap.String("panel", r.Name()), zap.Error(err))
	}
}
