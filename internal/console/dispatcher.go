package console

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"ewaste-admin-console/internal/model"
)

// Refresher reloads a panel after a successful action.
type Refresher interface {
	Fetch(ctx context.Context) error
}

// Dispatcher runs row actions against the backend. There is no optimistic
// update: a panel only changes when its refetch comes back.
type Dispatcher struct {
	api    API
	token  string
	prompt Prompter
	users  Refresher
	orders Refresher
	log    *zap.Logger

	mu       sync.Mutex
	inFlight map[string]bool
}

func NewDispatcher(api API, token string, prompt Prompter, users, orders Refresher, log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		api:      api,
		token:    token,
		prompt:   prompt,
		users:    users,
		orders:   orders,
		log:      log,
		inFlight: make(map[string]bool),
	}
}

// Dispatch handles a click on b in the given panel. A declined confirmation
// returns nil without doing anything.
func (d *Dispatcher) Dispatch(ctx context.Context, panel string, b Button) error {
	switch panel {
	case PanelUsers:
		return d.dispatchUser(ctx, b)
	case PanelOrders:
		return d.dispatchOrder(ctx, b)
	}
	return fmt.Errorf("%w: %s on %s", ErrUnknownAction, b.Action, panel)
}

func (d *Dispatcher) dispatchUser(ctx context.Context, b Button) error {
	if b.ID == "" {
		d.prompt.Alert("Missing user id")
		return fmt.Errorf("%s user: %w", b.Action, ErrMissingIdentifier)
	}
	release, ok := d.acquire(PanelUsers, b)
	if !ok {
		return ErrActionInFlight
	}
	defer release()

	switch b.Action {
	case ActionPromote:
		if !d.prompt.Confirm("Promote " + b.Email + " to admin?") {
			return nil
		}
		return d.run(ctx, PanelUsers, b, "Promoted", d.users, func() error {
			return d.api.PromoteUser(ctx, d.token, b.ID)
		})
	case ActionDelete:
		if !d.prompt.Confirm("Delete this user?") {
			return nil
		}
		return d.run(ctx, PanelUsers, b, "Deleted", d.users, func() error {
			return d.api.DeleteUser(ctx, d.token, b.ID)
		})
	}
	return fmt.Errorf("%w: %s on users", ErrUnknownAction, b.Action)
}

func (d *Dispatcher) dispatchOrder(ctx context.Context, b Button) error {
	if b.ID == "" {
		d.prompt.Alert("Missing order id")
		return fmt.Errorf("%s order: %w", b.Action, ErrMissingIdentifier)
	}
	release, ok := d.acquire(PanelOrders, b)
	if !ok {
		return ErrActionInFlight
	}
	defer release()

	switch b.Action {
	case ActionUpdate:
		return d.run(ctx, PanelOrders, b, "Updated", d.orders, func() error {
			return d.api.UpdateOrderStatus(ctx, d.token, b.ID, model.StatusCompleted)
		})
	case ActionDelete:
		if !d.prompt.Confirm("Delete this order?") {
			return nil
		}
		return d.run(ctx, PanelOrders, b, "Deleted", d.orders, func() error {
			return d.api.DeleteOrder(ctx, d.token, b.ID)
		})
	}
	return fmt.Errorf("%w: %s on orders", ErrUnknownAction, b.Action)
}

// run sends one request and reports the outcome.
func (d *Dispatcher) run(ctx context.Context, panel string, b Button, done string, refresh Refresher, call func() error) error {
	if err := call(); err != nil {
		d.log.Warn("action failed",
			zap.String("panel", panel),
			zap.String("action", string(b.Action)),
			zap.String("id", b.ID),
			zap.Error(err),
		)
		d.prompt.Alert("Failed")
		return fmt.Errorf("%s %s %s: %w", b.Action, panel, b.ID, err)
	}

	d.prompt.Alert(done)
	if err := refresh.Fetch(ctx); err != nil && !errors.Is(err, ErrSuperseded) {
		d.log.Warn("refresh after action", zap.String("panel", panel), zap.Error(err))
	}
	return nil
}

// acquire marks a button as being handled, from its confirmation until the
// refetch returns. A second click on it in that window is dropped.
func (d *Dispatcher) acquire(panel string, b Button) (func(), bool) {
	key := panel + "/" + string(b.Action) + "/" + b.ID
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.inFlight[key] {
		return nil, false
	}
	d.inFlight[key] = true
	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		delete(d.inFlight, key)
	}, true
}
