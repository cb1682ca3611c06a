package console

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ewaste-admin-console/internal/model"
)

func startedEnv(t *testing.T) *env {
	t.Helper()
	e := newEnv(t)
	e.login(t, e.admin.ID)
	return e
}

func TestDispatch_PromoteUser(t *testing.T) {
	e := startedEnv(t)
	e.backend.AddUser(model.User{ID: "u1", Email: "a@b.com"})
	require.NoError(t, e.console.Start(context.Background()))

	err := e.console.Click(context.Background(), PanelUsers, Button{Action: ActionPromote, ID: "u1", Email: "a@b.com"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Promote a@b.com to admin?"}, e.prompt.confirms)
	assert.Equal(t, []string{"Promoted"}, e.prompt.alerts)
	assert.Equal(t, 1, e.adminCalls(http.MethodPut, "/api/auth/admin/users/u1/promote"))
	// initial load plus the refetch
	assert.Equal(t, 2, e.adminCalls(http.MethodGet, "/api/auth/admin/users"))

	u, err := e.backend.User("u1")
	require.NoError(t, err)
	assert.True(t, u.IsAdmin)
}

func TestDispatch_PromoteTwiceIsStable(t *testing.T) {
	e := startedEnv(t)
	e.backend.AddUser(model.User{ID: "u1", Email: "a@b.com"})
	require.NoError(t, e.console.Start(context.Background()))
	b := Button{Action: ActionPromote, ID: "u1", Email: "a@b.com"}

	require.NoError(t, e.console.Click(context.Background(), PanelUsers, b))
	after := e.backend.Users()
	require.NoError(t, e.console.Click(context.Background(), PanelUsers, b))

	assert.Equal(t, after, e.backend.Users())
	assert.Equal(t, []string{"Promoted", "Promoted"}, e.prompt.alerts)
}

func TestDispatch_DeclinedConfirmation(t *testing.T) {
	e := startedEnv(t)
	e.backend.AddUser(model.User{ID: "u1", Email: "a@b.com"})
	require.NoError(t, e.console.Start(context.Background()))
	e.prompt.answer = false

	require.NoError(t, e.console.Click(context.Background(), PanelUsers, Button{Action: ActionDelete, ID: "u1"}))

	assert.Equal(t, []string{"Delete this user?"}, e.prompt.confirms)
	assert.Empty(t, e.prompt.alerts)
	assert.Zero(t, e.adminCalls(http.MethodDelete, "/api/auth/admin/users/u1"))
}

func TestDispatch_DeleteUser(t *testing.T) {
	e := startedEnv(t)
	e.backend.AddUser(model.User{ID: "u1", Email: "a@b.com"})
	require.NoError(t, e.console.Start(context.Background()))
	require.Len(t, e.view.panelRows(PanelUsers), 2)

	require.NoError(t, e.console.Click(context.Background(), PanelUsers, Button{Action: ActionDelete, ID: "u1"}))

	assert.Equal(t, []string{"Deleted"}, e.prompt.alerts)
	assert.Len(t, e.view.panelRows(PanelUsers), 1)
}

func TestDispatch_FailureLeavesPanelAlone(t *testing.T) {
	e := startedEnv(t)
	e.backend.AddUser(model.User{ID: "u1", Email: "a@b.com"})
	require.NoError(t, e.console.Start(context.Background()))
	e.backend.FailWith(http.MethodDelete, "/api/auth/admin/users/:id", http.StatusInternalServerError)
	before := e.view.panelRows(PanelUsers)

	err := e.console.Click(context.Background(), PanelUsers, Button{Action: ActionDelete, ID: "u1"})
	require.Error(t, err)

	assert.Equal(t, []string{"Failed"}, e.prompt.alerts)
	assert.Equal(t, 1, e.adminCalls(http.MethodGet, "/api/auth/admin/users"))
	assert.Equal(t, before, e.view.panelRows(PanelUsers))
}

func TestDispatch_AdvanceOrder(t *testing.T) {
	e := startedEnv(t)
	e.backend.AddOrder(model.Order{OrderID: "o1", WasteType: "glass", Quantity: 3, Unit: "kg", Status: "pending"})
	require.NoError(t, e.console.Start(context.Background()))

	require.NoError(t, e.console.Click(context.Background(), PanelOrders, Button{Action: ActionUpdate, ID: "o1"}))

	assert.Empty(t, e.prompt.confirms)
	assert.Equal(t, []string{"Updated"}, e.prompt.alerts)
	calls := e.backend.Calls()
	var body string
	for _, c := range calls {
		if c.Method == http.MethodPut {
			body = c.Body
		}
	}
	assert.JSONEq(t, `{"status":"completed"}`, body)

	rows := e.view.panelRows(PanelOrders)
	require.Len(t, rows, 1)
	assert.Equal(t, model.StatusCompleted, rows[0].Status)
}

func TestDispatch_DeleteOrder(t *testing.T) {
	e := startedEnv(t)
	e.backend.AddOrder(model.Order{OrderID: "o1", Status: "pending"})
	require.NoError(t, e.console.Start(context.Background()))

	require.NoError(t, e.console.Click(context.Background(), PanelOrders, Button{Action: ActionDelete, ID: "o1"}))

	assert.Equal(t, []string{"Delete this order?"}, e.prompt.confirms)
	assert.Equal(t, []string{"Deleted"}, e.prompt.alerts)
	assert.Equal(t, "No orders found", e.view.placeholder(PanelOrders))
}

func TestDispatch_MissingIdentifier(t *testing.T) {
	e := startedEnv(t)
	e.backend.AddOrder(model.Order{WasteType: "metal", Quantity: 5, Unit: "kg", Status: "pending"})
	require.NoError(t, e.console.Start(context.Background()))
	callsBefore := len(e.backend.Calls())

	rows, err := e.console.Rows(PanelOrders)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	next := rows[0].Buttons[0]
	require.Equal(t, ActionUpdate, next.Action)

	err = e.console.Click(context.Background(), PanelOrders, next)
	require.ErrorIs(t, err, ErrMissingIdentifier)
	assert.Equal(t, []string{"Missing order id"}, e.prompt.alerts)

	err = e.console.Click(context.Background(), PanelUsers, Button{Action: ActionPromote})
	require.ErrorIs(t, err, ErrMissingIdentifier)
	assert.Equal(t, []string{"Missing order id", "Missing user id"}, e.prompt.alerts)
	assert.Empty(t, e.prompt.confirms)

	assert.Len(t, e.backend.Calls(), callsBefore)
}

func TestDispatch_UnknownAction(t *testing.T) {
	e := startedEnv(t)
	require.NoError(t, e.console.Start(context.Background()))

	err := e.console.Click(context.Background(), PanelOrders, Button{Action: ActionPromote, ID: "o1"})
	assert.ErrorIs(t, err, ErrUnknownAction)
	err = e.console.Click(context.Background(), "reports", Button{Action: ActionDelete, ID: "x"})
	assert.ErrorIs(t, err, ErrUnknownAction)
}

type blockingAPI struct {
	API
	started chan struct{}
	release chan struct{}
}

func (b *blockingAPI) PromoteUser(ctx context.Context, token, id string) error {
	close(b.started)
	<-b.release
	return nil
}

type countingRefresher struct{ n int }

func (r *countingRefresher) Fetch(context.Context) error {
	r.n++
	return nil
}

func TestDispatch_DropsDuplicateWhileInFlight(t *testing.T) {
	api := &blockingAPI{started: make(chan struct{}), release: make(chan struct{})}
	users := &countingRefresher{}
	prompt := &fakePrompter{answer: true}
	d := NewDispatcher(api, "tok", prompt, users, &countingRefresher{}, zap.NewNop())
	b := Button{Action: ActionPromote, ID: "u1", Email: "a@b.com"}

	first := make(chan error, 1)
	go func() { first <- d.Dispatch(context.Background(), PanelUsers, b) }()
	<-api.started

	err := d.Dispatch(context.Background(), PanelUsers, b)
	assert.ErrorIs(t, err, ErrActionInFlight)

	close(api.release)
	require.NoError(t, <-first)
	assert.Equal(t, 1, users.n)
	assert.Equal(t, []string{"Promote a@b.com to admin?"}, prompt.confirms)
	assert.Equal(t, []string{"Promoted"}, prompt.alerts)
}

func TestDispatch_DeclinedConfirmationFreesButton(t *testing.T) {
	e := newEnv(t)
	target := e.backend.AddUser(model.User{ID: "u2", Email: "b@c.com"})
	d := NewDispatcher(e.api, e.login(t, e.admin.ID), e.prompt, &countingRefresher{}, &countingRefresher{}, zap.NewNop())
	b := Button{Action: ActionDelete, ID: target.ID}

	e.prompt.answer = false
	require.NoError(t, d.Dispatch(context.Background(), PanelUsers, b))
	e.prompt.answer = true
	require.NoError(t, d.Dispatch(context.Background(), PanelUsers, b))

	assert.Len(t, e.prompt.confirms, 2)
	assert.Equal(t, 1, e.adminCalls(http.MethodDelete, "/api/auth/admin/users/"+target.ID))
}

func TestClickBeforeStart(t *testing.T) {
	e := newEnv(t)

	err := e.console.Click(context.Background(), PanelUsers, Button{Action: ActionDelete, ID: "u1"})
	assert.ErrorIs(t, err, ErrNotStarted)
	assert.ErrorIs(t, e.console.Refresh(context.Background(), PanelUsers), ErrNotStarted)
}
