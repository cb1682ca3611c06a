package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ewaste-admin-console/internal/apitest"
	"ewaste-admin-console/internal/model"
)

type clientFixture struct {
	backend *apitest.Backend
	client  *AdminClient
	admin   string
	plain   string
}

func newClientFixture(t *testing.T) *clientFixture {
	t.Helper()
	b := apitest.NewBackend()
	root := b.AddUser(model.User{ID: "root", Email: "root@ewaste.io", IsAdmin: true})
	user := b.AddUser(model.User{ID: "u1", Email: "a@b.com", City: "Lyon"})
	b.AddOrder(model.Order{OrderID: "ord/7", WasteType: "metal", Quantity: 5, Unit: "kg", Status: "pending"})

	srv := apitest.NewServer(t, b)
	return &clientFixture{
		backend: b,
		client:  NewAdminClient(srv.URL, 0, nil),
		admin:   b.IssueToken(root.ID),
		plain:   b.IssueToken(user.ID),
	}
}

func TestAdminClient_Profile(t *testing.T) {
	f := newClientFixture(t)

	u, err := f.client.Profile(context.Background(), f.admin)
	require.NoError(t, err)
	assert.Equal(t, "root@ewaste.io", u.Email)
	assert.True(t, u.IsAdmin)

	_, err = f.client.Profile(context.Background(), "bogus")
	assert.True(t, IsStatus(err, http.StatusUnauthorized))
}

func TestAdminClient_AdminEndpointsRequireAdmin(t *testing.T) {
	f := newClientFixture(t)

	_, err := f.client.ListUsers(context.Background(), f.plain)
	assert.True(t, IsStatus(err, http.StatusForbidden))
}

func TestAdminClient_UserActions(t *testing.T) {
	f := newClientFixture(t)
	ctx := context.Background()

	users, err := f.client.ListUsers(ctx, f.admin)
	require.NoError(t, err)
	require.Len(t, users, 2)

	require.NoError(t, f.client.PromoteUser(ctx, f.admin, "u1"))
	require.NoError(t, f.client.PromoteUser(ctx, f.admin, "u1"))
	u, err := f.backend.User("u1")
	require.NoError(t, err)
	assert.True(t, u.IsAdmin)

	require.NoError(t, f.client.DeleteUser(ctx, f.admin, "u1"))
	err = f.client.DeleteUser(ctx, f.admin, "u1")
	assert.True(t, IsStatus(err, http.StatusNotFound))

	assert.Equal(t, 2, f.backend.CallCount(http.MethodPut, "/api/auth/admin/users/u1/promote"))
}

func TestAdminClient_OrderActions(t *testing.T) {
	f := newClientFixture(t)
	ctx := context.Background()

	orders, err := f.client.ListOrders(ctx, f.admin)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "ord/7", orders[0].OrderID)

	require.NoError(t, f.client.UpdateOrderStatus(ctx, f.admin, "ord/7", model.StatusCompleted))
	calls := f.backend.Calls()
	last := calls[len(calls)-1]
	assert.Equal(t, http.MethodPut, last.Method)
	assert.Equal(t, "/api/auth/admin/orders/ord/7", last.Path)
	assert.JSONEq(t, `{"status":"completed"}`, last.Body)

	orders, err = f.client.ListOrders(ctx, f.admin)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, orders[0].Status)

	require.NoError(t, f.client.DeleteOrder(ctx, f.admin, "ord/7"))
	orders, err = f.client.ListOrders(ctx, f.admin)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestAdminClient_InjectedFailure(t *testing.T) {
	f := newClientFixture(t)
	f.backend.FailWith(http.MethodGet, "/api/auth/admin/orders", http.StatusBadGateway)

	_, err := f.client.ListOrders(context.Background(), f.admin)
	var re *RequestError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, http.StatusBadGateway, re.Status)
	assert.Equal(t, "/api/auth/admin/orders", re.Path)
}

func TestAdminClient_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user":`))
	}))
	defer srv.Close()

	_, err := NewAdminClient(srv.URL, 0, nil).Profile(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrDecode)
}

func TestAdminClient_ProfileWithoutUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := NewAdminClient(srv.URL, 0, nil).Profile(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrDecode)
}

func TestAdminClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewAdminClient(url, 0, nil).Profile(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrTransport)
	assert.False(t, errors.Is(err, ErrDecode))
}

func TestAdminClient_SendsBearerToken(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"users":[]}`))
	}))
	defer srv.Close()

	_, err := NewAdminClient(srv.URL, 0, nil).ListUsers(context.Background(), "secret")
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret", got)
}
