package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"ewaste-admin-console/internal/dto"
	"ewaste-admin-console/internal/model"
)

var (
	// ErrTransport wraps failures that never produced an HTTP response.
	ErrTransport = errors.New("request failed")
	// ErrDecode wraps malformed response bodies.
	ErrDecode = errors.New("malformed response")
)

// RequestError is a non-success HTTP status from the marketplace API.
type RequestError struct {
	Method string
	Path   string
	Status int
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
}

// IsStatus reports whether err is a RequestError with the given status.
func IsStatus(err error, status int) bool {
	var re *RequestError
	return errors.As(err, &re) && re.Status == status
}

// AdminClient calls the marketplace's auth and admin endpoints. Every call
// carries the caller's credential as a bearer token.
type AdminClient struct {
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

// NewAdminClient builds a client for the API at baseURL. A zero timeout
// leaves request lifetime to the transport and the caller's context.
func NewAdminClient(baseURL string, timeout time.Duration, log *zap.Logger) *AdminClient {
	if log == nil {
		log = zap.NewNop()
	}
	return &AdminClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Profile verifies the credential and returns the caller's profile.
func (a *AdminClient) Profile(ctx context.Context, token string) (*model.User, error) {
	var out dto.ProfileResponse
	if err := a.do(ctx, token, http.MethodGet, "/api/auth/profile", nil, &out); err != nil {
		return nil, err
	}
	if out.User == nil {
		return nil, fmt.Errorf("%w: profile without user", ErrDecode)
	}
	return out.User, nil
}

func (a *AdminClient) ListUsers(ctx context.Context, token string) ([]model.User, error) {
	var out dto.UsersResponse
	if err := a.do(ctx, token, http.MethodGet, "/api/auth/admin/users", nil, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

func (a *AdminClient) PromoteUser(ctx context.Context, token, id string) error {
	return a.do(ctx, token, http.MethodPut, "/api/auth/admin/users/"+url.PathEscape(id)+"/promote", struct{}{}, nil)
}

func (a *AdminClient) DeleteUser(ctx context.Context, token, id string) error {
	return a.do(ctx, token, http.MethodDelete, "/api/auth/admin/users/"+url.PathEscape(id), nil, nil)
}

func (a *AdminClient) ListOrders(ctx context.Context, token string) ([]model.Order, error) {
	var out dto.OrdersResponse
	if err := a.do(ctx, token, http.MethodGet, "/api/auth/admin/orders", nil, &out); err != nil {
		return nil, err
	}
	return out.Orders, nil
}

// UpdateOrderStatus requests a status transition for one order.
func (a *AdminClient) UpdateOrderStatus(ctx context.Context, token, orderID, status string) error {
	body := dto.UpdateOrderRequest{Status: status}
	return a.do(ctx, token, http.MethodPut, "/api/auth/admin/orders/"+url.PathEscape(orderID), body, nil)
}

func (a *AdminClient) DeleteOrder(ctx context.Context, token, orderID string) error {
	return a.do(ctx, token, http.MethodDelete, "/api/auth/admin/orders/"+url.PathEscape(orderID), nil, nil)
}

func (a *AdminClient) do(ctx context.Context, token, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	a.log.Debug("api call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &RequestError{Method: method, Path: path, Status: resp.StatusCode}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrDecode, method, path, err)
	}
	return nil
}
