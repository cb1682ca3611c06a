package apitest

import (
	"bytes"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"ewaste-admin-console/internal/controller"
	"ewaste-admin-console/internal/middleware"
)

// NewRouter registers the marketplace's auth and admin routes on a gin
// engine backed by b.
func NewRouter(b *Backend) *gin.Engine {
	ctrl := controller.NewAdminController(b)

	r := gin.New()
	// Order ids may contain escaped slashes.
	r.UseRawPath = true
	r.Use(gin.Recovery(), b.recordCalls(), b.injectFailures())

	auth := r.Group("/api/auth")
	auth.Use(middleware.AuthMiddleware(b))
	auth.GET("/profile", ctrl.Profile)

	admin := auth.Group("/admin")
	admin.Use(middleware.AdminOnly())
	admin.GET("/users", ctrl.ListUsers)
	admin.PUT("/users/:id/promote", ctrl.PromoteUser)
	admin.DELETE("/users/:id", ctrl.DeleteUser)
	admin.GET("/orders", ctrl.ListOrders)
	admin.PUT("/orders/:id", ctrl.UpdateOrder)
	admin.DELETE("/orders/:id", ctrl.DeleteOrder)

	return r
}

// NewServer starts an httptest server for b and closes it when the test
// ends.
func NewServer(t testing.TB, b *Backend) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	srv := httptest.NewServer(NewRouter(b))
	t.Cleanup(srv.Close)
	return srv
}

func (b *Backend) recordCalls() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body []byte
		if c.Request.Body != nil {
			body, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
		}
		b.mu.Lock()
		b.calls = append(b.calls, Call{
			Method: c.Request.Method,
			Path:   c.Request.URL.Path,
			Body:   string(body),
		})
		b.mu.Unlock()
		c.Next()
	}
}

func (b *Backend) injectFailures() gin.HandlerFunc {
	return func(c *gin.Context) {
		b.mu.Lock()
		status, ok := b.failures[c.Request.Method+" "+c.FullPath()]
		b.mu.Unlock()
		if ok {
			c.AbortWithStatusJSON(status, gin.H{"error": "injected failure"})
			return
		}
		c.Next()
	}
}
