package console

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"ewaste-admin-console/internal/model"
	"ewaste-admin-console/internal/service"
	"ewaste-admin-console/internal/session"
)

const deniedNotice = "Access denied. You must be an admin."

// Guard decides whether the console may run. The cached user in the session
// is never consulted: every check asks the server for a fresh profile.
type Guard struct {
	api      API
	sessions *session.Manager
	view     View
	nav      Navigator
	log      *zap.Logger
}

func NewGuard(api API, sessions *session.Manager, view View, nav Navigator, log *zap.Logger) *Guard {
	return &Guard{api: api, sessions: sessions, view: view, nav: nav, log: log}
}

// Check verifies the stored credential and returns it with the admin's
// profile. On any failure the guard has already redirected or shown the
// denial notice by the time it returns.
func (g *Guard) Check(ctx context.Context) (string, *model.User, error) {
	token, ok, err := g.sessions.Token()
	if err != nil {
		g.log.Error("read session", zap.Error(err))
		g.clear(g.sessions.Clear)
		g.nav.ToLogin()
		return "", nil, fmt.Errorf("%w: %v", ErrAuthenticationMissing, err)
	}
	if !ok {
		g.nav.ToLogin()
		return "", nil, ErrAuthenticationMissing
	}

	user, err := g.api.Profile(ctx, token)
	if err != nil {
		var re *service.RequestError
		if errors.As(err, &re) {
			g.log.Info("session rejected", zap.Int("status", re.Status))
			g.clear(g.sessions.Clear)
			g.nav.ToLogin()
			return "", nil, fmt.Errorf("%w: %v", ErrAuthenticationInvalid, err)
		}
		g.log.Error("failed to verify admin", zap.Error(err))
		g.clear(g.sessions.ClearToken)
		g.nav.ToLogin()
		return "", nil, fmt.Errorf("%w: %v", ErrNetworkOrParse, err)
	}

	if err := g.sessions.SetCurrentUser(user); err != nil {
		g.log.Warn("cache current user", zap.Error(err))
	}

	if !user.IsAdmin {
		g.view.Deny(deniedNotice)
		return "", nil, ErrAuthorizationDenied
	}
	return token, user, nil
}

// Logout drops the session whatever its state and returns to login.
func (g *Guard) Logout() {
	g.clear(g.sessions.Clear)
	g.nav.ToLogin()
}

func (g *Guard) clear(fn func() error) {
	if err := fn(); err != nil {
		g.log.Error("clear session", zap.Error(err))
	}
}
