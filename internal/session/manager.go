package session

import (
	"encoding/json"
	"fmt"

	"ewaste-admin-console/internal/model"
)

// Keys under which the session is persisted. They match the names the
// marketplace's web login page uses.
const (
	KeyToken       = "authToken"
	KeyCurrentUser = "currentUser"
)

// Manager owns the persisted session: the bearer credential and the cached
// profile of the signed-in user. All reads and writes go through it.
type Manager struct {
	store Store
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Token returns the persisted credential. An empty stored value counts as
// absent.
func (m *Manager) Token() (string, bool, error) {
	v, ok, err := m.store.GetItem(KeyToken)
	if err != nil {
		return "", false, err
	}
	return v, ok && v != "", nil
}

func (m *Manager) SetToken(token string) error {
	return m.store.SetItem(KeyToken, token)
}

// CurrentUser returns the cached profile. It is only a display hint; access
// decisions are always made on a fresh profile from the server.
func (m *Manager) CurrentUser() (*model.User, bool, error) {
	v, ok, err := m.store.GetItem(KeyCurrentUser)
	if err != nil || !ok {
		return nil, false, err
	}
	var u model.User
	if err := json.Unmarshal([]byte(v), &u); err != nil {
		return nil, false, fmt.Errorf("decode cached user: %w", err)
	}
	return &u, true, nil
}

// SetCurrentUser replaces any previously cached profile.
func (m *Manager) SetCurrentUser(u *model.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return m.store.SetItem(KeyCurrentUser, string(data))
}

func (m *Manager) ClearToken() error {
	return m.store.RemoveItem(KeyToken)
}

// Clear removes both the credential and the cached user.
func (m *Manager) Clear() error {
	if err := m.store.RemoveItem(KeyToken); err != nil {
		return err
	}
	return m.store.RemoveItem(KeyCurrentUser)
}
