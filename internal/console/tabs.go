package console

import (
	"fmt"
	"slices"
	"sync"
)

// TabNavigator tracks which tab, and therefore which panel, is active.
// Exactly one tab is active at a time.
type TabNavigator struct {
	mu     sync.Mutex
	tabs   []string
	active string
	view   View
}

// NewTabNavigator starts with active selected. active must be one of tabs.
func NewTabNavigator(view View, active string, tabs ...string) (*TabNavigator, error) {
	if !slices.Contains(tabs, active) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTab, active)
	}
	return &TabNavigator{tabs: tabs, active: active, view: view}, nil
}

// Select deactivates every tab and activates tab and its panel.
func (n *TabNavigator) Select(tab string) error {
	n.mu.Lock()
	if !slices.Contains(n.tabs, tab) {
		n.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownTab, tab)
	}
	n.active = tab
	n.mu.Unlock()

	n.view.ActivateTab(tab)
	return nil
}

func (n *TabNavigator) Active() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.active
}

func (n *TabNavigator) IsActive(tab string) bool {
	return n.Active() == tab
}

func (n *TabNavigator) Tabs() []string {
	return slices.Clone(n.tabs)
}

// PanelID is the id of the panel a tab shows.
func PanelID(tab string) string {
	return tab + "-tab"
}
