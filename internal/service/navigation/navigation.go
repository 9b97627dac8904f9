// Package navigation tracks which console view is selected.
package navigation

import (
	"sync"

	"github.com/hugo-lorenzo-mato/devcontent/internal/core"
	"github.com/hugo-lorenzo-mato/devcontent/internal/events"
)

// Publisher is the subset of the event bus the controller needs.
type Publisher interface {
	Publish(event events.Event)
}

// Controller holds the current view.
type Controller struct {
	mu      sync.RWMutex
	current core.View
	events  Publisher
}

// New creates a controller showing initial, or the dashboard when initial
// is empty. pub may be nil.
func New(initial core.View, pub Publisher) *Controller {
	if initial == "" {
		initial = core.ViewDashboard
	}
	return &Controller{current: initial, events: pub}
}

// Current returns the selected view.
func (c *Controller) Current() core.View {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Select switches to view. It reports whether the view changed; a change
// emits view_changed.
func (c *Controller) Select(view core.View) bool {
	c.mu.Lock()
	from := c.current
	if from == view {
		c.mu.Unlock()
		return false
	}
	c.current = view
	c.mu.Unlock()

	if c.events != nil {
		c.events.Publish(events.NewViewChangedEvent(from, view))
	}
	return true
}
