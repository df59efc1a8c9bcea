package ruwler

import (
	"context"
	"fmt"
	"sync"

	"github.com/ruwler/ruwler-go/component"
	"github.com/ruwler/ruwler-go/errors"
)

// Component runs a Client under a component.Registry. The client is built
// in Start and closed in Stop.
type Component struct {
	build  func() (*Client, error)
	mu     sync.RWMutex
	client *Client
}

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// NewComponent wraps a client constructor, for example
//
//	ruwler.NewComponent(func() (*ruwler.Client, error) { return ruwler.New(key) })
func NewComponent(build func() (*Client, error)) *Component {
	return &Component{build: build}
}

// Name implements component.Component.
func (c *Component) Name() string { return ComponentName }

// Start builds the client. Starting twice is a no-op.
func (c *Component) Start(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client != nil && !c.client.http.Closed() {
		return nil
	}
	if c.build == nil {
		return errors.MissingArgument("build")
	}
	cl, err := c.build()
	if err != nil {
		return err
	}
	c.client = cl
	return nil
}

// Stop closes the client.
func (c *Component) Stop(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Health reports unhealthy until Start succeeds and after Stop. It never
// calls the API.
func (c *Component) Health(_ context.Context) component.Health {
	c.mu.RLock()
	defer c.mu.RUnlock()
	h := component.Health{Name: ComponentName, Status: component.StatusHealthy}
	switch {
	case c.client == nil:
		h.Status, h.Message = component.StatusUnhealthy, "not started"
	case c.client.http.Closed():
		h.Status, h.Message = component.StatusUnhealthy, "closed"
	}
	return h
}

// Describe implements component.Describable.
func (c *Component) Describe() component.Description {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d := component.Description{Name: "Ruwler API", Type: "client"}
	if c.client == nil {
		d.Details = "not started"
		return d
	}
	cfg := c.client.Config()
	d.Details = fmt.Sprintf("%s format=%s auth=%s timeout=%s", cfg.BaseURL(), cfg.Format, cfg.AuthMode, cfg.Timeout)
	d.Port = cfg.Port
	if d.Port == 0 {
		d.Port = defaultPort(cfg.Scheme)
	}
	return d
}

// Client returns the running client, or nil before Start.
func (c *Component) Client() *Client {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.client
}

func defaultPort(scheme string) int {
	if scheme == "http" {
		return 80
	}
	return 443
}
