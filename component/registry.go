package component

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ruwler/ruwler-go/logger"
)

// DefaultStopTimeout bounds each component's Stop call.
const DefaultStopTimeout = 10 * time.Second

// componentEntry holds a component and its started state.
type componentEntry struct {
	component Component
	started   bool
}

// Registry manages component lifecycle with deterministic ordering.
// Components are started in registration order and stopped in reverse order.
type Registry struct {
	entries []*componentEntry
	lookup  map[string]*componentEntry
	log     logger.Sink
	mu      sync.RWMutex
}

// NewRegistry creates a new component registry. A nil sink discards
// lifecycle logs.
func NewRegistry(log logger.Sink) *Registry {
	return &Registry{
		entries: make([]*componentEntry, 0),
		lookup:  make(map[string]*componentEntry),
		log:     logger.OrNop(log),
	}
}

// Register adds a component to the registry. Components are started in
// the order they are registered, so register dependencies first.
func (r *Registry) Register(c Component) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := c.Name()
	if _, exists := r.lookup[name]; exists {
		return fmt.Errorf("component %s already registered", name)
	}

	entry := &componentEntry{component: c}
	r.entries = append(r.entries, entry)
	r.lookup[name] = entry

	r.log.Log(logger.LevelDebug, "Component registered", logger.Fields("component", name))
	return nil
}

// StartAll starts all components in registration order. On failure the
// components already started stay started; call StopAll to release them.
func (r *Registry) StartAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.log.Log(logger.LevelDebug, "Starting all components", logger.Fields("count", len(r.entries)))

	for _, entry := range r.entries {
		if entry.started {
			continue
		}
		name := entry.component.Name()

		if err := entry.component.Start(ctx); err != nil {
			r.log.Log(logger.LevelError, "Component start failed", logger.Fields(
				"component", name,
				logger.FieldError, err.Error(),
			))
			return fmt.Errorf("failed to start %s: %w", name, err)
		}

		entry.started = true
		r.log.Log(logger.LevelDebug, "Component started", logger.Fields("component", name))
	}
	return nil
}

// StopAll gracefully stops all started components in reverse registration
// order. Every component is attempted even when an earlier one fails.
func (r *Registry) StopAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for i := len(r.entries) - 1; i >= 0; i-- {
		entry := r.entries[i]
		if !entry.started {
			continue
		}

		name := entry.component.Name()
		stopCtx, cancel := context.WithTimeout(ctx, DefaultStopTimeout)
		if err := entry.component.Stop(stopCtx); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop %s: %w", name, err))
			r.log.Log(logger.LevelError, "Component stop failed", logger.Fields(
				"component", name,
				logger.FieldError, err.Error(),
			))
		} else {
			r.log.Log(logger.LevelDebug, "Component stopped", logger.Fields("component", name))
		}
		entry.started = false
		cancel()
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %v", errs)
	}
	return nil
}

// HealthAll returns health status for all registered components.
func (r *Registry) HealthAll(ctx context.Context) []Health {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]Health, 0, len(r.entries))
	for _, entry := range r.entries {
		results = append(results, entry.component.Health(ctx))
	}
	return results
}

// Describe returns a Description for every registered component, using the
// component name and an empty Type for those that do not implement
// Describable.
func (r *Registry) Describe() []Description {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Description, 0, len(r.entries))
	for _, entry := range r.entries {
		var d Description
		if desc, ok := entry.component.(Describable); ok {
			d = desc.Describe()
		}
		if d.Name == "" {
			d.Name = entry.component.Name()
		}
		out = append(out, d)
	}
	return out
}

// Get returns a registered component by name, or nil if not found.
func (r *Registry) Get(name string) Component {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if entry, exists := r.lookup[name]; exists {
		return entry.component
	}
	return nil
}

// All returns all registered components in registration order.
func (r *Registry) All() []Component {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Component, 0, len(r.entries))
	for _, entry := range r.entries {
		result = append(result, entry.component)
	}
	return result
}
