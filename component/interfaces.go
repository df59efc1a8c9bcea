package component

import "context"

// HealthStatus represents the health state of a component.
type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusUnhealthy HealthStatus = "unhealthy"
	StatusDegraded  HealthStatus = "degraded"
)

// Health holds health information for a component.
type Health struct {
	Name    string       `json:"name"`
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

// Component represents a lifecycle-managed piece of the SDK. The Ruwler
// client and the ruwlertest fake server both implement it.
type Component interface {
	// Name returns the unique name of the component for registration.
	Name() string

	// Start initializes and starts the component.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the component and releases resources.
	Stop(ctx context.Context) error

	// Health returns the current health status of the component.
	Health(ctx context.Context) Health
}

// Description holds summary information shown by the CLI.
// Components that implement Describable return this to self-report
// what they are and how they're configured.
type Description struct {
	// Name is the human-readable display name (e.g., "Ruwler API").
	// If empty, the component's Name() is used.
	Name string
	// Type categorizes the component, e.g. "client" or "fake-server".
	Type string
	// Details is a human-readable one-liner.
	// Example: "https://ruwler.io format=jsonld auth=apikey"
	Details string
	// Port is the primary port, 0 if not applicable.
	Port int
}

// Describable is optionally implemented by Components to report what
// they are and how they're configured.
type Describable interface {
	Describe() Description
}
