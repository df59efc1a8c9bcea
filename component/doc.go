// Package component defines the lifecycle interfaces shared by the Ruwler
// client and the ruwlertest fake server.
//
// Components can be started, stopped and health-checked, and a Registry
// drives a set of them in registration order.
//
// # Interfaces
//
//   - Component: Core lifecycle interface (Start/Stop/Health)
//   - Describable: One-line self description for CLI output
package component
