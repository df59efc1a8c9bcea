package component

import (
	"context"
	"fmt"
	"testing"

	"github.com/ruwler/ruwler-go/logger"
)

// mockComponent implements Component for testing.
type mockComponent struct {
	name       string
	startErr   error
	stopErr    error
	health     Health
	startOrder *[]string
	stopOrder  *[]string
}

func (m *mockComponent) Name() string { return m.name }
func (m *mockComponent) Start(ctx context.Context) error {
	if m.startOrder != nil {
		*m.startOrder = append(*m.startOrder, m.name)
	}
	return m.startErr
}
func (m *mockComponent) Stop(ctx context.Context) error {
	if m.stopOrder != nil {
		*m.stopOrder = append(*m.stopOrder, m.name)
	}
	return m.stopErr
}
func (m *mockComponent) Health(ctx context.Context) Health {
	return m.health
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry(nil)
	if r == nil {
		t.Fatal("expected non-nil registry")
	}
}

func TestRegister(t *testing.T) {
	r := NewRegistry(nil)
	c := &mockComponent{name: "client", health: Health{Name: "client", Status: StatusHealthy}}

	if err := r.Register(c); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	r := NewRegistry(nil)
	c := &mockComponent{name: "client"}
	r.Register(c)

	err := r.Register(&mockComponent{name: "client"})
	if err == nil {
		t.Error("expected error for duplicate registration")
	}
}

func TestGet(t *testing.T) {
	r := NewRegistry(nil)
	c := &mockComponent{name: "client"}
	r.Register(c)

	got := r.Get("client")
	if got == nil {
		t.Fatal("expected to get registered component")
	}
	if got.Name() != "client" {
		t.Errorf("expected 'client', got %q", got.Name())
	}
}

func TestGetNotFound(t *testing.T) {
	r := NewRegistry(nil)
	got := r.Get("missing")
	if got != nil {
		t.Error("expected nil for unregistered component")
	}
}

func TestStartAll(t *testing.T) {
	r := NewRegistry(nil)
	order := []string{}

	r.Register(&mockComponent{
		name: "client", startOrder: &order,
		health: Health{Name: "client", Status: StatusHealthy},
	})
	r.Register(&mockComponent{
		name: "fake", startOrder: &order,
		health: Health{Name: "fake", Status: StatusHealthy},
	})

	if err := r.StartAll(context.Background()); err != nil {
		t.Fatalf("StartAll failed: %v", err)
	}

	if len(order) != 2 {
		t.Fatalf("expected 2 starts, got %d", len(order))
	}
	if order[0] != "client" || order[1] != "fake" {
		t.Errorf("expected start order [client, fake], got %v", order)
	}
}

func TestStartAllError(t *testing.T) {
	r := NewRegistry(nil)
	r.Register(&mockComponent{name: "client", startErr: fmt.Errorf("connection refused")})

	err := r.StartAll(context.Background())
	if err == nil {
		t.Error("expected error from StartAll")
	}
}

func TestStopAllReverseOrder(t *testing.T) {
	r := NewRegistry(nil)
	order := []string{}

	r.Register(&mockComponent{name: "client", stopOrder: &order, health: Health{Name: "client", Status: StatusHealthy}})
	r.Register(&mockComponent{name: "fake", stopOrder: &order, health: Health{Name: "fake", Status: StatusHealthy}})
	r.Register(&mockComponent{name: "exporter", stopOrder: &order, health: Health{Name: "exporter", Status: StatusHealthy}})

	r.StartAll(context.Background())
	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll failed: %v", err)
	}

	if len(order) != 3 {
		t.Fatalf("expected 3 stops, got %d", len(order))
	}
	if order[0] != "exporter" || order[1] != "fake" || order[2] != "client" {
		t.Errorf("expected reverse stop order [exporter, fake, client], got %v", order)
	}
}

func TestStopAllSkipsUnstarted(t *testing.T) {
	r := NewRegistry(nil)
	order := []string{}
	r.Register(&mockComponent{name: "client", stopOrder: &order})

	// Don't start, then stop
	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll failed: %v", err)
	}
	if len(order) != 0 {
		t.Errorf("expected 0 stops for unstarted components, got %d", len(order))
	}
}

func TestStopAllWithErrors(t *testing.T) {
	r := NewRegistry(nil)
	r.Register(&mockComponent{
		name: "client", stopErr: fmt.Errorf("stop failed"),
		health: Health{Name: "client", Status: StatusHealthy},
	})
	r.StartAll(context.Background())

	err := r.StopAll(context.Background())
	if err == nil {
		t.Error("expected error from StopAll")
	}
}

func TestHealthAll(t *testing.T) {
	r := NewRegistry(nil)
	r.Register(&mockComponent{
		name:   "client",
		health: Health{Name: "client", Status: StatusHealthy, Message: "connected"},
	})
	r.Register(&mockComponent{
		name:   "fake",
		health: Health{Name: "fake", Status: StatusUnhealthy, Message: "timeout"},
	})

	results := r.HealthAll(context.Background())
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Status != StatusHealthy {
		t.Errorf("expected client healthy, got %s", results[0].Status)
	}
	if results[1].Status != StatusUnhealthy {
		t.Errorf("expected fake unhealthy, got %s", results[1].Status)
	}
}

func TestHealthStatusConstants(t *testing.T) {
	if StatusHealthy != "healthy" {
		t.Errorf("expected 'healthy', got %q", StatusHealthy)
	}
	if StatusUnhealthy != "unhealthy" {
		t.Errorf("expected 'unhealthy', got %q", StatusUnhealthy)
	}
	if StatusDegraded != "degraded" {
		t.Errorf("expected 'degraded', got %q", StatusDegraded)
	}
}

type describedComponent struct {
	mockComponent
	desc Description
}

func (d *describedComponent) Describe() Description { return d.desc }

func TestDescribe(t *testing.T) {
	r := NewRegistry(nil)
	r.Register(&describedComponent{
		mockComponent: mockComponent{name: "client"},
		desc:          Description{Name: "Ruwler API", Type: "client", Details: "https://ruwler.io"},
	})
	r.Register(&mockComponent{name: "fake"})

	got := r.Describe()
	if len(got) != 2 {
		t.Fatalf("expected 2 descriptions, got %d", len(got))
	}
	if got[0].Name != "Ruwler API" || got[0].Type != "client" {
		t.Errorf("unexpected description %+v", got[0])
	}
	if got[1].Name != "fake" {
		t.Errorf("expected fallback to component name, got %q", got[1].Name)
	}
}

func TestStartAllSkipsStarted(t *testing.T) {
	r := NewRegistry(nil)
	order := []string{}
	r.Register(&mockComponent{name: "client", startOrder: &order})

	r.StartAll(context.Background())
	r.StartAll(context.Background())
	if len(order) != 1 {
		t.Errorf("expected a single start, got %v", order)
	}
}

func TestRegistryLogsThroughSink(t *testing.T) {
	var msgs []string
	sink := logger.SinkFunc(func(level logger.Level, msg string, fields ...map[string]interface{}) {
		msgs = append(msgs, string(level)+":"+msg)
	})
	r := NewRegistry(sink)
	r.Register(&mockComponent{name: "client", startErr: fmt.Errorf("boom")})
	r.StartAll(context.Background())

	want := map[string]bool{"debug:Component registered": false, "error:Component start failed": false}
	for _, m := range msgs {
		if _, ok := want[m]; ok {
			want[m] = true
		}
	}
	for m, seen := range want {
		if !seen {
			t.Errorf("expected log %q, got %v", m, msgs)
		}
	}
}
