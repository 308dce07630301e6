package component

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/kbukum/beankit/logger"
)

type mockComponent struct {
	name     string
	startErr error
	stopErr  error
	health   Health
	events   *[]string
}

func (m *mockComponent) Name() string { return m.name }
func (m *mockComponent) Start(ctx context.Context) error {
	if m.events != nil && m.startErr == nil {
		*m.events = append(*m.events, "start:"+m.name)
	}
	return m.startErr
}
func (m *mockComponent) Stop(ctx context.Context) error {
	if m.events != nil {
		*m.events = append(*m.events, "stop:"+m.name)
	}
	return m.stopErr
}
func (m *mockComponent) Health(ctx context.Context) Health { return m.health }

type describedComponent struct{ mockComponent }

func (d *describedComponent) Describe() Description {
	return Description{Type: "store", Details: "timeout=30m0s"}
}

func newTestRegistry() *Registry { return NewRegistry(logger.NewNop()) }

func TestRegisterDuplicate(t *testing.T) {
	r := newTestRegistry()
	if err := r.Register(&mockComponent{name: "beans"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := r.Register(&mockComponent{name: "beans"}); err == nil {
		t.Error("expected error for duplicate registration")
	}
}

func TestGet(t *testing.T) {
	r := newTestRegistry()
	r.Register(&mockComponent{name: "beans"})

	if got := r.Get("beans"); got == nil || got.Name() != "beans" {
		t.Fatalf("expected registered component, got %v", got)
	}
	if got := r.Get("missing"); got != nil {
		t.Error("expected nil for unregistered component")
	}
	if n := len(r.All()); n != 1 {
		t.Errorf("expected 1 component, got %d", n)
	}
}

func TestStartStopOrder(t *testing.T) {
	r := newTestRegistry()
	events := []string{}

	r.Register(&mockComponent{name: "sessions", events: &events})
	r.Register(&describedComponent{mockComponent{name: "beans", events: &events}})
	r.Register(&mockComponent{name: "admin", events: &events})

	if err := r.StartAll(context.Background()); err != nil {
		t.Fatalf("StartAll failed: %v", err)
	}
	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll failed: %v", err)
	}

	want := []string{"start:sessions", "start:beans", "start:admin", "stop:admin", "stop:beans", "stop:sessions"}
	if fmt.Sprint(events) != fmt.Sprint(want) {
		t.Errorf("expected %v, got %v", want, events)
	}
}

func TestStartAllErrorRollsBack(t *testing.T) {
	r := newTestRegistry()
	events := []string{}

	r.Register(&mockComponent{name: "sessions", events: &events})
	r.Register(&mockComponent{name: "beans", events: &events, startErr: fmt.Errorf("refused")})
	r.Register(&mockComponent{name: "admin", events: &events})

	if err := r.StartAll(context.Background()); err == nil {
		t.Fatal("expected error from StartAll")
	}
	want := []string{"start:sessions", "stop:sessions"}
	if fmt.Sprint(events) != fmt.Sprint(want) {
		t.Errorf("expected rollback %v, got %v", want, events)
	}
}

func TestStopAllSkipsUnstarted(t *testing.T) {
	r := newTestRegistry()
	events := []string{}
	r.Register(&mockComponent{name: "beans", events: &events})

	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected no stops for unstarted components, got %v", events)
	}
}

func TestStopAllContinuesAfterError(t *testing.T) {
	r := newTestRegistry()
	events := []string{}
	r.Register(&mockComponent{name: "first", events: &events})
	r.Register(&mockComponent{name: "second", events: &events, stopErr: fmt.Errorf("stuck")})
	r.StartAll(context.Background())

	err := r.StopAll(context.Background())
	if err == nil {
		t.Fatal("expected error from StopAll")
	}
	want := []string{"start:first", "start:second", "stop:second", "stop:first"}
	if fmt.Sprint(events) != fmt.Sprint(want) {
		t.Errorf("expected %v, got %v", want, events)
	}
}

type deadlineComponent struct {
	mockComponent
	deadline time.Time
}

func (d *deadlineComponent) Stop(ctx context.Context) error {
	d.deadline, _ = ctx.Deadline()
	return nil
}

func TestStopTimeoutApplied(t *testing.T) {
	r := newTestRegistry()
	r.SetStopTimeout(time.Second)
	c := &deadlineComponent{mockComponent: mockComponent{name: "slow"}}
	r.Register(c)
	r.StartAll(context.Background())

	before := time.Now()
	r.StopAll(context.Background())
	if c.deadline.IsZero() || c.deadline.Sub(before) > 2*time.Second {
		t.Errorf("expected stop deadline about 1s out, got %v", c.deadline.Sub(before))
	}
}

func TestHealthAll(t *testing.T) {
	r := newTestRegistry()
	r.Register(&mockComponent{name: "beans", health: Health{Name: "beans", Status: StatusHealthy}})
	r.Register(&mockComponent{name: "sessions", health: Health{Name: "sessions", Status: StatusDegraded}})

	results := r.HealthAll(context.Background())
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Status != StatusHealthy || results[1].Status != StatusDegraded {
		t.Errorf("unexpected health results %v", results)
	}
}
