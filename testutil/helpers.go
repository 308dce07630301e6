package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/kbukum/beankit/bean"
	"github.com/kbukum/beankit/component"
	"github.com/kbukum/beankit/logger"
)

// StopTimeout bounds the Stop call registered by Start.
const StopTimeout = 5 * time.Second

// Container returns a container with a silent logger that is shut down when
// the test ends.
func Container(t testing.TB, opts ...bean.Option) *bean.Container {
	t.Helper()
	c := bean.New(append([]bean.Option{bean.WithLogger(logger.NewNop())}, opts...)...)
	t.Cleanup(func() { c.Shutdown(context.Background()) })
	return c
}

// Start starts comp and stops it when the test ends. A start failure fails
// the test immediately.
func Start(t testing.TB, comp component.Component) {
	t.Helper()
	if err := comp.Start(context.Background()); err != nil {
		t.Fatalf("starting %s: %v", comp.Name(), err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), StopTimeout)
		defer cancel()
		if err := comp.Stop(ctx); err != nil {
			t.Errorf("stopping %s: %v", comp.Name(), err)
		}
	})
}

// RequireHealthy fails the test unless comp reports healthy.
func RequireHealthy(t testing.TB, comp component.Component) {
	t.Helper()
	if h := comp.Health(context.Background()); h.Status != component.StatusHealthy {
		t.Fatalf("%s is %s: %s", comp.Name(), h.Status, h.Message)
	}
}
