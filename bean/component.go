package bean

import (
	"context"
	"fmt"

	"github.com/kbukum/beankit/component"
)

const componentName = "bean-container"

// Component adapts a Container to the component lifecycle. Beans are built
// on demand, so Start does nothing and Stop shuts the container down.
type Component struct {
	c *Container
}

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// NewComponent wraps c.
func NewComponent(c *Container) *Component {
	return &Component{c: c}
}

// Container returns the wrapped container.
func (cc *Component) Container() *Container { return cc.c }

func (cc *Component) Name() string { return componentName }

func (cc *Component) Start(ctx context.Context) error { return nil }

// Stop shuts the container down. It never fails.
func (cc *Component) Stop(ctx context.Context) error {
	cc.c.Shutdown(ctx)
	return nil
}

// Health is degraded when a context bean failed construction.
func (cc *Component) Health(ctx context.Context) component.Health {
	infos := cc.c.Snapshot()
	failed := 0
	for _, info := range infos {
		if info.State == StateFailed.String() {
			failed++
		}
	}
	if failed > 0 {
		return component.Health{
			Name:    componentName,
			Status:  component.StatusDegraded,
			Message: fmt.Sprintf("%d of %d context beans failed", failed, len(infos)),
		}
	}
	return component.Health{
		Name:    componentName,
		Status:  component.StatusHealthy,
		Message: fmt.Sprintf("%d context beans", len(infos)),
	}
}

func (cc *Component) Describe() component.Description {
	return component.Description{
		Name:    "Bean Container",
		Type:    "container",
		Details: fmt.Sprintf("beans=%d", len(cc.c.Snapshot())),
	}
}
