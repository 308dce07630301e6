package admin

import (
	"context"

	"github.com/kbukum/beankit/component"
)

const componentName = "admin-server"

var (
	_ component.Component   = (*Server)(nil)
	_ component.Describable = (*Server)(nil)
)

// Name returns the component name used for registration.
func (s *Server) Name() string { return componentName }

// Health reports whether the server is listening.
func (s *Server) Health(ctx context.Context) component.Health {
	if !s.running() {
		return component.Health{
			Name:    componentName,
			Status:  component.StatusUnhealthy,
			Message: "admin server not listening",
		}
	}
	return component.Health{Name: componentName, Status: component.StatusHealthy, Message: s.Addr()}
}

// Describe returns summary info for startup logging.
func (s *Server) Describe() component.Description {
	return component.Description{
		Name:    "Admin Server",
		Type:    "server",
		Details: s.Addr(),
	}
}
