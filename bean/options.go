package bean

import (
	"reflect"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/beankit/i18n"
	"github.com/kbukum/beankit/logger"
)

// SessionStore holds session-scoped beans keyed by type. Expiry is owned by
// the store. Values put by the container are opaque container records.
type SessionStore interface {
	Get(t reflect.Type) (any, bool)
	Put(t reflect.Type, v any)
	Clear()
}

// Option configures a Container.
type Option func(*Container)

// WithLogger sets the container logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Container) {
		if l != nil {
			c.log = l
		}
	}
}

// WithSessionStore replaces the default in-memory session store.
func WithSessionStore(s SessionStore) Option {
	return func(c *Container) {
		if s != nil {
			c.sessions = s
		}
	}
}

// WithTranslator sets the renderer for user-facing error messages.
func WithTranslator(r i18n.Renderer) Option {
	return func(c *Container) {
		if r != nil {
			c.tr = r
		}
	}
}

// WithMeterProvider sets the provider for container metrics.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *Container) {
		c.meterProvider = mp
	}
}

// WithTracerProvider sets the provider for container spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Container) {
		c.tracerProvider = tp
	}
}

// RegisterOption configures a bean registration.
type RegisterOption func(*registration)

// WithScope overrides the scope the bean declares through BeanScope.
func WithScope(s Scope) RegisterOption {
	return func(r *registration) {
		r.scope = &s
	}
}
