package bean

import (
	"reflect"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/kbukum/beankit/errors"
	"github.com/kbukum/beankit/i18n"
	"github.com/kbukum/beankit/logger"
	"github.com/kbukum/beankit/observability"
	"github.com/kbukum/beankit/session"
)

// Container creates, scopes, wires and tears down beans on demand.
//
// Two locks are involved. mu guards the stores and entry state and is never
// held while user code runs. buildMu serialises resolutions that construct
// anything; a resolution acquires it once and keeps it across its nested
// lookups, and cache hits on ready beans never touch it.
type Container struct {
	mu        sync.Mutex
	factories map[reflect.Type]*registration
	context   map[reflect.Type]*entry
	order     []*entry

	buildMu sync.Mutex

	sessions SessionStore
	tr       i18n.Renderer
	log      *logger.Logger

	meterProvider  metric.MeterProvider
	tracerProvider trace.TracerProvider
	tracer         trace.Tracer
	metrics        *instruments
}

type registration struct {
	factory func() (any, error)
	scope   *Scope
}

// entry is the stable handle a stored instance is held by from the moment it
// is constructed, before any dependency is injected.
type entry struct {
	handle   uuid.UUID
	typ      reflect.Type
	scope    Scope
	instance any

	// guarded by Container.mu
	state State
	err   error
	owner *resolution
}

// New creates an empty container.
func New(opts ...Option) *Container {
	c := &Container{
		factories: make(map[reflect.Type]*registration),
		context:   make(map[reflect.Type]*entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logger.WithComponent("bean")
	}
	if c.sessions == nil {
		c.sessions = session.New[reflect.Type, any]()
	}
	if c.tr == nil {
		c.tr = i18n.MustNew(i18n.DefaultLocale)
	}
	c.tracer = observability.Tracer(c.tracerProvider)
	c.metrics = newInstruments(observability.Meter(c.meterProvider), c.log)
	return c
}

// Provide registers a zero-argument factory for t. It replaces any earlier
// registration and affects only instances constructed afterwards.
func (c *Container) Provide(t reflect.Type, factory func() (any, error), opts ...RegisterOption) error {
	if t == nil {
		return apperrors.InvalidArgument("type", "must not be nil")
	}
	if factory == nil {
		return apperrors.InvalidArgument("factory", "must not be nil")
	}
	reg := &registration{factory: factory}
	for _, opt := range opts {
		opt(reg)
	}

	c.mu.Lock()
	c.factories[t] = reg
	c.mu.Unlock()

	c.log.Debug("bean registered", logger.Fields(logger.FieldBean, typeName(t)))
	return nil
}

// Register registers a typed zero-argument factory for T.
func Register[T any](c *Container, factory func() (T, error), opts ...RegisterOption) error {
	if factory == nil {
		return apperrors.InvalidArgument("factory", "must not be nil")
	}
	return c.Provide(TypeOf[T](), func() (any, error) {
		return factory()
	}, opts...)
}

func (c *Container) registration(t reflect.Type) *registration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.factories[t]
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
