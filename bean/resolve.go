package bean

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/kbukum/beankit/errors"
	"github.com/kbukum/beankit/i18n"
	"github.com/kbukum/beankit/logger"
	"github.com/kbukum/beankit/observability"
)

var (
	// ErrNoConstructor is the cause when a type has no registered factory and
	// cannot be zero-value constructed.
	ErrNoConstructor = errors.New("no zero-argument constructor")
	// ErrNilInstance is the cause when a factory returns a nil instance.
	ErrNilInstance = errors.New("factory returned nil")
	// ErrRequestCycle is the cause when a request-scoped bean depends on
	// itself through its own dependency graph.
	ErrRequestCycle = errors.New("cyclic dependency on request-scoped bean")
	// ErrShuttingDown is the cause when a pre-destroy hook asks for a bean
	// that would have to be constructed.
	ErrShuttingDown = errors.New("container is shutting down")
)

// resolution is the state of one top-level Get, or of Shutdown. It travels
// in the context handed to hooks so that a Get made from a hook joins it
// instead of waiting for buildMu.
type resolution struct {
	locked  bool
	closing bool

	// request-scoped types under construction since the nearest stored
	// context or session bean
	requests map[reflect.Type]struct{}
}

type resolutionKey struct{}

func withResolution(ctx context.Context, res *resolution) context.Context {
	return context.WithValue(ctx, resolutionKey{}, res)
}

func resolutionFrom(ctx context.Context) *resolution {
	res, _ := ctx.Value(resolutionKey{}).(*resolution)
	return res
}

func (r *resolution) release(c *Container) {
	if r.locked {
		r.locked = false
		c.buildMu.Unlock()
	}
}

// Get returns the bean for t, constructing and wiring it if its scope holds
// no live instance. A nil t yields (nil, nil) without constructing anything.
//
// A context or session bean that is already being built by this call's own
// dependency chain is returned as is, possibly before its injection has
// finished. Any other caller only ever sees a ready instance or the error
// the construction failed with.
//
// Inside a hook, ctx must be the context the hook was given.
func (c *Container) Get(ctx context.Context, t reflect.Type) (any, error) {
	if t == nil {
		return nil, nil
	}

	res := resolutionFrom(ctx)
	if res == nil || !res.locked {
		res = &resolution{}
		defer res.release(c)
		ctx = withResolution(ctx, res)
	}

	ctx, span := c.tracer.Start(ctx, "bean.get",
		trace.WithAttributes(attribute.String(logger.FieldBean, typeName(t))))
	defer span.End()

	v, err := c.get(ctx, res, t)
	if err != nil {
		observability.RecordError(span, err)
	}
	return v, err
}

func (c *Container) get(ctx context.Context, res *resolution, t reflect.Type) (any, error) {
	if v, ok, err := c.lookup(res, t); ok {
		c.metrics.hit(ctx)
		return v, err
	}
	if !res.locked {
		c.buildMu.Lock()
		res.locked = true
		if v, ok, err := c.lookup(res, t); ok {
			c.metrics.hit(ctx)
			return v, err
		}
	}
	c.metrics.miss(ctx)
	if res.closing {
		return nil, c.constructionFailed(t, ErrShuttingDown)
	}
	return c.build(ctx, res, t)
}

// lookup checks the context store, then the session store.
func (c *Container) lookup(res *resolution, t reflect.Type) (any, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.context[t]; ok {
		return e.observe(res)
	}
	if v, ok := c.sessions.Get(t); ok {
		e, isEntry := v.(*entry)
		if !isEntry {
			return v, true, nil
		}
		return e.observe(res)
	}
	return nil, false, nil
}

// observe must be called with Container.mu held.
func (e *entry) observe(res *resolution) (any, bool, error) {
	switch e.state {
	case StateReady:
		return e.instance, true, nil
	case StateFailed:
		return nil, true, e.err
	case StateDestroyed:
		return nil, false, nil
	default:
		if e.owner == res {
			return e.instance, true, nil
		}
		return nil, false, nil
	}
}

func (c *Container) build(ctx context.Context, res *resolution, t reflect.Type) (any, error) {
	name := typeName(t)
	log := c.log.WithContext(ctx).WithFields(logger.Fields(logger.FieldBean, name))

	if _, ok := res.requests[t]; ok {
		c.metrics.failures.Add(ctx, 1)
		log.Error("bean construction failed", logger.ErrorFields("construct", ErrRequestCycle))
		return nil, c.constructionFailed(t, ErrRequestCycle)
	}

	reg := c.registration(t)
	inst, err := construct(t, reg)
	if err == nil {
		var scope Scope
		if scope, err = scopeOf(inst, reg); err == nil {
			return c.wire(ctx, res, log, &entry{
				handle:   uuid.New(),
				typ:      t,
				scope:    scope,
				instance: inst,
				state:    StateConstructed,
				owner:    res,
			})
		}
	}

	c.metrics.failures.Add(ctx, 1)
	log.Error("bean construction failed", logger.ErrorFields("construct", err))
	return nil, c.constructionFailed(t, err)
}

// wire stores e according to its scope, injects its dependencies and runs
// its post-construct hooks.
func (c *Container) wire(ctx context.Context, res *resolution, log *logger.Logger, e *entry) (any, error) {
	c.metrics.constructed.Add(ctx, 1,
		metric.WithAttributes(attribute.String(logger.FieldScope, e.scope.String())))
	log = log.WithFields(logger.Fields(
		logger.FieldScope, e.scope.String(),
		logger.FieldHandle, e.handle.String(),
	))

	switch e.scope {
	case Context:
		c.mu.Lock()
		c.context[e.typ] = e
		c.order = append(c.order, e)
		c.mu.Unlock()
		c.metrics.live.Add(ctx, 1)
		defer res.reset()()
		log.Debug("context bean registered")
	case Session:
		c.mu.Lock()
		c.sessions.Put(e.typ, e)
		c.mu.Unlock()
		defer res.reset()()
		log.Debug("session bean registered")
	default:
		if res.requests == nil {
			res.requests = make(map[reflect.Type]struct{})
		}
		res.requests[e.typ] = struct{}{}
		defer delete(res.requests, e.typ)
		log.Debug("request bean constructed")
	}

	if err := c.inject(ctx, res, log, e); err != nil {
		return nil, c.fail(ctx, log, e, err)
	}
	c.setState(e, StateInjected)

	if err := runPostConstruct(ctx, log, e.instance); err != nil {
		return nil, c.fail(ctx, log, e, err)
	}

	c.mu.Lock()
	e.state = StateReady
	e.owner = nil
	c.mu.Unlock()

	log.Debug("bean ready")
	return e.instance, nil
}

func (c *Container) inject(ctx context.Context, res *resolution, log *logger.Logger, e *entry) error {
	d, ok := e.instance.(DependencyDeclarer)
	if !ok {
		return nil
	}
	var deps []Dependency
	if err := safeCall(func() error {
		deps = d.Dependencies()
		return nil
	}); err != nil {
		return fmt.Errorf("listing dependencies: %w", err)
	}

	for _, dep := range deps {
		if dep.Type == nil || dep.Set == nil {
			continue
		}
		v, err := c.get(ctx, res, dep.Type)
		if err != nil {
			return err
		}
		if err := safeCall(func() error {
			dep.Set(v)
			return nil
		}); err != nil {
			return fmt.Errorf("injecting %s: %w", typeName(dep.Type), err)
		}
		log.Debug("dependency injected", logger.Fields(
			logger.FieldDependency, typeName(dep.Type),
			"absent", v == nil,
		))
	}
	return nil
}

// reset starts a fresh request frame below a stored bean, whose cached
// instance ends any cycle that passes through it. The returned func restores
// the enclosing frame.
func (r *resolution) reset() func() {
	saved := r.requests
	r.requests = nil
	return func() { r.requests = saved }
}

func runPostConstruct(ctx context.Context, log *logger.Logger, inst any) error {
	pc, ok := inst.(PostConstructor)
	if !ok {
		return nil
	}
	var hooks []Hook
	if err := safeCall(func() error {
		hooks = pc.PostConstruct()
		return nil
	}); err != nil {
		return fmt.Errorf("listing post-construct hooks: %w", err)
	}
	for i, h := range hooks {
		if h == nil {
			continue
		}
		if err := safeCall(func() error { return h(ctx) }); err != nil {
			return fmt.Errorf("post-construct hook %d: %w", i, err)
		}
		log.Debug("post-construct hook done", logger.Fields(logger.FieldHook, i))
	}
	return nil
}

// fail marks e as failed. A stored entry stays in its store, so later
// lookups return the same error and a context bean still gets its
// pre-destroy hooks at shutdown.
func (c *Container) fail(ctx context.Context, log *logger.Logger, e *entry, cause error) error {
	err := c.constructionFailed(e.typ, cause)

	c.mu.Lock()
	e.state = StateFailed
	e.err = err
	e.owner = nil
	c.mu.Unlock()

	c.metrics.failures.Add(ctx, 1)
	log.Error("bean construction failed", logger.ErrorFields("wire", cause))
	return err
}

func (c *Container) setState(e *entry, s State) {
	c.mu.Lock()
	e.state = s
	c.mu.Unlock()
}

// constructionFailed renders the message from the cause's own message when
// the cause is a nested construction failure, so that codes are not repeated
// at every level. The full chain stays in Cause.
func (c *Container) constructionFailed(t reflect.Type, cause error) *apperrors.AppError {
	name := typeName(t)
	detail := cause.Error()
	if inner, ok := cause.(*apperrors.AppError); ok {
		detail = inner.Message
	}
	return apperrors.BeanConstructionFailed(name, c.tr.Tr(i18n.MsgCannotCreate, name, detail), cause)
}

func construct(t reflect.Type, reg *registration) (any, error) {
	if reg == nil {
		if t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Struct {
			return reflect.New(t.Elem()).Interface(), nil
		}
		return nil, ErrNoConstructor
	}

	var inst any
	if err := safeCall(func() error {
		var err error
		inst, err = reg.factory()
		return err
	}); err != nil {
		return nil, err
	}
	if isNil(inst) {
		return nil, ErrNilInstance
	}
	if !reflect.TypeOf(inst).AssignableTo(t) {
		return nil, fmt.Errorf("factory returned %T, want %s", inst, t)
	}
	return inst, nil
}

func scopeOf(inst any, reg *registration) (Scope, error) {
	if reg != nil && reg.scope != nil {
		return *reg.scope, nil
	}
	sd, ok := inst.(ScopeDeclarer)
	if !ok {
		return Request, nil
	}
	var s Scope
	err := safeCall(func() error {
		s = sd.BeanScope()
		return nil
	})
	return s, err
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// IsConstructionFailed reports whether err is a bean construction failure.
func IsConstructionFailed(err error) bool {
	return apperrors.HasCode(err, apperrors.ErrCodeBeanConstructionFailed)
}
