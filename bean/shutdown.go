package bean

import (
	"context"
	"fmt"
	"reflect"

	"go.opentelemetry.io/otel/attribute"

	apperrors "github.com/kbukum/beankit/errors"
	"github.com/kbukum/beankit/i18n"
	"github.com/kbukum/beankit/logger"
)

// Shutdown runs the pre-destroy hooks of every context bean, most recently
// constructed first, then empties all stores. Hook failures are logged and
// never stop the teardown of other beans. It waits for in-flight
// constructions; later Gets start from empty stores. Calling it again is a
// no-op.
//
// A hook that calls Get with its own ctx receives beans not yet torn down;
// anything needing construction fails with ErrShuttingDown.
func (c *Container) Shutdown(ctx context.Context) {
	ctx, span := c.tracer.Start(ctx, "bean.shutdown")
	defer span.End()

	if res := resolutionFrom(ctx); res != nil && res.locked {
		// called from a hook; the running resolution already holds buildMu
		log := c.log.WithContext(ctx)
		log.Warn("bean container shutdown requested from a hook, ignored")
		return
	}

	c.buildMu.Lock()
	res := &resolution{locked: true, closing: true}
	defer res.release(c)
	defer c.clear()
	ctx = withResolution(ctx, res)

	log := c.log.WithContext(ctx)
	var destroyed, failed int
	for {
		e := c.pop()
		if e == nil {
			break
		}
		if !c.destroy(ctx, log, e) {
			failed++
		}
		destroyed++
	}

	span.SetAttributes(
		attribute.Int("bean.destroyed", destroyed),
		attribute.Int("bean.teardown_failures", failed),
	)
	if destroyed > 0 {
		log.Info("bean container shut down", logger.Fields(
			logger.FieldCount, destroyed,
			"failures", failed,
		))
	}
}

// pop removes the most recently constructed context bean from both the
// order and the store.
func (c *Container) pop() *entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.order)
	if n == 0 {
		return nil
	}
	e := c.order[n-1]
	c.order[n-1] = nil
	c.order = c.order[:n-1]
	if c.context[e.typ] == e {
		delete(c.context, e.typ)
	}
	return e
}

// destroy runs e's pre-destroy hooks in order, stopping at the first
// failure. It reports whether all hooks succeeded.
func (c *Container) destroy(ctx context.Context, log *logger.Logger, e *entry) bool {
	name := typeName(e.typ)
	log = log.WithFields(logger.Fields(
		logger.FieldBean, name,
		logger.FieldHandle, e.handle.String(),
	))

	defer func() {
		c.setState(e, StateDestroyed)
		c.metrics.live.Add(ctx, -1)
	}()

	pd, ok := e.instance.(PreDestroyer)
	if !ok {
		return true
	}
	var hooks []Hook
	if err := safeCall(func() error {
		hooks = pd.PreDestroy()
		return nil
	}); err != nil {
		c.teardownFailed(ctx, log, name, fmt.Errorf("listing pre-destroy hooks: %w", err))
		return false
	}
	for i, h := range hooks {
		if h == nil {
			continue
		}
		if err := safeCall(func() error { return h(ctx) }); err != nil {
			c.teardownFailed(ctx, log.WithFields(logger.Fields(logger.FieldHook, i)), name, err)
			return false
		}
	}
	log.Debug("bean destroyed", logger.Fields(logger.FieldHook, len(hooks)))
	return true
}

func (c *Container) teardownFailed(ctx context.Context, log *logger.Logger, name string, cause error) {
	err := apperrors.TeardownHookFailed(name, c.tr.Tr(i18n.MsgCannotDestroy, name, cause.Error()), cause)
	c.metrics.teardownFailures.Add(ctx, 1)
	log.Error(err.Message, logger.Fields(
		logger.FieldError, cause.Error(),
		"code", string(err.Code),
	))
}

func (c *Container) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n := len(c.order); n > 0 {
		for _, e := range c.order {
			e.state = StateDestroyed
		}
		c.metrics.live.Add(context.Background(), -int64(n))
	}
	c.context = make(map[reflect.Type]*entry)
	c.order = nil
	c.sessions.Clear()
}
