package bean

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/kbukum/beankit/logger"
	"github.com/kbukum/beankit/observability"
)

// Metric names.
const (
	MetricConstructed          = "bean.constructed"
	MetricResolved             = "bean.resolved"
	MetricConstructionFailures = "bean.construction.failures"
	MetricTeardownFailures     = "bean.teardown.failures"
	MetricContextLive          = "bean.context.live"
)

type instruments struct {
	constructed      metric.Int64Counter
	resolved         metric.Int64Counter
	failures         metric.Int64Counter
	teardownFailures metric.Int64Counter
	live             metric.Int64UpDownCounter
}

var (
	resultHit  = metric.WithAttributes(attribute.String("result", "hit"))
	resultMiss = metric.WithAttributes(attribute.String("result", "miss"))
)

// newInstruments creates the container instruments on m. If any of them
// cannot be created it logs a warning and falls back to no-op instruments.
func newInstruments(m metric.Meter, log *logger.Logger) *instruments {
	inst, err := createInstruments(m)
	if err == nil {
		return inst
	}
	log.Warn("bean metrics disabled", logger.ErrorFields("create_instruments", err))
	inst, _ = createInstruments(observability.Meter(noop.NewMeterProvider()))
	return inst
}

func createInstruments(m metric.Meter) (*instruments, error) {
	var (
		inst instruments
		err  error
	)
	if inst.constructed, err = m.Int64Counter(MetricConstructed,
		metric.WithDescription("Bean instances constructed"),
	); err != nil {
		return nil, err
	}
	if inst.resolved, err = m.Int64Counter(MetricResolved,
		metric.WithDescription("Bean lookups by result (hit or miss)"),
	); err != nil {
		return nil, err
	}
	if inst.failures, err = m.Int64Counter(MetricConstructionFailures,
		metric.WithDescription("Bean constructions that failed"),
	); err != nil {
		return nil, err
	}
	if inst.teardownFailures, err = m.Int64Counter(MetricTeardownFailures,
		metric.WithDescription("Pre-destroy hooks that failed during shutdown"),
	); err != nil {
		return nil, err
	}
	if inst.live, err = m.Int64UpDownCounter(MetricContextLive,
		metric.WithDescription("Context-scoped beans currently held by the container"),
	); err != nil {
		return nil, err
	}
	return &inst, nil
}

func (i *instruments) hit(ctx context.Context)  { i.resolved.Add(ctx, 1, resultHit) }
func (i *instruments) miss(ctx context.Context) { i.resolved.Add(ctx, 1, resultMiss) }
