package observability

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Telemetry bundles the providers created by Setup.
type Telemetry struct {
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider

	shutdowns []func(context.Context) error
}

// Setup creates tracer and meter providers according to cfg. When export is
// disabled it returns a Telemetry with nil providers, so consumers fall back
// to the global ones.
func Setup(ctx context.Context, svc ServiceInfo, cfg Config) (*Telemetry, error) {
	t := &Telemetry{}
	if !cfg.Enabled {
		return t, nil
	}

	tp, err := InitTracer(ctx, svc, cfg)
	if err != nil {
		return nil, err
	}
	t.TracerProvider = tp
	t.shutdowns = append(t.shutdowns, tp.Shutdown)

	mp, err := InitMeter(ctx, svc, cfg)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, err
	}
	t.MeterProvider = mp
	t.shutdowns = append(t.shutdowns, mp.Shutdown)

	return t, nil
}

// Shutdown flushes and stops the providers in reverse creation order.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	for i := len(t.shutdowns) - 1; i >= 0; i-- {
		if err := t.shutdowns[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	t.shutdowns = nil
	return errors.Join(errs...)
}
