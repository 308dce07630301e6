// Package bootstrap assembles a beankit application from its config and
// runs it.
//
// NewApp builds, in order, the logger, the translator, OpenTelemetry
// providers (when telemetry is enabled), the session store and its sweeper,
// the bean container and the optional admin server. Run starts the
// components, blocks until a signal arrives and stops them in reverse, so
// the admin server goes first, then the container runs its pre-destroy
// hooks, then the sweeper stops. RunTask does the same around a finite task.
package bootstrap
