package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"reflect"
	"syscall"
	"time"

	"github.com/kbukum/beankit/admin"
	"github.com/kbukum/beankit/bean"
	"github.com/kbukum/beankit/component"
	"github.com/kbukum/beankit/config"
	"github.com/kbukum/beankit/i18n"
	"github.com/kbukum/beankit/logger"
	"github.com/kbukum/beankit/observability"
	"github.com/kbukum/beankit/session"
	"github.com/kbukum/beankit/version"
)

// App wires configuration, logging, telemetry, the session store, the bean
// container and the admin server, and runs them with uniform lifecycle
// management.
//
//	cfg, _ := config.Load("orders")
//	app, err := bootstrap.NewApp(cfg)
//	app.OnReady(func(ctx context.Context) error {
//	    _, err := bean.Get[*orders.Service](ctx, app.Container)
//	    return err
//	})
//	app.Run(context.Background())
type App struct {
	Name       string
	Version    string
	Cfg        *config.Config
	Logger     *logger.Logger
	Translator *i18n.Translator
	Telemetry  *observability.Telemetry
	Sessions   *session.Store[reflect.Type, any]
	Container  *bean.Container
	Admin      *admin.Server
	Components *component.Registry

	gracefulTimeout time.Duration

	onStart []Hook
	onReady []Hook
	onStop  []Hook
}

// NewApp applies defaults to cfg, validates it and builds the application.
// Components are registered in start order: session sweeper, bean
// container, admin server. They stop in reverse.
func NewApp(cfg *config.Config, opts ...Option) (*App, error) {
	if cfg == nil {
		cfg = &config.Config{}
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	if cfg.Version == "" {
		cfg.Version = version.Get().Version
	}

	o := resolveOptions(opts)

	app := &App{
		Name:            cfg.Name,
		Version:         cfg.Version,
		Cfg:             cfg,
		gracefulTimeout: 15 * time.Second,
	}
	if o.gracefulTimeout != nil {
		app.gracefulTimeout = *o.gracefulTimeout
	}

	if o.logger != nil {
		app.Logger = o.logger
	} else {
		logger.Init(cfg.Logging)
		app.Logger = logger.GetGlobalLogger()
	}

	tr, err := i18n.New(cfg.Locale)
	if err != nil {
		return nil, fmt.Errorf("locale: %w", err)
	}
	app.Translator = tr

	tel, err := observability.Setup(context.Background(), observability.ServiceInfo{
		Name:        cfg.Name,
		Version:     cfg.Version,
		Environment: cfg.Environment,
	}, cfg.Telemetry)
	if err != nil {
		return nil, fmt.Errorf("telemetry: %w", err)
	}
	app.Telemetry = tel

	app.Sessions = session.New[reflect.Type, any](session.WithTimeout(cfg.Session.Timeout))

	containerOpts := []bean.Option{
		bean.WithLogger(app.Logger.WithComponent("bean")),
		bean.WithSessionStore(app.Sessions),
		bean.WithTranslator(tr),
	}
	if tel.MeterProvider != nil {
		containerOpts = append(containerOpts, bean.WithMeterProvider(tel.MeterProvider))
	}
	if tel.TracerProvider != nil {
		containerOpts = append(containerOpts, bean.WithTracerProvider(tel.TracerProvider))
	}
	app.Container = bean.New(append(containerOpts, o.containerOpts...)...)

	app.Components = component.NewRegistry(app.Logger)
	if err := app.RegisterComponent(session.NewSweeper(app.Sessions, cfg.Session.SweepInterval, app.Logger)); err != nil {
		return nil, err
	}
	if err := app.RegisterComponent(bean.NewComponent(app.Container)); err != nil {
		return nil, err
	}
	if cfg.Admin.Enabled {
		app.Admin = admin.New(cfg.Admin, cfg.Name, app.Container, app.Components.HealthAll, app.Logger)
		if err := app.RegisterComponent(app.Admin); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// RegisterComponent adds a component to the registry. It starts after the
// components already registered and stops before them.
func (a *App) RegisterComponent(c component.Component) error {
	return a.Components.Register(c)
}

// ReadyCheck verifies that all registered components are healthy.
func (a *App) ReadyCheck(ctx context.Context) error {
	var unhealthy []string
	for _, h := range a.Components.HealthAll(ctx) {
		if h.Status != component.StatusHealthy {
			detail := h.Name + "=" + string(h.Status)
			if h.Message != "" {
				detail += "(" + h.Message + ")"
			}
			unhealthy = append(unhealthy, detail)
		}
	}
	if len(unhealthy) > 0 {
		return fmt.Errorf("unhealthy components: %v", unhealthy)
	}
	return nil
}

// Run starts the application, blocks until SIGINT, SIGTERM or ctx
// cancellation, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	if err := a.startup(ctx); err != nil {
		return err
	}

	a.Logger.Info("Application ready, waiting for shutdown signal")
	a.WaitForSignal(ctx)

	return a.stop()
}

// RunTask runs a finite task between startup and shutdown. The task context
// is canceled on SIGINT or SIGTERM. The task error wins over a shutdown
// error.
func (a *App) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	if err := a.startup(ctx); err != nil {
		return err
	}

	taskCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			a.Logger.Info("Received signal, canceling task", map[string]interface{}{
				"signal": sig.String(),
			})
			cancel()
		case <-taskCtx.Done():
		}
	}()

	taskErr := task(taskCtx)

	if stopErr := a.stop(); stopErr != nil && taskErr == nil {
		return stopErr
	}
	return taskErr
}

func (a *App) startup(ctx context.Context) error {
	start := time.Now()

	a.Logger.Info("Starting application", map[string]interface{}{
		"name":    a.Name,
		"version": a.Version,
	})

	if err := a.Components.StartAll(ctx); err != nil {
		_ = a.Telemetry.Shutdown(context.Background())
		return fmt.Errorf("initialization failed: %w", err)
	}

	if err := runHooks(ctx, a.onStart); err != nil {
		_ = a.stop()
		return fmt.Errorf("onStart hook failed: %w", err)
	}

	if err := a.ReadyCheck(ctx); err != nil {
		a.Logger.Warn("Ready check reported issues", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if err := runHooks(ctx, a.onReady); err != nil {
		_ = a.stop()
		return fmt.Errorf("onReady hook failed: %w", err)
	}

	a.logSummary(time.Since(start))
	return nil
}

// WaitForSignal blocks until SIGINT, SIGTERM or ctx cancellation.
func (a *App) WaitForSignal(ctx context.Context) os.Signal {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		a.Logger.Info("Received shutdown signal", map[string]interface{}{
			"signal": sig.String(),
		})
		return sig
	case <-ctx.Done():
		a.Logger.Info("Context canceled, shutting down")
		return nil
	}
}

// Shutdown stops the application. Use it when managing the lifecycle
// yourself instead of calling Run.
func (a *App) Shutdown(ctx context.Context) error {
	return a.stop()
}

// stop runs OnStop hooks, stops components in reverse order and flushes
// telemetry, all within the graceful timeout.
func (a *App) stop() error {
	a.Logger.Info("Shutting down application", map[string]interface{}{
		"timeout": a.gracefulTimeout.String(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	var shutdownErr error
	if err := runHooks(ctx, a.onStop); err != nil {
		a.Logger.Error("OnStop hook error", logger.ErrorFields("on_stop", err))
		shutdownErr = err
	}

	if err := a.Components.StopAll(ctx); err != nil {
		a.Logger.Error("Component shutdown completed with errors", logger.ErrorFields("stop_components", err))
		if shutdownErr == nil {
			shutdownErr = err
		}
	}

	if err := a.Telemetry.Shutdown(ctx); err != nil {
		a.Logger.Error("Telemetry shutdown error", logger.ErrorFields("telemetry_shutdown", err))
		if shutdownErr == nil {
			shutdownErr = err
		}
	}

	a.Logger.Info("Application shutdown complete")
	return shutdownErr
}
