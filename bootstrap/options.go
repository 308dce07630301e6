package bootstrap

import (
	"time"

	"github.com/kbukum/beankit/bean"
	"github.com/kbukum/beankit/logger"
)

// Option configures the App during creation.
type Option func(*appOptions)

type appOptions struct {
	logger          *logger.Logger
	gracefulTimeout *time.Duration
	containerOpts   []bean.Option
}

func resolveOptions(opts []Option) *appOptions {
	o := &appOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets a custom logger. Without it the global logger is
// initialized from the logging section of the config.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) {
		o.logger = l
	}
}

// WithGracefulTimeout sets the maximum duration for graceful shutdown.
func WithGracefulTimeout(d time.Duration) Option {
	return func(o *appOptions) {
		o.gracefulTimeout = &d
	}
}

// WithContainerOptions appends options to the bean container. They are
// applied after the ones derived from the config, so they take precedence.
func WithContainerOptions(opts ...bean.Option) Option {
	return func(o *appOptions) {
		o.containerOpts = append(o.containerOpts, opts...)
	}
}
