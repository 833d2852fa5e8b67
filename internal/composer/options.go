package composer

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"mixin-composer/internal/config"
	"mixin-composer/internal/validation"
)

// Option configures a Composer.
type Option func(*Composer)

// WithConfig sets store bounds, batch concurrency and validation settings.
func WithConfig(cfg config.Config) Option {
	return func(c *Composer) {
		c.cfg = cfg
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Composer) {
		c.log = l
	}
}

// WithRegisterer sets where metrics are registered. The default is
// prometheus.DefaultRegisterer.
func WithRegisterer(r prometheus.Registerer) Option {
	return func(c *Composer) {
		c.reg = r
	}
}

// WithValidationOptions adds options for every validation run, e.g. extra
// rules.
func WithValidationOptions(opts ...validation.Option) Option {
	return func(c *Composer) {
		c.validationOpts = append(c.validationOpts, opts...)
	}
}
