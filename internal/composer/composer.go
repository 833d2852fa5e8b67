package composer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"mixin-composer/internal/analyze"
	"mixin-composer/internal/classcontext"
	"mixin-composer/internal/config"
	"mixin-composer/internal/definition"
	"mixin-composer/internal/diagnostic"
	"mixin-composer/internal/validation"
)

var tracer = otel.Tracer("mixin-composer/composer")

// Composer builds and caches definitions over one type graph. It is safe for
// concurrent use.
type Composer struct {
	graph          *analyze.TypeGraph
	cfg            config.Config
	log            *slog.Logger
	reg            prometheus.Registerer
	validationOpts []validation.Option

	store   store
	metrics *metrics
}

// New creates a Composer for graph.
func New(graph *analyze.TypeGraph, opts ...Option) (*Composer, error) {
	if graph == nil {
		return nil, errors.New("type graph is nil")
	}

	c := &Composer{
		graph: graph,
		cfg:   config.DefaultConfig(),
		log:   slog.Default(),
		reg:   prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.cfg.Validate(); err != nil {
		return nil, err
	}

	var err error

	if c.cfg.MaxEntries > 0 {
		if c.store, err = newLRUStore(c.cfg.MaxEntries); err != nil {
			return nil, fmt.Errorf("failed to create definition store: %w", err)
		}
	} else {
		c.store = newMapStore()
	}

	if c.metrics, err = newMetrics(c.reg); err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	return c, nil
}

// Graph returns the type graph definitions are built from.
func (c *Composer) Graph() *analyze.TypeGraph {
	return c.graph
}

// GetDefinition returns the definition for cc, building and validating it on
// first use. Equal contexts always yield the same instance. A definition that
// fails validation is reported as *ValidationError and not stored.
func (c *Composer) GetDefinition(ctx context.Context, cc classcontext.ClassContext) (*definition.TargetClassDefinition, error) {
	cc = c.normalize(cc)
	key := cc.Key()

	ctx, span := tracer.Start(ctx, "Composer.GetDefinition", trace.WithAttributes(
		attribute.String("mixin.target", cc.Target.String()),
		attribute.Int("mixin.count", len(cc.Mixins)),
	))
	defer span.End()

	if def, ok := c.store.get(key); ok {
		c.metrics.hits.Inc()
		span.SetAttributes(attribute.Bool("mixin.cache_hit", true))
		c.log.Debug("definition cache hit", "target", cc.Target.Short())

		return def, nil
	}

	c.metrics.misses.Inc()
	span.SetAttributes(attribute.Bool("mixin.cache_hit", false))

	def, dlog, err := c.buildAndValidate(ctx, cc)
	if err == nil {
		err = c.reject(cc, dlog)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return nil, err
	}

	stored, added := c.store.install(key, def)
	if !added {
		c.metrics.duplicateBuilds.Inc()
		c.log.Debug("discarding concurrent build", "target", cc.Target.Short())
	}

	span.SetStatus(codes.Ok, "")

	return stored, nil
}

// Inspect builds and validates cc without touching the store and returns
// the full diagnostic log, including warnings and infos. The error is only
// set when the build itself fails.
func (c *Composer) Inspect(ctx context.Context, cc classcontext.ClassContext) (*definition.TargetClassDefinition, *diagnostic.Log, error) {
	ctx, span := tracer.Start(ctx, "Composer.Inspect",
		trace.WithAttributes(attribute.String("mixin.target", cc.Target.String())))
	defer span.End()

	return c.buildAndValidate(ctx, c.normalize(cc))
}

// IsCached reports whether a definition for cc is stored.
func (c *Composer) IsCached(cc classcontext.ClassContext) bool {
	_, ok := c.store.get(c.normalize(cc).Key())
	return ok
}

// GetDefinitions resolves several contexts with at most
// Config.BuildConcurrency builds in flight. Results keep the input order; a
// failed context leaves a nil entry and its error is joined into the result.
func (c *Composer) GetDefinitions(ctx context.Context, ccs ...classcontext.ClassContext) ([]*definition.TargetClassDefinition, error) {
	defs := make([]*definition.TargetClassDefinition, len(ccs))
	errs := make([]error, len(ccs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.BuildConcurrency)

	for i, cc := range ccs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			def, err := c.GetDefinition(gctx, cc)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", cc.Target.Short(), err)
				return nil
			}

			defs[i] = def

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return defs, err
	}

	return defs, errors.Join(errs...)
}

// Len returns the number of stored definitions.
func (c *Composer) Len() int {
	return c.store.len()
}

// Purge drops every stored definition.
func (c *Composer) Purge() {
	c.store.purge()
	c.log.Debug("definition store purged")
}

// normalize applies configuration-wide options to a context.
func (c *Composer) normalize(cc classcontext.ClassContext) classcontext.ClassContext {
	if !c.cfg.AlphabeticOrdering {
		return cc
	}

	mixins := make([]classcontext.MixinContext, len(cc.Mixins))
	for i, m := range cc.Mixins {
		m.AcceptsAlphabeticOrdering = true
		mixins[i] = m
	}

	cc.Mixins = mixins

	return cc
}

func (c *Composer) buildAndValidate(ctx context.Context, cc classcontext.ClassContext) (*definition.TargetClassDefinition, *diagnostic.Log, error) {
	buildID := uuid.NewString()
	log := c.log.With("build_id", buildID, "target", cc.Target.Short())
	start := time.Now()

	def, err := c.build(ctx, cc, buildID)
	if err != nil {
		c.metrics.builds.WithLabelValues(resultAuthoring).Inc()
		log.Warn("definition build failed", "error", err)

		return nil, nil, err
	}

	dlog := c.validate(ctx, def, buildID)
	elapsed := time.Since(start)
	c.metrics.buildDuration.Observe(elapsed.Seconds())

	result := resultOK
	if c.failed(dlog) {
		result = resultValidation
	}

	c.metrics.builds.WithLabelValues(result).Inc()
	log.Info("definition built",
		"mixins", def.Mixins().Len(),
		"result", result,
		"diagnostics", dlog.Summary(),
		"duration", elapsed)

	return def, dlog, nil
}

func (c *Composer) build(ctx context.Context, cc classcontext.ClassContext, buildID string) (*definition.TargetClassDefinition, error) {
	_, span := tracer.Start(ctx, "Composer.build", trace.WithAttributes(attribute.String("mixin.build_id", buildID)))
	defer span.End()

	if err := cc.Validate(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("invalid class context: %w", err)
	}

	def, err := definition.Build(c.graph, cc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return nil, err
	}

	return def, nil
}

func (c *Composer) validate(ctx context.Context, def *definition.TargetClassDefinition, buildID string) *diagnostic.Log {
	_, span := tracer.Start(ctx, "Composer.validate", trace.WithAttributes(attribute.String("mixin.build_id", buildID)))
	defer span.End()

	opts := append([]validation.Option{validation.WithMaxSuggestions(c.cfg.MaxSuggestions)}, c.validationOpts...)
	dlog := validation.Validate(def, opts...)

	span.SetAttributes(
		attribute.Int("mixin.errors", len(dlog.Errors)),
		attribute.Int("mixin.warnings", len(dlog.Warnings)),
	)

	return dlog
}

func (c *Composer) failed(dlog *diagnostic.Log) bool {
	return dlog.HasErrors() || (c.cfg.FailOnWarnings && len(dlog.Warnings) > 0)
}

// reject turns a failing log into a *ValidationError.
func (c *Composer) reject(cc classcontext.ClassContext, dlog *diagnostic.Log) error {
	if !c.failed(dlog) {
		return nil
	}

	c.metrics.validationFailures.Inc()

	return &ValidationError{Target: cc.Target, Log: dlog}
}
