package composer

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsNamespace = "mixin"
	metricsSubsystem = "definition"
)

// Build results used as the "result" label.
const (
	resultOK         = "ok"
	resultAuthoring  = "authoring_error"
	resultValidation = "validation_error"
)

type metrics struct {
	hits               prometheus.Counter
	misses             prometheus.Counter
	builds             *prometheus.CounterVec
	duplicateBuilds    prometheus.Counter
	validationFailures prometheus.Counter
	buildDuration      prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	opts := func(name, help string) prometheus.CounterOpts {
		return prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      name,
			Help:      help,
		}
	}

	m := &metrics{
		hits:   prometheus.NewCounter(opts("cache_hits_total", "Definition lookups served from the store.")),
		misses: prometheus.NewCounter(opts("cache_misses_total", "Definition lookups that required a build.")),
		builds: prometheus.NewCounterVec(opts("builds_total", "Definition builds by result."),
			[]string{"result"}),
		duplicateBuilds: prometheus.NewCounter(opts("duplicate_builds_total",
			"Concurrent builds discarded because another build was installed first.")),
		validationFailures: prometheus.NewCounter(opts("validation_failures_total",
			"Builds rejected by validation.")),
		buildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "build_duration_seconds",
			Help:      "Duration of definition build and validation.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
	}

	var err error

	m.hits = register(reg, m.hits, &err)
	m.misses = register(reg, m.misses, &err)
	m.builds = register(reg, m.builds, &err)
	m.duplicateBuilds = register(reg, m.duplicateBuilds, &err)
	m.validationFailures = register(reg, m.validationFailures, &err)
	m.buildDuration = register(reg, m.buildDuration, &err)

	if err != nil {
		return nil, err
	}

	return m, nil
}

// register registers c, reusing an identical collector that is already
// registered so several composers can share one registry.
func register[C prometheus.Collector](reg prometheus.Registerer, c C, errp *error) C {
	if *errp != nil {
		return c
	}

	err := reg.Register(c)
	if err == nil {
		return c
	}

	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing
		}
	}

	*errp = err

	return c
}
