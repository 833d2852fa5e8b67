package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"mixin-composer/internal/analyze"
	"mixin-composer/internal/classcontext"
	"mixin-composer/internal/composer"
	"mixin-composer/internal/config"
	"mixin-composer/internal/manifest"
)

// errFailed is returned after failures were already reported.
var errFailed = errors.New("one or more compositions failed")

type options struct {
	configPath string
	manifest   string
	packages   []string
	target     string
	mixins     []string
}

// session is what every command works on.
type session struct {
	composer *composer.Composer
	contexts []classcontext.ClassContext
	log      *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "mixin-composer",
		Short:         "Resolve and validate mixin compositions",
		Long:          `mixin-composer builds the definition of a target class composed with mixins, orders the mixins, resolves their dependencies and reports every problem found.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "YAML config file")
	pf.StringVarP(&opts.manifest, "manifest", "m", "", "manifest with types and compositions")
	pf.StringSliceVarP(&opts.packages, "pkg", "p", nil, "Go package patterns to load types from")
	pf.StringVarP(&opts.target, "target", "t", "", "target type of a single composition (import/path.Name)")
	pf.StringSliceVar(&opts.mixins, "mixin", nil, "mixin types of the single composition, in order")

	root.AddCommand(
		newResolveCmd(opts),
		newValidateCmd(opts),
		newDumpCmd(opts),
		newVersionCmd(),
	)

	return root
}

// open loads configuration, types and compositions.
func (o *options) open(ctx context.Context) (*session, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}

	log := cfg.NewLogger(os.Stderr)

	var mf *manifest.File
	if o.manifest != "" {
		if mf, err = manifest.LoadFile(o.manifest); err != nil {
			return nil, err
		}
	}

	graph, err := o.loadGraph(mf)
	if err != nil {
		return nil, err
	}

	contexts, err := o.loadContexts(mf)
	if err != nil {
		return nil, err
	}

	if len(contexts) == 0 {
		return nil, errors.New("no compositions: use --manifest or --target")
	}

	c, err := composer.New(graph,
		composer.WithConfig(cfg),
		composer.WithLogger(log),
		composer.WithRegisterer(prometheus.NewRegistry()),
	)
	if err != nil {
		return nil, err
	}

	log.DebugContext(ctx, "session ready", "types", len(graph.Types), "compositions", len(contexts))

	return &session{composer: c, contexts: contexts, log: log}, nil
}

func (o *options) loadGraph(mf *manifest.File) (*analyze.TypeGraph, error) {
	graph := analyze.NewTypeGraph()

	if len(o.packages) > 0 {
		var err error
		if graph, err = analyze.NewAnalyzer().LoadPackages(o.packages...); err != nil {
			return nil, err
		}
	}

	if mf == nil {
		return graph, nil
	}

	if res := manifest.Validate(mf, graph); res.HasErrors() {
		return nil, fmt.Errorf("invalid manifest %s: %w", o.manifest, res.Error())
	}

	if err := mf.AddTo(graph); err != nil {
		return nil, err
	}

	return graph, nil
}

func (o *options) loadContexts(mf *manifest.File) ([]classcontext.ClassContext, error) {
	var contexts []classcontext.ClassContext

	if mf != nil {
		var err error
		if contexts, err = mf.ClassContexts(); err != nil {
			return nil, err
		}
	}

	if o.target != "" {
		mixinOpts := make([]classcontext.Option, len(o.mixins))
		for i, m := range o.mixins {
			mixinOpts[i] = classcontext.WithMixin(analyze.ParseTypeID(m))
		}

		cc := classcontext.New(analyze.ParseTypeID(o.target), mixinOpts...)
		if err := cc.Validate(); err != nil {
			return nil, err
		}

		contexts = append(contexts, cc)
	}

	return contexts, nil
}
