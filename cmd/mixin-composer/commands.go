package main

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"

	"mixin-composer/internal/composer"
	"mixin-composer/internal/diagnostic"
	"mixin-composer/internal/report"
)

func newResolveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve",
		Short: "Build every composition and print mixin order and dependencies",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}

			p := report.NewPrinter(cmd.OutOrStdout())
			defs, err := s.composer.GetDefinitions(cmd.Context(), s.contexts...)

			for _, def := range defs {
				if def != nil {
					p.Definition(def)
				}
			}

			if err == nil {
				return nil
			}

			for _, e := range unwrapJoined(err) {
				var verr *composer.ValidationError
				if errors.As(e, &verr) {
					p.Log(verr.Log)
					continue
				}

				fmt.Fprintln(cmd.ErrOrStderr(), e)
			}

			return errFailed
		},
	}
}

func newValidateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate every composition and print all diagnostics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}

			p := report.NewPrinter(cmd.OutOrStdout())
			failed := false
			total := &diagnostic.Log{}

			for _, cc := range s.contexts {
				fmt.Fprintln(cmd.OutOrStdout(), cc.Target.Short())

				_, dlog, err := s.composer.Inspect(cmd.Context(), cc)
				if err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), err)
					failed = true

					continue
				}

				p.Log(dlog)
				total.Merge(*dlog)

				failed = failed || dlog.HasErrors()
			}

			if len(s.contexts) > 1 {
				fmt.Fprintf(cmd.OutOrStdout(), "total: %s\n", total.Summary())
			}

			if failed {
				return errFailed
			}

			return nil
		},
	}
}

func newDumpCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Dump the definition of every composition",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}

			p := report.NewPrinter(cmd.OutOrStdout())

			for _, cc := range s.contexts {
				def, _, err := s.composer.Inspect(cmd.Context(), cc)
				if err != nil {
					return err
				}

				p.Dump(def)
			}

			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			version := "(devel)"
			if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
				version = info.Main.Version
			}

			fmt.Fprintln(cmd.OutOrStdout(), "mixin-composer", version)
		},
	}
}

// unwrapJoined splits an errors.Join result.
func unwrapJoined(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}

	return []error{err}
}
