package main

//go:generate go tool errtrace -w .

import (
	"io"
	"log/slog"
	"slices"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"

	"github.com/bmaland/uri-template/draft7"
	"github.com/bmaland/uri-template/internal/errorutil"
	"github.com/bmaland/uri-template/internal/log"
)

const (
	errNoMatch   errorutil.Error = "uri does not match"
	errNoRoute   errorutil.Error = "no route matches"
	outputYAML                   = "yaml"
	outputJSON                   = "json"
	defaultLevel                 = "warn"
)

var outputFormats = []string{outputYAML, outputJSON}

type app struct {
	logLevel string
	dev      bool
	output   string

	out    io.Writer
	errOut io.Writer
	log    *slog.Logger
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut, log: log.Noop}

	cmd := &cobra.Command{
		Use:           "uritemplate",
		Short:         "Expand URI templates and extract variables from URIs",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return errtrace.Wrap(a.setup())
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	fs := cmd.PersistentFlags()
	fs.StringVar(&a.logLevel, "log-level", defaultLevel, "log level: debug, info, warn or error")
	fs.BoolVar(&a.dev, "dev", false, "human friendly development log output")
	fs.StringVarP(&a.output, "output", "o", outputYAML, "output format: yaml or json")

	cmd.AddCommand(
		a.expandCmd(),
		a.extractCmd(),
		a.matchCmd(),
		a.inspectCmd(),
		a.validateCmd(),
		a.joinCmd(),
		a.routeCmd(),
	)
	return cmd
}

func (a *app) setup() error {
	if !slices.Contains(outputFormats, a.output) {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("unknown output format %q", a.output))
	}

	lvl, err := log.ParseLevel(a.logLevel)
	if err != nil {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError(err))
	}
	if a.dev {
		a.log = log.NewDev(a.errOut, lvl)
	} else {
		a.log = log.NewDef(a.errOut, lvl)
	}
	return nil
}

func (a *app) parseTemplate(pattern string) (*draft7.Template, error) {
	tpl, err := draft7.Parse(pattern)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	a.log.Debug("template parsed", slog.Any("template", tpl))
	return tpl, nil
}

func (a *app) print(v any) error {
	return errtrace.Wrap(writeOutput(a.out, a.output, v))
}

func addTemplateFlag(cmd *cobra.Command, pattern *string) {
	cmd.Flags().StringVarP(pattern, "template", "t", "", "URI template pattern")
	_ = cmd.MarkFlagRequired("template")
}
