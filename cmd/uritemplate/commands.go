package main

import (
	"fmt"
	"log/slog"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"

	"github.com/bmaland/uri-template/draft7"
	"github.com/bmaland/uri-template/internal/errorutil"
	"github.com/bmaland/uri-template/internal/log"
	"github.com/bmaland/uri-template/router"
)

func (a *app) expandCmd() *cobra.Command {
	var (
		pattern  string
		varsFile string
		varFlags []string
	)
	cmd := &cobra.Command{
		Use:   "expand -t TEMPLATE [-f VARS] [--var NAME=VALUE]...",
		Short: "Expand a template with variables",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			tpl, err := a.parseTemplate(pattern)
			if err != nil {
				return errtrace.Wrap(err)
			}

			vals := make(draft7.Values)
			if varsFile != "" {
				if vals, err = loadVars(varsFile); err != nil {
					return errtrace.Wrap(err)
				}
			}
			if err := applyVarFlags(vals, varFlags); err != nil {
				return errtrace.Wrap(err)
			}
			a.log.Debug("expand", slog.Any("vars", log.FmtValue(vals, false)))

			if _, err := tpl.ExpandTo(a.out, vals); err != nil {
				return errtrace.Wrap(err)
			}
			_, err = fmt.Fprintln(a.out)
			return errtrace.Wrap(err)
		},
	}
	addTemplateFlag(cmd, &pattern)
	cmd.Flags().StringVarP(&varsFile, "file", "f", "", "YAML or JSON file with variables")
	cmd.Flags().StringArrayVar(&varFlags, "var", nil, "variable as NAME=VALUE, repeat a name to build a list")
	return cmd
}

func (a *app) extractCmd() *cobra.Command {
	var (
		pattern string
		raw     bool
	)
	cmd := &cobra.Command{
		Use:   "extract -t TEMPLATE URI",
		Short: "Extract variables from a URI",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			tpl, err := a.parseTemplate(pattern)
			if err != nil {
				return errtrace.Wrap(err)
			}

			uri := args[0]
			proc := draft7.DefaultProcessing
			if raw {
				proc = draft7.NoProcessing
			}
			vars, ok, err := tpl.ExtractVars(uri, proc)
			if err != nil {
				return errtrace.Wrap(err)
			}
			if !ok {
				return errtrace.Wrap(errorutil.NewWrapperError(errNoMatch, "%q by %q", uri, tpl.Pattern()))
			}
			if raw {
				return errtrace.Wrap(a.print(vars))
			}
			return errtrace.Wrap(a.print(vars.Map()))
		},
	}
	addTemplateFlag(cmd, &pattern)
	cmd.Flags().BoolVar(&raw, "raw", false, "print every variable slot without post-processing")
	return cmd
}

type matchResult struct {
	URI   string `json:"uri" yaml:"uri"`
	Match bool   `json:"match" yaml:"match"`
}

func (a *app) matchCmd() *cobra.Command {
	var pattern string
	cmd := &cobra.Command{
		Use:   "match -t TEMPLATE URI...",
		Short: "Report which URIs match a template",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			tpl, err := a.parseTemplate(pattern)
			if err != nil {
				return errtrace.Wrap(err)
			}
			res := make([]matchResult, len(args))
			for i, uri := range args {
				res[i] = matchResult{URI: uri, Match: tpl.MatchString(uri)}
			}
			return errtrace.Wrap(a.print(res))
		},
	}
	addTemplateFlag(cmd, &pattern)
	return cmd
}

type templateInfo struct {
	Pattern          string   `json:"pattern" yaml:"pattern"`
	Type             string   `json:"type" yaml:"type"`
	Level            int      `json:"level" yaml:"level"`
	Variables        []string `json:"variables" yaml:"variables"`
	StaticCharacters int      `json:"static_characters" yaml:"static_characters"`
	Absolute         bool     `json:"absolute" yaml:"absolute"`
	Matcher          string   `json:"matcher" yaml:"matcher"`
}

func inspect(tpl *draft7.Template) templateInfo {
	return templateInfo{
		Pattern:          tpl.Pattern(),
		Type:             tpl.Type(),
		Level:            tpl.Level(),
		Variables:        tpl.Variables(),
		StaticCharacters: tpl.StaticCharacters(),
		Absolute:         tpl.IsAbsolute(),
		Matcher:          tpl.MatcherSource(),
	}
}

func (a *app) inspectCmd() *cobra.Command {
	var pattern string
	cmd := &cobra.Command{
		Use:   "inspect -t TEMPLATE",
		Short: "Print template properties",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			tpl, err := a.parseTemplate(pattern)
			if err != nil {
				return errtrace.Wrap(err)
			}
			re, err := tpl.Matcher()
			if err != nil {
				return errtrace.Wrap(err)
			}
			a.log.Debug("matcher compiled", slog.Any("matcher", re))
			return errtrace.Wrap(a.print(inspect(tpl)))
		},
	}
	addTemplateFlag(cmd, &pattern)
	return cmd
}

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate PATTERN...",
		Short: "Validate template patterns",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var errs []error
			for _, p := range args {
				if _, err := draft7.Parse(p); err != nil {
					errs = append(errs, err)
					continue
				}
				if _, err := fmt.Fprintf(a.out, "valid %q\n", p); err != nil {
					return errtrace.Wrap(err)
				}
			}
			return errtrace.Wrap(errorutil.JoinPrefix("invalid patterns:", errs...))
		},
	}
}

func (a *app) joinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join TEMPLATE TEMPLATE...",
		Short: "Join templates as path segments",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			tpl, err := joinPatterns(args...)
			if err != nil {
				return errtrace.Wrap(err)
			}
			_, err = fmt.Fprintln(a.out, tpl)
			return errtrace.Wrap(err)
		},
	}
}

func joinPatterns(patterns ...string) (*draft7.Template, error) {
	tpl, err := draft7.Parse(patterns[0])
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	for _, p := range patterns[1:] {
		if tpl, err = tpl.JoinPattern(p); err != nil {
			return nil, errtrace.Wrap(err)
		}
	}
	return tpl, nil
}

type routeResult struct {
	Name     string         `json:"name" yaml:"name"`
	Template string         `json:"template" yaml:"template"`
	Vars     map[string]any `json:"vars" yaml:"vars"`
}

func (a *app) routeCmd() *cobra.Command {
	var config string
	cmd := &cobra.Command{
		Use:   "route -c ROUTES URI",
		Short: "Find the most specific route matching a URI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			routes, err := loadRoutes(config)
			if err != nil {
				return errtrace.Wrap(err)
			}

			r := router.New[string](&router.Options{Log: a.log})
			for _, rt := range routes {
				if err := r.Add(rt.Template, rt.Name); err != nil {
					return errtrace.Wrap(err)
				}
			}

			uri := args[0]
			res, ok, err := r.Match(cmd.Context(), uri)
			if err != nil {
				return errtrace.Wrap(err)
			}
			if !ok {
				return errtrace.Wrap(errorutil.NewWrapperError(errNoRoute, "%q", uri))
			}
			return errtrace.Wrap(a.print(routeResult{
				Name:     res.Value,
				Template: res.Template.Pattern(),
				Vars:     res.Vars,
			}))
		},
	}
	cmd.Flags().StringVarP(&config, "config", "c", "", "YAML or JSON file with routes")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}
