package main

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"braces.dev/errtrace"
	"gopkg.in/yaml.v3"

	"github.com/bmaland/uri-template/draft7"
	"github.com/bmaland/uri-template/internal/errorutil"
)

// loadVars reads variables from a YAML or JSON file.
func loadVars(path string) (draft7.Values, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	vals, err := decodeVars(data)
	if err != nil {
		return nil, errtrace.Wrap(errorutil.JoinPrefix("variables file "+path, err))
	}
	return vals, nil
}

// decodeVars decodes a mapping of variables.
// Scalars become strings, sequences become lists and mappings become [draft7.Pairs]
// in the document order. Null is an undefined variable.
func decodeVars(data []byte) (draft7.Values, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errtrace.Wrap(err)
	}

	vals := make(draft7.Values)
	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return vals, nil
		}
		root = root.Content[0]
	}
	if root.Kind == 0 {
		return vals, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("line %d: variables must be a mapping", root.Line))
	}

	var errs []error
	for i := 0; i+1 < len(root.Content); i += 2 {
		k, v := root.Content[i], root.Content[i+1]
		val, err := nodeValue(v)
		if err != nil {
			errs = append(errs, errorutil.JoinPrefix("variable "+k.Value, err))
			continue
		}
		vals[k.Value] = val
	}
	if err := errorutil.Join(errs...); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return vals, nil
}

func nodeValue(n *yaml.Node) (any, error) {
	if n.Kind == yaml.AliasNode {
		return errtrace.Wrap2(nodeValue(n.Alias))
	}

	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return nil, nil
		}
		return n.Value, nil
	case yaml.SequenceNode:
		list := make([]string, 0, len(n.Content))
		for _, item := range n.Content {
			s, err := scalarValue(item)
			if err != nil {
				return nil, errtrace.Wrap(err)
			}
			list = append(list, s)
		}
		return list, nil
	case yaml.MappingNode:
		pairs := make(draft7.Pairs, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, err := scalarValue(n.Content[i])
			if err != nil {
				return nil, errtrace.Wrap(err)
			}
			v, err := scalarValue(n.Content[i+1])
			if err != nil {
				return nil, errtrace.Wrap(err)
			}
			pairs = append(pairs, draft7.Pair{Key: k, Value: v})
		}
		return pairs, nil
	default:
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("line %d: unsupported value", n.Line))
	}
}

func scalarValue(n *yaml.Node) (string, error) {
	if n.Kind == yaml.AliasNode {
		return errtrace.Wrap2(scalarValue(n.Alias))
	}
	if n.Kind != yaml.ScalarNode {
		return "", errtrace.Wrap(errorutil.NewInvalidArgumentError("line %d: nested values are not supported", n.Line))
	}
	if n.Tag == "!!null" {
		return "", nil
	}
	return n.Value, nil
}

// applyVarFlags sets variables from "name=value" flags.
// A name given more than once becomes a list.
func applyVarFlags(vals draft7.Values, flags []string) error {
	seen := make(map[string]bool, len(flags))
	for _, f := range flags {
		name, val, ok := strings.Cut(f, "=")
		if !ok || name == "" {
			return errtrace.Wrap(errorutil.NewInvalidArgumentError("variable %q is not name=value", f))
		}
		if !seen[name] {
			seen[name] = true
			vals[name] = val
			continue
		}
		switch cur := vals[name].(type) {
		case string:
			vals[name] = []string{cur, val}
		case []string:
			vals[name] = append(cur, val)
		}
	}
	return nil
}

type routeConfig struct {
	Routes []routeEntry `yaml:"routes"`
}

type routeEntry struct {
	Name     string           `yaml:"name"`
	Template *draft7.Template `yaml:"template"`
}

// loadRoutes reads a route config file.
func loadRoutes(path string) ([]routeEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	routes, err := decodeRoutes(data)
	if err != nil {
		return nil, errtrace.Wrap(errorutil.JoinPrefix("routes file "+path, err))
	}
	return routes, nil
}

func decodeRoutes(data []byte) ([]routeEntry, error) {
	var cfg routeConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errtrace.Wrap(err)
	}

	var errs []error
	for i, rt := range cfg.Routes {
		if rt.Template == nil {
			errs = append(errs, errorutil.NewInvalidArgumentError("route %d (%s): no template", i, rt.Name))
		}
		if rt.Name == "" && rt.Template != nil {
			cfg.Routes[i].Name = rt.Template.Pattern()
		}
	}
	if err := errorutil.Join(errs...); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return cfg.Routes, nil
}

func writeOutput(w io.Writer, format string, v any) error {
	if format == outputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errtrace.Wrap(enc.Encode(v))
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return errtrace.Wrap(err)
	}
	return errtrace.Wrap(enc.Close())
}
