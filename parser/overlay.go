package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/tailscale/hujson"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/hpg-aligner/hpg-aligner/logger"
	"github.com/hpg-aligner/hpg-aligner/options"
)

// setting is one key of a config file with a decoder for the option's kind
type setting struct {
	key    string
	decode func(options.Kind) (any, error)
}

// ReadOverlay reads the config file at path and returns raw extended with
// every recognized key that raw does not already hold. An empty path returns
// raw unchanged. Files ending in .hcl are read as HCL attributes; any other
// file is JSON with comments holding a single flat object.
//
// Reporting options overlay as a group: when raw holds any of them, the
// file's reporting keys are skipped so the two sources never combine into
// conflicting policies.
func ReadOverlay(path string, s *options.Schema, raw options.Values) (options.Values, error) {
	if path == "" {
		return raw, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &options.ConfigFileError{Path: path, Err: err}
	}

	var settings []setting
	if strings.EqualFold(filepath.Ext(path), ".hcl") {
		settings, err = decodeHCL(path, data)
	} else {
		settings, err = decodeJSONC(data)
	}
	if err != nil {
		return nil, &options.ConfigFileError{Path: path, Err: err}
	}

	cliReporting := slices.ContainsFunc(options.ReportingOptions, raw.Has)

	out := raw.Clone()
	applied := 0
	seen := make(map[string]string, len(settings))
	for _, st := range settings {
		name := normalizeKey(st.key)
		d, ok := s.Lookup(name)
		if !ok || name == options.OptConfig {
			logger.Debug("ignoring config key", "path", path, "key", st.key)
			continue
		}
		if prev, dup := seen[name]; dup {
			return nil, &options.ConfigFileError{Path: path, Key: st.key, Err: fmt.Errorf("duplicate setting, already given as %q", prev)}
		}
		seen[name] = st.key
		if raw.Has(name) || (cliReporting && d.Group == options.GroupReporting) {
			logger.Debug("command line overrides config key", "key", st.key)
			continue
		}
		v, err := st.decode(d.Kind)
		if err != nil {
			return nil, &options.ConfigFileError{Path: path, Key: st.key, Err: err}
		}
		out[name] = v
		applied++
	}
	if !out.Has(options.OptConfig) {
		out[options.OptConfig] = path
	}

	logger.Debug("config file applied", "path", path, "keys", len(settings), "applied", applied)
	return out, nil
}

// normalizeKey accepts libconfig-style keys such as num_seeds
func normalizeKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "_", "-")
}

func decodeJSONC(data []byte) ([]setting, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("syntax error: %w", err)
	}

	// Walk the object token by token so repeated keys stay visible
	dec := json.NewDecoder(bytes.NewReader(std))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return nil, errors.New("top level must be an object of option settings")
	}
	var settings []setting
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("syntax error: %w", err)
		}
		key, _ := tok.(string)
		var msg json.RawMessage
		if err := dec.Decode(&msg); err != nil {
			return nil, fmt.Errorf("syntax error: %w", err)
		}
		settings = append(settings, setting{key: key, decode: func(kind options.Kind) (any, error) {
			return decodeJSONValue(msg, kind)
		}})
	}
	slices.SortStableFunc(settings, func(a, b setting) int { return strings.Compare(a.key, b.key) })
	return settings, nil
}

func decodeJSONValue(msg json.RawMessage, kind options.Kind) (any, error) {
	if bytes.Equal(bytes.TrimSpace(msg), []byte("null")) {
		return nil, errors.New("null is not a valid value")
	}
	var err error
	switch kind {
	case options.Int:
		var v int
		if err = json.Unmarshal(msg, &v); err == nil {
			return v, nil
		}
	case options.Float:
		var v float64
		if err = json.Unmarshal(msg, &v); err == nil {
			return v, nil
		}
	case options.Bool:
		var v bool
		if err = json.Unmarshal(msg, &v); err == nil {
			return v, nil
		}
	default:
		var v string
		if err = json.Unmarshal(msg, &v); err == nil {
			return v, nil
		}
	}
	return nil, fmt.Errorf("expected %s value, got %s", kind, msg)
}

func decodeHCL(path string, data []byte) ([]setting, error) {
	file, diags := hclparse.NewParser().ParseHCL(data, path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %w", diags)
	}
	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("only attributes are allowed: %w", diags)
	}

	settings := make([]setting, 0, len(attrs))
	for _, attr := range attrs {
		attr := attr
		settings = append(settings, setting{key: attr.Name, decode: func(kind options.Kind) (any, error) {
			val, diags := attr.Expr.Value(nil)
			if diags.HasErrors() {
				return nil, diags
			}
			return decodeCtyValue(val, kind)
		}})
	}
	slices.SortFunc(settings, func(a, b setting) int { return strings.Compare(a.key, b.key) })
	return settings, nil
}

func decodeCtyValue(val cty.Value, kind options.Kind) (any, error) {
	if val.IsNull() {
		return nil, errors.New("null is not a valid value")
	}
	var err error
	switch kind {
	case options.Int:
		var v int
		if err = gocty.FromCtyValue(val, &v); err == nil {
			return v, nil
		}
	case options.Float:
		var v float64
		if err = gocty.FromCtyValue(val, &v); err == nil {
			return v, nil
		}
	case options.Bool:
		var v bool
		if err = gocty.FromCtyValue(val, &v); err == nil {
			return v, nil
		}
	default:
		if val.Type() != cty.String {
			return nil, fmt.Errorf("expected %s value, got %s", kind, val.Type().FriendlyName())
		}
		return val.AsString(), nil
	}
	return nil, fmt.Errorf("expected %s value: %w", kind, err)
}
