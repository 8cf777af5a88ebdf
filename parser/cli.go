package parser

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/hpg-aligner/hpg-aligner/options"
)

// Bind registers one flag per schema definition on fs
func Bind(s *options.Schema, fs *pflag.FlagSet) {
	BindDefinitions(s.Definitions, fs)
}

// BindDefinitions registers one flag per definition on fs
func BindDefinitions(defs []options.Definition, fs *pflag.FlagSet) {
	for _, d := range defs {
		usage := d.Usage
		switch {
		case d.Mandatory:
			usage += " (required)"
		case d.Deprecated != "":
			usage += " (deprecated: " + d.Deprecated + ")"
		}

		switch d.Kind {
		case options.Int:
			def, _ := d.Default.(int)
			fs.IntP(d.Name, d.Short, def, usage)
		case options.Float:
			def, _ := d.Default.(float64)
			fs.Float64P(d.Name, d.Short, def, usage)
		case options.Bool:
			def, _ := d.Default.(bool)
			fs.BoolP(d.Name, d.Short, def, usage)
		default:
			def, _ := d.Default.(string)
			fs.StringP(d.Name, d.Short, def, usage)
		}
	}
}

// FromFlags collects the options the user set on fs. Flags left at their
// defaults are not reported, so later stages can tell them apart from an
// explicit value that happens to equal the default. Deprecated aliases are
// expanded into their replacement here, so a config file overlay cannot
// override what the alias chose; an explicit replacement flag still wins.
func FromFlags(s *options.Schema, fs *pflag.FlagSet) (options.Values, Diagnostics, error) {
	raw := make(options.Values)
	var diags Diagnostics
	for _, d := range s.Definitions {
		f := fs.Lookup(d.Name)
		if f == nil || !f.Changed {
			continue
		}

		var (
			v   any
			err error
		)
		switch d.Kind {
		case options.Int:
			v, err = fs.GetInt(d.Name)
		case options.Float:
			v, err = fs.GetFloat64(d.Name)
		case options.Bool:
			v, err = fs.GetBool(d.Name)
		default:
			v, err = fs.GetString(d.Name)
		}
		if err != nil {
			return nil, nil, &options.ParseError{Token: "--" + d.Name, Err: err}
		}
		raw[d.Name] = v

		if d.Deprecated != "" {
			diags = append(diags, fmt.Sprintf("--%s is deprecated, %s", d.Name, d.Deprecated))
		}
	}
	expandAliases(s, raw)
	return raw, diags, nil
}

func expandAliases(s *options.Schema, raw options.Values) {
	for _, d := range s.Definitions {
		if d.ReplacedBy == "" {
			continue
		}
		v, ok := raw[d.Name]
		if !ok || v == false || raw.Has(d.ReplacedBy) {
			continue
		}
		raw[d.ReplacedBy] = d.ReplaceValue
	}
}

// NewFlagSet returns a silent flag set for s
func NewFlagSet(s *options.Schema) *pflag.FlagSet {
	fs := pflag.NewFlagSet(options.ToolBin+" "+s.Mode.String(), pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.SortFlags = false
	Bind(s, fs)
	return fs
}

// ParseCLI parses args against s. It returns options.ErrHelp when help was
// requested and a *options.ParseError for any malformed or unknown token.
func ParseCLI(s *options.Schema, args []string) (options.Values, Diagnostics, error) {
	fs := NewFlagSet(s)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, nil, options.ErrHelp
		}
		return nil, nil, NewParseError(err)
	}
	if fs.NArg() > 0 {
		return nil, nil, &options.ParseError{Token: fs.Arg(0), Err: errors.New("unexpected positional argument")}
	}
	return FromFlags(s, fs)
}
