package options

import (
	"strings"

	"github.com/google/uuid"

	"github.com/hpg-aligner/hpg-aligner/logger"
)

// Resolve merges raw values over defaults for mode, validates the result and
// returns the run's options record. Each option takes the raw value when
// present, else the catalog default; a mandatory option with neither fails.
// Cross-field rules run in Rule order and the first violation is returned.
func Resolve(mode Mode, raw Values, defaults Catalog) (*Options, error) {
	s, err := BuildSchema(mode)
	if err != nil {
		return nil, err
	}
	raw = applyReplacements(s, raw)

	merged := make(Values, len(s.Definitions))
	for _, d := range s.Definitions {
		if d.Transient {
			continue
		}
		v, ok := raw[d.Name]
		if !ok {
			v, ok = defaults[d.Name]
		}
		if !ok {
			if d.Mandatory {
				return nil, &ValidationError{
					Rule:   RuleMandatory,
					Option: d.Name,
					Reason: "required in " + mode.String() + " mode",
				}
			}
			v = d.Kind.Zero()
		}
		cv, err := d.Kind.Check(v)
		if err != nil {
			return nil, &ValidationError{Rule: RuleKind, Option: d.Name, Value: v, Reason: err.Error()}
		}
		merged[d.Name] = cv
	}

	o := &Options{Mode: mode}
	for name, v := range merged {
		if b, ok := bindings[name]; ok {
			b.set(o, v)
		}
	}

	for _, rule := range rules {
		if err := rule(o, merged); err != nil {
			logger.Debug("options rejected", "mode", mode, "error", err)
			return nil, err
		}
	}

	if o.Input.Adapter != "" {
		o.Input.Adapter = strings.ToUpper(o.Input.Adapter)
		o.Input.AdapterRevComp = reverseComplement(o.Input.Adapter)
		o.Input.AdapterLength = len(o.Input.Adapter)
	}

	o.Provenance = Provenance{
		RunID:      uuid.New().String(),
		ConfigFile: raw.String(OptConfig),
	}
	o.Provenance.Cmdline = ReconstructCmdline(o)

	logger.Debug("options resolved", "mode", mode, "explicit", len(raw), "report", o.Report.String())
	return o, nil
}

// applyReplacements rewrites deprecated options into their replacements.
// An explicit value for the replacement wins. Command line aliases arrive
// already expanded; this covers aliases read from a config file.
func applyReplacements(s *Schema, raw Values) Values {
	out := raw
	cloned := false
	for _, d := range s.Definitions {
		if d.ReplacedBy == "" {
			continue
		}
		v, ok := raw[d.Name]
		if !ok || v == false || raw.Has(d.ReplacedBy) {
			continue
		}
		if !cloned {
			out, cloned = raw.Clone(), true
		}
		out[d.ReplacedBy] = d.ReplaceValue
	}
	return out
}

func reverseComplement(seq string) string {
	out := make([]byte, len(seq))
	for i := 0; i < len(seq); i++ {
		var c byte
		switch seq[len(seq)-1-i] {
		case 'A':
			c = 'T'
		case 'T':
			c = 'A'
		case 'C':
			c = 'G'
		case 'G':
			c = 'C'
		default:
			c = 'N'
		}
		out[i] = c
	}
	return string(out)
}
