package options

import (
	"errors"
	"fmt"
)

// ErrHelp is returned by the CLI parser when -h or --help was given
var ErrHelp = errors.New("help requested")

// SchemaError reports a mode that has no schema
type SchemaError struct {
	Mode string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("unknown mode %q (expected dna, rna or bs)", e.Mode)
}

// ParseError reports a command-line token that could not be parsed
type ParseError struct {
	Token string // offending argument, may be empty when pflag does not expose it
	Err   error
}

func (e *ParseError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("invalid argument %q: %v", e.Token, e.Err)
	}
	return fmt.Sprintf("invalid arguments: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ConfigFileError reports a configuration file that could not be read or decoded
type ConfigFileError struct {
	Path string
	Key  string // empty for file-level failures
	Err  error
}

func (e *ConfigFileError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("config file %s: key %q: %v", e.Path, e.Key, e.Err)
	}
	return fmt.Sprintf("config file %s: %v", e.Path, e.Err)
}

func (e *ConfigFileError) Unwrap() error { return e.Err }

// Rule identifies a validation rule. Rules are checked in ascending order.
type Rule int

const (
	RuleKind Rule = iota
	RuleMandatory
	RulePaths
	RulePairing
	RuleThreads
	RuleSeeding
	RuleIntron
	RuleScoring
	RuleReporting
	RuleFormat
)

var ruleNames = [...]string{
	RuleKind:      "option type",
	RuleMandatory: "mandatory option",
	RulePaths:     "input paths",
	RulePairing:   "pairing",
	RuleThreads:   "threads and batching",
	RuleSeeding:   "seeding",
	RuleIntron:    "intron bounds",
	RuleScoring:   "scoring",
	RuleReporting: "reporting",
	RuleFormat:    "formats and logging",
}

func (r Rule) String() string {
	if r < 0 || int(r) >= len(ruleNames) {
		return fmt.Sprintf("rule(%d)", int(r))
	}
	return ruleNames[r]
}

// ValidationError reports the first violated rule of a resolution pass
type ValidationError struct {
	Rule   Rule
	Option string // option name, or several joined by ", "
	Value  any    // offending value, nil when the option is missing
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("%s: --%s: %s", e.Rule, e.Option, e.Reason)
	}
	return fmt.Sprintf("%s: --%s=%v: %s", e.Rule, e.Option, e.Value, e.Reason)
}
