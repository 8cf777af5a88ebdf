package parser

import (
	"errors"
	"regexp"

	"github.com/hpg-aligner/hpg-aligner/options"
)

// Diagnostics are non-fatal notes produced while parsing, such as the use of
// a deprecated flag
type Diagnostics []string

var (
	invalidArgRe = regexp.MustCompile(`invalid argument "(.*)" for "(?:-\w, )?(--[\w-]+)" flag`)
	prefixedRe   = regexp.MustCompile(`^(?:unknown flag|unknown shorthand flag|flag needs an argument|bad flag syntax): (.+)$`)
)

// NewParseError wraps a pflag error, extracting the offending token when the
// message names one
func NewParseError(err error) *options.ParseError {
	var pe *options.ParseError
	if errors.As(err, &pe) {
		return pe
	}
	msg := err.Error()
	token := ""
	if m := invalidArgRe.FindStringSubmatch(msg); m != nil {
		token = m[2] + "=" + m[1]
	} else if m := prefixedRe.FindStringSubmatch(msg); m != nil {
		token = m[1]
	}
	return &options.ParseError{Token: token, Err: err}
}
