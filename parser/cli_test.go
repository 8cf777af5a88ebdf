package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hpg-aligner/hpg-aligner/options"
)

func schemaFor(t *testing.T, mode options.Mode) *options.Schema {
	t.Helper()
	s, err := options.BuildSchema(mode)
	if err != nil {
		t.Fatalf("BuildSchema: %v", err)
	}
	return s
}

func TestParseCLI(t *testing.T) {
	s := schemaFor(t, options.RNA)
	args := []string{
		"-f", "reads.fq",
		"--bwt-index", "/idx",
		"-t", "8",
		"--mismatch", "-3",
		"--gap-extend=1.5",
		"--report-all",
		"--max-intron-length", "100000",
		"-z",
	}

	raw, diags, err := ParseCLI(s, args)
	if err != nil {
		t.Fatalf("ParseCLI: %v", err)
	}
	if len(diags) != 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}

	want := options.Values{
		options.OptFastq:           "reads.fq",
		options.OptIndex:           "/idx",
		options.OptCPUThreads:      8,
		options.OptMismatch:        -3.0,
		options.OptGapExtend:       1.5,
		options.OptReportAll:       true,
		options.OptMaxIntronLength: 100000,
		options.OptGzip:            true,
	}
	if diff := cmp.Diff(want, raw); diff != "" {
		t.Errorf("raw values mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCLIExplicitDefault(t *testing.T) {
	s := schemaFor(t, options.DNA)
	raw, _, err := ParseCLI(s, []string{"--cpu-threads", "1", "--min-num-seeds-in-cal", "-1"})
	if err != nil {
		t.Fatalf("ParseCLI: %v", err)
	}
	if !raw.Has(options.OptCPUThreads) || raw.Int(options.OptCPUThreads) != 1 {
		t.Errorf("explicit default value should be recorded, got %v", raw)
	}
	if raw.Int(options.OptMinSeedsInCAL) != options.SeedsInCALDisabled {
		t.Errorf("expected -1 for %s, got %v", options.OptMinSeedsInCAL, raw[options.OptMinSeedsInCAL])
	}
	if raw.Has(options.OptGPUThreads) {
		t.Error("unset flags must not be recorded")
	}
}

func TestParseCLIErrors(t *testing.T) {
	tests := []struct {
		name  string
		mode  options.Mode
		args  []string
		token string
	}{
		{"unknown flag", options.DNA, []string{"--no-such-flag"}, "--no-such-flag"},
		{"rna flag in dna mode", options.DNA, []string{"--min-intron-length", "10"}, "--min-intron-length"},
		{"malformed int", options.DNA, []string{"--cpu-threads", "four"}, "--cpu-threads=four"},
		{"malformed float", options.RNA, []string{"--match=high"}, "--match=high"},
		{"missing value", options.DNA, []string{"--outdir"}, "--outdir"},
		{"positional", options.DNA, []string{"-f", "r.fq", "extra"}, "extra"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseCLI(schemaFor(t, tt.mode), tt.args)
			var pe *options.ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected ParseError, got %v", err)
			}
			if !strings.Contains(pe.Token, tt.token) {
				t.Errorf("expected token %q, got %q (%v)", tt.token, pe.Token, pe)
			}
		})
	}
}

func TestParseCLIHelp(t *testing.T) {
	for _, arg := range []string{"-h", "--help"} {
		_, _, err := ParseCLI(schemaFor(t, options.DNA), []string{"-f", "r.fq", arg})
		if !errors.Is(err, options.ErrHelp) {
			t.Errorf("%s: expected ErrHelp, got %v", arg, err)
		}
	}
}

func TestParseCLIDeprecated(t *testing.T) {
	raw, diags, err := ParseCLI(schemaFor(t, options.DNA), []string{"--bam-format"})
	if err != nil {
		t.Fatalf("ParseCLI: %v", err)
	}
	if !raw.Bool(options.OptBAMFormat) {
		t.Error("expected bam-format to be recorded")
	}
	if got := raw.String(options.OptOutputFormat); got != "bam" {
		t.Errorf("expected alias to set output-format=bam, got %q", got)
	}
	if len(diags) != 1 || !strings.Contains(diags[0], "--output-format bam") {
		t.Errorf("expected deprecation diagnostic, got %v", diags)
	}
}

func TestParseCLIDeprecatedExplicitReplacement(t *testing.T) {
	raw, _, err := ParseCLI(schemaFor(t, options.DNA), []string{"--bam-format", "--output-format", "sam"})
	if err != nil {
		t.Fatalf("ParseCLI: %v", err)
	}
	if got := raw.String(options.OptOutputFormat); got != "sam" {
		t.Errorf("explicit --output-format should win over the alias, got %q", got)
	}

	raw, _, err = ParseCLI(schemaFor(t, options.DNA), []string{"--bam-format=false"})
	if err != nil {
		t.Fatalf("ParseCLI: %v", err)
	}
	if raw.Has(options.OptOutputFormat) {
		t.Errorf("disabled alias should not set output-format, got %v", raw)
	}
}

func TestNewParseErrorKeepsParseError(t *testing.T) {
	orig := &options.ParseError{Token: "x", Err: errors.New("bad")}
	if got := NewParseError(orig); got != orig {
		t.Errorf("expected the same ParseError back, got %v", got)
	}
}
