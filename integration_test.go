package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/hpg-aligner/hpg-aligner/options"
	"github.com/hpg-aligner/hpg-aligner/parser"
	"github.com/hpg-aligner/hpg-aligner/report"
)

var ignoreProvenance = cmpopts.IgnoreFields(options.Options{}, "Provenance")

func resolveArgs(t *testing.T, mode options.Mode, args []string) *options.Options {
	t.Helper()
	s, err := options.BuildSchema(mode)
	if err != nil {
		t.Fatalf("BuildSchema: %v", err)
	}
	raw, _, err := parser.ParseCLI(s, args)
	if err != nil {
		t.Fatalf("ParseCLI: %v", err)
	}
	raw, err = parser.ReadOverlay(raw.String(options.OptConfig), s, raw)
	if err != nil {
		t.Fatalf("ReadOverlay: %v", err)
	}
	defaults, err := options.Defaults(mode)
	if err != nil {
		t.Fatalf("Defaults: %v", err)
	}
	o, err := options.Resolve(mode, raw, defaults)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	return o
}

// TestIntegration_ConfigAndCommandLine resolves a CLI plus HCL config run,
// saves the options file and checks both the file and the reconstructed
// command line reproduce the record
func TestIntegration_ConfigAndCommandLine(t *testing.T) {
	tmpDir := t.TempDir()
	config := filepath.Join(tmpDir, "rna.hcl")
	content := `
bwt-index          = "/data/hg38"
min_intron_length  = 30
max-intron-length  = 250000
gap-open           = 8
gap-extend         = 0.75
report-n-best      = 3
`
	if err := os.WriteFile(config, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	outDir := filepath.Join(tmpDir, "out")
	o := resolveArgs(t, options.RNA, []string{
		"-f", "/data/reads_1.fq",
		"-j", "/data/reads_2.fq",
		"--pair-mode", "1",
		"-c", config,
		"-o", outDir,
		"--gap-open", "12",
	})

	if o.Intron.MinLength != 30 || o.Intron.MaxLength != 250000 {
		t.Errorf("expected introns 30..250000 from config, got %d..%d", o.Intron.MinLength, o.Intron.MaxLength)
	}
	if o.Scoring.GapOpen != 12 {
		t.Errorf("command line gap-open should win, got %g", o.Scoring.GapOpen)
	}
	if o.Report != (options.ReportPolicy{Kind: options.ReportNBest, N: 3}) {
		t.Errorf("expected 3 best from config, got %s", o.Report)
	}
	if o.Provenance.ConfigFile != config {
		t.Errorf("expected config provenance %s, got %s", config, o.Provenance.ConfigFile)
	}

	// Options file round trip
	path := o.Output.OptionsPath()
	if err := report.SaveFile(path, o); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	fromFile := resolveArgs(t, options.RNA, []string{"-c", path})
	if diff := cmp.Diff(o, fromFile, ignoreProvenance); diff != "" {
		t.Errorf("options file does not reproduce the record (-want +got):\n%s", diff)
	}

	// Command line round trip
	fields := strings.Fields(o.Provenance.Cmdline)
	if len(fields) < 2 || fields[0] != options.ToolBin || fields[1] != "rna" {
		t.Fatalf("unexpected cmdline prefix: %s", o.Provenance.Cmdline)
	}
	fromCmdline := resolveArgs(t, options.RNA, fields[2:])
	if diff := cmp.Diff(o, fromCmdline, ignoreProvenance); diff != "" {
		t.Errorf("cmdline does not reproduce the record (-want +got):\n%s", diff)
	}
}

// TestIntegration_DeprecatedAliasPrecedence checks that a deprecated flag on
// the command line keeps priority over the config file, while the same alias
// inside a file still applies when the command line is silent
func TestIntegration_DeprecatedAliasPrecedence(t *testing.T) {
	tmpDir := t.TempDir()
	samConfig := filepath.Join(tmpDir, "sam.jsonc")
	if err := os.WriteFile(samConfig, []byte(`{"output-format": "sam"}`), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	aliasConfig := filepath.Join(tmpDir, "alias.jsonc")
	if err := os.WriteFile(aliasConfig, []byte(`{"bam_format": true}`), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"cli alias over file", []string{"-i", "idx", "-f", "r.fq", "--bam-format", "-c", samConfig}, "bam"},
		{"cli format over alias", []string{"-i", "idx", "-f", "r.fq", "--bam-format", "--output-format", "sam", "-c", samConfig}, "sam"},
		{"file alias", []string{"-i", "idx", "-f", "r.fq", "-c", aliasConfig}, "bam"},
		{"cli format over file alias", []string{"-i", "idx", "-f", "r.fq", "--output-format", "sam", "-c", aliasConfig}, "sam"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := resolveArgs(t, options.DNA, tt.args)
			if o.Output.Format != tt.want {
				t.Errorf("expected output format %s, got %s", tt.want, o.Output.Format)
			}
		})
	}
}
