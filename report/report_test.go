package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/spf13/pflag"

	"github.com/hpg-aligner/hpg-aligner/options"
	"github.com/hpg-aligner/hpg-aligner/parser"
)

func resolve(t *testing.T, mode options.Mode, raw options.Values) *options.Options {
	t.Helper()
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

func sample(extra options.Values) options.Values {
	v := options.Values{
		options.OptFastq: "/data/reads_1.fq",
		options.OptIndex: "/data/index",
	}
	for k, x := range extra {
		v[k] = x
	}
	return v
}

func TestDisplay(t *testing.T) {
	o := resolve(t, options.DNA, sample(options.Values{options.OptAdapter: "AACC"}))

	var buf bytes.Buffer
	if err := Display(&buf, o); err != nil {
		t.Fatalf("Display: %v", err)
	}
	got := buf.String()

	for _, want := range []string{
		"HPG-Aligner 2.1.0-beta (dna mode)",
		"Input", "Threads", "Seeding", "Scoring", "Pairing", "Reporting", "Provenance",
		"/data/reads_1.fq",
		"adapter-revcomp",
		"GGTT",
		"disabled",
		"single-end",
		"200000 (195.3KB)",
		"policy",
		"best",
		"hpg-aligner dna --fastq=/data/reads_1.fq",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("display missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Introns") {
		t.Errorf("dna display should not list intron options:\n%s", got)
	}
	if strings.Contains(got, "bam-format") {
		t.Errorf("display should not list transient options:\n%s", got)
	}
}

func TestDisplayRNA(t *testing.T) {
	o := resolve(t, options.RNA, sample(nil))
	var buf bytes.Buffer
	if err := Display(&buf, o); err != nil {
		t.Fatalf("Display: %v", err)
	}
	for _, want := range []string{"Introns", "max-intron-length", "500000", "5 best"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("display missing %q:\n%s", want, buf.String())
		}
	}
}

func TestWriteFileRoundTrip(t *testing.T) {
	extras := map[options.Mode]options.Values{
		options.DNA: {
			options.OptCPUThreads:    6,
			options.OptMinSeedsInCAL: 2,
			options.OptReportAll:     true,
			options.OptOutdir:        "/tmp/out dir",
			options.OptFastMode:      true,
		},
		options.RNA: {
			options.OptMinIntronLength: 25,
			options.OptTranscriptome:   "/data/genes.gtf",
			options.OptGapExtend:       0.25,
		},
		options.Bisulfite: {
			options.OptPairMode:    2,
			options.OptFastq2:      "/data/reads_2.fq",
			options.OptReportNHits: 7,
		},
	}

	for mode, extra := range extras {
		t.Run(mode.String(), func(t *testing.T) {
			o := resolve(t, mode, sample(extra))

			path := filepath.Join(t.TempDir(), "options.jsonc")
			if err := SaveFile(path, o); err != nil {
				t.Fatalf("SaveFile: %v", err)
			}

			s, err := options.BuildSchema(mode)
			if err != nil {
				t.Fatalf("BuildSchema: %v", err)
			}
			raw, err := parser.ReadOverlay(path, s, options.Values{})
			if err != nil {
				t.Fatalf("ReadOverlay: %v", err)
			}
			again := resolve(t, mode, raw)

			if diff := cmp.Diff(o, again, cmpopts.IgnoreFields(options.Options{}, "Provenance")); diff != "" {
				t.Errorf("round trip changed the record (-written +read):\n%s", diff)
			}
			if again.Provenance.ConfigFile != path {
				t.Errorf("expected config file %s, got %s", path, again.Provenance.ConfigFile)
			}
		})
	}
}

func TestWriteFileHeader(t *testing.T) {
	o := resolve(t, options.DNA, sample(nil))
	var buf bytes.Buffer
	if err := WriteFile(&buf, o); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got := buf.String()
	for _, want := range []string{
		"// HPG-Aligner 2.1.0-beta effective options",
		"// mode: dna",
		"// run: " + o.Provenance.RunID,
		"// cmdline: " + o.Provenance.Cmdline,
		"// Seeding",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("options file missing %q:\n%s", want, got)
		}
	}
	if !regexp.MustCompile(`"min-num-seeds-in-cal":\s+-1,`).MatchString(got) {
		t.Errorf("disabled seed threshold not written as -1:\n%s", got)
	}
}

func TestSaveFileUnwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "not-a-dir")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	o := resolve(t, options.DNA, sample(nil))
	err := SaveFile(filepath.Join(blocker, "options.jsonc"), o)
	if err == nil {
		t.Fatal("expected an error writing below a regular file")
	}
	var ve *options.ValidationError
	if errors.As(err, &ve) {
		t.Errorf("I/O failure reported as validation error: %v", err)
	}
}

func TestUsage(t *testing.T) {
	dna, _ := options.BuildSchema(options.DNA)
	rna, _ := options.BuildSchema(options.RNA)

	global := pflag.NewFlagSet("global", pflag.ContinueOnError)
	global.Bool("dry-run", false, "validate and display options without writing files")

	var buf bytes.Buffer
	Usage(&buf, dna, global)
	got := buf.String()
	for _, want := range []string{"hpg-aligner dna [flags]", "Seeding:", "--num-seeds", "-f, --fastq", "(required)", "Global:", "--dry-run"} {
		if !strings.Contains(got, want) {
			t.Errorf("dna usage missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "--min-intron-length") {
		t.Errorf("dna usage lists rna options:\n%s", got)
	}

	buf.Reset()
	Usage(&buf, rna, nil)
	if !strings.Contains(buf.String(), "--min-intron-length") {
		t.Errorf("rna usage missing intron options:\n%s", buf.String())
	}
}
