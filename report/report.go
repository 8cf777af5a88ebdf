package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/hpg-aligner/hpg-aligner/options"
	"github.com/hpg-aligner/hpg-aligner/parser"
	"github.com/hpg-aligner/hpg-aligner/ui"
)

var groupTitles = map[options.Group]string{
	options.GroupInput:     "Input",
	options.GroupOutput:    "Output",
	options.GroupThreads:   "Threads",
	options.GroupBatching:  "Batching",
	options.GroupSeeding:   "Seeding",
	options.GroupIntrons:   "Introns",
	options.GroupScoring:   "Scoring",
	options.GroupPairing:   "Pairing",
	options.GroupReporting: "Reporting",
	options.GroupGeneral:   "General",
}

// Title returns the display heading of g
func Title(g options.Group) string {
	if t, ok := groupTitles[g]; ok {
		return t
	}
	return string(g)
}

// Display writes every resolved option of o, grouped by category
func Display(w io.Writer, o *options.Options) error {
	s, err := options.BuildSchema(o.Mode)
	if err != nil {
		return err
	}
	values := o.Values()

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s %s (%s mode)\n", options.ToolName, options.ToolVersion, o.Mode)

	for _, g := range options.Groups {
		defs := s.InGroup(g)
		if len(defs) == 0 {
			continue
		}
		fmt.Fprintf(tw, "\n%s\n", ui.Bold.Render(Title(g)))

		if g == options.GroupReporting {
			fmt.Fprintf(tw, "  policy\t%s\n", o.Report)
			continue
		}
		for _, d := range defs {
			if d.Transient {
				continue
			}
			fmt.Fprintf(tw, "  %s\t%s\n", d.Name, displayValue(d, values[d.Name]))
		}
		if g == options.GroupInput && o.Input.Adapter != "" {
			fmt.Fprintf(tw, "  adapter-revcomp\t%s\n", o.Input.AdapterRevComp)
		}
	}

	fmt.Fprintf(tw, "\n%s\n", ui.Bold.Render("Provenance"))
	fmt.Fprintf(tw, "  run-id\t%s\n", o.Provenance.RunID)
	if o.Provenance.ConfigFile != "" {
		fmt.Fprintf(tw, "  config\t%s\n", o.Provenance.ConfigFile)
	}
	fmt.Fprintf(tw, "  alignments\t%s\n", o.Output.AlignmentsPath())
	fmt.Fprintf(tw, "  cmdline\t%s\n", o.Provenance.Cmdline)
	return tw.Flush()
}

func displayValue(d options.Definition, v any) string {
	switch {
	case d.Name == options.OptMinSeedsInCAL && v == options.SeedsInCALDisabled:
		return "disabled"
	case d.Name == options.OptPairMode:
		if n, ok := v.(int); ok {
			return options.PairMode(n).String()
		}
	case d.Name == options.OptBatchSize || d.Name == options.OptWriteSize:
		if n, ok := v.(int); ok {
			return fmt.Sprintf("%d %s", n, ui.Dim.Render("("+ui.FormatBytes(n)+")"))
		}
	}
	if s, ok := v.(string); ok && s == "" {
		return ui.Dim.Render("-")
	}
	return options.Format(v)
}

// Usage writes help for the mode of s with flags grouped by category.
// global holds flags inherited from the root command and may be nil.
func Usage(w io.Writer, s *options.Schema, global *pflag.FlagSet) {
	spec := options.Modes[s.Mode]
	fmt.Fprintf(w, "%s\n\n", spec.Short)
	fmt.Fprintf(w, "%s\n  %s %s [flags]\n", ui.Bold.Render("Usage:"), options.ToolBin, spec.Command)

	for _, g := range options.Groups {
		defs := s.InGroup(g)
		if len(defs) == 0 {
			continue
		}
		fs := pflag.NewFlagSet(string(g), pflag.ContinueOnError)
		fs.SortFlags = false
		parser.BindDefinitions(defs, fs)
		fmt.Fprintf(w, "\n%s\n%s", ui.Bold.Render(Title(g)+":"), fs.FlagUsages())
	}

	if global != nil && global.HasFlags() {
		fmt.Fprintf(w, "\n%s\n%s", ui.Bold.Render("Global:"), global.FlagUsages())
	}
}
