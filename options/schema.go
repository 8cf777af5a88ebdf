package options

import "fmt"

// Group is the display category of an option
type Group string

const (
	GroupInput     Group = "input"
	GroupOutput    Group = "output"
	GroupThreads   Group = "threads"
	GroupBatching  Group = "batching"
	GroupSeeding   Group = "seeding"
	GroupIntrons   Group = "introns"
	GroupScoring   Group = "scoring"
	GroupPairing   Group = "pairing"
	GroupReporting Group = "reporting"
	GroupGeneral   Group = "general"
)

// Groups lists the categories in display order
var Groups = []Group{
	GroupInput, GroupOutput, GroupThreads, GroupBatching, GroupSeeding,
	GroupIntrons, GroupScoring, GroupPairing, GroupReporting, GroupGeneral,
}

// Definition describes one recognized option
type Definition struct {
	Name      string
	Short     string // single letter, empty when the option has no short flag
	Kind      Kind
	Default   any // nil for mandatory options
	Mandatory bool
	Usage     string
	Group     Group

	// Transient options steer parsing but are not stored in the record
	// nor written to options files.
	Transient bool

	// Deprecated options are rewritten to ReplacedBy=ReplaceValue when set
	Deprecated   string
	ReplacedBy   string
	ReplaceValue any
}

// Schema is the ordered option table of one mode
type Schema struct {
	Mode        Mode
	Definitions []Definition
	index       map[string]int
}

// Lookup returns the definition named name
func (s *Schema) Lookup(name string) (*Definition, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return &s.Definitions[i], true
}

// InGroup returns the definitions of g in schema order
func (s *Schema) InGroup(g Group) []Definition {
	var out []Definition
	for _, d := range s.Definitions {
		if d.Group == g {
			out = append(out, d)
		}
	}
	return out
}

// ReportingOptions are mutually exclusive and overlay as one unit
var ReportingOptions = []string{OptReportAll, OptReportBest, OptReportNBest, OptReportNHits}

var commonDefinitions = []Definition{
	{Name: OptFastq, Short: "f", Kind: Path, Mandatory: true, Group: GroupInput, Usage: "reads file in FastQ format"},
	{Name: OptFastq2, Short: "j", Kind: Path, Group: GroupInput, Usage: "mate reads file for paired-end runs"},
	{Name: OptIndex, Short: "i", Kind: Path, Mandatory: true, Group: GroupInput, Usage: "genome index directory"},
	{Name: OptGenome, Short: "g", Kind: Path, Group: GroupInput, Usage: "reference genome in FASTA format"},
	{Name: OptInputFormat, Kind: String, Group: GroupInput, Usage: "reads format: fastq or bam"},
	{Name: OptGzip, Short: "z", Kind: Bool, Group: GroupInput, Usage: "reads file is gzip compressed"},
	{Name: OptAdapter, Kind: String, Group: GroupInput, Usage: "adapter sequence to trim from reads"},
	{Name: OptConfig, Short: "c", Kind: Path, Group: GroupInput, Transient: true, Usage: "configuration file (JSONC or HCL)"},

	{Name: OptOutdir, Short: "o", Kind: Path, Group: GroupOutput, Usage: "output directory"},
	{Name: OptPrefix, Kind: String, Group: GroupOutput, Usage: "prefix for output file names"},
	{Name: OptOutputName, Kind: String, Group: GroupOutput, Usage: "base name of the alignments file"},
	{Name: OptOutputFormat, Kind: String, Group: GroupOutput, Usage: "alignments format: sam or bam"},
	{Name: OptHeaderFile, Kind: Path, Group: GroupOutput, Usage: "SAM header to copy into the output"},
	{
		Name: OptBAMFormat, Kind: Bool, Group: GroupOutput, Transient: true, Usage: "write BAM output",
		Deprecated: "use --output-format bam", ReplacedBy: OptOutputFormat, ReplaceValue: "bam",
	},

	{Name: OptGPUThreads, Kind: Int, Group: GroupThreads, Usage: "GPU threads per block"},
	{Name: OptCPUThreads, Short: "t", Kind: Int, Group: GroupThreads, Usage: "CPU worker threads"},
	{Name: OptCALSeekers, Kind: Int, Group: GroupThreads, Usage: "CAL seeker threads"},
	{Name: OptRegionThreads, Kind: Int, Group: GroupThreads, Usage: "region seeker threads"},
	{Name: OptSWThreads, Kind: Int, Group: GroupThreads, Usage: "Smith-Waterman threads"},

	{Name: OptBatchSize, Kind: Int, Group: GroupBatching, Usage: "read batch size in bytes"},
	{Name: OptWriteSize, Kind: Int, Group: GroupBatching, Usage: "write batch size in bytes"},

	{Name: OptNumSeeds, Kind: Int, Group: GroupSeeding, Usage: "seeds extracted per read"},
	{Name: OptMinCALSize, Kind: Int, Group: GroupSeeding, Usage: "minimum CAL length"},
	{Name: OptMinSeedsInCAL, Kind: Int, Group: GroupSeeding, Usage: "minimum seeds per CAL, -1 disables the filter"},
	{Name: OptSeedPaddingLeft, Kind: Int, Group: GroupSeeding, Usage: "left padding around seeds"},
	{Name: OptSeedPaddingRight, Kind: Int, Group: GroupSeeding, Usage: "right padding around seeds"},
	{Name: OptCALSeekerErrors, Kind: Int, Group: GroupSeeding, Usage: "errors allowed while seeking CALs"},

	{Name: OptMinScore, Kind: Float, Group: GroupScoring, Usage: "minimum alignment score"},
	{Name: OptMatch, Kind: Float, Group: GroupScoring, Usage: "match score"},
	{Name: OptMismatch, Kind: Float, Group: GroupScoring, Usage: "mismatch score"},
	{Name: OptGapOpen, Kind: Float, Group: GroupScoring, Usage: "gap open penalty"},
	{Name: OptGapExtend, Kind: Float, Group: GroupScoring, Usage: "gap extend penalty"},

	{Name: OptPairMode, Kind: Int, Group: GroupPairing, Usage: "0 single-end, 1 paired-end, 2 mate-pair"},
	{Name: OptPairMinDistance, Kind: Int, Group: GroupPairing, Usage: "minimum insert distance"},
	{Name: OptPairMaxDistance, Kind: Int, Group: GroupPairing, Usage: "maximum insert distance"},
	{Name: OptReportPaired, Kind: Bool, Group: GroupPairing, Usage: "report only properly paired reads"},

	{Name: OptReportAll, Kind: Bool, Group: GroupReporting, Usage: "report all mappings"},
	{Name: OptReportBest, Kind: Bool, Group: GroupReporting, Usage: "report the best mappings"},
	{Name: OptReportNBest, Kind: Int, Group: GroupReporting, Usage: "report the <n> best mappings"},
	{Name: OptReportNHits, Kind: Int, Group: GroupReporting, Usage: "report <n> mappings"},

	{Name: OptLogLevel, Short: "L", Kind: Int, Group: GroupGeneral, Usage: "log level, 1 (debug) to 5 (fatal)"},
	{Name: OptTiming, Kind: Bool, Group: GroupGeneral, Usage: "report stage timings"},
	{Name: OptStatistics, Kind: Bool, Group: GroupGeneral, Usage: "report mapping statistics"},
}

var mappingFilters = []Definition{
	{Name: OptFilterReadMappings, Kind: Int, Group: GroupSeeding, Usage: "discard reads with more mappings than this"},
	{Name: OptFilterSeedMappings, Kind: Int, Group: GroupSeeding, Usage: "discard seeds with more mappings than this"},
}

var modeDefinitions = map[Mode][]Definition{
	DNA: append(append([]Definition(nil), mappingFilters...),
		Definition{Name: OptFastMode, Kind: Bool, Group: GroupSeeding, Usage: "skip the exhaustive CAL search"},
	),
	RNA: {
		{Name: OptSeedSize, Kind: Int, Group: GroupSeeding, Usage: "seed size"},
		{Name: OptMinSeedSize, Kind: Int, Group: GroupSeeding, Usage: "minimum seed size"},
		{Name: OptMinIntronLength, Kind: Int, Group: GroupIntrons, Usage: "minimum intron length"},
		{Name: OptMaxIntronLength, Kind: Int, Group: GroupIntrons, Usage: "maximum intron length"},
		{Name: OptTranscriptome, Kind: Path, Group: GroupIntrons, Usage: "transcriptome annotation (GTF)"},
		{Name: OptIntronFile, Kind: Path, Group: GroupIntrons, Usage: "known introns annotation"},
	},
	Bisulfite: mappingFilters,
}

// BuildSchema returns the option table for mode. The result is freshly
// allocated; callers may keep it for the lifetime of the run.
func BuildSchema(mode Mode) (*Schema, error) {
	defaults, err := Defaults(mode)
	if err != nil {
		return nil, err
	}

	common, ext := commonDefinitions, modeDefinitions[mode]
	s := &Schema{
		Mode:        mode,
		Definitions: make([]Definition, 0, len(common)+len(ext)),
		index:       make(map[string]int, len(common)+len(ext)),
	}
	for _, defs := range [][]Definition{common, ext} {
		for _, d := range defs {
			if _, dup := s.index[d.Name]; dup {
				return nil, fmt.Errorf("duplicate option %q in %s schema", d.Name, mode)
			}
			switch {
			case d.Transient:
				d.Default = d.Kind.Zero()
			case !d.Mandatory:
				d.Default = defaults[d.Name]
			}
			s.index[d.Name] = len(s.Definitions)
			s.Definitions = append(s.Definitions, d)
		}
	}
	return s, nil
}
