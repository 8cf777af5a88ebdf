package options

import (
	"fmt"
	"path/filepath"
)

// Options is the resolved configuration of one run. It is built once by
// Resolve and then shared read-only by every alignment stage; nothing may
// modify it after Resolve returns.
type Options struct {
	Mode       Mode
	Input      InputOptions
	Output     OutputOptions
	Threads    ThreadOptions
	Batch      BatchOptions
	Seeding    SeedOptions
	Intron     IntronOptions // zero outside RNA mode
	Scoring    ScoringOptions
	Pairing    PairOptions
	Report     ReportPolicy
	General    GeneralOptions
	Provenance Provenance
}

type InputOptions struct {
	ReadFile   string
	MateFile   string // empty for single-end runs
	IndexDir   string
	GenomeFile string
	Format     string // "fastq" or "bam"
	Gzip       bool

	Adapter        string
	AdapterRevComp string // reverse complement of Adapter
	AdapterLength  int
}

type OutputOptions struct {
	Dir        string
	Prefix     string
	Name       string
	Format     string // "sam" or "bam"
	HeaderFile string
}

// AlignmentsPath is the file the writer stage creates
func (o OutputOptions) AlignmentsPath() string {
	return filepath.Join(o.Dir, o.Prefix+o.Name+"."+o.Format)
}

// OptionsPath is where the effective options of the run are saved
func (o OutputOptions) OptionsPath() string {
	return filepath.Join(o.Dir, o.Prefix+ToolBin+".options.jsonc")
}

type ThreadOptions struct {
	GPU        int
	CPU        int
	CALSeekers int
	Region     int
	SW         int
}

type BatchOptions struct {
	ReadSize  int
	WriteSize int
}

type SeedOptions struct {
	NumSeeds        int
	MinCALSize      int
	MinSeedsInCAL   *int // nil when the filter is disabled
	PaddingLeft     int
	PaddingRight    int
	CALSeekerErrors int

	// RNA only
	SeedSize    int
	MinSeedSize int

	// DNA and bisulfite only
	FilterReadMappings int
	FilterSeedMappings int
	FastMode           bool
}

type IntronOptions struct {
	MinLength         int
	MaxLength         int
	TranscriptomeFile string
	AnnotationFile    string
}

type ScoringOptions struct {
	MinScore  float64
	Match     float64
	Mismatch  float64
	GapOpen   float64
	GapExtend float64
}

// PairMode is how reads are paired
type PairMode int

const (
	SingleEnd PairMode = iota
	PairedEnd
	MatePair
)

func (p PairMode) String() string {
	switch p {
	case SingleEnd:
		return "single-end"
	case PairedEnd:
		return "paired-end"
	case MatePair:
		return "mate-pair"
	}
	return fmt.Sprintf("pair-mode(%d)", int(p))
}

type PairOptions struct {
	Mode        PairMode
	MinDistance int
	MaxDistance int
	OnlyPaired  bool
}

// Paired reports whether reads come in pairs
func (p PairOptions) Paired() bool { return p.Mode != SingleEnd }

// ReportKind selects which mappings of a read are written
type ReportKind int

const (
	ReportBest ReportKind = iota
	ReportAll
	ReportNBest
	ReportNHits
)

// ReportPolicy is the single active reporting policy. N is set for
// ReportNBest and ReportNHits only.
type ReportPolicy struct {
	Kind ReportKind
	N    int
}

func (r ReportPolicy) String() string {
	switch r.Kind {
	case ReportAll:
		return "all"
	case ReportBest:
		return "best"
	case ReportNBest:
		return fmt.Sprintf("%d best", r.N)
	case ReportNHits:
		return fmt.Sprintf("%d hits", r.N)
	}
	return fmt.Sprintf("report(%d)", int(r.Kind))
}

type GeneralOptions struct {
	LogLevel   int
	Timing     bool
	Statistics bool
}

// Provenance records where a run's options came from
type Provenance struct {
	Cmdline    string // every effective option as a command line
	RunID      string
	ConfigFile string // empty when no config file was read
}

// Values returns the effective value of every stored option, keyed by name
func (o *Options) Values() Values {
	s, err := BuildSchema(o.Mode)
	if err != nil {
		return nil
	}
	out := make(Values, len(s.Definitions))
	for _, d := range s.Definitions {
		if d.Transient {
			continue
		}
		if b, ok := bindings[d.Name]; ok {
			out[d.Name] = b.get(o)
		}
	}
	out[OptReportAll] = o.Report.Kind == ReportAll
	out[OptReportBest] = o.Report.Kind == ReportBest
	out[OptReportNBest] = 0
	out[OptReportNHits] = 0
	switch o.Report.Kind {
	case ReportNBest:
		out[OptReportNBest] = o.Report.N
	case ReportNHits:
		out[OptReportNHits] = o.Report.N
	}
	return out
}

// binding connects an option name to its record field
type binding struct {
	get func(*Options) any
	set func(*Options, any)
}

func intField(p func(*Options) *int) binding {
	return binding{
		get: func(o *Options) any { return *p(o) },
		set: func(o *Options, v any) { *p(o) = v.(int) },
	}
}

func floatField(p func(*Options) *float64) binding {
	return binding{
		get: func(o *Options) any { return *p(o) },
		set: func(o *Options, v any) { *p(o) = v.(float64) },
	}
}

func strField(p func(*Options) *string) binding {
	return binding{
		get: func(o *Options) any { return *p(o) },
		set: func(o *Options, v any) { *p(o) = v.(string) },
	}
}

func boolField(p func(*Options) *bool) binding {
	return binding{
		get: func(o *Options) any { return *p(o) },
		set: func(o *Options, v any) { *p(o) = v.(bool) },
	}
}

// Reporting options have no binding; Resolve folds them into Options.Report.
var bindings = map[string]binding{
	OptFastq:       strField(func(o *Options) *string { return &o.Input.ReadFile }),
	OptFastq2:      strField(func(o *Options) *string { return &o.Input.MateFile }),
	OptIndex:       strField(func(o *Options) *string { return &o.Input.IndexDir }),
	OptGenome:      strField(func(o *Options) *string { return &o.Input.GenomeFile }),
	OptInputFormat: strField(func(o *Options) *string { return &o.Input.Format }),
	OptGzip:        boolField(func(o *Options) *bool { return &o.Input.Gzip }),
	OptAdapter:     strField(func(o *Options) *string { return &o.Input.Adapter }),

	OptOutdir:       strField(func(o *Options) *string { return &o.Output.Dir }),
	OptPrefix:       strField(func(o *Options) *string { return &o.Output.Prefix }),
	OptOutputName:   strField(func(o *Options) *string { return &o.Output.Name }),
	OptOutputFormat: strField(func(o *Options) *string { return &o.Output.Format }),
	OptHeaderFile:   strField(func(o *Options) *string { return &o.Output.HeaderFile }),

	OptGPUThreads:    intField(func(o *Options) *int { return &o.Threads.GPU }),
	OptCPUThreads:    intField(func(o *Options) *int { return &o.Threads.CPU }),
	OptCALSeekers:    intField(func(o *Options) *int { return &o.Threads.CALSeekers }),
	OptRegionThreads: intField(func(o *Options) *int { return &o.Threads.Region }),
	OptSWThreads:     intField(func(o *Options) *int { return &o.Threads.SW }),
	OptBatchSize:     intField(func(o *Options) *int { return &o.Batch.ReadSize }),
	OptWriteSize:     intField(func(o *Options) *int { return &o.Batch.WriteSize }),

	OptNumSeeds:           intField(func(o *Options) *int { return &o.Seeding.NumSeeds }),
	OptMinCALSize:         intField(func(o *Options) *int { return &o.Seeding.MinCALSize }),
	OptSeedPaddingLeft:    intField(func(o *Options) *int { return &o.Seeding.PaddingLeft }),
	OptSeedPaddingRight:   intField(func(o *Options) *int { return &o.Seeding.PaddingRight }),
	OptCALSeekerErrors:    intField(func(o *Options) *int { return &o.Seeding.CALSeekerErrors }),
	OptSeedSize:           intField(func(o *Options) *int { return &o.Seeding.SeedSize }),
	OptMinSeedSize:        intField(func(o *Options) *int { return &o.Seeding.MinSeedSize }),
	OptFilterReadMappings: intField(func(o *Options) *int { return &o.Seeding.FilterReadMappings }),
	OptFilterSeedMappings: intField(func(o *Options) *int { return &o.Seeding.FilterSeedMappings }),
	OptFastMode:           boolField(func(o *Options) *bool { return &o.Seeding.FastMode }),
	OptMinSeedsInCAL: {
		get: func(o *Options) any {
			if o.Seeding.MinSeedsInCAL == nil {
				return SeedsInCALDisabled
			}
			return *o.Seeding.MinSeedsInCAL
		},
		set: func(o *Options, v any) {
			n := v.(int)
			if n == SeedsInCALDisabled {
				o.Seeding.MinSeedsInCAL = nil
				return
			}
			o.Seeding.MinSeedsInCAL = &n
		},
	},

	OptMinIntronLength: intField(func(o *Options) *int { return &o.Intron.MinLength }),
	OptMaxIntronLength: intField(func(o *Options) *int { return &o.Intron.MaxLength }),
	OptTranscriptome:   strField(func(o *Options) *string { return &o.Intron.TranscriptomeFile }),
	OptIntronFile:      strField(func(o *Options) *string { return &o.Intron.AnnotationFile }),

	OptMinScore:  floatField(func(o *Options) *float64 { return &o.Scoring.MinScore }),
	OptMatch:     floatField(func(o *Options) *float64 { return &o.Scoring.Match }),
	OptMismatch:  floatField(func(o *Options) *float64 { return &o.Scoring.Mismatch }),
	OptGapOpen:   floatField(func(o *Options) *float64 { return &o.Scoring.GapOpen }),
	OptGapExtend: floatField(func(o *Options) *float64 { return &o.Scoring.GapExtend }),

	OptPairMode: {
		get: func(o *Options) any { return int(o.Pairing.Mode) },
		set: func(o *Options, v any) { o.Pairing.Mode = PairMode(v.(int)) },
	},
	OptPairMinDistance: intField(func(o *Options) *int { return &o.Pairing.MinDistance }),
	OptPairMaxDistance: intField(func(o *Options) *int { return &o.Pairing.MaxDistance }),
	OptReportPaired:    boolField(func(o *Options) *bool { return &o.Pairing.OnlyPaired }),

	OptLogLevel:   intField(func(o *Options) *int { return &o.General.LogLevel }),
	OptTiming:     boolField(func(o *Options) *bool { return &o.General.Timing }),
	OptStatistics: boolField(func(o *Options) *bool { return &o.General.Statistics }),
}
