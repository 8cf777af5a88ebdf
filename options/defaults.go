package options

import "maps"

// Option names shared by the schema, the record bindings and the config file
const (
	OptFastq       = "fastq"
	OptFastq2      = "fastq2"
	OptIndex       = "bwt-index"
	OptGenome      = "genome"
	OptInputFormat = "input-format"
	OptGzip        = "gzip"
	OptAdapter     = "adapter"

	OptOutdir       = "outdir"
	OptPrefix       = "prefix"
	OptOutputName   = "output-name"
	OptOutputFormat = "output-format"
	OptHeaderFile   = "header-file"
	OptBAMFormat    = "bam-format"

	OptGPUThreads    = "gpu-threads"
	OptCPUThreads    = "cpu-threads"
	OptCALSeekers    = "cal-seekers"
	OptRegionThreads = "region-threads"
	OptSWThreads     = "sw-threads"
	OptBatchSize     = "batch-size"
	OptWriteSize     = "write-size"

	OptNumSeeds           = "num-seeds"
	OptMinCALSize         = "min-cal-size"
	OptMinSeedsInCAL      = "min-num-seeds-in-cal"
	OptSeedPaddingLeft    = "seed-padding-left"
	OptSeedPaddingRight   = "seed-padding-right"
	OptCALSeekerErrors    = "cal-seeker-errors"
	OptSeedSize           = "seed-size"
	OptMinSeedSize        = "min-seed-size"
	OptFilterReadMappings = "filter-read-mappings"
	OptFilterSeedMappings = "filter-seed-mappings"
	OptFastMode           = "fast-mode"

	OptMinIntronLength = "min-intron-length"
	OptMaxIntronLength = "max-intron-length"
	OptTranscriptome   = "transcriptome-file"
	OptIntronFile      = "intron-file"

	OptMinScore  = "min-score"
	OptMatch     = "match"
	OptMismatch  = "mismatch"
	OptGapOpen   = "gap-open"
	OptGapExtend = "gap-extend"

	OptPairMode        = "pair-mode"
	OptPairMinDistance = "pair-min-distance"
	OptPairMaxDistance = "pair-max-distance"
	OptReportPaired    = "report-only-paired"

	OptReportAll   = "report-all"
	OptReportBest  = "report-best"
	OptReportNBest = "report-n-best"
	OptReportNHits = "report-n-hits"

	OptLogLevel   = "log-level"
	OptTiming     = "timing"
	OptStatistics = "statistics"
	OptConfig     = "config"
)

const (
	// MinBatchSize is the smallest accepted read batch and write batch size
	MinBatchSize = 10000
	// SeedsInCALDisabled is the external spelling of "no minimum seeds per CAL"
	SeedsInCALDisabled = -1
	// DefaultOutputDir is used when --outdir is not given
	DefaultOutputDir = "hpg_aligner_output"
)

// Catalog holds the default value of every option that has one
type Catalog map[string]any

var commonDefaults = Catalog{
	OptFastq2:      "",
	OptGenome:      "",
	OptInputFormat: "fastq",
	OptGzip:        false,
	OptAdapter:     "",

	OptOutdir:       DefaultOutputDir,
	OptPrefix:       "",
	OptOutputName:   "alignments",
	OptOutputFormat: "sam",
	OptHeaderFile:   "",

	OptGPUThreads:    32,
	OptCPUThreads:    1,
	OptCALSeekers:    1,
	OptRegionThreads: 1,
	OptSWThreads:     1,
	OptBatchSize:     200000,
	OptWriteSize:     500000,

	OptNumSeeds:         20,
	OptMinCALSize:       20,
	OptMinSeedsInCAL:    SeedsInCALDisabled,
	OptSeedPaddingLeft:  5,
	OptSeedPaddingRight: 5,
	OptCALSeekerErrors:  0,

	OptMinScore:  60.0,
	OptMatch:     5.0,
	OptMismatch:  -4.0,
	OptGapOpen:   10.0,
	OptGapExtend: 0.5,

	OptPairMode:        0,
	OptPairMinDistance: 200,
	OptPairMaxDistance: 800,
	OptReportPaired:    false,

	OptReportAll:   false,
	OptReportBest:  false,
	OptReportNBest: 0,
	OptReportNHits: 0,

	OptLogLevel:   2,
	OptTiming:     false,
	OptStatistics: false,
}

var modeDefaults = map[Mode]Catalog{
	DNA: {
		OptBatchSize:          200000,
		OptNumSeeds:           20,
		OptMinCALSize:         20,
		OptFilterReadMappings: 500,
		OptFilterSeedMappings: 500,
		OptFastMode:           false,
	},
	RNA: {
		OptBatchSize:       200000,
		OptNumSeeds:        20,
		OptMinCALSize:      20,
		OptSeedSize:        16,
		OptMinSeedSize:     16,
		OptMinIntronLength: 40,
		OptMaxIntronLength: 500000,
		OptTranscriptome:   "",
		OptIntronFile:      "",
	},
	Bisulfite: {
		OptFilterReadMappings: 100,
		OptFilterSeedMappings: 500,
	},
}

// Defaults returns a fresh copy of the default table for mode
func Defaults(mode Mode) (Catalog, error) {
	if !mode.Valid() {
		return nil, &SchemaError{Mode: mode.String()}
	}
	out := make(Catalog, len(commonDefaults)+len(modeDefaults[mode]))
	maps.Copy(out, commonDefaults)
	maps.Copy(out, modeDefaults[mode])
	return out, nil
}

// defaultReport applies when no reporting option is active
var defaultReport = map[Mode]ReportPolicy{
	DNA:       {Kind: ReportBest},
	RNA:       {Kind: ReportNBest, N: 5},
	Bisulfite: {Kind: ReportBest},
}

// DefaultReport returns the reporting policy used by mode when none is requested
func DefaultReport(mode Mode) ReportPolicy {
	return defaultReport[mode]
}
