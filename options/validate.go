package options

import (
	"fmt"
	"slices"
	"strings"
)

// rules run in this order; the first error stops resolution
var rules = []func(*Options, Values) error{
	checkPaths,
	checkPairing,
	checkThreads,
	checkSeeding,
	checkIntrons,
	checkScoring,
	resolveReporting,
	checkFormats,
}

func invalid(rule Rule, option string, value any, format string, args ...any) *ValidationError {
	return &ValidationError{Rule: rule, Option: option, Value: value, Reason: fmt.Sprintf(format, args...)}
}

func checkPaths(o *Options, _ Values) error {
	for _, p := range []struct {
		name  string
		value string
	}{
		{OptIndex, o.Input.IndexDir},
		{OptFastq, o.Input.ReadFile},
	} {
		if strings.TrimSpace(p.value) == "" {
			return invalid(RulePaths, p.name, p.value, "path must not be empty")
		}
	}
	return nil
}

func checkPairing(o *Options, _ Values) error {
	p := o.Pairing
	if p.Mode < SingleEnd || p.Mode > MatePair {
		return invalid(RulePairing, OptPairMode, int(p.Mode), "unknown pair mode (expected 0, 1 or 2)")
	}
	if !p.Paired() {
		return nil
	}
	if o.Input.Format == "fastq" && o.Input.MateFile == "" {
		return invalid(RulePairing, OptFastq2, nil, "required for %s reads", p.Mode)
	}
	if p.MinDistance < 0 {
		return invalid(RulePairing, OptPairMinDistance, p.MinDistance, "must not be negative")
	}
	if p.MinDistance >= p.MaxDistance {
		return invalid(RulePairing, OptPairMinDistance+", --"+OptPairMaxDistance,
			fmt.Sprintf("%d..%d", p.MinDistance, p.MaxDistance), "pair distance bounds inverted")
	}
	return nil
}

func checkThreads(o *Options, _ Values) error {
	for _, t := range []struct {
		name  string
		value int
	}{
		{OptGPUThreads, o.Threads.GPU},
		{OptCPUThreads, o.Threads.CPU},
		{OptCALSeekers, o.Threads.CALSeekers},
		{OptRegionThreads, o.Threads.Region},
		{OptSWThreads, o.Threads.SW},
	} {
		if t.value < 1 {
			return invalid(RuleThreads, t.name, t.value, "at least one thread is required")
		}
	}
	if o.Batch.ReadSize < MinBatchSize {
		return invalid(RuleThreads, OptBatchSize, o.Batch.ReadSize, "must be at least %d", MinBatchSize)
	}
	if o.Batch.WriteSize < MinBatchSize {
		return invalid(RuleThreads, OptWriteSize, o.Batch.WriteSize, "must be at least %d", MinBatchSize)
	}
	return nil
}

func checkSeeding(o *Options, v Values) error {
	s := o.Seeding
	if o.Mode == RNA {
		if s.SeedSize < 1 {
			return invalid(RuleSeeding, OptSeedSize, s.SeedSize, "must be positive")
		}
		if s.MinSeedSize < 1 || s.MinSeedSize > s.SeedSize {
			return invalid(RuleSeeding, OptMinSeedSize, s.MinSeedSize, "must be between 1 and --%s (%d)", OptSeedSize, s.SeedSize)
		}
	}
	if s.MinCALSize < 1 {
		return invalid(RuleSeeding, OptMinCALSize, s.MinCALSize, "must be at least 1")
	}
	if s.NumSeeds < 1 {
		return invalid(RuleSeeding, OptNumSeeds, s.NumSeeds, "must be at least 1")
	}
	if n := v.Int(OptMinSeedsInCAL); n != SeedsInCALDisabled && n < 1 {
		return invalid(RuleSeeding, OptMinSeedsInCAL, n, "must be %d (disabled) or at least 1", SeedsInCALDisabled)
	}
	for _, p := range []struct {
		name  string
		value int
	}{
		{OptSeedPaddingLeft, s.PaddingLeft},
		{OptSeedPaddingRight, s.PaddingRight},
		{OptCALSeekerErrors, s.CALSeekerErrors},
	} {
		if p.value < 0 {
			return invalid(RuleSeeding, p.name, p.value, "must not be negative")
		}
	}
	if o.Mode == DNA || o.Mode == Bisulfite {
		if s.FilterReadMappings < 1 {
			return invalid(RuleSeeding, OptFilterReadMappings, s.FilterReadMappings, "must be at least 1")
		}
		if s.FilterSeedMappings < 1 {
			return invalid(RuleSeeding, OptFilterSeedMappings, s.FilterSeedMappings, "must be at least 1")
		}
	}
	return nil
}

func checkIntrons(o *Options, _ Values) error {
	if o.Mode != RNA {
		return nil
	}
	in := o.Intron
	if in.MinLength < 0 {
		return invalid(RuleIntron, OptMinIntronLength, in.MinLength, "must not be negative")
	}
	if in.MinLength >= in.MaxLength {
		return invalid(RuleIntron, OptMinIntronLength+", --"+OptMaxIntronLength,
			fmt.Sprintf("%d..%d", in.MinLength, in.MaxLength), "intron length bounds inverted")
	}
	return nil
}

func checkScoring(o *Options, _ Values) error {
	sc := o.Scoring
	switch {
	case sc.Match <= 0:
		return invalid(RuleScoring, OptMatch, sc.Match, "match score must be positive")
	case sc.Mismatch > 0:
		return invalid(RuleScoring, OptMismatch, sc.Mismatch, "mismatch score must not be positive")
	case sc.GapOpen < 0:
		return invalid(RuleScoring, OptGapOpen, sc.GapOpen, "gap penalties are given as positive costs")
	case sc.GapExtend < 0:
		return invalid(RuleScoring, OptGapExtend, sc.GapExtend, "gap penalties are given as positive costs")
	case sc.GapExtend > sc.GapOpen:
		return invalid(RuleScoring, OptGapExtend, sc.GapExtend, "must not exceed --%s (%g)", OptGapOpen, sc.GapOpen)
	case sc.MinScore < 0:
		return invalid(RuleScoring, OptMinScore, sc.MinScore, "must not be negative")
	}
	return nil
}

// resolveReporting picks the single active policy, or the mode default
func resolveReporting(o *Options, v Values) error {
	for _, name := range []string{OptReportNBest, OptReportNHits} {
		if n := v.Int(name); n < 0 {
			return invalid(RuleReporting, name, n, "must be positive")
		}
	}

	var active []string
	for _, name := range ReportingOptions {
		switch x := v[name].(type) {
		case bool:
			if x {
				active = append(active, name)
			}
		case int:
			if x != 0 {
				active = append(active, name)
			}
		}
	}

	switch len(active) {
	case 0:
		o.Report = DefaultReport(o.Mode)
		return nil
	case 1:
	default:
		return invalid(RuleReporting, strings.Join(active, ", --"), nil, "mutually exclusive reporting policy")
	}

	switch active[0] {
	case OptReportAll:
		o.Report = ReportPolicy{Kind: ReportAll}
	case OptReportBest:
		o.Report = ReportPolicy{Kind: ReportBest}
	case OptReportNBest:
		o.Report = ReportPolicy{Kind: ReportNBest, N: v.Int(OptReportNBest)}
	case OptReportNHits:
		o.Report = ReportPolicy{Kind: ReportNHits, N: v.Int(OptReportNHits)}
	}
	return nil
}

var (
	inputFormats  = []string{"fastq", "bam"}
	outputFormats = []string{"sam", "bam"}
)

func checkFormats(o *Options, _ Values) error {
	if !slices.Contains(inputFormats, o.Input.Format) {
		return invalid(RuleFormat, OptInputFormat, o.Input.Format, "expected one of %s", strings.Join(inputFormats, ", "))
	}
	if !slices.Contains(outputFormats, o.Output.Format) {
		return invalid(RuleFormat, OptOutputFormat, o.Output.Format, "expected one of %s", strings.Join(outputFormats, ", "))
	}
	if i := strings.IndexFunc(strings.ToUpper(o.Input.Adapter), func(r rune) bool {
		return !strings.ContainsRune("ACGTN", r)
	}); i >= 0 {
		return invalid(RuleFormat, OptAdapter, o.Input.Adapter, "invalid base at position %d", i+1)
	}
	if o.General.LogLevel < 1 || o.General.LogLevel > 5 {
		return invalid(RuleFormat, OptLogLevel, o.General.LogLevel, "must be between 1 and 5")
	}
	return nil
}
