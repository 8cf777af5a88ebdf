package cmd

// Config holds the run-level settings that are not aligner options
type Config struct {
	// Output behavior
	DryRun  bool // resolve and display only, write nothing
	Verbose bool
}
