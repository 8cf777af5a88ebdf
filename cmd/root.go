package cmd

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hpg-aligner/hpg-aligner/options"
	"github.com/hpg-aligner/hpg-aligner/ui"
)

// Version information set by goreleaser
var (
	version = options.ToolVersion
	commit  = "none"
	date    = "unknown"
)

// NewRootCmd builds the command tree. Flags are bound per call so each
// execution starts from a clean flag state.
func NewRootCmd() *cobra.Command {
	cfg := &Config{}

	rootCmd := &cobra.Command{
		Use:           options.ToolBin,
		Short:         "Configuration front end of the " + options.ToolName + " short read aligner",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(options.ToolName + " {{.Version}} (" + commit + ", " + date + ")\n")

	rootCmd.PersistentFlags().BoolVar(&cfg.Verbose, "verbose", false, "show verbose output")
	rootCmd.PersistentFlags().BoolVar(&cfg.DryRun, "dry-run", false, "validate and display options without writing files")

	for _, spec := range options.Modes {
		rootCmd.AddCommand(newModeCmd(spec, cfg))
	}
	return rootCmd
}

// Run executes the command tree with args, writing to out
func Run(ctx context.Context, args []string, out io.Writer) error {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	ui.SetOutput(out)
	return rootCmd.ExecuteContext(ctx)
}

func Execute(ctx context.Context) {
	if err := Run(ctx, os.Args[1:], os.Stdout); err != nil {
		ui.SetOutput(os.Stderr)
		var ve *options.ValidationError
		switch {
		case errors.As(err, &ve):
			ui.ErrorMsg("Invalid options", err, "run with --help to list the options of this mode")
		default:
			ui.ErrorMsg("Failed to resolve options", err)
		}
		os.Exit(1)
	}
}
