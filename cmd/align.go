package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/hpg-aligner/hpg-aligner/logger"
	"github.com/hpg-aligner/hpg-aligner/options"
	"github.com/hpg-aligner/hpg-aligner/parser"
	"github.com/hpg-aligner/hpg-aligner/report"
	"github.com/hpg-aligner/hpg-aligner/ui"
)

func newModeCmd(spec options.ModeSpec, cfg *Config) *cobra.Command {
	schema, err := options.BuildSchema(spec.Mode)
	if err != nil {
		// Modes only lists modes that have a schema
		panic(err)
	}

	modeCmd := &cobra.Command{
		Use:     spec.Command,
		Aliases: spec.Aliases,
		Short:   spec.Short,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return &options.ParseError{Token: args[0], Err: errors.New("unexpected positional argument")}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAlign(cmd, schema, cfg)
		},
	}

	modeCmd.Flags().SortFlags = false
	parser.Bind(schema, modeCmd.Flags())
	for _, d := range schema.Definitions {
		if d.Kind == options.Path {
			_ = modeCmd.MarkFlagFilename(d.Name)
		}
	}
	modeCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return parser.NewParseError(err)
	})
	modeCmd.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		report.Usage(cmd.OutOrStdout(), schema, cmd.InheritedFlags())
	})
	return modeCmd
}

func runAlign(cmd *cobra.Command, schema *options.Schema, cfg *Config) error {
	start := time.Now()

	// Setup verbose mode
	ui.SetVerbose(cfg.Verbose)
	if cfg.Verbose {
		logger.SetLogger(logger.New(slog.LevelDebug))
	}

	// Step 1: Command line
	ui.Step(1, 4, "Parsing command line")
	raw, diags, err := parser.FromFlags(schema, cmd.Flags())
	if err != nil {
		return err
	}
	for _, d := range diags {
		ui.WarnMsg(d)
	}
	ui.Verbosef("%s given on the command line", ui.Count(len(raw), "option"))

	// Step 2: Config file overlay
	ui.Step(2, 4, "Reading config file")
	if path := raw.String(options.OptConfig); path != "" {
		before := len(raw)
		raw, err = parser.ReadOverlay(path, schema, raw)
		if err != nil {
			return err
		}
		ui.Detail(fmt.Sprintf("%s: %s applied", ui.Primary.Render(path), ui.Count(len(raw)-before, "option")))
	} else {
		ui.Detail("no config file given")
	}

	// Step 3: Merge with defaults and validate
	ui.Step(3, 4, "Validating options")
	defaults, err := options.Defaults(schema.Mode)
	if err != nil {
		return err
	}
	opts, err := options.Resolve(schema.Mode, raw, defaults)
	if err != nil {
		return err
	}
	if !cfg.Verbose {
		logger.SetLogger(logger.New(logger.LevelFromCode(opts.General.LogLevel)))
	}
	logger.Info("options resolved", "mode", opts.Mode.String(), "run", opts.Provenance.RunID)

	ui.Println()
	if err := report.Display(cmd.OutOrStdout(), opts); err != nil {
		return err
	}
	ui.Println()

	if cfg.DryRun {
		ui.SuccessMsg(fmt.Sprintf("Options valid, dry run wrote nothing (%s)", ui.FormatDuration(time.Since(start))))
		return nil
	}

	// Step 4: Provenance file
	ui.Step(4, 4, "Saving options")
	path := opts.Output.OptionsPath()
	if err := report.SaveFile(path, opts); err != nil {
		return err
	}
	ui.SuccessMsg(fmt.Sprintf("Options saved to %s (%s)", ui.Primary.Render(path), ui.FormatDuration(time.Since(start))))
	return nil
}
