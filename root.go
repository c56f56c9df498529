package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/chaos-io/bgclear/batch"
	"github.com/chaos-io/bgclear/config"
	"github.com/chaos-io/bgclear/progress"
	"github.com/chaos-io/bgclear/transparent"
	"github.com/chaos-io/bgclear/util"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

type rootFlags struct {
	config     string
	threshold  int
	workers    int
	maxSize    int
	logLevel   string
	logFormat  string
	noProgress bool
}

func newRootCommand() *cobra.Command {
	var flags rootFlags

	rootCmd := &cobra.Command{
		Use:   "bgclear [input_dir output_dir]",
		Short: "Make near-white image backgrounds transparent",
		Long: "bgclear walks input_dir recursively, turns every pixel whose red, green and\n" +
			"blue values all exceed the threshold into transparent white, and writes\n" +
			"transparent_<name>.png files into output_dir.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("need both input_dir and output_dir, or neither (got %d args)", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, &flags, args)
			if err != nil {
				return err
			}
			logger, err := util.NewLogger(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
			if err != nil {
				return err
			}
			slog.SetDefault(logger)

			return run(cmd.Context(), cmd, cfg, logger, !flags.noProgress)
		},
	}

	f := rootCmd.Flags()
	f.StringVarP(&flags.config, "config", "c", "", "Configuration file path (TOML)")
	f.IntVarP(&flags.threshold, "threshold", "t", transparent.DefaultThreshold, "RGB value every channel must exceed to count as background (0-255)")
	f.IntVarP(&flags.workers, "workers", "w", 0, "Concurrent images (default: logical CPUs)")
	f.IntVar(&flags.maxSize, "max-size", 0, "Downscale so the longest edge is at most this many pixels (0 keeps size)")
	f.StringVar(&flags.logLevel, "log-level", "", "Log level: debug | info | warn | error")
	f.StringVar(&flags.logFormat, "log-format", "", "Log format: console | json")
	f.BoolVar(&flags.noProgress, "no-progress", false, "Do not display progress")

	return rootCmd
}

// resolveConfig layers defaults, the config file, explicitly set flags and
// positional directories, then validates the result.
func resolveConfig(cmd *cobra.Command, flags *rootFlags, args []string) (*config.Config, error) {
	cfg, err := config.Load(flags.config)
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("threshold") {
		cfg.Threshold = flags.threshold
	}
	if changed("workers") {
		cfg.Workers = flags.workers
	}
	if changed("max-size") {
		cfg.MaxSize = flags.maxSize
	}
	if changed("log-level") {
		cfg.Logging.Level = flags.logLevel
	}
	if changed("log-format") {
		cfg.Logging.Format = flags.logFormat
	}
	if len(args) == 2 {
		cfg.InputDir = args[0]
		cfg.OutputDir = args[1]
	}
	cfg.Normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	inAbs, err := config.ResolveDir(cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("resolve input directory: %w", err)
	}
	outAbs, err := config.ResolveDir(cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("resolve output directory: %w", err)
	}
	if err := cfg.ValidatePaths(inAbs, outAbs); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, showProgress bool) error {
	defer util.Trace("make transparent")()

	paths, err := batch.Enumerate(cfg.InputDir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		logger.Warn("no files found", "input_dir", cfg.InputDir)
	}

	remover, err := transparent.NewWhiteRemBG(cfg.Threshold)
	if err != nil {
		return err
	}
	t := transparent.NewTransformer(cfg.OutputDir, remover)
	t.MaxSize = cfg.MaxSize
	t.Logger = logger

	runner := batch.NewRunner(t, batch.Options{
		OutputDir: cfg.OutputDir,
		Workers:   cfg.Workers,
		Progress:  newReporter(cmd.ErrOrStderr(), logger, len(paths), showProgress),
		Logger:    logger,
	})

	report, err := runner.Run(ctx, paths)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderSummary(report))

	if err := ctx.Err(); err != nil {
		return err
	}
	if n := report.FailedCount(); n > 0 {
		return fmt.Errorf("%d of %d images failed", n, report.Total)
	}
	return nil
}

// newReporter draws a bar on a terminal and logs sampled progress otherwise.
func newReporter(w io.Writer, logger *slog.Logger, total int, show bool) batch.Reporter {
	if !show || total == 0 {
		return nil
	}
	if f, ok := w.(*os.File); ok && progress.IsTerminal(f) {
		return progress.NewBar(f, total)
	}
	return progress.NewLog(logger, 10)
}
