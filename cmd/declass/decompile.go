package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/declass/declass/pkg/declass/config"
	"github.com/declass/declass/pkg/declass/decomp"
	"github.com/declass/declass/pkg/declass/logging"
	"github.com/declass/declass/pkg/declass/options"
	"github.com/declass/declass/pkg/declass/pipeline"
	"github.com/declass/declass/pkg/declass/sink"
)

// elapsedRound is the display granularity for run durations.
const elapsedRound = time.Millisecond

// runDecompile is the main command handler.
func runDecompile(cmd *cobra.Command, args []string) error {
	archivePath, err := resolveArchive(args[0])
	if err != nil {
		return err
	}

	if err := initLogging(); err != nil {
		return err
	}
	defer logging.Close()

	opts := &options.DecompilerOptions{
		SkipResources:             viper.GetBool("skip_resources"),
		DecompileInnerArchives:    viper.GetBool("inner_archives"),
		ParallelProcessingAllowed: viper.GetBool("parallel"),
		Workers:                   viper.GetInt("workers"),
		MaxDepth:                  viper.GetInt("max_depth"),
		Include:                   viper.GetStringSlice("include"),
		Exclude:                   viper.GetStringSlice("exclude"),
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	command := viper.GetStringSlice("decompiler")
	if len(command) == 0 {
		command = config.DefaultDecompiler
	}
	dec, err := decomp.NewExec(command, opts)
	if err != nil {
		return err
	}

	out, err := buildSink(archivePath)
	if err != nil {
		return err
	}

	pipe, err := pipeline.New(dec, out)
	if err != nil {
		return err
	}

	// Cancel on Ctrl-C; an in-flight class finishes, the rest is skipped.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := pipe.Run(ctx, archivePath)
	if err != nil {
		var openErr *pipeline.ArchiveOpenError
		if errors.As(err, &openErr) {
			printError("cannot open archive: %v", openErr.Err)
			return err
		}
		return err
	}

	printSummary(report)
	return nil
}

// resolveArchive expands and validates the archive path argument.
func resolveArchive(arg string) (string, error) {
	expanded, err := config.ExpandPath(arg)
	if err != nil {
		return "", fmt.Errorf("failed to expand path: %w", err)
	}

	absPath, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("archive does not exist: %s", absPath)
		}
		return "", fmt.Errorf("cannot access archive: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("path is a directory, not an archive: %s", absPath)
	}

	return absPath, nil
}

// buildSink selects the output sink from flags: --print wins, then
// --zip, then a directory (explicit or derived from the archive name).
func buildSink(archivePath string) (sink.Sink, error) {
	if viper.GetBool("print") {
		return sink.NewPrint(os.Stdout), nil
	}
	if zipPath := viper.GetString("output_zip"); zipPath != "" {
		return sink.NewZip(zipPath), nil
	}

	dir := viper.GetString("output_dir")
	if dir == "" {
		dir = archivePath + config.DefaultOutputSuffix
	}
	return sink.NewDir(dir), nil
}

// initLogging configures the logging system from the config file and
// the --verbose flag.
func initLogging() error {
	fileCfg, err := config.Load()
	if err != nil {
		return err
	}
	return logging.Init(buildLoggingConfig(fileCfg, getVerbose()))
}

// buildLoggingConfig merges the loaded configuration over the logging
// defaults. Verbose mode forces debug output on both targets.
func buildLoggingConfig(fileCfg *config.Config, verbose bool) logging.Config {
	cfg := logging.DefaultConfig()
	if fileCfg.Logging.Level != "" {
		cfg.Level = fileCfg.Logging.Level
	}
	if fileCfg.Logging.Path != "" {
		cfg.Path = fileCfg.Logging.Path
	}
	cfg.ConsoleLevel = fileCfg.Logging.ConsoleLevel
	cfg.Components = fileCfg.Logging.Components
	if verbose {
		cfg.Level = "debug"
		cfg.ConsoleLevel = "debug"
	}
	return cfg
}

// printSummary prints a human-readable run summary.
func printSummary(r *pipeline.Report) {
	printInfo("Decompiled %d of %d classes (%s bytecode) in %s",
		r.Dispatched,
		r.ClassesCached,
		humanize.IBytes(uint64(r.BytesCached)),
		r.Elapsed.Round(elapsedRound))
	if r.Resources > 0 {
		printInfo("Copied %d resources", r.Resources)
	}
	if r.NestedArchives > 0 {
		printInfo("Processed %d nested archives", r.NestedArchives)
	}
	failures := r.EntryFailures + r.DecompileFailures + r.NestedFailures
	if failures > 0 {
		printInfo("%d failures (see log for details)", failures)
	}
}
