package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/framepack/framepack/internal/application"
	"github.com/framepack/framepack/internal/config"
	"github.com/framepack/framepack/internal/logging"
)

func main() {
	kingpinApp := kingpin.New("framepack", "Copies images from a source folder into numbered destination folders, randomly shuffled, with per-folder file and size caps")
	configFile := kingpinApp.Flag("config", "Path to YAML configuration file").String()
	src := kingpinApp.Flag("src", "Source folder holding the images").String()
	dst := kingpinApp.Flag("dst", "Destination folder for the numbered subfolders (must be empty)").String()
	maxFiles := kingpinApp.Flag("max-files", "Maximum number of files per folder").Int()
	maxBytes := kingpinApp.Flag("max-bytes", "Maximum total size per folder (e.g. 4GiB, 500MB, or a byte count)").String()
	extensions := kingpinApp.Flag("ext", "Comma-separated accepted file extensions").String()
	seed := kingpinApp.Flag("seed", "Shuffle seed for a reproducible layout").String()
	copyRate := kingpinApp.Flag("copy-rate", "Throttle copies to this many files per second (0 = unlimited)").Default("-1").Float64()
	dryRun := kingpinApp.Flag("dry-run", "Plan and report without copying anything").Bool()
	verbose := kingpinApp.Flag("verbose", "Enable debug logging").Short('v').Bool()

	kingpin.MustParse(kingpinApp.Parse(os.Args[1:]))

	overrides := &config.CLIOverrides{
		ConfigFile: *configFile,
		DryRun:     *dryRun,
		Verbose:    *verbose,
	}
	if *src != "" {
		overrides.Source = src
	}
	if *dst != "" {
		overrides.Destination = dst
	}
	if *maxFiles > 0 {
		overrides.MaxFiles = maxFiles
	}
	if *maxBytes != "" {
		overrides.MaxBytes = maxBytes
	}
	if *extensions != "" {
		overrides.Extensions = extensions
	}
	if *seed != "" {
		overrides.Seed = seed
	}
	if *copyRate >= 0 {
		overrides.CopyRate = copyRate
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := application.New(cfg, logger)
	report, err := app.Run(ctx)
	if err != nil {
		logger.Fatal("run failed", zap.Error(err))
	}

	fmt.Println(summaryTable(report))
	fmt.Println(summaryLine(report))
}
