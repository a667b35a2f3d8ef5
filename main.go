package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/cneill/drum/pkg/drum"
)

// version is set via -ldflags at release time.
var version = "dev" //nolint:gochecknoglobals

func run(ctx context.Context) error {
	cmd := cli.Command{
		Name:    "drum",
		Usage:   "Play a grid of drum pads from the keyboard or mouse.",
		Version: version,
		Flags:   allFlags(),
		Before:  setupGlobals,
		Action:  playDrum,
		Commands: []*cli.Command{
			{
				Name:   "kit",
				Usage:  "List the pads in the current kit.",
				Flags:  kitCommandFlags(),
				Action: listKit,
			},
		},
	}

	if err := cmd.Run(ctx, os.Args); err != nil {
		return fmt.Errorf("command: %w", err)
	}

	return nil
}

func setupGlobals(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	color.NoColor = color.NoColor || cmd.Bool(FlagNoColor)

	if cmd.Bool(FlagDebug) {
		if err := setupLogging(); err != nil {
			return ctx, fmt.Errorf("failed to set up logging: %w", err)
		}
	} else {
		// The pad grid owns the terminal, so logs are discarded unless they go to a file.
		slog.SetDefault(slog.New(slog.DiscardHandler))
	}

	return ctx, nil
}

func drumOpts(cmd *cli.Command) *drum.Opts {
	opts := &drum.Opts{
		ConfigPath:   cmd.String(FlagConfig),
		Columns:      cmd.Int(FlagColumns),
		NoColor:      cmd.Bool(FlagNoColor),
		SampleRate:   cmd.Int(FlagSampleRate),
		FetchTimeout: cmd.Duration(FlagFetchTimeout),
	}

	if cmd.IsSet(FlagVolume) {
		volume := cmd.Int(FlagVolume)
		opts.Volume = &volume
	}

	return opts
}

func playDrum(ctx context.Context, cmd *cli.Command) error {
	drum, err := drum.New(drumOpts(cmd))
	if err != nil {
		return fmt.Errorf("failed to set up drum: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM)
	defer stop()

	if err := drum.Run(ctx); err != nil {
		return fmt.Errorf("drum run error: %w", err)
	}

	return nil
}

func listKit(ctx context.Context, cmd *cli.Command) error {
	drumKit, err := drum.New(drumOpts(cmd))
	if err != nil {
		return fmt.Errorf("failed to load kit: %w", err)
	}

	var loaded func(string) bool

	if cmd.Bool(FlagCheck) {
		drumKit.LoadSamples(ctx)
		loaded = drumKit.Loaded
	}

	fmt.Print(drum.KitListing(drumKit.Registry(), loaded))

	return nil
}

var logFile *os.File //nolint:gochecknoglobals

func setupLogging() error {
	logFileName := "drum_debug.log"

	file, err := os.OpenFile(logFileName, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	logFile = file

	sync.OnceFunc(func() {
		handler := slog.NewJSONHandler(logFile, &slog.HandlerOptions{AddSource: true, Level: slog.LevelDebug})
		slog.SetDefault(slog.New(handler))
	})()

	return nil
}

func main() {
	err := run(context.Background())

	if logFile != nil {
		logFile.Close()
	}

	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}
}
