package main

import (
	"time"

	"github.com/urfave/cli/v3"

	"github.com/cneill/drum/pkg/audio"
)

func allFlags() []cli.Flag {
	flags := make([]cli.Flag, 0, len(generalFlags())+len(kitFlags())+len(audioFlags()))
	flags = append(flags, generalFlags()...)
	flags = append(flags, kitFlags()...)
	flags = append(flags, audioFlags()...)

	return flags
}

const (
	FlagDebug   = "debug"
	EnvDebug    = "DRUM_DEBUG"
	FlagNoColor = "no-color"
	EnvNoColor  = "DRUM_NO_COLOR"
)

func generalFlags() []cli.Flag {
	category := "general"

	return []cli.Flag{
		&cli.BoolFlag{
			Name:     FlagDebug,
			Aliases:  []string{"D"},
			Category: category,
			Sources:  cli.EnvVars(EnvDebug),
			Value:    false,
			Usage:    "Write debug logs to a file (drum_debug.log) in current directory.",
		},
		&cli.BoolFlag{
			Name:     FlagNoColor,
			Aliases:  []string{"C"},
			Category: category,
			Sources:  cli.EnvVars(EnvNoColor),
			Value:    false,
			Usage:    "Disable coloration.",
		},
	}
}

const (
	FlagConfig  = "config"
	EnvConfig   = "DRUM_CONFIG"
	FlagVolume  = "volume"
	EnvVolume   = "DRUM_VOLUME"
	FlagColumns = "columns"
	EnvColumns  = "DRUM_COLUMNS"
)

func kitFlags() []cli.Flag {
	category := "kit"

	return []cli.Flag{
		&cli.StringFlag{
			Name:      FlagConfig,
			Aliases:   []string{"c"},
			Category:  category,
			Sources:   cli.EnvVars(EnvConfig),
			TakesFile: true,
			Usage:     "The kit `FILE` to load (default: $HOME/.config/drum/config.toml, or the built-in kit). Relative sample paths in the kit resolve against its directory.",
		},
		&cli.IntFlag{
			Name:     FlagVolume,
			Aliases:  []string{"v"},
			Category: category,
			Sources:  cli.EnvVars(EnvVolume),
			Usage:    "Starting volume `PERCENT` (0-100), overriding the kit file.",
		},
		&cli.IntFlag{
			Name:     FlagColumns,
			Category: category,
			Sources:  cli.EnvVars(EnvColumns),
			Usage:    "Number of pad `COLUMNS` in the grid, overriding the kit file.",
		},
	}
}

const (
	FlagSampleRate   = "sample-rate"
	EnvSampleRate    = "DRUM_SAMPLE_RATE"
	FlagFetchTimeout = "fetch-timeout"
	EnvFetchTimeout  = "DRUM_FETCH_TIMEOUT"
)

func audioFlags() []cli.Flag {
	category := "audio"

	return []cli.Flag{
		&cli.IntFlag{
			Name:     FlagSampleRate,
			Category: category,
			Sources:  cli.EnvVars(EnvSampleRate),
			Value:    int(audio.DefaultSampleRate),
			Usage:    "Output sample `RATE` in Hz; samples are resampled to it.",
		},
		&cli.DurationFlag{
			Name:     FlagFetchTimeout,
			Category: category,
			Sources:  cli.EnvVars(EnvFetchTimeout),
			Value:    10 * time.Second,
			Usage:    "How long to wait for each remote sample download.",
		},
	}
}

const FlagCheck = "check"

// kitCommandFlags are only accepted by the kit subcommand.
func kitCommandFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  FlagCheck,
			Usage: "Download and decode every sample, marking the ones that fail.",
		},
	}
}
