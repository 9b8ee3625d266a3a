// Command falconkit exercises the Falcon kernel from the command line:
// hashing to a point, compressing coefficient vectors, parsing signatures
// and drawing discrete Gaussian samples.
package main

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

const (
	flagConfig   = "config"
	flagLogLevel = "loglevel"
	flagParams   = "params"
	flagSeed     = "seed"
	flagPRNG     = "prng"
	flagSamples  = "samples"
	flagSigma    = "sigma"
	flagMu       = "mu"
	flagMessage  = "message"
	flagSalt     = "salt"
	flagPlot     = "plot"
	flagN        = "n"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "falconkit",
		Usage: "Falcon signature kernel tools",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Usage:   "YAML file with default settings",
				EnvVars: []string{"FALCONKIT_CONFIG"},
			},
			&cli.StringFlag{
				Name:    flagLogLevel,
				Usage:   "Log level: debug, info, warn, error",
				Value:   "info",
				EnvVars: []string{"FALCONKIT_LOGLEVEL"},
			},
			&cli.StringFlag{
				Name:  flagParams,
				Usage: "Parameter set: falcon512 or falcon1024",
			},
		},
		Commands: []*cli.Command{
			hashToPointCommand(),
			compressCommand(),
			decompressCommand(),
			parseCommand(),
			sampleCommand(),
			paramsCommand(),
		},
		ExitErrHandler: func(c *cli.Context, err error) {
			if err != nil {
				log := createLogger(c)
				log.Error().Err(err).Msg("command failed")
			}
		},
	}
}

func createLogger(c *cli.Context) *zerolog.Logger {
	level, err := zerolog.ParseLevel(c.String(flagLogLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}
	var out io.Writer = os.Stderr
	if c.App != nil && c.App.ErrWriter != nil {
		out = c.App.ErrWriter
	}
	writer := zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    true,
		TimeFormat: time.RFC3339,
	}
	log := zerolog.New(writer).With().Timestamp().Logger().Level(level)
	return &log
}
