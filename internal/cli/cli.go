package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/specialistvlad/weasel/internal/app"
	"github.com/specialistvlad/weasel/internal/config"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// flagValues holds the destinations of every flag.
type flagValues struct {
	length       int
	minBlock     int
	mutationRate float64
	spaceProb    float64
	sleep        float64
	dict         string
	seed         uint64
	strategy     string
	color        string
	noClear      bool
	configPath   string

	logFormat string
	logLevel  string

	metricsPort int

	publishURL       string
	publishEvent     string
	publishNamespace string
}

// Parse processes command-line arguments. It returns a validated Config, a
// boolean indicating if the program should exit cleanly, or an ExitError.
// Explicit flags win over the config file, which wins over defaults.
func Parse(ctx context.Context, args []string, output io.Writer, loaders config.Loaders) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("weasel", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
weasel - evolves random letters into a line of dictionary words.

Words are found and locked in place; everything else keeps mutating until
every token is a word. Press Ctrl-C to stop early.

Usage:
  weasel [options]

Options:
`)
		flagSet.PrintDefaults()
	}

	d := app.Defaults()
	var v flagValues
	flagSet.IntVar(&v.length, "n", d.Length, "Length of the sequence in cells.")
	flagSet.IntVar(&v.minBlock, "min-block", d.MinBlock, "Minimum letters in a run; shorter words are ignored.")
	flagSet.Float64Var(&v.mutationRate, "mutrate", d.MutationRate, "Probability that an unlocked cell mutates each generation.")
	flagSet.Float64Var(&v.spaceProb, "space-prob", d.SpaceProb, "Probability of a separator in the initial sequence.")
	flagSet.Float64Var(&v.sleep, "sleep", d.Delay.Seconds(), "Seconds between frames. 0 runs as fast as possible.")
	flagSet.StringVar(&v.dict, "dict", d.DictPath, "Word list file, or a directory of .txt word lists.")
	flagSet.Uint64Var(&v.seed, "seed", 0, "Random seed. Unset picks one and logs it.")
	flagSet.StringVar(&v.strategy, "strategy", d.Strategy, "Mutation strategy. Options: 'repair' or 'length'.")
	flagSet.StringVar(&v.color, "color", d.Color, "Highlight locked words. Options: 'auto', 'always' or 'never'.")
	flagSet.BoolVar(&v.noClear, "no-clear", d.NoClear, "Do not clear the screen between frames.")
	flagSet.StringVar(&v.configPath, "config", "", "Optional .hcl, .yaml or .yml settings file.")
	flagSet.StringVar(&v.logFormat, "log-format", d.LogFormat, "Log output format. Options: 'text' or 'json'.")
	flagSet.StringVar(&v.logLevel, "log-level", d.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flagSet.IntVar(&v.metricsPort, "metrics-port", d.MetricsPort, "Port for the /health and /metrics server. 0 is disabled.")
	flagSet.StringVar(&v.publishURL, "publish-url", d.PublishURL, "socket.io server to stream frames to. Empty is disabled.")
	flagSet.StringVar(&v.publishEvent, "publish-event", d.PublishEvent, "Event name used when publishing frames.")
	flagSet.StringVar(&v.publishNamespace, "publish-namespace", d.PublishNamespace, "socket.io namespace used when publishing frames.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if flagSet.NArg() > 0 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected arguments: %s", strings.Join(flagSet.Args(), " "))}
	}
	slog.Debug("Arguments parsed successfully.")

	set := make(map[string]bool)
	flagSet.Visit(func(f *flag.Flag) { set[f.Name] = true })

	var seed *uint64
	if set["seed"] {
		seed = &v.seed
	}

	if v.configPath != "" {
		s, err := config.Load(ctx, v.configPath, loaders)
		if err != nil {
			return nil, false, &ExitError{Code: 1, Message: err.Error()}
		}
		v.merge(s, set)
		if !set["seed"] && s.Seed != nil {
			seed = s.Seed
		}
		slog.Debug("Config file merged.", "path", v.configPath)
	}

	cfg, err := app.NewConfig(app.Config{
		Length:           v.length,
		MinBlock:         v.minBlock,
		MutationRate:     v.mutationRate,
		SpaceProb:        v.spaceProb,
		Delay:            time.Duration(v.sleep * float64(time.Second)),
		DictPath:         v.dict,
		Seed:             seed,
		Strategy:         strings.ToLower(v.strategy),
		Color:            strings.ToLower(v.color),
		NoClear:          v.noClear,
		LogFormat:        strings.ToLower(v.logFormat),
		LogLevel:         strings.ToLower(v.logLevel),
		MetricsPort:      v.metricsPort,
		PublishURL:       v.publishURL,
		PublishEvent:     v.publishEvent,
		PublishNamespace: v.publishNamespace,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", cfg)
	return cfg, false, nil
}

// merge copies file settings into v for every flag not set on the command line.
func (v *flagValues) merge(s *config.Settings, set map[string]bool) {
	fill(&v.length, s.Length, set["n"])
	fill(&v.minBlock, s.MinBlock, set["min-block"])
	fill(&v.mutationRate, s.MutationRate, set["mutrate"])
	fill(&v.spaceProb, s.SpaceProb, set["space-prob"])
	fill(&v.sleep, s.Sleep, set["sleep"])
	fill(&v.dict, s.Dict, set["dict"])
	fill(&v.strategy, s.Strategy, set["strategy"])
	fill(&v.color, s.Color, set["color"])
	fill(&v.logFormat, s.LogFormat, set["log-format"])
	fill(&v.logLevel, s.LogLevel, set["log-level"])
	fill(&v.metricsPort, s.MetricsPort, set["metrics-port"])
	fill(&v.publishURL, s.PublishURL, set["publish-url"])
	fill(&v.publishEvent, s.PublishEvent, set["publish-event"])
	fill(&v.publishNamespace, s.PublishNamespace, set["publish-namespace"])
}

func fill[T any](dst *T, from *T, explicit bool) {
	if from != nil && !explicit {
		*dst = *from
	}
}
