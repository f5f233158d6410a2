package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
)

// ExitError carries the process exit code for a failed run.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// Config is the parsed command line.
type Config struct {
	Grammar     string
	File        string
	Generations int
	Strict      bool
	Print       bool

	// generationsSet reports whether -n was given explicitly.
	generationsSet bool

	// Angle and Step are only applied when set on the command line.
	AngleDegrees *float64
	StepSize     *float64

	SVGPath     string
	Width       int
	Height      int
	MaxSegments int

	ChartPath string
	Serve     string
	DumpYAML  string

	LogLevel   string
	LogFormat  string
	CPUProfile string
}

func (c *Config) validate() error {
	if c.Grammar == "" && c.File == "" {
		return errors.New("one of -grammar or -file is required")
	}
	if c.Grammar != "" && c.File != "" {
		return errors.New("-grammar and -file are mutually exclusive")
	}
	if c.Generations < 0 {
		return fmt.Errorf("-n must not be negative, got %d", c.Generations)
	}
	if c.StepSize != nil && !(*c.StepSize > 0) {
		return fmt.Errorf("-step must be positive, got %v", *c.StepSize)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("-width and -height must be positive, got %dx%d", c.Width, c.Height)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return errors.New("invalid log-format: must be 'text' or 'json'")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}
	return nil
}

// parseArgs returns the config, whether the program should exit cleanly
// right away, or an ExitError.
func parseArgs(args []string, output io.Writer) (*Config, bool, error) {
	flagSet := flag.NewFlagSet("lsystem", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(output, `
lsystem - grow an L-system grammar and draw it with a turtle.

Usage:
  lsystem [options] -grammar 'F; F -> F[+F]F[-F]F;'
  lsystem [options] -file plant.yaml

Options:
`)
		flagSet.PrintDefaults()
	}

	cfg := &Config{}
	flagSet.StringVar(&cfg.Grammar, "grammar", "", "Grammar text: an axiom followed by rules, each terminated by ';'.")
	flagSet.StringVar(&cfg.File, "file", "", "Grammar file, or a YAML document when it ends in .yaml/.yml.")
	flagSet.IntVar(&cfg.Generations, "n", 4, "Generation to draw.")
	flagSet.BoolVar(&cfg.Strict, "strict", false, "Reject text after the last well-formed rule.")
	flagSet.BoolVar(&cfg.Print, "print", false, "Print every generation up to -n.")
	angle := flagSet.Float64("angle", 45, "Turn increment in degrees.")
	step := flagSet.Float64("step", 1, "Step length.")
	flagSet.StringVar(&cfg.SVGPath, "svg", "", "Write the drawing of generation -n to this SVG file.")
	flagSet.IntVar(&cfg.Width, "width", 800, "SVG width in pixels.")
	flagSet.IntVar(&cfg.Height, "height", 800, "SVG height in pixels.")
	flagSet.IntVar(&cfg.MaxSegments, "max-segments", 0, "Abort drawing after this many segments. 0 is unlimited.")
	flagSet.StringVar(&cfg.ChartPath, "chart", "", "Write an HTML growth chart of generations 0..n to this file.")
	flagSet.StringVar(&cfg.Serve, "serve", "", "Serve the growth chart on this address, e.g. ':8081'.")
	flagSet.StringVar(&cfg.DumpYAML, "dump-yaml", "", "Write the effective grammar and turtle settings as a YAML document.")
	flagSet.StringVar(&cfg.LogLevel, "log-level", "info", "Logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flagSet.StringVar(&cfg.LogFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	flagSet.StringVar(&cfg.CPUProfile, "cpuprofile", "", "Write a CPU profile to this file.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "angle":
			cfg.AngleDegrees = angle
		case "step":
			cfg.StepSize = step
		case "n":
			cfg.generationsSet = true
		}
	})

	if cfg.Grammar == "" && cfg.File == "" && flagSet.NArg() > 0 {
		cfg.File = flagSet.Arg(0)
	}
	if cfg.Grammar == "" && cfg.File == "" {
		flagSet.Usage()
		return nil, true, nil
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if err := cfg.validate(); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	return cfg, false, nil
}
