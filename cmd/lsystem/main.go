package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"runtime/pprof"
	"strings"

	lsystem "github.com/viktordanov/lsystem-turtle"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(out, logW io.Writer, args []string) error {
	cfg, shouldExit, err := parseArgs(args, out)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	log := newLogger(cfg.LogLevel, cfg.LogFormat, logW)

	if cfg.CPUProfile != "" {
		f, err := os.Create(cfg.CPUProfile)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	doc, err := loadDocument(cfg)
	if err != nil {
		return err
	}
	ls, err := doc.LSystem(cfg.Strict)
	if err != nil {
		return fmt.Errorf("%s: %w", sourceName(cfg), err)
	}
	log.Debug("Parsed grammar.", "axiom", ls.Axiom().String(), "rules", len(ls.Rules()))

	if cfg.DumpYAML != "" {
		if err := writeFile(cfg.DumpYAML, doc.Encode); err != nil {
			return err
		}
		log.Info("Wrote YAML document.", "path", cfg.DumpYAML)
	}

	if cfg.Print {
		i := 0
		for word := range ls.Generations() {
			fmt.Fprintf(out, "%d: %s\n", i, word)
			if i++; i > doc.Generations {
				break
			}
		}
	}

	word := ls.Iterate(doc.Generations)
	log.Info("Grew word.", "generation", doc.Generations, "instructions", word.Len(), "depth", word.Depth())

	if cfg.SVGPath != "" {
		turtle := doc.Turtle.Config(lsystem.DefaultTurtleConfig())
		canvas := lsystem.NewSVGCanvas(cfg.Width, cfg.Height)
		canvas.MaxSegments = cfg.MaxSegments
		canvas.Logger = log
		if err := turtle.Draw(canvas, word); err != nil {
			return fmt.Errorf("draw generation %d: %w", doc.Generations, err)
		}
		if err := writeFile(cfg.SVGPath, canvas.Render); err != nil {
			return err
		}
		log.Info("Wrote SVG.", "path", cfg.SVGPath, "segments", canvas.Len())
	}

	if cfg.ChartPath != "" {
		growth := ls.AnalyseGrowth(doc.Generations + 1)
		if err := writeFile(cfg.ChartPath, growth.RenderChart); err != nil {
			return err
		}
		log.Info("Wrote growth chart.", "path", cfg.ChartPath, "avg_ratio", growth.AverageRatio())
	}

	if cfg.Serve != "" {
		return ls.ServeGrowth(cfg.Serve, doc.Generations+1, log)
	}
	return nil
}

// loadDocument merges the grammar source with command line overrides.
func loadDocument(cfg *Config) (*lsystem.Document, error) {
	doc := &lsystem.Document{Generations: cfg.Generations}

	switch ext := strings.ToLower(filepath.Ext(cfg.File)); {
	case cfg.Grammar != "":
		doc.Grammar = cfg.Grammar
	case ext == ".yaml" || ext == ".yml":
		loaded, err := lsystem.LoadDocument(cfg.File)
		if err != nil {
			return nil, err
		}
		doc = loaded
		if cfg.generationsSet {
			doc.Generations = cfg.Generations
		}
	default:
		text, err := os.ReadFile(cfg.File)
		if err != nil {
			return nil, err
		}
		doc.Grammar = string(text)
	}

	if cfg.AngleDegrees != nil {
		radians := *cfg.AngleDegrees * math.Pi / 180
		doc.Turtle.DeltaAngle = &radians
		doc.Turtle.DeltaAngleDegrees = nil
	}
	if cfg.StepSize != nil {
		doc.Turtle.StepSize = cfg.StepSize
	}
	return doc, nil
}

func sourceName(cfg *Config) string {
	if cfg.File != "" {
		return cfg.File
	}
	return "grammar"
}

func writeFile(path string, render func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
