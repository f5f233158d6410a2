package lsystem

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is the YAML file format bundling a grammar with the number of
// generations to grow and the turtle that draws the result:
//
//	grammar: |
//	  F;
//	  F -> F[+F]F[-F]F;
//	generations: 4
//	turtle:
//	  delta_angle_degrees: 25.7
//	  step_size: 2
type Document struct {
	Grammar     string        `yaml:"grammar"`
	Generations int           `yaml:"generations"`
	Turtle      TurtleSection `yaml:"turtle"`
}

// TurtleSection holds optional overrides of DefaultTurtleConfig. Pointer
// fields distinguish an explicit empty set from a missing key.
type TurtleSection struct {
	DeltaAngle        *float64 `yaml:"delta_angle,omitempty"`
	DeltaAngleDegrees *float64 `yaml:"delta_angle_degrees,omitempty"`
	StepSize          *float64 `yaml:"step_size,omitempty"`
	DrawForward       *string  `yaml:"draw_forward,omitempty"`
	DrawBackward      *string  `yaml:"draw_backward,omitempty"`
	Forward           *string  `yaml:"forward,omitempty"`
	Backward          *string  `yaml:"backward,omitempty"`
}

// DecodeDocument reads a single YAML document. Unknown keys are rejected.
func DecodeDocument(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	doc := &Document{}
	if err := dec.Decode(doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty document")
		}
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if err := doc.validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

func LoadDocument(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := DecodeDocument(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func (d *Document) validate() error {
	if d.Generations < 0 {
		return fmt.Errorf("generations must not be negative, got %d", d.Generations)
	}
	if d.Turtle.DeltaAngle != nil && d.Turtle.DeltaAngleDegrees != nil {
		return errors.New("turtle: delta_angle and delta_angle_degrees are mutually exclusive")
	}
	if s := d.Turtle.StepSize; s != nil && !(*s > 0) {
		return fmt.Errorf("turtle: step_size must be positive, got %v", *s)
	}
	return nil
}

// LSystem parses the document's grammar.
func (d *Document) LSystem(strict bool) (*LSystem, error) {
	if strict {
		return ParseStrict(d.Grammar)
	}
	return Parse(d.Grammar)
}

// Config applies the section's overrides on top of base.
func (s TurtleSection) Config(base TurtleConfig) TurtleConfig {
	c := base
	if s.DeltaAngle != nil {
		c = c.WithDeltaAngle(*s.DeltaAngle)
	}
	if s.DeltaAngleDegrees != nil {
		c = c.WithDeltaAngle(*s.DeltaAngleDegrees * math.Pi / 180)
	}
	if s.StepSize != nil {
		c = c.WithStepSize(*s.StepSize)
	}
	if s.DrawForward != nil {
		c = c.WithDrawForward(*s.DrawForward)
	}
	if s.DrawBackward != nil {
		c = c.WithDrawBackward(*s.DrawBackward)
	}
	if s.Forward != nil {
		c = c.WithForward(*s.Forward)
	}
	if s.Backward != nil {
		c = c.WithBackward(*s.Backward)
	}
	return c
}

// Encode writes d as YAML.
func (d *Document) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return err
	}
	return enc.Close()
}
