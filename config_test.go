package lsystem

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const plantDocument = `
grammar: |
  X;
  X -> F+[[X]-X]-F[-FX]+X;
  F -> FF;
generations: 3
turtle:
  delta_angle_degrees: 90
  step_size: 2.5
  draw_backward: ""
  forward: "G"
`

func TestDecodeDocument(t *testing.T) {
	doc, err := DecodeDocument(strings.NewReader(plantDocument))
	require.NoError(t, err)

	assert.Equal(t, 3, doc.Generations)
	ls, err := doc.LSystem(true)
	require.NoError(t, err)
	assert.Equal(t, "X", ls.Axiom().String())
	assert.Len(t, ls.Rules(), 2)

	cfg := doc.Turtle.Config(DefaultTurtleConfig())
	assert.InDelta(t, math.Pi/2, cfg.DeltaAngle(), eps)
	assert.Equal(t, 2.5, cfg.StepSize())
	assert.Equal(t, stepDrawForward, cfg.classify('F'))
	assert.Equal(t, stepNone, cfg.classify('f'))
	assert.Equal(t, stepForward, cfg.classify('G'))
}

func TestDecodeDocumentDefaults(t *testing.T) {
	doc, err := DecodeDocument(strings.NewReader("grammar: \"F;\"\n"))
	require.NoError(t, err)

	cfg := doc.Turtle.Config(DefaultTurtleConfig())
	assert.InDelta(t, math.Pi/4, cfg.DeltaAngle(), eps)
	assert.Equal(t, 1.0, cfg.StepSize())
	assert.Equal(t, stepDrawBackward, cfg.classify('f'))
}

func TestDecodeDocumentRadians(t *testing.T) {
	doc, err := DecodeDocument(strings.NewReader("grammar: \"F;\"\nturtle:\n  delta_angle: 0.5\n"))
	require.NoError(t, err)
	assert.InDelta(t, 0.5, doc.Turtle.Config(DefaultTurtleConfig()).DeltaAngle(), eps)
}

func TestDecodeDocumentErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		msg  string
	}{
		{"empty", "", "empty document"},
		{"unknown key", "grammar: F;\ncolour: red\n", "field colour not found"},
		{"negative generations", "grammar: F;\ngenerations: -1\n", "generations must not be negative"},
		{"both angles", "turtle:\n  delta_angle: 1\n  delta_angle_degrees: 1\n", "mutually exclusive"},
		{"zero step", "turtle:\n  step_size: 0\n", "step_size must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeDocument(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestDocumentLenientParse(t *testing.T) {
	doc := &Document{Grammar: "F; F->FF; oops"}

	ls, err := doc.LSystem(false)
	require.NoError(t, err)
	assert.Len(t, ls.Rules(), 1)

	_, err = doc.LSystem(true)
	assert.ErrorIs(t, err, ErrTrailingInput)
}

func TestLoadDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plant.yaml")
	require.NoError(t, os.WriteFile(path, []byte(plantDocument), 0o644))

	doc, err := LoadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, 3, doc.Generations)

	_, err = LoadDocument(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDocumentEncodeRoundTrip(t *testing.T) {
	step := 3.0
	forward := "GH"
	doc := &Document{
		Grammar:     "F;\nF -> F[+F]F;\n",
		Generations: 2,
		Turtle:      TurtleSection{StepSize: &step, Forward: &forward},
	}

	var buf bytes.Buffer
	require.NoError(t, doc.Encode(&buf))

	decoded, err := DecodeDocument(&buf)
	require.NoError(t, err)
	assert.Equal(t, doc, decoded)
}
