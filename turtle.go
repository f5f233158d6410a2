package lsystem

import "math"

type Point struct {
	X, Y float64
}

// Canvas records line segments produced by a Turtle.
type Canvas interface {
	DrawLine(from, to Point) error
}

// CanvasFunc adapts a function to the Canvas interface.
type CanvasFunc func(from, to Point) error

func (f CanvasFunc) DrawLine(from, to Point) error {
	return f(from, to)
}

type step uint8

const (
	stepNone step = iota
	stepDrawForward
	stepDrawBackward
	stepForward
	stepBackward
)

// TurtleConfig is immutable once built; the With methods return modified
// copies.
type TurtleConfig struct {
	deltaAngle   float64
	stepSize     float64
	drawForward  SymbolSet
	drawBackward SymbolSet
	forward      SymbolSet
	backward     SymbolSet
}

// DefaultTurtleConfig turns by π/4, steps by 1 and draws on F (forward)
// and f (backward).
func DefaultTurtleConfig() TurtleConfig {
	return TurtleConfig{
		deltaAngle:   math.Pi / 4,
		stepSize:     1,
		drawForward:  NewSymbolSet("F"),
		drawBackward: NewSymbolSet("f"),
		forward:      NewSymbolSet(""),
		backward:     NewSymbolSet(""),
	}
}

func (c TurtleConfig) WithDeltaAngle(radians float64) TurtleConfig {
	c.deltaAngle = radians
	return c
}

func (c TurtleConfig) WithStepSize(size float64) TurtleConfig {
	c.stepSize = size
	return c
}

func (c TurtleConfig) WithDrawForward(symbols string) TurtleConfig {
	c.drawForward = NewSymbolSet(symbols)
	return c
}

func (c TurtleConfig) WithDrawBackward(symbols string) TurtleConfig {
	c.drawBackward = NewSymbolSet(symbols)
	return c
}

func (c TurtleConfig) WithForward(symbols string) TurtleConfig {
	c.forward = NewSymbolSet(symbols)
	return c
}

func (c TurtleConfig) WithBackward(symbols string) TurtleConfig {
	c.backward = NewSymbolSet(symbols)
	return c
}

func (c TurtleConfig) DeltaAngle() float64 { return c.deltaAngle }
func (c TurtleConfig) StepSize() float64 { return c.stepSize }

// classify resolves overlapping sets as draw-forward, draw-backward,
// forward, backward.
func (c *TurtleConfig) classify(symbol rune) step {
	switch {
	case c.drawForward.Contains(symbol):
		return stepDrawForward
	case c.drawBackward.Contains(symbol):
		return stepDrawBackward
	case c.forward.Contains(symbol):
		return stepForward
	case c.backward.Contains(symbol):
		return stepBackward
	default:
		return stepNone
	}
}

// NewTurtle places a turtle at the origin heading along +x. The turtle
// keeps a reference to c, which must not change while it is drawing.
func (c *TurtleConfig) NewTurtle() Turtle {
	return Turtle{config: c}
}

// Turtle is the interpreter state. It is passed by value: every branch
// draws with its own copy and the caller's state is untouched afterwards.
// The zero value draws with DefaultTurtleConfig.
type Turtle struct {
	x, y   float64
	angle  float64
	config *TurtleConfig
}

func (t Turtle) Position() Point {
	return Point{X: t.x, Y: t.y}
}

// Heading is the current angle in radians, in [0, 2π).
func (t Turtle) Heading() float64 {
	return t.angle
}

func (t *Turtle) stepForward() {
	t.x += math.Cos(t.angle) * t.config.stepSize
	t.y += math.Sin(t.angle) * t.config.stepSize
}

func (t *Turtle) stepBackward() {
	t.x -= math.Cos(t.angle) * t.config.stepSize
	t.y -= math.Sin(t.angle) * t.config.stepSize
}

func (t *Turtle) turnLeft() {
	t.angle = normalizeAngle(t.angle - t.config.deltaAngle)
}

func (t *Turtle) turnRight() {
	t.angle = normalizeAngle(t.angle + t.config.deltaAngle)
}

func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	// a tiny negative remainder can round up to exactly 2π
	if a >= 2*math.Pi {
		a = 0
	}
	return a
}

// Draw walks instructions and emits a line for every drawing step. '+'
// turns left and '-' turns right regardless of the configured sets. The
// first canvas error aborts the whole traversal and is returned as is.
func (t Turtle) Draw(canvas Canvas, instructions Instructions) error {
	if t.config == nil {
		cfg := DefaultTurtleConfig()
		t.config = &cfg
	}
	for _, in := range instructions {
		if in.IsBranch() {
			if err := t.Draw(canvas, in.Children); err != nil {
				return err
			}
			continue
		}

		switch in.Symbol {
		case '+':
			t.turnLeft()
			continue
		case '-':
			t.turnRight()
			continue
		}

		before := t.Position()
		switch t.config.classify(in.Symbol) {
		case stepDrawForward:
			t.stepForward()
		case stepDrawBackward:
			t.stepBackward()
		case stepForward:
			t.stepForward()
			continue
		case stepBackward:
			t.stepBackward()
			continue
		default:
			continue
		}
		if err := canvas.DrawLine(before, t.Position()); err != nil {
			return err
		}
	}
	return nil
}

// Draw runs a fresh turtle from the origin over instructions.
func (c *TurtleConfig) Draw(canvas Canvas, instructions Instructions) error {
	return c.NewTurtle().Draw(canvas, instructions)
}
