package lsystem

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	svg "github.com/ajstarks/svgo"
)

// ErrTooManySegments is returned by SVGCanvas.DrawLine once MaxSegments
// segments have been recorded.
var ErrTooManySegments = errors.New("too many segments")

type segment struct {
	from, to Point
}

// SVGCanvas collects segments and renders them, scaled to fit, as an SVG
// document. The zero value is not usable; see NewSVGCanvas.
type SVGCanvas struct {
	Width, Height int
	Padding       int
	Stroke        string
	Background    string
	// MaxSegments caps the number of recorded segments; zero means no cap.
	MaxSegments int
	Logger      *slog.Logger

	segments []segment
}

func NewSVGCanvas(width, height int) *SVGCanvas {
	return &SVGCanvas{
		Width:      width,
		Height:     height,
		Padding:    10,
		Stroke:     "stroke:black;stroke-width:1;stroke-linecap:round",
		Background: "fill:white",
	}
}

func (c *SVGCanvas) DrawLine(from, to Point) error {
	if c.MaxSegments > 0 && len(c.segments) >= c.MaxSegments {
		return fmt.Errorf("%w: limit is %d", ErrTooManySegments, c.MaxSegments)
	}
	c.segments = append(c.segments, segment{from: from, to: to})
	return nil
}

func (c *SVGCanvas) Len() int {
	return len(c.segments)
}

// Bounds returns the bounding box of every recorded segment. Both points
// are the origin when nothing has been drawn.
func (c *SVGCanvas) Bounds() (lo, hi Point) {
	if len(c.segments) == 0 {
		return Point{}, Point{}
	}
	lo = Point{X: math.Inf(1), Y: math.Inf(1)}
	hi = Point{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, s := range c.segments {
		for _, p := range [2]Point{s.from, s.to} {
			lo.X, lo.Y = math.Min(lo.X, p.X), math.Min(lo.Y, p.Y)
			hi.X, hi.Y = math.Max(hi.X, p.X), math.Max(hi.Y, p.Y)
		}
	}
	return lo, hi
}

// project maps turtle coordinates onto the image, keeping the aspect ratio
// and flipping y so that the turtle's +y points up.
func (c *SVGCanvas) project() func(Point) (int, int) {
	lo, hi := c.Bounds()
	innerW := float64(c.Width - 2*c.Padding)
	innerH := float64(c.Height - 2*c.Padding)

	scale := math.Inf(1)
	if dx := hi.X - lo.X; dx > 0 {
		scale = innerW / dx
	}
	if dy := hi.Y - lo.Y; dy > 0 {
		scale = math.Min(scale, innerH/dy)
	}
	if math.IsInf(scale, 1) {
		scale = 1
	}

	pad := float64(c.Padding)
	return func(p Point) (int, int) {
		x := pad + (p.X-lo.X)*scale
		y := float64(c.Height) - pad - (p.Y-lo.Y)*scale
		return int(math.Round(x)), int(math.Round(y))
	}
}

// Render writes the SVG document to w.
func (c *SVGCanvas) Render(w io.Writer) error {
	if c.Width <= 2*c.Padding || c.Height <= 2*c.Padding {
		return fmt.Errorf("canvas %dx%d is too small for padding %d", c.Width, c.Height, c.Padding)
	}
	ew := &errWriter{w: w}
	proj := c.project()

	doc := svg.New(ew)
	doc.Start(c.Width, c.Height)
	if c.Background != "" {
		doc.Rect(0, 0, c.Width, c.Height, c.Background)
	}
	doc.Gstyle(c.Stroke)
	for _, s := range c.segments {
		x1, y1 := proj(s.from)
		x2, y2 := proj(s.to)
		doc.Line(x1, y1, x2, y2)
	}
	doc.Gend()
	doc.End()

	c.logger().Debug("Rendered SVG.", "segments", len(c.segments), "width", c.Width, "height", c.Height)
	return ew.err
}

func (c *SVGCanvas) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// errWriter remembers the first write error and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}
