package lsystem

import (
	"errors"

	"pgregory.net/rand"
)

const randomAlphabet = "FGABfXY+-"

// randomInstructions builds a word of up to size top-level instructions
// with branches nested at most depth levels.
func randomInstructions(r *rand.Rand, size, depth int) Instructions {
	var out Instructions
	n := r.Intn(size + 1)
	for i := 0; i < n; i++ {
		if depth > 0 && r.Intn(5) == 0 {
			out = append(out, Branch(randomInstructions(r, size/2+1, depth-1)...))
			continue
		}
		out = append(out, Symbol(rune(randomAlphabet[r.Intn(len(randomAlphabet))])))
	}
	return out
}

type line struct {
	From, To Point
}

// recordingCanvas keeps every segment and fails with failWith once
// failAfter segments have been accepted, if failAfter is positive.
type recordingCanvas struct {
	lines     []line
	failAfter int
	failWith  error
}

var errCanvasFull = errors.New("canvas full")

func (c *recordingCanvas) DrawLine(from, to Point) error {
	if c.failAfter > 0 && len(c.lines) >= c.failAfter {
		if c.failWith != nil {
			return c.failWith
		}
		return errCanvasFull
	}
	c.lines = append(c.lines, line{From: from, To: to})
	return nil
}
