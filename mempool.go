package lsystem

// wordPool holds the current word and a spare buffer of the same capacity.
// A step writes the next generation into the spare buffer and swaps, so
// steady-state iteration reuses the two backing arrays.
type wordPool struct {
	active   Instructions
	inactive Instructions
}

func newWordPool(capacity int) *wordPool {
	return &wordPool{
		active:   make(Instructions, 0, capacity),
		inactive: make(Instructions, 0, capacity),
	}
}

// Reset replaces the active word with a deep copy of word.
func (m *wordPool) Reset(word Instructions) {
	m.active = append(m.active[:0], word.Clone()...)
	m.inactive = m.inactive[:0]
}

func (m *wordPool) Active() Instructions {
	return m.active
}

// Spare returns the inactive buffer truncated to zero length, ready to be
// appended to.
func (m *wordPool) Spare() Instructions {
	return m.inactive[:0]
}

// Swap makes next the active word. next is expected to have been built on
// top of Spare, possibly reallocated by append.
func (m *wordPool) Swap(next Instructions) {
	m.inactive = m.active[:0]
	m.active = next
}

func (m *wordPool) Len() int {
	return len(m.active)
}

func (m *wordPool) Cap() int {
	return cap(m.active)
}
