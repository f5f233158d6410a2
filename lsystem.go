package lsystem

import (
	"iter"
	"strings"
)

const defaultWordCapacity = 64

// LSystem owns an axiom, an ordered rule set and the current word. The
// word is advanced in place by Next and restored by Reset.
type LSystem struct {
	axiom Instructions
	rules []Rule
	pool  *wordPool
}

// NewLSystem builds an LSystem whose current word is a copy of axiom.
func NewLSystem(axiom Instructions, rules []Rule) *LSystem {
	l := &LSystem{
		axiom: axiom.Clone(),
		rules: cloneRules(rules),
		pool:  newWordPool(max(defaultWordCapacity, len(axiom))),
	}
	l.Reset()
	return l
}

func cloneRules(rules []Rule) []Rule {
	if rules == nil {
		return nil
	}
	out := make([]Rule, len(rules))
	for i, r := range rules {
		out[i] = Rule{From: r.From, To: r.To.Clone()}
	}
	return out
}

// Reset discards every generation produced so far.
func (l *LSystem) Reset() {
	l.pool.Reset(l.axiom)
}

func (l *LSystem) Axiom() Instructions {
	return l.axiom.Clone()
}

func (l *LSystem) Rules() []Rule {
	return cloneRules(l.rules)
}

// Word returns a copy of the current generation.
func (l *LSystem) Word() Instructions {
	return l.pool.Active().Clone()
}

// step rewrites every top-level instruction of the current word.
func (l *LSystem) step() {
	next := l.pool.Spare()
	for _, in := range l.pool.Active() {
		next = appendApplied(next, in, l.rules)
	}
	l.pool.Swap(next)
}

// Next returns the current word and advances to the next generation. It
// never runs out; callers bound how many generations they pull.
func (l *LSystem) Next() Instructions {
	word := l.Word()
	l.step()
	return word
}

// Generations yields the current word and each generation after it. The
// sequence is infinite and shares state with Next.
func (l *LSystem) Generations() iter.Seq[Instructions] {
	return func(yield func(Instructions) bool) {
		for {
			if !yield(l.Next()) {
				return
			}
		}
	}
}

// Take pulls the next n generations.
func (l *LSystem) Take(n int) []Instructions {
	out := make([]Instructions, 0, max(n, 0))
	for i := 0; i < n; i++ {
		out = append(out, l.Next())
	}
	return out
}

// Iterate resets the system and returns generation n, leaving it as the
// current word.
func (l *LSystem) Iterate(n int) Instructions {
	l.Reset()
	for i := 0; i < n; i++ {
		l.step()
	}
	return l.Word()
}

// Equal compares axiom, rules and current word structurally.
func (l *LSystem) Equal(other *LSystem) bool {
	if len(l.rules) != len(other.rules) {
		return false
	}
	for i := range l.rules {
		if !l.rules[i].Equal(other.rules[i]) {
			return false
		}
	}
	return l.axiom.Equal(other.axiom) && l.pool.Active().Equal(other.pool.Active())
}

// String renders the axiom and rules as grammar text that parses back to
// an equal system.
func (l *LSystem) String() string {
	var sb strings.Builder
	sb.WriteString(l.axiom.String())
	sb.WriteString(";\n")
	for _, r := range l.rules {
		sb.WriteString(r.String())
		sb.WriteString(";\n")
	}
	return sb.String()
}
