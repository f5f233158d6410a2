package lsystem

import "strings"

type Kind uint8

const (
	KindSymbol Kind = iota
	KindBranch
)

// Instruction is a single parsed token: either a literal symbol or a
// bracketed sub-sequence.
type Instruction struct {
	Kind     Kind
	Symbol   rune
	Children Instructions
}

type Instructions []Instruction

func Symbol(c rune) Instruction {
	return Instruction{Kind: KindSymbol, Symbol: c}
}

func Branch(children ...Instruction) Instruction {
	return Instruction{Kind: KindBranch, Children: children}
}

// Symbols builds a flat run of symbols from s, one per rune.
func Symbols(s string) Instructions {
	var out Instructions
	for _, c := range s {
		out = append(out, Symbol(c))
	}
	return out
}

func (in Instruction) IsBranch() bool {
	return in.Kind == KindBranch
}

// Equal reports structural equality. An empty branch is not equal to a
// missing one, and symbols never equal branches.
func (in Instruction) Equal(other Instruction) bool {
	if in.Kind != other.Kind {
		return false
	}
	if in.Kind == KindSymbol {
		return in.Symbol == other.Symbol
	}
	return in.Children.Equal(other.Children)
}

func (in Instruction) String() string {
	var sb strings.Builder
	in.writeTo(&sb)
	return sb.String()
}

func (in Instruction) writeTo(sb *strings.Builder) {
	if in.Kind == KindSymbol {
		sb.WriteRune(in.Symbol)
		return
	}
	sb.WriteRune('[')
	for _, child := range in.Children {
		child.writeTo(sb)
	}
	sb.WriteRune(']')
}

func (is Instructions) Equal(other Instructions) bool {
	if len(is) != len(other) {
		return false
	}
	for i := range is {
		if !is[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

func (is Instructions) String() string {
	var sb strings.Builder
	for _, in := range is {
		in.writeTo(&sb)
	}
	return sb.String()
}

// Clone returns a deep copy. Nil stays nil so that clones compare equal
// under reflect.DeepEqual as well as Equal.
func (is Instructions) Clone() Instructions {
	if is == nil {
		return nil
	}
	out := make(Instructions, len(is))
	for i, in := range is {
		out[i] = in
		if in.IsBranch() {
			out[i].Children = in.Children.Clone()
		}
	}
	return out
}

// Len counts every instruction in the tree, branches included.
func (is Instructions) Len() int {
	n := 0
	for _, in := range is {
		n++
		if in.IsBranch() {
			n += in.Children.Len()
		}
	}
	return n
}

// Depth is the deepest branch nesting level, zero for a flat word.
func (is Instructions) Depth() int {
	depth := 0
	for _, in := range is {
		if !in.IsBranch() {
			continue
		}
		if d := in.Children.Depth() + 1; d > depth {
			depth = d
		}
	}
	return depth
}
