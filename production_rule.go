package lsystem

import "strings"

// Rule rewrites a single symbol into a sequence of instructions.
type Rule struct {
	From Instruction
	To   Instructions
}

func NewRule(from rune, to Instructions) Rule {
	return Rule{From: Symbol(from), To: to}
}

func (r Rule) String() string {
	var sb strings.Builder
	sb.WriteString(r.From.String())
	sb.WriteString(" -> ")
	sb.WriteString(r.To.String())
	return sb.String()
}

func (r Rule) Equal(other Rule) bool {
	return r.From.Equal(other.From) && r.To.Equal(other.To)
}

// Apply returns the expansion of in under rules. Rules are scanned in order
// and the first whose From equals in wins; unmatched symbols map to
// themselves. Branches are never matched, only their contents are
// rewritten.
func Apply(in Instruction, rules []Rule) Instructions {
	return appendApplied(nil, in, rules)
}

func appendApplied(out Instructions, in Instruction, rules []Rule) Instructions {
	if in.IsBranch() {
		var children Instructions
		for _, child := range in.Children {
			children = appendApplied(children, child, rules)
		}
		return append(out, Branch(children...))
	}
	for _, r := range rules {
		if r.From.Equal(in) {
			return append(out, r.To...)
		}
	}
	return append(out, in)
}
