package lsystem

import "unicode"

// SymbolSet is a set of instruction symbols, used by the turtle to classify
// which symbols move or draw.
type SymbolSet map[rune]struct{}

func NewSymbolSet(symbols string) SymbolSet {
	ss := make(SymbolSet, len(symbols))
	for _, c := range symbols {
		ss.Add(c)
	}
	return ss
}

func (ss SymbolSet) Contains(c rune) bool {
	_, exists := ss[c]
	return exists
}

func (ss SymbolSet) Add(c rune) {
	ss[c] = struct{}{}
}

func isBranchSymbol(c rune) bool {
	return c == '[' || c == ']'
}

// isSymbol reports whether c may appear as a literal instruction.
func isSymbol(c rune) bool {
	return !isBranchSymbol(c) && !unicode.IsSpace(c) && c != ';'
}

// isSeparator reports whether c is whitespace the grammar skips between
// tokens. Other Unicode spaces are neither symbols nor separators.
func isSeparator(c rune) bool {
	return c == ' ' || c == '\n' || c == '\t'
}
