package lsystem

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrTrailingInput is wrapped by ParseStrict when text remains after the
// last rule that could be parsed.
var ErrTrailingInput = errors.New("trailing input")

// ErrInvalidUTF8 is wrapped by the ParseError returned for text that is
// not valid UTF-8.
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

// ParseError reports where the grammar failed to match. Offset is a byte
// offset into the source, Line and Column are 1-based.
type ParseError struct {
	Offset int
	Line   int
	Column int
	Msg    string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse error at %d:%d: %s: %v", e.Line, e.Column, e.Msg, e.Err)
	}
	return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Column, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type parser struct {
	src string
}

func (p *parser) errorf(pos int, format string, args ...any) *ParseError {
	line, col := 1, 1
	for _, c := range p.src[:pos] {
		if c == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return &ParseError{Offset: pos, Line: line, Column: col, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) peek(pos int) (rune, int) {
	if pos >= len(p.src) {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(p.src[pos:])
}

// whitespace consumes one or more separators.
func (p *parser) whitespace(pos int) (int, bool) {
	start := pos
	for pos < len(p.src) && isSeparator(rune(p.src[pos])) {
		pos++
	}
	return pos, pos > start
}

func (p *parser) optWhitespace(pos int) int {
	pos, _ = p.whitespace(pos)
	return pos
}

// checkEncoding fails at the first byte that does not start a valid
// UTF-8 sequence.
func (p *parser) checkEncoding() *ParseError {
	for pos := 0; pos < len(p.src); {
		c, size := p.peek(pos)
		if c == utf8.RuneError && size == 1 {
			perr := p.errorf(pos, "byte 0x%02x", p.src[pos])
			perr.Err = ErrInvalidUTF8
			return perr
		}
		pos += size
	}
	return nil
}

func (p *parser) symbol(pos int) (Instruction, int, bool) {
	c, size := p.peek(pos)
	if size == 0 || !isSymbol(c) || (c == utf8.RuneError && size == 1) {
		return Instruction{}, pos, false
	}
	return Symbol(c), pos + size, true
}

// simpleRun greedily consumes bare symbols and fails on an empty run.
func (p *parser) simpleRun(pos int, out Instructions) (Instructions, int, bool) {
	start := pos
	for {
		in, next, ok := p.symbol(pos)
		if !ok {
			break
		}
		out = append(out, in)
		pos = next
	}
	return out, pos, pos > start
}

// branch parses a balanced bracket pair. On failure nothing is consumed.
func (p *parser) branch(pos int) (Instruction, int, bool) {
	if c, _ := p.peek(pos); c != '[' {
		return Instruction{}, pos, false
	}
	children, next := p.instructions(pos + 1)
	if c, _ := p.peek(next); c != ']' {
		return Instruction{}, pos, false
	}
	return Branch(children...), next + 1, true
}

// instructions never fails; it stops at the first position where neither a
// symbol run, a branch nor whitespace matches.
func (p *parser) instructions(pos int) (Instructions, int) {
	var out Instructions
	pos = p.optWhitespace(pos)
	for {
		var ok bool
		if out, pos, ok = p.simpleRun(pos, out); ok {
			continue
		}
		var br Instruction
		if br, pos, ok = p.branch(pos); ok {
			out = append(out, br)
			continue
		}
		if pos, ok = p.whitespace(pos); ok {
			continue
		}
		return out, pos
	}
}

func (p *parser) rule(pos int) (Rule, int, *ParseError) {
	pos = p.optWhitespace(pos)
	from, pos, ok := p.symbol(pos)
	if !ok {
		return Rule{}, pos, p.errorf(pos, "rule must start with a single symbol, found %s", p.describe(pos))
	}
	pos = p.optWhitespace(pos)
	if !strings.HasPrefix(p.src[pos:], "->") {
		return Rule{}, pos, p.errorf(pos, "expected '->' after rule symbol %q, found %s", from.Symbol, p.describe(pos))
	}
	pos = p.optWhitespace(pos + 2)
	to, pos := p.instructions(pos)
	return Rule{From: from, To: to}, pos, nil
}

// terminator consumes optional whitespace followed by ';'.
func (p *parser) terminator(pos int) (int, bool) {
	pos = p.optWhitespace(pos)
	if c, _ := p.peek(pos); c != ';' {
		return pos, false
	}
	return pos + 1, true
}

func (p *parser) lsystem() (*LSystem, int, error) {
	if err := p.checkEncoding(); err != nil {
		return nil, 0, err
	}
	axiom, pos := p.instructions(0)
	pos, ok := p.terminator(pos)
	if !ok {
		return nil, pos, p.errorf(pos, "unterminated axiom: expected ';', found %s", p.describe(pos))
	}

	var rules []Rule
	for {
		r, next, err := p.rule(pos)
		if err != nil {
			break
		}
		if next, ok = p.terminator(next); !ok {
			break
		}
		rules = append(rules, r)
		pos = next
	}
	return NewLSystem(axiom, rules), pos, nil
}

func (p *parser) describe(pos int) string {
	c, size := p.peek(pos)
	switch {
	case size == 0:
		return "end of input"
	case c == '[':
		return "unbalanced '['"
	case c == ']':
		return "unmatched ']'"
	case c == utf8.RuneError && size == 1:
		return fmt.Sprintf("invalid byte 0x%02x", p.src[pos])
	default:
		return fmt.Sprintf("%q", c)
	}
}

// Parse reads an axiom terminated by ';' followed by zero or more rules of
// the form "A -> instructions;". Text after the last well-formed rule is
// ignored; use ParseStrict to reject it.
func Parse(text string) (*LSystem, error) {
	p := &parser{src: text}
	ls, _, err := p.lsystem()
	return ls, err
}

// ParseStrict is Parse, but it fails when anything other than whitespace
// follows the last rule.
func ParseStrict(text string) (*LSystem, error) {
	p := &parser{src: text}
	ls, pos, err := p.lsystem()
	if err != nil {
		return nil, err
	}
	if rest := p.optWhitespace(pos); rest < len(text) {
		perr := p.errorf(rest, "unexpected %s after last rule", p.describe(rest))
		perr.Err = ErrTrailingInput
		return nil, perr
	}
	return ls, nil
}

// ParseInstructions parses a single instruction sequence and returns the
// part of text it could not consume.
func ParseInstructions(text string) (Instructions, string) {
	p := &parser{src: text}
	instrs, pos := p.instructions(0)
	return instrs, text[pos:]
}

// ParseRule parses one unterminated rule and returns the unconsumed rest.
func ParseRule(text string) (Rule, string, error) {
	p := &parser{src: text}
	if err := p.checkEncoding(); err != nil {
		return Rule{}, text, err
	}
	r, pos, err := p.rule(0)
	if err != nil {
		return Rule{}, text, err
	}
	return r, text[pos:], nil
}
