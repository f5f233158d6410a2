package lsystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rand"
)

const benchmarkGrammar = `
X;
X -> F+[[X]-X]-F[-FX]+X;
F -> FF;
`

func mustParse(t testing.TB, text string) *LSystem {
	t.Helper()
	ls, err := Parse(text)
	require.NoError(t, err)
	return ls
}

func BenchmarkLSystemIterateAB(b *testing.B) {
	ls := mustParse(b, "A; A -> AB; B -> A;")

	tests := []struct {
		name  string
		iters int
	}{
		{"10", 10},
		{"20", 20},
	}

	b.ResetTimer()
	for _, tt := range tests {
		b.Run(tt.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				ls.Iterate(tt.iters)
			}
		})
	}
}

func BenchmarkLSystemIterate(b *testing.B) {
	ls := mustParse(b, benchmarkGrammar)
	tests := []struct {
		name  string
		iters int
	}{
		{"2", 2},
		{"4", 4},
		{"6", 6},
	}

	b.ResetTimer()
	for _, tt := range tests {
		b.Run(tt.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				ls.Iterate(tt.iters)
			}
		})
	}
}

func BenchmarkApply(b *testing.B) {
	ls := mustParse(b, benchmarkGrammar)
	word := ls.Iterate(3)
	rules := ls.Rules()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var out Instructions
		for _, in := range word {
			out = appendApplied(out, in, rules)
		}
	}
}

func TestFibonacciGenerations(t *testing.T) {
	ls := mustParse(t, "F; F->GF; G->F;")

	assertGenerations(t, []string{"F", "GF", "FGF", "GFFGF", "FGFGFFGF"}, ls.Take(5))
}

func TestGenerationsIsRestartable(t *testing.T) {
	ls := mustParse(t, "F; F->GF; G->F;")

	var first []Instructions
	for word := range ls.Generations() {
		first = append(first, word)
		if len(first) == 4 {
			break
		}
	}
	assertGenerations(t, []string{"F", "GF", "FGF", "GFFGF"}, first)

	// pulling a word advances past it
	assert.Equal(t, "FGFGFFGF", ls.Word().String())
	assert.Equal(t, "FGFGFFGF", ls.Next().String())

	ls.Reset()
	assertGenerations(t, []string{"F", "GF", "FGF"}, ls.Take(3))
}

func TestIterate(t *testing.T) {
	ls := mustParse(t, "F; F->GF; G->F;")
	ls.Take(7)

	assert.Equal(t, "GFFGF", ls.Iterate(3).String())
	assert.Equal(t, "GFFGF", ls.Next().String())
	assert.Equal(t, "F", ls.Iterate(0).String())
}

func TestBranchesAreRewrittenInPlace(t *testing.T) {
	ls := mustParse(t, "F; F->F[+F]F;")

	assertGenerations(t, []string{
		"F",
		"F[+F]F",
		"F[+F]F[+F[+F]F]F[+F]F",
	}, ls.Take(3))
}

func TestNestedBranchDepthPreserved(t *testing.T) {
	ls := mustParse(t, "[A[B]]C; B->[B]; C->A;")
	gens := ls.Take(3)

	assert.Equal(t, "[A[B]]C", gens[0].String())
	assert.Equal(t, "[A[[B]]]A", gens[1].String())
	assert.Equal(t, "[A[[[B]]]]A", gens[2].String())
	assert.Equal(t, 4, gens[2].Depth())
}

func TestApplyFirstMatchWins(t *testing.T) {
	rules := []Rule{
		NewRule('A', Symbols("B")),
		NewRule('A', Symbols("C")),
	}

	assert.Equal(t, Symbols("B"), Apply(Symbol('A'), rules))
}

func TestApplyBranch(t *testing.T) {
	rules := []Rule{NewRule('A', Symbols("BC"))}

	got := Apply(Branch(Symbol('A'), Branch(Symbol('A')), Symbol('D')), rules)
	want := Instructions{Branch(Symbol('B'), Symbol('C'), Branch(Symbols("BC")...), Symbol('D'))}
	assert.True(t, want.Equal(got), got.String())
}

func TestApplyUnmatchedSymbolIsIdentity(t *testing.T) {
	rules := []Rule{NewRule('F', Symbols("FF")), NewRule('X', nil)}

	for _, c := range "GAB+-f]" {
		assert.Equal(t, Instructions{Symbol(c)}, Apply(Symbol(c), rules))
	}
}

func TestStepWithoutRulesIsIdentity(t *testing.T) {
	r := rand.New(3)
	for i := 0; i < 100; i++ {
		word := randomInstructions(r, 20, 4)
		ls := NewLSystem(word, nil)
		gens := ls.Take(3)
		for _, gen := range gens {
			assert.True(t, word.Equal(gen), "%s != %s", word, gen)
		}
	}
}

func TestStepDeterministic(t *testing.T) {
	r := rand.New(11)
	rules := []Rule{
		NewRule('F', Symbols("F+G")),
		{From: Symbol('G'), To: Instructions{Branch(Symbols("-F")...), Symbol('G')}},
	}
	for i := 0; i < 50; i++ {
		word := randomInstructions(r, 15, 3)
		a := NewLSystem(word, rules)
		b := NewLSystem(word, rules)
		assertGenerations(t, stringsOf(a.Take(4)), b.Take(4))
	}
}

func TestNextReturnsCopy(t *testing.T) {
	ls := mustParse(t, "F[G]; F->FF;")

	word := ls.Next()
	word[0] = Symbol('X')
	word[1].Children[0] = Symbol('Y')

	assert.Equal(t, "FF[G]", ls.Word().String())
	assert.Equal(t, "F[G]", ls.Axiom().String())

	ls.Reset()
	assert.Equal(t, "F[G]", ls.Next().String())
}

func TestNewLSystemCopiesInputs(t *testing.T) {
	axiom := Symbols("AB")
	rules := []Rule{NewRule('A', Symbols("AA"))}
	ls := NewLSystem(axiom, rules)

	axiom[0] = Symbol('Z')
	rules[0].To[0] = Symbol('Z')

	assert.Equal(t, "AAB", ls.Iterate(1).String())
}

func TestLSystemString(t *testing.T) {
	ls := mustParse(t, " F ; F -> F [ + F ] ; G->;")
	assert.Equal(t, "F;\nF -> F[+F];\nG -> ;\n", ls.String())
}

func TestWordPoolReuse(t *testing.T) {
	ls := mustParse(t, "A; A->AB; B->A;")
	ls.Iterate(8)
	capBefore := ls.pool.Cap()

	ls.Iterate(8)
	assert.Equal(t, capBefore, ls.pool.Cap())
	assert.Equal(t, 55, ls.pool.Len())
}

func assertGenerations(t *testing.T, expected []string, actual []Instructions) {
	t.Helper()
	assert.Equal(t, len(expected), len(actual))
	assert.Equal(t, expected, stringsOf(actual))
}

func stringsOf(words []Instructions) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = w.String()
	}
	return out
}
