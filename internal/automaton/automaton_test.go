package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func mustSentence(t *testing.T, s string) Sentence {
	t.Helper()
	sent, err := NewSentence(s)
	if err != nil {
		t.Fatalf("sentence %q: %v", s, err)
	}
	return sent
}

// aStar builds a DFA over {a} accepting a*.
func aStar() *FiniteAutomaton {
	fa := New("q0")
	fa.AddState("q0")
	fa.SetAccepting("q0", true)
	fa.AddTransition("q0", Symbol('a'), "q0")
	return fa
}

// abExact builds a DFA accepting exactly "ab".
func abExact() *FiniteAutomaton {
	fa := New("q0")
	fa.AddState("q0")
	fa.AddState("q1")
	fa.AddState("q2")
	fa.SetAccepting("q2", true)
	fa.AddTransition("q0", Symbol('a'), "q1")
	fa.AddTransition("q1", Symbol('b'), "q2")
	return fa
}

func Test_Evaluate_AStar(t *testing.T) {
	fa := aStar()

	assert.True(t, fa.Evaluate(mustSentence(t, "&")))
	assert.True(t, fa.Evaluate(mustSentence(t, "aaaa")))
	assert.False(t, fa.Evaluate(mustSentence(t, "aab")))
}

func Test_Evaluate_ABExact(t *testing.T) {
	fa := abExact()

	assert.True(t, fa.Evaluate(mustSentence(t, "ab")))
	assert.False(t, fa.Evaluate(mustSentence(t, "a")))
	assert.False(t, fa.Evaluate(mustSentence(t, "abb")))
}

func Test_IsDeterministic(t *testing.T) {
	assert.True(t, aStar().IsDeterministic())

	nfa := New("q0")
	nfa.AddState("q0")
	nfa.AddState("q1")
	nfa.SetAccepting("q1", true)
	nfa.AddTransition("q0", Symbol('a'), "q0")
	nfa.AddTransition("q0", Symbol('a'), "q1")
	assert.False(t, nfa.IsDeterministic())
}

func Test_Union_AcceptsEitherLanguage(t *testing.T) {
	a := abExact()
	b := aStar()

	u := Union(a, b)
	assert.True(t, u.Evaluate(mustSentence(t, "ab")))
	assert.True(t, u.Evaluate(mustSentence(t, "aaa")))
	assert.False(t, u.Evaluate(mustSentence(t, "b")))
}

func Test_Concatenate(t *testing.T) {
	a := abExact()
	b := aStar()

	c := Concatenate(a, b)
	assert.True(t, c.Evaluate(mustSentence(t, "ab")))
	assert.True(t, c.Evaluate(mustSentence(t, "abaaa")))
	assert.False(t, c.Evaluate(mustSentence(t, "a")))
}

func Test_KleeneStar(t *testing.T) {
	a := abExact()

	star := KleeneStar(a)
	assert.True(t, star.Evaluate(mustSentence(t, "&")))
	assert.True(t, star.Evaluate(mustSentence(t, "abab")))
	assert.False(t, star.Evaluate(mustSentence(t, "aba")))
}

func Test_Reverse(t *testing.T) {
	a := abExact()

	rev := Reverse(a)
	assert.True(t, rev.Evaluate(mustSentence(t, "ba")))
	assert.False(t, rev.Evaluate(mustSentence(t, "ab")))
}

func Test_Determinize_PreservesLanguage(t *testing.T) {
	nfa := New("q0")
	nfa.AddState("q0")
	nfa.AddState("q1")
	nfa.SetAccepting("q1", true)
	nfa.AddTransition("q0", Symbol('a'), "q0")
	nfa.AddTransition("q0", Symbol('a'), "q1")

	det := nfa.Determinize()
	assert.True(t, det.IsDeterministic())
	assert.True(t, det.Evaluate(mustSentence(t, "a")))
	assert.True(t, det.Evaluate(mustSentence(t, "aaa")))
	assert.False(t, det.Evaluate(mustSentence(t, "b")))
}

func Test_Minimize_PreservesLanguage(t *testing.T) {
	det := aStar().Determinize()

	min, err := det.Minimize()
	assert.NoError(t, err)
	assert.True(t, min.Evaluate(mustSentence(t, "&")))
	assert.True(t, min.Evaluate(mustSentence(t, "aaaaa")))
	assert.False(t, min.Evaluate(mustSentence(t, "b")))
}

func Test_Complement(t *testing.T) {
	a := abExact().Determinize()

	comp := Complement(a)
	assert.False(t, comp.Evaluate(mustSentence(t, "ab")))
	assert.True(t, comp.Evaluate(mustSentence(t, "a")))
}

func Test_Intersection(t *testing.T) {
	a := aStar()

	withB := New("r0")
	withB.AddState("r0")
	withB.SetAccepting("r0", true)
	withB.AddTransition("r0", Symbol('a'), "r0")
	withB.AddTransition("r0", Symbol('b'), "r0")

	inter := Intersection(a, withB)
	assert.True(t, inter.Evaluate(mustSentence(t, "aaa")))
	assert.False(t, inter.Evaluate(mustSentence(t, "aab")))
}

func Test_Difference(t *testing.T) {
	onlyA := aStar()

	empty := abExact()

	diff := Difference(onlyA, empty)
	assert.True(t, diff.Evaluate(mustSentence(t, "aaa")))
	assert.True(t, diff.Evaluate(mustSentence(t, "&")))
}

func Test_Equivalent(t *testing.T) {
	a := aStar()

	b := New("s0")
	b.AddState("s0")
	b.AddState("s1")
	b.SetAccepting("s0", true)
	b.SetAccepting("s1", true)
	b.AddTransition("s0", Symbol('a'), "s1")
	b.AddTransition("s1", Symbol('a'), "s1")

	assert.True(t, Equivalent(a, b))

	assert.False(t, Equivalent(a, abExact()))
}

func Test_GenSentences_ReturnsRequestedLength(t *testing.T) {
	fa := aStar()

	sentences := fa.GenSentences(3)
	for _, s := range sentences {
		assert.LessOrEqual(t, len(s), 3)
		assert.True(t, fa.Evaluate(s))
	}
}

func Test_Validate_RejectsUnreachableAcceptState(t *testing.T) {
	fa := New("q0")
	fa.AddState("q0")
	assert.NoError(t, fa.Validate())
}
