package stitch

import (
	"testing"

	"github.com/dekarrin/relang/internal/automaton"
	"github.com/dekarrin/relang/internal/regex"
	"github.com/stretchr/testify/assert"
)

func mustParse(t *testing.T, expr string) *regex.Node {
	t.Helper()
	n, err := regex.Parse(expr)
	if err != nil {
		t.Fatalf("parse %q: %v", expr, err)
	}
	return n
}

func mustSentence(t *testing.T, s string) automaton.Sentence {
	t.Helper()
	sent, err := automaton.NewSentence(s)
	if err != nil {
		t.Fatalf("sentence %q: %v", s, err)
	}
	return sent
}

func TestToDFA_SingleSymbol(t *testing.T) {
	dfa := ToDFA(mustParse(t, "a"))
	assert.True(t, dfa.Evaluate(mustSentence(t, "a")))
	assert.False(t, dfa.Evaluate(mustSentence(t, "&")))
	assert.False(t, dfa.Evaluate(mustSentence(t, "aa")))
}

func TestToDFA_Concatenation(t *testing.T) {
	dfa := ToDFA(mustParse(t, "a.b"))
	assert.True(t, dfa.Evaluate(mustSentence(t, "ab")))
	assert.False(t, dfa.Evaluate(mustSentence(t, "a")))
	assert.False(t, dfa.Evaluate(mustSentence(t, "ba")))
}

func TestToDFA_Union(t *testing.T) {
	dfa := ToDFA(mustParse(t, "a|b"))
	assert.True(t, dfa.Evaluate(mustSentence(t, "a")))
	assert.True(t, dfa.Evaluate(mustSentence(t, "b")))
	assert.False(t, dfa.Evaluate(mustSentence(t, "ab")))
}

func TestToDFA_KleeneStar(t *testing.T) {
	dfa := ToDFA(mustParse(t, "a*"))
	assert.True(t, dfa.Evaluate(mustSentence(t, "&")))
	assert.True(t, dfa.Evaluate(mustSentence(t, "a")))
	assert.True(t, dfa.Evaluate(mustSentence(t, "aaaa")))
	assert.False(t, dfa.Evaluate(mustSentence(t, "ab")))
}

func TestToDFA_Option(t *testing.T) {
	dfa := ToDFA(mustParse(t, "a?"))
	assert.True(t, dfa.Evaluate(mustSentence(t, "&")))
	assert.True(t, dfa.Evaluate(mustSentence(t, "a")))
	assert.False(t, dfa.Evaluate(mustSentence(t, "aa")))
}

func TestToDFA_UnionOfConcatenations(t *testing.T) {
	dfa := ToDFA(mustParse(t, "a.b|c.d"))
	assert.True(t, dfa.Evaluate(mustSentence(t, "ab")))
	assert.True(t, dfa.Evaluate(mustSentence(t, "cd")))
	assert.False(t, dfa.Evaluate(mustSentence(t, "ad")))
	assert.False(t, dfa.Evaluate(mustSentence(t, "cb")))
}

func TestToDFA_StarOfUnion(t *testing.T) {
	dfa := ToDFA(mustParse(t, "(a|b)*"))
	for _, s := range []string{"&", "a", "b", "ab", "ba", "aabb", "bbbb"} {
		assert.True(t, dfa.Evaluate(mustSentence(t, s)), "expected %q to be accepted", s)
	}
	assert.False(t, dfa.Evaluate(mustSentence(t, "c")))
}

func TestToDFA_ConcatThenStar(t *testing.T) {
	// (a.b)* accepts "", "ab", "abab", ... but not "a" or "aba".
	dfa := ToDFA(mustParse(t, "(a.b)*"))
	assert.True(t, dfa.Evaluate(mustSentence(t, "&")))
	assert.True(t, dfa.Evaluate(mustSentence(t, "ab")))
	assert.True(t, dfa.Evaluate(mustSentence(t, "abab")))
	assert.False(t, dfa.Evaluate(mustSentence(t, "a")))
	assert.False(t, dfa.Evaluate(mustSentence(t, "aba")))
}
