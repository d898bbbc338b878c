package grammar

import (
	"testing"

	"github.com/dekarrin/relang/internal/automaton"
	"github.com/stretchr/testify/assert"
)

func mustSentence(t *testing.T, s string) automaton.Sentence {
	t.Helper()
	sent, err := automaton.NewSentence(s)
	if err != nil {
		t.Fatalf("sentence %q: %v", s, err)
	}
	return sent
}

func TestParse_Basic(t *testing.T) {
	g, err := Parse("S -> aA | &\nA -> aA | a")
	assert.NoError(t, err)
	assert.Equal(t, "S", g.Start())
	assert.Len(t, g.Productions("S"), 2)
	assert.Len(t, g.Productions("A"), 2)
}

func TestParse_RejectsMissingArrow(t *testing.T) {
	_, err := Parse("S aA")
	assert.Error(t, err)
}

func TestParse_RejectsBadNonTerminal(t *testing.T) {
	_, err := Parse("S -> ab2")
	assert.Error(t, err)
}

func TestParse_RejectsEmptyBody(t *testing.T) {
	_, err := Parse("S -> a | ")
	assert.Error(t, err)
}

func TestString_RoundTrips(t *testing.T) {
	g, err := Parse("S -> aA | &\nA -> aA | a")
	assert.NoError(t, err)

	rendered := g.String()
	reparsed, err := Parse(rendered)
	assert.NoError(t, err)
	assert.Equal(t, rendered, reparsed.String())
}

func TestString_EpsilonSortedLast(t *testing.T) {
	g, err := Parse("S -> & | aA")
	assert.NoError(t, err)
	assert.Equal(t, "S -> aA | &", g.String())
}

func TestToAutomaton_AcceptsGeneratedLanguage(t *testing.T) {
	// S -> aA | a ; A -> aA | a   accepts a+
	g, err := Parse("S -> aA | a\nA -> aA | a")
	assert.NoError(t, err)

	fa := g.ToAutomaton()
	assert.True(t, fa.Evaluate(mustSentence(t, "a")))
	assert.True(t, fa.Evaluate(mustSentence(t, "aaa")))
	assert.False(t, fa.Evaluate(mustSentence(t, "&")))
	assert.False(t, fa.Evaluate(mustSentence(t, "b")))
}

func TestToAutomaton_EpsilonProductionAccepts(t *testing.T) {
	g, err := Parse("S -> &")
	assert.NoError(t, err)
	fa := g.ToAutomaton()
	assert.True(t, fa.Evaluate(mustSentence(t, "&")))
}

func TestFromAutomaton_NamesStartS(t *testing.T) {
	fa := automaton.New("q0")
	fa.AddTransition("q0", mustSymbol(t, "a"), "q1")
	fa.SetAccepting("q1", true)

	g := FromAutomaton(fa)
	assert.Equal(t, "S", g.Start())
}

func TestFromAutomaton_RoundTripsLanguage(t *testing.T) {
	fa := automaton.New("q0")
	fa.AddTransition("q0", mustSymbol(t, "a"), "q1")
	fa.AddTransition("q1", mustSymbol(t, "a"), "q1")
	fa.SetAccepting("q1", true)

	g := FromAutomaton(fa)
	back := g.ToAutomaton()

	assert.True(t, back.Evaluate(mustSentence(t, "a")))
	assert.True(t, back.Evaluate(mustSentence(t, "aaa")))
	assert.False(t, back.Evaluate(mustSentence(t, "&")))
	assert.False(t, back.Evaluate(mustSentence(t, "b")))
}

func TestFromAutomaton_DeadEndStateRoundTripsAsText(t *testing.T) {
	fa := automaton.New("q0")
	fa.AddTransition("q0", mustSymbol(t, "a"), "q1")
	fa.SetAccepting("q1", true)
	fa.AddTransition("q0", mustSymbol(t, "b"), "q2")

	g := FromAutomaton(fa)
	text := g.String()

	reparsed, err := Parse(text)
	assert.NoError(t, err)
	assert.True(t, reparsed.ToAutomaton().Evaluate(mustSentence(t, "a")))
	assert.False(t, reparsed.ToAutomaton().Evaluate(mustSentence(t, "b")))
}

func TestFromAutomaton_OnlyReachableStatesNamed(t *testing.T) {
	fa := automaton.New("q0")
	fa.AddTransition("q0", mustSymbol(t, "a"), "q1")
	fa.SetAccepting("q1", true)
	fa.AddState("unreachable")
	fa.SetAccepting("unreachable", true)

	g := FromAutomaton(fa)
	assert.Len(t, g.NonTerminals(), 1)
	assert.Equal(t, []string{"S"}, g.NonTerminals())
}

func TestFromAutomaton_OnlyStartGetsEpsilonProduction(t *testing.T) {
	fa := automaton.New("q0")
	fa.AddTransition("q0", mustSymbol(t, "a"), "q1")
	fa.SetAccepting("q0", true)
	fa.SetAccepting("q1", true)

	g := FromAutomaton(fa)

	foundEpsilonOnStart := false
	for _, head := range g.NonTerminals() {
		for _, p := range g.Productions(head) {
			if p.Epsilon {
				assert.Equal(t, g.Start(), head)
				foundEpsilonOnStart = true
			}
		}
	}
	assert.True(t, foundEpsilonOnStart)
}

func mustSymbol(t *testing.T, s string) automaton.Symbol {
	t.Helper()
	sym, err := automaton.NewSymbol(s)
	if err != nil {
		t.Fatalf("symbol %q: %v", s, err)
	}
	return sym
}
