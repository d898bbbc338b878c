package rlfmt

import (
	"testing"

	"github.com/dekarrin/relang/internal/automaton"
	"github.com/dekarrin/relang/internal/grammar"
	"github.com/stretchr/testify/assert"
)

func TestAutomaton_RendersStatesAndSymbol(t *testing.T) {
	fa := automaton.New("q0")
	a, err := automaton.NewSymbol("a")
	assert.NoError(t, err)
	fa.AddTransition("q0", a, "q1")
	fa.SetAccepting("q1", true)

	out := Automaton(fa)
	assert.Contains(t, out, "q0")
	assert.Contains(t, out, "q1")
}

func TestSentences_ReportsCount(t *testing.T) {
	fa := automaton.New("q0")
	a, err := automaton.NewSymbol("a")
	assert.NoError(t, err)
	fa.AddTransition("q0", a, "q0")
	fa.SetAccepting("q0", true)

	out := Sentences(fa, 2)
	assert.Contains(t, out, "1 sentence(s) of length 2")
	assert.Contains(t, out, "aa")
}

func TestGrammar_Renders(t *testing.T) {
	g, err := grammar.Parse("S -> aA | &\nA -> a")
	assert.NoError(t, err)

	out := Grammar(g)
	assert.Contains(t, out, "S ->")
}
