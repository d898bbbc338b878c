package rlio

import (
	"testing"

	"github.com/dekarrin/relang/internal/automaton"
	"github.com/stretchr/testify/assert"
)

func buildSample(t *testing.T) *automaton.FiniteAutomaton {
	t.Helper()
	fa := automaton.New("q0")
	a, err := automaton.NewSymbol("a")
	if err != nil {
		t.Fatal(err)
	}
	fa.AddTransition("q0", a, "q1")
	fa.SetAccepting("q1", true)
	return fa
}

func TestMarshalUnmarshalAutomatonJSON_RoundTrips(t *testing.T) {
	fa := buildSample(t)

	data, err := MarshalAutomatonJSON(fa)
	assert.NoError(t, err)
	assert.Contains(t, string(data), "initial_state")
	assert.Contains(t, string(data), "previous_state")

	back, err := UnmarshalAutomatonJSON(data)
	assert.NoError(t, err)
	assert.Equal(t, fa.Start(), back.Start())
	assert.True(t, back.IsAccepting("q1"))
}

func TestUnmarshalAutomatonJSON_RejectsMissingInitialState(t *testing.T) {
	_, err := UnmarshalAutomatonJSON([]byte(`{"accept_states": [], "transitions": []}`))
	assert.Error(t, err)
}

func TestUnmarshalAutomatonJSON_RejectsMalformedJSON(t *testing.T) {
	_, err := UnmarshalAutomatonJSON([]byte(`not json`))
	assert.Error(t, err)
}

func TestLibrary_SaveLoadRoundTrips(t *testing.T) {
	lib := NewLibrary()
	lib.Automata["sample"] = buildSample(t)
	lib.Regexes["sample"] = "a.b*"
	lib.Grammars["sample"] = "S -> aA | &\nA -> a"

	data, err := lib.Save()
	assert.NoError(t, err)

	reloaded, err := LoadLibrary(data)
	assert.NoError(t, err)

	fa, ok := reloaded.Automata["sample"]
	assert.True(t, ok)
	assert.Equal(t, "q0", fa.Start())
	assert.True(t, fa.IsAccepting("q1"))
	assert.Equal(t, "a.b*", reloaded.Regexes["sample"])
	assert.Equal(t, "S -> aA | &\nA -> a", reloaded.Grammars["sample"])
}

func TestLoadLibrary_RejectsMalformedTOML(t *testing.T) {
	_, err := LoadLibrary([]byte("not = [valid"))
	assert.Error(t, err)
}
