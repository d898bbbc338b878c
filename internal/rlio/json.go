// Package rlio handles on-disk representations: a fixed JSON automaton
// wire format (matched byte-for-byte in field names and shape, via the
// standard library's encoding/json) and the library file format that
// groups several named automata, regexes, and grammars into one
// document (via github.com/BurntSushi/toml, the same dependency the
// configuration layer uses).
package rlio

import (
	"encoding/json"

	"github.com/dekarrin/relang/internal/automaton"
	"github.com/dekarrin/relang/internal/rlerrors"
	"github.com/dekarrin/relang/internal/util"
)

type transitionWire struct {
	PreviousState string   `json:"previous_state"`
	Symbol        string   `json:"symbol"`
	NextStates    []string `json:"next_states"`
}

type automatonWire struct {
	InitialState string           `json:"initial_state"`
	AcceptStates []string         `json:"accept_states"`
	Transitions  []transitionWire `json:"transitions"`
}

// MarshalAutomatonJSON renders fa in the wire format described above.
func MarshalAutomatonJSON(fa *automaton.FiniteAutomaton) ([]byte, error) {
	wire := automatonWire{
		InitialState: fa.Start(),
		AcceptStates: util.OrderedKeys(map[string]bool(fa.AcceptStates())),
	}

	type key struct {
		src string
		sym automaton.Symbol
	}
	var order []key
	grouped := map[key][]string{}

	fa.AllTransitions(func(src string, sym automaton.Symbol, dst string) {
		k := key{src, sym}
		if _, ok := grouped[k]; !ok {
			order = append(order, k)
		}
		grouped[k] = append(grouped[k], dst)
	})

	for _, k := range order {
		wire.Transitions = append(wire.Transitions, transitionWire{
			PreviousState: k.src,
			Symbol:        k.sym.String(),
			NextStates:    grouped[k],
		})
	}

	return json.MarshalIndent(wire, "", "  ")
}

// UnmarshalAutomatonJSON parses the wire format described above into a
// FiniteAutomaton.
func UnmarshalAutomatonJSON(data []byte) (*automaton.FiniteAutomaton, error) {
	var wire automatonWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, rlerrors.MalformedGrammar(string(data), "invalid automaton JSON: "+err.Error())
	}
	if wire.InitialState == "" {
		return nil, rlerrors.MalformedGrammar(string(data), "missing initial_state")
	}

	fa := automaton.New(wire.InitialState)
	for _, acc := range wire.AcceptStates {
		fa.AddState(acc)
	}
	for _, t := range wire.Transitions {
		sym, err := automaton.NewSymbol(t.Symbol)
		if err != nil {
			return nil, err
		}
		for _, dst := range t.NextStates {
			fa.AddTransition(t.PreviousState, sym, dst)
		}
	}
	for _, acc := range wire.AcceptStates {
		if err := fa.SetAccepting(acc, true); err != nil {
			return nil, err
		}
	}
	if err := fa.Validate(); err != nil {
		return nil, err
	}
	return fa, nil
}
