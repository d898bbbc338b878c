package rlio

import (
	"bytes"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/dekarrin/relang/internal/automaton"
	"github.com/dekarrin/relang/internal/rlerrors"
)

// libraryFile is the .rll on-disk shape: a TOML document holding a table
// of named automata, keyed by the name the user gave each one in the
// session (the multi-automaton "library" rlctl and rlsrv both operate
// over). Named regexes and grammars are stored as their source text
// rather than compiled, so edits to a library file stay human-editable.
type libraryFile struct {
	Automaton map[string]automatonEntry `toml:"automaton"`
	Regex     map[string]string         `toml:"regex"`
	Grammar   map[string]string         `toml:"grammar"`
}

type automatonEntry struct {
	InitialState string             `toml:"initial_state"`
	AcceptStates []string           `toml:"accept_states"`
	Transitions  []transitionEntry  `toml:"transitions"`
}

type transitionEntry struct {
	PreviousState string   `toml:"previous_state"`
	Symbol        string   `toml:"symbol"`
	NextStates    []string `toml:"next_states"`
}

// Library is an in-memory, named collection of automata, regex source
// strings, and grammar source strings, as loaded from or destined for a
// .rll file.
type Library struct {
	Automata map[string]*automaton.FiniteAutomaton
	Regexes  map[string]string
	Grammars map[string]string
}

// NewLibrary returns an empty Library.
func NewLibrary() *Library {
	return &Library{
		Automata: map[string]*automaton.FiniteAutomaton{},
		Regexes:  map[string]string{},
		Grammars: map[string]string{},
	}
}

// LoadLibrary parses a .rll TOML document.
func LoadLibrary(data []byte) (*Library, error) {
	var file libraryFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, rlerrors.MalformedGrammar(string(data), "invalid library file: "+err.Error())
	}

	lib := NewLibrary()
	for name, entry := range file.Automaton {
		fa := automaton.New(entry.InitialState)
		for _, acc := range entry.AcceptStates {
			fa.AddState(acc)
		}
		for _, t := range entry.Transitions {
			sym, err := automaton.NewSymbol(t.Symbol)
			if err != nil {
				return nil, err
			}
			for _, dst := range t.NextStates {
				fa.AddTransition(t.PreviousState, sym, dst)
			}
		}
		for _, acc := range entry.AcceptStates {
			if err := fa.SetAccepting(acc, true); err != nil {
				return nil, err
			}
		}
		if err := fa.Validate(); err != nil {
			return nil, err
		}
		lib.Automata[name] = fa
	}
	for name, src := range file.Regex {
		lib.Regexes[name] = src
	}
	for name, src := range file.Grammar {
		lib.Grammars[name] = src
	}
	return lib, nil
}

// Save renders lib as a .rll TOML document.
func (lib *Library) Save() ([]byte, error) {
	file := libraryFile{
		Automaton: map[string]automatonEntry{},
		Regex:     lib.Regexes,
		Grammar:   lib.Grammars,
	}

	for name, fa := range lib.Automata {
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

		entry := automatonEntry{
			InitialState: fa.Start(),
		}
		accept := fa.AcceptStates()
		for q := range accept {
			entry.AcceptStates = append(entry.AcceptStates, q)
		}
		sort.Strings(entry.AcceptStates)

		for _, k := range order {
			entry.Transitions = append(entry.Transitions, transitionEntry{
				PreviousState: k.src,
				Symbol:        k.sym.String(),
				NextStates:    grouped[k],
			})
		}
		file.Automaton[name] = entry
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(file); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
