// Package grammar implements right-linear (regular) grammars and their
// equivalence with finite automata: every production is of the form
// Head -> aBody, Head -> a, or Head -> ε, where a is a terminal and Body
// is another non-terminal.
package grammar

import (
	"sort"

	"github.com/dekarrin/relang/internal/automaton"
	"github.com/dekarrin/relang/internal/util"
)

// Production is one alternative body of a right-linear production. Epsilon
// productions carry neither a Symbol nor a NonTerminal. A production that
// ends the derivation carries a Symbol but no NonTerminal. Otherwise both
// are set.
type Production struct {
	Epsilon     bool
	Symbol      automaton.Symbol
	NonTerminal string // "" if this production ends after Symbol
}

// RegularGrammar is a right-linear grammar: a start non-terminal and a set
// of productions keyed by head.
type RegularGrammar struct {
	start       string
	productions map[string][]Production
}

// New returns an empty grammar with the given start non-terminal.
func New(start string) *RegularGrammar {
	return &RegularGrammar{
		start:       start,
		productions: map[string][]Production{},
	}
}

// Start returns the start non-terminal.
func (g *RegularGrammar) Start() string {
	return g.start
}

// NonTerminals returns every non-terminal with at least one production, in
// sorted order with the start symbol first.
func (g *RegularGrammar) NonTerminals() []string {
	keys := util.OrderedKeys(g.productions)
	return orderWithStartFirst(keys, g.start)
}

// Productions returns the bodies of head, in declaration order.
func (g *RegularGrammar) Productions(head string) []Production {
	return append([]Production{}, g.productions[head]...)
}

// AddProduction appends p to head's production list, creating head if
// necessary.
func (g *RegularGrammar) AddProduction(head string, p Production) {
	g.productions[head] = append(g.productions[head], p)
}

func orderWithStartFirst(keys []string, start string) []string {
	out := make([]string, 0, len(keys))
	if contains(keys, start) {
		out = append(out, start)
	}
	for _, k := range keys {
		if k != start {
			out = append(out, k)
		}
	}
	return out
}

func contains(keys []string, target string) bool {
	for _, k := range keys {
		if k == target {
			return true
		}
	}
	return false
}

// ToAutomaton builds an NFA recognizing the same language as g. Every
// production Head -> aBody becomes a transition δ(Head, a) = Body; every
// production Head -> a (no following non-terminal) additionally routes
// through a shared accepting sink, since the grammar's notion of "stop
// here" has no analogue among the non-terminal states themselves; every
// production Head -> ε marks Head itself accepting.
func (g *RegularGrammar) ToAutomaton() *automaton.FiniteAutomaton {
	fa := automaton.New(g.start)

	const sink = "Qaccept"
	needsSink := false

	for head, bodies := range g.productions {
		fa.AddState(head)
		for _, p := range bodies {
			if p.Epsilon {
				fa.SetAccepting(head, true)
				continue
			}
			if p.NonTerminal != "" {
				fa.AddTransition(head, p.Symbol, p.NonTerminal)
			} else {
				needsSink = true
				fa.AddTransition(head, p.Symbol, sink)
			}
		}
	}

	if needsSink {
		fa.SetAccepting(sink, true)
	}
	return fa
}

// FromAutomaton builds a RegularGrammar equivalent to fa. Only states
// reachable from the start state are named and given productions; a
// state fa never reaches contributes nothing to the grammar. Each
// reachable state is given a deterministic non-terminal name: the start
// state is always "S"; the rest are named "A", "B", ..., "Z", "A'",
// "B'", ... in sorted order of their original labels. For every
// transition δ(q, a) = r: N(q) -> aN(r) is emitted if r itself has at
// least one outgoing transition (otherwise r would be a non-terminal
// with no productions of its own), and N(q) -> a is additionally
// emitted if r is accepting, since stopping right there is itself a
// valid derivation. Only the start state's own acceptance is ever
// represented with an ε-production (S -> ε); every other accepting
// state's acceptance is folded into the terminal-only alternative its
// predecessors get above.
func FromAutomaton(fa *automaton.FiniteAutomaton) *RegularGrammar {
	fa = fa.RemoveUnreachable()
	names := nameStates(fa)
	g := New(names[fa.Start()])

	hasOutgoing := map[string]bool{}
	fa.AllTransitions(func(src string, _ automaton.Symbol, _ string) {
		hasOutgoing[src] = true
	})

	fa.AllTransitions(func(src string, sym automaton.Symbol, dst string) {
		head := names[src]
		if hasOutgoing[dst] {
			g.AddProduction(head, Production{Symbol: sym, NonTerminal: names[dst]})
		}
		if fa.IsAccepting(dst) {
			g.AddProduction(head, Production{Symbol: sym})
		}
	})

	if fa.IsAccepting(fa.Start()) {
		g.AddProduction(names[fa.Start()], Production{Epsilon: true})
	}

	return g
}

func nameStates(fa *automaton.FiniteAutomaton) map[string]string {
	states := fa.States()
	names := map[string]string{fa.Start(): "S"}

	var rest []string
	for q := range states {
		if q != fa.Start() {
			rest = append(rest, q)
		}
	}
	sort.Strings(rest)

	generated := generateNames(len(rest))
	for i, q := range rest {
		names[q] = generated[i]
	}
	return names
}

// generateNames returns n distinct non-terminal names, never "S": "A"
// through "Z", then "A'" through "Z'", then "A''" and so on.
func generateNames(n int) []string {
	out := make([]string, 0, n)
	suffix := ""
	for len(out) < n {
		for c := byte('A'); c <= 'Z' && len(out) < n; c++ {
			out = append(out, string(c)+suffix)
		}
		suffix += "'"
	}
	return out
}
