package automaton

import (
	"strings"

	"github.com/dekarrin/relang/internal/util"
)

// Determinize builds a DFA accepting the same language as fa via subset
// construction (purple dragon book algorithm 3.20). If fa still has
// ε-transitions, RemoveEpsilon is run as a prelude so that S0 = εclose(q0)
// collapses to the trivial singleton {q0}. States are named after reset
// (ResetStateNames), so the caller cannot rely on any particular labeling
// beyond Q0 being the initial state.
func (fa *FiniteAutomaton) Determinize() *FiniteAutomaton {
	src := fa.Copy()
	if src.HasEpsilonTransitions() {
		src.RemoveEpsilon()
	}
	alpha := src.Alphabet()

	startSet := util.StringSet{src.start: true}
	startLabel := subsetLabel(startSet)

	result := New(startLabel)
	if subsetAccepts(startSet, src.accept) {
		result.accept.Add(startLabel)
	}

	seen := map[string]util.StringSet{startLabel: startSet}
	var worklist util.Stack[string]
	worklist.Push(startLabel)

	for !worklist.Empty() {
		curLabel := worklist.Pop()
		curSet := seen[curLabel]

		for s := range alpha {
			dest := util.StringSet{}
			for q := range curSet {
				dest.AddAll(src.Transitate(q, s))
			}
			if dest.Empty() {
				continue
			}

			destLabel := subsetLabel(dest)
			if _, ok := seen[destLabel]; !ok {
				seen[destLabel] = dest
				result.AddState(destLabel)
				if subsetAccepts(dest, src.accept) {
					result.accept.Add(destLabel)
				}
				worklist.Push(destLabel)
			}
			result.AddTransition(curLabel, s, destLabel)
		}
	}

	result.ResetStateNames()
	return result
}

func subsetLabel(s util.StringSet) string {
	keys := util.OrderedKeys(setToMap(s))
	return strings.Join(keys, ",")
}

func subsetAccepts(s, accept util.StringSet) bool {
	for q := range s {
		if accept.Has(q) {
			return true
		}
	}
	return false
}
