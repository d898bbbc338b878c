package automaton

import "github.com/dekarrin/relang/internal/util"

// RemoveUnreachable discards every state not reachable from q0 by forward
// BFS through δ (including ε-edges).
func (fa *FiniteAutomaton) RemoveUnreachable() *FiniteAutomaton {
	result := fa.Copy()
	if result.start == "" {
		return result
	}

	reach := util.StringSet{}
	var stack util.Stack[string]
	stack.Push(result.start)
	reach.Add(result.start)

	for !stack.Empty() {
		cur := stack.Pop()
		for _, dests := range result.delta[cur] {
			for d := range dests {
				if !reach.Has(d) {
					reach.Add(d)
					stack.Push(d)
				}
			}
		}
	}

	for q := range result.states.Copy().(util.StringSet) {
		if !reach.Has(q) {
			result.DiscardState(q)
		}
	}
	return result
}

// RemoveDead discards every dead state: a state that is not accepting and
// from which no accept state is reachable. Live states are computed as
// the reverse reachability closure of F over δ, which guards against the
// infinite recursion a naive inductive "is_dead" check would hit on
// cycles. If q0 ends up discarded, the language is empty and the result
// is the canonical empty-language automaton: one non-accepting state with
// a self-loop on every symbol of the original alphabet.
func (fa *FiniteAutomaton) RemoveDead() *FiniteAutomaton {
	origAlpha := fa.Alphabet()
	result := fa.Copy()

	reverseAdj := map[string]util.StringSet{}
	for src, bySym := range result.delta {
		for _, dests := range bySym {
			for d := range dests {
				if reverseAdj[d] == nil {
					reverseAdj[d] = util.StringSet{}
				}
				reverseAdj[d].Add(src)
			}
		}
	}

	live := util.StringSet{}
	var stack util.Stack[string]
	for q := range result.accept {
		live.Add(q)
		stack.Push(q)
	}
	for !stack.Empty() {
		cur := stack.Pop()
		for pred := range reverseAdj[cur] {
			if !live.Has(pred) {
				live.Add(pred)
				stack.Push(pred)
			}
		}
	}

	for q := range result.states.Copy().(util.StringSet) {
		if !live.Has(q) {
			result.DiscardState(q)
		}
	}

	if result.start == "" {
		return canonicalEmpty(origAlpha)
	}
	return result
}

// canonicalEmpty returns the empty-language automaton over alpha: a
// single non-accepting state looping on every symbol.
func canonicalEmpty(alpha map[Symbol]bool) *FiniteAutomaton {
	fa := New("Q0")
	for s := range alpha {
		fa.AddTransition("Q0", s, "Q0")
	}
	return fa
}
