package automaton

import "github.com/dekarrin/relang/internal/util"

// Complete mutates fa in place so that every (state, symbol) pair over
// Q × Σ has exactly one transition, introducing (or reusing) a "Qerror"
// sink state with a self-loop on every symbol for any pair that was
// previously missing. This is a destructive store mutator; fa must
// already be deterministic for the result to be a complete DFA, but
// Complete does not itself check that.
func (fa *FiniteAutomaton) Complete() {
	alpha := fa.Alphabet()
	if len(alpha) == 0 {
		return
	}

	qlist := util.OrderedKeys(setToMap(fa.states))
	missing := false
	for _, q := range qlist {
		for s := range alpha {
			if fa.Transitate(q, s).Empty() {
				missing = true
			}
		}
	}
	if !missing {
		return
	}

	const errState = "Qerror"
	fa.AddState(errState)
	for _, q := range append(qlist, errState) {
		for s := range alpha {
			if fa.Transitate(q, s).Empty() {
				fa.AddTransition(q, s, errState)
			}
		}
	}
}

// Complement returns a DFA accepting Σ* \ L(a): determinize, complete,
// then flip the accept set.
func Complement(a *FiniteAutomaton) *FiniteAutomaton {
	result := a.Determinize()
	result.Complete()
	result.accept = result.states.Difference(result.accept).(util.StringSet)
	return result
}

// Intersection returns an automaton accepting L(a) ∩ L(b), built via the
// De Morgan identity A ∩ B = ¬(¬A ∪ ¬B) rather than a direct product
// construction.
func Intersection(a, b *FiniteAutomaton) *FiniteAutomaton {
	notA := Complement(a)
	notB := Complement(b)
	return Complement(Union(notA, notB))
}

// Difference returns an automaton accepting L(a) \ L(b) = L(a) ∩ ¬L(b).
func Difference(a, b *FiniteAutomaton) *FiniteAutomaton {
	return Intersection(a, Complement(b))
}

// Equivalent reports whether a and b accept the same language. Testing
// only (A ∩ ¬B) for emptiness is not sufficient in general, since a
// language can be a strict subset of another without being equal to it;
// this checks emptiness in both directions.
func Equivalent(a, b *FiniteAutomaton) bool {
	return isEmptyLanguage(Intersection(a, Complement(b))) &&
		isEmptyLanguage(Intersection(Complement(a), b))
}

// isEmptyLanguage reports whether fa's language is empty: after removing
// unreachable and dead states, either q0 was discarded (replaced by the
// canonical empty automaton, with no accept states) or every surviving
// state is live, so a non-empty accept set after pruning means there is a
// reachable accepting state and thus at least one accepted sentence.
func isEmptyLanguage(fa *FiniteAutomaton) bool {
	pruned := fa.RemoveUnreachable().RemoveDead()
	return pruned.accept.Empty()
}
