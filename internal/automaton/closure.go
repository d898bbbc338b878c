package automaton

import "github.com/dekarrin/relang/internal/util"

// mergeInto adds every state, transition, and accept state of src into
// dst, leaving src untouched.
func mergeInto(dst, src *FiniteAutomaton) {
	for q := range src.states {
		dst.AddState(q)
	}
	for q := range src.accept {
		dst.accept.Add(q)
	}
	src.AllTransitions(func(s string, sym Symbol, d string) {
		dst.AddTransition(s, sym, d)
	})
}

// copyOutEdges copies every transition leading out of "from" in src onto
// "to" in dst. src and dst may be the same automaton.
func copyOutEdges(dst, src *FiniteAutomaton, from, to string) {
	bySym := src.delta[from]
	for sym, dests := range bySym {
		for d := range dests {
			dst.AddTransition(to, sym, d)
		}
	}
}

// Union returns an NFA accepting L(a) ∪ L(b). a and b are renamed
// disjoint, a fresh start state replicates both originals' out-edges, and
// the fresh start is accepting iff either original start was — preserving
// ε-membership, per the Open Question resolution in DESIGN.md.
func Union(a, b *FiniteAutomaton) *FiniteAutomaton {
	a2 := a.Copy()
	a2.PrefixStateNames("fa1_")
	b2 := b.Copy()
	b2.PrefixStateNames("fa2_")

	result := New("Q0_union_start")
	mergeInto(result, a2)
	mergeInto(result, b2)

	copyOutEdges(result, a2, a2.start, result.start)
	copyOutEdges(result, b2, b2.start, result.start)

	if a2.IsAccepting(a2.start) || b2.IsAccepting(b2.start) {
		result.accept.Add(result.start)
	}

	result.ResetStateNames()
	return result
}

// Concatenate returns an NFA accepting L(a)·L(b). Every accept
// state of (a renamed-disjoint) a gets b's start's out-edges copied onto
// it; it keeps its accepting status only if b's start is itself
// accepting.
func Concatenate(a, b *FiniteAutomaton) *FiniteAutomaton {
	a2 := a.Copy()
	a2.PrefixStateNames("fa1_")
	b2 := b.Copy()
	b2.PrefixStateNames("fa2_")

	result := New(a2.start)
	mergeInto(result, a2)
	mergeInto(result, b2)

	bStartAccepts := b2.IsAccepting(b2.start)
	for f := range a2.accept {
		copyOutEdges(result, b2, b2.start, f)
		if !bStartAccepts {
			result.accept.Remove(f)
		}
	}

	result.ResetStateNames()
	return result
}

// KleeneStar returns an NFA accepting L(a)*: every accept state
// gets q0's out-edges copied onto it, and q0 itself becomes accepting so
// the empty string is included.
func KleeneStar(a *FiniteAutomaton) *FiniteAutomaton {
	result := a.Copy()
	for f := range a.accept {
		copyOutEdges(result, a, a.start, f)
	}
	result.accept.Add(result.start)

	result.ResetStateNames()
	return result
}

// Reverse returns an NFA accepting the reversal of L(a): every
// transition is flipped, a fresh start state inherits the (now-reversed)
// out-edges of every original accept state, and the sole accept state is
// the original start.
func Reverse(a *FiniteAutomaton) *FiniteAutomaton {
	result := New("Q0_rev_start")
	for q := range a.states {
		result.AddState(q)
	}
	a.AllTransitions(func(src string, sym Symbol, dst string) {
		result.AddTransition(dst, sym, src)
	})

	for f := range a.accept {
		copyOutEdges(result, result, f, result.start)
	}

	result.accept = util.StringSet{}
	result.accept.Add(a.start)

	result.ResetStateNames()
	return result
}
