package automaton

import "github.com/dekarrin/relang/internal/util"

// EpsilonClosure computes εclose(q): the least fixed point of states
// reachable from q by following only ε-transitions, including q itself.
// The depth-first walk is guarded by a visited set so ε-cycles terminate.
func (fa *FiniteAutomaton) EpsilonClosure(q string) util.StringSet {
	closure := util.StringSet{}
	var stack util.Stack[string]
	stack.Push(q)
	closure.Add(q)

	for !stack.Empty() {
		cur := stack.Pop()
		for dst := range fa.Transitate(cur, Epsilon) {
			if !closure.Has(dst) {
				closure.Add(dst)
				stack.Push(dst)
			}
		}
	}
	return closure
}

// EpsilonClosureOfSet is EpsilonClosure extended over a set of states.
func (fa *FiniteAutomaton) EpsilonClosureOfSet(qs util.StringSet) util.StringSet {
	closure := util.StringSet{}
	for q := range qs {
		closure.AddAll(fa.EpsilonClosure(q))
	}
	return closure
}

// RemoveEpsilon eliminates all ε-transitions in place: for every state q
// and every r in εclose(q), r's outgoing non-ε transitions are merged
// into q's, and q becomes accepting if r is accepting. The resulting
// automaton has the same language and no ε-transitions. This is one of
// the destructive store mutators; callers that need the original
// automaton intact must Copy() first.
func (fa *FiniteAutomaton) RemoveEpsilon() {
	orig := fa.Copy()
	result := orig.Copy()

	for q := range orig.states {
		closure := orig.EpsilonClosure(q)
		for r := range closure {
			if orig.accept.Has(r) {
				result.accept.Add(q)
			}
			bySym := orig.delta[r]
			for s, dests := range bySym {
				if s.IsEpsilon() {
					continue
				}
				for d := range dests {
					result.AddTransition(q, s, d)
				}
			}
		}
	}

	for src, bySym := range result.delta {
		delete(bySym, Epsilon)
		if len(bySym) == 0 {
			delete(result.delta, src)
		}
	}

	*fa = *result
}
