// Package automaton implements the store and algorithm core for finite
// automata: the transition-table representation, ε-removal,
// determinization, minimization, the closure operations (union,
// concatenation, Kleene star, reversal, complement, intersection,
// difference), language equivalence, and sentence evaluation/enumeration.
//
// The package never logs and never holds onto a caller's slices or maps;
// every operation that can mutate a FiniteAutomaton's observable shape
// either documents itself as destructive (see the store operations below)
// or deep-copies its receiver first.
package automaton

import (
	"sort"

	"github.com/dekarrin/relang/internal/rlerrors"
	"github.com/dekarrin/relang/internal/util"
)

// FiniteAutomaton is the classic 5-tuple (Q, Σ, δ, q0, F). States are
// opaque string labels; the alphabet Σ is derived from δ rather than
// stored directly.
type FiniteAutomaton struct {
	start  string
	states util.StringSet
	accept util.StringSet
	delta  map[string]map[Symbol]util.StringSet
}

// New returns a FiniteAutomaton with a single, non-accepting start state.
func New(start string) *FiniteAutomaton {
	fa := &FiniteAutomaton{
		start:  start,
		states: util.StringSet{},
		accept: util.StringSet{},
		delta:  map[string]map[Symbol]util.StringSet{},
	}
	fa.states.Add(start)
	return fa
}

// Start returns the label of the initial state, or "" if it has been
// discarded (see DiscardState).
func (fa *FiniteAutomaton) Start() string {
	return fa.start
}

// States returns the automaton's state set Q.
func (fa *FiniteAutomaton) States() util.StringSet {
	return fa.states.Copy().(util.StringSet)
}

// AcceptStates returns the automaton's accept set F.
func (fa *FiniteAutomaton) AcceptStates() util.StringSet {
	return fa.accept.Copy().(util.StringSet)
}

// HasState reports whether q ∈ Q.
func (fa *FiniteAutomaton) HasState(q string) bool {
	return fa.states.Has(q)
}

// IsAccepting reports whether q ∈ F.
func (fa *FiniteAutomaton) IsAccepting(q string) bool {
	return fa.accept.Has(q)
}

// SetAccepting adds or removes q from F. q must already be a state.
func (fa *FiniteAutomaton) SetAccepting(q string, accepting bool) error {
	if !fa.states.Has(q) {
		return rlerrors.UnknownState(q)
	}
	if accepting {
		fa.accept.Add(q)
	} else {
		fa.accept.Remove(q)
	}
	return nil
}

// AddState adds q to Q if it is not already present.
func (fa *FiniteAutomaton) AddState(q string) {
	fa.states.Add(q)
}

// AddTransition inserts dst into δ(src, sym), adding src and dst to Q and
// sym to Σ as a side effect.
func (fa *FiniteAutomaton) AddTransition(src string, sym Symbol, dst string) {
	fa.states.Add(src)
	fa.states.Add(dst)
	bySym, ok := fa.delta[src]
	if !ok {
		bySym = map[Symbol]util.StringSet{}
		fa.delta[src] = bySym
	}
	dests, ok := bySym[sym]
	if !ok {
		dests = util.StringSet{}
		bySym[sym] = dests
	}
	dests.Add(dst)
}

// RemoveTransition removes dst from δ(src, sym), if present.
func (fa *FiniteAutomaton) RemoveTransition(src string, sym Symbol, dst string) {
	bySym, ok := fa.delta[src]
	if !ok {
		return
	}
	dests, ok := bySym[sym]
	if !ok {
		return
	}
	dests.Remove(dst)
	if dests.Empty() {
		delete(bySym, sym)
	}
	if len(bySym) == 0 {
		delete(fa.delta, src)
	}
}

// Transitate returns δ(q, s), or the empty set if there is no such
// transition. The returned set is a copy; mutating it does not affect fa.
func (fa *FiniteAutomaton) Transitate(q string, s Symbol) util.StringSet {
	bySym, ok := fa.delta[q]
	if !ok {
		return util.StringSet{}
	}
	dests, ok := bySym[s]
	if !ok {
		return util.StringSet{}
	}
	return dests.Copy().(util.StringSet)
}

// AllTransitions calls fn once per (src, sym, dst) triple currently in δ,
// in a deterministic order.
func (fa *FiniteAutomaton) AllTransitions(fn func(src string, sym Symbol, dst string)) {
	for _, src := range util.OrderedKeys(fa.delta) {
		bySym := fa.delta[src]
		syms := make([]Symbol, 0, len(bySym))
		for s := range bySym {
			syms = append(syms, s)
		}
		sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
		for _, s := range syms {
			for _, dst := range util.OrderedKeys(setToMap(bySym[s])) {
				fn(src, s, dst)
			}
		}
	}
}

func setToMap(s util.StringSet) map[string]bool {
	return map[string]bool(s)
}

// Alphabet returns Σ, the set of non-epsilon symbols mentioned anywhere in
// δ.
func (fa *FiniteAutomaton) Alphabet() map[Symbol]bool {
	alpha := map[Symbol]bool{}
	for _, bySym := range fa.delta {
		for s, dests := range bySym {
			if !s.IsEpsilon() && !dests.Empty() {
				alpha[s] = true
			}
		}
	}
	return alpha
}

// HasEpsilonTransitions reports whether any δ(q, ε) is non-empty.
func (fa *FiniteAutomaton) HasEpsilonTransitions() bool {
	for _, bySym := range fa.delta {
		if dests, ok := bySym[Epsilon]; ok && !dests.Empty() {
			return true
		}
	}
	return false
}

// IsDeterministic reports whether, for every state and non-epsilon symbol,
// there is at most one destination, and there are no epsilon-transitions.
func (fa *FiniteAutomaton) IsDeterministic() bool {
	if fa.HasEpsilonTransitions() {
		return false
	}
	for _, bySym := range fa.delta {
		for s, dests := range bySym {
			if s.IsEpsilon() {
				continue
			}
			if dests.Len() > 1 {
				return false
			}
		}
	}
	return true
}

// IsComplete reports whether fa is deterministic and every (state, symbol)
// pair over Q × Σ has exactly one transition.
func (fa *FiniteAutomaton) IsComplete() bool {
	if !fa.IsDeterministic() {
		return false
	}
	alpha := fa.Alphabet()
	for q := range fa.states {
		for s := range alpha {
			if fa.Transitate(q, s).Empty() {
				return false
			}
		}
	}
	return true
}

// Copy deep-copies fa: states, δ, and the accept set are all independent
// of the original.
func (fa *FiniteAutomaton) Copy() *FiniteAutomaton {
	dup := &FiniteAutomaton{
		start:  fa.start,
		states: fa.states.Copy().(util.StringSet),
		accept: fa.accept.Copy().(util.StringSet),
		delta:  map[string]map[Symbol]util.StringSet{},
	}
	for src, bySym := range fa.delta {
		newBySym := map[Symbol]util.StringSet{}
		for s, dests := range bySym {
			newBySym[s] = dests.Copy().(util.StringSet)
		}
		dup.delta[src] = newBySym
	}
	return dup
}

// RenameStates applies a partial relabeling to q0, Q, F, and δ. States
// missing from table keep their original label. table is not required to
// be injective; if it isn't, the renamed states are merged (their
// transitions and accepting status union together).
func (fa *FiniteAutomaton) RenameStates(table map[string]string) {
	rename := func(q string) string {
		if to, ok := table[q]; ok {
			return to
		}
		return q
	}

	renamed := &FiniteAutomaton{
		start:  rename(fa.start),
		states: util.StringSet{},
		accept: util.StringSet{},
		delta:  map[string]map[Symbol]util.StringSet{},
	}
	for q := range fa.states {
		renamed.states.Add(rename(q))
	}
	for q := range fa.accept {
		renamed.accept.Add(rename(q))
	}
	for src, bySym := range fa.delta {
		newSrc := rename(src)
		newBySym, ok := renamed.delta[newSrc]
		if !ok {
			newBySym = map[Symbol]util.StringSet{}
			renamed.delta[newSrc] = newBySym
		}
		for s, dests := range bySym {
			newDests, ok := newBySym[s]
			if !ok {
				newDests = util.StringSet{}
				newBySym[s] = newDests
			}
			for d := range dests {
				newDests.Add(rename(d))
			}
		}
	}

	*fa = *renamed
}

// PrefixStateNames renames every state q to p+q.
func (fa *FiniteAutomaton) PrefixStateNames(p string) {
	table := map[string]string{}
	for q := range fa.states {
		table[q] = p + q
	}
	fa.RenameStates(table)
}

// ResetStateNames renames q0 to "Q0" and every other state to "Q1", "Q2",
// ... in a fixed (sorted) iteration order over the original labels. Q0 is
// always the initial state after this call.
func (fa *FiniteAutomaton) ResetStateNames() {
	table := map[string]string{}
	if fa.start != "" {
		table[fa.start] = "Q0"
	}
	idx := 1
	for _, q := range util.OrderedKeys(setToMap(fa.states)) {
		if q == fa.start {
			continue
		}
		table[q] = "Q" + itoa(idx)
		idx++
	}
	fa.RenameStates(table)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	if neg {
		digits = append([]byte{'-'}, digits...)
	}
	return string(digits)
}

// DiscardState removes q from Q, F, every δ entry with q as source, and
// every destination set containing q. If q is the start state, the start
// becomes undefined (Start() returns "") until reassigned; the automaton
// is then the empty-language automaton in all but name until a caller
// picks a new start or calls RemoveDead, which replaces it with the
// canonical empty-language form.
func (fa *FiniteAutomaton) DiscardState(q string) {
	fa.states.Remove(q)
	fa.accept.Remove(q)
	delete(fa.delta, q)
	for _, bySym := range fa.delta {
		for s, dests := range bySym {
			dests.Remove(q)
			if dests.Empty() {
				delete(bySym, s)
			}
		}
	}
	if fa.start == q {
		fa.start = ""
	}
}

// Validate checks the structural invariants of a well-formed automaton:
// every state mentioned in δ is in Q, q0 ∈ Q (if defined), and F ⊆ Q.
func (fa *FiniteAutomaton) Validate() error {
	if fa.start != "" && !fa.states.Has(fa.start) {
		return rlerrors.UnknownState(fa.start)
	}
	for q := range fa.accept {
		if !fa.states.Has(q) {
			return rlerrors.UnknownState(q)
		}
	}
	for src, bySym := range fa.delta {
		if !fa.states.Has(src) {
			return rlerrors.UnknownState(src)
		}
		for _, dests := range bySym {
			for d := range dests {
				if !fa.states.Has(d) {
					return rlerrors.UnknownState(d)
				}
			}
		}
	}
	return nil
}
