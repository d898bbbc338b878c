package automaton

import (
	"sort"

	"github.com/dekarrin/relang/internal/util"
)

// Evaluate reports whether fa accepts w. The frontier of
// currently-reachable states starts at {q0} and is advanced one symbol at
// a time; rejection is immediate once the frontier empties.
func (fa *FiniteAutomaton) Evaluate(w Sentence) bool {
	frontier := util.StringSet{fa.start: true}

	for _, s := range w {
		next := util.StringSet{}
		for q := range frontier {
			next.AddAll(fa.Transitate(q, s))
		}
		frontier = next
		if frontier.Empty() {
			return false
		}
	}

	for q := range frontier {
		if fa.accept.Has(q) {
			return true
		}
	}
	return false
}

// GenSentences enumerates every accepted sentence of length exactly n,
// by breadth-first expansion over (state, prefix) pairs to depth n,
// skipping ε-transitions. Results are deduplicated and returned in
// lexicographic order.
func (fa *FiniteAutomaton) GenSentences(n int) []Sentence {
	type frontierItem struct {
		state  string
		prefix Sentence
	}

	alpha := sortedAlphabet(fa.Alphabet())
	frontier := []frontierItem{{state: fa.start, prefix: Sentence{}}}

	for depth := 0; depth < n; depth++ {
		var next []frontierItem
		for _, item := range frontier {
			for _, s := range alpha {
				for d := range fa.Transitate(item.state, s) {
					extended := make(Sentence, len(item.prefix)+1)
					copy(extended, item.prefix)
					extended[len(item.prefix)] = s
					next = append(next, frontierItem{state: d, prefix: extended})
				}
			}
		}
		frontier = next
	}

	seen := map[string]bool{}
	var results []Sentence
	for _, item := range frontier {
		if !fa.accept.Has(item.state) {
			continue
		}
		key := item.prefix.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		results = append(results, item.prefix)
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Less(results[j]) })
	return results
}

func sortedAlphabet(alpha map[Symbol]bool) []Symbol {
	syms := make([]Symbol, 0, len(alpha))
	for s := range alpha {
		syms = append(syms, s)
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
	return syms
}
