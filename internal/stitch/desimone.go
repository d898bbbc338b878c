package stitch

import (
	"sort"
	"strconv"
	"strings"

	"github.com/dekarrin/relang/internal/automaton"
	"github.com/dekarrin/relang/internal/regex"
	"github.com/dekarrin/relang/internal/util"
)

// ToDFA builds a DFA for root directly, without an intermediate NFA, by
// stitching the tree and then exploring the graph of reachable
// compositions, following De Simone's construction. The initial state is
// ReachableSymbols(root, DOWN);
// from a composition C, the transition on symbol s unions
// ReachableSymbols(leaf, UP) over every leaf in C labeled s. A composition
// is accepting iff λ is reachable in it.
func ToDFA(root *regex.Node) *automaton.FiniteAutomaton {
	tree := BuildAndStitch(root)
	alpha := leafAlphabet(tree)

	initial := ReachableSymbols(tree, Down)
	startKey := compositionKey(initial)

	result := automaton.New(startKey)
	if initial.Lambda {
		result.SetAccepting(startKey, true)
	}

	labeled := map[string]Composition{startKey: initial}
	seen := map[string]bool{startKey: true}

	var worklist util.Stack[string]
	worklist.Push(startKey)

	for !worklist.Empty() {
		curKey := worklist.Pop()
		cur := labeled[curKey]

		for s := range alpha {
			next := newComposition()
			any := false
			for leaf := range cur.Leaves {
				if leaf.Sym != s {
					continue
				}
				any = true
				next = next.union(ReachableSymbols(leaf, Up))
			}
			if !any {
				continue
			}

			nextKey := compositionKey(next)
			if !seen[nextKey] {
				seen[nextKey] = true
				labeled[nextKey] = next
				result.AddState(nextKey)
				if next.Lambda {
					result.SetAccepting(nextKey, true)
				}
				worklist.Push(nextKey)
			}
			result.AddTransition(curKey, s, nextKey)
		}
	}

	return result
}

// compositionKey gives a composition a canonical, stable label derived
// from the in-order indices of its leaves, so structurally identical
// compositions reached by different paths collapse to the same DFA state.
func compositionKey(c Composition) string {
	idxs := make([]int, 0, len(c.Leaves))
	for n := range c.Leaves {
		idxs = append(idxs, n.index)
	}
	sort.Ints(idxs)

	parts := make([]string, len(idxs))
	for i, idx := range idxs {
		parts[i] = strconv.Itoa(idx)
	}
	key := strings.Join(parts, ",")
	if c.Lambda {
		key += "#"
	}
	if key == "" {
		key = "#dead#"
	}
	return key
}
