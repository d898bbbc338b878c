package automaton

import (
	"github.com/dekarrin/relang/internal/rlerrors"
	"github.com/dekarrin/relang/internal/util"
)

// partBlock is one block of the partition-refinement worklist. Blocks
// need stable identity across splits (to support "replace Y in W with
// both halves"), which a bare util.StringSet can't give us, hence the id.
type partBlock struct {
	id     int
	states util.StringSet
}

// Minimize runs Hopcroft-style partition refinement. The
// automaton must already be deterministic; otherwise MustBeDeterministic
// is returned. The pipeline is: remove unreachable states, remove dead
// states (which itself falls back to the canonical empty automaton if q0
// is discarded), complete the result, then refine.
func (fa *FiniteAutomaton) Minimize() (*FiniteAutomaton, error) {
	if !fa.IsDeterministic() {
		return nil, rlerrors.MustBeDeterministic("minimize")
	}

	working := fa.RemoveUnreachable().RemoveDead()
	working.Complete()
	alpha := working.Alphabet()

	nextID := 0
	newBlock := func(s util.StringSet) *partBlock {
		nextID++
		return &partBlock{id: nextID, states: s}
	}

	fBlock := newBlock(working.accept.Copy().(util.StringSet))
	nonF := working.states.Difference(working.accept).(util.StringSet)

	P := []*partBlock{fBlock}
	if !nonF.Empty() {
		P = append(P, newBlock(nonF))
	}
	W := []*partBlock{fBlock}

	for len(W) > 0 {
		A := W[len(W)-1]
		W = W[:len(W)-1]

		for s := range alpha {
			X := util.StringSet{}
			for q := range working.states {
				for d := range working.Transitate(q, s) {
					if A.states.Has(d) {
						X.Add(q)
					}
				}
			}
			if X.Empty() {
				continue
			}

			snapshot := append([]*partBlock{}, P...)
			for _, Y := range snapshot {
				inter := X.Intersection(Y.states).(util.StringSet)
				diff := Y.states.Difference(X).(util.StringSet)
				if inter.Empty() || diff.Empty() {
					continue
				}

				b1 := newBlock(inter)
				b2 := newBlock(diff)
				P = removeBlock(P, Y)
				P = append(P, b1, b2)

				if idx := blockIndex(W, Y); idx >= 0 {
					W = removeBlock(W, Y)
					W = append(W, b1, b2)
				} else if inter.Len() <= diff.Len() {
					W = append(W, b1)
				} else {
					W = append(W, b2)
				}
			}
		}
	}

	stateToRep := map[string]string{}
	for _, b := range P {
		keys := util.OrderedKeys(setToMap(b.states))
		rep := keys[0]
		for _, q := range keys {
			stateToRep[q] = rep
		}
	}

	result := working.Copy()
	result.RenameStates(stateToRep)
	result.ResetStateNames()
	return result, nil
}

func blockIndex(list []*partBlock, b *partBlock) int {
	for i, x := range list {
		if x.id == b.id {
			return i
		}
	}
	return -1
}

func removeBlock(list []*partBlock, b *partBlock) []*partBlock {
	out := make([]*partBlock, 0, len(list))
	for _, x := range list {
		if x.id != b.id {
			out = append(out, x)
		}
	}
	return out
}
