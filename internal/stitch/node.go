// Package stitch implements De Simone's direct regex-to-DFA construction:
// the regex AST is "stitched" with a seam back-pointer on every node that
// is not UNION or CONCATENATION, and the resulting DFA is built by
// walking reachable "compositions" of leaf nodes rather than by
// constructing an NFA and subset-determinizing it.
package stitch

import (
	"github.com/dekarrin/relang/internal/automaton"
	"github.com/dekarrin/relang/internal/regex"
)

// Node mirrors a regex.Node but carries the extra bookkeeping the
// construction needs: an in-order index (for composition keys) and a seam
// back-pointer (nil + SeamIsLambda for the sentinel, unset entirely for
// UNION/CONCATENATION nodes, which never get a seam).
type Node struct {
	Kind  regex.Kind
	Sym   automaton.Symbol
	Left  *Node
	Right *Node

	Seam         *Node
	SeamIsLambda bool
	index        int
}

// Build copies a regex.Node tree into a fresh, unstitched *Node tree.
func Build(root *regex.Node) *Node {
	if root == nil {
		return nil
	}
	return &Node{
		Kind:  root.Kind,
		Sym:   root.Sym,
		Left:  Build(root.Left),
		Right: Build(root.Right),
	}
}

// BuildAndStitch builds the stitched copy of root and assigns seams.
func BuildAndStitch(root *regex.Node) *Node {
	n := Build(root)
	Stitch(n)
	return n
}

// leafAlphabet collects the distinct symbols labeling SYMBOL leaves of the
// tree rooted at n.
func leafAlphabet(n *Node) map[automaton.Symbol]bool {
	alpha := map[automaton.Symbol]bool{}
	var walk func(*Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		if n.Kind == regex.KindSymbol {
			alpha[n.Sym] = true
		}
		walk(n.Left)
		walk(n.Right)
	}
	walk(n)
	return alpha
}
