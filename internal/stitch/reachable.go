package stitch

import "github.com/dekarrin/relang/internal/regex"

// Direction is which way ReachableSymbols walks the stitched tree from a
// node: DOWN into the subtree rooted there, or UP via seams toward
// whatever follows it in-order.
type Direction int

const (
	Down Direction = iota
	Up
)

// Composition is a set of leaf nodes reachable from some starting point,
// together with whether λ (end of the whole expression) is also reachable.
// Compositions are the states of the constructed DFA.
type Composition struct {
	Leaves map[*Node]bool
	Lambda bool
}

func newComposition() Composition {
	return Composition{Leaves: map[*Node]bool{}}
}

func (c Composition) union(o Composition) Composition {
	out := newComposition()
	for n := range c.Leaves {
		out.Leaves[n] = true
	}
	for n := range o.Leaves {
		out.Leaves[n] = true
	}
	out.Lambda = c.Lambda || o.Lambda
	return out
}

type nodeDir struct {
	n   *Node
	dir Direction
}

// ReachableSymbols computes the composition reachable from n in the given
// direction. Each (node, direction) pair is visited at most once
// per call, which is what keeps this from looping forever on the cycles
// that seams can induce (e.g. a KLEENESTAR node's own seam chain can lead
// back to itself).
func ReachableSymbols(n *Node, dir Direction) Composition {
	return reachable(n, dir, map[nodeDir]bool{})
}

func reachable(n *Node, dir Direction, visited map[nodeDir]bool) Composition {
	key := nodeDir{n, dir}
	if visited[key] {
		return newComposition()
	}
	visited[key] = true

	switch n.Kind {
	case regex.KindSymbol:
		if dir == Down {
			c := newComposition()
			c.Leaves[n] = true
			return c
		}
		return followSeam(n, visited)

	case regex.KindUnion:
		if dir == Down {
			return reachable(n.Left, Down, visited).union(reachable(n.Right, Down, visited))
		}
		return followSeam(rightmostDescendant(n), visited)

	case regex.KindConcatenation:
		if dir == Down {
			return reachable(n.Left, Down, visited)
		}
		return reachable(n.Right, Down, visited)

	case regex.KindOption:
		if dir == Down {
			return reachable(n.Left, Down, visited).union(followSeam(n, visited))
		}
		return followSeam(n, visited)

	case regex.KindKleeneStar:
		return reachable(n.Left, Down, visited).union(followSeam(n, visited))

	default:
		panic("stitch: unhandled node kind")
	}
}

// followSeam follows n's seam UP, producing the λ-only composition if n's
// seam is the sentinel.
func followSeam(n *Node, visited map[nodeDir]bool) Composition {
	if n.SeamIsLambda {
		c := newComposition()
		c.Lambda = true
		return c
	}
	if n.Seam == nil {
		c := newComposition()
		c.Lambda = true
		return c
	}
	return reachable(n.Seam, Up, visited)
}

// rightmostDescendant walks from n through Right children of UNION and
// CONCATENATION nodes until it reaches a node that is neither (a leaf, an
// OPTION, or a KLEENESTAR) — the last node of n's subtree in in-order
// sequence.
func rightmostDescendant(n *Node) *Node {
	cur := n
	for cur.Kind == regex.KindUnion || cur.Kind == regex.KindConcatenation {
		cur = cur.Right
	}
	return cur
}
