package stitch

import "github.com/dekarrin/relang/internal/regex"

// Stitch walks root in-order (left, self, right — which for the unary
// KLEENESTAR/OPTION nodes reduces to child-then-self, the usual postfix
// reading) and assigns every non-UNION, non-CONCATENATION node's seam to
// its immediate in-order successor, or marks it as the λ sentinel if it is
// the last node in the sequence. UNION and CONCATENATION nodes are still
// visited so they occupy a slot in the sequence — a seam can legitimately
// point AT one of them — but they never receive a seam of their own.
func Stitch(root *Node) {
	var seq []*Node
	var walk func(*Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		walk(n.Left)
		seq = append(seq, n)
		walk(n.Right)
	}
	walk(root)

	for i, n := range seq {
		n.index = i
		if n.Kind == regex.KindUnion || n.Kind == regex.KindConcatenation {
			continue
		}
		if i+1 < len(seq) {
			n.Seam = seq[i+1]
		} else {
			n.SeamIsLambda = true
		}
	}
}
