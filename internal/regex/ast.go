// Package regex implements the extended-regex AST and a recursive-descent
// parser for it. The grammar is hand-written rather than produced by a
// lexer/parser generator; the syntax is small enough that a generator
// would add a dependency without buying anything back.
package regex

import "github.com/dekarrin/relang/internal/automaton"

// Kind identifies the label of a Node.
type Kind int

const (
	// KindSymbol is a leaf holding a single automaton.Symbol.
	KindSymbol Kind = iota
	// KindUnion is a binary node: Left | Right.
	KindUnion
	// KindConcatenation is a binary node: Left . Right.
	KindConcatenation
	// KindKleeneStar is a unary node: Left*.
	KindKleeneStar
	// KindOption is a unary node: Left?.
	KindOption
)

func (k Kind) String() string {
	switch k {
	case KindSymbol:
		return "SYMBOL"
	case KindUnion:
		return "UNION"
	case KindConcatenation:
		return "CONCATENATION"
	case KindKleeneStar:
		return "KLEENESTAR"
	case KindOption:
		return "OPTION"
	default:
		return "UNKNOWN"
	}
}

// Node is a node of the regex AST. Leaves hold a Symbol in Sym; UNION and
// CONCATENATION are binary (Left, Right both set); KLEENESTAR and OPTION
// are unary (Left set, Right nil).
type Node struct {
	Kind  Kind
	Sym   automaton.Symbol
	Left  *Node
	Right *Node
}

// Symbol builds a SYMBOL leaf.
func Symbol(s automaton.Symbol) *Node {
	return &Node{Kind: KindSymbol, Sym: s}
}

// UnionNode builds a UNION node.
func UnionNode(left, right *Node) *Node {
	return &Node{Kind: KindUnion, Left: left, Right: right}
}

// ConcatNode builds a CONCATENATION node.
func ConcatNode(left, right *Node) *Node {
	return &Node{Kind: KindConcatenation, Left: left, Right: right}
}

// StarNode builds a KLEENESTAR node.
func StarNode(left *Node) *Node {
	return &Node{Kind: KindKleeneStar, Left: left}
}

// OptionNode builds an OPTION node.
func OptionNode(left *Node) *Node {
	return &Node{Kind: KindOption, Left: left}
}

// String renders the tree back to regex syntax, fully parenthesized
// around every binary operator so the result always reparses to an
// equivalent tree.
func (n *Node) String() string {
	if n == nil {
		return ""
	}
	switch n.Kind {
	case KindSymbol:
		return n.Sym.String()
	case KindUnion:
		return "(" + n.Left.String() + "|" + n.Right.String() + ")"
	case KindConcatenation:
		return "(" + n.Left.String() + "." + n.Right.String() + ")"
	case KindKleeneStar:
		return n.Left.String() + "*"
	case KindOption:
		return n.Left.String() + "?"
	default:
		return "?"
	}
}
