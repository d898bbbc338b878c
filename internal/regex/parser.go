package regex

import (
	"fmt"

	"github.com/dekarrin/relang/internal/automaton"
	"github.com/dekarrin/relang/internal/rlerrors"
)

// Parse builds the AST for expr per the grammar:
//
//	union      -> union "|" concat | concat
//	concat     -> concat "." atom | atom
//	atom       -> primary postfix?
//	postfix    -> "*" | "?"
//	primary    -> "(" union ")" | SYMBOL
//
// Postfix operators do not chain: "a**" is rejected, "(a*)*" is required.
// Whitespace between tokens is ignored.
func Parse(expr string) (*Node, error) {
	p := &parser{toks: tokenize(expr), src: expr}
	if len(p.toks) == 0 {
		return nil, rlerrors.InvalidRegex(expr, "empty expression")
	}

	n, err := p.parseUnion()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.toks) {
		return nil, rlerrors.InvalidRegex(expr, fmt.Sprintf("unexpected %q", p.toks[p.pos].text))
	}
	return n, nil
}

type tokKind int

const (
	tokSymbol tokKind = iota
	tokPipe
	tokDot
	tokStar
	tokQuestion
	tokLParen
	tokRParen
)

type token struct {
	kind tokKind
	text string
}

func tokenize(expr string) []token {
	var toks []token
	for _, r := range expr {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			continue
		case r == '|':
			toks = append(toks, token{tokPipe, "|"})
		case r == '.':
			toks = append(toks, token{tokDot, "."})
		case r == '*':
			toks = append(toks, token{tokStar, "*"})
		case r == '?':
			toks = append(toks, token{tokQuestion, "?"})
		case r == '(':
			toks = append(toks, token{tokLParen, "("})
		case r == ')':
			toks = append(toks, token{tokRParen, ")"})
		default:
			toks = append(toks, token{tokSymbol, string(r)})
		}
	}
	return toks
}

type parser struct {
	toks []token
	pos  int
	src  string
}

func (p *parser) errorf(format string, args ...any) error {
	return rlerrors.InvalidRegex(p.src, fmt.Sprintf(format, args...))
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.toks) {
		return token{}, false
	}
	return p.toks[p.pos], true
}

func (p *parser) parseUnion() (*Node, error) {
	left, err := p.parseConcat()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := p.peek()
		if !ok || t.kind != tokPipe {
			return left, nil
		}
		p.pos++
		right, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		left = UnionNode(left, right)
	}
}

func (p *parser) parseConcat() (*Node, error) {
	left, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := p.peek()
		if !ok || t.kind != tokDot {
			return left, nil
		}
		p.pos++
		right, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		left = ConcatNode(left, right)
	}
}

func (p *parser) parseAtom() (*Node, error) {
	n, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	t, ok := p.peek()
	if !ok {
		return n, nil
	}
	switch t.kind {
	case tokStar:
		p.pos++
		return StarNode(n), nil
	case tokQuestion:
		p.pos++
		return OptionNode(n), nil
	default:
		return n, nil
	}
}

func (p *parser) parsePrimary() (*Node, error) {
	t, ok := p.peek()
	if !ok {
		return nil, p.errorf("unexpected end of expression")
	}

	switch t.kind {
	case tokLParen:
		p.pos++
		inner, err := p.parseUnion()
		if err != nil {
			return nil, err
		}
		close, ok := p.peek()
		if !ok || close.kind != tokRParen {
			return nil, p.errorf("missing closing parenthesis")
		}
		p.pos++
		return inner, nil
	case tokSymbol:
		p.pos++
		sym, err := automaton.NewSymbol(t.text)
		if err != nil {
			return nil, p.errorf("invalid symbol %q", t.text)
		}
		return Symbol(sym), nil
	default:
		return nil, p.errorf("unexpected %q", t.text)
	}
}
