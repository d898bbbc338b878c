package grammar

import (
	"fmt"
	"strings"

	"github.com/dekarrin/relang/internal/automaton"
	"github.com/dekarrin/relang/internal/rlerrors"
)

// Parse reads the grammar text format:
//
//	Head -> body1 | body2 | ...
//
// one production line per non-terminal. A body is either "&" (an epsilon
// production), a single terminal ("a"), or a terminal immediately followed
// by a non-terminal name ("aB"). The grammar's start symbol is the head of
// its first line. Non-terminal names are an uppercase letter optionally
// followed by one or more apostrophes (S, A, B, ..., A', B', ...), matching
// the names FromAutomaton generates.
func Parse(text string) (*RegularGrammar, error) {
	var g *RegularGrammar

	for _, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}

		head, bodies, err := parseLine(line)
		if err != nil {
			return nil, err
		}
		if !isNonTerminalName(head) {
			return nil, rlerrors.MalformedGrammar(line, fmt.Sprintf("invalid non-terminal name %q", head))
		}

		if g == nil {
			g = New(head)
		}
		for _, body := range bodies {
			p, err := parseBody(line, body)
			if err != nil {
				return nil, err
			}
			g.AddProduction(head, p)
		}
	}

	if g == nil {
		return nil, rlerrors.MalformedGrammar(text, "no productions")
	}
	return g, nil
}

func parseLine(line string) (head string, bodies []string, err error) {
	arrow := strings.Index(line, "->")
	if arrow < 0 {
		return "", nil, rlerrors.MalformedGrammar(line, "missing \"->\"")
	}
	head = strings.TrimSpace(line[:arrow])
	if head == "" {
		return "", nil, rlerrors.MalformedGrammar(line, "missing head")
	}

	rest := line[arrow+2:]
	for _, alt := range strings.Split(rest, "|") {
		bodies = append(bodies, strings.TrimSpace(alt))
	}
	return head, bodies, nil
}

func parseBody(line, body string) (Production, error) {
	if body == "" {
		return Production{}, rlerrors.MalformedGrammar(line, "empty production body (use & for epsilon)")
	}
	if body == "&" {
		return Production{Epsilon: true}, nil
	}

	termStr := body[:1]
	if termStr == "&" {
		return Production{}, rlerrors.MalformedGrammar(line, "epsilon cannot be combined with a non-terminal")
	}
	sym, err := automaton.NewSymbol(termStr)
	if err != nil {
		return Production{}, rlerrors.MalformedGrammar(line, fmt.Sprintf("invalid terminal %q", termStr))
	}

	nt := body[1:]
	if nt == "" {
		return Production{Symbol: sym}, nil
	}
	if !isNonTerminalName(nt) {
		return Production{}, rlerrors.MalformedGrammar(line, fmt.Sprintf("invalid non-terminal name %q", nt))
	}
	return Production{Symbol: sym, NonTerminal: nt}, nil
}

func isNonTerminalName(name string) bool {
	if name == "" {
		return false
	}
	if name[0] < 'A' || name[0] > 'Z' {
		return false
	}
	for i := 1; i < len(name); i++ {
		if name[i] != '\'' {
			return false
		}
	}
	return true
}
