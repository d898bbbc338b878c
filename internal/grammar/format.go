package grammar

import (
	"sort"
	"strings"
)

// String renders g back to the grammar text format. Heads are listed start
// symbol first, then the rest in name order; within a head, non-epsilon
// bodies are sorted by terminal and then non-terminal name, with any
// epsilon body listed last.
func (g *RegularGrammar) String() string {
	var lines []string
	for _, head := range g.NonTerminals() {
		bodies := append([]Production{}, g.productions[head]...)
		sort.SliceStable(bodies, func(i, j int) bool {
			if bodies[i].Epsilon != bodies[j].Epsilon {
				return !bodies[i].Epsilon
			}
			if bodies[i].Symbol != bodies[j].Symbol {
				return bodies[i].Symbol < bodies[j].Symbol
			}
			return bodies[i].NonTerminal < bodies[j].NonTerminal
		})

		rendered := make([]string, len(bodies))
		for i, p := range bodies {
			rendered[i] = renderBody(p)
		}
		lines = append(lines, head+" -> "+strings.Join(rendered, " | "))
	}
	return strings.Join(lines, "\n")
}

func renderBody(p Production) string {
	if p.Epsilon {
		return "&"
	}
	return p.Symbol.String() + p.NonTerminal
}
