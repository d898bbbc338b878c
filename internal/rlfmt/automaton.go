// Package rlfmt renders automata and grammars as human-readable text,
// using github.com/dekarrin/rosed's table layout the same way a parser
// generator renders its LR parse tables.
package rlfmt

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/rosed"

	"github.com/dekarrin/relang/internal/automaton"
	"github.com/dekarrin/relang/internal/util"
)

// Automaton renders fa's transition table, one row per state and one
// column per symbol, with the initial state marked ">" and accepting
// states marked "*".
func Automaton(fa *automaton.FiniteAutomaton) string {
	alpha := sortedAlphabet(fa.Alphabet())
	states := sortedStates(fa)

	headers := []string{"state"}
	for _, s := range alpha {
		headers = append(headers, s.String())
	}
	data := [][]string{headers}

	for _, q := range states {
		label := q
		if q == fa.Start() {
			label = "> " + label
		}
		if fa.IsAccepting(q) {
			label = "* " + label
		}
		row := []string{label}
		for _, s := range alpha {
			dests := fa.Transitate(q, s)
			row = append(row, strings.Join(sortedSet(dests), ","))
		}
		data = append(data, row)
	}

	return rosed.Edit("").
		InsertTableOpts(0, data, 80, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

// Sentences renders the sentences of length n that fa accepts, one per
// line, prefixed with a count.
func Sentences(fa *automaton.FiniteAutomaton, n int) string {
	sentences := fa.GenSentences(n)
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d sentence(s) of length %d:\n", len(sentences), n)
	for _, s := range sentences {
		label := s.String()
		if label == "" {
			label = "&"
		}
		sb.WriteString("  " + label + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func sortedAlphabet(alpha map[automaton.Symbol]bool) []automaton.Symbol {
	syms := make([]automaton.Symbol, 0, len(alpha))
	for s := range alpha {
		syms = append(syms, s)
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
	return syms
}

func sortedStates(fa *automaton.FiniteAutomaton) []string {
	states := fa.States()
	out := make([]string, 0, len(states))
	for q := range states {
		out = append(out, q)
	}
	sort.Strings(out)
	return out
}

func sortedSet(s util.StringSet) []string {
	out := s.Elements()
	sort.Strings(out)
	return out
}
