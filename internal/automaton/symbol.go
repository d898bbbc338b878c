package automaton

import (
	"strings"

	"github.com/dekarrin/relang/internal/rlerrors"
)

// Epsilon is the reserved symbol denoting the empty string. It is written
// '&' in every external representation (regex, grammar, serialized
// automata) and is never a member of a Sentence.
const Epsilon Symbol = '&'

// Symbol is a single character from {a-z, 0-9, &}. Symbols have a total
// ordering by byte value and are comparable with ==.
type Symbol byte

// NewSymbol builds a Symbol from a single-character string. Returns
// InvalidSymbol if s is not exactly one character from the allowed
// alphabet.
func NewSymbol(s string) (Symbol, error) {
	if len(s) != 1 {
		return 0, rlerrors.InvalidSymbol(s)
	}
	ch := s[0]
	if !validSymbolByte(ch) {
		return 0, rlerrors.InvalidSymbol(s)
	}
	return Symbol(ch), nil
}

func validSymbolByte(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9') || ch == '&'
}

// IsEpsilon reports whether s is the reserved epsilon marker.
func (s Symbol) IsEpsilon() bool {
	return s == Epsilon
}

func (s Symbol) String() string {
	return string(rune(s))
}

// Sentence is a finite ordered sequence of Symbols, none of which is
// Epsilon.
type Sentence []Symbol

// NewSentence parses s into a Sentence. The literal "&" is accepted as
// shorthand for the empty sentence (per the external sentence-input
// format); any other occurrence of '&' is rejected, as are characters
// outside the symbol alphabet.
func NewSentence(s string) (Sentence, error) {
	if s == "&" {
		return Sentence{}, nil
	}
	sent := make(Sentence, 0, len(s))
	for i := 0; i < len(s); i++ {
		sym, err := NewSymbol(string(s[i]))
		if err != nil {
			return nil, err
		}
		if sym.IsEpsilon() {
			return nil, rlerrors.InvalidSymbol("&")
		}
		sent = append(sent, sym)
	}
	return sent, nil
}

func (s Sentence) String() string {
	var sb strings.Builder
	for _, sym := range s {
		sb.WriteString(sym.String())
	}
	return sb.String()
}

// Equal reports whether s and other contain the same symbols in the same
// order.
func (s Sentence) Equal(other Sentence) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Less gives Sentences a lexicographic ordering by symbol sequence, used
// by GenSentences to return deterministically ordered results.
func (s Sentence) Less(other Sentence) bool {
	for i := 0; i < len(s) && i < len(other); i++ {
		if s[i] != other[i] {
			return s[i] < other[i]
		}
	}
	return len(s) < len(other)
}
