// Package rlerrors defines the typed error kinds surfaced at the boundary
// of the core automaton/grammar/regex operations. The core never logs;
// callers are expected to inspect these with errors.Is/errors.As.
package rlerrors

import "fmt"

// Kind identifies which of the core's error conditions occurred.
type Kind int

const (
	// KindInvalidSymbol means a construction was given a character outside
	// {a-z, 0-9, &}.
	KindInvalidSymbol Kind = iota
	// KindInvalidRegex means a regular expression failed to parse.
	KindInvalidRegex
	// KindMalformedGrammar means a regular grammar's text form failed to
	// parse.
	KindMalformedGrammar
	// KindMustBeDeterministic means an operation that requires a DFA was
	// given an automaton with nondeterminism or epsilon-transitions.
	KindMustBeDeterministic
	// KindUnknownState means an operation referenced a state not in Q.
	KindUnknownState
)

func (k Kind) String() string {
	switch k {
	case KindInvalidSymbol:
		return "InvalidSymbol"
	case KindInvalidRegex:
		return "InvalidRegex"
	case KindMalformedGrammar:
		return "MalformedGrammar"
	case KindMustBeDeterministic:
		return "MustBeDeterministic"
	case KindUnknownState:
		return "UnknownState"
	default:
		return "Unknown"
	}
}

// coreError is the error type returned by every core-package failure. It
// carries the offending fragment (the bad character, the unparsed regex
// text, the unknown state name, etc.) alongside a human-readable message.
type coreError struct {
	kind     Kind
	msg      string
	fragment string
	wrap     error
}

func (e *coreError) Error() string {
	return e.msg
}

func (e *coreError) Unwrap() error {
	return e.wrap
}

// Kind returns the error kind, for use with a type switch or with Is.
func (e *coreError) Kind() Kind {
	return e.kind
}

// Fragment returns the offending input fragment that caused the error.
func (e *coreError) Fragment() string {
	return e.fragment
}

// Is makes errors.Is(err, rlerrors.InvalidSymbol("")) match any error of
// the same kind regardless of fragment, by comparing only the kind.
func (e *coreError) Is(target error) bool {
	other, ok := target.(*coreError)
	if !ok {
		return false
	}
	return e.kind == other.kind
}

func newError(kind Kind, fragment string, format string, a ...interface{}) error {
	return &coreError{
		kind:     kind,
		msg:      fmt.Sprintf(format, a...),
		fragment: fragment,
	}
}

// InvalidSymbol reports that ch is not a valid alphabet character.
func InvalidSymbol(ch string) error {
	return newError(KindInvalidSymbol, ch, "invalid symbol %q: must be one of a-z, 0-9, or & (epsilon)", ch)
}

// InvalidRegex reports that expr failed to parse, with reason giving the
// specific parse failure.
func InvalidRegex(expr string, reason string) error {
	return newError(KindInvalidRegex, expr, "invalid regex %q: %s", expr, reason)
}

// MalformedGrammar reports that line failed to parse as a grammar
// production.
func MalformedGrammar(line string, reason string) error {
	return newError(KindMalformedGrammar, line, "malformed grammar %q: %s", line, reason)
}

// MustBeDeterministic reports that op requires a deterministic automaton.
func MustBeDeterministic(op string) error {
	return newError(KindMustBeDeterministic, "", "%s requires a deterministic automaton", op)
}

// UnknownState reports that state is not a member of the automaton's state
// set.
func UnknownState(state string) error {
	return newError(KindUnknownState, state, "unknown state %q", state)
}

// Is reports whether err is a core error of the given kind. Use with the
// sentinel-shaped constructors above, e.g.
// rlerrors.Is(err, rlerrors.KindInvalidSymbol).
func Is(err error, kind Kind) bool {
	var ce *coreError
	for err != nil {
		if c, ok := err.(*coreError); ok {
			ce = c
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	if ce == nil {
		return false
	}
	return ce.kind == kind
}
