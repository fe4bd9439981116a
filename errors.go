package peg

import "github.com/pkg/errors"

// Sentinel errors returned by Parse/Validate for routine, recoverable
// match failures. Callers may compare against these with errors.Is.
var (
	// ErrNoMatch means the start rule dismatched the input entirely.
	ErrNoMatch = errors.New("peg: no match")

	// ErrTrailingInput means the start rule matched a strict prefix of
	// the input, leaving unconsumed (non-whitespace) text.
	ErrTrailingInput = errors.New("peg: trailing input")

	// ErrNoCallback means the start rule matched but has no semantic
	// callback registered, so Parse has no value to return.
	ErrNoCallback = errors.New("peg: start rule has no callback")
)

// errorf builds a grammar/programming error: a corner case the engine
// treats as a bug in the grammar or in its own invariants, rather than
// a routine dismatch.
func errorf(format string, args ...interface{}) error {
	return errors.Errorf("peg: "+format, args...)
}

func errUnknownRule(name string) error {
	return errorf("unknown rule %q", name)
}

func errDuplicateRule(name string) error {
	return errorf("rule %q already registered", name)
}

var errCornerCase = errorf("cursor stack was not fully unwound; this is a bug in the matcher")
