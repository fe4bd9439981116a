package peg

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/quasilyte/regex/syntax"
)

// Expr is a node in the compositional expression tree of parsing
// combinators. A rule owns its Expr tree exclusively; the only node
// that does not own its referent is NonTerminal, which resolves to
// another rule by name at match time.
type Expr interface {
	// match drives this node over cur, using p to resolve NonTerminal
	// references and invoke rule callbacks. It returns a Match Result
	// and true on success, or (nil, false) on a routine dismatch. A
	// non-nil error signals a programming/grammar failure (an unknown
	// rule, or a callback that returned an error) and aborts the whole
	// matching attempt.
	//
	// Every push an implementation makes (directly, or through
	// Parser.matchRule for a NonTerminal) must be paired with exactly one
	// commit or roll back of that same frame before returning.
	match(cur *Cursor, p *Parser) (*MatchResult, bool, error)

	// dump renders the node in the canonical textual grammar format.
	dump() string
}

type (
	literalExpr struct {
		text string
	}

	regexExpr struct {
		pattern string
		re      *regexp.Regexp
	}

	nonTerminalExpr struct {
		name string
	}

	sequenceExpr struct {
		children []Expr
	}

	choiceExpr struct {
		alternatives []Expr
	}

	zeroOrMoreExpr struct {
		child Expr
	}

	oneOrMoreExpr struct {
		child Expr
	}

	optionalExpr struct {
		child Expr
	}

	andPredicateExpr struct {
		child Expr
	}

	notPredicateExpr struct {
		child Expr
	}
)

// Literal builds a terminal that consumes exactly text.
func Literal(text string) Expr {
	return &literalExpr{text: text}
}

// Regex builds a terminal that consumes the longest anchored match of
// pattern, a regex class such as "[a-zA-Z]" or "[0-9]+". It panics if
// pattern is not a valid regex class; use AddRuleFromString, which
// reports the same failure as an error, when the pattern comes from
// untrusted input.
func Regex(pattern string) Expr {
	e, err := newRegexExpr(pattern)
	if err != nil {
		panic(err)
	}
	return e
}

func newRegexExpr(pattern string) (Expr, error) {
	if err := lintRegexClass(pattern); err != nil {
		return nil, errors.Wrapf(err, "invalid regex class %s", pattern)
	}
	re, err := regexp.Compile(`\A(?:` + pattern + `)`)
	if err != nil {
		return nil, errors.Wrapf(err, "compiling regex class %s", pattern)
	}
	return &regexExpr{pattern: pattern, re: re}, nil
}

// lintRegexClass structurally validates pattern using a real regex
// parser before it ever reaches regexp.Compile, so a malformed class
// is reported against the grammar author's own pattern text rather
// than surfacing as an opaque RE2 syntax error.
func lintRegexClass(pattern string) error {
	_, err := syntax.NewParser().Parse(pattern)
	return err
}

// NonTerminal builds a reference to another rule, resolved by name
// at match time through the registry the rule is registered in.
func NonTerminal(name string) Expr {
	return &nonTerminalExpr{name: name}
}

// Sequence matches its children in order, failing as soon as one of
// them fails.
func Sequence(children ...Expr) Expr {
	return &sequenceExpr{children: children}
}

// Choice tries its alternatives left to right, committing to the
// first one that matches.
func Choice(alternatives ...Expr) Expr {
	return &choiceExpr{alternatives: alternatives}
}

// ZeroOrMore greedily matches child zero or more times; it never
// fails.
func ZeroOrMore(child Expr) Expr {
	return &zeroOrMoreExpr{child: child}
}

// OneOrMore greedily matches child one or more times; it fails iff
// the first attempt fails.
func OneOrMore(child Expr) Expr {
	return &oneOrMoreExpr{child: child}
}

// Optional tries child once; on failure it succeeds with a zero-width
// match instead of failing.
func Optional(child Expr) Expr {
	return &optionalExpr{child: child}
}

// And succeeds iff child matches, consuming no input.
func And(child Expr) Expr {
	return &andPredicateExpr{child: child}
}

// Not succeeds iff child fails, consuming no input.
func Not(child Expr) Expr {
	return &notPredicateExpr{child: child}
}

func (e *literalExpr) dump() string {
	return "'" + e.text + "'"
}

func (e *regexExpr) dump() string {
	return e.pattern
}

func (e *nonTerminalExpr) dump() string {
	return e.name
}

func (e *sequenceExpr) dump() string {
	parts := make([]string, len(e.children))
	for i, c := range e.children {
		parts[i] = c.dump()
	}
	return strings.Join(parts, " ")
}

func (e *choiceExpr) dump() string {
	parts := make([]string, len(e.alternatives))
	for i, a := range e.alternatives {
		parts[i] = a.dump()
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, " | "))
}

func (e *zeroOrMoreExpr) dump() string {
	return atomDump(e.child) + "*"
}

func (e *oneOrMoreExpr) dump() string {
	return atomDump(e.child) + "+"
}

func (e *optionalExpr) dump() string {
	return atomDump(e.child) + "?"
}

func (e *andPredicateExpr) dump() string {
	return "&" + atomDump(e.child)
}

func (e *notPredicateExpr) dump() string {
	return "!" + atomDump(e.child)
}

// atomDump renders a child as a single lexical atom, parenthesizing
// it when its own dump would otherwise spill across juxtaposition
// (a bare Sequence). Choice already parenthesizes itself.
func atomDump(e Expr) string {
	if _, ok := e.(*sequenceExpr); ok {
		return "(" + e.dump() + ")"
	}
	return e.dump()
}
