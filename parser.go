package peg

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// rule is a name, an owned expression tree, and an optional semantic
// callback.
type rule struct {
	name     string
	expr     Expr
	callback Callback
}

// Parser is the rule registry together with the validate/parse entry
// points and the grammar dumper. Registration is add-only: duplicate
// names are rejected. A Parser must not have AddRule/AddRuleFromString
// running concurrently with Validate/Parse, nor Validate/Parse called
// concurrently with each other on the same instance: the registry is
// read-only once matching starts, but a single Parser is not meant to
// serve overlapping calls from multiple goroutines.
type Parser struct {
	rules  []*rule // registration order, for Dump
	byName map[string]*rule
}

// NewParser returns an empty rule registry.
func NewParser() *Parser {
	return &Parser{byName: make(map[string]*rule)}
}

// AddRule registers name with the given expression tree and optional
// callback. It fails if name is already registered.
func (p *Parser) AddRule(name string, expr Expr, callback Callback) error {
	if _, exists := p.byName[name]; exists {
		return errDuplicateRule(name)
	}
	if expr == nil {
		return errorf("nil expression for rule %q", name)
	}
	r := &rule{name: name, expr: expr, callback: callback}
	p.byName[name] = r
	p.rules = append(p.rules, r)
	return nil
}

// AddRuleFromString lexes and compiles body into an expression tree,
// then registers it exactly as AddRule would.
func (p *Parser) AddRuleFromString(name, body string, callback Callback) error {
	toks, err := lex(body)
	if err != nil {
		return errors.Wrapf(err, "peg: lexing rule %q", name)
	}
	expr, err := compile(toks)
	if err != nil {
		return errors.Wrapf(err, "peg: compiling rule %q", name)
	}
	return p.AddRule(name, expr, callback)
}

// Validate matches the start rule against input, and reports whether
// the match succeeded and consumed the input up to end-of-file (any
// trailing whitespace aside). It returns a non-nil error only for a
// programming/grammar failure such as an unregistered start rule;
// a routine dismatch or trailing input is reported as (false, nil).
func (p *Parser) Validate(start, input string) (bool, error) {
	if _, ok := p.byName[start]; !ok {
		return false, errUnknownRule(start)
	}

	cur := newCursor(input)
	_, matched, err := p.matchRule(start, cur)
	if err != nil {
		return false, err
	}
	if len(cur.stack) != 1 {
		return false, errCornerCase
	}
	if !matched {
		return false, nil
	}
	return cur.atEnd(), nil
}

// Parse matches the start rule against input exactly as Validate
// does, then returns the value its callback produced. It fails with
// ErrNoMatch if the start rule dismatched, ErrTrailingInput if the
// match did not reach end-of-file, and ErrNoCallback if the start
// rule has no registered callback.
func (p *Parser) Parse(start, input string) (interface{}, error) {
	r, ok := p.byName[start]
	if !ok {
		return nil, errUnknownRule(start)
	}

	cur := newCursor(input)
	result, matched, err := p.matchRule(start, cur)
	if err != nil {
		return nil, err
	}
	if len(cur.stack) != 1 {
		return nil, errCornerCase
	}
	if !matched {
		return nil, ErrNoMatch
	}
	if !cur.atEnd() {
		return nil, ErrTrailingInput
	}
	if r.callback == nil {
		return nil, ErrNoCallback
	}
	return result.Value, nil
}

// matchRule is the single path through which a named rule is
// invoked, whether reached from a NonTerminal node inside another
// rule's expression, or as the start rule of Validate/Parse: look up
// the rule, recurse into its expression, and on success invoke its
// callback (if any) with the Match Result and the cursor.
func (p *Parser) matchRule(name string, cur *Cursor) (*MatchResult, bool, error) {
	r, ok := p.byName[name]
	if !ok {
		return nil, false, errUnknownRule(name)
	}

	start := cur.position()
	cur.push()
	sub, matched, err := r.expr.match(cur, p)
	if err != nil {
		cur.rollback()
		return nil, false, err
	}
	if !matched {
		cur.rollback()
		return nil, false, nil
	}
	end := cur.commit()

	result := &MatchResult{SpanStart: start, SpanEnd: end, Children: []*MatchResult{sub}}
	if r.callback != nil {
		value, cbErr := r.callback(result, cur)
		if cbErr != nil {
			return nil, false, errors.Wrapf(cbErr, "peg: callback for rule %q", name)
		}
		result.Value = value
	}
	return result, true, nil
}

// Dump renders every registered rule, in registration order, as
// "name -> body" where body is the canonical dump of its expression
// tree (see Expr.dump): literals as 'text', regex classes verbatim,
// non-terminals as their identifier, sequences space-separated, and
// choices parenthesized with mandatory parens.
func (p *Parser) Dump() string {
	var sb strings.Builder
	for _, r := range p.rules {
		fmt.Fprintf(&sb, "%s -> %s\n", r.name, r.expr.dump())
	}
	return sb.String()
}
