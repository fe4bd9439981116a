// Package calc is a worked example of the peg package: a four-rule
// arithmetic grammar with left-to-right Sum/Product folding, wired up
// through semantic callbacks instead of a post-parse AST walk.
package calc

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/ngrammar/peg"
)

// NewParser builds the grammar:
//
//	Expr    -> Sum
//	Sum     -> Product (('+' | '-') Product)*
//	Product -> Value (('*' | '/') Value)*
//	Value   -> [\d]+ | ('(' Expr ')')
//
// Each rule's callback folds its own children immediately, so by the
// time Parse returns, the start rule's callback value is already the
// final integer.
func NewParser() (*peg.Parser, error) {
	p := peg.NewParser()

	if err := p.AddRuleFromString("Expr", `Sum`, identity); err != nil {
		return nil, errors.Wrap(err, "calculator: Expr")
	}
	if err := p.AddRuleFromString("Sum", `Product (('+' | '-') Product)*`, foldSum); err != nil {
		return nil, errors.Wrap(err, "calculator: Sum")
	}
	if err := p.AddRuleFromString("Product", `Value (('*' | '/') Value)*`, foldProduct); err != nil {
		return nil, errors.Wrap(err, "calculator: Product")
	}
	if err := p.AddRuleFromString("Value", `[\d]+ | ('(' Expr ')')`, evalValue); err != nil {
		return nil, errors.Wrap(err, "calculator: Value")
	}
	return p, nil
}

// Eval parses and evaluates a single arithmetic expression.
func Eval(p *peg.Parser, expr string) (int, error) {
	v, err := p.Parse("Expr", expr)
	if err != nil {
		return 0, err
	}
	n, ok := v.(int)
	if !ok {
		return 0, errors.Errorf("calculator: unexpected callback value %T", v)
	}
	return n, nil
}

// identity passes a NonTerminal's own matched value straight through,
// needed on Expr so that a Value rule calling NonTerminal("Expr") gets
// back something addressable as .Value instead of a bare nil.
func identity(result *peg.MatchResult, cur *peg.Cursor) (interface{}, error) {
	return result.Children[0].Value, nil
}

func evalValue(result *peg.MatchResult, cur *peg.Cursor) (interface{}, error) {
	choice := result.Children[0]
	alt := choice.Children[0]
	if choice.ChoiceIndex == 0 {
		text := strings.TrimSpace(cur.Slice(alt.SpanStart, alt.SpanEnd))
		n, err := strconv.Atoi(text)
		if err != nil {
			return nil, errors.Wrapf(err, "calculator: parsing digits %q", text)
		}
		return n, nil
	}
	// alt is the parenthesized Sequence('(' Expr ')'); its middle child
	// is the Expr NonTerminal, whose Value the Expr rule's own callback
	// already computed.
	return alt.Children[1].Value, nil
}

func foldSum(result *peg.MatchResult, cur *peg.Cursor) (interface{}, error) {
	seq := result.Children[0]
	total := seq.Children[0].Value.(int)
	for _, rep := range seq.Children[1].Children {
		op := rep.Children[0]
		rhs := rep.Children[1].Value.(int)
		if op.ChoiceIndex == 0 {
			total += rhs
		} else {
			total -= rhs
		}
	}
	return total, nil
}

func foldProduct(result *peg.MatchResult, cur *peg.Cursor) (interface{}, error) {
	seq := result.Children[0]
	total := seq.Children[0].Value.(int)
	for _, rep := range seq.Children[1].Children {
		op := rep.Children[0]
		rhs := rep.Children[1].Value.(int)
		if op.ChoiceIndex == 0 {
			total *= rhs
		} else {
			if rhs == 0 {
				return nil, errors.New("calculator: division by zero")
			}
			total /= rhs
		}
	}
	return total, nil
}
