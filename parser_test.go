package peg

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSingleLiteral(t *testing.T) {
	p := NewParser()
	require.NoError(t, p.AddRuleFromString("Start", `'a'`, nil))

	ok, err := p.Validate("Start", "a")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.Validate("Start", "b")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = p.Validate("Start", "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestValidateWhitespaceInsensitiveSequence(t *testing.T) {
	p := NewParser()
	require.NoError(t, p.AddRuleFromString("Start", `'a' 'b'`, nil))

	for input, want := range map[string]bool{
		"a b": true,
		"ab":  true,
		"a a": false,
	} {
		ok, err := p.Validate("Start", input)
		require.NoError(t, err)
		assert.Equal(t, want, ok, "input %q", input)
	}
}

func TestValidateOrderedChoiceAcrossRules(t *testing.T) {
	p := NewParser()
	require.NoError(t, p.AddRuleFromString("Start", `('a' | Second) 'c'`, nil))
	require.NoError(t, p.AddRuleFromString("Second", `('c' 'd') | 'b'`, nil))

	for input, want := range map[string]bool{
		"a c":     true,
		"b c":     true,
		"c d c":   true,
		"c d b c": false,
	} {
		ok, err := p.Validate("Start", input)
		require.NoError(t, err)
		assert.Equal(t, want, ok, "input %q", input)
	}
}

func TestValidateOneOrMoreRepetition(t *testing.T) {
	p := NewParser()
	require.NoError(t, p.AddRuleFromString("Start", `'a'+ 'b'+`, nil))

	for input, want := range map[string]bool{
		"a a a b b b": true,
		"a":           false,
		"a a b a":     false,
	} {
		ok, err := p.Validate("Start", input)
		require.NoError(t, err)
		assert.Equal(t, want, ok, "input %q", input)
	}
}

func TestAddRuleRejectsDuplicateNames(t *testing.T) {
	p := NewParser()
	require.NoError(t, p.AddRule("Start", Literal("a"), nil))
	err := p.AddRule("Start", Literal("b"), nil)
	assert.Error(t, err)
}

func TestValidateUnknownStartRule(t *testing.T) {
	p := NewParser()
	_, err := p.Validate("Nope", "x")
	assert.Error(t, err)
}

func TestParseFailureModes(t *testing.T) {
	p := NewParser()
	require.NoError(t, p.AddRuleFromString("NoCallback", `'a'`, nil))

	_, err := p.Parse("NoCallback", "b")
	assert.ErrorIs(t, err, ErrNoMatch)

	_, err = p.Parse("NoCallback", "a b")
	assert.ErrorIs(t, err, ErrTrailingInput)

	_, err = p.Parse("NoCallback", "a")
	assert.ErrorIs(t, err, ErrNoCallback)
}

func TestDumpRendersCanonicalForm(t *testing.T) {
	p := NewParser()
	require.NoError(t, p.AddRuleFromString("Start", `('a' | 'b') 'c'*`, nil))
	assert.Equal(t, "Start -> ('a' | 'b') 'c'*\n", p.Dump())
}

func TestProgrammaticAndStringGrammarsAgree(t *testing.T) {
	programmatic := NewParser()
	require.NoError(t, programmatic.AddRule("Start",
		Sequence(Choice(Literal("a"), NonTerminal("Second")), Literal("c")), nil))
	require.NoError(t, programmatic.AddRule("Second",
		Choice(Sequence(Literal("c"), Literal("d")), Literal("b")), nil))

	fromString := NewParser()
	require.NoError(t, fromString.AddRuleFromString("Start", `('a' | Second) 'c'`, nil))
	require.NoError(t, fromString.AddRuleFromString("Second", `('c' 'd') | 'b'`, nil))

	inputs := []string{"a c", "b c", "c d c", "c d b c", "", "a"}
	for _, input := range inputs {
		want, err := programmatic.Validate("Start", input)
		require.NoError(t, err)
		got, err := fromString.Validate("Start", input)
		require.NoError(t, err)
		assert.Equal(t, want, got, "input %q", input)
	}
}

// buildArithmeticParser wires up the worked calculator grammar:
//
//	Expr    -> Sum
//	Sum     -> Product (('+'|'-') Product)*
//	Product -> Value (('*'|'/') Value)*
//	Value   -> [\d]+ | ('(' Expr ')')
func buildArithmeticParser(t *testing.T) *Parser {
	t.Helper()
	p := NewParser()

	require.NoError(t, p.AddRuleFromString("Expr", `Sum`, identityCallback))
	require.NoError(t, p.AddRuleFromString("Sum", `Product (('+' | '-') Product)*`, foldSum))
	require.NoError(t, p.AddRuleFromString("Product", `Value (('*' | '/') Value)*`, foldProduct))
	require.NoError(t, p.AddRuleFromString("Value", `[\d]+ | ('(' Expr ')')`, evalValue))

	return p
}

// identityCallback passes a NonTerminal's own matched value straight
// through, needed on Expr so that a Value rule calling
// NonTerminal("Expr") gets back something addressable as .Value.
func identityCallback(result *MatchResult, cur *Cursor) (interface{}, error) {
	return result.Children[0].Value, nil
}

func evalValue(result *MatchResult, cur *Cursor) (interface{}, error) {
	choice := result.Children[0]
	alt := choice.Children[0]
	if choice.ChoiceIndex == 0 {
		text := strings.TrimSpace(cur.Slice(alt.SpanStart, alt.SpanEnd))
		n, err := strconv.Atoi(text)
		if err != nil {
			return nil, err
		}
		return n, nil
	}
	// alt is Sequence('(' Expr ')'); its middle child is the Expr
	// NonTerminal, whose Value the Expr rule's own callback already set.
	return alt.Children[1].Value, nil
}

func foldSum(result *MatchResult, cur *Cursor) (interface{}, error) {
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

func foldProduct(result *MatchResult, cur *Cursor) (interface{}, error) {
	seq := result.Children[0]
	total := seq.Children[0].Value.(int)
	for _, rep := range seq.Children[1].Children {
		op := rep.Children[0]
		rhs := rep.Children[1].Value.(int)
		if op.ChoiceIndex == 0 {
			total *= rhs
		} else {
			total /= rhs
		}
	}
	return total, nil
}

func TestParseArithmeticExpressions(t *testing.T) {
	p := buildArithmeticParser(t)

	cases := map[string]int{
		"2 + 0 + 1 + 2323": 2326,
		"2 - 5":            -3,
		"2 * 4 - 3":        5,
		"(2 - 4) / 2":      -1,
		"3*(4-4)":          0,
	}
	for input, want := range cases {
		got, err := p.Parse("Expr", input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, want, got, "input %q", input)
	}
}
