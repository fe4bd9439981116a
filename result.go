package peg

// MatchResult is the tree a successful match produces. SpanStart and
// SpanEnd are byte offsets into the original input; SpanEnd equals
// SpanStart for a zero-width match (a failed Optional, a predicate).
//
// Children holds one entry per matched sub-expression for a Sequence,
// one entry per repetition for ZeroOrMore/OneOrMore, and exactly one
// entry for Choice and NonTerminal. ChoiceIndex/HasChoiceIndex are
// only meaningful on the result of a Choice node.
//
// Value is only set on the result of a NonTerminal whose rule has a
// registered Callback; it carries whatever the host built out of the
// matched subtree.
type MatchResult struct {
	SpanStart int
	SpanEnd   int
	Children  []*MatchResult

	ChoiceIndex    int
	HasChoiceIndex bool

	Value interface{}
}

// Callback is invoked when the rule it is attached to matches. It
// receives the rule's own Match Result (whose sole child is the
// result of the rule's right-hand-side expression) together with the
// cursor, so it may recover matched text via cursor.Slice. Its return
// value is stored in the result's Value field and bubbles up through
// Parse.
type Callback func(result *MatchResult, cur *Cursor) (interface{}, error)

// Slice returns the input substring spanned by [a, b), for recovering
// the literal text of a matched region from within a Callback.
func (c *Cursor) Slice(a, b int) string {
	return c.slice(a, b)
}
