// Package peg implements a runtime-constructed Parsing Expression
// Grammar engine: a host program declares a grammar at runtime, either
// by composing Expr values programmatically or by writing rule bodies
// in a small textual grammar language, and then validates or parses
// input text against it, producing a user-defined value via per-rule
// semantic callbacks.
//
// The PEG matching is a top-down, backtracking recursive-descent
// matcher in the style of a classic PEG/LPeg design: ordered choice
// tries its alternatives left to right and commits to the first one
// that matches, quantifiers are greedy, and predicates test without
// consuming input. As with any PEG parser, left recursion in a
// grammar's rules will never terminate, and should be avoided.
//
// # Building grammars
//
// A grammar is a set of named rules, each an Expr tree built from:
//
//	Literal(text), Regex(pattern), NonTerminal(name)
//	Sequence(exprs...), Choice(exprs...)
//	ZeroOrMore(e), OneOrMore(e), Optional(e)
//	And(e), Not(e)
//
// Rules are registered on a Parser with AddRule, or compiled directly
// from a rule body string with AddRuleFromString, using the grammar
// micro-language:
//
//	identifier             non-terminal reference
//	'text' or "text"       literal terminal
//	[pattern]              regex-class terminal
//	(...)                  grouping
//	e? e* e+                postfix optional/zero-or-more/one-or-more
//	&e !e                  prefix and/not predicates
//	e1 e2                  sequence by juxtaposition
//	e1 / e2  or  e1 | e2   ordered choice
//
// Whitespace between tokens is insignificant in the micro-language
// itself, and both literal and regex terminals skip surrounding
// whitespace in the matched text, so grammars rarely need to spell
// out whitespace rules by hand.
//
// # Running grammars
//
// Parser.Validate reports whether a rule matches an input in full.
// Parser.Parse does the same, then returns the start rule's callback
// value. Parser.Dump renders every registered rule back out in the
// canonical textual form, which is useful for debugging and for
// asserting a grammar was built as intended.
package peg
