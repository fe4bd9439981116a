package peg

import (
	"strings"
)

// tokenKind tags the grammar tokens produced by the lexer from a
// rule's right-hand-side text.
type tokenKind int

const (
	tokIdentifier tokenKind = iota
	tokLiteral
	tokRegexClass
	tokGroupBegin
	tokGroupEnd
	tokChoice
	tokZeroOrMore
	tokOneOrMore
	tokOptional
	tokAndPredicate
	tokNotPredicate
)

// token is a single lexed unit. text carries the payload for
// Identifier, Literal (quotes stripped) and RegexClass (brackets
// kept); it is empty for every other kind.
type token struct {
	kind tokenKind
	text string
	pos  int // byte offset in the rule body, for error reporting
}

const specialChars = "()'\"[]?+*/|&!"

// lex converts a rule's right-hand-side text into a flat sequence of
// grammar tokens, as described in the grammar micro-language: groups,
// quoted literals, bracketed regex classes, postfix quantifiers,
// prefix predicates, choice separators and bare identifiers.
func lex(body string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(body) {
		c := body[i]
		switch {
		case isSpaceByte(c):
			i++
		case c == '(':
			toks = append(toks, token{kind: tokGroupBegin, pos: i})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokGroupEnd, pos: i})
			i++
		case c == '\'' || c == '"':
			text, next, err := lexLiteral(body, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, token{kind: tokLiteral, text: text, pos: i})
			i = next
		case c == '[':
			text, next, err := lexRegexClass(body, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, token{kind: tokRegexClass, text: text, pos: i})
			i = next
		case c == '?':
			toks = append(toks, token{kind: tokOptional, pos: i})
			i++
		case c == '+':
			toks = append(toks, token{kind: tokOneOrMore, pos: i})
			i++
		case c == '*':
			toks = append(toks, token{kind: tokZeroOrMore, pos: i})
			i++
		case c == '/' || c == '|':
			toks = append(toks, token{kind: tokChoice, pos: i})
			i++
		case c == '&':
			toks = append(toks, token{kind: tokAndPredicate, pos: i})
			i++
		case c == '!':
			toks = append(toks, token{kind: tokNotPredicate, pos: i})
			i++
		default:
			text, next := lexIdentifier(body, i)
			toks = append(toks, token{kind: tokIdentifier, text: text, pos: i})
			i = next
		}
	}
	return toks, nil
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

// lexLiteral scans a quoted literal starting at i (body[i] is the
// opening quote). It continues until a matching quote that is not
// itself escaped by a preceding backslash; the backslashes are not
// otherwise interpreted and are kept verbatim in the payload.
func lexLiteral(body string, i int) (text string, next int, err error) {
	quote := body[i]
	start := i + 1
	j := start
	for j < len(body) {
		if body[j] == quote && precedingBackslashes(body, start, j)%2 == 0 {
			return body[start:j], j + 1, nil
		}
		j++
	}
	return "", j, errorf("unterminated literal starting at %s", positionOf(body, i))
}

// lexRegexClass scans a bracketed regex class starting at i (body[i]
// is '['). It copies everything verbatim, brackets included, until an
// unescaped ']'. A closing bracket is suppressed (treated as part of
// the class) if immediately preceded by exactly one backslash; two
// consecutive backslashes escape each other, so the bracket closes
// the class. This disambiguates "[\\]" (a class matching a backslash)
// from "[\]]" (a class matching a bracket).
func lexRegexClass(body string, i int) (text string, next int, err error) {
	start := i + 1
	j := start
	for j < len(body) {
		if body[j] == ']' && precedingBackslashes(body, start, j)%2 == 0 {
			return body[i : j+1], j + 1, nil
		}
		j++
	}
	return "", j, errorf("unterminated regex class starting at %s", positionOf(body, i))
}

// precedingBackslashes counts the run of consecutive backslashes
// immediately before body[at], not reaching past lowerBound.
func precedingBackslashes(body string, lowerBound, at int) int {
	n := 0
	for k := at - 1; k >= lowerBound && body[k] == '\\'; k-- {
		n++
	}
	return n
}

func lexIdentifier(body string, i int) (text string, next int) {
	j := i
	for j < len(body) && !isSpaceByte(body[j]) && !strings.ContainsRune(specialChars, rune(body[j])) {
		j++
	}
	return body[i:j], j
}

// tokenStream is a read cursor over a token slice, offering the
// next()/peek() operations the grammar compiler consumes from.
type tokenStream struct {
	toks []token
	pos  int
}

func newTokenStream(toks []token) *tokenStream {
	return &tokenStream{toks: toks}
}

func (ts *tokenStream) next() (token, bool) {
	if ts.pos >= len(ts.toks) {
		return token{}, false
	}
	tok := ts.toks[ts.pos]
	ts.pos++
	return tok, true
}

func (ts *tokenStream) peek() (token, bool) {
	if ts.pos >= len(ts.toks) {
		return token{}, false
	}
	return ts.toks[ts.pos], true
}
