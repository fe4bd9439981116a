package peg

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Cursor owns the input text and a stack of byte offsets into it. The
// top of the stack is the current position. Every combinator that
// speculatively advances the cursor pushes a frame first, then either
// commits it (the advance becomes permanent at the enclosing level) or
// rolls it back (the advance is abandoned). The base frame at index 0
// is never popped.
type Cursor struct {
	text  string
	stack []int
}

func newCursor(text string) *Cursor {
	return &Cursor{text: text, stack: []int{0}}
}

// push duplicates the top offset, returning it.
func (c *Cursor) push() int {
	top := c.stack[len(c.stack)-1]
	c.stack = append(c.stack, top)
	return top
}

// commit pops the top offset and overwrites the new top with it,
// returning the committed offset.
func (c *Cursor) commit() int {
	n := len(c.stack)
	top := c.stack[n-1]
	c.stack = c.stack[:n-1]
	c.stack[n-2] = top
	return top
}

// rollback discards the top offset. Popping the base frame is a
// programming error: it means some combinator rolled back without a
// matching push of its own, and the engine's invariant is broken.
func (c *Cursor) rollback() {
	if len(c.stack) <= 1 {
		panic(errCornerCase)
	}
	c.stack = c.stack[:len(c.stack)-1]
}

// position reads the top offset.
func (c *Cursor) position() int {
	return c.stack[len(c.stack)-1]
}

func (c *Cursor) setTop(offset int) {
	c.stack[len(c.stack)-1] = offset
}

// atEnd tells if the top offset is at the end of input.
func (c *Cursor) atEnd() bool {
	return c.position() == len(c.text)
}

// slice returns the input substring in [a, b), for callbacks to
// recover the literal text of a matched span.
func (c *Cursor) slice(a, b int) string {
	return c.text[a:b]
}

// matchLiteral skips leading whitespace, then tries s as a prefix at
// the new position. On success the top offset advances past s and
// past any trailing whitespace. On failure the top offset is left
// exactly as it was on entry.
func (c *Cursor) matchLiteral(s string) bool {
	pos := skipSpace(c.text, c.position())
	if !strings.HasPrefix(c.text[pos:], s) {
		return false
	}
	pos += len(s)
	pos = skipSpace(c.text, pos)
	c.setTop(pos)
	return true
}

// matchRegex skips leading whitespace, then attempts re anchored at
// the new position (never searching forward). On success the top
// offset advances past the match and past any trailing whitespace.
func (c *Cursor) matchRegex(re *regexp.Regexp) bool {
	pos := skipSpace(c.text, c.position())
	loc := re.FindStringIndex(c.text[pos:])
	if loc == nil || loc[0] != 0 {
		return false
	}
	pos += loc[1]
	pos = skipSpace(c.text, pos)
	c.setTop(pos)
	return true
}

// skipSpace advances past whitespace runes starting at pos.
func skipSpace(text string, pos int) int {
	for pos < len(text) {
		r, size := utf8.DecodeRuneInString(text[pos:])
		if !unicode.IsSpace(r) {
			break
		}
		pos += size
	}
	return pos
}
