package peg

import "fmt"

// The grammar compiler is a precedence-respecting recursive builder
// that consumes the token stream produced by the lexer and produces
// an Expr tree, following the algorithm from the grammar design:
// a working `sequence` accumulates juxtaposed atoms, quantifiers pop
// and rewrap the last one, predicates consume exactly the next atom,
// and Choice flushes the current sequence into an `alternatives` list.

func compile(toks []token) (Expr, error) {
	ts := newTokenStream(toks)
	e, err := compileExpr(ts, false)
	if err != nil {
		return nil, err
	}
	if tok, ok := ts.peek(); ok {
		return nil, errorf("unexpected %s after expression", describeToken(tok))
	}
	return e, nil
}

// compileExpr reads tokens until a (consumed) matching GroupEnd, when
// insideGroup is true, or until the stream is exhausted otherwise.
func compileExpr(ts *tokenStream, insideGroup bool) (Expr, error) {
	var sequence []Expr
	var alternatives []Expr

	for {
		tok, ok := ts.peek()
		if !ok {
			if insideGroup {
				return nil, errorf("unmatched '(': missing ')'")
			}
			break
		}
		if tok.kind == tokGroupEnd {
			if !insideGroup {
				return nil, errorf("unmatched ')' at %s", positionOfToken(tok))
			}
			ts.next()
			break
		}
		ts.next()

		switch tok.kind {
		case tokIdentifier:
			sequence = append(sequence, NonTerminal(tok.text))

		case tokLiteral:
			sequence = append(sequence, Literal(tok.text))

		case tokRegexClass:
			node, err := newRegexExpr(tok.text)
			if err != nil {
				return nil, err
			}
			sequence = append(sequence, node)

		case tokGroupBegin:
			sub, err := compileExpr(ts, true)
			if err != nil {
				return nil, err
			}
			sequence = append(sequence, sub)

		case tokZeroOrMore, tokOneOrMore, tokOptional:
			if len(sequence) == 0 {
				return nil, errorf("quantifier at %s has no preceding atom", positionOfToken(tok))
			}
			last := sequence[len(sequence)-1]
			sequence = sequence[:len(sequence)-1]
			switch tok.kind {
			case tokZeroOrMore:
				last = ZeroOrMore(last)
			case tokOneOrMore:
				last = OneOrMore(last)
			case tokOptional:
				last = Optional(last)
			}
			sequence = append(sequence, last)

		case tokAndPredicate, tokNotPredicate:
			atom, err := compileAtom(ts, tok)
			if err != nil {
				return nil, err
			}
			if tok.kind == tokAndPredicate {
				sequence = append(sequence, And(atom))
			} else {
				sequence = append(sequence, Not(atom))
			}

		case tokChoice:
			reduced, err := reduceSequence(sequence, tok)
			if err != nil {
				return nil, err
			}
			alternatives = append(alternatives, reduced)
			sequence = nil

		default:
			return nil, errorf("unexpected %s", describeToken(tok))
		}
	}

	reduced, err := reduceSequence(sequence, token{pos: -1})
	if err != nil {
		return nil, err
	}
	if len(alternatives) > 0 {
		alternatives = append(alternatives, reduced)
		return Choice(alternatives...), nil
	}
	return reduced, nil
}

// compileAtom consumes exactly one atom (identifier, literal, regex
// class or parenthesized group) for a prefix predicate to wrap.
func compileAtom(ts *tokenStream, predicate token) (Expr, error) {
	tok, ok := ts.next()
	if !ok {
		return nil, errorf("predicate at %s has no following atom", positionOfToken(predicate))
	}
	switch tok.kind {
	case tokIdentifier:
		return NonTerminal(tok.text), nil
	case tokLiteral:
		return Literal(tok.text), nil
	case tokRegexClass:
		return newRegexExpr(tok.text)
	case tokGroupBegin:
		return compileExpr(ts, true)
	default:
		return nil, errorf("predicate at %s expects an atom, found %s",
			positionOfToken(predicate), describeToken(tok))
	}
}

func reduceSequence(seq []Expr, at token) (Expr, error) {
	switch len(seq) {
	case 0:
		return nil, errorf("empty expression near %s", positionOfToken(at))
	case 1:
		return seq[0], nil
	default:
		return Sequence(seq...), nil
	}
}

func positionOfToken(tok token) string {
	if tok.pos < 0 {
		return "end of rule"
	}
	return fmt.Sprintf("offset %d", tok.pos)
}

func describeToken(tok token) string {
	switch tok.kind {
	case tokIdentifier:
		return "identifier " + tok.text
	case tokLiteral:
		return "literal " + tok.text
	case tokRegexClass:
		return "regex class " + tok.text
	case tokGroupBegin:
		return "'('"
	case tokGroupEnd:
		return "')'"
	case tokChoice:
		return "choice"
	case tokZeroOrMore:
		return "'*'"
	case tokOneOrMore:
		return "'+'"
	case tokOptional:
		return "'?'"
	case tokAndPredicate:
		return "'&'"
	case tokNotPredicate:
		return "'!'"
	default:
		return "token"
	}
}
