package peg

// This file implements the matching contract for every Expr variant:
// given the cursor, either return a Match Result and leave the cursor
// advanced exactly to its span_end, or fail and leave the cursor at
// its entry position. See Expr.match for the exact contract.

func (e *literalExpr) match(cur *Cursor, p *Parser) (*MatchResult, bool, error) {
	start := cur.position()
	cur.push()
	if cur.matchLiteral(e.text) {
		end := cur.commit()
		return &MatchResult{SpanStart: start, SpanEnd: end}, true, nil
	}
	cur.rollback()
	return nil, false, nil
}

func (e *regexExpr) match(cur *Cursor, p *Parser) (*MatchResult, bool, error) {
	start := cur.position()
	cur.push()
	if cur.matchRegex(e.re) {
		end := cur.commit()
		return &MatchResult{SpanStart: start, SpanEnd: end}, true, nil
	}
	cur.rollback()
	return nil, false, nil
}

// match resolves the referenced rule and delegates to the registry's
// shared rule-invocation path, so a NonTerminal reached through the
// expression tree and a start rule reached through Validate/Parse run
// identical logic (lookup, callback invocation included).
func (e *nonTerminalExpr) match(cur *Cursor, p *Parser) (*MatchResult, bool, error) {
	return p.matchRule(e.name, cur)
}

func (e *sequenceExpr) match(cur *Cursor, p *Parser) (*MatchResult, bool, error) {
	start := cur.position()
	cur.push()
	children := make([]*MatchResult, 0, len(e.children))
	for _, child := range e.children {
		res, ok, err := child.match(cur, p)
		if err != nil {
			cur.rollback()
			return nil, false, err
		}
		if !ok {
			cur.rollback()
			return nil, false, nil
		}
		children = append(children, res)
	}
	end := cur.commit()
	return &MatchResult{SpanStart: start, SpanEnd: end, Children: children}, true, nil
}

func (e *choiceExpr) match(cur *Cursor, p *Parser) (*MatchResult, bool, error) {
	start := cur.position()
	for idx, alt := range e.alternatives {
		cur.push()
		res, ok, err := alt.match(cur, p)
		if err != nil {
			cur.rollback()
			return nil, false, err
		}
		if ok {
			end := cur.commit()
			return &MatchResult{
				SpanStart:      start,
				SpanEnd:        end,
				Children:       []*MatchResult{res},
				ChoiceIndex:    idx,
				HasChoiceIndex: true,
			}, true, nil
		}
		cur.rollback()
	}
	return nil, false, nil
}

func (e *zeroOrMoreExpr) match(cur *Cursor, p *Parser) (*MatchResult, bool, error) {
	start := cur.position()
	cur.push()
	var children []*MatchResult
	for {
		res, ok, err := e.child.match(cur, p)
		if err != nil {
			cur.rollback()
			return nil, false, err
		}
		if !ok {
			break
		}
		children = append(children, res)
	}
	end := cur.commit()
	return &MatchResult{SpanStart: start, SpanEnd: end, Children: children}, true, nil
}

func (e *oneOrMoreExpr) match(cur *Cursor, p *Parser) (*MatchResult, bool, error) {
	start := cur.position()
	cur.push()
	first, ok, err := e.child.match(cur, p)
	if err != nil {
		cur.rollback()
		return nil, false, err
	}
	if !ok {
		cur.rollback()
		return nil, false, nil
	}
	children := []*MatchResult{first}
	for {
		res, ok, err := e.child.match(cur, p)
		if err != nil {
			cur.rollback()
			return nil, false, err
		}
		if !ok {
			break
		}
		children = append(children, res)
	}
	end := cur.commit()
	return &MatchResult{SpanStart: start, SpanEnd: end, Children: children}, true, nil
}

func (e *optionalExpr) match(cur *Cursor, p *Parser) (*MatchResult, bool, error) {
	start := cur.position()
	cur.push()
	res, ok, err := e.child.match(cur, p)
	if err != nil {
		cur.rollback()
		return nil, false, err
	}
	if !ok {
		cur.commit()
		return &MatchResult{SpanStart: start, SpanEnd: start}, true, nil
	}
	end := cur.commit()
	return &MatchResult{SpanStart: start, SpanEnd: end, Children: []*MatchResult{res}}, true, nil
}

func (e *andPredicateExpr) match(cur *Cursor, p *Parser) (*MatchResult, bool, error) {
	start := cur.position()
	cur.push()
	_, ok, err := e.child.match(cur, p)
	cur.rollback()
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	return &MatchResult{SpanStart: start, SpanEnd: start}, true, nil
}

func (e *notPredicateExpr) match(cur *Cursor, p *Parser) (*MatchResult, bool, error) {
	start := cur.position()
	cur.push()
	_, ok, err := e.child.match(cur, p)
	cur.rollback()
	if err != nil {
		return nil, false, err
	}
	if ok {
		return nil, false, nil
	}
	return &MatchResult{SpanStart: start, SpanEnd: start}, true, nil
}
