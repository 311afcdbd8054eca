package syntax

import "github.com/regexkit/regexkit/rxerr"

// Parse builds a Node tree from a pattern body (spec §4.2's grammar:
// alternation → concatenation → quantified → atom). It does not
// consult Pattern.Flags, and flags are not baked into the AST shape;
// the lint and optimize packages take Pattern.Flags as a separate
// argument, and the automaton packages do not read flags at all.
func Parse(body string) (*Node, error) {
	p := &parser{body: body}
	if err := p.lex.Init(body); err != nil {
		return nil, err
	}
	root, err := p.parseAlternation()
	if err != nil {
		return nil, err
	}
	if p.lex.HasMoreTokens() {
		tok := p.lex.NextToken()
		return nil, rxerr.NewSyntaxError(rxerr.UnterminatedGroup, tok.pos.Begin, "unmatched ')'")
	}
	return root, nil
}

type parser struct {
	lex        lexer
	body       string
	groupIndex int
}

func (p *parser) nextGroupIndex() int {
	p.groupIndex++
	return p.groupIndex
}

// parseAlternation parses branch ('|' branch)*.
func (p *parser) parseAlternation() (*Node, error) {
	first, err := p.parseConcat()
	if err != nil {
		return nil, err
	}
	if p.lex.Peek().kind != TokPipe {
		return first, nil
	}

	branches := []*Node{first}
	span := first.Span
	for p.lex.Peek().kind == TokPipe {
		p.lex.NextToken()
		next, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		branches = append(branches, next)
		span = Cover(span, next.Span)
	}
	return &Node{Kind: KindAlternation, Span: span, Children: branches}, nil
}

// parseConcat parses a maximal run of quantified atoms, stopping at
// '|', ')', or end of input.
func (p *parser) parseConcat() (*Node, error) {
	var children []*Node
	var span Position

	for {
		switch p.lex.Peek().kind {
		case TokNone, TokPipe, TokRParen:
			goto done
		}
		child, err := p.parseQuantified()
		if err != nil {
			return nil, err
		}
		children = append(children, child)
		span = Cover(span, child.Span)
	}

done:
	switch len(children) {
	case 0:
		return &Node{Kind: KindSequence, Span: span}, nil
	case 1:
		return children[0], nil
	default:
		return &Node{Kind: KindSequence, Span: span, Children: children}, nil
	}
}

// quantifierStart reports whether k opens a quantifier.
func quantifierStart(k TokenKind) bool {
	return k == TokStar || k == TokPlus || k == TokQuestion || k == TokRepeat
}

// parseQuantified parses a single atom and an optional trailing
// quantifier with its greedy/lazy/possessive suffix. Stacking a second
// quantifier directly onto an already-quantified atom is a syntax
// error (spec's worked scenario `(a+)+` requires the explicit group —
// `a++` alone is only legal as "possessive +", never "+ applied
// twice").
func (p *parser) parseQuantified() (*Node, error) {
	atom, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	tok := p.lex.Peek()
	if !quantifierStart(tok.kind) {
		return atom, nil
	}
	p.lex.NextToken()

	min, max := tok.min, tok.max
	switch tok.kind {
	case TokStar:
		min, max = 0, -1
	case TokPlus:
		min, max = 1, -1
	case TokQuestion:
		min, max = 0, 1
	case TokRepeat:
		if tok.max != -1 && tok.min > tok.max {
			return nil, rxerr.NewSyntaxError(rxerr.BadRange, tok.pos.Begin,
				"quantifier range {%d,%d} has min > max", tok.min, tok.max)
		}
	}

	greediness := Greedy
	switch p.lex.Peek().kind {
	case TokQuestion:
		p.lex.NextToken()
		greediness = Lazy
	case TokPlus:
		p.lex.NextToken()
		greediness = Possessive
	}

	if quantifierStart(p.lex.Peek().kind) {
		bad := p.lex.Peek()
		return nil, rxerr.NewSyntaxError(rxerr.InvalidQuantifier, bad.pos.Begin,
			"quantifier with nothing to repeat; wrap the inner expression in a group")
	}

	return &Node{
		Kind:       KindQuantifier,
		Span:       Cover(atom.Span, tok.pos),
		Child:      atom,
		Min:        min,
		Max:        max,
		Greediness: greediness,
	}, nil
}

func (p *parser) parseAtom() (*Node, error) {
	if !p.lex.HasMoreTokens() {
		return nil, rxerr.NewSyntaxError(rxerr.BadEscape, len(p.body), "unexpected end of pattern")
	}
	tok := p.lex.NextToken()

	switch tok.kind {
	case TokChar:
		return &Node{Kind: KindLiteral, Span: tok.pos, Value: tok.value, Raw: string(tok.value)}, nil
	case TokEscapeLiteral:
		return &Node{Kind: KindLiteral, Span: tok.pos, Value: tok.value, Raw: string(tok.value)}, nil
	case TokDot:
		// "any character" has no dedicated Node.Kind; it is the
		// negation of an empty CharClass, which is vacuously total.
		return &Node{Kind: KindCharClass, Span: tok.pos, Negated: true}, nil
	case TokCaret:
		return &Node{Kind: KindAnchor, Span: tok.pos, AnchorKind: AnchorCaret}, nil
	case TokDollar:
		return &Node{Kind: KindAnchor, Span: tok.pos, AnchorKind: AnchorDollar}, nil
	case TokAnchorEscape:
		return &Node{Kind: KindAnchor, Span: tok.pos, AnchorKind: tok.anchorKind}, nil
	case TokShorthand:
		return &Node{Kind: KindCharClass, Span: tok.pos, Parts: []ClassPart{{Kind: PartShorthand, Span: tok.pos, Shorthand: tok.shorthand}}}, nil
	case TokUnicodeProp:
		return &Node{Kind: KindCharClass, Span: tok.pos, Parts: []ClassPart{{
			Kind: PartShorthand, Span: tok.pos, Shorthand: ShorthandUnicodeProperty,
			PropertyName: tok.propName, PropertyNegated: tok.propNegated,
		}}}, nil
	case TokBackref:
		return &Node{Kind: KindBackref, Span: tok.pos, TargetName: tok.targetName, TargetIndex: tok.targetIndex}, nil
	case TokRecursion:
		return &Node{Kind: KindRecursion, Span: tok.pos, TargetName: tok.targetName, TargetIndex: tok.targetIndex, IsRoot: tok.isRoot}, nil
	case TokLBracket:
		return p.parseCharClass(tok)
	case TokLParen:
		return p.parseGroup(tok)
	case TokAssertionOpen:
		return p.parseAssertion(tok)
	case TokStar, TokPlus, TokQuestion, TokRepeat:
		return nil, rxerr.NewSyntaxError(rxerr.InvalidQuantifier, tok.pos.Begin, "quantifier with nothing to repeat")
	default:
		return nil, rxerr.NewSyntaxError(rxerr.BadEscape, tok.pos.Begin, "unexpected token %s", tok.kind)
	}
}

func (p *parser) parseGroup(open token) (*Node, error) {
	index := 0
	if open.groupKind == GroupCapturing || open.groupKind == GroupNamed {
		index = p.nextGroupIndex()
	}

	child, err := p.parseAlternation()
	if err != nil {
		return nil, err
	}
	closeTok := p.lex.Peek()
	if closeTok.kind != TokRParen {
		return nil, rxerr.NewSyntaxError(rxerr.UnterminatedGroup, open.pos.Begin, "unterminated group")
	}
	p.lex.NextToken()

	return &Node{
		Kind:      KindGroup,
		Span:      Cover(open.pos, closeTok.pos),
		Child:     child,
		GroupKind: open.groupKind,
		Name:      open.name,
		Index:     index,
	}, nil
}

func (p *parser) parseAssertion(open token) (*Node, error) {
	child, err := p.parseAlternation()
	if err != nil {
		return nil, err
	}
	closeTok := p.lex.Peek()
	if closeTok.kind != TokRParen {
		return nil, rxerr.NewSyntaxError(rxerr.UnterminatedGroup, open.pos.Begin, "unterminated assertion")
	}
	p.lex.NextToken()

	return &Node{
		Kind:          KindAssertion,
		Span:          Cover(open.pos, closeTok.pos),
		Child:         child,
		AssertionKind: open.assertionKind,
	}, nil
}

func (p *parser) parseCharClass(open token) (*Node, error) {
	var parts []ClassPart
	negated := open.negated
	span := open.pos

	for {
		if !p.lex.HasMoreTokens() {
			return nil, rxerr.NewSyntaxError(rxerr.UnterminatedClass, open.pos.Begin, "unterminated character class")
		}
		tok := p.lex.NextToken()
		span = Cover(span, tok.pos)

		switch tok.kind {
		case TokRBracket:
			return &Node{Kind: KindCharClass, Span: span, Parts: parts, Negated: negated}, nil

		case TokPosixClass:
			expanded, err := expandPosixClass(tok.posixName, tok.negated, tok.pos)
			if err != nil {
				return nil, err
			}
			parts = append(parts, expanded...)

		case TokShorthand:
			parts = append(parts, ClassPart{Kind: PartShorthand, Span: tok.pos, Shorthand: tok.shorthand})

		case TokUnicodeProp:
			parts = append(parts, ClassPart{
				Kind: PartShorthand, Span: tok.pos, Shorthand: ShorthandUnicodeProperty,
				PropertyName: tok.propName, PropertyNegated: tok.propNegated,
			})

		case TokMinus:
			parts = append(parts, ClassPart{Kind: PartLiteral, Span: tok.pos, Value: '-'})

		case TokChar, TokEscapeLiteral:
			value := tok.value
			startSpan := tok.pos
			if p.lex.Peek().kind == TokMinus {
				endTok := p.lex.PeekAt(1)
				if endTok.kind == TokChar || endTok.kind == TokEscapeLiteral {
					p.lex.NextToken() // consume '-'
					p.lex.NextToken() // consume end literal
					rangeSpan := Cover(startSpan, endTok.pos)
					span = Cover(span, rangeSpan)
					if endTok.value < value {
						return nil, rxerr.NewSyntaxError(rxerr.BadRange, startSpan.Begin,
							"range %q-%q is out of order", value, endTok.value)
					}
					parts = append(parts, ClassPart{Kind: PartRange, Span: rangeSpan, Start: value, End: endTok.value})
					continue
				}
			}
			parts = append(parts, ClassPart{Kind: PartLiteral, Span: startSpan, Value: value})

		default:
			return nil, rxerr.NewSyntaxError(rxerr.BadEscape, tok.pos.Begin, "unexpected token %s in character class", tok.kind)
		}
	}
}

// expandPosixClass expands a `[:name:]` POSIX class into PartRange
// ClassParts. There is no dedicated ClassPartKind for POSIX classes —
// they are sugar over a fixed set of ranges.
func expandPosixClass(name string, negated bool, pos Position) ([]ClassPart, error) {
	var ranges [][2]rune
	switch name {
	case "alpha":
		ranges = [][2]rune{{'a', 'z'}, {'A', 'Z'}}
	case "digit":
		ranges = [][2]rune{{'0', '9'}}
	case "alnum":
		ranges = [][2]rune{{'a', 'z'}, {'A', 'Z'}, {'0', '9'}}
	case "upper":
		ranges = [][2]rune{{'A', 'Z'}}
	case "lower":
		ranges = [][2]rune{{'a', 'z'}}
	case "space":
		ranges = [][2]rune{{'\t', '\r'}, {' ', ' '}}
	case "punct":
		ranges = [][2]rune{{'!', '/'}, {':', '@'}, {'[', '`'}, {'{', '~'}}
	case "xdigit":
		ranges = [][2]rune{{'0', '9'}, {'a', 'f'}, {'A', 'F'}}
	case "cntrl":
		ranges = [][2]rune{{0x00, 0x1f}, {0x7f, 0x7f}}
	case "print":
		ranges = [][2]rune{{0x20, 0x7e}}
	case "graph":
		ranges = [][2]rune{{0x21, 0x7e}}
	case "blank":
		ranges = [][2]rune{{'\t', '\t'}, {' ', ' '}}
	default:
		return nil, rxerr.NewSyntaxError(rxerr.BadEscape, pos.Begin, "unknown POSIX class %q", name)
	}

	if negated {
		// `[:^name:]` negates only that element, not the whole
		// enclosing class — ClassPart has no per-element negation, so
		// this can't be folded into a plain union of ranges without
		// silently changing what the class matches.
		return nil, &rxerr.UnsupportedFeature{Reason: "negated POSIX class [:^" + name + ":]", Span: [2]int{pos.Begin, pos.End}}
	}

	parts := make([]ClassPart, 0, len(ranges))
	for _, r := range ranges {
		parts = append(parts, ClassPart{Kind: PartRange, Span: pos, Start: r[0], End: r[1]})
	}
	return parts, nil
}
