package syntax

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/regexkit/regexkit/rxerr"
)

// lexer tokenizes a pattern Body in one pass, exactly like
// quasilyte-regex/syntax/lexer.go's Init: the whole token stream is
// produced up front into a slice, and the parser consumes it through
// HasMoreTokens/NextToken/Peek. There is no synthetic "concat" token —
// concatenation is a parseConcat loop in the parser (alternation →
// concatenation → quantified → atom), which is simpler to get right
// than marking concat positions during lexing.
type lexer struct {
	tokens []token
	pos    int
	input  string
}

func (l *lexer) HasMoreTokens() bool { return l.pos < len(l.tokens) }

func (l *lexer) NextToken() token {
	if l.pos < len(l.tokens) {
		tok := l.tokens[l.pos]
		l.pos++
		return tok
	}
	return token{}
}

func (l *lexer) Peek() token {
	if l.pos < len(l.tokens) {
		return l.tokens[l.pos]
	}
	return token{}
}

// PeekAt looks ahead n tokens past the current position (PeekAt(0) ==
// Peek); used by the parser's character-class range lookahead.
func (l *lexer) PeekAt(n int) token {
	if l.pos+n < len(l.tokens) {
		return l.tokens[l.pos+n]
	}
	return token{}
}

func (l *lexer) Init(s string) error {
	l.pos = 0
	l.tokens = l.tokens[:0]
	l.input = s

	i := 0
	insideClass := false
	push := func(tok token) { l.tokens = append(l.tokens, tok) }

	for i < len(s) {
		ch, size := utf8.DecodeRuneInString(s[i:])
		start := i

		if insideClass {
			tok, consumed, err := l.lexClassElement(i)
			if err != nil {
				return err
			}
			push(tok)
			i += consumed
			if tok.kind == TokRBracket {
				insideClass = false
			}
			continue
		}

		switch ch {
		case '.':
			push(token{kind: TokDot, pos: span(start, start+size)})
			i += size
		case '^':
			push(token{kind: TokCaret, pos: span(start, start+size)})
			i += size
		case '$':
			push(token{kind: TokDollar, pos: span(start, start+size)})
			i += size
		case '|':
			push(token{kind: TokPipe, pos: span(start, start+size)})
			i += size
		case '*':
			push(token{kind: TokStar, pos: span(start, start+size)})
			i += size
		case '+':
			push(token{kind: TokPlus, pos: span(start, start+size)})
			i += size
		case '?':
			push(token{kind: TokQuestion, pos: span(start, start+size)})
			i += size
		case ')':
			push(token{kind: TokRParen, pos: span(start, start+size)})
			i += size
		case '[':
			negated := false
			consumed := size
			if byteAt(s, i+1) == '^' {
				negated = true
				consumed++
			}
			push(token{kind: TokLBracket, pos: span(start, start+consumed), negated: negated})
			i += consumed
			insideClass = true
		case ']':
			// A bare ']' outside a class is a literal (spec doesn't
			// require it to be escaped there, matching common PCRE
			// practice for a class-less ']').
			push(token{kind: TokChar, pos: span(start, start+size), value: ']'})
			i += size
		case '{':
			if min, max, width, ok := parseRepeat(s, i+1); ok {
				push(token{kind: TokRepeat, pos: span(start, start+1+width), min: min, max: max})
				i += 1 + width
			} else {
				push(token{kind: TokChar, pos: span(start, start+size), value: '{'})
				i += size
			}
		case '(':
			tok, consumed, err := l.lexGroupOpen(i)
			if err != nil {
				return err
			}
			push(tok)
			i += consumed
		case '\\':
			tok, consumed, err := l.lexEscape(i, false)
			if err != nil {
				return err
			}
			push(tok)
			i += consumed
		default:
			push(token{kind: TokChar, pos: span(start, start+size), value: ch})
			i += size
		}
	}

	return nil
}

// lexClassElement lexes one element at offset i while inside a `[...]`
// class: a posix class `[:alpha:]`, the closing `]`, the range
// operator `-`, an escape, or a literal char.
func (l *lexer) lexClassElement(i int) (token, int, error) {
	s := l.input
	ch, size := utf8.DecodeRuneInString(s[i:])

	switch ch {
	case ']':
		return token{kind: TokRBracket, pos: span(i, i+size)}, size, nil
	case '-':
		return token{kind: TokMinus, pos: span(i, i+size)}, size, nil
	case '[':
		if byteAt(s, i+1) == ':' {
			if end := strings.Index(s[i+2:], ":]"); end >= 0 {
				name := s[i+2 : i+2+end]
				width := 2 + end + 2
				neg := strings.HasPrefix(name, "^")
				if neg {
					name = name[1:]
				}
				return token{kind: TokPosixClass, pos: span(i, i+width), posixName: name, negated: neg}, width, nil
			}
		}
		return token{kind: TokChar, pos: span(i, i+size), value: ch}, size, nil
	case '\\':
		return l.lexEscape(i, true)
	default:
		return token{kind: TokChar, pos: span(i, i+size), value: ch}, size, nil
	}
}

// lexGroupOpen lexes a `(` and, via lookahead, classifies it as a
// plain capturing group, a named/non-capturing/atomic/branch-reset
// group, an assertion open, or a recursion reference — mirroring
// quasilyte-regex/syntax/lexer.go's captureNameWidth/groupFlagsWidth
// lookahead-width helpers, extended per SPEC_FULL.md's "Supplemented
// features" to the additional constructs spec §3's Node model
// requires.
func (l *lexer) lexGroupOpen(i int) (token, int, error) {
	s := l.input
	if byteAt(s, i+1) != '?' {
		return token{kind: TokLParen, pos: span(i, i+1), groupKind: GroupCapturing}, 1, nil
	}

	rest := s[i+2:]
	switch {
	case strings.HasPrefix(rest, ":"):
		return token{kind: TokLParen, pos: span(i, i+3), groupKind: GroupNonCapturing}, 3, nil
	case strings.HasPrefix(rest, ">"):
		return token{kind: TokLParen, pos: span(i, i+3), groupKind: GroupAtomic}, 3, nil
	case strings.HasPrefix(rest, "|"):
		return token{kind: TokLParen, pos: span(i, i+3), groupKind: GroupBranchReset}, 3, nil
	case strings.HasPrefix(rest, "="):
		return token{kind: TokAssertionOpen, pos: span(i, i+3), assertionKind: Lookahead}, 3, nil
	case strings.HasPrefix(rest, "!"):
		return token{kind: TokAssertionOpen, pos: span(i, i+3), assertionKind: NegativeLookahead}, 3, nil
	case strings.HasPrefix(rest, "<="):
		return token{kind: TokAssertionOpen, pos: span(i, i+4), assertionKind: Lookbehind}, 4, nil
	case strings.HasPrefix(rest, "<!"):
		return token{kind: TokAssertionOpen, pos: span(i, i+4), assertionKind: NegativeLookbehind}, 4, nil
	case strings.HasPrefix(rest, "R)"):
		return token{kind: TokRecursion, pos: span(i, i+4), isRoot: true}, 4, nil
	case strings.HasPrefix(rest, "&"):
		if end := strings.IndexByte(rest, ')'); end >= 0 {
			name := rest[1:end]
			width := 2 + end + 1
			return token{kind: TokRecursion, pos: span(i, i+width), targetName: name}, width, nil
		}
	case strings.HasPrefix(rest, "P>"):
		if end := strings.IndexByte(rest, ')'); end >= 0 {
			name := rest[2:end]
			width := 2 + end + 1
			return token{kind: TokRecursion, pos: span(i, i+width), targetName: name}, width, nil
		}
	case strings.HasPrefix(rest, "P<"), strings.HasPrefix(rest, "<") && !strings.HasPrefix(rest, "<=") && !strings.HasPrefix(rest, "<!"):
		prefixLen := 2
		if rest[0] == '<' {
			prefixLen = 1
		}
		if end := strings.IndexByte(rest[prefixLen:], '>'); end >= 0 {
			name := rest[prefixLen : prefixLen+end]
			width := 2 + prefixLen + end + 1
			return token{kind: TokLParen, pos: span(i, i+width), groupKind: GroupNamed, name: name}, width, nil
		}
	case strings.HasPrefix(rest, "'"):
		if end := strings.IndexByte(rest[1:], '\''); end >= 0 {
			name := rest[1 : 1+end]
			width := 2 + 1 + end + 1
			return token{kind: TokLParen, pos: span(i, i+width), groupKind: GroupNamed, name: name}, width, nil
		}
	case rest != "" && isDigit(rest[0]):
		j := 0
		for j < len(rest) && isDigit(rest[j]) {
			j++
		}
		if j < len(rest) && rest[j] == ')' {
			n, _ := strconv.Atoi(rest[:j])
			width := 2 + j + 1
			if n == 0 {
				return token{kind: TokRecursion, pos: span(i, i+width), isRoot: true}, width, nil
			}
			return token{kind: TokRecursion, pos: span(i, i+width), targetIndex: n}, width, nil
		}
	default:
		// (?flags) or (?flags:...) — a group-local flag directive.
		// Node has no dedicated "flags" variant (spec §3), so this is
		// folded into a non-capturing group: the enclosed expression
		// (or an empty one, for the bare `(?flags)` form) becomes a
		// GroupNonCapturing node. See DESIGN.md.
		if colon := strings.IndexByte(rest, ':'); colon >= 0 {
			if looksLikeFlags(rest[:colon]) {
				width := 2 + colon + 1
				return token{kind: TokLParen, pos: span(i, i+width), groupKind: GroupNonCapturing}, width, nil
			}
		}
		if paren := strings.IndexByte(rest, ')'); paren >= 0 {
			if looksLikeFlags(rest[:paren]) {
				// The ')' is left for the parser, which closes the
				// (empty) group with it.
				width := 2 + paren
				return token{kind: TokLParen, pos: span(i, i+width), groupKind: GroupNonCapturing}, width, nil
			}
		}
	}

	return token{}, 0, rxerr.NewSyntaxError(rxerr.UnterminatedGroup, i, "malformed group open %q", snippet(s, i))
}

func looksLikeFlags(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] != '-' && !isKnownFlag(Flag(s[i])) {
			return false
		}
	}
	return true
}

// lexEscape lexes a `\...` sequence starting at i. insideClass narrows
// which escapes are legal (e.g. \b means backspace, not word boundary,
// inside a class).
func (l *lexer) lexEscape(i int, insideClass bool) (token, int, error) {
	s := l.input
	if i+1 >= len(s) {
		return token{}, 0, rxerr.NewSyntaxError(rxerr.BadEscape, i, "trailing '\\'")
	}
	c := s[i+1]

	switch {
	case c == 'd' || c == 'D' || c == 'w' || c == 'W' || c == 's' || c == 'S':
		return token{kind: TokShorthand, pos: span(i, i+2), shorthand: shorthandOf(c)}, 2, nil

	case !insideClass && (c == 'A' || c == 'z' || c == 'Z' || c == 'b' || c == 'B' || c == 'G'):
		return token{kind: TokAnchorEscape, pos: span(i, i+2), anchorKind: anchorOf(c)}, 2, nil

	case c == 'p' || c == 'P':
		if i+2 >= len(s) {
			return token{}, 0, rxerr.NewSyntaxError(rxerr.BadEscape, i, "truncated unicode property escape")
		}
		negated := c == 'P'
		if s[i+2] == '{' {
			end := strings.IndexByte(s[i+2:], '}')
			if end < 0 {
				return token{}, 0, rxerr.NewSyntaxError(rxerr.BadEscape, i, "unterminated \\p{...}")
			}
			name := s[i+3 : i+2+end]
			width := 2 + end + 1
			return token{kind: TokUnicodeProp, pos: span(i, i+width), propName: name, propNegated: negated}, width, nil
		}
		name := string(s[i+2])
		return token{kind: TokUnicodeProp, pos: span(i, i+3), propName: name, propNegated: negated}, 3, nil

	case c == 'x':
		if i+2 < len(s) && s[i+2] == '{' {
			end := strings.IndexByte(s[i+2:], '}')
			if end < 0 {
				return token{}, 0, rxerr.NewSyntaxError(rxerr.BadEscape, i, "unterminated \\x{...}")
			}
			hex := s[i+3 : i+2+end]
			v, err := strconv.ParseInt(hex, 16, 32)
			if err != nil {
				return token{}, 0, rxerr.NewSyntaxError(rxerr.BadEscape, i, "invalid hex escape %q", hex)
			}
			width := 2 + end + 1
			return token{kind: TokEscapeLiteral, pos: span(i, i+width), value: rune(v)}, width, nil
		}
		end := i + 2
		for end < len(s) && end < i+4 && isHexDigit(s[end]) {
			end++
		}
		if end == i+2 {
			return token{}, 0, rxerr.NewSyntaxError(rxerr.BadEscape, i, "invalid hex escape")
		}
		v, _ := strconv.ParseInt(s[i+2:end], 16, 32)
		return token{kind: TokEscapeLiteral, pos: span(i, end), value: rune(v)}, end - i, nil

	case c == '0':
		end := i + 2
		for end < len(s) && end < i+4 && isOctalDigit(s[end]) {
			end++
		}
		v, _ := strconv.ParseInt(orZero(s[i+1:end]), 8, 32)
		return token{kind: TokEscapeLiteral, pos: span(i, end), value: rune(v)}, end - i, nil

	case c >= '1' && c <= '9' && !insideClass:
		j := i + 1
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		n, _ := strconv.Atoi(s[i+1 : j])
		return token{kind: TokBackref, pos: span(i, j), targetIndex: n}, j - i, nil

	case c >= '1' && c <= '7' && insideClass:
		// \1-\7 inside a class can't be a backreference (classes don't
		// nest groups), so it is always read as an octal escape.
		end := i + 1
		for end < len(s) && end < i+4 && isOctalDigit(s[end]) {
			end++
		}
		v, _ := strconv.ParseInt(s[i+1:end], 8, 32)
		return token{kind: TokEscapeLiteral, pos: span(i, end), value: rune(v)}, end - i, nil

	case c == 'k':
		if i+2 < len(s) && (s[i+2] == '<' || s[i+2] == '\'' || s[i+2] == '{') {
			open := s[i+2]
			closeCh := byte('>')
			if open == '\'' {
				closeCh = '\''
			} else if open == '{' {
				closeCh = '}'
			}
			if end := strings.IndexByte(s[i+3:], closeCh); end >= 0 {
				name := s[i+3 : i+3+end]
				width := 3 + end + 1
				return token{kind: TokBackref, pos: span(i, i+width), targetName: name}, width, nil
			}
		}
		return token{kind: TokEscapeLiteral, pos: span(i, i+2), value: 'k'}, 2, nil

	case c == 'g':
		// \g<name>/\g{name}/\g<n>/\g{n} is a subroutine call (spec
		// treats it the same as (?&name)/(?N): recursion, not a
		// backreference — \k is the named-backreference form.
		if i+2 < len(s) && (s[i+2] == '<' || s[i+2] == '{') {
			open := s[i+2]
			closeCh := byte('>')
			if open == '{' {
				closeCh = '}'
			}
			if end := strings.IndexByte(s[i+3:], closeCh); end >= 0 {
				body := s[i+3 : i+3+end]
				width := 3 + end + 1
				if n, err := strconv.Atoi(body); err == nil {
					if n == 0 {
						return token{kind: TokRecursion, pos: span(i, i+width), isRoot: true}, width, nil
					}
					return token{kind: TokRecursion, pos: span(i, i+width), targetIndex: n}, width, nil
				}
				return token{kind: TokRecursion, pos: span(i, i+width), targetName: body}, width, nil
			}
		}
		return token{kind: TokEscapeLiteral, pos: span(i, i+2), value: 'g'}, 2, nil

	case c == 'Q':
		end := strings.Index(s[i+2:], `\E`)
		var width int
		var text string
		if end < 0 {
			width = len(s) - i
			text = s[i+2:]
		} else {
			width = 2 + end + 2
			text = s[i+2 : i+2+end]
		}
		if len(text) > 0 {
			r, _ := utf8.DecodeRuneInString(text)
			return token{kind: TokChar, pos: span(i, i+width), value: r}, width, nil
		}
		return token{kind: TokChar, pos: span(i, i+width), value: 0}, width, nil

	default:
		r, size := utf8.DecodeRuneInString(s[i+1:])
		return token{kind: TokEscapeLiteral, pos: span(i, i+1+size), value: resolveSimpleEscape(r)}, 1 + size, nil
	}
}

func resolveSimpleEscape(r rune) rune {
	switch r {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case 'f':
		return '\f'
	case 'v':
		return '\v'
	case 'a':
		return '\a'
	case 'e':
		return 0x1b
	case 'b':
		// Only reached inside a class; outside one \b is a word-boundary
		// anchor.
		return '\b'
	default:
		return r
	}
}

func shorthandOf(c byte) ShorthandKind {
	switch c {
	case 'd':
		return ShorthandDigit
	case 'D':
		return ShorthandNonDigit
	case 'w':
		return ShorthandWord
	case 'W':
		return ShorthandNonWord
	case 's':
		return ShorthandSpace
	default:
		return ShorthandNonSpace
	}
}

func anchorOf(c byte) AnchorKind {
	switch c {
	case 'A':
		return AnchorStartText
	case 'z':
		return AnchorEndText
	case 'Z':
		return AnchorEndTextNL
	case 'b':
		return AnchorWordBoundary
	case 'B':
		return AnchorNonWordBoundary
	default:
		return AnchorPrevMatchEnd
	}
}

// parseRepeat parses a `{min,max}` / `{min,}` / `{min}` quantifier
// body starting right after the `{`, mirroring
// quasilyte-regex/syntax/lexer.go's repeatWidth. It returns ok=false
// (and the `{` is then a literal char) when the text doesn't match
// one of those shapes — m>n validation happens in the parser per
// spec §4.2.
func parseRepeat(s string, pos int) (min, max, width int, ok bool) {
	j := pos
	for j < len(s) && isDigit(s[j]) {
		j++
	}
	if j == pos {
		return 0, 0, 0, false
	}
	minVal, _ := strconv.Atoi(s[pos:j])
	if j < len(s) && s[j] == '}' {
		return minVal, minVal, j - pos + 1, true
	}
	if j >= len(s) || s[j] != ',' {
		return 0, 0, 0, false
	}
	j++
	k := j
	for k < len(s) && isDigit(s[k]) {
		k++
	}
	if k >= len(s) || s[k] != '}' {
		return 0, 0, 0, false
	}
	if k == j {
		return minVal, -1, k - pos + 1, true
	}
	maxVal, _ := strconv.Atoi(s[j:k])
	return minVal, maxVal, k - pos + 1, true
}

func span(begin, end int) Position { return Position{Begin: begin, End: end} }

func byteAt(s string, i int) byte {
	if i >= 0 && i < len(s) {
		return s[i]
	}
	return 0
}

func isDigit(ch byte) bool      { return ch >= '0' && ch <= '9' }
func isOctalDigit(ch byte) bool { return ch >= '0' && ch <= '7' }
func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}

func snippet(s string, i int) string {
	end := i + 12
	if end > len(s) {
		end = len(s)
	}
	return s[i:end]
}
