package syntax

import (
	"unicode"

	"github.com/regexkit/regexkit/rxerr"
)

// bracketClose maps an opening bracket delimiter to its closer (spec
// §3/§6: "bracket-style pairs (/) {/} [/] </> are recognized").
var bracketClose = map[byte]byte{
	'(': ')',
	'{': '}',
	'[': ']',
	'<': '>',
}

// Pattern is the (source, body, flags) triple of spec §3. It is
// immutable once built: Split (and later Parse) never mutate Source.
type Pattern struct {
	Source     string
	Body       string
	OpenDelim  byte
	CloseDelim byte
	Flags      FlagSet
}

// isDelimiterCandidate reports whether ch may open a pattern: any
// non-alphanumeric, non-backslash, non-whitespace byte (spec §6).
func isDelimiterCandidate(ch byte) bool {
	if isAlphanumeric(ch) || ch == '\\' {
		return false
	}
	return !unicode.IsSpace(rune(ch))
}

// Split decomposes a raw PCRE-style source string into its delimiter
// pair, body, and trailing flag characters, validating the invariant
// `source = openDelim + body + closeDelim + flags` (spec §3) and that
// every flag character is recognized (spec §6: unknown flags fail
// SyntaxError{UnknownFlag}).
//
// This mirrors the external contract quasilyte-regex/syntax/pcre_test.go
// exercises (Pattern/Delim/Modifiers) — see SPEC_FULL.md's
// "Supplemented features" section: the sampled teacher slice doesn't
// carry this implementation, so it is built fresh against that test's
// documented shape.
func Split(source string) (Pattern, error) {
	if len(source) == 0 {
		return Pattern{}, rxerr.NewSyntaxError(rxerr.MissingDelimiter, 0, "empty pattern")
	}

	open := source[0]
	if !isDelimiterCandidate(open) {
		return Pattern{}, rxerr.NewSyntaxError(rxerr.MissingDelimiter, 0,
			"%q is not a valid delimiter", open)
	}
	close, isBracket := bracketClose[open]
	if !isBracket {
		close = open
	}

	bodyStart := 1
	depth := 1
	i := bodyStart
	closeAt := -1
	for i < len(source) {
		ch := source[i]
		switch {
		case ch == '\\' && i+1 < len(source):
			i += 2
			continue
		case isBracket && ch == open:
			depth++
		case ch == close:
			depth--
			if depth == 0 {
				closeAt = i
			}
		}
		if closeAt >= 0 {
			break
		}
		i++
	}
	if closeAt < 0 {
		return Pattern{}, rxerr.NewSyntaxError(rxerr.MissingDelimiter, len(source),
			"missing closing delimiter %q", close)
	}

	body := source[bodyStart:closeAt]
	flagsStr := source[closeAt+1:]

	flags := newFlagSet()
	for idx := 0; idx < len(flagsStr); idx++ {
		f := Flag(flagsStr[idx])
		if !isKnownFlag(f) {
			return Pattern{}, rxerr.NewSyntaxError(rxerr.UnknownFlag, closeAt+1+idx,
				"unknown flag %q", f)
		}
		flags.add(f, closeAt+1+idx)
	}

	return Pattern{
		Source:     source,
		Body:       body,
		OpenDelim:  open,
		CloseDelim: close,
		Flags:      flags,
	}, nil
}
