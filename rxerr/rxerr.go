// Package rxerr defines the error taxonomy shared by every regexkit
// subsystem: lexer/parser syntax errors, subset-validator rejections,
// automaton/solver complexity ceilings, and cache backend failures.
//
// Lint rules never produce an rxerr value — invariant violations found
// by a lint rule become a lint.Issue instead (see the lint package).
// rxerr is reserved for failures that stop a pipeline stage outright.
package rxerr

import (
	"errors"
	"fmt"
)

// SyntaxKind classifies a SyntaxError.
type SyntaxKind int

const (
	UnterminatedClass SyntaxKind = iota
	UnterminatedGroup
	BadEscape
	MissingDelimiter
	UnknownFlag
	InvalidQuantifier
	BadRange
)

func (k SyntaxKind) String() string {
	switch k {
	case UnterminatedClass:
		return "UnterminatedClass"
	case UnterminatedGroup:
		return "UnterminatedGroup"
	case BadEscape:
		return "BadEscape"
	case MissingDelimiter:
		return "MissingDelimiter"
	case UnknownFlag:
		return "UnknownFlag"
	case InvalidQuantifier:
		return "InvalidQuantifier"
	case BadRange:
		return "BadRange"
	default:
		return fmt.Sprintf("SyntaxKind(%d)", int(k))
	}
}

// SyntaxError reports a malformed pattern. Offset is a byte offset:
// from the start of the full pattern source for errors raised while
// splitting off the delimiters and flags, and from the start of the
// body for errors raised by the lexer and parser.
type SyntaxError struct {
	Kind   SyntaxKind
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("regexkit: syntax error at offset %d: %s", e.Offset, e.Msg)
}

// NewSyntaxError builds a SyntaxError with a formatted message.
func NewSyntaxError(kind SyntaxKind, offset int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Kind: kind, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

// ErrUnsupportedFeature is the sentinel wrapped by UnsupportedFeature.
var ErrUnsupportedFeature = errors.New("construct is outside the regular fragment")

// UnsupportedFeature reports that a pattern uses a construct outside
// the regular fragment (backreferences, lookaround, recursion) when a
// regular-language operation (NFA/DFA build, solver query) was
// requested on it.
type UnsupportedFeature struct {
	Reason string
	Span   [2]int
}

func (e *UnsupportedFeature) Error() string {
	return fmt.Sprintf("regexkit: unsupported construct at [%d,%d): %s", e.Span[0], e.Span[1], e.Reason)
}

func (e *UnsupportedFeature) Unwrap() error { return ErrUnsupportedFeature }

// ComplexityKind classifies which ceiling a ComplexityError exceeded.
type ComplexityKind int

const (
	TooManyStates ComplexityKind = iota
	TooManyAlphabetIntervals
	PatternTooLong
	RecursionTooDeep
)

func (k ComplexityKind) String() string {
	switch k {
	case TooManyStates:
		return "TooManyStates"
	case TooManyAlphabetIntervals:
		return "TooManyAlphabetIntervals"
	case PatternTooLong:
		return "PatternTooLong"
	case RecursionTooDeep:
		return "RecursionTooDeep"
	default:
		return fmt.Sprintf("ComplexityKind(%d)", int(k))
	}
}

// ErrComplexity is the sentinel wrapped by ComplexityError.
var ErrComplexity = errors.New("resource limit exceeded")

// ComplexityError reports that a hard resource ceiling (DFA state
// count, alphabet interval count, pattern length, NFA-build recursion
// depth) was exceeded. It is the explicit guard against state-space
// explosion described in spec §4.9/§5.
type ComplexityError struct {
	Kind  ComplexityKind
	Limit int
	Got   int
}

func (e *ComplexityError) Error() string {
	return fmt.Sprintf("regexkit: %s exceeded: limit %d, got %d", e.Kind, e.Limit, e.Got)
}

func (e *ComplexityError) Unwrap() error { return ErrComplexity }

// ErrCache is the sentinel wrapped by CacheError.
var ErrCache = errors.New("cache backend failure")

// CacheError wraps an underlying cache backend failure. Per spec §7 it
// is recoverable: callers should log it and proceed without the
// cache, never treat it as fatal.
type CacheError struct {
	Op  string
	Key string
	Err error
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("regexkit: cache %s(%q) failed: %v", e.Op, e.Key, e.Err)
}

func (e *CacheError) Unwrap() error { return e.Err }

// IsComplexity reports whether err is (or wraps) a ComplexityError.
func IsComplexity(err error) bool { return errors.Is(err, ErrComplexity) }

// IsUnsupported reports whether err is (or wraps) an UnsupportedFeature.
func IsUnsupported(err error) bool { return errors.Is(err, ErrUnsupportedFeature) }
