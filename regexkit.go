// Package regexkit is the single entry point wiring the pattern
// lexer/parser, lint rules, optimizer, subset validator, automaton
// builders, and solver together (quasilyte-regex/regex.go's
// CompileMatcher wires the same kind of small pipeline, generalized
// here to the full analysis/solver surface SPEC_FULL.md describes).
// Matching patterns against input text is out of scope (spec.md §1
// Non-goals) — every operation here reasons about a pattern's
// language, never executes it against a subject string.
package regexkit

import (
	"github.com/regexkit/regexkit/lint"
	"github.com/regexkit/regexkit/optimize"
	"github.com/regexkit/regexkit/rcache"
	"github.com/regexkit/regexkit/solver"
	"github.com/regexkit/regexkit/syntax"
)

// Stats summarizes an AnalyzeReport's issues by severity.
type Stats struct {
	Errors        int
	Warnings      int
	Optimizations int
}

// AnalyzeReport is Analyze's result (spec.md §6: "{lintIssues: [...],
// stats: {errors, warnings, optimizations}}").
type AnalyzeReport struct {
	LintIssues []lint.Issue
	Stats      Stats
}

// Parse splits source into its (delimiter, body, flags) form and
// parses the body into an AST. Flags are not applied to the tree —
// callers that need flag-sensitive behavior (optimize, lint) pass
// pattern.Flags alongside root explicitly.
func Parse(source string) (*syntax.Pattern, *syntax.Node, error) {
	pattern, err := syntax.Split(source)
	if err != nil {
		return nil, nil, err
	}
	root, err := syntax.Parse(pattern.Body)
	if err != nil {
		return &pattern, nil, err
	}
	return &pattern, root, nil
}

// Analyze parses source and runs every default lint rule plus the
// optimizer over it, returning the combined report. A syntax error
// aborts analysis entirely; everything downstream of a parseable AST
// runs to completion even when the pattern later turns out to fall
// outside the regular fragment (spec.md §7).
func Analyze(source string) (AnalyzeReport, error) {
	pattern, root, err := Parse(source)
	if err != nil {
		return AnalyzeReport{}, err
	}
	return analyze(pattern, root)
}

func analyze(pattern *syntax.Pattern, root *syntax.Node) (AnalyzeReport, error) {
	report := lint.Run(pattern, root, lint.DefaultRules())
	suggestions := optimize.Run(root, pattern.Flags)

	stats := Stats{Optimizations: len(suggestions)}
	for _, issue := range report.Issues {
		switch issue.Severity {
		case lint.SeverityError:
			stats.Errors++
		case lint.SeverityWarning:
			stats.Warnings++
		}
	}

	return AnalyzeReport{LintIssues: report.Issues, Stats: stats}, nil
}

// Optimize parses source, applies every safe rewrite optimize.Run
// finds, and re-emits the resulting AST as pattern source using the
// original delimiter and flags.
func Optimize(source string) (string, error) {
	pattern, root, err := Parse(source)
	if err != nil {
		return "", err
	}
	rewritten := optimize.Apply(root, pattern.Flags)
	return Emit(pattern, rewritten), nil
}

// IntersectionEmpty reports whether a and b's languages share any
// string (spec.md §4.9).
func IntersectionEmpty(a, b string, limits solver.Limits) (solver.IntersectionResult, error) {
	rootA, rootB, err := parsePair(a, b)
	if err != nil {
		return solver.IntersectionResult{}, err
	}
	return solver.IntersectionEmpty(rootA, rootB, limits)
}

// SubsetOf reports whether a's language is a subset of b's.
func SubsetOf(a, b string, limits solver.Limits) (solver.SubsetResult, error) {
	rootA, rootB, err := parsePair(a, b)
	if err != nil {
		return solver.SubsetResult{}, err
	}
	return solver.SubsetOf(rootA, rootB, limits)
}

// Equivalent reports whether a and b denote the same language.
func Equivalent(a, b string, limits solver.Limits) (solver.EquivalenceResult, error) {
	rootA, rootB, err := parsePair(a, b)
	if err != nil {
		return solver.EquivalenceResult{}, err
	}
	return solver.Equivalent(rootA, rootB, limits)
}

func parsePair(a, b string) (*syntax.Node, *syntax.Node, error) {
	_, rootA, err := Parse(a)
	if err != nil {
		return nil, nil, err
	}
	_, rootB, err := Parse(b)
	if err != nil {
		return nil, nil, err
	}
	return rootA, rootB, nil
}

// DefaultCache returns the process-wide AST cache, a MemoryCache shared
// by every caller, for passing to NewKit. NewKit(nil) does not use it:
// a nil cache means rcache.NullCache{}, i.e. no caching at all.
func DefaultCache() rcache.Cache {
	return defaultCache
}

var defaultCache = rcache.NewMemoryCache()
