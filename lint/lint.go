// Package lint implements regexkit's non-fatal diagnostic rules: each
// Rule inspects a parsed pattern and reports zero or more Issues. A
// rule never returns an error — a construct a rule can't reason about
// is simply skipped, since invariant violations are findings, not
// pipeline failures (see rxerr's package doc).
package lint

import (
	"sort"

	"github.com/regexkit/regexkit/syntax"
)

// Severity classifies how serious an Issue is.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Issue is one diagnostic finding.
type Issue struct {
	Code       string
	Severity   Severity
	Message    string
	Span       syntax.Position
	Suggestion string
}

// Rule inspects a pattern and appends any Issues it finds.
type Rule interface {
	Name() string
	Check(pattern *syntax.Pattern, root *syntax.Node) []Issue
}

// DefaultRules returns the four rule families regexkit ships with
// (nested quantifiers, alternation-branch overlap, useless flags,
// redundant character-class elements).
func DefaultRules() []Rule {
	return []Rule{
		NestedQuantifierRule{},
		AlternationOverlapRule{},
		UselessFlagsRule{},
		RedundantClassElementRule{},
	}
}

// Report is the deduplicated, stably ordered result of running a set
// of Rules over a pattern.
type Report struct {
	Issues []Issue
}

// Run executes every rule in rules against root, deduplicates by
// (Code, Span), and returns the Issues in stable pre-order-of-span
// order.
func Run(pattern *syntax.Pattern, root *syntax.Node, rules []Rule) Report {
	var all []Issue
	for _, r := range rules {
		all = append(all, r.Check(pattern, root)...)
	}

	seen := make(map[string]bool, len(all))
	out := make([]Issue, 0, len(all))
	for _, issue := range all {
		key := dedupKey(issue)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, issue)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Span.Begin != out[j].Span.Begin {
			return out[i].Span.Begin < out[j].Span.Begin
		}
		return out[i].Span.End < out[j].Span.End
	})

	return Report{Issues: out}
}

func dedupKey(issue Issue) string {
	return issue.Code + "@" + issue.Span.String()
}
