// Package transpile is the external contract a collaborator
// implements to retarget a parsed pattern at another regex dialect.
// No concrete Target ships here — per-dialect emission is out of
// scope (spec.md §1 Non-goals) — only the interface and the
// accumulator a Target's Compile method writes required flags,
// warnings, and notes into.
package transpile

import "github.com/regexkit/regexkit/syntax"

// Target describes one regex dialect a pattern can be transpiled to.
type Target interface {
	Name() string
	Aliases() []string
	DefaultDelimiter() byte
	Compile(root *syntax.Node, ctx *Context) (string, error)
	MapFlags(flags syntax.FlagSet, ctx *Context) string
}
