package regexkit

import (
	"strings"

	"github.com/regexkit/regexkit/syntax"
	"github.com/regexkit/regexkit/visitor"
)

// Emit re-wraps root's compiled body in pattern's original delimiter
// and flags, producing a source string that Parse would read back to
// a structurally equal AST (spec.md §8's round-trip property).
func Emit(pattern *syntax.Pattern, root *syntax.Node) string {
	var b strings.Builder
	b.WriteByte(pattern.OpenDelim)
	b.WriteString(visitor.Compile(root))
	b.WriteByte(pattern.CloseDelim)
	for _, f := range pattern.Flags.List() {
		b.WriteByte(byte(f))
	}
	return b.String()
}
