package transpile

import "testing"

func TestContextRequireDeduplicatesByNameAndReason(t *testing.T) {
	ctx := NewContext()
	ctx.Require("u", "unicode property classes")
	ctx.Require("u", "unicode property classes")
	ctx.Require("u", "named groups")
	if got := len(ctx.RequiredFlags()); got != 2 {
		t.Fatalf("RequiredFlags() len = %d, want 2: %v", got, ctx.RequiredFlags())
	}
}

func TestContextWarnDeduplicates(t *testing.T) {
	ctx := NewContext()
	ctx.Warn("possessive quantifiers are not supported, rewritten as greedy")
	ctx.Warn("possessive quantifiers are not supported, rewritten as greedy")
	if got := len(ctx.Warnings()); got != 1 {
		t.Fatalf("Warnings() len = %d, want 1: %v", got, ctx.Warnings())
	}
}

func TestContextNoteDeduplicates(t *testing.T) {
	ctx := NewContext()
	ctx.Note("group 1 renumbered to 2")
	ctx.Note("group 1 renumbered to 2")
	ctx.Note("group 3 renumbered to 4")
	if got := len(ctx.Notes()); got != 2 {
		t.Fatalf("Notes() len = %d, want 2: %v", got, ctx.Notes())
	}
}

func TestNewContextStartsEmpty(t *testing.T) {
	ctx := NewContext()
	if len(ctx.RequiredFlags()) != 0 || len(ctx.Warnings()) != 0 || len(ctx.Notes()) != 0 {
		t.Fatalf("NewContext() should start with no accumulated state")
	}
}
