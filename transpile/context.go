package transpile

import "github.com/samber/lo"

// RequiredFlag is one target-dialect flag a Compile call decided it
// needs, and why — e.g. a target whose default class semantics don't
// match regexkit's \w might require its own Unicode flag to compensate.
type RequiredFlag struct {
	Name   string
	Reason string
}

// Context accumulates the side information a Target's Compile/MapFlags
// produces alongside the transpiled string. Every accumulator
// deduplicates: calling Require or Warn or Note twice with the same
// value only keeps one copy (spec.md §6).
type Context struct {
	flags    []RequiredFlag
	warnings []string
	notes    []string
}

// NewContext returns an empty Context.
func NewContext() *Context {
	return &Context{}
}

// Require records that the target dialect needs flag, for reason.
func (c *Context) Require(flag, reason string) {
	c.flags = append(c.flags, RequiredFlag{Name: flag, Reason: reason})
	c.flags = lo.UniqBy(c.flags, func(f RequiredFlag) string { return f.Name + "\x00" + f.Reason })
}

// Warn records a warning message.
func (c *Context) Warn(msg string) {
	c.warnings = append(c.warnings, msg)
	c.warnings = lo.Uniq(c.warnings)
}

// Note records an informational note.
func (c *Context) Note(msg string) {
	c.notes = append(c.notes, msg)
	c.notes = lo.Uniq(c.notes)
}

// RequiredFlags returns the accumulated required flags.
func (c *Context) RequiredFlags() []RequiredFlag { return c.flags }

// Warnings returns the accumulated warnings.
func (c *Context) Warnings() []string { return c.warnings }

// Notes returns the accumulated notes.
func (c *Context) Notes() []string { return c.notes }
