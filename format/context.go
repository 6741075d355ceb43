package format

import "github.com/dhamidi/javafmt/config"

// context carries the mutable traversal state threaded through every
// handler: the source, the resolved configuration, the current indent
// level, and the parent-kind stack used for context-aware decisions.
//
// Every handler must leave indentLevel and the parent stack the way it
// found them; the dispatcher enforces the parent stack by pushing and
// popping around each handler call.
type context struct {
	source []byte
	config *config.Configuration

	indentLevel int
	parentStack []string

	// continuationIndent tracks extra indent levels from wrapped chains
	// and argument lists. They do not change indentLevel but must be
	// counted when estimating the width available to nested lists.
	continuationIndent int

	// assignmentWrapped is set while emitting a right-hand side that was
	// wrapped at '='; prefix estimates then exclude the left-hand side.
	assignmentWrapped bool

	// overridePrefixWidth, when >= 0, replaces the next source-derived
	// prefix estimate (used after a method name wraps to a new line).
	overridePrefixWidth int

	// Type-argument wrap tracking: set while emitting a declaration's
	// type so the declarator can move to a continuation line when the
	// type's arguments wrapped.
	trackTypeArgsWrapping bool
	typeArgsWrapped       bool

	// declaratorOnNewLine is set when the current variable declarator
	// starts on a continuation line (after a wrapped generic type).
	declaratorOnNewLine bool
}

func newContext(source []byte, cfg *config.Configuration) *context {
	return &context{
		source:              source,
		config:              cfg,
		overridePrefixWidth: -1,
	}
}

func (c *context) indent() { c.indentLevel++ }

func (c *context) dedent() {
	if c.indentLevel > 0 {
		c.indentLevel--
	}
}

func (c *context) pushParent(kind string) {
	c.parentStack = append(c.parentStack, kind)
}

func (c *context) popParent() {
	if n := len(c.parentStack); n > 0 {
		c.parentStack = c.parentStack[:n-1]
	}
}

// parent returns the immediate parent kind, or "" at the root.
func (c *context) parent() string {
	if n := len(c.parentStack); n > 0 {
		return c.parentStack[n-1]
	}
	return ""
}

// hasAncestor reports whether kind appears anywhere in the parent stack.
func (c *context) hasAncestor(kind string) bool {
	for _, k := range c.parentStack {
		if k == kind {
			return true
		}
	}
	return false
}

func (c *context) addContinuationIndent(levels int) {
	c.continuationIndent += levels
}

func (c *context) removeContinuationIndent(levels int) {
	if c.continuationIndent >= levels {
		c.continuationIndent -= levels
	}
}

// effectiveIndentLevel includes continuation indent from wrapped
// constructs enclosing the current position.
func (c *context) effectiveIndentLevel() int {
	return c.indentLevel + c.continuationIndent
}

// indentCols is the column where content starts at the current level.
func (c *context) indentCols() int {
	return c.indentLevel * c.config.IndentWidth
}

// effectiveIndentCols includes continuation indent.
func (c *context) effectiveIndentCols() int {
	return c.effectiveIndentLevel() * c.config.IndentWidth
}

// takeOverridePrefixWidth consumes the pending prefix override, if any.
func (c *context) takeOverridePrefixWidth() (int, bool) {
	if c.overridePrefixWidth < 0 {
		return 0, false
	}
	w := c.overridePrefixWidth
	c.overridePrefixWidth = -1
	return w, true
}

func (c *context) setOverridePrefixWidth(w int) { c.overridePrefixWidth = w }

func (c *context) clearOverridePrefixWidth() { c.overridePrefixWidth = -1 }

func (c *context) startTypeArgsWrapTracking() {
	c.trackTypeArgsWrapping = true
	c.typeArgsWrapped = false
}

func (c *context) markTypeArgsWrapped() {
	if c.trackTypeArgsWrapping {
		c.typeArgsWrapped = true
	}
}

func (c *context) finishTypeArgsWrapTracking() bool {
	c.trackTypeArgsWrapping = false
	wrapped := c.typeArgsWrapped
	c.typeArgsWrapped = false
	return wrapped
}
