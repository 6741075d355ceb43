package format

import (
	"testing"

	"github.com/dhamidi/javafmt/config"
)

func testContext() *context {
	cfg := config.Default(config.StylePalantir)
	return newContext(nil, &cfg)
}

func TestContextIndentDedent(t *testing.T) {
	ctx := testContext()
	if ctx.indentLevel != 0 {
		t.Fatalf("indentLevel = %d, want 0", ctx.indentLevel)
	}

	ctx.indent()
	ctx.indent()
	if ctx.indentLevel != 2 {
		t.Errorf("indentLevel = %d, want 2", ctx.indentLevel)
	}

	ctx.dedent()
	ctx.dedent()
	if ctx.indentLevel != 0 {
		t.Errorf("indentLevel = %d, want 0", ctx.indentLevel)
	}

	// Dedent at zero stays at zero.
	ctx.dedent()
	if ctx.indentLevel != 0 {
		t.Errorf("indentLevel = %d after underflow, want 0", ctx.indentLevel)
	}
}

func TestContextParentStack(t *testing.T) {
	ctx := testContext()
	if ctx.parent() != "" {
		t.Error("empty stack should have no parent")
	}
	if ctx.hasAncestor("class_declaration") {
		t.Error("empty stack should have no ancestors")
	}

	ctx.pushParent("class_declaration")
	ctx.pushParent("method_declaration")
	if ctx.parent() != "method_declaration" {
		t.Errorf("parent = %q", ctx.parent())
	}
	if !ctx.hasAncestor("class_declaration") {
		t.Error("class_declaration should be an ancestor")
	}

	ctx.popParent()
	if ctx.parent() != "class_declaration" {
		t.Errorf("parent after pop = %q", ctx.parent())
	}
	if ctx.hasAncestor("method_declaration") {
		t.Error("popped kind must not remain an ancestor")
	}

	ctx.popParent()
	if ctx.parent() != "" {
		t.Error("stack should be empty again")
	}
}

func TestContextContinuationIndent(t *testing.T) {
	ctx := testContext()
	ctx.indent()
	ctx.addContinuationIndent(2)
	if got := ctx.effectiveIndentLevel(); got != 3 {
		t.Errorf("effectiveIndentLevel = %d, want 3", got)
	}
	if got := ctx.effectiveIndentCols(); got != 12 {
		t.Errorf("effectiveIndentCols = %d, want 12", got)
	}
	ctx.removeContinuationIndent(2)
	if got := ctx.effectiveIndentLevel(); got != 1 {
		t.Errorf("effectiveIndentLevel = %d, want 1", got)
	}
	// Removing more than was added is clamped.
	ctx.removeContinuationIndent(5)
	if got := ctx.effectiveIndentLevel(); got != 1 {
		t.Errorf("effectiveIndentLevel = %d after clamped removal, want 1", got)
	}
}

func TestContextOverridePrefixWidth(t *testing.T) {
	ctx := testContext()
	if _, ok := ctx.takeOverridePrefixWidth(); ok {
		t.Error("fresh context should have no override")
	}

	ctx.setOverridePrefixWidth(17)
	w, ok := ctx.takeOverridePrefixWidth()
	if !ok || w != 17 {
		t.Errorf("takeOverridePrefixWidth = %d, %v", w, ok)
	}
	if _, ok := ctx.takeOverridePrefixWidth(); ok {
		t.Error("override must be consumed by take")
	}
}

func TestContextTypeArgsWrapTracking(t *testing.T) {
	ctx := testContext()

	// Marking without tracking is a no-op.
	ctx.markTypeArgsWrapped()
	ctx.startTypeArgsWrapTracking()
	if ctx.finishTypeArgsWrapTracking() {
		t.Error("nothing was marked while tracking")
	}

	ctx.startTypeArgsWrapTracking()
	ctx.markTypeArgsWrapped()
	if !ctx.finishTypeArgsWrapTracking() {
		t.Error("mark during tracking should be reported")
	}
	ctx.startTypeArgsWrapTracking()
	if ctx.finishTypeArgsWrapTracking() {
		t.Error("finish must reset the wrapped flag")
	}
}
