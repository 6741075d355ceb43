package printer

import (
	"strings"
	"testing"
)

func defaultOpts() Options {
	return Options{IndentWidth: 4, MaxWidth: 120, NewLine: "\n"}
}

func TestRenderText(t *testing.T) {
	var items Items
	items.PushStr("hello")
	items.Space()
	items.PushStr("world")
	got := Render(&items, defaultOpts())
	if got != "hello world" {
		t.Errorf("got %q", got)
	}
}

func TestRenderIndentAfterNewline(t *testing.T) {
	var items Items
	items.PushStr("{")
	items.StartIndent()
	items.Newline()
	items.PushStr("body();")
	items.FinishIndent()
	items.Newline()
	items.PushStr("}")
	got := Render(&items, defaultOpts())
	want := "{\n    body();\n}"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderTabs(t *testing.T) {
	var items Items
	items.StartIndent()
	items.Newline()
	items.PushStr("x")
	opts := defaultOpts()
	opts.UseTabs = true
	got := Render(&items, opts)
	if got != "\n\tx" {
		t.Errorf("got %q", got)
	}
}

func TestBlankLineHasNoTrailingWhitespace(t *testing.T) {
	var items Items
	items.StartIndent()
	items.PushStr("a")
	items.Newline()
	items.Newline()
	items.PushStr("b")
	got := Render(&items, defaultOpts())
	for _, line := range strings.Split(got, "\n") {
		if line != strings.TrimRight(line, " \t") {
			t.Errorf("line %q has trailing whitespace", line)
		}
	}
}

func TestGroupStaysFlatWhenFitting(t *testing.T) {
	var items Items
	items.PushStr("call(")
	id := items.StartGroup()
	items.SoftNewline()
	items.PushStr("a")
	items.PushStr(",")
	items.SoftSpace()
	items.PushStr("b")
	items.FinishGroup(id)
	items.PushStr(")")
	got := Render(&items, defaultOpts())
	if got != "call(a, b)" {
		t.Errorf("got %q", got)
	}
}

func TestGroupBreaksWhenOverflowing(t *testing.T) {
	var items Items
	items.PushStr("call(")
	id := items.StartGroup()
	items.StartIndent()
	items.SoftNewline()
	items.PushStr(strings.Repeat("a", 30))
	items.PushStr(",")
	items.SoftSpace()
	items.PushStr(strings.Repeat("b", 30))
	items.FinishIndent()
	items.SoftNewline()
	items.FinishGroup(id)
	items.PushStr(")")

	opts := defaultOpts()
	opts.MaxWidth = 40
	got := Render(&items, opts)
	want := "call(\n    " + strings.Repeat("a", 30) + ",\n    " + strings.Repeat("b", 30) + "\n)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestGroupWithHardNewlineAlwaysBreaks(t *testing.T) {
	var items Items
	id := items.StartGroup()
	items.PushStr("a")
	items.Newline()
	items.PushStr("b")
	items.SoftSpace()
	items.PushStr("c")
	items.FinishGroup(id)
	got := Render(&items, defaultOpts())
	if got != "a\nb\nc" {
		t.Errorf("got %q", got)
	}
}

func TestIfGroupBroke(t *testing.T) {
	build := func(width int) string {
		var items Items
		id := items.StartGroup()
		items.SoftNewline()
		items.PushStr(strings.Repeat("x", 20))
		items.FinishGroup(id)
		items.IfGroupBroke(id, ",")
		return Render(&items, Options{IndentWidth: 4, MaxWidth: width, NewLine: "\n"})
	}
	if got := build(120); strings.Contains(got, ",") {
		t.Errorf("flat group should not emit conditional text: %q", got)
	}
	if got := build(10); !strings.Contains(got, ",") {
		t.Errorf("broken group should emit conditional text: %q", got)
	}
}

func TestUnbalancedFinishIndentClamps(t *testing.T) {
	var items Items
	items.FinishIndent()
	items.Newline()
	items.PushStr("x")
	got := Render(&items, defaultOpts())
	if got != "\nx" {
		t.Errorf("got %q", got)
	}
}

func TestExtendRenumbersGroups(t *testing.T) {
	var inner Items
	id := inner.StartGroup()
	inner.SoftNewline()
	inner.PushStr("inner")
	inner.FinishGroup(id)

	var outer Items
	outerID := outer.StartGroup()
	outer.PushStr("outer ")
	outer.Extend(inner)
	outer.FinishGroup(outerID)

	got := Render(&outer, defaultOpts())
	if got != "outer inner" {
		t.Errorf("got %q", got)
	}
}
