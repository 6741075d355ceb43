package format

import "testing"

func TestCollapseWhitespaceLen(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"empty", "", 0},
		{"plain", "hello", 5},
		{"single space", "a b", 3},
		{"run of spaces", "a    b", 3},
		{"newline run", "a\n    b", 3},
		{"tabs count as one column", "a\tb", 3},
		{"leading whitespace dropped", "   a", 1},
		{"trailing whitespace dropped", "a   ", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := collapseWhitespaceLen(tt.input); got != tt.want {
				t.Errorf("collapseWhitespaceLen(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

// Monotonicity is the estimator's load-bearing property: appending
// content must never shrink the estimate.
func TestCollapseWhitespaceLenMonotonic(t *testing.T) {
	base := "foo.bar(baz, qux)"
	suffixes := []string{".quux()", " + 1", "\n    .next()", "\t// x"}
	for _, suffix := range suffixes {
		if collapseWhitespaceLen(base+suffix) < collapseWhitespaceLen(base) {
			t.Errorf("appending %q shrank the estimate", suffix)
		}
	}
}

func TestFlatWidth(t *testing.T) {
	if got := flatWidth("ab\n   cd\ne"); got != 5 {
		t.Errorf("flatWidth = %d, want 5", got)
	}
}

func TestLastLine(t *testing.T) {
	if got := lastLine("a\nb\nc"); got != "c" {
		t.Errorf("lastLine = %q", got)
	}
	if got := lastLine("single"); got != "single" {
		t.Errorf("lastLine = %q", got)
	}
}

func TestIsTypeNode(t *testing.T) {
	for _, kind := range []string{
		"void_type", "integral_type", "floating_point_type", "boolean_type",
		"type_identifier", "scoped_type_identifier", "generic_type", "array_type",
	} {
		if !isTypeNode(kind) {
			t.Errorf("%s should be a type node", kind)
		}
	}
	for _, kind := range []string{"identifier", "block", "method_invocation"} {
		if isTypeNode(kind) {
			t.Errorf("%s should not be a type node", kind)
		}
	}
}

func TestImportGroup(t *testing.T) {
	tests := []struct {
		path     string
		isStatic bool
		want     int
	}{
		{"java.util.List", false, 0},
		{"java.lang.Math", false, 0},
		{"javax.inject.Inject", false, 1},
		{"com.foo.Bar", false, 2},
		{"org.junit.Test", false, 2},
		{"org.junit.Assert.*", true, 3},
		{"java.util.Arrays.asList", true, 3},
	}
	for _, tt := range tests {
		if got := importGroup(tt.path, tt.isStatic); got != tt.want {
			t.Errorf("importGroup(%q, %v) = %d, want %d", tt.path, tt.isStatic, got, tt.want)
		}
	}
}

func TestStripCommentLineTrailingWS(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"* text   ", "* text"},
		{"* text */", "* text */"},
		{"* text   */", "* text */"},
		{"*/", "*/"},
		{"   */", "*/"},
	}
	for _, tt := range tests {
		if got := stripCommentLineTrailingWS(tt.input); got != tt.want {
			t.Errorf("stripCommentLineTrailingWS(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseTagLine(t *testing.T) {
	tag, arg, desc := parseTagLine("@param name the name of the thing")
	if tag != "@param" || arg != "name" || desc != "the name of the thing" {
		t.Errorf("got (%q, %q, %q)", tag, arg, desc)
	}

	tag, arg, desc = parseTagLine("@return the result")
	if tag != "@return" || arg != "" || desc != "the result" {
		t.Errorf("got (%q, %q, %q)", tag, arg, desc)
	}

	tag, arg, desc = parseTagLine("@throws IOException if I/O fails")
	if tag != "@throws" || arg != "IOException" || desc != "if I/O fails" {
		t.Errorf("got (%q, %q, %q)", tag, arg, desc)
	}
}

func TestWrapText(t *testing.T) {
	if got := wrapText("hello world", 80); len(got) != 1 || got[0] != "hello world" {
		t.Errorf("short text should not wrap: %v", got)
	}

	long := "this is a really long line that should definitely be wrapped because it exceeds the maximum width"
	lines := wrapText(long, 40)
	if len(lines) < 2 {
		t.Fatalf("long text should wrap: %v", lines)
	}
	for _, line := range lines {
		if len(line) > 40 && len(splitPreservingInlineTags(line)) > 1 {
			t.Errorf("wrapped line too long: %q", line)
		}
	}
}

func TestWrapTextPreservesInlineCode(t *testing.T) {
	lines := wrapText("See {@code SomeClass} for details", 80)
	if len(lines) != 1 || lines[0] != "See {@code SomeClass} for details" {
		t.Errorf("got %v", lines)
	}
}

func TestSplitPreservingInlineTags(t *testing.T) {
	got := splitPreservingInlineTags("See {@code SomeClass} for details")
	want := []string{"See", "{@code SomeClass}", "for", "details"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestExtractJavadocContent(t *testing.T) {
	text := "/**\n * Hello world.\n * @param name the name\n */"
	content := extractJavadocContent(text)
	if content != "Hello world.\n@param name the name" {
		t.Errorf("got %q", content)
	}
}
