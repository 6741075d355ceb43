package format

import (
	"strings"
	"testing"

	"github.com/dhamidi/javafmt/config"
)

func palantirConfig() config.Configuration {
	return config.Default(config.StylePalantir)
}

// formatSource formats and returns the output, treating "unchanged" as
// the input itself.
func formatSource(t *testing.T, input string, cfg config.Configuration) string {
	t.Helper()
	out, err := Format([]byte(input), cfg)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if out == nil {
		return input
	}
	return string(out)
}

func TestFormatAlreadyFormattedReturnsNil(t *testing.T) {
	input := "public class Hello {\n" +
		"    public static void main(String[] args) {\n" +
		"        System.out.println(\"Hello, world!\");\n" +
		"    }\n" +
		"}\n"
	out, err := Format([]byte(input), palantirConfig())
	if err != nil {
		t.Fatal(err)
	}
	if out != nil {
		t.Errorf("already formatted input should return nil, got:\n%s", out)
	}
}

func TestFormatParseErrorReturnsInputUnchanged(t *testing.T) {
	input := "public class { broken syntax"
	out, err := Format([]byte(input), palantirConfig())
	if err != nil {
		t.Fatal(err)
	}
	if out != nil {
		t.Errorf("unparseable input must come back unchanged, got:\n%s", out)
	}
}

func TestFormatCorrectsIndentation(t *testing.T) {
	input := "public class Hello {\n" +
		"public void greet() {\n" +
		"System.out.println(\"hi\");\n" +
		"}\n" +
		"}\n"
	want := "public class Hello {\n" +
		"    public void greet() {\n" +
		"        System.out.println(\"hi\");\n" +
		"    }\n" +
		"}\n"
	got := formatSource(t, input, palantirConfig())
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatCorrectsMissingSpaces(t *testing.T) {
	input := "public class Hello{\n" +
		"    void greet(){\n" +
		"        return;\n" +
		"    }\n" +
		"}\n"
	want := "public class Hello {\n" +
		"    void greet() {\n" +
		"        return;\n" +
		"    }\n" +
		"}\n"
	got := formatSource(t, input, palantirConfig())
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatPackageAndImports(t *testing.T) {
	expected := "package com.example;\n" +
		"\n" +
		"import java.util.List;\n" +
		"import java.util.Map;\n" +
		"\n" +
		"public class Foo {}\n"
	got := formatSource(t, expected, palantirConfig())
	if got != expected {
		t.Errorf("got:\n%s\nwant:\n%s", got, expected)
	}
}

func TestImportGrouping(t *testing.T) {
	input := "package p;\n" +
		"\n" +
		"import org.junit.Test;\n" +
		"import static org.junit.Assert.assertEquals;\n" +
		"import javax.inject.Inject;\n" +
		"import java.util.List;\n" +
		"import com.foo.Bar;\n" +
		"import java.util.ArrayList;\n" +
		"\n" +
		"public class Foo {}\n"
	got := formatSource(t, input, palantirConfig())

	want := "package p;\n" +
		"\n" +
		"import java.util.ArrayList;\n" +
		"import java.util.List;\n" +
		"\n" +
		"import javax.inject.Inject;\n" +
		"\n" +
		"import com.foo.Bar;\n" +
		"import org.junit.Test;\n" +
		"\n" +
		"import static org.junit.Assert.assertEquals;\n" +
		"\n" +
		"public class Foo {}\n"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestJavaLangImportsAreKept(t *testing.T) {
	input := "import java.lang.Math;\n" +
		"\n" +
		"public class Foo {}\n"
	got := formatSource(t, input, palantirConfig())
	if !strings.Contains(got, "import java.lang.Math;") {
		t.Errorf("java.lang imports must be kept, got:\n%s", got)
	}
}

func TestIfElseChain(t *testing.T) {
	input := "public class Test {\n" +
		"    void test() {\n" +
		"        if (x > 0) {\n" +
		"            a();\n" +
		"        } else if (x < 0) {\n" +
		"            b();\n" +
		"        } else {\n" +
		"            c();\n" +
		"        }\n" +
		"    }\n" +
		"}\n"
	got := formatSource(t, input, palantirConfig())
	if got != input {
		t.Errorf("well-formatted if/else chain should be stable, got:\n%s", got)
	}
}

func TestTryCatchFinally(t *testing.T) {
	input := "public class Test {\n" +
		"    void test() {\n" +
		"        try {\n" +
		"            doSomething();\n" +
		"        } catch (Exception e) {\n" +
		"            handleError(e);\n" +
		"        } finally {\n" +
		"            cleanup();\n" +
		"        }\n" +
		"    }\n" +
		"}\n"
	got := formatSource(t, input, palantirConfig())
	if got != input {
		t.Errorf("got:\n%s\nwant:\n%s", got, input)
	}
}

func TestEnumConstantsOnePerLine(t *testing.T) {
	input := "public enum Color {\n" +
		"    RED,\n" +
		"    GREEN,\n" +
		"    BLUE\n" +
		"}\n"
	got := formatSource(t, input, palantirConfig())
	if got != input {
		t.Errorf("got:\n%s\nwant:\n%s", got, input)
	}
}

func TestEmptyBlockCollapses(t *testing.T) {
	got := formatSource(t, "public class Test {\n    void test() {}\n}\n", palantirConfig())
	if !strings.Contains(got, "void test() {}") {
		t.Errorf("empty blocks should collapse to {}, got:\n%s", got)
	}
}

func TestBlankLineBetweenMethods(t *testing.T) {
	input := "public class Test {\n" +
		"    void a() {}\n" +
		"    void b() {}\n" +
		"}\n"
	got := formatSource(t, input, palantirConfig())
	want := "public class Test {\n" +
		"    void a() {}\n" +
		"\n" +
		"    void b() {}\n" +
		"}\n"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestMethodChainBreaksBeforeDots(t *testing.T) {
	input := "public class Test {\n" +
		"    void test() {\n" +
		"        result = someCollection.stream().filter(element -> element.isActive()).map(element -> element.getName()).collect(java.util.stream.Collectors.toList());\n" +
		"    }\n" +
		"}\n"
	got := formatSource(t, input, palantirConfig())
	if !strings.Contains(got, "\n                .filter(element -> element.isActive())") {
		t.Errorf("chain should break before each dot at continuation indent, got:\n%s", got)
	}
	if !strings.Contains(got, "result = someCollection\n") {
		t.Errorf("chain receiver should stay on the opening line, got:\n%s", got)
	}
}

func TestShortChainStaysInline(t *testing.T) {
	input := "public class Test {\n" +
		"    void test() {\n" +
		"        list.add(item);\n" +
		"    }\n" +
		"}\n"
	got := formatSource(t, input, palantirConfig())
	if !strings.Contains(got, "list.add(item);") {
		t.Errorf("short calls must stay inline, got:\n%s", got)
	}
}

func TestBinaryOperatorsBreakTogether(t *testing.T) {
	input := "public class Test {\n" +
		"    void test() {\n" +
		"        if (firstExtremelyLongConditionName && secondExtremelyLongConditionName && thirdExtremelyLongConditionName && fourthExtremelyLongConditionName) {\n" +
		"            act();\n" +
		"        }\n" +
		"    }\n" +
		"}\n"
	got := formatSource(t, input, palantirConfig())
	breaks := strings.Count(got, "\n                && ")
	if breaks != 3 {
		t.Errorf("equal-precedence operators must break together (want 3 breaks, got %d):\n%s", breaks, got)
	}
}

func TestLambdaStaysInline(t *testing.T) {
	input := "public class Test {\n" +
		"    void test() {\n" +
		"        list.forEach(x -> System.out.println(x));\n" +
		"    }\n" +
		"}\n"
	got := formatSource(t, input, palantirConfig())
	if !strings.Contains(got, "list.forEach(x -> System.out.println(x));") {
		t.Errorf("fitting lambda should stay inline, got:\n%s", got)
	}
}

func TestLambdaBlockWhenInlineLambdasDisabled(t *testing.T) {
	cfg := palantirConfig()
	cfg.InlineLambdas = false
	input := "public class Test {\n" +
		"    void test() {\n" +
		"        list.forEach(x -> System.out.println(x));\n" +
		"    }\n" +
		"}\n"
	got := formatSource(t, input, cfg)
	if !strings.Contains(got, "x -> {") {
		t.Errorf("inlineLambdas=false must force a brace block, got:\n%s", got)
	}
	if !strings.Contains(got, "System.out.println(x);") {
		t.Errorf("lambda body must survive the block conversion, got:\n%s", got)
	}
}

func TestGoogleStyleIndent(t *testing.T) {
	input := "public class Hello {\n" +
		"    void greet() {\n" +
		"        run();\n" +
		"    }\n" +
		"}\n"
	got := formatSource(t, input, config.Default(config.StyleGoogle))
	if !strings.Contains(got, "\n  void greet() {") {
		t.Errorf("google style should use 2-space indent, got:\n%s", got)
	}
}

func TestUseTabs(t *testing.T) {
	cfg := palantirConfig()
	cfg.UseTabs = true
	input := "public class Hello {\n" +
		"    void greet() {\n" +
		"        run();\n" +
		"    }\n" +
		"}\n"
	got := formatSource(t, input, cfg)
	if !strings.Contains(got, "\n\tvoid greet() {") {
		t.Errorf("useTabs should emit one tab per level, got:\n%s", got)
	}
}

func TestCRLFNewlines(t *testing.T) {
	cfg := palantirConfig()
	cfg.NewLineKind = config.NewLineCRLF
	got := formatSource(t, "public class A {}\n", cfg)
	if !strings.HasSuffix(got, "\r\n") {
		t.Errorf("crlf output should end with \\r\\n, got %q", got)
	}
}

func TestModifiersReorderedToJLSOrder(t *testing.T) {
	input := "public class Test {\n" +
		"    final static public int X = 1;\n" +
		"}\n"
	got := formatSource(t, input, palantirConfig())
	if !strings.Contains(got, "public static final int X = 1;") {
		t.Errorf("modifiers should be in JLS canonical order, got:\n%s", got)
	}
}

func TestAnnotationOnOwnLine(t *testing.T) {
	input := "public class Test {\n" +
		"    @Override public String toString() {\n" +
		"        return \"\";\n" +
		"    }\n" +
		"}\n"
	got := formatSource(t, input, palantirConfig())
	if !strings.Contains(got, "@Override\n    public String toString()") {
		t.Errorf("declaration annotations go on their own line, got:\n%s", got)
	}
}

func TestTrailingCommentPreserved(t *testing.T) {
	input := "public class Test {\n" +
		"    void test() {\n" +
		"        run(); // do the thing\n" +
		"    }\n" +
		"}\n"
	got := formatSource(t, input, palantirConfig())
	if !strings.Contains(got, "run(); // do the thing") {
		t.Errorf("trailing comments stay on their line, got:\n%s", got)
	}
}

func TestLeadingCommentNormalized(t *testing.T) {
	input := "public class Test {\n" +
		"    void test() {\n" +
		"        //no space\n" +
		"        run();\n" +
		"    }\n" +
		"}\n"
	got := formatSource(t, input, palantirConfig())
	if !strings.Contains(got, "// no space") {
		t.Errorf("line comments get a space after //, got:\n%s", got)
	}
}

func TestJavadocVerbatimByDefault(t *testing.T) {
	input := "public class Test {\n" +
		"    /**\n" +
		"     * Does the thing.\n" +
		"     */\n" +
		"    void test() {}\n" +
		"}\n"
	got := formatSource(t, input, palantirConfig())
	if !strings.Contains(got, "* Does the thing.") {
		t.Errorf("javadoc content must be preserved, got:\n%s", got)
	}
}

func TestArrowSwitchRules(t *testing.T) {
	input := "public class Test {\n" +
		"    void test() {\n" +
		"        var x = switch (k) {\n" +
		"            case 1 -> \"one\";\n" +
		"            default -> \"other\";\n" +
		"        };\n" +
		"    }\n" +
		"}\n"
	got := formatSource(t, input, palantirConfig())
	if !strings.Contains(got, "case 1 -> \"one\";") {
		t.Errorf("arrow cases must survive, got:\n%s", got)
	}
}

func TestWidthCompliance(t *testing.T) {
	input := "public class Test {\n" +
		"    void configure(String firstParameterName, String secondParameterName, String thirdParameterName, String fourthParameterName) {\n" +
		"        run();\n" +
		"    }\n" +
		"}\n"
	cfg := palantirConfig()
	got := formatSource(t, input, cfg)
	for _, line := range strings.Split(got, "\n") {
		if len(line) > cfg.LineWidth && !strings.Contains(line, "\"") {
			t.Errorf("line exceeds %d columns: %q", cfg.LineWidth, line)
		}
	}
}
