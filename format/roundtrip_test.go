package format

import (
	"flag"
	"os"
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/dhamidi/javafmt/config"
)

var testFilter string

func init() {
	flag.StringVar(&testFilter, "filter", "", "filter idempotence cases by substring match on name")
}

func TestMain(m *testing.M) {
	flag.Parse()
	os.Exit(m.Run())
}

// idempotenceCases are sources that exercise the wrap decisions near
// their thresholds. Formatting each twice must produce identical text —
// a wrapped output that unwraps on the second pass means an estimator
// is not monotonic.
var idempotenceCases = []struct {
	name   string
	source string
}{
	{
		name:   "hello world",
		source: "public class H { public static void main(String[] a) { System.out.println(\"hi\"); } }",
	},
	{
		name: "long method chain",
		source: "public class T {\n" +
			"    void test() {\n" +
			"        result = someCollection.stream().filter(element -> element.isActive()).map(element -> element.getName()).collect(java.util.stream.Collectors.toList());\n" +
			"    }\n" +
			"}\n",
	},
	{
		name: "long binary condition",
		source: "public class T {\n" +
			"    void test() {\n" +
			"        if (firstExtremelyLongConditionName && secondExtremelyLongConditionName && thirdExtremelyLongConditionName && fourthExtremelyLongConditionName) {\n" +
			"            act();\n" +
			"        }\n" +
			"    }\n" +
			"}\n",
	},
	{
		name: "long parameter list",
		source: "public class T {\n" +
			"    void configure(String firstParameterName, String secondParameterName, String thirdParameterName, String fourthParameterName, String fifthParameterName) {}\n" +
			"}\n",
	},
	{
		name: "long throws clause",
		source: "public class T {\n" +
			"    void dangerous() throws java.io.IOException, java.sql.SQLException, java.net.SocketException, java.util.concurrent.TimeoutException, IllegalStateException {}\n" +
			"}\n",
	},
	{
		name: "long argument list",
		source: "public class T {\n" +
			"    void test() {\n" +
			"        dispatcher.registerHandlerWithOptions(firstArgumentValue, secondArgumentValue, thirdArgumentValue, fourthArgumentValue, fifthArgumentValue);\n" +
			"    }\n" +
			"}\n",
	},
	{
		name: "ternary near threshold",
		source: "public class T {\n" +
			"    void test() {\n" +
			"        label = isCompletelyInitializedAndReady ? computeTheAffirmativeLabelText() : computeTheNegativeFallbackLabelText() + suffix;\n" +
			"    }\n" +
			"}\n",
	},
	{
		name: "enum with members",
		source: "public enum Op {\n" +
			"    ADD(\"+\"),\n" +
			"    SUB(\"-\");\n" +
			"\n" +
			"    private final String symbol;\n" +
			"\n" +
			"    Op(String symbol) {\n" +
			"        this.symbol = symbol;\n" +
			"    }\n" +
			"}\n",
	},
	{
		name: "imports and comments",
		source: "package p;\n" +
			"\n" +
			"import java.util.List;\n" +
			"import com.foo.Bar;\n" +
			"\n" +
			"// main entry point\n" +
			"public class T {\n" +
			"    // state\n" +
			"    private int count; // trailing\n" +
			"\n" +
			"    void bump() {\n" +
			"        count++;\n" +
			"    }\n" +
			"}\n",
	},
	{
		name: "try with resources",
		source: "public class T {\n" +
			"    void test() throws Exception {\n" +
			"        try (java.io.Reader reader = open(\"a\"); java.io.Writer writer = create(\"b\")) {\n" +
			"            copy(reader, writer);\n" +
			"        }\n" +
			"    }\n" +
			"}\n",
	},
	{
		name: "anonymous class",
		source: "public class T {\n" +
			"    Runnable r = new Runnable() {\n" +
			"        public void run() {\n" +
			"            work();\n" +
			"        }\n" +
			"    };\n" +
			"}\n",
	},
	{
		name: "labeled loop",
		source: "public class T {\n" +
			"    void test() {\n" +
			"        outer:\n" +
			"        for (int i = 0; i < 10; i++) {\n" +
			"            for (int j = 0; j < 10; j++) {\n" +
			"                if (i * j > 20) {\n" +
			"                    break outer;\n" +
			"                }\n" +
			"            }\n" +
			"        }\n" +
			"    }\n" +
			"}\n",
	},
	{
		name: "arrow switch",
		source: "public class T {\n" +
			"    int test(int k) {\n" +
			"        return switch (k) {\n" +
			"            case 1 -> 10;\n" +
			"            case 2, 3 -> 20;\n" +
			"            default -> 0;\n" +
			"        };\n" +
			"    }\n" +
			"}\n",
	},
}

func TestFormatIsIdempotent(t *testing.T) {
	cfg := config.Default(config.StylePalantir)
	for _, tc := range idempotenceCases {
		if testFilter != "" && !strings.Contains(tc.name, testFilter) {
			continue
		}
		t.Run(tc.name, func(t *testing.T) {
			first, err := Format([]byte(tc.source), cfg)
			if err != nil {
				t.Fatalf("first pass: %v", err)
			}
			if first == nil {
				first = []byte(tc.source)
			}

			second, err := Format(first, cfg)
			if err != nil {
				t.Fatalf("second pass: %v", err)
			}
			if second == nil {
				return // stable
			}

			diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
				A:        difflib.SplitLines(string(first)),
				B:        difflib.SplitLines(string(second)),
				FromFile: "pass1",
				ToFile:   "pass2",
				Context:  3,
			})
			t.Errorf("output drifted on second pass:\n%s", diff)
		})
	}
}

// TestIndentIsMultipleOfIndentWidth checks that every output line's
// leading whitespace is a whole number of indent units.
func TestIndentIsMultipleOfIndentWidth(t *testing.T) {
	cfg := config.Default(config.StylePalantir)
	for _, tc := range idempotenceCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := Format([]byte(tc.source), cfg)
			if err != nil {
				t.Fatal(err)
			}
			text := tc.source
			if out != nil {
				text = string(out)
			}
			for _, line := range splitLines(text) {
				indent := 0
				for indent < len(line) && line[indent] == ' ' {
					indent++
				}
				if indent%cfg.IndentWidth != 0 {
					t.Errorf("leading whitespace of %q is not a multiple of %d", line, cfg.IndentWidth)
				}
			}
		})
	}
}

func splitLines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
