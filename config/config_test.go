package config

import "testing"

func TestDefaultPalantir(t *testing.T) {
	cfg := Default(StylePalantir)
	if cfg.LineWidth != 120 {
		t.Errorf("LineWidth = %d, want 120", cfg.LineWidth)
	}
	if cfg.IndentWidth != 4 {
		t.Errorf("IndentWidth = %d, want 4", cfg.IndentWidth)
	}
	if cfg.UseTabs {
		t.Error("UseTabs should default to false")
	}
	if cfg.MethodChainThreshold != 80 {
		t.Errorf("MethodChainThreshold = %d, want 80", cfg.MethodChainThreshold)
	}
	if !cfg.InlineLambdas {
		t.Error("InlineLambdas should default to true")
	}
	if cfg.FormatJavadoc {
		t.Error("FormatJavadoc should default to false")
	}
}

func TestStylePresets(t *testing.T) {
	tests := []struct {
		style       Style
		lineWidth   int
		indentWidth int
	}{
		{StylePalantir, 120, 4},
		{StyleGoogle, 100, 2},
		{StyleAOSP, 100, 4},
	}
	for _, tt := range tests {
		t.Run(string(tt.style), func(t *testing.T) {
			cfg := Default(tt.style)
			if cfg.LineWidth != tt.lineWidth {
				t.Errorf("LineWidth = %d, want %d", cfg.LineWidth, tt.lineWidth)
			}
			if cfg.IndentWidth != tt.indentWidth {
				t.Errorf("IndentWidth = %d, want %d", cfg.IndentWidth, tt.indentWidth)
			}
		})
	}
}

func TestResolveOverrides(t *testing.T) {
	cfg, diags := Resolve(map[string]any{
		"style":     "google",
		"lineWidth": 80,
	})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if cfg.LineWidth != 80 {
		t.Errorf("LineWidth = %d, want 80", cfg.LineWidth)
	}
	if cfg.IndentWidth != 2 {
		t.Errorf("IndentWidth = %d, want 2 (from google preset)", cfg.IndentWidth)
	}
}

func TestResolveUnknownProperty(t *testing.T) {
	_, diags := Resolve(map[string]any{"unknownProp": "value"})
	if len(diags) != 1 {
		t.Fatalf("diagnostics = %v, want exactly one", diags)
	}
	if diags[0].PropertyName != "unknownProp" {
		t.Errorf("PropertyName = %q, want %q", diags[0].PropertyName, "unknownProp")
	}
}

func TestResolveBadValues(t *testing.T) {
	cfg, diags := Resolve(map[string]any{
		"style":       "k&r",
		"lineWidth":   "wide",
		"inlineLambdas": 7,
	})
	if len(diags) != 3 {
		t.Fatalf("diagnostics = %v, want three", diags)
	}
	// Bad values fall back to the palantir defaults.
	if cfg.LineWidth != 120 || !cfg.InlineLambdas {
		t.Errorf("bad values should leave defaults intact, got %+v", cfg)
	}
}

func TestNewLineKindResolve(t *testing.T) {
	if NewLineLF.Resolve() != "\n" {
		t.Error("lf should resolve to \\n")
	}
	if NewLineCRLF.Resolve() != "\r\n" {
		t.Error("crlf should resolve to \\r\\n")
	}
}

func TestParseTOML(t *testing.T) {
	cfg, err := parseTOML([]byte(`
style = "google"
formatJavadoc = true
methodChainThreshold = 60
`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Style != StyleGoogle || cfg.LineWidth != 100 {
		t.Errorf("style preset not applied: %+v", cfg)
	}
	if !cfg.FormatJavadoc || cfg.MethodChainThreshold != 60 {
		t.Errorf("explicit keys not applied: %+v", cfg)
	}
}

func TestParseTOMLRejectsBadStyle(t *testing.T) {
	if _, err := parseTOML([]byte(`style = "whitesmiths"`)); err == nil {
		t.Error("expected error for unknown style")
	}
}

func TestParseTOMLRejectsNonPositiveWidth(t *testing.T) {
	if _, err := parseTOML([]byte(`lineWidth = 0`)); err == nil {
		t.Error("expected error for zero lineWidth")
	}
}
