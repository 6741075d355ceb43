// Package config holds the resolved formatter configuration and the
// style presets it is derived from.
package config

import (
	"fmt"
	"os"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Style is a formatting preset that fixes the defaults of the
// width-related options.
type Style string

const (
	// StylePalantir is the default: 120-column lines, 4-space indent.
	StylePalantir Style = "palantir"
	// StyleGoogle uses 100-column lines and a 2-space indent.
	StyleGoogle Style = "google"
	// StyleAOSP uses 100-column lines and a 4-space indent.
	StyleAOSP Style = "aosp"
)

func (s Style) LineWidth() int {
	switch s {
	case StyleGoogle, StyleAOSP:
		return 100
	default:
		return 120
	}
}

func (s Style) IndentWidth() int {
	if s == StyleGoogle {
		return 2
	}
	return 4
}

// NewLineKind selects the emitted line terminator.
type NewLineKind string

const (
	NewLineLF     NewLineKind = "lf"
	NewLineCRLF   NewLineKind = "crlf"
	NewLineSystem NewLineKind = "system"
)

// Resolve returns the terminator text for the kind.
func (k NewLineKind) Resolve() string {
	switch k {
	case NewLineCRLF:
		return "\r\n"
	case NewLineSystem:
		if runtime.GOOS == "windows" {
			return "\r\n"
		}
		return "\n"
	default:
		return "\n"
	}
}

// Configuration is the fully resolved option set consumed by the
// formatter core.
type Configuration struct {
	Style                Style       `toml:"style"`
	LineWidth            int         `toml:"lineWidth"`
	IndentWidth          int         `toml:"indentWidth"`
	UseTabs              bool        `toml:"useTabs"`
	NewLineKind          NewLineKind `toml:"newLineKind"`
	FormatJavadoc        bool        `toml:"formatJavadoc"`
	MethodChainThreshold int         `toml:"methodChainThreshold"`
	InlineLambdas        bool        `toml:"inlineLambdas"`
}

// Default returns the configuration for a style preset.
func Default(style Style) Configuration {
	return Configuration{
		Style:                style,
		LineWidth:            style.LineWidth(),
		IndentWidth:          style.IndentWidth(),
		UseTabs:              false,
		NewLineKind:          NewLineLF,
		FormatJavadoc:        false,
		MethodChainThreshold: 80,
		InlineLambdas:        true,
	}
}

// Diagnostic reports a problem with a single configuration property.
type Diagnostic struct {
	PropertyName string
	Message      string
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s", d.PropertyName, d.Message)
}

// Resolve turns a raw key map (as delivered by an embedding host) into a
// typed Configuration. Unknown keys and ill-typed values become
// diagnostics; resolution itself never fails.
func Resolve(raw map[string]any) (Configuration, []Diagnostic) {
	var diagnostics []Diagnostic

	style := StylePalantir
	if v, ok := raw["style"]; ok {
		switch s := v.(type) {
		case string:
			switch Style(s) {
			case StylePalantir, StyleGoogle, StyleAOSP:
				style = Style(s)
			default:
				diagnostics = append(diagnostics, Diagnostic{"style", fmt.Sprintf("unknown style %q", s)})
			}
		default:
			diagnostics = append(diagnostics, Diagnostic{"style", "expected a string"})
		}
	}

	cfg := Default(style)

	getInt := func(key string, dst *int) {
		v, ok := raw[key]
		if !ok {
			return
		}
		old := *dst
		switch n := v.(type) {
		case int:
			*dst = n
		case int64:
			*dst = int(n)
		case float64:
			*dst = int(n)
		default:
			diagnostics = append(diagnostics, Diagnostic{key, "expected a number"})
			return
		}
		if *dst <= 0 {
			diagnostics = append(diagnostics, Diagnostic{key, "must be positive"})
			*dst = old
		}
	}
	getBool := func(key string, dst *bool) {
		v, ok := raw[key]
		if !ok {
			return
		}
		b, ok := v.(bool)
		if !ok {
			diagnostics = append(diagnostics, Diagnostic{key, "expected a boolean"})
			return
		}
		*dst = b
	}

	getInt("lineWidth", &cfg.LineWidth)
	getInt("indentWidth", &cfg.IndentWidth)
	getInt("methodChainThreshold", &cfg.MethodChainThreshold)
	getBool("useTabs", &cfg.UseTabs)
	getBool("formatJavadoc", &cfg.FormatJavadoc)
	getBool("inlineLambdas", &cfg.InlineLambdas)

	if v, ok := raw["newLineKind"]; ok {
		switch s := v.(type) {
		case string:
			switch NewLineKind(s) {
			case NewLineLF, NewLineCRLF, NewLineSystem:
				cfg.NewLineKind = NewLineKind(s)
			default:
				diagnostics = append(diagnostics, Diagnostic{"newLineKind", fmt.Sprintf("unknown kind %q", s)})
			}
		default:
			diagnostics = append(diagnostics, Diagnostic{"newLineKind", "expected a string"})
		}
	}

	known := map[string]bool{
		"style": true, "lineWidth": true, "indentWidth": true, "useTabs": true,
		"newLineKind": true, "formatJavadoc": true, "methodChainThreshold": true,
		"inlineLambdas": true,
	}
	for key := range raw {
		if !known[key] {
			diagnostics = append(diagnostics, Diagnostic{key, "unknown property"})
		}
	}

	return cfg, diagnostics
}

// fileConfig mirrors Configuration with pointer fields so LoadFile can
// tell "absent" from "zero" and merge over the style preset.
type fileConfig struct {
	Style                *string `toml:"style"`
	LineWidth            *int    `toml:"lineWidth"`
	IndentWidth          *int    `toml:"indentWidth"`
	UseTabs              *bool   `toml:"useTabs"`
	NewLineKind          *string `toml:"newLineKind"`
	FormatJavadoc        *bool   `toml:"formatJavadoc"`
	MethodChainThreshold *int    `toml:"methodChainThreshold"`
	InlineLambdas        *bool   `toml:"inlineLambdas"`
}

// LoadFile reads a javafmt.toml and resolves it against its style preset.
func LoadFile(path string) (Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Configuration{}, err
	}
	return parseTOML(data)
}

func parseTOML(data []byte) (Configuration, error) {
	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return Configuration{}, fmt.Errorf("parse config: %w", err)
	}

	style := StylePalantir
	if fc.Style != nil {
		switch Style(*fc.Style) {
		case StylePalantir, StyleGoogle, StyleAOSP:
			style = Style(*fc.Style)
		default:
			return Configuration{}, fmt.Errorf("unknown style %q", *fc.Style)
		}
	}
	cfg := Default(style)

	if fc.LineWidth != nil {
		cfg.LineWidth = *fc.LineWidth
	}
	if fc.IndentWidth != nil {
		cfg.IndentWidth = *fc.IndentWidth
	}
	if fc.UseTabs != nil {
		cfg.UseTabs = *fc.UseTabs
	}
	if fc.NewLineKind != nil {
		switch NewLineKind(*fc.NewLineKind) {
		case NewLineLF, NewLineCRLF, NewLineSystem:
			cfg.NewLineKind = NewLineKind(*fc.NewLineKind)
		default:
			return Configuration{}, fmt.Errorf("unknown newLineKind %q", *fc.NewLineKind)
		}
	}
	if fc.FormatJavadoc != nil {
		cfg.FormatJavadoc = *fc.FormatJavadoc
	}
	if fc.MethodChainThreshold != nil {
		cfg.MethodChainThreshold = *fc.MethodChainThreshold
	}
	if fc.InlineLambdas != nil {
		cfg.InlineLambdas = *fc.InlineLambdas
	}

	if cfg.LineWidth <= 0 || cfg.IndentWidth <= 0 || cfg.MethodChainThreshold <= 0 {
		return Configuration{}, fmt.Errorf("widths must be positive")
	}
	return cfg, nil
}
