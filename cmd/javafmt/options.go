package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/javafmt/config"
)

// formatFlags are the configuration flags shared by fmt, check and lsp.
type formatFlags struct {
	configPath  string
	style       string
	lineWidth   int
	indentWidth int
	useTabs     bool
}

func (f *formatFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.configPath, "config", "", "path to a javafmt.toml config file")
	cmd.Flags().StringVar(&f.style, "style", "", "style preset: palantir, google, or aosp")
	cmd.Flags().IntVar(&f.lineWidth, "line-width", 0, "maximum line width (overrides style)")
	cmd.Flags().IntVar(&f.indentWidth, "indent-width", 0, "spaces per indent level (overrides style)")
	cmd.Flags().BoolVar(&f.useTabs, "tabs", false, "indent with tabs")
}

// resolve builds the configuration: config file first, then flag
// overrides on top.
func (f *formatFlags) resolve() (config.Configuration, error) {
	var cfg config.Configuration
	if f.configPath != "" {
		loaded, err := config.LoadFile(f.configPath)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	} else {
		cfg = config.Default(config.StylePalantir)
	}

	if f.style != "" {
		switch style := config.Style(f.style); style {
		case config.StylePalantir, config.StyleGoogle, config.StyleAOSP:
			cfg.Style = style
			cfg.LineWidth = style.LineWidth()
			cfg.IndentWidth = style.IndentWidth()
		default:
			return cfg, fmt.Errorf("unknown style %q", f.style)
		}
	}
	if f.lineWidth > 0 {
		cfg.LineWidth = f.lineWidth
	}
	if f.indentWidth > 0 {
		cfg.IndentWidth = f.indentWidth
	}
	if f.useTabs {
		cfg.UseTabs = true
	}
	return cfg, nil
}
