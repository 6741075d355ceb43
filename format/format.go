// Package format turns parsed Java source into formatted text. The
// traversal emits a print-item sequence that the printer engine resolves
// against the configured line width.
package format

import (
	"bytes"
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"

	"github.com/dhamidi/javafmt/config"
	"github.com/dhamidi/javafmt/printer"
)

// Format formats Java source text. It returns nil when the output would
// be byte-identical to the input (already formatted). Source that does
// not parse is returned unchanged — a formatter must never corrupt code
// it cannot understand.
func Format(source []byte, cfg config.Configuration) ([]byte, error) {
	formatted, err := formatText(source, &cfg)
	if err != nil {
		return nil, err
	}
	if bytes.Equal(formatted, source) {
		return nil, nil
	}
	return formatted, nil
}

func formatText(source []byte, cfg *config.Configuration) ([]byte, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	lang := sitter.NewLanguage(tree_sitter_java.Language())
	if err := parser.SetLanguage(lang); err != nil {
		return nil, fmt.Errorf("load Java grammar: %w", err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return append([]byte(nil), source...), nil
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return append([]byte(nil), source...), nil
	}

	items := generate(root, source, cfg)
	out := printer.Render(items, printer.Options{
		IndentWidth: cfg.IndentWidth,
		MaxWidth:    cfg.LineWidth,
		UseTabs:     cfg.UseTabs,
		NewLine:     cfg.NewLineKind.Resolve(),
	})
	return []byte(out), nil
}
