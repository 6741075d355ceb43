package format

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/dhamidi/javafmt/printer"
)

// children collects a node's children (named and anonymous) in source order.
func children(node *sitter.Node) []*sitter.Node {
	count := node.ChildCount()
	out := make([]*sitter.Node, 0, count)
	for i := uint(0); i < count; i++ {
		out = append(out, node.Child(i))
	}
	return out
}

// firstChildOfKind returns the first child with the given kind, or nil.
func firstChildOfKind(node *sitter.Node, kind string) *sitter.Node {
	for _, child := range children(node) {
		if child.Kind() == kind {
			return child
		}
	}
	return nil
}

// hasChildOfKind reports whether any child has the given kind.
func hasChildOfKind(node *sitter.Node, kind string) bool {
	return firstChildOfKind(node, kind) != nil
}

// nodeSource returns the raw source bytes spanned by the node.
func nodeSource(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}

// genNodeText emits the source text of a node. Newlines become hard
// Newline items so the engine's indent stack supplies indentation;
// leading whitespace on continuation lines is stripped for the same
// reason — keeping it would compound indentation on every pass.
func genNodeText(node *sitter.Node, source []byte) printer.Items {
	text := nodeSource(node, source)
	var items printer.Items

	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			items.Newline()
		}
		line = strings.TrimSuffix(line, "\r")
		if i > 0 {
			line = strings.TrimLeft(line, " \t")
		}
		if line != "" {
			items.PushStr(line)
		}
	}

	return items
}

// collapseWhitespaceLen is the width estimator: the length of the text
// with every whitespace run collapsed to a single space. Tabs count as
// one column — a known imprecision when useTabs is on. Adding content
// can only grow the result, which is what keeps wrap decisions stable
// across passes.
func collapseWhitespaceLen(s string) int {
	width := 0
	inSpace := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			if !inSpace && width > 0 {
				width++
			}
			inSpace = true
		} else {
			width++
			inSpace = false
		}
	}
	if inSpace && width > 0 {
		width--
	}
	return width
}

// collapsePrefixLen collapses whitespace in a prefix segment, keeping one
// trailing space when the segment ends with whitespace (a token separator).
func collapsePrefixLen(s string) int {
	trimmed := strings.TrimLeft(s, " \t")
	if trimmed == "" {
		return 0
	}
	n := collapseWhitespaceLen(trimmed)
	switch trimmed[len(trimmed)-1] {
	case ' ', '\t', '\n', '\r':
		n++
	}
	return n
}

// lastLine returns the final line of a text fragment.
func lastLine(s string) string {
	if idx := strings.LastIndexByte(s, '\n'); idx >= 0 {
		return s[idx+1:]
	}
	return s
}

// flatWidth sums the trimmed width of every line, approximating the
// node's width if it were joined onto a single line.
func flatWidth(s string) int {
	width := 0
	for _, line := range strings.Split(s, "\n") {
		width += len(strings.TrimSpace(strings.TrimSuffix(line, "\r")))
	}
	return width
}

// isTypeNode reports whether the kind names a type-like node.
// Declaration and statement handlers use it to pick out the type child,
// which they then pass to genNode, so generic_type and array_type still
// reach their dedicated handlers.
func isTypeNode(kind string) bool {
	switch kind {
	case "void_type", "integral_type", "floating_point_type", "boolean_type",
		"type_identifier", "scoped_type_identifier", "generic_type", "array_type":
		return true
	}
	return false
}
