package format

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/dhamidi/javafmt/printer"
)

// genLineComment formats `// ...`, normalizing to a single space after
// the `//` (preserving `///` and `//!`). A line comment always ends with
// a newline so it cannot swallow following code.
func genLineComment(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	text := nodeSource(node, ctx.source)

	rest, ok := strings.CutPrefix(text, "//")
	if !ok {
		items.PushStr(text)
		items.Newline()
		return items
	}

	items.PushStr("//")
	switch {
	case rest == "":
	case strings.HasPrefix(rest, "/") || strings.HasPrefix(rest, "!"):
		items.PushStr(rest)
	case strings.HasPrefix(rest, " "):
		items.PushStr(rest)
	default:
		items.PushStr(" " + rest)
	}
	items.Newline()
	return items
}

// genBlockComment formats `/* ... */`, realigning the `*` of
// continuation lines. Javadoc is reflowed when formatJavadoc is on;
// otherwise it is preserved like any block comment.
func genBlockComment(node *sitter.Node, ctx *context) printer.Items {
	text := nodeSource(node, ctx.source)
	if strings.HasPrefix(text, "/**") && !strings.HasPrefix(text, "/***") && ctx.config.FormatJavadoc {
		return genJavadoc(node, ctx)
	}
	return genBlockCommentPreserved(text)
}

func genBlockCommentPreserved(text string) printer.Items {
	var items printer.Items
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			items.Newline()
		}
		line = strings.TrimSuffix(line, "\r")
		line = stripCommentLineTrailingWS(line)
		if i == 0 {
			items.PushStr(line)
			continue
		}
		trimmed := strings.TrimLeft(line, " \t")
		switch {
		case trimmed == "":
			items.PushStr(" *")
		case strings.HasPrefix(trimmed, "*"):
			items.PushStr(" " + trimmed)
		default:
			items.PushStr(" * " + trimmed)
		}
	}
	return items
}

// stripCommentLineTrailingWS trims trailing whitespace, keeping a single
// space before a closing */ that follows content.
func stripCommentLineTrailingWS(line string) string {
	line = strings.TrimRight(line, " \t")
	rest, ok := strings.CutSuffix(line, "*/")
	if !ok {
		return line
	}
	rest = strings.TrimRight(rest, " \t")
	if rest != "" && !strings.HasSuffix(rest, " ") {
		return rest + " */"
	}
	return rest + "*/"
}

// javadocSegment is one parsed piece of a Javadoc body.
type javadocSegment struct {
	kind javadocKind
	text string // free text, tag description, or pre content
	tag  string // @param, @return, ...
	arg  string // parameter name or exception type
}

type javadocKind uint8

const (
	javadocText javadocKind = iota
	javadocTag
	javadocPre
	javadocBlank
)

// genJavadoc reflows a `/** ... */` comment: free text and tag
// descriptions wrap to the line width, `<pre>` blocks and `{@code ...}`
// constructs are preserved verbatim.
func genJavadoc(node *sitter.Node, ctx *context) printer.Items {
	text := nodeSource(node, ctx.source)
	inner := extractJavadocContent(text)
	segments := parseJavadocSegments(inner)

	prefixWidth := ctx.indentCols() + len(" * ")
	maxContentWidth := 60
	if ctx.config.LineWidth > prefixWidth+10 {
		maxContentWidth = ctx.config.LineWidth - prefixWidth
	}

	var items printer.Items
	items.PushStr("/**")

	for _, seg := range segments {
		switch seg.kind {
		case javadocText:
			for _, line := range wrapText(seg.text, maxContentWidth) {
				items.Newline()
				if line == "" {
					items.PushStr(" *")
				} else {
					items.PushStr(" * " + line)
				}
			}
		case javadocTag:
			items.Newline()
			tagLine := seg.tag
			if seg.arg != "" {
				tagLine += " " + seg.arg
			}
			if seg.text != "" {
				tagLine += " " + seg.text
			}
			for i, line := range wrapText(tagLine, maxContentWidth) {
				if i > 0 {
					items.Newline()
				}
				if line == "" {
					items.PushStr(" *")
				} else {
					items.PushStr(" * " + line)
				}
			}
		case javadocPre:
			items.Newline()
			items.PushStr(" * <pre>")
			for _, line := range strings.Split(seg.text, "\n") {
				items.Newline()
				line = strings.TrimSuffix(line, "\r")
				if line == "" {
					items.PushStr(" *")
				} else {
					items.PushStr(" * " + line)
				}
			}
			items.Newline()
			items.PushStr(" * </pre>")
		case javadocBlank:
			items.Newline()
			items.PushStr(" *")
		}
	}

	items.Newline()
	items.PushStr(" */")
	return items
}

// extractJavadocContent strips the /** and */ delimiters and the leading
// ` * ` of continuation lines.
func extractJavadocContent(text string) string {
	inner := strings.TrimPrefix(text, "/**")
	inner = strings.TrimSuffix(inner, "*/")

	var lines []string
	for i, line := range strings.Split(inner, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if i == 0 {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				lines = append(lines, trimmed)
			}
			continue
		}
		trimmed := strings.TrimLeft(line, " \t")
		if rest, ok := strings.CutPrefix(trimmed, "*"); ok {
			lines = append(lines, strings.TrimPrefix(rest, " "))
		} else {
			lines = append(lines, trimmed)
		}
	}

	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

func parseJavadocSegments(content string) []javadocSegment {
	var segments []javadocSegment
	lines := strings.Split(content, "\n")
	i := 0

	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])

		if trimmed == "" {
			segments = append(segments, javadocSegment{kind: javadocBlank})
			i++
			continue
		}

		if strings.HasPrefix(trimmed, "<pre>") {
			var pre []string
			after := strings.TrimPrefix(trimmed, "<pre>")
			if strings.TrimSpace(after) != "" {
				pre = append(pre, after)
			}
			i++
			for i < len(lines) {
				l := strings.TrimSpace(lines[i])
				if idx := strings.Index(l, "</pre>"); idx >= 0 {
					if before := l[:idx]; before != "" {
						pre = append(pre, before)
					}
					i++
					break
				}
				pre = append(pre, lines[i])
				i++
			}
			segments = append(segments, javadocSegment{kind: javadocPre, text: strings.Join(pre, "\n")})
			continue
		}

		if strings.HasPrefix(trimmed, "@") {
			tag, arg, desc := parseTagLine(trimmed)
			i++
			for i < len(lines) {
				next := strings.TrimSpace(lines[i])
				if next == "" || strings.HasPrefix(next, "@") || strings.HasPrefix(next, "<pre>") {
					break
				}
				desc += " " + next
				i++
			}
			segments = append(segments, javadocSegment{kind: javadocTag, tag: tag, arg: arg, text: strings.TrimSpace(desc)})
			continue
		}

		var parts []string
		for i < len(lines) {
			l := strings.TrimSpace(lines[i])
			if l == "" || strings.HasPrefix(l, "@") || strings.HasPrefix(l, "<pre>") {
				break
			}
			parts = append(parts, l)
			i++
		}
		segments = append(segments, javadocSegment{kind: javadocText, text: strings.Join(parts, " ")})
	}

	return segments
}

// parseTagLine splits `@param name desc` into its tag, argument, and
// description. Only argument-bearing tags get an argument.
func parseTagLine(line string) (tag, arg, desc string) {
	parts := strings.SplitN(line, " ", 2)
	tag = parts[0]
	rest := ""
	if len(parts) > 1 {
		rest = strings.TrimSpace(parts[1])
	}
	switch tag {
	case "@param", "@throws", "@exception", "@serialField":
		restParts := strings.SplitN(rest, " ", 2)
		arg = restParts[0]
		if len(restParts) > 1 {
			desc = strings.TrimSpace(restParts[1])
		}
	default:
		desc = rest
	}
	return tag, arg, desc
}

// wrapText word-wraps text to maxWidth, treating `{@code ...}` inline
// tags as atomic tokens.
func wrapText(text string, maxWidth int) []string {
	if text == "" {
		return []string{""}
	}

	words := splitPreservingInlineTags(text)
	var lines []string
	current := ""
	for _, word := range words {
		switch {
		case current == "":
			current = word
		case len(current)+1+len(word) <= maxWidth:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}

// splitPreservingInlineTags splits on whitespace but keeps `{@...}`
// constructs together, nested braces included.
func splitPreservingInlineTags(text string) []string {
	var tokens []string
	var current strings.Builder
	runes := []rune(text)

	flush := func() {
		for _, w := range strings.Fields(current.String()) {
			tokens = append(tokens, w)
		}
		current.Reset()
	}

	for i := 0; i < len(runes); {
		if runes[i] == '{' && i+1 < len(runes) && runes[i+1] == '@' {
			flush()
			var tag strings.Builder
			depth := 0
			for i < len(runes) {
				tag.WriteRune(runes[i])
				if runes[i] == '{' {
					depth++
				} else if runes[i] == '}' {
					depth--
					if depth == 0 {
						i++
						break
					}
				}
				i++
			}
			tokens = append(tokens, tag.String())
			continue
		}
		current.WriteRune(runes[i])
		i++
	}
	flush()
	return tokens
}

// isTrailingComment reports whether a comment shares a line with the
// preceding (non-comment) sibling, which makes it a trailing comment of
// that token rather than a leading comment of the next one.
func isTrailingComment(node *sitter.Node) bool {
	row := node.StartPosition().Row
	for prev := node.PrevSibling(); prev != nil; prev = prev.PrevSibling() {
		if !prev.IsExtra() {
			return prev.EndPosition().Row == row
		}
	}
	return false
}
