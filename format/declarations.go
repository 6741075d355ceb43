package format

import (
	"sort"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/dhamidi/javafmt/printer"
)

// genPackageDeclaration formats `package com.example;`.
func genPackageDeclaration(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	for _, child := range children(node) {
		switch child.Kind() {
		case "package":
			items.PushStr("package")
		case "scoped_identifier", "identifier":
			items.Space()
			items.Extend(genNodeText(child, ctx.source))
		case ";":
			items.PushStr(";")
		}
	}
	return items
}

// genImportDeclaration formats `import java.util.List;`.
func genImportDeclaration(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	for _, child := range children(node) {
		switch child.Kind() {
		case "import":
			items.PushStr("import")
		case "static":
			items.Space()
			items.PushStr("static")
		case "scoped_identifier", "identifier":
			items.Space()
			items.Extend(genNodeText(child, ctx.source))
		case "asterisk":
			items.PushStr(".*")
		case ";":
			items.PushStr(";")
		}
	}
	return items
}

// estimateClassDeclWidth estimates the flat width of a type declaration
// header (modifiers through extends/implements), ignoring existing line
// breaks so the estimate is stable across passes.
func estimateClassDeclWidth(node *sitter.Node, source []byte) int {
	width := 0
	for _, child := range children(node) {
		switch child.Kind() {
		case "class_body", "interface_body", "enum_body", "annotation_type_body":
			return width
		case "modifiers":
			width += len(strings.TrimSpace(lastLine(nodeSource(child, source))))
		default:
			if width > 0 {
				width++
			}
			width += collapseWhitespaceLen(nodeSource(child, source))
		}
	}
	return width
}

// genClassDeclaration formats a class declaration, wrapping the
// extends/implements clauses at continuation indent when the header
// does not fit. With both clauses present, only implements wraps.
func genClassDeclaration(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	needSpace := false

	declWidth := estimateClassDeclWidth(node, ctx.source)
	needsWrapping := ctx.indentCols()+declWidth+2 > ctx.config.LineWidth

	hasSuperclass := hasChildOfKind(node, "superclass")
	hasSuperInterfaces := hasChildOfKind(node, "super_interfaces")
	wrapExtends := needsWrapping && hasSuperclass && !hasSuperInterfaces
	wrapImplements := needsWrapping && hasSuperInterfaces

	for _, child := range children(node) {
		switch child.Kind() {
		case "modifiers":
			modItems, endsWithNewline := genModifiers(child, ctx)
			items.Extend(modItems)
			needSpace = !endsWithNewline
		case "class":
			if needSpace {
				items.Space()
			}
			items.PushStr("class")
			needSpace = true
		case "identifier":
			if needSpace {
				items.Space()
			}
			items.Extend(genNodeText(child, ctx.source))
			needSpace = true
		case "type_parameters":
			items.Extend(genTypeParameters(child, ctx))
			needSpace = true
		case "superclass":
			items.Extend(genWrappableClause(child, ctx, wrapExtends, genSuperclass))
			needSpace = true
		case "super_interfaces":
			items.Extend(genWrappableClause(child, ctx, wrapImplements, genSuperInterfaces))
			needSpace = true
		case "permits":
			items.Space()
			items.Extend(genNodeText(child, ctx.source))
			needSpace = true
		case "class_body":
			items.Space()
			items.Extend(genClassBody(child, ctx))
			needSpace = false
		}
	}
	return items
}

// genWrappableClause emits a header clause inline or on a continuation
// line, depending on the precomputed wrap decision.
func genWrappableClause(
	node *sitter.Node,
	ctx *context,
	wrap bool,
	gen func(*sitter.Node, *context) printer.Items,
) printer.Items {
	var items printer.Items
	if wrap {
		items.StartIndent()
		items.StartIndent()
		items.Newline()
		ctx.addContinuationIndent(2)
		items.Extend(gen(node, ctx))
		ctx.removeContinuationIndent(2)
		items.FinishIndent()
		items.FinishIndent()
	} else {
		items.Space()
		items.Extend(gen(node, ctx))
	}
	return items
}

// genInterfaceDeclaration formats an interface declaration.
func genInterfaceDeclaration(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	needSpace := false

	declWidth := estimateClassDeclWidth(node, ctx.source)
	wrapClauses := ctx.indentCols()+declWidth+2 > ctx.config.LineWidth

	for _, child := range children(node) {
		switch child.Kind() {
		case "modifiers":
			modItems, endsWithNewline := genModifiers(child, ctx)
			items.Extend(modItems)
			needSpace = !endsWithNewline
		case "interface":
			if needSpace {
				items.Space()
			}
			items.PushStr("interface")
			needSpace = true
		case "identifier":
			if needSpace {
				items.Space()
			}
			items.Extend(genNodeText(child, ctx.source))
			needSpace = true
		case "type_parameters":
			items.Extend(genTypeParameters(child, ctx))
			needSpace = true
		case "extends_interfaces":
			items.Extend(genWrappableClause(child, ctx, wrapClauses, genExtendsInterfaces))
			needSpace = true
		case "permits":
			items.Space()
			items.Extend(genNodeText(child, ctx.source))
			needSpace = true
		case "interface_body":
			items.Space()
			items.Extend(genClassBody(child, ctx))
			needSpace = false
		}
	}
	return items
}

// genEnumDeclaration formats an enum declaration.
func genEnumDeclaration(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	needSpace := false

	declWidth := estimateClassDeclWidth(node, ctx.source)
	wrapClauses := ctx.indentCols()+declWidth > ctx.config.LineWidth

	for _, child := range children(node) {
		switch child.Kind() {
		case "modifiers":
			modItems, endsWithNewline := genModifiers(child, ctx)
			items.Extend(modItems)
			needSpace = !endsWithNewline
		case "enum":
			if needSpace {
				items.Space()
			}
			items.PushStr("enum")
			needSpace = true
		case "identifier":
			if needSpace {
				items.Space()
			}
			items.Extend(genNodeText(child, ctx.source))
			needSpace = true
		case "super_interfaces":
			items.Extend(genWrappableClause(child, ctx, wrapClauses, genSuperInterfaces))
			needSpace = true
		case "enum_body":
			items.Space()
			items.Extend(genEnumBody(child, ctx))
			needSpace = false
		}
	}
	return items
}

// genRecordDeclaration formats a record declaration (Java 16+).
func genRecordDeclaration(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	needSpace := false

	declWidth := estimateClassDeclWidth(node, ctx.source)
	wrapClauses := ctx.indentCols()+declWidth > ctx.config.LineWidth

	for _, child := range children(node) {
		switch child.Kind() {
		case "modifiers":
			modItems, endsWithNewline := genModifiers(child, ctx)
			items.Extend(modItems)
			needSpace = !endsWithNewline
		case "record":
			if needSpace {
				items.Space()
			}
			items.PushStr("record")
			needSpace = true
		case "identifier":
			if needSpace {
				items.Space()
			}
			items.Extend(genNodeText(child, ctx.source))
			needSpace = false
		case "type_parameters":
			items.Extend(genTypeParameters(child, ctx))
			needSpace = false
		case "formal_parameters":
			items.Extend(genFormalParameters(child, ctx))
			needSpace = true
		case "super_interfaces":
			items.Extend(genWrappableClause(child, ctx, wrapClauses, genSuperInterfaces))
			needSpace = true
		case "class_body":
			items.Space()
			items.Extend(genClassBody(child, ctx))
			needSpace = false
		}
	}
	return items
}

// genAnnotationTypeDeclaration formats `@interface MyAnnotation { ... }`.
func genAnnotationTypeDeclaration(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	needSpace := false
	for _, child := range children(node) {
		switch child.Kind() {
		case "modifiers":
			modItems, endsWithNewline := genModifiers(child, ctx)
			items.Extend(modItems)
			needSpace = !endsWithNewline
		case "@interface":
			if needSpace {
				items.Space()
			}
			items.PushStr("@interface")
			needSpace = true
		case "identifier":
			if needSpace {
				items.Space()
			}
			items.Extend(genNodeText(child, ctx.source))
			needSpace = true
		case "annotation_type_body":
			items.Space()
			items.Extend(genClassBody(child, ctx))
			needSpace = false
		}
	}
	return items
}

// genAnnotationTypeElement formats `String value() default "";`.
func genAnnotationTypeElement(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	needSpace := false
	for _, child := range children(node) {
		switch kind := child.Kind(); {
		case kind == "modifiers":
			modItems, endsWithNewline := genModifiers(child, ctx)
			items.Extend(modItems)
			needSpace = !endsWithNewline
		case isTypeNode(kind):
			if needSpace {
				items.Space()
			}
			items.Extend(genNode(child, ctx))
			needSpace = true
		case kind == "identifier":
			if needSpace {
				items.Space()
			}
			items.Extend(genNodeText(child, ctx.source))
			needSpace = false
		case kind == "(":
			items.PushStr("(")
		case kind == ")":
			items.PushStr(")")
			needSpace = true
		case kind == "default":
			if needSpace {
				items.Space()
			}
			items.PushStr("default")
			needSpace = true
		case kind == ";":
			items.PushStr(";")
		case child.IsNamed():
			if needSpace {
				items.Space()
			}
			items.Extend(genNode(child, ctx))
			needSpace = false
		}
	}
	return items
}

// genStaticInitializer formats `static { ... }`.
func genStaticInitializer(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	items.PushStr("static")
	for _, child := range children(node) {
		if child.Kind() == "block" {
			items.Space()
			items.Extend(genBlock(child, ctx))
		}
	}
	return items
}

// estimateMethodSigWidth estimates the flat width of a method or
// constructor signature, stopping at the body. Non-modifier children
// use collapsed widths so the estimate does not shrink after a previous
// pass wrapped the signature; modifiers use their last line because
// annotations sit on lines of their own.
func estimateMethodSigWidth(node *sitter.Node, source []byte) int {
	width := 0
	for _, child := range children(node) {
		switch child.Kind() {
		case "block", "constructor_body":
			return width
		case ";":
			return width + 1
		case "modifiers":
			width += len(strings.TrimSpace(lastLine(nodeSource(child, source))))
		default:
			if width > 0 && child.Kind() != "formal_parameters" {
				width++
			}
			width += collapseWhitespaceLen(nodeSource(child, source))
		}
	}
	return width
}

// sigWidthWithoutThrows is the signature width up to the throws clause.
func sigWidthWithoutThrows(node *sitter.Node, source []byte) int {
	width := 0
	for _, child := range children(node) {
		switch child.Kind() {
		case "block", "constructor_body", ";", "throws":
			return width
		case "modifiers":
			width += len(strings.TrimSpace(lastLine(nodeSource(child, source))))
		default:
			if width > 0 && child.Kind() != "formal_parameters" {
				width++
			}
			width += collapseWhitespaceLen(nodeSource(child, source))
		}
	}
	return width
}

// shouldWrapThrows decides whether the throws clause moves to its own
// continuation line. When the parameters themselves wrap, the clause
// only wraps if `) throws ... {` does not fit after the last parameter.
func shouldWrapThrows(node *sitter.Node, ctx *context) bool {
	indentWidth := ctx.indentCols()
	lineWidth := ctx.config.LineWidth
	sigWidth := estimateMethodSigWidth(node, ctx.source)
	if indentWidth+sigWidth+2 <= lineWidth {
		return false
	}

	if indentWidth+sigWidthWithoutThrows(node, ctx.source) <= lineWidth {
		return true
	}

	throwsNode := firstChildOfKind(node, "throws")
	if throwsNode == nil {
		return false
	}
	throwsWidth := collapseWhitespaceLen(nodeSource(throwsNode, ctx.source))

	lastParamWidth := 0
	if params := firstChildOfKind(node, "formal_parameters"); params != nil {
		for _, p := range children(params) {
			if p.Kind() == "formal_parameter" || p.Kind() == "spread_parameter" {
				lastParamWidth = collapseWhitespaceLen(nodeSource(p, ctx.source))
			}
		}
	}
	continuationCol := indentWidth + 2*ctx.config.IndentWidth
	return continuationCol+lastParamWidth+2+throwsWidth+2 > lineWidth
}

// genMethodDeclaration formats a method declaration, wrapping the
// parameter list, throws clause, or even the method name when the
// signature exceeds the line width.
func genMethodDeclaration(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	needSpace := false

	indentWidth := ctx.indentCols()
	lineWidth := ctx.config.LineWidth
	wrapThrows := shouldWrapThrows(node, ctx)

	// Wrap between return type and name when name+( alone cannot fit and
	// moving the name to a continuation line fixes it.
	wrapBeforeName := false
	{
		all := children(node)
		nameIdx := -1
		for i, c := range all {
			if c.Kind() == "identifier" {
				nameIdx = i
				break
			}
		}
		if nameIdx > 0 {
			returnTypeWidth := 0
			for _, c := range all[:nameIdx] {
				if returnTypeWidth > 0 {
					returnTypeWidth++
				}
				returnTypeWidth += len(strings.TrimSpace(lastLine(nodeSource(c, ctx.source))))
			}
			nameWidth := int(all[nameIdx].EndByte() - all[nameIdx].StartByte())
			paramsWidth := 2
			if params := firstChildOfKind(node, "formal_parameters"); params != nil {
				paramsWidth = collapseWhitespaceLen(nodeSource(params, ctx.source))
			}
			nameLineWidth := indentWidth + returnTypeWidth + 1 + nameWidth + 1
			continuationCol := indentWidth + 2*ctx.config.IndentWidth
			nameAtContinuation := continuationCol + nameWidth + paramsWidth
			wrapBeforeName = nameLineWidth > lineWidth && nameAtContinuation <= lineWidth
		}
	}

	didWrapName := false

	for _, child := range children(node) {
		switch kind := child.Kind(); {
		case kind == "modifiers":
			modItems, endsWithNewline := genModifiers(child, ctx)
			items.Extend(modItems)
			needSpace = !endsWithNewline
		case kind == "type_parameters":
			if needSpace {
				items.Space()
			}
			items.Extend(genTypeParameters(child, ctx))
			needSpace = true
		case isTypeNode(kind):
			if needSpace {
				items.Space()
			}
			ctx.startTypeArgsWrapTracking()
			items.Extend(genNode(child, ctx))
			if ctx.finishTypeArgsWrapTracking() {
				wrapBeforeName = true
			}
			needSpace = true
		case kind == "identifier":
			if wrapBeforeName {
				items.StartIndent()
				items.StartIndent()
				items.Newline()
				didWrapName = true
				ctx.setOverridePrefixWidth(int(child.EndByte() - child.StartByte()))
			} else if needSpace {
				items.Space()
			}
			items.Extend(genNodeText(child, ctx.source))
			needSpace = false
		case kind == "formal_parameters":
			items.Extend(genFormalParameters(child, ctx))
			needSpace = true
		case kind == "throws":
			if wrapThrows {
				if !didWrapName {
					items.StartIndent()
					items.StartIndent()
				}
				items.Newline()
				items.Extend(genThrows(child, ctx))
				if !didWrapName {
					items.FinishIndent()
					items.FinishIndent()
				}
			} else {
				items.Space()
				items.Extend(genThrows(child, ctx))
			}
			needSpace = true
		case kind == "block":
			if didWrapName {
				items.FinishIndent()
				items.FinishIndent()
				didWrapName = false
			}
			items.Space()
			items.Extend(genNode(child, ctx))
			needSpace = false
		case kind == ";":
			if didWrapName {
				items.FinishIndent()
				items.FinishIndent()
				didWrapName = false
			}
			items.PushStr(";")
			needSpace = false
		case kind == "dimensions":
			items.Extend(genNodeText(child, ctx.source))
			needSpace = true
		}
	}

	if didWrapName {
		items.FinishIndent()
		items.FinishIndent()
	}
	return items
}

// genConstructorDeclaration formats a constructor declaration.
func genConstructorDeclaration(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	needSpace := false
	wrapThrows := shouldWrapThrows(node, ctx)

	for _, child := range children(node) {
		switch child.Kind() {
		case "modifiers":
			modItems, endsWithNewline := genModifiers(child, ctx)
			items.Extend(modItems)
			needSpace = !endsWithNewline
		case "type_parameters":
			if needSpace {
				items.Space()
			}
			items.Extend(genTypeParameters(child, ctx))
			needSpace = true
		case "identifier":
			if needSpace {
				items.Space()
			}
			items.Extend(genNodeText(child, ctx.source))
			needSpace = false
		case "formal_parameters":
			items.Extend(genFormalParameters(child, ctx))
			needSpace = true
		case "throws":
			if wrapThrows {
				items.StartIndent()
				items.StartIndent()
				items.Newline()
				items.Extend(genThrows(child, ctx))
				items.FinishIndent()
				items.FinishIndent()
			} else {
				items.Space()
				items.Extend(genThrows(child, ctx))
			}
			needSpace = true
		case "constructor_body":
			items.Space()
			items.Extend(genNode(child, ctx))
			needSpace = false
		}
	}
	return items
}

// genCompactConstructorDeclaration formats a record's compact
// constructor: `public Point { ... }`.
func genCompactConstructorDeclaration(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	needSpace := false
	for _, child := range children(node) {
		switch child.Kind() {
		case "modifiers":
			modItems, endsWithNewline := genModifiers(child, ctx)
			items.Extend(modItems)
			needSpace = !endsWithNewline
		case "identifier":
			if needSpace {
				items.Space()
			}
			items.Extend(genNodeText(child, ctx.source))
			needSpace = true
		case "block":
			if needSpace {
				items.Space()
			}
			items.Extend(genBlock(child, ctx))
			needSpace = false
		}
	}
	return items
}

// genFieldDeclaration formats `private String name;`. When the declared
// type's arguments wrapped, the declarator moves to a continuation line.
func genFieldDeclaration(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	needSpace := false
	typeArgsWrapped := false

	for _, child := range children(node) {
		switch kind := child.Kind(); {
		case kind == "modifiers":
			modItems, endsWithNewline := genModifiers(child, ctx)
			items.Extend(modItems)
			needSpace = !endsWithNewline
		case isTypeNode(kind):
			if needSpace {
				items.Space()
			}
			ctx.startTypeArgsWrapTracking()
			items.Extend(genNode(child, ctx))
			typeArgsWrapped = ctx.finishTypeArgsWrapTracking()
			needSpace = true
		case kind == "variable_declarator":
			if typeArgsWrapped {
				items.StartIndent()
				items.StartIndent()
				items.Newline()
				ctx.indent()
				ctx.indent()
				ctx.declaratorOnNewLine = true
				items.Extend(genVariableDeclarator(child, ctx))
				ctx.declaratorOnNewLine = false
				ctx.dedent()
				ctx.dedent()
				items.FinishIndent()
				items.FinishIndent()
				typeArgsWrapped = false
			} else {
				if needSpace {
					items.Space()
				}
				items.Extend(genVariableDeclarator(child, ctx))
			}
			needSpace = false
		case kind == ",":
			items.PushStr(",")
			needSpace = true
		case kind == ";":
			items.PushStr(";")
			needSpace = false
		}
	}
	return items
}

// jlsModifierOrder is the canonical keyword order of JLS 8.1.1 / 8.3.1 /
// 8.4.3; keyword modifiers are reordered to match it.
var jlsModifierOrder = []string{
	"public", "protected", "private", "abstract", "default", "static",
	"final", "transient", "volatile", "synchronized", "native", "strictfp",
	"sealed", "non-sealed",
}

func modifierRank(text string) int {
	for i, m := range jlsModifierOrder {
		if m == text {
			return i
		}
	}
	return len(jlsModifierOrder)
}

// genModifiers emits annotations each on their own line, then keyword
// modifiers in JLS order on one line. The second result reports whether
// the output ends with a newline (annotations but no keywords).
func genModifiers(node *sitter.Node, ctx *context) (printer.Items, bool) {
	var items printer.Items

	var annotations, keywords []*sitter.Node
	for _, child := range children(node) {
		if child.Kind() == "marker_annotation" || child.Kind() == "annotation" {
			annotations = append(annotations, child)
		} else {
			keywords = append(keywords, child)
		}
	}

	sort.SliceStable(keywords, func(i, j int) bool {
		return modifierRank(nodeSource(keywords[i], ctx.source)) <
			modifierRank(nodeSource(keywords[j], ctx.source))
	})

	for _, ann := range annotations {
		items.Extend(genNode(ann, ctx))
		items.Newline()
	}

	first := true
	for _, kw := range keywords {
		if !first {
			items.Space()
		}
		items.Extend(genNodeText(kw, ctx.source))
		first = false
	}

	return items, len(annotations) > 0 && len(keywords) == 0
}

// genModifiersInline keeps annotations on the same line as the keywords;
// used for parameters and local variables where annotations stay inline
// with the annotated entity.
func genModifiersInline(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	first := true
	for _, child := range children(node) {
		if !first {
			items.Space()
		}
		items.Extend(genNode(child, ctx))
		first = false
	}
	return items
}

// genTypeParameters formats <T, U extends Comparable<U>>.
func genTypeParameters(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	for _, child := range children(node) {
		switch child.Kind() {
		case "<":
			items.PushStr("<")
		case ">":
			items.PushStr(">")
		case ",":
			items.PushStr(",")
			items.Space()
		default:
			items.Extend(genNode(child, ctx))
		}
	}
	return items
}

// genSuperclass formats `extends BaseClass`.
func genSuperclass(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	for _, child := range children(node) {
		switch {
		case child.Kind() == "extends":
			items.PushStr("extends")
		case child.IsNamed():
			items.Space()
			items.Extend(genNode(child, ctx))
		}
	}
	return items
}

// genSuperInterfaces formats `implements Interface1, Interface2`.
func genSuperInterfaces(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	for _, child := range children(node) {
		switch {
		case child.Kind() == "implements":
			items.PushStr("implements")
		case child.Kind() == "type_list":
			items.Space()
			items.Extend(genTypeList(child, ctx))
		case child.IsNamed():
			items.Space()
			items.Extend(genNode(child, ctx))
		}
	}
	return items
}

// genExtendsInterfaces formats `extends Interface1, Interface2`.
func genExtendsInterfaces(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	for _, child := range children(node) {
		switch {
		case child.Kind() == "extends":
			items.PushStr("extends")
		case child.Kind() == "type_list":
			items.Space()
			items.Extend(genTypeList(child, ctx))
		case child.IsNamed():
			items.Space()
			items.Extend(genNode(child, ctx))
		}
	}
	return items
}

// genTypeList formats a comma-separated type list.
func genTypeList(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	for _, child := range children(node) {
		switch {
		case child.Kind() == ",":
			items.PushStr(",")
			items.Space()
		case child.IsNamed():
			items.Extend(genNode(child, ctx))
		}
	}
	return items
}

// isBlockMember reports whether a class-body member carries a block body
// (or is a method); such members get blank lines around them.
func isBlockMember(node *sitter.Node) bool {
	switch node.Kind() {
	case "constructor_declaration", "class_declaration", "interface_declaration",
		"enum_declaration", "annotation_type_declaration", "static_initializer",
		"record_declaration", "compact_constructor_declaration", "method_declaration":
		return true
	}
	return false
}

// genClassBody formats `{ members }` for class, interface, and
// annotation-type bodies. Blank lines come from the source (clamped to
// one) or from block-member adjacency; blanks right after `{` and
// before `}` are dropped.
func genClassBody(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	items.PushStr("{")

	all := children(node)
	var members []*sitter.Node
	for _, c := range all {
		if c.Kind() != "{" && c.Kind() != "}" && (c.IsNamed() || c.IsExtra()) {
			members = append(members, c)
		}
	}
	if len(members) == 0 {
		items.PushStr("}")
		return items
	}

	items.StartIndent()
	ctx.indent()

	prevWasLineComment := false
	var prevWasBlock *bool
	hadCommentSinceLastMember := false
	// No previous row before the first member, so source blank lines
	// right after `{` are not carried over.
	prevEndRow := -1

	for _, member := range members {
		if member.IsExtra() {
			if isTrailingComment(member) {
				items.Space()
				items.Extend(genNode(member, ctx))
				prevWasLineComment = member.Kind() == "line_comment"
			} else {
				if !prevWasLineComment {
					items.Newline()
				}
				if prevEndRow >= 0 && int(member.StartPosition().Row) > prevEndRow+1 {
					items.Newline()
				}
				items.Extend(genNode(member, ctx))
				prevWasLineComment = member.Kind() == "line_comment"
				prevEndRow = int(member.EndPosition().Row)
				hadCommentSinceLastMember = true
			}
			continue
		}

		if !prevWasLineComment {
			items.Newline()
		}
		sourceHasBlank := prevEndRow >= 0 && int(member.StartPosition().Row) > prevEndRow+1
		blockBlank := false
		if !hadCommentSinceLastMember && prevWasBlock != nil {
			blockBlank = *prevWasBlock || isBlockMember(member)
		}
		if sourceHasBlank || blockBlank {
			items.Newline()
		}
		items.Extend(genNode(member, ctx))

		prevWasLineComment = false
		b := isBlockMember(member)
		prevWasBlock = &b
		prevEndRow = int(member.EndPosition().Row)
		hadCommentSinceLastMember = false
	}

	items.FinishIndent()
	ctx.dedent()
	if !prevWasLineComment {
		items.Newline()
	}
	items.PushStr("}")
	return items
}

// genEnumBody formats `{ CONSTANT1, CONSTANT2; members... }`. Constants
// go one per line; a source trailing comma on the last constant is kept.
func genEnumBody(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	items.PushStr("{")

	all := children(node)
	var members []*sitter.Node
	for _, c := range all {
		if c.Kind() != "{" && c.Kind() != "}" {
			members = append(members, c)
		}
	}
	if len(members) == 0 {
		items.PushStr("}")
		return items
	}

	items.StartIndent()
	ctx.indent()

	constantCount := 0
	for _, m := range members {
		if m.Kind() == "enum_constant" {
			constantCount++
		}
	}

	// Detect a source trailing comma: a "," immediately before ";" or the
	// body declarations.
	hasTrailingComma := false
	{
		var nonExtra []*sitter.Node
		for _, m := range members {
			if !m.IsExtra() {
				nonExtra = append(nonExtra, m)
			}
		}
		for i := 0; i+1 < len(nonExtra); i++ {
			if nonExtra[i].Kind() == "," &&
				(nonExtra[i+1].Kind() == ";" || nonExtra[i+1].Kind() == "enum_body_declarations") {
				hasTrailingComma = true
			}
		}
		if len(nonExtra) > 0 && nonExtra[len(nonExtra)-1].Kind() == "," {
			hasTrailingComma = true
		}
	}

	constantIdx := 0
	prevWasConstant := false
	prevEndRow := -1
	if open := firstChildOfKind(node, "{"); open != nil {
		prevEndRow = int(open.EndPosition().Row)
	}

	for _, member := range members {
		if member.IsExtra() {
			items.Newline()
			if prevEndRow >= 0 && int(member.StartPosition().Row) > prevEndRow+1 {
				items.Newline()
			}
			items.Extend(genNode(member, ctx))
			prevEndRow = int(member.EndPosition().Row)
			continue
		}

		switch member.Kind() {
		case "enum_constant":
			items.Newline()
			if prevEndRow >= 0 && int(member.StartPosition().Row) > prevEndRow+1 {
				items.Newline()
			}
			items.Extend(genEnumConstant(member, ctx))
			constantIdx++
			if constantIdx < constantCount || hasTrailingComma {
				items.PushStr(",")
			}
			prevWasConstant = true
			prevEndRow = int(member.EndPosition().Row)
		case ",":
			// Commas between constants are re-emitted above.
		case ";":
			if prevWasConstant {
				items.Newline()
			}
			items.PushStr(";")
			prevWasConstant = false
		case "enum_body_declarations":
			items.Extend(genEnumBodyDeclarations(member, ctx, &prevWasConstant, hasTrailingComma))
		default:
			if member.IsNamed() {
				if prevWasConstant {
					items.PushStr(";")
					prevWasConstant = false
				}
				items.Newline()
				items.Newline()
				items.Extend(genNode(member, ctx))
			}
		}
	}

	items.FinishIndent()
	ctx.dedent()
	items.Newline()
	items.PushStr("}")
	return items
}

// genEnumBodyDeclarations formats the post-semicolon members of an enum
// body with the usual class-body blank-line rules.
func genEnumBodyDeclarations(
	node *sitter.Node,
	ctx *context,
	prevWasConstant *bool,
	hasTrailingComma bool,
) printer.Items {
	var items printer.Items
	prevEndRow := -1
	prevWasLineComment := false
	var prevWasBlock *bool

	for _, child := range children(node) {
		if child.Kind() == ";" {
			if *prevWasConstant && hasTrailingComma {
				items.Newline()
			}
			items.PushStr(";")
			prevEndRow = int(child.EndPosition().Row)
			*prevWasConstant = false
			continue
		}
		if child.IsExtra() {
			if !prevWasLineComment {
				items.Newline()
			}
			if prevEndRow >= 0 && int(child.StartPosition().Row) > prevEndRow+1 {
				items.Newline()
			}
			items.Extend(genNode(child, ctx))
			prevWasLineComment = child.Kind() == "line_comment"
			prevEndRow = int(child.EndPosition().Row)
			continue
		}
		if !child.IsNamed() {
			continue
		}
		if !prevWasLineComment {
			items.Newline()
		}
		sourceBlank := prevEndRow >= 0 && int(child.StartPosition().Row) > prevEndRow+1
		blockBlank := false
		if prevWasBlock != nil {
			blockBlank = *prevWasBlock || isBlockMember(child)
		}
		if sourceBlank || blockBlank {
			items.Newline()
		}
		items.Extend(genNode(child, ctx))
		prevWasLineComment = false
		b := isBlockMember(child)
		prevWasBlock = &b
		prevEndRow = int(child.EndPosition().Row)
	}
	*prevWasConstant = false
	return items
}

// genEnumConstant formats a single enum constant, with optional
// arguments and anonymous body.
func genEnumConstant(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	for _, child := range children(node) {
		switch child.Kind() {
		case "modifiers":
			modItems, endsWithNewline := genModifiers(child, ctx)
			items.Extend(modItems)
			if !endsWithNewline {
				items.Space()
			}
		case "identifier":
			items.Extend(genNodeText(child, ctx.source))
		case "argument_list":
			items.Extend(genNode(child, ctx))
		case "class_body":
			items.Space()
			items.Extend(genClassBody(child, ctx))
		}
	}
	return items
}

// genFormalParameters formats `(Type name, Type name)`, wrapping at
// continuation indent when the signature exceeds the line width: all
// parameters on one continuation line when they fit there, otherwise
// one per line.
func genFormalParameters(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	all := children(node)

	var params []*sitter.Node
	for _, c := range all {
		switch c.Kind() {
		case "formal_parameter", "spread_parameter", "receiver_parameter":
			params = append(params, c)
		}
	}

	// Comments between parameters force one-per-line wrapping.
	commentsBefore := map[*sitter.Node][]*sitter.Node{}
	var trailingComments []*sitter.Node
	{
		var pending []*sitter.Node
		for _, c := range all {
			switch {
			case c.IsExtra():
				pending = append(pending, c)
			case c.Kind() == "formal_parameter" || c.Kind() == "spread_parameter" ||
				c.Kind() == "receiver_parameter":
				if len(pending) > 0 {
					commentsBefore[c] = pending
					pending = nil
				}
			}
		}
		trailingComments = pending
	}
	hasComments := len(commentsBefore) > 0 || len(trailingComments) > 0

	paramTextWidth := 0
	for i, p := range params {
		paramTextWidth += flatWidth(nodeSource(p, ctx.source))
		if i < len(params)-1 {
			paramTextWidth += 2
		}
	}

	indentWidth := ctx.indentCols()
	prefixWidth, ok := ctx.takeOverridePrefixWidth()
	if !ok {
		prefixWidth = estimatePrefixWidth(node, ctx.source, ctx.assignmentWrapped)
	}

	suffixWidth := 2
	if parent := node.Parent(); parent != nil {
		switch parent.Kind() {
		case "method_declaration", "constructor_declaration":
			if parent.ChildByFieldName("body") != nil {
				suffixWidth = 4 // "() {"
			} else {
				suffixWidth = 3 // "();"
			}
		}
	}

	shouldWrap := hasComments ||
		indentWidth+prefixWidth+paramTextWidth+suffixWidth > ctx.config.LineWidth

	items.PushStr("(")
	if !shouldWrap {
		for i, p := range params {
			items.Extend(genNode(p, ctx))
			if i < len(params)-1 {
				items.PushStr(",")
				items.Space()
			}
		}
		items.PushStr(")")
		return items
	}

	continuationCol := indentWidth + 2*ctx.config.IndentWidth
	allFitContinuation := !hasComments &&
		continuationCol+paramTextWidth+3 <= ctx.config.LineWidth

	items.StartIndent()
	items.StartIndent()
	if allFitContinuation {
		items.Newline()
		for i, p := range params {
			items.Extend(genNode(p, ctx))
			if i < len(params)-1 {
				items.PushStr(",")
				items.Space()
			}
		}
	} else {
		for i, p := range params {
			hadComment := false
			for _, cm := range commentsBefore[p] {
				items.Newline()
				items.Extend(genNode(cm, ctx))
				hadComment = true
			}
			if !hadComment {
				items.Newline()
			}
			items.Extend(genWideParameter(p, ctx, continuationCol, i < len(params)-1))
			if i < len(params)-1 {
				items.PushStr(",")
			}
		}
		for _, cm := range trailingComments {
			items.Newline()
			items.Extend(genNode(cm, ctx))
		}
	}
	items.PushStr(")")
	items.FinishIndent()
	items.FinishIndent()
	return items
}

// genWideParameter emits one parameter of a wrapped list. A parameter
// that itself overflows the continuation line breaks after its
// annotations, putting type and name on a further continuation line.
func genWideParameter(p *sitter.Node, ctx *context, continuationCol int, hasComma bool) printer.Items {
	paramFlat := flatWidth(nodeSource(p, ctx.source))
	suffix := 0
	if hasComma {
		suffix = 1
	}
	if continuationCol+paramFlat+suffix <= ctx.config.LineWidth || !hasChildOfKind(p, "modifiers") {
		return genNode(p, ctx)
	}

	var items printer.Items
	started := false
	for _, child := range children(p) {
		if child.Kind() == "modifiers" {
			items.Extend(genNode(child, ctx))
			continue
		}
		if !started {
			items.StartIndent()
			items.StartIndent()
			items.Newline()
			started = true
		} else if child.Kind() == "identifier" || child.Kind() == "variable_declarator" {
			items.Space()
		}
		items.Extend(genNode(child, ctx))
	}
	if started {
		items.FinishIndent()
		items.FinishIndent()
	}
	return items
}

// genThrows formats `throws Exception1, Exception2`, bin-packing the
// exception list across continuation lines when it does not fit.
func genThrows(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items

	var types []*sitter.Node
	for _, c := range children(node) {
		if c.IsNamed() {
			types = append(types, c)
		}
	}

	typesFlatWidth := 0
	for i, t := range types {
		typesFlatWidth += int(t.EndByte() - t.StartByte())
		if i < len(types)-1 {
			typesFlatWidth += 2
		}
	}

	indentWidth := ctx.effectiveIndentCols()
	lineWidth := ctx.config.LineWidth
	needsWrap := indentWidth+7+typesFlatWidth+2 > lineWidth

	items.PushStr("throws")
	if needsWrap && len(types) > 1 {
		continuationCol := indentWidth + 2*ctx.config.IndentWidth
		currentLineWidth := indentWidth + 7
		for i, typ := range types {
			typeWidth := int(typ.EndByte() - typ.StartByte())
			if i > 0 && currentLineWidth+typeWidth+2 > lineWidth {
				items.StartIndent()
				items.StartIndent()
				items.Newline()
				items.Extend(genNode(typ, ctx))
				if i < len(types)-1 {
					items.PushStr(",")
				}
				items.FinishIndent()
				items.FinishIndent()
				currentLineWidth = continuationCol + typeWidth + 2
			} else {
				items.Space()
				items.Extend(genNode(typ, ctx))
				if i < len(types)-1 {
					items.PushStr(",")
				}
				currentLineWidth += 1 + typeWidth + 2
			}
		}
		return items
	}

	for i, typ := range types {
		if i == 0 {
			items.Space()
		}
		items.Extend(genNode(typ, ctx))
		if i < len(types)-1 {
			items.PushStr(",")
			items.Space()
		}
	}
	return items
}

// estimatePrefixWidth approximates the text on the current line before a
// formal_parameters or argument_list node: modifiers + return type +
// name for declarations, receiver + name for invocations. Ancestor text
// on the same source line (return/throw keywords, assignment left-hand
// sides) is counted too, unless the assignment already wrapped.
func estimatePrefixWidth(node *sitter.Node, source []byte, assignmentWrapped bool) int {
	parent := node.Parent()
	if parent == nil {
		return 0
	}

	prefix := string(source[parent.StartByte():node.StartByte()])
	width := len(strings.TrimLeft(lastLine(prefix), " \t"))

	prev := parent
	parentStartRow := parent.StartPosition().Row
	for anc := parent.Parent(); anc != nil; anc = anc.Parent() {
		if anc.StartPosition().Row != parentStartRow {
			break
		}
		switch anc.Kind() {
		case "return_statement":
			return width + len("return ")
		case "throw_statement":
			return width + len("throw ")
		case "assignment_expression":
			if !assignmentWrapped {
				lhs := string(source[anc.StartByte():prev.StartByte()])
				width += len(strings.TrimLeft(lastLine(lhs), " \t"))
			}
			return width
		case "variable_declarator", "local_variable_declaration", "field_declaration":
			if !assignmentWrapped {
				lhs := string(source[anc.StartByte():prev.StartByte()])
				width += len(strings.TrimLeft(lastLine(lhs), " \t"))
			}
			prev = anc
		case "method_declaration", "constructor_declaration":
			return width
		default:
			prev = anc
		}
	}
	return width
}

// genVariableDeclarator formats `name = value`, breaking after `=` at
// continuation indent when the full line does not fit and the value can
// live on one continuation line (or is inherently multi-line).
func genVariableDeclarator(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	all := children(node)

	hasValue := false
	for _, c := range all {
		if c.Kind() == "=" {
			hasValue = true
		}
	}

	wrapValue := hasValue && shouldWrapDeclaratorValue(node, all, ctx)

	sawEq := false
	for _, child := range all {
		switch {
		case child.Kind() == "identifier" || child.Kind() == "dimensions":
			items.Extend(genNodeText(child, ctx.source))
		case child.Kind() == "=":
			items.Space()
			items.PushStr("=")
			sawEq = true
			if wrapValue {
				items.StartIndent()
				items.StartIndent()
				items.Newline()
			} else {
				items.Space()
			}
		case child.IsNamed():
			if wrapValue && sawEq {
				// The value starts a fresh continuation line; its own
				// prefix width is zero regardless of the source layout.
				ctx.assignmentWrapped = true
				ctx.addContinuationIndent(2)
				ctx.setOverridePrefixWidth(0)
			}
			items.Extend(genNode(child, ctx))
			if wrapValue && sawEq {
				ctx.clearOverridePrefixWidth()
				ctx.removeContinuationIndent(2)
				ctx.assignmentWrapped = false
			}
		}
	}
	if wrapValue && sawEq {
		items.FinishIndent()
		items.FinishIndent()
	}
	return items
}

// shouldWrapDeclaratorValue decides whether a declarator breaks at '='.
// The break happens only when it helps: the right-hand side must fit on
// one continuation line, be a chain that becomes inline after the break,
// or be inherently multi-line (anonymous class).
func shouldWrapDeclaratorValue(node *sitter.Node, all []*sitter.Node, ctx *context) bool {
	// Array initializers with comments expand on their own.
	for _, c := range all {
		if c.Kind() == "array_initializer" {
			for _, gc := range children(c) {
				if gc.IsExtra() {
					return false
				}
			}
		}
	}

	var value *sitter.Node
	foundEq := false
	for _, c := range all {
		if c.Kind() == "=" {
			foundEq = true
			continue
		}
		if foundEq && c.IsNamed() {
			value = c
			break
		}
	}
	if value == nil {
		return false
	}

	rhsFlatWidth := collapseWhitespaceLen(nodeSource(value, ctx.source))
	indentUnit := ctx.config.IndentWidth
	indentCol := ctx.indentCols()
	continuationIndent := indentCol + 2*indentUnit
	lineWidth := ctx.config.LineWidth

	lhsWidth := declaratorLHSWidth(node, all, ctx)

	if value.Kind() == "method_invocation" && chainDepth(value) >= 1 {
		rootWidth, firstSegWidth := chainRootFirstSegWidth(value, ctx.source)
		if indentCol+lhsWidth+3+rootWidth+firstSegWidth > lineWidth {
			return true
		}
		currentCol := indentCol + lhsWidth + 3
		if chainFitsInlineAt(value, currentCol, ctx) {
			return false
		}
		return chainFitsInlineAt(value, continuationIndent, ctx)
	}

	totalLineWidth := indentCol + lhsWidth + 3 + rhsFlatWidth + 1
	totalTooWide := totalLineWidth > lineWidth

	if value.Kind() == "object_creation_expression" && hasChildOfKind(value, "class_body") {
		return totalTooWide
	}

	switch value.Kind() {
	case "ternary_expression":
		rhsFits := continuationIndent+rhsFlatWidth <= lineWidth
		return totalTooWide && rhsFits
	case "binary_expression":
		// Binary expressions wrap at their own operators.
		return false
	}

	rhsFits := continuationIndent+rhsFlatWidth <= lineWidth
	if rhsFits && totalTooWide {
		return true
	}
	if !rhsFits && totalTooWide {
		// Keep `lhs = opening(` inline only when that itself fits.
		rhsText := nodeSource(value, ctx.source)
		openingWidth := rhsFlatWidth
		if p := strings.IndexByte(rhsText, '('); p >= 0 {
			openingWidth = p + 1
		}
		return indentCol+lhsWidth+3+openingWidth > lineWidth
	}
	return false
}

// declaratorLHSWidth is the collapsed width of everything before '=':
// the declaration's modifiers and type plus the declarator name.
func declaratorLHSWidth(node *sitter.Node, all []*sitter.Node, ctx *context) int {
	ownLHS := func() int {
		w := 0
		for _, c := range all {
			if c.Kind() == "=" {
				break
			}
			if w > 0 {
				w++
			}
			w += collapseWhitespaceLen(nodeSource(c, ctx.source))
		}
		return w
	}

	if ctx.declaratorOnNewLine {
		return ownLHS()
	}

	parent := node.Parent()
	if parent == nil {
		return ownLHS()
	}

	w := 0
	for _, c := range children(parent) {
		if c.StartByte() == node.StartByte() && c.EndByte() == node.EndByte() {
			if w > 0 {
				w++
			}
			w += ownLHS()
			return w
		}
		if c.IsNamed() {
			if w > 0 {
				w++
			}
			w += collapseWhitespaceLen(nodeSource(c, ctx.source))
		}
	}
	return w + ownLHS()
}

// genArgumentList formats `(arg1, arg2)`. When the call does not fit it
// wraps after '(' — all arguments on one continuation line when they
// fit there (bin-packing), otherwise one per line. Inside a wrapped
// chain the chain wrapper owns the layout and argument lists use only
// the immediate method name as prefix.
func genArgumentList(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	all := children(node)

	var args []*sitter.Node
	for _, c := range all {
		if c.IsNamed() && !c.IsExtra() {
			args = append(args, c)
		}
	}

	commentsBefore := map[*sitter.Node][]*sitter.Node{}
	var trailingComments []*sitter.Node
	{
		var pending []*sitter.Node
		for _, c := range all {
			switch {
			case c.IsExtra():
				pending = append(pending, c)
			case c.IsNamed():
				if len(pending) > 0 {
					commentsBefore[c] = pending
					pending = nil
				}
			}
		}
		trailingComments = pending
	}
	hasComments := len(commentsBefore) > 0 || len(trailingComments) > 0

	argsFlatWidth := 0
	for i, a := range args {
		argsFlatWidth += argFlatWidth(a, ctx)
		if i < len(args)-1 {
			argsFlatWidth += 2
		}
	}

	isInChain := false
	if p := node.Parent(); p != nil && p.Kind() == "method_invocation" {
		if obj := p.ChildByFieldName("object"); obj != nil && obj.Kind() == "method_invocation" {
			isInChain = true
		} else if gp := p.Parent(); gp != nil && gp.Kind() == "method_invocation" {
			isInChain = true
		}
	}

	indentWidth := ctx.effectiveIndentCols()
	lineWidth := ctx.config.LineWidth

	var prefixWidth int
	if isInChain {
		parent := node.Parent()
		nameWidth := 0
		if n := parent.ChildByFieldName("name"); n != nil {
			nameWidth = int(n.EndByte() - n.StartByte())
		}
		typeArgsWidth := 0
		if ta := parent.ChildByFieldName("type_arguments"); ta != nil {
			typeArgsWidth = collapseWhitespaceLen(nodeSource(ta, ctx.source))
		}
		prefixWidth = 1 + typeArgsWidth + nameWidth
	} else if w, ok := ctx.takeOverridePrefixWidth(); ok {
		prefixWidth = w
	} else {
		prefixWidth = estimatePrefixWidth(node, ctx.source, ctx.assignmentWrapped)
	}

	// Single-argument calls whose argument is itself a call: keep
	// `outer(inner(` inline and let the inner call wrap, unless the
	// argument fits on a continuation line.
	singleArgHeadWidth := -1
	if len(args) == 1 {
		switch args[0].Kind() {
		case "object_creation_expression", "method_invocation":
			if inner := args[0].ChildByFieldName("arguments"); inner != nil {
				head := string(ctx.source[args[0].StartByte():inner.StartByte()])
				singleArgHeadWidth = collapseWhitespaceLen(head) + 1
			}
		}
	}

	continuationIndent := indentWidth + 2*ctx.config.IndentWidth

	fitsOnOneLine := false
	switch {
	case len(args) == 0:
		fitsOnOneLine = true
	case len(args) == 1 && isInChain:
		fitsOnOneLine = true
	case singleArgHeadWidth >= 0:
		argFits := continuationIndent+argsFlatWidth+1 < lineWidth
		if argFits {
			fitsOnOneLine = indentWidth+prefixWidth+argsFlatWidth+2 < lineWidth
		} else {
			fitsOnOneLine = indentWidth+prefixWidth+singleArgHeadWidth < lineWidth
		}
	case len(args) == 1 && args[0].Kind() == "binary_expression":
		// Binary expressions wrap at their own operators.
		fitsOnOneLine = true
	default:
		fitsOnOneLine = indentWidth+prefixWidth+argsFlatWidth+2 < lineWidth
	}
	if hasComments {
		fitsOnOneLine = false
	}

	// Chains buried in arguments whose last dot exceeds the chain
	// threshold force the argument list open.
	threshold := ctx.config.MethodChainThreshold
	exceedsChainLimit := func(baseCol int) bool {
		col := baseCol
		for _, arg := range args {
			if dot := rightmostChainDot(arg, ctx.source, col); dot > threshold {
				return true
			}
			col += argFlatWidth(arg, ctx) + 2
		}
		return false
	}

	singleArgIsLongChain := len(args) == 1 &&
		args[0].Kind() == "method_invocation" && chainDepth(args[0]) >= 3
	if fitsOnOneLine && !isInChain && !singleArgIsLongChain &&
		exceedsChainLimit(indentWidth+prefixWidth) {
		fitsOnOneLine = false
	}

	fitsOnContinuationLine := continuationIndent+argsFlatWidth+1 < lineWidth
	if hasComments {
		fitsOnContinuationLine = false
	}
	if !fitsOnOneLine && fitsOnContinuationLine && len(args) > 1 &&
		exceedsChainLimit(continuationIndent) {
		fitsOnContinuationLine = false
	}

	items.PushStr("(")
	switch {
	case fitsOnOneLine:
		if !isInChain && singleArgHeadWidth >= 0 {
			if continuationIndent+argsFlatWidth+1 >= lineWidth {
				ctx.setOverridePrefixWidth(prefixWidth + singleArgHeadWidth)
			}
		}
		for i, arg := range args {
			items.Extend(genNode(arg, ctx))
			if i < len(args)-1 {
				items.PushStr(",")
				items.Space()
			}
		}
		ctx.clearOverridePrefixWidth()
		items.PushStr(")")
	case fitsOnContinuationLine:
		items.StartIndent()
		items.StartIndent()
		items.Newline()
		ctx.addContinuationIndent(2)
		for i, arg := range args {
			items.Extend(genNode(arg, ctx))
			if i < len(args)-1 {
				items.PushStr(",")
				items.Space()
			}
		}
		ctx.removeContinuationIndent(2)
		items.PushStr(")")
		items.FinishIndent()
		items.FinishIndent()
	default:
		items.StartIndent()
		items.StartIndent()
		ctx.addContinuationIndent(2)
		for i, arg := range args {
			for _, cm := range commentsBefore[arg] {
				items.Newline()
				items.Extend(genNode(cm, ctx))
			}
			items.Newline()
			items.Extend(genNode(arg, ctx))
			if i < len(args)-1 {
				items.PushStr(",")
			}
		}
		for _, cm := range trailingComments {
			items.Newline()
			items.Extend(genNode(cm, ctx))
		}
		ctx.removeContinuationIndent(2)
		items.PushStr(")")
		items.FinishIndent()
		items.FinishIndent()
	}
	return items
}

// argFlatWidth estimates an argument's single-line width. Lambdas with
// block bodies count only their header — the block is always multi-line.
func argFlatWidth(arg *sitter.Node, ctx *context) int {
	if arg.Kind() == "lambda_expression" && hasChildOfKind(arg, "block") {
		width := 0
		for _, child := range children(arg) {
			if child.Kind() == "block" {
				return width + 1
			}
			if child.Kind() == "->" {
				width += 4
			} else {
				width += int(child.EndByte() - child.StartByte())
			}
		}
		return width
	}
	return flatWidth(nodeSource(arg, ctx.source))
}
