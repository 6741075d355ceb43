package format

import (
	"sort"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/dhamidi/javafmt/config"
	"github.com/dhamidi/javafmt/printer"
)

// generate produces the print-item sequence for a parse tree.
func generate(root *sitter.Node, source []byte, cfg *config.Configuration) *printer.Items {
	ctx := newContext(source, cfg)
	items := genNode(root, ctx)
	return &items
}

// genNode is the dispatcher: it routes nodes to handlers by kind.
// Type kinds with a dedicated handler (generic_type, array_type, ...)
// have cases of their own; the remaining type-leaf kinds take the
// default branch. Unhandled kinds fall back to their source text
// unchanged, so unknown grammar extensions survive formatting verbatim.
func genNode(node *sitter.Node, ctx *context) printer.Items {
	ctx.pushParent(node.Kind())
	defer ctx.popParent()

	switch kind := node.Kind(); kind {
	case "program":
		return genProgram(node, ctx)

	// Declarations.
	case "package_declaration":
		return genPackageDeclaration(node, ctx)
	case "import_declaration":
		return genImportDeclaration(node, ctx)
	case "class_declaration":
		return genClassDeclaration(node, ctx)
	case "interface_declaration":
		return genInterfaceDeclaration(node, ctx)
	case "enum_declaration":
		return genEnumDeclaration(node, ctx)
	case "record_declaration":
		return genRecordDeclaration(node, ctx)
	case "annotation_type_declaration":
		return genAnnotationTypeDeclaration(node, ctx)
	case "method_declaration":
		return genMethodDeclaration(node, ctx)
	case "constructor_declaration":
		return genConstructorDeclaration(node, ctx)
	case "compact_constructor_declaration":
		return genCompactConstructorDeclaration(node, ctx)
	case "field_declaration", "constant_declaration":
		return genFieldDeclaration(node, ctx)
	case "class_body", "interface_body", "annotation_type_body":
		return genClassBody(node, ctx)
	case "annotation_type_element_declaration":
		return genAnnotationTypeElement(node, ctx)
	case "static_initializer":
		return genStaticInitializer(node, ctx)

	// Statements.
	case "block", "constructor_body":
		return genBlock(node, ctx)
	case "local_variable_declaration":
		return genLocalVariableDeclaration(node, ctx)
	case "expression_statement":
		return genExpressionStatement(node, ctx)
	case "if_statement":
		return genIfStatement(node, ctx)
	case "for_statement":
		return genForStatement(node, ctx)
	case "enhanced_for_statement":
		return genEnhancedForStatement(node, ctx)
	case "while_statement":
		return genWhileStatement(node, ctx)
	case "do_statement":
		return genDoStatement(node, ctx)
	case "switch_expression", "switch_statement":
		return genSwitchExpression(node, ctx)
	case "try_statement":
		return genTryStatement(node, ctx)
	case "try_with_resources_statement":
		return genTryWithResourcesStatement(node, ctx)
	case "return_statement":
		return genReturnStatement(node, ctx)
	case "throw_statement":
		return genThrowStatement(node, ctx)
	case "break_statement":
		return genBreakStatement(node, ctx)
	case "continue_statement":
		return genContinueStatement(node, ctx)
	case "yield_statement":
		return genYieldStatement(node, ctx)
	case "synchronized_statement":
		return genSynchronizedStatement(node, ctx)
	case "assert_statement":
		return genAssertStatement(node, ctx)
	case "labeled_statement":
		return genLabeledStatement(node, ctx)
	case "local_class_declaration":
		return genLocalClassDeclaration(node, ctx)

	// Types.
	case "generic_type":
		return genGenericType(node, ctx)
	case "array_type":
		return genArrayType(node, ctx)
	case "type_parameter":
		return genTypeParameter(node, ctx)
	case "wildcard":
		return genWildcard(node, ctx)

	// Shared nodes.
	case "formal_parameter", "spread_parameter":
		return genFormalParameter(node, ctx)
	case "variable_declarator":
		return genVariableDeclarator(node, ctx)
	case "argument_list":
		return genArgumentList(node, ctx)
	case "marker_annotation":
		return genMarkerAnnotation(node, ctx)
	case "annotation":
		return genAnnotation(node, ctx)
	case "annotation_argument_list":
		return genAnnotationArgumentList(node, ctx)
	case "element_value_pair":
		return genElementValuePair(node, ctx)
	case "dimensions_expr":
		return genDimensionsExpr(node, ctx)
	case "type_pattern", "record_pattern":
		return genPattern(node, ctx)

	// Comments.
	case "line_comment":
		return genLineComment(node, ctx)
	case "block_comment":
		return genBlockComment(node, ctx)

	// Expressions.
	case "binary_expression":
		return genBinaryExpression(node, ctx)
	case "unary_expression", "update_expression":
		return genUnaryExpression(node, ctx)
	case "method_invocation":
		return genMethodInvocation(node, ctx)
	case "field_access":
		return genFieldAccess(node, ctx)
	case "lambda_expression":
		return genLambdaExpression(node, ctx)
	case "ternary_expression":
		return genTernaryExpression(node, ctx)
	case "object_creation_expression":
		return genObjectCreationExpression(node, ctx)
	case "array_creation_expression":
		return genArrayCreationExpression(node, ctx)
	case "array_initializer", "element_value_array_initializer":
		return genArrayInitializer(node, ctx)
	case "array_access":
		return genArrayAccess(node, ctx)
	case "cast_expression":
		return genCastExpression(node, ctx)
	case "instanceof_expression":
		return genInstanceofExpression(node, ctx)
	case "parenthesized_expression", "condition":
		return genParenthesizedExpression(node, ctx)
	case "method_reference":
		return genMethodReference(node, ctx)
	case "assignment_expression":
		return genAssignmentExpression(node, ctx)
	case "inferred_parameters":
		return genInferredParameters(node, ctx)
	case "explicit_constructor_invocation":
		return genExplicitConstructorInvocation(node, ctx)

	default:
		// Verbatim fallback: type-leaf nodes and anything the dispatcher
		// does not know are emitted as their exact source text.
		return genNodeText(node, ctx.source)
	}
}

// importGroup classifies an import path per the output grouping:
// java.*, javax.*, other, then static imports.
func importGroup(path string, isStatic bool) int {
	switch {
	case isStatic:
		return 3
	case strings.HasPrefix(path, "java."):
		return 0
	case strings.HasPrefix(path, "javax."):
		return 1
	default:
		return 2
	}
}

// extractImportPath returns the dotted path of an import declaration,
// with a trailing ".*" for on-demand imports.
func extractImportPath(node *sitter.Node, source []byte) string {
	for _, child := range children(node) {
		if child.Kind() == "scoped_identifier" || child.Kind() == "identifier" {
			path := nodeSource(child, source)
			if hasChildOfKind(node, "asterisk") {
				return path + ".*"
			}
			return path
		}
	}
	return ""
}

// genProgram emits the compilation unit: package, sorted and regrouped
// imports, then top-level declarations separated by single blank lines.
func genProgram(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items

	all := children(node)

	// Partition imports into their output groups; everything else keeps
	// source order.
	groups := make([][]*sitter.Node, 4)
	var rest []*sitter.Node
	for _, child := range all {
		if child.Kind() == "import_declaration" {
			path := extractImportPath(child, ctx.source)
			g := importGroup(path, hasChildOfKind(child, "static"))
			groups[g] = append(groups[g], child)
		} else {
			rest = append(rest, child)
		}
	}
	hasImports := false
	for _, g := range groups {
		sort.SliceStable(g, func(i, j int) bool {
			return extractImportPath(g[i], ctx.source) < extractImportPath(g[j], ctx.source)
		})
		if len(g) > 0 {
			hasImports = true
		}
	}

	emitImports := func() {
		first := true
		for _, g := range groups {
			if len(g) == 0 {
				continue
			}
			if !first {
				items.Newline()
			}
			for _, imp := range g {
				items.Extend(genNode(imp, ctx))
				items.Newline()
			}
			first = false
		}
	}

	hasPackage := false
	for _, child := range rest {
		if child.Kind() == "package_declaration" {
			hasPackage = true
		}
	}

	anyNonExtraAfter := func(i int) bool {
		for _, c := range rest[i+1:] {
			if !c.IsExtra() {
				return true
			}
		}
		return false
	}

	var prevKind string
	prevWasComment := false
	prevEndRow := -1
	emittedImports := false

	for i, child := range rest {
		// Imports go after the package declaration when there is one,
		// otherwise before the first non-comment node.
		if !emittedImports && hasImports &&
			((hasPackage && prevKind == "package_declaration") ||
				(!hasPackage && !child.IsExtra())) {
			if prevKind == "package_declaration" {
				items.Newline()
			}
			emitImports()
			prevKind = "import_declaration"
			prevWasComment = false
			emittedImports = true
		}

		if child.IsExtra() {
			if isTrailingComment(child) {
				items.Space()
				items.Extend(genNode(child, ctx))
				prevKind = child.Kind()
				prevWasComment = true
				prevEndRow = int(child.EndPosition().Row)
				continue
			}
			if prevKind != "" || prevWasComment {
				prevIsCode := prevKind != "" && prevKind != "line_comment" && prevKind != "block_comment"
				isBlock := child.Kind() == "block_comment"
				switch {
				case prevIsCode && !prevWasComment:
					items.Newline()
					if isBlock && prevKind != "import_declaration" && prevKind != "package_declaration" {
						items.Newline()
					}
				case prevWasComment && isBlock:
					items.Newline()
				case prevWasComment && child.Kind() == "line_comment":
					if prevKind == "block_comment" {
						items.Newline()
					}
					if prevEndRow >= 0 && int(child.StartPosition().Row) > prevEndRow+1 {
						items.Newline()
					}
				}
			}
			items.Extend(genNode(child, ctx))
			prevKind = child.Kind()
			prevWasComment = true
			prevEndRow = int(child.EndPosition().Row)
			continue
		}

		if prevKind != "" {
			switch prevKind {
			case "line_comment":
				// A line comment already ends with a newline; add a blank
				// only when the source has one.
				if prevEndRow >= 0 && int(child.StartPosition().Row) > prevEndRow+1 {
					items.Newline()
				}
			case "block_comment":
				items.Newline()
				if prevEndRow >= 0 && int(child.StartPosition().Row) > prevEndRow+1 {
					items.Newline()
				}
			default:
				items.Newline()
			}
		}

		items.Extend(genNode(child, ctx))
		prevKind = child.Kind()
		prevWasComment = false
		prevEndRow = int(child.EndPosition().Row)

		// The newline after a declaration is only emitted when more code
		// follows; a trailing comment on the same line must come first.
		if anyNonExtraAfter(i) {
			items.Newline()
		}
	}

	// A file of nothing but imports still needs them emitted; each
	// import already ends with its newline.
	if !emittedImports && hasImports {
		emitImports()
	}
	if len(rest) == 0 {
		return items
	}

	// End the file with exactly one newline. Line comments already
	// self-terminate.
	if prevKind != "line_comment" {
		items.Newline()
	}

	return items
}

// genGenericType formats a parameterized type: List<String>, Map<K, V>.
func genGenericType(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	for _, child := range children(node) {
		switch {
		case child.Kind() == "type_arguments":
			items.Extend(genTypeArguments(child, ctx))
		case child.IsNamed():
			items.Extend(genNode(child, ctx))
		}
	}
	return items
}

// estimateTypeArgsPrefixWidth approximates the content already on the
// line before a type_arguments node, walking up through enclosing
// declarations so estimates stay stable across passes.
func estimateTypeArgsPrefixWidth(node *sitter.Node, source []byte) int {
	parent := node.Parent()
	if parent == nil {
		return 0
	}

	prefix := string(source[parent.StartByte():node.StartByte()])
	width := collapsePrefixLen(lastLine(prefix))

	prev := parent
	for anc := parent.Parent(); anc != nil; anc = anc.Parent() {
		switch anc.Kind() {
		case "method_declaration", "field_declaration", "local_variable_declaration",
			"formal_parameter", "object_creation_expression", "method_invocation",
			"constructor_declaration":
			text := string(source[anc.StartByte():prev.StartByte()])
			width += collapsePrefixLen(lastLine(text))
			return width
		case "return_statement":
			return width + len("return ")
		case "throw_statement":
			return width + len("throw ")
		}
		prev = anc
	}
	return width
}

// genTypeArguments formats <String, Integer>, wrapping after '<' when
// the list does not fit: one continuation line when possible, otherwise
// one argument per line. Declaration contexts use double continuation
// indent; extends/implements clauses use single.
func genTypeArguments(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	all := children(node)

	var typeArgs []*sitter.Node
	for _, child := range all {
		if child.IsNamed() {
			typeArgs = append(typeArgs, child)
		}
	}

	argsFlatWidth := 0
	for i, a := range typeArgs {
		argsFlatWidth += collapseWhitespaceLen(nodeSource(a, ctx.source))
		if i < len(typeArgs)-1 {
			argsFlatWidth += 2
		}
	}

	// Find the prefix on the current line, detecting class-declaration
	// clauses (extends/implements) which wrap shallower.
	basePrefixWidth := 0
	inClassDecl := false
	if parent := node.Parent(); parent != nil {
		lineStart := parent
		n := parent
	walk:
		for par := n.Parent(); par != nil; par = par.Parent() {
			switch par.Kind() {
			case "superclass", "super_interfaces", "extends_interfaces":
				lineStart = par
				inClassDecl = true
				break walk
			case "class_declaration", "interface_declaration", "enum_declaration", "record_declaration":
				break walk
			}
			n = par
		}
		prefix := string(ctx.source[lineStart.StartByte():node.StartByte()])
		basePrefixWidth = len(strings.TrimLeft(lastLine(prefix), " \t"))
	}

	prefixWidth := basePrefixWidth
	if !inClassDecl {
		if expanded := estimateTypeArgsPrefixWidth(node, ctx.source); expanded > prefixWidth {
			prefixWidth = expanded
		}
	}

	indentWidth := ctx.effectiveIndentCols()
	lineWidth := ctx.config.LineWidth

	trailing := 0
	if inClassDecl {
		trailing = 2 // " {"
	}
	totalInline := indentWidth + prefixWidth + 1 + argsFlatWidth + 1 + trailing
	if totalInline <= lineWidth {
		for _, child := range all {
			switch child.Kind() {
			case "<":
				items.PushStr("<")
			case ">":
				items.PushStr(">")
			case ",":
				items.PushStr(",")
				items.Space()
			default:
				if child.IsNamed() {
					items.Extend(genNode(child, ctx))
				}
			}
		}
		return items
	}

	ctx.markTypeArgsWrapped()
	indentLevels := 4
	if inClassDecl {
		indentLevels = 2
	}
	continuationCol := indentWidth + indentLevels*ctx.config.IndentWidth
	allFitContinuation := continuationCol+argsFlatWidth+1+trailing <= lineWidth

	items.PushStr("<")
	for i := 0; i < indentLevels; i++ {
		items.StartIndent()
	}
	if allFitContinuation {
		items.Newline()
		for i, arg := range typeArgs {
			items.Extend(genNode(arg, ctx))
			if i < len(typeArgs)-1 {
				items.PushStr(",")
				items.Space()
			}
		}
	} else {
		for i, arg := range typeArgs {
			items.Newline()
			items.Extend(genNode(arg, ctx))
			if i < len(typeArgs)-1 {
				items.PushStr(",")
			}
		}
	}
	items.PushStr(">")
	for i := 0; i < indentLevels; i++ {
		items.FinishIndent()
	}
	return items
}

// genArrayType formats int[], String[][].
func genArrayType(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	for _, child := range children(node) {
		switch {
		case child.Kind() == "dimensions":
			items.Extend(genNodeText(child, ctx.source))
		case child.IsNamed():
			items.Extend(genNode(child, ctx))
		}
	}
	return items
}

// genTypeParameter formats T, T extends Comparable<T>.
func genTypeParameter(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	for _, child := range children(node) {
		switch child.Kind() {
		case "identifier", "type_identifier":
			items.Extend(genNodeText(child, ctx.source))
		case "type_bound":
			items.Space()
			items.Extend(genTypeBound(child, ctx))
		case "marker_annotation", "annotation":
			items.Extend(genNode(child, ctx))
			items.Space()
		}
	}
	return items
}

// genTypeBound formats extends Comparable<T> & Serializable.
func genTypeBound(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	needSpace := false
	for _, child := range children(node) {
		switch {
		case child.Kind() == "extends":
			items.PushStr("extends")
			needSpace = true
		case child.Kind() == "&":
			items.Space()
			items.PushStr("&")
			needSpace = true
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

// genWildcard formats ?, ? extends T, ? super T. Wildcards never break.
func genWildcard(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	for _, child := range children(node) {
		switch {
		case child.Kind() == "?":
			items.PushStr("?")
		case child.Kind() == "extends":
			items.Space()
			items.PushStr("extends")
		case child.Kind() == "super":
			items.Space()
			items.PushStr("super")
		case child.IsNamed():
			items.Space()
			items.Extend(genNode(child, ctx))
		}
	}
	return items
}

// genFormalParameter formats String name, final int x, String... args.
func genFormalParameter(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	needSpace := false
	for _, child := range children(node) {
		switch kind := child.Kind(); {
		case kind == "modifiers":
			items.Extend(genModifiersInline(child, ctx))
			needSpace = true
		case isTypeNode(kind):
			if needSpace {
				items.Space()
			}
			items.Extend(genNode(child, ctx))
			needSpace = true
		case kind == "...":
			items.PushStr("...")
			needSpace = true
		case kind == "identifier" || kind == "variable_declarator":
			if needSpace {
				items.Space()
			}
			items.Extend(genNode(child, ctx))
			needSpace = false
		case kind == "dimensions":
			items.Extend(genNodeText(child, ctx.source))
		}
	}
	return items
}

// genMarkerAnnotation formats @Override.
func genMarkerAnnotation(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	items.PushStr("@")
	if name := node.ChildByFieldName("name"); name != nil {
		items.Extend(genNodeText(name, ctx.source))
	}
	return items
}

// genAnnotation formats @SuppressWarnings("unchecked").
func genAnnotation(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	items.PushStr("@")
	for _, child := range children(node) {
		switch child.Kind() {
		case "identifier", "scoped_identifier":
			items.Extend(genNodeText(child, ctx.source))
		case "annotation_argument_list":
			items.Extend(genNode(child, ctx))
		}
	}
	return items
}

// genAnnotationArgumentList formats ("value") or (key = value), forcing
// one argument per line at continuation indent when the annotation
// cannot fit on one line.
func genAnnotationArgumentList(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	all := children(node)

	var named []*sitter.Node
	for _, child := range all {
		if child.IsNamed() {
			named = append(named, child)
		}
	}

	// Multi-element arrays wrap; single-element ones stay compact.
	hasMultiElementArray := false
	for _, child := range named {
		arr := child
		if child.Kind() == "element_value_pair" {
			arr = firstChildOfKind(child, "element_value_array_initializer")
		}
		if arr != nil && arr.Kind() == "element_value_array_initializer" {
			count := 0
			for _, gc := range children(arr) {
				if gc.IsNamed() {
					count++
				}
			}
			if count > 1 {
				hasMultiElementArray = true
			}
		}
	}

	flatW := collapseWhitespaceLen(nodeSource(node, ctx.source))
	annotationPrefix := 0
	if parent := node.Parent(); parent != nil {
		annotationPrefix = int(node.StartByte() - parent.StartByte())
	}
	total := ctx.indentCols() + annotationPrefix + flatW
	exceeds := total > ctx.config.LineWidth
	forceMultiline := (len(named) > 1 || hasMultiElementArray) && exceeds

	items.PushStr("(")
	if forceMultiline {
		items.StartIndent()
		items.StartIndent()
		for i, child := range named {
			items.Newline()
			items.Extend(genNode(child, ctx))
			if i < len(named)-1 {
				items.PushStr(",")
			}
		}
		items.PushStr(")")
		items.FinishIndent()
		items.FinishIndent()
		return items
	}

	for _, child := range all {
		switch {
		case child.Kind() == "(" || child.Kind() == ")":
		case child.Kind() == ",":
			items.PushStr(",")
			items.Space()
		case child.IsNamed():
			items.Extend(genNode(child, ctx))
		}
	}
	items.PushStr(")")
	return items
}

// genElementValuePair formats key = value.
func genElementValuePair(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	for _, child := range children(node) {
		switch {
		case child.Kind() == "identifier":
			items.Extend(genNodeText(child, ctx.source))
		case child.Kind() == "=":
			items.Space()
			items.PushStr("=")
			items.Space()
		case child.IsNamed():
			items.Extend(genNode(child, ctx))
		}
	}
	return items
}

// genDimensionsExpr formats [expr] in array creation.
func genDimensionsExpr(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	for _, child := range children(node) {
		switch {
		case child.Kind() == "[":
			items.PushStr("[")
		case child.Kind() == "]":
			items.PushStr("]")
		case child.IsNamed():
			items.Extend(genNode(child, ctx))
		}
	}
	return items
}

// genPattern formats type and record patterns used by instanceof and
// switch labels. Patterns stay inline.
func genPattern(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	needSpace := false
	for _, child := range children(node) {
		switch kind := child.Kind(); {
		case kind == "(":
			items.PushStr("(")
			needSpace = false
		case kind == ")":
			items.PushStr(")")
			needSpace = false
		case kind == ",":
			items.PushStr(",")
			items.Space()
			needSpace = false
		case child.IsNamed() || isTypeNode(kind):
			if needSpace {
				items.Space()
			}
			items.Extend(genNode(child, ctx))
			needSpace = true
		}
	}
	return items
}
