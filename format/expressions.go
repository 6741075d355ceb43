package format

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/dhamidi/javafmt/printer"
)

// exprBaseCol is the projected start column of an expression: the
// effective indent plus either a pending prefix override (set by a
// wrapping construct that already moved this expression to a fresh
// line) or the source-derived prefix estimate.
func exprBaseCol(node *sitter.Node, ctx *context) int {
	if w, ok := ctx.takeOverridePrefixWidth(); ok {
		return ctx.effectiveIndentCols() + w
	}
	return ctx.effectiveIndentCols() + estimatePrefixWidth(node, ctx.source, ctx.assignmentWrapped)
}

// binaryPrecedence ranks Java binary operators; lower binds looser.
// Wrapping happens at the loosest level first, and operators of equal
// precedence at the same level break together.
func binaryPrecedence(op string) int {
	switch op {
	case "||":
		return 0
	case "&&":
		return 1
	case "|":
		return 2
	case "^":
		return 3
	case "&":
		return 4
	case "==", "!=":
		return 5
	case "<", ">", "<=", ">=":
		return 6
	case "<<", ">>", ">>>":
		return 7
	case "+", "-":
		return 8
	default: // *, /, %
		return 9
	}
}

func binaryOperator(node *sitter.Node, source []byte) string {
	if op := node.ChildByFieldName("operator"); op != nil {
		return nodeSource(op, source)
	}
	return ""
}

// flattenBinaryChain collects the operands and operators of the spine of
// same-precedence binary expressions rooted at node.
func flattenBinaryChain(node *sitter.Node, source []byte, prec int, operands *[]*sitter.Node, operators *[]string) {
	if node.Kind() == "binary_expression" {
		op := binaryOperator(node, source)
		if binaryPrecedence(op) == prec {
			left := node.ChildByFieldName("left")
			right := node.ChildByFieldName("right")
			if left != nil && right != nil {
				flattenBinaryChain(left, source, prec, operands, operators)
				*operators = append(*operators, op)
				flattenBinaryChain(right, source, prec, operands, operators)
				return
			}
		}
	}
	*operands = append(*operands, node)
}

// genBinaryExpression formats `a + b`, `x && y`. An over-long expression
// breaks before every operator of the loosest precedence level; tighter
// levels stay inline on the continuation lines.
func genBinaryExpression(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items

	flat := collapseWhitespaceLen(nodeSource(node, ctx.source))
	baseCol := exprBaseCol(node, ctx)
	// A nested operand inside a broken parent stays inline; only the
	// outermost binary expression makes the break decision. The top of
	// the parent stack is this node itself, so the enclosing kind is one
	// below it.
	isNestedOperand := len(ctx.parentStack) >= 2 &&
		ctx.parentStack[len(ctx.parentStack)-2] == "binary_expression"

	if isNestedOperand || baseCol+flat+1 <= ctx.config.LineWidth {
		for _, child := range children(node) {
			if child.IsNamed() {
				items.Extend(genNode(child, ctx))
			} else {
				items.Space()
				items.PushStr(nodeSource(child, ctx.source))
				items.Space()
			}
		}
		return items
	}

	prec := binaryPrecedence(binaryOperator(node, ctx.source))
	var operands []*sitter.Node
	var operators []string
	flattenBinaryChain(node, ctx.source, prec, &operands, &operators)

	items.Extend(genNode(operands[0], ctx))
	items.StartIndent()
	items.StartIndent()
	ctx.addContinuationIndent(2)
	for i, op := range operators {
		items.Newline()
		items.PushStr(op)
		items.Space()
		// The operand starts right after "op " on a fresh line; the
		// source-derived prefix no longer applies.
		ctx.setOverridePrefixWidth(len(op) + 1)
		items.Extend(genNode(operands[i+1], ctx))
		ctx.clearOverridePrefixWidth()
	}
	ctx.removeContinuationIndent(2)
	items.FinishIndent()
	items.FinishIndent()
	return items
}

// genUnaryExpression formats `!x`, `-y`, `i++`, `--j`.
func genUnaryExpression(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	for _, child := range children(node) {
		if child.IsNamed() {
			items.Extend(genNode(child, ctx))
		} else {
			items.Extend(genNodeText(child, ctx.source))
		}
	}
	return items
}

// chainSegment is one `.name(args)` link of a method chain.
type chainSegment struct {
	dotted   bool
	name     *sitter.Node
	typeArgs *sitter.Node
	args     *sitter.Node
}

// collectChain decomposes a maximal `recv.m1(...).m2(...)` chain into
// its receiver and ordered segments. The receiver is nil for a bare
// call like `m1(...).m2(...)`.
func collectChain(node *sitter.Node) (*sitter.Node, []chainSegment) {
	var segs []chainSegment
	cur := node
	for cur != nil && cur.Kind() == "method_invocation" {
		obj := cur.ChildByFieldName("object")
		segs = append([]chainSegment{{
			dotted:   obj != nil,
			name:     cur.ChildByFieldName("name"),
			typeArgs: cur.ChildByFieldName("type_arguments"),
			args:     cur.ChildByFieldName("arguments"),
		}}, segs...)
		cur = obj
	}
	return cur, segs
}

// chainDepth counts the dotted calls of a chain.
func chainDepth(node *sitter.Node) int {
	_, segs := collectChain(node)
	depth := 0
	for _, s := range segs {
		if s.dotted {
			depth++
		}
	}
	return depth
}

// chainRootFirstSegWidth returns the collapsed widths of the chain's
// receiver and of its first call segment.
func chainRootFirstSegWidth(node *sitter.Node, source []byte) (int, int) {
	receiver, segs := collectChain(node)
	rootWidth := 0
	if receiver != nil {
		rootWidth = collapseWhitespaceLen(nodeSource(receiver, source))
	}
	if len(segs) == 0 {
		return rootWidth, 0
	}
	seg := segs[0]
	segWidth := 0
	if seg.dotted {
		segWidth++
	}
	if seg.typeArgs != nil {
		segWidth += collapseWhitespaceLen(nodeSource(seg.typeArgs, source))
	}
	if seg.name != nil {
		segWidth += int(seg.name.EndByte() - seg.name.StartByte())
	}
	if seg.args != nil {
		segWidth += collapseWhitespaceLen(nodeSource(seg.args, source))
	}
	return rootWidth, segWidth
}

// chainFitsInlineAt reports whether the whole chain stays on one line
// when started at the given column.
func chainFitsInlineAt(node *sitter.Node, col int, ctx *context) bool {
	flat := collapseWhitespaceLen(nodeSource(node, ctx.source))
	if col+flat > ctx.config.LineWidth {
		return false
	}
	if chainDepth(node) >= 2 && col+flat > ctx.config.MethodChainThreshold {
		return false
	}
	return true
}

// rightmostChainDot returns the projected column of a chain's final dot
// when flattened from baseCol, or 0 when the node is not a chain.
func rightmostChainDot(node *sitter.Node, source []byte, baseCol int) int {
	if node.Kind() != "method_invocation" || chainDepth(node) < 1 {
		return 0
	}
	for _, child := range children(node) {
		if child.Kind() == "." {
			prefix := string(source[node.StartByte():child.StartByte()])
			return baseCol + collapseWhitespaceLen(prefix)
		}
	}
	return 0
}

// genMethodInvocation formats a call or a whole method chain. A chain
// whose projected width exceeds the chain threshold breaks before each
// dot, each call on its own line at continuation indent; the receiver
// stays on the opening line. Single calls never break at their dot —
// an overflowing argument list wraps instead.
func genMethodInvocation(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	receiver, segs := collectChain(node)

	depth := 0
	for _, s := range segs {
		if s.dotted {
			depth++
		}
	}

	flat := collapseWhitespaceLen(nodeSource(node, ctx.source))
	baseCol := exprBaseCol(node, ctx)
	breakChain := depth >= 2 && baseCol+flat > ctx.config.MethodChainThreshold

	emitSegment := func(seg chainSegment) {
		if seg.dotted {
			items.PushStr(".")
		}
		if seg.typeArgs != nil {
			items.Extend(genNode(seg.typeArgs, ctx))
		}
		if seg.name != nil {
			items.Extend(genNodeText(seg.name, ctx.source))
		}
		if seg.args != nil {
			items.Extend(genNode(seg.args, ctx))
		}
	}

	if receiver != nil {
		items.Extend(genNode(receiver, ctx))
	}

	if !breakChain {
		for _, seg := range segs {
			emitSegment(seg)
		}
		return items
	}

	start := 0
	if receiver == nil && len(segs) > 0 && !segs[0].dotted {
		// The bare first call anchors the chain on the opening line.
		emitSegment(segs[0])
		start = 1
	}

	items.StartIndent()
	items.StartIndent()
	ctx.addContinuationIndent(2)
	for _, seg := range segs[start:] {
		items.Newline()
		emitSegment(seg)
	}
	ctx.removeContinuationIndent(2)
	items.FinishIndent()
	items.FinishIndent()
	return items
}

// genFieldAccess formats `obj.field`.
func genFieldAccess(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	for _, child := range children(node) {
		switch {
		case child.Kind() == ".":
			items.PushStr(".")
		case child.Kind() == "identifier" || child.Kind() == "this" || child.Kind() == "super":
			items.Extend(genNodeText(child, ctx.source))
		case child.IsNamed():
			items.Extend(genNode(child, ctx))
		}
	}
	return items
}

// genLambdaExpression formats `x -> x + 1` or `(x, y) -> { body }`. An
// expression body stays inline when inlineLambdas is on and it fits;
// otherwise it is rendered as a brace block with `{` on the arrow line.
func genLambdaExpression(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items

	var body *sitter.Node
	sawArrow := false
	for _, child := range children(node) {
		if child.Kind() == "->" {
			sawArrow = true
			continue
		}
		if sawArrow && child.IsNamed() {
			body = child
		}
	}

	inlineBody := body != nil && body.Kind() != "block"
	if inlineBody {
		if !ctx.config.InlineLambdas {
			inlineBody = false
		} else {
			flat := collapseWhitespaceLen(nodeSource(node, ctx.source))
			if exprBaseCol(node, ctx)+flat > ctx.config.LineWidth {
				inlineBody = false
			}
		}
	}

	emittedArrow := false
	for _, child := range children(node) {
		if child.Kind() == "->" {
			items.Space()
			items.PushStr("->")
			items.Space()
			emittedArrow = true
			continue
		}
		if !emittedArrow {
			// Parameter position.
			switch child.Kind() {
			case "identifier", "inferred_parameters":
				items.Extend(genNode(child, ctx))
			case "formal_parameters":
				items.Extend(genFormalParameters(child, ctx))
			}
			continue
		}
		if !child.IsNamed() {
			continue
		}
		// Body position.
		if child.Kind() == "block" || inlineBody {
			items.Extend(genNode(child, ctx))
			continue
		}
		items.PushStr("{")
		items.StartIndent()
		items.Newline()
		ctx.indent()
		items.Extend(genNode(child, ctx))
		ctx.dedent()
		items.PushStr(";")
		items.FinishIndent()
		items.Newline()
		items.PushStr("}")
	}
	return items
}

// genTernaryExpression formats `cond ? a : b`. When broken, `?` and `:`
// begin their lines at continuation indent.
func genTernaryExpression(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items

	flat := collapseWhitespaceLen(nodeSource(node, ctx.source))
	baseCol := exprBaseCol(node, ctx)
	wrap := baseCol+flat+1 > ctx.config.LineWidth

	if !wrap {
		for _, child := range children(node) {
			switch {
			case child.Kind() == "?":
				items.Space()
				items.PushStr("?")
				items.Space()
			case child.Kind() == ":":
				items.Space()
				items.PushStr(":")
				items.Space()
			case child.IsNamed():
				items.Extend(genNode(child, ctx))
			}
		}
		return items
	}

	condition := node.ChildByFieldName("condition")
	consequence := node.ChildByFieldName("consequence")
	alternative := node.ChildByFieldName("alternative")
	if condition == nil || consequence == nil || alternative == nil {
		return genNodeText(node, ctx.source)
	}

	items.Extend(genNode(condition, ctx))
	items.StartIndent()
	items.StartIndent()
	ctx.addContinuationIndent(2)
	items.Newline()
	items.PushStr("?")
	items.Space()
	ctx.setOverridePrefixWidth(2)
	items.Extend(genNode(consequence, ctx))
	ctx.clearOverridePrefixWidth()
	items.Newline()
	items.PushStr(":")
	items.Space()
	ctx.setOverridePrefixWidth(2)
	items.Extend(genNode(alternative, ctx))
	ctx.clearOverridePrefixWidth()
	ctx.removeContinuationIndent(2)
	items.FinishIndent()
	items.FinishIndent()
	return items
}

// genObjectCreationExpression formats `new Foo(args)` and anonymous
// classes `new Foo(args) { ... }`.
func genObjectCreationExpression(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	for _, child := range children(node) {
		switch child.Kind() {
		case "new":
			items.PushStr("new")
			items.Space()
		case "argument_list":
			items.Extend(genArgumentList(child, ctx))
		case "class_body":
			items.Space()
			items.Extend(genClassBody(child, ctx))
		case ".":
			items.PushStr(".")
		default:
			if child.IsNamed() {
				items.Extend(genNode(child, ctx))
			}
		}
	}
	return items
}

// genArrayCreationExpression formats `new int[n]`, `new int[] {1, 2}`.
func genArrayCreationExpression(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	for _, child := range children(node) {
		switch child.Kind() {
		case "new":
			items.PushStr("new")
			items.Space()
		case "dimensions_expr":
			items.Extend(genNode(child, ctx))
		case "dimensions":
			items.Extend(genNodeText(child, ctx.source))
		case "array_initializer":
			items.Extend(genArrayInitializer(child, ctx))
		default:
			if child.IsNamed() {
				items.Extend(genNode(child, ctx))
			}
		}
	}
	return items
}

// genArrayInitializer formats `{1, 2, 3}`, wrapping like an argument
// list when the initializer does not fit on the line.
func genArrayInitializer(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	all := children(node)

	var elems []*sitter.Node
	for _, c := range all {
		if c.IsNamed() && !c.IsExtra() {
			elems = append(elems, c)
		}
	}

	flat := collapseWhitespaceLen(nodeSource(node, ctx.source))
	baseCol := exprBaseCol(node, ctx)
	wrap := len(elems) > 1 && baseCol+flat > ctx.config.LineWidth

	items.PushStr("{")
	if wrap {
		items.StartIndent()
		ctx.addContinuationIndent(1)
		for i, elem := range elems {
			items.Newline()
			items.Extend(genNode(elem, ctx))
			if i < len(elems)-1 {
				items.PushStr(",")
			}
		}
		ctx.removeContinuationIndent(1)
		items.FinishIndent()
		items.Newline()
		items.PushStr("}")
		return items
	}

	first := true
	for _, elem := range elems {
		if !first {
			items.PushStr(",")
			items.Space()
		}
		items.Extend(genNode(elem, ctx))
		first = false
	}
	items.PushStr("}")
	return items
}

// genArrayAccess formats `arr[i]`.
func genArrayAccess(node *sitter.Node, ctx *context) printer.Items {
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

// genCastExpression formats `(Type) expr` and intersection casts
// `(A & B) expr`. Casts stay inline.
func genCastExpression(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	for _, child := range children(node) {
		switch child.Kind() {
		case "(":
			items.PushStr("(")
		case ")":
			items.PushStr(")")
			items.Space()
		case "&":
			items.Space()
			items.PushStr("&")
			items.Space()
		default:
			if child.IsNamed() {
				items.Extend(genNode(child, ctx))
			}
		}
	}
	return items
}

// genInstanceofExpression formats `expr instanceof Type` and pattern
// forms. Always inline.
func genInstanceofExpression(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	for _, child := range children(node) {
		switch {
		case child.Kind() == "instanceof":
			items.Space()
			items.PushStr("instanceof")
			items.Space()
		case child.Kind() == "final":
			items.PushStr("final")
			items.Space()
		case child.Kind() == "identifier":
			// Pattern variable after the type.
			items.Space()
			items.Extend(genNodeText(child, ctx.source))
		case child.IsNamed():
			items.Extend(genNode(child, ctx))
		}
	}
	return items
}

// genParenthesizedExpression formats `(expr)`.
func genParenthesizedExpression(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	for _, child := range children(node) {
		switch {
		case child.Kind() == "(":
			items.PushStr("(")
		case child.Kind() == ")":
			items.PushStr(")")
		case child.IsNamed():
			items.Extend(genNode(child, ctx))
		}
	}
	return items
}

// genMethodReference formats `Class::method`, `this::run`, `int[]::new`.
// Method references never break internally.
func genMethodReference(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	for _, child := range children(node) {
		switch {
		case child.Kind() == "::":
			items.PushStr("::")
		case child.Kind() == "new":
			items.PushStr("new")
		case child.Kind() == "identifier":
			items.Extend(genNodeText(child, ctx.source))
		case child.IsNamed():
			items.Extend(genNode(child, ctx))
		}
	}
	return items
}

// genAssignmentExpression formats `x = y`, `x += y`.
func genAssignmentExpression(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	for _, child := range children(node) {
		if child.IsNamed() {
			items.Extend(genNode(child, ctx))
		} else {
			items.Space()
			items.PushStr(nodeSource(child, ctx.source))
			items.Space()
		}
	}
	return items
}

// genInferredParameters formats `(x, y)` in lambda headers.
func genInferredParameters(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	for _, child := range children(node) {
		switch child.Kind() {
		case "(":
			items.PushStr("(")
		case ")":
			items.PushStr(")")
		case ",":
			items.PushStr(",")
			items.Space()
		case "identifier":
			items.Extend(genNodeText(child, ctx.source))
		}
	}
	return items
}

// genExplicitConstructorInvocation formats `this(args);` / `super(args);`.
func genExplicitConstructorInvocation(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	for _, child := range children(node) {
		switch {
		case child.Kind() == "this":
			items.PushStr("this")
		case child.Kind() == "super":
			items.PushStr("super")
		case child.Kind() == "argument_list":
			items.Extend(genArgumentList(child, ctx))
		case child.Kind() == ";":
			items.PushStr(";")
		case child.Kind() == ".":
			items.PushStr(".")
		case child.IsNamed():
			items.Extend(genNode(child, ctx))
		}
	}
	return items
}
