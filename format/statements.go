package format

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/dhamidi/javafmt/printer"
)

// genBlock formats `{ statement1; statement2; }`. Empty blocks collapse
// to `{}`. Source blank lines between statements are preserved (clamped
// to one); method and constructor bodies drop blanks before `}`.
func genBlock(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	items.PushStr("{")

	all := children(node)
	var stmts []*sitter.Node
	for _, c := range all {
		if c.Kind() != "{" && c.Kind() != "}" && (c.IsNamed() || c.IsExtra()) {
			stmts = append(stmts, c)
		}
	}
	if len(stmts) == 0 {
		items.PushStr("}")
		return items
	}

	items.StartIndent()
	ctx.indent()

	prevWasLineComment := false
	prevEndRow := -1
	if open := firstChildOfKind(node, "{"); open != nil {
		prevEndRow = int(open.EndPosition().Row)
	}

	for _, stmt := range stmts {
		if stmt.IsExtra() {
			if isTrailingComment(stmt) {
				items.Space()
				items.Extend(genNode(stmt, ctx))
				prevWasLineComment = stmt.Kind() == "line_comment"
				prevEndRow = int(stmt.EndPosition().Row)
				continue
			}
			if !prevWasLineComment {
				items.Newline()
			}
			if prevEndRow >= 0 && int(stmt.StartPosition().Row) > prevEndRow+1 {
				items.Newline()
			}
			items.Extend(genNode(stmt, ctx))
			prevWasLineComment = stmt.Kind() == "line_comment"
			prevEndRow = int(stmt.EndPosition().Row)
			continue
		}

		if !prevWasLineComment {
			items.Newline()
		}
		if prevEndRow >= 0 && int(stmt.StartPosition().Row) > prevEndRow+1 {
			items.Newline()
		}
		items.Extend(genNode(stmt, ctx))
		prevWasLineComment = false
		prevEndRow = int(stmt.EndPosition().Row)
	}

	items.FinishIndent()
	ctx.dedent()
	if !prevWasLineComment {
		items.Newline()
	}
	// Blank lines before `}` survive in plain blocks but not in method
	// or constructor bodies.
	parentKind := ""
	if p := node.Parent(); p != nil {
		parentKind = p.Kind()
	}
	stripTrailingBlank := parentKind == "method_declaration" ||
		parentKind == "constructor_declaration" || parentKind == "static_initializer"
	if !stripTrailingBlank && prevEndRow >= 0 {
		for i := len(all) - 1; i >= 0; i-- {
			if all[i].Kind() == "}" {
				if int(all[i].StartPosition().Row) > prevEndRow+1 {
					items.Newline()
				}
				break
			}
		}
	}
	items.PushStr("}")
	return items
}

// genLocalVariableDeclaration formats `int x = 5;`.
func genLocalVariableDeclaration(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	needSpace := false
	typeArgsWrapped := false

	for _, child := range children(node) {
		switch kind := child.Kind(); {
		case kind == "modifiers":
			items.Extend(genModifiersInline(child, ctx))
			needSpace = true
		case isTypeNode(kind) || kind == "var":
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
				items.Extend(genNode(child, ctx))
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
				items.Extend(genNode(child, ctx))
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

// genLocalClassDeclaration unwraps a class declared inside a block.
func genLocalClassDeclaration(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	for _, child := range children(node) {
		if child.IsNamed() {
			items.Extend(genNode(child, ctx))
		}
	}
	return items
}

// genExpressionStatement formats `expr;`.
func genExpressionStatement(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	for _, child := range children(node) {
		switch {
		case child.Kind() == ";":
			items.PushStr(";")
		case child.IsNamed():
			items.Extend(genNode(child, ctx))
		}
	}
	return items
}

// genIfStatement formats if/else-if/else chains. `else` joins the
// preceding `}` on one line; after a brace-less consequence it moves to
// its own line.
func genIfStatement(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	prevWasBlock := false

	for _, child := range children(node) {
		switch child.Kind() {
		case "if":
			items.PushStr("if")
			items.Space()
		case "parenthesized_expression", "condition":
			items.Extend(genNode(child, ctx))
			items.Space()
		case "block":
			items.Extend(genBlock(child, ctx))
			prevWasBlock = true
		case "else":
			if prevWasBlock {
				items.Space()
			} else {
				items.Newline()
			}
			items.PushStr("else")
			items.Space()
			prevWasBlock = false
		case "if_statement":
			items.Extend(genIfStatement(child, ctx))
		default:
			if child.IsNamed() {
				items.Extend(genNode(child, ctx))
				prevWasBlock = false
			}
		}
	}
	return items
}

// genForStatement formats `for (init; cond; update) { }`.
func genForStatement(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	items.PushStr("for")
	items.Space()
	items.PushStr("(")

	if init := node.ChildByFieldName("init"); init != nil {
		items.Extend(genNode(init, ctx))
	} else {
		items.PushStr(";")
	}
	// A local_variable_declaration init carries its own ';'.
	items.Space()

	if condition := node.ChildByFieldName("condition"); condition != nil {
		items.Extend(genNode(condition, ctx))
	}
	items.PushStr(";")
	items.Space()

	if update := node.ChildByFieldName("update"); update != nil {
		items.Extend(genNode(update, ctx))
	}
	items.PushStr(")")

	if body := node.ChildByFieldName("body"); body != nil {
		if body.Kind() == ";" {
			items.PushStr(";")
		} else {
			items.Space()
			items.Extend(genNode(body, ctx))
		}
	}
	return items
}

// genEnhancedForStatement formats `for (Type item : collection) { }`.
func genEnhancedForStatement(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	items.PushStr("for")
	items.Space()
	items.PushStr("(")

	needSpace := false
	for _, child := range children(node) {
		switch kind := child.Kind(); {
		case kind == "for" || kind == "(" || kind == ")":
		case kind == "modifiers":
			items.Extend(genModifiersInline(child, ctx))
			needSpace = true
		case isTypeNode(kind) || kind == "var":
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
			needSpace = true
		case kind == ":":
			items.Space()
			items.PushStr(":")
			items.Space()
			needSpace = false
		case kind == "block":
			items.PushStr(")")
			items.Space()
			items.Extend(genBlock(child, ctx))
			return items
		case child.IsNamed():
			if needSpace {
				items.Space()
			}
			items.Extend(genNode(child, ctx))
			needSpace = true
		}
	}
	items.PushStr(")")
	return items
}

// genWhileStatement formats `while (cond) { }`.
func genWhileStatement(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	for _, child := range children(node) {
		switch {
		case child.Kind() == "while":
			items.PushStr("while")
			items.Space()
		case child.Kind() == "parenthesized_expression" || child.Kind() == "condition":
			items.Extend(genNode(child, ctx))
			items.Space()
		case child.Kind() == "block":
			items.Extend(genBlock(child, ctx))
		case child.Kind() == ";":
			items.PushStr(";")
		case child.IsNamed():
			items.Extend(genNode(child, ctx))
		}
	}
	return items
}

// genDoStatement formats `do { } while (cond);`.
func genDoStatement(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	for _, child := range children(node) {
		switch child.Kind() {
		case "do":
			items.PushStr("do")
			items.Space()
		case "block":
			items.Extend(genBlock(child, ctx))
		case "while":
			items.Space()
			items.PushStr("while")
			items.Space()
		case "parenthesized_expression", "condition":
			items.Extend(genNode(child, ctx))
		case ";":
			items.PushStr(";")
		}
	}
	return items
}

// genSwitchExpression formats a switch statement or expression.
func genSwitchExpression(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	for _, child := range children(node) {
		switch child.Kind() {
		case "switch":
			items.PushStr("switch")
			items.Space()
		case "parenthesized_expression", "condition":
			items.Extend(genNode(child, ctx))
			items.Space()
		case "switch_block":
			items.Extend(genSwitchBlock(child, ctx))
		}
	}
	return items
}

// genSwitchBlock formats `{ case X: ... }`, preserving source blank
// lines between cases.
func genSwitchBlock(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	items.PushStr("{")

	all := children(node)
	var cases []*sitter.Node
	for _, c := range all {
		if c.IsNamed() {
			cases = append(cases, c)
		}
	}
	if len(cases) == 0 {
		items.PushStr("}")
		return items
	}

	items.StartIndent()
	ctx.indent()
	prevEndRow := -1
	if open := firstChildOfKind(node, "{"); open != nil {
		prevEndRow = int(open.EndPosition().Row)
	}
	for _, c := range cases {
		items.Newline()
		if prevEndRow >= 0 && int(c.StartPosition().Row) > prevEndRow+1 {
			items.Newline()
		}
		items.Extend(genSwitchCase(c, ctx))
		prevEndRow = int(c.EndPosition().Row)
	}
	items.FinishIndent()
	ctx.dedent()
	items.Newline()
	items.PushStr("}")
	return items
}

// genSwitchCase formats one traditional case group or one arrow rule.
// Arrow rules keep `{` on the arrow line; traditional groups indent
// their statements one level under the label.
func genSwitchCase(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	all := children(node)

	switch node.Kind() {
	case "switch_block_statement_group":
		labelDone := false
		inBody := false

		var bodyStmts []*sitter.Node
		seenColon := false
		for _, c := range all {
			if c.Kind() == ":" {
				seenColon = true
				continue
			}
			if seenColon && c.IsNamed() {
				bodyStmts = append(bodyStmts, c)
			}
		}
		isSingleBlock := len(bodyStmts) == 1 && bodyStmts[0].Kind() == "block"

		prevStmtEndRow := -1
		for _, child := range all {
			switch {
			case child.Kind() == "switch_label":
				if labelDone {
					items.Newline()
				}
				items.Extend(genSwitchLabel(child, ctx))
				labelDone = true
			case child.Kind() == ":":
				items.PushStr(":")
				if isSingleBlock {
					items.Space()
				}
				prevStmtEndRow = int(child.EndPosition().Row)
			case child.IsNamed():
				if !isSingleBlock {
					if !inBody {
						items.StartIndent()
						ctx.indent()
						inBody = true
					}
					items.Newline()
					if prevStmtEndRow >= 0 && int(child.StartPosition().Row) > prevStmtEndRow+1 {
						items.Newline()
					}
				}
				items.Extend(genNode(child, ctx))
				prevStmtEndRow = int(child.EndPosition().Row)
			}
		}
		if inBody {
			items.FinishIndent()
			ctx.dedent()
		}

	case "switch_rule":
		for _, child := range all {
			switch {
			case child.Kind() == "switch_label":
				items.Extend(genSwitchLabel(child, ctx))
			case child.Kind() == "->":
				items.Space()
				items.PushStr("->")
				items.Space()
			case child.Kind() == ";":
				items.PushStr(";")
			case child.IsNamed():
				items.Extend(genNode(child, ctx))
			}
		}

	default:
		items.Extend(genNodeText(node, ctx.source))
	}
	return items
}

// genSwitchLabel formats `case X:` / `case X, Y` / `default`.
func genSwitchLabel(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	for _, child := range children(node) {
		switch {
		case child.Kind() == "case":
			items.PushStr("case")
			items.Space()
		case child.Kind() == "default":
			items.PushStr("default")
		case child.Kind() == ":":
			items.PushStr(":")
		case child.Kind() == ",":
			items.PushStr(",")
			items.Space()
		case child.Kind() == "when":
			items.Space()
			items.PushStr("when")
			items.Space()
		case child.IsNamed():
			items.Extend(genNode(child, ctx))
		}
	}
	return items
}

// genTryStatement formats `try { } catch (Exception e) { } finally { }`.
// catch and finally join the preceding `}` on one line.
func genTryStatement(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	for _, child := range children(node) {
		switch child.Kind() {
		case "try":
			items.PushStr("try")
			items.Space()
		case "block":
			items.Extend(genBlock(child, ctx))
		case "catch_clause":
			items.Space()
			items.Extend(genCatchClause(child, ctx))
		case "finally_clause":
			items.Space()
			items.Extend(genFinallyClause(child, ctx))
		}
	}
	return items
}

// genTryWithResourcesStatement formats try-with-resources; the resource
// list wraps like an argument list.
func genTryWithResourcesStatement(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	for _, child := range children(node) {
		switch child.Kind() {
		case "try":
			items.PushStr("try")
			items.Space()
		case "resource_specification":
			items.Extend(genResourceSpecification(child, ctx))
			items.Space()
		case "block":
			items.Extend(genBlock(child, ctx))
		case "catch_clause":
			items.Space()
			items.Extend(genCatchClause(child, ctx))
		case "finally_clause":
			items.Space()
			items.Extend(genFinallyClause(child, ctx))
		}
	}
	return items
}

// estimateCatchClauseWidth is the flat width of `} catch (...) {`.
func estimateCatchClauseWidth(node *sitter.Node, source []byte) int {
	width := len("} catch (")
	for _, child := range children(node) {
		if child.Kind() == "catch_formal_parameter" {
			width += collapseWhitespaceLen(nodeSource(child, source))
		}
	}
	return width + len(") {")
}

// genCatchClause formats `catch (Exception e) { }`, wrapping
// multi-exception unions when the clause does not fit.
func genCatchClause(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	shouldWrap := ctx.indentCols()+estimateCatchClauseWidth(node, ctx.source) > ctx.config.LineWidth

	for _, child := range children(node) {
		switch child.Kind() {
		case "catch":
			items.PushStr("catch")
			items.Space()
		case "catch_formal_parameter":
			items.PushStr("(")
			items.Extend(genCatchFormalParameter(child, ctx, shouldWrap))
			items.PushStr(")")
			items.Space()
		case "block":
			items.Extend(genBlock(child, ctx))
		}
	}
	return items
}

// genCatchFormalParameter formats `Exception | RuntimeException e`.
func genCatchFormalParameter(node *sitter.Node, ctx *context, shouldWrap bool) printer.Items {
	var items printer.Items
	needSpace := false
	for _, child := range children(node) {
		switch child.Kind() {
		case "modifiers":
			items.Extend(genModifiersInline(child, ctx))
			needSpace = true
		case "catch_type":
			if needSpace {
				items.Space()
			}
			items.Extend(genCatchType(child, ctx, shouldWrap))
			needSpace = true
		case "identifier":
			if needSpace {
				items.Space()
			}
			items.Extend(genNodeText(child, ctx.source))
		}
	}
	return items
}

// genCatchType formats the union `A | B | C`, wrapping before each `|`
// at continuation indent when asked.
func genCatchType(node *sitter.Node, ctx *context, shouldWrap bool) printer.Items {
	var items printer.Items
	if shouldWrap {
		items.StartIndent()
		items.StartIndent()
		for _, child := range children(node) {
			switch {
			case child.Kind() == "|":
				items.Newline()
				items.PushStr("|")
				items.Space()
			case child.IsNamed():
				items.Extend(genNode(child, ctx))
			}
		}
		items.FinishIndent()
		items.FinishIndent()
		return items
	}
	for _, child := range children(node) {
		switch {
		case child.Kind() == "|":
			items.Space()
			items.PushStr("|")
			items.Space()
		case child.IsNamed():
			items.Extend(genNode(child, ctx))
		}
	}
	return items
}

// genFinallyClause formats `finally { }`.
func genFinallyClause(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	for _, child := range children(node) {
		switch child.Kind() {
		case "finally":
			items.PushStr("finally")
			items.Space()
		case "block":
			items.Extend(genBlock(child, ctx))
		}
	}
	return items
}

// genResourceSpecification formats `(Resource r = open(); Other o = ...)`
// — inline when fitting, one resource per line otherwise.
func genResourceSpecification(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	all := children(node)

	var resources []*sitter.Node
	for _, c := range all {
		if c.Kind() == "resource" {
			resources = append(resources, c)
		}
	}

	flat := collapseWhitespaceLen(nodeSource(node, ctx.source))
	prefix := len("try ")
	wrap := len(resources) > 1 &&
		ctx.indentCols()+prefix+flat+2 > ctx.config.LineWidth

	items.PushStr("(")
	if wrap {
		items.StartIndent()
		items.StartIndent()
		ctx.addContinuationIndent(2)
		for i, res := range resources {
			items.Newline()
			items.Extend(genNode(res, ctx))
			if i < len(resources)-1 {
				items.PushStr(";")
			}
		}
		ctx.removeContinuationIndent(2)
		items.PushStr(")")
		items.FinishIndent()
		items.FinishIndent()
		return items
	}

	for i, res := range resources {
		items.Extend(genNode(res, ctx))
		if i < len(resources)-1 {
			items.PushStr(";")
			items.Space()
		}
	}
	items.PushStr(")")
	return items
}

// genReturnStatement formats `return expr;`.
func genReturnStatement(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	items.PushStr("return")
	for _, child := range children(node) {
		switch {
		case child.Kind() == "return":
		case child.Kind() == ";":
			items.PushStr(";")
		case child.IsNamed():
			items.Space()
			items.Extend(genNode(child, ctx))
		}
	}
	return items
}

// genThrowStatement formats `throw expr;`.
func genThrowStatement(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	items.PushStr("throw")
	for _, child := range children(node) {
		switch {
		case child.Kind() == "throw":
		case child.Kind() == ";":
			items.PushStr(";")
		case child.IsNamed():
			items.Space()
			items.Extend(genNode(child, ctx))
		}
	}
	return items
}

// genBreakStatement formats `break;` or `break label;`.
func genBreakStatement(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	items.PushStr("break")
	for _, child := range children(node) {
		switch child.Kind() {
		case ";":
			items.PushStr(";")
		case "identifier":
			items.Space()
			items.Extend(genNodeText(child, ctx.source))
		}
	}
	return items
}

// genContinueStatement formats `continue;` or `continue label;`.
func genContinueStatement(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	items.PushStr("continue")
	for _, child := range children(node) {
		switch child.Kind() {
		case ";":
			items.PushStr(";")
		case "identifier":
			items.Space()
			items.Extend(genNodeText(child, ctx.source))
		}
	}
	return items
}

// genYieldStatement formats `yield expr;`.
func genYieldStatement(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	items.PushStr("yield")
	for _, child := range children(node) {
		switch {
		case child.Kind() == "yield":
		case child.Kind() == ";":
			items.PushStr(";")
		case child.IsNamed():
			items.Space()
			items.Extend(genNode(child, ctx))
		}
	}
	return items
}

// genSynchronizedStatement formats `synchronized (obj) { }`.
func genSynchronizedStatement(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	for _, child := range children(node) {
		switch child.Kind() {
		case "synchronized":
			items.PushStr("synchronized")
			items.Space()
		case "parenthesized_expression", "condition":
			items.Extend(genNode(child, ctx))
			items.Space()
		case "block":
			items.Extend(genBlock(child, ctx))
		}
	}
	return items
}

// genAssertStatement formats `assert cond;` or `assert cond : message;`.
func genAssertStatement(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	items.PushStr("assert")
	for _, child := range children(node) {
		switch {
		case child.Kind() == "assert":
		case child.Kind() == ":":
			items.Space()
			items.PushStr(":")
		case child.Kind() == ";":
			items.PushStr(";")
		case child.IsNamed():
			items.Space()
			items.Extend(genNode(child, ctx))
		}
	}
	return items
}

// genLabeledStatement formats `label: statement`. The label does not add
// indentation to the statement.
func genLabeledStatement(node *sitter.Node, ctx *context) printer.Items {
	var items printer.Items
	for _, child := range children(node) {
		switch {
		case child.Kind() == "identifier":
			items.Extend(genNodeText(child, ctx.source))
		case child.Kind() == ":":
			items.PushStr(":")
			items.Newline()
		case child.IsNamed():
			items.Extend(genNode(child, ctx))
		}
	}
	return items
}
