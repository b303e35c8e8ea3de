package verify

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/broady/expressgen/gen/ast"
)

// A shape lists the operator trees of one top-level item in source order.
// Each tree is written without parentheses, e.g. "(* (+ id id) id)", so a
// print that regroups operands yields a different shape. Operands that are
// not operators become a class label and are searched for further trees
// after their parent tree is written.

// nodeShape returns the shape of a parsed top-level node.
func nodeShape(n *sitter.Node) []string {
	var roots []string
	collectNode(n, &roots)
	return roots
}

func collectNode(n *sitter.Node, roots *[]string) {
	if n == nil {
		return
	}
	if !nodeOperator(n) {
		for i := 0; i < int(n.NamedChildCount()); i++ {
			collectNode(n.NamedChild(i), roots)
		}
		return
	}
	var pending []*sitter.Node
	*roots = append(*roots, nodeTree(n, &pending))
	for _, p := range pending {
		collectNode(p, roots)
	}
}

func nodeOperator(n *sitter.Node) bool {
	switch n.Type() {
	case "binary_expression", "augmented_assignment_expression", "assignment_expression",
		"unary_expression", "ternary_expression", "await_expression":
		return true
	}
	return false
}

func nodeTree(n *sitter.Node, pending *[]*sitter.Node) string {
	if n == nil {
		return "_"
	}
	sub := func(field string) string { return nodeTree(n.ChildByFieldName(field), pending) }
	switch n.Type() {
	case "parenthesized_expression":
		if n.NamedChildCount() > 0 {
			return nodeTree(n.NamedChild(0), pending)
		}
	case "binary_expression", "augmented_assignment_expression":
		return "(" + nodeOp(n) + " " + sub("left") + " " + sub("right") + ")"
	case "assignment_expression":
		return "(= " + sub("left") + " " + sub("right") + ")"
	case "unary_expression":
		return "(" + nodeOp(n) + " " + sub("argument") + ")"
	case "ternary_expression":
		return "(? " + sub("condition") + " " + sub("consequence") + " " + sub("alternative") + ")"
	case "await_expression":
		var arg *sitter.Node
		if n.NamedChildCount() > 0 {
			arg = n.NamedChild(0)
		}
		return "(await " + nodeTree(arg, pending) + ")"
	}
	*pending = append(*pending, n)
	return nodeLabel(n.Type())
}

func nodeOp(n *sitter.Node) string {
	if op := n.ChildByFieldName("operator"); op != nil {
		return op.Type()
	}
	return "?"
}

func nodeLabel(typ string) string {
	switch typ {
	case "identifier", "this", "super", "undefined":
		return "id"
	case "number", "string", "true", "false", "null":
		return "lit"
	case "template_string":
		return "tpl"
	case "call_expression", "new_expression":
		return "call"
	case "member_expression", "subscript_expression":
		return "member"
	case "arrow_function", "function_expression", "function":
		return "fn"
	case "object":
		return "obj"
	case "array":
		return "arr"
	}
	return "_"
}

// stmtShape returns the shape of s as the printer writes it.
func stmtShape(s ast.Stmt) []string {
	var w shapeWalker
	w.stmt(s)
	return w.roots
}

type shapeWalker struct {
	roots []string
}

func (w *shapeWalker) stmts(list []ast.Stmt) {
	for _, s := range list {
		w.stmt(s)
	}
}

func (w *shapeWalker) stmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.ExprStmt:
		w.expr(s.X)
	case *ast.VarDecl:
		for _, d := range s.Decls {
			w.expr(d.Init)
		}
	case *ast.If:
		w.expr(s.Test)
		w.stmts(s.Then)
		w.stmts(s.Else)
	case *ast.Switch:
		w.expr(s.Discriminant)
		for _, c := range s.Cases {
			w.expr(c.Test)
			w.stmts(c.Body)
		}
	case *ast.Try:
		w.stmts(s.Block)
		w.stmts(s.Handler)
		w.stmts(s.Finally)
	case *ast.Throw:
		w.expr(s.Argument)
	case *ast.Return:
		w.expr(s.Argument)
	case *ast.ExportDefault:
		w.expr(s.Value)
	case *ast.ClassDecl:
		w.expr(s.Extends)
		for _, m := range s.Members {
			switch m := m.(type) {
			case *ast.ClassProperty:
				w.expr(m.Value)
			case *ast.ClassMethod:
				w.params(m.Params)
				w.stmts(m.Body)
			}
		}
	case *ast.FuncDecl:
		w.params(s.Params)
		w.stmts(s.Body)
	}
}

func (w *shapeWalker) params(ps []ast.Param) {
	for _, p := range ps {
		w.expr(p.Default)
	}
}

// expr collects the operator trees in e and its operands.
func (w *shapeWalker) expr(e ast.Expr) {
	if e == nil {
		return
	}
	if exprOperator(e) {
		var pending []ast.Expr
		w.roots = append(w.roots, exprTree(e, &pending))
		for _, p := range pending {
			w.expr(p)
		}
		return
	}
	switch e := e.(type) {
	case *ast.Member:
		w.expr(e.Object)
	case *ast.Call:
		w.expr(e.Callee)
		w.exprs(e.Args)
	case *ast.New:
		w.expr(e.Callee)
		w.exprs(e.Args)
	case *ast.Object:
		for _, p := range e.Props {
			if !p.Shorthand {
				w.expr(p.Value)
			}
		}
	case *ast.Array:
		w.exprs(e.Elems)
	case *ast.Template:
		w.exprs(e.Exprs)
	case *ast.Function:
		w.params(e.Params)
		if e.ExprBody != nil {
			w.expr(e.ExprBody)
		} else {
			w.stmts(e.Body)
		}
	}
}

func (w *shapeWalker) exprs(list []ast.Expr) {
	for _, e := range list {
		w.expr(e)
	}
}

func exprOperator(e ast.Expr) bool {
	switch e := e.(type) {
	case *ast.Binary, *ast.Logical, *ast.Assign, *ast.Unary, *ast.Conditional, *ast.Await:
		return true
	case *ast.NumberLit:
		// The parser reads a leading minus as a unary operator.
		return strings.HasPrefix(e.Raw, "-")
	}
	return false
}

func exprTree(e ast.Expr, pending *[]ast.Expr) string {
	switch e := e.(type) {
	case *ast.Binary:
		return "(" + e.Op + " " + exprTree(e.Left, pending) + " " + exprTree(e.Right, pending) + ")"
	case *ast.Logical:
		return "(" + e.Op + " " + exprTree(e.Left, pending) + " " + exprTree(e.Right, pending) + ")"
	case *ast.Assign:
		return "(= " + exprTree(e.Left, pending) + " " + exprTree(e.Right, pending) + ")"
	case *ast.Unary:
		return "(" + e.Op + " " + exprTree(e.Operand, pending) + ")"
	case *ast.Conditional:
		return "(? " + exprTree(e.Test, pending) + " " + exprTree(e.Consequent, pending) + " " + exprTree(e.Alternate, pending) + ")"
	case *ast.Await:
		return "(await " + exprTree(e.Argument, pending) + ")"
	case *ast.NumberLit:
		if strings.HasPrefix(e.Raw, "-") {
			return "(- lit)"
		}
	}
	if e != nil {
		*pending = append(*pending, e)
	}
	return exprLabel(e)
}

func exprLabel(e ast.Expr) string {
	switch e.(type) {
	case *ast.Ident, *ast.This:
		return "id"
	case *ast.StringLit, *ast.NumberLit, *ast.BoolLit, *ast.NullLit:
		return "lit"
	case *ast.Template:
		return "tpl"
	case *ast.Call, *ast.New:
		return "call"
	case *ast.Member:
		return "member"
	case *ast.Function:
		return "fn"
	case *ast.Object:
		return "obj"
	case *ast.Array:
		return "arr"
	}
	return "_"
}
