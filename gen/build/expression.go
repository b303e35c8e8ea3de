package build

import (
	"fmt"

	"github.com/broady/expressgen/gen/ast"
	"github.com/broady/expressgen/gen/ir"
)

// Expression lowers a statement-position IR node to a statement.
func Expression(expr ir.Expression) (ast.Stmt, error) {
	switch e := expr.(type) {
	case *ir.Assignment:
		kind := e.Kind().String()
		return assignment(kind, e.Target, e.Value)

	case *ir.MethodCallStatement:
		return methodCall(e.Kind().String(), e.Target, e.Method, e.Arguments)

	case *ir.FunctionCallStatement:
		kind := e.Kind().String()
		if e.Callee == "" {
			return nil, errMissing(kind, "target.object")
		}
		args, err := arguments(kind, e.Arguments)
		if err != nil {
			return nil, err
		}
		return &ast.ExprStmt{X: &ast.Call{Callee: path(e.Callee), Args: args}}, nil

	case *ir.Conditional:
		kind := e.Kind().String()
		if e.Test == nil {
			return nil, errMissing(kind, "arguments")
		}
		if e.Then == nil {
			return nil, errMissing(kind, "tryCatchBlock.tryBlock")
		}
		test, err := nested(kind, "arguments[0]", e.Test)
		if err != nil {
			return nil, err
		}
		then, err := block(kind, "tryCatchBlock.tryBlock", e.Then)
		if err != nil {
			return nil, err
		}
		return &ast.If{Test: test, Then: then}, nil

	case *ir.VariableDeclaration:
		return variableDeclaration(e)

	case *ir.SwitchStatement:
		return switchStatement(e)

	case *ir.SwitchCase:
		return nil, errInvalid(e.Kind().String(), "", "switch_case is only valid inside a switch_statement")

	case *ir.Await:
		kind := e.Kind().String()
		if e.Argument == nil {
			return nil, errMissing(kind, "arguments")
		}
		x, err := nested(kind, "arguments[0]", e.Argument)
		if err != nil {
			return nil, err
		}
		return &ast.ExprStmt{X: &ast.Await{Argument: x}}, nil

	case *ir.TryCatch:
		return tryCatch(e)

	case *ir.Throw:
		if e.Argument == nil {
			return &ast.Throw{Argument: &ast.Ident{Name: "undefined"}}, nil
		}
		x, err := nested(e.Kind().String(), "arguments[0]", e.Argument)
		if err != nil {
			return nil, err
		}
		return &ast.Throw{Argument: x}, nil

	case *ir.Return:
		if e.Argument == nil {
			return &ast.Return{}, nil
		}
		x, err := nested(e.Kind().String(), "arguments[0]", e.Argument)
		if err != nil {
			return nil, err
		}
		return &ast.Return{Argument: x}, nil

	case *ir.ExpressionStatement:
		kind := e.Kind().String()
		if e.Value == nil {
			return nil, errMissing(kind, "arguments")
		}
		x, err := nested(kind, "arguments[0]", e.Value)
		if err != nil {
			return nil, err
		}
		return &ast.ExprStmt{X: x}, nil

	case *ir.Legacy:
		if e.Method == "=" {
			var value ir.Argument
			if len(e.Arguments) > 0 {
				value = e.Arguments[0]
			}
			return assignment("assignment", e.Target, value)
		}
		return methodCall("method_call", e.Target, e.Method, e.Arguments)

	default:
		return nil, errUnsupported("expression", expr)
	}
}

// Block lowers an ordered statement list.
func Block(exprs []ir.Expression) ([]ast.Stmt, error) {
	out := make([]ast.Stmt, 0, len(exprs))
	for i, e := range exprs {
		s, err := Expression(e)
		if err != nil {
			return nil, fmt.Errorf("statement %d: %w", i, err)
		}
		out = append(out, s)
	}
	return out, nil
}

func block(kind, field string, exprs []ir.Expression) ([]ast.Stmt, error) {
	stmts, err := Block(exprs)
	if err != nil {
		return nil, fmt.Errorf("%s.%s: %w", kind, field, err)
	}
	return stmts, nil
}

func target(kind string, t ir.Target) (ast.Expr, error) {
	if t.Object == "" {
		return nil, errMissing(kind, "target.object")
	}
	obj := path(t.Object)
	if t.Property == "" {
		return obj, nil
	}
	return &ast.Member{Object: obj, Property: t.Property}, nil
}

func assignment(kind string, t ir.Target, value ir.Argument) (ast.Stmt, error) {
	left, err := target(kind, t)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, errMissing(kind, "arguments")
	}
	right, err := nested(kind, "arguments[0]", value)
	if err != nil {
		return nil, err
	}
	return &ast.ExprStmt{X: &ast.Assign{Left: left, Right: right}}, nil
}

// methodCall calls the member named by t, or t.method when method names a
// different property. The guard keeps console.log from becoming
// console.log.log.
func methodCall(kind string, t ir.Target, method string, args []ir.Argument) (ast.Stmt, error) {
	callee, err := target(kind, t)
	if err != nil {
		return nil, err
	}
	if method != "" && method != t.Property {
		callee = &ast.Member{Object: callee, Property: method}
	}
	lowered, err := arguments(kind, args)
	if err != nil {
		return nil, err
	}
	return &ast.ExprStmt{X: &ast.Call{Callee: callee, Args: lowered}}, nil
}

func variableDeclaration(e *ir.VariableDeclaration) (ast.Stmt, error) {
	kind := e.Kind().String()
	if e.VarKind == "" {
		return nil, errMissing(kind, "variableKind")
	}
	if !e.VarKind.Valid() {
		return nil, errInvalid(kind, "variableKind", "invalid variable kind %q", e.VarKind)
	}
	if len(e.Declarations) == 0 {
		return nil, errMissing(kind, "declarations")
	}
	decls := make([]ast.Declarator, 0, len(e.Declarations))
	for i, d := range e.Declarations {
		field := fmt.Sprintf("declarations[%d]", i)
		if d.ID == "" && len(d.Names) == 0 {
			return nil, errMissing(kind, field+".id")
		}
		if d.ID != "" && len(d.Names) > 0 {
			return nil, errInvalid(kind, field, "declarator has both id and names")
		}
		out := ast.Declarator{Name: d.ID, Pattern: d.Names, Type: typeName(d.Type)}
		if d.Init != nil {
			init, err := nested(kind, field+".init", d.Init)
			if err != nil {
				return nil, err
			}
			out.Init = init
		}
		decls = append(decls, out)
	}
	return &ast.VarDecl{Kind: string(e.VarKind), Decls: decls, Exported: e.Exported}, nil
}

func switchStatement(e *ir.SwitchStatement) (ast.Stmt, error) {
	kind := e.Kind().String()
	if e.Discriminant == nil {
		return nil, errMissing(kind, "discriminant")
	}
	disc, err := nested(kind, "discriminant", e.Discriminant)
	if err != nil {
		return nil, err
	}
	cases := make([]ast.Case, 0, len(e.Cases))
	for i, c := range e.Cases {
		if c == nil {
			return nil, errMissing(kind, fmt.Sprintf("cases[%d]", i))
		}
		lowered, err := switchCase(c)
		if err != nil {
			return nil, fmt.Errorf("%s.cases[%d]: %w", kind, i, err)
		}
		cases = append(cases, lowered)
	}
	return &ast.Switch{Discriminant: disc, Cases: cases}, nil
}

// switchCase lowers one clause. Non-default clauses always end with exactly
// one break; the default clause only gets one when Break asks for it.
func switchCase(c *ir.SwitchCase) (ast.Case, error) {
	kind := c.Kind().String()
	var test ast.Expr
	if c.Value != nil {
		var err error
		test, err = nested(kind, "caseValue", c.Value)
		if err != nil {
			return ast.Case{}, err
		}
	}
	body, err := block(kind, "statements", c.Body)
	if err != nil {
		return ast.Case{}, err
	}
	if c.Break || test != nil {
		body = append(body, &ast.Break{})
	}
	return ast.Case{Test: test, Body: body}, nil
}

func tryCatch(e *ir.TryCatch) (ast.Stmt, error) {
	kind := e.Kind().String()
	if e.Try == nil {
		return nil, errMissing(kind, "tryBlock")
	}
	if e.CatchParameter == "" {
		return nil, errMissing(kind, "catchParameter")
	}
	if e.Catch == nil {
		return nil, errMissing(kind, "catchBlock")
	}
	try, err := block(kind, "tryBlock", e.Try)
	if err != nil {
		return nil, err
	}
	handler, err := block(kind, "catchBlock", e.Catch)
	if err != nil {
		return nil, err
	}
	out := &ast.Try{Block: try, Param: e.CatchParameter, Handler: handler}
	if e.Finally != nil {
		out.Finally, err = block(kind, "finallyBlock", e.Finally)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
