package build

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/broady/expressgen/gen/ast"
	"github.com/broady/expressgen/gen/ir"
)

var (
	logicalOperators = map[string]bool{"||": true, "&&": true}

	binaryOperators = map[string]bool{
		"+": true, "-": true, "*": true, "/": true,
		"===": true, "!==": true, "==": true, "!=": true,
		">": true, "<": true, ">=": true, "<=": true,
	}

	unaryOperators = map[string]bool{"typeof": true, "!": true, "+": true, "-": true, "~": true}
)

// Argument lowers a value-position IR node to an expression.
func Argument(arg ir.Argument) (ast.Expr, error) {
	switch a := arg.(type) {
	case *ir.Literal:
		return literal(a.Value), nil

	case *ir.Identifier:
		return &ast.Ident{Name: a.Name}, nil

	case *ir.PropertyAccess:
		kind := a.Kind().String()
		if a.Target == "" {
			return nil, errMissing(kind, "target")
		}
		if a.Property == "" {
			return nil, errMissing(kind, "property")
		}
		return &ast.Member{Object: path(a.Target), Property: a.Property}, nil

	case *ir.FunctionCall:
		return functionCall(a)

	case *ir.ConstructorCall:
		kind := a.Kind().String()
		if a.Name == "" {
			return nil, errMissing(kind, "name")
		}
		args, err := arguments(kind, a.Arguments)
		if err != nil {
			return nil, err
		}
		return &ast.New{Callee: path(a.Name), Args: args}, nil

	case *ir.Object:
		return object(a)

	case *ir.LogicalExpression:
		kind := a.Kind().String()
		if a.Operator == "" {
			return nil, errMissing(kind, "operator")
		}
		if !logicalOperators[a.Operator] {
			return nil, errInvalid(kind, "operator", "invalid logical operator %q", a.Operator)
		}
		left, right, err := operands(kind, a.Left, a.Right)
		if err != nil {
			return nil, err
		}
		return &ast.Logical{Op: a.Operator, Left: left, Right: right}, nil

	case *ir.BinaryExpression:
		kind := a.Kind().String()
		if a.Operator == "" {
			return nil, errMissing(kind, "operator")
		}
		if !binaryOperators[a.Operator] {
			return nil, errInvalid(kind, "operator", "invalid binary operator %q", a.Operator)
		}
		left, right, err := operands(kind, a.Left, a.Right)
		if err != nil {
			return nil, err
		}
		return &ast.Binary{Op: a.Operator, Left: left, Right: right}, nil

	case *ir.UnaryExpression:
		kind := a.Kind().String()
		if a.Operator == "" {
			return nil, errMissing(kind, "operator")
		}
		if !unaryOperators[a.Operator] {
			return nil, errInvalid(kind, "operator", "invalid unary operator %q", a.Operator)
		}
		if a.Operand == nil {
			return nil, errMissing(kind, "arguments")
		}
		operand, err := nested(kind, "arguments[0]", a.Operand)
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: a.Operator, Operand: operand}, nil

	case *ir.TemplateLiteral:
		return template(a)

	case *ir.ConditionalExpression:
		kind := a.Kind().String()
		if a.Test == nil {
			return nil, errMissing(kind, "test")
		}
		if a.Consequent == nil {
			return nil, errMissing(kind, "consequent")
		}
		if a.Alternate == nil {
			return nil, errMissing(kind, "alternate")
		}
		test, err := nested(kind, "test", a.Test)
		if err != nil {
			return nil, err
		}
		cons, err := nested(kind, "consequent", a.Consequent)
		if err != nil {
			return nil, err
		}
		alt, err := nested(kind, "alternate", a.Alternate)
		if err != nil {
			return nil, err
		}
		return &ast.Conditional{Test: test, Consequent: cons, Alternate: alt}, nil

	case *ir.Array:
		elems, err := arguments(a.Kind().String(), a.Elements)
		if err != nil {
			return nil, err
		}
		return &ast.Array{Elems: elems}, nil

	case *ir.AwaitExpression:
		kind := a.Kind().String()
		if a.Argument == nil {
			return nil, errMissing(kind, "arguments")
		}
		x, err := nested(kind, "arguments[0]", a.Argument)
		if err != nil {
			return nil, err
		}
		return &ast.Await{Argument: x}, nil

	default:
		return nil, errUnsupported("argument", arg)
	}
}

// literal maps a Go value to a literal node. Unknown values become null.
func literal(v any) ast.Expr {
	switch v := v.(type) {
	case string:
		return &ast.StringLit{Value: v}
	case bool:
		return &ast.BoolLit{Value: v}
	case int:
		return &ast.NumberLit{Raw: strconv.Itoa(v)}
	case int8, int16, int32, int64:
		return &ast.NumberLit{Raw: fmt.Sprintf("%d", v)}
	case uint, uint8, uint16, uint32, uint64:
		return &ast.NumberLit{Raw: fmt.Sprintf("%d", v)}
	case float32:
		return float(float64(v), 32)
	case float64:
		return float(v, 64)
	default:
		return &ast.NullLit{}
	}
}

// float spells out the values strconv cannot write as a JavaScript number.
func float(v float64, bits int) ast.Expr {
	switch {
	case math.IsNaN(v):
		return &ast.Ident{Name: "NaN"}
	case math.IsInf(v, 1):
		return &ast.Ident{Name: "Infinity"}
	case math.IsInf(v, -1):
		return &ast.Unary{Op: "-", Operand: &ast.Ident{Name: "Infinity"}}
	}
	return &ast.NumberLit{Raw: strconv.FormatFloat(v, 'f', -1, bits)}
}

// path turns a dotted receiver such as "this.app" or "process.env" into a
// member chain.
func path(s string) ast.Expr {
	parts := strings.Split(s, ".")
	var expr ast.Expr
	if parts[0] == "this" {
		expr = &ast.This{}
	} else {
		expr = &ast.Ident{Name: parts[0]}
	}
	for _, p := range parts[1:] {
		expr = &ast.Member{Object: expr, Property: p}
	}
	return expr
}

func functionCall(a *ir.FunctionCall) (ast.Expr, error) {
	kind := a.Kind().String()
	if a.Function != nil {
		return function(kind, a.Function)
	}

	args, err := arguments(kind, a.Arguments)
	if err != nil {
		return nil, err
	}

	if a.Property != "" && (a.Target != "" || a.Receiver != nil) {
		var recv ast.Expr
		if a.Receiver != nil {
			recv, err = nested(kind, "receiver", a.Receiver)
			if err != nil {
				return nil, err
			}
		} else {
			recv = path(a.Target)
		}
		return &ast.Call{Callee: &ast.Member{Object: recv, Property: a.Property}, Args: args}, nil
	}

	if a.Name == "" {
		return nil, errMissing(kind, "name")
	}
	return &ast.Call{Callee: path(a.Name), Args: args}, nil
}

func function(kind string, fn *ir.FunctionExpression) (*ast.Function, error) {
	params, err := parameters(kind, fn.Params)
	if err != nil {
		return nil, err
	}
	out := &ast.Function{
		Params:     params,
		Async:      fn.Async,
		Arrow:      fn.Arrow,
		ReturnType: typeName(fn.ReturnType),
	}
	if fn.Result != nil {
		if !fn.Arrow {
			return nil, errInvalid(kind, "functionExpression.result", "concise body requires an arrow function")
		}
		out.ExprBody, err = nested(kind, "functionExpression.result", fn.Result)
		if err != nil {
			return nil, err
		}
		return out, nil
	}
	out.Body, err = Block(fn.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: functionExpression.body: %w", kind, err)
	}
	return out, nil
}

func object(o *ir.Object) (ast.Expr, error) {
	kind := o.Kind().String()
	props := make([]ast.Property, 0, len(o.Fields))
	for _, f := range o.Fields {
		if f.Key == "" {
			return nil, errMissing(kind, "properties.key")
		}
		field := fmt.Sprintf("properties[%q]", f.Key)
		if f.Value == nil {
			return nil, errMissing(kind, field)
		}
		v, err := nested(kind, field, f.Value)
		if err != nil {
			return nil, err
		}
		prop := ast.Property{Key: f.Key, Value: v}
		if id, ok := f.Value.(*ir.Identifier); ok && id.Name == f.Key {
			prop.Shorthand = true
		}
		props = append(props, prop)
	}
	return &ast.Object{Props: props}, nil
}

func template(t *ir.TemplateLiteral) (ast.Expr, error) {
	kind := t.Kind().String()
	if len(t.Quasis) == 0 {
		return nil, errMissing(kind, "quasis")
	}
	if len(t.Quasis) > len(t.Expressions)+1 {
		return nil, errInvalid(kind, "quasis", "%d quasis for %d expressions", len(t.Quasis), len(t.Expressions))
	}
	exprs, err := arguments(kind, t.Expressions)
	if err != nil {
		return nil, err
	}
	quasis := make([]ast.TemplateElement, len(exprs)+1)
	for i := range quasis {
		if i < len(t.Quasis) {
			quasis[i].Raw = t.Quasis[i]
		}
	}
	quasis[len(quasis)-1].Tail = true
	return &ast.Template{Quasis: quasis, Exprs: exprs}, nil
}

func operands(kind string, left, right ir.Argument) (ast.Expr, ast.Expr, error) {
	if left == nil {
		return nil, nil, errMissing(kind, "left")
	}
	if right == nil {
		return nil, nil, errMissing(kind, "right")
	}
	l, err := nested(kind, "left", left)
	if err != nil {
		return nil, nil, err
	}
	r, err := nested(kind, "right", right)
	if err != nil {
		return nil, nil, err
	}
	return l, r, nil
}

// nested lowers a child argument and prefixes errors with its position.
func nested(kind, field string, arg ir.Argument) (ast.Expr, error) {
	x, err := Argument(arg)
	if err != nil {
		return nil, fmt.Errorf("%s.%s: %w", kind, field, err)
	}
	return x, nil
}

func arguments(kind string, args []ir.Argument) ([]ast.Expr, error) {
	if len(args) == 0 {
		return nil, nil
	}
	out := make([]ast.Expr, 0, len(args))
	for i, a := range args {
		x, err := nested(kind, fmt.Sprintf("arguments[%d]", i), a)
		if err != nil {
			return nil, err
		}
		out = append(out, x)
	}
	return out, nil
}

func parameters(kind string, ps []ir.Parameter) ([]ast.Param, error) {
	if len(ps) == 0 {
		return nil, nil
	}
	out := make([]ast.Param, 0, len(ps))
	for i, p := range ps {
		if p.Name == "" {
			return nil, errMissing(kind, fmt.Sprintf("params[%d].name", i))
		}
		param := ast.Param{
			Name:     p.Name,
			Type:     typeName(p.Type),
			Optional: p.Optional,
			Access:   ast.Accessibility(p.Access),
			Readonly: p.Readonly,
		}
		if p.Default != nil {
			def, err := nested(kind, fmt.Sprintf("params[%d].default", i), p.Default)
			if err != nil {
				return nil, err
			}
			param.Default = def
		}
		out = append(out, param)
	}
	return out, nil
}

func typeName(name string) ast.Type {
	if name == "" {
		return nil
	}
	return &ast.TypeName{Name: name}
}
