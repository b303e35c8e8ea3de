package printer

import (
	"fmt"
	"strings"

	"github.com/broady/expressgen/gen/ast"
)

var binaryPrec = map[string]int{
	"||":  precOr,
	"&&":  precAnd,
	"==":  precEquality,
	"!=":  precEquality,
	"===": precEquality,
	"!==": precEquality,
	"<":   precRelational,
	">":   precRelational,
	"<=":  precRelational,
	">=":  precRelational,
	"+":   precAdditive,
	"-":   precAdditive,
	"*":   precMultiply,
	"/":   precMultiply,
}

// expr renders x, wrapping it in parentheses when it binds looser than minPrec.
func (p *Printer) expr(x ast.Expr, level, minPrec int) (string, error) {
	text, prec, err := p.exprPrec(x, level)
	if err != nil {
		return "", err
	}
	if prec < minPrec {
		return "(" + text + ")", nil
	}
	return text, nil
}

func (p *Printer) exprPrec(x ast.Expr, level int) (string, int, error) {
	switch x := x.(type) {
	case *ast.Ident:
		if x.Name == "" {
			return "", 0, fmt.Errorf("printer: empty identifier")
		}
		return x.Name, precPrimary, nil

	case *ast.This:
		return "this", precPrimary, nil

	case *ast.StringLit:
		return quote(x.Value, p.quote), precPrimary, nil

	case *ast.NumberLit:
		if x.Raw == "" {
			return "", 0, fmt.Errorf("printer: empty number literal")
		}
		if strings.HasPrefix(x.Raw, "-") {
			return x.Raw, precPrefix, nil
		}
		return x.Raw, precPrimary, nil

	case *ast.BoolLit:
		if x.Value {
			return "true", precPrimary, nil
		}
		return "false", precPrimary, nil

	case *ast.NullLit:
		return "null", precPrimary, nil

	case *ast.Member:
		obj, err := p.expr(x.Object, level, precCall)
		if err != nil {
			return "", 0, err
		}
		if x.Property == "" {
			return "", 0, fmt.Errorf("printer: member access without property")
		}
		if _, ok := x.Object.(*ast.NumberLit); ok && !strings.HasPrefix(obj, "(") {
			obj = "(" + obj + ")"
		}
		if !isIdentifierName(x.Property) {
			return obj + "[" + quote(x.Property, p.quote) + "]", precCall, nil
		}
		return obj + "." + x.Property, precCall, nil

	case *ast.Call:
		callee, err := p.expr(x.Callee, level, precCall)
		if err != nil {
			return "", 0, err
		}
		args, err := p.args(x.Args, level)
		if err != nil {
			return "", 0, err
		}
		return callee + "(" + args + ")", precCall, nil

	case *ast.New:
		callee, err := p.expr(x.Callee, level, precCall)
		if err != nil {
			return "", 0, err
		}
		if _, ok := x.Callee.(*ast.Call); ok {
			callee = "(" + callee + ")"
		}
		args, err := p.args(x.Args, level)
		if err != nil {
			return "", 0, err
		}
		return "new " + callee + "(" + args + ")", precCall, nil

	case *ast.Object:
		text, err := p.object(x, level)
		return text, precPrimary, err

	case *ast.Array:
		text, err := p.array(x, level)
		return text, precPrimary, err

	case *ast.Logical:
		return p.binary(x.Op, x.Left, x.Right, level)

	case *ast.Binary:
		return p.binary(x.Op, x.Left, x.Right, level)

	case *ast.Unary:
		operand, err := p.expr(x.Operand, level, precPrefix)
		if err != nil {
			return "", 0, err
		}
		switch x.Op {
		case "typeof":
			return "typeof " + operand, precPrefix, nil
		case "!", "~":
			return x.Op + operand, precPrefix, nil
		case "+", "-":
			// Avoid "- -x" collapsing into a decrement.
			if strings.HasPrefix(operand, x.Op) {
				return x.Op + " " + operand, precPrefix, nil
			}
			return x.Op + operand, precPrefix, nil
		default:
			return "", 0, fmt.Errorf("printer: invalid unary operator %q", x.Op)
		}

	case *ast.Template:
		return p.template(x, level)

	case *ast.Conditional:
		test, err := p.expr(x.Test, level, precOr)
		if err != nil {
			return "", 0, err
		}
		cons, err := p.expr(x.Consequent, level, precAssign)
		if err != nil {
			return "", 0, err
		}
		alt, err := p.expr(x.Alternate, level, precAssign)
		if err != nil {
			return "", 0, err
		}
		return test + " ? " + cons + " : " + alt, precConditional, nil

	case *ast.Await:
		arg, err := p.expr(x.Argument, level, precPrefix)
		if err != nil {
			return "", 0, err
		}
		return "await " + arg, precPrefix, nil

	case *ast.Assign:
		left, err := p.expr(x.Left, level, precCall)
		if err != nil {
			return "", 0, err
		}
		right, err := p.expr(x.Right, level, precAssign)
		if err != nil {
			return "", 0, err
		}
		return left + " = " + right, precAssign, nil

	case *ast.Function:
		return p.function(x, level)

	case nil:
		return "", 0, fmt.Errorf("printer: nil expression")

	default:
		return "", 0, fmt.Errorf("printer: unsupported expression %T", x)
	}
}

func (p *Printer) binary(op string, left, right ast.Expr, level int) (string, int, error) {
	prec, ok := binaryPrec[op]
	if !ok {
		return "", 0, fmt.Errorf("printer: invalid binary operator %q", op)
	}
	l, err := p.expr(left, level, prec)
	if err != nil {
		return "", 0, err
	}
	r, err := p.expr(right, level, prec+1)
	if err != nil {
		return "", 0, err
	}
	return l + " " + op + " " + r, prec, nil
}

func (p *Printer) args(args []ast.Expr, level int) (string, error) {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		text, err := p.expr(a, level, precAssign)
		if err != nil {
			return "", err
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, ", "), nil
}

func (p *Printer) object(o *ast.Object, level int) (string, error) {
	if len(o.Props) == 0 {
		return "{}", nil
	}
	parts := make([]string, 0, len(o.Props))
	for _, prop := range o.Props {
		key := prop.Key
		if key == "" {
			return "", fmt.Errorf("printer: object property without key")
		}
		if !isIdentifierName(key) {
			key = quote(key, p.quote)
		}
		if prop.Shorthand {
			if id, ok := prop.Value.(*ast.Ident); ok && id.Name == prop.Key {
				parts = append(parts, prop.Key)
				continue
			}
		}
		v, err := p.expr(prop.Value, level+1, precAssign)
		if err != nil {
			return "", fmt.Errorf("property %s: %w", prop.Key, err)
		}
		parts = append(parts, key+": "+v)
	}
	return p.list("{", "}", parts, level, true), nil
}

func (p *Printer) array(a *ast.Array, level int) (string, error) {
	if len(a.Elems) == 0 {
		return "[]", nil
	}
	parts := make([]string, 0, len(a.Elems))
	for _, e := range a.Elems {
		text, err := p.expr(e, level+1, precAssign)
		if err != nil {
			return "", err
		}
		parts = append(parts, text)
	}
	return p.list("[", "]", parts, level, false), nil
}

// list lays out delimited elements inline when they fit, and one per line
// with trailing commas otherwise.
func (p *Printer) list(open, close string, parts []string, level int, spaced bool) string {
	inline := strings.Join(parts, ", ")
	if spaced {
		inline = open + " " + inline + " " + close
	} else {
		inline = open + inline + close
	}
	if !strings.Contains(inline, "\n") && len(p.pad(level))+len(inline) <= p.cfg.MaxInlineWidth {
		return inline
	}
	var b strings.Builder
	b.WriteString(open)
	b.WriteString("\n")
	for _, part := range parts {
		b.WriteString(p.pad(level + 1))
		b.WriteString(part)
		b.WriteString(",\n")
	}
	b.WriteString(p.pad(level))
	b.WriteString(close)
	return b.String()
}

func (p *Printer) template(t *ast.Template, level int) (string, int, error) {
	if len(t.Quasis) != len(t.Exprs)+1 {
		return "", 0, fmt.Errorf("printer: template literal has %d quasis for %d expressions", len(t.Quasis), len(t.Exprs))
	}
	var b strings.Builder
	b.WriteByte('`')
	for i, q := range t.Quasis {
		b.WriteString(escapeTemplate(q.Raw))
		if i < len(t.Exprs) {
			text, err := p.expr(t.Exprs[i], level, precLowest)
			if err != nil {
				return "", 0, err
			}
			b.WriteString("${")
			b.WriteString(text)
			b.WriteString("}")
		}
	}
	b.WriteByte('`')
	return b.String(), precPrimary, nil
}

func (p *Printer) function(f *ast.Function, level int) (string, int, error) {
	params, err := p.params(f.Params, level)
	if err != nil {
		return "", 0, err
	}
	var head string
	if f.Arrow {
		head = "(" + params + ")"
	} else {
		head = "function (" + params + ")"
	}
	if f.Async {
		head = "async " + head
	}
	if f.ReturnType != nil {
		t, err := p.typ(f.ReturnType)
		if err != nil {
			return "", 0, err
		}
		head += ": " + t
	}

	if f.ExprBody != nil {
		if !f.Arrow {
			return "", 0, fmt.Errorf("printer: expression body on non-arrow function")
		}
		body, err := p.expr(f.ExprBody, level, precAssign)
		if err != nil {
			return "", 0, err
		}
		if strings.HasPrefix(body, "{") {
			body = "(" + body + ")"
		}
		return head + " => " + body, precAssign, nil
	}

	body, err := p.block(f.Body, level)
	if err != nil {
		return "", 0, err
	}
	if f.Arrow {
		return head + " => " + body, precAssign, nil
	}
	return head + " " + body, precPrimary, nil
}
