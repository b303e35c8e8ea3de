package ir

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
)

// JSON serialization support for IR nodes.
// Arguments carry a "type" discriminant and expressions an "expressionType"
// discriminant, matching the IR documents generators and tests exchange.
// Object literals keep field order in both directions.

type wireParam struct {
	Name     string          `json:"name"`
	Type     string          `json:"type,omitempty"`
	Default  json.RawMessage `json:"default,omitempty"`
	Optional bool            `json:"optional,omitempty"`
	Access   AccessModifier  `json:"access,omitempty"`
	Readonly bool            `json:"readonly,omitempty"`
}

type wireFunction struct {
	Params     []wireParam       `json:"params,omitempty"`
	Body       []json.RawMessage `json:"body,omitempty"`
	Result     json.RawMessage   `json:"result,omitempty"`
	Async      bool              `json:"async,omitempty"`
	Arrow      bool              `json:"arrow,omitempty"`
	ReturnType string            `json:"returnType,omitempty"`
}

type wireArgument struct {
	Type        string            `json:"type"`
	Value       json.RawMessage   `json:"value,omitempty"`
	Name        string            `json:"name,omitempty"`
	Target      string            `json:"target,omitempty"`
	Property    string            `json:"property,omitempty"`
	Receiver    json.RawMessage   `json:"receiver,omitempty"`
	Arguments   []json.RawMessage `json:"arguments,omitempty"`
	Function    *wireFunction     `json:"functionExpression,omitempty"`
	Properties  json.RawMessage   `json:"properties,omitempty"`
	Operator    string            `json:"operator,omitempty"`
	Left        json.RawMessage   `json:"left,omitempty"`
	Right       json.RawMessage   `json:"right,omitempty"`
	Quasis      []string          `json:"quasis,omitempty"`
	Expressions []json.RawMessage `json:"expressions,omitempty"`
	Test        json.RawMessage   `json:"test,omitempty"`
	Consequent  json.RawMessage   `json:"consequent,omitempty"`
	Alternate   json.RawMessage   `json:"alternate,omitempty"`
	Elements    []json.RawMessage `json:"elements,omitempty"`
}

// UnmarshalArgument decodes an argument node from its JSON form.
func UnmarshalArgument(data []byte) (Argument, error) {
	if isNull(data) {
		return nil, nil
	}
	var w wireArgument
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode argument: %w", err)
	}
	kind, ok := ParseArgumentKind(w.Type)
	if !ok {
		return nil, fmt.Errorf("unsupported argument type: %q", w.Type)
	}

	switch kind {
	case KindLiteral:
		var v any
		if !isNull(w.Value) {
			if err := json.Unmarshal(w.Value, &v); err != nil {
				return nil, fmt.Errorf("decode literal value: %w", err)
			}
		}
		return &Literal{Value: v}, nil
	case KindIdentifier:
		name := w.Name
		if name == "" && len(w.Value) > 0 {
			if err := json.Unmarshal(w.Value, &name); err != nil {
				return nil, fmt.Errorf("decode identifier: %w", err)
			}
		}
		return &Identifier{Name: name}, nil
	case KindPropertyAccess:
		return &PropertyAccess{Target: w.Target, Property: w.Property}, nil
	case KindFunctionCall:
		args, err := unmarshalArguments(w.Arguments)
		if err != nil {
			return nil, err
		}
		receiver, err := UnmarshalArgument(w.Receiver)
		if err != nil {
			return nil, err
		}
		call := &FunctionCall{Name: w.Name, Target: w.Target, Property: w.Property, Receiver: receiver, Arguments: args}
		if w.Function != nil {
			fn, err := unmarshalFunction(w.Function)
			if err != nil {
				return nil, err
			}
			call.Function = fn
		}
		return call, nil
	case KindConstructorCall:
		args, err := unmarshalArguments(w.Arguments)
		if err != nil {
			return nil, err
		}
		return &ConstructorCall{Name: w.Name, Arguments: args}, nil
	case KindObject:
		fields, err := unmarshalFields(w.Properties)
		if err != nil {
			return nil, err
		}
		return &Object{Fields: fields}, nil
	case KindLogicalExpression, KindBinaryExpression:
		left, err := UnmarshalArgument(w.Left)
		if err != nil {
			return nil, err
		}
		right, err := UnmarshalArgument(w.Right)
		if err != nil {
			return nil, err
		}
		if kind == KindLogicalExpression {
			return &LogicalExpression{Operator: w.Operator, Left: left, Right: right}, nil
		}
		return &BinaryExpression{Operator: w.Operator, Left: left, Right: right}, nil
	case KindUnaryExpression:
		args, err := unmarshalArguments(w.Arguments)
		if err != nil {
			return nil, err
		}
		u := &UnaryExpression{Operator: w.Operator}
		switch len(args) {
		case 0:
		case 1:
			u.Operand = args[0]
		default:
			return nil, fmt.Errorf("unary_expression: expected exactly one argument, got %d", len(args))
		}
		return u, nil
	case KindTemplateLiteral:
		exprs, err := unmarshalArguments(w.Expressions)
		if err != nil {
			return nil, err
		}
		return &TemplateLiteral{Quasis: w.Quasis, Expressions: exprs}, nil
	case KindConditionalExpression:
		test, err := UnmarshalArgument(w.Test)
		if err != nil {
			return nil, err
		}
		cons, err := UnmarshalArgument(w.Consequent)
		if err != nil {
			return nil, err
		}
		alt, err := UnmarshalArgument(w.Alternate)
		if err != nil {
			return nil, err
		}
		return &ConditionalExpression{Test: test, Consequent: cons, Alternate: alt}, nil
	case KindArray:
		elems, err := unmarshalArguments(w.Elements)
		if err != nil {
			return nil, err
		}
		return &Array{Elements: elems}, nil
	case KindAwaitExpression:
		args, err := unmarshalArguments(w.Arguments)
		if err != nil {
			return nil, err
		}
		a := &AwaitExpression{}
		if len(args) > 0 {
			a.Argument = args[0]
		}
		return a, nil
	}
	return nil, fmt.Errorf("unsupported argument type: %q", w.Type)
}

func unmarshalArguments(raws []json.RawMessage) ([]Argument, error) {
	if raws == nil {
		return nil, nil
	}
	out := make([]Argument, 0, len(raws))
	for i, raw := range raws {
		a, err := UnmarshalArgument(raw)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		out = append(out, a)
	}
	return out, nil
}

// unmarshalFields decodes a JSON object into ordered fields.
func unmarshalFields(data json.RawMessage) ([]Field, error) {
	if isNull(data) {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decode object properties: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("decode object properties: expected JSON object")
	}
	fields := []Field{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode object properties: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("decode object properties: expected key, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode property %q: %w", key, err)
		}
		value, err := UnmarshalArgument(raw)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", key, err)
		}
		fields = append(fields, Field{Key: key, Value: value})
	}
	return fields, nil
}

func unmarshalFunction(w *wireFunction) (*FunctionExpression, error) {
	params, err := unmarshalParams(w.Params)
	if err != nil {
		return nil, err
	}
	body, err := unmarshalExpressions(w.Body)
	if err != nil {
		return nil, err
	}
	result, err := UnmarshalArgument(w.Result)
	if err != nil {
		return nil, err
	}
	return &FunctionExpression{
		Params:     params,
		Body:       body,
		Result:     result,
		Async:      w.Async,
		Arrow:      w.Arrow,
		ReturnType: w.ReturnType,
	}, nil
}

func unmarshalParams(ws []wireParam) ([]Parameter, error) {
	if ws == nil {
		return nil, nil
	}
	out := make([]Parameter, 0, len(ws))
	for _, w := range ws {
		def, err := UnmarshalArgument(w.Default)
		if err != nil {
			return nil, fmt.Errorf("parameter %s default: %w", w.Name, err)
		}
		out = append(out, Parameter{
			Name:     w.Name,
			Type:     w.Type,
			Default:  def,
			Optional: w.Optional,
			Access:   w.Access,
			Readonly: w.Readonly,
		})
	}
	return out, nil
}

type wireBlock struct {
	TryBlock       []json.RawMessage `json:"tryBlock,omitempty"`
	CatchParameter string            `json:"catchParameter,omitempty"`
	CatchBlock     []json.RawMessage `json:"catchBlock,omitempty"`
	FinallyBlock   []json.RawMessage `json:"finallyBlock,omitempty"`
}

type wireDeclarator struct {
	ID    string          `json:"id,omitempty"`
	Names []string        `json:"names,omitempty"`
	Type  string          `json:"type,omitempty"`
	Init  json.RawMessage `json:"init,omitempty"`
}

type wireCase struct {
	CaseValue  json.RawMessage   `json:"caseValue"`
	Statements []json.RawMessage `json:"statements"`
	Break      bool              `json:"break,omitempty"`
}

type wireExpression struct {
	ExpressionType string            `json:"expressionType,omitempty"`
	Target         *Target           `json:"target,omitempty"`
	Method         string            `json:"method,omitempty"`
	Arguments      []json.RawMessage `json:"arguments,omitempty"`
	TryCatchBlock  *wireBlock        `json:"tryCatchBlock,omitempty"`
	VariableKind   VarKind           `json:"variableKind,omitempty"`
	Declarations   []wireDeclarator  `json:"declarations,omitempty"`
	Exported       bool              `json:"exported,omitempty"`
	Discriminant   json.RawMessage   `json:"discriminant,omitempty"`
	Cases          []wireCase        `json:"cases,omitempty"`
	CaseValue      json.RawMessage   `json:"caseValue,omitempty"`
	Statements     []json.RawMessage `json:"statements,omitempty"`
	Break          bool              `json:"break,omitempty"`
}

// UnmarshalExpression decodes an expression node from its JSON form.
// A missing or unknown expressionType decodes to Legacy.
func UnmarshalExpression(data []byte) (Expression, error) {
	var w wireExpression
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode expression: %w", err)
	}
	args, err := unmarshalArguments(w.Arguments)
	if err != nil {
		return nil, err
	}
	var target Target
	if w.Target != nil {
		target = *w.Target
	}
	first := func() Argument {
		if len(args) == 0 {
			return nil
		}
		return args[0]
	}

	kind, ok := ParseExpressionKind(w.ExpressionType)
	if !ok {
		return &Legacy{Target: target, Method: w.Method, Arguments: args}, nil
	}

	switch kind {
	case KindAssignment:
		return &Assignment{Target: target, Value: first()}, nil
	case KindMethodCall:
		return &MethodCallStatement{Target: target, Method: w.Method, Arguments: args}, nil
	case KindFunctionCallStatement:
		return &FunctionCallStatement{Callee: target.Object, Arguments: args}, nil
	case KindConditional:
		c := &Conditional{}
		if len(args) == 1 {
			c.Test = args[0]
		} else if len(args) > 1 {
			return nil, fmt.Errorf("conditional: expected a single test argument, got %d", len(args))
		}
		if w.TryCatchBlock != nil {
			then, err := unmarshalExpressions(w.TryCatchBlock.TryBlock)
			if err != nil {
				return nil, err
			}
			c.Then = then
		}
		return c, nil
	case KindVariableDeclaration:
		decl := &VariableDeclaration{VarKind: w.VariableKind, Exported: w.Exported}
		for _, d := range w.Declarations {
			init, err := UnmarshalArgument(d.Init)
			if err != nil {
				return nil, fmt.Errorf("declarator %s: %w", d.ID, err)
			}
			decl.Declarations = append(decl.Declarations, Declarator{ID: d.ID, Names: d.Names, Type: d.Type, Init: init})
		}
		return decl, nil
	case KindSwitchStatement:
		disc, err := UnmarshalArgument(w.Discriminant)
		if err != nil {
			return nil, err
		}
		sw := &SwitchStatement{Discriminant: disc}
		for i, c := range w.Cases {
			sc, err := unmarshalCase(c.CaseValue, c.Statements, c.Break)
			if err != nil {
				return nil, fmt.Errorf("case %d: %w", i, err)
			}
			sw.Cases = append(sw.Cases, sc)
		}
		return sw, nil
	case KindSwitchCase:
		return unmarshalCase(w.CaseValue, w.Statements, w.Break)
	case KindAwait:
		return &Await{Argument: first()}, nil
	case KindTryCatch:
		tc := &TryCatch{}
		if b := w.TryCatchBlock; b != nil {
			if tc.Try, err = unmarshalExpressions(b.TryBlock); err != nil {
				return nil, err
			}
			if tc.Catch, err = unmarshalExpressions(b.CatchBlock); err != nil {
				return nil, err
			}
			if tc.Finally, err = unmarshalExpressions(b.FinallyBlock); err != nil {
				return nil, err
			}
			tc.CatchParameter = b.CatchParameter
		}
		return tc, nil
	case KindThrow:
		return &Throw{Argument: first()}, nil
	case KindReturn:
		return &Return{Argument: first()}, nil
	case KindExpressionStatement:
		return &ExpressionStatement{Value: first()}, nil
	}
	return &Legacy{Target: target, Method: w.Method, Arguments: args}, nil
}

func unmarshalCase(value json.RawMessage, stmts []json.RawMessage, brk bool) (*SwitchCase, error) {
	v, err := UnmarshalArgument(value)
	if err != nil {
		return nil, err
	}
	body, err := unmarshalExpressions(stmts)
	if err != nil {
		return nil, err
	}
	return &SwitchCase{Value: v, Body: body, Break: brk}, nil
}

func unmarshalExpressions(raws []json.RawMessage) ([]Expression, error) {
	if raws == nil {
		return nil, nil
	}
	out := make([]Expression, 0, len(raws))
	for i, raw := range raws {
		e, err := UnmarshalExpression(raw)
		if err != nil {
			return nil, fmt.Errorf("statement %d: %w", i, err)
		}
		out = append(out, e)
	}
	return out, nil
}

func isNull(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
