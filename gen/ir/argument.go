package ir

// argBase seals Argument to this package.
type argBase struct{}

func (argBase) argument() {}

// Literal is a string, number, boolean, or null constant.
// Value holds a string, any Go integer or float type, a bool, or nil.
// Any other value lowers to null.
type Literal struct {
	argBase
	Value any
}

// Kind returns KindLiteral.
func (*Literal) Kind() ArgumentKind { return KindLiteral }

// Identifier is a bare name. The builder does not validate identifier syntax.
type Identifier struct {
	argBase
	Name string
}

// Kind returns KindIdentifier.
func (*Identifier) Kind() ArgumentKind { return KindIdentifier }

// PropertyAccess is target.property. Target may be a dotted path.
// Computed (bracket) access is not supported.
type PropertyAccess struct {
	argBase
	Target   string
	Property string
}

// Kind returns KindPropertyAccess.
func (*PropertyAccess) Kind() ArgumentKind { return KindPropertyAccess }

// FunctionCall covers three shapes, checked in order:
//   - Function != nil: the node is a function or arrow expression
//   - Property != "" with Target or Receiver: method call target.property(args...)
//   - otherwise: direct call name(args...)
type FunctionCall struct {
	argBase
	Name      string
	Target    string
	Property  string
	Receiver  Argument
	Arguments []Argument
	Function  *FunctionExpression
}

// Kind returns KindFunctionCall.
func (*FunctionCall) Kind() ArgumentKind { return KindFunctionCall }

// FunctionExpression is an arrow function or anonymous function expression.
// A non-nil Result produces a concise arrow body and Body is ignored.
type FunctionExpression struct {
	Params     []Parameter
	Body       []Expression
	Result     Argument
	Async      bool
	Arrow      bool
	ReturnType string
}

// ConstructorCall is new Name(args...).
type ConstructorCall struct {
	argBase
	Name      string
	Arguments []Argument
}

// Kind returns KindConstructorCall.
func (*ConstructorCall) Kind() ArgumentKind { return KindConstructorCall }

// Field is one key of an object literal.
type Field struct {
	Key   string
	Value Argument
}

// Object is an object literal. Fields keep their declared order.
type Object struct {
	argBase
	Fields []Field
}

// Kind returns KindObject.
func (*Object) Kind() ArgumentKind { return KindObject }

// LogicalExpression is left op right with op in {||, &&}.
type LogicalExpression struct {
	argBase
	Operator string
	Left     Argument
	Right    Argument
}

// Kind returns KindLogicalExpression.
func (*LogicalExpression) Kind() ArgumentKind { return KindLogicalExpression }

// BinaryExpression is left op right for arithmetic and comparison operators.
type BinaryExpression struct {
	argBase
	Operator string
	Left     Argument
	Right    Argument
}

// Kind returns KindBinaryExpression.
func (*BinaryExpression) Kind() ArgumentKind { return KindBinaryExpression }

// UnaryExpression is a prefix operator applied to exactly one operand.
type UnaryExpression struct {
	argBase
	Operator string
	Operand  Argument
}

// Kind returns KindUnaryExpression.
func (*UnaryExpression) Kind() ArgumentKind { return KindUnaryExpression }

// TemplateLiteral interleaves literal text segments with expressions:
// Quasis[0] Expressions[0] Quasis[1] ... Quasis[n].
type TemplateLiteral struct {
	argBase
	Quasis      []string
	Expressions []Argument
}

// Kind returns KindTemplateLiteral.
func (*TemplateLiteral) Kind() ArgumentKind { return KindTemplateLiteral }

// ConditionalExpression is test ? consequent : alternate.
type ConditionalExpression struct {
	argBase
	Test       Argument
	Consequent Argument
	Alternate  Argument
}

// Kind returns KindConditionalExpression.
func (*ConditionalExpression) Kind() ArgumentKind { return KindConditionalExpression }

// Array is an array literal.
type Array struct {
	argBase
	Elements []Argument
}

// Kind returns KindArray.
func (*Array) Kind() ArgumentKind { return KindArray }

// AwaitExpression is await in value position, e.g. const u = await find().
type AwaitExpression struct {
	argBase
	Argument Argument
}

// Kind returns KindAwaitExpression.
func (*AwaitExpression) Kind() ArgumentKind { return KindAwaitExpression }

// Lit returns a literal argument.
func Lit(v any) *Literal { return &Literal{Value: v} }

// Null returns the null literal.
func Null() *Literal { return &Literal{} }

// Ident returns an identifier argument.
func Ident(name string) *Identifier { return &Identifier{Name: name} }

// Prop returns target.property.
func Prop(target, property string) *PropertyAccess {
	return &PropertyAccess{Target: target, Property: property}
}

// Call returns a direct call name(args...).
func Call(name string, args ...Argument) *FunctionCall {
	return &FunctionCall{Name: name, Arguments: args}
}

// MethodCall returns target.property(args...).
func MethodCall(target, property string, args ...Argument) *FunctionCall {
	return &FunctionCall{Target: target, Property: property, Arguments: args}
}

// Chain returns receiver.property(args...) for chained calls.
func Chain(receiver Argument, property string, args ...Argument) *FunctionCall {
	return &FunctionCall{Receiver: receiver, Property: property, Arguments: args}
}

// New returns new name(args...).
func New(name string, args ...Argument) *ConstructorCall {
	return &ConstructorCall{Name: name, Arguments: args}
}

// Obj returns an object literal with the given fields in order.
func Obj(fields ...Field) *Object { return &Object{Fields: fields} }

// F returns an object field.
func F(key string, value Argument) Field { return Field{Key: key, Value: value} }

// Or returns left || right.
func Or(left, right Argument) *LogicalExpression {
	return &LogicalExpression{Operator: "||", Left: left, Right: right}
}

// And returns left && right.
func And(left, right Argument) *LogicalExpression {
	return &LogicalExpression{Operator: "&&", Left: left, Right: right}
}

// Binary returns left op right.
func Binary(op string, left, right Argument) *BinaryExpression {
	return &BinaryExpression{Operator: op, Left: left, Right: right}
}

// Not returns !operand.
func Not(operand Argument) *UnaryExpression {
	return &UnaryExpression{Operator: "!", Operand: operand}
}

// Template returns a template literal.
func Template(quasis []string, exprs ...Argument) *TemplateLiteral {
	return &TemplateLiteral{Quasis: quasis, Expressions: exprs}
}

// Cond returns test ? consequent : alternate.
func Cond(test, consequent, alternate Argument) *ConditionalExpression {
	return &ConditionalExpression{Test: test, Consequent: consequent, Alternate: alternate}
}

// Arr returns an array literal.
func Arr(elems ...Argument) *Array { return &Array{Elements: elems} }

// AwaitArg returns await argument in value position.
func AwaitArg(arg Argument) *AwaitExpression { return &AwaitExpression{Argument: arg} }

// Arrow returns an arrow function with a block body.
func Arrow(params []Parameter, body ...Expression) *FunctionCall {
	return &FunctionCall{Function: &FunctionExpression{Params: params, Body: body, Arrow: true}}
}

// AsyncArrow returns an async arrow function with a block body.
func AsyncArrow(params []Parameter, body ...Expression) *FunctionCall {
	return &FunctionCall{Function: &FunctionExpression{Params: params, Body: body, Arrow: true, Async: true}}
}

// ArrowResult returns an arrow function with a concise body.
func ArrowResult(params []Parameter, result Argument) *FunctionCall {
	return &FunctionCall{Function: &FunctionExpression{Params: params, Result: result, Arrow: true}}
}
