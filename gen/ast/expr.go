package ast

// Ident is an identifier reference.
type Ident struct {
	exprBase
	Name string
}

// This is the this keyword.
type This struct{ exprBase }

// StringLit is a string literal.
type StringLit struct {
	exprBase
	Value string
}

// NumberLit is a numeric literal. Raw is the source text, e.g. "3000".
type NumberLit struct {
	exprBase
	Raw string
}

// BoolLit is true or false.
type BoolLit struct {
	exprBase
	Value bool
}

// NullLit is null.
type NullLit struct{ exprBase }

// Member is object.property.
type Member struct {
	exprBase
	Object   Expr
	Property string
}

// Call is callee(args...).
type Call struct {
	exprBase
	Callee Expr
	Args   []Expr
}

// New is new callee(args...).
type New struct {
	exprBase
	Callee Expr
	Args   []Expr
}

// Property is one entry of an object literal.
type Property struct {
	Key       string
	Value     Expr
	Shorthand bool
}

// Object is an object literal.
type Object struct {
	exprBase
	Props []Property
}

// Array is an array literal.
type Array struct {
	exprBase
	Elems []Expr
}

// Logical is left op right for || and &&.
type Logical struct {
	exprBase
	Op    string
	Left  Expr
	Right Expr
}

// Binary is left op right for arithmetic and comparison operators.
type Binary struct {
	exprBase
	Op    string
	Left  Expr
	Right Expr
}

// Unary is a prefix operator expression.
type Unary struct {
	exprBase
	Op      string
	Operand Expr
}

// TemplateElement is one literal segment of a template literal.
type TemplateElement struct {
	Raw  string
	Tail bool
}

// Template is a template literal. len(Quasis) == len(Exprs)+1.
type Template struct {
	exprBase
	Quasis []TemplateElement
	Exprs  []Expr
}

// Conditional is test ? consequent : alternate.
type Conditional struct {
	exprBase
	Test       Expr
	Consequent Expr
	Alternate  Expr
}

// Await is await argument.
type Await struct {
	exprBase
	Argument Expr
}

// Assign is left = right.
type Assign struct {
	exprBase
	Left  Expr
	Right Expr
}

// Param is a function parameter.
type Param struct {
	Name     string
	Type     Type
	Default  Expr
	Optional bool
	Access   Accessibility
	Readonly bool
}

// Function is an arrow function or function expression. A non-nil
// ExprBody is a concise arrow body; otherwise Body is a block.
type Function struct {
	exprBase
	Params     []Param
	Body       []Stmt
	ExprBody   Expr
	Async      bool
	Arrow      bool
	ReturnType Type
}
