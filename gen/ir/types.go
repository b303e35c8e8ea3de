// Package ir defines the intermediate representation consumed by the builders.
// IR nodes are plain data describing TypeScript code at statement and
// expression granularity. Builders in package build lower them to syntax trees.
//
// Every node is a value owned by the generator that constructs it; trees are
// rebuilt for each generation call and never shared.
package ir

// ArgumentKind identifies the variant of an Argument.
type ArgumentKind int

const (
	KindLiteral ArgumentKind = iota
	KindIdentifier
	KindPropertyAccess
	KindFunctionCall
	KindConstructorCall
	KindObject
	KindLogicalExpression
	KindBinaryExpression
	KindUnaryExpression
	KindTemplateLiteral
	KindConditionalExpression
	KindArray
	KindAwaitExpression
)

var argumentKindNames = [...]string{
	KindLiteral:               "literal",
	KindIdentifier:            "identifier",
	KindPropertyAccess:        "property_access",
	KindFunctionCall:          "function_call",
	KindConstructorCall:       "constructor_call",
	KindObject:                "object",
	KindLogicalExpression:     "logical_expression",
	KindBinaryExpression:      "binary_expression",
	KindUnaryExpression:       "unary_expression",
	KindTemplateLiteral:       "template_literal",
	KindConditionalExpression: "conditional_expression",
	KindArray:                 "array",
	KindAwaitExpression:       "await_expression",
}

// String returns the wire tag of the kind (e.g. "binary_expression").
func (k ArgumentKind) String() string {
	if k >= 0 && int(k) < len(argumentKindNames) {
		return argumentKindNames[k]
	}
	return "unknown"
}

// ParseArgumentKind maps a wire tag back to its kind.
func ParseArgumentKind(s string) (ArgumentKind, bool) {
	for i, name := range argumentKindNames {
		if name == s {
			return ArgumentKind(i), true
		}
	}
	return 0, false
}

// Argument is a value-position IR node.
type Argument interface {
	// Kind returns the discriminant used for dispatch and serialization.
	Kind() ArgumentKind

	argument()
}

// ExpressionKind identifies the variant of an Expression.
type ExpressionKind int

const (
	KindAssignment ExpressionKind = iota
	KindMethodCall
	KindFunctionCallStatement
	KindConditional
	KindVariableDeclaration
	KindSwitchStatement
	KindSwitchCase
	KindAwait
	KindTryCatch
	KindThrow
	KindReturn
	KindExpressionStatement
	KindLegacy
)

var expressionKindNames = [...]string{
	KindAssignment:            "assignment",
	KindMethodCall:            "method_call",
	KindFunctionCallStatement: "function_call",
	KindConditional:           "conditional",
	KindVariableDeclaration:   "variable_declaration",
	KindSwitchStatement:       "switch_statement",
	KindSwitchCase:            "switch_case",
	KindAwait:                 "await",
	KindTryCatch:              "try_catch",
	KindThrow:                 "throw",
	KindReturn:                "return",
	KindExpressionStatement:   "expression",
	KindLegacy:                "",
}

// String returns the wire tag of the kind. The legacy kind has an empty tag.
func (k ExpressionKind) String() string {
	if k >= 0 && int(k) < len(expressionKindNames) {
		return expressionKindNames[k]
	}
	return "unknown"
}

// ParseExpressionKind maps a wire tag back to its kind.
// Unknown tags report false; callers decode them as Legacy.
func ParseExpressionKind(s string) (ExpressionKind, bool) {
	if s == "" {
		return KindLegacy, false
	}
	for i, name := range expressionKindNames {
		if name == s {
			return ExpressionKind(i), true
		}
	}
	return KindLegacy, false
}

// Expression is a statement-position IR node.
type Expression interface {
	// Kind returns the discriminant used for dispatch and serialization.
	Kind() ExpressionKind

	expression()
}

// Target names the receiver of an assignment or method call, e.g. this.app.
// Object may be a dotted path ("process.env"). Property may be empty, in which
// case the target is Object itself.
type Target struct {
	Object   string `json:"object"`
	Property string `json:"property,omitempty"`
}

// IsZero reports whether the target is empty.
func (t Target) IsZero() bool {
	return t.Object == "" && t.Property == ""
}

// AccessModifier is a TypeScript member visibility.
type AccessModifier string

const (
	AccessNone      AccessModifier = ""
	AccessPublic    AccessModifier = "public"
	AccessPrivate   AccessModifier = "private"
	AccessProtected AccessModifier = "protected"
)

// VarKind is the keyword of a variable declaration.
type VarKind string

const (
	Const VarKind = "const"
	Let   VarKind = "let"
	Var   VarKind = "var"
)

// Valid reports whether k is one of const, let, var.
func (k VarKind) Valid() bool {
	return k == Const || k == Let || k == Var
}
