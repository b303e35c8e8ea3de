package ir

// exprBase seals Expression to this package.
type exprBase struct{}

func (exprBase) expression() {}

// Assignment is target = value.
type Assignment struct {
	exprBase
	Target Target
	Value  Argument
}

// Kind returns KindAssignment.
func (*Assignment) Kind() ExpressionKind { return KindAssignment }

// MethodCallStatement calls a method on Target. When Method is empty or equal
// to Target.Property the member itself is called (console.log(...)), otherwise
// Target.Method(...) is called on the member (this.app.use(...)).
type MethodCallStatement struct {
	exprBase
	Target    Target
	Method    string
	Arguments []Argument
}

// Kind returns KindMethodCall.
func (*MethodCallStatement) Kind() ExpressionKind { return KindMethodCall }

// FunctionCallStatement is callee(args...) in statement position.
type FunctionCallStatement struct {
	exprBase
	Callee    string
	Arguments []Argument
}

// Kind returns KindFunctionCallStatement.
func (*FunctionCallStatement) Kind() ExpressionKind { return KindFunctionCallStatement }

// Conditional is an if statement without an else branch.
type Conditional struct {
	exprBase
	Test Argument
	Then []Expression
}

// Kind returns KindConditional.
func (*Conditional) Kind() ExpressionKind { return KindConditional }

// Declarator is one binding of a variable declaration. Exactly one of ID or
// Names is set; Names produces an object destructuring pattern.
type Declarator struct {
	ID    string
	Names []string
	Type  string
	Init  Argument
}

// VariableDeclaration is const/let/var with one or more declarators.
type VariableDeclaration struct {
	exprBase
	VarKind      VarKind
	Declarations []Declarator
	Exported     bool
}

// Kind returns KindVariableDeclaration.
func (*VariableDeclaration) Kind() ExpressionKind { return KindVariableDeclaration }

// SwitchStatement is a switch over Discriminant.
type SwitchStatement struct {
	exprBase
	Discriminant Argument
	Cases        []*SwitchCase
}

// Kind returns KindSwitchStatement.
func (*SwitchStatement) Kind() ExpressionKind { return KindSwitchStatement }

// SwitchCase is one clause of a switch. A nil Value is the default clause.
// Non-default clauses get a trailing break unless Body already ends with one.
type SwitchCase struct {
	exprBase
	Value Argument
	Body  []Expression
	// Break marks an explicit break at the end of Body.
	Break bool
}

// Kind returns KindSwitchCase.
func (*SwitchCase) Kind() ExpressionKind { return KindSwitchCase }

// Await is await argument in statement position.
type Await struct {
	exprBase
	Argument Argument
}

// Kind returns KindAwait.
func (*Await) Kind() ExpressionKind { return KindAwait }

// TryCatch is try/catch with an optional finally block. Try, CatchParameter
// and Catch are required; an empty non-nil block is allowed.
type TryCatch struct {
	exprBase
	Try            []Expression
	CatchParameter string
	Catch          []Expression
	Finally        []Expression
}

// Kind returns KindTryCatch.
func (*TryCatch) Kind() ExpressionKind { return KindTryCatch }

// Throw throws Argument, or undefined when Argument is nil.
type Throw struct {
	exprBase
	Argument Argument
}

// Kind returns KindThrow.
func (*Throw) Kind() ExpressionKind { return KindThrow }

// Return returns Argument, or nothing when Argument is nil.
type Return struct {
	exprBase
	Argument Argument
}

// Kind returns KindReturn.
func (*Return) Kind() ExpressionKind { return KindReturn }

// ExpressionStatement evaluates any argument for its side effects,
// e.g. res.status(500).json(...).
type ExpressionStatement struct {
	exprBase
	Value Argument
}

// Kind returns KindExpressionStatement.
func (*ExpressionStatement) Kind() ExpressionKind { return KindExpressionStatement }

// Legacy is an untagged expression decoded from older IR documents. A Method
// of "=" is an assignment of Arguments[0] to Target; anything else is a method
// call with the same double-property guard as MethodCallStatement.
type Legacy struct {
	exprBase
	Target    Target
	Method    string
	Arguments []Argument
}

// Kind returns KindLegacy.
func (*Legacy) Kind() ExpressionKind { return KindLegacy }

// Assign returns target.object.target.property = value.
func Assign(object, property string, value Argument) *Assignment {
	return &Assignment{Target: Target{Object: object, Property: property}, Value: value}
}

// Invoke returns a method call statement on object.property.
func Invoke(object, property, method string, args ...Argument) *MethodCallStatement {
	return &MethodCallStatement{Target: Target{Object: object, Property: property}, Method: method, Arguments: args}
}

// CallStmt returns callee(args...) as a statement.
func CallStmt(callee string, args ...Argument) *FunctionCallStatement {
	return &FunctionCallStatement{Callee: callee, Arguments: args}
}

// If returns an if statement without else.
func If(test Argument, then ...Expression) *Conditional {
	return &Conditional{Test: test, Then: then}
}

// ConstDecl returns const id = init.
func ConstDecl(id string, init Argument) *VariableDeclaration {
	return &VariableDeclaration{VarKind: Const, Declarations: []Declarator{{ID: id, Init: init}}}
}

// LetDecl returns let id = init. A nil init leaves the binding uninitialized.
func LetDecl(id string, init Argument) *VariableDeclaration {
	return &VariableDeclaration{VarKind: Let, Declarations: []Declarator{{ID: id, Init: init}}}
}

// Destructure returns const { names... } = init.
func Destructure(init Argument, names ...string) *VariableDeclaration {
	return &VariableDeclaration{VarKind: Const, Declarations: []Declarator{{Names: names, Init: init}}}
}

// AwaitStmt returns await arg as a statement.
func AwaitStmt(arg Argument) *Await { return &Await{Argument: arg} }

// Try returns try { body } catch (param) { handler }.
func Try(body []Expression, param string, handler []Expression) *TryCatch {
	return &TryCatch{Try: body, CatchParameter: param, Catch: handler}
}

// ThrowStmt returns throw arg.
func ThrowStmt(arg Argument) *Throw { return &Throw{Argument: arg} }

// Ret returns return arg. A nil arg is a bare return.
func Ret(arg Argument) *Return { return &Return{Argument: arg} }

// Do wraps value as an expression statement.
func Do(value Argument) *ExpressionStatement { return &ExpressionStatement{Value: value} }

// Block is a convenience for building []Expression literals.
func Block(stmts ...Expression) []Expression { return stmts }
