package ast

// ExprStmt is an expression in statement position.
type ExprStmt struct {
	stmtBase
	X Expr
}

// Declarator is one binding of a variable declaration. Exactly one of Name
// or Pattern is set; Pattern is an object destructuring of the listed names.
type Declarator struct {
	Name    string
	Pattern []string
	Type    Type
	Init    Expr
}

// VarDecl is a const, let or var declaration.
type VarDecl struct {
	stmtBase
	Kind     string
	Decls    []Declarator
	Exported bool
}

// If is an if statement. Else may be nil.
type If struct {
	stmtBase
	Test Expr
	Then []Stmt
	Else []Stmt
}

// Case is a switch clause. A nil Test is the default clause.
type Case struct {
	Test Expr
	Body []Stmt
}

// Switch is a switch statement.
type Switch struct {
	stmtBase
	Discriminant Expr
	Cases        []Case
}

// Break is a break statement.
type Break struct{ stmtBase }

// Try is try/catch/finally. Finally may be nil.
type Try struct {
	stmtBase
	Block   []Stmt
	Param   string
	Handler []Stmt
	Finally []Stmt
}

// Throw is a throw statement.
type Throw struct {
	stmtBase
	Argument Expr
}

// Return is a return statement. Argument may be nil.
type Return struct {
	stmtBase
	Argument Expr
}

// Comment is a standalone line comment.
type Comment struct {
	stmtBase
	Text string
}

// ImportSpec is one named import binding.
type ImportSpec struct {
	Imported string
	Local    string
}

// Import is an import declaration. With no bindings it is a side-effect import.
type Import struct {
	stmtBase
	Default   string
	Namespace string
	Named     []ImportSpec
	Source    string
	TypeOnly  bool
}

// ExportSpec is one named export binding.
type ExportSpec struct {
	Local    string
	Exported string
}

// ExportNamed is export { ... } or export { ... } from "source".
type ExportNamed struct {
	stmtBase
	Specs  []ExportSpec
	Source string
}

// ExportDefault is export default expr.
type ExportDefault struct {
	stmtBase
	Value Expr
}

// ClassDecl is a class declaration.
type ClassDecl struct {
	stmtBase
	Name       string
	Extends    Expr
	Implements []string
	Members    []ClassMember
	Exported   bool
	Default    bool
	Doc        string
}

// FuncDecl is a function declaration.
type FuncDecl struct {
	stmtBase
	Name       string
	Params     []Param
	ReturnType Type
	Async      bool
	Body       []Stmt
	Exported   bool
	Default    bool
	Doc        string
}

// PropertySignature is one member of an interface.
type PropertySignature struct {
	Name     string
	Type     Type
	Optional bool
}

// InterfaceDecl is an interface declaration.
type InterfaceDecl struct {
	stmtBase
	Name     string
	Extends  []string
	Members  []PropertySignature
	Exported bool
}
