// Package ast defines the TypeScript syntax tree produced by the builders and
// consumed by the printer. It covers the subset of TypeScript that generated
// server code uses: modules, classes, functions, statements and expressions.
//
// Nodes are plain structs behind sealed interfaces; a tree has no parent
// pointers and can be compared with reflect.DeepEqual.
package ast

// Node is implemented by every syntax tree node.
type Node interface {
	node()
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a statement or module-level declaration.
type Stmt interface {
	Node
	stmtNode()
}

// ClassMember is a member of a class body.
type ClassMember interface {
	Node
	memberNode()
}

// Type is a type annotation.
type Type interface {
	Node
	typeNode()
}

type exprBase struct{}

func (exprBase) node()     {}
func (exprBase) exprNode() {}

type stmtBase struct{}

func (stmtBase) node()     {}
func (stmtBase) stmtNode() {}

type memberBase struct{}

func (memberBase) node()       {}
func (memberBase) memberNode() {}

type typeBase struct{}

func (typeBase) node()     {}
func (typeBase) typeNode() {}

// File is a complete source file.
type File struct {
	// Header is emitted as leading line comments.
	Header string
	Body   []Stmt
}

// Accessibility is a class member modifier.
type Accessibility string

const (
	AccessNone      Accessibility = ""
	AccessPublic    Accessibility = "public"
	AccessPrivate   Accessibility = "private"
	AccessProtected Accessibility = "protected"
)
