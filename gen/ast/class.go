package ast

// ClassProperty is a class field.
type ClassProperty struct {
	memberBase
	Name     string
	Type     Type
	Value    Expr
	Access   Accessibility
	Static   bool
	Readonly bool
	Optional bool
	Definite bool
	Doc      string
}

// MethodKind distinguishes constructors from ordinary methods.
type MethodKind int

const (
	MethodNormal MethodKind = iota
	MethodConstructor
)

// ClassMethod is a class method or constructor.
type ClassMethod struct {
	memberBase
	Kind       MethodKind
	Name       string
	Params     []Param
	ReturnType Type
	Body       []Stmt
	Access     Accessibility
	Static     bool
	Async      bool
	Doc        string
}

// TypeName is a type written verbatim, e.g. "string" or "Server | undefined".
type TypeName struct {
	typeBase
	Name string
}

// TypeQuery is typeof Name.
type TypeQuery struct {
	typeBase
	Name string
}

// TypeApply is Name<Args...>.
type TypeApply struct {
	typeBase
	Name string
	Args []Type
}
