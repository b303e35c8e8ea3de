package ir

// Parameter is a function, method or constructor parameter.
// Access makes a constructor parameter a parameter property
// (constructor(private io?: Server)).
type Parameter struct {
	Name     string
	Type     string
	Default  Argument
	Optional bool
	Access   AccessModifier
	Readonly bool
}

// Param returns a typed parameter.
func Param(name, typ string) Parameter {
	return Parameter{Name: name, Type: typ}
}

// Params is a convenience for building parameter lists.
func Params(ps ...Parameter) []Parameter { return ps }

// TypeRef is a type annotation. Name is emitted verbatim ("string",
// "Server | undefined", "User[]"). Complex, when set, takes precedence.
type TypeRef struct {
	Name    string
	Complex *ComplexType
}

// IsZero reports whether no type is set.
func (t TypeRef) IsZero() bool {
	return t.Name == "" && t.Complex == nil
}

// Type returns a simple type reference.
func Type(name string) TypeRef { return TypeRef{Name: name} }

// ComplexType is one level of generic wrapping. With Typeof set it renders
// Wrapper<typeof Typeof>; otherwise Wrapper<Generic<Params...>>.
type ComplexType struct {
	Wrapper string
	Typeof  string
	Generic string
	Params  []string
}

// ReturnTypeOf returns ReturnType<typeof fn>.
func ReturnTypeOf(fn string) TypeRef {
	return TypeRef{Complex: &ComplexType{Wrapper: "ReturnType", Typeof: fn}}
}

// MethodDefinition describes a class method.
type MethodDefinition struct {
	Name       string
	Params     []Parameter
	ReturnType string
	Static     bool
	Async      bool
	Access     AccessModifier
	Doc        string
	Body       []Expression
}

// ConstructorFeature wires a collaborator in a constructor:
// this.<Property> = <Caller>(<Argument>) or, for CalleeConstructor,
// this.<Property> = new <Caller>(<Argument>).
type ConstructorFeature struct {
	Feature    string
	Property   string
	Caller     string
	CalleeKind CalleeKind
	Argument   string
}

// CalleeKind selects how a ConstructorFeature invokes its caller.
type CalleeKind string

const (
	CalleeFunction    CalleeKind = "function"
	CalleeConstructor CalleeKind = "constructor"
)

// ConstructorDefinition describes a class constructor. Features are emitted
// in slice order, before Body.
type ConstructorDefinition struct {
	Params   []Parameter
	Access   AccessModifier
	Doc      string
	Features []ConstructorFeature
	Body     []Expression
}

// Property describes a class field. Value is restricted to literal,
// identifier, function_call, constructor_call, property_access and object.
type Property struct {
	Name     string
	Type     TypeRef
	Value    Argument
	Access   AccessModifier
	Static   bool
	Readonly bool
	Optional bool
	Definite bool
	Doc      string
}

// Declaration is a module-level IR node.
type Declaration interface {
	declaration()
}

type declBase struct{}

func (declBase) declaration() {}

// ClassDefinition describes a class declaration.
type ClassDefinition struct {
	declBase
	Name        string
	Extends     string
	Implements  []string
	Properties  []Property
	Constructor *ConstructorDefinition
	Methods     []MethodDefinition
	Exported    bool
	Default     bool
	Doc         string
}

// FunctionDeclaration describes a top-level function.
type FunctionDeclaration struct {
	declBase
	Name       string
	Params     []Parameter
	ReturnType string
	Async      bool
	Exported   bool
	Default    bool
	Doc        string
	Body       []Expression
}

// InterfaceMember is one property signature of an interface.
type InterfaceMember struct {
	Name     string
	Type     string
	Optional bool
}

// InterfaceDeclaration describes a TypeScript interface.
type InterfaceDeclaration struct {
	declBase
	Name     string
	Extends  []string
	Members  []InterfaceMember
	Exported bool
}

// Statement places an Expression at module level.
type Statement struct {
	declBase
	Expression Expression
}

// Stmt wraps an expression as a module-level declaration.
func Stmt(e Expression) *Statement { return &Statement{Expression: e} }

// Comment is a line comment at module level. Generators use it for
// placeholder markers when an option value is not supported.
type Comment struct {
	declBase
	Text string
}

// Module is one output file: imports, body declarations and exports in order.
type Module struct {
	Header  string
	Imports []ImportConfig
	Body    []Declaration
	Exports []ExportConfig
}

// Add appends declarations to the module body.
func (m *Module) Add(decls ...Declaration) {
	m.Body = append(m.Body, decls...)
}

// Import appends an import configuration.
func (m *Module) Import(cfgs ...ImportConfig) {
	m.Imports = append(m.Imports, cfgs...)
}

// Export appends an export configuration.
func (m *Module) Export(cfgs ...ExportConfig) {
	m.Exports = append(m.Exports, cfgs...)
}
